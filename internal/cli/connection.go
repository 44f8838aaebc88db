package cli

import (
	"context"
	"os"

	"github.com/vvka-141/myconn/internal/db"
	"github.com/vvka-141/myconn/internal/logging"
	"github.com/vvka-141/myconn/pkg/myconn"
)

// connectionStringFromEnv returns the first non-empty connection string from
// MYCONN_CONNECTION_STRING or DATABASE_URL environment variables.
func connectionStringFromEnv() string {
	if s := os.Getenv("MYCONN_CONNECTION_STRING"); s != "" {
		return s
	}
	return os.Getenv("DATABASE_URL")
}

// hasEnvConnectionSource returns true if environment variables provide enough
// connection info to skip the interactive wizard.
func hasEnvConnectionSource() bool {
	if connectionStringFromEnv() != "" {
		return true
	}
	return os.Getenv("MYSQL_HOST") != "" || os.Getenv("MYSQL_UNIX_PORT") != ""
}

// connectWithFlags resolves the connection flags and opens a connection
// through the auth-method-appropriate connector.
func connectWithFlags(ctx context.Context, flags connectionFlags, verbose bool) (*myconn.Connection, error) {
	connConfig, err := resolveConnectionFromFlags(flags, verbose)
	if err != nil {
		return nil, err
	}

	var logger myconn.Logger = logging.NewNullLogger()
	if verbose {
		logger = logging.NewConsoleLogger(true)
	}

	connector, err := db.NewConnector(connConfig, logger)
	if err != nil {
		return nil, err
	}
	return connector.Connect(ctx)
}
