// Package db resolves connection parameters from flags, environment,
// profiles and ~/.my.cnf, and builds authenticated connections on top of
// the myconn library.
package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/vvka-141/myconn/internal/retry"
	"github.com/vvka-141/myconn/pkg/myconn"
)

// MySQL server error numbers used for error message guidance.
const (
	errAccessDenied       = 1045 // ER_ACCESS_DENIED_ERROR
	errBadDatabase        = 1049 // ER_BAD_DB_ERROR
	errTooManyConnections = 1040 // ER_CON_COUNT_ERROR
	errDBAccessDenied     = 1044 // ER_DBACCESS_DENIED_ERROR
)

// StandardConnector implements the Connector interface for standard
// username/password authentication with automatic retry on transient failures.
type StandardConnector struct {
	config        *myconn.ConnectionConfig
	logger        myconn.Logger
	retryExecutor *retry.Executor
}

// NewStandardConnector creates a new StandardConnector with the given configuration.
// Retry behavior uses myconn defaults: DefaultRetryMaxAttempts attempts,
// exponential backoff starting at DefaultRetryInitialDelay, max DefaultRetryMaxDelay.
func NewStandardConnector(config *myconn.ConnectionConfig, logger myconn.Logger) *StandardConnector {
	return &StandardConnector{
		config:        config,
		logger:        logger,
		retryExecutor: newRetryExecutor(logger),
	}
}

func newRetryExecutor(logger myconn.Logger) *retry.Executor {
	classifier := retry.NewMySQLErrorClassifier()
	strategy := retry.NewExponentialBackoff(myconn.DefaultRetryMaxAttempts,
		retry.WithInitialDelay(myconn.DefaultRetryInitialDelay),
		retry.WithMaxDelay(myconn.DefaultRetryMaxDelay),
	)

	executor := retry.NewExecutor(classifier, strategy)
	if logger != nil {
		executor = executor.WithOnRetry(func(attempt int, err error, delay time.Duration) {
			logger.Verbose("connection attempt %d failed (%v), retrying in %s", attempt, err, delay)
		})
	}
	return executor
}

// Connect establishes a connection using standard authentication with automatic retry.
func (c *StandardConnector) Connect(ctx context.Context) (*myconn.Connection, error) {
	var conn *myconn.Connection

	err := c.retryExecutor.Execute(ctx, func(ctx context.Context) error {
		opened, err := myconn.Open(ctx, c.config, myconn.WithLogger(c.logger))
		if err != nil {
			return wrapConnectionError(err, c.config)
		}
		conn = opened
		return nil
	})
	if err != nil {
		return nil, err
	}

	return conn, nil
}

// NewConnector is a factory function that creates the appropriate Connector
// based on the ConnectionConfig's AuthMethod.
func NewConnector(config *myconn.ConnectionConfig, logger myconn.Logger) (myconn.Connector, error) {
	switch config.AuthMethod {
	case myconn.AuthMethodStandard:
		return NewStandardConnector(config, logger), nil
	case myconn.AuthMethodAWSIAM:
		return newAWSConnector(config, logger)
	case myconn.AuthMethodGoogleIAM:
		return newGoogleConnector(config, logger)
	case myconn.AuthMethodAzureEntraID:
		return newAzureConnector(config, logger)
	default:
		return nil, fmt.Errorf("unsupported auth method %v: %w", config.AuthMethod, myconn.ErrUnsupportedAuthMethod)
	}
}

// wrapConnectionError wraps raw driver connection errors with actionable guidance.
func wrapConnectionError(err error, config *myconn.ConnectionConfig) error {
	addr := config.Addr()

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case errAccessDenied, errDBAccessDenied:
			return fmt.Errorf(`access denied for user "%s"

Possible causes:
  - Wrong password (check $MYSQL_PWD or ~/.my.cnf)
  - Wrong username
  - User does not have access from this client host

Original error: %w`, config.Username, err)

		case errBadDatabase:
			return fmt.Errorf(`database "%s" does not exist

To create it:
  myconn create %s

Original error: %w`, config.Database, config.Database, err)

		case errTooManyConnections:
			return fmt.Errorf(`too many connections on %s

Possible causes:
  - max_connections limit reached on the server
  - Stale sessions from previous runs

Try: SHOW PROCESSLIST; and KILL the stale sessions.

Original error: %w`, addr, err)
		}
	}

	errStr := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "actively refused"):
		return fmt.Errorf(`connection refused to %s

Possible causes:
  - MySQL is not running (check: mysqladmin -h %s ping)
  - Wrong host, port or socket path
  - Firewall blocking the connection

Original error: %w`, addr, config.Host, err)

	case strings.Contains(errStr, "no such host") || strings.Contains(errStr, "no host"):
		return fmt.Errorf(`cannot resolve host "%s"

Possible causes:
  - Hostname is misspelled
  - DNS is not configured or reachable
  - Network connection issue

Original error: %w`, config.Host, err)

	case strings.Contains(errStr, "no such file") || strings.Contains(errStr, "socket"):
		return fmt.Errorf(`cannot reach server socket %s

Possible causes:
  - MySQL is not running locally
  - Wrong socket path (check the socket setting in my.cnf)
  - Server listens on TCP only (try -h 127.0.0.1)

Original error: %w`, addr, err)

	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "timed out") ||
		strings.Contains(errStr, "deadline exceeded"):
		return fmt.Errorf(`connection timed out to %s

Possible causes:
  - Server is overloaded or unresponsive
  - Network latency or packet loss
  - Firewall silently dropping packets
  - Wrong host/port (server not listening)

Original error: %w`, addr, err)

	case strings.Contains(errStr, "ssl") || strings.Contains(errStr, "tls") ||
		strings.Contains(errStr, "certificate"):
		return fmt.Errorf(`TLS connection error

Possible causes:
  - Server requires TLS but --tls-mode is wrong
  - Certificate verification failed (try --tls-mode=required)
  - Client certificates missing (check --ssl-cert, --ssl-key)

Original error: %w`, err)

	default:
		return fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
}

// newAWSConnector creates a token-based connector with the AWS IAM token provider.
func newAWSConnector(config *myconn.ConnectionConfig, logger myconn.Logger) (myconn.Connector, error) {
	endpoint := config.Addr()

	tokenProvider, err := NewAWSIAMTokenProvider(endpoint, config.AWSRegion, config.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS IAM token provider: %w", err)
	}

	return NewTokenBasedConnector(config, tokenProvider, "AWS IAM", logger), nil
}

// newGoogleConnector creates a GoogleCloudSQLConnector for Google Cloud SQL IAM authentication.
func newGoogleConnector(config *myconn.ConnectionConfig, logger myconn.Logger) (myconn.Connector, error) {
	if config.GoogleInstance == "" {
		return nil, fmt.Errorf("Google Cloud SQL IAM auth requires --google-instance (project:region:instance): %w",
			myconn.ErrInvalidConfig)
	}
	if config.Username == "" {
		return nil, fmt.Errorf("Google Cloud SQL IAM auth requires username (-u): %w", myconn.ErrInvalidConfig)
	}

	return NewGoogleCloudSQLConnector(config, logger), nil
}

// newAzureConnector creates a token-based connector with the Azure Entra ID token provider.
// If explicit credentials (tenant, client, secret) are provided, uses Service Principal auth.
// Otherwise, falls back to DefaultAzureCredential chain.
func newAzureConnector(config *myconn.ConnectionConfig, logger myconn.Logger) (myconn.Connector, error) {
	var tokenProvider TokenProvider
	var err error

	if config.AzureTenantID != "" && config.AzureClientID != "" && config.AzureClientSecret != "" {
		tokenProvider, err = NewAzureServicePrincipalProvider(
			config.AzureTenantID,
			config.AzureClientID,
			config.AzureClientSecret,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create Azure Service Principal provider: %w", err)
		}
	} else {
		tokenProvider, err = NewAzureDefaultCredentialProvider()
		if err != nil {
			return nil, fmt.Errorf("failed to create Azure Default Credential provider: %w", err)
		}
	}

	return NewTokenBasedConnector(config, tokenProvider, "Azure", logger), nil
}
