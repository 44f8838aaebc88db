package db

import (
	"context"
	"fmt"
	"net"
	"sync"

	"cloud.google.com/go/cloudsqlconn"
	"github.com/go-sql-driver/mysql"
	"github.com/vvka-141/myconn/internal/retry"
	"github.com/vvka-141/myconn/pkg/myconn"
)

// The driver resolves the GoogleCloudSQLNetwork address through a dial
// function registered process-wide. The dialer behind it is shared by all
// Cloud SQL connectors and lazily created on first use.
var (
	cloudSQLMu     sync.Mutex
	cloudSQLDialer *cloudsqlconn.Dialer
)

func ensureCloudSQLDialer(ctx context.Context) (*cloudsqlconn.Dialer, error) {
	cloudSQLMu.Lock()
	defer cloudSQLMu.Unlock()

	if cloudSQLDialer != nil {
		return cloudSQLDialer, nil
	}

	dialer, err := cloudsqlconn.NewDialer(ctx, cloudsqlconn.WithIAMAuthN())
	if err != nil {
		return nil, fmt.Errorf("failed to create Cloud SQL dialer: %w", err)
	}

	mysql.RegisterDialContext(myconn.GoogleCloudSQLNetwork,
		func(ctx context.Context, addr string) (net.Conn, error) {
			return dialer.Dial(ctx, addr)
		})

	cloudSQLDialer = dialer
	return dialer, nil
}

// GoogleCloudSQLConnector implements the Connector interface for Google
// Cloud SQL using IAM database authentication via the Cloud SQL Go
// Connector. The connector owns authentication and transport security; the
// driver sees it as just another network.
//
// Implements io.Closer: the caller must call Close() after the connection
// is closed to release the Cloud SQL dialer resources.
type GoogleCloudSQLConnector struct {
	config        *myconn.ConnectionConfig
	logger        myconn.Logger
	retryExecutor *retry.Executor
}

// NewGoogleCloudSQLConnector creates a connector for Google Cloud SQL IAM
// authentication. The instance connection name (project:region:instance)
// comes from config.GoogleInstance.
func NewGoogleCloudSQLConnector(config *myconn.ConnectionConfig, logger myconn.Logger) *GoogleCloudSQLConnector {
	return &GoogleCloudSQLConnector{
		config:        config,
		logger:        logger,
		retryExecutor: newRetryExecutor(logger),
	}
}

// Connect establishes a connection using Google Cloud SQL IAM authentication.
func (c *GoogleCloudSQLConnector) Connect(ctx context.Context) (*myconn.Connection, error) {
	if _, err := ensureCloudSQLDialer(ctx); err != nil {
		return nil, err
	}

	var conn *myconn.Connection
	err := c.retryExecutor.Execute(ctx, func(ctx context.Context) error {
		opened, err := myconn.Open(ctx, c.config, myconn.WithLogger(c.logger))
		if err != nil {
			return fmt.Errorf("failed to connect to Cloud SQL instance %s: %w", c.config.GoogleInstance, err)
		}
		conn = opened
		return nil
	})
	if err != nil {
		return nil, err
	}

	return conn, nil
}

// Close releases the shared Cloud SQL dialer resources.
// Must be called after the connection returned by Connect() is closed.
func (c *GoogleCloudSQLConnector) Close() error {
	cloudSQLMu.Lock()
	defer cloudSQLMu.Unlock()

	if cloudSQLDialer != nil {
		err := cloudSQLDialer.Close()
		cloudSQLDialer = nil
		return err
	}
	return nil
}
