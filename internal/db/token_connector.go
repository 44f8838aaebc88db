package db

import (
	"context"
	"fmt"
	"time"

	"github.com/vvka-141/myconn/internal/retry"
	"github.com/vvka-141/myconn/pkg/myconn"
)

// TokenBasedConnector implements the Connector interface for cloud providers
// that authenticate via short-lived tokens (AWS IAM, Azure Entra ID).
// The token is acquired from a TokenProvider and used as the MySQL password.
type TokenBasedConnector struct {
	config        *myconn.ConnectionConfig
	tokenProvider TokenProvider
	logger        myconn.Logger
	retryExecutor *retry.Executor
	providerName  string
}

// NewTokenBasedConnector creates a connector that uses a TokenProvider for authentication.
// providerName is used in error/warning messages (e.g., "AWS IAM", "Azure").
func NewTokenBasedConnector(config *myconn.ConnectionConfig, tokenProvider TokenProvider, providerName string, logger myconn.Logger) *TokenBasedConnector {
	return &TokenBasedConnector{
		config:        config,
		tokenProvider: tokenProvider,
		logger:        logger,
		retryExecutor: newRetryExecutor(logger),
		providerName:  providerName,
	}
}

// Connect acquires a fresh token and establishes the connection. The token
// is re-acquired on every retry attempt so a near-expired token never gets
// reused.
func (c *TokenBasedConnector) Connect(ctx context.Context) (*myconn.Connection, error) {
	var conn *myconn.Connection

	err := c.retryExecutor.Execute(ctx, func(ctx context.Context) error {
		token, expiresOn, err := c.tokenProvider.GetToken(ctx)
		if err != nil {
			return fmt.Errorf("failed to acquire %s token: %w", c.providerName, err)
		}

		if ttl := time.Until(expiresOn); ttl < 5*time.Minute {
			fmt.Printf("Warning: %s token expires in %v\n", c.providerName, ttl.Round(time.Second))
		}

		configWithToken := c.config.Clone()
		configWithToken.Password = token

		opened, err := myconn.Open(ctx, configWithToken, myconn.WithLogger(c.logger))
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
