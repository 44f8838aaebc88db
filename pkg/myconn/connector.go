package myconn

import "context"

// Connector is a unified interface for establishing connections.
// Different implementations handle various authentication methods
// (standard credentials, cloud IAM tokens, etc.).
type Connector interface {
	// Connect establishes a connection to the server.
	// The returned Connection should be disconnected by the caller when done.
	Connect(ctx context.Context) (*Connection, error)
}
