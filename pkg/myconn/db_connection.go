package myconn

import (
	"context"
	"database/sql"
)

// DBConnection abstracts the statement-level operations the database
// manager needs. It decouples the public API from database/sql concrete
// types so the manager can be tested against fakes.
//
// Thread-Safety: Implementations should follow their underlying handle's
// guarantees; *sql.DB-backed implementations are safe for concurrent use.
type DBConnection interface {
	// Exec executes a statement without returning rows.
	Exec(ctx context.Context, query string, args ...any) (sql.Result, error)

	// QueryRow executes a query expected to return at most one row.
	// Errors are deferred until Row's Scan method is called.
	QueryRow(ctx context.Context, query string, args ...any) Row

	// Query executes a query returning multiple rows.
	Query(ctx context.Context, query string, args ...any) (Rows, error)
}

// Row represents a single row returned by QueryRow.
type Row interface {
	// Scan reads the values from the row into dest values.
	// Returns an error if no row was found or if the scan fails.
	Scan(dest ...any) error
}

// Rows represents an iterable result set.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

// DatabaseManager provides schema lifecycle operations on a server.
type DatabaseManager interface {
	// Exists checks if a database (schema) exists.
	Exists(ctx context.Context, conn DBConnection, dbName string) (bool, error)

	// Create creates a new database.
	Create(ctx context.Context, conn DBConnection, dbName string) error

	// Drop drops the specified database.
	Drop(ctx context.Context, conn DBConnection, dbName string) error

	// TerminateConnections kills all other sessions using the specified
	// database.
	TerminateConnections(ctx context.Context, conn DBConnection, dbName string) error
}
