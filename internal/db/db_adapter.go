package db

import (
	"context"
	"database/sql"

	"github.com/vvka-141/myconn/pkg/myconn"
)

// DBAdapter adapts *sql.DB to implement the myconn.DBConnection interface.
// This decouples the manager from database/sql concrete types, preventing
// direct exposure of driver-specific behaviour.
//
// Thread-Safety: Safe for concurrent use (*sql.DB is thread-safe).
type DBAdapter struct {
	db *sql.DB
}

// NewDBAdapter creates a new DBAdapter wrapping the given handle.
func NewDBAdapter(db *sql.DB) myconn.DBConnection {
	return &DBAdapter{db: db}
}

// Exec executes a statement without returning rows.
func (a *DBAdapter) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return a.db.ExecContext(ctx, query, args...)
}

// QueryRow executes a query that is expected to return at most one row.
func (a *DBAdapter) QueryRow(ctx context.Context, query string, args ...any) myconn.Row {
	return a.db.QueryRowContext(ctx, query, args...)
}

// Query executes a query returning multiple rows.
func (a *DBAdapter) Query(ctx context.Context, query string, args ...any) (myconn.Rows, error) {
	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Verify DBAdapter implements DBConnection at compile time
var _ myconn.DBConnection = (*DBAdapter)(nil)
