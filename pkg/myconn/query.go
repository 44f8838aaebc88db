package myconn

import (
	"context"
	"database/sql"
	"fmt"
)

// Query is a statement bound to a Connection. The SQL text can be given at
// construction time (Connection.Query) or set later; execution always
// delegates to the native driver through the connection's handle.
//
// A Query is not safe for concurrent use; create one per goroutine.
type Query struct {
	conn *Connection
	text string
	args []any
}

// SetSQL replaces the statement text.
func (q *Query) SetSQL(text string) *Query {
	q.text = text
	return q
}

// Bind sets the statement arguments, replacing any previous ones.
func (q *Query) Bind(args ...any) *Query {
	q.args = args
	return q
}

// String returns the statement text.
func (q *Query) String() string {
	return q.text
}

// Exec runs the statement without returning rows.
func (q *Query) Exec(ctx context.Context) (sql.Result, error) {
	db, err := q.conn.handle()
	if err != nil {
		return nil, err
	}
	res, err := db.ExecContext(ctx, q.text, q.args...)
	if err != nil {
		return nil, fmt.Errorf("exec failed: %w", err)
	}
	return res, nil
}

// Rows runs the statement and returns the full result set.
// The caller owns the returned rows and must Close them.
func (q *Query) Rows(ctx context.Context) (*sql.Rows, error) {
	db, err := q.conn.handle()
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, q.text, q.args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return rows, nil
}

// Row runs the statement expecting at most one row. Errors are deferred
// until Scan is called, mirroring database/sql semantics. Returns an error
// only when the connection is not established.
func (q *Query) Row(ctx context.Context) (*sql.Row, error) {
	db, err := q.conn.handle()
	if err != nil {
		return nil, err
	}
	return db.QueryRowContext(ctx, q.text, q.args...), nil
}
