package manager

import (
	"context"
	"fmt"
	"strings"

	"github.com/vvka-141/myconn/pkg/myconn"
)

const (
	queryDatabaseExists = "SELECT EXISTS(SELECT 1 FROM information_schema.SCHEMATA WHERE SCHEMA_NAME = ?)"
	queryListSessions   = `
		SELECT ID
		FROM information_schema.PROCESSLIST
		WHERE DB = ? AND ID <> CONNECTION_ID()
	`
)

// Manager implements database lifecycle operations using the DBConnection abstraction.
// Stateless; thread safety depends on the injected DBConnection.
type Manager struct{}

// New creates a new DatabaseManager instance.
func New() myconn.DatabaseManager {
	return &Manager{}
}

// Exists checks if a database (schema) exists.
func (m *Manager) Exists(ctx context.Context, conn myconn.DBConnection, dbName string) (bool, error) {
	var exists bool
	err := conn.QueryRow(ctx, queryDatabaseExists, dbName).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check database existence: %w", err)
	}
	return exists, nil
}

// Create creates a new database.
func (m *Manager) Create(ctx context.Context, conn myconn.DBConnection, dbName string) error {
	query := fmt.Sprintf("CREATE DATABASE %s", quoteIdentifier(dbName))
	if _, err := conn.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create database %q: %w", dbName, err)
	}
	return nil
}

// Drop drops the specified database.
func (m *Manager) Drop(ctx context.Context, conn myconn.DBConnection, dbName string) error {
	query := fmt.Sprintf("DROP DATABASE %s", quoteIdentifier(dbName))
	if _, err := conn.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to drop database %q: %w", dbName, err)
	}
	return nil
}

// TerminateConnections kills all other sessions using the specified database.
// Sessions that finish on their own between listing and KILL are ignored.
func (m *Manager) TerminateConnections(ctx context.Context, conn myconn.DBConnection, dbName string) error {
	rows, err := conn.Query(ctx, queryListSessions, dbName)
	if err != nil {
		return fmt.Errorf("failed to list sessions for database %q: %w", dbName, err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("failed to read session list: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read session list: %w", err)
	}

	for _, id := range ids {
		if _, err := conn.Exec(ctx, fmt.Sprintf("KILL %d", id)); err != nil {
			// ER_NO_SUCH_THREAD: the session ended before the KILL landed.
			if strings.Contains(err.Error(), "Unknown thread id") {
				continue
			}
			return fmt.Errorf("failed to terminate session %d on database %q: %w", id, dbName, err)
		}
	}
	return nil
}

// quoteIdentifier wraps an identifier in backticks, doubling any embedded
// backticks, the MySQL equivalent of double-quote identifier quoting.
func quoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// Verify Manager implements the DatabaseManager interface at compile time
var _ myconn.DatabaseManager = (*Manager)(nil)
