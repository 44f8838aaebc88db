// Package manager provides database management operations for MySQL.
//
// The manager package offers high-level operations for managing MySQL
// databases (schemas):
//   - Checking database existence
//   - Creating new databases
//   - Dropping existing databases
//   - Terminating active sessions
//
// All operations quote SQL identifiers with backticks (doubling embedded
// backticks), preventing SQL injection attacks while handling edge cases
// like database names with spaces, quotes, or special characters.
//
// # Example Usage
//
//	mgr := manager.New()
//
//	// Check if database exists
//	exists, err := mgr.Exists(ctx, conn, "mydb")
//
//	// Create a new database
//	err = mgr.Create(ctx, conn, "mydb")
//
//	// Drop a database (terminate sessions first)
//	err = mgr.TerminateConnections(ctx, conn, "mydb")
//	err = mgr.Drop(ctx, conn, "mydb")
//
// # Thread Safety
//
// Manager is stateless; thread safety depends on the injected DBConnection.
package manager
