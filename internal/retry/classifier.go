package retry

import (
	"database/sql/driver"
	"errors"
	"io"
	"net"
	"strings"
	"syscall"

	"github.com/go-sql-driver/mysql"
)

// MySQL server error numbers for transient conditions.
// See: https://dev.mysql.com/doc/mysql-errors/8.0/en/server-error-reference.html
const (
	erConCountError        = 1040 // Too many connections
	erOutOfResources       = 1041 // Out of memory; check if mysqld has enough memory
	erServerShutdown       = 1053 // Server shutdown in progress
	erAbortingConnection   = 1152 // Aborted connection
	erNetPacketsOutOfOrder = 1156 // Got packets out of order
	erNetReadErrorFromPipe = 1158 // Got a read error from the connection pipe
	erNetReadTimeout       = 1159 // Got timeout reading communication packets
	erNetErrorOnWrite      = 1160 // Got an error writing communication packets
	erNetWriteTimeout      = 1161 // Got timeout writing communication packets
	erLockWaitTimeout      = 1205 // Lock wait timeout exceeded
	erLockDeadlock         = 1213 // Deadlock found when trying to get lock
	erTooManyUserConns     = 1226 // User has exceeded the max_user_connections resource
	erQueryInterrupted     = 1317 // Query execution was interrupted
)

// MySQLErrorClassifier implements ErrorClassifier for MySQL-specific errors.
type MySQLErrorClassifier struct{}

// NewMySQLErrorClassifier creates a new MySQL error classifier.
func NewMySQLErrorClassifier() *MySQLErrorClassifier {
	return &MySQLErrorClassifier{}
}

// IsTransient determines if an error is temporary and retryable.
func (c *MySQLErrorClassifier) IsTransient(err error) bool {
	if err == nil {
		return false
	}

	// Server-reported errors carry a numeric code
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return c.isTransientServerError(myErr)
	}

	// Driver-level connection loss
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, mysql.ErrInvalidConn) {
		return true
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}

	if c.isNetworkError(err) {
		return true
	}

	return c.isConnectionError(err)
}

// isTransientServerError checks MySQL server error numbers for transient conditions.
func (c *MySQLErrorClassifier) isTransientServerError(myErr *mysql.MySQLError) bool {
	switch myErr.Number {
	case erConCountError,
		erOutOfResources,
		erServerShutdown,
		erAbortingConnection,
		erNetPacketsOutOfOrder,
		erNetReadErrorFromPipe,
		erNetReadTimeout,
		erNetErrorOnWrite,
		erNetWriteTimeout,
		erLockWaitTimeout,
		erLockDeadlock,
		erTooManyUserConns,
		erQueryInterrupted:
		return true
	}

	// SQLSTATE class 08 covers connection exceptions regardless of the
	// vendor error number.
	return strings.HasPrefix(sqlState(myErr), "08")
}

// sqlState extracts the five-character SQLSTATE, if the server sent one.
func sqlState(myErr *mysql.MySQLError) string {
	if myErr.SQLState == [5]byte{} {
		return ""
	}
	return string(myErr.SQLState[:])
}

// isNetworkError checks for network-level errors.
func (c *MySQLErrorClassifier) isNetworkError(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		// Temporary DNS failures are retryable
		return dnsErr.Temporary() || dnsErr.Timeout()
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if opErr.Temporary() || opErr.Timeout() {
			return true
		}

		if opErr.Err != nil {
			// Connection refused (server not ready)
			if errors.Is(opErr.Err, syscall.ECONNREFUSED) {
				return true
			}
			// Connection reset by peer
			if errors.Is(opErr.Err, syscall.ECONNRESET) {
				return true
			}
			// Network unreachable
			if errors.Is(opErr.Err, syscall.ENETUNREACH) {
				return true
			}
			// Host unreachable
			if errors.Is(opErr.Err, syscall.EHOSTUNREACH) {
				return true
			}
		}
	}

	return false
}

// isConnectionError checks for connection-related errors by message.
func (c *MySQLErrorClassifier) isConnectionError(err error) bool {
	errMsg := strings.ToLower(err.Error())

	transientPatterns := []string{
		"connection refused",
		"connection reset",
		"connection timeout",
		"no such host",
		"network is unreachable",
		"i/o timeout",
		"broken pipe",
		"too many connections",
		"invalid connection",
		"bad connection",
		"server shutdown",
		"unexpected eof",
		"context deadline exceeded", // May be transient if external timeout
	}

	for _, pattern := range transientPatterns {
		if strings.Contains(errMsg, pattern) {
			return true
		}
	}

	return false
}
