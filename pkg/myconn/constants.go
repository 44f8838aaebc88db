package myconn

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // Operation completed successfully
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid configuration or parameters
	ExitConnectionError = 11 // Failed to connect to the server
	ExitExecutionFailed = 12 // SQL execution failed
)

const (
	// DefaultHost is used when no host is configured.
	DefaultHost = "localhost"

	// DefaultPort is the standard MySQL TCP port.
	DefaultPort = 3306

	// DefaultConnectTimeout bounds the dial and handshake.
	DefaultConnectTimeout = 60 * time.Second

	// DefaultReadWriteTimeout bounds individual socket reads and writes.
	// Generous on purpose: long-running statements are normal in
	// maintenance sessions.
	DefaultReadWriteTimeout = 30 * time.Minute

	// DefaultRetryInitialDelay is the default initial delay before the first retry attempt.
	DefaultRetryInitialDelay = 100 * time.Millisecond

	// DefaultRetryMaxDelay is the default maximum delay between retry attempts.
	DefaultRetryMaxDelay = 1 * time.Minute

	// DefaultRetryMaxAttempts is the default maximum number of retry attempts.
	DefaultRetryMaxAttempts = 3

	// DefaultMaxOpenConns limits concurrent driver connections held by one
	// Connection. The wrapper models a single logical session, so the
	// underlying pool stays small.
	DefaultMaxOpenConns = 5

	// DefaultMaxIdleConns keeps at most one idle driver connection around.
	DefaultMaxIdleConns = 1

	// DefaultConnMaxIdleTime recycles idle driver connections that outlive
	// typical server-side wait_timeout settings.
	DefaultConnMaxIdleTime = 30 * time.Minute

	// GoogleCloudSQLNetwork is the driver network name under which the
	// Cloud SQL connector's dial function is registered.
	GoogleCloudSQLNetwork = "cloudsql-mysql"
)
