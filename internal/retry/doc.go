// Package retry provides automatic retry logic with exponential backoff
// for transient MySQL connection failures.
//
// The package supports pluggable error classification and backoff
// strategies, so it is usable for retry scenarios beyond connections.
//
// # Example Usage
//
//	classifier := retry.NewMySQLErrorClassifier()
//	strategy := retry.NewExponentialBackoff(3)
//	executor := retry.NewExecutor(classifier, strategy)
//
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    return connectToServer(ctx)
//	})
//
// # Error Classification
//
// The ErrorClassifier interface decides which errors are transient
// (retryable) versus fatal. MySQLErrorClassifier recognises transient
// server error numbers (lock waits, deadlocks, shutdown in progress,
// connection limits) plus network-level failures.
//
// # Thread Safety
//
// Executor instances are safe for concurrent use. Use WithOnRetry() to
// create independent configurations per goroutine.
package retry
