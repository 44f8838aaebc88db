package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

// stubClassifier marks errors transient based on a predicate.
type stubClassifier struct {
	transient func(error) bool
}

func (s stubClassifier) IsTransient(err error) bool { return s.transient(err) }

// stubStrategy returns a fixed delay and attempt budget.
type stubStrategy struct {
	delay    time.Duration
	attempts int
}

func (s stubStrategy) NextDelay(int) time.Duration { return s.delay }
func (s stubStrategy) MaxAttempts() int            { return s.attempts }

var errTransient = errors.New("transient")
var errFatal = errors.New("fatal")

func transientOnly(err error) bool { return errors.Is(err, errTransient) }

func TestExecutor_SuccessFirstAttempt(t *testing.T) {
	e := NewExecutor(stubClassifier{transientOnly}, stubStrategy{0, 3})

	calls := 0
	err := e.Execute(context.Background(), func(context.Context) error {
		calls++
		return nil
	})

	if err != nil {
		t.Fatalf("Execute() = %v, want nil", err)
	}
	if calls != 1 {
		t.Errorf("operation called %d times, want 1", calls)
	}
}

func TestExecutor_FatalNotRetried(t *testing.T) {
	e := NewExecutor(stubClassifier{transientOnly}, stubStrategy{0, 3})

	calls := 0
	err := e.Execute(context.Background(), func(context.Context) error {
		calls++
		return errFatal
	})

	if !errors.Is(err, errFatal) {
		t.Fatalf("Execute() = %v, want errFatal", err)
	}
	if calls != 1 {
		t.Errorf("operation called %d times, want 1", calls)
	}
}

func TestExecutor_TransientRetriedUntilSuccess(t *testing.T) {
	e := NewExecutor(stubClassifier{transientOnly}, stubStrategy{time.Millisecond, 5})

	calls := 0
	err := e.Execute(context.Background(), func(context.Context) error {
		calls++
		if calls < 3 {
			return errTransient
		}
		return nil
	})

	if err != nil {
		t.Fatalf("Execute() = %v, want nil", err)
	}
	if calls != 3 {
		t.Errorf("operation called %d times, want 3", calls)
	}
}

func TestExecutor_AttemptsExhausted(t *testing.T) {
	e := NewExecutor(stubClassifier{transientOnly}, stubStrategy{time.Millisecond, 2})

	calls := 0
	err := e.Execute(context.Background(), func(context.Context) error {
		calls++
		return errTransient
	})

	if !errors.Is(err, errTransient) {
		t.Fatalf("Execute() = %v, want errTransient", err)
	}
	// 1 initial attempt + 2 retries
	if calls != 3 {
		t.Errorf("operation called %d times, want 3", calls)
	}
}

func TestExecutor_ContextCancellation(t *testing.T) {
	e := NewExecutor(stubClassifier{transientOnly}, stubStrategy{time.Hour, 3})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	err := e.Execute(ctx, func(context.Context) error {
		return errTransient
	})

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Execute() = %v, want context.Canceled", err)
	}
}

func TestExecutor_OnRetryCallback(t *testing.T) {
	var attempts []int
	e := NewExecutor(stubClassifier{transientOnly}, stubStrategy{time.Millisecond, 2}).
		WithOnRetry(func(attempt int, err error, delay time.Duration) {
			attempts = append(attempts, attempt)
		})

	_ = e.Execute(context.Background(), func(context.Context) error {
		return errTransient
	})

	if len(attempts) != 2 || attempts[0] != 0 || attempts[1] != 1 {
		t.Errorf("onRetry attempts = %v, want [0 1]", attempts)
	}
}

func TestExecutor_NilConfigurationPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for nil classifier")
		}
	}()
	NewExecutor(nil, stubStrategy{0, 1})
}
