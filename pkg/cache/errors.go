package cache

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for cache backends.
var (
	// ErrNotFound reports a key that does not exist in the backend.
	ErrNotFound = errors.New("not found")

	// ErrNetwork reports a backend transport failure (redis timeouts,
	// connection resets).
	ErrNetwork = errors.New("network error")
)

// RetryableError marks an error as transient: RetryWithBackoff retries it,
// everything else aborts immediately. Backends wrap connection-level failures
// but never semantic ones, so a bad key or corrupt entry is not retried.
type RetryableError struct{ Err error }

// Retryable wraps err as transient. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }

func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err carries a RetryableError anywhere in its
// chain.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// RetryWithBackoff runs fn until it succeeds, fails with a non-retryable
// error, or exhausts three attempts. The wait doubles after each failure,
// starting at one second, and the context cancels the wait.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	const maxAttempts = 3
	backoff := time.Second

	var lastErr error
	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		if !IsRetryable(err) {
			return err
		}
		lastErr = err
		if attempt == maxAttempts {
			return lastErr
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
			backoff *= 2
		}
	}
}
