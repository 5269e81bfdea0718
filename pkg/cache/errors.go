package cache

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable is returned when a remote cache backend cannot be reached.
var ErrUnavailable = errors.New("cache unavailable")

// transient marks an error worth retrying.
type transient struct{ err error }

func (t transient) Error() string { return t.err.Error() }
func (t transient) Unwrap() error { return t.err }

// Retryable marks err as transient so [RetryWithBackoff] tries again.
// Retryable(nil) is nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return transient{err}
}

// IsRetryable reports whether err, or anything it wraps, was marked with
// [Retryable].
func IsRetryable(err error) bool {
	var t transient
	return errors.As(err, &t)
}

// RetryWithBackoff calls fn until it succeeds, fails with an error not
// marked [Retryable], or has been called attempts times. The pause between
// calls starts at delay and doubles each time. Cancelling ctx during a
// pause returns ctx.Err().
func RetryWithBackoff(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	err := fn()
	for n := 1; n < attempts && IsRetryable(err); n++ {
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay *= 2
		err = fn()
	}
	return err
}
