package retry

import (
	"errors"
	"syscall"
	"time"
)

// ErrBusy marks a failure caused by another holder of a shared resource,
// such as the catalog file lock.
var ErrBusy = errors.New("resource busy")

// Retry executes fn with exponential backoff until it succeeds or maxAttempts is reached.
// The backoff doubles after each failed attempt starting from initialBackoff.
// Errors that are not retryable are returned immediately.
func Retry(fn func() error, maxAttempts int, initialBackoff time.Duration) error {
	if maxAttempts <= 0 {
		maxAttempts = 1
	}

	var lastErr error
	backoff := initialBackoff

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		if !IsRetryable(lastErr) {
			return lastErr
		}

		// Don't sleep after the last attempt
		if attempt < maxAttempts {
			time.Sleep(backoff)
			backoff *= 2
		}
	}

	return lastErr
}

// IsRetryable returns true if the error is a transient contention error.
// This covers ErrBusy and the EAGAIN/EBUSY/EINTR errnos returned by file
// locking and interrupted system calls.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrBusy) {
		return true
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.EAGAIN, syscall.EBUSY, syscall.EINTR:
			return true
		}
	}

	return false
}
