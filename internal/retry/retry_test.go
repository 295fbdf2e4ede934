package retry

import (
	"errors"
	"fmt"
	"syscall"
	"testing"
	"time"
)

func TestRetry_SucceedsAfterBusy(t *testing.T) {
	calls := 0
	err := Retry(func() error {
		calls++
		if calls < 3 {
			return fmt.Errorf("lock held: %w", ErrBusy)
		}
		return nil
	}, 5, time.Millisecond)

	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestRetry_StopsOnPermanentError(t *testing.T) {
	permanent := errors.New("permission denied")
	calls := 0
	err := Retry(func() error {
		calls++
		return permanent
	}, 5, time.Millisecond)

	if !errors.Is(err, permanent) {
		t.Errorf("expected permanent error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call for non-retryable error, got %d", calls)
	}
}

func TestRetry_ExhaustsAttempts(t *testing.T) {
	calls := 0
	err := Retry(func() error {
		calls++
		return ErrBusy
	}, 3, time.Millisecond)

	if !errors.Is(err, ErrBusy) {
		t.Errorf("expected ErrBusy after exhausting attempts, got %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestRetry_ZeroAttemptsRunsOnce(t *testing.T) {
	calls := 0
	_ = Retry(func() error {
		calls++
		return ErrBusy
	}, 0, time.Millisecond)

	if calls != 1 {
		t.Errorf("expected maxAttempts=0 to be clamped to 1, got %d calls", calls)
	}
}

func TestIsRetryable(t *testing.T) {
	testCases := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{ErrBusy, true},
		{fmt.Errorf("wrapped: %w", ErrBusy), true},
		{syscall.EAGAIN, true},
		{fmt.Errorf("flock: %w", syscall.EBUSY), true},
		{syscall.ENOENT, false},
		{errors.New("boom"), false},
	}

	for _, tc := range testCases {
		if got := IsRetryable(tc.err); got != tc.want {
			t.Errorf("IsRetryable(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}
