package peerseek

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

// TestRetrySucceedsFirstAttempt verifies no backoff is paid when the
// first attempt succeeds.
func TestRetrySucceedsFirstAttempt(t *testing.T) {
	calls := 0
	start := time.Now()
	err := RetryWithBackoff(context.Background(), 3, 100*time.Millisecond, time.Second, func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Errorf("RetryWithBackoff() error = %v, want nil", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if time.Since(start) > 50*time.Millisecond {
		t.Errorf("success path took %v, should not back off", time.Since(start))
	}
}

// TestRetryRecoversTransientFailure verifies transient failures are
// retried until success within the budget.
func TestRetryRecoversTransientFailure(t *testing.T) {
	calls := 0
	err := RetryWithBackoff(context.Background(), 3, time.Millisecond, 10*time.Millisecond, func() error {
		calls++
		if calls < 3 {
			return errors.New("temporarily unreachable")
		}
		return nil
	})
	if err != nil {
		t.Errorf("RetryWithBackoff() error = %v, want nil", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

// TestRetryBudgetExceeded verifies the last error is preserved when the
// budget runs out.
func TestRetryBudgetExceeded(t *testing.T) {
	cause := errors.New("still down")
	calls := 0
	err := RetryWithBackoff(context.Background(), 2, time.Millisecond, 10*time.Millisecond, func() error {
		calls++
		return cause
	})
	if !errors.Is(err, cause) {
		t.Errorf("RetryWithBackoff() error = %v, want wrapped %v", err, cause)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3 (initial + 2 retries)", calls)
	}
	if !strings.Contains(err.Error(), "max retries") {
		t.Errorf("error %q should mention the exhausted budget", err)
	}
}

// TestRetryFatalErrorShortCircuits verifies non-temporary errors are not
// retried.
func TestRetryFatalErrorShortCircuits(t *testing.T) {
	calls := 0
	fatal := fmt.Errorf("wrapped: %w", context.Canceled)
	err := RetryWithBackoff(context.Background(), 5, time.Millisecond, 10*time.Millisecond, func() error {
		calls++
		return fatal
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("RetryWithBackoff() error = %v, want the fatal error back", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (fatal errors are not retried)", calls)
	}
}

// TestRetryCancelledDuringBackoff verifies context cancellation is
// honored while waiting between attempts.
func TestRetryCancelledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	err := RetryWithBackoff(ctx, 3, 10*time.Second, 10*time.Second, func() error {
		return errors.New("transient")
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("RetryWithBackoff() error = %v, want context.Canceled", err)
	}
	if time.Since(start) > time.Second {
		t.Errorf("cancelled retry took %v, should abort the backoff wait", time.Since(start))
	}
}

// TestRetryZeroBudgetSingleAttempt verifies maxRetries=0 means exactly
// one attempt with the original error returned untouched.
func TestRetryZeroBudgetSingleAttempt(t *testing.T) {
	cause := errors.New("refused")
	calls := 0
	err := RetryWithBackoff(context.Background(), 0, time.Millisecond, time.Millisecond, func() error {
		calls++
		return cause
	})
	if !errors.Is(err, cause) {
		t.Errorf("RetryWithBackoff() error = %v, want %v", err, cause)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
