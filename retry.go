package peerseek

import (
	"context"
	"fmt"
	"time"
)

// RetryWithBackoff executes a function with exponential backoff retry
// logic. It respects context cancellation and distinguishes between
// temporary and fatal errors.
//
// Parameters:
//   - ctx: Context for cancellation and timeout control
//   - maxRetries: Maximum number of retry attempts (0 = no retries)
//   - initialBackoff: Initial delay between retries (doubles each attempt)
//   - maxBackoff: Cap on the per-attempt delay
//   - fn: Function to execute, should return nil on success
//
// Errors for which IsTemporary reports false cause immediate return
// without further retries; this is how a seed that actively refuses is
// given up on before its retry budget is spent.
//
// Example:
//
//	err := RetryWithBackoff(ctx, 2, 250*time.Millisecond, time.Second, func() error {
//	    return stack.Dial(ctx, info)
//	})
func RetryWithBackoff(ctx context.Context, maxRetries int, initialBackoff, maxBackoff time.Duration, fn func() error) error {
	attempt := 0
	backoff := initialBackoff

	for {
		err := fn()
		if err == nil {
			if attempt > 0 {
				Debug("Retry succeeded after %d attempts", attempt)
			}
			return nil
		}

		attempt++

		if !IsTemporary(err) {
			Debug("Encountered fatal error (not retrying): %v", err)
			return err
		}
		if attempt > maxRetries {
			if maxRetries > 0 {
				return fmt.Errorf("max retries (%d) exceeded: %w", maxRetries, err)
			}
			return err
		}

		Debug("Attempt %d failed: %v (waiting %v before retry)", attempt, err, backoff)
		select {
		case <-ctx.Done():
			return fmt.Errorf("retry cancelled during backoff after %d attempts: %w", attempt, ctx.Err())
		case <-time.After(backoff):
		}

		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
}
