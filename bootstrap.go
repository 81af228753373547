package peerseek

import (
	"context"
	"fmt"
	"time"
)

// DialState is the lifecycle of a single seed dial. Each attempt
// transitions exactly once, from Pending to either Connected or Failed.
type DialState int

const (
	DialPending DialState = iota
	DialConnected
	DialFailed
)

func (s DialState) String() string {
	switch s {
	case DialPending:
		return "pending"
	case DialConnected:
		return "connected"
	case DialFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// DialAttempt is the outcome record for one seed peer. Written by
// exactly one dial goroutine, then immutable.
type DialAttempt struct {
	Seed    Seed
	State   DialState
	Err     error // nil unless State == DialFailed
	Elapsed time.Duration
}

// BootstrapReport summarizes the bootstrap phase. Completions holds the
// attempts in the order they finished (the coordinator's append-only
// completion log); seeds still in flight when readiness was reached are
// not in it — they are cancelled and drain in the background.
type BootstrapReport struct {
	Seeds       int
	Connected   int
	Failed      int
	Completions []DialAttempt
	Elapsed     time.Duration
}

// Summary renders a one-line digest for logging.
func (r *BootstrapReport) Summary() string {
	return fmt.Sprintf("bootstrap: %d/%d connected, %d failed, %d still dialing, took %v",
		r.Connected, r.Seeds, r.Failed, r.Seeds-len(r.Completions), r.Elapsed.Round(time.Millisecond))
}

// Bootstrap establishes overlay connectivity from a cold start.
//
// Every seed is dialed concurrently, each on its own goroutine with its
// own timeout, so one slow or unreachable seed never delays the others.
// The call resolves as soon as Config.MinConnected dials succeed
// (readiness: one working entry point is enough for overlay
// participation) or once every dial has failed (exhaustion, returned as
// ErrBootstrapExhausted — the caller must not attempt a lookup against
// zero connections).
//
// On readiness the remaining dials are cancelled; they complete as
// Failed on their own goroutines and are logged, never silently
// dropped. Cancelling ctx aborts the whole phase the same way.
//
// The first successful seed is whichever dial wins the race; callers
// must not assume dial order.
func Bootstrap(ctx context.Context, stack NetworkStack, seeds []Seed, cfg Config) (*BootstrapReport, error) {
	if stack == nil {
		return nil, fmt.Errorf("nil network stack: %w", ErrInvalidArgument)
	}
	if len(seeds) == 0 {
		return nil, ErrNoSeeds
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.MinConnected > len(seeds) {
		return nil, fmt.Errorf("min connected %d exceeds seed count %d: %w",
			cfg.MinConnected, len(seeds), ErrInvalidArgument)
	}

	start := time.Now()
	dialCtx, cancelDials := context.WithCancel(ctx)

	// Buffered so no dial goroutine ever blocks on delivery, even after
	// the coordinator has returned.
	completions := make(chan DialAttempt, len(seeds))
	for _, seed := range seeds {
		go dialSeed(dialCtx, stack, seed, cfg, completions)
	}

	report := &BootstrapReport{Seeds: len(seeds)}
	finish := func() {
		report.Elapsed = time.Since(start)
		if cfg.Metrics != nil {
			cfg.Metrics.RecordBootstrapLatency(report.Elapsed)
		}
	}

	// Single synchronization point: all outcomes funnel through the
	// completion log before any readiness decision is made.
	for len(report.Completions) < len(seeds) {
		select {
		case attempt := <-completions:
			report.Completions = append(report.Completions, attempt)
			switch attempt.State {
			case DialConnected:
				report.Connected++
				if report.Connected >= cfg.MinConnected {
					cancelDials()
					go drainDials(completions, len(seeds)-len(report.Completions))
					finish()
					Info("Bootstrap ready via %s after %v", attempt.Seed, report.Elapsed.Round(time.Millisecond))
					return report, nil
				}
			case DialFailed:
				report.Failed++
			}

		case <-ctx.Done():
			cancelDials()
			go drainDials(completions, len(seeds)-len(report.Completions))
			finish()
			return report, fmt.Errorf("bootstrap aborted: %w", ctx.Err())
		}
	}

	cancelDials()
	finish()
	Warning("Bootstrap exhausted: all %d seed dials failed", len(seeds))
	return report, fmt.Errorf("%d seeds tried: %w", len(seeds), ErrBootstrapExhausted)
}

// dialSeed performs the dial for one seed and reports exactly one
// DialAttempt. With a retry budget configured, transient failures are
// retried with exponential backoff; refusals and cancellations are not.
func dialSeed(ctx context.Context, stack NetworkStack, seed Seed, cfg Config, out chan<- DialAttempt) {
	if cfg.Metrics != nil {
		cfg.Metrics.IncrementDialAttempt()
	}
	start := time.Now()

	dialOnce := func() error {
		attemptCtx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
		defer cancel()
		return stack.Dial(attemptCtx, seed.Info)
	}

	var err error
	if cfg.DialRetries > 0 {
		err = RetryWithBackoff(ctx, cfg.DialRetries, cfg.DialBackoff, cfg.DialTimeout, dialOnce)
	} else {
		err = dialOnce()
	}
	elapsed := time.Since(start)

	if err != nil {
		if cfg.Metrics != nil {
			cfg.Metrics.IncrementDialFailure()
		}
		Debug("Dial %s failed after %v: %v", seed, elapsed.Round(time.Millisecond), err)
		out <- DialAttempt{Seed: seed, State: DialFailed, Err: NewDialError(seed.Addr, err), Elapsed: elapsed}
		return
	}

	if cfg.Metrics != nil {
		cfg.Metrics.IncrementDialSuccess(elapsed)
	}
	Debug("Dial %s connected in %v", seed, elapsed.Round(time.Millisecond))
	out <- DialAttempt{Seed: seed, State: DialConnected, Elapsed: elapsed}
}

// drainDials consumes the completions of dials that were still in
// flight when the coordinator resolved, so cancelled attempts are
// observed (and logged by their own goroutines) rather than leaked.
func drainDials(completions <-chan DialAttempt, remaining int) {
	for i := 0; i < remaining; i++ {
		attempt := <-completions
		Debug("Straggler dial %s finished as %s", attempt.Seed, attempt.State)
	}
}
