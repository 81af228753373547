// Package peerseek orchestrates a single-shot peer/content lookup over
// a libp2p overlay: bootstrap connectivity from a list of seed peers,
// run one deadline-bounded DHT query for a target identifier, and
// classify the outcome.
//
// The package separates orchestration from networking. Bootstrap and
// RunLookup drive the run against the narrow NetworkStack interface;
// Libp2pStack is the production implementation backed by a libp2p host
// and a Kademlia DHT. Tests substitute a scripted stack, so the timing
// and classification semantics are exercised without sockets.
package peerseek

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// RunLookup performs exactly one distributed query for the target,
// bounded by Config.LookupTimeout from the moment of invocation.
//
// The stack call races against two timers: its own context deadline
// (the normal path — a cooperating stack resolves or reports
// DeadlineExceeded at the deadline) and a defensive outer timer at
// deadline+Config.GraceMargin. If the stack has not honored
// cancellation by the time the outer timer fires, the call is abandoned
// on its goroutine and the run reports a timeout regardless; the
// in-flight context is cancelled either way so a merely slow stack can
// release its resources.
//
// Exactly one terminal Result is produced per invocation: whichever
// select branch wins is the outcome, and the losing branch's value is
// never observed.
//
// Retries are deliberately absent here. Querying multiple routing-table
// peers is internal to the DHT algorithm; at this layer a second
// attempt would only blur the deadline semantics.
func RunLookup(ctx context.Context, stack NetworkStack, target Target, cfg Config) Result {
	if stack == nil {
		return errorResult(target, fmt.Errorf("nil network stack: %w", ErrInvalidArgument), 0)
	}
	if err := cfg.Validate(); err != nil {
		return errorResult(target, err, 0)
	}

	start := time.Now()
	lookupCtx, cancel := context.WithTimeout(ctx, cfg.LookupTimeout)
	defer cancel()

	type reply struct {
		providers []Provider
		err       error
	}
	replies := make(chan reply, 1)
	go func() {
		providers, err := stack.Lookup(lookupCtx, target)
		replies <- reply{providers: providers, err: err}
	}()

	grace := time.NewTimer(cfg.LookupTimeout + cfg.GraceMargin)
	defer grace.Stop()

	var res Result
	select {
	case r := <-replies:
		res = classifyLookup(target, r.providers, r.err, time.Since(start))

	case <-grace.C:
		// The stack ignored its deadline. Cut it loose.
		cancel()
		Warning("Lookup for %s unresolved at deadline+grace, forcing timeout", target)
		res = Result{
			Target:  target,
			Outcome: OutcomeTimedOut,
			Err:     ErrLookupTimeout,
			Elapsed: time.Since(start),
		}

	case <-ctx.Done():
		// External interrupt: abort the in-flight query.
		cancel()
		res = errorResult(target, fmt.Errorf("lookup aborted: %w", ctx.Err()), time.Since(start))
	}

	if cfg.Metrics != nil {
		cfg.Metrics.RecordLookupLatency(res.Elapsed)
		cfg.Metrics.IncrementOutcome(res.Outcome.String())
	}
	return res
}

// classifyLookup translates the stack's resolution into the result
// taxonomy. An empty provider set without an error is treated as
// not-found even though the adapter contract promises ErrNotFound for
// that case.
func classifyLookup(target Target, providers []Provider, err error, elapsed time.Duration) Result {
	switch {
	case err == nil && len(providers) > 0:
		return Result{Target: target, Outcome: OutcomeFound, Providers: providers, Elapsed: elapsed}

	case err == nil || errors.Is(err, ErrNotFound):
		return Result{Target: target, Outcome: OutcomeNotFound, Err: ErrNotFound, Elapsed: elapsed}

	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, ErrLookupTimeout):
		return Result{
			Target:  target,
			Outcome: OutcomeTimedOut,
			Err:     fmt.Errorf("%v: %w", err, ErrLookupTimeout),
			Elapsed: elapsed,
		}

	default:
		return errorResult(target, NewStackError("lookup", err), elapsed)
	}
}

func errorResult(target Target, err error, elapsed time.Duration) Result {
	return Result{Target: target, Outcome: OutcomeStackError, Err: err, Elapsed: elapsed}
}
