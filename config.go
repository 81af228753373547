package peerseek

import (
	"fmt"
	"time"
)

// Default run parameters. The lookup deadline matches the original
// deployment's 5 second budget; the grace margin bounds how long the run
// may outlive a stack that ignores cancellation.
const (
	DefaultDialTimeout   = 3 * time.Second
	DefaultLookupTimeout = 5 * time.Second
	DefaultGraceMargin   = 500 * time.Millisecond
	DefaultMaxProviders  = 20
)

// Config carries every tunable of a single run. The zero value is not
// usable; start from DefaultConfig() and override fields as needed.
type Config struct {
	// DialTimeout bounds each individual seed peer dial. A slow or
	// unreachable seed costs at most this much, and only on its own
	// goroutine: siblings are unaffected.
	DialTimeout time.Duration

	// DialRetries is the per-seed retry budget for transient dial
	// failures. 0 (the default) means a single attempt per seed, which
	// keeps bootstrap latency equal to the fastest successful dial.
	DialRetries int

	// DialBackoff is the initial backoff between per-seed retry attempts.
	// Doubles per attempt, capped at the dial timeout. Ignored when
	// DialRetries is 0.
	DialBackoff time.Duration

	// MinConnected is how many seeds must connect before bootstrap
	// reports ready. Overlay participation needs only one working entry
	// point, so this defaults to 1; higher values only improve
	// routing-query fan-out.
	MinConnected int

	// LookupTimeout is the absolute time budget for the single distributed
	// query, measured from the moment the lookup is issued.
	LookupTimeout time.Duration

	// GraceMargin is added on top of LookupTimeout for the defensive
	// outer timer. If the stack has not honored cancellation by
	// LookupTimeout+GraceMargin the orchestrator abandons it and reports
	// a timeout anyway.
	GraceMargin time.Duration

	// MaxProviders caps how many provider records a content lookup
	// drains before returning.
	MaxProviders int

	// Metrics receives counters and latencies from both phases.
	// nil disables metrics collection.
	Metrics MetricsCollector
}

// DefaultConfig returns a Config populated with the default run
// parameters.
func DefaultConfig() Config {
	return Config{
		DialTimeout:   DefaultDialTimeout,
		DialRetries:   0,
		DialBackoff:   250 * time.Millisecond,
		MinConnected:  1,
		LookupTimeout: DefaultLookupTimeout,
		GraceMargin:   DefaultGraceMargin,
		MaxProviders:  DefaultMaxProviders,
	}
}

// Validate reports the first invalid field, or nil. Called by the run
// entry points before any network activity.
func (c Config) Validate() error {
	if c.DialTimeout <= 0 {
		return fmt.Errorf("dial timeout must be positive, got %v: %w", c.DialTimeout, ErrInvalidArgument)
	}
	if c.DialRetries < 0 {
		return fmt.Errorf("dial retries must not be negative, got %d: %w", c.DialRetries, ErrInvalidArgument)
	}
	if c.DialRetries > 0 && c.DialBackoff <= 0 {
		return fmt.Errorf("dial backoff must be positive when retries are enabled: %w", ErrInvalidArgument)
	}
	if c.MinConnected < 1 {
		return fmt.Errorf("min connected must be at least 1, got %d: %w", c.MinConnected, ErrInvalidArgument)
	}
	if c.LookupTimeout <= 0 {
		return fmt.Errorf("lookup timeout must be positive, got %v: %w", c.LookupTimeout, ErrInvalidArgument)
	}
	if c.GraceMargin < 0 {
		return fmt.Errorf("grace margin must not be negative, got %v: %w", c.GraceMargin, ErrInvalidArgument)
	}
	if c.MaxProviders < 1 {
		return fmt.Errorf("max providers must be at least 1, got %d: %w", c.MaxProviders, ErrInvalidArgument)
	}
	return nil
}
