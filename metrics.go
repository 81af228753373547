package peerseek

import (
	"sync"
	"sync/atomic"
	"time"
)

// MetricsCollector defines the interface for collecting run metrics.
// This interface allows applications embedding the package to plug in
// custom metrics implementations (e.g. Prometheus, StatsD, logging) for
// production monitoring.
//
// All methods are safe for concurrent use and should be non-blocking.
type MetricsCollector interface {
	// IncrementDialAttempt counts a started seed dial.
	IncrementDialAttempt()

	// IncrementDialSuccess counts a completed seed dial, with its latency.
	IncrementDialSuccess(elapsed time.Duration)

	// IncrementDialFailure counts a failed seed dial.
	IncrementDialFailure()

	// RecordBootstrapLatency records how long the bootstrap phase took to
	// reach readiness (or exhaustion).
	RecordBootstrapLatency(elapsed time.Duration)

	// RecordLookupLatency records how long the lookup phase took to reach
	// its terminal result.
	RecordLookupLatency(elapsed time.Duration)

	// IncrementOutcome counts a terminal run outcome by name
	// ("found", "not-found", "timed-out", "stack-error").
	IncrementOutcome(outcome string)
}

// InMemoryMetrics provides a simple in-memory implementation of
// MetricsCollector. Suitable for tests and for applications that want
// basic counters without external dependencies.
//
// All operations are thread-safe using atomic operations and minimal
// locking.
type InMemoryMetrics struct {
	dialAttempts  uint64
	dialSuccesses uint64
	dialFailures  uint64

	latencyMu        sync.Mutex
	dialLatencyTotal time.Duration
	bootstrapLatency time.Duration
	lookupLatency    time.Duration

	outcomesMu sync.RWMutex
	outcomes   map[string]uint64
}

// NewInMemoryMetrics creates a new in-memory metrics collector.
func NewInMemoryMetrics() *InMemoryMetrics {
	return &InMemoryMetrics{outcomes: make(map[string]uint64)}
}

func (m *InMemoryMetrics) IncrementDialAttempt() {
	atomic.AddUint64(&m.dialAttempts, 1)
}

func (m *InMemoryMetrics) IncrementDialSuccess(elapsed time.Duration) {
	atomic.AddUint64(&m.dialSuccesses, 1)
	m.latencyMu.Lock()
	m.dialLatencyTotal += elapsed
	m.latencyMu.Unlock()
}

func (m *InMemoryMetrics) IncrementDialFailure() {
	atomic.AddUint64(&m.dialFailures, 1)
}

func (m *InMemoryMetrics) RecordBootstrapLatency(elapsed time.Duration) {
	m.latencyMu.Lock()
	m.bootstrapLatency = elapsed
	m.latencyMu.Unlock()
}

func (m *InMemoryMetrics) RecordLookupLatency(elapsed time.Duration) {
	m.latencyMu.Lock()
	m.lookupLatency = elapsed
	m.latencyMu.Unlock()
}

func (m *InMemoryMetrics) IncrementOutcome(outcome string) {
	m.outcomesMu.Lock()
	m.outcomes[outcome]++
	m.outcomesMu.Unlock()
}

// DialAttempts returns the number of started seed dials.
func (m *InMemoryMetrics) DialAttempts() uint64 {
	return atomic.LoadUint64(&m.dialAttempts)
}

// DialSuccesses returns the number of seed dials that connected.
func (m *InMemoryMetrics) DialSuccesses() uint64 {
	return atomic.LoadUint64(&m.dialSuccesses)
}

// DialFailures returns the number of seed dials that failed.
func (m *InMemoryMetrics) DialFailures() uint64 {
	return atomic.LoadUint64(&m.dialFailures)
}

// BootstrapLatency returns the recorded bootstrap phase latency.
func (m *InMemoryMetrics) BootstrapLatency() time.Duration {
	m.latencyMu.Lock()
	defer m.latencyMu.Unlock()
	return m.bootstrapLatency
}

// LookupLatency returns the recorded lookup phase latency.
func (m *InMemoryMetrics) LookupLatency() time.Duration {
	m.latencyMu.Lock()
	defer m.latencyMu.Unlock()
	return m.lookupLatency
}

// Outcome returns how many runs terminated with the named outcome.
func (m *InMemoryMetrics) Outcome(outcome string) uint64 {
	m.outcomesMu.RLock()
	defer m.outcomesMu.RUnlock()
	return m.outcomes[outcome]
}
