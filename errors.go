package peerseek

import (
	"context"
	"errors"
	"fmt"
)

// Standard peerseek error types
//
// These errors follow Go 1.13+ error wrapping conventions and can be
// checked using errors.Is() and errors.As(). Every terminal failure the
// tool reports maps to exactly one of the sentinel classes below.
//
// Design rationale:
// - Use sentinel errors for the fixed failure taxonomy the CLI reports on
// - Use error types (DialError, StackError) where per-occurrence context
//   (which seed, which cause) must survive wrapping
// - All errors are safe for wrapping with fmt.Errorf("%w", err)

// Sentinel errors for the run-level failure taxonomy
var (
	// ErrNoSeeds indicates the bootnode list was missing or empty.
	// This is a configuration error: it is reported before any network
	// activity is attempted.
	ErrNoSeeds = errors.New("peerseek: no seed peers configured")

	// ErrBadSeed indicates a bootnode entry could not be parsed as a
	// multiaddr carrying a /p2p/<peer-id> component. Configuration error,
	// reported before any network activity.
	ErrBadSeed = errors.New("peerseek: invalid seed peer address")

	// ErrBadTarget indicates the target identifier is neither a valid
	// peer ID nor a valid CID. Configuration error, reported before any
	// network activity.
	ErrBadTarget = errors.New("peerseek: invalid target identifier")

	// ErrBootstrapExhausted indicates every configured seed peer failed to
	// dial. The run must not attempt a lookup with zero connections; this
	// error is terminal for the run.
	ErrBootstrapExhausted = errors.New("peerseek: all seed peer dials failed")

	// ErrLookupTimeout indicates the lookup deadline elapsed before the
	// network stack resolved. Distinguishable from other stack failures so
	// callers can retry with a longer deadline.
	ErrLookupTimeout = errors.New("peerseek: lookup deadline exceeded")

	// ErrNotFound indicates the query completed and the network
	// definitively knows no providers for the target. This is a negative
	// answer, not a failure: the process still exits successfully.
	ErrNotFound = errors.New("peerseek: no providers found")

	// ErrStackClosed indicates an operation was attempted on a network
	// stack that has already been closed.
	ErrStackClosed = errors.New("peerseek: network stack is closed")

	// ErrInvalidArgument indicates a nil or invalid argument was passed to
	// a public API function. All public entry points validate their
	// parameters and return this error for nil values.
	ErrInvalidArgument = errors.New("peerseek: invalid argument (nil or empty value)")
)

// DialError records the failure of a single seed peer dial attempt.
// Dial errors are absorbed by the bootstrap coordinator and only escalate,
// collectively, as ErrBootstrapExhausted when every seed fails.
type DialError struct {
	Seed string // The seed address as supplied on the command line
	Err  error  // Underlying transport/handshake error
}

func (e *DialError) Error() string {
	return fmt.Sprintf("peerseek: dial %s failed: %v", e.Seed, e.Err)
}

func (e *DialError) Unwrap() error {
	return e.Err
}

// Temporary reports whether the dial failure is worth retrying. Context
// cancellation and deadline expiry are not: the attempt's time budget is
// spent either way.
func (e *DialError) Temporary() bool {
	if errors.Is(e.Err, context.Canceled) || errors.Is(e.Err, context.DeadlineExceeded) {
		return false
	}
	return true
}

// NewDialError wraps a transport error with the seed address it belongs to.
func NewDialError(seed string, err error) error {
	return &DialError{Seed: seed, Err: err}
}

// StackError represents any adapter-reported failure that is not a
// timeout or a definitive not-found: malformed key at the routing layer,
// no route, disconnected mid-query. Always terminal for the run.
type StackError struct {
	Operation string // What the stack was doing (e.g. "lookup", "dial")
	Err       error  // Underlying cause, surfaced verbatim to the user
}

func (e *StackError) Error() string {
	return fmt.Sprintf("peerseek: network stack %s failed: %v", e.Operation, e.Err)
}

func (e *StackError) Unwrap() error {
	return e.Err
}

// NewStackError wraps an adapter failure with the operation that produced it.
func NewStackError(operation string, err error) error {
	return &StackError{Operation: operation, Err: err}
}

// IsConfigError reports whether the error belongs to the configuration
// class: failures detected before any network activity occurs.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrNoSeeds) ||
		errors.Is(err, ErrBadSeed) ||
		errors.Is(err, ErrBadTarget) ||
		errors.Is(err, ErrInvalidArgument)
}

// IsTemporary returns true if the error is transient and the operation can
// be retried. Used by the dial retry path to decide between backing off
// and giving up on a seed early.
func IsTemporary(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	type temporary interface {
		Temporary() bool
	}
	var te temporary
	if errors.As(err, &te) {
		return te.Temporary()
	}

	// No Temporary() method: assume transient and let the attempt's time
	// budget bound the retries.
	return true
}

// IsFatal returns true if the error terminates the run regardless of how
// much time budget remains.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	return IsConfigError(err) ||
		errors.Is(err, ErrBootstrapExhausted) ||
		errors.Is(err, ErrStackClosed)
}
