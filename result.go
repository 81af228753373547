package peerseek

import (
	"fmt"
	"io"
	"time"
)

// Outcome classifies how a lookup run terminated.
type Outcome int

const (
	// OutcomeFound means the query resolved one or more providers
	// before the deadline.
	OutcomeFound Outcome = iota

	// OutcomeNotFound means the query completed and the network
	// definitively reports no providers. The query worked; the answer
	// is negative.
	OutcomeNotFound

	// OutcomeTimedOut means the deadline elapsed without resolution.
	OutcomeTimedOut

	// OutcomeStackError means the network stack reported a failure that
	// is neither a timeout nor a definitive not-found.
	OutcomeStackError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeFound:
		return "found"
	case OutcomeNotFound:
		return "not-found"
	case OutcomeTimedOut:
		return "timed-out"
	case OutcomeStackError:
		return "stack-error"
	default:
		return "unknown"
	}
}

// Result is the single terminal outcome of a lookup run. Produced
// exactly once by RunLookup, consumed exactly once by the reporter.
type Result struct {
	Target    Target
	Outcome   Outcome
	Providers []Provider // populated only for OutcomeFound
	Err       error      // classified error; ErrNotFound for OutcomeNotFound, nil for OutcomeFound
	Elapsed   time.Duration
}

// Render writes the caller-visible report: the provider set, an
// explicit absence notice, or a single unambiguous classified error
// line.
func (r Result) Render(w io.Writer) {
	elapsed := r.Elapsed.Round(time.Millisecond)
	switch r.Outcome {
	case OutcomeFound:
		fmt.Fprintf(w, "found %d provider(s) for %s in %v:\n", len(r.Providers), r.Target, elapsed)
		for _, p := range r.Providers {
			fmt.Fprintf(w, "  %s\n", p)
		}

	case OutcomeNotFound:
		fmt.Fprintf(w, "no providers for %s: the network reports none (query completed in %v)\n",
			r.Target, elapsed)

	case OutcomeTimedOut:
		fmt.Fprintf(w, "lookup timed out: no answer for %s within %v\n", r.Target, elapsed)

	case OutcomeStackError:
		fmt.Fprintf(w, "lookup failed for %s: %v\n", r.Target, r.Err)
	}
}

// ExitCode maps the outcome to process exit status. A definitive
// negative answer is still a successful query.
func (r Result) ExitCode() int {
	switch r.Outcome {
	case OutcomeFound, OutcomeNotFound:
		return 0
	default:
		return 1
	}
}
