package peerseek

import (
	"context"
	"strings"

	"github.com/libp2p/go-libp2p/core/peer"
	ma "github.com/multiformats/go-multiaddr"
)

// NetworkStack is the narrow capability set the orchestration core
// consumes from the overlay network library. Transport security, stream
// multiplexing, NAT traversal and the Kademlia routing algorithm all
// live behind it; the core only ever dials and looks up.
//
// Both methods honor context cancellation. Lookup translates "the query
// completed and the network knows of no providers" into ErrNotFound so
// the orchestrator sees a single error taxonomy.
type NetworkStack interface {
	// Dial establishes a secured, multiplexed connection to the given
	// peer. Blocks until the handshake completes, fails, or ctx is done.
	Dial(ctx context.Context, info peer.AddrInfo) error

	// Lookup performs one distributed query for the target and returns
	// the providers found before ctx expires. A completed query with an
	// empty answer returns ErrNotFound, never (nil, nil).
	Lookup(ctx context.Context, target Target) ([]Provider, error)

	// Close releases the stack's connections and resources. Subsequent
	// calls on the stack return ErrStackClosed.
	Close() error
}

// Provider is one peer the network reports as holding the target: its
// identity plus every address it is currently reachable at.
type Provider struct {
	ID    peer.ID
	Addrs []ma.Multiaddr
}

func (p Provider) String() string {
	if len(p.Addrs) == 0 {
		return p.ID.String()
	}
	addrs := make([]string, len(p.Addrs))
	for i, a := range p.Addrs {
		addrs[i] = a.String()
	}
	return p.ID.String() + " [" + strings.Join(addrs, " ") + "]"
}

// StackConfig tunes the real stack implementation. The two mode flags
// exist because the original deployment participated as a full
// (non-ephemeral) DHT member and kept local-network addresses the
// routing layer would otherwise discard; both are topology/testing
// policy, so they are adapter configuration rather than orchestration
// behavior.
type StackConfig struct {
	// ClientMode joins the DHT as an ephemeral client instead of a full
	// server-mode participant. Off by default.
	ClientMode bool

	// KeepLocalAddrs retains private/LAN addresses in the routing table.
	// On by default; needed for lookups inside a LAN-only test overlay.
	KeepLocalAddrs bool

	// ListenAddrs are the multiaddrs the local host listens on. Empty
	// means the host does not accept inbound connections, which is
	// sufficient for a single-shot query run.
	ListenAddrs []string

	// UserAgent overrides the identify user agent. Empty uses the
	// package default.
	UserAgent string
}

// DefaultStackConfig mirrors the original deployment's topology policy:
// server mode, local addresses kept.
func DefaultStackConfig() StackConfig {
	return StackConfig{
		ClientMode:     false,
		KeepLocalAddrs: true,
		UserAgent:      UserAgent,
	}
}
