package peerseek

import (
	"fmt"

	"github.com/ipfs/go-cid"
	"github.com/libp2p/go-libp2p/core/peer"
	mh "github.com/multiformats/go-multihash"
)

// TargetKind distinguishes what the lookup resolves: the current
// addresses of a specific peer, or the providers of a piece of content.
type TargetKind int

const (
	// TargetPeer routes the query through the DHT's peer routing
	// (FindPeer): the answer is the target peer's own address set.
	TargetPeer TargetKind = iota

	// TargetContent routes the query through provider routing
	// (FindProviders): the answer is the set of peers announcing the
	// content.
	TargetContent
)

func (k TargetKind) String() string {
	switch k {
	case TargetPeer:
		return "peer"
	case TargetContent:
		return "content"
	default:
		return "unknown"
	}
}

// Target is the parsed form of the query's input identifier. Exactly one
// of Peer/Content is populated, according to Kind. Immutable once
// derived.
type Target struct {
	Raw     string // Identifier exactly as supplied
	Kind    TargetKind
	Peer    peer.ID
	Content cid.Cid
}

func (t Target) String() string {
	return t.Raw
}

// ParseTarget parses the target identifier as either a peer ID
// (12D3KooW..., Qm...) or a CID. Peer IDs are tried first: bare base58
// identities are the common case and every valid peer ID would also
// decode as some CID. Parsing is deterministic: the same input always
// yields the same target and the same routing key.
func ParseTarget(s string) (Target, error) {
	if s == "" {
		return Target{}, fmt.Errorf("empty target identifier: %w", ErrBadTarget)
	}

	if id, err := peer.Decode(s); err == nil {
		return Target{Raw: s, Kind: TargetPeer, Peer: id}, nil
	}

	if c, err := cid.Decode(s); err == nil {
		return Target{Raw: s, Kind: TargetContent, Content: c}, nil
	}

	return Target{}, fmt.Errorf("%q is neither a peer id nor a CID: %w", s, ErrBadTarget)
}

// RoutingKey returns the fixed-width digest the DHT keyspace positions
// this target by: the multihash digest of the peer identity or of the
// content identifier. The digest scheme itself belongs to the stack's
// wire format; this accessor only exposes the derived bytes (for logging
// and determinism checks).
func (t Target) RoutingKey() ([]byte, error) {
	var m mh.Multihash
	switch t.Kind {
	case TargetPeer:
		m = mh.Multihash(t.Peer)
	case TargetContent:
		m = t.Content.Hash()
	default:
		return nil, fmt.Errorf("target has no kind: %w", ErrBadTarget)
	}

	decoded, err := mh.Decode(m)
	if err != nil {
		return nil, fmt.Errorf("undecodable target multihash: %v: %w", err, ErrBadTarget)
	}
	return decoded.Digest, nil
}
