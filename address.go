package peerseek

import (
	"fmt"
	"strings"

	"github.com/libp2p/go-libp2p/core/peer"
	ma "github.com/multiformats/go-multiaddr"
)

// Seed is one pre-configured entry point into the overlay: a full
// multiaddr including the expected peer identity, e.g.
//
//	/ip4/139.178.91.71/tcp/4001/p2p/12D3KooWEzn...
//
// Seeds are immutable once parsed; their identity is the address string
// itself until the peer is actually dialed.
type Seed struct {
	Addr string        // Address exactly as supplied on the command line
	Info peer.AddrInfo // Parsed peer id + transport address
}

func (s Seed) String() string {
	return s.Addr
}

// ParseSeeds parses a comma-separated bootnode list into seeds.
//
// Each entry must be a valid multiaddr terminating in a /p2p/<peer-id>
// component: the dial needs the expected identity to authenticate the
// handshake against. Surrounding whitespace per entry is tolerated;
// empty entries (",,") are not. An empty or all-whitespace list returns
// ErrNoSeeds. Order is preserved.
func ParseSeeds(list string) ([]Seed, error) {
	if strings.TrimSpace(list) == "" {
		return nil, ErrNoSeeds
	}

	parts := strings.Split(list, ",")
	seeds := make([]Seed, 0, len(parts))
	for _, part := range parts {
		addr := strings.TrimSpace(part)
		if addr == "" {
			return nil, fmt.Errorf("empty entry in seed list: %w", ErrBadSeed)
		}
		seed, err := parseSeed(addr)
		if err != nil {
			return nil, err
		}
		seeds = append(seeds, seed)
	}
	return seeds, nil
}

// parseSeed parses a single bootnode multiaddr and extracts its peer
// identity.
func parseSeed(addr string) (Seed, error) {
	maddr, err := ma.NewMultiaddr(addr)
	if err != nil {
		return Seed{}, fmt.Errorf("%q is not a multiaddr: %v: %w", addr, err, ErrBadSeed)
	}

	info, err := peer.AddrInfoFromP2pAddr(maddr)
	if err != nil {
		return Seed{}, fmt.Errorf("%q has no /p2p/<peer-id> component: %v: %w", addr, err, ErrBadSeed)
	}
	if len(info.Addrs) == 0 {
		return Seed{}, fmt.Errorf("%q carries a peer id but no transport address: %w", addr, ErrBadSeed)
	}

	return Seed{Addr: addr, Info: *info}, nil
}
