package peerseek

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/libp2p/go-libp2p"
	dht "github.com/libp2p/go-libp2p-kad-dht"
	"github.com/libp2p/go-libp2p/core/host"
	"github.com/libp2p/go-libp2p/core/peer"
	"github.com/libp2p/go-libp2p/core/routing"
	ma "github.com/multiformats/go-multiaddr"
	manet "github.com/multiformats/go-multiaddr/net"
)

// Libp2pStack is the real NetworkStack: a libp2p host for secured,
// multiplexed dialing and a Kademlia DHT client for the distributed
// query. The orchestration core never touches either directly.
type Libp2pStack struct {
	host         host.Host
	dht          *dht.IpfsDHT
	maxProviders int

	mu     sync.Mutex
	closed bool
}

// NewLibp2pStack constructs the host and joins the DHT according to
// cfg. maxProviders caps how many provider records a content lookup
// drains before returning.
//
// By default the node participates in server mode and keeps
// local-network addresses in its routing table, matching the original
// deployment's topology policy; both can be turned off via cfg.
func NewLibp2pStack(ctx context.Context, cfg StackConfig, maxProviders int) (*Libp2pStack, error) {
	if maxProviders < 1 {
		maxProviders = DefaultMaxProviders
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = UserAgent
	}

	hostOpts := []libp2p.Option{libp2p.UserAgent(userAgent)}
	if len(cfg.ListenAddrs) > 0 {
		hostOpts = append(hostOpts, libp2p.ListenAddrStrings(cfg.ListenAddrs...))
	} else {
		hostOpts = append(hostOpts, libp2p.NoListenAddrs)
	}

	h, err := libp2p.New(hostOpts...)
	if err != nil {
		return nil, NewStackError("host construction", err)
	}

	mode := dht.ModeServer
	if cfg.ClientMode {
		mode = dht.ModeClient
	}
	dhtOpts := []dht.Option{dht.Mode(mode)}
	if !cfg.KeepLocalAddrs {
		dhtOpts = append(dhtOpts, dht.AddressFilter(publicAddrsOnly))
	}

	kad, err := dht.New(ctx, h, dhtOpts...)
	if err != nil {
		h.Close()
		return nil, NewStackError("dht construction", err)
	}

	Info("Local peer id: %s", h.ID())
	return &Libp2pStack{host: h, dht: kad, maxProviders: maxProviders}, nil
}

// LocalID returns the host's peer identity.
func (s *Libp2pStack) LocalID() peer.ID {
	return s.host.ID()
}

// Dial establishes a secured connection to the given peer. The peer is
// added to the peerstore and, once the identify exchange confirms DHT
// support, to the routing table.
func (s *Libp2pStack) Dial(ctx context.Context, info peer.AddrInfo) error {
	if err := s.ensureOpen(); err != nil {
		return err
	}
	Debug("Dialing %s", info.ID)
	return s.host.Connect(ctx, info)
}

// Lookup runs one distributed query. Peer targets resolve the peer's
// current address set; content targets resolve the announcing
// providers.
func (s *Libp2pStack) Lookup(ctx context.Context, target Target) ([]Provider, error) {
	if err := s.ensureOpen(); err != nil {
		return nil, err
	}

	switch target.Kind {
	case TargetPeer:
		return s.findPeer(ctx, target.Peer)
	case TargetContent:
		return s.findProviders(ctx, target)
	default:
		return nil, fmt.Errorf("target %q has no kind: %w", target.Raw, ErrBadTarget)
	}
}

func (s *Libp2pStack) findPeer(ctx context.Context, id peer.ID) ([]Provider, error) {
	info, err := s.dht.FindPeer(ctx, id)
	if err != nil {
		if errors.Is(err, routing.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if len(info.Addrs) == 0 {
		// The routing layer knows the peer exists but has no address
		// for it; to the caller that is an absent answer.
		return nil, ErrNotFound
	}
	return []Provider{{ID: info.ID, Addrs: info.Addrs}}, nil
}

func (s *Libp2pStack) findProviders(ctx context.Context, target Target) ([]Provider, error) {
	ch := s.dht.FindProvidersAsync(ctx, target.Content, s.maxProviders)

	var providers []Provider
	for info := range ch {
		if info.ID == "" {
			continue
		}
		providers = append(providers, Provider{ID: info.ID, Addrs: info.Addrs})
	}

	if len(providers) > 0 {
		return providers, nil
	}
	// The channel closes both when the query completes empty and when
	// ctx expires mid-query; only the former is a definitive absence.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return nil, ErrNotFound
}

// Close tears down the DHT client and the host. Safe to call more than
// once.
func (s *Libp2pStack) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	return errors.Join(s.dht.Close(), s.host.Close())
}

func (s *Libp2pStack) ensureOpen() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStackClosed
	}
	return nil
}

// publicAddrsOnly drops private and loopback addresses from routing
// table entries.
func publicAddrsOnly(addrs []ma.Multiaddr) []ma.Multiaddr {
	kept := addrs[:0]
	for _, a := range addrs {
		if manet.IsPublicAddr(a) {
			kept = append(kept, a)
		}
	}
	return kept
}
