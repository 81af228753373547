package peerseek

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/libp2p/go-libp2p/core/peer"
	ma "github.com/multiformats/go-multiaddr"
)

// Valid fixture identities (base58 sha2-256 multihashes from the public
// IPFS bootstrap set; any syntactically valid peer id works here).
const (
	testPeerA  = "QmaCpDMGvV2BGHeYERUEnRQAwe3N8SzbUtfsmvsqQLuvuJ"
	testPeerB  = "QmNnooDu7bfjPFoTZYxMNLWUQJyrVwtbZg5gBMjTezGAJN"
	testPeerC  = "QmQCU2EcMqAqQPR2i9bChDtGNJchTbq5TbXJJ16u19uLTa"
	testTarget = "QmbLHAnMoJPWSCR5Zhtx6BHJX9KiKNN6tpvbUcqanj75Nb"
	testCID    = "bafybeigdyrzt5sfp7udm7hu76uh7y26nf3efuylqabf3oclgtqy55fbzdi"

	testSeedA = "/ip4/127.0.0.1/tcp/4001/p2p/" + testPeerA
	testSeedB = "/ip4/127.0.0.2/tcp/4001/p2p/" + testPeerB
	testSeedC = "/ip4/127.0.0.3/tcp/4001/p2p/" + testPeerC
)

var errDialRefused = errors.New("connection refused")

// scriptedStack is a NetworkStack test double. Dial behavior is scripted
// per peer (fixed latency, permanent error, or fail-n-times-then-connect);
// the lookup resolves once with a fixed delay, provider set and error.
type scriptedStack struct {
	mu               sync.Mutex
	dialDelay        map[peer.ID]time.Duration
	dialErr          map[peer.ID]error
	dialFailuresLeft map[peer.ID]int
	dialCalls        map[peer.ID]int

	lookupDelay      time.Duration
	lookupProviders  []Provider
	lookupErr        error
	lookupIgnoresCtx bool
	lookupCalls      int32

	closed bool
}

func newScriptedStack() *scriptedStack {
	return &scriptedStack{
		dialDelay:        make(map[peer.ID]time.Duration),
		dialErr:          make(map[peer.ID]error),
		dialFailuresLeft: make(map[peer.ID]int),
		dialCalls:        make(map[peer.ID]int),
	}
}

func (s *scriptedStack) Dial(ctx context.Context, info peer.AddrInfo) error {
	s.mu.Lock()
	s.dialCalls[info.ID]++
	delay := s.dialDelay[info.ID]
	var err error
	if n, ok := s.dialFailuresLeft[info.ID]; ok {
		if n > 0 {
			s.dialFailuresLeft[info.ID] = n - 1
			err = errDialRefused
		}
	} else {
		err = s.dialErr[info.ID]
	}
	s.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	} else if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

func (s *scriptedStack) Lookup(ctx context.Context, target Target) ([]Provider, error) {
	atomic.AddInt32(&s.lookupCalls, 1)
	if s.lookupDelay > 0 {
		if s.lookupIgnoresCtx {
			// Simulates a stack whose cancellation hook is unreliable.
			time.Sleep(s.lookupDelay)
		} else {
			select {
			case <-time.After(s.lookupDelay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return s.lookupProviders, s.lookupErr
}

func (s *scriptedStack) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *scriptedStack) LookupCalls() int {
	return int(atomic.LoadInt32(&s.lookupCalls))
}

func (s *scriptedStack) DialCalls(id peer.ID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dialCalls[id]
}

// mustSeeds parses a seed list or fails the test.
func mustSeeds(t *testing.T, list string) []Seed {
	t.Helper()
	seeds, err := ParseSeeds(list)
	if err != nil {
		t.Fatalf("ParseSeeds(%q) failed: %v", list, err)
	}
	return seeds
}

// mustPeerID decodes a fixture peer id or fails the test.
func mustPeerID(t *testing.T, s string) peer.ID {
	t.Helper()
	id, err := peer.Decode(s)
	if err != nil {
		t.Fatalf("peer.Decode(%q) failed: %v", s, err)
	}
	return id
}

// testProviders builds a provider set with one reachable address each.
func testProviders(t *testing.T, ids ...string) []Provider {
	t.Helper()
	providers := make([]Provider, 0, len(ids))
	for _, id := range ids {
		addr, err := ma.NewMultiaddr("/ip4/10.0.0.1/tcp/4001")
		if err != nil {
			t.Fatalf("building provider addr: %v", err)
		}
		providers = append(providers, Provider{ID: mustPeerID(t, id), Addrs: []ma.Multiaddr{addr}})
	}
	return providers
}

// fastConfig returns a Config scaled down for tests.
func fastConfig() Config {
	cfg := DefaultConfig()
	cfg.DialTimeout = 200 * time.Millisecond
	cfg.LookupTimeout = 100 * time.Millisecond
	cfg.GraceMargin = 50 * time.Millisecond
	return cfg
}
