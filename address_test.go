package peerseek

import (
	"errors"
	"testing"
)

// TestParseSeedsSingle verifies a single full multiaddr parses with its
// peer identity extracted.
func TestParseSeedsSingle(t *testing.T) {
	seeds, err := ParseSeeds(testSeedA)
	if err != nil {
		t.Fatalf("ParseSeeds() error = %v, want nil", err)
	}
	if len(seeds) != 1 {
		t.Fatalf("len(seeds) = %d, want 1", len(seeds))
	}
	if seeds[0].Addr != testSeedA {
		t.Errorf("Addr = %q, want %q", seeds[0].Addr, testSeedA)
	}
	if seeds[0].Info.ID.String() != testPeerA {
		t.Errorf("peer id = %s, want %s", seeds[0].Info.ID, testPeerA)
	}
	if len(seeds[0].Info.Addrs) != 1 {
		t.Errorf("len(Info.Addrs) = %d, want 1", len(seeds[0].Info.Addrs))
	}
}

// TestParseSeedsMultiple verifies comma splitting, whitespace tolerance
// and order preservation.
func TestParseSeedsMultiple(t *testing.T) {
	seeds, err := ParseSeeds(" " + testSeedA + " , " + testSeedB + "," + testSeedC)
	if err != nil {
		t.Fatalf("ParseSeeds() error = %v, want nil", err)
	}
	if len(seeds) != 3 {
		t.Fatalf("len(seeds) = %d, want 3", len(seeds))
	}
	want := []string{testPeerA, testPeerB, testPeerC}
	for i, seed := range seeds {
		if seed.Info.ID.String() != want[i] {
			t.Errorf("seed %d peer id = %s, want %s (order must be preserved)", i, seed.Info.ID, want[i])
		}
	}
}

// TestParseSeedsEmpty verifies an empty or blank list is a config error
// reported before any network activity.
func TestParseSeedsEmpty(t *testing.T) {
	for _, input := range []string{"", "   ", "\t"} {
		if _, err := ParseSeeds(input); !errors.Is(err, ErrNoSeeds) {
			t.Errorf("ParseSeeds(%q) error = %v, want ErrNoSeeds", input, err)
		}
	}
}

// TestParseSeedsEmptyEntry verifies a dangling comma is rejected.
func TestParseSeedsEmptyEntry(t *testing.T) {
	if _, err := ParseSeeds(testSeedA + ",,"); !errors.Is(err, ErrBadSeed) {
		t.Errorf("ParseSeeds() error = %v, want ErrBadSeed", err)
	}
}

// TestParseSeedsNotAMultiaddr verifies garbage input is rejected.
func TestParseSeedsNotAMultiaddr(t *testing.T) {
	if _, err := ParseSeeds("not-an-address"); !errors.Is(err, ErrBadSeed) {
		t.Errorf("ParseSeeds() error = %v, want ErrBadSeed", err)
	}
}

// TestParseSeedsMissingPeerID verifies a transport-only multiaddr is
// rejected: the dial needs the expected identity.
func TestParseSeedsMissingPeerID(t *testing.T) {
	if _, err := ParseSeeds("/ip4/127.0.0.1/tcp/4001"); !errors.Is(err, ErrBadSeed) {
		t.Errorf("ParseSeeds() error = %v, want ErrBadSeed", err)
	}
}

// TestParseSeedsIsConfigError verifies the seed errors belong to the
// configuration class.
func TestParseSeedsIsConfigError(t *testing.T) {
	_, err := ParseSeeds("")
	if !IsConfigError(err) {
		t.Errorf("IsConfigError(%v) = false, want true", err)
	}
	_, err = ParseSeeds("garbage")
	if !IsConfigError(err) {
		t.Errorf("IsConfigError(%v) = false, want true", err)
	}
}
