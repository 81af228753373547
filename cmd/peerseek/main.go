// Command peerseek joins a libp2p overlay via a list of bootnodes and
// resolves the current provider addresses for a target identifier with
// a single deadline-bounded DHT query.
//
// Usage:
//
//	peerseek [flags] <bootnodes> <target>
//
// where <bootnodes> is a comma-separated list of multiaddrs, each
// ending in /p2p/<peer-id>, and <target> is a peer ID or a CID.
//
// Exit status is 0 when the query completes (providers found, or a
// definitive not-found answer) and 1 on configuration errors,
// connectivity exhaustion, timeout, or stack failure.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	peerseek "github.com/go-p2p/peerseek"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		dialTimeout   = flag.Duration("dial-timeout", peerseek.DefaultDialTimeout, "per-seed dial timeout")
		dialRetries   = flag.Int("dial-retries", 0, "per-seed retry budget for transient dial failures")
		lookupTimeout = flag.Duration("lookup-timeout", peerseek.DefaultLookupTimeout, "deadline for the distributed query")
		grace         = flag.Duration("grace", peerseek.DefaultGraceMargin, "extra wait before abandoning a stack that ignores cancellation")
		maxProviders  = flag.Int("max-providers", peerseek.DefaultMaxProviders, "provider records to collect for content targets")
		clientMode    = flag.Bool("client-mode", false, "join the DHT as an ephemeral client instead of a server-mode participant")
		publicOnly    = flag.Bool("public-only", false, "discard private/LAN addresses from the routing table")
		listen        = flag.String("listen", "", "comma-separated listen multiaddrs (default: no inbound)")
		logLevel      = flag.String("log-level", "warn", "log level: debug, info, warn, error")
	)
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "peerseek: expected exactly two arguments: <bootnodes> <target>")
		usage()
		return 1
	}

	peerseek.SetLogLevel(*logLevel)

	// Configuration errors surface before any network activity.
	seeds, err := peerseek.ParseSeeds(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "peerseek: %v\n", err)
		return 1
	}
	target, err := peerseek.ParseTarget(flag.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "peerseek: %v\n", err)
		return 1
	}

	cfg := peerseek.DefaultConfig()
	cfg.DialTimeout = *dialTimeout
	cfg.DialRetries = *dialRetries
	cfg.LookupTimeout = *lookupTimeout
	cfg.GraceMargin = *grace
	cfg.MaxProviders = *maxProviders
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "peerseek: %v\n", err)
		return 1
	}

	// An interrupt cancels pending dials and the in-flight query.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stackCfg := peerseek.DefaultStackConfig()
	stackCfg.ClientMode = *clientMode
	stackCfg.KeepLocalAddrs = !*publicOnly
	if *listen != "" {
		for _, addr := range strings.Split(*listen, ",") {
			if addr = strings.TrimSpace(addr); addr != "" {
				stackCfg.ListenAddrs = append(stackCfg.ListenAddrs, addr)
			}
		}
	}

	stack, err := peerseek.NewLibp2pStack(ctx, stackCfg, cfg.MaxProviders)
	if err != nil {
		fmt.Fprintf(os.Stderr, "peerseek: %v\n", err)
		return 1
	}
	defer stack.Close()

	start := time.Now()
	report, err := peerseek.Bootstrap(ctx, stack, seeds, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "peerseek: %v\n", err)
		return 1
	}
	peerseek.Info("%s", report.Summary())

	result := peerseek.RunLookup(ctx, stack, target, cfg)
	result.Render(os.Stdout)
	peerseek.Debug("Run finished in %v", time.Since(start).Round(time.Millisecond))
	return result.ExitCode()
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: peerseek [flags] <bootnodes> <target>\n\n")
	fmt.Fprintf(os.Stderr, "  <bootnodes>  comma-separated seed multiaddrs, each with a /p2p/<peer-id> suffix\n")
	fmt.Fprintf(os.Stderr, "  <target>     peer ID or CID to locate\n\nflags:\n")
	flag.PrintDefaults()
}
