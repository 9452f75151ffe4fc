package pinger

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-ping/ping"
	"golang.org/x/sync/semaphore"
)

// pingHostFunc is a package-level variable that defaults to the actual
// Reachable function so tests can swap in a deterministic fake.
var pingHostFunc = Reachable

// FilterReachable pings the given hosts concurrently and returns the subset
// that answered an ICMP echo within timeout. At most limit pings are in
// flight at once.
func FilterReachable(ctx context.Context, hosts []string, timeout time.Duration, limit int64, parentLogger *slog.Logger) []string {
	if limit < 1 {
		limit = 1
	}

	var reachable []string
	var mu sync.Mutex
	sem := semaphore.NewWeighted(limit)

	pingerLogger := parentLogger.With(slog.String("component", "pinger"))
	pingerLogger.Info("Starting reachability check.", "host_count", len(hosts), "limit", limit, "timeout", timeout)

	for _, host := range hosts {
		if err := sem.Acquire(ctx, 1); err != nil {
			pingerLogger.Warn("Reachability check interrupted.", "error", err)
			break
		}
		go func(host string) {
			defer sem.Release(1)
			if pingHostFunc(ctx, host, timeout) {
				mu.Lock()
				reachable = append(reachable, host)
				mu.Unlock()
				pingerLogger.Debug("Host is reachable.", "host", host)
			} else {
				pingerLogger.Debug("Host is unreachable or timed out.", "host", host)
			}
		}(host)
	}

	// Draining the full weight waits for every in-flight ping.
	if err := sem.Acquire(context.Background(), limit); err == nil {
		sem.Release(limit)
	}

	pingerLogger.Info("Reachability check complete.", "reachable_hosts", len(reachable), "total_hosts", len(hosts))
	return reachable
}

// Reachable returns true if host answers a single ICMP echo within timeout.
// It runs unprivileged (UDP datagram ICMP), so no root is required.
func Reachable(ctx context.Context, host string, timeout time.Duration) bool {
	pg, err := ping.NewPinger(host)
	if err != nil {
		return false
	}
	pg.SetPrivileged(false)
	pg.Count = 1
	pg.Timeout = timeout

	done := make(chan error, 1)
	go func() { done <- pg.Run() }()

	select {
	case <-ctx.Done():
		pg.Stop()
		<-done
		return false
	case err := <-done:
		if err != nil {
			return false
		}
		return pg.Statistics().PacketsRecv > 0
	}
}
