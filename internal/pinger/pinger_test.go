package pinger

import (
	"context"
	"sort"
	"testing"
	"time"

	"portscan/internal/testutils"
)

// TestFilterReachable exercises the filtering logic with a mocked ping
// function so the test is deterministic and independent of ICMP privileges.
func TestFilterReachable(t *testing.T) {
	logger, _ := testutils.SetupTestLogger()

	originalPingFunc := pingHostFunc
	defer func() { pingHostFunc = originalPingFunc }()

	up := map[string]bool{
		"10.0.0.1": true,
		"10.0.0.3": true,
	}
	pingHostFunc = func(ctx context.Context, host string, timeout time.Duration) bool {
		return up[host]
	}

	hosts := []string{"10.0.0.1", "10.0.0.2", "10.0.0.3", "10.0.0.4"}
	got := FilterReachable(context.Background(), hosts, time.Second, 2, logger)
	sort.Strings(got)

	want := []string{"10.0.0.1", "10.0.0.3"}
	if len(got) != len(want) {
		t.Fatalf("FilterReachable returned %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("FilterReachable returned %v, want %v", got, want)
		}
	}
}

func TestFilterReachableNoneUp(t *testing.T) {
	logger, _ := testutils.SetupTestLogger()

	originalPingFunc := pingHostFunc
	defer func() { pingHostFunc = originalPingFunc }()
	pingHostFunc = func(ctx context.Context, host string, timeout time.Duration) bool {
		return false
	}

	got := FilterReachable(context.Background(), []string{"192.0.2.1"}, 100*time.Millisecond, 1, logger)
	if len(got) != 0 {
		t.Fatalf("expected no reachable hosts, got %v", got)
	}
}

func TestFilterReachableCancelledContext(t *testing.T) {
	logger, _ := testutils.SetupTestLogger()

	originalPingFunc := pingHostFunc
	defer func() { pingHostFunc = originalPingFunc }()
	pingHostFunc = func(ctx context.Context, host string, timeout time.Duration) bool {
		return true
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// A pre-cancelled context must not hang; hosts may be skipped entirely.
	got := FilterReachable(ctx, []string{"10.0.0.1", "10.0.0.2"}, time.Second, 1, logger)
	if len(got) > 2 {
		t.Fatalf("impossible result count: %v", got)
	}
}
