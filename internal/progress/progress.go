// Package progress provides a lock-free counter of completed probes against
// a fixed total, safe to advance from any worker and to snapshot from the
// rendering loop.
package progress

import "sync/atomic"

// Tracker counts completed probes. Advance and Snapshot are O(1),
// non-blocking, and safe for concurrent use.
type Tracker struct {
	completed atomic.Uint64
	total     uint64
}

// NewTracker creates a tracker for the given total unit count. The total is
// fixed for the tracker's lifetime.
func NewTracker(total uint64) *Tracker {
	return &Tracker{total: total}
}

// Advance records one completed probe. Callers must invoke it exactly once
// per attempted job; jobs never handed to a worker are not counted.
func (t *Tracker) Advance() {
	t.completed.Add(1)
}

// Snapshot returns the completed and total counts. The read may be stale but
// never inconsistent: completed <= total always holds.
func (t *Tracker) Snapshot() (completed, total uint64) {
	return t.completed.Load(), t.total
}
