package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ScanState classifies the outcome of a single port probe.
type ScanState string

const (
	StateOpen     ScanState = "OPEN"
	StateClosed   ScanState = "CLOSED"
	StateFiltered ScanState = "FILTERED"
)

// PortRange is an inclusive range of TCP ports. Both bounds are validated
// at construction and the range is immutable afterwards.
type PortRange struct {
	Lo int
	Hi int
}

// NewPortRange validates the bounds and returns the range.
func NewPortRange(lo, hi int) (PortRange, error) {
	if lo < 1 || lo > 65535 {
		return PortRange{}, fmt.Errorf("port %d out of range [1, 65535]", lo)
	}
	if hi < 1 || hi > 65535 {
		return PortRange{}, fmt.Errorf("port %d out of range [1, 65535]", hi)
	}
	if lo > hi {
		return PortRange{}, fmt.Errorf("invalid port range: %d-%d", lo, hi)
	}
	return PortRange{Lo: lo, Hi: hi}, nil
}

// Count returns the number of ports in the range.
func (r PortRange) Count() int { return r.Hi - r.Lo + 1 }

// Contains reports whether p lies within the range.
func (r PortRange) Contains(p int) bool { return p >= r.Lo && p <= r.Hi }

func (r PortRange) String() string { return fmt.Sprintf("%d-%d", r.Lo, r.Hi) }

// ScanResult holds the outcome of a single port probe. It is created exactly
// once by the worker that processed the port and never mutated afterwards.
type ScanResult struct {
	Port    int
	State   ScanState
	Service string
	Latency time.Duration
	Err     error
}

// SessionStatus reports how a scan session ended.
type SessionStatus string

const (
	StatusCompleted SessionStatus = "COMPLETED"
	StatusCancelled SessionStatus = "CANCELLED"
)

// Report is the immutable outcome of one scan session. Results are sorted
// ascending by port with at most one entry per port.
type Report struct {
	ID      uuid.UUID
	Target  string
	Addr    string
	Range   PortRange
	Status  SessionStatus
	Elapsed time.Duration
	Results []ScanResult
}

// OpenCount returns the number of open ports in the report.
func (r *Report) OpenCount() int {
	n := 0
	for _, res := range r.Results {
		if res.State == StateOpen {
			n++
		}
	}
	return n
}

// CountByState tallies results per state.
func (r *Report) CountByState() map[ScanState]int {
	counts := make(map[ScanState]int, 3)
	for _, res := range r.Results {
		counts[res.State]++
	}
	return counts
}
