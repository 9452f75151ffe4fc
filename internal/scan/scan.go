// Package scan implements the concurrent scan engine: one session resolves
// the target, fans the port range out over a bounded worker pool, aggregates
// per-port results and returns a sorted report.
package scan

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"portscan/internal/models"
	"portscan/internal/pinger"
	"portscan/internal/probe"
	"portscan/internal/progress"
	"portscan/internal/services"
)

const (
	DefaultWorkers = 50
	DefaultTimeout = 1 * time.Second

	defaultQueueSize = 1024
)

// filterReachableFunc is a package-level variable so tests can stub out the
// ICMP pre-check.
var filterReachableFunc = pinger.FilterReachable

// Config carries everything one scan session needs.
type Config struct {
	Target  string
	Range   models.PortRange
	Workers int
	Timeout time.Duration
	// Ping enables the ICMP reachability pre-check before probing.
	Ping bool
	// OnOpen, when set, is invoked from the collector goroutine for every
	// open port as it is discovered. Calls are serialized.
	OnOpen func(models.ScanResult)
}

// Session is one invocation of the scan engine against one target and port
// range. Create it with New, run it once with Run.
type Session struct {
	cfg     Config
	log     *slog.Logger
	tracker *progress.Tracker

	// newProber is a seam for tests; defaults to the TCP connect prober.
	newProber func(addr string) probe.Prober
}

// New validates the configuration and creates a session. The progress
// tracker is available immediately so callers can poll it while Run is
// in flight.
func New(cfg Config, log *slog.Logger) (*Session, error) {
	if cfg.Target == "" {
		return nil, fmt.Errorf("target host is required")
	}
	if cfg.Range.Count() < 1 || cfg.Range.Lo < 1 {
		return nil, fmt.Errorf("invalid port range %s", cfg.Range)
	}
	if cfg.Workers == 0 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.Workers < 1 {
		return nil, fmt.Errorf("worker count must be at least 1, got %d", cfg.Workers)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Timeout < 0 {
		return nil, fmt.Errorf("timeout must be positive, got %v", cfg.Timeout)
	}

	s := &Session{
		cfg:     cfg,
		log:     log,
		tracker: progress.NewTracker(uint64(cfg.Range.Count())),
	}
	s.newProber = func(addr string) probe.Prober {
		return probe.NewConnectProber(addr, cfg.Timeout, log)
	}
	return s, nil
}

// Tracker returns the live progress handle. Snapshot reads do not
// participate in the scan's internal locking.
func (s *Session) Tracker() *progress.Tracker { return s.tracker }

// Run executes the scan until the range is drained or ctx is cancelled.
// Cancellation is cooperative: workers stop claiming new ports and in-flight
// dials finish within the probe timeout, so shutdown latency is bounded by
// one timeout period. The partial report of a cancelled run is valid and
// flagged StatusCancelled; the only error outcomes are resolution failure
// and a failed reachability pre-check, both raised before any probing.
func (s *Session) Run(ctx context.Context) (*models.Report, error) {
	addr, err := resolveAddr(ctx, s.cfg.Target)
	if err != nil {
		return nil, err
	}
	s.log.Info("Target resolved.", "target", s.cfg.Target, "addr", addr)

	if s.cfg.Ping {
		if up := filterReachableFunc(ctx, []string{addr}, s.cfg.Timeout, 1, s.log); len(up) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrHostDown, s.cfg.Target)
		}
	}

	total := s.cfg.Range.Count()
	prober := s.newProber(addr)
	jobs := make(chan int, min(total, defaultQueueSize))
	// Buffered to the full range so workers never block on delivery and no
	// lock or send spans the dial.
	results := make(chan models.ScanResult, total)

	s.log.Info("Starting scan.", "range", s.cfg.Range.String(), "workers", s.cfg.Workers, "timeout", s.cfg.Timeout)
	start := time.Now()

	// Producer: every port enters the queue exactly once, stopping early on
	// cancellation.
	go func() {
		defer close(jobs)
		for port := s.cfg.Range.Lo; port <= s.cfg.Range.Hi; port++ {
			select {
			case jobs <- port:
			case <-ctx.Done():
				s.log.Debug("Context cancelled while feeding ports. Stopping.")
				return
			}
		}
	}()

	var wg sync.WaitGroup
	for i := 1; i <= s.cfg.Workers; i++ {
		wg.Add(1)
		go s.worker(ctx, &wg, i, prober, jobs, results)
	}

	collected := make(map[int]models.ScanResult, total)
	collectorDone := make(chan struct{})
	go func() {
		defer close(collectorDone)
		for res := range results {
			if _, dup := collected[res.Port]; dup {
				// Cannot happen with the channel-fed pool, but the first
				// result per port wins regardless.
				s.log.Warn("Duplicate result dropped.", "port", res.Port)
				continue
			}
			if res.State == models.StateOpen {
				if name, ok := services.Name(res.Port); ok {
					res.Service = name
				} else {
					res.Service = "unknown"
				}
				if s.cfg.OnOpen != nil {
					s.cfg.OnOpen(res)
				}
			}
			collected[res.Port] = res
		}
	}()

	wg.Wait()
	close(results)
	<-collectorDone
	elapsed := time.Since(start)

	status := models.StatusCompleted
	if ctx.Err() != nil && len(collected) < total {
		status = models.StatusCancelled
	}

	sorted := make([]models.ScanResult, 0, len(collected))
	for _, res := range collected {
		sorted = append(sorted, res)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Port < sorted[j].Port })

	s.log.Info("Scan finished.",
		"status", status,
		"scanned", len(sorted),
		"total", total,
		"duration", elapsed,
	)

	return &models.Report{
		ID:      uuid.New(),
		Target:  s.cfg.Target,
		Addr:    addr,
		Range:   s.cfg.Range,
		Status:  status,
		Elapsed: elapsed,
		Results: sorted,
	}, nil
}

// worker drains the job queue until it is empty or cancellation is observed.
// Progress advances exactly once per attempted port; queued ports abandoned
// by cancellation are never counted.
func (s *Session) worker(ctx context.Context, wg *sync.WaitGroup, id int, p probe.Prober, jobs <-chan int, results chan<- models.ScanResult) {
	defer wg.Done()
	workerLogger := s.log.With(slog.Int("worker_id", id))
	workerLogger.Debug("Worker started.")

	for {
		// Cancellation wins over a ready job: check it on its own first so a
		// closed Done channel cannot lose the select race below.
		select {
		case <-ctx.Done():
			workerLogger.Debug("Shutdown signal received. Exiting.")
			return
		default:
		}

		select {
		case <-ctx.Done():
			workerLogger.Debug("Shutdown signal received. Exiting.")
			return
		case port, ok := <-jobs:
			if !ok {
				workerLogger.Debug("Job queue drained. Shutting down.")
				return
			}
			res := p.Probe(ctx, port)
			s.tracker.Advance()
			results <- res
		}
	}
}
