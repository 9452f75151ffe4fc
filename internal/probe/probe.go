package probe

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"strconv"
	"syscall"
	"time"

	"portscan/internal/models"
)

// Prober performs one connection attempt against a single port.
type Prober interface {
	Probe(ctx context.Context, port int) models.ScanResult
}

// ConnectProber implements a full TCP three-way handshake probe against a
// resolved address.
type ConnectProber struct {
	Addr    string
	Timeout time.Duration
	Logger  *slog.Logger
}

// NewConnectProber creates a new instance of a ConnectProber.
func NewConnectProber(addr string, timeout time.Duration, logger *slog.Logger) *ConnectProber {
	return &ConnectProber{Addr: addr, Timeout: timeout, Logger: logger}
}

// Probe dials the target port once and classifies the outcome:
//   - connection established  -> StateOpen (socket closed immediately)
//   - connection refused      -> StateClosed
//   - timeout or other error  -> StateFiltered
//
// Every outcome is represented as a state; Probe never returns an error.
func (p *ConnectProber) Probe(ctx context.Context, port int) models.ScanResult {
	address := net.JoinHostPort(p.Addr, strconv.Itoa(port))
	start := time.Now()

	dialer := net.Dialer{
		Timeout: p.Timeout,
		// Port 0 lets the OS choose an ephemeral source port.
		LocalAddr: &net.TCPAddr{Port: 0},
	}

	conn, err := dialer.DialContext(ctx, "tcp", address)
	latency := time.Since(start)

	result := models.ScanResult{
		Port:    port,
		Latency: latency,
	}

	if err == nil {
		// Handshake completed; close immediately, no data exchanged.
		_ = conn.Close()
		result.State = models.StateOpen
		p.Logger.Debug("Port open", "address", address, "latency_ms", latency.Seconds()*1000)
		return result
	}

	result.Err = err
	result.State = classify(err)
	p.Logger.Debug("Dial failed",
		"address", address,
		"state", result.State,
		"error", err,
		"latency_ms", latency.Seconds()*1000,
	)
	return result
}

// classify maps a dial error onto a port state. A refused connection is the
// only signal for closed (the peer answered with RST); timeouts, resets and
// unreachable networks all mean no usable answer, so filtered.
func classify(err error) models.ScanState {
	if errors.Is(err, syscall.ECONNREFUSED) {
		return models.StateClosed
	}
	return models.StateFiltered
}
