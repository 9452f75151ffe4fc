//go:build unix

package sysres

import (
	"strings"
	"testing"

	"portscan/internal/testutils"
)

func TestCheckFileDescriptorLimit(t *testing.T) {
	logger, logBuf := testutils.SetupTestLogger()

	// A tiny worker count must never trigger the warning.
	CheckFileDescriptorLimit(logger, 1)
	if strings.Contains(logBuf.String(), "file descriptor limit") {
		t.Errorf("unexpected warning for 1 worker: %s", logBuf.String())
	}

	// An absurd worker count must trigger it on any sane limit.
	logBuf.Reset()
	CheckFileDescriptorLimit(logger, 1<<30)
	if !strings.Contains(logBuf.String(), "file descriptor limit") {
		t.Errorf("expected warning for 2^30 workers, got: %s", logBuf.String())
	}
}
