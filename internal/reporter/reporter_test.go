package reporter

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"portscan/internal/models"
)

func testReport() *models.Report {
	return &models.Report{
		ID:      uuid.New(),
		Target:  "localhost",
		Addr:    "127.0.0.1",
		Range:   models.PortRange{Lo: 8079, Hi: 8081},
		Status:  models.StatusCompleted,
		Elapsed: 1234 * time.Millisecond,
		Results: []models.ScanResult{
			{Port: 8079, State: models.StateClosed},
			{Port: 8080, State: models.StateOpen, Service: "http-alt"},
			{Port: 8081, State: models.StateFiltered},
		},
	}
}

func TestSummary(t *testing.T) {
	var buf bytes.Buffer
	r := NewWithWriter(&buf, false, false)

	r.Summary(testReport())
	out := buf.String()

	for _, want := range []string{
		"Scan Results:",
		"PORT",
		"8080",
		"open",
		"http-alt",
		"3 scanned, 1 open, 1 closed, 1 filtered",
		"completed in 1.23 seconds",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "8079\topen") {
		t.Errorf("closed port rendered as open:\n%s", out)
	}
	if strings.Contains(out, "interrupted") {
		t.Errorf("completed run rendered as interrupted:\n%s", out)
	}
}

func TestSummaryCancelled(t *testing.T) {
	var buf bytes.Buffer
	r := NewWithWriter(&buf, false, false)

	rep := testReport()
	rep.Status = models.StatusCancelled
	r.Summary(rep)
	out := buf.String()

	if !strings.Contains(out, "cancelled in") {
		t.Errorf("cancelled summary missing status:\n%s", out)
	}
	if !strings.Contains(out, "interrupted before completion") {
		t.Errorf("cancelled summary missing warning:\n%s", out)
	}
}

func TestSummaryNoOpenPorts(t *testing.T) {
	var buf bytes.Buffer
	r := NewWithWriter(&buf, false, false)

	rep := testReport()
	rep.Results = []models.ScanResult{
		{Port: 1, State: models.StateClosed},
		{Port: 2, State: models.StateFiltered},
	}
	r.Summary(rep)

	if !strings.Contains(buf.String(), "No open ports found") {
		t.Errorf("summary missing empty-result notice:\n%s", buf.String())
	}
}

func TestProgressOnNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	r := NewWithWriter(&buf, false, false)

	r.Progress(10, 100)
	if buf.Len() != 0 {
		t.Errorf("progress wrote to non-terminal writer: %q", buf.String())
	}
}

func TestProgressOnTerminal(t *testing.T) {
	var buf bytes.Buffer
	r := NewWithWriter(&buf, false, true)

	r.Progress(50, 100)
	out := buf.String()
	if !strings.Contains(out, "50/100") {
		t.Errorf("progress line missing counts: %q", out)
	}
	if !strings.Contains(out, "50%") {
		t.Errorf("progress line missing percentage: %q", out)
	}
	if !strings.HasPrefix(out, clearLine) {
		t.Errorf("progress line does not redraw in place: %q", out)
	}
}

func TestOpenPort(t *testing.T) {
	var buf bytes.Buffer
	r := NewWithWriter(&buf, false, false)

	r.OpenPort(models.ScanResult{Port: 22, State: models.StateOpen, Service: "ssh"})
	if !strings.Contains(buf.String(), "Port 22 is open (ssh)") {
		t.Errorf("open-port line malformed: %q", buf.String())
	}
}

func TestBanner(t *testing.T) {
	var buf bytes.Buffer
	r := NewWithWriter(&buf, false, false)

	start := time.Date(2026, 8, 25, 10, 30, 0, 0, time.UTC)
	r.Banner("localhost", models.PortRange{Lo: 1, Hi: 1024}, 50, start)
	out := buf.String()

	for _, want := range []string{"localhost", "1-1024", "50", "2026-08-25 10:30:00"} {
		if !strings.Contains(out, want) {
			t.Errorf("banner missing %q:\n%s", want, out)
		}
	}
}
