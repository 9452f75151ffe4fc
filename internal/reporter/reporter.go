// Package reporter renders the scan banner, the live progress line and the
// final report to the terminal. It only reads tracker snapshots and finished
// reports; it never participates in the scan's internal locking.
package reporter

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"portscan/internal/models"
)

const progressBarWidth = 30

// clearLine erases the in-place progress line before printing over it.
const clearLine = "\r\x1b[K"

type styles struct {
	header lipgloss.Style
	good   lipgloss.Style
	warn   lipgloss.Style
	bad    lipgloss.Style
	info   lipgloss.Style
}

func coloredStyles() styles {
	return styles{
		header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		good:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		warn:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		bad:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		info:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	}
}

func plainStyles() styles {
	plain := lipgloss.NewStyle()
	return styles{header: plain, good: plain, warn: plain, bad: plain, info: plain}
}

// Reporter writes human-readable scan output.
type Reporter struct {
	w   io.Writer
	tty bool
	st  styles
}

// New builds a reporter for the given file. Colors are used only when the
// file is a terminal and noColor is false; the redrawing progress line
// requires a terminal regardless.
func New(f *os.File, noColor bool) *Reporter {
	tty := isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	return NewWithWriter(f, !noColor && tty, tty)
}

// NewWithWriter is the seam used by tests and non-terminal callers.
func NewWithWriter(w io.Writer, color, tty bool) *Reporter {
	st := plainStyles()
	if color {
		st = coloredStyles()
	}
	return &Reporter{w: w, tty: tty, st: st}
}

// Banner prints the scan header. The target is shown as given; resolution
// happens inside the session after the banner is up.
func (r *Reporter) Banner(target string, pr models.PortRange, workers int, start time.Time) {
	line := strings.Repeat("=", 60)
	fmt.Fprintln(r.w, r.st.header.Render(line))
	fmt.Fprintln(r.w, r.st.header.Render("  portscan"))
	fmt.Fprintln(r.w, r.st.header.Render(line))
	fmt.Fprintf(r.w, "%s %s\n", r.st.good.Render("[*] Target:"), target)
	fmt.Fprintf(r.w, "%s %s\n", r.st.good.Render("[*] Ports:"), pr.String())
	fmt.Fprintf(r.w, "%s %d\n", r.st.good.Render("[*] Workers:"), workers)
	fmt.Fprintf(r.w, "%s %s\n", r.st.good.Render("[*] Started:"), start.Format("2006-01-02 15:04:05"))
	fmt.Fprintln(r.w)
}

// Progress redraws the in-place progress line. On a non-terminal writer it
// does nothing; the final summary carries the totals.
func (r *Reporter) Progress(completed, total uint64) {
	if !r.tty || total == 0 {
		return
	}
	frac := float64(completed) / float64(total)
	filled := int(frac * progressBarWidth)
	if filled > progressBarWidth {
		filled = progressBarWidth
	}
	bar := strings.Repeat("#", filled) + strings.Repeat("-", progressBarWidth-filled)
	fmt.Fprintf(r.w, "%sScanning [%s] %d/%d ports (%.0f%%)", clearLine, bar, completed, total, frac*100)
}

// OpenPort announces a newly discovered open port above the progress line.
func (r *Reporter) OpenPort(res models.ScanResult) {
	if r.tty {
		fmt.Fprint(r.w, clearLine)
	}
	fmt.Fprintln(r.w, r.st.good.Render(fmt.Sprintf("[+] Port %d is open (%s)", res.Port, res.Service)))
}

// Cancelled announces a shutdown request.
func (r *Reporter) Cancelled() {
	if r.tty {
		fmt.Fprint(r.w, clearLine)
	}
	fmt.Fprintln(r.w, r.st.warn.Render("[!] Interrupt received. Shutting down gracefully..."))
}

// Error prints a fatal pre-scan error.
func (r *Reporter) Error(err error) {
	if r.tty {
		fmt.Fprint(r.w, clearLine)
	}
	fmt.Fprintln(r.w, r.st.bad.Render(fmt.Sprintf("[!] %v", err)))
}

// Summary clears the progress line and prints the final report: open ports
// sorted ascending, state counts and elapsed time.
func (r *Reporter) Summary(rep *models.Report) {
	if r.tty {
		fmt.Fprint(r.w, clearLine)
	}
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, r.st.header.Render("Scan Results:"))
	fmt.Fprintln(r.w, r.st.info.Render(strings.Repeat("-", 60)))

	if rep.OpenCount() == 0 {
		fmt.Fprintln(r.w, r.st.warn.Render("No open ports found"))
	} else {
		tw := tabwriter.NewWriter(r.w, 0, 2, 2, ' ', 0)
		fmt.Fprintln(tw, "PORT\tSTATE\tSERVICE")
		for _, res := range rep.Results {
			if res.State != models.StateOpen {
				continue
			}
			fmt.Fprintf(tw, "%s\n", r.st.good.Render(fmt.Sprintf("%d\topen\t%s", res.Port, res.Service)))
		}
		tw.Flush()
	}

	counts := rep.CountByState()
	fmt.Fprintf(r.w, "\n%s %d scanned, %d open, %d closed, %d filtered\n",
		r.st.info.Render("[*]"),
		len(rep.Results),
		counts[models.StateOpen],
		counts[models.StateClosed],
		counts[models.StateFiltered],
	)
	fmt.Fprintf(r.w, "%s Scan %s in %.2f seconds\n",
		r.st.info.Render("[*]"),
		strings.ToLower(string(rep.Status)),
		rep.Elapsed.Seconds(),
	)
	if rep.Status == models.StatusCancelled {
		fmt.Fprintln(r.w, r.st.warn.Render("[!] Scan was interrupted before completion"))
	}
}
