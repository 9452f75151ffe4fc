package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"portscan/internal/models"
)

// Config holds all configuration settings for the application.
type Config struct {
	Target   string
	Range    models.PortRange
	Workers  int
	Timeout  time.Duration
	Ping     bool
	NoColor  bool
	Refresh  time.Duration
	LogLevel string
	LogFile  string
}

// Load parses command-line arguments and returns a populated Config struct.
// The target host is the single positional argument.
func Load(args []string) (*Config, error) {
	fs := flag.NewFlagSet("portscan", flag.ContinueOnError)

	ports := fs.String("ports", "1-1024", "Port range to scan (e.g. 20-100 or a single port).")
	workers := fs.Int("worker", 50, "Number of concurrent workers.")
	timeout := fs.Duration("timeout", 1*time.Second, "Timeout for each port probe.")
	pingFirst := fs.Bool("ping", false, "Check host reachability with ICMP before scanning.")
	noColor := fs.Bool("no-color", false, "Disable colored output.")
	refresh := fs.Duration("refresh", 200*time.Millisecond, "Progress line refresh interval.")
	logLevel := fs.String("log-level", "INFO", "Log level: DEBUG, INFO, WARN, ERROR.")
	logFile := fs.String("log-file", "", "Also append logs to this file.")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <target>\n", fs.Name())
		fmt.Fprintln(os.Stderr, "A concurrent TCP port scanner with live progress.")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return nil, fmt.Errorf("exactly one target host is required")
	}
	target := strings.TrimSpace(fs.Arg(0))
	if target == "" {
		return nil, fmt.Errorf("target host must not be empty")
	}

	portRange, err := parsePortRange(*ports)
	if err != nil {
		return nil, err
	}
	if *workers < 1 {
		return nil, fmt.Errorf("--worker must be a positive integer")
	}
	if *timeout <= 0 {
		return nil, fmt.Errorf("--timeout must be positive")
	}
	if *refresh <= 0 {
		return nil, fmt.Errorf("--refresh must be positive")
	}

	return &Config{
		Target:   target,
		Range:    portRange,
		Workers:  *workers,
		Timeout:  *timeout,
		Ping:     *pingFirst,
		NoColor:  *noColor,
		Refresh:  *refresh,
		LogLevel: *logLevel,
		LogFile:  *logFile,
	}, nil
}

// parsePortRange accepts "lo-hi" or a single port "p" (treated as p-p).
func parsePortRange(input string) (models.PortRange, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return models.PortRange{}, fmt.Errorf("port range must not be empty")
	}

	if !strings.Contains(input, "-") {
		p, err := strconv.Atoi(input)
		if err != nil {
			return models.PortRange{}, fmt.Errorf("invalid port %q", input)
		}
		return models.NewPortRange(p, p)
	}

	parts := strings.SplitN(input, "-", 2)
	lo, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return models.PortRange{}, fmt.Errorf("invalid port range %q", input)
	}
	hi, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return models.PortRange{}, fmt.Errorf("invalid port range %q", input)
	}
	return models.NewPortRange(lo, hi)
}
