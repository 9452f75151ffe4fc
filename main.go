package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portscan/config"
	"portscan/internal/logger"
	"portscan/internal/models"
	"portscan/internal/reporter"
	"portscan/internal/scan"
	"portscan/pkg/sysres"
)

type runOutcome struct {
	report *models.Report
	err    error
}

// main wires the CLI glue around the scan engine: flags, logging, signal
// handling and the progress polling loop.
func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}

	appLogger, closeLogFile, err := logger.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}
	defer closeLogFile()
	slog.SetDefault(appLogger)

	sysres.CheckFileDescriptorLimit(appLogger, cfg.Workers)

	out := reporter.New(os.Stdout, cfg.NoColor)

	session, err := scan.New(scan.Config{
		Target:  cfg.Target,
		Range:   cfg.Range,
		Workers: cfg.Workers,
		Timeout: cfg.Timeout,
		Ping:    cfg.Ping,
		OnOpen:  out.OpenPort,
	}, appLogger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out.Banner(cfg.Target, cfg.Range, cfg.Workers, time.Now())

	done := make(chan runOutcome, 1)
	go func() {
		report, err := session.Run(ctx)
		done <- runOutcome{report: report, err: err}
	}()

	ticker := time.NewTicker(cfg.Refresh)
	defer ticker.Stop()
	tracker := session.Tracker()

	var outcome runOutcome
	ctxDone := ctx.Done()
poll:
	for {
		select {
		case outcome = <-done:
			break poll
		case <-ctxDone:
			out.Cancelled()
			ctxDone = nil // announce once, keep polling until the pool drains
		case <-ticker.C:
			out.Progress(tracker.Snapshot())
		}
	}

	if outcome.err != nil {
		out.Error(outcome.err)
		appLogger.Error("Scan aborted.", "error", outcome.err)
		os.Exit(1)
	}

	out.Summary(outcome.report)
	if outcome.report.Status == models.StatusCancelled {
		os.Exit(1)
	}
}
