package testutils

import (
	"bytes"
	"log/slog"
)

// SetupTestLogger creates a slog.Logger that writes to a bytes.Buffer,
// configured for DEBUG level. Returns the logger and the buffer so tests can
// assert on emitted log lines.
func SetupTestLogger() (*slog.Logger, *bytes.Buffer) {
	var logBuf bytes.Buffer
	handler := slog.NewTextHandler(&logBuf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(handler), &logBuf
}
