//go:build !unix

package sysres

import "log/slog"

// CheckFileDescriptorLimit is a no-op where RLIMIT_NOFILE does not apply.
func CheckFileDescriptorLimit(logger *slog.Logger, workers int) {}
