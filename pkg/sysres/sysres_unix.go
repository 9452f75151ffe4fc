//go:build unix

package sysres

import (
	"log/slog"

	"golang.org/x/sys/unix"
)

// fdSafetyMargin keeps headroom for stdio, the log file and the resolver.
const fdSafetyMargin = 100

// CheckFileDescriptorLimit warns when the worker count gets close to the
// process's open-file limit; every in-flight probe holds a socket.
func CheckFileDescriptorLimit(logger *slog.Logger, workers int) {
	var rLimit unix.Rlimit
	if err := unix.Getrlimit(unix.RLIMIT_NOFILE, &rLimit); err != nil {
		logger.Debug("Could not read RLIMIT_NOFILE.", "error", err)
		return
	}
	if uint64(workers)+fdSafetyMargin >= rLimit.Cur {
		logger.Warn("Worker count is close to the file descriptor limit.",
			"workers", workers,
			"limit", rLimit.Cur,
		)
	}
}
