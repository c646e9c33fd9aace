package pipeline

import (
	"errors"
	"syscall"

	"github.com/linuxmatters/jumpcutter/internal/engine"
)

// ExitCode maps a run error to a process exit status: the engine's own status
// for failed invocations, the OS error number for system call failures, and
// 1 for everything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var exitErr *engine.ExitError
	if errors.As(err, &exitErr) && exitErr.Code > 0 {
		return exitErr.Code
	}

	var errno syscall.Errno
	if errors.As(err, &errno) && errno != 0 && int(errno) < 256 {
		return int(errno)
	}

	return 1
}
