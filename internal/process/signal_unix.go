//go:build !windows
// +build !windows

package process

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

// exitPollInterval is how often signalHandle re-checks a terminated process.
const exitPollInterval = 10 * time.Millisecond

// signalHandle addresses a process by PID alone. It is used where the kernel
// has no pidfd support, so the PID could in principle be reused between
// open and act.
type signalHandle struct {
	pid PID
}

func openSignalHandle(pid PID) (processHandle, error) {
	if err := unix.Kill(int(pid), 0); err != nil {
		return nil, classifyErrno(err)
	}
	return &signalHandle{pid: pid}, nil
}

func (h *signalHandle) signal(sig unix.Signal) error {
	if err := unix.Kill(int(h.pid), sig); err != nil {
		return classifyErrno(err)
	}
	return nil
}

// Terminate sends SIGKILL. Unix has no caller-chosen exit code for a kill.
func (h *signalHandle) Terminate(_ uint32) error { return h.signal(unix.SIGKILL) }

// Suspend sends SIGSTOP, which stops every thread in the process.
func (h *signalHandle) Suspend() error { return h.signal(unix.SIGSTOP) }

// Resume sends SIGCONT, which continues every thread in the process.
func (h *signalHandle) Resume() error { return h.signal(unix.SIGCONT) }

func (h *signalHandle) WaitExit(timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		if lookupProcess(h.pid) != nil {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(exitPollInterval)
	}
}

func (h *signalHandle) Close() error { return nil }

// classifyErrno maps a failed kill or pidfd call onto the package sentinels
// while keeping the errno in the chain.
func classifyErrno(err error) error {
	var errno unix.Errno
	if errors.As(err, &errno) {
		switch errno { //nolint:exhaustive // We only care about specific errno values
		case unix.ESRCH:
			return fmt.Errorf("%w: %w", ErrProcessNotFound, err)
		case unix.EPERM:
			return fmt.Errorf("%w: %w", ErrAccessDenied, err)
		}
	}
	return err
}
