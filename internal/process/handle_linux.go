//go:build linux
// +build linux

package process

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

// pidfdHandle holds a pidfd, which keeps referring to the same process even
// if its PID is reused.
type pidfdHandle struct {
	pid PID
	fd  int
}

func openHandle(pid PID) (processHandle, error) {
	fd, err := unix.PidfdOpen(int(pid), 0)
	if err != nil {
		if errors.Is(err, unix.ENOSYS) {
			return openSignalHandle(pid)
		}
		return nil, classifyErrno(err)
	}

	// pidfd_open does not check permission; signal 0 does.
	if err := unix.PidfdSendSignal(fd, 0, nil, 0); err != nil {
		_ = unix.Close(fd) //nolint:errcheck // Handle is discarded
		return nil, classifyErrno(err)
	}
	return &pidfdHandle{pid: pid, fd: fd}, nil
}

func (h *pidfdHandle) signal(sig unix.Signal) error {
	if err := unix.PidfdSendSignal(h.fd, sig, nil, 0); err != nil {
		return classifyErrno(err)
	}
	return nil
}

func (h *pidfdHandle) Terminate(_ uint32) error { return h.signal(unix.SIGKILL) }
func (h *pidfdHandle) Suspend() error           { return h.signal(unix.SIGSTOP) }
func (h *pidfdHandle) Resume() error            { return h.signal(unix.SIGCONT) }

// WaitExit polls the pidfd, which becomes readable once the process exits.
func (h *pidfdHandle) WaitExit(timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	fds := []unix.PollFd{{Fd: int32(h.fd), Events: unix.POLLIN}} //nolint:gosec // fd fits in int32
	for {
		remaining := time.Until(deadline)
		if remaining < 0 {
			remaining = 0
		}
		n, err := unix.Poll(fds, int(remaining.Milliseconds()))
		if errors.Is(err, unix.EINTR) {
			continue
		}
		return err == nil && n > 0
	}
}

func (h *pidfdHandle) Close() error {
	if err := unix.Close(h.fd); err != nil {
		return fmt.Errorf("failed to close pidfd for %d: %w", uint32(h.pid), err)
	}
	return nil
}
