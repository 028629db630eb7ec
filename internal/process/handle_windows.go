//go:build windows
// +build windows

package process

import (
	"errors"
	"fmt"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	threadSuspendResume = 0x0002
	suspendFailed       = ^uint32(0)
)

var (
	modkernel32       = windows.NewLazySystemDLL("kernel32.dll")
	procSuspendThread = modkernel32.NewProc("SuspendThread")
)

// Thread primitives used by winHandle. Tests replace them.
var (
	listThreads   = threadIDs
	suspendThread = suspendWinThread
	resumeThread  = resumeWinThread
)

// winHandle wraps a process handle opened with full access rights.
type winHandle struct {
	pid PID
	h   windows.Handle
}

func openHandle(pid PID) (processHandle, error) {
	h, err := windows.OpenProcess(windows.PROCESS_ALL_ACCESS, false, uint32(pid))
	if err != nil {
		return nil, classifyErrno(err)
	}
	if h == 0 || h == windows.InvalidHandle {
		return nil, fmt.Errorf("%w: invalid handle for %d", ErrProcessNotFound, uint32(pid))
	}
	return &winHandle{pid: pid, h: h}, nil
}

func (h *winHandle) Terminate(exitCode uint32) error {
	if err := windows.TerminateProcess(h.h, exitCode); err != nil {
		return classifyErrno(err)
	}
	return nil
}

func (h *winHandle) WaitExit(timeout time.Duration) bool {
	event, err := windows.WaitForSingleObject(h.h, uint32(timeout.Milliseconds()))
	return err == nil && event == windows.WAIT_OBJECT_0
}

// Suspend suspends every thread of the process. If one thread cannot be
// suspended, the threads suspended so far are resumed again.
func (h *winHandle) Suspend() error {
	tids, err := listThreads(h.pid)
	if err != nil {
		return err
	}

	suspended := make([]uint32, 0, len(tids))
	for _, tid := range tids {
		if err := suspendThread(tid); err != nil {
			if rerr := resumeThreads(suspended); rerr != nil {
				err = errors.Join(err, rerr)
			}
			return err
		}
		suspended = append(suspended, tid)
	}
	return nil
}

// Resume resumes every thread of the process once.
func (h *winHandle) Resume() error {
	tids, err := listThreads(h.pid)
	if err != nil {
		return err
	}
	return resumeThreads(tids)
}

func (h *winHandle) Close() error {
	if err := windows.CloseHandle(h.h); err != nil {
		return fmt.Errorf("failed to close handle for %d: %w", uint32(h.pid), err)
	}
	return nil
}

// threadIDs lists the threads owned by pid from a Toolhelp32 snapshot.
func threadIDs(pid PID) ([]uint32, error) {
	snap, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPTHREAD, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot threads: %w", err)
	}
	defer func() { _ = windows.CloseHandle(snap) }() //nolint:errcheck // Snapshot is read-only

	var entry windows.ThreadEntry32
	entry.Size = uint32(unsafe.Sizeof(entry))

	var tids []uint32
	for err = windows.Thread32First(snap, &entry); err == nil; err = windows.Thread32Next(snap, &entry) {
		if entry.OwnerProcessID == uint32(pid) {
			tids = append(tids, entry.ThreadID)
		}
	}
	if !errors.Is(err, windows.ERROR_NO_MORE_FILES) {
		return nil, fmt.Errorf("failed to enumerate threads: %w", err)
	}
	if len(tids) == 0 {
		return nil, fmt.Errorf("%w: %d has no threads", ErrProcessNotFound, uint32(pid))
	}
	return tids, nil
}

func suspendWinThread(tid uint32) error {
	th, err := windows.OpenThread(threadSuspendResume, false, tid)
	if err != nil {
		return fmt.Errorf("failed to open thread %d: %w", tid, classifyErrno(err))
	}
	defer func() { _ = windows.CloseHandle(th) }() //nolint:errcheck // Thread handle is scoped to this call

	r, _, callErr := procSuspendThread.Call(uintptr(th))
	if uint32(r) == suspendFailed {
		return fmt.Errorf("failed to suspend thread %d: %w", tid, callErr)
	}
	return nil
}

func resumeThreads(tids []uint32) error {
	var errs []error
	for _, tid := range tids {
		if err := resumeThread(tid); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func resumeWinThread(tid uint32) error {
	th, err := windows.OpenThread(threadSuspendResume, false, tid)
	if err != nil {
		return fmt.Errorf("failed to open thread %d: %w", tid, classifyErrno(err))
	}
	defer func() { _ = windows.CloseHandle(th) }() //nolint:errcheck // Thread handle is scoped to this call

	if _, err := windows.ResumeThread(th); err != nil {
		return fmt.Errorf("failed to resume thread %d: %w", tid, err)
	}
	return nil
}

// classifyErrno maps OpenProcess and friends onto the package sentinels.
// OpenProcess reports ERROR_INVALID_PARAMETER for a PID that does not exist.
func classifyErrno(err error) error {
	switch {
	case errors.Is(err, windows.ERROR_INVALID_PARAMETER):
		return fmt.Errorf("%w: %w", ErrProcessNotFound, err)
	case errors.Is(err, windows.ERROR_ACCESS_DENIED):
		return fmt.Errorf("%w: %w", ErrAccessDenied, err)
	default:
		return err
	}
}
