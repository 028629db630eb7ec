//go:build windows
// +build windows

package process

import (
	"fmt"
	"os/exec"
	"syscall"

	"golang.org/x/sys/windows"
)

// codeFileNotFound is reported when the executable does not exist.
const codeFileNotFound = uint32(windows.ERROR_FILE_NOT_FOUND)

// childProcAttr starts children in a new process group, which keeps console
// Ctrl-C events at the prompt away from them.
func childProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP}
}

// detach closes the process handle returned by creation. Nothing waits on
// the child afterwards.
func detach(cmd *exec.Cmd) error {
	if err := cmd.Process.Release(); err != nil {
		return fmt.Errorf("failed to release process handle: %w", err)
	}
	return nil
}
