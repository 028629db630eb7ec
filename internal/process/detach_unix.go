//go:build !windows
// +build !windows

package process

import (
	"os/exec"
	"syscall"
)

// codeFileNotFound is reported when the executable does not exist.
const codeFileNotFound = uint32(syscall.ENOENT)

// childProcAttr starts children in a process group of their own, so a
// Ctrl-C at the prompt is not delivered to them.
func childProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setpgid: true}
}

// detach hands the child to a reaper so it is not left as a zombie once it
// exits. Wait releases the child's resources.
func detach(cmd *exec.Cmd) error {
	go func() {
		_ = cmd.Wait() //nolint:errcheck // Exit status of a detached child is not reported
	}()
	return nil
}
