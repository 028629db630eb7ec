package process

import (
	"errors"
	"io/fs"
	"os/exec"
	"syscall"
)

// osErrorCode extracts the raw OS error code from err. A missing executable
// that never reached the OS reports the platform's file-not-found code.
func osErrorCode(err error) uint32 {
	if err == nil {
		return 0
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		return uint32(errno)
	}

	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, exec.ErrDot) || errors.Is(err, fs.ErrNotExist) {
		return codeFileNotFound
	}
	return 0
}
