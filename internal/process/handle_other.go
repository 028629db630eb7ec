//go:build !linux && !windows
// +build !linux,!windows

package process

func openHandle(pid PID) (processHandle, error) {
	return openSignalHandle(pid)
}
