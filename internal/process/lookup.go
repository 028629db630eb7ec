package process

import (
	"errors"
	"fmt"
	"slices"

	gopsprocess "github.com/shirou/gopsutil/v4/process"
)

// lookupProcess checks that pid names a live process. A zombie has already
// exited and only waits to be reaped, so it counts as gone.
func lookupProcess(pid PID) error {
	proc, err := gopsprocess.NewProcess(int32(pid)) //nolint:gosec // PID validated against maxPID
	if err != nil {
		if errors.Is(err, gopsprocess.ErrorProcessNotRunning) {
			return fmt.Errorf("%w: %d", ErrProcessNotFound, uint32(pid))
		}
		return fmt.Errorf("failed to look up process %d: %w", uint32(pid), err)
	}

	// Status is not implemented everywhere; only a positive zombie answer matters.
	if statuses, err := proc.Status(); err == nil && slices.Contains(statuses, gopsprocess.Zombie) {
		return fmt.Errorf("%w: %d has exited", ErrProcessNotFound, uint32(pid))
	}
	return nil
}

// threadCount returns the number of threads in pid, or -1 when unknown.
func threadCount(pid PID) int {
	proc, err := gopsprocess.NewProcess(int32(pid)) //nolint:gosec // PID validated against maxPID
	if err != nil {
		return -1
	}
	n, err := proc.NumThreads()
	if err != nil {
		return -1
	}
	return int(n)
}
