// This file defines the identifiers, results and errors shared by every platform.

package process

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Static error variables to satisfy err113 linter
var (
	ErrInvalidPID      = errors.New("invalid PID")
	ErrEmptyPath       = errors.New("empty executable path")
	ErrProcessNotFound = errors.New("process not found")
	ErrAccessDenied    = errors.New("access denied")
)

// PID is an operating-system process identifier.
type PID uint32

// maxPID is the largest PID accepted. Larger values become negative when
// handed to kill(2), which would address a process group instead.
const maxPID = math.MaxInt32

// ParsePID parses a decimal PID. Zero and out-of-range values are rejected.
func ParsePID(s string) (PID, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPID, s)
	}
	pid := PID(n)
	if err := pid.Validate(); err != nil {
		return 0, err
	}
	return pid, nil
}

// Validate reports whether the PID can name a target process.
func (p PID) Validate() error {
	if p == 0 || p > maxPID {
		return fmt.Errorf("%w: %d", ErrInvalidPID, uint32(p))
	}
	return nil
}

func (p PID) String() string {
	return strconv.FormatUint(uint64(p), 10)
}

// ProcInfo describes a process created by Controller.Create.
// It carries no OS handles; they are released before Create returns.
type ProcInfo struct {
	PID       PID       `json:"pid"`
	Path      string    `json:"path"`
	Args      []string  `json:"args"`
	StartedAt time.Time `json:"started_at"`
}

// Kind classifies a failure by the step that produced it.
type Kind int

// Failure kinds
const (
	KindArgument  Kind = iota + 1 // input rejected before any OS call
	KindHandle                    // the target process could not be opened
	KindOperation                 // the OS call failed on a valid handle
)

func (k Kind) String() string {
	switch k {
	case KindArgument:
		return "argument"
	case KindHandle:
		return "handle"
	case KindOperation:
		return "operation"
	default:
		return "unknown"
	}
}

// Operation names used in errors and logs
const (
	OpCreate    = "create"
	OpTerminate = "terminate"
	OpSuspend   = "suspend"
	OpResume    = "resume"
)

// Error records a failed process operation.
type Error struct {
	Op   string
	PID  PID
	Path string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	target := e.Path
	if target == "" {
		target = "pid " + e.PID.String()
	}
	return fmt.Sprintf("%s %s: %v", e.Op, target, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Code returns the raw OS error code behind the failure, or 0 when the
// failure did not come from the OS.
func (e *Error) Code() uint32 {
	return osErrorCode(e.Err)
}

// IsHandleError reports whether err means the target process could not be opened.
func IsHandleError(err error) bool {
	var pe *Error
	return errors.As(err, &pe) && pe.Kind == KindHandle
}

// ErrorCode returns the raw OS error code carried by err, or 0.
func ErrorCode(err error) uint32 {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Code()
	}
	return osErrorCode(err)
}
