package process

import (
	"errors"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/paveg/proctool/internal/logutil"
)

// Defaults applied by New
const (
	DefaultExitCode uint32 = 1
	DefaultExitWait        = 2 * time.Second
)

// processHandle is an open reference to a target process. Implementations
// live in the handle_<os>.go files.
type processHandle interface {
	Terminate(exitCode uint32) error
	Suspend() error
	Resume() error
	// WaitExit blocks until the process exits or timeout elapses and
	// reports whether it exited.
	WaitExit(timeout time.Duration) bool
	Close() error
}

// Controller performs one-shot create, terminate, suspend and resume
// operations. It keeps no state between calls.
type Controller struct {
	exitCode uint32
	exitWait time.Duration
	logger   *logutil.ComponentLogger

	lookup  func(PID) error
	open    func(PID) (processHandle, error)
	threads func(PID) int
}

// Option configures a Controller.
type Option func(*Controller)

// WithExitCode sets the exit code given to terminated processes where the
// platform supports one.
func WithExitCode(code uint32) Option {
	return func(c *Controller) { c.exitCode = code }
}

// WithExitWait bounds how long Terminate waits for the target to exit.
// Zero disables the wait.
func WithExitWait(d time.Duration) Option {
	return func(c *Controller) { c.exitWait = d }
}

// WithLogger sets the diagnostics logger.
func WithLogger(l *logutil.ComponentLogger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a Controller backed by the host operating system.
func New(opts ...Option) *Controller {
	c := &Controller{
		exitCode: DefaultExitCode,
		exitWait: DefaultExitWait,
		logger:   logutil.NewLogger("process"),
		lookup:   lookupProcess,
		open:     openHandle,
		threads:  threadCount,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Create starts path with args as its argument list and returns once the
// process is running. The returned ProcInfo holds no OS resources.
func (c *Controller) Create(path string, args []string) (*ProcInfo, error) {
	log := c.logger.WithOperation(OpCreate).WithFields("path", path)

	if strings.TrimSpace(path) == "" {
		return nil, &Error{Op: OpCreate, Path: path, Kind: KindArgument, Err: ErrEmptyPath}
	}

	cmd := exec.Command(path, args...) //nolint:gosec // Launching user-supplied programs is the purpose of create
	cmd.SysProcAttr = childProcAttr()

	if err := cmd.Start(); err != nil {
		perr := &Error{Op: OpCreate, Path: path, Kind: KindOperation, Err: err}
		log.Debug("failed to create process", "error", err, "code", perr.Code())
		return nil, perr
	}

	info := &ProcInfo{
		PID:       PID(cmd.Process.Pid), //nolint:gosec // OS PIDs are non-negative
		Path:      cmd.Path,
		Args:      args,
		StartedAt: time.Now(),
	}

	if err := detach(cmd); err != nil {
		log.Warn("failed to release process resources", "pid", info.PID, "error", err)
	}

	log.Debug("process created", "pid", info.PID, "args", args)
	return info, nil
}

// Terminate force-kills pid. There is no grace period.
func (c *Controller) Terminate(pid PID) error {
	log := c.logger.WithOperation(OpTerminate).WithFields("pid", pid)

	h, err := c.acquire(OpTerminate, pid)
	if err != nil {
		log.Debug("failed to open process", "error", err)
		return err
	}
	defer c.release(log, h)

	if err := h.Terminate(c.exitCode); err != nil {
		log.Debug("failed to terminate process", "error", err)
		return &Error{Op: OpTerminate, PID: pid, Kind: KindOperation, Err: err}
	}

	if c.exitWait > 0 && !h.WaitExit(c.exitWait) {
		log.Warn("process still running after terminate", "wait", c.exitWait)
	}

	log.Debug("process terminated", "exit_code", c.exitCode)
	return nil
}

// Suspend stops every thread of pid.
func (c *Controller) Suspend(pid PID) error {
	return c.act(OpSuspend, pid, processHandle.Suspend)
}

// Resume continues every thread of pid. Suspend counts are not tracked, so a
// process suspended several times may need as many resumes.
func (c *Controller) Resume(pid PID) error {
	return c.act(OpResume, pid, processHandle.Resume)
}

// Exists reports whether pid names a live process.
func (c *Controller) Exists(pid PID) bool {
	return pid.Validate() == nil && c.lookup(pid) == nil
}

func (c *Controller) act(op string, pid PID, fn func(processHandle) error) error {
	log := c.logger.WithOperation(op).WithFields("pid", pid)

	h, err := c.acquire(op, pid)
	if err != nil {
		log.Debug("failed to open process", "error", err)
		return err
	}
	defer c.release(log, h)

	if err := fn(h); err != nil {
		log.Debug("failed to "+op+" process", "error", err)
		return &Error{Op: op, PID: pid, Kind: KindOperation, Err: err}
	}

	if log.Enabled(slog.LevelDebug) {
		log.Debug("process "+op+"d", "threads", c.threads(pid))
	}
	return nil
}

// acquire validates pid and opens a handle to it. Any failure here happens
// before the requested action is attempted.
func (c *Controller) acquire(op string, pid PID) (processHandle, error) {
	if err := pid.Validate(); err != nil {
		return nil, &Error{Op: op, PID: pid, Kind: KindArgument, Err: err}
	}
	if err := c.lookup(pid); err != nil {
		return nil, &Error{Op: op, PID: pid, Kind: KindHandle, Err: err}
	}

	h, err := c.open(pid)
	if err != nil {
		return nil, &Error{Op: op, PID: pid, Kind: KindHandle, Err: err}
	}
	if h == nil {
		return nil, &Error{Op: op, PID: pid, Kind: KindHandle, Err: errors.New("nil process handle")} //nolint:err113 // Guard against broken openers
	}
	return h, nil
}

func (c *Controller) release(log *logutil.ComponentLogger, h processHandle) {
	if err := h.Close(); err != nil {
		log.Warn("failed to close process handle", "error", err)
	}
}
