package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/paveg/proctool/internal/config"
	"github.com/paveg/proctool/internal/logutil"
	"github.com/paveg/proctool/internal/process"
)

// Common error definitions
var (
	ErrCommandFailed = errors.New("command failed")
)

// Common variables used across multiple commands
var (
	force      bool
	verbose    bool
	cfgFile    string
	configFile string
)

// User-facing messages shared by the shell and the one-shot subcommands
const (
	msgInvalidPID     = "Invalid PID."
	msgInvalidHandle  = "Invalid process handle."
	msgUnknownCommand = "Unknown command."
	msgCreateUsage    = "Usage: create <app_name>"
	msgCreateSuccess  = "Process created successfully. PID: %d"
	msgCreateFailure  = "Failed to create process. Error code: %d"
)

// ProcessController is the process-control surface the commands drive.
type ProcessController interface {
	Create(path string, args []string) (*process.ProcInfo, error)
	Terminate(pid process.PID) error
	Suspend(pid process.PID) error
	Resume(pid process.PID) error
}

// pidAction describes a command that takes a single PID argument.
type pidAction struct {
	name    string
	success string
	failure string
	run     func(ProcessController, process.PID) error
}

func (a pidAction) usage() string {
	return fmt.Sprintf("Usage: %s <pid>", a.name)
}

var pidActions = map[string]pidAction{
	process.OpTerminate: {
		name:    process.OpTerminate,
		success: "Process terminated.",
		failure: "Failed to terminate process.",
		run:     ProcessController.Terminate,
	},
	process.OpSuspend: {
		name:    process.OpSuspend,
		success: "Process suspended.",
		failure: "Failed to suspend process.",
		run:     ProcessController.Suspend,
	},
	process.OpResume: {
		name:    process.OpResume,
		success: "Process resumed.",
		failure: "Failed to resume process.",
		run:     ProcessController.Resume,
	},
}

// runPIDAction parses arg and runs a against it. Malformed input is reported
// without touching the controller.
func runPIDAction(ctl ProcessController, out io.Writer, a pidAction, arg string) error {
	pid, err := process.ParsePID(arg)
	if err != nil {
		fmt.Fprintln(out, msgInvalidPID)
		return err
	}

	if err := a.run(ctl, pid); err != nil {
		if process.IsHandleError(err) {
			fmt.Fprintln(out, msgInvalidHandle)
		}
		fmt.Fprintln(out, a.failure)
		return err
	}

	fmt.Fprintln(out, a.success)
	return nil
}

// runCreate starts path with args and reports the new PID or the OS error code.
func runCreate(ctl ProcessController, out io.Writer, path string, args []string) error {
	info, err := ctl.Create(path, args)
	if err != nil {
		fmt.Fprintf(out, msgCreateFailure+"\n", process.ErrorCode(err))
		return err
	}

	fmt.Fprintf(out, msgCreateSuccess+"\n", info.PID)
	return nil
}

// loadConfig loads and validates the configuration and points diagnostics
// at logOut with the configured level and format.
func loadConfig(logOut io.Writer) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	levelName := cfg.Log.Level
	if verbose {
		levelName = "debug"
	}
	level, err := logutil.ParseLevel(levelName)
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := logutil.Setup(level, strings.ToLower(cfg.Log.Format), logOut); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newController builds the controller from configuration. Tests replace it.
var newController = func(cfg *config.Config) ProcessController {
	return process.New(
		process.WithExitCode(cfg.Terminate.ExitCode),
		process.WithExitWait(cfg.Terminate.Wait),
		process.WithLogger(logutil.NewLogger("process")),
	)
}

// newPIDCommand builds the one-shot subcommand for a.
func newPIDCommand(a pidAction, short, long string) *cobra.Command {
	return &cobra.Command{
		Use:   a.name + " <pid>",
		Short: short,
		Long:  long,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			cmd.SilenceUsage = true

			if err := runPIDAction(newController(cfg), cmd.OutOrStdout(), a, args[0]); err != nil {
				return fmt.Errorf("%w: %s %s: %w", ErrCommandFailed, a.name, args[0], err)
			}
			return nil
		},
	}
}

// EnsureDirectory creates the parent directory of path if it doesn't exist
func EnsureDirectory(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// WriteFileAtomic writes file atomically using temp file + rename
func WriteFileAtomic(path string, content []byte) error {
	if err := EnsureDirectory(path); err != nil {
		return err
	}

	tempFile := path + ".tmp"
	if err := os.WriteFile(tempFile, content, 0o600); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := os.Rename(tempFile, path); err != nil {
		_ = os.Remove(tempFile) //nolint:errcheck // Best effort cleanup of temp file
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}
