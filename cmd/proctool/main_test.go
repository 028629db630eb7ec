package main

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runMain re-executes the test binary so that main runs in a child process.
func runMain(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := exec.CommandContext(context.Background(), os.Args[0], append([]string{"-test.run=^TestMainFunction$", "--"}, args...)...)
	cmd.Env = append(os.Environ(), "BE_MAIN=1", "HOME="+t.TempDir())
	cmd.Stdin = strings.NewReader(stdin)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func TestMainFunction(t *testing.T) {
	if os.Getenv("BE_MAIN") == "1" {
		for i, arg := range os.Args {
			if arg == "--" {
				os.Args = append([]string{"proctool"}, os.Args[i+1:]...)
				break
			}
		}
		main()
		os.Exit(0)
	}

	tests := []struct {
		name           string
		args           []string
		stdin          string
		expectExitCode int
		expectOutput   string
	}{
		{
			name:           "help_command",
			args:           []string{"--help"},
			expectExitCode: 0,
			expectOutput:   "Proctool",
		},
		{
			name:           "version_command",
			args:           []string{"--version"},
			expectExitCode: 0,
			expectOutput:   "proctool version",
		},
		{
			name:           "invalid_command",
			args:           []string{"invalid-command"},
			expectExitCode: 1,
			expectOutput:   "Error:",
		},
		{
			name:           "shell_exit",
			stdin:          "bogus\nexit\n",
			expectExitCode: 0,
			expectOutput:   "Unknown command.",
		},
		{
			name:           "invalid_pid_fails",
			args:           []string{"terminate", "abc"},
			expectExitCode: 1,
			expectOutput:   "Invalid PID.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := runMain(t, tt.stdin, tt.args...)

			if tt.expectExitCode == 0 {
				require.NoError(t, err, output)
			} else {
				var exitError *exec.ExitError
				require.True(t, errors.As(err, &exitError), "expected exit error, got %v", err)
				assert.Equal(t, tt.expectExitCode, exitError.ExitCode())
			}

			assert.Contains(t, output, tt.expectOutput)
		})
	}
}

func TestMainPackageStructure(t *testing.T) {
	t.Run("main_function_exists", func(t *testing.T) {
		content, err := os.ReadFile("main.go")
		require.NoError(t, err)

		contentStr := string(content)
		assert.Contains(t, contentStr, `"github.com/paveg/proctool/internal/cmd"`)
		assert.Contains(t, contentStr, "cmd.Execute()")
		assert.Contains(t, contentStr, "os.Exit(1)")
	})
}
