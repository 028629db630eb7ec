package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/paveg/proctool/internal/config"
	"github.com/paveg/proctool/internal/logutil"
)

// maxLineLength bounds one command line. Longer lines are discarded and
// reported as unknown commands.
const maxLineLength = 64 * 1024

// ShellOptions configures the interactive loop.
type ShellOptions struct {
	Prompt     string
	ShowPrompt bool
}

// Shell reads one command per line and runs it against a ProcessController.
// Every failure is reported and the loop continues; only exit or the end
// of input stops it.
type Shell struct {
	ctl    ProcessController
	in     *bufio.Reader
	out    io.Writer
	opts   ShellOptions
	logger *logutil.ComponentLogger
}

// NewShell creates a shell reading from in and writing to out.
func NewShell(ctl ProcessController, in io.Reader, out io.Writer, opts ShellOptions) *Shell {
	return &Shell{
		ctl:    ctl,
		in:     bufio.NewReader(in),
		out:    out,
		opts:   opts,
		logger: logutil.NewLogger("shell"),
	}
}

// Run executes commands until exit or end of input.
func (s *Shell) Run() error {
	for {
		if s.opts.ShowPrompt {
			fmt.Fprint(s.out, s.opts.Prompt)
		}

		line, tooLong, err := s.readLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("failed to read command: %w", err)
		}

		if tooLong {
			fmt.Fprintln(s.out, msgUnknownCommand)
			s.logger.Debug("discarded over-long command line", "limit", maxLineLength)
			continue
		}

		if s.execute(strings.Fields(line)) {
			return nil
		}
	}
}

// readLine reads one line without its terminator. A line longer than
// maxLineLength is consumed in full and reported with tooLong set.
// A final line without a newline is returned before io.EOF.
func (s *Shell) readLine() (string, bool, error) {
	var (
		buf     []byte
		tooLong bool
		started bool
	)
	for {
		chunk, isPrefix, err := s.in.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) && started {
				return string(buf), tooLong, nil
			}
			return "", false, err
		}
		started = true

		if !tooLong {
			if len(buf)+len(chunk) > maxLineLength {
				tooLong = true
				buf = nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		if !isPrefix {
			return string(buf), tooLong, nil
		}
	}
}

// execute runs one tokenized command line and reports whether the loop
// should stop.
func (s *Shell) execute(fields []string) bool {
	if len(fields) == 0 {
		return false
	}

	name := fields[0]
	log := s.logger.WithOperation(name)

	var err error
	switch name {
	case "exit":
		return true
	case "create":
		if len(fields) < 2 {
			fmt.Fprintln(s.out, msgCreateUsage)
			return false
		}
		err = runCreate(s.ctl, s.out, fields[1], fields[2:])
	default:
		action, ok := pidActions[name]
		if !ok {
			fmt.Fprintln(s.out, msgUnknownCommand)
			return false
		}
		if len(fields) < 2 {
			fmt.Fprintln(s.out, action.usage())
			return false
		}
		err = runPIDAction(s.ctl, s.out, action, fields[1])
	}

	if err != nil {
		log.Debug("command failed", "args", fields[1:], "error", err)
	}
	return false
}

// shellOptionsFromConfig resolves the prompt settings. interactive reports
// whether stdin is a terminal and only matters in auto mode.
func shellOptionsFromConfig(cfg *config.Config, interactive bool) ShellOptions {
	opts := ShellOptions{Prompt: cfg.Prompt.Text}
	switch cfg.Prompt.Mode {
	case config.PromptNever:
		opts.ShowPrompt = false
	case config.PromptAuto:
		opts.ShowPrompt = interactive
	default:
		opts.ShowPrompt = true
	}
	return opts
}
