package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var createCmd = &cobra.Command{
	Use:   "create <app> [args...]",
	Short: "Start a new process and print its PID",
	Long: `Start a program and print the PID of the new process.
Arguments after the program are passed to it unchanged, including ones
that look like flags.

Examples:
  proctool create notepad.exe
  proctool create sleep 60
  proctool create ls -la /tmp`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		cmd.SilenceUsage = true

		if err := runCreate(newController(cfg), cmd.OutOrStdout(), args[0], args[1:]); err != nil {
			return fmt.Errorf("%w: create %s: %w", ErrCommandFailed, args[0], err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(createCmd)

	// Everything after the program name belongs to the program.
	createCmd.Flags().SetInterspersed(false)
}
