package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// Version is the proctool release version.
var Version = "0.1.0"

var (
	rootCmd = &cobra.Command{
		Use:   "proctool",
		Short: "Create, terminate, suspend and resume OS processes",
		Long: `Proctool is a small command-line utility for controlling operating-system
processes. Run without arguments it reads one command per line from stdin:

  create <app> [args...]   start a program and print its PID
  terminate <pid>          force-kill a process
  suspend <pid>            pause every thread of a process
  resume <pid>             continue a suspended process
  exit                     leave the prompt

The same operations are available as one-shot subcommands.`,
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if verbose && viper.ConfigFileUsed() != "" {
				fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			cmd.SilenceUsage = true

			opts := shellOptionsFromConfig(cfg, stdinIsTerminal())
			shell := NewShell(newController(cfg), cmd.InOrStdin(), cmd.OutOrStdout(), opts)
			return shell.Run()
		},
	}
)

// Execute runs the root command
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
		return fmt.Errorf("command execution failed: %w", err)
	}
	return nil
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.proctool.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	if err := viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose")); err != nil {
		fmt.Printf("Warning: failed to bind verbose flag: %v\n", err)
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".proctool")
	}

	viper.SetEnvPrefix("PROCTOOL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) //nolint:gosec // File descriptors fit in int
}
