package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/paveg/proctool/internal/config"
)

const defaultConfigPath = ".proctool.yml"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management commands",
	Long: `Manage proctool configuration: the prompt, diagnostic logging and
termination settings.`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize default configuration",
	Long: `Initialize a default configuration file in the current directory
or specified location. This creates a .proctool.yml file with the defaults.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		configPath := defaultConfigPath
		if configFile != "" {
			configPath = configFile
		}

		if _, err := os.Stat(configPath); err == nil && !force {
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration file %s already exists. Use --force to overwrite.\n", configPath)
			return nil
		}

		content, err := config.Default().YAML()
		if err != nil {
			return err
		}

		if err := WriteFileAtomic(configPath, content); err != nil {
			return fmt.Errorf("error creating configuration file: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created: %s\n", configPath)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the effective configuration, including defaults, as YAML.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		content, err := cfg.YAML()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if used := viper.ConfigFileUsed(); used != "" {
			fmt.Fprintf(out, "# Config file: %s\n", used)
		}
		_, err = out.Write(content)
		return err //nolint:wrapcheck // Writer errors are reported as-is
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)

	configInitCmd.Flags().StringVar(&configFile, "file", "", "configuration file path")
	configInitCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite existing configuration")
}
