// Package config provides configuration management for proctool.
// It loads settings from an optional config file and PROCTOOL_* environment
// variables. None of the settings change the command grammar.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/paveg/proctool/internal/logutil"
	"github.com/paveg/proctool/internal/process"
)

// Static error variables to satisfy err113 linter
var (
	ErrInvalidPromptMode = errors.New("invalid prompt mode")
	ErrInvalidLogLevel   = errors.New("invalid log level")
	ErrInvalidLogFormat  = errors.New("invalid log format")
	ErrNegativeWait      = errors.New("terminate wait cannot be negative")
)

// DefaultPrompt is the prompt printed before every command.
const DefaultPrompt = "Enter command (create <app>, terminate <pid>, suspend <pid>, resume <pid>, exit): "

// Prompt modes
const (
	PromptAlways = "always" // print the prompt unconditionally
	PromptAuto   = "auto"   // print the prompt only when stdin is a terminal
	PromptNever  = "never"  // never print the prompt
)

// Config represents the application configuration
type Config struct {
	Prompt    *PromptConfig    `mapstructure:"prompt" yaml:"prompt"`
	Log       *LogConfig       `mapstructure:"log" yaml:"log"`
	Terminate *TerminateConfig `mapstructure:"terminate" yaml:"terminate"`
}

// PromptConfig controls the interactive prompt
type PromptConfig struct {
	Text string `mapstructure:"text" yaml:"text"`
	Mode string `mapstructure:"mode" yaml:"mode"`
}

// LogConfig controls diagnostics written to stderr
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// TerminateConfig controls forced termination
type TerminateConfig struct {
	ExitCode uint32        `mapstructure:"exit_code" yaml:"exit_code"`
	Wait     time.Duration `mapstructure:"wait" yaml:"wait"`
}

// Load loads configuration from file and environment
func Load() (*Config, error) {
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var configNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	defaults := Default()
	if cfg.Prompt == nil {
		cfg.Prompt = defaults.Prompt
	}
	if cfg.Log == nil {
		cfg.Log = defaults.Log
	}
	if cfg.Terminate == nil {
		cfg.Terminate = defaults.Terminate
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("prompt.text", DefaultPrompt)
	viper.SetDefault("prompt.mode", PromptAlways)

	viper.SetDefault("log.level", "warn")
	viper.SetDefault("log.format", logutil.FormatText)

	viper.SetDefault("terminate.exit_code", process.DefaultExitCode)
	viper.SetDefault("terminate.wait", process.DefaultExitWait.String())
}

// Default returns the configuration used when nothing is configured
func Default() *Config {
	return &Config{
		Prompt: &PromptConfig{
			Text: DefaultPrompt,
			Mode: PromptAlways,
		},
		Log: &LogConfig{
			Level:  "warn",
			Format: logutil.FormatText,
		},
		Terminate: &TerminateConfig{
			ExitCode: process.DefaultExitCode,
			Wait:     process.DefaultExitWait,
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Prompt != nil {
		switch c.Prompt.Mode {
		case PromptAlways, PromptAuto, PromptNever:
		default:
			return fmt.Errorf("%w: %q", ErrInvalidPromptMode, c.Prompt.Mode)
		}
	}

	if c.Log != nil {
		if _, err := logutil.ParseLevel(c.Log.Level); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Log.Level)
		}
		switch c.Log.Format {
		case logutil.FormatText, logutil.FormatJSON:
		default:
			return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.Log.Format)
		}
	}

	if c.Terminate != nil && c.Terminate.Wait < 0 {
		return fmt.Errorf("%w: %s", ErrNegativeWait, c.Terminate.Wait)
	}

	return nil
}

// yamlTerminate renders the wait as a duration string instead of nanoseconds.
type yamlTerminate struct {
	ExitCode uint32 `yaml:"exit_code"`
	Wait     string `yaml:"wait"`
}

type yamlConfig struct {
	Prompt    *PromptConfig  `yaml:"prompt,omitempty"`
	Log       *LogConfig     `yaml:"log,omitempty"`
	Terminate *yamlTerminate `yaml:"terminate,omitempty"`
}

// YAML renders the configuration in the format Load reads back.
func (c *Config) YAML() ([]byte, error) {
	view := yamlConfig{Prompt: c.Prompt, Log: c.Log}
	if c.Terminate != nil {
		view.Terminate = &yamlTerminate{
			ExitCode: c.Terminate.ExitCode,
			Wait:     c.Terminate.Wait.String(),
		}
	}

	out, err := yaml.Marshal(view)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return out, nil
}
