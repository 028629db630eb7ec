package logutil

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  slog.Level
		expectErr bool
	}{
		{name: "debug", input: "debug", expected: slog.LevelDebug},
		{name: "info_uppercase", input: "INFO", expected: slog.LevelInfo},
		{name: "empty_defaults_to_info", input: "", expected: slog.LevelInfo},
		{name: "warning_alias", input: "warning", expected: slog.LevelWarn},
		{name: "error_with_spaces", input: " error ", expected: slog.LevelError},
		{name: "unknown", input: "verbose", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, err := ParseLevel(tt.input)
			if tt.expectErr {
				require.ErrorIs(t, err, ErrUnknownLevel)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, level)
		})
	}
}

func TestSetup(t *testing.T) {
	t.Cleanup(func() {
		_ = Setup(slog.LevelWarn, FormatText, nil) //nolint:errcheck // Restoring defaults
	})

	t.Run("json_format_with_component", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Setup(slog.LevelDebug, FormatJSON, &buf))

		NewLogger("process").WithOperation("terminate").Debug("handle opened", "pid", 42)

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "handle opened", entry["msg"])
		assert.Equal(t, "process", entry["component"])
		assert.Equal(t, "terminate", entry["operation"])
		assert.InDelta(t, float64(42), entry["pid"], 0.001)
	})

	t.Run("level_filters_output", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Setup(slog.LevelWarn, FormatText, &buf))

		logger := NewLogger("shell")
		logger.Info("hidden")
		logger.Warn("shown")

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "shown")
		assert.Contains(t, buf.String(), "component=shell")
	})

	t.Run("enabled_follows_level", func(t *testing.T) {
		require.NoError(t, Setup(slog.LevelWarn, FormatText, &bytes.Buffer{}))

		logger := NewLogger("process").WithOperation("suspend")
		assert.False(t, logger.Enabled(slog.LevelDebug))
		assert.True(t, logger.Enabled(slog.LevelWarn))

		require.NoError(t, Setup(slog.LevelDebug, FormatText, &bytes.Buffer{}))
		assert.True(t, NewLogger("process").Enabled(slog.LevelDebug))
	})

	t.Run("unknown_format", func(t *testing.T) {
		err := Setup(slog.LevelInfo, "xml", nil)
		require.ErrorIs(t, err, ErrUnknownFormat)
	})

	t.Run("logger_created_before_setup_follows_it", func(t *testing.T) {
		logger := NewLogger("early")

		var buf bytes.Buffer
		require.NoError(t, Setup(slog.LevelInfo, FormatText, &buf))
		logger.WithFields("pid", 7).Info("late")

		assert.Contains(t, buf.String(), "component=early")
		assert.Contains(t, buf.String(), "pid=7")
		assert.Equal(t, "early", logger.Component())
	})
}
