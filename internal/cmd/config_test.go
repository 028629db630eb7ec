package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paveg/proctool/internal/config"
)

func TestConfigInit(t *testing.T) {
	t.Run("creates_default_file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "proctool.yml")

		out, _, err := executeCommand(t, &mockController{}, "", "config", "init", "--file", path)

		require.NoError(t, err)
		assert.Contains(t, out, "Configuration file created: "+path)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		expected, err := config.Default().YAML()
		require.NoError(t, err)
		assert.Equal(t, string(expected), string(content))
	})

	t.Run("keeps_existing_file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "proctool.yml")
		require.NoError(t, os.WriteFile(path, []byte("log:\n  level: info\n"), 0o600))

		out, _, err := executeCommand(t, &mockController{}, "", "config", "init", "--file", path)

		require.NoError(t, err)
		assert.Contains(t, out, "already exists")

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "log:\n  level: info\n", string(content))
	})

	t.Run("force_overwrites", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "proctool.yml")
		require.NoError(t, os.WriteFile(path, []byte("log:\n  level: info\n"), 0o600))

		_, _, err := executeCommand(t, &mockController{}, "", "config", "init", "--file", path, "--force")
		require.NoError(t, err)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "exit_code: 1")
		assert.NoFileExists(t, path+".tmp")
	})
}

func TestConfigShow(t *testing.T) {
	t.Run("defaults_without_file", func(t *testing.T) {
		out, _, err := executeCommand(t, &mockController{}, "", "config", "show")

		require.NoError(t, err)
		assert.NotContains(t, out, "# Config file:")
		assert.Contains(t, out, "mode: always")
		assert.Contains(t, out, "level: warn")
		assert.Contains(t, out, "wait: 2s")
	})

	t.Run("merges_file_over_defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "proctool.yml")
		require.NoError(t, os.WriteFile(path, []byte("terminate:\n  exit_code: 9\n"), 0o600))

		out, _, err := executeCommand(t, &mockController{}, "", "config", "show", "--config", path)

		require.NoError(t, err)
		assert.Contains(t, out, "# Config file: "+path)
		assert.Contains(t, out, "exit_code: 9")
		assert.Contains(t, out, "level: warn")
	})
}
