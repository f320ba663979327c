package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Valid(t *testing.T) {
	path := writeTestConfig(t, `
[server]
base_url = "https://promptbox.example.com"
timeout_seconds = 15

[lists]
page_size = 25
ordering = "-created_at"

[tui]
enabled = false
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://promptbox.example.com", cfg.Server.BaseURL)
	assert.Equal(t, 15, cfg.Server.TimeoutSeconds)
	assert.Equal(t, 25, cfg.Lists.PageSize)
	assert.Equal(t, "-created_at", cfg.Lists.Ordering)
	assert.False(t, cfg.TUI.Enabled)

	// Unspecified sections keep defaults
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := writeTestConfig(t, `server = [broken`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}

func TestLoad_ValidationFailure(t *testing.T) {
	path := writeTestConfig(t, `
[lists]
page_size = 0
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page_size")
}

func TestEnvOverrides(t *testing.T) {
	path := writeTestConfig(t, `
[server]
base_url = "http://from-file:8000"
`)

	t.Setenv("PROMPTCTL_SERVER_BASE_URL", "http://from-env:9000")
	t.Setenv("PROMPTCTL_LISTS_PAGE_SIZE", "50")
	t.Setenv("PROMPTCTL_TUI_ENABLED", "false")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://from-env:9000", cfg.Server.BaseURL)
	assert.Equal(t, 50, cfg.Lists.PageSize)
	assert.False(t, cfg.TUI.Enabled)
}

func TestLoadWithDefaults_ExplicitPath(t *testing.T) {
	path := writeTestConfig(t, `
[server]
base_url = "http://explicit:8000"
`)

	cfg, err := LoadWithDefaults(path)
	require.NoError(t, err)
	assert.Equal(t, "http://explicit:8000", cfg.Server.BaseURL)

	// An explicit path that doesn't exist is an error, not a defaults
	// fallback.
	_, err = LoadWithDefaults(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestExpandPaths(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Session.StateDir = "~/state/promptctl"
	cfg.Export.Dir = "~/exports"
	expandPaths(cfg)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "state", "promptctl"), cfg.Session.StateDir)
	assert.Equal(t, filepath.Join(home, "exports"), cfg.Export.Dir)
}

func TestWriteRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.toml")

	cfg := DefaultConfig()
	cfg.Server.BaseURL = "https://rt.example.com"
	cfg.Lists.PageSize = 42

	require.NoError(t, Write(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://rt.example.com", loaded.Server.BaseURL)
	assert.Equal(t, 42, loaded.Lists.PageSize)
}
