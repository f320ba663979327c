package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NotNil(t, cfg)

	assert.Equal(t, "http://localhost:8000", cfg.Server.BaseURL)
	assert.Equal(t, 30, cfg.Server.TimeoutSeconds)
	assert.Equal(t, 10, cfg.Lists.PageSize)
	assert.Equal(t, "name", cfg.Lists.Ordering)
	assert.True(t, cfg.TUI.Enabled)
	assert.Equal(t, 250, cfg.TUI.SearchDebounceMS)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.NotEmpty(t, cfg.Session.StateDir)

	// Defaults must validate
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid defaults",
			mutate: func(c *Config) {},
		},
		{
			name:    "empty base url",
			mutate:  func(c *Config) { c.Server.BaseURL = "" },
			wantErr: "server.base_url",
		},
		{
			name:    "relative base url",
			mutate:  func(c *Config) { c.Server.BaseURL = "/api" },
			wantErr: "absolute URL",
		},
		{
			name:    "bad scheme",
			mutate:  func(c *Config) { c.Server.BaseURL = "ftp://host" },
			wantErr: "scheme",
		},
		{
			name:    "negative timeout",
			mutate:  func(c *Config) { c.Server.TimeoutSeconds = -1 },
			wantErr: "timeout_seconds",
		},
		{
			name:    "zero page size",
			mutate:  func(c *Config) { c.Lists.PageSize = 0 },
			wantErr: "page_size",
		},
		{
			name:    "bad ordering",
			mutate:  func(c *Config) { c.Lists.Ordering = "priority" },
			wantErr: "lists.ordering",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Logging.Level = "trace2" },
			wantErr: "logging.level",
		},
		{
			name:    "empty state dir",
			mutate:  func(c *Config) { c.Session.StateDir = "" },
			wantErr: "state_dir",
		},
		{
			name:    "negative debounce",
			mutate:  func(c *Config) { c.TUI.SearchDebounceMS = -5 },
			wantErr: "search_debounce_ms",
		},
		{
			name:    "empty export dir",
			mutate:  func(c *Config) { c.Export.Dir = "" },
			wantErr: "export.dir",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tt.wantErr),
				"error %q should mention %q", err.Error(), tt.wantErr)
		})
	}
}
