// Package config provides configuration management for promptctl.
//
// This file contains config loading functionality including:
// - XDG config path detection
// - TOML file parsing
// - Environment variable overrides
// - Validation
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// DetectConfigPath searches for a config file using XDG standard paths.
// Returns the first config file found, or empty string if none exists.
//
// Search order:
// 1. ~/.config/promptctl/config.toml
//
// Returns empty string if no config file is found (caller should use defaults).
func DetectConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	configPath := filepath.Join(homeDir, ".config", "promptctl", "config.toml")
	if _, err := os.Stat(configPath); err == nil {
		return configPath
	}

	return ""
}

// Load loads a config from the specified path.
// If the file doesn't exist, returns an error.
// After loading, applies environment variable overrides and validates.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	// Start with defaults
	cfg := DefaultConfig()

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	applyEnvOverrides(cfg)
	expandPaths(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// LoadWithDefaults loads a config from the given path, or from the XDG
// standard paths when path is empty. If no config file is found, returns a
// config with all default values. If a config file is found but fails to
// load/validate, returns an error.
func LoadWithDefaults(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}

	configPath := DetectConfigPath()
	if configPath == "" {
		cfg := DefaultConfig()
		applyEnvOverrides(cfg)
		expandPaths(cfg)
		return cfg, nil
	}

	return Load(configPath)
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables follow the pattern: PROMPTCTL_<SECTION>_<FIELD>
//
// Examples:
// - PROMPTCTL_SERVER_BASE_URL overrides [server].base_url
// - PROMPTCTL_LISTS_PAGE_SIZE overrides [lists].page_size
// - PROMPTCTL_TUI_ENABLED overrides [tui].enabled
//
// Boolean fields: use "true"/"false" strings.
func applyEnvOverrides(c *Config) {
	applyString := func(key string, target *string) {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			*target = val
		}
	}

	applyBool := func(key string, target *bool) {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			switch strings.ToLower(val) {
			case "true", "1", "yes", "on":
				*target = true
			case "false", "0", "no", "off":
				*target = false
			}
		}
	}

	applyInt := func(key string, target *int) {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			var i int
			if _, err := fmt.Sscanf(val, "%d", &i); err == nil {
				*target = i
			}
		}
	}

	// Server section
	applyString("PROMPTCTL_SERVER_BASE_URL", &c.Server.BaseURL)
	applyInt("PROMPTCTL_SERVER_TIMEOUT_SECONDS", &c.Server.TimeoutSeconds)

	// Session section
	applyString("PROMPTCTL_SESSION_STATE_DIR", &c.Session.StateDir)

	// Lists section
	applyInt("PROMPTCTL_LISTS_PAGE_SIZE", &c.Lists.PageSize)
	applyString("PROMPTCTL_LISTS_ORDERING", &c.Lists.Ordering)

	// TUI section
	applyBool("PROMPTCTL_TUI_ENABLED", &c.TUI.Enabled)
	applyBool("PROMPTCTL_TUI_SHOW_HELP", &c.TUI.ShowHelp)
	applyInt("PROMPTCTL_TUI_SEARCH_DEBOUNCE_MS", &c.TUI.SearchDebounceMS)

	// Logging section
	applyString("PROMPTCTL_LOGGING_LEVEL", &c.Logging.Level)
	applyString("PROMPTCTL_LOGGING_FILE", &c.Logging.File)
	applyInt("PROMPTCTL_LOGGING_MAX_SIZE_MB", &c.Logging.MaxSizeMB)
	applyInt("PROMPTCTL_LOGGING_MAX_BACKUPS", &c.Logging.MaxBackups)

	// Export section
	applyString("PROMPTCTL_EXPORT_DIR", &c.Export.Dir)
}

// expandPaths expands ~ to the home directory in path-valued fields.
func expandPaths(c *Config) {
	expand := func(p string) string {
		if strings.HasPrefix(p, "~/") || p == "~" {
			homeDir, err := os.UserHomeDir()
			if err == nil {
				return filepath.Join(homeDir, strings.TrimPrefix(p, "~/"))
			}
		}
		return p
	}

	c.Session.StateDir = expand(c.Session.StateDir)
	c.Logging.File = expand(c.Logging.File)
	c.Export.Dir = expand(c.Export.Dir)
}
