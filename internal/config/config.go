// Package config provides configuration management for promptctl.
//
// The configuration is stored in TOML format and supports validation
// and default values for all fields.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
)

// Config is the top-level configuration struct for promptctl.
// It contains all configuration sections as embedded structs.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Session SessionConfig `toml:"session"`
	Lists   ListsConfig   `toml:"lists"`
	TUI     TUIConfig     `toml:"tui"`
	Logging LoggingConfig `toml:"logging"`
	Export  ExportConfig  `toml:"export"`
}

// ServerConfig contains backend connection settings.
type ServerConfig struct {
	// BaseURL is the root of the promptbox REST API, up to but not
	// including /api (e.g. "https://promptbox.example.com").
	BaseURL string `toml:"base_url"`

	// TimeoutSeconds is the per-request HTTP timeout. 0 means no timeout.
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// SessionConfig contains session persistence settings.
type SessionConfig struct {
	// StateDir is where the session file (cookies + cached identity) lives.
	StateDir string `toml:"state_dir"`
}

// ListsConfig contains list/pagination settings.
type ListsConfig struct {
	// PageSize is the page size requested from paginated list endpoints.
	PageSize int `toml:"page_size"`

	// Ordering is the default ordering param for prompt listings.
	Ordering string `toml:"ordering"`
}

// TUIConfig contains terminal UI settings.
type TUIConfig struct {
	// Enabled controls whether to use the TUI (when false, falls back to
	// plain table/JSON output).
	Enabled bool `toml:"enabled"`

	// ShowHelp controls whether to show the key-binding help line.
	ShowHelp bool `toml:"show_help"`

	// SearchDebounceMS is the delay before a picker search keystroke
	// actually issues a request.
	SearchDebounceMS int `toml:"search_debounce_ms"`
}

// LoggingConfig contains log file settings.
type LoggingConfig struct {
	// Level is the zerolog level name: debug, info, warn, error.
	Level string `toml:"level"`

	// File is the log file path. Empty disables file logging.
	File string `toml:"file"`

	// MaxSizeMB is the rotation threshold for the log file.
	MaxSizeMB int `toml:"max_size_mb"`

	// MaxBackups is how many rotated files to keep.
	MaxBackups int `toml:"max_backups"`
}

// ExportConfig contains export settings.
type ExportConfig struct {
	// Dir is the default directory for exported YAML files.
	Dir string `toml:"dir"`
}

// DefaultConfig returns a Config with all default values set.
func DefaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	stateDir := filepath.Join(homeDir, ".local", "state", "promptctl")

	return &Config{
		Server: ServerConfig{
			BaseURL:        "http://localhost:8000",
			TimeoutSeconds: 30,
		},
		Session: SessionConfig{
			StateDir: stateDir,
		},
		Lists: ListsConfig{
			PageSize: 10,
			Ordering: "name",
		},
		TUI: TUIConfig{
			Enabled:          true,
			ShowHelp:         true,
			SearchDebounceMS: 250,
		},
		Logging: LoggingConfig{
			Level:      "info",
			File:       filepath.Join(stateDir, "promptctl.log"),
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
		Export: ExportConfig{
			Dir: ".",
		},
	}
}

// Validate checks the configuration for valid values.
// Returns a nil error if the config is valid, or an error describing the problem.
func (c *Config) Validate() error {
	// Validate Server section
	if c.Server.BaseURL == "" {
		return fmt.Errorf("server.base_url cannot be empty")
	}
	u, err := url.Parse(c.Server.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("server.base_url must be an absolute URL; got %q", c.Server.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("server.base_url scheme must be http or https; got %q", u.Scheme)
	}
	if c.Server.TimeoutSeconds < 0 {
		return fmt.Errorf("server.timeout_seconds must be >= 0; got %d", c.Server.TimeoutSeconds)
	}

	// Validate Session section
	if c.Session.StateDir == "" {
		return fmt.Errorf("session.state_dir cannot be empty")
	}

	// Validate Lists section
	if c.Lists.PageSize < 1 {
		return fmt.Errorf("lists.page_size must be >= 1; got %d", c.Lists.PageSize)
	}
	validOrderings := map[string]bool{
		"name":        true,
		"-name":       true,
		"created_at":  true,
		"-created_at": true,
	}
	if !validOrderings[c.Lists.Ordering] {
		return fmt.Errorf("lists.ordering must be one of: name, -name, created_at, -created_at; got %q", c.Lists.Ordering)
	}

	// Validate TUI section
	if c.TUI.SearchDebounceMS < 0 {
		return fmt.Errorf("tui.search_debounce_ms must be >= 0; got %d", c.TUI.SearchDebounceMS)
	}

	// Validate Logging section
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error; got %q", c.Logging.Level)
	}
	if c.Logging.MaxSizeMB < 1 {
		return fmt.Errorf("logging.max_size_mb must be >= 1; got %d", c.Logging.MaxSizeMB)
	}
	if c.Logging.MaxBackups < 0 {
		return fmt.Errorf("logging.max_backups must be >= 0; got %d", c.Logging.MaxBackups)
	}

	// Validate Export section
	if c.Export.Dir == "" {
		return fmt.Errorf("export.dir cannot be empty")
	}

	return nil
}
