// Package app provides high-level application logic for promptctl commands.
package app

import (
	"fmt"
	"time"

	"github.com/chazuruo/promptctl/internal/api"
	"github.com/chazuruo/promptctl/internal/config"
	"github.com/chazuruo/promptctl/internal/logging"
	"github.com/chazuruo/promptctl/internal/session"
)

// App bundles what every command needs: the loaded config, the API client,
// and the session state directory.
type App struct {
	Config *config.Config
	Client *api.Client
}

// New builds an App from a loaded config.
func New(cfg *config.Config) (*App, error) {
	if err := logging.Setup(cfg.Logging); err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}
	client, err := api.New(cfg.Server.BaseURL, time.Duration(cfg.Server.TimeoutSeconds)*time.Second)
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}
	return &App{Config: cfg, Client: client}, nil
}

// FromConfigPath loads the config (defaults + file + env) and builds an App.
func FromConfigPath(configPath string) (*App, error) {
	cfg, err := config.LoadWithDefaults(configPath)
	if err != nil {
		return nil, err
	}
	return New(cfg)
}

// StateDir returns the session state directory.
func (a *App) StateDir() string {
	return a.Config.Session.StateDir
}

// RequireSession restores the persisted session into the client and returns
// it. Commands that need authentication call this first.
func (a *App) RequireSession() (*session.State, error) {
	return session.Resume(a.Client, a.StateDir())
}

// PageSize returns the configured list page size.
func (a *App) PageSize() int {
	return a.Config.Lists.PageSize
}

// Debounce returns the configured picker search debounce.
func (a *App) Debounce() time.Duration {
	return time.Duration(a.Config.TUI.SearchDebounceMS) * time.Millisecond
}

// withOrg is a convenience for ops that need both session and org id.
func (a *App) withOrg() (*session.State, string, error) {
	st, err := a.RequireSession()
	if err != nil {
		return nil, "", err
	}
	return st, st.OrgID(), nil
}
