package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	apperrors "github.com/chazuruo/promptctl/internal/errors"
)

// StatusOutput summarizes connectivity and session health.
type StatusOutput struct {
	Server     string `json:"server"`
	Reachable  bool   `json:"reachable"`
	LoggedIn   bool   `json:"logged_in"`
	Email      string `json:"email,omitempty"`
	Org        string `json:"organization,omitempty"`
	SessionErr string `json:"session_error,omitempty"`
	Prompts    *int   `json:"prompts,omitempty"`
	Workflows  *int   `json:"workflows,omitempty"`
	Teams      *int   `json:"teams,omitempty"`
}

// Status checks the backend and the persisted session. A stale session is
// reported, not treated as a command failure.
func (a *App) Status(ctx context.Context) *StatusOutput {
	out := &StatusOutput{Server: a.Config.Server.BaseURL}

	st, err := a.RequireSession()
	if err != nil {
		out.SessionErr = err.Error()
	} else {
		if st.User != nil {
			out.Email = st.User.Email
		}
		if st.Organization != nil {
			out.Org = st.Organization.Name
		}
	}

	// Me doubles as the reachability and auth probe.
	if _, err := a.Client.Me(ctx); err != nil {
		if apperrors.IsUnreachable(err) {
			return out
		}
		out.Reachable = true
		if apperrors.IsUnauthorized(err) && out.SessionErr == "" {
			out.SessionErr = "session expired; run `promptctl login`"
		}
		return out
	}
	out.Reachable = true
	out.LoggedIn = true
	a.fillCounts(ctx, out)
	return out
}

// fillCounts adds the org dashboard numbers. Count failures leave the field
// nil rather than failing the whole status report.
func (a *App) fillCounts(ctx context.Context, out *StatusOutput) {
	if prompts, err := a.ListPrompts(ctx, PromptListOptions{Page: 1}); err == nil {
		out.Prompts = &prompts.Count
	}
	if workflows, err := a.ListWorkflows(ctx, "", 1); err == nil {
		out.Workflows = &workflows.Count
	}
	if teams, err := a.ListTeams(ctx, 1); err == nil {
		out.Teams = &teams.Count
	}
}

// PrintStatus prints status in plain text format.
func PrintStatus(out *StatusOutput) {
	fmt.Printf("Server: %s\n", out.Server)
	fmt.Printf("Reachable: %v\n", out.Reachable)
	fmt.Printf("Logged in: %v\n", out.LoggedIn)
	if out.Email != "" {
		fmt.Printf("User: %s\n", out.Email)
	}
	if out.Org != "" {
		fmt.Printf("Organization: %s\n", out.Org)
	}
	if out.SessionErr != "" {
		fmt.Printf("Session: %s\n", out.SessionErr)
	}
	if out.Prompts != nil {
		fmt.Printf("Prompts: %d\n", *out.Prompts)
	}
	if out.Workflows != nil {
		fmt.Printf("Workflows: %d\n", *out.Workflows)
	}
	if out.Teams != nil {
		fmt.Printf("Teams: %d\n", *out.Teams)
	}
}

// PrintStatusJSON prints status in JSON format.
func PrintStatusJSON(out *StatusOutput) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
