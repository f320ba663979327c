package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/chazuruo/promptctl/internal/session"
)

// Login signs in and persists the session context (user, first
// organization, cookies).
func (a *App) Login(ctx context.Context, email, password string) (*session.State, error) {
	return session.Establish(ctx, a.Client, a.StateDir(), email, password)
}

// Logout invalidates the backend session and removes the local state. A
// failed backend call still clears the local file so the user is logged out
// either way.
func (a *App) Logout(ctx context.Context) error {
	if st, err := a.RequireSession(); err == nil && st != nil {
		if err := a.Client.Logout(ctx); err != nil {
			log.Warn().Err(err).Msg("backend logout failed; clearing local session anyway")
		}
	}
	return session.Clear(a.StateDir())
}

// Register creates an account, then signs in to establish the session.
func (a *App) Register(ctx context.Context, name, email, password string) (*session.State, error) {
	if _, err := a.Client.Register(ctx, name, email, password); err != nil {
		return nil, err
	}
	return a.Login(ctx, email, password)
}

// WhoamiOutput contains the information displayed by the whoami command.
type WhoamiOutput struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	Organization string `json:"organization"`
	Server       string `json:"server"`
}

// Whoami returns the persisted identity without a network call.
func (a *App) Whoami() (*WhoamiOutput, error) {
	st, err := a.RequireSession()
	if err != nil {
		return nil, err
	}
	out := &WhoamiOutput{Server: a.Config.Server.BaseURL}
	if st.User != nil {
		out.Email = st.User.Email
		out.Name = st.User.Name
	}
	if st.Organization != nil {
		out.Organization = st.Organization.Name
	}
	return out, nil
}

// PrintWhoami prints whoami information in plain text format.
func PrintWhoami(out *WhoamiOutput) {
	fmt.Printf("User: %s <%s>\n", out.Name, out.Email)
	fmt.Printf("Organization: %s\n", out.Organization)
	fmt.Printf("Server: %s\n", out.Server)
}

// PrintWhoamiJSON prints whoami information in JSON format.
func PrintWhoamiJSON(out *WhoamiOutput) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
