// Package session holds the process-wide session context: the authenticated
// user, the current organization, and the backend session cookies.
//
// The original console re-derived "the current organization" on every page by
// fetching the organization list and taking the first entry. Here that
// happens exactly once — at login (or on the first authenticated command) —
// and every command reads the same persisted context until logout.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/chazuruo/promptctl/internal/api"
	apperrors "github.com/chazuruo/promptctl/internal/errors"
)

// stateFile is the session file name inside the state directory.
const stateFile = "session.json"

// State is the persisted session context.
type State struct {
	User         *api.User         `json:"user"`
	Organization *api.Organization `json:"organization"`
	Cookies      []Cookie          `json:"cookies"`
	SavedAt      time.Time         `json:"saved_at"`
}

// Cookie is the persistable subset of an HTTP cookie.
type Cookie struct {
	Name     string    `json:"name"`
	Value    string    `json:"value"`
	Path     string    `json:"path,omitempty"`
	Domain   string    `json:"domain,omitempty"`
	Expires  time.Time `json:"expires,omitempty"`
	Secure   bool      `json:"secure,omitempty"`
	HTTPOnly bool      `json:"http_only,omitempty"`
}

// Path returns the session file path for a state directory.
func Path(stateDir string) string {
	return filepath.Join(stateDir, stateFile)
}

// Load reads the persisted session. A missing file yields ErrUnauthorized —
// the operator has never logged in (or has logged out).
func Load(stateDir string) (*State, error) {
	data, err := os.ReadFile(Path(stateDir))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("no session found, run `promptctl login`: %w", apperrors.ErrUnauthorized)
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("parse session: %w", err)
	}
	return &st, nil
}

// Save persists the session. The file is operator-private.
func Save(stateDir string, st *State) error {
	if err := os.MkdirAll(stateDir, 0700); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	st.SavedAt = time.Now()
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	if err := os.WriteFile(Path(stateDir), data, 0600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Clear removes the persisted session. Missing files are not an error.
func Clear(stateDir string) error {
	err := os.Remove(Path(stateDir))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Capture snapshots the client's current cookies plus identity into a State.
func Capture(c *api.Client, user *api.User, org *api.Organization) *State {
	st := &State{User: user, Organization: org}
	for _, ck := range c.Cookies() {
		st.Cookies = append(st.Cookies, Cookie{
			Name:     ck.Name,
			Value:    ck.Value,
			Path:     ck.Path,
			Domain:   ck.Domain,
			Expires:  ck.Expires,
			Secure:   ck.Secure,
			HTTPOnly: ck.HttpOnly,
		})
	}
	return st
}

// Apply seeds the client's cookie jar from the persisted session.
func (st *State) Apply(c *api.Client) {
	cookies := make([]*http.Cookie, 0, len(st.Cookies))
	for _, ck := range st.Cookies {
		cookies = append(cookies, &http.Cookie{
			Name:     ck.Name,
			Value:    ck.Value,
			Path:     ck.Path,
			Domain:   ck.Domain,
			Expires:  ck.Expires,
			Secure:   ck.Secure,
			HttpOnly: ck.HTTPOnly,
		})
	}
	c.RestoreCookies(cookies)
}

// Establish authenticates the client from email/password, resolves the
// current organization (first entry of the organizations list, matching the
// original console's convention), and persists the resulting session.
func Establish(ctx context.Context, c *api.Client, stateDir, email, password string) (*State, error) {
	user, err := c.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	orgs, err := c.ListOrganizations(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve organization: %w", err)
	}

	var org *api.Organization
	if len(orgs) > 0 {
		org = &orgs[0]
	}

	st := Capture(c, user, org)
	if err := Save(stateDir, st); err != nil {
		return nil, err
	}

	log.Info().Str("user", user.Email).Msg("session established")
	return st, nil
}

// Resume loads the persisted session and seeds the client with its cookies.
// It does not verify the session against the backend; the first real call
// will surface ErrUnauthorized if the server-side session has expired.
func Resume(c *api.Client, stateDir string) (*State, error) {
	st, err := Load(stateDir)
	if err != nil {
		return nil, err
	}
	st.Apply(c)
	return st, nil
}

// OrgID returns the current organization id, or empty when the session has
// no organization.
func (st *State) OrgID() string {
	if st.Organization == nil {
		return ""
	}
	return st.Organization.ID
}
