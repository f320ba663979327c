package api

import (
	"context"
	"fmt"

	apperrors "github.com/chazuruo/promptctl/internal/errors"
)

// loginResponse is the body of a successful login or register call.
type loginResponse struct {
	Status string `json:"status"`
	User   *User  `json:"user"`
}

// Login authenticates with email and password. On success the backend sets
// a session cookie in the client's jar and returns the logged-in user.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	if email == "" || password == "" {
		return nil, apperrors.Invalid("credentials", "email and password are required")
	}

	body := map[string]string{"email": email, "password": password}
	var resp loginResponse
	if err := c.post(ctx, "/api/auth/login/", body, &resp); err != nil {
		return nil, err
	}
	if resp.Status != "success" {
		return nil, fmt.Errorf("login: unexpected status %q: %w", resp.Status, apperrors.ErrUnauthorized)
	}
	return resp.User, nil
}

// Logout invalidates the server-side session.
func (c *Client) Logout(ctx context.Context) error {
	return c.post(ctx, "/api/auth/logout/", nil, nil)
}

// Register creates a new account and logs it in.
func (c *Client) Register(ctx context.Context, name, email, password string) (*User, error) {
	if email == "" || password == "" {
		return nil, apperrors.Invalid("credentials", "email and password are required")
	}

	body := map[string]string{"name": name, "email": email, "password": password}
	var resp loginResponse
	if err := c.post(ctx, "/api/auth/register/", body, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// Me returns the currently authenticated user.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var u User
	if err := c.get(ctx, "/api/users/me/", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
