package api

import (
	"context"
	"fmt"
	"net/url"
)

// ListUsers lists the users of an organization.
func (c *Client) ListUsers(ctx context.Context, orgID string) (*Page[User], error) {
	q := url.Values{}
	if orgID != "" {
		q.Set("organization_id", orgID)
	}
	var page Page[User]
	if err := c.get(ctx, "/api/users/", q, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// CreateUserInput is the payload for inviting/creating a user.
type CreateUserInput struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Password       string `json:"password,omitempty"`
	OrganizationID string `json:"organization_id"`
}

// CreateUser creates a user inside an organization.
func (c *Client) CreateUser(ctx context.Context, in CreateUserInput) (*User, error) {
	var u User
	if err := c.post(ctx, "/api/users/", in, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateUser patches mutable user fields.
func (c *Client) UpdateUser(ctx context.Context, id string, fields map[string]any) (*User, error) {
	var u User
	if err := c.patch(ctx, fmt.Sprintf("/api/users/%s/", id), fields, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// DeleteUser soft-deletes a user within the organization scope.
func (c *Client) DeleteUser(ctx context.Context, id, orgID string) error {
	q := url.Values{}
	if orgID != "" {
		q.Set("organization_id", orgID)
	}
	return c.delete(ctx, fmt.Sprintf("/api/users/%s/", id), q)
}

// AssignTeam adds the user to a team.
func (c *Client) AssignTeam(ctx context.Context, userID, teamID string) error {
	body := map[string]string{"team_id": teamID}
	return c.post(ctx, fmt.Sprintf("/api/users/%s/assign_team/", userID), body, nil)
}

// RemoveTeam removes the user from a team.
func (c *Client) RemoveTeam(ctx context.Context, userID, teamID string) error {
	body := map[string]string{"team_id": teamID}
	return c.post(ctx, fmt.Sprintf("/api/users/%s/remove_team/", userID), body, nil)
}
