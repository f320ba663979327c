package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// TeamFilter narrows a team listing.
type TeamFilter struct {
	OrganizationID string
	Ordering       string
	Page           int
}

func (f TeamFilter) values() url.Values {
	q := url.Values{}
	if f.OrganizationID != "" {
		q.Set("organization_id", f.OrganizationID)
	}
	if f.Ordering != "" {
		q.Set("ordering", f.Ordering)
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	return q
}

// ListTeams lists teams matching the filter.
func (c *Client) ListTeams(ctx context.Context, filter TeamFilter) (*Page[Team], error) {
	var page Page[Team]
	if err := c.get(ctx, "/api/teams/", filter.values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// CreateTeamInput is the payload for creating a team.
type CreateTeamInput struct {
	Organization string `json:"organization"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
}

// CreateTeam creates a team.
func (c *Client) CreateTeam(ctx context.Context, in CreateTeamInput) (*Team, error) {
	var t Team
	if err := c.post(ctx, "/api/teams/", in, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// UpdateTeam patches mutable team fields.
func (c *Client) UpdateTeam(ctx context.Context, id string, fields map[string]any) (*Team, error) {
	var t Team
	if err := c.patch(ctx, fmt.Sprintf("/api/teams/%s/", id), fields, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// DeleteTeam removes a team.
func (c *Client) DeleteTeam(ctx context.Context, id string) error {
	return c.delete(ctx, fmt.Sprintf("/api/teams/%s/", id), nil)
}

// TeamMembers lists all members of a team.
func (c *Client) TeamMembers(ctx context.Context, teamID string) ([]TeamMember, error) {
	var page Page[TeamMember]
	if err := c.get(ctx, fmt.Sprintf("/api/teams/%s/members/", teamID), nil, &page); err != nil {
		return nil, err
	}
	return page.Results, nil
}

// AddTeamMember adds a user to the team. Role defaults to MEMBER server-side
// when empty.
func (c *Client) AddTeamMember(ctx context.Context, teamID, userID string, role Role) error {
	body := map[string]string{"user_id": userID}
	if role != "" {
		body["role"] = string(role)
	}
	return c.post(ctx, fmt.Sprintf("/api/teams/%s/add_member/", teamID), body, nil)
}

// RemoveTeamMember removes a user from the team.
func (c *Client) RemoveTeamMember(ctx context.Context, teamID, userID string) error {
	body := map[string]string{"user_id": userID}
	return c.post(ctx, fmt.Sprintf("/api/teams/%s/remove_member/", teamID), body, nil)
}
