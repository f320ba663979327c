package api

import (
	"context"
	"fmt"
)

// ListOrganizations returns the organizations visible to the session.
func (c *Client) ListOrganizations(ctx context.Context) ([]Organization, error) {
	var page Page[Organization]
	if err := c.get(ctx, "/api/organizations/", nil, &page); err != nil {
		return nil, err
	}
	return page.Results, nil
}

// OrganizationMembers lists all members of the organization.
func (c *Client) OrganizationMembers(ctx context.Context, orgID string) ([]OrganizationMember, error) {
	var page Page[OrganizationMember]
	path := fmt.Sprintf("/api/organizations/%s/members/", orgID)
	if err := c.get(ctx, path, nil, &page); err != nil {
		return nil, err
	}
	return page.Results, nil
}

// AddOrganizationMember adds an existing user (by email) to the organization.
// Role defaults to MEMBER server-side when empty.
func (c *Client) AddOrganizationMember(ctx context.Context, orgID, email, role string) error {
	body := map[string]string{"email": email}
	if role != "" {
		body["role"] = role
	}
	path := fmt.Sprintf("/api/organizations/%s/add_member/", orgID)
	return c.post(ctx, path, body, nil)
}
