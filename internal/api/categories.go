package api

import (
	"context"
	"fmt"
	"net/url"
)

// ListCategories lists the categories of an organization.
func (c *Client) ListCategories(ctx context.Context, orgID string) ([]Category, error) {
	q := url.Values{}
	if orgID != "" {
		q.Set("organization_id", orgID)
	}
	var page Page[Category]
	if err := c.get(ctx, "/api/categories/", q, &page); err != nil {
		return nil, err
	}
	return page.Results, nil
}

// CreateCategoryInput is the payload for creating a category.
type CreateCategoryInput struct {
	Organization string `json:"organization"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
}

// CreateCategory creates a category.
func (c *Client) CreateCategory(ctx context.Context, in CreateCategoryInput) (*Category, error) {
	var cat Category
	if err := c.post(ctx, "/api/categories/", in, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

// UpdateCategory patches mutable category fields.
func (c *Client) UpdateCategory(ctx context.Context, id string, fields map[string]any) (*Category, error) {
	var cat Category
	if err := c.patch(ctx, fmt.Sprintf("/api/categories/%s/", id), fields, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

// DeleteCategory removes a category.
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.delete(ctx, fmt.Sprintf("/api/categories/%s/", id), nil)
}
