package api

import (
	"context"
	"fmt"
	"net/url"
)

// FolderFilter narrows a folder listing. When RootOnly is set, ParentID is
// ignored and only top-level folders are returned.
type FolderFilter struct {
	OrganizationID string
	Type           FolderType
	ParentID       string
	RootOnly       bool
}

func (f FolderFilter) values() url.Values {
	q := url.Values{}
	if f.OrganizationID != "" {
		q.Set("organization_id", f.OrganizationID)
	}
	if f.Type != "" {
		q.Set("type", string(f.Type))
	}
	if f.RootOnly {
		q.Set("root_only", "true")
	} else if f.ParentID != "" {
		q.Set("parent_id", f.ParentID)
	}
	return q
}

// ListFolders lists folders matching the filter.
func (c *Client) ListFolders(ctx context.Context, filter FolderFilter) ([]Folder, error) {
	var page Page[Folder]
	if err := c.get(ctx, "/api/folders/", filter.values(), &page); err != nil {
		return nil, err
	}
	return page.Results, nil
}

// CreateFolderInput is the payload for creating a folder. Parent is nil for
// a root-level folder. Type is fixed at creation.
type CreateFolderInput struct {
	Organization string     `json:"organization"`
	Name         string     `json:"name"`
	Type         FolderType `json:"type"`
	Parent       *string    `json:"parent"`
}

// CreateFolder creates a folder.
func (c *Client) CreateFolder(ctx context.Context, in CreateFolderInput) (*Folder, error) {
	var f Folder
	if err := c.post(ctx, "/api/folders/", in, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// MoveFolder re-parents a folder; nil destination means root. Only parent is
// ever mutated here — folder type is immutable after creation.
func (c *Client) MoveFolder(ctx context.Context, id string, parentID *string) error {
	body := map[string]*string{"parent": parentID}
	return c.patch(ctx, fmt.Sprintf("/api/folders/%s/", id), body, nil)
}

// RenameFolder updates a folder's name.
func (c *Client) RenameFolder(ctx context.Context, id, name string) (*Folder, error) {
	var f Folder
	if err := c.patch(ctx, fmt.Sprintf("/api/folders/%s/", id), map[string]string{"name": name}, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// DeleteFolder removes a folder. Cascade behavior, if any, belongs to the
// backend.
func (c *Client) DeleteFolder(ctx context.Context, id string) error {
	return c.delete(ctx, fmt.Sprintf("/api/folders/%s/", id), nil)
}
