package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// PromptFilter narrows a prompt listing. FolderID accepts RootFolder to mean
// "prompts with no folder".
type PromptFilter struct {
	OrganizationID string
	Visibility     Visibility
	CreatedByMe    bool
	FolderID       string
	TeamID         string
	Search         string
	Ordering       string
	Page           int
	PageSize       int
}

func (f PromptFilter) values() url.Values {
	q := url.Values{}
	if f.OrganizationID != "" {
		q.Set("organization_id", f.OrganizationID)
	}
	if f.Visibility != "" {
		q.Set("visibility", string(f.Visibility))
	}
	if f.CreatedByMe {
		q.Set("created_by", "me")
	}
	if f.FolderID != "" {
		q.Set("folder_id", f.FolderID)
	}
	if f.TeamID != "" {
		q.Set("team_id", f.TeamID)
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Ordering != "" {
		q.Set("ordering", f.Ordering)
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(f.PageSize))
	}
	return q
}

// ListPrompts lists prompts matching the filter.
func (c *Client) ListPrompts(ctx context.Context, filter PromptFilter) (*Page[Prompt], error) {
	var page Page[Prompt]
	if err := c.get(ctx, "/api/prompts/", filter.values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetPrompt loads one prompt.
func (c *Client) GetPrompt(ctx context.Context, id string) (*Prompt, error) {
	var p Prompt
	if err := c.get(ctx, fmt.Sprintf("/api/prompts/%s/", id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// PromptInput is the write payload for creating or updating a prompt.
// Folder uses a pointer so moves to root serialize as an explicit null.
type PromptInput struct {
	Organization string     `json:"organization,omitempty"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Prompt       string     `json:"prompt"`
	Model        string     `json:"model"`
	Visibility   Visibility `json:"visibility"`
	CategoryIDs  []string   `json:"category_ids"`
	TeamIDs      []string   `json:"team_ids"`
	Folder       *string    `json:"folder"`
}

// CreatePrompt creates a prompt. Every successful mutation appends a history
// entry server-side.
func (c *Client) CreatePrompt(ctx context.Context, in PromptInput) (*Prompt, error) {
	var p Prompt
	if err := c.post(ctx, "/api/prompts/", in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdatePrompt patches a prompt with the full edit payload.
func (c *Client) UpdatePrompt(ctx context.Context, id string, in PromptInput) (*Prompt, error) {
	var p Prompt
	if err := c.patch(ctx, fmt.Sprintf("/api/prompts/%s/", id), in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// MovePrompt re-parents a prompt; nil destination means root.
func (c *Client) MovePrompt(ctx context.Context, id string, folderID *string) error {
	body := map[string]*string{"folder": folderID}
	return c.patch(ctx, fmt.Sprintf("/api/prompts/%s/", id), body, nil)
}

// DeletePrompt removes a prompt.
func (c *Client) DeletePrompt(ctx context.Context, id string) error {
	return c.delete(ctx, fmt.Sprintf("/api/prompts/%s/", id), nil)
}

// PromptHistory fetches one page of a prompt's change history, newest first.
func (c *Client) PromptHistory(ctx context.Context, id string, page, pageSize int) (*Page[HistoryEntry], error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		q.Set("page_size", strconv.Itoa(pageSize))
	}
	var out Page[HistoryEntry]
	if err := c.get(ctx, fmt.Sprintf("/api/prompts/%s/history/", id), q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RevertPrompt asks the backend to reconstruct the prompt as of the named
// history entry. The returned prompt is the authoritative post-revert state;
// callers must replace their local state with it, not with the snapshot they
// displayed. The revert itself appends a new history entry.
func (c *Client) RevertPrompt(ctx context.Context, id, historyID string) (*Prompt, error) {
	body := map[string]string{"history_id": historyID}
	var p Prompt
	if err := c.post(ctx, fmt.Sprintf("/api/prompts/%s/revert/", id), body, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
