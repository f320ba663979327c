package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// WorkflowFilter narrows a workflow listing.
type WorkflowFilter struct {
	OrganizationID string
	Search         string
	Page           int
	PageSize       int
}

func (f WorkflowFilter) values() url.Values {
	q := url.Values{}
	if f.OrganizationID != "" {
		q.Set("organization_id", f.OrganizationID)
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(f.PageSize))
	}
	return q
}

// ListWorkflows lists workflows matching the filter.
func (c *Client) ListWorkflows(ctx context.Context, filter WorkflowFilter) (*Page[Workflow], error) {
	var page Page[Workflow]
	if err := c.get(ctx, "/api/workflows/", filter.values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetWorkflow loads one workflow.
func (c *Client) GetWorkflow(ctx context.Context, id string) (*Workflow, error) {
	var w Workflow
	if err := c.get(ctx, fmt.Sprintf("/api/workflows/%s/", id), nil, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// WorkflowInput is the write payload for creating or updating a workflow.
// Steps carry only {prompt, order, name} — display names are resolved
// server-side.
type WorkflowInput struct {
	Organization string      `json:"organization,omitempty"`
	Name         string      `json:"name"`
	Description  string      `json:"description"`
	Visibility   Visibility  `json:"visibility"`
	TeamIDs      []string    `json:"team_ids"`
	Steps        []StepInput `json:"steps"`
}

// StepInput is one step in a workflow write payload.
type StepInput struct {
	Prompt string `json:"prompt"`
	Order  int    `json:"order"`
	Name   string `json:"name"`
}

// CreateWorkflow creates a workflow.
func (c *Client) CreateWorkflow(ctx context.Context, in WorkflowInput) (*Workflow, error) {
	var w Workflow
	if err := c.post(ctx, "/api/workflows/", in, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// UpdateWorkflow patches a workflow with the full edit payload. Each
// successful update appends a history entry server-side.
func (c *Client) UpdateWorkflow(ctx context.Context, id string, in WorkflowInput) (*Workflow, error) {
	var w Workflow
	if err := c.patch(ctx, fmt.Sprintf("/api/workflows/%s/", id), in, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// DeleteWorkflow removes a workflow.
func (c *Client) DeleteWorkflow(ctx context.Context, id string) error {
	return c.delete(ctx, fmt.Sprintf("/api/workflows/%s/", id), nil)
}

// WorkflowHistory fetches one page of a workflow's change history, newest
// first. There is no server-side workflow revert; reverts are staged locally
// from a snapshot and persisted with UpdateWorkflow.
func (c *Client) WorkflowHistory(ctx context.Context, id string, page, pageSize int) (*Page[HistoryEntry], error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		q.Set("page_size", strconv.Itoa(pageSize))
	}
	var out Page[HistoryEntry]
	if err := c.get(ctx, fmt.Sprintf("/api/workflows/%s/history/", id), q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
