package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/chazuruo/promptctl/internal/api"
	apperrors "github.com/chazuruo/promptctl/internal/errors"
	"github.com/chazuruo/promptctl/internal/export"
	"github.com/chazuruo/promptctl/internal/steps"
)

// ListWorkflows lists workflows in the session's organization.
func (a *App) ListWorkflows(ctx context.Context, search string, page int) (*api.Page[api.Workflow], error) {
	_, orgID, err := a.withOrg()
	if err != nil {
		return nil, err
	}
	return a.Client.ListWorkflows(ctx, api.WorkflowFilter{
		OrganizationID: orgID,
		Search:         search,
		Page:           page,
		PageSize:       a.PageSize(),
	})
}

// GetWorkflow loads one workflow by id.
func (a *App) GetWorkflow(ctx context.Context, id string) (*api.Workflow, error) {
	if !api.ValidID(id) {
		return nil, apperrors.Invalid("id", fmt.Sprintf("%q is not a valid workflow id", id))
	}
	if _, err := a.RequireSession(); err != nil {
		return nil, err
	}
	return a.Client.GetWorkflow(ctx, id)
}

func validateWorkflowInput(in *api.WorkflowInput) error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return apperrors.Invalid("name", "name is required")
	}
	if !in.Visibility.Valid() {
		return apperrors.Invalid("visibility", fmt.Sprintf("unknown visibility %q", in.Visibility))
	}
	if len(in.Steps) == 0 {
		return apperrors.Invalid("steps", "at least one step is required")
	}
	if in.Visibility == api.VisibilityTeam {
		if len(in.TeamIDs) == 0 {
			return apperrors.Invalid("team_ids", "TEAM visibility requires at least one team")
		}
	} else {
		in.TeamIDs = nil
	}
	for i, s := range in.Steps {
		if s.Order != i {
			return apperrors.Invalid("steps", fmt.Sprintf("step %d has order %d; orders must be contiguous from 0", i, s.Order))
		}
	}
	return nil
}

// CreateWorkflow validates and creates a workflow.
func (a *App) CreateWorkflow(ctx context.Context, in api.WorkflowInput) (*api.Workflow, error) {
	_, orgID, err := a.withOrg()
	if err != nil {
		return nil, err
	}
	in.Organization = orgID
	if err := validateWorkflowInput(&in); err != nil {
		return nil, err
	}
	return a.Client.CreateWorkflow(ctx, in)
}

// UpdateWorkflow validates and submits a full workflow edit.
func (a *App) UpdateWorkflow(ctx context.Context, id string, in api.WorkflowInput) (*api.Workflow, error) {
	if _, err := a.RequireSession(); err != nil {
		return nil, err
	}
	if err := validateWorkflowInput(&in); err != nil {
		return nil, err
	}
	return a.Client.UpdateWorkflow(ctx, id, in)
}

// DeleteWorkflow removes a workflow.
func (a *App) DeleteWorkflow(ctx context.Context, id string) error {
	if _, err := a.RequireSession(); err != nil {
		return err
	}
	return a.Client.DeleteWorkflow(ctx, id)
}

// WorkflowHistory fetches one page of a workflow's history.
func (a *App) WorkflowHistory(ctx context.Context, id string, page int) (*api.Page[api.HistoryEntry], error) {
	if _, err := a.RequireSession(); err != nil {
		return nil, err
	}
	return a.Client.WorkflowHistory(ctx, id, page, a.PageSize())
}

// StageWorkflowRevert applies a history snapshot to a loaded workflow
// locally and returns the resulting write payload. Nothing is sent: the
// caller reviews the staged state and submits it with UpdateWorkflow. Step
// prompt names are re-resolved against the organization's prompts, falling
// back to raw ids.
func (a *App) StageWorkflowRevert(ctx context.Context, w *api.Workflow, snap api.Snapshot) (api.WorkflowInput, error) {
	prompts, err := a.SearchPrompts(ctx, "")
	if err != nil {
		return api.WorkflowInput{}, err
	}

	in := api.WorkflowInput{
		Organization: w.Organization,
		Name:         w.Name,
		Description:  w.Description,
		Visibility:   w.Visibility,
		TeamIDs:      w.TeamIDs,
	}
	if snap.Name != nil {
		in.Name = *snap.Name
	}
	if snap.Description != nil {
		in.Description = *snap.Description
	}
	if snap.Visibility != nil {
		in.Visibility = *snap.Visibility
	}
	if snap.TeamIDs != nil {
		in.TeamIDs = snap.TeamIDs
	}

	b := steps.FromWorkflow(w)
	b.ApplySnapshot(snap, prompts)
	in.Steps = b.Inputs()
	return in, nil
}

// ExportWorkflow writes a workflow to the export directory and returns the
// path.
func (a *App) ExportWorkflow(ctx context.Context, id string) (string, error) {
	w, err := a.GetWorkflow(ctx, id)
	if err != nil {
		return "", err
	}
	return export.New(a.Config.Export.Dir).WriteWorkflow(w)
}

// ImportWorkflow creates a workflow from an exported YAML file. Step prompt
// names are resolved against the target organization; names with no match
// fail the import rather than silently dropping steps.
func (a *App) ImportWorkflow(ctx context.Context, path string) (*api.Workflow, error) {
	doc, err := export.ReadWorkflow(path)
	if err != nil {
		return nil, err
	}

	prompts, err := a.SearchPrompts(ctx, "")
	if err != nil {
		return nil, err
	}
	byName := make(map[string]string, len(prompts))
	for _, p := range prompts {
		byName[p.Name] = p.ID
	}

	in := api.WorkflowInput{
		Name:        doc.Name,
		Description: doc.Description,
		Visibility:  api.Visibility(doc.Visibility),
	}
	if in.Visibility == "" {
		in.Visibility = api.VisibilityPrivate
	}
	for i, s := range doc.Steps {
		id, ok := byName[s.PromptName]
		if !ok {
			return nil, apperrors.Invalid("steps",
				fmt.Sprintf("no prompt named %q in this organization", s.PromptName))
		}
		in.Steps = append(in.Steps, api.StepInput{Prompt: id, Order: i, Name: s.Name})
	}
	return a.CreateWorkflow(ctx, in)
}
