package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/chazuruo/promptctl/internal/api"
	apperrors "github.com/chazuruo/promptctl/internal/errors"
	"github.com/chazuruo/promptctl/internal/export"
)

// PromptListOptions narrows the prompt listing.
type PromptListOptions struct {
	Visibility string
	Mine       bool
	FolderID   string
	TeamID     string
	Search     string
	Page       int
}

// ListPrompts lists prompts in the session's organization.
func (a *App) ListPrompts(ctx context.Context, opts PromptListOptions) (*api.Page[api.Prompt], error) {
	_, orgID, err := a.withOrg()
	if err != nil {
		return nil, err
	}
	filter := api.PromptFilter{
		OrganizationID: orgID,
		Visibility:     api.Visibility(opts.Visibility),
		CreatedByMe:    opts.Mine,
		FolderID:       opts.FolderID,
		TeamID:         opts.TeamID,
		Search:         opts.Search,
		Ordering:       a.Config.Lists.Ordering,
		Page:           opts.Page,
		PageSize:       a.PageSize(),
	}
	return a.Client.ListPrompts(ctx, filter)
}

// SearchPrompts is the picker's search: name search, first page only.
func (a *App) SearchPrompts(ctx context.Context, query string) ([]api.Prompt, error) {
	page, err := a.ListPrompts(ctx, PromptListOptions{Search: query, Page: 1})
	if err != nil {
		return nil, err
	}
	return page.Results, nil
}

// GetPrompt loads one prompt by id.
func (a *App) GetPrompt(ctx context.Context, id string) (*api.Prompt, error) {
	if !api.ValidID(id) {
		return nil, apperrors.Invalid("id", fmt.Sprintf("%q is not a valid prompt id", id))
	}
	if _, err := a.RequireSession(); err != nil {
		return nil, err
	}
	return a.Client.GetPrompt(ctx, id)
}

// validatePromptInput applies the submit-time rules shared by create and
// edit: TEAM visibility needs teams, any other visibility drops them.
func validatePromptInput(in *api.PromptInput) error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return apperrors.Invalid("name", "name is required")
	}
	if !in.Visibility.Valid() {
		return apperrors.Invalid("visibility", fmt.Sprintf("unknown visibility %q", in.Visibility))
	}
	if in.Model != "" && !api.ValidModel(in.Model) {
		return apperrors.Invalid("model", fmt.Sprintf("unknown model %q", in.Model))
	}
	if in.Visibility == api.VisibilityTeam {
		if len(in.TeamIDs) == 0 {
			return apperrors.Invalid("team_ids", "TEAM visibility requires at least one team")
		}
	} else {
		in.TeamIDs = nil
	}
	return nil
}

// CreatePrompt validates and creates a prompt.
func (a *App) CreatePrompt(ctx context.Context, in api.PromptInput) (*api.Prompt, error) {
	_, orgID, err := a.withOrg()
	if err != nil {
		return nil, err
	}
	in.Organization = orgID
	if err := validatePromptInput(&in); err != nil {
		return nil, err
	}
	return a.Client.CreatePrompt(ctx, in)
}

// UpdatePrompt validates and submits a full prompt edit.
func (a *App) UpdatePrompt(ctx context.Context, id string, in api.PromptInput) (*api.Prompt, error) {
	if _, err := a.RequireSession(); err != nil {
		return nil, err
	}
	if err := validatePromptInput(&in); err != nil {
		return nil, err
	}
	return a.Client.UpdatePrompt(ctx, id, in)
}

// DeletePrompt removes a prompt.
func (a *App) DeletePrompt(ctx context.Context, id string) error {
	if _, err := a.RequireSession(); err != nil {
		return err
	}
	return a.Client.DeletePrompt(ctx, id)
}

// MovePrompt re-parents a prompt. Empty folderID means the root.
func (a *App) MovePrompt(ctx context.Context, id, folderID string) error {
	if _, err := a.RequireSession(); err != nil {
		return err
	}
	var dest *string
	if folderID != "" {
		dest = &folderID
	}
	return a.Client.MovePrompt(ctx, id, dest)
}

// PromptHistory fetches one page of a prompt's history.
func (a *App) PromptHistory(ctx context.Context, id string, page int) (*api.Page[api.HistoryEntry], error) {
	if _, err := a.RequireSession(); err != nil {
		return nil, err
	}
	return a.Client.PromptHistory(ctx, id, page, a.PageSize())
}

// RevertPrompt reverts a prompt to a history entry. The returned prompt is
// the backend's post-revert state; callers display that, never the local
// snapshot.
func (a *App) RevertPrompt(ctx context.Context, id, historyID string) (*api.Prompt, error) {
	if _, err := a.RequireSession(); err != nil {
		return nil, err
	}
	p, err := a.Client.RevertPrompt(ctx, id, historyID)
	if err != nil {
		return nil, err
	}
	log.Info().Str("prompt", id).Str("history", historyID).Msg("prompt reverted")
	return p, nil
}

// ExportPrompt writes a prompt to the export directory and returns the path.
func (a *App) ExportPrompt(ctx context.Context, id string) (string, error) {
	p, err := a.GetPrompt(ctx, id)
	if err != nil {
		return "", err
	}
	return export.New(a.Config.Export.Dir).WritePrompt(p)
}

// ImportPrompt creates a prompt from an exported YAML file.
func (a *App) ImportPrompt(ctx context.Context, path string) (*api.Prompt, error) {
	in, err := export.ReadPrompt(path)
	if err != nil {
		return nil, err
	}
	return a.CreatePrompt(ctx, *in)
}
