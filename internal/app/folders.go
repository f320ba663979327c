package app

import (
	"context"
	"fmt"

	"github.com/chazuruo/promptctl/internal/api"
	"github.com/chazuruo/promptctl/internal/browse"
	apperrors "github.com/chazuruo/promptctl/internal/errors"
)

// FolderListing is one folder's contents plus the prompt paging state.
type FolderListing struct {
	Folders    []api.Folder
	Prompts    []api.Prompt
	TotalPages int
}

// ListFolderContents loads a folder's child folders and prompts. folderID
// empty means the root.
func (a *App) ListFolderContents(ctx context.Context, typ api.FolderType, folderID string, page int) (*FolderListing, error) {
	_, orgID, err := a.withOrg()
	if err != nil {
		return nil, err
	}

	ff := api.FolderFilter{OrganizationID: orgID, Type: typ}
	if folderID == "" {
		ff.RootOnly = true
	} else {
		ff.ParentID = folderID
	}
	folders, err := a.Client.ListFolders(ctx, ff)
	if err != nil {
		return nil, err
	}

	promptFolder := folderID
	if promptFolder == "" {
		promptFolder = api.RootFolder
	}
	prompts, err := a.Client.ListPrompts(ctx, api.PromptFilter{
		OrganizationID: orgID,
		FolderID:       promptFolder,
		Ordering:       a.Config.Lists.Ordering,
		Page:           page,
		PageSize:       a.PageSize(),
	})
	if err != nil {
		return nil, err
	}

	return &FolderListing{
		Folders:    folders,
		Prompts:    prompts.Results,
		TotalPages: prompts.TotalPages(a.PageSize()),
	}, nil
}

// CreateFolder creates a folder. parentID empty means the root.
func (a *App) CreateFolder(ctx context.Context, name string, typ api.FolderType, parentID string) (*api.Folder, error) {
	_, orgID, err := a.withOrg()
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, apperrors.Invalid("name", "name is required")
	}
	in := api.CreateFolderInput{Organization: orgID, Name: name, Type: typ}
	if parentID != "" {
		in.Parent = &parentID
	}
	return a.Client.CreateFolder(ctx, in)
}

// RenameFolder renames a folder.
func (a *App) RenameFolder(ctx context.Context, id, name string) (*api.Folder, error) {
	if _, err := a.RequireSession(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, apperrors.Invalid("name", "name is required")
	}
	return a.Client.RenameFolder(ctx, id, name)
}

// MoveFolder re-parents a folder after the client-side cycle guard. The
// guard needs the folder set of the subtree in question; it is fetched here
// so CLI moves get the same protection as the browser.
func (a *App) MoveFolder(ctx context.Context, typ api.FolderType, id, destID string) error {
	_, orgID, err := a.withOrg()
	if err != nil {
		return err
	}

	if destID != "" {
		known, err := a.knownFolders(ctx, orgID, typ)
		if err != nil {
			return err
		}
		src, ok := known[id]
		if !ok {
			return fmt.Errorf("folder %s: %w", id, apperrors.ErrNotFound)
		}
		item := browse.Item{Kind: browse.KindFolder, Folder: &src}
		if err := browse.ValidateMove(item, destID, known); err != nil {
			return err
		}
	}

	var dest *string
	if destID != "" {
		dest = &destID
	}
	return a.Client.MoveFolder(ctx, id, dest)
}

// DeleteFolder removes a folder.
func (a *App) DeleteFolder(ctx context.Context, id string) error {
	if _, err := a.RequireSession(); err != nil {
		return err
	}
	return a.Client.DeleteFolder(ctx, id)
}

// knownFolders loads the full folder set of one type, keyed by id, for the
// ancestor-chain move guard.
func (a *App) knownFolders(ctx context.Context, orgID string, typ api.FolderType) (map[string]api.Folder, error) {
	folders, err := a.Client.ListFolders(ctx, api.FolderFilter{OrganizationID: orgID, Type: typ})
	if err != nil {
		return nil, err
	}
	known := make(map[string]api.Folder, len(folders))
	for _, f := range folders {
		known[f.ID] = f
	}
	return known, nil
}
