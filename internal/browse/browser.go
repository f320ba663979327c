// Package browse implements the folder browser's navigation state: the
// current node of a folder tree, the breadcrumb stack, and the client-side
// guards applied before a move request is issued.
//
// The browser holds no fetched data of its own — listings are re-fetched per
// navigation and the breadcrumb labels are trusted client-side state, never
// re-validated against the backend.
package browse

import (
	"strings"

	"github.com/chazuruo/promptctl/internal/api"
	apperrors "github.com/chazuruo/promptctl/internal/errors"
)

// ItemKind tags an entry of a merged folder listing.
type ItemKind string

const (
	KindFolder ItemKind = "folder"
	KindPrompt ItemKind = "prompt"
)

// Item is one row of a folder listing: either a child folder or a child
// prompt. Exactly one of Folder/Prompt is set, matching Kind.
type Item struct {
	Kind   ItemKind
	Folder *api.Folder
	Prompt *api.Prompt
}

// ID returns the underlying entity id.
func (it Item) ID() string {
	if it.Kind == KindFolder {
		return it.Folder.ID
	}
	return it.Prompt.ID
}

// Name returns the display name.
func (it Item) Name() string {
	if it.Kind == KindFolder {
		return it.Folder.Name
	}
	return it.Prompt.Name
}

// Merge combines child folders and child prompts into one display list.
// Folders come first in backend order, then prompts in backend order; no
// ordering is enforced between the kinds beyond that.
func Merge(folders []api.Folder, prompts []api.Prompt) []Item {
	items := make([]Item, 0, len(folders)+len(prompts))
	for i := range folders {
		items = append(items, Item{Kind: KindFolder, Folder: &folders[i]})
	}
	for i := range prompts {
		items = append(items, Item{Kind: KindPrompt, Prompt: &prompts[i]})
	}
	return items
}

// Browser tracks the current folder and the breadcrumb stack. The zero value
// is the root of the tree.
type Browser struct {
	crumbs []api.Folder
}

// AtRoot reports whether the browser is at the tree root.
func (b *Browser) AtRoot() bool {
	return len(b.crumbs) == 0
}

// CurrentID returns the current folder id, or empty at the root.
func (b *Browser) CurrentID() string {
	if len(b.crumbs) == 0 {
		return ""
	}
	return b.crumbs[len(b.crumbs)-1].ID
}

// Breadcrumbs returns the entered folders, root excluded, shallowest first.
func (b *Browser) Breadcrumbs() []api.Folder {
	return b.crumbs
}

// Enter descends into a child folder, pushing it onto the breadcrumb stack.
// Depth is unbounded; the tree is acyclic by construction of parent, so
// descending needs no cycle detection.
func (b *Browser) Enter(f api.Folder) {
	b.crumbs = append(b.crumbs, f)
}

// JumpTo truncates the breadcrumb stack to index+1 entries and lands on the
// last retained folder. Index -1 means the root: the stack is cleared. This
// is a pure truncation — no ancestry is re-fetched. Out-of-range indices
// clamp to the deepest entry.
func (b *Browser) JumpTo(index int) {
	if index < 0 {
		b.crumbs = nil
		return
	}
	if index+1 < len(b.crumbs) {
		b.crumbs = b.crumbs[:index+1]
	}
}

// PathString renders the breadcrumb trail for display.
func (b *Browser) PathString() string {
	parts := []string{"Root"}
	for _, f := range b.crumbs {
		parts = append(parts, f.Name)
	}
	return strings.Join(parts, " / ")
}

// FolderFilter builds the child-folder listing filter for the current node.
func (b *Browser) FolderFilter(orgID string, typ api.FolderType) api.FolderFilter {
	f := api.FolderFilter{OrganizationID: orgID, Type: typ}
	if b.AtRoot() {
		f.RootOnly = true
	} else {
		f.ParentID = b.CurrentID()
	}
	return f
}

// PromptFilter builds the child-prompt listing filter for the current node.
// At the root the folder_id sentinel "root" selects prompts with no folder.
func (b *Browser) PromptFilter(orgID string, vis api.Visibility, page, pageSize int) api.PromptFilter {
	folderID := b.CurrentID()
	if folderID == "" {
		folderID = api.RootFolder
	}
	return api.PromptFilter{
		OrganizationID: orgID,
		Visibility:     vis,
		FolderID:       folderID,
		Ordering:       "name",
		Page:           page,
		PageSize:       pageSize,
	}
}

// maxAncestorDepth bounds the ancestor walk so a corrupted parent chain on
// the backend cannot loop forever.
const maxAncestorDepth = 256

// WouldCycle reports whether re-parenting srcID under destID would create a
// cycle: destID is srcID itself or one of its descendants. The walk climbs
// destID's ancestor chain through the known folder set; unknown parents end
// the walk (treated as reaching the root).
func WouldCycle(known map[string]api.Folder, srcID, destID string) bool {
	if destID == "" {
		return false
	}
	depth := 0
	for id := destID; id != ""; {
		if id == srcID {
			return true
		}
		f, ok := known[id]
		if !ok {
			return false
		}
		id = f.Parent
		depth++
		if depth > maxAncestorDepth {
			return true
		}
	}
	return false
}

// ValidateMove applies the client-side move guards before any request is
// sent. destID empty means the root. Moving a folder into itself or into any
// of its own descendants is rejected; prompts can move anywhere.
func ValidateMove(item Item, destID string, known map[string]api.Folder) error {
	if item.Kind != KindFolder {
		return nil
	}
	if destID == item.ID() {
		return apperrors.Invalid("destination", "cannot move a folder into itself")
	}
	if WouldCycle(known, item.ID(), destID) {
		return apperrors.Invalid("destination", "cannot move a folder into its own descendant")
	}
	return nil
}
