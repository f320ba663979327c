package browse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazuruo/promptctl/internal/api"
	apperrors "github.com/chazuruo/promptctl/internal/errors"
)

func folder(id, parent, name string) api.Folder {
	return api.Folder{ID: id, Parent: parent, Name: name}
}

func TestBrowserStartsAtRoot(t *testing.T) {
	var b Browser
	assert.True(t, b.AtRoot())
	assert.Empty(t, b.CurrentID())
	assert.Equal(t, "Root", b.PathString())
}

func TestEnterPushesBreadcrumb(t *testing.T) {
	var b Browser
	b.Enter(folder("a", "", "Alpha"))
	b.Enter(folder("b", "a", "Beta"))

	assert.False(t, b.AtRoot())
	assert.Equal(t, "b", b.CurrentID())
	require.Len(t, b.Breadcrumbs(), 2)
	assert.Equal(t, "Root / Alpha / Beta", b.PathString())
}

func TestJumpToTruncates(t *testing.T) {
	var b Browser
	b.Enter(folder("a", "", "Alpha"))
	b.Enter(folder("b", "a", "Beta"))
	b.Enter(folder("c", "b", "Gamma"))

	b.JumpTo(0)
	assert.Equal(t, "a", b.CurrentID())
	assert.Len(t, b.Breadcrumbs(), 1)

	// jumping to the current entry is a no-op
	b.JumpTo(0)
	assert.Equal(t, "a", b.CurrentID())

	b.JumpTo(-1)
	assert.True(t, b.AtRoot())
	assert.Empty(t, b.Breadcrumbs())
}

func TestJumpToOutOfRangeClamps(t *testing.T) {
	var b Browser
	b.Enter(folder("a", "", "Alpha"))
	b.JumpTo(7)
	assert.Equal(t, "a", b.CurrentID())
}

func TestFolderFilterRootVersusChild(t *testing.T) {
	var b Browser
	f := b.FolderFilter("org1", api.FolderPublic)
	assert.True(t, f.RootOnly)
	assert.Empty(t, f.ParentID)

	b.Enter(folder("a", "", "Alpha"))
	f = b.FolderFilter("org1", api.FolderPublic)
	assert.False(t, f.RootOnly)
	assert.Equal(t, "a", f.ParentID)
}

func TestPromptFilterUsesRootSentinel(t *testing.T) {
	var b Browser
	f := b.PromptFilter("org1", api.VisibilityPublic, 1, 10)
	assert.Equal(t, api.RootFolder, f.FolderID)

	b.Enter(folder("a", "", "Alpha"))
	f = b.PromptFilter("org1", api.VisibilityPublic, 2, 10)
	assert.Equal(t, "a", f.FolderID)
	assert.Equal(t, 2, f.Page)
}

func TestMergeFoldersFirst(t *testing.T) {
	items := Merge(
		[]api.Folder{folder("f1", "", "Docs")},
		[]api.Prompt{{ID: "p1", Name: "Greeting"}},
	)
	require.Len(t, items, 2)
	assert.Equal(t, KindFolder, items[0].Kind)
	assert.Equal(t, "f1", items[0].ID())
	assert.Equal(t, "Docs", items[0].Name())
	assert.Equal(t, KindPrompt, items[1].Kind)
	assert.Equal(t, "Greeting", items[1].Name())
}

func TestWouldCycle(t *testing.T) {
	// root -> a -> b -> c, plus sibling s
	known := map[string]api.Folder{
		"a": folder("a", "", "A"),
		"b": folder("b", "a", "B"),
		"c": folder("c", "b", "C"),
		"s": folder("s", "", "S"),
	}

	tests := []struct {
		name  string
		src   string
		dest  string
		cycle bool
	}{
		{"into itself", "a", "a", true},
		{"into direct child", "a", "b", true},
		{"into grandchild", "a", "c", true},
		{"into sibling", "a", "s", false},
		{"into root", "a", "", false},
		{"child up to root is fine", "c", "", false},
		{"sibling into subtree", "s", "c", false},
		{"unknown destination ends walk", "a", "zzz", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.cycle, WouldCycle(known, tt.src, tt.dest))
		})
	}
}

func TestWouldCycleCorruptChain(t *testing.T) {
	// x and y point at each other; the depth bound must stop the walk.
	known := map[string]api.Folder{
		"x": folder("x", "y", "X"),
		"y": folder("y", "x", "Y"),
	}
	assert.True(t, WouldCycle(known, "elsewhere", "x"))
}

func TestValidateMove(t *testing.T) {
	known := map[string]api.Folder{
		"a": folder("a", "", "A"),
		"b": folder("b", "a", "B"),
	}
	src := folder("a", "", "A")
	item := Item{Kind: KindFolder, Folder: &src}

	err := ValidateMove(item, "a", known)
	require.Error(t, err)
	assert.True(t, apperrors.IsInvalid(err))

	err = ValidateMove(item, "b", known)
	require.Error(t, err)
	assert.True(t, apperrors.IsInvalid(err))

	assert.NoError(t, ValidateMove(item, "", known))

	prompt := api.Prompt{ID: "p1"}
	assert.NoError(t, ValidateMove(Item{Kind: KindPrompt, Prompt: &prompt}, "a", known))
}
