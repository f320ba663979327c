package tui

import (
	"context"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chazuruo/promptctl/internal/api"
	"github.com/chazuruo/promptctl/internal/browse"
)

// treeListing serves a fixed two-level folder tree.
type treeListing struct {
	moves []string
	fail  bool
}

func (l *treeListing) list(_ context.Context, folderID string, _ int) ([]api.Folder, []api.Prompt, int, error) {
	if l.fail {
		return nil, nil, 0, fmt.Errorf("backend down")
	}
	switch folderID {
	case "":
		return []api.Folder{{ID: "a", Name: "Alpha"}},
			[]api.Prompt{{ID: "p-root", Name: "Loose Prompt"}}, 1, nil
	case "a":
		return []api.Folder{{ID: "b", Name: "Beta", Parent: "a"}},
			[]api.Prompt{{ID: "p-a", Name: "Nested Prompt"}}, 1, nil
	default:
		return nil, nil, 1, nil
	}
}

func (l *treeListing) move(_ context.Context, item browse.Item, destID string) error {
	l.moves = append(l.moves, item.ID()+"->"+destID)
	return nil
}

func browserAtRoot(t *testing.T, l *treeListing) FolderBrowserModel {
	t.Helper()
	m := NewFolderBrowserModel(l.list, l.move)
	msg := m.Init()()
	next, _ := m.Update(msg)
	return next.(FolderBrowserModel)
}

func key(m FolderBrowserModel, k string) FolderBrowserModel {
	var msg tea.KeyMsg
	switch k {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "backspace":
		msg = tea.KeyMsg{Type: tea.KeyBackspace}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	next, cmd := m.Update(msg)
	m = next.(FolderBrowserModel)
	if cmd != nil {
		if res := cmd(); res != nil {
			if _, quit := res.(tea.QuitMsg); !quit {
				next, _ = m.Update(res)
				m = next.(FolderBrowserModel)
			}
		}
	}
	return m
}

// TestBrowserListsRoot verifies the initial listing merges folders and
// prompts, folders first.
func TestBrowserListsRoot(t *testing.T) {
	m := browserAtRoot(t, &treeListing{})

	if len(m.Items) != 2 {
		t.Fatalf("expected 2 items at root, got %d", len(m.Items))
	}
	if m.Items[0].Kind != browse.KindFolder || m.Items[0].Name() != "Alpha" {
		t.Errorf("expected folder first, got %+v", m.Items[0])
	}
	if m.Items[1].Kind != browse.KindPrompt {
		t.Errorf("expected prompt second, got %+v", m.Items[1])
	}
}

// TestBrowserDescendAndReturn verifies enter descends and backspace climbs.
func TestBrowserDescendAndReturn(t *testing.T) {
	m := browserAtRoot(t, &treeListing{})

	m = key(m, "enter") // into Alpha
	if len(m.Items) != 2 || m.Items[0].Name() != "Beta" {
		t.Fatalf("expected Alpha's contents, got %+v", m.Items)
	}

	m = key(m, "backspace") // back to root
	if len(m.Items) != 2 || m.Items[0].Name() != "Alpha" {
		t.Errorf("expected root contents again, got %+v", m.Items)
	}
}

// TestBrowserFetchFailureKeepsListing verifies a failed navigation keeps
// the listing that was on screen.
func TestBrowserFetchFailureKeepsListing(t *testing.T) {
	l := &treeListing{}
	m := browserAtRoot(t, l)

	l.fail = true
	m = key(m, "enter")
	if m.Err == nil {
		t.Error("expected the fetch error to surface")
	}
	if len(m.Items) != 2 {
		t.Errorf("expected prior listing kept, got %+v", m.Items)
	}
}

// TestBrowserMoveRejectsDescendant verifies the cycle guard fires before
// any request is made.
func TestBrowserMoveRejectsDescendant(t *testing.T) {
	l := &treeListing{}
	m := browserAtRoot(t, l)

	// dropping Alpha at the root is legal
	m = key(m, "m")
	m = key(m, "enter")
	if len(l.moves) != 1 || l.moves[0] != "a->" {
		t.Fatalf("expected a move to root, got %v", l.moves)
	}

	// dropping Alpha inside its own subtree is not
	l.moves = nil
	m = browserAtRoot(t, l)
	m = key(m, "m") // moving Alpha
	m = key(m, "l") // navigate into Alpha
	m = key(m, "enter")
	if m.Err == nil {
		t.Error("expected the self-destination guard to fire")
	}
	if len(l.moves) != 0 {
		t.Errorf("expected no request for a rejected move, got %v", l.moves)
	}
}

// TestBrowserMovePrompt verifies prompts move without folder guards.
func TestBrowserMovePrompt(t *testing.T) {
	l := &treeListing{}
	m := browserAtRoot(t, l)

	m = key(m, "j") // cursor to the loose prompt
	m = key(m, "m")
	m = key(m, "k") // cursor back onto Alpha
	m = key(m, "l") // descend into Alpha
	if m.Moving == nil {
		t.Fatal("expected move mode active")
	}
	m = key(m, "enter")
	if len(l.moves) != 1 || l.moves[0] != "p-root->a" {
		t.Errorf("expected prompt moved into Alpha, got %v", l.moves)
	}
}

// TestBrowserEscCancelsMove verifies esc leaves move mode without a request.
func TestBrowserEscCancelsMove(t *testing.T) {
	l := &treeListing{}
	m := browserAtRoot(t, l)

	m = key(m, "m")
	m = key(m, "esc")
	if m.Moving != nil {
		t.Error("expected move mode cancelled")
	}
	if m.Quit {
		t.Error("esc during a move should not quit the browser")
	}
	if len(l.moves) != 0 {
		t.Errorf("expected no move request, got %v", l.moves)
	}
}
