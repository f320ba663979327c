package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chazuruo/promptctl/internal/api"
	"github.com/chazuruo/promptctl/internal/browse"
)

// FolderListingFunc loads the contents of one folder: its child folders and
// the prompts directly inside it. folderID empty means the root.
type FolderListingFunc func(ctx context.Context, folderID string, page int) (folders []api.Folder, prompts []api.Prompt, totalPages int, err error)

// MoveFunc re-parents an item. destID empty means the root.
type MoveFunc func(ctx context.Context, item browse.Item, destID string) error

// listingMsg carries a loaded folder listing.
type listingMsg struct {
	folderID   string
	items      []browse.Item
	folders    []api.Folder
	totalPages int
	err        error
}

// movedMsg reports the outcome of a move request.
type movedMsg struct {
	err error
}

// FolderBrowserModel is a Bubble Tea model over the public folder tree:
// descend into folders, jump back via breadcrumbs, page through prompts, and
// move items between folders. A failed fetch keeps the listing shown before
// it.
type FolderBrowserModel struct {
	// List loads folder contents.
	List FolderListingFunc

	// Move re-parents an item; nil disables move mode.
	Move MoveFunc

	// Items is the current merged listing.
	Items []browse.Item

	// Err holds the last fetch or move failure, shown inline.
	Err error

	// Quit indicates the user left the browser.
	Quit bool

	// Moving holds the item a move was started for, nil otherwise. While
	// set, navigation picks the destination and enter confirms.
	Moving *browse.Item

	nav        browse.Browser
	known      map[string]api.Folder
	cursor     int
	page       int
	totalPages int
	loading    bool

	normalStyle   lipgloss.Style
	selectedStyle lipgloss.Style
	folderStyle   lipgloss.Style
	metadataStyle lipgloss.Style
	headerStyle   lipgloss.Style
}

// NewFolderBrowserModel creates a folder browser at the root.
func NewFolderBrowserModel(list FolderListingFunc, move MoveFunc) FolderBrowserModel {
	return FolderBrowserModel{
		List:  list,
		Move:  move,
		known: make(map[string]api.Folder),
		page:  1,
		normalStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),
		selectedStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Bold(true),
		folderStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")),
		metadataStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		headerStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true),
	}
}

// Init implements tea.Model.
func (m FolderBrowserModel) Init() tea.Cmd {
	return m.listCmd(m.nav.CurrentID(), 1)
}

// Update implements tea.Model.
func (m FolderBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case listingMsg:
		m.loading = false
		if msg.err != nil {
			m.Err = msg.err
			return m, nil
		}
		if msg.folderID != m.nav.CurrentID() {
			// stale listing from a folder we already left
			return m, nil
		}
		m.Err = nil
		m.Items = msg.items
		m.totalPages = msg.totalPages
		for _, f := range msg.folders {
			m.known[f.ID] = f
		}
		if m.cursor >= len(m.Items) {
			m.cursor = max(0, len(m.Items)-1)
		}
		return m, nil

	case movedMsg:
		m.loading = false
		if msg.err != nil {
			m.Err = msg.err
			return m, nil
		}
		m.Err = nil
		m.Moving = nil
		m.page = 1
		return m, m.listCmd(m.nav.CurrentID(), 1)
	}

	return m, nil
}

func (m FolderBrowserModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.Quit = true
		return m, tea.Quit

	case "esc":
		if m.Moving != nil {
			m.Moving = nil
			return m, nil
		}
		m.Quit = true
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.Items)-1 {
			m.cursor++
		}

	case "enter", "l":
		if m.Moving != nil && msg.String() == "enter" {
			return m.confirmMove()
		}
		if item, ok := m.current(); ok && item.Kind == browse.KindFolder {
			m.nav.Enter(*item.Folder)
			m.cursor = 0
			m.page = 1
			return m, m.listCmd(m.nav.CurrentID(), 1)
		}

	case "backspace", "h":
		if crumbs := m.nav.Breadcrumbs(); len(crumbs) > 0 {
			m.nav.JumpTo(len(crumbs) - 2)
			m.cursor = 0
			m.page = 1
			return m, m.listCmd(m.nav.CurrentID(), 1)
		}

	case "~":
		if !m.nav.AtRoot() {
			m.nav.JumpTo(-1)
			m.cursor = 0
			m.page = 1
			return m, m.listCmd(m.nav.CurrentID(), 1)
		}

	case "right", "n":
		if m.page < m.totalPages {
			m.page++
			return m, m.listCmd(m.nav.CurrentID(), m.page)
		}

	case "left", "p":
		if m.page > 1 {
			m.page--
			return m, m.listCmd(m.nav.CurrentID(), m.page)
		}

	case "m":
		if m.Move != nil && m.Moving == nil {
			if item, ok := m.current(); ok {
				moving := item
				m.Moving = &moving
			}
		}
	}

	return m, nil
}

// confirmMove targets the current folder of the browser. The cycle guard
// runs client-side first, so an invalid destination never reaches the wire.
func (m FolderBrowserModel) confirmMove() (tea.Model, tea.Cmd) {
	item := *m.Moving
	destID := m.nav.CurrentID()
	if err := browse.ValidateMove(item, destID, m.known); err != nil {
		m.Err = err
		return m, nil
	}
	m.loading = true
	move := m.Move
	return m, func() tea.Msg {
		return movedMsg{err: move(context.Background(), item, destID)}
	}
}

// View implements tea.Model.
func (m FolderBrowserModel) View() string {
	var b strings.Builder

	b.WriteString("\n  ")
	b.WriteString(m.headerStyle.Render("Folder Browser"))
	b.WriteString("\n\n  ")
	b.WriteString(m.metadataStyle.Render(m.nav.PathString()))
	b.WriteString("\n\n")

	if m.Moving != nil {
		b.WriteString("  ")
		b.WriteString(m.metadataStyle.Render(
			fmt.Sprintf("Moving %q — navigate to the destination and press Enter", m.Moving.Name()),
		))
		b.WriteString("\n\n")
	}

	if m.Err != nil {
		b.WriteString("  ")
		b.WriteString(m.metadataStyle.Render(m.Err.Error()))
		b.WriteString("\n\n")
	}

	if m.loading {
		b.WriteString("  loading...\n")
	} else if len(m.Items) == 0 {
		b.WriteString("  (empty)\n")
	} else {
		for i, item := range m.Items {
			style := m.normalStyle
			if i == m.cursor {
				style = m.selectedStyle
			}
			marker := "  "
			name := style.Render(item.Name())
			if item.Kind == browse.KindFolder {
				marker = "▸ "
				if i != m.cursor {
					name = m.folderStyle.Render(item.Name())
				}
			}
			b.WriteString("  " + marker + name + "\n")
		}
	}

	if m.totalPages > 1 {
		b.WriteString("\n  ")
		b.WriteString(m.metadataStyle.Render(fmt.Sprintf("page %d/%d", m.page, m.totalPages)))
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	b.WriteString(m.metadataStyle.Render(m.helpText()))
	b.WriteString("\n")

	return b.String()
}

func (m FolderBrowserModel) helpText() string {
	if m.Moving != nil {
		return "[Enter] Drop here • [Esc] Cancel move"
	}
	parts := []string{"[Enter] Open", "[Backspace] Up", "[~] Root"}
	if m.Move != nil {
		parts = append(parts, "[m] Move")
	}
	parts = append(parts, "[←/→] Page", "[q] Quit")
	return strings.Join(parts, " • ")
}

func (m FolderBrowserModel) current() (browse.Item, bool) {
	if m.cursor < 0 || m.cursor >= len(m.Items) {
		return browse.Item{}, false
	}
	return m.Items[m.cursor], true
}

func (m FolderBrowserModel) listCmd(folderID string, page int) tea.Cmd {
	list := m.List
	return func() tea.Msg {
		folders, prompts, totalPages, err := list(context.Background(), folderID, page)
		if err != nil {
			return listingMsg{folderID: folderID, err: err}
		}
		return listingMsg{
			folderID:   folderID,
			items:      browse.Merge(folders, prompts),
			folders:    folders,
			totalPages: totalPages,
		}
	}
}
