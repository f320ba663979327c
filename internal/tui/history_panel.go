package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chazuruo/promptctl/internal/api"
	"github.com/chazuruo/promptctl/internal/histview"
)

// RevertFunc applies a revert to the selected history entry. Prompt reverts
// hit the backend; workflow reverts stage the snapshot locally. Either way
// the panel just reports the entry picked.
type RevertFunc func(ctx context.Context, entry api.HistoryEntry) error

// historyLoadedMsg reports a panel fetch.
type historyLoadedMsg struct {
	err error
}

// revertedMsg reports a revert outcome.
type revertedMsg struct {
	entry api.HistoryEntry
	err   error
}

// HistoryPanelModel is a Bubble Tea model over a version history: page
// through entries, expand one entry's snapshot at a time, and revert to the
// selected entry.
type HistoryPanelModel struct {
	// Panel is the underlying state machine.
	Panel *histview.Panel

	// Revert applies a revert; nil hides the action.
	Revert RevertFunc

	// Title is the heading, e.g. the prompt name.
	Title string

	// Err holds the last failure, shown inline.
	Err error

	// Quit indicates the user closed the panel.
	Quit bool

	// Reverted is the entry a successful revert was applied to.
	Reverted *api.HistoryEntry

	cursor     int
	confirming bool

	normalStyle   lipgloss.Style
	selectedStyle lipgloss.Style
	detailStyle   lipgloss.Style
	metadataStyle lipgloss.Style
	headerStyle   lipgloss.Style
}

// NewHistoryPanelModel creates a history panel over an open histview.Panel.
func NewHistoryPanelModel(panel *histview.Panel, title string, revert RevertFunc) HistoryPanelModel {
	return HistoryPanelModel{
		Panel:  panel,
		Revert: revert,
		Title:  title,
		normalStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),
		selectedStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Bold(true),
		detailStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("242")),
		metadataStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		headerStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true),
	}
}

// Init implements tea.Model.
func (m HistoryPanelModel) Init() tea.Cmd {
	panel := m.Panel
	return func() tea.Msg {
		return historyLoadedMsg{err: panel.Open(context.Background())}
	}
}

// Update implements tea.Model.
func (m HistoryPanelModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case historyLoadedMsg:
		if msg.err != nil {
			m.Err = msg.err
			return m, nil
		}
		m.Err = nil
		if m.cursor >= len(m.Panel.Entries()) {
			m.cursor = max(0, len(m.Panel.Entries())-1)
		}
		return m, nil

	case revertedMsg:
		m.confirming = false
		if msg.err != nil {
			m.Err = msg.err
			return m, nil
		}
		m.Err = nil
		entry := msg.entry
		m.Reverted = &entry
		// revert appended a new entry; refresh what is shown
		panel := m.Panel
		return m, func() tea.Msg {
			return historyLoadedMsg{err: panel.Open(context.Background())}
		}
	}

	return m, nil
}

func (m HistoryPanelModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirming {
		switch msg.String() {
		case "y", "Y":
			return m.doRevert()
		default:
			m.confirming = false
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "q", "esc":
		m.Quit = true
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.Panel.Entries())-1 {
			m.cursor++
		}

	case "enter", " ":
		if entry, ok := m.currentEntry(); ok {
			m.Panel.ExpandDetail(entry.ID)
		}

	case "right", "n":
		m.cursor = 0
		return m, m.pageCmd(+1)

	case "left", "p":
		m.cursor = 0
		return m, m.pageCmd(-1)

	case "r":
		if m.Revert != nil {
			if _, ok := m.currentEntry(); ok {
				m.confirming = true
			}
		}
	}

	return m, nil
}

func (m HistoryPanelModel) doRevert() (tea.Model, tea.Cmd) {
	entry, ok := m.currentEntry()
	if !ok {
		m.confirming = false
		return m, nil
	}
	revert := m.Revert
	return m, func() tea.Msg {
		return revertedMsg{entry: entry, err: revert(context.Background(), entry)}
	}
}

func (m HistoryPanelModel) pageCmd(delta int) tea.Cmd {
	panel := m.Panel
	return func() tea.Msg {
		var err error
		if delta > 0 {
			err = panel.NextPage(context.Background())
		} else {
			err = panel.PrevPage(context.Background())
		}
		return historyLoadedMsg{err: err}
	}
}

// View implements tea.Model.
func (m HistoryPanelModel) View() string {
	var b strings.Builder

	b.WriteString("\n  ")
	b.WriteString(m.headerStyle.Render("History: " + m.Title))
	b.WriteString("\n\n")

	if m.Err != nil {
		b.WriteString("  ")
		b.WriteString(m.metadataStyle.Render(m.Err.Error()))
		b.WriteString("\n\n")
	}

	entries := m.Panel.Entries()
	if len(entries) == 0 {
		b.WriteString("  (no history)\n")
	}
	for i, e := range entries {
		style := m.normalStyle
		if i == m.cursor {
			style = m.selectedStyle
		}
		line := fmt.Sprintf("  %s  %s  %s",
			e.CreatedAt.Format("2006-01-02 15:04"),
			e.ChangedByName,
			e.ChangeSummary,
		)
		b.WriteString(style.Render(line) + "\n")
		if m.Panel.ExpandedID() == e.ID {
			b.WriteString(m.renderSnapshot(e.Snapshot))
		}
	}

	b.WriteString("\n  ")
	b.WriteString(m.metadataStyle.Render(
		fmt.Sprintf("page %d/%d", m.Panel.Page(), m.Panel.TotalPages()),
	))
	b.WriteString("\n\n  ")
	if m.confirming {
		b.WriteString(m.metadataStyle.Render("Revert to this version? [y/N]"))
	} else {
		b.WriteString(m.metadataStyle.Render(m.helpText()))
	}
	b.WriteString("\n")

	return b.String()
}

// renderSnapshot shows only the fields the snapshot actually recorded.
func (m HistoryPanelModel) renderSnapshot(s api.Snapshot) string {
	var b strings.Builder
	write := func(label, value string) {
		b.WriteString("      " + m.detailStyle.Render(label+": "+value) + "\n")
	}
	if s.Name != nil {
		write("name", *s.Name)
	}
	if s.Description != nil {
		write("description", *s.Description)
	}
	if s.Model != nil {
		write("model", *s.Model)
	}
	if s.Visibility != nil {
		write("visibility", string(*s.Visibility))
	}
	if s.Prompt != nil {
		text := *s.Prompt
		if runes := []rune(text); len(runes) > 120 {
			text = string(runes[:117]) + "..."
		}
		write("prompt", text)
	}
	if len(s.Steps) > 0 {
		write("steps", fmt.Sprintf("%d step(s)", len(s.Steps)))
	}
	return b.String()
}

func (m HistoryPanelModel) helpText() string {
	parts := []string{"[Enter] Detail", "[←/→] Page"}
	if m.Revert != nil {
		parts = append(parts, "[r] Revert")
	}
	parts = append(parts, "[q] Close")
	return strings.Join(parts, " • ")
}

func (m HistoryPanelModel) currentEntry() (api.HistoryEntry, bool) {
	entries := m.Panel.Entries()
	if m.cursor < 0 || m.cursor >= len(entries) {
		return api.HistoryEntry{}, false
	}
	return entries[m.cursor], true
}
