// Package tui provides Bubble Tea models for promptctl.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chazuruo/promptctl/internal/api"
)

// PromptSearchFunc runs one backend search for the picker.
type PromptSearchFunc func(ctx context.Context, query string) ([]api.Prompt, error)

// searchTickMsg fires when the debounce window for a pending query elapses.
type searchTickMsg struct {
	generation int
}

// searchResultMsg carries a completed search, tagged with the generation
// that issued it.
type searchResultMsg struct {
	generation int
	prompts    []api.Prompt
	err        error
}

// PromptPickerModel is a Bubble Tea model for picking a prompt by search.
// Typing restarts a debounce timer; only the timer of the latest keystroke
// issues a request, and only the newest request's completion is applied
// (stale generations are dropped).
type PromptPickerModel struct {
	// Search runs the backend query.
	Search PromptSearchFunc

	// Exclude removes prompts already in use (e.g. steps already added).
	Exclude map[string]bool

	// Debounce is the quiet period after the last keystroke.
	Debounce time.Duration

	// Results is the current result list.
	Results []api.Prompt

	// SearchInput is the query input.
	SearchInput textinput.Model

	// Quit indicates the user left without picking.
	Quit bool

	// Confirmed indicates a prompt was picked.
	Confirmed bool

	// Picked is the chosen prompt when Confirmed.
	Picked *api.Prompt

	// Err holds the last search failure, shown inline.
	Err error

	// generation counts queries; pending ticks and in-flight requests
	// carry the generation that started them.
	generation int
	cursor     int
	searching  bool

	normalStyle   lipgloss.Style
	selectedStyle lipgloss.Style
	metadataStyle lipgloss.Style
	headerStyle   lipgloss.Style
}

// NewPromptPickerModel creates a prompt picker.
func NewPromptPickerModel(search PromptSearchFunc, debounce time.Duration) PromptPickerModel {
	ti := textinput.New()
	ti.Placeholder = "Search prompts..."
	ti.Focus()

	return PromptPickerModel{
		Search:      search,
		Debounce:    debounce,
		SearchInput: ti,
		Exclude:     make(map[string]bool),
		normalStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),
		selectedStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Bold(true),
		metadataStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		headerStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true),
	}
}

// Init implements tea.Model. The first search (empty query) is issued
// immediately, without debounce.
func (m PromptPickerModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.searchCmd(m.generation, ""))
}

// Update implements tea.Model.
func (m PromptPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.Quit = true
			return m, tea.Quit

		case "enter":
			if len(m.Results) == 0 {
				return m, nil
			}
			m.Confirmed = true
			m.Picked = &m.Results[m.cursor]
			return m, tea.Quit

		case "up", "ctrl+k":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case "down", "ctrl+j":
			if m.cursor < len(m.Results)-1 {
				m.cursor++
			}
			return m, nil
		}

	case searchTickMsg:
		// only the tick of the latest keystroke fires a request
		if msg.generation != m.generation {
			return m, nil
		}
		m.searching = true
		return m, m.searchCmd(msg.generation, m.SearchInput.Value())

	case searchResultMsg:
		// last request wins: drop completions of superseded queries
		if msg.generation != m.generation {
			return m, nil
		}
		m.searching = false
		if msg.err != nil {
			m.Err = msg.err
			return m, nil
		}
		m.Err = nil
		m.Results = m.filterExcluded(msg.prompts)
		if m.cursor >= len(m.Results) {
			m.cursor = max(0, len(m.Results)-1)
		}
		return m, nil
	}

	oldQuery := m.SearchInput.Value()
	m.SearchInput, cmd = m.SearchInput.Update(msg)
	if m.SearchInput.Value() != oldQuery {
		m.generation++
		gen := m.generation
		debounce := m.Debounce
		return m, tea.Tick(debounce, func(time.Time) tea.Msg {
			return searchTickMsg{generation: gen}
		})
	}

	return m, cmd
}

// View implements tea.Model.
func (m PromptPickerModel) View() string {
	var b strings.Builder

	b.WriteString("\n  ")
	b.WriteString(m.headerStyle.Render("Prompt Picker"))
	b.WriteString("\n\n  Search: ")
	b.WriteString(m.SearchInput.View())
	b.WriteString("\n\n")

	if m.Err != nil {
		b.WriteString("  ")
		b.WriteString(m.metadataStyle.Render("search failed: " + m.Err.Error()))
		b.WriteString("\n\n")
	}

	status := fmt.Sprintf("%d result(s)", len(m.Results))
	if m.searching {
		status = "searching..."
	}
	b.WriteString("  ")
	b.WriteString(m.metadataStyle.Render(status))
	b.WriteString("\n\n")

	if len(m.Results) == 0 {
		b.WriteString("  (no matches)\n")
	} else {
		start := max(0, m.cursor-10)
		end := min(len(m.Results), m.cursor+11)
		for i := start; i < end; i++ {
			p := m.Results[i]
			style := m.normalStyle
			if i == m.cursor {
				style = m.selectedStyle
			}
			line := fmt.Sprintf("  %s  %s", p.Name, m.metadataStyle.Render(p.Model))
			b.WriteString(style.Render(line) + "\n")
		}
	}

	b.WriteString("\n  ")
	b.WriteString(m.metadataStyle.Render("[Enter] Pick • [Esc] Cancel"))
	b.WriteString("\n")

	return b.String()
}

// GetPicked returns the chosen prompt, nil when cancelled.
func (m PromptPickerModel) GetPicked() *api.Prompt {
	return m.Picked
}

// DidQuit returns true if the user left without picking.
func (m PromptPickerModel) DidQuit() bool {
	return m.Quit
}

func (m PromptPickerModel) searchCmd(generation int, query string) tea.Cmd {
	search := m.Search
	return func() tea.Msg {
		prompts, err := search(context.Background(), query)
		return searchResultMsg{generation: generation, prompts: prompts, err: err}
	}
}

func (m PromptPickerModel) filterExcluded(prompts []api.Prompt) []api.Prompt {
	if len(m.Exclude) == 0 {
		return prompts
	}
	out := make([]api.Prompt, 0, len(prompts))
	for _, p := range prompts {
		if !m.Exclude[p.ID] {
			out = append(out, p)
		}
	}
	return out
}
