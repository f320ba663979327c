package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chazuruo/promptctl/internal/api"
	"github.com/chazuruo/promptctl/internal/steps"
)

// WorkflowSaveFunc persists the staged workflow state.
type WorkflowSaveFunc func(ctx context.Context, in api.WorkflowInput) error

// savedMsg reports a save outcome.
type savedMsg struct {
	err error
}

// editorFocus names the focusable regions of the workflow editor.
type editorFocus int

const (
	focusName editorFocus = iota
	focusDescription
	focusSteps
)

// WorkflowEditorModel is a Bubble Tea model for editing a workflow: name,
// description, visibility, and the ordered step list. All edits are staged
// in memory, including snapshot reverts, until Ctrl+S submits the whole
// state.
type WorkflowEditorModel struct {
	// Builder holds the staged step list.
	Builder *steps.Builder

	// Save persists the staged state.
	Save WorkflowSaveFunc

	// PickerSearch backs the add-step prompt picker. When nil the add-step
	// key is inert.
	PickerSearch PromptSearchFunc

	// PickerDebounce is the search debounce for the add-step picker.
	PickerDebounce time.Duration

	// Organization is carried into the save payload.
	Organization string

	// TeamIDs is the staged team sharing set.
	TeamIDs []string

	// Visibility is the staged visibility.
	Visibility api.Visibility

	// Done indicates a successful save.
	Done bool

	// Cancelled indicates the editor was left without saving.
	Cancelled bool

	// Err holds the last save failure, shown inline.
	Err error

	name        textinput.Model
	description textarea.Model
	focus       editorFocus
	stepCursor  int
	saving      bool
	picker      *PromptPickerModel

	labelStyle    lipgloss.Style
	titleStyle    lipgloss.Style
	selectedStyle lipgloss.Style
	normalStyle   lipgloss.Style
	footerStyle   lipgloss.Style
}

// NewWorkflowEditorModel creates an editor seeded from a workflow. For a new
// workflow pass an empty api.Workflow.
func NewWorkflowEditorModel(w *api.Workflow, save WorkflowSaveFunc) WorkflowEditorModel {
	name := textinput.New()
	name.Placeholder = "Workflow name"
	name.SetValue(w.Name)
	name.Focus()

	desc := textarea.New()
	desc.Placeholder = "Description"
	desc.SetValue(w.Description)
	desc.SetHeight(3)

	vis := w.Visibility
	if vis == "" {
		vis = api.VisibilityPrivate
	}

	return WorkflowEditorModel{
		Builder:      steps.FromWorkflow(w),
		Save:         save,
		Organization: w.Organization,
		TeamIDs:      w.TeamIDs,
		Visibility:   vis,
		name:         name,
		description:  desc,
		titleStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true),
		labelStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("242")).
			Width(12),
		selectedStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Bold(true),
		normalStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),
		footerStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
	}
}

// ApplySnapshot stages a history snapshot into the editor: recorded fields
// replace the staged values, absent fields keep them. Nothing is persisted
// until save.
func (m *WorkflowEditorModel) ApplySnapshot(snap api.Snapshot, prompts []api.Prompt) {
	if snap.Name != nil {
		m.name.SetValue(*snap.Name)
	}
	if snap.Description != nil {
		m.description.SetValue(*snap.Description)
	}
	if snap.Visibility != nil {
		m.Visibility = *snap.Visibility
	}
	if snap.TeamIDs != nil {
		m.TeamIDs = snap.TeamIDs
	}
	m.Builder.ApplySnapshot(snap, prompts)
	if m.stepCursor >= m.Builder.Len() {
		m.stepCursor = max(0, m.Builder.Len()-1)
	}
}

// Input assembles the staged state into a write payload. TEAM visibility
// keeps the team set; any other visibility clears it before the request.
func (m WorkflowEditorModel) Input() api.WorkflowInput {
	teamIDs := m.TeamIDs
	if m.Visibility != api.VisibilityTeam {
		teamIDs = nil
	}
	return api.WorkflowInput{
		Organization: m.Organization,
		Name:         m.name.Value(),
		Description:  m.description.Value(),
		Visibility:   m.Visibility,
		TeamIDs:      teamIDs,
		Steps:        m.Builder.Inputs(),
	}
}

// Init implements tea.Model.
func (m WorkflowEditorModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m WorkflowEditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.picker != nil {
		return m.updatePicker(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.Cancelled = true
			return m, tea.Quit

		case "ctrl+s":
			if m.saving {
				return m, nil
			}
			m.saving = true
			in := m.Input()
			save := m.Save
			return m, func() tea.Msg {
				return savedMsg{err: save(context.Background(), in)}
			}

		case "ctrl+v":
			m.Visibility = nextVisibility(m.Visibility)
			return m, nil

		case "tab":
			m.focus = (m.focus + 1) % 3
			m.syncFocus()
			return m, nil
		}

		if m.focus == focusSteps {
			return m.handleStepKey(msg)
		}

	case savedMsg:
		m.saving = false
		if msg.err != nil {
			m.Err = msg.err
			return m, nil
		}
		m.Done = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusName:
		m.name, cmd = m.name.Update(msg)
	case focusDescription:
		m.description, cmd = m.description.Update(msg)
	}
	return m, cmd
}

// updatePicker routes messages to the embedded add-step picker. The picker's
// own quit command is absorbed so it never terminates the editor.
func (m WorkflowEditorModel) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.picker.Update(msg)
	pm := updated.(PromptPickerModel)

	if pm.Confirmed {
		if p := pm.GetPicked(); p != nil {
			m.Builder.Add(p.ID, p.Name)
			m.stepCursor = m.Builder.Len() - 1
		}
		m.picker = nil
		return m, nil
	}
	if pm.DidQuit() {
		m.picker = nil
		return m, nil
	}

	m.picker = &pm
	return m, cmd
}

func (m WorkflowEditorModel) handleStepKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "a":
		if m.PickerSearch == nil {
			return m, nil
		}
		picker := NewPromptPickerModel(m.PickerSearch, m.PickerDebounce)
		picker.Exclude = make(map[string]bool)
		for _, s := range m.Builder.Steps() {
			picker.Exclude[s.Prompt] = true
		}
		m.picker = &picker
		return m, picker.Init()

	case "up", "k":
		if m.stepCursor > 0 {
			m.stepCursor--
		}

	case "down", "j":
		if m.stepCursor < m.Builder.Len()-1 {
			m.stepCursor++
		}

	case "K", "shift+up":
		m.Builder.Move(m.stepCursor, -1)
		if m.stepCursor > 0 {
			m.stepCursor--
		}

	case "J", "shift+down":
		if m.stepCursor < m.Builder.Len()-1 {
			m.Builder.Move(m.stepCursor, +1)
			m.stepCursor++
		}

	case "x", "delete":
		m.Builder.Remove(m.stepCursor)
		if m.stepCursor >= m.Builder.Len() {
			m.stepCursor = max(0, m.Builder.Len()-1)
		}
	}
	return m, nil
}

func (m *WorkflowEditorModel) syncFocus() {
	m.name.Blur()
	m.description.Blur()
	switch m.focus {
	case focusName:
		m.name.Focus()
	case focusDescription:
		m.description.Focus()
	}
}

// View implements tea.Model.
func (m WorkflowEditorModel) View() string {
	if m.picker != nil {
		return m.picker.View()
	}

	var b strings.Builder

	b.WriteString("\n  ")
	b.WriteString(m.titleStyle.Render("Workflow Editor"))
	b.WriteString("\n\n")

	if m.Err != nil {
		b.WriteString("  ")
		b.WriteString(m.footerStyle.Render("save failed: " + m.Err.Error()))
		b.WriteString("\n\n")
	}

	b.WriteString("  " + m.labelStyle.Render("Name:") + " " + m.name.View() + "\n\n")
	b.WriteString("  " + m.labelStyle.Render("Description:") + "\n" + m.description.View() + "\n\n")
	b.WriteString("  " + m.labelStyle.Render("Visibility:") + " " + string(m.Visibility) + "\n\n")

	b.WriteString("  " + m.labelStyle.Render("Steps:") + "\n")
	if m.Builder.Len() == 0 {
		b.WriteString("    (no steps)\n")
	}
	for i, s := range m.Builder.Steps() {
		style := m.normalStyle
		if m.focus == focusSteps && i == m.stepCursor {
			style = m.selectedStyle
		}
		label := s.Name
		if label == "" {
			label = s.PromptName
		}
		b.WriteString(style.Render(fmt.Sprintf("    %d. %s", s.Order+1, label)) + "\n")
	}

	b.WriteString("\n  ")
	b.WriteString(m.footerStyle.Render(
		"[Ctrl+S] Save • [Tab] Next field • [Ctrl+V] Visibility • [a] Add step • [J/K] Reorder • [x] Remove step • [Esc] Cancel",
	))
	b.WriteString("\n")

	return b.String()
}

func nextVisibility(v api.Visibility) api.Visibility {
	switch v {
	case api.VisibilityPrivate:
		return api.VisibilityTeam
	case api.VisibilityTeam:
		return api.VisibilityPublic
	default:
		return api.VisibilityPrivate
	}
}
