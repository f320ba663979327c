package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// LoginFunc attempts to establish a session with the given credentials.
type LoginFunc func(ctx context.Context, email, password string) error

// loginResultMsg reports a login attempt.
type loginResultMsg struct {
	err error
}

// LoginModel is a Bubble Tea model for the email/password login form.
type LoginModel struct {
	// Login attempts the sign-in.
	Login LoginFunc

	// Done indicates a successful login.
	Done bool

	// Cancelled indicates the form was abandoned.
	Cancelled bool

	// Err holds the last failed attempt, shown inline so the form can be
	// retried without restarting.
	Err error

	email    textinput.Model
	password textinput.Model
	busy     bool

	titleStyle  lipgloss.Style
	labelStyle  lipgloss.Style
	footerStyle lipgloss.Style
}

// NewLoginModel creates a login form.
func NewLoginModel(login LoginFunc) LoginModel {
	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return LoginModel{
		Login:    login,
		email:    email,
		password: password,
		titleStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true),
		labelStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("242")).
			Width(10),
		footerStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
	}
}

// Init implements tea.Model.
func (m LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.Cancelled = true
			return m, tea.Quit

		case "tab", "shift+tab":
			if m.email.Focused() {
				m.email.Blur()
				m.password.Focus()
			} else {
				m.password.Blur()
				m.email.Focus()
			}
			return m, nil

		case "enter":
			if m.email.Focused() {
				m.email.Blur()
				m.password.Focus()
				return m, nil
			}
			if m.busy {
				return m, nil
			}
			m.busy = true
			email := strings.TrimSpace(m.email.Value())
			password := m.password.Value()
			login := m.Login
			return m, func() tea.Msg {
				return loginResultMsg{err: login(context.Background(), email, password)}
			}
		}

	case loginResultMsg:
		m.busy = false
		if msg.err != nil {
			m.Err = msg.err
			m.password.SetValue("")
			return m, nil
		}
		m.Done = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	if m.email.Focused() {
		m.email, cmd = m.email.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model.
func (m LoginModel) View() string {
	var b strings.Builder

	b.WriteString("\n  ")
	b.WriteString(m.titleStyle.Render("Sign in"))
	b.WriteString("\n\n")

	if m.Err != nil {
		b.WriteString("  ")
		b.WriteString(m.footerStyle.Render(m.Err.Error()))
		b.WriteString("\n\n")
	}

	b.WriteString("  " + m.labelStyle.Render("Email:") + " " + m.email.View() + "\n")
	b.WriteString("  " + m.labelStyle.Render("Password:") + " " + m.password.View() + "\n\n")

	status := "[Enter] Sign in • [Tab] Switch field • [Esc] Cancel"
	if m.busy {
		status = "signing in..."
	}
	b.WriteString("  " + m.footerStyle.Render(status) + "\n")

	return b.String()
}
