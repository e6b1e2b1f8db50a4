package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"unifiedai/internal/styles"
)

type authField struct {
	Label string
	Input textinput.Model
}

func newAuthField(label, placeholder string, secret bool) authField {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "❯ "
	ti.CharLimit = 256
	ti.Width = styles.ContentWidth - 4
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B39DDB")).Bold(true)
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(styles.HintColor)
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	return authField{Label: label, Input: ti}
}

func authFieldsFor(tab AuthTab) []authField {
	if tab == TabRegister {
		return []authField{
			newAuthField("Username", "jane", false),
			newAuthField("Email", "jane@example.com", false),
			newAuthField("Password", "", true),
		}
	}
	return []authField{
		newAuthField("Email or Username", "", false),
		newAuthField("Password", "", true),
	}
}

func (m *Model) openAuth(tab AuthTab) {
	m.AuthOpen = true
	m.ShortcutsOpen = false
	m.switchAuthTab(tab)
}

func (m *Model) switchAuthTab(tab AuthTab) {
	m.AuthTab = tab
	m.AuthFields = authFieldsFor(tab)
	m.AuthFocus = 0
	m.focusAuthField()
}

func (m *Model) focusAuthField() {
	for i := range m.AuthFields {
		if i == m.AuthFocus {
			m.AuthFields[i].Input.Focus()
		} else {
			m.AuthFields[i].Input.Blur()
		}
	}
}

func (m *Model) authValue(i int) string {
	if i < 0 || i >= len(m.AuthFields) {
		return ""
	}
	return strings.TrimSpace(m.AuthFields[i].Input.Value())
}

func (m *Model) updateAuth(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.AuthOpen = false
		return m, nil
	case "ctrl+t":
		if m.AuthTab == TabLogin {
			m.switchAuthTab(TabRegister)
		} else {
			m.switchAuthTab(TabLogin)
		}
		return m, nil
	case "tab", "down":
		m.AuthFocus = (m.AuthFocus + 1) % len(m.AuthFields)
		m.focusAuthField()
		return m, nil
	case "shift+tab", "up":
		m.AuthFocus = (m.AuthFocus - 1 + len(m.AuthFields)) % len(m.AuthFields)
		m.focusAuthField()
		return m, nil
	case "enter":
		if m.AuthFocus < len(m.AuthFields)-1 {
			m.AuthFocus++
			m.focusAuthField()
			return m, nil
		}
		return m, m.submitAuth()
	}

	var cmd tea.Cmd
	f := &m.AuthFields[m.AuthFocus]
	f.Input, cmd = f.Input.Update(msg)
	return m, cmd
}

func (m *Model) submitAuth() tea.Cmd {
	if m.AuthPending {
		return nil
	}
	for i := range m.AuthFields {
		if m.authValue(i) == "" {
			return m.notify(NoticeWarning, m.AuthFields[i].Label+" is required")
		}
	}

	m.AuthPending = true
	if m.AuthTab == TabRegister {
		return tea.Batch(m.registerCmd(m.authValue(0), m.authValue(1), m.AuthFields[2].Input.Value()), m.Spinner.Tick)
	}
	return tea.Batch(m.loginCmd(m.authValue(0), m.AuthFields[1].Input.Value()), m.Spinner.Tick)
}

func (m *Model) handleRegisterDone(msg registerDoneMsg) tea.Cmd {
	m.AuthPending = false
	if msg.Err != nil {
		m.logger.Warn("registration failed", zap.Error(msg.Err))
		return m.notify(NoticeError, "Registration failed")
	}
	m.logger.Info("registered")
	if m.AuthOpen {
		m.switchAuthTab(TabLogin)
	}
	return m.notify(NoticeSuccess, "Registered successfully")
}

func (m *Model) handleLoginDone(msg loginDoneMsg) tea.Cmd {
	m.AuthPending = false
	if msg.Err != nil {
		m.logger.Warn("login failed", zap.Error(msg.Err))
		return m.notify(NoticeError, "Login failed")
	}
	if err := m.session.Set(msg.Token, msg.Identity); err != nil {
		// The token still lives in memory for this run.
		m.logger.Error("persist session", zap.Error(err))
	}
	m.logger.Info("logged in", zap.String("identity", msg.Identity))
	m.AuthOpen = false
	m.AuthFields = nil
	return tea.Batch(m.notify(NoticeSuccess, "Login successful"), m.navigate(RouteAI))
}

func (m *Model) logout() tea.Cmd {
	if err := m.session.Clear(); err != nil {
		m.logger.Error("clear session", zap.Error(err))
	}
	m.logger.Info("logged out")
	m.resetChat()
	m.Conversation.Selection.Clear()
	m.HistorySessions = nil
	return tea.Batch(m.notify(NoticeInfo, "Logged out"), m.navigate(RouteHome))
}

func (m *Model) RenderAuthPopup() string {
	register := styles.TabInactiveStyle.Render("Register")
	login := styles.TabInactiveStyle.Render("Login")
	if m.AuthTab == TabRegister {
		register = styles.TabActiveStyle.Render("Register")
	} else {
		login = styles.TabActiveStyle.Render("Login")
	}
	tabs := lipgloss.JoinHorizontal(lipgloss.Top, register, " ", login)

	parts := []string{tabs, ""}
	for _, f := range m.AuthFields {
		parts = append(parts, styles.FieldLabelStyle.Render(f.Label), f.Input.View(), "")
	}

	action := "Login"
	if m.AuthTab == TabRegister {
		action = "Register"
	}
	if m.AuthPending {
		parts = append(parts, m.Spinner.View()+" "+action+"...")
	} else {
		parts = append(parts, styles.TabActiveStyle.Render(action))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, parts...)
	return lipgloss.JoinVertical(lipgloss.Left, content, styles.Hint("Tab: next field • Ctrl+T: switch tab • Enter: submit • Esc: close"))
}
