package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"unifiedai/internal/chat"
	"unifiedai/internal/styles"
)

type shortcut struct {
	key  string
	desc string
}

func (m *Model) shortcuts() []shortcut {
	switch m.Route {
	case RouteAI:
		return []shortcut{
			{"Enter", "Send prompt"},
			{"Shift+Enter", "New line"},
			{"Ctrl+B", "Select AI models"},
			{"Ctrl+H", "Chat history"},
			{"Ctrl+N", "New chat"},
			{"Ctrl+Y", "Copy last reply"},
			{"Ctrl+T", "Job tracker"},
			{"Ctrl+L", "Log out"},
			{"Esc", "Home"},
			{"Ctrl+C", "Quit"},
		}
	case RouteJobs:
		return []shortcut{
			{"↑/↓", "Move"},
			{"n", "New application"},
			{"e", "Advance status"},
			{"d", "Delete"},
			{"f", "Cycle status filter"},
			{"s", "Toggle date sort"},
			{"r", "Refresh"},
			{"Esc", "Back"},
			{"Ctrl+C", "Quit"},
		}
	default:
		return []shortcut{
			{"Enter", "Log in or open chat"},
			{"r", "Register"},
			{"j", "Job tracker"},
			{"↑/↓", "Scroll"},
			{"q", "Quit"},
		}
	}
}

func (m *Model) RenderShortcutsModal() string {
	title := styles.ModalTitleStyle.Render("Keyboard Shortcuts")

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFCC80")).
		Bold(true).
		Width(12)
	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#E0E0E0"))

	var items []string
	for _, s := range m.shortcuts() {
		line := fmt.Sprintf("%s %s", keyStyle.Render(s.key), descStyle.Render(s.desc))
		items = append(items, styles.ModalItemStyle.Render(line))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, title, lipgloss.JoinVertical(lipgloss.Left, items...))
	return lipgloss.JoinVertical(lipgloss.Left, content, styles.Hint("Esc/Enter: close"))
}

func (m *Model) RenderBottomBar() string {
	badgeColor := "#81D4FA"
	switch m.Route {
	case RouteAI:
		badgeColor = "#CE93D8"
	case RouteJobs:
		badgeColor = "#FFCC80"
	}
	route := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color(badgeColor)).
		Padding(0, 1).
		Render(m.Route.Title())

	user := "not logged in"
	if m.session.LoggedIn() {
		user = TruncateRunes(m.session.Identity(), 24)
		if user == "" {
			user = "logged in"
		}
	}
	account := lipgloss.NewStyle().Foreground(styles.CurrentTheme.TextMuted).Render(user)

	left := lipgloss.JoinHorizontal(lipgloss.Center, route, "  ", account)
	if m.Route == RouteAI {
		left = lipgloss.JoinHorizontal(lipgloss.Center, left, "  ", m.renderCatalogStatus())
	}

	right := lipgloss.NewStyle().Foreground(lipgloss.Color("#555555")).Render("Help: ^S")
	if notice := m.RenderNotice(); notice != "" {
		right = lipgloss.JoinHorizontal(lipgloss.Center, notice, "  ", right)
	}

	availableWidth := m.WindowWidth - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if availableWidth < 0 {
		availableWidth = 0
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Center, left, strings.Repeat(" ", availableWidth), right)

	return lipgloss.NewStyle().
		Width(m.WindowWidth).
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.CurrentTheme.Border).
		Padding(0, 1).
		Render(bar)
}

func (m *Model) renderCatalogStatus() string {
	cat := &m.Conversation.Catalog
	switch cat.State() {
	case chat.CatalogLoading:
		return m.Spinner.View() + " models"
	case chat.CatalogFailed:
		return styles.ErrorStyle.Render("models unavailable")
	case chat.CatalogReady:
		n := m.Conversation.Selection.Len()
		text := fmt.Sprintf("%d/%d models", n, len(cat.Models()))
		color := "#B39DDB"
		if n == 0 {
			color = "#FFF59D"
		}
		return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(text)
	default:
		return ""
	}
}

func (m *Model) overlay(modal string) string {
	modal = styles.ModalStyle.Width(ModalWidth).Render(modal)
	if notice := m.RenderNotice(); notice != "" {
		modal = lipgloss.JoinVertical(lipgloss.Center, modal, "", notice)
	}
	return lipgloss.Place(
		m.WindowWidth,
		m.WindowHeight,
		lipgloss.Center,
		lipgloss.Center,
		modal,
	)
}

func (m *Model) View() string {
	if m.WindowWidth == 0 {
		return m.Spinner.View() + " Starting..."
	}

	switch {
	case m.ShortcutsOpen:
		return m.overlay(m.RenderShortcutsModal())
	case m.AuthOpen:
		return m.overlay(m.RenderAuthPopup())
	case m.Route == RouteAI && m.HistoryOpen:
		return m.overlay(m.RenderHistorySelector())
	case m.Route == RouteAI && m.SelectorOpen:
		return m.overlay(m.RenderModelSelector())
	case m.Route == RouteJobs && m.JobForm != nil:
		return m.overlay(m.RenderJobForm())
	}

	var page string
	switch m.Route {
	case RouteAI:
		page = m.RenderChat()
	case RouteJobs:
		page = m.RenderJobs()
	default:
		page = m.RenderHome()
	}

	// Pin the bottom bar to the last rows.
	bar := m.RenderBottomBar()
	pageHeight := m.WindowHeight - lipgloss.Height(bar)
	if pageHeight > 0 {
		page = lipgloss.NewStyle().Height(pageHeight).MaxHeight(pageHeight).Render(page)
	}
	return lipgloss.JoinVertical(lipgloss.Left, page, bar)
}
