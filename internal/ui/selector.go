package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"unifiedai/internal/chat"
	"unifiedai/internal/models"
	"unifiedai/internal/styles"
)

func (m *Model) openSelector() {
	m.SelectorOpen = true
	m.HistoryOpen = false
	m.ShortcutsOpen = false
	if n := len(m.Conversation.Catalog.Models()); m.SelectorIdx >= n {
		m.SelectorIdx = 0
	}
	m.UpdateSelectorContent()
	m.SyncModelViewportScroll()
}

func (m *Model) updateSelector(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	list := m.Conversation.Catalog.Models()
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "ctrl+b":
		m.SelectorOpen = false
		return m, nil
	case "up", "k":
		if len(list) == 0 {
			return m, nil
		}
		m.SelectorIdx--
		if m.SelectorIdx < 0 {
			m.SelectorIdx = len(list) - 1
		}
	case "down", "j":
		if len(list) == 0 {
			return m, nil
		}
		m.SelectorIdx++
		if m.SelectorIdx >= len(list) {
			m.SelectorIdx = 0
		}
	case " ", "enter":
		if m.SelectorIdx < len(list) {
			mdl := list[m.SelectorIdx]
			m.Conversation.Selection.Toggle(models.SelectedModel{ID: mdl.Key(), Name: mdl.Name})
		}
	default:
		return m, nil
	}
	m.SyncModelViewportScroll()
	m.UpdateSelectorContent()
	return m, nil
}

func (m *Model) UpdateSelectorContent() {
	cat := &m.Conversation.Catalog
	switch cat.State() {
	case chat.CatalogFailed:
		m.ModelViewport.SetContent(styles.ErrorStyle.Render("Failed to fetch AI models"))
		return
	case chat.CatalogReady:
	default:
		m.ModelViewport.SetContent(m.Spinner.View() + " Loading models...")
		return
	}

	list := cat.Models()
	if len(list) == 0 {
		m.ModelViewport.SetContent(lipgloss.NewStyle().Foreground(styles.HintColor).Render("No models available"))
		return
	}

	items := make([]string, 0, len(list))
	for i, mdl := range list {
		checked := m.Conversation.Selection.Contains(mdl.Key())
		box := "[ ] "
		if checked {
			box = "[x] "
		}
		line := box + mdl.Name

		if i == m.SelectorIdx {
			items = append(items, styles.ModalSelectedStyle.Width(styles.ContentWidth).Render(line))
			continue
		}
		style := styles.ModalItemStyle.Width(styles.ContentWidth)
		if checked {
			style = style.Foreground(lipgloss.Color("#90CAF9"))
		} else {
			style = style.Foreground(lipgloss.AdaptiveColor{Light: "#1a1a2e", Dark: "#FFFFFF"})
		}
		items = append(items, style.Render(line))
	}
	m.ModelViewport.SetContent(lipgloss.JoinVertical(lipgloss.Left, items...))
}

// SyncModelViewportScroll keeps the cursor row inside the selector window.
func (m *Model) SyncModelViewportScroll() {
	y := m.SelectorIdx
	if y+1 > m.ModelViewport.YOffset+m.ModelViewport.Height {
		m.ModelViewport.SetYOffset(y + 1 - m.ModelViewport.Height)
	}
	if y < m.ModelViewport.YOffset {
		m.ModelViewport.SetYOffset(y)
	}
}

func (m *Model) RenderModelSelector() string {
	title := styles.ModalTitleStyle.Render(fmt.Sprintf("Select AI Models (%d selected)", m.Conversation.Selection.Len()))
	content := lipgloss.JoinVertical(lipgloss.Left, title, m.ModelViewport.View())
	return lipgloss.JoinVertical(lipgloss.Left, content, styles.Hint("↑/↓: navigate • Space/Enter: toggle • Esc: close"))
}
