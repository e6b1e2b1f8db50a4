package ui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"unifiedai/internal/api"
	"unifiedai/internal/models"
	"unifiedai/internal/styles"
)

// openHistory shows the sidebar and always refetches the session list.
func (m *Model) openHistory() tea.Cmd {
	m.HistoryOpen = true
	m.SelectorOpen = false
	m.ShortcutsOpen = false
	m.HistoryLoading = true
	m.HistoryErr = nil
	m.HistorySessions = nil
	m.HistoryPage = 0
	m.HistoryCursor = 0
	return tea.Batch(m.fetchChatsCmd(), m.Spinner.Tick)
}

func (m *Model) historyPageCount() int {
	pages := (len(m.HistorySessions) + HistoryPageSize - 1) / HistoryPageSize
	if pages < 1 {
		pages = 1
	}
	return pages
}

// historyRows lists the visible rows of the current page, sessions
// followed by the models of expanded sessions.
func (m *Model) historyRows() []historyRow {
	start := m.HistoryPage * HistoryPageSize
	end := min(start+HistoryPageSize, len(m.HistorySessions))
	var rows []historyRow
	for i := start; i < end; i++ {
		rows = append(rows, historyRow{Session: i, Model: -1})
		s := m.HistorySessions[i]
		if !s.Expanded {
			continue
		}
		for j := range s.UsedModels {
			rows = append(rows, historyRow{Session: i, Model: j})
		}
	}
	return rows
}

func (m *Model) currentHistoryRow() (historyRow, bool) {
	rows := m.historyRows()
	if m.HistoryCursor < 0 || m.HistoryCursor >= len(rows) {
		return historyRow{}, false
	}
	return rows[m.HistoryCursor], true
}

func (m *Model) updateHistory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.historyRows()
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "ctrl+h":
		m.HistoryOpen = false
		return m, nil
	case "r":
		return m, m.openHistory()
	case "up", "k":
		if len(rows) > 0 {
			m.HistoryCursor = (m.HistoryCursor - 1 + len(rows)) % len(rows)
		}
	case "down", "j":
		if len(rows) > 0 {
			m.HistoryCursor = (m.HistoryCursor + 1) % len(rows)
		}
	case "left", "h":
		if m.HistoryPage > 0 {
			m.HistoryPage--
			m.HistoryCursor = 0
		}
	case "right", "l":
		if m.HistoryPage < m.historyPageCount()-1 {
			m.HistoryPage++
			m.HistoryCursor = 0
		}
	case " ", "tab":
		row, ok := m.currentHistoryRow()
		if !ok {
			return m, nil
		}
		return m, m.toggleHistorySession(row.Session)
	case "enter":
		row, ok := m.currentHistoryRow()
		if !ok {
			return m, nil
		}
		s := m.HistorySessions[row.Session]
		if row.Model < 0 {
			return m, m.loadHistoryView(s.Summary.ID, models.ViewCombined, "")
		}
		return m, m.loadHistoryView(s.Summary.ID, models.ViewSingleModel, s.UsedModels[row.Model].ID)
	case "c", "b":
		row, ok := m.currentHistoryRow()
		if !ok {
			return m, nil
		}
		mode := models.ViewCombined
		if msg.String() == "b" {
			mode = models.ViewBestPick
		}
		return m, m.loadHistoryView(m.HistorySessions[row.Session].Summary.ID, mode, "")
	}
	return m, nil
}

// toggleHistorySession expands or collapses a session; the used models are
// fetched the first time it opens.
func (m *Model) toggleHistorySession(i int) tea.Cmd {
	s := &m.HistorySessions[i]
	s.Expanded = !s.Expanded
	if !s.Expanded {
		rows := m.historyRows()
		for idx, r := range rows {
			if r.Session == i && r.Model < 0 {
				m.HistoryCursor = idx
				break
			}
		}
		return nil
	}
	if s.UsedModels != nil || s.Loading {
		return nil
	}
	s.Loading = true
	s.Err = nil
	return tea.Batch(m.fetchUsedModelsCmd(s.Summary.ID), m.Spinner.Tick)
}

func (m *Model) loadHistoryView(chatID models.ID, mode models.ViewMode, modelID models.ID) tea.Cmd {
	m.HistoryViewLoading = true
	m.HistoryOpen = false
	m.UpdateViewport()
	return tea.Batch(m.fetchHistoryCmd(chatID, mode, modelID), m.Spinner.Tick)
}

func (m *Model) handleChatsLoaded(msg chatsLoadedMsg) {
	m.HistoryLoading = false
	if msg.Err != nil {
		m.logger.Error("fetch chats", zap.Error(msg.Err))
		m.HistoryErr = msg.Err
		return
	}
	m.HistorySessions = make([]historySession, 0, len(msg.Chats))
	for _, c := range msg.Chats {
		m.HistorySessions = append(m.HistorySessions, historySession{Summary: c})
	}
}

func (m *Model) handleUsedModels(msg usedModelsMsg) {
	for i := range m.HistorySessions {
		s := &m.HistorySessions[i]
		if s.Summary.ID != msg.ChatID {
			continue
		}
		s.Loading = false
		if msg.Err != nil {
			m.logger.Error("fetch used models", zap.String("chat_id", msg.ChatID.String()), zap.Error(msg.Err))
			s.Err = msg.Err
			return
		}
		s.UsedModels = msg.Models
		if s.UsedModels == nil {
			s.UsedModels = []models.SelectedModel{}
		}
		return
	}
}

func (m *Model) handleHistoryLoaded(msg historyLoadedMsg) tea.Cmd {
	m.HistoryViewLoading = false
	if msg.Err != nil {
		m.logger.Error("fetch chat history",
			zap.String("chat_id", msg.ChatID.String()),
			zap.Stringer("mode", msg.Mode),
			zap.Error(msg.Err),
		)
		m.UpdateViewport()
		return m.notify(NoticeError, "Failed to load chat history")
	}
	m.promptSeq++
	m.Conversation.LoadHistory(msg.ChatID, msg.Turns)
	m.ViewMode = msg.Mode
	m.invalidateRender()
	m.UpdateViewport()
	return nil
}

func historyErrText(err error) string {
	if errors.Is(err, api.ErrNotLoggedIn) {
		return "Log in to see your chats"
	}
	return "Failed to fetch chats"
}

func (m *Model) RenderHistorySelector() string {
	title := styles.ModalTitleStyle.Render(fmt.Sprintf("Recent Chats (%d) - Page %d/%d", len(m.HistorySessions), m.HistoryPage+1, m.historyPageCount()))
	muted := lipgloss.NewStyle().Foreground(styles.HintColor)

	var body string
	switch {
	case m.HistoryLoading:
		body = styles.ModalItemStyle.Render(m.Spinner.View() + " Loading chats...")
	case m.HistoryErr != nil:
		body = lipgloss.NewStyle().Width(styles.ContentWidth).Render(styles.ErrorStyle.Render(historyErrText(m.HistoryErr)))
	case len(m.HistorySessions) == 0:
		body = styles.ModalItemStyle.Render(muted.Render("No chats yet"))
	default:
		var items []string
		for idx, row := range m.historyRows() {
			s := m.HistorySessions[row.Session]
			selected := idx == m.HistoryCursor

			var line string
			if row.Model < 0 {
				marker := "▸ "
				if s.Expanded {
					marker = "▾ "
				}
				when := ""
				if t := s.Summary.Created(); !t.IsZero() {
					when = humanize.Time(t)
				}
				titleText := s.Summary.Title
				if titleText == "" {
					titleText = "(untitled)"
				}
				titleText = TruncateRunes(PromptPreview(titleText), styles.ContentWidth-4-len(marker)-len(when))
				line = fmt.Sprintf("%s%s %s", marker, titleText, muted.Render(when))
			} else {
				line = "    • " + TruncateRunes(s.UsedModels[row.Model].Name, styles.ContentWidth-8)
			}

			if selected {
				items = append(items, styles.ModalSelectedStyle.Render(line))
			} else {
				items = append(items, styles.ModalItemStyle.Render(line))
			}

			if row.Model < 0 && s.Expanded {
				switch {
				case s.Loading:
					items = append(items, styles.ModalItemStyle.Render("    "+m.Spinner.View()+" Loading models..."))
				case s.Err != nil:
					items = append(items, styles.ModalItemStyle.Render("    "+styles.ErrorStyle.Render("Failed to fetch models")))
				case len(s.UsedModels) == 0:
					items = append(items, styles.ModalItemStyle.Render(muted.Render("    No models recorded")))
				}
			}
		}
		body = lipgloss.JoinVertical(lipgloss.Left, items...)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, title, body)
	return lipgloss.JoinVertical(lipgloss.Left, content,
		styles.Hint("↑/↓: navigate • ←/→: page • Space: models • Enter: open • c: combined • b: best pick • Esc: close"))
}
