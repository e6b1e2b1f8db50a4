package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"unifiedai/internal/chat"
	"unifiedai/internal/styles"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		m.refreshSpinnerViews()
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case noticeExpiredMsg:
		m.expireNotice(msg.ID)
		return m, nil

	case homeTickMsg:
		return m, m.handleHomeTick(msg)

	case modelsLoadedMsg:
		return m, m.handleModelsLoaded(msg)

	case registerDoneMsg:
		return m, m.handleRegisterDone(msg)

	case loginDoneMsg:
		return m, m.handleLoginDone(msg)

	case replyMsg:
		m.handleReply(msg)
		return m, nil

	case chatsLoadedMsg:
		m.handleChatsLoaded(msg)
		return m, nil

	case usedModelsMsg:
		m.handleUsedModels(msg)
		return m, nil

	case historyLoadedMsg:
		return m, m.handleHistoryLoaded(msg)

	case jobsLoadedMsg:
		m.handleJobsLoaded(msg)
		return m, nil

	case jobMutatedMsg:
		return m, m.handleJobMutated(msg)

	case copiedMsg:
		if msg.Err != nil {
			m.logger.Warn("copy to clipboard", zap.Error(msg.Err))
			return m, m.notify(NoticeError, "Copy failed")
		}
		return m, m.notify(NoticeSuccess, "Copied last reply")
	}

	if m.Route == RouteAI {
		var cmd tea.Cmd
		m.TextInput, cmd = m.TextInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey routes a key press to the topmost layer: modals first, then
// the current page.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.ShortcutsOpen {
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc", "enter", "?", "ctrl+s":
			m.ShortcutsOpen = false
		}
		return m, nil
	}
	if m.AuthOpen {
		return m.updateAuth(msg)
	}

	switch m.Route {
	case RouteAI:
		if m.HistoryOpen {
			return m.updateHistory(msg)
		}
		if m.SelectorOpen {
			return m.updateSelector(msg)
		}
		model, cmd := m.updateChat(msg)
		m.filterTerminalReplies()
		return model, cmd
	case RouteJobs:
		return m.updateJobs(msg)
	default:
		return m.updateHome(msg)
	}
}

// filterTerminalReplies drops background color and cursor position reports
// that some terminals leak into the input.
func (m *Model) filterTerminalReplies() {
	val := m.TextInput.Value()
	if strings.Contains(val, "]11;rgb:") || strings.Contains(val, "1;rgb:") || strings.Contains(val, "[1;1R") {
		m.TextInput.Reset()
		m.updateInputLayout()
	}
}

func (m *Model) busy() bool {
	return m.Conversation.Pending() ||
		m.Conversation.Catalog.State() == chat.CatalogLoading ||
		m.AuthPending ||
		m.HistoryLoading ||
		m.HistoryViewLoading ||
		m.JobsLoading ||
		(m.JobForm != nil && m.JobForm.Pending) ||
		m.historyModelsLoading()
}

func (m *Model) historyModelsLoading() bool {
	for _, s := range m.HistorySessions {
		if s.Loading {
			return true
		}
	}
	return false
}

// refreshSpinnerViews re-renders the cached views that embed the spinner.
func (m *Model) refreshSpinnerViews() {
	switch m.Route {
	case RouteAI:
		if m.Conversation.Pending() || m.HistoryViewLoading {
			m.UpdateViewport()
		}
		if m.SelectorOpen {
			m.UpdateSelectorContent()
		}
	case RouteHome:
		m.UpdateHomeContent()
	}
}

func (m *Model) resize(width, height int) {
	m.WindowWidth = width
	m.WindowHeight = height

	ModalWidth = width - 10
	if ModalWidth > ModalWidthMax {
		ModalWidth = ModalWidthMax
	}
	if ModalWidth < 30 {
		ModalWidth = 30
	}
	styles.ContentWidth = ModalWidth - 6

	m.ModelViewport.Width = styles.ContentWidth
	m.ModelViewport.Height = height - 15
	if m.ModelViewport.Height > 20 {
		m.ModelViewport.Height = 20
	}
	if m.ModelViewport.Height < 5 {
		m.ModelViewport.Height = 5
	}

	chatWidth := width - 2
	m.Viewport.Width = chatWidth - 2

	// header and bottom bar
	m.HomeScroll.Width = width
	m.HomeScroll.Height = max(height-4, 5)

	m.JobsTable.SetColumns(jobColumns(width))
	m.JobsTable.SetHeight(max(height-12, 5))

	m.updateInputLayout()
	m.Renderer = m.newRenderer(chatWidth - 6)
	m.invalidateRender()
	m.UpdateViewport()
	m.UpdateHomeContent()
	m.UpdateSelectorContent()
}

func (m *Model) newRenderer(wrap int) *glamour.TermRenderer {
	style := m.GlamourStyle
	if style == "auto" {
		style = "dark"
		if !lipgloss.HasDarkBackground() {
			style = "light"
		}
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		m.logger.Warn("markdown renderer", zap.String("style", style), zap.Error(err))
		return nil
	}
	return r
}
