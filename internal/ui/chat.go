package ui

import (
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"unifiedai/internal/chat"
	"unifiedai/internal/models"
	"unifiedai/internal/styles"
)

func (m *Model) updateChat(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if isNewlineShortcut(msg) {
		m.TextInput.InsertString("\n")
		m.updateInputLayout()
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		return m, m.navigate(RouteHome)
	case "enter":
		return m, m.submitPrompt()
	case "ctrl+n":
		m.newChat()
		return m, nil
	case "ctrl+b":
		m.openSelector()
		return m, nil
	case "ctrl+h":
		return m, m.openHistory()
	case "ctrl+s":
		m.ShortcutsOpen = true
		return m, nil
	case "ctrl+y":
		last, ok := m.Conversation.LastReply()
		if !ok {
			return m, m.notify(NoticeWarning, "Nothing to copy yet")
		}
		return m, copyCmd(last.Content)
	case "ctrl+l":
		return m, m.logout()
	case "ctrl+t":
		return m, m.navigate(RouteJobs)
	case "pgup", "pgdown", "ctrl+up", "ctrl+down":
		var cmd tea.Cmd
		m.Viewport, cmd = m.Viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.TextInput, cmd = m.TextInput.Update(msg)
	m.updateInputLayout()
	return m, cmd
}

// submitPrompt runs one prompt cycle: the user message is appended at once
// and the replies arrive as a replyMsg.
func (m *Model) submitPrompt() tea.Cmd {
	req, err := m.Conversation.Submit(m.TextInput.Value())
	switch {
	case errors.Is(err, chat.ErrEmptyPrompt), errors.Is(err, chat.ErrPending):
		return nil
	case errors.Is(err, chat.ErrNoModelsSelected):
		return m.notify(NoticeWarning, "Please select at least one AI model")
	case errors.Is(err, chat.ErrCatalogNotLoaded):
		if m.Conversation.Catalog.State() == chat.CatalogFailed {
			return m.notify(NoticeError, "Failed to fetch AI models")
		}
		return m.notify(NoticeWarning, "AI models are still loading")
	case err != nil:
		return m.notify(NoticeError, err.Error())
	}

	m.logger.Debug("prompt submitted",
		zap.Int("models", len(req.SelectedTextModels)),
		zap.Bool("new_chat", req.ChatID == nil),
	)
	m.promptSeq++
	m.TextInput.Reset()
	m.updateInputLayout()
	m.UpdateViewport()
	return tea.Batch(m.sendPromptCmd(req, m.promptSeq), m.Spinner.Tick)
}

func (m *Model) handleReply(msg replyMsg) {
	if msg.Seq != m.promptSeq || !m.Conversation.Pending() {
		// The chat was reset while the request was in flight.
		m.logger.Debug("dropping reply for abandoned prompt", zap.Int("seq", msg.Seq))
		return
	}
	if msg.Err != nil {
		m.logger.Error("get reply", zap.Error(msg.Err))
		m.Conversation.ApplyFailure(msg.Err)
	} else {
		m.Conversation.ApplyReply(msg.Reply)
	}
	m.UpdateViewport()
}

func (m *Model) handleModelsLoaded(msg modelsLoadedMsg) tea.Cmd {
	cat := &m.Conversation.Catalog
	if msg.Err != nil {
		m.logger.Error("fetch models", zap.Error(msg.Err))
		cat.SetError(msg.Err)
	} else {
		m.logger.Debug("models loaded", zap.Int("count", len(msg.Models)))
		cat.SetModels(msg.Models)
	}
	m.UpdateHomeContent()
	m.UpdateSelectorContent()
	if msg.Err != nil && m.Route == RouteAI {
		return m.notify(NoticeError, "Failed to fetch AI models")
	}
	return nil
}

func (m *Model) newChat() {
	m.resetChat()
	m.TextInput.Reset()
	m.updateInputLayout()
	m.UpdateViewport()
}

// resetChat forgets the current chat. Any reply still in flight is
// orphaned.
func (m *Model) resetChat() {
	m.promptSeq++
	m.Conversation.Reset()
	m.ViewMode = models.ViewCombined
	m.invalidateRender()
}

func (m *Model) invalidateRender() {
	m.rendered = m.rendered[:0]
}

// renderMessages renders only messages added since the last call; the
// cache is dropped whenever the log is replaced or the width changes.
func (m *Model) renderMessages() []string {
	msgs := m.Conversation.Messages()
	if len(m.rendered) > len(msgs) {
		m.rendered = m.rendered[:0]
	}
	for i := len(m.rendered); i < len(msgs); i++ {
		m.rendered = append(m.rendered, m.renderMessage(msgs[i], i == 0))
	}
	return m.rendered
}

func (m *Model) renderMessage(msg models.Message, first bool) string {
	switch msg.Role {
	case models.RoleUser:
		return FormatUserMessage(msg.Content, m.Viewport.Width, first)
	case models.RoleError:
		return styles.ErrorStyle.Render(msg.Content)
	default:
		content := msg.Content
		if m.Renderer != nil {
			if out, err := m.Renderer.Render(content); err == nil {
				content = strings.TrimSpace(out)
			}
		}
		return FormatAIMessage(content)
	}
}

func (m *Model) UpdateViewport() {
	pending := m.Conversation.Pending() || m.HistoryViewLoading
	if m.Conversation.Len() == 0 && !pending {
		m.Viewport.SetContent(m.welcome())
		return
	}

	content := strings.Join(m.renderMessages(), "\n\n")
	if pending {
		status := " Asking the selected models..."
		if m.HistoryViewLoading {
			status = " Loading chat..."
		}
		loading := styles.AiLabelStyle.Render("AI") + "\n" + m.Spinner.View() + status
		if content != "" {
			content += "\n\n" + loading
		} else {
			content = loading
		}
	}
	m.Viewport.SetContent(content)
	m.Viewport.GotoBottom()
}

func (m *Model) welcome() string {
	sub := styles.WelcomeSubtitleStyle.Render("Select models with Ctrl+B, then ask anything.")
	content := lipgloss.JoinVertical(lipgloss.Center, styles.WelcomeArtStyle.Render(heroArt), "", sub)
	return lipgloss.Place(m.Viewport.Width, m.Viewport.Height, lipgloss.Center, lipgloss.Center, content)
}

func isNewlineShortcut(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "shift+enter", "shift+return", "ctrl+j", "ctrl+enter", "alt+enter":
		return true
	default:
		return false
	}
}

func (m *Model) updateInputLayout() {
	if m.WindowWidth == 0 || m.WindowHeight == 0 {
		return
	}

	inputWidth := m.WindowWidth - 6
	if inputWidth < 20 {
		inputWidth = 20
	}
	contentWidth := inputWidth - 2
	if contentWidth < 1 {
		contentWidth = 1
	}

	maxInputHeight := 6
	lineCount := WrappedLineCount(m.TextInput.Value(), contentWidth)
	if lineCount < 1 {
		lineCount = 1
	}
	if lineCount > maxInputHeight {
		lineCount = maxInputHeight
	}

	m.TextInput.MaxHeight = maxInputHeight
	m.TextInput.SetWidth(inputWidth)
	m.TextInput.SetHeight(lineCount)

	// title, greeting, blank lines, input border and bottom bar
	inputBoxHeight := m.TextInput.Height() + 2
	reserved := inputBoxHeight + 7
	viewportHeight := m.WindowHeight - reserved
	if viewportHeight < 5 {
		viewportHeight = 5
	}
	m.Viewport.Height = viewportHeight
}

func (m *Model) RenderChat() string {
	inputWidth := m.WindowWidth - 4
	inputBox := styles.InputBoxStyle.Width(inputWidth).Render(m.TextInput.View())

	header := styles.TitleStyle.Render("UNIFIED AI")
	if m.Conversation.ChatID() != "" {
		header += styles.SubtitleStyle.Render(" " + m.ViewMode.String())
	}

	chatContent := lipgloss.JoinVertical(lipgloss.Center,
		header,
		styles.GreetingStyle.Render(Greeting(time.Now(), m.session.Identity())),
		"",
		m.Viewport.View(),
		"",
		inputBox,
	)
	return lipgloss.PlaceHorizontal(m.WindowWidth, lipgloss.Center, chatContent)
}
