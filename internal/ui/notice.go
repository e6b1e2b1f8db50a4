package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"unifiedai/internal/styles"
)

// notify shows a transient notice. A newer notice replaces an older one and
// only the newest expiry clears the bar.
func (m *Model) notify(kind NoticeKind, text string) tea.Cmd {
	m.noticeSeq++
	id := m.noticeSeq
	m.Notice = &Notice{ID: id, Kind: kind, Text: text}
	return tea.Tick(NoticeDuration, func(time.Time) tea.Msg {
		return noticeExpiredMsg{ID: id}
	})
}

func (m *Model) expireNotice(id int) {
	if m.Notice != nil && m.Notice.ID == id {
		m.Notice = nil
	}
}

func (k NoticeKind) color() lipgloss.Color {
	switch k {
	case NoticeSuccess:
		return styles.CurrentTheme.Success
	case NoticeWarning:
		return styles.CurrentTheme.Warning
	case NoticeError:
		return styles.CurrentTheme.Error
	default:
		return styles.CurrentTheme.Info
	}
}

func (m *Model) RenderNotice() string {
	if m.Notice == nil {
		return ""
	}
	return styles.NoticeStyle(m.Notice.Kind.color()).Render(m.Notice.Text)
}
