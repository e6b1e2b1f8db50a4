package ui

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"unifiedai/internal/jobs"
	"unifiedai/internal/models"
)

// Every remote call runs in its own command and reports back with a
// message. Timeouts are enforced by the clients.

func (m *Model) fetchModelsCmd() tea.Cmd {
	api := m.api
	return func() tea.Msg {
		list, err := api.GetModels(context.Background())
		return modelsLoadedMsg{Models: list, Err: err}
	}
}

func (m *Model) registerCmd(username, email, password string) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		return registerDoneMsg{Err: api.Register(context.Background(), username, email, password)}
	}
}

func (m *Model) loginCmd(identifier, password string) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		token, err := api.Login(context.Background(), identifier, password)
		return loginDoneMsg{Token: token, Identity: identifier, Err: err}
	}
}

func (m *Model) sendPromptCmd(req models.PromptRequest, seq int) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		reply, err := api.GetReply(context.Background(), req)
		return replyMsg{Seq: seq, Reply: reply, Err: err}
	}
}

func (m *Model) fetchChatsCmd() tea.Cmd {
	api := m.api
	return func() tea.Msg {
		chats, err := api.GetAllChats(context.Background())
		return chatsLoadedMsg{Chats: chats, Err: err}
	}
}

func (m *Model) fetchUsedModelsCmd(chatID models.ID) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		used, err := api.GetUsedModels(context.Background(), chatID)
		return usedModelsMsg{ChatID: chatID, Models: used, Err: err}
	}
}

func (m *Model) fetchHistoryCmd(chatID models.ID, mode models.ViewMode, modelID models.ID) tea.Cmd {
	api := m.api
	q := models.NewHistoryQuery(chatID, mode, modelID)
	return func() tea.Msg {
		turns, err := api.GetChatHistory(context.Background(), q)
		return historyLoadedMsg{ChatID: chatID, Mode: mode, Turns: turns, Err: err}
	}
}

func (m *Model) fetchJobsCmd(f jobs.Filter) tea.Cmd {
	svc := m.jobsAPI
	return func() tea.Msg {
		list, err := svc.List(context.Background(), f)
		return jobsLoadedMsg{Jobs: list, Err: err}
	}
}

func (m *Model) createJobCmd(job models.Job) tea.Cmd {
	svc := m.jobsAPI
	return func() tea.Msg {
		return jobMutatedMsg{Action: "create", Err: svc.Create(context.Background(), job)}
	}
}

func (m *Model) updateJobStatusCmd(id models.ID, status string) tea.Cmd {
	svc := m.jobsAPI
	return func() tea.Msg {
		return jobMutatedMsg{Action: "update", Err: svc.UpdateStatus(context.Background(), id, status)}
	}
}

func (m *Model) deleteJobCmd(id models.ID) tea.Cmd {
	svc := m.jobsAPI
	return func() tea.Msg {
		return jobMutatedMsg{Action: "delete", Err: svc.Delete(context.Background(), id)}
	}
}

func copyCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{Err: clipboard.WriteAll(text)}
	}
}

func homeTick(gen int) tea.Cmd {
	return tea.Tick(HomeRevealInterval, func(time.Time) tea.Msg {
		return homeTickMsg{Gen: gen}
	})
}
