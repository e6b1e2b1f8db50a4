package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"unifiedai/internal/chat"
	"unifiedai/internal/jobs"
	"unifiedai/internal/models"
)

const (
	ModalWidthMax      = 60
	HistoryPageSize    = 10
	NoticeDuration     = 3 * time.Second
	// HomeRevealInterval paces the landing page sections fading in.
	HomeRevealInterval = 1500 * time.Millisecond
)

var ModalWidth = ModalWidthMax

// ChatAPI is the Unified AI backend as the UI uses it.
type ChatAPI interface {
	GetModels(ctx context.Context) ([]models.AIModel, error)
	Register(ctx context.Context, username, email, password string) error
	Login(ctx context.Context, identifier, password string) (string, error)
	GetReply(ctx context.Context, req models.PromptRequest) (models.PromptReply, error)
	GetAllChats(ctx context.Context) ([]models.ChatSummary, error)
	GetUsedModels(ctx context.Context, chatID models.ID) ([]models.SelectedModel, error)
	GetChatHistory(ctx context.Context, q models.HistoryQuery) ([]models.HistoryTurn, error)
}

// JobsAPI is the job tracker service.
type JobsAPI interface {
	List(ctx context.Context, f jobs.Filter) ([]models.Job, error)
	Create(ctx context.Context, job models.Job) error
	UpdateStatus(ctx context.Context, id models.ID, status string) error
	Delete(ctx context.Context, id models.ID) error
}

// Session is the process-wide login state.
type Session interface {
	Token() string
	Identity() string
	LoggedIn() bool
	Set(token, identity string) error
	Clear() error
}

type Options struct {
	API          ChatAPI
	Jobs         JobsAPI
	Session      Session
	Logger       *zap.Logger
	GlamourStyle string
	StartRoute   Route
}

type (
	modelsLoadedMsg struct {
		Models []models.AIModel
		Err    error
	}

	registerDoneMsg struct{ Err error }

	loginDoneMsg struct {
		Token    string
		Identity string
		Err      error
	}

	replyMsg struct {
		Seq   int
		Reply models.PromptReply
		Err   error
	}

	chatsLoadedMsg struct {
		Chats []models.ChatSummary
		Err   error
	}

	usedModelsMsg struct {
		ChatID models.ID
		Models []models.SelectedModel
		Err    error
	}

	historyLoadedMsg struct {
		ChatID models.ID
		Mode   models.ViewMode
		Turns  []models.HistoryTurn
		Err    error
	}

	jobsLoadedMsg struct {
		Jobs []models.Job
		Err  error
	}

	jobMutatedMsg struct {
		Action string
		Err    error
	}

	noticeExpiredMsg struct{ ID int }

	homeTickMsg struct{ Gen int }

	copiedMsg struct{ Err error }
)

type NoticeKind int

const (
	NoticeInfo NoticeKind = iota
	NoticeSuccess
	NoticeWarning
	NoticeError
)

type Notice struct {
	ID   int
	Kind NoticeKind
	Text string
}

type AuthTab int

const (
	TabRegister AuthTab = iota
	TabLogin
)

// historySession is one row of the history sidebar.
type historySession struct {
	Summary    models.ChatSummary
	Expanded   bool
	Loading    bool
	UsedModels []models.SelectedModel
	Err        error
}

// historyRow addresses either a session (Model < 0) or one of its models.
type historyRow struct {
	Session int
	Model   int
}

type Model struct {
	api     ChatAPI
	jobsAPI JobsAPI
	session Session
	logger  *zap.Logger

	Route        Route
	WindowWidth  int
	WindowHeight int
	Spinner      spinner.Model
	Renderer     *glamour.TermRenderer
	GlamourStyle string

	Notice        *Notice
	noticeSeq     int
	ShortcutsOpen bool

	// Marketing page
	HomeRevealed int
	HomeScroll   viewport.Model
	homeGen      int

	// Auth popup
	AuthOpen    bool
	AuthTab     AuthTab
	AuthFields  []authField
	AuthFocus   int
	AuthPending bool

	// Chat page
	Conversation       chat.Conversation
	promptSeq          int
	rendered           []string
	Viewport           viewport.Model
	TextInput          textarea.Model
	SelectorOpen       bool
	SelectorIdx        int
	ModelViewport      viewport.Model
	HistoryOpen        bool
	HistoryLoading     bool
	HistoryErr         error
	HistorySessions    []historySession
	HistoryPage        int
	HistoryCursor      int
	HistoryViewLoading bool
	ViewMode           models.ViewMode

	// Job tracker page
	JobsTable     table.Model
	Jobs          []models.Job
	JobsLoading   bool
	JobsErr       error
	JobFilter     jobs.Filter
	JobForm       *jobForm
	ConfirmDelete *models.Job
	JobsBackRoute Route
}
