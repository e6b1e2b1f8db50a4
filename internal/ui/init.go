package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"unifiedai/internal/jobs"
	"unifiedai/internal/models"
)

func New(opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	glamourStyle := opts.GlamourStyle
	if glamourStyle == "" {
		glamourStyle = "auto"
	}

	ti := textarea.New()
	ti.Placeholder = "Ask Unified AI anything..."
	ti.Prompt = "❯ "
	ti.ShowLineNumbers = false
	ti.CharLimit = 0
	ti.MaxHeight = 6
	ti.SetHeight(2)
	ti.SetWidth(80)
	ti.FocusedStyle.Prompt = lipgloss.NewStyle().Foreground(lipgloss.Color("#B39DDB")).Bold(true)
	ti.BlurredStyle.Prompt = lipgloss.NewStyle().Foreground(lipgloss.Color("#B39DDB")).Bold(true)
	ti.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(lipgloss.Color("#545454"))
	ti.BlurredStyle.Placeholder = lipgloss.NewStyle().Foreground(lipgloss.Color("#545454"))
	ti.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ti.BlurredStyle.CursorLine = lipgloss.NewStyle()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#B39DDB"))

	start := opts.StartRoute
	if start == "" {
		start = RouteHome
	}

	return &Model{
		api:           opts.API,
		jobsAPI:       opts.Jobs,
		session:       opts.Session,
		logger:        logger,
		Route:         start,
		Spinner:       sp,
		GlamourStyle:  glamourStyle,
		TextInput:     ti,
		Viewport:      viewport.New(60, 15),
		ModelViewport: viewport.New(ModalWidth-4, 15),
		HomeScroll:    viewport.New(80, 20),
		ViewMode:      models.ViewCombined,
		JobsTable:     newJobsTable(),
		JobFilter:     jobs.Filter{Sort: jobs.SortDateDesc},
		JobsBackRoute: RouteHome,
	}
}

// Init enters the start route, which kicks off that page's first fetch.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.TextInput.Cursor.BlinkCmd(),
		m.navigate(m.Route),
	)
}

func NewProgram(opts Options) *tea.Program {
	return tea.NewProgram(New(opts), tea.WithAltScreen())
}
