package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Route is a page address. The three pages mirror the web paths.
type Route string

const (
	RouteHome Route = "/"
	RouteAI   Route = "/ai"
	RouteJobs Route = "/jobs"
)

// ParseRoute maps a command line argument to a route. Unknown paths land on
// the home page.
func ParseRoute(arg string) Route {
	arg = strings.TrimSpace(arg)
	if arg != "" && !strings.HasPrefix(arg, "/") {
		arg = "/" + arg
	}
	switch Route(strings.TrimSuffix(arg, "/")) {
	case RouteAI:
		return RouteAI
	case RouteJobs:
		return RouteJobs
	default:
		return RouteHome
	}
}

func (r Route) Title() string {
	switch r {
	case RouteAI:
		return "AI"
	case RouteJobs:
		return "JOBS"
	default:
		return "HOME"
	}
}

// navigate switches pages and returns the work the new page starts with.
func (m *Model) navigate(to Route) tea.Cmd {
	from := m.Route
	m.Route = to
	m.ShortcutsOpen = false
	m.AuthOpen = false
	m.SelectorOpen = false
	m.HistoryOpen = false
	m.JobForm = nil
	m.ConfirmDelete = nil
	m.logger.Debug("navigate", zap.String("from", string(from)), zap.String("to", string(to)))

	switch to {
	case RouteAI:
		if from != RouteAI {
			// The chat lives only as long as the page.
			m.resetChat()
			m.Conversation.Selection.Clear()
			m.SelectorIdx = 0
			m.TextInput.Reset()
		}
		m.reloadCatalog()
		m.TextInput.Focus()
		m.UpdateViewport()
		return tea.Batch(m.fetchModelsCmd(), m.Spinner.Tick)
	case RouteJobs:
		if from != RouteJobs {
			m.JobsBackRoute = from
		}
		m.TextInput.Blur()
		return m.refreshJobs()
	default:
		m.TextInput.Blur()
		m.reloadCatalog()
		m.homeGen++
		m.HomeRevealed = 0
		m.UpdateHomeContent()
		return tea.Batch(m.fetchModelsCmd(), homeTick(m.homeGen), m.Spinner.Tick)
	}
}

// reloadCatalog marks the catalog as loading unless a previous fetch
// already succeeded; a ready catalog stays usable until the refetch lands.
func (m *Model) reloadCatalog() {
	if !m.Conversation.Catalog.Ready() {
		m.Conversation.Catalog.SetLoading()
	}
}
