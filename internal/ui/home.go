package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"unifiedai/internal/chat"
	"unifiedai/internal/styles"
)

type homeSection struct {
	title string
	items [][2]string
}

var homeSections = []homeSection{
	{
		title: "How UNIFIED AI Works",
		items: [][2]string{
			{"Ask", "Enter your query and select AI models to generate responses."},
			{"Compare", "Choose 'Combine' for mixed responses or 'Best Pick' for accuracy."},
			{"Adapt", "Dynamically add or remove AI models for each unique query."},
		},
	},
	{
		title: "Why UNIFIED AI is So Different",
		items: [][2]string{
			{"Fastest", "Get instant responses with optimized AI processing speed."},
			{"Combine Response", "Merge insights from multiple AI models into one response."},
			{"Best Pick", "Select the most accurate and relevant AI-generated answer."},
			{"Best Use for Research", "Leverage AI to assist in deep research and knowledge gathering."},
			{"No Need for Multiple AI", "Access all AI capabilities in one unified platform."},
		},
	},
	{
		title: "Tech Stack Used in UNIFIED AI",
		items: [][2]string{
			{"Frontend", "A terminal client built on the Charm stack."},
			{"Backend", "Express and Node.js to handle server-side logic efficiently."},
			{"Database", "PostgreSQL for scalable and flexible data storage solutions."},
		},
	},
}

const homeVision = "Our vision is to integrate AI models\nseamlessly for accurate and efficient responses."

// homeSectionCount counts the hero, the static sections, the model
// showcase and the vision line.
var homeSectionCount = len(homeSections) + 3

func (m *Model) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "enter", " ":
		if m.session.LoggedIn() {
			return m, m.navigate(RouteAI)
		}
		m.openAuth(TabLogin)
		return m, nil
	case "r":
		m.openAuth(TabRegister)
		return m, nil
	case "j":
		return m, m.navigate(RouteJobs)
	case "ctrl+s", "?":
		m.ShortcutsOpen = true
		return m, nil
	case "up":
		m.HomeScroll.LineUp(1)
	case "down":
		m.HomeScroll.LineDown(1)
	case "pgup":
		m.HomeScroll.HalfViewUp()
	case "pgdown":
		m.HomeScroll.HalfViewDown()
	}
	return m, nil
}

func (m *Model) handleHomeTick(msg homeTickMsg) tea.Cmd {
	if msg.Gen != m.homeGen || m.Route != RouteHome {
		return nil
	}
	if m.HomeRevealed < homeSectionCount {
		m.HomeRevealed++
		m.UpdateHomeContent()
	}
	if m.HomeRevealed >= homeSectionCount {
		return nil
	}
	return homeTick(msg.Gen)
}

func (m *Model) UpdateHomeContent() {
	width := m.HomeScroll.Width
	if width <= 0 {
		width = 80
	}

	blocks := []string{m.renderHero(width)}
	for _, sec := range homeSections {
		blocks = append(blocks, renderHomeSection(sec, width))
	}
	blocks = append(blocks, m.renderBuiltBy(width))
	blocks = append(blocks, lipgloss.PlaceHorizontal(width, lipgloss.Center, styles.GreetingStyle.Render(homeVision)))

	if m.HomeRevealed < len(blocks) {
		blocks = blocks[:m.HomeRevealed]
	}
	m.HomeScroll.SetContent(strings.Join(blocks, "\n\n"))
}

func (m *Model) renderHero(width int) string {
	art := styles.WelcomeArtStyle.Render(heroArt)
	search := styles.InputBoxStyle.Width(min(width-4, 56)).Render(
		lipgloss.NewStyle().Foreground(styles.HintColor).Render("Ask Unified AI anything...  ➝"),
	)
	hint := styles.WelcomeSubtitleStyle.Render("Press Enter to start")
	if m.session.LoggedIn() {
		hint = styles.WelcomeSubtitleStyle.Render(fmt.Sprintf("Signed in as %s. Press Enter to chat", m.session.Identity()))
	}
	block := lipgloss.JoinVertical(lipgloss.Center, art, "", search, hint)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, block)
}

func renderHomeSection(sec homeSection, width int) string {
	lines := []string{styles.TitleStyle.Render(sec.title)}
	for _, it := range sec.items {
		lines = append(lines, "  "+styles.FeatureTitleStyle.Render(it[0]))
		lines = append(lines, "  "+styles.FeatureBodyStyle.Width(width-4).Render(it[1]))
	}
	return strings.Join(lines, "\n")
}

// renderBuiltBy lists the models behind the service, straight from the
// catalog.
func (m *Model) renderBuiltBy(width int) string {
	title := styles.TitleStyle.Render("UNIFIED AI built by")
	cat := &m.Conversation.Catalog

	var body string
	switch cat.State() {
	case chat.CatalogReady:
		list := cat.Models()
		if len(list) == 0 {
			body = styles.FeatureBodyStyle.Render("No models available")
			break
		}
		names := make([]string, 0, len(list))
		for _, mdl := range list {
			names = append(names, styles.TabActiveStyle.Render(mdl.Name))
		}
		body = lipgloss.NewStyle().Width(width - 4).Render(strings.Join(names, " "))
	case chat.CatalogFailed:
		body = styles.ErrorStyle.Render("Failed to fetch AI models")
	default:
		body = m.Spinner.View() + " Loading..."
	}
	return title + "\n  " + body
}

func (m *Model) RenderHome() string {
	header := styles.TitleStyle.Render("UNIFIED AI")
	return lipgloss.JoinVertical(lipgloss.Left, header, m.HomeScroll.View())
}

const heroArt = `
 ╦ ╦╔╗╔╦╔═╗╦╔═╗╔╦╗  ╔═╗╦
 ║ ║║║║║╠╣ ║║╣  ║║  ╠═╣║
 ╚═╝╝╚╝╩╚  ╩╚═╝═╩╝  ╩ ╩╩
`
