package styles

import "github.com/charmbracelet/lipgloss"

var (
	ContentWidth = 54
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#B39DDB")).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	GreetingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#CE93D8"))

	UserLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#90CAF9")).
			Bold(true).
			Padding(0, 1).
			MarginRight(1)

	UserMsgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#E0E0E0"}).
			PaddingLeft(2).
			BorderLeft(true).
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("#90CAF9"))

	AiLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#B39DDB")).
			Bold(true).
			Padding(0, 1).
			MarginRight(1)

	AiMsgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#E0E0E0"}).
			PaddingTop(1).
			BorderLeft(true).
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("#B39DDB"))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF9A9A")).
			Bold(true)

	InputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#B39DDB")).
			Padding(0, 1)

	WelcomeArtStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"}).
			Bold(true)

	WelcomeSubtitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#545454")).
				Italic(true)

	FeatureTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FFCC80"))

	FeatureBodyStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#888888"))

	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#B39DDB")).
			Padding(1, 2)

	ModalTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#B39DDB")).
			Width(ContentWidth).
			MarginBottom(1)

	ModalItemStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Width(ContentWidth)

	ModalSelectedStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Width(ContentWidth).
				Background(lipgloss.Color("#5C5C7A")).
				Foreground(lipgloss.Color("#FFFFFF"))

	TabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#7C4DFF")).
			Padding(0, 2)

	TabInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#888888")).
				Padding(0, 2)

	FieldLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E0E0E0")).
			Bold(true)

	HintColor = lipgloss.Color("#545454")
)

func Hint(s string) string {
	return lipgloss.NewStyle().
		Foreground(HintColor).
		Width(ContentWidth).
		PaddingTop(1).
		Render(s)
}
