package styles

import "github.com/charmbracelet/lipgloss"

// Theme defines the semantic colors used for notices and status badges.
type Theme struct {
	Primary   lipgloss.Color
	TextMuted lipgloss.Color

	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color

	Border lipgloss.Color
}

var DarkTheme = Theme{
	Primary:   lipgloss.Color("#818CF8"), // Indigo 400
	TextMuted: lipgloss.Color("#64748B"), // Slate 500

	Success: lipgloss.Color("#34D399"), // Emerald 400
	Warning: lipgloss.Color("#FBBF24"), // Amber 400
	Error:   lipgloss.Color("#FB7185"), // Rose 400
	Info:    lipgloss.Color("#60A5FA"), // Blue 400

	Border: lipgloss.Color("#27272A"),
}

var LightTheme = Theme{
	Primary:   lipgloss.Color("#4F46E5"),
	TextMuted: lipgloss.Color("#A1A1AA"),

	Success: lipgloss.Color("#10B981"),
	Warning: lipgloss.Color("#F59E0B"),
	Error:   lipgloss.Color("#EF4444"),
	Info:    lipgloss.Color("#3B82F6"),

	Border: lipgloss.Color("#E4E4E7"),
}

// CurrentTheme holds the active theme (set at runtime based on terminal)
var CurrentTheme = DarkTheme

// InitTheme picks the theme matching the terminal background.
func InitTheme() {
	if lipgloss.HasDarkBackground() {
		CurrentTheme = DarkTheme
	} else {
		CurrentTheme = LightTheme
	}
}

// StatusColor colors a job status badge.
func StatusColor(status string) lipgloss.Color {
	switch status {
	case "Offer":
		return CurrentTheme.Success
	case "Interviewing":
		return CurrentTheme.Info
	case "Rejected":
		return CurrentTheme.Error
	default:
		return CurrentTheme.Warning
	}
}

// NoticeStyle renders a transient notice of the given kind.
func NoticeStyle(color lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(color).
		Padding(0, 1)
}
