package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"unifiedai/internal/styles"
)

func WrappedLineCount(value string, width int) int {
	if width <= 0 {
		return 1
	}
	lines := strings.Split(value, "\n")
	if len(lines) == 0 {
		return 1
	}
	count := 0
	for _, line := range lines {
		w := runewidth.StringWidth(line)
		if w == 0 {
			count++
			continue
		}
		count += (w-1)/width + 1
	}
	return count
}

// PromptPreview flattens s onto one line for list rows.
func PromptPreview(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.Join(strings.Fields(s), " ")
	const maxRunes = 500
	r := []rune(s)
	if len(r) > maxRunes {
		return string(r[:maxRunes])
	}
	return s
}

func TruncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= max {
		return s
	}
	if max <= 1 {
		return "…"
	}
	return runewidth.Truncate(s, max, "…")
}

// Greeting mirrors the chat page heading, e.g. "Good evening, jane".
func Greeting(now time.Time, name string) string {
	var part string
	switch h := now.Hour(); {
	case h < 12:
		part = "Good morning"
	case h < 17:
		part = "Good afternoon"
	default:
		part = "Good evening"
	}
	if name = strings.TrimSpace(name); name == "" {
		return part
	}
	return fmt.Sprintf("%s, %s", part, name)
}

func FormatUserMessage(content string, width int, isFirst bool) string {
	label := styles.UserLabelStyle.Render("YOU")
	msg := styles.UserMsgStyle.Width(width - 4).Render(content)
	if isFirst {
		return fmt.Sprintf("\n%s\n%s", label, msg)
	}
	return fmt.Sprintf("%s\n%s", label, msg)
}

func FormatAIMessage(content string) string {
	label := styles.AiLabelStyle.Render("AI")
	msg := styles.AiMsgStyle.Render(content)
	return fmt.Sprintf("%s\n%s", label, msg)
}
