package live

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	colorHeader  = lipgloss.Color("33")
	colorMuted   = lipgloss.Color("242")
	colorHint    = lipgloss.Color("244")
	colorCorrect = lipgloss.Color("42")
	colorWrong   = lipgloss.Color("196")
	colorTimer   = lipgloss.Color("220")
	colorAccent  = lipgloss.Color("201")
)

// fmtInt converts an int to string.
func fmtInt(value int) string {
	return strconv.Itoa(value)
}

// pad2 left-pads a number to two digits when needed.
func pad2(value int) string {
	if value >= 10 {
		return fmtInt(value)
	}
	return "0" + fmtInt(value)
}

// formatQuestionText collapses whitespace and truncates to limit runes.
func formatQuestionText(text string, limit int) string {
	normalized := strings.Join(strings.Fields(text), " ")
	runes := []rune(normalized)
	if limit <= 3 || len(runes) <= limit {
		return normalized
	}
	return string(runes[:limit-3]) + "..."
}

// formatTags joins tags for list rows.
func formatTags(tags []string) string {
	return strings.Join(tags, ", ")
}

// formatPercent renders a score percentage without decimals.
func formatPercent(value float64) string {
	return strconv.FormatFloat(value, 'f', 0, 64) + "%"
}

// progressBar renders position out of total as a fixed-width bar.
func progressBar(position, total, width int) string {
	if width <= 0 {
		width = 20
	}
	filled := 0
	if total > 0 {
		filled = position * width / total
	}
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}

// bold applies optional bold styling.
func bold(text string, noColor bool) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Bold(true).Render(text)
}
