package live

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"meister/internal/quiz"
)

// tableStyles returns table styles for the results view.
func tableStyles(noColor bool) table.Styles {
	styles := table.DefaultStyles()
	if noColor {
		styles.Selected = lipgloss.NewStyle()
		return styles
	}
	styles.Header = styles.Header.Foreground(lipgloss.Color("252"))
	return styles
}

// resultColumns sizes the review columns for a terminal width.
func resultColumns(width int) []table.Column {
	if width <= 0 {
		width = 100
	}
	fixed := 4 + 10 + 2*18
	text := width - fixed - 10
	if text < 20 {
		text = 20
	}
	return []table.Column{
		{Title: "#", Width: 4},
		{Title: "Question", Width: text},
		{Title: "Your answer", Width: 18},
		{Title: "Correct", Width: 18},
		{Title: "Result", Width: 10},
	}
}

// resultRows converts a scored run into table rows.
func resultRows(result quiz.Result, textLimit int) []table.Row {
	rows := make([]table.Row, 0, len(result.Reviews))
	for i, review := range result.Reviews {
		rows = append(rows, table.Row{
			pad2(i + 1),
			formatQuestionText(review.Question.Text, textLimit),
			formatQuestionText(review.DisplayAnswer(), 18),
			formatQuestionText(strings.Join(review.Question.Body.CorrectAnswers(), " / "), 18),
			reviewLabel(review),
		})
	}
	return rows
}

func reviewLabel(review quiz.Review) string {
	switch {
	case review.Correct:
		return "correct"
	case !review.Answered:
		return "skipped"
	default:
		return "incorrect"
	}
}
