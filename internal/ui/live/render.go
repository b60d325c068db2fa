package live

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"meister/internal/question"
	"meister/internal/quiz"
)

// View renders the active screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	switch m.screen {
	case ScreenSelect:
		return m.renderSelect()
	case ScreenQuiz:
		return m.renderQuiz()
	case ScreenResults:
		return m.renderResults()
	default:
		return m.renderEmpty()
	}
}

func (m Model) renderSelect() string {
	noColor := m.opts.NoColor
	lines := []string{
		stylize("Select questions ("+fmtInt(m.selector.Count())+" of "+fmtInt(len(m.selector.Pool()))+" selected)", noColor, colorHeader),
	}
	visible := m.selector.Visible()
	start, end := m.pager.GetSliceBounds(len(visible))
	for i := start; i < end; i++ {
		q := visible[i]
		cursor := "  "
		if i == m.cursor {
			cursor = stylize("> ", noColor, colorAccent)
		}
		mark := "[ ]"
		if m.selector.IsSelected(q.ID) {
			mark = "[x]"
		}
		line := cursor + mark + " " + formatQuestionText(q.Text, 60)
		if len(q.Tags) > 0 {
			line += "  " + stylize(formatTags(q.Tags), noColor, colorMuted)
		}
		lines = append(lines, line)
	}
	pageLine := "Page " + m.pager.View()
	if m.selector.HasMore() {
		pageLine += " (more available)"
	}
	lines = append(lines, stylize(pageLine, noColor, colorMuted))
	if m.autoMode {
		lines = append(lines, m.autoInput.View())
	}
	if m.notice != "" {
		lines = append(lines, stylize(m.notice, noColor, colorTimer))
	}
	lines = append(lines, stylize("space toggle | a all/none | r random | n/p page | enter start | q quit", noColor, colorHint))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderQuiz() string {
	noColor := m.opts.NoColor
	current, ok := m.runner.Current()
	if !ok {
		return ""
	}
	state := m.runner.State()
	var lines []string
	if !m.focus {
		lines = append(lines, m.renderProgress(), "")
	}
	lines = append(lines, bold(current.Text, noColor))
	if !m.focus && len(current.Tags) > 0 {
		lines = append(lines, stylize(formatTags(current.Tags), noColor, colorMuted))
	}
	lines = append(lines, "")

	if state.Phase == quiz.PhaseAdvancing {
		lines = append(lines, stylize("...", noColor, colorMuted))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	switch body := current.Body.(type) {
	case question.MultipleChoice:
		for i, choice := range body.Choices {
			marker := "  "
			if choice.ID == state.Buffer {
				marker = stylize("> ", noColor, colorAccent)
			}
			lines = append(lines, marker+fmtInt(i+1)+") "+choice.Text)
		}
	default:
		lines = append(lines, m.answer.View())
	}

	if state.Phase == quiz.PhaseAnswerRevealed {
		lines = append(lines, "", m.renderReveal(current, state.Buffer))
	}
	if !m.focus {
		lines = append(lines, "", stylize(m.quizHelp(current), noColor, colorHint))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderProgress() string {
	noColor := m.opts.NoColor
	position, total := m.runner.Progress()
	line := "Question " + fmtInt(position) + " of " + fmtInt(total) + " " + progressBar(position, total, 20)
	if m.runner.Practice() {
		line += " | practice"
	}
	parts := []string{stylize(line, noColor, colorHeader)}
	if timer := m.runner.QuestionTimer(); timer.Armed() {
		parts = append(parts, stylize("Time "+timer.Display(), noColor, colorTimer))
	}
	if timer := m.runner.TotalTimer(); timer.Armed() {
		parts = append(parts, stylize("Total "+timer.Display(), noColor, colorTimer))
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderReveal(current question.Question, answer string) string {
	noColor := m.opts.NoColor
	correct := current.Body != nil && current.Body.Accepts(answer)
	verdict := stylize("Incorrect", noColor, colorWrong)
	if correct {
		verdict = stylize("Correct", noColor, colorCorrect)
	}
	lines := []string{verdict}
	if current.Body != nil {
		lines = append(lines, "Answer: "+strings.Join(current.Body.CorrectAnswers(), " / "))
	}
	if current.Explanation != "" {
		lines = append(lines, stylize(current.Explanation, noColor, colorMuted))
	}
	return strings.Join(lines, "\n")
}

func (m Model) quizHelp(current question.Question) string {
	var parts []string
	switch {
	case m.runner.CanReveal():
		parts = append(parts, "enter reveal")
	case m.runner.CanSubmit():
		if m.runner.IsLast() {
			parts = append(parts, "enter finish")
		} else {
			parts = append(parts, "enter next")
		}
	default:
		parts = append(parts, "enter (answer first)")
	}
	if current.Kind() == question.KindMultipleChoice {
		parts = append(parts, "1-"+fmtInt(len(current.Choices()))+" choose")
	}
	if m.runner.CanGoBack() {
		parts = append(parts, "shift+tab back")
	}
	parts = append(parts, "ctrl+f focus", "esc quit")
	return strings.Join(parts, " | ")
}

func (m Model) renderResults() string {
	noColor := m.opts.NoColor
	result := m.summary.Result
	header := "Score: " + fmtInt(result.Correct) + "/" + fmtInt(result.Total) + " correct (" + formatPercent(result.Percentage) + ")"
	color := colorCorrect
	if result.Correct < result.Total {
		color = colorTimer
	}
	lines := []string{stylize(header, noColor, color)}
	if m.summary.Outcome.Reason == quiz.ReasonTimeUp {
		lines = append(lines, stylize("Time is up.", noColor, colorWrong))
	}
	lines = append(lines, m.table.View(), stylize("q quit", noColor, colorHint))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderEmpty() string {
	noColor := m.opts.NoColor
	return lipgloss.JoinVertical(lipgloss.Left,
		stylize("No questions found for the selected tags.", noColor, colorHeader),
		stylize("q quit", noColor, colorHint),
	)
}
