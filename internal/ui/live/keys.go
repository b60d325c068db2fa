package live

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"meister/internal/question"
	"meister/internal/quiz"
)

// handleKey routes a key press to the active screen.
func (m Model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.String() == "ctrl+c" {
		return m.quit()
	}
	switch m.screen {
	case ScreenSelect:
		return m.handleSelectKey(key)
	case ScreenQuiz:
		return m.handleQuizKey(key)
	default:
		switch key.String() {
		case "q", "esc", "enter":
			return m.quit()
		case "up", "k", "down", "j":
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(key)
			return m, cmd
		}
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	if m.runner != nil {
		m.runner.Close()
	}
	return m, tea.Quit
}

func (m Model) handleSelectKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.autoMode {
		return m.handleAutoSelectKey(key)
	}
	visible := m.selector.Visible()
	m.notice = ""
	switch key.String() {
	case "q", "esc":
		return m.quit()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor == len(visible)-1 && m.selector.LoadMore() {
			m.syncPager()
		}
		if m.cursor < len(m.selector.Visible())-1 {
			m.cursor++
		}
	case "right", "n", "pgdown":
		if m.pager.OnLastPage() && m.selector.LoadMore() {
			m.syncPager()
		}
		m.pager.NextPage()
		m.cursor = m.pager.Page * m.pager.PerPage
	case "left", "p", "pgup":
		m.pager.PrevPage()
		m.cursor = m.pager.Page * m.pager.PerPage
	case " ", "x":
		if m.cursor < len(visible) {
			m.selector.Toggle(visible[m.cursor].ID)
		}
	case "a":
		if m.selector.AllSelected() {
			m.selector.DeselectAll()
		} else {
			m.selector.SelectAll()
		}
	case "r":
		m.autoMode = true
		m.autoInput.Reset()
		cmd := m.autoInput.Focus()
		return m, cmd
	case "enter":
		if m.selector.Count() == 0 {
			m.notice = "Select at least one question"
			return m, nil
		}
		cmd := m.startRun(m.selector.Selected())
		return m, cmd
	}
	m.pager.Page = m.cursor / max(m.pager.PerPage, 1)
	return m, nil
}

func (m Model) handleAutoSelectKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		m.autoMode = false
		m.autoInput.Blur()
		return m, nil
	case "enter":
		count, err := strconv.Atoi(strings.TrimSpace(m.autoInput.Value()))
		if err != nil {
			m.notice = "Enter a number"
			return m, nil
		}
		if _, err := m.selector.AutoSelect(count, m.opts.Rand); err != nil {
			m.notice = "Enter a number greater than zero"
			return m, nil
		}
		m.autoMode = false
		m.autoInput.Blur()
		m.notice = "Selected " + fmtInt(m.selector.Count()) + " random questions"
		return m, nil
	}
	var cmd tea.Cmd
	m.autoInput, cmd = m.autoInput.Update(key)
	return m, cmd
}

func (m Model) handleQuizKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	current, ok := m.runner.Current()
	if !ok {
		return m, nil
	}
	multipleChoice := current.Kind() == question.KindMultipleChoice

	switch key.String() {
	case "esc":
		return m.quit()
	case "ctrl+f":
		m.focus = !m.focus
		return m, nil
	case "shift+tab", "ctrl+b":
		m.runner.Previous()
		cmd := m.afterRunner()
		return m, cmd
	case "enter":
		m.advance()
		cmd := m.afterRunner()
		return m, cmd
	}

	if multipleChoice {
		switch key.String() {
		case "left":
			m.runner.Previous()
		case "right":
			m.advance()
		case "up", "k":
			m.moveChoice(current, -1)
		case "down", "j":
			m.moveChoice(current, 1)
		default:
			if n, ok := digit(key); ok {
				m.runner.SelectChoiceByNumber(n)
			}
		}
		cmd := m.afterRunner()
		return m, cmd
	}

	if m.runner.Phase() != quiz.PhaseAwaitingAnswer {
		return m, nil
	}
	var inputCmd tea.Cmd
	m.answer, inputCmd = m.answer.Update(key)
	m.runner.SetAnswer(m.answer.Value())
	cmd := m.afterRunner()
	return m, tea.Batch(inputCmd, cmd)
}

// advance reveals in practice mode, otherwise submits.
func (m *Model) advance() {
	if m.runner.CanReveal() {
		m.runner.Reveal()
		return
	}
	m.runner.Submit()
}

// moveChoice selects the neighbouring choice, wrapping around.
func (m *Model) moveChoice(current question.Question, delta int) {
	choices := current.Choices()
	if len(choices) == 0 {
		return
	}
	index := -1
	buffer := m.runner.State().Buffer
	for i, choice := range choices {
		if choice.ID == buffer {
			index = i
		}
	}
	if index < 0 {
		if delta > 0 {
			index = 0
		} else {
			index = len(choices) - 1
		}
	} else {
		index = (index + delta + len(choices)) % len(choices)
	}
	m.runner.SelectChoice(choices[index].ID)
}

func digit(key tea.KeyMsg) (int, bool) {
	if key.Type != tea.KeyRunes || len(key.Runes) != 1 {
		return 0, false
	}
	r := key.Runes[0]
	if r < '1' || r > '9' {
		return 0, false
	}
	return int(r - '0'), true
}
