// Package live renders the interactive Bubble Tea quiz.
package live

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"meister/internal/question"
	"meister/internal/quiz"
)

// Options configures the live UI model.
type Options struct {
	NoColor         bool
	TickInterval    time.Duration
	Clock           quiz.Clock
	TotalDuration   int
	Practice        bool
	TransitionDelay time.Duration
	PageSize        int
	// AutoSelect, when positive, draws that many random questions and
	// starts the run without showing the selection screen.
	AutoSelect int
	// SelectAll starts the run with the whole pool.
	SelectAll bool
	Rand      *rand.Rand
	OnFinish  func(quiz.Outcome)
}

// Model is the Bubble Tea model for one quiz session.
type Model struct {
	opts     Options
	screen   Screen
	selector *quiz.Selector
	pager    paginator.Model
	cursor   int

	autoMode  bool
	autoInput textinput.Model
	notice    string

	runner        *quiz.Runner
	answer        textinput.Model
	pendingSettle uint64
	focus         bool

	summary  Summary
	table    table.Model
	now      time.Time
	width    int
	quitting bool
}

// NewModel builds a session over the fetched questions.
func NewModel(pool []question.Question, opts Options) Model {
	if opts.TickInterval <= 0 {
		opts.TickInterval = 200 * time.Millisecond
	}
	if opts.Clock == nil {
		opts.Clock = quiz.SystemClock()
	}
	if opts.PageSize <= 0 {
		opts.PageSize = quiz.DefaultPageSize
	}

	pager := paginator.New()
	pager.Type = paginator.Arabic
	pager.PerPage = opts.PageSize

	autoInput := textinput.New()
	autoInput.Prompt = "How many random questions? "
	autoInput.CharLimit = 4

	answer := textinput.New()
	answer.Prompt = "> "
	answer.Placeholder = "Antwort eingeben"
	answer.CharLimit = 200

	results := table.New(
		table.WithColumns(resultColumns(0)),
		table.WithRows([]table.Row{}),
		table.WithFocused(false),
	)
	results.SetStyles(tableStyles(opts.NoColor))

	m := Model{
		opts:      opts,
		screen:    ScreenSelect,
		selector:  quiz.NewSelector(pool, opts.PageSize),
		pager:     pager,
		autoInput: autoInput,
		answer:    answer,
		table:     results,
		now:       opts.Clock.Now(),
	}
	m.syncPager()

	switch {
	case len(pool) == 0:
		m.screen = ScreenEmpty
	case opts.AutoSelect > 0:
		picked, err := m.selector.AutoSelect(opts.AutoSelect, opts.Rand)
		if err == nil {
			m.startRun(picked)
		}
	case opts.SelectAll:
		m.selector.SelectAll()
		m.startRun(m.selector.Selected())
	}
	return m
}

// Init starts the display tick.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tick(m.opts.TickInterval), textinput.Blink)
}

// Update consumes key presses, timer ticks, and settle messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.answer.Width = max(typed.Width-4, 10)
		m.table.SetWidth(typed.Width)
		m.table.SetHeight(max(typed.Height-6, 3))
		m.table.SetColumns(resultColumns(typed.Width))
		m.refreshResults()
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(typed)
	case tickMsg:
		m.now = time.Time(typed)
		if m.quitting {
			return m, nil
		}
		if m.screen != ScreenQuiz {
			return m, tick(m.opts.TickInterval)
		}
		m.runner.Poll()
		cmd := m.afterRunner()
		return m, tea.Batch(cmd, tick(m.opts.TickInterval))
	case settleMsg:
		if m.runner == nil || !m.runner.Settle(typed.epoch) {
			return m, nil
		}
		cmd := m.afterRunner()
		return m, cmd
	}
	return m, nil
}

// Screen returns the active view.
func (m Model) Screen() Screen { return m.screen }

// Summary returns the session outcome.
func (m Model) Summary() Summary { return m.summary }

// Runner exposes the active run, nil before the run starts.
func (m Model) Runner() *quiz.Runner { return m.runner }

// Selector exposes the question selection.
func (m Model) Selector() *quiz.Selector { return m.selector }

// tickMsg carries a clock tick for updates.
type tickMsg time.Time

// settleMsg completes a delayed move between questions.
type settleMsg struct {
	epoch uint64
}

// tick emits a periodic tick message.
func tick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// settleAfter schedules the end of a transition.
func settleAfter(delay time.Duration, epoch uint64) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg { return settleMsg{epoch: epoch} })
}

func (m *Model) startRun(questions []question.Question) tea.Cmd {
	m.runner = quiz.New(quiz.Config{
		Questions:     questions,
		TotalDuration: m.opts.TotalDuration,
		Practice:      m.opts.Practice,
	}, quiz.Options{
		Clock:           m.opts.Clock,
		TransitionDelay: m.opts.TransitionDelay,
		OnFinish:        m.opts.OnFinish,
	})
	if m.runner.Phase() == quiz.PhaseEmpty {
		m.screen = ScreenEmpty
		return nil
	}
	m.screen = ScreenQuiz
	m.answer.Reset()
	cmd := m.answer.Focus()
	return tea.Batch(cmd, m.afterRunner())
}

// afterRunner reconciles the view with the runner after any runner call.
func (m *Model) afterRunner() tea.Cmd {
	if m.runner == nil {
		return nil
	}
	if outcome, ok := m.runner.Outcome(); ok {
		if m.screen == ScreenQuiz {
			m.finish(outcome)
		}
		return nil
	}
	state := m.runner.State()
	switch state.Phase {
	case quiz.PhaseAwaitingAnswer, quiz.PhaseAnswerRevealed:
		if m.answer.Value() != state.Buffer {
			m.answer.SetValue(state.Buffer)
			m.answer.CursorEnd()
		}
	case quiz.PhaseAdvancing:
		if state.Epoch != m.pendingSettle {
			m.pendingSettle = state.Epoch
			return settleAfter(m.runner.TransitionDelay(), state.Epoch)
		}
	}
	return nil
}

func (m *Model) finish(outcome quiz.Outcome) {
	m.runner.Close()
	m.answer.Blur()
	m.summary = Summary{Finished: true, Outcome: outcome, Result: quiz.ScoreOutcome(outcome)}
	m.screen = ScreenResults
	m.table.Focus()
	m.refreshResults()
}

func (m *Model) refreshResults() {
	if !m.summary.Finished {
		return
	}
	limit := 40
	if m.width > 0 {
		limit = resultColumns(m.width)[1].Width
	}
	m.table.SetRows(resultRows(m.summary.Result, limit))
}

func (m *Model) syncPager() {
	m.pager.SetTotalPages(len(m.selector.Visible()))
	if m.pager.TotalPages > 0 && m.pager.Page >= m.pager.TotalPages {
		m.pager.Page = m.pager.TotalPages - 1
	}
}
