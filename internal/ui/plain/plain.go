// Package plain runs a quiz over line-oriented input and output.
package plain

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"meister/internal/question"
	"meister/internal/quiz"
	"meister/internal/verbose"
)

// Commands recognised on their own line.
const (
	CommandBack = ":back"
	CommandQuit = ":quit"
)

// Options configures a plain session.
type Options struct {
	Clock         quiz.Clock
	TotalDuration int
	Practice      bool
	PollInterval  time.Duration
	Logger        *verbose.Logger
	OnFinish      func(quiz.Outcome)
}

// Summary reports how a session ended.
type Summary struct {
	Finished bool
	Outcome  quiz.Outcome
	Result   quiz.Result
}

// Run asks the questions one by one until the run finishes, input ends,
// or ctx is canceled.
func Run(ctx context.Context, in io.Reader, out io.Writer, questions []question.Question, opts Options) (Summary, error) {
	if opts.PollInterval <= 0 {
		opts.PollInterval = 100 * time.Millisecond
	}
	s := newSession(out, questions, opts)
	defer s.runner.Close()
	if s.done() {
		return s.summary(), nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
		close(lines)
	}()

	ticker := time.NewTicker(opts.PollInterval)
	defer ticker.Stop()
	for !s.done() {
		select {
		case <-ctx.Done():
			return s.summary(), ctx.Err()
		case <-ticker.C:
			s.handleTick()
		case line, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil {
					return s.summary(), fmt.Errorf("read input: %w", err)
				}
				s.printf("Input closed before the quiz finished.\n")
				return s.summary(), nil
			}
			s.handleLine(line)
		}
	}
	return s.summary(), nil
}

type session struct {
	out        io.Writer
	runner     *quiz.Runner
	logger     *verbose.Logger
	shownIndex int
	quit       bool
	reported   bool
}

func newSession(out io.Writer, questions []question.Question, opts Options) *session {
	s := &session{out: out, logger: opts.Logger, shownIndex: -1}
	s.runner = quiz.New(quiz.Config{
		Questions:     questions,
		TotalDuration: opts.TotalDuration,
		Practice:      opts.Practice,
	}, quiz.Options{
		Clock: opts.Clock,
		OnFinish: func(outcome quiz.Outcome) {
			if opts.OnFinish != nil {
				opts.OnFinish(outcome)
			}
		},
	})
	if s.runner.Phase() == quiz.PhaseEmpty {
		s.printf("No questions found for the selected tags.\n")
		return s
	}
	s.logger.Logf(verbose.StyleRun, "Run %s questions=%d total=%s practice=%v", s.runner.RunID(), len(questions), quiz.FormatCountdown(opts.TotalDuration), opts.Practice)
	s.refresh()
	return s
}

func (s *session) done() bool {
	return s.quit || s.runner.Phase().Terminal()
}

func (s *session) summary() Summary {
	if outcome, ok := s.runner.Outcome(); ok {
		return Summary{Finished: true, Outcome: outcome, Result: quiz.ScoreOutcome(outcome)}
	}
	return Summary{}
}

func (s *session) handleTick() {
	before := s.runner.State()
	s.runner.Poll()
	after := s.runner.State()
	if after.Epoch == before.Epoch {
		return
	}
	if after.Reason == quiz.ReasonTimeUp {
		s.logger.Logf(verbose.StyleTimer, "Run %s total time expired", s.runner.RunID())
		s.printf("\nTime is up.\n")
	} else {
		expired := s.runner.Questions()[before.Index]
		s.logger.Logf(verbose.StyleTimer, "Question %s timed out", expired.ID)
		s.printf("\nTime is up for this question.\n")
	}
	s.refresh()
}

func (s *session) handleLine(line string) {
	trimmed := strings.TrimSpace(line)
	switch trimmed {
	case CommandQuit:
		s.quit = true
		s.printf("Quiz abandoned.\n")
		return
	case CommandBack:
		if !s.runner.Previous() {
			s.printf("Already at the first question.\n")
		}
		s.refresh()
		return
	}

	state := s.runner.State()
	if state.Phase == quiz.PhaseAnswerRevealed {
		s.runner.Submit()
		s.refresh()
		return
	}
	if question.IsBlank(line) {
		s.printf("Please enter an answer.\n")
		s.prompt()
		return
	}
	current, ok := s.runner.Current()
	if !ok {
		return
	}
	if current.Kind() == question.KindMultipleChoice {
		if !s.selectChoice(trimmed) {
			s.printf("Unknown choice %q.\n", trimmed)
			s.prompt()
			return
		}
	} else {
		s.runner.SetAnswer(line)
	}

	if s.runner.Practice() {
		s.runner.Reveal()
		s.printReveal(current)
		return
	}
	s.runner.Submit()
	s.refresh()
}

// selectChoice accepts a 1-based number or a choice id.
func (s *session) selectChoice(value string) bool {
	if n, err := strconv.Atoi(value); err == nil {
		return s.runner.SelectChoiceByNumber(n)
	}
	return s.runner.SelectChoice(value)
}

// refresh prints the current question when it changed, or the results.
func (s *session) refresh() {
	if outcome, ok := s.runner.Outcome(); ok {
		if !s.reported {
			s.reported = true
			s.printResults(outcome)
		}
		return
	}
	state := s.runner.State()
	if state.Phase != quiz.PhaseAwaitingAnswer || state.Index == s.shownIndex {
		return
	}
	s.shownIndex = state.Index
	s.printQuestion()
}

func (s *session) printQuestion() {
	current, _ := s.runner.Current()
	position, total := s.runner.Progress()
	header := fmt.Sprintf("\nQuestion %d of %d", position, total)
	if len(current.Tags) > 0 {
		header += " [" + strings.Join(current.Tags, ", ") + "]"
	}
	var timers []string
	if timer := s.runner.QuestionTimer(); timer.Armed() {
		timers = append(timers, "time "+timer.Display())
	}
	if timer := s.runner.TotalTimer(); timer.Armed() {
		timers = append(timers, "total "+timer.Display())
	}
	if len(timers) > 0 {
		header += " (" + strings.Join(timers, ", ") + ")"
	}
	s.printf("%s\n%s\n", header, current.Text)
	for i, choice := range current.Choices() {
		s.printf("  %d) %s\n", i+1, choice.Text)
	}
	if buffer := s.runner.State().Buffer; buffer != "" {
		s.printf("Previous answer: %s\n", displayAnswer(current, buffer))
	}
	s.prompt()
}

func (s *session) printReveal(current question.Question) {
	answer := s.runner.State().Buffer
	if current.Body.Accepts(answer) {
		s.printf("Correct.\n")
	} else {
		s.printf("Incorrect.\n")
	}
	s.printf("Answer: %s\n", strings.Join(current.Body.CorrectAnswers(), " / "))
	if current.Explanation != "" {
		s.printf("%s\n", current.Explanation)
	}
	s.printf("Press enter to continue.\n")
}

func (s *session) printResults(outcome quiz.Outcome) {
	result := quiz.ScoreOutcome(outcome)
	s.printf("\nScore: %d/%d correct (%.0f%%)\n", result.Correct, result.Total, result.Percentage)
	for i, review := range result.Reviews {
		status := "incorrect"
		switch {
		case review.Correct:
			status = "correct"
		case !review.Answered:
			status = "skipped"
		}
		s.printf("  %02d %-9s %s | your answer: %s | correct: %s\n", i+1, status, review.Question.Text, review.DisplayAnswer(), strings.Join(review.Question.Body.CorrectAnswers(), " / "))
	}
	s.logger.Logf(verbose.StyleResult, "Run %s finished reason=%s %s", outcome.RunID, outcome.Reason, verbose.FormatCounts(map[string]int{"correct": result.Correct, "incorrect": result.Incorrect}))
}

func (s *session) prompt() {
	s.printf("answer> ")
}

func (s *session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func displayAnswer(current question.Question, value string) string {
	if body, ok := current.Body.(question.MultipleChoice); ok {
		if choice, found := body.Choice(value); found {
			return choice.Text
		}
	}
	return value
}
