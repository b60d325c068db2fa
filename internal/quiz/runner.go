package quiz

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"meister/internal/question"
)

// ErrNoQuestions indicates a run was configured without questions.
var ErrNoQuestions = errors.New("quiz: no questions")

// Config describes one run.
type Config struct {
	Questions     []question.Question
	TotalDuration int
	Practice      bool
}

// Outcome is emitted once when a run finishes.
type Outcome struct {
	RunID     string
	Questions []question.Question
	Answers   []Answer
	Reason    FinishReason
}

// Options configures runner collaborators.
type Options struct {
	Clock Clock
	// TransitionDelay is how long the host keeps a run in PhaseAdvancing
	// before calling Settle. Zero settles immediately.
	TransitionDelay time.Duration
	OnFinish        func(Outcome)
	RunID           string
}

// Runner drives one quiz run. It is not safe for concurrent use; hosts
// serialize input events, timer ticks, and Settle calls.
type Runner struct {
	cfg           Config
	opts          Options
	runID         string
	state         RunState
	questionTimer *Timer
	totalTimer    *Timer
	outcome       *Outcome
}

// New creates a runner and arms its timers. A config without questions
// yields a runner parked in PhaseEmpty.
func New(cfg Config, opts Options) *Runner {
	if opts.Clock == nil {
		opts.Clock = SystemClock()
	}
	runID := opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	r := &Runner{
		cfg:           cfg,
		opts:          opts,
		runID:         runID,
		questionTimer: NewTimer(opts.Clock),
		totalTimer:    NewTimer(opts.Clock),
	}
	if len(cfg.Questions) == 0 {
		r.state = emptyState()
		return r
	}
	r.state = awaitingState(0, "", Ledger{})
	if !cfg.Practice && cfg.TotalDuration > 0 {
		r.totalTimer.Start(cfg.TotalDuration, r.TotalTimerExpired)
	}
	r.armQuestionTimer()
	return r
}

// RunID returns the run identifier.
func (r *Runner) RunID() string { return r.runID }

// State returns the current snapshot.
func (r *Runner) State() RunState { return r.state }

// Phase returns the current phase.
func (r *Runner) Phase() Phase { return r.state.Phase }

// Practice reports whether the run is in practice mode.
func (r *Runner) Practice() bool { return r.cfg.Practice }

// Questions returns the questions of the run.
func (r *Runner) Questions() []question.Question { return r.cfg.Questions }

// Current returns the question on screen.
func (r *Runner) Current() (question.Question, bool) {
	if r.state.Phase == PhaseEmpty || r.state.Index >= len(r.cfg.Questions) {
		return question.Question{}, false
	}
	return r.cfg.Questions[r.state.Index], true
}

// Progress returns the 1-based position and the question count.
func (r *Runner) Progress() (int, int) {
	if r.state.Phase == PhaseEmpty {
		return 0, 0
	}
	return r.state.Index + 1, len(r.cfg.Questions)
}

// IsLast reports whether the current question is the final one.
func (r *Runner) IsLast() bool {
	return len(r.cfg.Questions) > 0 && r.state.Index == len(r.cfg.Questions)-1
}

// Outcome returns the emitted outcome once the run has finished.
func (r *Runner) Outcome() (Outcome, bool) {
	if r.outcome == nil {
		return Outcome{}, false
	}
	return *r.outcome, true
}

// CanSubmit reports whether Submit would be accepted.
func (r *Runner) CanSubmit() bool {
	switch r.state.Phase {
	case PhaseAwaitingAnswer:
		return !r.cfg.Practice && !question.IsBlank(r.state.Buffer)
	case PhaseAnswerRevealed:
		return true
	default:
		return false
	}
}

// CanReveal reports whether Reveal would be accepted.
func (r *Runner) CanReveal() bool {
	return r.cfg.Practice && r.state.Phase == PhaseAwaitingAnswer && !question.IsBlank(r.state.Buffer)
}

// CanGoBack reports whether Previous would be accepted.
func (r *Runner) CanGoBack() bool {
	return r.inputPhase() && r.state.Index > 0
}

// SetAnswer replaces the in-flight buffer of a free-text question.
func (r *Runner) SetAnswer(value string) bool {
	if r.state.Phase != PhaseAwaitingAnswer {
		return false
	}
	current, _ := r.Current()
	if current.Kind() != question.KindFreeText {
		return false
	}
	r.replaceBuffer(value)
	return true
}

// SelectChoice puts a choice id of the current multiple-choice question into
// the in-flight buffer. Nothing is committed.
func (r *Runner) SelectChoice(choiceID string) bool {
	if r.state.Phase != PhaseAwaitingAnswer {
		return false
	}
	current, _ := r.Current()
	body, ok := current.Body.(question.MultipleChoice)
	if !ok {
		return false
	}
	if _, ok := body.Choice(choiceID); !ok {
		return false
	}
	r.replaceBuffer(choiceID)
	return true
}

// SelectChoiceByNumber handles the 1-based numeric hot key.
func (r *Runner) SelectChoiceByNumber(n int) bool {
	current, ok := r.Current()
	if !ok {
		return false
	}
	choices := current.Choices()
	if n < 1 || n > len(choices) {
		return false
	}
	return r.SelectChoice(choices[n-1].ID)
}

// SubmitAnswer fills the buffer with value and submits it. Blank values are
// rejected without touching the buffer.
//
// In practice runs before a reveal the buffer is still written but the submit
// is refused, so a later Reveal shows that value. Once the answer is revealed
// value is ignored and the revealed buffer is committed.
func (r *Runner) SubmitAnswer(value string) bool {
	if r.state.Phase == PhaseAwaitingAnswer {
		if question.IsBlank(value) {
			return false
		}
		current, _ := r.Current()
		switch current.Kind() {
		case question.KindMultipleChoice:
			if !r.SelectChoice(value) {
				return false
			}
		default:
			r.SetAnswer(value)
		}
	}
	return r.Submit()
}

// Submit commits the in-flight buffer for the current question and moves on.
func (r *Runner) Submit() bool {
	if !r.CanSubmit() {
		return false
	}
	r.commit(r.state.Buffer)
	return true
}

// Previous moves back one question. The ledger is unchanged and the
// uncommitted buffer is dropped.
func (r *Runner) Previous() bool {
	if !r.CanGoBack() {
		return false
	}
	r.questionTimer.Stop()
	r.advance(r.state.Index-1, r.state.Ledger)
	return true
}

// Reveal shows the solution of the current question in practice mode.
func (r *Runner) Reveal() bool {
	if !r.CanReveal() {
		return false
	}
	r.transition(revealedState(r.state))
	return true
}

// Settle completes a pending move between questions. Calls for any epoch
// other than the current one are ignored.
func (r *Runner) Settle(epoch uint64) bool {
	if r.state.Phase != PhaseAdvancing || epoch != r.state.Epoch {
		return false
	}
	target := r.state.Target
	ledger := r.state.Ledger
	buffer := ""
	if answer, ok := ledger.Get(r.cfg.Questions[target].ID); ok {
		buffer = answer.Value
	}
	r.transition(awaitingState(target, buffer, ledger))
	r.armQuestionTimer()
	return true
}

// QuestionTimerExpired submits whatever is in the buffer. A blank buffer
// commits an empty answer and skips the question.
func (r *Runner) QuestionTimerExpired() {
	if r.state.Phase != PhaseAwaitingAnswer {
		return
	}
	r.commit(r.state.Buffer)
}

// TotalTimerExpired finishes the run with the answers committed so far.
func (r *Runner) TotalTimerExpired() {
	if r.state.Phase.Terminal() {
		return
	}
	r.finish(r.state.Ledger, ReasonTimeUp)
}

// Poll checks both timers against the clock, total budget first.
func (r *Runner) Poll() {
	r.totalTimer.Poll()
	if r.state.Phase.Terminal() {
		return
	}
	r.questionTimer.Poll()
}

// ExpireQuestionTimer delivers a host-scheduled question expiry.
func (r *Runner) ExpireQuestionTimer(token TimerToken) bool {
	return r.questionTimer.Expire(token)
}

// ExpireTotalTimer delivers a host-scheduled total expiry.
func (r *Runner) ExpireTotalTimer(token TimerToken) bool {
	return r.totalTimer.Expire(token)
}

// QuestionTimer exposes the per-question countdown for display.
func (r *Runner) QuestionTimer() *Timer { return r.questionTimer }

// TotalTimer exposes the total countdown for display.
func (r *Runner) TotalTimer() *Timer { return r.totalTimer }

// NextDeadline returns the time until the nearest armed timer fires.
func (r *Runner) NextDeadline() (time.Duration, bool) {
	var next time.Duration
	found := false
	for _, timer := range []*Timer{r.questionTimer, r.totalTimer} {
		if !timer.Armed() {
			continue
		}
		until := timer.Until()
		if !found || until < next {
			next = until
			found = true
		}
	}
	return next, found
}

// TransitionDelay returns the configured PhaseAdvancing duration.
func (r *Runner) TransitionDelay() time.Duration { return r.opts.TransitionDelay }

// Close disarms both timers. The run state is left as is.
func (r *Runner) Close() {
	r.questionTimer.Stop()
	r.totalTimer.Stop()
}

func (r *Runner) inputPhase() bool {
	return r.state.Phase == PhaseAwaitingAnswer || r.state.Phase == PhaseAnswerRevealed
}

func (r *Runner) replaceBuffer(value string) {
	next := r.state
	next.Buffer = value
	r.transition(next)
}

func (r *Runner) commit(value string) {
	r.questionTimer.Stop()
	current := r.cfg.Questions[r.state.Index]
	ledger := r.state.Ledger.Commit(current.ID, value)
	if r.IsLast() {
		r.finish(ledger, ReasonCompleted)
		return
	}
	r.advance(r.state.Index+1, ledger)
}

func (r *Runner) advance(target int, ledger Ledger) {
	r.transition(advancingState(r.state.Index, target, ledger))
	if r.opts.TransitionDelay <= 0 {
		r.Settle(r.state.Epoch)
	}
}

func (r *Runner) finish(ledger Ledger, reason FinishReason) {
	r.questionTimer.Stop()
	r.totalTimer.Stop()
	r.transition(finishedState(r.state.Index, ledger, reason))
	if r.outcome != nil {
		return
	}
	outcome := Outcome{
		RunID:     r.runID,
		Questions: r.cfg.Questions,
		Answers:   ledger.All(),
		Reason:    reason,
	}
	r.outcome = &outcome
	if r.opts.OnFinish != nil {
		r.opts.OnFinish(outcome)
	}
}

func (r *Runner) transition(next RunState) {
	next.Epoch = r.state.Epoch + 1
	r.state = next
}

func (r *Runner) armQuestionTimer() {
	current, ok := r.Current()
	if !ok || r.cfg.Practice || current.Duration <= 0 {
		r.questionTimer.Stop()
		return
	}
	r.questionTimer.Start(current.Duration, r.QuestionTimerExpired)
}
