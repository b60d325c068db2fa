package live

import "meister/internal/quiz"

// Screen identifies the active view.
type Screen int

const (
	// ScreenSelect lets the user curate the questions of a run.
	ScreenSelect Screen = iota
	// ScreenQuiz shows one question at a time.
	ScreenQuiz
	// ScreenResults shows the scored review.
	ScreenResults
	// ScreenEmpty is shown when no question matched the filter.
	ScreenEmpty
)

// String returns the screen name.
func (s Screen) String() string {
	switch s {
	case ScreenSelect:
		return "select"
	case ScreenQuiz:
		return "quiz"
	case ScreenResults:
		return "results"
	case ScreenEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// Summary is what a finished UI session reports to its caller.
type Summary struct {
	Finished bool
	Outcome  quiz.Outcome
	Result   quiz.Result
}
