package quiz

import (
	"time"

	"meister/internal/question"
	"meister/internal/testutil"
)

// capitalQuestions returns the two-question run used by the scoring examples.
func capitalQuestions() []question.Question {
	return []question.Question{
		{
			ID:   "1",
			Text: "Pick A",
			Body: question.MultipleChoice{
				Choices: []question.Choice{{ID: "a", Text: "A"}, {ID: "b", Text: "B"}},
				Correct: []string{"a"},
			},
		},
		{
			ID:   "2",
			Text: "Hauptstadt von Deutschland?",
			Body: question.FreeText{Accepted: []string{"Berlin"}},
		},
	}
}

// freeTextQuestions builds n free-text questions with optional durations.
func freeTextQuestions(durations ...int) []question.Question {
	out := make([]question.Question, 0, len(durations))
	for i, duration := range durations {
		id := string(rune('1' + i))
		out = append(out, question.Question{
			ID:       id,
			Text:     "Question " + id,
			Duration: duration,
			Body:     question.FreeText{Accepted: []string{"answer-" + id}},
		})
	}
	return out
}

// newClock returns a fake clock pinned to a fixed instant.
func newClock() *testutil.FakeClock {
	return testutil.NewFakeClock(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
}
