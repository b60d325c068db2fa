package quiz

import "meister/internal/question"

// Review is the per-question line of a results summary.
type Review struct {
	Question question.Question
	Answer   string
	Answered bool
	Correct  bool
}

// Result summarizes a finished run.
type Result struct {
	Total      int
	Correct    int
	Incorrect  int
	Percentage float64
	Reviews    []Review
}

// Score grades committed answers against the run's questions in question
// order. Missing or empty answers count as unanswered and incorrect.
func Score(questions []question.Question, answers []Answer) Result {
	byQuestion := make(map[string]string, len(answers))
	for _, answer := range answers {
		byQuestion[answer.QuestionID] = answer.Value
	}
	result := Result{Total: len(questions), Reviews: make([]Review, 0, len(questions))}
	for _, q := range questions {
		value, ok := byQuestion[q.ID]
		review := Review{
			Question: q,
			Answer:   value,
			Answered: ok && !question.IsBlank(value),
		}
		if review.Answered && q.Body != nil {
			review.Correct = q.Body.Accepts(value)
		}
		if review.Correct {
			result.Correct++
		}
		result.Reviews = append(result.Reviews, review)
	}
	result.Incorrect = result.Total - result.Correct
	if result.Total > 0 {
		result.Percentage = 100 * float64(result.Correct) / float64(result.Total)
	}
	return result
}

// ScoreOutcome grades a run outcome.
func ScoreOutcome(outcome Outcome) Result {
	return Score(outcome.Questions, outcome.Answers)
}

// DisplayAnswer renders the user's answer for a review line, resolving
// choice ids to their labels.
func (r Review) DisplayAnswer() string {
	if !r.Answered {
		return "unanswered"
	}
	if body, ok := r.Question.Body.(question.MultipleChoice); ok {
		if choice, found := body.Choice(r.Answer); found {
			return choice.Text
		}
	}
	return r.Answer
}
