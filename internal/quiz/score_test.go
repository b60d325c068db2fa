package quiz

import "testing"

// TestScoreCountsUnansweredAsIncorrect verifies missing and empty answers.
func TestScoreCountsUnansweredAsIncorrect(t *testing.T) {
	questions := freeTextQuestions(0, 0, 0, 0)
	answers := []Answer{
		{QuestionID: "1", Value: "answer-1"},
		{QuestionID: "2", Value: ""},
		{QuestionID: "3", Value: " answer-3 "},
	}
	result := Score(questions, answers)
	if result.Total != 4 || result.Correct != 2 || result.Incorrect != 2 {
		t.Fatalf("unexpected totals: %+v", result)
	}
	if result.Percentage != 50 {
		t.Fatalf("expected 50%%, got %.1f", result.Percentage)
	}
	if result.Reviews[1].Answered || result.Reviews[1].DisplayAnswer() != "unanswered" {
		t.Fatalf("expected empty answer shown as unanswered, got %q", result.Reviews[1].DisplayAnswer())
	}
	if result.Reviews[3].Answered {
		t.Fatalf("expected missing answer to be unanswered")
	}
}

// TestScoreEmptyRun verifies the zero-question percentage.
func TestScoreEmptyRun(t *testing.T) {
	result := Score(nil, nil)
	if result.Total != 0 || result.Percentage != 0 {
		t.Fatalf("expected empty result, got %+v", result)
	}
}

// TestReviewDisplaysChoiceLabel verifies choice ids render as their text.
func TestReviewDisplaysChoiceLabel(t *testing.T) {
	result := Score(capitalQuestions(), []Answer{{QuestionID: "1", Value: "b"}})
	if got := result.Reviews[0].DisplayAnswer(); got != "B" {
		t.Fatalf("expected choice label B, got %q", got)
	}
	if result.Reviews[0].Correct {
		t.Fatalf("expected b to be incorrect")
	}
}
