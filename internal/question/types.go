package question

// Kind identifies the answer format of a question.
type Kind string

const (
	// KindMultipleChoice questions are answered by picking a choice id.
	KindMultipleChoice Kind = "multiple-choice"
	// KindFreeText questions are answered by typing a literal string.
	KindFreeText Kind = "free-text"
)

// kindAliasText is the legacy spelling of free-text questions in banks.
const kindAliasText = "text"

// Bank is the on-disk question bank schema loaded from JSON or YAML.
type Bank struct {
	Version   int          `json:"version" yaml:"version"`
	Tags      []string     `json:"tags" yaml:"tags"`
	Questions []BankRecord `json:"questions" yaml:"questions"`
}

// BankRecord is a single question as written in a bank file.
type BankRecord struct {
	ID           string   `json:"id" yaml:"id"`
	Text         string   `json:"text" yaml:"text"`
	Type         string   `json:"type" yaml:"type"`
	Tags         []string `json:"tags" yaml:"tags"`
	Duration     int      `json:"duration,omitempty" yaml:"duration,omitempty"`
	Explanation  string   `json:"explanation,omitempty" yaml:"explanation,omitempty"`
	SingleAnswer bool     `json:"single_answer,omitempty" yaml:"single_answer,omitempty"`
	Choices      []Choice `json:"choices,omitempty" yaml:"choices,omitempty"`
	Answers      []string `json:"answers" yaml:"answers"`
}

// Choice is a selectable option of a multiple-choice question.
type Choice struct {
	ID   string `json:"id" yaml:"id"`
	Text string `json:"text" yaml:"text"`
}

// Question is a validated question with a kind-specific body.
type Question struct {
	ID           string
	Text         string
	Tags         []string
	Duration     int
	Explanation  string
	SingleAnswer bool
	Body         Body
}

// Body holds the kind-specific part of a question.
type Body interface {
	Kind() Kind
	// Accepts reports whether a committed answer is correct.
	Accepts(answer string) bool
	// CorrectAnswers lists the accepted answers for display.
	CorrectAnswers() []string
}

// MultipleChoice is the body of a multiple-choice question.
type MultipleChoice struct {
	Choices []Choice
	Correct []string
}

// Kind returns KindMultipleChoice.
func (MultipleChoice) Kind() Kind { return KindMultipleChoice }

// Accepts reports whether the choice id is one of the correct ids.
func (body MultipleChoice) Accepts(answer string) bool {
	for _, id := range body.Correct {
		if id == answer {
			return true
		}
	}
	return false
}

// CorrectAnswers returns the texts of the correct choices.
func (body MultipleChoice) CorrectAnswers() []string {
	out := make([]string, 0, len(body.Correct))
	for _, id := range body.Correct {
		if choice, ok := body.Choice(id); ok {
			out = append(out, choice.Text)
		}
	}
	return out
}

// Choice looks up a choice by id.
func (body MultipleChoice) Choice(id string) (Choice, bool) {
	for _, choice := range body.Choices {
		if choice.ID == id {
			return choice, true
		}
	}
	return Choice{}, false
}

// FreeText is the body of a free-text question.
type FreeText struct {
	Accepted []string
}

// Kind returns KindFreeText.
func (FreeText) Kind() Kind { return KindFreeText }

// Accepts reports whether the typed answer matches an accepted answer.
func (body FreeText) Accepts(answer string) bool {
	for _, accepted := range body.Accepted {
		if MatchFreeText(accepted, answer) {
			return true
		}
	}
	return false
}

// CorrectAnswers returns the accepted literals.
func (body FreeText) CorrectAnswers() []string {
	return append([]string(nil), body.Accepted...)
}

// Kind returns the question kind, or "" for a question without a body.
func (q Question) Kind() Kind {
	if q.Body == nil {
		return ""
	}
	return q.Body.Kind()
}

// Choices returns the choices of a multiple-choice question.
func (q Question) Choices() []Choice {
	if body, ok := q.Body.(MultipleChoice); ok {
		return body.Choices
	}
	return nil
}

// HasTag reports whether the question carries the tag.
func (q Question) HasTag(tag string) bool {
	for _, candidate := range q.Tags {
		if candidate == tag {
			return true
		}
	}
	return false
}

// Record converts the question back to its bank representation.
func (q Question) Record() BankRecord {
	record := BankRecord{
		ID:           q.ID,
		Text:         q.Text,
		Type:         string(q.Kind()),
		Tags:         append([]string(nil), q.Tags...),
		Duration:     q.Duration,
		Explanation:  q.Explanation,
		SingleAnswer: q.SingleAnswer,
	}
	switch body := q.Body.(type) {
	case MultipleChoice:
		record.Choices = append([]Choice(nil), body.Choices...)
		record.Answers = append([]string(nil), body.Correct...)
	case FreeText:
		record.Answers = append([]string(nil), body.Accepted...)
	}
	return record
}
