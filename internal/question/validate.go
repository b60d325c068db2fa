package question

import (
	"fmt"
	"strings"
)

// Issue captures a validation problem in a question bank.
type Issue struct {
	Field   string
	Message string
}

// ValidationError reports one or more validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error returns a readable message for validation failures.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return ""
	}
	parts := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return fmt.Sprintf("question bank validation failed: %s", strings.Join(parts, "; "))
}

type issueCollector struct {
	issues []Issue
}

func (collector *issueCollector) add(field, message string) {
	collector.issues = append(collector.issues, Issue{Field: field, Message: message})
}

func (collector *issueCollector) result() error {
	if len(collector.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: collector.issues}
}

// NormalizeBank trims whitespace, validates a bank, and converts its records
// into typed questions.
func NormalizeBank(bank Bank) (Catalog, error) {
	collector := &issueCollector{}
	if bank.Version == 0 {
		collector.add("version", "is required")
	} else if bank.Version != 1 {
		collector.add("version", fmt.Sprintf("unsupported version %d", bank.Version))
	}
	if len(bank.Questions) == 0 {
		collector.add("questions", "must include at least one entry")
	}

	vocabulary := dedupeStrings(normalizeStringSlice(bank.Tags))
	known := make(map[string]struct{}, len(vocabulary))
	for _, tag := range vocabulary {
		known[tag] = struct{}{}
	}
	deriveTags := len(vocabulary) == 0

	seenIDs := map[string]struct{}{}
	questions := make([]Question, 0, len(bank.Questions))
	for i, record := range bank.Questions {
		prefix := fmt.Sprintf("questions[%d]", i)
		q := Question{
			ID:           strings.TrimSpace(record.ID),
			Text:         strings.TrimSpace(record.Text),
			Duration:     record.Duration,
			Explanation:  strings.TrimSpace(record.Explanation),
			SingleAnswer: record.SingleAnswer,
			Tags:         dedupeStrings(normalizeStringSlice(record.Tags)),
		}
		if q.ID == "" {
			collector.add(prefix+".id", "is required")
		} else if _, exists := seenIDs[q.ID]; exists {
			collector.add(prefix+".id", fmt.Sprintf("duplicate id %q", q.ID))
		} else {
			seenIDs[q.ID] = struct{}{}
		}
		if q.Text == "" {
			collector.add(prefix+".text", "is required")
		}
		if q.Duration < 0 {
			collector.add(prefix+".duration", "must be >= 0")
		}
		for _, tag := range q.Tags {
			if deriveTags {
				if _, ok := known[tag]; !ok {
					known[tag] = struct{}{}
					vocabulary = append(vocabulary, tag)
				}
				continue
			}
			if _, ok := known[tag]; !ok {
				collector.add(prefix+".tags", fmt.Sprintf("unknown tag %q", tag))
			}
		}

		kind, ok := normalizeKind(record.Type)
		if !ok {
			if strings.TrimSpace(record.Type) == "" {
				collector.add(prefix+".type", "is required")
			} else {
				collector.add(prefix+".type", fmt.Sprintf("unsupported type %q (expected multiple-choice|free-text)", record.Type))
			}
			continue
		}
		answers := normalizeStringSlice(record.Answers)
		switch kind {
		case KindMultipleChoice:
			q.Body = normalizeMultipleChoice(collector, prefix, record.Choices, answers)
		case KindFreeText:
			q.Body = normalizeFreeText(collector, prefix, record.Choices, answers)
		}
		questions = append(questions, q)
	}

	if err := collector.result(); err != nil {
		return Catalog{}, err
	}
	return Catalog{Tags: vocabulary, Questions: questions}, nil
}

func normalizeMultipleChoice(collector *issueCollector, prefix string, rawChoices []Choice, answers []string) MultipleChoice {
	body := MultipleChoice{}
	if len(rawChoices) == 0 {
		collector.add(prefix+".choices", "must include at least one entry for multiple-choice questions")
	}
	choiceIDs := map[string]struct{}{}
	for choiceIndex, raw := range rawChoices {
		field := fmt.Sprintf("%s.choices[%d]", prefix, choiceIndex)
		choice := Choice{ID: strings.TrimSpace(raw.ID), Text: strings.TrimSpace(raw.Text)}
		if choice.ID == "" {
			collector.add(field+".id", "is required")
		} else if _, exists := choiceIDs[choice.ID]; exists {
			collector.add(field+".id", fmt.Sprintf("duplicate choice id %q", choice.ID))
		} else {
			choiceIDs[choice.ID] = struct{}{}
		}
		if choice.Text == "" {
			collector.add(field+".text", "is required")
		}
		body.Choices = append(body.Choices, choice)
	}
	if len(answers) == 0 {
		collector.add(prefix+".answers", "must include at least one entry")
	}
	for answerIndex, answer := range answers {
		field := fmt.Sprintf("%s.answers[%d]", prefix, answerIndex)
		if answer == "" {
			collector.add(field, "is required")
			continue
		}
		if _, ok := choiceIDs[answer]; !ok {
			collector.add(field, fmt.Sprintf("unknown choice id %q", answer))
		}
	}
	body.Correct = dedupeStrings(answers)
	return body
}

func normalizeFreeText(collector *issueCollector, prefix string, rawChoices []Choice, answers []string) FreeText {
	if len(rawChoices) > 0 {
		collector.add(prefix+".choices", "must be empty for free-text questions")
	}
	if len(answers) == 0 {
		collector.add(prefix+".answers", "must include at least one entry")
	}
	for answerIndex, answer := range answers {
		if answer == "" {
			collector.add(fmt.Sprintf("%s.answers[%d]", prefix, answerIndex), "is required")
		}
	}
	return FreeText{Accepted: dedupeStrings(answers)}
}
