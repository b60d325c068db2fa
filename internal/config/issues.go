package config

import (
	"fmt"
	"strings"
)

// Issue captures a validation problem with a config field.
type Issue struct {
	Field   string
	Message string
}

// ValidationError aggregates config validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error renders one issue per line under a summary line.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "config validation failed"
	}
	lines := make([]string, 0, len(err.Issues)+1)
	lines = append(lines, "config validation failed:")
	for _, issue := range err.Issues {
		lines = append(lines, fmt.Sprintf("  %s: %s", issue.Field, issue.Message))
	}
	return strings.Join(lines, "\n")
}

// Fields lists the fields with issues, in report order.
func (err *ValidationError) Fields() []string {
	fields := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		fields = append(fields, issue.Field)
	}
	return fields
}

type issueAdder func(field, message string)

type issueCollector struct {
	issues []Issue
}

func (c *issueCollector) add(field, message string) {
	c.issues = append(c.issues, Issue{Field: field, Message: message})
}

func (c *issueCollector) result() error {
	if len(c.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: c.issues}
}
