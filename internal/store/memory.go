package store

import (
	"context"
	"time"

	"meister/internal/question"
)

// DefaultLatency is the simulated round trip of the memory store.
const DefaultLatency = 500 * time.Millisecond

// Memory serves a catalog held in memory after a simulated delay.
type Memory struct {
	catalog question.Catalog
	latency time.Duration
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }

// NewMemory creates a memory store. A negative latency disables the delay.
func NewMemory(catalog question.Catalog, latency time.Duration) *Memory {
	return &Memory{catalog: catalog, latency: latency}
}

// FetchQuestions returns the questions carrying every tag, in bank order.
func (m *Memory) FetchQuestions(ctx context.Context, tags []string, page int) ([]question.Question, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	return question.FilterByTags(m.catalog.Questions, question.NormalizeTags(tags)), nil
}

// Tags returns the tag vocabulary.
func (m *Memory) Tags(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]string(nil), m.catalog.Tags...), nil
}

func (m *Memory) wait(ctx context.Context) error {
	if m.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(m.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
