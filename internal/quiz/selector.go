package quiz

import (
	"errors"
	"math/rand"
	"sort"

	"meister/internal/question"
)

// DefaultPageSize is the number of questions revealed per page.
const DefaultPageSize = 10

// ErrInvalidCount indicates a non-positive auto-select count.
var ErrInvalidCount = errors.New("quiz: question count must be positive")

// Selector curates the subset of fetched questions used for a run.
type Selector struct {
	pool     []question.Question
	selected []string
	pageSize int
	pages    int
}

// NewSelector creates a selector over pool with nothing selected.
func NewSelector(pool []question.Question, pageSize int) *Selector {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Selector{pool: pool, pageSize: pageSize, pages: 1}
}

// Pool returns every candidate question.
func (s *Selector) Pool() []question.Question { return s.pool }

// Visible returns the questions loaded so far.
func (s *Selector) Visible() []question.Question {
	end := s.pages * s.pageSize
	if end > len(s.pool) {
		end = len(s.pool)
	}
	return s.pool[:end]
}

// HasMore reports whether LoadMore would reveal more questions.
func (s *Selector) HasMore() bool {
	return s.pages*s.pageSize < len(s.pool)
}

// LoadMore reveals the next page.
func (s *Selector) LoadMore() bool {
	if !s.HasMore() {
		return false
	}
	s.pages++
	return true
}

// Toggle flips the selection of a question. New selections are appended.
func (s *Selector) Toggle(id string) bool {
	for i, selected := range s.selected {
		if selected == id {
			s.selected = append(s.selected[:i:i], s.selected[i+1:]...)
			return true
		}
	}
	if _, ok := s.lookup(id); !ok {
		return false
	}
	s.selected = append(s.selected, id)
	return true
}

// IsSelected reports whether a question is selected.
func (s *Selector) IsSelected(id string) bool {
	for _, selected := range s.selected {
		if selected == id {
			return true
		}
	}
	return false
}

// SelectAll selects every question in pool order.
func (s *Selector) SelectAll() {
	s.selected = make([]string, 0, len(s.pool))
	for _, q := range s.pool {
		s.selected = append(s.selected, q.ID)
	}
}

// DeselectAll clears the selection.
func (s *Selector) DeselectAll() {
	s.selected = nil
}

// AllSelected reports whether every pool question is selected.
func (s *Selector) AllSelected() bool {
	return len(s.pool) > 0 && len(s.selected) == len(s.pool)
}

// Count returns the number of selected questions.
func (s *Selector) Count() int { return len(s.selected) }

// Selected returns the selected questions in selection order.
func (s *Selector) Selected() []question.Question {
	out := make([]question.Question, 0, len(s.selected))
	for _, id := range s.selected {
		if q, ok := s.lookup(id); ok {
			out = append(out, q)
		}
	}
	return out
}

// AutoSelect replaces the selection with n questions drawn uniformly at
// random without replacement, listed in pool order.
func (s *Selector) AutoSelect(n int, rng *rand.Rand) ([]question.Question, error) {
	if n <= 0 {
		return nil, ErrInvalidCount
	}
	if n >= len(s.pool) {
		s.SelectAll()
		return s.Selected(), nil
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	picked := rng.Perm(len(s.pool))[:n]
	sort.Ints(picked)
	s.selected = make([]string, 0, n)
	for _, index := range picked {
		s.selected = append(s.selected, s.pool[index].ID)
	}
	return s.Selected(), nil
}

func (s *Selector) lookup(id string) (question.Question, bool) {
	for _, q := range s.pool {
		if q.ID == id {
			return q, true
		}
	}
	return question.Question{}, false
}
