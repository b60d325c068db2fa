package quiz

import (
	"errors"
	"math/rand"
	"testing"

	"meister/internal/question"
)

func poolOf(n int) []question.Question {
	durations := make([]int, n)
	return freeTextQuestions(durations...)
}

func ids(questions []question.Question) []string {
	out := make([]string, 0, len(questions))
	for _, q := range questions {
		out = append(out, q.ID)
	}
	return out
}

// TestSelectorPaging verifies page-sized reveal of the pool.
func TestSelectorPaging(t *testing.T) {
	selector := NewSelector(poolOf(5), 2)
	if len(selector.Visible()) != 2 || !selector.HasMore() {
		t.Fatalf("expected first page of 2 with more available")
	}
	selector.LoadMore()
	selector.LoadMore()
	if len(selector.Visible()) != 5 || selector.HasMore() {
		t.Fatalf("expected full pool visible, got %d", len(selector.Visible()))
	}
	if selector.LoadMore() {
		t.Fatalf("expected LoadMore to report exhaustion")
	}
}

// TestSelectorToggleKeepsClickOrder verifies manual selection order.
func TestSelectorToggleKeepsClickOrder(t *testing.T) {
	selector := NewSelector(poolOf(4), 0)
	selector.Toggle("3")
	selector.Toggle("1")
	selector.Toggle("4")
	selector.Toggle("1")
	if got := ids(selector.Selected()); len(got) != 2 || got[0] != "3" || got[1] != "4" {
		t.Fatalf("expected [3 4], got %v", got)
	}
	if selector.Toggle("missing") {
		t.Fatalf("expected unknown id to be rejected")
	}
	selector.SelectAll()
	if !selector.AllSelected() || selector.Count() != 4 {
		t.Fatalf("expected every question selected")
	}
	selector.DeselectAll()
	if selector.Count() != 0 {
		t.Fatalf("expected empty selection")
	}
}

// TestAutoSelectDrawsDistinctQuestions verifies sampling without replacement.
func TestAutoSelectDrawsDistinctQuestions(t *testing.T) {
	selector := NewSelector(poolOf(8), 0)
	picked, err := selector.AutoSelect(3, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(picked) != 3 || selector.Count() != 3 {
		t.Fatalf("expected 3 questions, got %d", len(picked))
	}
	seen := map[string]bool{}
	previous := ""
	for _, id := range ids(picked) {
		if seen[id] {
			t.Fatalf("expected distinct questions, got %v", ids(picked))
		}
		seen[id] = true
		if previous != "" && id < previous {
			t.Fatalf("expected pool order, got %v", ids(picked))
		}
		previous = id
	}
}

// TestAutoSelectBounds verifies count edge cases.
func TestAutoSelectBounds(t *testing.T) {
	selector := NewSelector(poolOf(3), 0)
	if _, err := selector.AutoSelect(0, nil); !errors.Is(err, ErrInvalidCount) {
		t.Fatalf("expected ErrInvalidCount, got %v", err)
	}
	picked, err := selector.AutoSelect(10, nil)
	if err != nil || len(picked) != 3 {
		t.Fatalf("expected whole pool, got %d (%v)", len(picked), err)
	}
}
