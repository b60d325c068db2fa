package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"meister/internal/question"
	"meister/internal/testutil"
)

func sampleCatalog(t *testing.T) question.Catalog {
	t.Helper()
	catalog, err := question.SampleCatalog()
	if err != nil {
		t.Fatalf("sample catalog: %v", err)
	}
	return catalog
}

func questionIDs(questions []question.Question) []string {
	out := make([]string, 0, len(questions))
	for _, q := range questions {
		out = append(out, q.ID)
	}
	return out
}

func equalIDs(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

// openBackends returns a seeded backend per driver.
func openBackends(t *testing.T) map[Driver]Backend {
	t.Helper()
	ctx := testutil.Context(t, 0)
	catalog := sampleCatalog(t)
	dir := t.TempDir()
	backends := map[Driver]Backend{
		DriverMemory: NewMemory(catalog, 0),
	}
	for driver, dsn := range map[Driver]string{
		DriverSQLite: "file:" + filepath.Join(dir, "bank.db"),
		DriverDuckDB: filepath.Join(dir, "bank.duckdb"),
	} {
		sqlStore, err := OpenSQL(ctx, driver, dsn)
		if err != nil {
			t.Fatalf("open %s: %v", driver, err)
		}
		t.Cleanup(func() { _ = sqlStore.Close() })
		if err := sqlStore.Seed(ctx, catalog); err != nil {
			t.Fatalf("seed %s: %v", driver, err)
		}
		backends[driver] = sqlStore
	}
	return backends
}

// TestFetchQuestionsTagSuperset verifies the tag filter on every backend.
func TestFetchQuestionsTagSuperset(t *testing.T) {
	cases := []struct {
		name string
		tags []string
		want []string
	}{
		{name: "no tags", tags: nil, want: []string{"1", "2", "3", "4", "5", "6", "7", "8"}},
		{name: "single tag", tags: []string{"Kultur"}, want: []string{"3", "4"}},
		{name: "two tags", tags: []string{"Reisen", "Alltag"}, want: []string{"4", "8"}},
		{name: "duplicate tag", tags: []string{"Grammatik", " Grammatik"}, want: []string{"1", "5"}},
		{name: "disjoint tags", tags: []string{"Grammatik", "Kultur"}, want: []string{}},
		{name: "unknown tag", tags: []string{"Mathematik"}, want: []string{}},
	}
	for driver, backend := range openBackends(t) {
		driver, backend := driver, backend
		for _, tc := range cases {
			tc := tc
			t.Run(string(driver)+"/"+tc.name, func(t *testing.T) {
				ctx := testutil.Context(t, 0)
				got, err := backend.FetchQuestions(ctx, tc.tags, 1)
				if err != nil {
					t.Fatalf("fetch: %v", err)
				}
				if !equalIDs(questionIDs(got), tc.want) {
					t.Fatalf("expected %v, got %v", tc.want, questionIDs(got))
				}
			})
		}
	}
}

// TestFetchQuestionsRoundTripsBodies verifies SQL backends return typed questions.
func TestFetchQuestionsRoundTripsBodies(t *testing.T) {
	for driver, backend := range openBackends(t) {
		ctx := testutil.Context(t, 0)
		got, err := backend.FetchQuestions(ctx, []string{"Kultur"}, 0)
		if err != nil {
			t.Fatalf("%s fetch: %v", driver, err)
		}
		if len(got) != 2 {
			t.Fatalf("%s: expected 2 questions, got %d", driver, len(got))
		}
		if !got[0].Body.Accepts("Berlin") {
			t.Fatalf("%s: expected Berlin to be accepted for question 3", driver)
		}
		mc, ok := got[1].Body.(question.MultipleChoice)
		if !ok || len(mc.Choices) != 3 || !got[1].SingleAnswer {
			t.Fatalf("%s: expected single-answer multiple choice, got %+v", driver, got[1])
		}
	}
}

// TestTagsReturnsVocabulary verifies the tag list order on every backend.
func TestTagsReturnsVocabulary(t *testing.T) {
	want := sampleCatalog(t).Tags
	for driver, backend := range openBackends(t) {
		got, err := backend.Tags(testutil.Context(t, 0))
		if err != nil {
			t.Fatalf("%s tags: %v", driver, err)
		}
		if !equalIDs(got, want) {
			t.Fatalf("%s: expected %v, got %v", driver, want, got)
		}
	}
}

// TestSeedReplacesBank verifies reseeding drops earlier questions.
func TestSeedReplacesBank(t *testing.T) {
	ctx := testutil.Context(t, 0)
	sqlStore, err := OpenSQL(ctx, DriverSQLite, "file:"+filepath.Join(t.TempDir(), "bank.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer sqlStore.Close()
	catalog := sampleCatalog(t)
	if err := sqlStore.Seed(ctx, catalog); err != nil {
		t.Fatalf("seed: %v", err)
	}
	smaller := question.Catalog{Tags: catalog.Tags, Questions: catalog.Questions[:2]}
	if err := sqlStore.Seed(ctx, smaller); err != nil {
		t.Fatalf("reseed: %v", err)
	}
	got, err := sqlStore.FetchQuestions(ctx, nil, 1)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if !equalIDs(questionIDs(got), []string{"1", "2"}) {
		t.Fatalf("expected reseeded bank, got %v", questionIDs(got))
	}
}

// TestMemoryLatencyHonoursContext verifies cancellation during the simulated delay.
func TestMemoryLatencyHonoursContext(t *testing.T) {
	memory := NewMemory(sampleCatalog(t), time.Hour)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := memory.FetchQuestions(ctx, nil, 1)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

// TestMemoryLatencyDelaysResults verifies the simulated round trip.
func TestMemoryLatencyDelaysResults(t *testing.T) {
	memory := NewMemory(sampleCatalog(t), 20*time.Millisecond)
	start := time.Now()
	got, err := memory.FetchQuestions(testutil.Context(t, 0), []string{"Kultur"}, 1)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if time.Since(start) < 20*time.Millisecond {
		t.Fatalf("expected results after the simulated latency")
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(got))
	}
}

// TestOpenRejectsUnknownDriver verifies driver validation.
func TestOpenRejectsUnknownDriver(t *testing.T) {
	ctx := testutil.Context(t, 0)
	if _, err := Open(ctx, Options{Driver: "postgres"}, question.Catalog{}); !errors.Is(err, ErrUnknownDriver) {
		t.Fatalf("expected ErrUnknownDriver, got %v", err)
	}
	if _, err := ParseDriver("mysql"); !errors.Is(err, ErrUnknownDriver) {
		t.Fatalf("expected ErrUnknownDriver, got %v", err)
	}
	backend, err := Open(ctx, Options{}, sampleCatalog(t))
	if err != nil {
		t.Fatalf("open default: %v", err)
	}
	if _, ok := backend.(*Memory); !ok {
		t.Fatalf("expected memory backend by default, got %T", backend)
	}
}
