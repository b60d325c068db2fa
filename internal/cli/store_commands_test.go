package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"meister/internal/question"
)

// TestTagsCommandListsVocabulary verifies the bank vocabulary is printed in order.
func TestTagsCommandListsVocabulary(t *testing.T) {
	configPath := writeProject(t, fastConfig)

	var out, err bytes.Buffer
	code := Run([]string{"tags", "--config", configPath}, &out, &err)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d: %s", ExitOK, code, err.String())
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 16 {
		t.Fatalf("expected 16 tags, got %d: %q", len(lines), out.String())
	}
	if lines[0] != "Grammatik" || lines[15] != "Bildung" {
		t.Fatalf("unexpected tag order: %v", lines)
	}
}

// TestQuestionsCommandFiltersByTags verifies superset matching on the CLI.
func TestQuestionsCommandFiltersByTags(t *testing.T) {
	configPath := writeProject(t, fastConfig)

	var out, err bytes.Buffer
	code := Run([]string{"questions", "--config", configPath, "--tags", "Reisen, Alltag"}, &out, &err)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d: %s", ExitOK, code, err.String())
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 questions, got %q", out.String())
	}
	if !strings.HasPrefix(lines[0], "4 ") || !strings.HasPrefix(lines[1], "8 ") {
		t.Fatalf("expected questions 4 and 8, got %q", out.String())
	}
}

// TestQuestionsCommandJSON verifies JSON output carries bank records.
func TestQuestionsCommandJSON(t *testing.T) {
	configPath := writeProject(t, fastConfig)

	var out, err bytes.Buffer
	code := Run([]string{"questions", "--config", configPath, "--tags", "Grammatik", "--json"}, &out, &err)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d: %s", ExitOK, code, err.String())
	}
	var records []question.BankRecord
	if decodeErr := json.Unmarshal(out.Bytes(), &records); decodeErr != nil {
		t.Fatalf("decode output: %v", decodeErr)
	}
	if len(records) != 2 || records[0].ID != "1" || records[1].ID != "5" {
		t.Fatalf("unexpected records: %+v", records)
	}
	if records[1].Type != string(question.KindMultipleChoice) {
		t.Fatalf("expected multiple-choice type, got %q", records[1].Type)
	}
}

// TestQuestionsCommandNoMatches verifies the empty message.
func TestQuestionsCommandNoMatches(t *testing.T) {
	configPath := writeProject(t, fastConfig)

	var out, err bytes.Buffer
	code := Run([]string{"questions", "--config", configPath, "--tags", "Grammatik,Reisen"}, &out, &err)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d: %s", ExitOK, code, err.String())
	}
	if !strings.Contains(out.String(), "No questions found for the selected tags.") {
		t.Fatalf("unexpected output %q", out.String())
	}
}

// TestSeedCommandFillsSQLite verifies seeded rows are served by the sqlite store.
func TestSeedCommandFillsSQLite(t *testing.T) {
	dir := t.TempDir()
	configPath := writeProject(t, sqliteConfig(dir))

	var out, err bytes.Buffer
	code := Run([]string{"seed", "--config", configPath}, &out, &err)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d: %s", ExitOK, code, err.String())
	}
	if !strings.Contains(out.String(), "Seeded 8 questions and 16 tags into sqlite") {
		t.Fatalf("unexpected seed output %q", out.String())
	}

	out.Reset()
	err.Reset()
	code = Run([]string{"questions", "--config", configPath, "--tags", "Kultur"}, &out, &err)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d: %s", ExitOK, code, err.String())
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "3 ") || !strings.HasPrefix(lines[1], "4 ") {
		t.Fatalf("expected questions 3 and 4 from sqlite, got %q", out.String())
	}
}

// TestSeedCommandRejectsMemoryDriver verifies seeding needs a SQL driver.
func TestSeedCommandRejectsMemoryDriver(t *testing.T) {
	configPath := writeProject(t, fastConfig)

	var out, err bytes.Buffer
	code := Run([]string{"seed", "--config", configPath}, &out, &err)
	if code != ExitUsage {
		t.Fatalf("expected exit %d, got %d", ExitUsage, code)
	}
	if !strings.Contains(err.String(), "--driver sqlite") {
		t.Fatalf("expected driver hint, got %q", err.String())
	}

	err.Reset()
	code = Run([]string{"seed", "--config", configPath, "--driver", "oracle"}, &out, &err)
	if code != ExitUsage {
		t.Fatalf("expected exit %d, got %d", ExitUsage, code)
	}
}

// TestSeedCommandDuckDBOverride verifies --driver and --dsn override the config.
func TestSeedCommandDuckDBOverride(t *testing.T) {
	configPath := writeProject(t, fastConfig)
	dsn := t.TempDir() + "/meister.duckdb"

	var out, err bytes.Buffer
	code := Run([]string{"seed", "--config", configPath, "--driver", "duckdb", "--dsn", dsn}, &out, &err)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d: %s", ExitOK, code, err.String())
	}
	if !strings.Contains(out.String(), "into duckdb") {
		t.Fatalf("unexpected seed output %q", out.String())
	}
}
