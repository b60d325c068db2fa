package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// writeProject creates a project root holding a config and an empty bank file.
func writeProject(t *testing.T, configYAML string) string {
	t.Helper()
	root := t.TempDir()
	if err := os.MkdirAll(ConfigDir(root), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	if err := os.WriteFile(ConfigPath(root), []byte(configYAML), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	bankPath := filepath.Join(ConfigDir(root), BankFileName)
	if err := os.WriteFile(bankPath, []byte("version: 1\n"), 0o644); err != nil {
		t.Fatalf("write bank: %v", err)
	}
	return root
}

func intPtr(value int) *int { return &value }

// TestNormalizeDefaults verifies every default is filled.
func TestNormalizeDefaults(t *testing.T) {
	cfg := Config{Version: 1}
	Normalize(&cfg)

	if cfg.Bank != DefaultBank {
		t.Fatalf("expected default bank, got %q", cfg.Bank)
	}
	if cfg.Store.Driver != "memory" {
		t.Fatalf("expected memory driver, got %q", cfg.Store.Driver)
	}
	if cfg.Latency() != 500*time.Millisecond {
		t.Fatalf("expected 500ms latency, got %s", cfg.Latency())
	}
	if cfg.TransitionDelay() != 300*time.Millisecond {
		t.Fatalf("expected 300ms transition, got %s", cfg.TransitionDelay())
	}
	if cfg.Quiz.PageSize != 10 || cfg.UI.Mode != "auto" || cfg.Server.Addr != ":8080" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "*" {
		t.Fatalf("expected wildcard origin, got %v", cfg.Server.AllowedOrigins)
	}
}

// TestNormalizeKeepsExplicitZero verifies zero latency and transition survive.
func TestNormalizeKeepsExplicitZero(t *testing.T) {
	cfg := Config{Version: 1, Store: StoreConfig{Driver: " SQLite ", LatencyMS: intPtr(0)}, Quiz: QuizConfig{TransitionMS: intPtr(0)}}
	Normalize(&cfg)
	if cfg.Latency() != 0 || cfg.TransitionDelay() != 0 {
		t.Fatalf("expected explicit zeros to be kept, got %s and %s", cfg.Latency(), cfg.TransitionDelay())
	}
	if cfg.Store.Driver != "sqlite" {
		t.Fatalf("expected lower-cased driver, got %q", cfg.Store.Driver)
	}
}

// TestValidateCollectsIssues verifies every bad field is reported.
func TestValidateCollectsIssues(t *testing.T) {
	cfg := Config{
		Version: 2,
		Bank:    "missing.yml",
		Store:   StoreConfig{Driver: "postgres", LatencyMS: intPtr(-1)},
		Quiz:    QuizConfig{TotalDuration: -5, TransitionMS: intPtr(-1), PageSize: -1},
		UI:      UIConfig{Mode: "fancy"},
		Server:  ServerConfig{Addr: ":1", AllowedOrigins: []string{" "}},
	}
	err := Validate(&cfg, t.TempDir())
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	want := []string{
		"version",
		"bank",
		"store.driver",
		"store.latency_ms",
		"quiz.total_duration",
		"quiz.transition_ms",
		"quiz.page_size",
		"ui.mode",
		"server.allowed_origins[0]",
	}
	got := validationErr.Fields()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("expected fields %v, got %v", want, got)
	}
}

// TestLoadScaffoldedProject verifies init output loads cleanly.
func TestLoadScaffoldedProject(t *testing.T) {
	root := t.TempDir()
	result, err := Scaffold(root, []byte("version: 1\n"))
	if err != nil {
		t.Fatalf("scaffold: %v", err)
	}
	cfg, err := Load(result.ConfigPath)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if BankPath(cfg, result.ConfigPath) != result.BankPath {
		t.Fatalf("expected bank at %q, got %q", result.BankPath, BankPath(cfg, result.ConfigPath))
	}
	if _, err := Scaffold(root, nil); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected scaffold to refuse overwriting, got %v", err)
	}
}

// TestLoadRejectsUnknownKeys verifies strict decoding.
func TestLoadRejectsUnknownKeys(t *testing.T) {
	root := writeProject(t, "version: 1\nquiz:\n  shuffle: true\n")
	_, err := Load(ConfigPath(root))
	if err == nil || !strings.Contains(err.Error(), "shuffle") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
}

// TestParseRejectsMultipleDocuments verifies a single YAML document is required.
func TestParseRejectsMultipleDocuments(t *testing.T) {
	_, err := Parse([]byte("version: 1\n---\nversion: 1\n"))
	if err == nil || !strings.Contains(err.Error(), "multiple YAML documents") {
		t.Fatalf("expected multiple document error, got %v", err)
	}
}

// TestFindConfigPathWalksUp verifies discovery from a nested directory.
func TestFindConfigPathWalksUp(t *testing.T) {
	root := writeProject(t, "version: 1\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir nested: %v", err)
	}
	path, err := FindConfigPath(nested)
	if err != nil {
		t.Fatalf("find config: %v", err)
	}
	if path != ConfigPath(root) {
		t.Fatalf("expected %q, got %q", ConfigPath(root), path)
	}
	if RepoRootFromConfigPath(path) != root {
		t.Fatalf("expected root %q, got %q", root, RepoRootFromConfigPath(path))
	}
}

// TestFindConfigPathMissing verifies the not-found error.
func TestFindConfigPathMissing(t *testing.T) {
	_, err := FindConfigPath(t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "no .meister/config.yml found") {
		t.Fatalf("expected not found error, got %v", err)
	}
}
