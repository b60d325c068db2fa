package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"meister/internal/config"
)

// TestInitCommandCreatesFiles verifies init writes the config and sample bank.
func TestInitCommandCreatesFiles(t *testing.T) {
	dir := t.TempDir()

	var out, err bytes.Buffer
	code := Run([]string{"init", "--dir", dir, "--yes"}, &out, &err)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d: %s", ExitOK, code, err.String())
	}
	if err.Len() != 0 {
		t.Fatalf("expected no stderr output, got %q", err.String())
	}
	if !strings.Contains(out.String(), "Wrote") {
		t.Fatalf("expected output to include writes, got %q", out.String())
	}
	for _, path := range []string{config.ConfigPath(dir), filepath.Join(config.ConfigDir(dir), config.BankFileName)} {
		if _, statErr := os.Stat(path); statErr != nil {
			t.Fatalf("expected %s to exist: %v", path, statErr)
		}
	}
	if _, loadErr := loadProject(config.ConfigPath(dir)); loadErr != nil {
		t.Fatalf("expected scaffolded project to load: %v", loadErr)
	}
}

// TestInitCommandRefusesOverwrite verifies an existing config is kept.
func TestInitCommandRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(config.ConfigDir(dir), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(config.ConfigPath(dir), []byte("version: 1\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	var out, err bytes.Buffer
	code := Run([]string{"init", "--dir", dir, "--yes"}, &out, &err)
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no stdout output, got %q", out.String())
	}
	if !strings.Contains(err.String(), "already exists") {
		t.Fatalf("expected overwrite warning, got %q", err.String())
	}
}

// TestInitCommandPromptCancel verifies answering no writes nothing.
func TestInitCommandPromptCancel(t *testing.T) {
	dir := t.TempDir()
	original := initInput
	initInput = strings.NewReader("n\n")
	t.Cleanup(func() { initInput = original })

	var out, err bytes.Buffer
	code := Run([]string{"init", "--dir", dir}, &out, &err)
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if !strings.Contains(err.String(), "Init cancelled.") {
		t.Fatalf("expected cancel message, got %q", err.String())
	}
	if _, statErr := os.Stat(config.ConfigPath(dir)); !os.IsNotExist(statErr) {
		t.Fatalf("expected no config file, got %v", statErr)
	}
}

// TestInitCommandUpdatesGitignore verifies the database file is ignored in git checkouts.
func TestInitCommandUpdatesGitignore(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir .git: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("bin/"), 0o644); err != nil {
		t.Fatalf("write .gitignore: %v", err)
	}
	original := initInput
	initInput = strings.NewReader("y\ny\n")
	t.Cleanup(func() { initInput = original })

	var out, err bytes.Buffer
	code := Run([]string{"init", "--dir", dir}, &out, &err)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d: %s", ExitOK, code, err.String())
	}
	data, readErr := os.ReadFile(filepath.Join(dir, ".gitignore"))
	if readErr != nil {
		t.Fatalf("read .gitignore: %v", readErr)
	}
	if string(data) != "bin/\nmeister.db\n" {
		t.Fatalf("unexpected .gitignore: %q", string(data))
	}

	updated, addErr := addGitignoreEntry(dir, defaultSQLiteFile)
	if addErr != nil || updated {
		t.Fatalf("expected existing entry to be kept, got updated=%v err=%v", updated, addErr)
	}
}
