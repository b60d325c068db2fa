package cli

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"meister/internal/config"
	"meister/internal/question"
)

// writeProject scaffolds a project in a temp dir and replaces the config
// with body. It returns the config path.
func writeProject(t *testing.T, body string) string {
	t.Helper()
	root := t.TempDir()
	result, err := config.Scaffold(root, question.SampleBank())
	if err != nil {
		t.Fatalf("scaffold: %v", err)
	}
	if body != "" {
		if err := os.WriteFile(result.ConfigPath, []byte(body), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}
	}
	return result.ConfigPath
}

// fastConfig is a memory-store config without simulated latency.
const fastConfig = `version: 1
bank: ".meister/questions.yml"
store:
  driver: memory
  latency_ms: 0
quiz:
  transition_ms: 0
`

// sqliteConfig points the store at a sqlite file under dir.
func sqliteConfig(dir string) string {
	return `version: 1
bank: ".meister/questions.yml"
store:
  driver: sqlite
  dsn: "file:` + filepath.ToSlash(filepath.Join(dir, "meister.db")) + `"
`
}

// stubTerminal forces the TTY answer for the duration of a test.
func stubTerminal(t *testing.T, tty bool) {
	t.Helper()
	original := isTerminal
	isTerminal = func(any) bool { return tty }
	t.Cleanup(func() { isTerminal = original })
}

func newLineReader(input string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(input))
}
