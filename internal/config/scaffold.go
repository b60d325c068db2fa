package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const defaultConfig = `version: 1
bank: ".meister/questions.yml"

store:
  driver: memory
  latency_ms: 500

quiz:
  total_duration: 0
  transition_ms: 300
  page_size: 10

ui:
  mode: auto
  no_color: false

server:
  addr: ":8080"
  allowed_origins:
    - "*"
`

// ScaffoldResult lists the files written by Scaffold.
type ScaffoldResult struct {
	ConfigPath string
	BankPath   string
}

// Scaffold writes a starter config and question bank under root. Existing
// files are never overwritten.
func Scaffold(root string, bank []byte) (ScaffoldResult, error) {
	if root == "" {
		return ScaffoldResult{}, fmt.Errorf("root directory is required")
	}
	result := ScaffoldResult{
		ConfigPath: ConfigPath(root),
		BankPath:   filepath.Join(ConfigDir(root), BankFileName),
	}
	for _, path := range []string{result.ConfigPath, result.BankPath} {
		if err := ensureAbsent(path); err != nil {
			return ScaffoldResult{}, err
		}
	}
	if err := os.MkdirAll(ConfigDir(root), 0o755); err != nil {
		return ScaffoldResult{}, fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(result.ConfigPath, []byte(defaultConfig), 0o644); err != nil {
		return ScaffoldResult{}, fmt.Errorf("write config file: %w", err)
	}
	if err := os.WriteFile(result.BankPath, bank, 0o644); err != nil {
		return ScaffoldResult{}, fmt.Errorf("write bank file: %w", err)
	}
	return result, nil
}

func ensureAbsent(path string) error {
	info, err := os.Stat(path)
	if err == nil {
		if info.IsDir() {
			return fmt.Errorf("path %q is a directory", path)
		}
		return fmt.Errorf("file already exists at %q", path)
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat %q: %w", path, err)
	}
	return nil
}
