package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// addGitignoreEntry appends path to the root .gitignore unless it is listed.
func addGitignoreEntry(repoRoot, path string) (bool, error) {
	entry, err := normalizeGitignorePath(repoRoot, path)
	if err != nil {
		return false, err
	}
	if entry == "" {
		return false, fmt.Errorf("gitignore entry is empty")
	}

	gitignorePath := filepath.Join(repoRoot, ".gitignore")
	var existing []byte
	if data, err := os.ReadFile(gitignorePath); err == nil {
		existing = data
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("read .gitignore: %w", err)
	}

	for _, line := range strings.Split(string(existing), "\n") {
		if strings.TrimSpace(line) == entry {
			return false, nil
		}
	}

	updated := string(existing)
	if len(updated) > 0 && !strings.HasSuffix(updated, "\n") {
		updated += "\n"
	}
	updated += entry + "\n"
	if err := os.WriteFile(gitignorePath, []byte(updated), 0o644); err != nil {
		return false, fmt.Errorf("write .gitignore: %w", err)
	}
	return true, nil
}

// normalizeGitignorePath makes path relative to the repo root.
func normalizeGitignorePath(repoRoot, path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("path is required")
	}
	clean := filepath.Clean(path)
	if filepath.IsAbs(clean) {
		rel, err := filepath.Rel(repoRoot, clean)
		if err != nil {
			return "", fmt.Errorf("resolve path: %w", err)
		}
		clean = rel
	}
	if clean == "." || clean == "" || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("path %q is outside the repo root", path)
	}
	return filepath.ToSlash(clean), nil
}
