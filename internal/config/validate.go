package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	supportedDrivers = []string{"memory", "sqlite", "duckdb"}
	supportedUIModes = []string{"auto", "live", "plain"}
)

// Validate checks a normalized config and the bank file it references.
func Validate(cfg *Config, baseDir string) error {
	collector := &issueCollector{}

	if cfg.Version == 0 {
		collector.add("version", "is required")
	} else if cfg.Version != 1 {
		collector.add("version", fmt.Sprintf("unsupported version %d", cfg.Version))
	}

	if baseDir == "" {
		baseDir = "."
	}
	validateBank(cfg.Bank, baseDir, collector.add)

	if !contains(supportedDrivers, cfg.Store.Driver) {
		collector.add("store.driver", fmt.Sprintf("unsupported driver %q (expected %s)", cfg.Store.Driver, strings.Join(supportedDrivers, ", ")))
	}
	if cfg.Store.LatencyMS != nil && *cfg.Store.LatencyMS < 0 {
		collector.add("store.latency_ms", "must be >= 0")
	}
	if cfg.Quiz.TotalDuration < 0 {
		collector.add("quiz.total_duration", "must be >= 0")
	}
	if cfg.Quiz.TransitionMS != nil && *cfg.Quiz.TransitionMS < 0 {
		collector.add("quiz.transition_ms", "must be >= 0")
	}
	if cfg.Quiz.PageSize < 0 {
		collector.add("quiz.page_size", "must be > 0")
	}
	if !contains(supportedUIModes, cfg.UI.Mode) {
		collector.add("ui.mode", fmt.Sprintf("unsupported mode %q (expected %s)", cfg.UI.Mode, strings.Join(supportedUIModes, ", ")))
	}
	for i, origin := range cfg.Server.AllowedOrigins {
		if strings.TrimSpace(origin) == "" {
			collector.add(fmt.Sprintf("server.allowed_origins[%d]", i), "must not be blank")
		}
	}

	return collector.result()
}

func validateBank(bank, baseDir string, add issueAdder) {
	if strings.TrimSpace(bank) == "" {
		add("bank", "is required")
		return
	}
	path := ResolvePath(baseDir, bank)
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			add("bank", fmt.Sprintf("file %q does not exist", filepath.ToSlash(bank)))
			return
		}
		add("bank", fmt.Sprintf("stat %q: %v", filepath.ToSlash(bank), err))
		return
	}
	if info.IsDir() {
		add("bank", fmt.Sprintf("%q is a directory", filepath.ToSlash(bank)))
	}
}

func contains(values []string, value string) bool {
	for _, candidate := range values {
		if candidate == value {
			return true
		}
	}
	return false
}
