package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"meister/internal/config"
	"meister/internal/question"
	"meister/internal/store"
	"meister/internal/verbose"
)

// project is a loaded config together with its question bank.
type project struct {
	configPath string
	config     config.Config
	catalog    question.Catalog
}

// resolveConfigPath normalizes a config path or finds it from CWD.
func resolveConfigPath(configPath string) (string, error) {
	if strings.TrimSpace(configPath) == "" {
		return config.FindConfigPath("")
	}
	abs, err := filepath.Abs(configPath)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return abs, nil
}

// loadProject loads the config and the bank it points at.
func loadProject(configPath string) (project, error) {
	resolved, err := resolveConfigPath(configPath)
	if err != nil {
		return project{}, err
	}
	cfg, err := config.Load(resolved)
	if err != nil {
		return project{}, err
	}
	catalog, err := question.LoadBank(config.BankPath(cfg, resolved))
	if err != nil {
		return project{}, err
	}
	return project{configPath: resolved, config: cfg, catalog: catalog}, nil
}

// openStore opens the configured question backend.
func openStore(ctx context.Context, p project, logger *verbose.Logger) (store.Backend, error) {
	driver, err := store.ParseDriver(p.config.Store.Driver)
	if err != nil {
		return nil, err
	}
	backend, err := store.Open(ctx, store.Options{
		Driver:  driver,
		DSN:     p.config.Store.DSN,
		Latency: p.config.Latency(),
	}, p.catalog)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", driver, err)
	}
	logger.Logf(verbose.StyleRun, "Store %s opened (latency %s)", driver, p.config.Latency())
	return backend, nil
}

// newFlagSet creates a flag set that reports errors on stderr.
func newFlagSet(cmd *Command, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

// parseFlags parses args. When ok is false the command returns code.
func parseFlags(cmd *Command, fs *flag.FlagSet, args []string, stdout, stderr io.Writer) (code int, ok bool) {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			printCommandUsage(cmd, stdout)
			return ExitOK, false
		}
		fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
		printCommandUsage(cmd, stderr)
		return ExitUsage, false
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		printCommandUsage(cmd, stderr)
		return ExitUsage, false
	}
	return ExitOK, true
}

// splitTags parses a comma-separated tag list.
func splitTags(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return question.NormalizeTags(strings.Split(value, ","))
}
