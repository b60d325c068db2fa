package cli

import (
	"context"
	"fmt"
	"io"

	"meister/internal/verbose"
)

// runTags builds the handler for the tags command.
func runTags(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs := newFlagSet(cmd, stderr)
		configPath := fs.String("config", "", "Path to config file")
		verboseFlag := fs.Bool("verbose", false, "Write diagnostic lines to stderr")
		noColor := fs.Bool("no-color", false, "Disable colored output")
		if code, ok := parseFlags(cmd, fs, args, stdout, stderr); !ok {
			return code
		}

		p, err := loadProject(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}
		logger := verbose.New(*verboseFlag, stderr, *noColor || p.config.UI.NoColor)

		ctx := context.Background()
		backend, err := openStore(ctx, p, logger)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to open store: %v\n", err)
			return ExitError
		}
		defer backend.Close()

		tags, err := backend.Tags(ctx)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to list tags: %v\n", err)
			return ExitError
		}
		for _, tag := range tags {
			fmt.Fprintln(stdout, tag)
		}
		return ExitOK
	}
}
