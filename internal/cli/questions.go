package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"meister/internal/question"
	"meister/internal/verbose"
)

// runQuestions builds the handler for the questions command.
func runQuestions(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs := newFlagSet(cmd, stderr)
		configPath := fs.String("config", "", "Path to config file")
		tagsFlag := fs.String("tags", "", "Comma-separated tags; questions must carry all of them")
		page := fs.Int("page", 1, "Result page")
		asJSON := fs.Bool("json", false, "Print bank records as JSON")
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

		tags := splitTags(*tagsFlag)
		questions, err := backend.FetchQuestions(ctx, tags, *page)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to fetch questions: %v\n", err)
			return ExitError
		}
		logger.Logf(verbose.StyleResult, "Fetched %d questions for %s", len(questions), verbose.FormatTags(tags))

		if *asJSON {
			records := make([]question.BankRecord, 0, len(questions))
			for _, q := range questions {
				records = append(records, q.Record())
			}
			encoder := json.NewEncoder(stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(records); err != nil {
				fmt.Fprintf(stderr, "Failed to encode questions: %v\n", err)
				return ExitError
			}
			return ExitOK
		}
		if len(questions) == 0 {
			fmt.Fprintln(stdout, "No questions found for the selected tags.")
			return ExitOK
		}
		for _, q := range questions {
			fmt.Fprintf(stdout, "%-4s %-16s %-40s %s\n", q.ID, q.Kind(), strings.Join(q.Tags, ","), q.Text)
		}
		return ExitOK
	}
}
