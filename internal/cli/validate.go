package cli

import (
	"fmt"
	"io"
)

// runValidate builds the handler for the validate command.
func runValidate(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs := newFlagSet(cmd, stderr)
		configPath := fs.String("config", "", "Path to config file (default: search for .meister/config.yml)")
		if code, ok := parseFlags(cmd, fs, args, stdout, stderr); !ok {
			return code
		}

		p, err := loadProject(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%s\n", err.Error())
			return ExitError
		}

		fmt.Fprintln(stdout, "Config OK")
		fmt.Fprintf(stdout, "Bank OK: %d questions, %d tags\n", len(p.catalog.Questions), len(p.catalog.Tags))
		return ExitOK
	}
}
