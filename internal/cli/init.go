package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"meister/internal/config"
	"meister/internal/question"
)

// defaultSQLiteFile is the database file created by `meister seed` with the
// sqlite driver and no DSN.
const defaultSQLiteFile = "meister.db"

// runInit builds the handler for the init command.
func runInit(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs := newFlagSet(cmd, stderr)
		dir := fs.String("dir", "", "Project directory (default: current directory)")
		assumeYes := fs.Bool("yes", false, "Skip confirmation prompts")
		if code, ok := parseFlags(cmd, fs, args, stdout, stderr); !ok {
			return code
		}

		root := strings.TrimSpace(*dir)
		if root == "" {
			wd, err := os.Getwd()
			if err != nil {
				fmt.Fprintf(stderr, "Init failed: %v\n", err)
				return ExitError
			}
			root = wd
		}
		root, err := filepath.Abs(root)
		if err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}
		if info, err := os.Stat(config.ConfigPath(root)); err == nil && !info.IsDir() {
			fmt.Fprintf(stderr, "Init failed: config file already exists at %q\n", config.ConfigPath(root))
			return ExitError
		}

		in := initInput
		if in == nil {
			in = os.Stdin
		}
		reader := bufio.NewReader(in)

		if !*assumeYes {
			confirm, err := promptYesNo(reader, stdout, fmt.Sprintf("Initialize meister in %s?", config.ConfigDir(root)), true)
			if err != nil {
				fmt.Fprintf(stderr, "Init failed: %v\n", err)
				return ExitError
			}
			if !confirm {
				fmt.Fprintln(stderr, "Init cancelled.")
				return ExitError
			}
		}

		addGitignore := false
		if isGitRepo(root) {
			addGitignore = true
			if !*assumeYes {
				answer, err := promptYesNo(reader, stdout, fmt.Sprintf("Add %s to .gitignore?", defaultSQLiteFile), true)
				if err != nil {
					fmt.Fprintf(stderr, "Init failed: %v\n", err)
					return ExitError
				}
				addGitignore = answer
			}
		}

		result, err := config.Scaffold(root, question.SampleBank())
		if err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Wrote %s\n", result.ConfigPath)
		fmt.Fprintf(stdout, "Wrote %s\n", result.BankPath)
		if addGitignore {
			updated, err := addGitignoreEntry(root, defaultSQLiteFile)
			if err != nil {
				fmt.Fprintf(stderr, "Init failed: update .gitignore: %v\n", err)
				return ExitError
			}
			if updated {
				fmt.Fprintf(stdout, "Updated %s\n", filepath.Join(root, ".gitignore"))
			}
		}
		return ExitOK
	}
}

// initInput allows tests to override stdin for init prompts.
var initInput io.Reader = os.Stdin

// isGitRepo reports whether root holds a git checkout.
func isGitRepo(root string) bool {
	_, err := os.Stat(filepath.Join(root, ".git"))
	return err == nil
}
