package cli

import (
	"fmt"
	"io"
)

const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

type Command struct {
	Name    string
	Summary string
	Usage   []string
	Run     func(args []string, stdout, stderr io.Writer) int
}

func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stdout)
		return ExitUsage
	}
	if isHelpArg(args[0]) {
		printUsage(stdout)
		return ExitOK
	}

	cmd := findCommand(args[0])
	if cmd == nil {
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
		printUsage(stderr)
		return ExitUsage
	}

	return cmd.Run(args[1:], stdout, stderr)
}

func findCommand(name string) *Command {
	for _, cmd := range commands {
		if cmd.Name == name {
			return cmd
		}
	}
	return nil
}

func isHelpArg(arg string) bool {
	switch arg {
	case "-h", "--help", "help":
		return true
	default:
		return false
	}
}

func wantsHelp(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "-h", "--help":
			return true
		}
	}
	return false
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  meister <command> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-9s %s\n", cmd.Name, cmd.Summary)
	}
	fmt.Fprintln(w, "\nUse \"meister <command> --help\" for more information.")
}

func printCommandUsage(cmd *Command, w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	for _, line := range cmd.Usage {
		fmt.Fprintf(w, "  %s\n", line)
	}
	if cmd.Summary != "" {
		fmt.Fprintf(w, "\n%s\n", cmd.Summary)
	}
}

func command(name, summary string, usage []string, runner func(cmd *Command) func(args []string, stdout, stderr io.Writer) int) *Command {
	cmd := &Command{
		Name:    name,
		Summary: summary,
		Usage:   usage,
	}
	cmd.Run = runner(cmd)
	return cmd
}

var commands = []*Command{
	command("init", "Scaffold .meister/config.yml and a sample question bank", []string{
		"meister init [--dir <path>] [--yes]",
	}, runInit),
	command("validate", "Validate the config and its question bank", []string{
		"meister validate [--config <path>]",
	}, runValidate),
	command("tags", "List the tag vocabulary", []string{
		"meister tags [--config <path>]",
	}, runTags),
	command("questions", "List questions matching all given tags", []string{
		"meister questions [--config <path>] [--tags a,b] [--json]",
	}, runQuestions),
	command("seed", "Load the question bank into a SQL store", []string{
		"meister seed [--config <path>] [--driver sqlite|duckdb] [--dsn <dsn>]",
	}, runSeed),
	command("quiz", "Take a timed quiz", []string{
		"meister quiz [--tags a,b] [-n <count> | --all] [--total <seconds>] [--ui auto|live|plain]",
	}, runQuiz(false)),
	command("practice", "Practice without timers, revealing each answer", []string{
		"meister practice [--tags a,b] [-n <count> | --all] [--ui auto|live|plain]",
	}, runQuiz(true)),
	command("serve", "Serve the question API over HTTP", []string{
		"meister serve [--config <path>] [--addr <host:port>]",
	}, runServe),
}
