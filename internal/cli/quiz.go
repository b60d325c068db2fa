package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"meister/internal/question"
	"meister/internal/quiz"
	"meister/internal/ui/live"
	"meister/internal/ui/plain"
	"meister/internal/verbose"
)

// Test seams for the two front ends and their input.
var (
	runLive             = live.Run
	runPlain            = plain.Run
	quizInput io.Reader = os.Stdin
)

// quizFlags holds the flags shared by quiz and practice.
type quizFlags struct {
	configPath string
	tags       string
	count      int
	all        bool
	total      int
	uiMode     string
	noColor    bool
	verbose    bool
	seed       int64
}

func (f *quizFlags) register(fs *flag.FlagSet, practice bool) {
	fs.StringVar(&f.configPath, "config", "", "Path to config file")
	fs.StringVar(&f.tags, "tags", "", "Comma-separated tags; questions must carry all of them")
	fs.IntVar(&f.count, "n", 0, "Pick this many random questions")
	fs.IntVar(&f.count, "count", 0, "Pick this many random questions")
	fs.BoolVar(&f.all, "all", false, "Use every matching question")
	if !practice {
		fs.IntVar(&f.total, "total", -1, "Total time budget in seconds (0 disables, default from config)")
	}
	fs.StringVar(&f.uiMode, "ui", "", "Output mode: auto|live|plain (default from config)")
	fs.BoolVar(&f.noColor, "no-color", false, "Disable colored output")
	fs.BoolVar(&f.verbose, "verbose", false, "Write diagnostic lines to stderr")
	fs.Int64Var(&f.seed, "seed", 0, "Random seed for question picks (default: time based)")
}

// runQuiz builds the handler for quiz or practice.
func runQuiz(practice bool) func(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
		return func(args []string, stdout, stderr io.Writer) int {
			if wantsHelp(args) {
				printCommandUsage(cmd, stdout)
				return ExitOK
			}

			var flags quizFlags
			fs := newFlagSet(cmd, stderr)
			flags.register(fs, practice)
			if code, ok := parseFlags(cmd, fs, args, stdout, stderr); !ok {
				return code
			}
			if flags.count < 0 {
				fmt.Fprintln(stderr, "invalid arguments: -n must be positive")
				return ExitUsage
			}
			if flags.count > 0 && flags.all {
				fmt.Fprintln(stderr, "invalid arguments: -n and --all are mutually exclusive")
				return ExitUsage
			}

			p, err := loadProject(flags.configPath)
			if err != nil {
				fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
				return ExitError
			}
			noColor := flags.noColor || p.config.UI.NoColor
			logger := verbose.New(flags.verbose, stderr, noColor)

			decision, err := resolveUIMode(flags.uiMode, p.config.UI.Mode, flags.verbose, quizInput, stdout)
			if err != nil {
				fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
				return ExitUsage
			}
			if decision.warning != "" {
				fmt.Fprintln(stderr, decision.warning)
			}

			total := p.config.Quiz.TotalDuration
			if flags.total >= 0 {
				total = flags.total
			}
			if practice {
				total = 0
			}
			seed := flags.seed
			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			rng := rand.New(rand.NewSource(seed))

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			tags := splitTags(flags.tags)
			pool, err := fetchPool(ctx, p, tags, logger)
			if err != nil {
				fmt.Fprintf(stderr, "Failed to fetch questions: %v\n", err)
				return ExitError
			}

			var (
				finished bool
				result   quiz.Result
				runErr   error
			)
			if decision.useLive {
				summary, err := runLive(ctx, quizInput, stdout, pool, live.Options{
					NoColor:         noColor,
					TotalDuration:   total,
					Practice:        practice,
					TransitionDelay: p.config.TransitionDelay(),
					PageSize:        p.config.Quiz.PageSize,
					AutoSelect:      flags.count,
					SelectAll:       flags.all,
					Rand:            rng,
				})
				finished, result, runErr = summary.Finished, summary.Result, err
			} else {
				questions := pool
				if flags.count > 0 {
					questions, _ = quiz.NewSelector(pool, p.config.Quiz.PageSize).AutoSelect(flags.count, rng)
				}
				summary, err := runPlain(ctx, quizInput, stdout, questions, plain.Options{
					TotalDuration: total,
					Practice:      practice,
					Logger:        logger,
				})
				finished, result, runErr = summary.Finished, summary.Result, err
			}

			if runErr != nil {
				if errors.Is(runErr, context.Canceled) {
					fmt.Fprintln(stderr, "Quiz interrupted.")
					return ExitError
				}
				fmt.Fprintf(stderr, "Quiz failed: %v\n", runErr)
				return ExitError
			}
			if finished {
				logger.Logf(verbose.StyleResult, "Score %d/%d (%.0f%%)", result.Correct, result.Total, result.Percentage)
			}
			return ExitOK
		}
	}
}

// fetchPool loads the questions matching tags from the configured store.
func fetchPool(ctx context.Context, p project, tags []string, logger *verbose.Logger) ([]question.Question, error) {
	backend, err := openStore(ctx, p, logger)
	if err != nil {
		return nil, err
	}
	defer backend.Close()

	started := time.Now()
	pool, err := backend.FetchQuestions(ctx, tags, 1)
	if err != nil {
		return nil, err
	}
	logger.Logf(verbose.StyleRun, "Fetched %d questions for %s in %s", len(pool), verbose.FormatTags(tags), time.Since(started).Round(time.Millisecond))
	return pool, nil
}
