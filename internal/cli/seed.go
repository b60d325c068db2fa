package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"meister/internal/store"
	"meister/internal/verbose"
)

// runSeed builds the handler for the seed command.
func runSeed(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs := newFlagSet(cmd, stderr)
		configPath := fs.String("config", "", "Path to config file")
		driverFlag := fs.String("driver", "", "SQL driver override (sqlite|duckdb)")
		dsnFlag := fs.String("dsn", "", "Data source name override")
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

		driverName := p.config.Store.Driver
		dsn := p.config.Store.DSN
		if strings.TrimSpace(*driverFlag) != "" {
			driverName = *driverFlag
			dsn = ""
		}
		if strings.TrimSpace(*dsnFlag) != "" {
			dsn = *dsnFlag
		}
		driver, err := store.ParseDriver(driverName)
		if err != nil {
			fmt.Fprintf(stderr, "Invalid driver: %v\n", err)
			return ExitUsage
		}
		if driver == store.DriverMemory {
			fmt.Fprintln(stderr, "The memory store serves the bank directly; pass --driver sqlite or --driver duckdb to seed a database.")
			return ExitUsage
		}

		ctx := context.Background()
		sqlStore, err := store.OpenSQL(ctx, driver, dsn)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to open %s store: %v\n", driver, err)
			return ExitError
		}
		defer sqlStore.Close()

		if err := sqlStore.Seed(ctx, p.catalog); err != nil {
			fmt.Fprintf(stderr, "Seed failed: %v\n", err)
			return ExitError
		}
		logger.Logf(verbose.StyleResult, "Seeded %s store %s", driver, verbose.FormatCounts(map[string]int{
			"questions": len(p.catalog.Questions),
			"tags":      len(p.catalog.Tags),
		}))
		fmt.Fprintf(stdout, "Seeded %d questions and %d tags into %s\n", len(p.catalog.Questions), len(p.catalog.Tags), driver)
		return ExitOK
	}
}
