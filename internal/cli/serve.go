package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"meister/internal/api"
	"meister/internal/verbose"
)

// serveAPI is a test seam for running the HTTP server.
var serveAPI = api.Serve

// runServe builds the handler for the serve command.
func runServe(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs := newFlagSet(cmd, stderr)
		configPath := fs.String("config", "", "Path to config file")
		addr := fs.String("addr", "", "Address to listen on (default from config)")
		verboseFlag := fs.Bool("verbose", false, "Log requests to stderr")
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

		listenAddr := p.config.Server.Addr
		if strings.TrimSpace(*addr) != "" {
			listenAddr = *addr
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		backend, err := openStore(ctx, p, logger)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to open store: %v\n", err)
			return ExitError
		}
		defer backend.Close()

		handler, err := api.NewHandler(api.Config{
			Store:          backend,
			AllowedOrigins: p.config.Server.AllowedOrigins,
			Logger:         logger,
		})
		if err != nil {
			fmt.Fprintf(stderr, "Failed to build handler: %v\n", err)
			return ExitError
		}

		err = serveAPI(ctx, api.ServeConfig{
			Addr:    listenAddr,
			Handler: handler,
			Ready: func(bound string) {
				fmt.Fprintf(stdout, "Serving questions at http://%s\n", bound)
			},
		})
		if err != nil {
			fmt.Fprintf(stderr, "Server error: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}
