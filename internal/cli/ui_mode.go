package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// UI modes accepted by --ui and ui.mode.
const (
	uiModeAuto  = "auto"
	uiModeLive  = "live"
	uiModePlain = "plain"
)

// uiModeDecision captures whether to use the live UI.
type uiModeDecision struct {
	useLive bool
	warning string
}

// isTerminal reports whether a stream is a TTY.
var isTerminal = defaultIsTerminal

// resolveUIMode determines whether to enable the live UI. A flag value wins
// over the configured mode. The live UI needs both streams on a terminal and
// is never combined with verbose output.
func resolveUIMode(flagMode, configMode string, verbose bool, stdin io.Reader, stdout io.Writer) (uiModeDecision, error) {
	mode := strings.ToLower(strings.TrimSpace(flagMode))
	if mode == "" {
		mode = strings.ToLower(strings.TrimSpace(configMode))
	}
	if mode == "" {
		mode = uiModeAuto
	}
	interactive := isTerminal(stdin) && isTerminal(stdout)
	switch mode {
	case uiModeAuto:
		return uiModeDecision{useLive: interactive && !verbose}, nil
	case uiModeLive:
		if verbose {
			return uiModeDecision{
				warning: "Live UI is disabled with --verbose; using plain output.",
			}, nil
		}
		if interactive {
			return uiModeDecision{useLive: true}, nil
		}
		return uiModeDecision{
			warning: "Live UI requested but the terminal is not interactive; falling back to plain output.",
		}, nil
	case uiModePlain:
		return uiModeDecision{}, nil
	default:
		return uiModeDecision{}, fmt.Errorf("invalid ui mode %q (expected auto|live|plain)", mode)
	}
}

// defaultIsTerminal inspects a stream for TTY support.
func defaultIsTerminal(stream any) bool {
	if stream == nil {
		return false
	}
	if file, ok := stream.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	if fder, ok := stream.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(fder.Fd()))
	}
	return false
}
