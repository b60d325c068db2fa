// Package verbose writes opt-in diagnostic lines for the CLI.
package verbose

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"golang.org/x/term"
)

const prefix = "[verbose]"

const (
	ansiReset  = "\x1b[0m"
	ansiBold   = "\x1b[1m"
	ansiDim    = "\x1b[2m"
	ansiGray   = "\x1b[90m"
	ansiGreen  = "\x1b[32m"
	ansiRed    = "\x1b[31m"
	ansiBlue   = "\x1b[34m"
	ansiYellow = "\x1b[33m"
)

// Style selects the color of a line.
type Style int

const (
	StyleDefault Style = iota
	StyleRun
	StyleResult
	StyleTimer
	StyleError
)

var isTerminal = func(fd int) bool { return term.IsTerminal(fd) }

// Logger writes prefixed lines when enabled. A nil Logger discards output.
type Logger struct {
	enabled bool
	writer  io.Writer
	palette palette
}

// New creates a logger. Writes are serialized.
func New(enabled bool, writer io.Writer, noColor bool) *Logger {
	if writer == nil {
		return &Logger{}
	}
	return &Logger{
		enabled: enabled,
		writer:  &lockedWriter{w: writer},
		palette: paletteFor(writer, noColor),
	}
}

// Enabled reports whether lines are written.
func (l *Logger) Enabled() bool {
	return l != nil && l.enabled && l.writer != nil
}

// Logf writes one styled line.
func (l *Logger) Logf(style Style, format string, args ...any) {
	if !l.Enabled() {
		return
	}
	line := fmt.Sprintf(format, args...)
	fmt.Fprintf(l.writer, "%s %s\n", l.palette.prefix(prefix), l.palette.apply(style, line))
}

// Printf writes an unstyled line.
func (l *Logger) Printf(format string, args ...any) {
	l.Logf(StyleDefault, format, args...)
}

// Errorf writes an error line.
func (l *Logger) Errorf(format string, args ...any) {
	l.Logf(StyleError, format, args...)
}

// Writer returns an io.Writer that logs each written line.
func (l *Logger) Writer(style Style) io.Writer {
	return lineWriter{logger: l, style: style}
}

// FormatTags renders a tag filter for log lines.
func FormatTags(tags []string) string {
	if len(tags) == 0 {
		return "none"
	}
	return strings.Join(tags, ",")
}

// FormatCounts renders counters as sorted key=value pairs.
func FormatCounts(counts map[string]int) string {
	if len(counts) == 0 {
		return "none"
	}
	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", key, counts[key]))
	}
	return strings.Join(parts, " ")
}

type lineWriter struct {
	logger *Logger
	style  Style
}

func (w lineWriter) Write(p []byte) (int, error) {
	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		if line != "" {
			w.logger.Logf(w.style, "%s", line)
		}
	}
	return len(p), nil
}

type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

type palette struct {
	enabled bool
}

func paletteFor(writer io.Writer, noColor bool) palette {
	if noColor {
		return palette{}
	}
	return palette{enabled: ShouldUseStyling(writer)}
}

// ShouldUseStyling reports whether ANSI styling suits writer.
func ShouldUseStyling(writer io.Writer) bool {
	if writer == nil {
		return false
	}
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	if strings.EqualFold(os.Getenv("CLICOLOR"), "0") {
		return false
	}
	if file, ok := writer.(*os.File); ok {
		return isTerminal(int(file.Fd()))
	}
	if fder, ok := writer.(interface{ Fd() uintptr }); ok {
		return isTerminal(int(fder.Fd()))
	}
	return false
}

func (p palette) prefix(text string) string {
	if !p.enabled {
		return text
	}
	return ansiDim + ansiGray + text + ansiReset
}

func (p palette) apply(style Style, text string) string {
	if !p.enabled {
		return text
	}
	switch style {
	case StyleRun:
		return ansiBold + ansiBlue + text + ansiReset
	case StyleResult:
		return ansiBold + ansiGreen + text + ansiReset
	case StyleTimer:
		return ansiYellow + text + ansiReset
	case StyleError:
		return ansiBold + ansiRed + text + ansiReset
	default:
		return text
	}
}
