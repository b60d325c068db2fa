package live

import (
	"context"
	"errors"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"meister/internal/question"
)

// Run shows the interactive session on the terminal until the user quits.
func Run(ctx context.Context, stdin io.Reader, stdout io.Writer, pool []question.Question, opts Options) (Summary, error) {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stdin == nil {
		stdin = os.Stdin
	}
	model := NewModel(pool, opts)
	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(stdin),
		tea.WithOutput(stdout),
		tea.WithAltScreen(),
	)
	final, err := program.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return Summary{}, err
	}
	finished, ok := final.(Model)
	if !ok {
		return Summary{}, errors.New("live: unexpected model type")
	}
	if runner := finished.Runner(); runner != nil {
		runner.Close()
	}
	if err != nil {
		return finished.Summary(), ctx.Err()
	}
	return finished.Summary(), nil
}
