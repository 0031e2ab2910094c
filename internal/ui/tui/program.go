package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"vocab-quiz/internal/app"
	"vocab-quiz/internal/quiz"
)

// Run drives the terminal UI until the user quits and returns the final session, if any.
func Run(ctx context.Context, service *app.QuizService, in io.Reader, out io.Writer, opts Options) (*quiz.Session, error) {
	model := NewModel(ctx, service, opts)
	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)
	final, err := program.Run()
	if err != nil {
		return nil, err
	}
	if m, ok := final.(Model); ok {
		return m.Session(), nil
	}
	return nil, nil
}
