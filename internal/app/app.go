package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kyaoi/overviewedit/internal/ui"
)

// Run executes the Bubble Tea program for the overview settings dialog.
func Run(opts Options) error {
	logger, closer, err := newLogger(opts.LogPath)
	if err != nil {
		return err
	}
	defer closer.Close()

	state, err := LoadInitialState(context.Background(), opts, logger)
	if err != nil {
		return err
	}
	return runProgram(state)
}

func runProgram(state ui.State) error {
	model := ui.NewModel(state)
	defer model.Close()
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
