package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"tally/internal/driver"
	"tally/internal/source"
	"tally/internal/ui"
)

type evalOutcome struct {
	fs      *source.FileSet
	results []*driver.Result
	err     error
}

// runEvalWithUI evaluates files in the background while the live view
// shows each file's state and value count on stderr.
func runEvalWithUI(ctx context.Context, title string, files []string, opts driver.Options) (*source.FileSet, []*driver.Result, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan evalOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Sink = driver.ChannelSink{Ch: events}
		fs, results, err := driver.EvaluateFiles(ctx, files, optsCopy)
		close(events)
		outcomeCh <- evalOutcome{fs: fs, results: results, err: err}
	}()

	model := ui.NewEvalView(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithContext(ctx))
	_, uiErr := program.Run()

	// UI мог выйти раньше (q / ctrl+c): дочитываем канал, чтобы воркеры не встали
	for range events {
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fs, outcome.results, uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}
