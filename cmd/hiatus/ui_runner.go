package main

import (
	"context"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atanasgiliev/hiatus-detector/internal/driver"
	"github.com/atanasgiliev/hiatus-detector/internal/progress"
	"github.com/atanasgiliev/hiatus-detector/internal/rules"
	"github.com/atanasgiliev/hiatus-detector/internal/ui"
)

type dirOutcome struct {
	result *driver.DirResult
	err    error
}

// runDetectDirWithUI runs DetectDir while a Bubble Tea program renders its
// progress events. The program quits when the events channel is closed.
func runDetectDirWithUI(ctx context.Context, title, dir string, files []string, table *rules.Table, opts driver.DirOptions) (*driver.DirResult, error) {
	events := make(chan progress.Event, 256)
	outcomeCh := make(chan dirOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = progress.ChannelSink{Ch: events}
		res, err := driver.DetectDir(ctx, dir, table, optsCopy)
		outcomeCh <- dirOutcome{result: res, err: err}
		close(events)
	}()

	names := make([]string, len(files))
	for i, f := range files {
		rel, err := filepath.Rel(dir, f)
		if err != nil {
			rel = f
		}
		names[i] = filepath.ToSlash(rel)
	}

	model := ui.NewProgressModel(title, names, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithContext(ctx))
	_, uiErr := program.Run()
	if uiErr != nil {
		// дочитываем события, чтобы DetectDir не заблокировался
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil && ctx.Err() == nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
