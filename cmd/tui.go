package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/ytag/internal/shared"
	"github.com/desertthunder/ytag/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI for tag analysis and playlist creation.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	engine, err := r.ensureEngine(ctx)
	if err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/ytag-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	model := ui.NewModel(ctx, engine)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
