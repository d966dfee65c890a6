// Package tui implements the interactive dashboard behind `tally ui`.
package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/engine"
	"github.com/Veraticus/tally/internal/tui/viewmodel"
	tea "github.com/charmbracelet/bubbletea"
)

// Config holds what the dashboard needs to run.
type Config struct {
	Engine    *engine.Engine
	Notices   *common.NoticeRecorder
	Formatter *viewmodel.Formatter
	// OutputDir receives CSV exports and charts.
	OutputDir string
}

// Run starts the dashboard and blocks until the user quits or ctx ends.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Engine == nil {
		return fmt.Errorf("engine is required")
	}
	if cfg.Formatter == nil {
		return fmt.Errorf("formatter is required")
	}

	p := tea.NewProgram(New(ctx, cfg), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
