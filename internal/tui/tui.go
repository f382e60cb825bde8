// Package tui is the interactive terminal viewer of a fan chart. The chart
// is drawn with half blocks; the mouse expands sectors, rotates and moves
// the chart, and a context menu edits the database.
package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/papapumpkin/fanchart/internal/fan"
	"github.com/papapumpkin/fanchart/internal/genealogy"
	"github.com/papapumpkin/fanchart/internal/telemetry"
)

// Program is an alias for tea.Program, exposed so callers don't need
// to import bubbletea directly.
type Program = tea.Program

// Options configures a viewer.
type Options struct {
	// Chart must have been Reset.
	Chart *fan.Chart
	DB    genealogy.Database
	// Writer is nil for a read-only viewer.
	Writer genealogy.Writer
	Events *telemetry.Emitter
	// Changes fires when the database changed on disk.
	Changes <-chan struct{}
}

// NewModel returns the viewer model. It is exported for embedding and
// tests; most callers use Run.
func NewModel(ctx context.Context, o Options) Model {
	return newModel(newSession(ctx, o.Chart, o.DB, o.Writer, o.Events), o.Changes)
}

// NewProgram creates a bubbletea program on the alternate screen with all
// mouse motion reported, so hovering works without a button held.
func NewProgram(ctx context.Context, o Options, opts ...tea.ProgramOption) *Program {
	allOpts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	}
	allOpts = append(allOpts, opts...)
	return tea.NewProgram(NewModel(ctx, o), allOpts...)
}

// Run shows the viewer and blocks until the user quits.
func Run(ctx context.Context, o Options) error {
	if _, err := NewProgram(ctx, o).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
