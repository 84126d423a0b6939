package main

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/packdex/internal/catalog"
	"github.com/desertthunder/packdex/internal/shared"
	"github.com/desertthunder/packdex/internal/tasks"
	"github.com/desertthunder/packdex/internal/ui"
	"github.com/urfave/cli/v3"
)

// controllerFor returns the search controller for a front end. Admin
// loads cap at the admin limit; catalog mode shares the Runner's
// controller and its higher customer-facing limit.
func (r *Runner) controllerFor(mode ui.Mode) *catalog.Controller {
	if mode == ui.AdminMode {
		return catalog.NewController(r.svc, catalog.NewStore(), r.logger, r.config.API.AdminLimit)
	}
	return r.controller
}

// TUI launches the interactive catalog or admin console.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	var mode ui.Mode
	switch cmd.String("mode") {
	case "admin":
		mode = ui.AdminMode
	case "catalog", "cliente", "":
		mode = ui.CatalogMode
	default:
		return fmt.Errorf("%w: mode must be catalog or admin", shared.ErrInvalidFlag)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(r.config.Logging.TUIPath)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	var poller *tasks.StatusPoller
	if mode == ui.AdminMode {
		interval := time.Duration(r.config.API.PollSeconds) * time.Second
		poller = tasks.NewStatusPoller(r.svc, fileLogger, interval)
	}

	model := ui.NewModel(ctx, ui.ModelOpts{
		Mode:       mode,
		Service:    r.svc,
		Controller: r.controllerFor(mode),
		Poller:     poller,
		Covers:     r.covers,
		Config:     r.config,
		Logger:     fileLogger,
	})

	p := tea.NewProgram(model)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
