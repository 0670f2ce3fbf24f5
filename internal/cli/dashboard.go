package cli

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/patternd/patternd/internal/config"
	"github.com/patternd/patternd/internal/dashboard"
	"github.com/patternd/patternd/internal/logger"
	"github.com/patternd/patternd/internal/monitor"
)

// dashboardCommand starts a detector-free monitor and renders the TUI
// until the user quits.
func dashboardCommand(interval time.Duration) error {
	cfg := config.LoadOrDefault(Config(), logger.Default())

	// Sampler logging would scribble over the alternate screen.
	mon := monitor.New(cfg.Monitoring, logger.Noop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := mon.Start(ctx); err != nil {
		return err
	}
	defer mon.Stop()

	model := dashboard.NewModel(mon, cfg.Storage.PatternFile(), interval)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
