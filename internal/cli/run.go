package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/patternd/patternd/internal/config"
	"github.com/patternd/patternd/internal/logger"
	"github.com/patternd/patternd/internal/service"
)

// runCommand starts the daemon and blocks until it is interrupted.
func runCommand(configPath string) error {
	log := logger.Default()
	cfg := config.LoadOrDefault(configPath, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return service.New(cfg, log).Run(ctx)
}
