// Package service wires the samplers, the learner, and the git hook
// into the long-running patternd daemon.
package service

import (
	"context"
	"time"

	"github.com/patternd/patternd/internal/autocommit"
	"github.com/patternd/patternd/internal/config"
	"github.com/patternd/patternd/internal/learn"
	"github.com/patternd/patternd/internal/logger"
	"github.com/patternd/patternd/internal/monitor"
)

// shutdownTimeout bounds the final flush and commit once the run
// context is already cancelled.
const shutdownTimeout = 10 * time.Second

// metricsSource is the slice of the monitor the service drives.
type metricsSource interface {
	Start(ctx context.Context) error
	Stop()
	Current() *monitor.Snapshot
}

// Service runs the daemon: it supervises the samplers and feeds the
// learning loop until its context is cancelled.
type Service struct {
	cfg     *config.Config
	log     logger.Logger
	mon     metricsSource
	learner *learn.Learner
}

// New assembles a service from the config: the monitor, the pattern
// store at storage.data_dir/patterns.json, and, when git auto-commit is
// on, the commit hook.
func New(cfg *config.Config, log logger.Logger) *Service {
	if log == nil {
		log = logger.Default()
	}

	store := learn.NewStore(cfg.Storage.PatternFile(), cfg.Learning.MaxPatterns, log)
	var commit learn.Committer
	if cfg.Git.Enabled && cfg.Git.AutoCommit {
		commit = autocommit.New(cfg.Git, log)
	}

	return &Service{
		cfg:     cfg,
		log:     log,
		mon:     monitor.New(cfg.Monitoring, log),
		learner: learn.NewLearner(store, commit, log),
	}
}

// Run starts the samplers and drives the learning loop until ctx is
// cancelled, then shuts down in order: learning loop, samplers, final
// flush. The final flush runs on a fresh timeout context because the
// run context is already dead by then.
func (s *Service) Run(ctx context.Context) error {
	if err := s.mon.Start(ctx); err != nil {
		return err
	}
	s.log.Info("patternd started")

	if s.cfg.Learning.Enabled {
		s.learnLoop(ctx)
	} else {
		s.log.Info("Learning is disabled, sampling only")
		<-ctx.Done()
	}

	s.log.Info("Shutting down")
	s.mon.Stop()

	flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.learner.Close(flushCtx)

	s.log.Info("patternd stopped")
	return nil
}

func (s *Service) learnLoop(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.Learning.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.learner.Process(ctx, s.mon.Current())
		}
	}
}
