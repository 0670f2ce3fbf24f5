package monitor

import (
	"context"
	"sync"

	"github.com/patternd/patternd/internal/config"
	"github.com/patternd/patternd/internal/errors"
	"github.com/patternd/patternd/internal/logger"
)

// Monitor supervises the five sampler goroutines and owns the shared
// snapshot store.
type Monitor struct {
	cfg    config.MonitoringConfig
	log    logger.Logger
	store  *SnapshotStore
	probes probeSet

	mu      sync.Mutex
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running bool
}

// New creates a Monitor collecting on the given intervals.
func New(cfg config.MonitoringConfig, log logger.Logger) *Monitor {
	return &Monitor{
		cfg:    cfg,
		log:    log,
		store:  NewSnapshotStore(),
		probes: defaultProbes(log),
	}
}

// Start launches one goroutine per metric class. The samplers also wind
// down when ctx is cancelled, but Stop must still be called to release
// the snapshot. Starting a running monitor is an error.
func (m *Monitor) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return errors.New(errors.ErrMonitor,
			"Monitor is already running",
			"Stop it before starting it again")
	}

	ctx, m.cancel = context.WithCancel(ctx)
	m.running = true
	m.log.Info("starting system monitor")

	samplers := []func(context.Context){
		m.runCPU,
		m.runMemory,
		m.runDisk,
		m.runNetwork,
		m.runSystem,
	}
	m.wg.Add(len(samplers))
	for _, run := range samplers {
		go func() {
			defer m.wg.Done()
			run(ctx)
		}()
	}

	return nil
}

// Stop cancels all samplers, waits for them to exit, and discards the
// snapshot. Stopping a stopped monitor is a no-op.
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}

	m.cancel()
	m.wg.Wait()
	m.store.Reset()
	m.running = false
	m.log.Info("system monitor stopped")
}

// Current returns a copy of the latest snapshot, or nil before the first
// CPU sample and after Stop.
func (m *Monitor) Current() *Snapshot {
	return m.store.Current()
}
