package monitor

import (
	"context"
	"time"
)

const (
	// errorBackoff is the pause after a failed tick before the sampler
	// tries again.
	errorBackoff = 5 * time.Second

	// systemInterval is the fixed cadence for the system-wide sampler.
	systemInterval = 5 * time.Second
)

// sleep waits for d or until ctx is cancelled, whichever comes first.
// Returns false on cancellation.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// backoff logs a failed tick and applies the error backoff. Returns false
// when the monitor is shutting down.
func (m *Monitor) backoff(ctx context.Context, what string, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	m.log.Error("%s sampling failed: %v", what, err)
	return sleep(ctx, errorBackoff)
}

func (m *Monitor) runCPU(ctx context.Context) {
	for {
		sample, err := m.collectCPU(ctx)
		if err != nil {
			if !m.backoff(ctx, "cpu", err) {
				return
			}
			continue
		}

		// The first CPU sample allocates the snapshot, so it carries the
		// system-wide seed values along.
		var seed SystemSample
		if !m.store.Seeded() {
			if seed, err = m.probes.system(ctx); err != nil {
				if !m.backoff(ctx, "cpu", err) {
					return
				}
				continue
			}
		}
		m.store.RecordCPU(sample, seed)

		if !sleep(ctx, m.cfg.CPUInterval) {
			return
		}
	}
}

func (m *Monitor) collectCPU(ctx context.Context) (CPUSample, error) {
	usage, err := m.probes.cpuPercent(ctx)
	if err != nil {
		return CPUSample{}, err
	}
	load, err := m.probes.loadAvg(ctx)
	if err != nil {
		return CPUSample{}, err
	}
	return CPUSample{UsagePercent: usage, Load: load}, nil
}

func (m *Monitor) runMemory(ctx context.Context) {
	for {
		percent, err := m.probes.memPercent(ctx)
		if err != nil {
			if !m.backoff(ctx, "memory", err) {
				return
			}
			continue
		}
		if !m.store.RecordMemory(percent) {
			m.log.Debug("memory sample dropped, no snapshot yet")
		}

		if !sleep(ctx, m.cfg.MemoryInterval) {
			return
		}
	}
}

func (m *Monitor) runDisk(ctx context.Context) {
	for {
		usage, err := m.probes.diskUsage(ctx)
		if err != nil {
			if !m.backoff(ctx, "disk", err) {
				return
			}
			continue
		}
		if !m.store.RecordDisk(usage) {
			m.log.Debug("disk sample dropped, no snapshot yet")
		}

		if !sleep(ctx, m.cfg.DiskInterval) {
			return
		}
	}
}

// runNetwork is the only stateful sampler: it keeps the previous counter
// map across iterations and reports rates as (current-previous)/interval.
// It seeds the baseline before the loop and sleeps first, so the first
// reported rates always have a full interval behind them.
func (m *Monitor) runNetwork(ctx context.Context) {
	prev, err := m.probes.netCounters(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		m.log.Warn("network baseline unavailable: %v", err)
		prev = nil
	}

	for {
		if !sleep(ctx, m.cfg.NetworkInterval) {
			return
		}

		curr, err := m.probes.netCounters(ctx)
		if err != nil {
			if !m.backoff(ctx, "network", err) {
				return
			}
			continue
		}

		if !m.store.RecordNetwork(deriveRates(prev, curr, m.cfg.NetworkInterval)) {
			m.log.Debug("network sample dropped, no snapshot yet")
		}
		prev = curr
	}
}

func (m *Monitor) runSystem(ctx context.Context) {
	for {
		sample, err := m.probes.system(ctx)
		if err != nil {
			if !m.backoff(ctx, "system", err) {
				return
			}
			continue
		}
		m.store.RecordSystem(sample)

		if !sleep(ctx, systemInterval) {
			return
		}
	}
}

// deriveRates computes per-second byte rates against the previous counter
// map. Interfaces with no previous entry are omitted this tick so a fresh
// interface never reports a spurious first-sample delta; a counter reset
// clamps to a zero rate instead of going negative.
func deriveRates(prev, curr map[string]IOCounters, interval time.Duration) map[string]InterfaceIO {
	io := make(map[string]InterfaceIO, len(curr))
	secs := interval.Seconds()

	for name, c := range curr {
		p, ok := prev[name]
		if !ok {
			continue
		}
		io[name] = InterfaceIO{
			BytesSent:   c.BytesSent,
			BytesRecv:   c.BytesRecv,
			PacketsSent: c.PacketsSent,
			PacketsRecv: c.PacketsRecv,
			ErrIn:       c.ErrIn,
			ErrOut:      c.ErrOut,
			DropIn:      c.DropIn,
			DropOut:     c.DropOut,
			SentPerSec:  rate(c.BytesSent, p.BytesSent, secs),
			RecvPerSec:  rate(c.BytesRecv, p.BytesRecv, secs),
		}
	}
	return io
}

func rate(curr, prev uint64, secs float64) float64 {
	if secs <= 0 || curr < prev {
		return 0
	}
	return float64(curr-prev) / secs
}
