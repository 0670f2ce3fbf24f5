package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/patternd/patternd/internal/logger"
)

// IOCounters holds raw cumulative counters for one network interface.
type IOCounters struct {
	BytesSent   uint64
	BytesRecv   uint64
	PacketsSent uint64
	PacketsRecv uint64
	ErrIn       uint64
	ErrOut      uint64
	DropIn      uint64
	DropOut     uint64
}

// probeSet bundles the collection calls the samplers make. Tests swap in
// fakes; production uses the gopsutil-backed defaults.
type probeSet struct {
	// cpuPercent blocks for the one-second sampling window.
	cpuPercent  func(ctx context.Context) (float64, error)
	loadAvg     func(ctx context.Context) (LoadAverages, error)
	memPercent  func(ctx context.Context) (float64, error)
	diskUsage   func(ctx context.Context) (map[string]float64, error)
	netCounters func(ctx context.Context) (map[string]IOCounters, error)
	system      func(ctx context.Context) (SystemSample, error)
}

func defaultProbes(log logger.Logger) probeSet {
	return probeSet{
		cpuPercent: func(ctx context.Context) (float64, error) {
			percents, err := cpu.PercentWithContext(ctx, time.Second, false)
			if err != nil {
				return 0, err
			}
			if len(percents) == 0 {
				return 0, fmt.Errorf("no cpu usage reported")
			}
			return percents[0], nil
		},
		loadAvg: func(ctx context.Context) (LoadAverages, error) {
			avg, err := load.AvgWithContext(ctx)
			if err != nil {
				return LoadAverages{}, err
			}
			return LoadAverages{
				OneMin:     avg.Load1,
				FiveMin:    avg.Load5,
				FifteenMin: avg.Load15,
			}, nil
		},
		memPercent: func(ctx context.Context) (float64, error) {
			vm, err := mem.VirtualMemoryWithContext(ctx)
			if err != nil {
				return 0, err
			}
			return vm.UsedPercent, nil
		},
		diskUsage: func(ctx context.Context) (map[string]float64, error) {
			parts, err := disk.PartitionsWithContext(ctx, false)
			if err != nil {
				return nil, err
			}
			usage := make(map[string]float64, len(parts))
			for _, part := range parts {
				u, err := disk.UsageWithContext(ctx, part.Mountpoint)
				if err != nil {
					// Pseudo-filesystems and stale mounts fail here; skip them.
					log.Debug("disk usage unavailable for %s: %v", part.Mountpoint, err)
					continue
				}
				usage[part.Mountpoint] = u.UsedPercent
			}
			return usage, nil
		},
		netCounters: func(ctx context.Context) (map[string]IOCounters, error) {
			stats, err := net.IOCountersWithContext(ctx, true)
			if err != nil {
				return nil, err
			}
			counters := make(map[string]IOCounters, len(stats))
			for _, st := range stats {
				counters[st.Name] = IOCounters{
					BytesSent:   st.BytesSent,
					BytesRecv:   st.BytesRecv,
					PacketsSent: st.PacketsSent,
					PacketsRecv: st.PacketsRecv,
					ErrIn:       st.Errin,
					ErrOut:      st.Errout,
					DropIn:      st.Dropin,
					DropOut:     st.Dropout,
				}
			}
			return counters, nil
		},
		system: func(ctx context.Context) (SystemSample, error) {
			pids, err := process.PidsWithContext(ctx)
			if err != nil {
				return SystemSample{}, err
			}
			users, err := host.UsersWithContext(ctx)
			if err != nil {
				return SystemSample{}, err
			}
			boot, err := host.BootTimeWithContext(ctx)
			if err != nil {
				return SystemSample{}, err
			}
			return SystemSample{
				Processes: len(pids),
				Users:     len(users),
				BootTime:  time.Unix(int64(boot), 0),
			}, nil
		},
	}
}
