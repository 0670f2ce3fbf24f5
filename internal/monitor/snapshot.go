package monitor

import "time"

// Snapshot is the merged, most-recent view of host metrics. Each sampler
// refreshes only the fields it owns; the system sampler refreshes the
// timestamp and the process/user counts.
type Snapshot struct {
	// Timestamp is the instant of the last system-level refresh.
	Timestamp time.Time

	// CPUPercent is total CPU utilization over the last sampling window, 0-100.
	CPUPercent float64

	// MemoryPercent is virtual memory utilization, 0-100.
	MemoryPercent float64

	// DiskUsage maps mount point to percent used.
	DiskUsage map[string]float64

	// NetworkIO maps interface name to cumulative counters and derived rates.
	// Interfaces appear here only once a rate baseline exists for them.
	NetworkIO map[string]InterfaceIO

	// Processes is the number of running processes.
	Processes int

	// LoadAvg holds the 1/5/15 minute load averages.
	LoadAvg LoadAverages

	// BootTime is when the host booted.
	BootTime time.Time

	// Users is the number of logged-in user sessions.
	Users int
}

// LoadAverages holds the classic three load average figures.
type LoadAverages struct {
	OneMin     float64
	FiveMin    float64
	FifteenMin float64
}

// InterfaceIO holds cumulative per-interface counters plus per-second rates
// derived from the previous sample.
type InterfaceIO struct {
	BytesSent   uint64
	BytesRecv   uint64
	PacketsSent uint64
	PacketsRecv uint64
	ErrIn       uint64
	ErrOut      uint64
	DropIn      uint64
	DropOut     uint64

	// SentPerSec and RecvPerSec are byte rates over the last interval.
	// Clamped to zero when a counter reset would produce a negative delta.
	SentPerSec float64
	RecvPerSec float64
}

// Clone returns a deep copy. Mutating the copy never affects the original.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	out := *s
	if s.DiskUsage != nil {
		out.DiskUsage = make(map[string]float64, len(s.DiskUsage))
		for k, v := range s.DiskUsage {
			out.DiskUsage[k] = v
		}
	}
	if s.NetworkIO != nil {
		out.NetworkIO = make(map[string]InterfaceIO, len(s.NetworkIO))
		for k, v := range s.NetworkIO {
			out.NetworkIO[k] = v
		}
	}
	return &out
}
