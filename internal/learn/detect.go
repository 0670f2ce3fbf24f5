package learn

import (
	"sort"
	"strings"

	"github.com/patternd/patternd/internal/monitor"
)

// Detection thresholds. CPU requires both a high usage percentage and a
// high one-minute load so a single busy core does not trip the rule.
const (
	highCPUPercent    = 80.0
	highCPULoadOneMin = 4.0
	highMemoryPercent = 85.0
	highNetworkRate   = 1_000_000.0 // bytes per second
	networkConfidence = 0.8
)

// Detect evaluates the threshold rules against one snapshot and returns
// zero or more candidates. It is a pure function: no state is kept
// between calls, and the snapshot is not modified.
func Detect(snap *monitor.Snapshot) []Candidate {
	if snap == nil {
		return nil
	}

	observed := epochSeconds(snap.Timestamp)
	var found []Candidate

	if snap.CPUPercent > highCPUPercent && snap.LoadAvg.OneMin > highCPULoadOneMin {
		found = append(found, Candidate{
			Type: PatternHighCPU,
			Data: map[string]any{
				"cpu_percent": snap.CPUPercent,
				"load_avg": map[string]any{
					"1min":  snap.LoadAvg.OneMin,
					"5min":  snap.LoadAvg.FiveMin,
					"15min": snap.LoadAvg.FifteenMin,
				},
				"processes": snap.Processes,
			},
			Confidence: clamp01((snap.CPUPercent - 70) / 30),
			Metadata:   thresholdMetadata(highCPUPercent),
			ObservedAt: observed,
		})
	}

	if snap.MemoryPercent > highMemoryPercent {
		found = append(found, Candidate{
			Type: PatternHighMemory,
			Data: map[string]any{
				"memory_percent": snap.MemoryPercent,
			},
			Confidence: clamp01((snap.MemoryPercent - 75) / 25),
			Metadata:   thresholdMetadata(highMemoryPercent),
			ObservedAt: observed,
		})
	}

	for _, name := range sortedInterfaces(snap.NetworkIO) {
		if isLoopback(name) {
			continue
		}
		io := snap.NetworkIO[name]
		if io.SentPerSec > highNetworkRate || io.RecvPerSec > highNetworkRate {
			found = append(found, Candidate{
				Type: PatternHighNetwork,
				Data: map[string]any{
					"interface":     name,
					"bytes_sent_ps": io.SentPerSec,
					"bytes_recv_ps": io.RecvPerSec,
				},
				Confidence: networkConfidence,
				Metadata:   thresholdMetadata(highNetworkRate),
				ObservedAt: observed,
			})
		}
	}

	return found
}

func thresholdMetadata(threshold float64) map[string]any {
	return map[string]any{
		"detection_method": "threshold",
		"threshold":        threshold,
	}
}

func sortedInterfaces(io map[string]monitor.InterfaceIO) []string {
	names := make([]string, 0, len(io))
	for name := range io {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func isLoopback(name string) bool {
	return name == "lo" || name == "lo0" || strings.HasPrefix(name, "loopback")
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
