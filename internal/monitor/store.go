package monitor

import (
	"sync"
	"time"
)

// CPUSample is what the CPU sampler merges into the snapshot each tick.
type CPUSample struct {
	UsagePercent float64
	Load         LoadAverages
}

// SystemSample holds the system-wide fields: process and session counts
// plus boot time. The CPU sampler supplies one when it creates the
// snapshot; the system sampler refreshes it on its own cadence.
type SystemSample struct {
	Processes int
	Users     int
	BootTime  time.Time
}

// SnapshotStore guards the single shared snapshot. All mutation happens
// under one lock, held only for the merge step, never during collection.
type SnapshotStore struct {
	mu   sync.Mutex
	snap *Snapshot
}

// NewSnapshotStore returns an empty store. The snapshot stays absent until
// the first CPU sample arrives.
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

// Seeded reports whether a snapshot exists yet.
func (s *SnapshotStore) Seeded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap != nil
}

// RecordCPU merges a CPU sample. On the first call it allocates the
// snapshot, stamping it with the current time and the given seed; on
// later calls the seed is ignored and only the CPU fields change.
func (s *SnapshotStore) RecordCPU(sample CPUSample, seed SystemSample) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snap == nil {
		s.snap = &Snapshot{
			Timestamp:  time.Now(),
			CPUPercent: sample.UsagePercent,
			LoadAvg:    sample.Load,
			DiskUsage:  map[string]float64{},
			NetworkIO:  map[string]InterfaceIO{},
			Processes:  seed.Processes,
			Users:      seed.Users,
			BootTime:   seed.BootTime,
		}
		return
	}

	s.snap.CPUPercent = sample.UsagePercent
	s.snap.LoadAvg = sample.Load
}

// RecordMemory merges a memory sample. Dropped (returns false) before the
// first CPU sample has created the snapshot.
func (s *SnapshotStore) RecordMemory(percent float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snap == nil {
		return false
	}
	s.snap.MemoryPercent = percent
	return true
}

// RecordDisk replaces the per-mount usage map. Dropped before the first
// CPU sample.
func (s *SnapshotStore) RecordDisk(usage map[string]float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snap == nil {
		return false
	}
	s.snap.DiskUsage = usage
	return true
}

// RecordNetwork replaces the per-interface I/O map. Dropped before the
// first CPU sample.
func (s *SnapshotStore) RecordNetwork(io map[string]InterfaceIO) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snap == nil {
		return false
	}
	s.snap.NetworkIO = io
	return true
}

// RecordSystem refreshes the system-wide fields and the snapshot
// timestamp. Dropped before the first CPU sample.
func (s *SnapshotStore) RecordSystem(sample SystemSample) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snap == nil {
		return false
	}
	s.snap.Timestamp = time.Now()
	s.snap.Processes = sample.Processes
	s.snap.Users = sample.Users
	s.snap.BootTime = sample.BootTime
	return true
}

// Current returns a deep copy of the latest snapshot, or nil before the
// first CPU sample. Callers can hold or mutate the copy freely; it never
// races with the next merge.
func (s *SnapshotStore) Current() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Clone()
}

// Reset discards the snapshot, restoring the no-data state.
func (s *SnapshotStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = nil
}
