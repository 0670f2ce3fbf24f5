package learn

import (
	"context"

	"github.com/patternd/patternd/internal/logger"
	"github.com/patternd/patternd/internal/monitor"
)

// persistEvery is the flush cadence: the store is written to disk after
// every Nth processed snapshot, plus once more on Close.
const persistEvery = 10

// Committer publishes the persisted pattern file to version control.
// Implementations are best-effort; a failed commit is logged and never
// stops the learning loop.
type Committer interface {
	Commit(ctx context.Context, path string) error
}

// Learner runs detection over snapshots and flushes the store on a fixed
// cadence. It is driven by a single goroutine; Process and Close must
// not be called concurrently.
type Learner struct {
	store     *Store
	commit    Committer
	log       logger.Logger
	processed int
}

// NewLearner wires a detector-fed store to an optional commit hook.
// commit may be nil when auto-commit is disabled.
func NewLearner(store *Store, commit Committer, log logger.Logger) *Learner {
	if log == nil {
		log = logger.Default()
	}
	return &Learner{store: store, commit: commit, log: log}
}

// Process runs detection over one snapshot and records any candidates.
// A nil snapshot (no data yet) is skipped and does not count toward the
// flush cadence. Every 10th processed snapshot triggers a flush; a
// failed flush is retried at the next cadence point with the in-memory
// population intact.
func (l *Learner) Process(ctx context.Context, snap *monitor.Snapshot) {
	if snap == nil {
		return
	}

	candidates := Detect(snap)
	for _, c := range candidates {
		l.store.Add(c)
	}
	if len(candidates) > 0 {
		l.log.Debug("Recorded %d pattern candidate(s), population now %d", len(candidates), l.store.Len())
	}

	l.processed++
	if l.processed%persistEvery == 0 {
		l.flush(ctx)
	}
}

// Close flushes outstanding state once. Called on shutdown after the
// learning loop has stopped.
func (l *Learner) Close(ctx context.Context) {
	l.flush(ctx)
}

func (l *Learner) flush(ctx context.Context) {
	if err := l.store.Persist(); err != nil {
		l.log.Error("Could not save patterns: %v", err)
		return
	}
	if l.commit == nil {
		return
	}
	if err := l.commit.Commit(ctx, l.store.Path()); err != nil {
		l.log.Warn("Could not commit pattern changes: %v", err)
	}
}
