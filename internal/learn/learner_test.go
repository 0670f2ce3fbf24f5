package learn

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patternd/patternd/internal/logger"
	"github.com/patternd/patternd/internal/monitor"
)

type recordingCommitter struct {
	calls []string
}

func (r *recordingCommitter) Commit(_ context.Context, path string) error {
	r.calls = append(r.calls, path)
	return nil
}

type failingCommitter struct{}

func (failingCommitter) Commit(context.Context, string) error {
	return fmt.Errorf("push rejected")
}

func hotSnapshot() *monitor.Snapshot {
	snap := quietSnapshot()
	snap.MemoryPercent = 92.0
	return snap
}

func TestProcessRecordsDetections(t *testing.T) {
	s := tempStore(t, 10)
	l := NewLearner(s, nil, logger.Noop())

	l.Process(context.Background(), hotSnapshot())

	require.Equal(t, 1, s.Len())
	assert.Equal(t, PatternHighMemory, s.List()[0].Type)
}

func TestProcessSkipsNilSnapshot(t *testing.T) {
	s := tempStore(t, 10)
	l := NewLearner(s, nil, logger.Noop())

	for i := 0; i < 2*persistEvery; i++ {
		l.Process(context.Background(), nil)
	}

	assert.Equal(t, 0, s.Len())
	assert.NoFileExists(t, s.Path())
}

func TestFlushCadence(t *testing.T) {
	s := tempStore(t, 10)
	commit := &recordingCommitter{}
	l := NewLearner(s, commit, logger.Noop())

	ctx := context.Background()
	for i := 0; i < persistEvery-1; i++ {
		l.Process(ctx, quietSnapshot())
	}
	assert.NoFileExists(t, s.Path())
	assert.Empty(t, commit.calls)

	l.Process(ctx, quietSnapshot())
	assert.FileExists(t, s.Path())
	assert.Equal(t, []string{s.Path()}, commit.calls)
}

func TestCloseFlushesAndCommits(t *testing.T) {
	s := tempStore(t, 10)
	commit := &recordingCommitter{}
	l := NewLearner(s, commit, logger.Noop())

	ctx := context.Background()
	l.Process(ctx, hotSnapshot())
	l.Close(ctx)

	assert.FileExists(t, s.Path())
	require.Len(t, commit.calls, 1)

	reloaded := NewStore(s.Path(), 10, logger.Noop())
	assert.Equal(t, 1, reloaded.Len())
}

func TestFailedPersistSkipsCommit(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	log := logger.NewBufferLogger()
	s := NewStore(filepath.Join(blocker, "patterns.json"), 10, log)
	commit := &recordingCommitter{}
	l := NewLearner(s, commit, log)

	ctx := context.Background()
	for i := 0; i < persistEvery; i++ {
		l.Process(ctx, quietSnapshot())
	}

	assert.Empty(t, commit.calls)
	assert.True(t, log.HasLevel("error"))
}

func TestCommitFailureIsLoggedNotFatal(t *testing.T) {
	log := logger.NewBufferLogger()
	s := NewStore(filepath.Join(t.TempDir(), "patterns.json"), 10, log)
	l := NewLearner(s, failingCommitter{}, log)

	ctx := context.Background()
	for i := 0; i < persistEvery; i++ {
		l.Process(ctx, quietSnapshot())
	}

	assert.FileExists(t, s.Path())
	assert.True(t, log.HasLevel("warn"))
}
