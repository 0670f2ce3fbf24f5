package config

import (
	"testing"
	"time"

	"github.com/patternd/patternd/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeNil(t *testing.T) {
	cfg := Normalize(nil, logger.Noop())
	require.NotNil(t, cfg)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestNormalizeValidConfigUntouched(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Learning.Interval = 2 * time.Minute
	cfg.Monitoring.CPUInterval = 10 * time.Second

	log := logger.NewBufferLogger()
	out := Normalize(cfg, log)

	assert.Equal(t, 2*time.Minute, out.Learning.Interval)
	assert.Equal(t, 10*time.Second, out.Monitoring.CPUInterval)
	assert.Empty(t, log.Messages)
}

func TestNormalizeIntervalFloors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		check  func(*testing.T, *Config)
	}{
		{
			name:   "learning interval below floor",
			mutate: func(c *Config) { c.Learning.Interval = time.Second },
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, 60*time.Second, c.Learning.Interval)
			},
		},
		{
			name:   "zero learning interval",
			mutate: func(c *Config) { c.Learning.Interval = 0 },
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, 60*time.Second, c.Learning.Interval)
			},
		},
		{
			name:   "cpu interval below floor",
			mutate: func(c *Config) { c.Monitoring.CPUInterval = 50 * time.Millisecond },
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, 5*time.Second, c.Monitoring.CPUInterval)
			},
		},
		{
			name:   "negative network interval",
			mutate: func(c *Config) { c.Monitoring.NetworkInterval = -time.Second },
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, 15*time.Second, c.Monitoring.NetworkInterval)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			log := logger.NewBufferLogger()
			out := Normalize(cfg, log)

			tt.check(t, out)
			assert.True(t, log.HasLevel("warn"), "normalization should warn")
		})
	}
}

func TestNormalizeCounts(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Learning.MaxPatterns = 0
	cfg.Learning.BatchSize = -5

	log := logger.NewBufferLogger()
	out := Normalize(cfg, log)

	assert.Equal(t, 1000, out.Learning.MaxPatterns)
	assert.Equal(t, 100, out.Learning.BatchSize)
	assert.True(t, log.HasLevel("warn"))
}

func TestNormalizeStorage(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Storage.DataDir = ""
	cfg.Storage.MaxSizeGB = -1
	cfg.Storage.RetentionDays = -7

	out := Normalize(cfg, logger.NewBufferLogger())

	assert.Equal(t, "data/learn", out.Storage.DataDir)
	assert.Equal(t, 50.0, out.Storage.MaxSizeGB)
	assert.Equal(t, 30, out.Storage.RetentionDays)
}

func TestNormalizeGitFallbacks(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Git.CommitMessage = ""
	cfg.Git.Branch = ""
	cfg.Git.Remote = ""

	out := Normalize(cfg, logger.Noop())

	assert.NotEmpty(t, out.Git.CommitMessage)
	assert.Equal(t, "main", out.Git.Branch)
	assert.Equal(t, "origin", out.Git.Remote)
}

func TestNormalizeGitDisabledLeavesBlanks(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Git.Enabled = false
	cfg.Git.Branch = ""

	out := Normalize(cfg, logger.Noop())

	// Nothing reads these when git is off
	assert.Empty(t, out.Git.Branch)
}
