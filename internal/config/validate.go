package config

import (
	"time"

	"github.com/patternd/patternd/internal/logger"
)

// Interval floors. Anything below these would busy-loop the samplers or
// the learning loop, so out-of-range values fall back to defaults.
const (
	minSamplerInterval  = time.Second
	minLearningInterval = 5 * time.Second
)

// Normalize clamps out-of-range values back to defaults, logging a warning
// for each replacement. Bad config never stops the service; it runs with
// defaults instead.
func Normalize(cfg *Config, log logger.Logger) *Config {
	if cfg == nil {
		return DefaultConfig()
	}
	def := DefaultConfig()

	if cfg.Learning.Interval < minLearningInterval {
		log.Warn("learning.interval %v is below the %v floor, using %v",
			cfg.Learning.Interval, minLearningInterval, def.Learning.Interval)
		cfg.Learning.Interval = def.Learning.Interval
	}
	if cfg.Learning.MaxPatterns <= 0 {
		log.Warn("learning.max_patterns %d isn't usable, using %d",
			cfg.Learning.MaxPatterns, def.Learning.MaxPatterns)
		cfg.Learning.MaxPatterns = def.Learning.MaxPatterns
	}
	if cfg.Learning.BatchSize <= 0 {
		log.Warn("learning.batch_size %d isn't usable, using %d",
			cfg.Learning.BatchSize, def.Learning.BatchSize)
		cfg.Learning.BatchSize = def.Learning.BatchSize
	}

	cfg.Monitoring.CPUInterval = normalizeInterval(log,
		"monitoring.cpu_interval", cfg.Monitoring.CPUInterval, def.Monitoring.CPUInterval)
	cfg.Monitoring.MemoryInterval = normalizeInterval(log,
		"monitoring.memory_interval", cfg.Monitoring.MemoryInterval, def.Monitoring.MemoryInterval)
	cfg.Monitoring.DiskInterval = normalizeInterval(log,
		"monitoring.disk_interval", cfg.Monitoring.DiskInterval, def.Monitoring.DiskInterval)
	cfg.Monitoring.NetworkInterval = normalizeInterval(log,
		"monitoring.network_interval", cfg.Monitoring.NetworkInterval, def.Monitoring.NetworkInterval)

	if cfg.Storage.DataDir == "" {
		log.Warn("storage.data_dir is empty, using %s", def.Storage.DataDir)
		cfg.Storage.DataDir = def.Storage.DataDir
	}
	if cfg.Storage.ModelDir == "" {
		cfg.Storage.ModelDir = def.Storage.ModelDir
	}
	if cfg.Storage.MaxSizeGB < 0 {
		log.Warn("storage.max_size_gb can't be negative, using %.0f", def.Storage.MaxSizeGB)
		cfg.Storage.MaxSizeGB = def.Storage.MaxSizeGB
	}
	if cfg.Storage.RetentionDays < 0 {
		log.Warn("storage.retention_days can't be negative, using %d", def.Storage.RetentionDays)
		cfg.Storage.RetentionDays = def.Storage.RetentionDays
	}

	if cfg.Git.Enabled {
		if cfg.Git.CommitMessage == "" {
			cfg.Git.CommitMessage = def.Git.CommitMessage
		}
		if cfg.Git.Branch == "" {
			cfg.Git.Branch = def.Git.Branch
		}
		if cfg.Git.Remote == "" {
			cfg.Git.Remote = def.Git.Remote
		}
	}

	return cfg
}

func normalizeInterval(log logger.Logger, key string, got, def time.Duration) time.Duration {
	if got < minSamplerInterval {
		log.Warn("%s %v is below the %v floor, using %v", key, got, minSamplerInterval, def)
		return def
	}
	return got
}
