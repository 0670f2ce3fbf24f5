package config

import (
	"path/filepath"
	"time"
)

// PatternFileName is the name of the persisted pattern file inside data_dir.
const PatternFileName = "patterns.json"

// Config represents the complete patternd.yaml configuration file.
type Config struct {
	Learning   LearningConfig   `yaml:"learning" mapstructure:"learning"`
	Monitoring MonitoringConfig `yaml:"monitoring" mapstructure:"monitoring"`
	Storage    StorageConfig    `yaml:"storage" mapstructure:"storage"`
	Git        GitConfig        `yaml:"git" mapstructure:"git"`
}

// LearningConfig controls the learning loop and the pattern store.
type LearningConfig struct {
	// Enabled toggles pattern learning. When false the service still
	// collects metrics but never feeds them to the detector.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`

	// Interval is how often the learning loop pulls a snapshot.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`

	// BatchSize is reserved for batched processing. Declared, not yet read.
	BatchSize int `yaml:"batch_size" mapstructure:"batch_size"`

	// MaxPatterns caps the pattern store. Oldest-updated patterns are
	// evicted once the cap is exceeded.
	MaxPatterns int `yaml:"max_patterns" mapstructure:"max_patterns"`
}

// MonitoringConfig holds the per-sampler collection intervals.
type MonitoringConfig struct {
	CPUInterval     time.Duration `yaml:"cpu_interval" mapstructure:"cpu_interval"`
	MemoryInterval  time.Duration `yaml:"memory_interval" mapstructure:"memory_interval"`
	DiskInterval    time.Duration `yaml:"disk_interval" mapstructure:"disk_interval"`
	NetworkInterval time.Duration `yaml:"network_interval" mapstructure:"network_interval"`
}

// StorageConfig controls where learned data lives on disk.
type StorageConfig struct {
	// DataDir holds the pattern file and other learned artifacts.
	DataDir string `yaml:"data_dir" mapstructure:"data_dir"`

	// ModelDir is reserved for model artifacts. Declared, not yet read.
	ModelDir string `yaml:"model_dir" mapstructure:"model_dir"`

	// MaxSizeGB is an advisory cap on stored data. Not enforced yet.
	MaxSizeGB float64 `yaml:"max_size_gb" mapstructure:"max_size_gb"`

	// RetentionDays is an advisory retention window. Not enforced yet.
	RetentionDays int `yaml:"retention_days" mapstructure:"retention_days"`
}

// GitConfig controls the auto-commit collaborator.
type GitConfig struct {
	// Enabled toggles all git interaction.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`

	// AutoCommit commits the pattern file after each persist.
	AutoCommit bool `yaml:"auto_commit" mapstructure:"auto_commit"`

	// CommitMessage is the message used for auto-commits.
	CommitMessage string `yaml:"commit_message" mapstructure:"commit_message"`

	// Branch is the branch pushed to (when a remote is reachable).
	Branch string `yaml:"branch" mapstructure:"branch"`

	// Remote is the push target.
	Remote string `yaml:"remote" mapstructure:"remote"`
}

// PatternFile returns the path of the persisted pattern file.
func (s StorageConfig) PatternFile() string {
	return filepath.Join(s.DataDir, PatternFileName)
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Learning: LearningConfig{
			Enabled:     true,
			Interval:    60 * time.Second,
			BatchSize:   100,
			MaxPatterns: 1000,
		},
		Monitoring: MonitoringConfig{
			CPUInterval:     5 * time.Second,
			MemoryInterval:  10 * time.Second,
			DiskInterval:    30 * time.Second,
			NetworkInterval: 15 * time.Second,
		},
		Storage: StorageConfig{
			DataDir:       "data/learn",
			ModelDir:      "data/models",
			MaxSizeGB:     50.0,
			RetentionDays: 30,
		},
		Git: GitConfig{
			Enabled:       true,
			AutoCommit:    true,
			CommitMessage: "patternd: update learned patterns",
			Branch:        "main",
			Remote:        "origin",
		},
	}
}
