package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/patternd/patternd/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.True(t, cfg.Learning.Enabled)
	assert.Equal(t, 60*time.Second, cfg.Learning.Interval)
	assert.Equal(t, 100, cfg.Learning.BatchSize)
	assert.Equal(t, 1000, cfg.Learning.MaxPatterns)

	assert.Equal(t, 5*time.Second, cfg.Monitoring.CPUInterval)
	assert.Equal(t, 10*time.Second, cfg.Monitoring.MemoryInterval)
	assert.Equal(t, 30*time.Second, cfg.Monitoring.DiskInterval)
	assert.Equal(t, 15*time.Second, cfg.Monitoring.NetworkInterval)

	assert.Equal(t, "data/learn", cfg.Storage.DataDir)
	assert.Equal(t, "data/models", cfg.Storage.ModelDir)
	assert.Equal(t, 50.0, cfg.Storage.MaxSizeGB)
	assert.Equal(t, 30, cfg.Storage.RetentionDays)

	assert.True(t, cfg.Git.Enabled)
	assert.True(t, cfg.Git.AutoCommit)
	assert.Equal(t, "main", cfg.Git.Branch)
	assert.Equal(t, "origin", cfg.Git.Remote)
	assert.NotEmpty(t, cfg.Git.CommitMessage)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "patternd.yaml")

	content := `
learning:
  enabled: false
  interval: 2m
  max_patterns: 50
monitoring:
  cpu_interval: 3s
  network_interval: 20s
storage:
  data_dir: /var/lib/patternd
git:
  enabled: false
`
	err := os.WriteFile(configPath, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.False(t, cfg.Learning.Enabled)
	assert.Equal(t, 2*time.Minute, cfg.Learning.Interval)
	assert.Equal(t, 50, cfg.Learning.MaxPatterns)
	assert.Equal(t, 3*time.Second, cfg.Monitoring.CPUInterval)
	assert.Equal(t, 20*time.Second, cfg.Monitoring.NetworkInterval)
	assert.Equal(t, "/var/lib/patternd", cfg.Storage.DataDir)
	assert.False(t, cfg.Git.Enabled)

	// Keys absent from the file keep their defaults
	assert.Equal(t, 100, cfg.Learning.BatchSize)
	assert.Equal(t, 10*time.Second, cfg.Monitoring.MemoryInterval)
	assert.Equal(t, 30*time.Second, cfg.Monitoring.DiskInterval)
	assert.Equal(t, "data/models", cfg.Storage.ModelDir)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/patternd.yaml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Config file not found")
}

func TestLoadMalformed(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "patternd.yaml")

	err := os.WriteFile(configPath, []byte("learning: [not: a: mapping"), 0644)
	require.NoError(t, err)

	_, err = Load(configPath)
	assert.Error(t, err)
}

func TestFind(t *testing.T) {
	t.Run("explicit path exists", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "custom.yaml")
		require.NoError(t, os.WriteFile(path, []byte("learning:\n  enabled: true\n"), 0644))

		found, err := Find(path)
		require.NoError(t, err)
		assert.Equal(t, path, found)
	})

	t.Run("explicit path not found", func(t *testing.T) {
		_, err := Find("/nonexistent/config.yaml")
		assert.Error(t, err)
	})

	t.Run("current directory", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, ConfigFileName)
		require.NoError(t, os.WriteFile(path, []byte("git:\n  enabled: false\n"), 0644))

		t.Chdir(dir)

		found, err := Find("")
		require.NoError(t, err)
		assert.Equal(t, path, found)
	})
}

func TestLoadOrDefault(t *testing.T) {
	t.Run("no config anywhere yields defaults", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("HOME", t.TempDir())

		log := logger.NewBufferLogger()
		cfg := LoadOrDefault("", log)

		require.NotNil(t, cfg)
		assert.Equal(t, 60*time.Second, cfg.Learning.Interval)
		assert.False(t, log.HasLevel("warn"))
	})

	t.Run("malformed file yields defaults with warning", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, ConfigFileName)
		require.NoError(t, os.WriteFile(path, []byte("{{{{ not yaml"), 0644))

		log := logger.NewBufferLogger()
		cfg := LoadOrDefault(path, log)

		require.NotNil(t, cfg)
		assert.Equal(t, 1000, cfg.Learning.MaxPatterns)
		assert.True(t, log.HasLevel("warn"))
	})

	t.Run("valid file is loaded and normalized", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, ConfigFileName)
		content := "monitoring:\n  cpu_interval: 100ms\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		log := logger.NewBufferLogger()
		cfg := LoadOrDefault(path, log)

		// Sub-second interval gets floored back to the default
		assert.Equal(t, 5*time.Second, cfg.Monitoring.CPUInterval)
		assert.True(t, log.HasLevel("warn"))
	})
}

func TestPatternFile(t *testing.T) {
	s := StorageConfig{DataDir: "/var/lib/patternd"}
	assert.Equal(t, filepath.Join("/var/lib/patternd", "patterns.json"), s.PatternFile())
}

func TestWriteDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "patternd.yaml")

	require.NoError(t, WriteDefault(path))

	// The generated file must round-trip through the loader
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}
