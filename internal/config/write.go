package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/patternd/patternd/internal/errors"
)

// defaultTemplate is the commented config written by 'patternd init'.
// Values match DefaultConfig; intervals use Go duration syntax ("5s", "1m").
const defaultTemplate = `# patternd configuration
# Run 'patternd run' to start collecting metrics and learning patterns.

learning:
  enabled: true        # feed snapshots to the pattern detector
  interval: 60s        # how often a snapshot is processed
  batch_size: 100      # reserved for batched processing
  max_patterns: 1000   # store cap; least-recently-updated patterns are evicted

monitoring:
  cpu_interval: 5s     # CPU usage + load averages
  memory_interval: 10s # virtual memory + swap
  disk_interval: 30s   # per-mount usage
  network_interval: 15s # per-interface counters and rates

storage:
  data_dir: data/learn   # patterns.json lives here
  model_dir: data/models # reserved for model artifacts
  max_size_gb: 50        # advisory, not enforced yet
  retention_days: 30     # advisory, not enforced yet

git:
  enabled: true
  auto_commit: true    # commit patterns.json after each persist
  commit_message: "patternd: update learned patterns"
  branch: main
  remote: origin
`

// DefaultYAML returns the commented default config file contents.
func DefaultYAML() []byte {
	return []byte(defaultTemplate)
}

// WriteDefault writes the commented default config to path, creating parent
// directories as needed.
func WriteDefault(path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				fmt.Sprintf("Cannot create config directory: %s", dir),
				"Check directory permissions")
		}
	}

	if err := os.WriteFile(path, DefaultYAML(), 0644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Failed to write config file: %s", path),
			"Check directory permissions")
	}

	return nil
}
