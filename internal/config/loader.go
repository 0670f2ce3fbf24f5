package config

import (
	"os"
	"path/filepath"

	"github.com/patternd/patternd/internal/errors"
	"github.com/patternd/patternd/internal/logger"
	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the default config file name in the working directory.
	ConfigFileName = "patternd.yaml"
	// SystemConfigPath is the machine-wide config location.
	SystemConfigPath = "/etc/patternd/config.yaml"
	// GlobalConfigDir is the per-user config directory under $HOME.
	GlobalConfigDir = ".config/patternd"
	// GlobalConfigFile is the per-user config file name.
	GlobalConfigFile = "config.yaml"
)

// Load reads config from the specified path.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found",
				"Run 'patternd init' to create a config file, or specify one with --config")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check the file exists and is valid YAML")
	}

	return parseConfig(v, path)
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. patternd.yaml in the current directory
// 3. /etc/patternd/config.yaml (machine-wide)
// 4. ~/.config/patternd/config.yaml (per-user)
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	// 1. Explicit path takes precedence
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	// 2. Current directory
	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine current directory",
			"Check directory permissions")
	}

	localConfig := filepath.Join(cwd, ConfigFileName)
	if _, err := os.Stat(localConfig); err == nil {
		return localConfig, nil
	}

	// 3. Machine-wide config
	if _, err := os.Stat(SystemConfigPath); err == nil {
		return SystemConfigPath, nil
	}

	// 4. Per-user config
	if home, _ := os.UserHomeDir(); home != "" {
		globalConfig := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		if _, err := os.Stat(globalConfig); err == nil {
			return globalConfig, nil
		}
	}

	return "", nil
}

// LoadOrDefault resolves and loads the config, falling back to defaults on
// any failure. A missing file is normal first-run behavior and logged at
// debug; an unreadable or malformed file is logged as a warning. The
// returned config is always normalized and never nil.
func LoadOrDefault(explicit string, log logger.Logger) *Config {
	path, err := Find(explicit)
	if err != nil {
		log.Warn("config lookup failed, using defaults: %v", err)
		return Normalize(DefaultConfig(), log)
	}

	if path == "" {
		log.Debug("no config file found, using defaults")
		return Normalize(DefaultConfig(), log)
	}

	cfg, err := Load(path)
	if err != nil {
		log.Warn("ignoring config file %s, using defaults: %v", path, err)
		return Normalize(DefaultConfig(), log)
	}

	log.Debug("loaded config from %s", path)
	return Normalize(cfg, log)
}

// parseConfig converts viper config to our Config struct with defaults merged in.
func parseConfig(v *viper.Viper, path string) (*Config, error) {
	cfg := DefaultConfig()

	setDefaults(v)

	// Viper decodes duration strings into time.Duration fields itself.
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the YAML syntax in "+path)
	}

	cfg.Storage.DataDir = ExpandTilde(cfg.Storage.DataDir)
	cfg.Storage.ModelDir = ExpandTilde(cfg.Storage.ModelDir)

	return cfg, nil
}

// setDefaults seeds viper so keys absent from the file fall back cleanly.
func setDefaults(v *viper.Viper) {
	v.SetDefault("learning.enabled", true)
	v.SetDefault("learning.interval", "60s")
	v.SetDefault("learning.batch_size", 100)
	v.SetDefault("learning.max_patterns", 1000)
	v.SetDefault("monitoring.cpu_interval", "5s")
	v.SetDefault("monitoring.memory_interval", "10s")
	v.SetDefault("monitoring.disk_interval", "30s")
	v.SetDefault("monitoring.network_interval", "15s")
	v.SetDefault("storage.data_dir", "data/learn")
	v.SetDefault("storage.model_dir", "data/models")
	v.SetDefault("storage.max_size_gb", 50.0)
	v.SetDefault("storage.retention_days", 30)
	v.SetDefault("git.enabled", true)
	v.SetDefault("git.auto_commit", true)
	v.SetDefault("git.commit_message", "patternd: update learned patterns")
	v.SetDefault("git.branch", "main")
	v.SetDefault("git.remote", "origin")
}
