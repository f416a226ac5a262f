package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the working directory.
const FileName = "dualdiff.yaml"

type Config struct {
	Exclude []string `yaml:"exclude"`
	// Workers bounds the number of concurrent file comparisons.
	Workers int `yaml:"workers"`

	PollInterval      time.Duration `yaml:"poll_interval"`
	SettleDelay       time.Duration `yaml:"settle_delay"`
	LargeSettleDelay  time.Duration `yaml:"large_settle_delay"`
	LargeDirThreshold int           `yaml:"large_dir_threshold"`

	DiffTool string `yaml:"diff_tool"`
	Editor   string `yaml:"editor"`

	Watch         bool          `yaml:"watch"`
	WatchDebounce time.Duration `yaml:"watch_debounce"`
}

func DefaultConfig() *Config {
	return &Config{
		Exclude:           []string{},
		Workers:           runtime.NumCPU(),
		PollInterval:      100 * time.Millisecond,
		SettleDelay:       100 * time.Millisecond,
		LargeSettleDelay:  500 * time.Millisecond,
		LargeDirThreshold: 1000,
		WatchDebounce:     500 * time.Millisecond,
	}
}

// LoadConfig reads path over the defaults. Keys missing from the file keep
// their default value; a missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	if cfg.Exclude == nil {
		cfg.Exclude = []string{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects values the comparison cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Workers < 1:
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	case c.PollInterval <= 0:
		return fmt.Errorf("poll_interval must be positive, got %s", c.PollInterval)
	case c.SettleDelay < 0 || c.LargeSettleDelay < 0:
		return fmt.Errorf("settle delays must not be negative")
	case c.LargeDirThreshold < 0:
		return fmt.Errorf("large_dir_threshold must not be negative, got %d", c.LargeDirThreshold)
	case c.WatchDebounce < 0:
		return fmt.Errorf("watch_debounce must not be negative, got %s", c.WatchDebounce)
	}
	return nil
}

// ResolvePath returns the config file to load: the explicit path when set,
// then ./dualdiff.yaml when present, then the per-user config file.
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat(FileName); err == nil {
		return FileName
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return FileName
	}
	return filepath.Join(dir, "dualdiff", "config.yaml")
}
