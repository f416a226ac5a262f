package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig_ValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "dualdiff.yaml")

	configContent := `exclude:
  - "*.tmp"
  - ".git/"
workers: 3
poll_interval: 250ms
settle_delay: 1s
large_dir_threshold: 20
diff_tool: meld
watch: true
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	expectedExclude := []string{"*.tmp", ".git/"}
	if len(cfg.Exclude) != len(expectedExclude) {
		t.Fatalf("Expected %d exclude patterns, got %d", len(expectedExclude), len(cfg.Exclude))
	}
	for i, expected := range expectedExclude {
		if cfg.Exclude[i] != expected {
			t.Errorf("Exclude[%d]: expected %q, got %q", i, expected, cfg.Exclude[i])
		}
	}

	if cfg.Workers != 3 {
		t.Errorf("Expected 3 workers, got %d", cfg.Workers)
	}
	if cfg.PollInterval != 250*time.Millisecond {
		t.Errorf("Expected poll_interval 250ms, got %s", cfg.PollInterval)
	}
	if cfg.SettleDelay != time.Second {
		t.Errorf("Expected settle_delay 1s, got %s", cfg.SettleDelay)
	}
	if cfg.LargeDirThreshold != 20 {
		t.Errorf("Expected large_dir_threshold 20, got %d", cfg.LargeDirThreshold)
	}
	if cfg.DiffTool != "meld" {
		t.Errorf("Expected diff_tool meld, got %q", cfg.DiffTool)
	}
	if !cfg.Watch {
		t.Error("Expected watch to be enabled")
	}
}

func TestLoadConfig_MissingKeysKeepDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "dualdiff.yaml")
	if err := os.WriteFile(configPath, []byte("editor: nano\n"), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	def := DefaultConfig()
	if cfg.Editor != "nano" {
		t.Errorf("Expected editor nano, got %q", cfg.Editor)
	}
	if cfg.LargeSettleDelay != def.LargeSettleDelay {
		t.Errorf("Expected default large_settle_delay %s, got %s", def.LargeSettleDelay, cfg.LargeSettleDelay)
	}
	if cfg.WatchDebounce != def.WatchDebounce {
		t.Errorf("Expected default watch_debounce %s, got %s", def.WatchDebounce, cfg.WatchDebounce)
	}
	if len(cfg.Exclude) != len(def.Exclude) {
		t.Errorf("Expected default exclude patterns, got %v", cfg.Exclude)
	}
}

func TestDefaultConfig_ExcludesNothing(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Exclude == nil {
		t.Fatal("Exclude should not be nil")
	}
	if len(cfg.Exclude) != 0 {
		t.Errorf("Expected no default exclude patterns, got %v", cfg.Exclude)
	}
}

func TestLoadConfig_NonExistentFile(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/dualdiff.yaml")
	if err != nil {
		t.Fatalf("LoadConfig should return default config for nonexistent file, got error: %v", err)
	}

	if cfg.SettleDelay != 100*time.Millisecond {
		t.Errorf("Expected default settle_delay 100ms, got %s", cfg.SettleDelay)
	}
	if cfg.LargeSettleDelay != 500*time.Millisecond {
		t.Errorf("Expected default large_settle_delay 500ms, got %s", cfg.LargeSettleDelay)
	}
	if cfg.LargeDirThreshold != 1000 {
		t.Errorf("Expected default large_dir_threshold 1000, got %d", cfg.LargeDirThreshold)
	}
	if cfg.Workers < 1 {
		t.Errorf("Expected at least one worker, got %d", cfg.Workers)
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")

	invalidYAML := `exclude:
  - "*.tmp"
 bad: [indent
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	if _, err := LoadConfig(configPath); err == nil {
		t.Error("LoadConfig should fail on invalid YAML")
	}
}

func TestLoadConfig_InvalidDuration(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "dualdiff.yaml")
	if err := os.WriteFile(configPath, []byte("settle_delay: soon\n"), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	if _, err := LoadConfig(configPath); err == nil {
		t.Error("LoadConfig should fail on an unparsable duration")
	}
}

func TestLoadConfig_InvalidWorkers(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "dualdiff.yaml")
	if err := os.WriteFile(configPath, []byte("workers: 0\n"), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	if _, err := LoadConfig(configPath); err == nil {
		t.Error("LoadConfig should reject zero workers")
	}
}

func TestLoadConfig_EmptyFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(configPath, []byte(""), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Exclude == nil {
		t.Error("Exclude should not be nil")
	}
}

func TestResolvePath(t *testing.T) {
	if got := ResolvePath("custom.yaml"); got != "custom.yaml" {
		t.Errorf("Expected explicit path, got %q", got)
	}

	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))

	if got, want := ResolvePath(""), filepath.Join(dir, "xdg", "dualdiff", "config.yaml"); got != want {
		t.Errorf("Expected %q without a local file, got %q", want, got)
	}

	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(""), 0644); err != nil {
		t.Fatalf("Failed to write local config: %v", err)
	}
	if got := ResolvePath(""); got != FileName {
		t.Errorf("Expected %q, got %q", FileName, got)
	}
}
