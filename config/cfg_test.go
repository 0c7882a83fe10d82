package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfiguration_NoFile(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() with empty path error = %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}
	if cfg.Version != 1 {
		t.Errorf("Default config version = %d, want 1", cfg.Version)
	}
	if cfg.Logging.ConsoleLogger.Level != "normal" {
		t.Errorf("Default console level = %q, want normal", cfg.Logging.ConsoleLogger.Level)
	}
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `version: 1
editing:
  author: Jane Roe
  rules:
    - search: colour
      replace: color
    - search: '(\d+)kg'
      replace: $1 kilograms
      regex: true
      use_substitutions: true
logging:
  console:
    level: debug
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfiguration(configPath)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if cfg.Editing.Author != "Jane Roe" {
		t.Errorf("author = %q", cfg.Editing.Author)
	}
	if len(cfg.Editing.Rules) != 2 {
		t.Fatalf("rules = %d, want 2", len(cfg.Editing.Rules))
	}
	if cfg.Editing.Rules[0].Search != "colour" || cfg.Editing.Rules[0].Regex {
		t.Errorf("first rule = %+v", cfg.Editing.Rules[0])
	}
	if !cfg.Editing.Rules[1].Regex || !cfg.Editing.Rules[1].UseSubstitutions {
		t.Errorf("second rule = %+v", cfg.Editing.Rules[1])
	}
	if cfg.Logging.ConsoleLogger.Level != "debug" {
		t.Errorf("console level = %q", cfg.Logging.ConsoleLogger.Level)
	}
}

func TestLoadConfiguration_RejectsUnknownKeys(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(configPath, []byte("version: 1\nmystery: true\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfiguration(configPath); err == nil {
		t.Fatal("unknown keys should be rejected")
	}
}

func TestLoadConfiguration_RejectsBadVersion(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(configPath, []byte("version: 2\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, err := LoadConfiguration(configPath)
	if err == nil || !strings.Contains(err.Error(), "version") {
		t.Fatalf("expected version error, got %v", err)
	}
}

func TestDumpRoundTrip(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration: %v", err)
	}
	cfg.Editing.Author = "editor"

	data, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump: %v", err)
	}

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "dumped.yaml")
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	loaded, err := LoadConfiguration(configPath)
	if err != nil {
		t.Fatalf("reload dumped configuration: %v", err)
	}
	if loaded.Editing.Author != "editor" {
		t.Errorf("author lost in round trip: %q", loaded.Editing.Author)
	}
}
