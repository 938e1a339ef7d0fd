package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if cfg.Test.Prompts != nil || len(cfg.Palette) != 0 {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigDecodesPalette(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[test]
default-rating = 7
save-theme = false

[[palette]]
name = "Cream & Black"
background = "#FFF8E5"
text = "#000000"
prompt = "Reading should be comfortable for your eyes."

[[palette]]
name = "Dark Mode"
background = "#2C2C2C"
text = "#FFF8E5"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Test.DefaultRating == nil || *cfg.Test.DefaultRating != 7 {
		t.Fatalf("expected default-rating 7, got %v", cfg.Test.DefaultRating)
	}
	if cfg.Test.SaveTheme == nil || *cfg.Test.SaveTheme {
		t.Fatalf("expected save-theme false")
	}
	if len(cfg.Palette) != 2 {
		t.Fatalf("expected 2 palette entries, got %d", len(cfg.Palette))
	}
	if cfg.Palette[1].Name != "Dark Mode" || cfg.Palette[1].Background != "#2C2C2C" {
		t.Fatalf("unexpected palette entry: %+v", cfg.Palette[1])
	}
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[test]\nwords = 3\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "test.words") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestDefaultPathsUseXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	if got := DefaultConfigPath(); got != filepath.Join("/cfg", "readease", "config.toml") {
		t.Fatalf("unexpected config path %q", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/data", "readease", "readease.db") {
		t.Fatalf("unexpected db path %q", got)
	}
}
