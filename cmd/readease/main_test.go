package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/readease/internal/catalog"
	"github.com/verte-zerg/readease/internal/config"
	"github.com/verte-zerg/readease/internal/model"
	"github.com/verte-zerg/readease/internal/session"
)

func isolateXDG(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	testPrompts = ""
	rateJSON = false
	rateApply = false
	themeHistory = 0
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParseRatings(t *testing.T) {
	got, err := parseRatings([]string{"9", "4,7", " 6 ,5"})
	if err != nil {
		t.Fatalf("parse ratings: %v", err)
	}
	want := []int{9, 4, 7, 6, 5}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
	if _, err := parseRatings([]string{"nine"}); err == nil {
		t.Fatalf("expected error for non-numeric rating")
	}
	if _, err := parseRatings([]string{","}); err == nil {
		t.Fatalf("expected error for empty ratings")
	}
}

func TestRunRatings(t *testing.T) {
	cat := catalog.Default()
	if _, err := runRatings(cat, []int{1, 2, 3, 4, 5, 6}); err == nil {
		t.Fatalf("expected error for too many ratings")
	}
	if _, err := runRatings(cat, []int{5, 11}); !errors.Is(err, session.ErrInvalidRating) {
		t.Fatalf("expected ErrInvalidRating, got %v", err)
	}
	engine, err := runRatings(cat, []int{9, 4})
	if err != nil {
		t.Fatalf("run ratings: %v", err)
	}
	if engine.Cursor() != 2 || len(engine.Records()) != 2 {
		t.Fatalf("unexpected engine state: cursor=%d records=%d", engine.Cursor(), len(engine.Records()))
	}
}

func TestRateCommandJSON(t *testing.T) {
	isolateXDG(t)
	out, err := execute(t, "rate", "9", "4", "--json")
	if err != nil {
		t.Fatalf("rate: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode output %q: %v", out, err)
	}
	if got["best_combination"] != "Cream & Black" || got["contrast_ratio"] != "19.81" {
		t.Fatalf("unexpected result: %s", out)
	}
}

func TestRateCommandAppliesTheme(t *testing.T) {
	isolateXDG(t)
	if _, err := execute(t, "rate", "2", "3", "4", "10", "1", "--apply"); err != nil {
		t.Fatalf("rate: %v", err)
	}
	out, err := execute(t, "theme", "--history", "5")
	if err != nil {
		t.Fatalf("theme: %v", err)
	}
	if !strings.Contains(out, "Theme: Dark Mode") || !strings.Contains(out, "Background: #2C2C2C") || !strings.Contains(out, "Comfort Rating: 10/10") {
		t.Fatalf("unexpected theme output:\n%s", out)
	}
	if !strings.Contains(out, "History") {
		t.Fatalf("expected history section:\n%s", out)
	}
}

func TestThemeCommandWithoutTheme(t *testing.T) {
	isolateXDG(t)
	if _, err := execute(t, "theme"); err == nil {
		t.Fatalf("expected error when no theme applied")
	}
}

func TestPaletteCommandUsesConfigPalette(t *testing.T) {
	dir := isolateXDG(t)
	cfgPath := filepath.Join(dir, "config", "readease", "config.toml")
	if err := os.MkdirAll(filepath.Dir(cfgPath), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	data := `
[[palette]]
name = "Paper"
background = "#FFFFFF"
text = "#767676"
prompt = "One."
`
	if err := os.WriteFile(cfgPath, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	out, err := execute(t, "palette")
	if err != nil {
		t.Fatalf("palette: %v", err)
	}
	if !strings.Contains(out, "Paper") || !strings.Contains(out, "4.54:1") || !strings.Contains(out, "AA") {
		t.Fatalf("unexpected palette output:\n%s", out)
	}
	if strings.Contains(out, "Cream & Black") {
		t.Fatalf("configured palette must replace the built-in one:\n%s", out)
	}
}

func TestPaletteCommandPromptsFlag(t *testing.T) {
	dir := isolateXDG(t)
	path := filepath.Join(dir, "prompts.txt")
	if err := os.WriteFile(path, []byte("one\ntwo\n"), 0o644); err != nil {
		t.Fatalf("write prompts: %v", err)
	}
	if _, err := execute(t, "palette", "--prompts", path); !errors.Is(err, catalog.ErrLengthMismatch) {
		t.Fatalf("expected length mismatch, got %v", err)
	}
}

func TestValidateConfig(t *testing.T) {
	if err := validateConfig(model.Config{DefaultRating: 0}); err == nil {
		t.Fatalf("expected error for rating 0")
	}
	if err := validateConfig(model.Config{DefaultRating: 10}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDefaultConfigTemplateDecodes(t *testing.T) {
	var cfg config.FileConfig
	if _, err := toml.Decode(defaultConfigTemplate(), &cfg); err != nil {
		t.Fatalf("template is not valid TOML: %v", err)
	}
	if cfg.Test.DefaultRating != nil || len(cfg.Palette) != 0 {
		t.Fatalf("template must not set values: %+v", cfg)
	}
}
