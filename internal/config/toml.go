// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Test    TestConfig      `toml:"test"`
	Palette []PaletteConfig `toml:"palette"`
}

// TestConfig maps contrast test settings.
type TestConfig struct {
	Prompts       *string `toml:"prompts"`
	DefaultRating *int    `toml:"default-rating"`
	SaveTheme     *bool   `toml:"save-theme"`
}

// PaletteConfig describes one custom color combination.
type PaletteConfig struct {
	Name       string `toml:"name"`
	Background string `toml:"background"`
	Text       string `toml:"text"`
	Prompt     string `toml:"prompt"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
