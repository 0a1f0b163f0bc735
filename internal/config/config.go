// Package config loads the CLI's optional TOML configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds settings that flags may override.
type Config struct {
	Database string `toml:"database"`
	Theme    string `toml:"theme"`
	Width    int    `toml:"width"`
	OSC8     string `toml:"osc8"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Database: filepath.Join(dataDir(), "portfolio.db"),
		Theme:    "default",
		OSC8:     "auto",
	}
}

// DefaultPath is where Load looks when no --config flag is given.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "portfolio", "config.toml")
}

func dataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "portfolio")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "portfolio")
}

// Load reads path over the defaults. A missing file is only an error when
// required is set, so the default location may simply not exist.
func Load(path string, required bool) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	cfg.Database = expandHome(cfg.Database)
	return cfg, nil
}

// Validate checks the enumerated settings.
func (c Config) Validate() error {
	switch strings.ToLower(c.OSC8) {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("osc8 must be auto, on, or off (got %q)", c.OSC8)
	}
	if c.Width < 0 {
		return fmt.Errorf("width must be >= 0 (got %d)", c.Width)
	}
	return nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
