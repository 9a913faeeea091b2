// Package config provides configuration management for the modkit tool.
// It handles loading and saving user preferences for the packaging and
// launch harness.
//
// Configuration is stored in JSON format at ~/.modkit.json and includes:
//   - Preferred Python interpreter for building and launching modules
//   - Extra hidden-import module names passed to the release compiler
//
// The package gracefully handles missing configuration files by
// returning empty configurations, allowing the tool to work with
// sensible defaults when no explicit configuration exists.
package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Config holds user preferences for the module harness. Python stores the
// interpreter used for venv creation and module launch. HiddenImports
// lists extra module names the release compiler must bundle even though
// its static analysis cannot see them.
type Config struct {
	Python        string   `json:"python,omitempty"`
	HiddenImports []string `json:"hidden_imports,omitempty"`
}

// Path returns the absolute path to the modkit configuration file (~/.modkit.json).
func Path() string {
	home := os.Getenv("HOME")
	if home == "" {
		if wd, _ := os.Getwd(); wd != "" {
			return filepath.Join(wd, ".modkit.json")
		}
	}
	return filepath.Join(home, ".modkit.json")
}

// Load reads configuration from disk. If missing, returns an empty config and nil error.
func Load() (*Config, error) {
	var cfg Config
	p := Path()
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &cfg, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(b, &cfg); err != nil {
		return &Config{}, nil // treat parse issues as empty config (non-fatal)
	}
	return &cfg, nil
}

// Save writes configuration to disk.
func Save(cfg *Config) error {
	p := Path()
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o644)
}
