// Package commands implements the modkit subcommands. Each command is a
// plain function taking the raw argument slice so the cli package can
// route to it without any shared flag machinery.
package commands

import (
	"strings"

	"github.com/xyproto/env/v2"

	"modkit/internal/config"
)

// loadConfig reads the user config, tolerating a missing or broken file.
// Commands treat the config as optional: nil means defaults everywhere.
func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		return nil
	}
	return cfg
}

// hiddenImports resolves the hidden-import list for release builds. The
// MODKIT_HIDDEN_IMPORTS variable (comma-separated) wins over the config
// file; the packager applies its built-in default when both are empty.
func hiddenImports(cfg *config.Config) []string {
	if raw := env.Str("MODKIT_HIDDEN_IMPORTS"); raw != "" {
		return splitList(raw)
	}
	if cfg != nil && len(cfg.HiddenImports) > 0 {
		return cfg.HiddenImports
	}
	return nil
}

// splitList splits a comma-separated value, trimming blanks.
func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
