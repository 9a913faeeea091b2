package commands

import (
	"fmt"
	"strings"

	"modkit/internal/config"
	"modkit/pkg/terminal"
)

// Config shows or updates the persisted harness preferences (~/.modkit.json).
func Config(args []string) error {
	for _, a := range args {
		if a == "-h" || a == "--help" {
			showConfigHelp()
			return nil
		}
	}

	if len(args) == 0 || args[0] == "show" {
		return showConfig()
	}

	switch args[0] {
	case "set":
		if len(args) != 3 {
			return fmt.Errorf("usage: modkit config set <key> <value>")
		}
		return setConfig(args[1], args[2])
	case "unset":
		if len(args) != 2 {
			return fmt.Errorf("usage: modkit config unset <key>")
		}
		return setConfig(args[1], "")
	default:
		return fmt.Errorf("unknown config action: %s (try show, set, unset)", args[0])
	}
}

func showConfig() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	fmt.Printf("Config file: %s\n", config.Path())
	fmt.Printf("  python:         %s\n", orUnset(cfg.Python))
	fmt.Printf("  hidden-imports: %s\n", orUnset(strings.Join(cfg.HiddenImports, ",")))
	return nil
}

func setConfig(key, value string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	switch key {
	case "python":
		cfg.Python = value
	case "hidden-imports":
		cfg.HiddenImports = splitList(value)
	default:
		return fmt.Errorf("unknown config key: %s (try python, hidden-imports)", key)
	}
	if err := config.Save(cfg); err != nil {
		return err
	}
	fmt.Printf("%s Saved %s\n", terminal.IconSuccess, config.Path())
	return nil
}

func orUnset(v string) string {
	if v == "" {
		return "(unset)"
	}
	return v
}

func showConfigHelp() {
	fmt.Println(`modkit config - Show or edit persisted preferences

USAGE:
    modkit config [show]
    modkit config set <key> <value>
    modkit config unset <key>

KEYS:
    python            Preferred interpreter for building and launching
    hidden-imports    Comma-separated modules bundled into release builds

Preferences are stored in ~/.modkit.json. Environment variables
(MODKIT_PYTHON, MODKIT_HIDDEN_IMPORTS) override them per invocation.`)
}
