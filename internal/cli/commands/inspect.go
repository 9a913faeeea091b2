package commands

import (
	"fmt"
	"strings"

	"modkit/internal/modfile"
	"modkit/internal/pack"
	"modkit/pkg/terminal"
)

// Inspect prints the module manifest and what the packager would put in
// the archive, without building anything.
func Inspect(args []string) error {
	root := "."
	mode := pack.ModeFromEnv()
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-h", "--help":
			showInspectHelp()
			return nil
		case "--reload":
			mode = pack.ModeReload
		case "--release":
			mode = pack.ModeRelease
		case "--root", "-C":
			if i+1 < len(args) {
				root = args[i+1]
				i++
			}
		}
	}

	m, err := modfile.Load(root)
	if err != nil {
		return err
	}

	fmt.Printf("%s Module: %s\n", terminal.IconBox, m.ModuleID)
	if m.Description != "" {
		fmt.Printf("Description: %s\n", m.Description)
	}
	fmt.Printf("Entrypoint: %s\n", m.Entrypoint)
	fmt.Println("Models:")
	for _, model := range m.Models {
		fmt.Printf("  %s %s (%s)\n", terminal.IconDot, model.Model, model.API)
	}

	fmt.Printf("\nPackaging plan (%s mode):\n", mode)
	if mode == pack.ModeReload {
		members, err := pack.ReloadMembers(root)
		if err != nil {
			return err
		}
		for _, member := range members {
			fmt.Printf("  %s %s\n", terminal.IconArrow, member)
		}
		return nil
	}

	cfg := loadConfig()
	imports := hiddenImports(cfg)
	if len(imports) == 0 {
		imports = pack.DefaultHiddenImports
	}
	fmt.Printf("  %s dist/main (compiled from %s, hidden imports: %s)\n",
		terminal.IconArrow, pack.EntrySource, strings.Join(imports, ", "))
	fmt.Printf("  %s run.sh\n", terminal.IconArrow)
	return nil
}

func showInspectHelp() {
	fmt.Println(`modkit inspect - Show module manifest and packaging plan

USAGE:
    modkit inspect [OPTIONS]

OPTIONS:
    -h, --help    Show this help message
    --reload      Show the reload-mode packaging plan
    --release     Show the release-mode packaging plan
    --root DIR    Module root directory (default: current directory)

Reads meta.json and lists what modkit pack would place in the archive
for the selected mode. No files are written.`)
}
