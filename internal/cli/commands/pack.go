package commands

import (
	"fmt"

	"modkit/internal/pack"
	"modkit/pkg/terminal"
)

// Pack builds the distribution archive at dist/archive.tar.gz.
// The build mode comes from MODKIT_RELOAD unless overridden by a flag.
func Pack(args []string) error {
	cfg := parsePackFlags(args)
	if cfg.showHelp {
		showPackHelp()
		return nil
	}

	userCfg := loadConfig()
	opts := pack.Options{
		Mode:          cfg.mode,
		HiddenImports: hiddenImports(userCfg),
	}

	p := pack.New(cfg.rootDir, opts, userCfg)
	if err := p.Run(); err != nil {
		return err
	}

	fmt.Printf("%s Packed %s archive: %s\n", terminal.IconBox, cfg.mode, pack.ArchivePath(cfg.rootDir))
	return nil
}

type packConfig struct {
	rootDir  string
	mode     pack.Mode
	showHelp bool
}

func parsePackFlags(args []string) packConfig {
	cfg := packConfig{
		rootDir: ".",
		mode:    pack.ModeFromEnv(),
	}
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-h", "--help":
			cfg.showHelp = true
		case "--reload":
			cfg.mode = pack.ModeReload
		case "--release":
			cfg.mode = pack.ModeRelease
		case "--root", "-C":
			if i+1 < len(args) {
				cfg.rootDir = args[i+1]
				i++
			}
		}
	}
	return cfg
}

func showPackHelp() {
	fmt.Println(`modkit pack - Build the module archive

USAGE:
    modkit pack [OPTIONS]

OPTIONS:
    -h, --help       Show this help message
    --reload         Archive the module source for hot reload
    --release        Compile a standalone executable (default)
    --root DIR       Module root directory (default: current directory)

Without a mode flag, MODKIT_RELOAD selects the mode: set it to a truthy
value for a reload archive, leave it unset for a release build.

EXAMPLES:
    modkit pack                       # release build of the current module
    modkit pack --reload              # source archive for hot reload
    modkit pack --root ./my-module    # build a module elsewhere`)
}
