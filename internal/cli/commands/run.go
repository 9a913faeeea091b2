package commands

import (
	"github.com/xyproto/env/v2"

	"modkit/internal/launch"
	"modkit/internal/pyenv"
)

// Run launches the module, replacing the current process image so the
// platform's signals reach the module directly. Every argument is
// forwarded to the module verbatim: modkit must not interpret flags
// meant for the module, so there is no flag parsing here.
//
// The module root comes from MODKIT_DIR (default: current directory).
// When MODKIT_REINSTALL is set to "1" the setup script runs first.
func Run(args []string) error {
	root := env.Str("MODKIT_DIR", ".")
	cfg := loadConfig()

	// A missing interpreter is only fatal for source launches; the
	// launcher surfaces the lookup error when it actually needs Python.
	python, perr := pyenv.FindInterpreter(cfg)

	l := &launch.Launcher{
		Root:      root,
		Python:    python,
		PythonErr: perr,
		Reinstall: launch.ReinstallRequested(),
	}
	return l.Exec(args)
}
