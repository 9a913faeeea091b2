// Package launch starts the module's runtime process. The launcher does
// exactly two things: optionally re-run the module's setup script, then
// replace its own process image with the module process. There is no
// supervise-and-restart phase; signal delivery and process identity are
// the operating system's business once the exec succeeds.
package launch

import (
	"os"
	"os/exec"
	"path/filepath"

	"github.com/xyproto/env/v2"

	e "modkit/pkg/errors"
	pexec "modkit/pkg/exec"
	"modkit/pkg/logger"
)

const (
	// ReinstallEnv gates the pre-launch setup step. Setup runs only when
	// the variable equals ReinstallSentinel exactly; any other value,
	// empty included, skips it.
	ReinstallEnv      = "MODKIT_REINSTALL"
	ReinstallSentinel = "1"

	setupScript = "setup.sh"
	// entrySource is launched via the interpreter when the module ships
	// as source; releaseBinary is launched directly when it ships
	// compiled.
	entrySource   = "src/main.py"
	releaseBinary = "dist/main"
)

// execCommand enables test stubbing for the setup step.
var execCommand = exec.Command

// execReplace performs the actual process replacement. Overridable in
// tests; the real implementation is per-OS.
var execReplace = replaceProcess

// ReinstallRequested reads the reinstall selector once at startup.
func ReinstallRequested() bool {
	return env.Str(ReinstallEnv) == ReinstallSentinel
}

// Launcher starts the module rooted at Root.
type Launcher struct {
	Root   string
	Python string // interpreter for source launches
	// PythonErr carries a failed interpreter lookup. It only matters if
	// the launch turns out to need an interpreter: a compiled module
	// launches fine without one.
	PythonErr error
	Reinstall bool
}

// Argv resolves the exec argument vector, relative to Root. A compiled
// module (release extraction: dist/main present, no source tree) is
// launched directly; otherwise the interpreter runs the entry point.
// Caller arguments are appended verbatim, in order.
func (l *Launcher) Argv(args []string) ([]string, error) {
	srcEntry := filepath.Join(l.Root, filepath.FromSlash(entrySource))
	bin := filepath.Join(l.Root, filepath.FromSlash(releaseBinary))

	if _, err := os.Stat(srcEntry); err == nil {
		if l.Python == "" {
			if l.PythonErr != nil {
				return nil, l.PythonErr
			}
			return nil, e.New(e.ErrInterpreterNotFound, "No interpreter configured for source launch")
		}
		return append([]string{l.Python, filepath.FromSlash(entrySource)}, args...), nil
	}
	if _, err := os.Stat(bin); err == nil {
		return append([]string{filepath.FromSlash(releaseBinary)}, args...), nil
	}
	return nil, e.New(e.ErrExecFailed, "Module has neither a source entrypoint nor a compiled executable").
		WithContext("root", l.Root)
}

// RunSetup executes the module's setup script synchronously with
// inherited stdio. Failure is fatal to the launch.
func (l *Launcher) RunSetup() error {
	script := filepath.Join(l.Root, setupScript)
	if _, err := os.Stat(script); err != nil {
		return e.Wrap(err, e.ErrFileNotFound, "Setup script missing").
			WithContext("path", script)
	}
	cmd := execCommand(script)
	cmd.Dir = l.Root
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return e.Wrap(err, e.ErrSetupFailed, "Setup script failed")
	}
	return nil
}

// Exec runs the optional setup step, changes into the module root, and
// replaces the current process with the module. On unix platforms this
// call does not return on success: the module takes over the PID and
// receives future signals natively.
func (l *Launcher) Exec(args []string) error {
	if l.Reinstall {
		logger.Info("reinstall requested, running setup.sh")
		if err := l.RunSetup(); err != nil {
			return err
		}
	}

	argv, err := l.Argv(args)
	if err != nil {
		return err
	}
	// All relative paths resolve against the module root from here on.
	if err := os.Chdir(l.Root); err != nil {
		return e.Wrap(err, e.ErrFilesystem, "Failed to enter module root").
			WithContext("root", l.Root)
	}

	logger.Verbosef("exec: %s", pexec.JoinArgs(argv))
	if err := execReplace(argv[0], argv, os.Environ()); err != nil {
		return e.Wrap(err, e.ErrExecFailed, "Failed to start module process").
			WithContext("argv0", argv[0])
	}
	return nil
}
