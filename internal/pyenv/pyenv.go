// Package pyenv manages the Python side of the harness: locating an
// interpreter, maintaining the module-local virtual environment, and
// driving pip and PyInstaller inside it. The venv exists only to host
// the packaging toolchain; module runtime dependencies are setup.sh's
// business.
package pyenv

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/xyproto/env/v2"

	"modkit/internal/config"
	e "modkit/pkg/errors"
	pexec "modkit/pkg/exec"
	"modkit/pkg/logger"
)

// VenvDir is the fixed venv location relative to the module root.
const VenvDir = ".venv"

// FindInterpreter locates the Python interpreter to use. Priority:
// MODKIT_PYTHON, then the configured preference, then python3/python
// from PATH. Mirrors the CLI override chain used elsewhere in modkit.
func FindInterpreter(cfg *config.Config) (string, error) {
	if override := env.Str("MODKIT_PYTHON"); override != "" {
		if p, err := exec.LookPath(override); err == nil {
			return p, nil
		}
		return "", e.New(e.ErrInterpreterNotFound, "MODKIT_PYTHON does not point at an executable").
			WithContext("MODKIT_PYTHON", override)
	}
	if cfg != nil && cfg.Python != "" {
		if p, err := exec.LookPath(cfg.Python); err == nil {
			return p, nil
		}
		logger.Warnf("configured interpreter %q not found, falling back to PATH", cfg.Python)
	}
	for _, candidate := range []string{"python3", "python"} {
		if p, err := exec.LookPath(candidate); err == nil {
			return p, nil
		}
	}
	return "", e.New(e.ErrInterpreterNotFound, "No Python interpreter found")
}

// Env is a handle on the module-local virtual environment.
type Env struct {
	root   string
	python string // venv interpreter path
}

// Python returns the venv interpreter path.
func (v *Env) Python() string { return v.python }

// VenvPython returns the interpreter path inside root's venv without
// checking that it exists.
func VenvPython(root string) string {
	if runtime.GOOS == "windows" {
		return filepath.Join(root, VenvDir, "Scripts", "python.exe")
	}
	return filepath.Join(root, VenvDir, "bin", "python")
}

// Ensure creates the venv under root if it does not exist yet and
// returns a handle on it. An existing venv is reused as-is.
func Ensure(root, python string) (*Env, error) {
	vp := VenvPython(root)
	if _, err := os.Stat(vp); err == nil {
		return &Env{root: root, python: vp}, nil
	}

	logger.Verbosef("creating virtual environment in %s", filepath.Join(root, VenvDir))
	cmd := pexec.Command(python, "-m", "venv", VenvDir)
	cmd.Dir = root
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return nil, e.Wrap(err, e.ErrToolchainInstall, "Failed to create virtual environment").
			WithContext("python", python)
	}
	if _, err := os.Stat(vp); err != nil {
		return nil, e.New(e.ErrToolchainInstall, "venv creation produced no interpreter").
			WithContext("expected", vp)
	}
	return &Env{root: root, python: vp}, nil
}

// InstallToolchain installs or upgrades PyInstaller inside the venv.
func (v *Env) InstallToolchain() error {
	cmd := pexec.Command(v.python, "-m", "pip", "install", "--upgrade", "pyinstaller")
	cmd.Dir = v.root
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return e.Wrap(err, e.ErrToolchainInstall, "Failed to install PyInstaller into .venv")
	}
	return nil
}

// Compile runs PyInstaller against the entry-point source and returns
// the path (relative to root) of the produced standalone executable.
// Hidden imports are modules PyInstaller's static analysis cannot see;
// each one is declared explicitly so the executable runs without a
// source tree or installed dependencies.
func (v *Env) Compile(entry string, hiddenImports []string) (string, error) {
	name := executableName(entry)
	args := CompileArgs(entry, name, hiddenImports)

	cmd := pexec.Command(v.python, args...)
	cmd.Dir = v.root
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", e.Wrap(err, e.ErrCompileFailed, "PyInstaller failed").
			WithContext("entry", entry)
	}

	out := filepath.Join("dist", name)
	if runtime.GOOS == "windows" {
		out += ".exe"
	}
	if _, err := os.Stat(filepath.Join(v.root, out)); err != nil {
		return "", e.New(e.ErrCompileFailed, "PyInstaller produced no executable").
			WithContext("expected", out)
	}
	return out, nil
}

// CompileArgs builds the PyInstaller argument list for a single
// self-contained executable.
func CompileArgs(entry, name string, hiddenImports []string) []string {
	args := []string{
		"-m", "PyInstaller",
		"--onefile",
		"--name", name,
		"--distpath", "dist",
		"--workpath", "build",
		"--specpath", "build",
	}
	for _, imp := range hiddenImports {
		args = append(args, fmt.Sprintf("--hidden-import=%s", imp))
	}
	return append(args, entry)
}

func executableName(entry string) string {
	return strings.TrimSuffix(filepath.Base(entry), ".py")
}
