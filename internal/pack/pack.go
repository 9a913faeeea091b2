// Package pack implements the module packager. One invocation produces
// exactly one distribution archive at dist/archive.tar.gz: either a
// reload archive (module source plus the harness scripts) or a release
// archive (a PyInstaller-compiled standalone executable plus the launch
// script). Any step failing aborts the build; the canonical archive
// path is only ever touched by an atomic rename, so a failed build
// leaves no partial archive behind.
package pack

import (
	"os"
	"path/filepath"
	"sort"

	"modkit/internal/archive"
	"modkit/internal/config"
	"modkit/internal/digest"
	"modkit/internal/pyenv"
	e "modkit/pkg/errors"
	"modkit/pkg/logger"
)

// Fixed module layout, relative to the module root.
const (
	DistDir     = "dist"
	ArchiveName = "archive.tar.gz"
	SrcDir      = "src"
	// EntrySource is the single entry point the release compiler targets.
	EntrySource = "src/main.py"
)

// reloadFixed is the fixed-name artifact set bundled verbatim in reload
// mode, in archive order. Source files are inserted after the first
// entry.
var reloadFixed = []string{"requirements.txt", "meta.json", "setup.sh", "reload.sh", "run.sh"}

// DefaultHiddenImports lists modules the release compiler must be told
// about explicitly: the robot SDK registers itself dynamically, so
// PyInstaller's static analysis never sees the import.
var DefaultHiddenImports = []string{"viam"}

// Toolchain is the compiler capability used in release mode. pyenv.Env
// is the real implementation; tests substitute fakes.
type Toolchain interface {
	InstallToolchain() error
	Compile(entry string, hiddenImports []string) (string, error)
}

// Options configures one packager invocation.
type Options struct {
	Mode          Mode
	HiddenImports []string
}

// Packager builds one archive for the module rooted at Root.
type Packager struct {
	root string
	opts Options

	// newToolchain acquires the isolated build environment. Overridable
	// for tests; the default provisions a venv with PyInstaller.
	newToolchain func() (Toolchain, error)
}

// New creates a packager for the module at root.
func New(root string, opts Options, cfg *config.Config) *Packager {
	if len(opts.HiddenImports) == 0 {
		opts.HiddenImports = DefaultHiddenImports
	}
	return &Packager{
		root: root,
		opts: opts,
		newToolchain: func() (Toolchain, error) {
			python, err := pyenv.FindInterpreter(cfg)
			if err != nil {
				return nil, err
			}
			return pyenv.Ensure(root, python)
		},
	}
}

// ArchivePath returns the canonical archive location for a module root.
func ArchivePath(root string) string {
	return filepath.Join(root, DistDir, ArchiveName)
}

// Run produces the archive for the configured mode.
func (p *Packager) Run() error {
	logger.StartTimer("pack")
	defer logger.EndTimer("pack")

	switch p.opts.Mode {
	case ModeReload:
		return p.packReload()
	default:
		return p.packRelease()
	}
}

// packReload bundles the module source verbatim. This path never
// invokes a compiler.
func (p *Packager) packReload() error {
	members, err := ReloadMembers(p.root)
	if err != nil {
		return err
	}
	if err := p.ensureDist(); err != nil {
		return err
	}
	// Drop any stale archive so a failed build cannot pass off old
	// content as current.
	out := ArchivePath(p.root)
	if err := os.Remove(out); err != nil && !os.IsNotExist(err) {
		return e.Wrap(err, e.ErrFilesystem, "Failed to remove stale archive").
			WithContext("path", out)
	}
	logger.Verbosef("packing %d reload members", len(members))
	return archive.Create(out, p.root, members)
}

// packRelease compiles the module into a standalone executable and
// bundles it with the launch script.
func (p *Packager) packRelease() error {
	tc, err := p.newToolchain()
	if err != nil {
		return err
	}
	if err := tc.InstallToolchain(); err != nil {
		return err
	}
	exe, err := tc.Compile(EntrySource, p.opts.HiddenImports)
	if err != nil {
		return err
	}
	if err := p.ensureDist(); err != nil {
		return err
	}
	return archive.Create(ArchivePath(p.root), p.root, []string{exe, "run.sh"})
}

func (p *Packager) ensureDist() error {
	if err := os.MkdirAll(filepath.Join(p.root, DistDir), 0o755); err != nil {
		return e.Wrap(err, e.ErrFilesystem, "Failed to create dist directory")
	}
	return nil
}

// ReloadMembers resolves the reload archive member list: the dependency
// manifest, every regular file directly under src/ (one level, filtered
// through the packaging ignore rules), the module manifest, and the
// setup/reload/launch scripts. Missing fixed artifacts are an error.
func ReloadMembers(root string) ([]string, error) {
	for _, name := range reloadFixed {
		if _, err := os.Stat(filepath.Join(root, name)); err != nil {
			return nil, e.Wrap(err, e.ErrFileNotFound, "Module artifact missing: "+name).
				WithContext("root", root)
		}
	}

	src, err := sourceFiles(root)
	if err != nil {
		return nil, err
	}

	members := make([]string, 0, len(reloadFixed)+len(src))
	members = append(members, reloadFixed[0])
	members = append(members, src...)
	members = append(members, reloadFixed[1:]...)
	return members, nil
}

// sourceFiles lists regular files directly under src/, non-recursive,
// sorted, with interpreter droppings filtered out.
func sourceFiles(root string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(root, SrcDir))
	if err != nil {
		return nil, e.Wrap(err, e.ErrFileNotFound, "Module source directory missing").
			WithContext("dir", filepath.Join(root, SrcDir))
	}

	rules := digest.DefaultRules()
	var files []string
	for _, ent := range entries {
		if !ent.Type().IsRegular() {
			continue
		}
		rel := filepath.Join(SrcDir, ent.Name())
		if rules.Match(rel, false) {
			continue
		}
		files = append(files, rel)
	}
	sort.Strings(files)
	return files, nil
}
