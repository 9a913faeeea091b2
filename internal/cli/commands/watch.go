package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"modkit/internal/digest"
	"modkit/internal/pack"
	"modkit/internal/reload"
	"modkit/pkg/terminal"
)

// Watch rebuilds the reload archive whenever a source file changes.
// It always packs in reload mode: release builds are too slow to run
// on every keystroke and hot-reload consumers want source anyway.
func Watch(args []string) error {
	root := "."
	debounce := reload.DefaultDebounce

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-h", "--help":
			showWatchHelp()
			return nil
		case "--root", "-C":
			if i+1 < len(args) {
				root = args[i+1]
				i++
			}
		case "--debounce":
			if i+1 < len(args) {
				d, err := time.ParseDuration(args[i+1])
				if err != nil {
					return fmt.Errorf("invalid debounce %q: %w", args[i+1], err)
				}
				debounce = d
				i++
			}
		}
	}

	cfg := loadConfig()
	repack := func() error {
		p := pack.New(root, pack.Options{Mode: pack.ModeReload}, cfg)
		if err := p.Run(); err != nil {
			return err
		}
		tag, err := reloadTag(root)
		if err != nil {
			return err
		}
		fmt.Printf("%s Repacked %s (%s)\n", terminal.IconBox, pack.ArchivePath(root), tag)
		return nil
	}

	// Pack once up front so the archive exists before the first change.
	if err := repack(); err != nil {
		return err
	}

	w, err := reload.NewWatcher(root, debounce)
	if err != nil {
		return err
	}
	defer w.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Printf("%s Watching %s/src for changes (Ctrl-C to stop)\n", terminal.IconWatch, root)
	return w.Run(ctx, repack)
}

// reloadTag computes the short tree digest printed after each repack.
// It loads .modkitignore the same way the digest command does, so the
// watch tag and `modkit digest` always agree.
func reloadTag(root string) (string, error) {
	rules, err := digest.LoadFromModule(root)
	if err != nil {
		return "", err
	}
	return digest.Tag(root, digest.Options{Rules: rules})
}

func showWatchHelp() {
	fmt.Println(`modkit watch - Rebuild the reload archive on source changes

USAGE:
    modkit watch [OPTIONS]

OPTIONS:
    -h, --help          Show this help message
    --root DIR          Module root directory (default: current directory)
    --debounce DUR      Quiet period before repacking (default: 500ms)

Watches src/ and rebuilds dist/archive.tar.gz in reload mode after each
burst of changes. Stops on Ctrl-C or when a rebuild fails.`)
}
