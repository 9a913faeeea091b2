// Package reload watches a module's source directory and triggers a
// repack when it changes, feeding the hot-reload workflow: edit source,
// get a fresh reload archive in dist/ without re-running pack by hand.
package reload

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"modkit/internal/digest"
	e "modkit/pkg/errors"
	"modkit/pkg/logger"
)

// DefaultDebounce batches editor write bursts into a single repack.
const DefaultDebounce = 500 * time.Millisecond

// Watcher observes the src/ directory of a module root.
type Watcher struct {
	fsw      *fsnotify.Watcher
	root     string
	debounce time.Duration
	rules    *digest.IgnoreRules
}

// NewWatcher creates a watcher on root/src. The packager only bundles
// files one level under src/, so the watch is non-recursive too.
func NewWatcher(root string, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, e.Wrap(err, e.ErrFilesystem, "Failed to create filesystem watcher")
	}
	srcDir := filepath.Join(root, "src")
	if err := fsw.Add(srcDir); err != nil {
		fsw.Close()
		return nil, e.Wrap(err, e.ErrFilesystem, "Failed to watch source directory").
			WithContext("dir", srcDir)
	}
	return &Watcher{fsw: fsw, root: root, debounce: debounce, rules: digest.DefaultRules()}, nil
}

// Close releases the underlying watcher.
func (w *Watcher) Close() error { return w.fsw.Close() }

// Run blocks, invoking onChange after each debounced burst of relevant
// source events, until ctx is cancelled. An onChange error stops the
// loop and is returned; watcher errors are logged and skipped.
func (w *Watcher) Run(ctx context.Context, onChange func() error) error {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			logger.Debugf("source change: %s %s", ev.Op, ev.Name)
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				fire = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
		case <-fire:
			timer = nil
			fire = nil
			if err := onChange(); err != nil {
				return err
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warnf("watch error: %v", err)
		}
	}
}

// relevant filters out chmod noise and ignored files (bytecode, editor
// swap files) that must not trigger a repack.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	rel, err := filepath.Rel(w.root, ev.Name)
	if err != nil {
		rel = filepath.Base(ev.Name)
	}
	return !w.rules.Match(rel, false)
}
