// Package watch invalidates cached analysis when files change on disk. It
// bridges fsnotify events to the diagnostics engine's cache: a written,
// created, renamed, or removed file has its cache entries dropped so the
// next query re-reads and re-analyzes it.
package watch

import (
	"context"
	"io/fs"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Invalidator receives change notifications. The diagnostics engine
// satisfies it.
type Invalidator interface {
	Invalidate(file string)
}

// Watcher forwards file-system change events to an Invalidator.
type Watcher struct {
	fsw *fsnotify.Watcher
	inv Invalidator
}

// New creates a Watcher delivering to inv. Call AddTree to register
// directories, then Run to start the event loop.
func New(inv Invalidator) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{fsw: fsw, inv: inv}, nil
}

// AddTree watches root and every directory beneath it. fsnotify watches are
// per-directory and not recursive, so the tree is walked up front; directories
// created later are added as their create events arrive.
func (w *Watcher) AddTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if name := d.Name(); name != "." && (name[0] == '.' || name == "vendor" || name == "node_modules") {
			return filepath.SkipDir
		}
		return w.fsw.Add(path)
	})
}

// Run processes events until ctx is cancelled or the underlying watcher
// closes. Every content-affecting event invalidates the named file; a
// created directory is added to the watch set.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if ev.Op.Has(fsnotify.Create) {
				// New directories must be watched too. Add fails harmlessly
				// for plain files and already-removed paths.
				_ = w.fsw.Add(ev.Name)
			}
			if ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) ||
				ev.Op.Has(fsnotify.Rename) || ev.Op.Has(fsnotify.Remove) {
				w.inv.Invalidate(ev.Name)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			if err != nil {
				return err
			}
		}
	}
}

// Close stops the watcher and releases its OS resources.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
