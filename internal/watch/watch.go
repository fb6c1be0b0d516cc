// Package watch observes a documentation tree and reports batches of changed
// markdown files after a quiet period.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/doclink/internal/fileset"
	"git.home.luguber.info/inful/doclink/internal/logfields"
	"git.home.luguber.info/inful/doclink/internal/util/sets"
)

// Callback receives the sorted batch of changed root-relative paths once the
// debounce window closes.
type Callback func(paths []string)

// Watcher watches a directory tree for markdown changes.
//
// New directories created at runtime are automatically added to the watch
// list. Hidden directories are never watched, matching the walk-based file
// set enumeration.
type Watcher struct {
	root     string
	debounce time.Duration
	logger   *slog.Logger
	cb       Callback
}

// New creates a watcher rooted at root. A non-positive debounce falls back
// to 500ms.
func New(root string, debounce time.Duration, logger *slog.Logger, cb Callback) *Watcher {
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{root: root, debounce: debounce, logger: logger, cb: cb}
}

// Run watches until ctx is cancelled. Events are batched: the callback fires
// once per quiet period with every path that changed in it.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	if err := addDirsRecursive(fsw, w.root); err != nil {
		return err
	}

	w.logger.Info("watcher started", logfields.Root(w.root))

	var timer *time.Timer
	var timerCh <-chan time.Time
	pending := sets.New[string]()

	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(w.debounce)
			timerCh = timer.C
		} else {
			timer.Reset(w.debounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			w.logger.Info("watcher stopped")
			return nil

		case <-timerCh:
			batch := sets.Sorted(pending)
			pending = sets.New[string]()
			if w.cb != nil && len(batch) > 0 {
				w.cb(batch)
			}

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}

			if ev.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(ev.Name); statErr == nil && info.IsDir() {
					if isHiddenName(filepath.Base(ev.Name)) {
						continue
					}
					if addErr := addDirsRecursive(fsw, ev.Name); addErr != nil {
						w.logger.Warn("failed to watch new directory",
							logfields.File(ev.Name), logfields.Error(addErr))
					}
					// Documents already inside the new directory count as
					// changes too (a move delivers only the directory event).
					w.collectDocs(ev.Name, pending)
					if pending.Len() > 0 {
						schedule()
					}
					continue
				}
			}

			if !fileset.IsDocFile(ev.Name) {
				continue
			}
			rel, relErr := filepath.Rel(w.root, ev.Name)
			if relErr != nil {
				continue
			}
			pending.Add(filepath.ToSlash(rel))
			schedule()

		case watchErr, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", logfields.Error(watchErr))
		}
	}
}

// collectDocs adds every markdown file under dir to pending, root-relative.
func (w *Watcher) collectDocs(dir string, pending sets.Set[string]) {
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if isHiddenName(d.Name()) && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if !fileset.IsDocFile(path) {
			return nil
		}
		rel, relErr := filepath.Rel(w.root, path)
		if relErr != nil {
			return nil
		}
		pending.Add(filepath.ToSlash(rel))
		return nil
	})
}

// addDirsRecursive adds root and all its visible subdirectories to the watcher.
func addDirsRecursive(fsw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if isHiddenName(d.Name()) && path != root {
			return filepath.SkipDir
		}
		return fsw.Add(path)
	})
}

func isHiddenName(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}
