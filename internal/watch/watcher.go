// Package watch re-runs binding validation when watched project files change.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period between a burst of file events and
// the change callback.
const DefaultDebounce = 100 * time.Millisecond

// relevantExts are the file extensions that can carry pattern IDs.
var relevantExts = map[string]bool{
	".yaml": true,
	".yml":  true,
	".json": true,
	".md":   true,
}

// Options configures a Watcher.
type Options struct {
	Dirs     []string      // directory roots to monitor recursively
	Debounce time.Duration // defaults to DefaultDebounce
}

// Watcher monitors directory trees and invokes a callback after changes
// to catalog or reference files settle.
type Watcher struct {
	opts     Options
	onChange func(path string)
	logger   *slog.Logger
}

// New creates a Watcher. A nil logger discards log output.
func New(opts Options, onChange func(path string), logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	return &Watcher{opts: opts, onChange: onChange, logger: logger}
}

// Run blocks until ctx is done. The change callback fires on a debounce
// timer goroutine after events settle.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	for _, dir := range w.opts.Dirs {
		if err := watchDirRecursive(watcher, dir); err != nil {
			w.logger.Error("failed to watch directory", "dir", dir, "error", err)
			// Don't fail - continue without watching this root
		}
	}

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			// New directories join the watch set so files created
			// inside them are seen
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = watcher.Add(event.Name)
					continue
				}
			}

			if !relevantExts[filepath.Ext(event.Name)] {
				continue
			}

			// Debounce
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			changed := event.Name
			debounceTimer = time.AfterFunc(w.opts.Debounce, func() {
				w.logger.Debug("file changed", "file", changed)
				w.onChange(changed)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", "error", err)
		}
	}
}

// watchDirRecursive adds a directory and all subdirectories to the watcher.
func watchDirRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// Skip hidden directories
			if name := d.Name(); len(name) > 1 && name[0] == '.' {
				return filepath.SkipDir
			}
			return watcher.Add(path)
		}
		return nil
	})
}
