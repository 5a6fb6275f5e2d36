// Package watcher monitors a content directory and reports changed posts.
package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/sgx-labs/blogindex/internal/content"
	"github.com/sgx-labs/blogindex/internal/logger"
)

// DefaultDebounce is how long Watch waits for more events before reporting.
const DefaultDebounce = 500 * time.Millisecond

// Options configures Watch.
type Options struct {
	// Skip reports whether a directory name must not be watched.
	Skip func(name string) bool
	// OnChange receives the changed .md paths of one debounce window. Calls
	// never overlap.
	OnChange func(paths []string)
	Debounce time.Duration
	Logger   *logger.Logger
}

// Watch watches every non-skipped directory under root until ctx is done or
// the event channel closes.
func Watch(ctx context.Context, root string, opts Options) error {
	log := logger.OrDiscard(opts.Logger)
	skip := opts.Skip
	if skip == nil {
		skip = func(string) bool { return false }
	}
	delay := opts.Debounce
	if delay <= 0 {
		delay = DefaultDebounce
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	// Add all directories (not skipped ones)
	dirs := walkDirs(root, skip)
	for _, d := range dirs {
		if err := w.Add(d); err != nil {
			log.Warn("could not watch directory", "dir", d, "error", err)
		}
	}
	log.Info("watching", "dirs", len(dirs), "root", root)

	// Debounce: collect changed files over a window before reporting
	var (
		mu      sync.Mutex
		runMu   sync.Mutex
		pending = make(map[string]bool)
		timer   *time.Timer
	)

	flush := func() {
		mu.Lock()
		paths := make([]string, 0, len(pending))
		for p := range pending {
			paths = append(paths, p)
		}
		pending = make(map[string]bool)
		mu.Unlock()

		if len(paths) == 0 || ctx.Err() != nil || opts.OnChange == nil {
			return
		}
		sort.Strings(paths)

		runMu.Lock()
		defer runMu.Unlock()
		opts.OnChange(paths)
	}

	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}

			if !content.IsPostFile(event.Name) {
				// But watch new directories
				if event.Has(fsnotify.Create) {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
						for _, d := range walkDirs(event.Name, skip) {
							if err := w.Add(d); err != nil {
								log.Warn("could not watch directory", "dir", d, "error", err)
							}
						}
					}
				}
				continue
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				log.Debug("post changed", "file", relativePath(event.Name, root), "op", event.Op.String())
				mu.Lock()
				pending[event.Name] = true
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(delay, flush)
				mu.Unlock()
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error", "error", err)
		}
	}
}

// walkDirs returns root and every directory below it whose name is not
// skipped. root itself is never skipped.
func walkDirs(root string, skip func(string) bool) []string {
	var dirs []string
	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != root && skip(d.Name()) {
				return filepath.SkipDir
			}
			dirs = append(dirs, path)
		}
		return nil
	})
	return dirs
}

func relativePath(filePath, root string) string {
	rel, err := filepath.Rel(root, filePath)
	if err != nil {
		return filePath
	}
	return filepath.ToSlash(rel)
}
