// Package watcher reports changes to the corpus directory so the index can be
// rebuilt without a restart.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"

	"ai-tutor-be/internal/pkg/logger"
)

// ChangeFunc receives the corpus files touched during one quiet period
type ChangeFunc func(ctx context.Context, paths []string)

type Watcher struct {
	root     string
	debounce time.Duration
	accept   func(path string) bool
	onChange ChangeFunc
	logger   logger.ILogger
}

// New watches root recursively. accept filters file paths (nil accepts all);
// onChange runs once per burst of events, debounce after the last one.
func New(root string, debounce time.Duration, accept func(string) bool, onChange ChangeFunc, log logger.ILogger) *Watcher {
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	if accept == nil {
		accept = func(string) bool { return true }
	}
	return &Watcher{root: root, debounce: debounce, accept: accept, onChange: onChange, logger: log}
}

// Run blocks until ctx is cancelled. A change still waiting for its quiet
// period when ctx ends is dropped.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := w.addTree(fw, w.root); err != nil {
		return err
	}
	w.logger.Info("WATCHER", "Watching corpus", map[string]interface{}{"root": w.root})

	pending := make(map[string]struct{})
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if ev.Op&fsnotify.Create == fsnotify.Create {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := w.addTree(fw, ev.Name); err != nil {
						w.logger.Warn("WATCHER", "Cannot watch new directory", map[string]interface{}{"path": ev.Name, "error": err})
					}
					continue
				}
			}
			if ev.Op == fsnotify.Chmod || !w.accept(ev.Name) {
				continue
			}
			pending[ev.Name] = struct{}{}
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("WATCHER", "fsnotify error", map[string]interface{}{"error": err})

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			sort.Strings(paths)
			pending = make(map[string]struct{})

			w.logger.Info("WATCHER", "Corpus changed", map[string]interface{}{"files": len(paths)})
			w.onChange(ctx, paths)
		}
	}
}

func (w *Watcher) addTree(fw *fsnotify.Watcher, root string) error {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path != root {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		return fw.Add(path)
	})
	if err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}
	return nil
}
