package scan

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches the workspace roots and triggers a full re-scan after
// file changes settle. Re-indexing is never incremental: every trigger
// rebuilds the whole snapshot. Triggers arriving while a scan is running
// collapse into the orchestrator's single-flight no-op.
type Watcher struct {
	orchestrator *Orchestrator
	roots        []string
	watcher      *fsnotify.Watcher
	debounceTime time.Duration
	stopCh       chan struct{}
	doneCh       chan struct{}
	stopOnce     sync.Once
}

// NewWatcher creates a file watcher that re-scans through the given
// orchestrator.
func NewWatcher(orchestrator *Orchestrator, roots []string) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		orchestrator: orchestrator,
		roots:        roots,
		watcher:      watcher,
		debounceTime: 500 * time.Millisecond,
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
	}

	for _, root := range w.roots {
		if err := w.addDirectoriesRecursively(root); err != nil {
			watcher.Close()
			return nil, err
		}
	}

	return w, nil
}

// Start begins watching for file changes.
func (w *Watcher) Start(ctx context.Context) {
	go w.watch(ctx)
}

// Stop stops the watcher and waits for the event loop to finish.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		<-w.doneCh
		w.watcher.Close()
	})
}

// watch is the main event loop with debouncing logic.
func (w *Watcher) watch(ctx context.Context) {
	defer close(w.doneCh)

	var debounceTimer *time.Timer
	rescanCh := make(chan struct{}, 1)
	changed := 0

	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case <-w.stopCh:
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if !w.shouldProcessEvent(event) {
				continue
			}
			changed++

			// New directories need to be added to the watch set.
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addDirectoriesRecursively(event.Name); err != nil {
						log.Printf("warning: failed to watch new directory %s: %v", event.Name, err)
					}
				}
			}

			// Reset the debounce timer, draining it if it already fired.
			if debounceTimer != nil {
				if !debounceTimer.Stop() {
					select {
					case <-debounceTimer.C:
					default:
					}
				}
			}
			debounceTimer = time.AfterFunc(w.debounceTime, func() {
				select {
				case rescanCh <- struct{}{}:
				default:
				}
			})

		case <-rescanCh:
			log.Printf("re-scanning after %d file change(s)...", changed)
			changed = 0
			if _, err := w.orchestrator.RunScan(ctx); err != nil {
				log.Printf("re-scan failed: %v", err)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("file watcher error: %v", err)
		}
	}
}

// shouldProcessEvent keeps only events on supported, non-ignored files,
// plus directory creations (handled above).
func (w *Watcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}

	relPath, ok := w.relToRoot(event.Name)
	if !ok {
		return false
	}
	if w.orchestrator.discovery.shouldIgnore(relPath) {
		return false
	}

	if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
		return true
	}
	return w.orchestrator.registry.Supports(event.Name)
}

// relToRoot resolves a path against the first root containing it.
func (w *Watcher) relToRoot(path string) (string, bool) {
	for _, root := range w.roots {
		rel, err := filepath.Rel(root, path)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		return filepath.ToSlash(rel), true
	}
	return "", false
}

// addDirectoriesRecursively adds all non-ignored directories in the tree
// to the watch set.
func (w *Watcher) addDirectoriesRecursively(rootPath string) error {
	return filepath.Walk(rootPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			log.Printf("warning: error accessing %s: %v", path, err)
			return nil
		}
		if !info.IsDir() {
			return nil
		}

		if relPath, ok := w.relToRoot(path); ok && relPath != "." && w.orchestrator.discovery.shouldIgnore(relPath) {
			return filepath.SkipDir
		}

		if err := w.watcher.Add(path); err != nil {
			log.Printf("warning: failed to watch directory %s: %v", path, err)
		}
		return nil
	})
}
