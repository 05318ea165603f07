package taskstore

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"taskflow/internal/api"
	"taskflow/pkg/logging"
)

// Watcher detects out-of-band edits to task record files. Task records
// are owned externally, so a completed task may appear as a changed YAML
// file at any time; the watcher reloads the manager's index and publishes
// a TaskRecordsChanged event so derived-state caches can invalidate.
type Watcher struct {
	mu sync.Mutex

	manager  *Manager
	basePath string
	watcher  *fsnotify.Watcher

	// debounceInterval is how long to wait for additional changes
	// before reloading.
	debounceInterval time.Duration
	debounceTimer    *time.Timer

	stopCh  chan struct{}
	running bool
}

// NewWatcher creates a watcher for task record files under basePath.
func NewWatcher(manager *Manager, basePath string, debounceInterval time.Duration) *Watcher {
	if debounceInterval == 0 {
		debounceInterval = 500 * time.Millisecond
	}
	return &Watcher{
		manager:          manager,
		basePath:         basePath,
		debounceInterval: debounceInterval,
		stopCh:           make(chan struct{}),
	}
}

// Start begins watching for filesystem changes. It is a no-op if already
// running. The tasks directory is created when missing so the watch can
// be established before any record exists.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}

	tasksDir := filepath.Join(w.basePath, entityType)
	if err := os.MkdirAll(tasksDir, 0755); err != nil {
		w.mu.Unlock()
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		w.mu.Unlock()
		return err
	}
	if err := watcher.Add(tasksDir); err != nil {
		watcher.Close()
		w.mu.Unlock()
		return err
	}

	w.watcher = watcher
	w.running = true
	w.mu.Unlock()

	logging.Info("TaskWatcher", "Watching %s for task record changes", tasksDir)

	go w.run(ctx)
	return nil
}

// Stop shuts the watcher down.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.running {
		return
	}
	w.running = false
	close(w.stopCh)
	if w.watcher != nil {
		w.watcher.Close()
	}
}

func (w *Watcher) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.Stop()
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !isYAMLFile(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			logging.Debug("TaskWatcher", "Task file change detected: %s (%s)", event.Name, event.Op)
			w.scheduleReload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.Warn("TaskWatcher", "Watcher error: %v", err)
		}
	}
}

// scheduleReload debounces bursts of file events into one reload.
func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debounceInterval, w.reload)
}

func (w *Watcher) reload() {
	if err := w.manager.LoadDefinitions(); err != nil {
		logging.Error("TaskWatcher", err, "Failed to reload task records")
		return
	}
	api.PublishGraphEvent(api.GraphEvent{
		Type: api.GraphEventTaskRecordsChanged,
	})
}

func isYAMLFile(path string) bool {
	ext := filepath.Ext(path)
	return ext == ".yaml" || ext == ".yml"
}
