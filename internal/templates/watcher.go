package templates

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"resumecanvas/internal/errors"
)

// Watcher reloads a registry's template directory when its contents change.
// Reloads are debounced so editors that write multiple times in quick
// succession trigger a single reload.
type Watcher struct {
	mu sync.Mutex

	registry *Registry
	dir      string

	fsWatcher     *fsnotify.Watcher
	debounceDelay time.Duration
	debounceTimer *time.Timer

	stopChan   chan struct{}
	reloadChan chan struct{}

	logger  *errors.Logger
	running bool
}

// NewWatcher creates a watcher for dir feeding the given registry.
func NewWatcher(registry *Registry, dir string, debounceDelay time.Duration, logger *errors.Logger) *Watcher {
	if debounceDelay == 0 {
		debounceDelay = time.Second
	}
	return &Watcher{
		registry:      registry,
		dir:           dir,
		debounceDelay: debounceDelay,
		stopChan:      make(chan struct{}),
		reloadChan:    make(chan struct{}, 1),
		logger:        logger,
	}
}

// Start performs an initial load and begins watching the directory.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return fmt.Errorf("template watcher is already running")
	}

	if err := w.registry.LoadDir(w.dir); err != nil {
		return err
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fsWatcher.Add(w.dir); err != nil {
		fsWatcher.Close()
		return fmt.Errorf("failed to watch directory %s: %w", w.dir, err)
	}
	w.fsWatcher = fsWatcher

	w.running = true
	go w.watchLoop()

	if w.logger != nil {
		w.logger.Info("Template directory watcher started",
			"dir", w.dir,
			"debounce_delay", w.debounceDelay)
	}
	return nil
}

// Stop stops the watcher.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil
	}

	close(w.stopChan)
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	if err := w.fsWatcher.Close(); err != nil {
		if w.logger != nil {
			w.logger.LogError(err, "Failed to close file system watcher")
		}
		return err
	}
	w.running = false

	if w.logger != nil {
		w.logger.Info("Template directory watcher stopped")
	}
	return nil
}

// IsRunning reports whether the watcher is active.
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

func (w *Watcher) watchLoop() {
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if w.shouldProcessEvent(event) {
				w.scheduleReload()
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			if w.logger != nil {
				w.logger.LogError(err, "File watcher error")
			}

		case <-w.reloadChan:
			if w.logger != nil {
				w.logger.Info("Template directory changed, reloading")
			}
			if err := w.registry.LoadDir(w.dir); err != nil && w.logger != nil {
				w.logger.LogError(err, "Failed to reload template directory")
			}

		case <-w.stopChan:
			return
		}
	}
}

func (w *Watcher) shouldProcessEvent(event fsnotify.Event) bool {
	if !strings.HasSuffix(event.Name, ".json") {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0
}

func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debounceDelay, func() {
		select {
		case w.reloadChan <- struct{}{}:
		default:
		}
	})
}
