// Package watch reports changes to the catalog file.
package watch

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeHandler is called once the file has been quiet for the debounce delay
type ChangeHandler func() error

// Watcher monitors a single file for writes, creation and replacement.
// The parent directory is watched so that editors which save by renaming a
// temporary file over the original are still seen.
type Watcher struct {
	path          string
	debounceDelay time.Duration
	handler       ChangeHandler
	watcher       *fsnotify.Watcher
	stopChan      chan struct{}
	doneChan      chan struct{}
	stopOnce      sync.Once

	// Debouncing state
	mu    sync.Mutex
	timer *time.Timer
}

// NewWatcher creates a watcher for the file at path
func NewWatcher(path string, debounceDelay time.Duration, handler ChangeHandler) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		path:          normalizePath(path),
		debounceDelay: debounceDelay,
		handler:       handler,
		watcher:       fsWatcher,
		stopChan:      make(chan struct{}),
		doneChan:      make(chan struct{}),
	}, nil
}

// Start begins watching the file's directory
func (w *Watcher) Start() error {
	dir := filepath.Dir(w.path)
	if err := w.watcher.Add(dir); err != nil {
		w.watcher.Close()
		return fmt.Errorf("failed to add directory to watch: %w", err)
	}

	go w.processEvents()

	slog.Info("file watcher started",
		"file", w.path,
		"debounce_seconds", w.debounceDelay.Seconds(),
	)
	return nil
}

// Stop stops watching and cancels a pending notification
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.stopChan)
		<-w.doneChan // Wait for event loop to finish

		w.mu.Lock()
		if w.timer != nil {
			w.timer.Stop()
		}
		w.mu.Unlock()

		err = w.watcher.Close()
	})
	return err
}

// Wait blocks until the watcher is stopped
func (w *Watcher) Wait() {
	<-w.doneChan
}

// processEvents handles fsnotify events
func (w *Watcher) processEvents() {
	defer close(w.doneChan)

	for {
		select {
		case <-w.stopChan:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("watcher error", "error", err)
		}
	}
}

// handleEvent filters events down to the watched file
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if normalizePath(event.Name) != w.path {
		return
	}

	if event.Has(fsnotify.Create) || event.Has(fsnotify.Write) || event.Has(fsnotify.Rename) {
		slog.Debug("file event detected",
			"event", event.Op.String(),
			"file", filepath.Base(w.path),
		)
		w.scheduleNotify()
	}
}

// scheduleNotify restarts the debounce timer
func (w *Watcher) scheduleNotify() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounceDelay, w.notify)
}

func (w *Watcher) notify() {
	select {
	case <-w.stopChan:
		return
	default:
	}

	if err := w.handler(); err != nil {
		slog.Error("failed to handle file change", "file", w.path, "error", err)
	}
}

// normalizePath cleans a path and makes it absolute
func normalizePath(path string) string {
	path = filepath.Clean(path)
	if !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}
	return path
}
