// Package watch re-runs work when a file changes on disk.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/teranos/satgraph/errors"
	"github.com/teranos/satgraph/logger"
)

// DefaultDebounce collapses the burst of events a single save produces
const DefaultDebounce = 500 * time.Millisecond

// ChangeCallback is called with the watched path after changes settle
type ChangeCallback func(path string) error

// FileWatcher watches one file and triggers callbacks after a debounce period.
// The parent directory is watched so that editors replacing the file by
// rename are still seen.
type FileWatcher struct {
	path           string
	watcher        *fsnotify.Watcher
	log            *zap.SugaredLogger
	callbacks      []ChangeCallback
	mu             sync.Mutex
	debounceTimer  *time.Timer
	debouncePeriod time.Duration
	stopOnce       sync.Once
}

// NewFileWatcher creates a watcher for path. A debounce <= 0 uses DefaultDebounce.
func NewFileWatcher(path string, debounce time.Duration, log *zap.SugaredLogger) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve %s", path)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, errors.Wrapf(err, "failed to watch directory of %s", path)
	}

	return &FileWatcher{
		path:           abs,
		watcher:        w,
		log:            log,
		debouncePeriod: debounce,
	}, nil
}

// OnChange registers a callback
func (fw *FileWatcher) OnChange(callback ChangeCallback) {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	fw.callbacks = append(fw.callbacks, callback)
}

// Path returns the absolute path being watched
func (fw *FileWatcher) Path() string {
	return fw.path
}

// Run processes events until ctx is cancelled or the watcher is stopped
func (fw *FileWatcher) Run(ctx context.Context) error {
	defer fw.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return nil
			}
			if !fw.relevant(event) {
				continue
			}
			fw.log.Debugw("File change detected",
				logger.FieldFile, event.Name,
				"op", event.Op.String())
			fw.schedule()

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return nil
			}
			fw.log.Warnw("File watcher error", logger.FieldError, err)
		}
	}
}

// relevant reports write and create events on the watched file
func (fw *FileWatcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != fw.path {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create) != 0
}

// schedule debounces rapid changes into one callback run
func (fw *FileWatcher) schedule() {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.debounceTimer != nil {
		fw.debounceTimer.Stop()
	}
	fw.debounceTimer = time.AfterFunc(fw.debouncePeriod, fw.fire)
}

func (fw *FileWatcher) fire() {
	fw.mu.Lock()
	callbacks := make([]ChangeCallback, len(fw.callbacks))
	copy(callbacks, fw.callbacks)
	fw.mu.Unlock()

	for _, callback := range callbacks {
		if err := callback(fw.path); err != nil {
			// Keep calling the rest
			fw.log.Warnw("Change callback failed",
				logger.FieldFile, fw.path,
				logger.FieldError, err)
		}
	}
}

// Stop stops watching and cancels any pending callback
func (fw *FileWatcher) Stop() error {
	var err error
	fw.stopOnce.Do(func() {
		fw.mu.Lock()
		if fw.debounceTimer != nil {
			fw.debounceTimer.Stop()
		}
		fw.mu.Unlock()
		err = fw.watcher.Close()
	})
	return err
}
