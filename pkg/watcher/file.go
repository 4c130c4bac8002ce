package watcher

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// FileWatcher calls a function after a file changes. It watches the parent
// directory so atomic rename-over saves are seen too.
type FileWatcher struct {
	path      string
	onChange  func()
	watcher   *fsnotify.Watcher
	window    time.Duration
	debouncer *debouncer
	logger    *zap.Logger

	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
	started   bool
}

// Option configures a FileWatcher
type Option func(*FileWatcher)

// WithDebounce sets the debounce window
func WithDebounce(d time.Duration) Option {
	return func(w *FileWatcher) {
		w.window = d
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(w *FileWatcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// NewFileWatcher creates a watcher for path. onChange runs on its own
// goroutine; callers that own state must hand the event to their loop.
func NewFileWatcher(path string, onChange func(), opts ...Option) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve watch path: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	w := &FileWatcher{
		path:     abs,
		onChange: onChange,
		watcher:  fw,
		logger:   zap.NewNop(),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.debouncer = newDebouncer(w.window, onChange)
	return w, nil
}

// Path returns the absolute path being watched
func (w *FileWatcher) Path() string {
	return w.path
}

// Start begins watching. It does not block.
func (w *FileWatcher) Start() error {
	if w.started {
		return nil
	}
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}
	w.started = true

	w.wg.Add(1)
	go w.loop()
	w.logger.Debug("watching dataset", zap.String("path", w.path))
	return nil
}

func (w *FileWatcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			w.logger.Debug("dataset changed", zap.String("path", w.path), zap.String("op", ev.Op.String()))
			w.debouncer.trigger()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("file watcher error", zap.Error(err))
		}
	}
}

// Close stops watching and drops any pending callback
func (w *FileWatcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		w.debouncer.stop()
		err = w.watcher.Close()
		w.wg.Wait()
	})
	return err
}
