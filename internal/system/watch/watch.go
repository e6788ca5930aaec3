// Released under an MIT license. See LICENSE.

// Package watch reports changes to rule files.
package watch

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long a file must be quiet before it is reported.
const DefaultDebounce = 100 * time.Millisecond

// T (watch) watches a set of files.
type T struct {
	debounce time.Duration
	done     chan struct{}
	files    map[string]struct{}
	logger   *zap.Logger
	reload   func(path string)
	watcher  *fsnotify.Watcher

	mu      sync.Mutex
	pending sync.WaitGroup
	stopped bool
	timers  map[string]*time.Timer
}

// New starts watching paths. After a file changes, and has been quiet
// for debounce, reload is called with its path. Calls to reload are
// made from another goroutine.
func New(paths []string, debounce time.Duration, logger *zap.Logger, reload func(path string)) (*T, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	w := &T{
		debounce: debounce,
		done:     make(chan struct{}),
		files:    map[string]struct{}{},
		logger:   logger,
		reload:   reload,
		timers:   map[string]*time.Timer{},
		watcher:  watcher,
	}

	// Directories are watched so that files replaced by editors are seen.
	dirs := map[string]struct{}{}

	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			watcher.Close()

			return nil, err
		}

		w.files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}

	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()

			return nil, fmt.Errorf("failed to watch %q: %w", dir, err)
		}
	}

	go w.loop()

	return w, nil
}

// Close stops watching and waits for any reload in progress.
func (w *T) Close() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()

		return nil
	}

	w.stopped = true

	for path, t := range w.timers {
		if t.Stop() {
			w.pending.Done()
		}

		delete(w.timers, path)
	}
	w.mu.Unlock()

	err := w.watcher.Close()

	<-w.done
	w.pending.Wait()

	return err
}

func (w *T) loop() {
	defer close(w.done)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			if _, ok := w.files[filepath.Clean(event.Name)]; !ok {
				continue
			}

			w.logger.Debug("rule file changed",
				zap.String("path", event.Name),
				zap.String("op", event.Op.String()))

			w.schedule(filepath.Clean(event.Name))

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}

			w.logger.Warn("file watcher error", zap.Error(err))
		}
	}
}

func (w *T) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return
	}

	if t, ok := w.timers[path]; ok && t.Stop() {
		t.Reset(w.debounce)

		return
	}

	w.pending.Add(1)

	var t *time.Timer

	t = time.AfterFunc(w.debounce, func() {
		defer w.pending.Done()

		w.mu.Lock()
		if w.timers[path] == t {
			delete(w.timers, path)
		}
		stopped := w.stopped
		w.mu.Unlock()

		if !stopped {
			w.reload(path)
		}
	})

	w.timers[path] = t
}
