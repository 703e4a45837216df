// Package watch re-triggers analysis when watched files change on disk.
//
// Watches are placed on each file's parent directory rather than the file
// itself, so editors that save by writing a temp file and renaming it over
// the original are still observed. Events for other files in those
// directories are dropped.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is used when New is given a non-positive window.
const DefaultDebounce = 250 * time.Millisecond

// ErrNoFiles is returned by New when no paths are given.
var ErrNoFiles = errors.New("watch: no files to watch")

// Watcher reports changes to a fixed set of files.
type Watcher struct {
	files     map[string]struct{}
	dirs      []string
	fsWatcher *fsnotify.Watcher
	debouncer *Debouncer
	logger    *zap.Logger

	mu      sync.Mutex
	running bool
	stopped bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// New creates a Watcher over paths. onChange receives the sorted absolute
// paths that changed during each debounce window.
func New(paths []string, debounce time.Duration, logger *zap.Logger, onChange func([]string)) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, ErrNoFiles
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	files := make(map[string]struct{}, len(paths))
	dirSet := make(map[string]struct{})
	var dirs []string
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", p, err)
		}
		files[abs] = struct{}{}
		dir := filepath.Dir(abs)
		if _, ok := dirSet[dir]; !ok {
			dirSet[dir] = struct{}{}
			dirs = append(dirs, dir)
		}
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	for _, dir := range dirs {
		if err := fsWatcher.Add(dir); err != nil {
			fsWatcher.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	w := &Watcher{
		files:     files,
		dirs:      dirs,
		fsWatcher: fsWatcher,
		logger:    logger,
	}
	w.debouncer = NewDebouncer(debounce, onChange)
	return w, nil
}

// Start begins delivering events in a background goroutine until ctx is
// done or Stop is called. Calling Start on a running watcher is a no-op.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return errors.New("watch: watcher is stopped")
	}
	if w.running {
		return nil
	}
	w.running = true

	ctx, w.cancel = context.WithCancel(ctx)
	w.done = make(chan struct{})
	go w.handleEvents(ctx)

	w.logger.Info("watching files", zap.Int("files", len(w.files)), zap.Strings("dirs", w.dirs))
	return nil
}

func (w *Watcher) handleEvents(ctx context.Context) {
	defer close(w.done)
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if _, watched := w.files[filepath.Clean(event.Name)]; !watched {
				continue
			}
			w.logger.Debug("file event", zap.String("path", event.Name), zap.String("op", event.Op.String()))
			w.debouncer.Add(filepath.Clean(event.Name))

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", zap.Error(err))
		}
	}
}

// Stop ends event delivery, flushes pending changes to the callback, and
// releases the underlying watcher. It is safe to call more than once.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	running := w.running
	w.mu.Unlock()

	if running {
		w.cancel()
		<-w.done
	}
	w.debouncer.Stop()
	return w.fsWatcher.Close()
}
