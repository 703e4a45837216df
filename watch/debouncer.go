package watch

import (
	"sort"
	"sync"
	"time"
)

// Debouncer coalesces bursts of change notifications. Paths added within
// window of each other are delivered together, once, to onFlush.
type Debouncer struct {
	window  time.Duration
	onFlush func([]string)

	mu      sync.Mutex
	pending map[string]struct{}
	timer   *time.Timer
	stopped bool
}

// NewDebouncer creates a Debouncer that calls onFlush with the sorted set of
// paths seen since the last flush.
func NewDebouncer(window time.Duration, onFlush func([]string)) *Debouncer {
	return &Debouncer{
		window:  window,
		onFlush: onFlush,
		pending: make(map[string]struct{}),
	}
}

// Add records a change to path and restarts the quiet-period timer.
func (d *Debouncer) Add(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.pending[path] = struct{}{}

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.flushLocked()
}

// flushLocked drains pending paths and releases d.mu before calling onFlush.
func (d *Debouncer) flushLocked() {
	paths := make([]string, 0, len(d.pending))
	for p := range d.pending {
		paths = append(paths, p)
	}
	d.pending = make(map[string]struct{})
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()

	if len(paths) > 0 && d.onFlush != nil {
		sort.Strings(paths)
		d.onFlush(paths)
	}
}

// Stop cancels the timer and flushes anything still pending. Further Adds
// are ignored. Stop is safe to call more than once.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	d.flushLocked()
}
