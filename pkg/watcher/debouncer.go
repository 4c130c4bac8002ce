// Package watcher reloads a dataset file when it changes on disk.
package watcher

import (
	"sync"
	"time"
)

// DefaultDebounceDuration is the quiet window used when none is set.
// Editors and export scripts often write a file in several steps.
const DefaultDebounceDuration = 250 * time.Millisecond

// debouncer runs fn once no trigger has arrived for a full window.
// After stop it never runs fn again.
type debouncer struct {
	window time.Duration
	fn     func()

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	stopped bool
}

func newDebouncer(window time.Duration, fn func()) *debouncer {
	if window <= 0 {
		window = DefaultDebounceDuration
	}
	return &debouncer{window: window, fn: fn}
}

// trigger restarts the quiet window
func (d *debouncer) trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.gen++
	gen := d.gen
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, func() { d.fire(gen) })
}

// fire runs fn only for the latest trigger; a stale timer may still fire
// after Stop reports false.
func (d *debouncer) fire(gen uint64) {
	d.mu.Lock()
	run := !d.stopped && gen == d.gen
	d.mu.Unlock()
	if run {
		d.fn()
	}
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
