package view

import (
	"sync"
	"time"
)

// DefaultDebounce is the reference interval for raw search keystrokes.
const DefaultDebounce = 200 * time.Millisecond

// Debouncer coalesces a burst of calls into one trailing invocation. It
// sits between raw keystrokes and Controller.SetQuery; the pipeline itself
// stays synchronous and debounce-agnostic.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

// NewDebouncer creates a debouncer. Non-positive delays fall back to the
// default interval.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{delay: delay}
}

// Trigger schedules fn after the delay, cancelling any pending call.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels any pending call.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
