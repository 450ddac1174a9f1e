package services

import (
	"sync"
	"time"
)

// DebounceTimer holds at most one pending callback.
// Arming it replaces whatever was pending.
type DebounceTimer struct {
	clock Clock

	mu    sync.Mutex
	delay time.Duration
	timer Timer
	fn    func()
	gen   uint64
}

// NewDebounceTimer creates a timer that fires delay after the last Arm.
func NewDebounceTimer(clock Clock, delay time.Duration) *DebounceTimer {
	if clock == nil {
		clock = RealClock()
	}
	return &DebounceTimer{clock: clock, delay: delay}
}

// Arm cancels any pending callback and schedules fn.
func (d *DebounceTimer) Arm(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	d.gen++
	gen := d.gen
	d.fn = fn
	d.timer = d.clock.AfterFunc(d.delay, func() {
		d.mu.Lock()
		// A callback racing with Arm or Cancel belongs to a superseded generation.
		if d.gen != gen {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.fn = nil
		d.mu.Unlock()
		fn()
	})
}

// Cancel drops the pending callback. It reports whether one was pending.
func (d *DebounceTimer) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stopLocked()
}

// Fire runs the pending callback now, on the caller's goroutine.
// It reports whether there was one.
func (d *DebounceTimer) Fire() bool {
	d.mu.Lock()
	fn := d.fn
	if !d.stopLocked() {
		d.mu.Unlock()
		return false
	}
	d.mu.Unlock()
	fn()
	return true
}

// Pending reports whether a callback is armed.
func (d *DebounceTimer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Delay returns the current debounce delay.
func (d *DebounceTimer) Delay() time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.delay
}

// SetDelay changes the delay used by later Arm calls.
func (d *DebounceTimer) SetDelay(delay time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.delay = delay
}

func (d *DebounceTimer) stopLocked() bool {
	if d.timer == nil {
		return false
	}
	d.timer.Stop()
	d.timer = nil
	d.fn = nil
	d.gen++
	return true
}
