package timer

import "time"

// Window measures elapsed time against a fixed duration and fires at most
// once per arming. A state that depends on a timeout checks Expired every
// cycle; once the window fires it stays quiet until the next Reset.
type Window struct {
	// duration is the length of the window.
	duration time.Duration
	// reference is the instant the window was last armed.
	reference time.Time
	// armed reports whether the window may still fire.
	armed bool
}

// New creates a disarmed window of the given duration.
func New(duration time.Duration) *Window {
	return &Window{duration: duration}
}

// Reset arms the window, measuring from the provided instant.
func (w *Window) Reset(now time.Time) {
	w.reference = now
	w.armed = true
}

// Disarm stops the window from firing until the next Reset.
func (w *Window) Disarm() {
	w.armed = false
}

// Expired reports whether the window has elapsed. It returns true exactly
// once per arming and disarms itself when it fires.
func (w *Window) Expired(now time.Time) bool {
	if !w.armed {
		return false
	}

	if now.Sub(w.reference) < w.duration {
		return false
	}

	w.armed = false

	return true
}
