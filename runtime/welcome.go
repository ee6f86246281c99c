package main

import "time"

// WelcomeGate keeps the welcome overlay up until the scene is ready and the
// overlay has been shown for at least MinDisplay.
type WelcomeGate struct {
	MinDisplay time.Duration

	elapsed time.Duration
	ready   bool
	hidden  bool
}

func NewWelcomeGate(minDisplay time.Duration) *WelcomeGate {
	return &WelcomeGate{MinDisplay: minDisplay}
}

func (w *WelcomeGate) MarkReady() {
	w.ready = true
}

// Advance adds one frame of display time and reports whether the overlay
// hid during this frame.
func (w *WelcomeGate) Advance(delta time.Duration) bool {
	if w.hidden {
		return false
	}
	if delta > 0 {
		w.elapsed += delta
	}
	if w.ready && w.elapsed >= w.MinDisplay {
		w.hidden = true
		return true
	}
	return false
}

func (w *WelcomeGate) Visible() bool {
	return !w.hidden
}
