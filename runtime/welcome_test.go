package main

import (
	"testing"
	"time"

	"Scrapbook3D/internal/scene"
)

func TestWelcomeGateWaitsForReadyAndMinimum(t *testing.T) {
	tests := []struct {
		name      string
		readyAt   time.Duration
		wantHidAt time.Duration
	}{
		{"ready early", 100 * time.Millisecond, time.Second},
		{"ready late", 1500 * time.Millisecond, 1500 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWelcomeGate(time.Second)
			step := 100 * time.Millisecond
			hidAt := time.Duration(-1)
			for now := step; now <= 3*time.Second; now += step {
				if now == tt.readyAt {
					w.MarkReady()
				}
				if w.Advance(step) {
					if hidAt >= 0 {
						t.Fatal("overlay hid twice")
					}
					hidAt = now
				}
			}
			if hidAt != tt.wantHidAt {
				t.Errorf("hid at %v, want %v", hidAt, tt.wantHidAt)
			}
			if w.Visible() {
				t.Error("overlay still visible")
			}
		})
	}
}

func TestWelcomeGateNeverReady(t *testing.T) {
	w := NewWelcomeGate(time.Second)
	for i := 0; i < 100; i++ {
		if w.Advance(time.Second) {
			t.Fatal("overlay hid without the scene being ready")
		}
	}
	if !w.Visible() {
		t.Error("overlay hidden")
	}
}

func TestWindowTitle(t *testing.T) {
	tests := []struct {
		loading bool
		mode    scene.Mode
		want    string
	}{
		{true, scene.Overview, "Scrapbook - Welcome! Loading the room..."},
		{false, scene.Overview, "Scrapbook"},
		{false, scene.Focused, "Scrapbook - Back to Room: Esc"},
	}
	for _, tt := range tests {
		if got := windowTitle("Scrapbook", tt.mode, tt.loading); got != tt.want {
			t.Errorf("windowTitle(%v, %v) = %q, want %q", tt.mode, tt.loading, got, tt.want)
		}
	}
}
