package scene

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func approxVec(a, b mgl32.Vec3, eps float32) bool {
	return a.Sub(b).Len() <= eps
}

func TestEaseCurve(t *testing.T) {
	e := NewTransitionEngine(DefaultViewpoints(), 1)
	for _, p := range []float32{0, 0.1, 0.25, 0.5, 0.6, 0.9, 1} {
		var want float64
		if p < 0.5 {
			want = 4 * math.Pow(float64(p), 3)
		} else {
			want = 1 - math.Pow(-2*float64(p)+2, 3)/2
		}
		if got := e.weight(p); math.Abs(float64(got)-want) > 1e-5 {
			t.Errorf("weight(%v) = %v, want %v", p, got, want)
		}
	}
}

func TestProgress(t *testing.T) {
	e := NewTransitionEngine(DefaultViewpoints(), 2)
	tests := []struct {
		clock, want float32
	}{
		{-1, 0},
		{0, 0},
		{1, 0.5},
		{5, 1},
	}
	for _, tt := range tests {
		if got := e.Progress(tt.clock); got != tt.want {
			t.Errorf("Progress(%v) = %v, want %v", tt.clock, got, tt.want)
		}
	}
	zero := NewTransitionEngine(DefaultViewpoints(), 0)
	if zero.Progress(0) != 1 {
		t.Error("zero duration should complete immediately")
	}
}

func TestStartRestsOnViewpoint(t *testing.T) {
	e := NewTransitionEngine(DefaultViewpoints(), 1)
	s := e.Start(Overview)
	next := e.Next(s, Overview, 0.016)
	if next.Active {
		t.Error("resting state became active")
	}
	if !approxVec(next.Position, e.Viewpoints.Overview.Position, 1e-6) {
		t.Errorf("Position = %v", next.Position)
	}
}

func TestTargetChangeResetsClock(t *testing.T) {
	e := NewTransitionEngine(DefaultViewpoints(), 1)
	s := e.Start(Overview)
	s = e.Next(s, Overview, 3)
	s = e.Next(s, Focused, 0.5)
	if s.Clock != 0 || !s.Active || s.Target != Focused {
		t.Errorf("state after target change = %+v", s)
	}
	if !approxVec(s.Position, e.Viewpoints.Overview.Position, 1e-6) {
		t.Error("camera jumped on the reset frame")
	}
}

func TestCameraConverges(t *testing.T) {
	e := NewTransitionEngine(DefaultViewpoints(), 1)
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		s := CameraState{
			Position: mgl32.Vec3{rng.Float32()*20 - 10, rng.Float32()*20 - 10, rng.Float32()*20 - 10},
			LookAt:   mgl32.Vec3{rng.Float32()*4 - 2, rng.Float32()*4 - 2, rng.Float32()*4 - 2},
			Target:   Overview,
		}
		dt := 0.005 + rng.Float32()*0.05
		for elapsed := float32(0); elapsed < 1+3*dt; elapsed += dt {
			s = e.Next(s, Focused, dt)
		}
		vp := e.Viewpoints.Focused
		if !approxVec(s.Position, vp.Position, 1e-4) || !approxVec(s.LookAt, vp.LookAt, 1e-4) {
			t.Fatalf("run %d: pose %v -> %v, want %v -> %v", i, s.Position, s.LookAt, vp.Position, vp.LookAt)
		}
		if s.Active {
			t.Fatalf("run %d: still active after the full duration", i)
		}
		s = e.Next(s, Focused, 0.5)
		if !approxVec(s.Position, vp.Position, 1e-6) {
			t.Fatalf("run %d: camera drifted off target while idle", i)
		}
	}
}

func TestMidFlightReversalStartsFromCurrentPose(t *testing.T) {
	e := NewTransitionEngine(DefaultViewpoints(), 1)
	s := e.Start(Overview)
	s = e.Next(s, Focused, 0)
	for i := 0; i < 5; i++ {
		s = e.Next(s, Focused, 0.1)
	}
	mid := s.Position
	if approxVec(mid, e.Viewpoints.Overview.Position, 1e-3) || approxVec(mid, e.Viewpoints.Focused.Position, 1e-3) {
		t.Fatalf("expected a mid-flight pose, got %v", mid)
	}

	s = e.Next(s, Overview, 0.1)
	if !approxVec(s.Position, mid, 1e-6) {
		t.Errorf("reversal moved the camera on its first frame: %v -> %v", mid, s.Position)
	}
	s = e.Next(s, Overview, 0.1)
	fromMid := s.Position.Sub(mid).Len()
	if fromMid == 0 || fromMid > 0.1 {
		t.Errorf("reversal should ease out of the mid pose, moved %v", fromMid)
	}
}
