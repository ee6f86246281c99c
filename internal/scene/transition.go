package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween/ease"
)

// DefaultTransitionDuration is the time in seconds a viewpoint change takes.
const DefaultTransitionDuration float32 = 1.0

// TransitionEngine moves the camera between viewpoints along a fixed-duration
// eased path.
type TransitionEngine struct {
	Viewpoints Viewpoints
	Duration   float32
	Ease       ease.TweenFunc
}

func NewTransitionEngine(viewpoints Viewpoints, duration float32) *TransitionEngine {
	return &TransitionEngine{
		Viewpoints: viewpoints,
		Duration:   duration,
		Ease:       ease.InOutCubic,
	}
}

// Start returns a state resting on the viewpoint of mode.
func (e *TransitionEngine) Start(mode Mode) CameraState {
	vp := e.Viewpoints.For(mode)
	return CameraState{
		Position:     vp.Position,
		LookAt:       vp.LookAt,
		Target:       mode,
		fromPosition: vp.Position,
		fromLookAt:   vp.LookAt,
	}
}

// Next computes the camera state one frame of dt seconds after prev.
// A change of target restarts the clock from wherever the camera currently is.
func (e *TransitionEngine) Next(prev CameraState, mode Mode, dt float32) CameraState {
	next := prev
	if mode != prev.Target {
		next.Target = mode
		next.Clock = 0
		next.Active = true
		next.fromPosition = prev.Position
		next.fromLookAt = prev.LookAt
	} else if dt > 0 {
		next.Clock += dt
	}

	weight := e.weight(next.Clock)
	vp := e.Viewpoints.For(mode)
	next.Position = lerp(next.fromPosition, vp.Position, weight)
	next.LookAt = lerp(next.fromLookAt, vp.LookAt, weight)
	if weight >= 1 {
		next.Active = false
	}
	return next
}

// Progress is the linear completion of the transition in [0, 1].
func (e *TransitionEngine) Progress(clock float32) float32 {
	if e.Duration <= 0 {
		return 1
	}
	p := clock / e.Duration
	if p > 1 {
		return 1
	}
	if p < 0 {
		return 0
	}
	return p
}

func (e *TransitionEngine) weight(clock float32) float32 {
	p := e.Progress(clock)
	if p >= 1 {
		return 1
	}
	fn := e.Ease
	if fn == nil {
		fn = ease.InOutCubic
	}
	return fn(p, 0, 1, 1)
}

func lerp(a, b mgl32.Vec3, w float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(w))
}
