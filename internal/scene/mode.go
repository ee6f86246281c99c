package scene

import (
	"Scrapbook3D/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
)

// Mode is the camera mode of the scene. Exactly one is active at a time.
type Mode int

const (
	Overview Mode = iota
	Focused
)

func (m Mode) String() string {
	switch m {
	case Overview:
		return "overview"
	case Focused:
		return "focused"
	}
	return "unknown"
}

// Viewpoint is a named camera pose.
type Viewpoint struct {
	Name     Mode
	Position mgl32.Vec3
	LookAt   mgl32.Vec3
}

// Viewpoints holds the two fixed camera poses.
type Viewpoints struct {
	Overview Viewpoint
	Focused  Viewpoint
}

func DefaultViewpoints() Viewpoints {
	return NewViewpoints(
		mgl32.Vec3{4, 4, 4}, mgl32.Vec3{0, 1, 0},
		mgl32.Vec3{0, 1.2, 0.6}, mgl32.Vec3{0, 0.45, 0},
	)
}

func NewViewpoints(overviewPos, overviewLook, focusedPos, focusedLook mgl32.Vec3) Viewpoints {
	return Viewpoints{
		Overview: Viewpoint{Name: Overview, Position: overviewPos, LookAt: overviewLook},
		Focused:  Viewpoint{Name: Focused, Position: focusedPos, LookAt: focusedLook},
	}
}

// For returns the viewpoint a mode targets.
func (v Viewpoints) For(mode Mode) Viewpoint {
	if mode == Focused {
		return v.Focused
	}
	return v.Overview
}

// CameraState is the live camera pose plus the transition bookkeeping.
type CameraState struct {
	Position mgl32.Vec3
	LookAt   mgl32.Vec3
	Clock    float32
	Active   bool
	Target   Mode

	fromPosition mgl32.Vec3
	fromLookAt   mgl32.Vec3
}

// Apply copies the pose onto a renderer camera.
func (s CameraState) Apply(cam *renderer.Camera) {
	if cam == nil {
		return
	}
	cam.Position = s.Position
	cam.LookAt(s.LookAt)
}
