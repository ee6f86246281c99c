package scene

import (
	"Scrapbook3D/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	DefaultParallaxSensitivity float32 = 0.1
	DefaultParallaxSmoothing   float32 = 0.05
)

// Tilt is the scene orientation offset in radians.
type Tilt struct {
	Pitch float32
	Yaw   float32
}

func (t Tilt) IsZero(epsilon float32) bool {
	return abs32(t.Pitch) <= epsilon && abs32(t.Yaw) <= epsilon
}

// Apply rotates node by the tilt.
func (t Tilt) Apply(node *renderer.Node) {
	if node == nil {
		return
	}
	node.SetEuler(t.Pitch, t.Yaw, 0)
}

// Parallax eases the scene tilt toward the pointer. Input handlers only write
// the pointer; the tilt advances in Step.
type Parallax struct {
	Sensitivity float32
	Smoothing   float32

	pointer mgl32.Vec2
	tilt    Tilt
}

func NewParallax(sensitivity, smoothing float32) *Parallax {
	return &Parallax{Sensitivity: sensitivity, Smoothing: smoothing}
}

// NormalizePointer maps surface pixels to [-1, 1] on both axes with +Y pointing
// down the surface. It reports false for an empty surface.
func NormalizePointer(x, y float32, viewport renderer.Viewport) (mgl32.Vec2, bool) {
	if viewport.Width <= 0 || viewport.Height <= 0 {
		return mgl32.Vec2{}, false
	}
	return mgl32.Vec2{
		(x/float32(viewport.Width) - 0.5) * 2,
		(y/float32(viewport.Height) - 0.5) * 2,
	}, true
}

func (p *Parallax) SetPointer(normalized mgl32.Vec2) {
	p.pointer = normalized
}

func (p *Parallax) Pointer() mgl32.Vec2 {
	return p.pointer
}

// Target is the tilt the scene eases toward. Focus forces it to zero.
func (p *Parallax) Target(focused bool) Tilt {
	if focused {
		return Tilt{}
	}
	return Tilt{
		Pitch: p.pointer.Y() * p.Sensitivity,
		Yaw:   p.pointer.X() * p.Sensitivity,
	}
}

// Step advances the tilt one frame toward the target.
func (p *Parallax) Step(focused bool) Tilt {
	target := p.Target(focused)
	p.tilt.Pitch += (target.Pitch - p.tilt.Pitch) * p.Smoothing
	p.tilt.Yaw += (target.Yaw - p.tilt.Yaw) * p.Smoothing
	return p.tilt
}

func (p *Parallax) Tilt() Tilt {
	return p.tilt
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
