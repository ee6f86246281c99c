package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
)

var FrustumCullingEnabled bool = true
var FaceCullingEnabled bool = false
var Debug bool = false
var DepthTestEnabled bool = true

// Light is a directional light; Direction points from the light towards the scene.
type Light struct {
	Direction mgl32.Vec3
	Color     mgl32.Vec3
	Intensity float32
}

// Render draws a scene graph from a camera.
type Render interface {
	Init(width, height int32)
	Upload(root *Node)
	Render(camera *Camera, root *Node, lights []*Light)
	UpdateViewport(width, height int32)
	Cleanup()
}

// CreateDirectionalLight creates a light shining from position towards the origin.
func CreateDirectionalLight(position mgl32.Vec3, color mgl32.Vec3, intensity float32) *Light {
	return &Light{
		Direction: position.Mul(-1).Normalize(),
		Color:     color,
		Intensity: intensity,
	}
}

// DefaultLights is the room lighting: a key light from (5,5,5) and a fill light from (-5,5,-5).
func DefaultLights() []*Light {
	return []*Light{
		CreateDirectionalLight(mgl32.Vec3{5, 5, 5}, mgl32.Vec3{1, 1, 1}, 1.0),
		CreateDirectionalLight(mgl32.Vec3{-5, 5, -5}, mgl32.Vec3{1, 1, 1}, 0.5),
	}
}

// ParseHexColor converts "#rrggbb" to linear 0..1 components. Malformed input yields black.
func ParseHexColor(hex string) mgl32.Vec3 {
	if len(hex) == 7 && hex[0] == '#' {
		hex = hex[1:]
	}
	if len(hex) != 6 {
		return mgl32.Vec3{}
	}
	var out mgl32.Vec3
	for i := 0; i < 3; i++ {
		hi, ok1 := hexDigit(hex[i*2])
		lo, ok2 := hexDigit(hex[i*2+1])
		if !ok1 || !ok2 {
			return mgl32.Vec3{}
		}
		out[i] = float32(hi<<4|lo) / 255.0
	}
	return out
}

func hexDigit(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
