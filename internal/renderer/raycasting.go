package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Ray represents a ray in 3D space. Direction is unit length, so hit
// parameters double as distances.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// Viewport is the pixel size of the rendering surface.
type Viewport struct {
	Width  int
	Height int
}

// NormalizedDevice maps a pixel coordinate to [-1,1] on both axes, y up.
func (v Viewport) NormalizedDevice(x, y float32) (mgl32.Vec2, bool) {
	if v.Width <= 0 || v.Height <= 0 {
		return mgl32.Vec2{}, false
	}
	return mgl32.Vec2{
		(x/float32(v.Width))*2 - 1,
		-(y/float32(v.Height))*2 + 1,
	}, true
}

// RayIntersectSphere tests if a ray intersects a sphere
// Returns: (intersected, distance, intersection point)
func RayIntersectSphere(ray Ray, sphereCenter mgl32.Vec3, radius float32) (bool, float32, mgl32.Vec3) {
	oc := ray.Origin.Sub(sphereCenter)

	a := ray.Direction.Dot(ray.Direction)
	b := 2.0 * oc.Dot(ray.Direction)
	c := oc.Dot(oc) - radius*radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 || a == 0 {
		return false, 0, mgl32.Vec3{}
	}

	sqrtDisc := float32(math.Sqrt(float64(discriminant)))
	t1 := (-b - sqrtDisc) / (2 * a)
	t2 := (-b + sqrtDisc) / (2 * a)

	// Closest intersection in front of the origin
	var t float32
	switch {
	case t1 > 0:
		t = t1
	case t2 > 0:
		t = t2
	default:
		return false, 0, mgl32.Vec3{}
	}

	return true, t, ray.Origin.Add(ray.Direction.Mul(t))
}

// RayIntersectTriangle tests if a ray intersects a triangle
// Returns: (intersected, distance, intersection point)
// Uses Möller-Trumbore algorithm
func RayIntersectTriangle(ray Ray, v0, v1, v2 mgl32.Vec3) (bool, float32, mgl32.Vec3) {
	const epsilon = 0.0000001

	edge1 := v1.Sub(v0)
	edge2 := v2.Sub(v0)
	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)

	if a > -epsilon && a < epsilon {
		return false, 0, mgl32.Vec3{} // Ray is parallel to triangle
	}

	f := 1.0 / a
	s := ray.Origin.Sub(v0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return false, 0, mgl32.Vec3{}
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return false, 0, mgl32.Vec3{}
	}

	t := f * edge2.Dot(q)
	if t > epsilon {
		return true, t, ray.Origin.Add(ray.Direction.Mul(t))
	}

	return false, 0, mgl32.Vec3{} // Line intersection but not ray intersection
}

// ScreenToRay converts a pixel position to a world-space ray leaving the camera eye.
func ScreenToRay(camera *Camera, screenX, screenY float32, viewport Viewport) (Ray, bool) {
	if camera == nil {
		return Ray{}, false
	}
	ndc, ok := viewport.NormalizedDevice(screenX, screenY)
	if !ok {
		return Ray{}, false
	}

	vp := camera.GetViewProjection()
	if vp.Det() == 0 {
		return Ray{}, false
	}
	far := mgl32.TransformCoordinate(mgl32.Vec3{ndc.X(), ndc.Y(), 1}, vp.Inv())

	dir := far.Sub(camera.Position)
	if dir.LenSqr() == 0 {
		return Ray{}, false
	}
	return Ray{Origin: camera.Position, Direction: dir.Normalize()}, true
}
