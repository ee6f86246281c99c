package renderer

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// Hit is one object intersected by a pick ray.
type Hit struct {
	Name     string
	Node     *Node
	Distance float32
	Point    mgl32.Vec3
}

// PickResult is sorted by ascending Distance. An empty result means nothing was hit.
type PickResult []Hit

func (r PickResult) Nearest() (Hit, bool) {
	if len(r) == 0 {
		return Hit{}, false
	}
	return r[0], true
}

// Pick casts a ray through the pointer position and intersects every visible mesh
// under root. A nil root or camera, or an empty viewport, yields no hits.
func Pick(pointerX, pointerY float32, viewport Viewport, camera *Camera, root *Node) PickResult {
	if root == nil {
		return nil
	}
	ray, ok := ScreenToRay(camera, pointerX, pointerY, viewport)
	if !ok {
		return nil
	}
	return IntersectNode(ray, root)
}

// IntersectNode returns the nearest hit of every mesh node in the subtree.
func IntersectNode(ray Ray, root *Node) PickResult {
	var hits PickResult
	root.Traverse(func(n *Node) bool {
		if !n.Visible {
			return false
		}
		if n.Mesh == nil || n.Mesh.TriangleCount() == 0 {
			return true
		}
		if hit, ok := intersectMesh(ray, n); ok {
			hits = append(hits, hit)
		}
		return true
	})
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	return hits
}

func intersectMesh(ray Ray, n *Node) (Hit, bool) {
	world := n.WorldMatrix()

	center := mgl32.TransformCoordinate(n.Mesh.BoundsCenter, world)
	radius := n.Mesh.BoundsRadius * maxAxisScale(world)
	if ok, _, _ := RayIntersectSphere(ray, center, radius); !ok {
		return Hit{}, false
	}

	best := Hit{Name: n.Name, Node: n, Distance: float32(math.Inf(1))}
	found := false
	for i := 0; i < n.Mesh.TriangleCount(); i++ {
		a, b, c, ok := n.Mesh.Triangle(i)
		if !ok {
			continue
		}
		a = mgl32.TransformCoordinate(a, world)
		b = mgl32.TransformCoordinate(b, world)
		c = mgl32.TransformCoordinate(c, world)
		if hit, t, p := RayIntersectTriangle(ray, a, b, c); hit && t < best.Distance {
			best.Distance, best.Point, found = t, p, true
		}
	}
	return best, found
}

func maxAxisScale(m mgl32.Mat4) float32 {
	sx := m.Col(0).Vec3().Len()
	sy := m.Col(1).Vec3().Len()
	sz := m.Col(2).Vec3().Len()
	return float32(math.Max(float64(sx), math.Max(float64(sy), float64(sz))))
}
