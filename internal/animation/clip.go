package animation

import (
	"sort"

	"Scrapbook3D/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
)

// Property selects which part of a node's transform a Track drives.
type Property int

const (
	PropertyPosition Property = iota
	PropertyRotation
	PropertyScale
)

func (p Property) String() string {
	switch p {
	case PropertyPosition:
		return "position"
	case PropertyRotation:
		return "rotation"
	case PropertyScale:
		return "scale"
	}
	return "unknown"
}

// Track is a keyframed channel for one node property. Times are ascending seconds.
// Position and scale tracks use Vectors, rotation tracks use Rotations.
type Track struct {
	Node      string
	Property  Property
	Times     []float32
	Vectors   []mgl32.Vec3
	Rotations []mgl32.Quat
}

func (t *Track) Duration() float32 {
	if len(t.Times) == 0 {
		return 0
	}
	return t.Times[len(t.Times)-1]
}

func (t *Track) keyCount() int {
	n := len(t.Times)
	if t.Property == PropertyRotation {
		if len(t.Rotations) < n {
			n = len(t.Rotations)
		}
	} else if len(t.Vectors) < n {
		n = len(t.Vectors)
	}
	return n
}

// segment returns the keyframe pair around time and the blend weight between them.
func (t *Track) segment(time float32) (int, int, float32) {
	n := t.keyCount()
	if n == 0 {
		return -1, -1, 0
	}
	if n == 1 || time <= t.Times[0] {
		return 0, 0, 0
	}
	if time >= t.Times[n-1] {
		return n - 1, n - 1, 0
	}
	next := sort.Search(n, func(i int) bool { return t.Times[i] > time })
	prev := next - 1
	span := t.Times[next] - t.Times[prev]
	if span <= 0 {
		return next, next, 0
	}
	return prev, next, (time - t.Times[prev]) / span
}

// Apply writes the sampled value at time into node.
func (t *Track) Apply(node *renderer.Node, time float32) {
	a, b, w := t.segment(time)
	if a < 0 || node == nil {
		return
	}
	switch t.Property {
	case PropertyPosition:
		node.Position = lerp(t.Vectors[a], t.Vectors[b], w)
	case PropertyScale:
		node.Scale = lerp(t.Vectors[a], t.Vectors[b], w)
	case PropertyRotation:
		node.Rotation = mgl32.QuatSlerp(t.Rotations[a], t.Rotations[b], w)
	}
}

func lerp(a, b mgl32.Vec3, w float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(w))
}

// Clip is a named set of tracks, read-only once loaded.
type Clip struct {
	Name     string
	Duration float32
	Tracks   []Track
}

// NewClip derives the duration from the longest track.
func NewClip(name string, tracks ...Track) *Clip {
	c := &Clip{Name: name, Tracks: tracks}
	for i := range tracks {
		if d := tracks[i].Duration(); d > c.Duration {
			c.Duration = d
		}
	}
	return c
}
