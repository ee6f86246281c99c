package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Mesh is indexed triangle geometry in local space.
type Mesh struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	TexCoords []mgl32.Vec2
	Indices   []uint32

	BoundsCenter mgl32.Vec3
	BoundsRadius float32

	// GPU handles, zero until uploaded
	VAO uint32
	VBO uint32
	EBO uint32
}

// NewMesh builds a mesh and fills in normals and bounds when missing.
func NewMesh(positions []mgl32.Vec3, normals []mgl32.Vec3, texCoords []mgl32.Vec2, indices []uint32) *Mesh {
	m := &Mesh{
		Positions: positions,
		Normals:   normals,
		TexCoords: texCoords,
		Indices:   indices,
	}
	if len(m.Normals) != len(m.Positions) {
		m.Normals = RecalculateNormals(m.Positions, m.Indices)
	}
	m.CalculateBoundingSphere()
	return m
}

func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangle returns the three local-space corners of triangle i.
func (m *Mesh) Triangle(i int) (mgl32.Vec3, mgl32.Vec3, mgl32.Vec3, bool) {
	base := i * 3
	if base+2 >= len(m.Indices) {
		return mgl32.Vec3{}, mgl32.Vec3{}, mgl32.Vec3{}, false
	}
	a, b, c := m.Indices[base], m.Indices[base+1], m.Indices[base+2]
	n := uint32(len(m.Positions))
	if a >= n || b >= n || c >= n {
		return mgl32.Vec3{}, mgl32.Vec3{}, mgl32.Vec3{}, false
	}
	return m.Positions[a], m.Positions[b], m.Positions[c], true
}

func (m *Mesh) CalculateBoundingSphere() {
	if len(m.Positions) == 0 {
		m.BoundsCenter = mgl32.Vec3{}
		m.BoundsRadius = 0
		return
	}
	minV, maxV := m.Positions[0], m.Positions[0]
	for _, p := range m.Positions[1:] {
		for k := 0; k < 3; k++ {
			minV[k] = float32(math.Min(float64(minV[k]), float64(p[k])))
			maxV[k] = float32(math.Max(float64(maxV[k]), float64(p[k])))
		}
	}
	center := minV.Add(maxV).Mul(0.5)
	var maxDistSq float32
	for _, p := range m.Positions {
		if d := p.Sub(center).LenSqr(); d > maxDistSq {
			maxDistSq = d
		}
	}
	m.BoundsCenter = center
	m.BoundsRadius = float32(math.Sqrt(float64(maxDistSq)))
}

// Interleaved packs vertices as [x,y,z,u,v,nx,ny,nz] for the GPU.
func (m *Mesh) Interleaved() []float32 {
	data := make([]float32, 0, len(m.Positions)*8)
	for i, p := range m.Positions {
		var uv mgl32.Vec2
		if i < len(m.TexCoords) {
			uv = m.TexCoords[i]
		}
		normal := mgl32.Vec3{0, 1, 0}
		if i < len(m.Normals) {
			normal = m.Normals[i]
		}
		data = append(data, p[0], p[1], p[2], uv[0], uv[1], normal[0], normal[1], normal[2])
	}
	return data
}

// RecalculateNormals averages face normals onto their vertices.
func RecalculateNormals(positions []mgl32.Vec3, indices []uint32) []mgl32.Vec3 {
	normals := make([]mgl32.Vec3, len(positions))
	n := uint32(len(positions))
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		if a >= n || b >= n || c >= n {
			continue
		}
		face := positions[b].Sub(positions[a]).Cross(positions[c].Sub(positions[a]))
		if face.LenSqr() == 0 {
			continue
		}
		face = face.Normalize()
		normals[a] = normals[a].Add(face)
		normals[b] = normals[b].Add(face)
		normals[c] = normals[c].Add(face)
	}
	for i, v := range normals {
		if v.LenSqr() > 0 {
			normals[i] = v.Normalize()
		} else {
			normals[i] = mgl32.Vec3{0, 1, 0}
		}
	}
	return normals
}

// NewBoxMesh builds an axis-aligned box centred on the origin.
func NewBoxMesh(width, height, depth float32) *Mesh {
	hx, hy, hz := width/2, height/2, depth/2
	type face struct {
		normal  mgl32.Vec3
		corners [4]mgl32.Vec3
	}
	faces := []face{
		{mgl32.Vec3{0, 0, 1}, [4]mgl32.Vec3{{-hx, -hy, hz}, {hx, -hy, hz}, {hx, hy, hz}, {-hx, hy, hz}}},
		{mgl32.Vec3{0, 0, -1}, [4]mgl32.Vec3{{hx, -hy, -hz}, {-hx, -hy, -hz}, {-hx, hy, -hz}, {hx, hy, -hz}}},
		{mgl32.Vec3{1, 0, 0}, [4]mgl32.Vec3{{hx, -hy, hz}, {hx, -hy, -hz}, {hx, hy, -hz}, {hx, hy, hz}}},
		{mgl32.Vec3{-1, 0, 0}, [4]mgl32.Vec3{{-hx, -hy, -hz}, {-hx, -hy, hz}, {-hx, hy, hz}, {-hx, hy, -hz}}},
		{mgl32.Vec3{0, 1, 0}, [4]mgl32.Vec3{{-hx, hy, hz}, {hx, hy, hz}, {hx, hy, -hz}, {-hx, hy, -hz}}},
		{mgl32.Vec3{0, -1, 0}, [4]mgl32.Vec3{{-hx, -hy, -hz}, {hx, -hy, -hz}, {hx, -hy, hz}, {-hx, -hy, hz}}},
	}
	uvs := [4]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

	var positions, normals []mgl32.Vec3
	var texCoords []mgl32.Vec2
	var indices []uint32
	for _, f := range faces {
		base := uint32(len(positions))
		for i, c := range f.corners {
			positions = append(positions, c)
			normals = append(normals, f.normal)
			texCoords = append(texCoords, uvs[i])
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}
	return NewMesh(positions, normals, texCoords, indices)
}
