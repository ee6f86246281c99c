package renderer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNewNodeDefaults(t *testing.T) {
	n := NewNode("Book")

	if n.Scale != (mgl32.Vec3{1, 1, 1}) {
		t.Errorf("Expected unit scale, got %v", n.Scale)
	}
	if !n.Visible {
		t.Error("New nodes should be visible")
	}
	if n.LocalMatrix() != mgl32.Ident4() {
		t.Error("Default local matrix should be identity")
	}
}

func TestNodeReparent(t *testing.T) {
	a := NewNode("A")
	b := NewNode("B")
	child := NewNode("child")

	a.Add(child)
	b.Add(child)

	if len(a.Children) != 0 {
		t.Errorf("Old parent should lose the child, has %d", len(a.Children))
	}
	if child.Parent != b {
		t.Error("Child should point at its new parent")
	}
}

func TestNodeWorldMatrix(t *testing.T) {
	parent := NewNode("parent")
	parent.SetPosition(0, 0.575, 0.25)
	parent.SetScale(0.15, 0.15, 0.15)
	child := NewNode("child")
	child.SetPosition(1, 0, 0)
	parent.Add(child)

	p := mgl32.TransformCoordinate(mgl32.Vec3{}, child.WorldMatrix())

	want := mgl32.Vec3{0.15, 0.575, 0.25}
	if !p.ApproxEqualThreshold(want, 1e-5) {
		t.Errorf("Expected child origin at %v, got %v", want, p)
	}
}

func TestNodeFind(t *testing.T) {
	root := NewNode("root")
	book := NewNode("Book")
	cover := NewNode("BookCover_Top")
	page := NewNode("Page_1")
	root.Add(book)
	book.Add(cover)
	book.Add(page)

	if root.Find("Page_1") != page {
		t.Error("Find should locate nested nodes")
	}
	if root.Find("missing") != nil {
		t.Error("Find should return nil for unknown names")
	}
	if got := len(root.FindAll("Book")); got != 2 {
		t.Errorf("Expected 2 nodes containing 'Book', got %d", got)
	}
	if !page.IsDescendantOf(book) || book.IsDescendantOf(page) {
		t.Error("IsDescendantOf reports the wrong relationship")
	}
}

func TestBoxMeshBounds(t *testing.T) {
	m := NewBoxMesh(2, 2, 2)

	if m.TriangleCount() != 12 {
		t.Errorf("Expected 12 triangles, got %d", m.TriangleCount())
	}
	if !approx(m.BoundsRadius, float32(1.7320508)) {
		t.Errorf("Expected radius sqrt(3), got %f", m.BoundsRadius)
	}
	if len(m.Interleaved()) != len(m.Positions)*8 {
		t.Error("Interleaved data should have 8 floats per vertex")
	}
}

func TestRecalculateNormals(t *testing.T) {
	positions := []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	normals := RecalculateNormals(positions, []uint32{0, 1, 2})

	for i, n := range normals {
		if !n.ApproxEqualThreshold(mgl32.Vec3{0, 0, 1}, 1e-5) {
			t.Errorf("Normal %d should face +Z, got %v", i, n)
		}
	}
}
