package renderer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func pickScene() (*Camera, *Node) {
	cam := NewDefaultCamera(800, 600)
	cam.Position = mgl32.Vec3{0, 0, 10}
	cam.LookAt(mgl32.Vec3{0, 0, 0})

	root := NewNode("Room")
	near := NewMeshNode("ScrapbookCoverMesh", NewBoxMesh(1, 1, 1))
	near.SetPosition(0, 0, 2)
	far := NewMeshNode("CoffeTable", NewBoxMesh(4, 4, 1))
	far.SetPosition(0, 0, -2)
	root.Add(far)
	root.Add(near)
	return cam, root
}

func TestPickSortsByDistance(t *testing.T) {
	cam, root := pickScene()

	result := Pick(400, 300, Viewport{Width: 800, Height: 600}, cam, root)

	if len(result) != 2 {
		t.Fatalf("Expected 2 hits, got %d", len(result))
	}
	if result[0].Name != "ScrapbookCoverMesh" || result[1].Name != "CoffeTable" {
		t.Errorf("Unexpected hit order: %s, %s", result[0].Name, result[1].Name)
	}
	if result[0].Distance >= result[1].Distance {
		t.Error("Hits should be sorted by ascending distance")
	}
	if !approx(result[0].Distance, 7.5) {
		t.Errorf("Expected nearest hit at 7.5, got %f", result[0].Distance)
	}
}

func TestPickMiss(t *testing.T) {
	cam, root := pickScene()

	result := Pick(2, 2, Viewport{Width: 800, Height: 600}, cam, root)

	if len(result) != 0 {
		t.Errorf("Expected no hits in the corner, got %d", len(result))
	}
	if _, ok := result.Nearest(); ok {
		t.Error("Nearest of an empty result should report false")
	}
}

func TestPickNotLoaded(t *testing.T) {
	cam, _ := pickScene()

	if result := Pick(400, 300, Viewport{Width: 800, Height: 600}, cam, nil); len(result) != 0 {
		t.Error("A nil scene root should produce no hits")
	}
	if result := Pick(400, 300, Viewport{Width: 800, Height: 600}, cam, NewNode("empty")); len(result) != 0 {
		t.Error("An empty scene root should produce no hits")
	}
	if result := Pick(400, 300, Viewport{}, cam, NewNode("empty")); len(result) != 0 {
		t.Error("A zero viewport should produce no hits")
	}
}

func TestPickHonoursParentTransform(t *testing.T) {
	cam, root := pickScene()
	root.SetPosition(100, 0, 0)

	result := Pick(400, 300, Viewport{Width: 800, Height: 600}, cam, root)

	if len(result) != 0 {
		t.Errorf("Moving the parent away should move the children, got %d hits", len(result))
	}
}

func TestPickSkipsHiddenSubtree(t *testing.T) {
	cam, root := pickScene()
	root.Find("ScrapbookCoverMesh").Visible = false

	hit, ok := Pick(400, 300, Viewport{Width: 800, Height: 600}, cam, root).Nearest()

	if !ok || hit.Name != "CoffeTable" {
		t.Errorf("Hidden node should be skipped, nearest=%+v", hit)
	}
}
