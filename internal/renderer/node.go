package renderer

import (
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Node is an element of the scene graph. Nodes with a Mesh are renderable and pickable.
type Node struct {
	// HOT DATA - read every frame by the renderer and the picker
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
	Mesh     *Mesh
	Material *Material
	Visible  bool

	// COLD DATA
	Name     string
	Parent   *Node
	Children []*Node
}

func NewNode(name string) *Node {
	return &Node{
		Name:     name,
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
		Visible:  true,
	}
}

// NewMeshNode creates a renderable node using the default material.
func NewMeshNode(name string, mesh *Mesh) *Node {
	n := NewNode(name)
	n.Mesh = mesh
	n.Material = DefaultMaterial
	return n
}

// Add reparents child under n.
func (n *Node) Add(child *Node) {
	if child == nil || child == n {
		return
	}
	if child.Parent != nil {
		child.Parent.Remove(child)
	}
	child.Parent = n
	n.Children = append(n.Children, child)
}

func (n *Node) Remove(child *Node) {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.Parent = nil
			return
		}
	}
}

func (n *Node) SetPosition(x, y, z float32) {
	n.Position = mgl32.Vec3{x, y, z}
}

func (n *Node) SetScale(x, y, z float32) {
	n.Scale = mgl32.Vec3{x, y, z}
}

// SetEuler sets the rotation from XYZ-ordered angles in radians.
func (n *Node) SetEuler(x, y, z float32) {
	n.Rotation = mgl32.AnglesToQuat(x, y, z, mgl32.XYZ)
}

// LocalMatrix is translation * rotation * scale.
func (n *Node) LocalMatrix() mgl32.Mat4 {
	rot := n.Rotation
	if rot == (mgl32.Quat{}) {
		rot = mgl32.QuatIdent()
	}
	return mgl32.Translate3D(n.Position[0], n.Position[1], n.Position[2]).
		Mul4(rot.Mat4()).
		Mul4(mgl32.Scale3D(n.Scale[0], n.Scale[1], n.Scale[2]))
}

func (n *Node) WorldMatrix() mgl32.Mat4 {
	if n.Parent == nil {
		return n.LocalMatrix()
	}
	return n.Parent.WorldMatrix().Mul4(n.LocalMatrix())
}

// Traverse visits n and its descendants depth-first. Returning false from fn skips
// the children of the visited node.
func (n *Node) Traverse(fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Traverse(fn)
	}
}

// Find returns the first node whose name equals name.
func (n *Node) Find(name string) *Node {
	var found *Node
	n.Traverse(func(node *Node) bool {
		if found != nil {
			return false
		}
		if node.Name == name {
			found = node
			return false
		}
		return true
	})
	return found
}

// FindAll returns every node whose name contains substr.
func (n *Node) FindAll(substr string) []*Node {
	var result []*Node
	n.Traverse(func(node *Node) bool {
		if strings.Contains(node.Name, substr) {
			result = append(result, node)
		}
		return true
	})
	return result
}

// IsDescendantOf reports whether ancestor is n or one of n's parents.
func (n *Node) IsDescendantOf(ancestor *Node) bool {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur == ancestor {
			return true
		}
	}
	return false
}

// MeshCount returns the number of renderable nodes in the subtree.
func (n *Node) MeshCount() int {
	count := 0
	n.Traverse(func(node *Node) bool {
		if node.Mesh != nil {
			count++
		}
		return true
	})
	return count
}
