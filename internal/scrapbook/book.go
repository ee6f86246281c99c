package scrapbook

import (
	"strings"

	"Scrapbook3D/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
)

// MaterialRule assigns a named material to meshes whose name contains MeshSubstr.
type MaterialRule struct {
	MeshSubstr string
	Material   string
}

// DefaultMaterialRules dresses cover meshes before page meshes.
func DefaultMaterialRules() []MaterialRule {
	return []MaterialRule{
		{MeshSubstr: "BookCover", Material: "Cover"},
		{MeshSubstr: "Page", Material: "Page"},
	}
}

// ApplyMaterials assigns materials by mesh name. Nothing changes unless every material the rules name is present.
// It returns the number of meshes that received a material.
func ApplyMaterials(root *renderer.Node, materials map[string]*renderer.Material, rules []MaterialRule) int {
	if root == nil || len(rules) == 0 {
		return 0
	}
	for _, r := range rules {
		if materials[r.Material] == nil {
			return 0
		}
	}
	assigned := 0
	root.Traverse(func(n *renderer.Node) bool {
		if n.Mesh == nil {
			return true
		}
		for _, r := range rules {
			if strings.Contains(n.Name, r.MeshSubstr) {
				n.Material = materials[r.Material]
				assigned++
				break
			}
		}
		return true
	})
	return assigned
}

// NewBookGroup wraps the loaded model in a positioned, uniformly scaled group.
// The group is the click target for page turning.
func NewBookGroup(model *renderer.Node, position mgl32.Vec3, scale float32) *renderer.Node {
	group := renderer.NewNode("Scrapbook")
	group.Position = position
	group.SetScale(scale, scale, scale)
	if model != nil {
		group.Add(model)
	}
	return group
}
