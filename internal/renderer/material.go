package renderer

// DefaultMaterial provides a basic material to fall back on
var DefaultMaterial = &Material{
	Name:          "default",
	DiffuseColor:  [3]float32{1.0, 1.0, 1.0},
	SpecularColor: [3]float32{0.2, 0.2, 0.2},
	Shininess:     32.0,
	Alpha:         1.0,
}

type Material struct {
	// HOT DATA - Accessed every render call for shading calculations
	DiffuseColor  [3]float32 // Base color for lighting
	SpecularColor [3]float32 // Specular highlight color
	Shininess     float32    // Specular exponent
	Alpha         float32    // Transparency (0.0 = transparent, 1.0 = opaque)

	// COLD DATA - identification only
	Name        string
	TexturePath string // Diffuse map from the MTL file; not sampled by the default shader
}

// Clone returns an independent copy so per-node edits never leak into shared materials.
func (m *Material) Clone() *Material {
	if m == nil {
		return DefaultMaterial.Clone()
	}
	c := *m
	return &c
}
