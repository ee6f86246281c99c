package loader

import (
	"fmt"
	"os"
	"path/filepath"

	"Scrapbook3D/internal/animation"
	"Scrapbook3D/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// Manifest lists the files and clips that make up the scene.
//
//	room: [models/room.obj]
//	book: models/scrapbook.obj
//	materials:
//	  Cover: {diffuse: "#8b4a2b"}
//	clips:
//	  - name: BookCover_TopAction
//	    tracks:
//	      - node: BookCover_Top
//	        property: rotation
//	        times: [0, 1.2]
//	        values: [[0, 0, 0], [0, 0, -180]]
type Manifest struct {
	Room      []string                `yaml:"room"`
	Book      string                  `yaml:"book"`
	Materials map[string]MaterialSpec `yaml:"materials"`
	Clips     []ClipSpec              `yaml:"clips"`

	dir string
}

type MaterialSpec struct {
	Diffuse   string   `yaml:"diffuse"`
	Specular  string   `yaml:"specular"`
	Shininess *float32 `yaml:"shininess"`
	Alpha     *float32 `yaml:"alpha"`
}

type ClipSpec struct {
	Name   string      `yaml:"name"`
	Tracks []TrackSpec `yaml:"tracks"`
}

// TrackSpec values are positions, scales, or XYZ euler angles in degrees.
type TrackSpec struct {
	Node     string       `yaml:"node"`
	Property string       `yaml:"property"`
	Times    []float32    `yaml:"times"`
	Values   [][3]float32 `yaml:"values"`
}

// ReadManifest loads a manifest; relative file paths resolve against its directory.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	m, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	m.dir = filepath.Dir(path)
	return m, nil
}

func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Manifest) Validate() error {
	seen := make(map[string]bool, len(m.Clips))
	for _, c := range m.Clips {
		if c.Name == "" {
			return fmt.Errorf("clip without name")
		}
		if seen[c.Name] {
			return fmt.Errorf("clip %q defined twice", c.Name)
		}
		seen[c.Name] = true
		for i, t := range c.Tracks {
			if _, err := parseProperty(t.Property); err != nil {
				return fmt.Errorf("clip %q track %d: %w", c.Name, i, err)
			}
			if len(t.Times) == 0 || len(t.Times) != len(t.Values) {
				return fmt.Errorf("clip %q track %d: %d times for %d values", c.Name, i, len(t.Times), len(t.Values))
			}
			for k := 1; k < len(t.Times); k++ {
				if t.Times[k] < t.Times[k-1] {
					return fmt.Errorf("clip %q track %d: times not ascending", c.Name, i)
				}
			}
		}
	}
	return nil
}

// Path resolves a manifest-relative file path.
func (m *Manifest) Path(p string) string {
	if filepath.IsAbs(p) || m.dir == "" {
		return p
	}
	return filepath.Join(m.dir, p)
}

// BuildClips converts the clip definitions into animation clips keyed by name.
func (m *Manifest) BuildClips() map[string]*animation.Clip {
	clips := make(map[string]*animation.Clip, len(m.Clips))
	for _, c := range m.Clips {
		tracks := make([]animation.Track, 0, len(c.Tracks))
		for _, t := range c.Tracks {
			prop, _ := parseProperty(t.Property)
			track := animation.Track{Node: t.Node, Property: prop, Times: t.Times}
			for _, v := range t.Values {
				if prop == animation.PropertyRotation {
					track.Rotations = append(track.Rotations, mgl32.AnglesToQuat(
						mgl32.DegToRad(v[0]), mgl32.DegToRad(v[1]), mgl32.DegToRad(v[2]), mgl32.XYZ))
				} else {
					track.Vectors = append(track.Vectors, mgl32.Vec3(v))
				}
			}
			tracks = append(tracks, track)
		}
		clips[c.Name] = animation.NewClip(c.Name, tracks...)
	}
	return clips
}

// ApplyMaterials overrides or adds the manifest's materials in mats.
func (m *Manifest) ApplyMaterials(mats map[string]*renderer.Material) {
	for name, spec := range m.Materials {
		mat, ok := mats[name]
		if !ok {
			mat = DefaultMaterial(name)
			mats[name] = mat
		}
		if spec.Diffuse != "" {
			c := renderer.ParseHexColor(spec.Diffuse)
			mat.DiffuseColor = [3]float32{c[0], c[1], c[2]}
		}
		if spec.Specular != "" {
			c := renderer.ParseHexColor(spec.Specular)
			mat.SpecularColor = [3]float32{c[0], c[1], c[2]}
		}
		if spec.Shininess != nil {
			mat.Shininess = *spec.Shininess
		}
		if spec.Alpha != nil {
			mat.Alpha = *spec.Alpha
		}
	}
}

func parseProperty(s string) (animation.Property, error) {
	switch s {
	case "position":
		return animation.PropertyPosition, nil
	case "rotation":
		return animation.PropertyRotation, nil
	case "scale":
		return animation.PropertyScale, nil
	}
	return 0, fmt.Errorf("unknown property %q", s)
}
