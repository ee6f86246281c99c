package loader

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"Scrapbook3D/internal/logger"
	"Scrapbook3D/internal/renderer"

	"go.uber.org/zap"
)

// ParseMTL reads material properties from MTL text. Texture paths are made
// relative to dir.
func ParseMTL(r io.Reader, dir string) (map[string]*renderer.Material, error) {
	var current *renderer.Material
	materials := make(map[string]*renderer.Material)
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := scanner.Text()
		fields := strings.Fields(line)
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		if fields[0] != "newmtl" && current == nil {
			continue
		}

		switch fields[0] {
		case "newmtl":
			if len(fields) < 2 {
				logger.Log.Warn("Malformed material line", zap.String("line", line))
				continue
			}
			current = DefaultMaterial(fields[1])
			materials[fields[1]] = current
		case "Kd": // Diffuse color
			if len(fields) == 4 {
				current.DiffuseColor = parseColor(fields[1:])
			}
		case "Ks": // Specular color
			if len(fields) == 4 {
				current.SpecularColor = parseColor(fields[1:])
			}
		case "Ns": // Shininess
			if len(fields) == 2 {
				current.Shininess = parseFloat(fields[1])
			}
		case "d": // Dissolve (alpha/opacity)
			if len(fields) == 2 {
				current.Alpha = parseFloat(fields[1])
			}
		case "Tr": // Transparency, the inverse of d
			if len(fields) == 2 {
				current.Alpha = 1 - parseFloat(fields[1])
			}
		case "map_Kd": // Diffuse texture map
			if len(fields) >= 2 {
				// Options may precede the path
				texturePath := fields[len(fields)-1]
				if !filepath.IsAbs(texturePath) {
					texturePath = filepath.Join(dir, texturePath)
				}
				current.TexturePath = texturePath
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read mtl: %w", err)
	}
	return materials, nil
}

// DefaultMaterial returns an opaque white material named name.
func DefaultMaterial(name string) *renderer.Material {
	m := renderer.DefaultMaterial.Clone()
	m.Name = name
	return m
}

// parseColor parses RGB color components from a list of strings.
func parseColor(fields []string) [3]float32 {
	var color [3]float32
	for i := 0; i < len(fields) && i < 3; i++ {
		color[i] = parseFloat(fields[i])
	}
	return color
}

func parseFloat(s string) float32 {
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		logger.Log.Warn("Invalid material value", zap.String("value", s), zap.Error(err))
		return 0
	}
	return float32(f)
}
