package loader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"Scrapbook3D/internal/logger"
	"Scrapbook3D/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// ErrNoObjects is returned for an OBJ source that defines no faces.
var ErrNoObjects = errors.New("obj: no faces")

// MaterialOpener opens an MTL library referenced by an OBJ file.
type MaterialOpener func(name string) (io.ReadCloser, error)

// Model is a parsed OBJ file: one child node per object or group, plus the
// materials its libraries define.
type Model struct {
	Root      *renderer.Node
	Materials map[string]*renderer.Material
}

// LoadModel reads an OBJ file from disk. MTL libraries resolve next to it.
func LoadModel(path string) (*Model, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open model: %w", err)
	}
	defer file.Close()

	dir := filepath.Dir(path)
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	model, err := ParseOBJ(file, name, func(lib string) (io.ReadCloser, error) {
		return os.Open(filepath.Join(dir, lib))
	})
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", path, err)
	}
	for _, mat := range model.Materials {
		if mat.TexturePath != "" && !filepath.IsAbs(mat.TexturePath) {
			mat.TexturePath = filepath.Join(dir, mat.TexturePath)
		}
	}
	return model, nil
}

type faceVertex struct {
	v, vt, vn int
}

// group accumulates the faces of one o/g block that share a material.
type group struct {
	name     string
	material string
	faces    []faceVertex
}

// ParseOBJ builds a scene subtree named name from OBJ text. Each o or g
// statement starts a named child node; a usemtl change inside a block splits
// it into a further node with the same name. Texture paths stay relative to
// the library name.
func ParseOBJ(r io.Reader, name string, openMTL MaterialOpener) (*Model, error) {
	var (
		positions []mgl32.Vec3
		texCoords []mgl32.Vec2
		normals   []mgl32.Vec3
		groups    []*group
		materials = make(map[string]*renderer.Material)
		current   = &group{name: name}
		lineNo    int
	)

	startGroup := func(groupName, material string) {
		if len(current.faces) > 0 {
			groups = append(groups, current)
		}
		current = &group{name: groupName, material: material}
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineNo++
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 || strings.HasPrefix(parts[0], "#") {
			continue
		}
		switch parts[0] {
		case "v":
			v, err := parseVec3(parts[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: vertex: %w", lineNo, err)
			}
			positions = append(positions, v)
		case "vn":
			n, err := parseVec3(parts[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: normal: %w", lineNo, err)
			}
			normals = append(normals, n)
		case "vt":
			uv, err := parseTextureCoordinate(parts[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: texture coordinate: %w", lineNo, err)
			}
			texCoords = append(texCoords, uv)
		case "o", "g":
			groupName := name
			if len(parts) > 1 {
				groupName = strings.Join(parts[1:], " ")
			}
			startGroup(groupName, current.material)
		case "usemtl":
			if len(parts) < 2 {
				continue
			}
			if len(current.faces) > 0 && current.material != parts[1] {
				startGroup(current.name, parts[1])
			} else {
				current.material = parts[1]
			}
		case "mtllib":
			if openMTL == nil {
				continue
			}
			for _, lib := range parts[1:] {
				loadLibrary(lib, openMTL, materials)
			}
		case "f":
			face, err := parseFace(parts[1:], len(positions), len(texCoords), len(normals))
			if err != nil {
				return nil, fmt.Errorf("line %d: face: %w", lineNo, err)
			}
			current.faces = append(current.faces, face...)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}
	if len(current.faces) > 0 {
		groups = append(groups, current)
	}
	if len(groups) == 0 {
		return nil, ErrNoObjects
	}

	root := renderer.NewNode(name)
	for _, g := range groups {
		mesh := buildMesh(g.faces, positions, texCoords, normals)
		node := renderer.NewMeshNode(g.name, mesh)
		if mat, ok := materials[g.material]; ok {
			node.Material = mat
		} else if g.material != "" {
			logger.Log.Debug("Material not found", zap.String("material", g.material), zap.String("object", g.name))
		}
		root.Add(node)
	}

	logger.Log.Info("Model parsed",
		zap.String("name", name),
		zap.Int("objects", len(groups)),
		zap.Int("vertices", len(positions)),
		zap.Int("materials", len(materials)))
	return &Model{Root: root, Materials: materials}, nil
}

func loadLibrary(lib string, openMTL MaterialOpener, into map[string]*renderer.Material) {
	rc, err := openMTL(lib)
	if err != nil {
		logger.Log.Warn("Could not open material library", zap.String("library", lib), zap.Error(err))
		return
	}
	defer rc.Close()
	mats, err := ParseMTL(rc, filepath.Dir(lib))
	if err != nil {
		logger.Log.Warn("Could not parse material library", zap.String("library", lib), zap.Error(err))
		return
	}
	for k, m := range mats {
		into[k] = m
	}
}

// buildMesh unifies position/uv/normal triplets into one indexed vertex buffer.
func buildMesh(faces []faceVertex, positions []mgl32.Vec3, texCoords []mgl32.Vec2, normals []mgl32.Vec3) *renderer.Mesh {
	index := make(map[faceVertex]uint32)
	var (
		outPos     []mgl32.Vec3
		outUV      []mgl32.Vec2
		outNormals []mgl32.Vec3
		indices    = make([]uint32, 0, len(faces))
		hasNormals = true
	)
	for _, fv := range faces {
		if idx, ok := index[fv]; ok {
			indices = append(indices, idx)
			continue
		}
		idx := uint32(len(outPos))
		index[fv] = idx
		outPos = append(outPos, positions[fv.v])
		if fv.vt >= 0 {
			outUV = append(outUV, texCoords[fv.vt])
		} else {
			outUV = append(outUV, mgl32.Vec2{})
		}
		if fv.vn >= 0 {
			outNormals = append(outNormals, normals[fv.vn])
		} else {
			hasNormals = false
			outNormals = append(outNormals, mgl32.Vec3{})
		}
		indices = append(indices, idx)
	}
	if !hasNormals {
		// Some exporters omit normals, so we recalculate them ourselves
		outNormals = nil
	}
	return renderer.NewMesh(outPos, outNormals, outUV, indices)
}

func parseVec3(parts []string) (mgl32.Vec3, error) {
	var v mgl32.Vec3
	if len(parts) < 3 {
		return v, fmt.Errorf("want 3 components, got %d", len(parts))
	}
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(parts[i], 32)
		if err != nil {
			return v, fmt.Errorf("invalid value %q: %w", parts[i], err)
		}
		v[i] = float32(f)
	}
	return v, nil
}

// for 2D textures
func parseTextureCoordinate(parts []string) (mgl32.Vec2, error) {
	var uv mgl32.Vec2
	if len(parts) < 1 {
		return uv, errors.New("missing u")
	}
	for i := 0; i < len(parts) && i < 2; i++ {
		f, err := strconv.ParseFloat(parts[i], 32)
		if err != nil {
			return uv, fmt.Errorf("invalid value %q: %w", parts[i], err)
		}
		uv[i] = float32(f)
	}
	return uv, nil
}

// resolveIndex converts a 1-based or negative (relative) OBJ index to 0-based.
func resolveIndex(s string, count int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q: %w", s, err)
	}
	switch {
	case i > 0:
		i--
	case i < 0:
		i += count
	default:
		return 0, fmt.Errorf("index 0 is not valid")
	}
	if i < 0 || i >= count {
		return 0, fmt.Errorf("index %s out of range (%d)", s, count)
	}
	return i, nil
}

// parseFace reads one polygon and returns it as triangles, fanning from the
// first vertex.
func parseFace(parts []string, nv, nt, nn int) ([]faceVertex, error) {
	if len(parts) < 3 {
		return nil, fmt.Errorf("want at least 3 vertices, got %d", len(parts))
	}
	face := make([]faceVertex, 0, len(parts))
	for _, part := range parts {
		vals := strings.Split(part, "/")
		fv := faceVertex{vt: -1, vn: -1}
		var err error
		if fv.v, err = resolveIndex(vals[0], nv); err != nil {
			return nil, fmt.Errorf("vertex: %w", err)
		}
		if len(vals) > 1 && vals[1] != "" {
			if fv.vt, err = resolveIndex(vals[1], nt); err != nil {
				return nil, fmt.Errorf("texture coordinate: %w", err)
			}
		}
		if len(vals) > 2 && vals[2] != "" {
			if fv.vn, err = resolveIndex(vals[2], nn); err != nil {
				return nil, fmt.Errorf("normal: %w", err)
			}
		}
		face = append(face, fv)
	}

	if len(face) == 3 {
		return face, nil
	}
	triangulated := make([]faceVertex, 0, (len(face)-2)*3)
	for i := 1; i < len(face)-1; i++ {
		triangulated = append(triangulated, face[0], face[i], face[i+1])
	}
	return triangulated, nil
}
