package loader

import (
	"context"
	"sync"
	"time"

	"Scrapbook3D/internal/animation"
	"Scrapbook3D/internal/logger"
	"Scrapbook3D/internal/renderer"
	"Scrapbook3D/internal/scrapbook"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Bundle is everything the scene needs once assets have loaded. It is not
// modified after the future resolves.
type Bundle struct {
	Root      *renderer.Node
	Book      *renderer.Node
	Clips     map[string]*animation.Clip
	Materials map[string]*renderer.Material
}

// EmptyBundle is what a failed load resolves to.
func EmptyBundle() *Bundle {
	return &Bundle{
		Clips:     map[string]*animation.Clip{},
		Materials: map[string]*renderer.Material{},
	}
}

func (b *Bundle) IsEmpty() bool {
	return b == nil || (b.Root == nil && b.Book == nil && len(b.Clips) == 0)
}

// Future is a load that completes exactly once.
type Future struct {
	done   chan struct{}
	once   sync.Once
	bundle *Bundle
}

func NewFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// Resolved returns an already completed future.
func Resolved(b *Bundle) *Future {
	f := NewFuture()
	f.Resolve(b)
	return f
}

// Resolve completes the future. Later calls are ignored. A nil bundle
// resolves as empty.
func (f *Future) Resolve(b *Bundle) {
	f.once.Do(func() {
		if b == nil {
			b = EmptyBundle()
		}
		f.bundle = b
		close(f.done)
	})
}

func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Result returns the bundle without blocking; ok is false until resolution.
func (f *Future) Result() (*Bundle, bool) {
	select {
	case <-f.done:
		return f.bundle, true
	default:
		return nil, false
	}
}

// Wait blocks until the future resolves or ctx ends.
func (f *Future) Wait(ctx context.Context) (*Bundle, error) {
	select {
	case <-f.done:
		return f.bundle, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Provider starts an asset load. Implementations never fail the future;
// errors resolve an empty bundle.
type Provider interface {
	Load(ctx context.Context) *Future
}

// StaticProvider resolves a prepared bundle, optionally after Delay.
type StaticProvider struct {
	Bundle *Bundle
	Delay  time.Duration
}

func (p StaticProvider) Load(ctx context.Context) *Future {
	if p.Delay <= 0 {
		return Resolved(p.Bundle)
	}
	f := NewFuture()
	go func() {
		timer := time.NewTimer(p.Delay)
		defer timer.Stop()
		select {
		case <-timer.C:
			f.Resolve(p.Bundle)
		case <-ctx.Done():
			f.Resolve(EmptyBundle())
		}
	}()
	return f
}

// FileProvider loads the scene described by a manifest file.
type FileProvider struct {
	ManifestPath string
	BookPosition mgl32.Vec3
	BookScale    float32
}

func (p FileProvider) Load(ctx context.Context) *Future {
	f := NewFuture()
	go func() {
		start := time.Now()
		b, err := p.build(ctx)
		if err != nil {
			logger.Log.Error("Asset load failed, continuing with an empty scene",
				zap.String("manifest", p.ManifestPath), zap.Error(err))
			f.Resolve(EmptyBundle())
			return
		}
		logger.Log.Info("Assets loaded",
			zap.String("manifest", p.ManifestPath),
			zap.Int("meshes", b.Root.MeshCount()),
			zap.Int("clips", len(b.Clips)),
			zap.Int("materials", len(b.Materials)),
			zap.Duration("took", time.Since(start)))
		f.Resolve(b)
	}()
	return f
}

func (p FileProvider) build(ctx context.Context) (*Bundle, error) {
	m, err := ReadManifest(p.ManifestPath)
	if err != nil {
		return nil, err
	}
	b := EmptyBundle()
	b.Root = renderer.NewNode("Scene")

	for _, file := range m.Room {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		model, err := LoadModel(m.Path(file))
		if err != nil {
			return nil, err
		}
		mergeMaterials(b.Materials, model.Materials)
		b.Root.Add(model.Root)
	}

	if m.Book != "" {
		model, err := LoadModel(m.Path(m.Book))
		if err != nil {
			return nil, err
		}
		mergeMaterials(b.Materials, model.Materials)
		scale := p.BookScale
		if scale <= 0 {
			scale = 1
		}
		b.Book = scrapbook.NewBookGroup(model.Root, p.BookPosition, scale)
		b.Root.Add(b.Book)
	}

	m.ApplyMaterials(b.Materials)
	b.Clips = m.BuildClips()
	return b, nil
}

func mergeMaterials(dst, src map[string]*renderer.Material) {
	for k, v := range src {
		if _, dup := dst[k]; dup {
			logger.Log.Debug("Material redefined", zap.String("material", k))
		}
		dst[k] = v
	}
}
