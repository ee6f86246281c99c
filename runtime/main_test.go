package main

import (
	"testing"

	"Scrapbook3D/internal/config"
	"Scrapbook3D/internal/engine"
	"Scrapbook3D/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
)

func TestConfigureRenderer(t *testing.T) {
	debug, frustum, face := renderer.Debug, renderer.FrustumCullingEnabled, renderer.FaceCullingEnabled
	defer func() {
		renderer.Debug, renderer.FrustumCullingEnabled, renderer.FaceCullingEnabled = debug, frustum, face
	}()

	gameEngine := engine.NewGopher(320, 240, "test", mgl32.Vec3{})
	tests := []config.RendererConfig{
		{Debug: true, FrustumCulling: false, FaceCulling: true},
		config.Default().Renderer,
	}
	for _, tt := range tests {
		configureRenderer(gameEngine, tt)
		if renderer.Debug != tt.Debug || renderer.FrustumCullingEnabled != tt.FrustumCulling || renderer.FaceCullingEnabled != tt.FaceCulling {
			t.Errorf("configureRenderer(%+v) left debug=%v frustum=%v face=%v", tt,
				renderer.Debug, renderer.FrustumCullingEnabled, renderer.FaceCullingEnabled)
		}
	}
}
