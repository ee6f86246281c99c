package renderer

import (
	"testing"
)

func TestNewUniformCache(t *testing.T) {
	cache := NewUniformCache(0)

	if cache == nil {
		t.Fatal("NewUniformCache returned nil")
	}

	if cache.locations == nil {
		t.Error("locations map should be initialized")
	}
}

func TestUniformCacheReset(t *testing.T) {
	cache := NewUniformCache(0)
	cache.locations["viewProjection"] = 5

	cache.Reset(7)

	if len(cache.locations) != 0 {
		t.Error("Reset should empty the cache")
	}
	if cache.program != 7 {
		t.Errorf("Reset should rebind the program, got %d", cache.program)
	}
}

func TestLightUniformNames(t *testing.T) {
	if got := lightUniform(1, "direction"); got != "lights[1].direction" {
		t.Errorf("Unexpected uniform name %q", got)
	}
}
