package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"Scrapbook3D/internal/logger"
	"Scrapbook3D/internal/scene"
	"Scrapbook3D/internal/scrapbook"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid scene config")

// SceneConfig is the host configuration. Zero-valued file fields keep their defaults.
type SceneConfig struct {
	Window     WindowConfig     `yaml:"window"`
	Renderer   RendererConfig   `yaml:"renderer"`
	Viewpoints ViewpointsConfig `yaml:"viewpoints"`
	Transition TransitionConfig `yaml:"transition"`
	Parallax   ParallaxConfig   `yaml:"parallax"`
	Clickable  []string         `yaml:"clickableTags"`
	Book       BookConfig       `yaml:"book"`
	Assets     AssetsConfig     `yaml:"assets"`
	Welcome    WelcomeConfig    `yaml:"welcome"`
	LogLevel   string           `yaml:"logLevel"`
}

type WindowConfig struct {
	Title      string  `yaml:"title"`
	Width      int32   `yaml:"width"`
	Height     int32   `yaml:"height"`
	Fov        float32 `yaml:"fov"`
	ClearColor string  `yaml:"clearColor"`
}

// RendererConfig holds the renderer toggles the engine exposes.
type RendererConfig struct {
	Debug          bool `yaml:"debug"`
	FrustumCulling bool `yaml:"frustumCulling"`
	FaceCulling    bool `yaml:"faceCulling"`
}

type ViewpointConfig struct {
	Position [3]float32 `yaml:"position"`
	LookAt   [3]float32 `yaml:"lookAt"`
}

type ViewpointsConfig struct {
	Overview ViewpointConfig `yaml:"overview"`
	Focused  ViewpointConfig `yaml:"focused"`
}

type TransitionConfig struct {
	// Duration is in seconds.
	Duration float32 `yaml:"duration"`
}

type ParallaxConfig struct {
	Sensitivity float32 `yaml:"sensitivity"`
	Smoothing   float32 `yaml:"smoothing"`
}

type BookConfig struct {
	CoverClip   string     `yaml:"coverClip"`
	PagePattern string     `yaml:"pagePattern"`
	Position    [3]float32 `yaml:"position"`
	Scale       float32    `yaml:"scale"`
}

type AssetsConfig struct {
	Manifest string `yaml:"manifest"`
}

type WelcomeConfig struct {
	MinDisplay time.Duration `yaml:"minDisplay"`
}

func Default() *SceneConfig {
	return &SceneConfig{
		Window: WindowConfig{
			Title:      "Scrapbook",
			Width:      1280,
			Height:     720,
			Fov:        50,
			ClearColor: "#2a1e18",
		},
		Renderer: RendererConfig{FrustumCulling: true},
		Viewpoints: ViewpointsConfig{
			Overview: ViewpointConfig{Position: [3]float32{4, 4, 4}, LookAt: [3]float32{0, 1, 0}},
			Focused:  ViewpointConfig{Position: [3]float32{0, 1.2, 0.6}, LookAt: [3]float32{0, 0.45, 0}},
		},
		Transition: TransitionConfig{Duration: scene.DefaultTransitionDuration},
		Parallax: ParallaxConfig{
			Sensitivity: scene.DefaultParallaxSensitivity,
			Smoothing:   scene.DefaultParallaxSmoothing,
		},
		Clickable: []string(scene.DefaultClickableTags()),
		Book: BookConfig{
			CoverClip:   "BookCover_TopAction",
			PagePattern: "Page_{n}Action",
			Position:    [3]float32{0, 0.575, 0.25},
			Scale:       0.15,
		},
		Assets:   AssetsConfig{Manifest: "assets/scene.yaml"},
		Welcome:  WelcomeConfig{MinDisplay: time.Second},
		LogLevel: "info",
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*SceneConfig, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Log.Info("Config file not found, using defaults", zap.String("path", path))
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *SceneConfig) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.Window.Fov <= 0 || c.Window.Fov >= 180:
		return fmt.Errorf("%w: fov %v", ErrInvalid, c.Window.Fov)
	case c.Transition.Duration <= 0:
		return fmt.Errorf("%w: transition duration must be positive, got %v", ErrInvalid, c.Transition.Duration)
	case c.Parallax.Smoothing <= 0 || c.Parallax.Smoothing > 1:
		return fmt.Errorf("%w: parallax smoothing must be in (0, 1], got %v", ErrInvalid, c.Parallax.Smoothing)
	case c.Book.Scale <= 0:
		return fmt.Errorf("%w: book scale must be positive, got %v", ErrInvalid, c.Book.Scale)
	}
	if len(c.Tags()) == 0 {
		return fmt.Errorf("%w: clickableTags cannot be empty", ErrInvalid)
	}
	if _, err := c.ClipNaming(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Tags returns the non-blank clickable tags.
func (c *SceneConfig) Tags() scene.ClickableTags {
	var tags scene.ClickableTags
	for _, t := range c.Clickable {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func (c *SceneConfig) ClipNaming() (scrapbook.ClipNaming, error) {
	return scrapbook.NewClipNaming(c.Book.CoverClip, c.Book.PagePattern)
}

func (c *SceneConfig) BookPosition() mgl32.Vec3 {
	return mgl32.Vec3(c.Book.Position)
}

// SceneOptions builds controller options. Validate must have passed.
func (c *SceneConfig) SceneOptions() scene.Options {
	opts := scene.DefaultOptions()
	opts.Viewpoints = scene.NewViewpoints(
		mgl32.Vec3(c.Viewpoints.Overview.Position), mgl32.Vec3(c.Viewpoints.Overview.LookAt),
		mgl32.Vec3(c.Viewpoints.Focused.Position), mgl32.Vec3(c.Viewpoints.Focused.LookAt),
	)
	opts.Duration = c.Transition.Duration
	opts.Sensitivity = c.Parallax.Sensitivity
	opts.Smoothing = c.Parallax.Smoothing
	opts.Tags = c.Tags()
	if naming, err := c.ClipNaming(); err == nil {
		opts.Naming = naming
	}
	return opts
}
