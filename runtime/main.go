package main

import (
	"context"
	"flag"
	"runtime"
	"time"

	"Scrapbook3D/internal/config"
	"Scrapbook3D/internal/engine"
	"Scrapbook3D/internal/loader"
	"Scrapbook3D/internal/logger"
	"Scrapbook3D/internal/renderer"
	"Scrapbook3D/internal/scene"

	"go.uber.org/zap"
)

func main() {
	runtime.LockOSThread()
	configPath := flag.String("config", "scrapbook.yaml", "path to the scene configuration")
	flag.Parse()

	logger.Init()
	defer logger.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Log.Fatal("Could not load configuration", zap.String("path", *configPath), zap.Error(err))
	}
	logger.InitWithLevel(logger.ParseLevel(cfg.LogLevel))

	gameEngine := engine.NewGopher(cfg.Window.Width, cfg.Window.Height,
		windowTitle(cfg.Window.Title, scene.Overview, true),
		renderer.ParseHexColor(cfg.Window.ClearColor))
	gameEngine.Camera.SetFov(cfg.Window.Fov)
	configureRenderer(gameEngine, cfg.Renderer)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	assets := loader.FileProvider{
		ManifestPath: cfg.Assets.Manifest,
		BookPosition: cfg.BookPosition(),
		BookScale:    cfg.Book.Scale,
	}.Load(ctx)

	welcome := NewWelcomeGate(cfg.Welcome.MinDisplay)
	var controller *scene.Controller
	refreshTitle := func() {
		gameEngine.SetTitle(windowTitle(cfg.Window.Title, controller.Mode(), welcome.Visible()))
	}

	opts := cfg.SceneOptions()
	opts.OnReady = func() {
		logger.Log.Info("Room ready")
		welcome.MarkReady()
	}
	opts.OnModeChange = func(scene.Mode) { refreshTitle() }

	controller = scene.NewController(gameEngine.Camera, assets, gameEngine.Pointer, opts)
	defer controller.Close()

	gameEngine.SetScene(controller.Root())
	gameEngine.SetOnBackCallback(func() { controller.ExitFocus() })
	gameEngine.SetOnFrameCallback(func(deltaTime float64) {
		controller.Tick(float32(deltaTime))
		if welcome.Advance(time.Duration(deltaTime * float64(time.Second))) {
			logger.Log.Info("Welcome overlay hidden")
			refreshTitle()
		}
	})

	gameEngine.Render(-1, -1)
}

func configureRenderer(gameEngine *engine.Gopher, cfg config.RendererConfig) {
	gameEngine.SetDebugMode(cfg.Debug)
	gameEngine.SetFrustumCulling(cfg.FrustumCulling)
	gameEngine.SetFaceCulling(cfg.FaceCulling)
}

// windowTitle is the host-visible UI: a welcome line while loading and the
// way back to the room while focused.
func windowTitle(base string, mode scene.Mode, loading bool) string {
	switch {
	case loading:
		return base + " - Welcome! Loading the room..."
	case mode == scene.Focused:
		return base + " - Back to Room: Esc"
	}
	return base
}
