package scene

import (
	"Scrapbook3D/internal/animation"
	"Scrapbook3D/internal/behaviour"
	"Scrapbook3D/internal/loader"
	"Scrapbook3D/internal/logger"
	"Scrapbook3D/internal/renderer"
	"Scrapbook3D/internal/scrapbook"

	"go.uber.org/zap"
)

// Options configures a Controller.
type Options struct {
	Viewpoints    Viewpoints
	Duration      float32
	Sensitivity   float32
	Smoothing     float32
	Tags          ClickableTags
	Naming        scrapbook.ClipNaming
	MaterialRules []scrapbook.MaterialRule

	// OnReady runs once, on the frame after the assets resolve.
	OnReady func()
	// OnModeChange runs after every mode transition.
	OnModeChange func(Mode)
}

// DefaultOptions returns the stock viewpoints, timings, tags and book naming.
func DefaultOptions() Options {
	return Options{
		Viewpoints:    DefaultViewpoints(),
		Duration:      DefaultTransitionDuration,
		Sensitivity:   DefaultParallaxSensitivity,
		Smoothing:     DefaultParallaxSmoothing,
		Tags:          DefaultClickableTags(),
		Naming:        scrapbook.DefaultClipNaming(),
		MaterialRules: scrapbook.DefaultMaterialRules(),
	}
}

// Controller owns the scene mode and composes camera transitions, parallax,
// picking, page turning and readiness. All state advances in Tick; input
// handlers only change the mode, the page state and the parallax pointer.
type Controller struct {
	opts   Options
	mode   Mode
	camera *renderer.Camera

	transitions *TransitionEngine
	cameraState CameraState
	parallax    *Parallax
	gate        *ReadinessGate
	sequencer   *scrapbook.Sequencer
	mixer       *animation.Mixer

	assets  *loader.Future
	bundle  *loader.Bundle
	root    *renderer.Node
	tilt    *renderer.Node
	book    *renderer.Node
	manager *behaviour.ComponentManager
	input   *Handle
}

// NewController builds a controller that drives camera and renders root.
// The assets may resolve at any later time; until then the scene is inert.
func NewController(camera *renderer.Camera, assets *loader.Future, input InputSource, opts Options) *Controller {
	c := &Controller{
		opts:        opts,
		mode:        Overview,
		camera:      camera,
		transitions: NewTransitionEngine(opts.Viewpoints, opts.Duration),
		parallax:    NewParallax(opts.Sensitivity, opts.Smoothing),
		gate:        NewReadinessGate(opts.OnReady),
		sequencer:   scrapbook.NewSequencer(opts.Naming),
		assets:      assets,
		root:        renderer.NewNode("Root"),
		tilt:        renderer.NewNode("Parallax"),
		manager:     behaviour.NewComponentManager(),
	}
	c.root.Add(c.tilt)
	c.cameraState = c.transitions.Start(Overview)
	c.cameraState.Apply(camera)

	rig := behaviour.NewNodeObject(c.root)
	rig.AddComponent(&assetWatcher{c: c})
	rig.AddComponent(&mixerDriver{c: c})
	rig.AddComponent(&parallaxRig{c: c})
	rig.AddComponent(&cameraRig{c: c})
	c.manager.RegisterGameObject(rig)

	if input != nil {
		c.input = input.Subscribe(c.handlePointer)
	}
	return c
}

// Mode returns the current scene mode.
func (c *Controller) Mode() Mode {
	return c.mode
}

// PageState returns the page sequencer's state.
func (c *Controller) PageState() scrapbook.PageState {
	return c.sequencer.State()
}

// CameraState returns the camera pose applied on the last tick.
func (c *Controller) CameraState() CameraState {
	return c.cameraState
}

// Tilt returns the current parallax rotation of the scene.
func (c *Controller) Tilt() Tilt {
	return c.parallax.Tilt()
}

// Ready reports whether the ready callback has fired.
func (c *Controller) Ready() bool {
	return c.gate.Ready()
}

// Root is the node to render. Loaded assets hang below it.
func (c *Controller) Root() *renderer.Node {
	return c.root
}

// Camera returns the driven camera.
func (c *Controller) Camera() *renderer.Camera {
	return c.camera
}

// Mixer is nil until the assets resolve.
func (c *Controller) Mixer() *animation.Mixer {
	return c.mixer
}

// EnterFocus switches to the focused viewpoint. It only acts from Overview.
func (c *Controller) EnterFocus() bool {
	if c.mode != Overview {
		return false
	}
	c.setMode(Focused)
	return true
}

// ExitFocus returns to the overview. It only acts from Focused and does not
// wait for a running camera transition.
func (c *Controller) ExitFocus() bool {
	if c.mode != Focused {
		return false
	}
	c.setMode(Overview)
	return true
}

func (c *Controller) setMode(m Mode) {
	prev := c.mode
	c.mode = m
	logger.Log.Info("Scene mode changed", zap.Stringer("from", prev), zap.Stringer("to", m))
	if c.opts.OnModeChange != nil {
		c.opts.OnModeChange(m)
	}
}

// Tick advances the scene by dt seconds.
func (c *Controller) Tick(dt float32) behaviour.Frame {
	return c.manager.UpdateAll(dt)
}

// Click resolves a pointer click in surface pixels. While focused a hit on the
// book turns a page; in the overview a hit on a tagged object enters focus.
func (c *Controller) Click(x, y float32, viewport renderer.Viewport) {
	switch c.mode {
	case Focused:
		if c.book == nil {
			return
		}
		hits := renderer.Pick(x, y, viewport, c.camera, c.book)
		if len(hits) == 0 {
			return
		}
		logger.Log.Debug("Book clicked", zap.String("object", hits[0].Name))
		if c.sequencer.Click() {
			logger.Log.Info("Page turn started", zap.Int("page", c.sequencer.State().Index))
		}
	case Overview:
		hit, ok := renderer.Pick(x, y, viewport, c.camera, c.tilt).Nearest()
		if !ok {
			return
		}
		if !c.opts.Tags.Match(hit.Name) {
			logger.Log.Debug("Click on untagged object", zap.String("object", hit.Name))
			return
		}
		c.EnterFocus()
	}
}

func (c *Controller) handlePointer(ev PointerEvent) {
	switch ev.Kind {
	case PointerMove:
		if p, ok := NormalizePointer(ev.X, ev.Y, ev.Viewport); ok {
			c.parallax.SetPointer(p)
		}
	case PointerClick:
		c.Click(ev.X, ev.Y, ev.Viewport)
	}
}

// Close detaches input and clip subscriptions. The controller must not be
// ticked afterwards.
func (c *Controller) Close() {
	c.input.Remove()
	c.manager.Clear()
}

// mount attaches a resolved bundle to the scene graph and binds its clips.
func (c *Controller) mount(b *loader.Bundle) {
	c.bundle = b
	if b.Root != nil {
		c.tilt.Add(b.Root)
	}
	c.book = b.Book
	target := b.Book
	if target == nil {
		target = b.Root
	}
	if n := scrapbook.ApplyMaterials(target, b.Materials, c.opts.MaterialRules); n > 0 {
		logger.Log.Debug("Book materials applied", zap.Int("meshes", n))
	}
	c.mixer = animation.NewMixer(target, b.Clips)
	c.sequencer.Bind(c.mixer)
	logger.Log.Info("Scene assets mounted",
		zap.Bool("empty", b.IsEmpty()),
		zap.Int("clips", len(b.Clips)),
		zap.Bool("book", b.Book != nil))
}

// assetWatcher fires the ready callback on the frame after the assets
// resolve, then mounts newly resolved assets.
type assetWatcher struct {
	behaviour.BaseComponent
	c *Controller
}

func (w *assetWatcher) Update(frame behaviour.Frame) {
	if w.c.gate.Frame() {
		logger.Log.Info("Scene ready", zap.Uint64("frame", frame.Index))
	}
	if w.c.gate.Resolved() || w.c.assets == nil {
		return
	}
	b, ok := w.c.assets.Result()
	if !ok {
		return
	}
	w.c.mount(b)
	w.c.gate.Resolve()
}

func (w *assetWatcher) OnDestroy() {
	w.c.sequencer.Close()
}

type mixerDriver struct {
	behaviour.BaseComponent
	c *Controller
}

func (d *mixerDriver) Update(frame behaviour.Frame) {
	if d.c.mixer != nil {
		d.c.mixer.Update(frame.Delta)
	}
}

type parallaxRig struct {
	behaviour.BaseComponent
	c *Controller
}

func (r *parallaxRig) Update(behaviour.Frame) {
	r.c.parallax.Step(r.c.mode == Focused).Apply(r.c.tilt)
}

type cameraRig struct {
	behaviour.BaseComponent
	c *Controller
}

func (r *cameraRig) Update(frame behaviour.Frame) {
	r.c.cameraState = r.c.transitions.Next(r.c.cameraState, r.c.mode, frame.Delta)
	r.c.cameraState.Apply(r.c.camera)
}
