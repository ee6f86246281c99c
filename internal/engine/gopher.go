package engine

import (
	"runtime"

	"Scrapbook3D/internal/logger"
	"Scrapbook3D/internal/renderer"
	"Scrapbook3D/internal/scene"

	mgl "github.com/go-gl/mathgl/mgl32"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"
)

// Gopher owns the window, the GL context and the frame loop.
type Gopher struct {
	Width      int32
	Height     int32
	Title      string
	ClearColor mgl.Vec3
	Lights     []*renderer.Light
	Camera     *renderer.Camera
	Pointer    *scene.Pointer

	rendererAPI renderer.Render
	window      *glfw.Window
	root        *renderer.Node
	onFrame     func(deltaTime float64) // Runs before each frame is drawn
	onBack      func()                  // Escape or Backspace
}

func NewGopher(width, height int32, title string, clearColor mgl.Vec3) *Gopher {
	logger.Log.Info("Engine initializing...",
		zap.Int32("width", width),
		zap.Int32("height", height))
	return &Gopher{
		Width:       width,
		Height:      height,
		Title:       title,
		ClearColor:  clearColor,
		Lights:      renderer.DefaultLights(),
		Camera:      renderer.NewDefaultCamera(width, height),
		Pointer:     scene.NewPointer(renderer.Viewport{Width: int(width), Height: int(height)}),
		rendererAPI: renderer.NewOpenGLRenderer(clearColor),
	}
}

// SetScene sets the node drawn every frame. Meshes added below it later are
// uploaded on the next frame.
func (gopher *Gopher) SetScene(root *renderer.Node) {
	gopher.root = root
}

// SetOnFrameCallback sets a callback that runs every frame before drawing.
func (gopher *Gopher) SetOnFrameCallback(callback func(deltaTime float64)) {
	gopher.onFrame = callback
}

// SetOnBackCallback sets the action bound to Escape and Backspace.
func (gopher *Gopher) SetOnBackCallback(callback func()) {
	gopher.onBack = callback
}

func (gopher *Gopher) SetTitle(title string) {
	gopher.Title = title
	if gopher.window != nil {
		gopher.window.SetTitle(title)
	}
}

// Render opens the window at x, y and blocks until it is closed.
func (gopher *Gopher) Render(x, y int) {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		logger.Log.Error("Could not initialize glfw", zap.Error(err))
		return
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Decorated, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 32)
	glfw.WindowHint(glfw.Samples, 4)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	var err error
	gopher.window, err = glfw.CreateWindow(int(gopher.Width), int(gopher.Height), gopher.Title, nil, nil)
	if err != nil {
		logger.Log.Error("Could not create glfw window", zap.Error(err))
		return
	}

	gopher.window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		logger.Log.Error("Could not initialize OpenGL", zap.Error(err))
		return
	}
	if x >= 0 && y >= 0 {
		gopher.window.SetPos(x, y)
	}
	SetDarkTitleBar(gopher.window)
	SetWindowBorderColor(gopher.ClearColor[0], gopher.ClearColor[1], gopher.ClearColor[2])

	fbWidth, fbHeight := gopher.window.GetFramebufferSize()
	gopher.rendererAPI.Init(int32(fbWidth), int32(fbHeight))

	gopher.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	gopher.window.SetCursorPosCallback(gopher.mouseCallback)
	gopher.window.SetMouseButtonCallback(gopher.mouseButtonCallback)
	gopher.window.SetKeyCallback(gopher.keyCallback)

	gopher.RenderLoop()
}

func (gopher *Gopher) RenderLoop() {
	var lastTime = glfw.GetTime()
	var lastWidth, lastHeight int32 = gopher.Width, gopher.Height
	fbWidth, fbHeight := gopher.window.GetFramebufferSize()
	lastFbWidth, lastFbHeight := int32(fbWidth), int32(fbHeight)

	for !gopher.window.ShouldClose() {
		currentTime := glfw.GetTime()
		deltaTime := currentTime - lastTime
		lastTime = currentTime

		// Pointer coordinates and the camera aspect follow the window size
		actualWidth, actualHeight := gopher.window.GetSize()
		gopher.Width, gopher.Height = int32(actualWidth), int32(actualHeight)
		if gopher.Width != lastWidth || gopher.Height != lastHeight {
			gopher.Camera.SetViewport(gopher.Width, gopher.Height)
			gopher.Pointer.SetViewport(renderer.Viewport{Width: actualWidth, Height: actualHeight})
			lastWidth, lastHeight = gopher.Width, gopher.Height
		}

		// The GL viewport follows the framebuffer, which differs on HiDPI screens
		fbWidth, fbHeight = gopher.window.GetFramebufferSize()
		if int32(fbWidth) != lastFbWidth || int32(fbHeight) != lastFbHeight {
			gopher.rendererAPI.UpdateViewport(int32(fbWidth), int32(fbHeight))
			lastFbWidth, lastFbHeight = int32(fbWidth), int32(fbHeight)
		}

		if gopher.onFrame != nil {
			gopher.onFrame(deltaTime)
		}

		if gopher.root != nil {
			gopher.rendererAPI.Upload(gopher.root)
		}
		gopher.rendererAPI.Render(gopher.Camera, gopher.root, gopher.Lights)

		gopher.window.SwapBuffers()
		glfw.PollEvents()
	}
	gopher.rendererAPI.Cleanup()
}

// SetDebugMode draws wireframes. It takes effect when the renderer initializes.
func (gopher *Gopher) SetDebugMode(debug bool) {
	renderer.Debug = debug
}

// SetFrustumCulling skips meshes whose bounds fall outside the view.
func (gopher *Gopher) SetFrustumCulling(enabled bool) {
	renderer.FrustumCullingEnabled = enabled
}

// SetFaceCulling drops back-facing triangles.
func (gopher *Gopher) SetFaceCulling(enabled bool) {
	renderer.FaceCullingEnabled = enabled
}

// Mouse callback function
func (gopher *Gopher) mouseCallback(w *glfw.Window, xpos, ypos float64) {
	gopher.Pointer.Move(float32(xpos), float32(ypos))
}

func (gopher *Gopher) mouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	if button != glfw.MouseButtonLeft || action != glfw.Press {
		return
	}
	xpos, ypos := w.GetCursorPos()
	gopher.Pointer.Click(float32(xpos), float32(ypos))
}

func (gopher *Gopher) keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action != glfw.Press {
		return
	}
	switch key {
	case glfw.KeyEscape, glfw.KeyBackspace:
		if gopher.onBack != nil {
			gopher.onBack()
		}
	}
}
