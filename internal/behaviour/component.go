package behaviour

import (
	"time"

	"Scrapbook3D/internal/renderer"
)

// Frame carries the timing of one tick. Delta is the seconds since the previous
// tick and Elapsed the seconds since the manager started ticking.
type Frame struct {
	Delta   float32
	Elapsed float32
	Index   uint64
}

// FrameFromDuration converts a wall-clock delta into a Frame step.
func FrameFromDuration(d time.Duration) float32 {
	if d < 0 {
		return 0
	}
	return float32(d.Seconds())
}

// Component is the base interface for all per-frame behaviour.
// Components are attached to game objects and driven by a ComponentManager.
type Component interface {
	// Lifecycle methods
	Awake()             // Called when component is attached
	Start()             // Called before the component's first Update
	Update(frame Frame) // Called every frame
	OnDestroy()         // Called when component/object is destroyed

	// Component info
	GetEnabled() bool
	SetEnabled(bool)
	GetGameObject() *GameObject
	SetGameObject(*GameObject)
}

// BaseComponent provides default implementations for all Component methods.
// Embed it to override only the methods you need.
type BaseComponent struct {
	enabled    bool
	gameObject *GameObject
}

func (c *BaseComponent) Awake()       {}
func (c *BaseComponent) Start()       {}
func (c *BaseComponent) Update(Frame) {}
func (c *BaseComponent) OnDestroy()   {}

func (c *BaseComponent) GetEnabled() bool {
	return c.enabled
}

func (c *BaseComponent) SetEnabled(enabled bool) {
	c.enabled = enabled
}

func (c *BaseComponent) GetGameObject() *GameObject {
	return c.gameObject
}

func (c *BaseComponent) SetGameObject(obj *GameObject) {
	c.gameObject = obj
}

// GameObject groups components around an optional scene node.
type GameObject struct {
	Name       string
	Tag        string
	Active     bool
	Node       *renderer.Node
	Components []Component

	started map[Component]bool
}

func NewGameObject(name string) *GameObject {
	return &GameObject{
		Name:       name,
		Active:     true,
		Components: make([]Component, 0),
		started:    make(map[Component]bool),
	}
}

// NewNodeObject wraps an existing scene node, taking its name.
func NewNodeObject(node *renderer.Node) *GameObject {
	obj := NewGameObject(node.Name)
	obj.Node = node
	return obj
}

func (obj *GameObject) AddComponent(component Component) {
	component.SetGameObject(obj)
	component.SetEnabled(true)
	obj.Components = append(obj.Components, component)
	component.Awake()
}

// GetComponent returns the first component of type T attached to obj.
func GetComponent[T Component](obj *GameObject) (T, bool) {
	for _, comp := range obj.Components {
		if c, ok := comp.(T); ok {
			return c, true
		}
	}
	var zero T
	return zero, false
}

func (obj *GameObject) RemoveComponent(component Component) {
	for i, comp := range obj.Components {
		if comp == component {
			comp.OnDestroy()
			delete(obj.started, comp)
			obj.Components = append(obj.Components[:i], obj.Components[i+1:]...)
			return
		}
	}
}

func (obj *GameObject) internalUpdate(frame Frame) {
	if !obj.Active {
		return
	}

	// Range over a snapshot so components may detach themselves during Update.
	comps := append([]Component(nil), obj.Components...)
	for _, comp := range comps {
		if !comp.GetEnabled() {
			continue
		}
		if !obj.started[comp] {
			obj.started[comp] = true
			comp.Start()
		}
		comp.Update(frame)
	}
}

func (obj *GameObject) Destroy() {
	for _, comp := range obj.Components {
		comp.OnDestroy()
	}
	obj.Active = false
}
