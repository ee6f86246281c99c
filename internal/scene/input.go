package scene

import (
	"sort"

	"Scrapbook3D/internal/renderer"
)

type PointerKind int

const (
	PointerMove PointerKind = iota
	PointerClick
)

// PointerEvent is a pointer position in surface pixels plus the surface size.
type PointerEvent struct {
	Kind     PointerKind
	X, Y     float32
	Viewport renderer.Viewport
}

// InputSource delivers pointer events to subscribers.
type InputSource interface {
	Subscribe(fn func(PointerEvent)) *Handle
}

// Handle removes a subscription. Remove is idempotent.
type Handle struct {
	remove func()
}

func (h *Handle) Remove() {
	if h == nil || h.remove == nil {
		return
	}
	h.remove()
	h.remove = nil
}

// Pointer is an in-process InputSource. The window layer and tests push
// events into it.
type Pointer struct {
	handlers map[uint64]func(PointerEvent)
	nextID   uint64
	viewport renderer.Viewport
}

func NewPointer(viewport renderer.Viewport) *Pointer {
	return &Pointer{
		handlers: make(map[uint64]func(PointerEvent)),
		viewport: viewport,
	}
}

func (p *Pointer) Subscribe(fn func(PointerEvent)) *Handle {
	p.nextID++
	id := p.nextID
	p.handlers[id] = fn
	return &Handle{remove: func() { delete(p.handlers, id) }}
}

// SetViewport records the surface size stamped on later events.
func (p *Pointer) SetViewport(viewport renderer.Viewport) {
	p.viewport = viewport
}

func (p *Pointer) Viewport() renderer.Viewport {
	return p.viewport
}

func (p *Pointer) Move(x, y float32) {
	p.dispatch(PointerEvent{Kind: PointerMove, X: x, Y: y, Viewport: p.viewport})
}

func (p *Pointer) Click(x, y float32) {
	p.dispatch(PointerEvent{Kind: PointerClick, X: x, Y: y, Viewport: p.viewport})
}

func (p *Pointer) Subscribers() int {
	return len(p.handlers)
}

func (p *Pointer) dispatch(ev PointerEvent) {
	ids := make([]uint64, 0, len(p.handlers))
	for id := range p.handlers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		if fn, ok := p.handlers[id]; ok {
			fn(ev)
		}
	}
}
