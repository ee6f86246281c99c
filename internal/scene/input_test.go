package scene

import (
	"testing"

	"Scrapbook3D/internal/renderer"
)

func TestPointerDispatch(t *testing.T) {
	p := NewPointer(renderer.Viewport{Width: 640, Height: 480})
	var got []PointerEvent
	h := p.Subscribe(func(ev PointerEvent) { got = append(got, ev) })

	p.Move(10, 20)
	p.SetViewport(renderer.Viewport{Width: 800, Height: 600})
	p.Click(30, 40)

	if len(got) != 2 {
		t.Fatalf("got %d events, want 2", len(got))
	}
	if got[0].Kind != PointerMove || got[0].X != 10 || got[0].Viewport.Width != 640 {
		t.Errorf("move event = %+v", got[0])
	}
	if got[1].Kind != PointerClick || got[1].Y != 40 || got[1].Viewport.Width != 800 {
		t.Errorf("click event = %+v", got[1])
	}

	h.Remove()
	h.Remove()
	p.Click(1, 1)
	if len(got) != 2 || p.Subscribers() != 0 {
		t.Error("removed handler still receives events")
	}
}

func TestNilHandleRemove(t *testing.T) {
	var h *Handle
	h.Remove()
}
