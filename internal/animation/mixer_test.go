package animation

import (
	"testing"

	"Scrapbook3D/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
)

func slideClip(name, node string, duration float32) *Clip {
	return NewClip(name, Track{
		Node:     node,
		Property: PropertyPosition,
		Times:    []float32{0, duration},
		Vectors:  []mgl32.Vec3{{0, 0, 0}, {2, 0, 0}},
	})
}

func newTestMixer(clips ...*Clip) (*Mixer, *renderer.Node) {
	root := renderer.NewNode("root")
	root.Add(renderer.NewNode("Cover"))
	root.Add(renderer.NewNode("Page_1"))
	byName := make(map[string]*Clip)
	for _, c := range clips {
		byName[c.Name] = c
	}
	return NewMixer(root, byName), root
}

func TestNewClipDuration(t *testing.T) {
	c := NewClip("c",
		Track{Times: []float32{0, 0.5}, Vectors: make([]mgl32.Vec3, 2)},
		Track{Times: []float32{0, 1.25}, Vectors: make([]mgl32.Vec3, 2)},
	)
	if c.Duration != 1.25 {
		t.Errorf("Duration = %v, want 1.25", c.Duration)
	}
}

func TestTrackApplyInterpolates(t *testing.T) {
	tr := Track{
		Property: PropertyScale,
		Times:    []float32{0, 1, 2},
		Vectors:  []mgl32.Vec3{{1, 1, 1}, {3, 3, 3}, {5, 5, 5}},
	}
	n := renderer.NewNode("n")
	tests := []struct {
		time float32
		want float32
	}{
		{-1, 1},
		{0.5, 2},
		{1.5, 4},
		{9, 5},
	}
	for _, tt := range tests {
		tr.Apply(n, tt.time)
		if got := n.Scale.X(); absf(got-tt.want) > 1e-5 {
			t.Errorf("scale at %v = %v, want %v", tt.time, got, tt.want)
		}
	}
}

func TestTrackApplyRotation(t *testing.T) {
	end := mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0})
	tr := Track{
		Property:  PropertyRotation,
		Times:     []float32{0, 1},
		Rotations: []mgl32.Quat{mgl32.QuatIdent(), end},
	}
	n := renderer.NewNode("n")
	tr.Apply(n, 1)
	if !n.Rotation.ApproxEqualThreshold(end, 1e-5) {
		t.Errorf("rotation = %v, want %v", n.Rotation, end)
	}
}

func TestMixerPlayOnceClampsAndEmits(t *testing.T) {
	m, root := newTestMixer(slideClip("Open", "Cover", 1))
	var events []string
	m.Subscribe(func(ev FinishedEvent) { events = append(events, ev.Clip) })

	if !m.Play("Open") {
		t.Fatal("Play returned false for known clip")
	}
	m.Update(0.5)
	if len(events) != 0 {
		t.Fatalf("finished early: %v", events)
	}
	m.Update(0.75)
	if len(events) != 1 || events[0] != "Open" {
		t.Fatalf("events = %v, want [Open]", events)
	}
	if x := root.Find("Cover").Position.X(); x != 2 {
		t.Errorf("clamped position x = %v, want 2", x)
	}
	m.Update(1)
	if len(events) != 1 {
		t.Errorf("finished event repeated: %v", events)
	}
	if m.Running() != 0 {
		t.Errorf("Running = %d, want 0", m.Running())
	}
}

func TestMixerWithoutClampReturnsToStart(t *testing.T) {
	m, root := newTestMixer(slideClip("Open", "Cover", 1))
	m.Action("Open").ClampWhenFinished = false
	m.Play("Open")
	m.Update(2)
	if x := root.Find("Cover").Position.X(); x != 0 {
		t.Errorf("position x = %v, want 0", x)
	}
}

func TestMixerRepeatNeverFinishes(t *testing.T) {
	m, _ := newTestMixer(slideClip("Spin", "Page_1", 1))
	m.Action("Spin").Loop = LoopRepeat
	finished := 0
	m.Subscribe(func(FinishedEvent) { finished++ })
	m.Play("Spin")
	for i := 0; i < 10; i++ {
		m.Update(0.3)
	}
	if finished != 0 {
		t.Errorf("repeat action finished %d times", finished)
	}
	if !m.Action("Spin").IsRunning() {
		t.Error("repeat action stopped")
	}
}

func TestMixerPlayUnknownClip(t *testing.T) {
	m, _ := newTestMixer(slideClip("Open", "Cover", 1))
	if m.Play("Missing") {
		t.Error("Play returned true for unknown clip")
	}
}

func TestMixerMissingTargetIsIgnored(t *testing.T) {
	m, _ := newTestMixer(slideClip("Ghost", "NoSuchNode", 0.5))
	got := ""
	m.Subscribe(func(ev FinishedEvent) { got = ev.Clip })
	m.Play("Ghost")
	m.Update(1)
	if got != "Ghost" {
		t.Errorf("finished clip = %q, want Ghost", got)
	}
}

func TestMixerZeroDurationFinishesOnFirstUpdate(t *testing.T) {
	m, _ := newTestMixer(NewClip("Empty"))
	count := 0
	m.Subscribe(func(FinishedEvent) { count++ })
	m.Play("Empty")
	m.Update(0)
	if count != 1 {
		t.Errorf("finished count = %d, want 1", count)
	}
}

func TestSubscriptionUnsubscribe(t *testing.T) {
	m, _ := newTestMixer(slideClip("Open", "Cover", 0.1))
	count := 0
	sub := m.Subscribe(func(FinishedEvent) { count++ })
	if m.ListenerCount() != 1 {
		t.Fatalf("ListenerCount = %d, want 1", m.ListenerCount())
	}
	sub.Unsubscribe()
	sub.Unsubscribe()
	if m.ListenerCount() != 0 {
		t.Errorf("ListenerCount after Unsubscribe = %d, want 0", m.ListenerCount())
	}
	m.Play("Open")
	m.Update(1)
	if count != 0 {
		t.Errorf("unsubscribed listener called %d times", count)
	}
}

func TestClipNamesSorted(t *testing.T) {
	m, _ := newTestMixer(slideClip("b", "Cover", 1), slideClip("a", "Cover", 1))
	names := m.ClipNames()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("ClipNames = %v", names)
	}
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
