package scrapbook

import (
	"testing"

	"Scrapbook3D/internal/animation"
	"Scrapbook3D/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
)

func bookMixer(names ...string) *animation.Mixer {
	root := renderer.NewNode("Book")
	clips := make(map[string]*animation.Clip, len(names))
	for _, name := range names {
		root.Add(renderer.NewNode(name + "_Bone"))
		clips[name] = animation.NewClip(name, animation.Track{
			Node:     name + "_Bone",
			Property: animation.PropertyRotation,
			Times:    []float32{0, 1},
			Rotations: []mgl32.Quat{
				mgl32.QuatIdent(),
				mgl32.QuatRotate(mgl32.DegToRad(180), mgl32.Vec3{0, 0, 1}),
			},
		})
	}
	return animation.NewMixer(root, clips)
}

// fakeSource records Play calls and delivers finished events by hand.
type fakeSource struct {
	names  []string
	played []string
	refuse map[string]bool
	mixer  *animation.Mixer
}

func (f *fakeSource) ClipNames() []string { return f.names }

func (f *fakeSource) Play(name string) bool {
	if f.refuse[name] {
		return false
	}
	f.played = append(f.played, name)
	return true
}

func (f *fakeSource) Subscribe(fn func(animation.FinishedEvent)) *animation.Subscription {
	if f.mixer == nil {
		f.mixer = animation.NewMixer(nil, nil)
	}
	return f.mixer.Subscribe(fn)
}

func TestSequencerStartsClosed(t *testing.T) {
	s := NewSequencer(DefaultClipNaming())
	if !s.State().Closed() {
		t.Errorf("State = %+v, want closed", s.State())
	}
}

func TestSequencerUnboundClickIsInert(t *testing.T) {
	s := NewSequencer(DefaultClipNaming())
	if s.Click() {
		t.Error("Click started a clip with nothing loaded")
	}
	if s.State() != (PageState{}) {
		t.Errorf("State = %+v", s.State())
	}
}

func TestSequencerScenarioCover(t *testing.T) {
	m := bookMixer("BookCover_TopAction", "Page_1Action")
	s := NewSequencer(DefaultClipNaming())
	s.Bind(m)

	if !s.Click() {
		t.Fatal("Click did not start the cover clip")
	}
	if st := s.State(); st.Index != 0 || !st.Animating {
		t.Fatalf("State = %+v, want animating at 0", st)
	}
	if !m.Action("BookCover_TopAction").IsRunning() {
		t.Fatal("cover clip not playing")
	}

	m.Update(1.3)

	if st := s.State(); st.Index != 1 || st.Animating {
		t.Errorf("State = %+v, want index 1 idle", st)
	}
}

func TestSequencerDropsClicksWhileAnimating(t *testing.T) {
	src := &fakeSource{names: []string{"BookCover_TopAction", "Page_1Action", "Page_2Action"}}
	s := NewSequencer(DefaultClipNaming())
	s.Bind(src)

	s.Click()
	for i := 0; i < 5; i++ {
		if s.Click() {
			t.Fatal("click accepted while animating")
		}
	}
	if st := s.State(); st.Index != 0 || !st.Animating {
		t.Errorf("State = %+v after dropped clicks", st)
	}
	if len(src.played) != 1 {
		t.Errorf("played = %v, want one clip", src.played)
	}

	s.HandleFinished("BookCover_TopAction")
	if st := s.State(); st.Index != 1 || st.Animating {
		t.Errorf("State = %+v after finish", st)
	}
}

func TestSequencerIgnoresFinishedWhenIdle(t *testing.T) {
	src := &fakeSource{names: []string{"Page_1Action", "Page_2Action"}}
	s := NewSequencer(DefaultClipNaming())
	s.Bind(src)

	if s.HandleFinished("Page_1Action") {
		t.Error("finished honoured while idle")
	}
	if s.State() != (PageState{}) {
		t.Errorf("State = %+v", s.State())
	}
}

func TestSequencerIgnoresUnrelatedFinished(t *testing.T) {
	src := &fakeSource{names: []string{"Page_1Action", "Page_2Action", "LampFlicker"}}
	s := NewSequencer(DefaultClipNaming())
	s.Bind(src)

	s.Click()
	if s.HandleFinished("LampFlicker") {
		t.Error("unrelated clip advanced the book")
	}
	if st := s.State(); st.Index != 0 || !st.Animating {
		t.Errorf("State = %+v", st)
	}
}

func TestSequencerWrapsAfterAllSteps(t *testing.T) {
	tests := []struct {
		name  string
		clips []string
	}{
		{"cover and pages", []string{"BookCover_TopAction", "Page_1Action", "Page_2Action", "Page_3Action", "Page_4Action", "Page_5Action"}},
		{"pages only", []string{"Page_1Action", "Page_2Action"}},
		{"cover only", []string{"BookCover_TopAction"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := bookMixer(tt.clips...)
			s := NewSequencer(DefaultClipNaming())
			s.Bind(m)
			n := len(s.Steps())
			if n != len(tt.clips) {
				t.Fatalf("steps = %d, want %d", n, len(tt.clips))
			}
			for i := 0; i < n; i++ {
				if !s.Click() {
					t.Fatalf("cycle %d: click rejected", i)
				}
				m.Update(2)
				if i < n-1 && s.State().Index != i+1 {
					t.Fatalf("cycle %d: index = %d", i, s.State().Index)
				}
			}
			if !s.State().Closed() {
				t.Errorf("State after %d cycles = %+v, want closed", n, s.State())
			}
		})
	}
}

func TestSequencerMissingClipWrapsToClosed(t *testing.T) {
	src := &fakeSource{
		names:  []string{"BookCover_TopAction", "Page_1Action"},
		refuse: map[string]bool{"Page_1Action": true},
	}
	s := NewSequencer(DefaultClipNaming())
	s.Bind(src)

	s.Click()
	s.HandleFinished("BookCover_TopAction")
	if s.State().Index != 1 {
		t.Fatalf("index = %d, want 1", s.State().Index)
	}
	if s.Click() {
		t.Error("click on missing clip reported playback")
	}
	if !s.State().Closed() {
		t.Errorf("State = %+v, want closed", s.State())
	}
}

func TestSequencerGapWrapsToClosed(t *testing.T) {
	src := &fakeSource{names: []string{"BookCover_TopAction", "Page_1Action", "Page_2Action", "Page_4Action"}}
	s := NewSequencer(DefaultClipNaming())
	s.Bind(src)

	for i := 0; i < 3; i++ {
		if !s.Click() {
			t.Fatalf("cycle %d: click rejected", i)
		}
		s.HandleFinished(src.played[len(src.played)-1])
	}
	if st := s.State(); st.Index != 3 || st.Animating {
		t.Fatalf("State after page 2 = %+v, want index 3 idle", st)
	}

	if s.Click() {
		t.Errorf("click at index 3 played %q, page 3 has no clip", src.played[len(src.played)-1])
	}
	if !s.State().Closed() {
		t.Errorf("State = %+v, want closed", s.State())
	}
	want := []string{"BookCover_TopAction", "Page_1Action", "Page_2Action"}
	if len(src.played) != len(want) {
		t.Fatalf("played = %v, want %v", src.played, want)
	}
	for i := range want {
		if src.played[i] != want[i] {
			t.Errorf("played[%d] = %q, want %q", i, src.played[i], want[i])
		}
	}

	// The book starts over at the cover.
	if !s.Click() || src.played[len(src.played)-1] != "BookCover_TopAction" {
		t.Errorf("click after wrap played %v", src.played)
	}
}

func TestSequencerPagesOnlyPlayInOrder(t *testing.T) {
	src := &fakeSource{names: []string{"Page_4Action", "Page_2Action"}}
	s := NewSequencer(DefaultClipNaming())
	s.Bind(src)

	for i := 0; i < 2; i++ {
		s.Click()
		s.HandleFinished(src.played[len(src.played)-1])
	}
	if len(src.played) != 2 || src.played[0] != "Page_2Action" || src.played[1] != "Page_4Action" {
		t.Errorf("played = %v", src.played)
	}
	if !s.State().Closed() {
		t.Errorf("State = %+v, want closed", s.State())
	}
}

func TestSequencerCloseUnsubscribes(t *testing.T) {
	m := bookMixer("BookCover_TopAction")
	s := NewSequencer(DefaultClipNaming())
	s.Bind(m)
	if m.ListenerCount() != 1 {
		t.Fatalf("ListenerCount = %d, want 1", m.ListenerCount())
	}

	s.Bind(m)
	if m.ListenerCount() != 1 {
		t.Errorf("rebinding leaked a listener: %d", m.ListenerCount())
	}

	s.Close()
	if m.ListenerCount() != 0 {
		t.Errorf("ListenerCount after Close = %d", m.ListenerCount())
	}
	if s.Click() {
		t.Error("closed sequencer started a clip")
	}
}
