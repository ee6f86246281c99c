package animation

import (
	"sort"

	"Scrapbook3D/internal/logger"
	"Scrapbook3D/internal/renderer"

	"go.uber.org/zap"
)

// FinishedEvent is emitted when a play-once action reaches its last frame.
type FinishedEvent struct {
	Clip   string
	Action *Action
}

// Mixer plays clips against the nodes of one scene subtree.
type Mixer struct {
	root      *renderer.Node
	actions   map[string]*Action
	names     []string
	bindings  map[string]*renderer.Node
	listeners map[uint64]func(FinishedEvent)
	nextID    uint64
}

// Subscription is a registered finished-event observer. Unsubscribe is idempotent.
type Subscription struct {
	mixer *Mixer
	id    uint64
}

func (s *Subscription) Unsubscribe() {
	if s == nil || s.mixer == nil {
		return
	}
	delete(s.mixer.listeners, s.id)
	s.mixer = nil
}

// NewMixer creates one play-once, clamp-at-end action per clip.
func NewMixer(root *renderer.Node, clips map[string]*Clip) *Mixer {
	m := &Mixer{
		root:      root,
		actions:   make(map[string]*Action, len(clips)),
		bindings:  make(map[string]*renderer.Node),
		listeners: make(map[uint64]func(FinishedEvent)),
	}
	for name, clip := range clips {
		if clip == nil {
			continue
		}
		m.actions[name] = newAction(clip)
		m.names = append(m.names, name)
	}
	sort.Strings(m.names)
	return m
}

// ClipNames returns the available clip names in lexical order.
func (m *Mixer) ClipNames() []string {
	out := make([]string, len(m.names))
	copy(out, m.names)
	return out
}

func (m *Mixer) Action(name string) *Action {
	return m.actions[name]
}

// Play restarts the named clip from its first frame. Unknown names are a no-op.
func (m *Mixer) Play(name string) bool {
	a := m.actions[name]
	if a == nil {
		return false
	}
	a.Reset().Play()
	return true
}

// Running reports how many actions are currently playing.
func (m *Mixer) Running() int {
	n := 0
	for _, a := range m.actions {
		if a.running {
			n++
		}
	}
	return n
}

func (m *Mixer) Subscribe(fn func(FinishedEvent)) *Subscription {
	m.nextID++
	m.listeners[m.nextID] = fn
	return &Subscription{mixer: m, id: m.nextID}
}

func (m *Mixer) ListenerCount() int {
	return len(m.listeners)
}

// Update advances every running action by dt seconds, poses the bound nodes and
// then notifies subscribers of actions that finished during this step.
func (m *Mixer) Update(dt float32) {
	var finished []FinishedEvent
	for _, name := range m.names {
		a := m.actions[name]
		if !a.running {
			continue
		}
		done := a.advance(dt)
		m.pose(a)
		if done {
			finished = append(finished, FinishedEvent{Clip: name, Action: a})
		}
	}
	for _, ev := range finished {
		m.emit(ev)
	}
}

func (m *Mixer) pose(a *Action) {
	for i := range a.clip.Tracks {
		track := &a.clip.Tracks[i]
		track.Apply(m.bind(track.Node), a.time)
	}
}

func (m *Mixer) bind(name string) *renderer.Node {
	if node, ok := m.bindings[name]; ok {
		return node
	}
	var node *renderer.Node
	if m.root != nil {
		node = m.root.Find(name)
	}
	if node == nil {
		logger.Log.Debug("Animation track target not found", zap.String("node", name))
	}
	m.bindings[name] = node
	return node
}

func (m *Mixer) emit(ev FinishedEvent) {
	ids := make([]uint64, 0, len(m.listeners))
	for id := range m.listeners {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		// A listener may unsubscribe another during dispatch.
		if fn, ok := m.listeners[id]; ok {
			fn(ev)
		}
	}
}
