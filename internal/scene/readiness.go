package scene

type readyState int

const (
	notReady readyState = iota
	readyPending
	ready
)

// ReadinessGate fires its callback once, on the first frame boundary after
// Resolve. A gate never re-arms; a new scene instance builds a new gate.
type ReadinessGate struct {
	callback func()
	state    readyState
}

func NewReadinessGate(callback func()) *ReadinessGate {
	return &ReadinessGate{callback: callback}
}

// Resolve records that the assets have loaded. Later calls are ignored.
func (g *ReadinessGate) Resolve() {
	if g.state == notReady {
		g.state = readyPending
	}
}

// Frame is called at the start of each frame and fires the callback if a
// resolution is pending. It reports whether the callback slot was consumed.
func (g *ReadinessGate) Frame() bool {
	if g.state != readyPending {
		return false
	}
	g.state = ready
	if g.callback != nil {
		g.callback()
	}
	return true
}

func (g *ReadinessGate) Resolved() bool {
	return g.state != notReady
}

func (g *ReadinessGate) Ready() bool {
	return g.state == ready
}
