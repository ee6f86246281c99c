package animation

import "math"

type LoopMode int

const (
	// LoopOnce plays the clip a single time and then stops.
	LoopOnce LoopMode = iota
	LoopRepeat
)

// Action is the playback state of one clip inside a Mixer.
type Action struct {
	Loop              LoopMode
	ClampWhenFinished bool

	clip    *Clip
	time    float32
	running bool
}

func newAction(clip *Clip) *Action {
	return &Action{
		clip:              clip,
		Loop:              LoopOnce,
		ClampWhenFinished: true,
	}
}

func (a *Action) Clip() *Clip {
	return a.clip
}

func (a *Action) Time() float32 {
	return a.time
}

func (a *Action) IsRunning() bool {
	return a.running
}

// Reset rewinds to the first frame without starting playback.
func (a *Action) Reset() *Action {
	a.time = 0
	return a
}

func (a *Action) Play() *Action {
	a.running = true
	return a
}

func (a *Action) Stop() *Action {
	a.running = false
	a.time = 0
	return a
}

// advance moves the clock by dt and reports whether a play-once action just ended.
func (a *Action) advance(dt float32) bool {
	if !a.running {
		return false
	}
	a.time += dt
	duration := a.clip.Duration

	if a.Loop == LoopRepeat {
		if duration > 0 {
			a.time = float32(math.Mod(float64(a.time), float64(duration)))
		} else {
			a.time = 0
		}
		return false
	}

	if a.time < duration {
		return false
	}
	a.running = false
	if a.ClampWhenFinished {
		a.time = duration
	} else {
		a.time = 0
	}
	return true
}
