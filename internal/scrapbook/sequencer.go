package scrapbook

import (
	"Scrapbook3D/internal/animation"
	"Scrapbook3D/internal/logger"

	"go.uber.org/zap"
)

// PageState is the sequencer's observable state. Index 0 means the book is closed.
type PageState struct {
	Index     int
	Animating bool
}

func (s PageState) Closed() bool {
	return s.Index == 0 && !s.Animating
}

// ClipSource is the clip set a sequencer drives. *animation.Mixer implements it.
type ClipSource interface {
	ClipNames() []string
	Play(name string) bool
	Subscribe(fn func(animation.FinishedEvent)) *animation.Subscription
}

// Sequencer turns pages one clip at a time. A click starts the clip for the
// current index and every further click is dropped until that clip finishes.
type Sequencer struct {
	naming ClipNaming
	state  PageState
	steps  []string
	pages  map[int]string
	cover  bool
	source ClipSource
	sub    *animation.Subscription
}

func NewSequencer(naming ClipNaming) *Sequencer {
	return &Sequencer{naming: naming}
}

// Bind attaches the sequencer to a freshly loaded clip set, releasing any
// previous binding and resetting to Closed.
func (s *Sequencer) Bind(source ClipSource) {
	s.Close()
	if source == nil {
		return
	}
	s.source = source
	s.steps = s.naming.Steps(source.ClipNames())
	s.pages = make(map[int]string, len(s.steps))
	for _, name := range s.steps {
		if k, ok := s.naming.PageNumber(name); ok {
			s.pages[k] = name
		} else if s.naming.IsCover(name) {
			s.cover = true
		}
	}
	s.sub = source.Subscribe(func(ev animation.FinishedEvent) {
		s.HandleFinished(ev.Clip)
	})
	logger.Log.Info("Page sequencer bound",
		zap.Int("steps", len(s.steps)),
		zap.Strings("clips", s.steps))
}

// Close unsubscribes from the bound clip set. The sequencer becomes inert.
func (s *Sequencer) Close() {
	if s.sub != nil {
		s.sub.Unsubscribe()
		s.sub = nil
	}
	s.source = nil
	s.steps = nil
	s.pages = nil
	s.cover = false
	s.state = PageState{}
}

func (s *Sequencer) State() PageState {
	return s.state
}

// Steps returns the bound clip order. Its length is the number of clicks that
// bring a closed book back to closed.
func (s *Sequencer) Steps() []string {
	out := make([]string, len(s.steps))
	copy(out, s.steps)
	return out
}

// Click requests the clip for the current index and reports whether one started.
// A click while animating is dropped. A missing clip wraps the book to Closed.
func (s *Sequencer) Click() bool {
	if s.state.Animating {
		logger.Log.Debug("Page click dropped while animating", zap.Int("index", s.state.Index))
		return false
	}
	name, ok := s.clipFor(s.state.Index)
	if !ok {
		if s.state.Index > 0 {
			logger.Log.Debug("No clip for page, closing book", zap.Int("index", s.state.Index))
		}
		s.state = PageState{}
		return false
	}
	if s.source == nil || !s.source.Play(name) {
		logger.Log.Warn("Page clip unavailable, closing book", zap.String("clip", name))
		s.state = PageState{}
		return false
	}
	s.state.Animating = true
	logger.Log.Debug("Playing page clip", zap.String("clip", name), zap.Int("index", s.state.Index))
	return true
}

// clipFor maps an index to its clip. With a cover, index 0 is the cover and
// index k is page k; without one the pages are played in order.
func (s *Sequencer) clipFor(index int) (string, bool) {
	if index < 0 || index >= len(s.steps) {
		return "", false
	}
	if !s.cover {
		return s.steps[index], true
	}
	if index == 0 {
		return s.naming.Cover, true
	}
	name, ok := s.pages[index]
	return name, ok
}

// HandleFinished advances past the playing clip. Signals outside an animation
// or for unrecognised clip names leave the state unchanged.
func (s *Sequencer) HandleFinished(name string) bool {
	if !s.state.Animating || !s.naming.Recognizes(name) {
		return false
	}
	next := s.state.Index + 1
	if next >= len(s.steps) {
		next = 0
	}
	s.state = PageState{Index: next}
	return true
}
