package gesture

import (
	"github.com/lumenwm/lumen/internal/geometry"
	"github.com/lumenwm/lumen/internal/input"
)

// SwipeConfig tunes the swipe recognizer. Zero values take the defaults.
type SwipeConfig struct {
	// MinDistance is the travel in logical pixels before motion counts as
	// a swipe. Default 50.
	MinDistance float64
	// MaxTimeMS bounds the whole motion. Default 500.
	MaxTimeMS uint64
}

func (c *SwipeConfig) applyDefaults() {
	if c.MinDistance <= 0 {
		c.MinDistance = 50
	}
	if c.MaxTimeMS == 0 {
		c.MaxTimeMS = 500
	}
}

// SwipeRecognizer recognizes fast directional motion. While the press
// travels past the minimum distance within the time budget it emits Changed
// per qualifying move, then Ended on release. A motion that is too slow or
// too short ends with no emission.
type SwipeRecognizer struct {
	cfg SwipeConfig

	active    bool
	start     geometry.Point
	current   geometry.Point
	startTS   uint64
	touchID   uint64
	isTouch   bool
	target    uint64
	source    string
	modifiers input.Modifiers
}

// NewSwipe creates a swipe recognizer.
func NewSwipe(cfg SwipeConfig) *SwipeRecognizer {
	cfg.applyDefaults()
	return &SwipeRecognizer{cfg: cfg}
}

// Kind implements Recognizer.
func (r *SwipeRecognizer) Kind() Kind { return Swipe }

// Active implements Recognizer.
func (r *SwipeRecognizer) Active() bool { return r.active }

// Reset implements Recognizer.
func (r *SwipeRecognizer) Reset() {
	*r = SwipeRecognizer{cfg: r.cfg}
}

// Update implements Recognizer.
func (r *SwipeRecognizer) Update(ev *input.Event) *Info {
	switch ev.Kind {
	case input.PointerPress:
		if ev.Button != input.ButtonLeft {
			return nil
		}
		r.begin(ev, false)

	case input.TouchBegin:
		if !r.active {
			r.begin(ev, true)
		}

	case input.PointerMove, input.TouchUpdate:
		if !r.tracks(ev) {
			return nil
		}
		r.current = geometry.Point{X: ev.X, Y: ev.Y}
		if r.qualifies(ev.Timestamp) {
			return r.emit(Changed, ev.Timestamp)
		}

	case input.PointerRelease, input.TouchEnd:
		if !r.tracks(ev) {
			return nil
		}
		r.current = geometry.Point{X: ev.X, Y: ev.Y}
		var info *Info
		if r.qualifies(ev.Timestamp) {
			info = r.emit(Ended, ev.Timestamp)
		}
		r.Reset()
		return info
	}
	return nil
}

func (r *SwipeRecognizer) qualifies(ts uint64) bool {
	return r.current.Distance(r.start) >= r.cfg.MinDistance &&
		elapsedMS(ts, r.startTS) <= r.cfg.MaxTimeMS
}

func (r *SwipeRecognizer) emit(state State, ts uint64) *Info {
	delta := r.current.Sub(r.start)
	return &Info{
		Kind:          Swipe,
		State:         state,
		Timestamp:     ts,
		Position:      r.current,
		StartPosition: r.start,
		Delta:         delta,
		Scale:         1,
		TouchCount:    1,
		Direction:     classifyDirection(delta.X, delta.Y),
		Target:        r.target,
		SourceDevice:  r.source,
		Modifiers:     r.modifiers,
	}
}

func (r *SwipeRecognizer) begin(ev *input.Event, touch bool) {
	r.active = true
	r.start = geometry.Point{X: ev.X, Y: ev.Y}
	r.current = r.start
	r.startTS = ev.Timestamp
	r.isTouch = touch
	r.touchID = ev.TouchID
	r.target = ev.Target
	r.source = ev.SourceDevice
	r.modifiers = ev.Modifiers
}

func (r *SwipeRecognizer) tracks(ev *input.Event) bool {
	if !r.active {
		return false
	}
	if ev.IsTouch() {
		return r.isTouch && ev.TouchID == r.touchID
	}
	if ev.Kind == input.PointerRelease && ev.Button != input.ButtonLeft {
		return false
	}
	return !r.isTouch
}
