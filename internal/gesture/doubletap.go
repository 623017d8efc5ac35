package gesture

import (
	"github.com/lumenwm/lumen/internal/geometry"
	"github.com/lumenwm/lumen/internal/input"
)

// DoubleTapConfig tunes the double-tap recognizer. Zero values take the
// defaults.
type DoubleTapConfig struct {
	// MovementThreshold is the per-tap slop and the allowed distance
	// between the two taps, in logical pixels. Default 10.
	MovementThreshold float64
	// TapTimeoutMS bounds each individual press. Default 300.
	TapTimeoutMS uint64
	// IntervalMS bounds the gap between first release and second press.
	// Default 400.
	IntervalMS uint64
}

func (c *DoubleTapConfig) applyDefaults() {
	if c.MovementThreshold <= 0 {
		c.MovementThreshold = 10
	}
	if c.TapTimeoutMS == 0 {
		c.TapTimeoutMS = 300
	}
	if c.IntervalMS == 0 {
		c.IntervalMS = 400
	}
}

// DoubleTapRecognizer recognizes two quick taps in nearly the same place.
// It emits a single Recognized on the second release. A press that drifts,
// lingers, or lands too far from the first tap resets silently; the stray
// press may still begin a fresh sequence.
type DoubleTapRecognizer struct {
	cfg DoubleTapConfig

	active    bool
	pressed   bool
	tapCount  int
	start     geometry.Point
	firstPos  geometry.Point
	pressTS   uint64
	releaseTS uint64
	touchID   uint64
	isTouch   bool
	target    uint64
	source    string
	modifiers input.Modifiers
}

// NewDoubleTap creates a double-tap recognizer.
func NewDoubleTap(cfg DoubleTapConfig) *DoubleTapRecognizer {
	cfg.applyDefaults()
	return &DoubleTapRecognizer{cfg: cfg}
}

// Kind implements Recognizer.
func (r *DoubleTapRecognizer) Kind() Kind { return DoubleTap }

// Active implements Recognizer.
func (r *DoubleTapRecognizer) Active() bool { return r.active }

// Reset implements Recognizer.
func (r *DoubleTapRecognizer) Reset() {
	*r = DoubleTapRecognizer{cfg: r.cfg}
}

// Update implements Recognizer.
func (r *DoubleTapRecognizer) Update(ev *input.Event) *Info {
	switch ev.Kind {
	case input.PointerPress, input.TouchBegin:
		if ev.Kind == input.PointerPress && ev.Button != input.ButtonLeft {
			return nil
		}
		pos := geometry.Point{X: ev.X, Y: ev.Y}
		if r.tapCount == 1 {
			// Second press: must arrive in time and near the first tap.
			if elapsedMS(ev.Timestamp, r.releaseTS) > r.cfg.IntervalMS ||
				pos.Distance(r.firstPos) > r.cfg.MovementThreshold {
				r.Reset()
				r.beginFirst(ev, pos)
				return nil
			}
			r.pressed = true
			r.start = pos
			r.pressTS = ev.Timestamp
			r.touchID = ev.TouchID
			return nil
		}
		r.Reset()
		r.beginFirst(ev, pos)

	case input.PointerMove, input.TouchUpdate:
		if !r.pressed || !r.tracks(ev) {
			return nil
		}
		pos := geometry.Point{X: ev.X, Y: ev.Y}
		if pos.Distance(r.start) > r.cfg.MovementThreshold ||
			elapsedMS(ev.Timestamp, r.pressTS) > r.cfg.TapTimeoutMS {
			r.Reset()
		}

	case input.PointerRelease, input.TouchEnd:
		if !r.pressed || !r.tracks(ev) {
			return nil
		}
		pos := geometry.Point{X: ev.X, Y: ev.Y}
		if pos.Distance(r.start) > r.cfg.MovementThreshold ||
			elapsedMS(ev.Timestamp, r.pressTS) > r.cfg.TapTimeoutMS {
			r.Reset()
			return nil
		}
		r.tapCount++
		r.pressed = false
		r.releaseTS = ev.Timestamp
		if r.tapCount < 2 {
			return nil
		}
		info := &Info{
			Kind:          DoubleTap,
			State:         Recognized,
			Timestamp:     ev.Timestamp,
			Position:      pos,
			StartPosition: r.firstPos,
			Scale:         1,
			TouchCount:    1,
			Target:        r.target,
			SourceDevice:  r.source,
			Modifiers:     r.modifiers,
		}
		r.Reset()
		return info
	}
	return nil
}

func (r *DoubleTapRecognizer) beginFirst(ev *input.Event, pos geometry.Point) {
	r.active = true
	r.pressed = true
	r.start = pos
	r.firstPos = pos
	r.pressTS = ev.Timestamp
	r.isTouch = ev.IsTouch()
	r.touchID = ev.TouchID
	r.target = ev.Target
	r.source = ev.SourceDevice
	r.modifiers = ev.Modifiers
}

func (r *DoubleTapRecognizer) tracks(ev *input.Event) bool {
	if ev.IsTouch() {
		return r.isTouch && ev.TouchID == r.touchID
	}
	if ev.Kind == input.PointerRelease && ev.Button != input.ButtonLeft {
		return false
	}
	return !r.isTouch
}
