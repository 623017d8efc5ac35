package gesture

import (
	"github.com/lumenwm/lumen/internal/geometry"
	"github.com/lumenwm/lumen/internal/input"
)

// TapConfig tunes the tap recognizer. Zero values take the defaults.
type TapConfig struct {
	// MovementThreshold is the slop in logical pixels before the press
	// stops being a tap. Default 10.
	MovementThreshold float64
	// TimeoutMS is the maximum press duration in milliseconds. Default 300.
	TimeoutMS uint64
}

func (c *TapConfig) applyDefaults() {
	if c.MovementThreshold <= 0 {
		c.MovementThreshold = 10
	}
	if c.TimeoutMS == 0 {
		c.TimeoutMS = 300
	}
}

// TapRecognizer recognizes a quick press-and-release with little movement.
// It emits a single Recognized on release; anything else resets silently.
type TapRecognizer struct {
	cfg TapConfig

	active    bool
	start     geometry.Point
	startTS   uint64
	touchID   uint64
	isTouch   bool
	target    uint64
	source    string
	modifiers input.Modifiers
}

// NewTap creates a tap recognizer.
func NewTap(cfg TapConfig) *TapRecognizer {
	cfg.applyDefaults()
	return &TapRecognizer{cfg: cfg}
}

// Kind implements Recognizer.
func (r *TapRecognizer) Kind() Kind { return Tap }

// Active implements Recognizer.
func (r *TapRecognizer) Active() bool { return r.active }

// Reset implements Recognizer.
func (r *TapRecognizer) Reset() {
	*r = TapRecognizer{cfg: r.cfg}
}

// Update implements Recognizer.
func (r *TapRecognizer) Update(ev *input.Event) *Info {
	switch ev.Kind {
	case input.PointerPress:
		if ev.Button != input.ButtonLeft {
			return nil
		}
		r.begin(ev, false)

	case input.TouchBegin:
		if r.active {
			// A second contact means this is not a tap.
			r.Reset()
			return nil
		}
		r.begin(ev, true)

	case input.PointerMove, input.TouchUpdate:
		if !r.tracks(ev) {
			return nil
		}
		pos := geometry.Point{X: ev.X, Y: ev.Y}
		if pos.Distance(r.start) > r.cfg.MovementThreshold ||
			elapsedMS(ev.Timestamp, r.startTS) > r.cfg.TimeoutMS {
			r.Reset()
		}

	case input.PointerRelease, input.TouchEnd:
		if !r.tracks(ev) {
			return nil
		}
		pos := geometry.Point{X: ev.X, Y: ev.Y}
		ok := pos.Distance(r.start) <= r.cfg.MovementThreshold &&
			elapsedMS(ev.Timestamp, r.startTS) <= r.cfg.TimeoutMS
		info := (*Info)(nil)
		if ok {
			info = &Info{
				Kind:          Tap,
				State:         Recognized,
				Timestamp:     ev.Timestamp,
				Position:      pos,
				StartPosition: r.start,
				Scale:         1,
				TouchCount:    1,
				Target:        r.target,
				SourceDevice:  r.source,
				Modifiers:     r.modifiers,
			}
		}
		r.Reset()
		return info
	}
	return nil
}

func (r *TapRecognizer) begin(ev *input.Event, touch bool) {
	r.active = true
	r.start = geometry.Point{X: ev.X, Y: ev.Y}
	r.startTS = ev.Timestamp
	r.isTouch = touch
	r.touchID = ev.TouchID
	r.target = ev.Target
	r.source = ev.SourceDevice
	r.modifiers = ev.Modifiers
}

// tracks reports whether the event belongs to the press this recognizer is
// following.
func (r *TapRecognizer) tracks(ev *input.Event) bool {
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
