package gesture

import (
	"github.com/lumenwm/lumen/internal/geometry"
	"github.com/lumenwm/lumen/internal/input"
)

// LongPressConfig tunes the long-press recognizer. Zero values take the
// defaults.
type LongPressConfig struct {
	// MovementThreshold is the maximum drift in logical pixels before the
	// press is abandoned. Default 15.
	MovementThreshold float64
	// DelayMS is how long the press must be held before recognition.
	// Default 500.
	DelayMS uint64
	// FeedbackIntervalMS is the minimum gap between Changed emissions
	// while the press is held. Default 100.
	FeedbackIntervalMS uint64
}

func (c *LongPressConfig) applyDefaults() {
	if c.MovementThreshold <= 0 {
		c.MovementThreshold = 15
	}
	if c.DelayMS == 0 {
		c.DelayMS = 500
	}
	if c.FeedbackIntervalMS == 0 {
		c.FeedbackIntervalMS = 100
	}
}

// LongPressRecognizer recognizes a press held in place. Once the delay has
// elapsed it emits Began exactly once, then Changed at most once per
// feedback interval, and Ended on release carrying the final duration.
// Drifting past the movement threshold abandons the press with no emission
// at all, before or after recognition.
//
// Time advances only via event timestamps; sources emit Idle events so a
// motionless press can still cross the delay.
type LongPressRecognizer struct {
	cfg LongPressConfig

	active     bool
	recognized bool
	start      geometry.Point
	last       geometry.Point
	pressTS    uint64
	feedbackTS uint64
	touchID    uint64
	isTouch    bool
	target     uint64
	source     string
	modifiers  input.Modifiers
}

// NewLongPress creates a long-press recognizer.
func NewLongPress(cfg LongPressConfig) *LongPressRecognizer {
	cfg.applyDefaults()
	return &LongPressRecognizer{cfg: cfg}
}

// Kind implements Recognizer.
func (r *LongPressRecognizer) Kind() Kind { return LongPress }

// Active implements Recognizer.
func (r *LongPressRecognizer) Active() bool { return r.active }

// Reset implements Recognizer.
func (r *LongPressRecognizer) Reset() {
	*r = LongPressRecognizer{cfg: r.cfg}
}

// Update implements Recognizer.
func (r *LongPressRecognizer) Update(ev *input.Event) *Info {
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
		r.last = geometry.Point{X: ev.X, Y: ev.Y}
		return r.check(r.last, ev.Timestamp)

	case input.Idle:
		if !r.active {
			return nil
		}
		return r.check(r.last, ev.Timestamp)

	case input.PointerRelease, input.TouchEnd:
		if !r.tracks(ev) {
			return nil
		}
		var info *Info
		if r.recognized {
			info = r.emit(Ended, geometry.Point{X: ev.X, Y: ev.Y}, ev.Timestamp)
		}
		r.Reset()
		return info
	}
	return nil
}

// check advances the hold timer. Called for move, touch update, and idle
// events while the press is active.
func (r *LongPressRecognizer) check(pos geometry.Point, ts uint64) *Info {
	if pos.Distance(r.start) > r.cfg.MovementThreshold {
		// Too much drift: abandon silently, recognized or not.
		r.Reset()
		return nil
	}

	elapsed := elapsedMS(ts, r.pressTS)
	if elapsed < r.cfg.DelayMS {
		return nil
	}

	if !r.recognized {
		r.recognized = true
		r.feedbackTS = ts
		return r.emit(Began, pos, ts)
	}
	if elapsedMS(ts, r.feedbackTS) >= r.cfg.FeedbackIntervalMS {
		r.feedbackTS = ts
		return r.emit(Changed, pos, ts)
	}
	return nil
}

func (r *LongPressRecognizer) emit(state State, pos geometry.Point, ts uint64) *Info {
	return &Info{
		Kind:          LongPress,
		State:         state,
		Timestamp:     ts,
		Position:      pos,
		StartPosition: r.start,
		Scale:         1,
		TouchCount:    1,
		PressDuration: msToDuration(elapsedMS(ts, r.pressTS)),
		Target:        r.target,
		SourceDevice:  r.source,
		Modifiers:     r.modifiers,
	}
}

func (r *LongPressRecognizer) begin(ev *input.Event, touch bool) {
	r.active = true
	r.recognized = false
	r.start = geometry.Point{X: ev.X, Y: ev.Y}
	r.last = r.start
	r.pressTS = ev.Timestamp
	r.feedbackTS = 0
	r.isTouch = touch
	r.touchID = ev.TouchID
	r.target = ev.Target
	r.source = ev.SourceDevice
	r.modifiers = ev.Modifiers
}

func (r *LongPressRecognizer) tracks(ev *input.Event) bool {
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
