package gesture

import (
	"math"

	"github.com/lumenwm/lumen/internal/geometry"
	"github.com/lumenwm/lumen/internal/input"
)

// PinchConfig tunes the pinch recognizer. Zero values take the defaults.
type PinchConfig struct {
	// MinSpan is the smallest initial distance between the two contacts,
	// in logical pixels. Narrower pairs are ignored as noise. Default 20.
	MinSpan float64
	// MinScaleChange is the relative span change required before an
	// emission (after the first). Default 0.05.
	MinScaleChange float64
}

func (c *PinchConfig) applyDefaults() {
	if c.MinSpan <= 0 {
		c.MinSpan = 20
	}
	if c.MinScaleChange <= 0 {
		c.MinScaleChange = 0.05
	}
}

// PinchRecognizer recognizes two contacts moving apart or together. The
// emitted Scale is the current span divided by the span when the second
// contact landed. A Ctrl+scroll wheel acts as a pointer fallback, scaling
// 5% per notch.
type PinchRecognizer struct {
	cfg PinchConfig

	active     bool
	recognized bool
	touches    map[uint64]geometry.Point
	first      uint64
	second     uint64
	initSpan   float64
	scale      float64
	target     uint64
	source     string
	modifiers  input.Modifiers

	// wheel fallback state
	wheelActive bool
	wheelScale  float64
	wheelPos    geometry.Point
}

// NewPinch creates a pinch recognizer.
func NewPinch(cfg PinchConfig) *PinchRecognizer {
	cfg.applyDefaults()
	return &PinchRecognizer{cfg: cfg, touches: make(map[uint64]geometry.Point), scale: 1, wheelScale: 1}
}

// Kind implements Recognizer.
func (r *PinchRecognizer) Kind() Kind { return Pinch }

// Active implements Recognizer.
func (r *PinchRecognizer) Active() bool { return r.active || r.wheelActive }

// Reset implements Recognizer.
func (r *PinchRecognizer) Reset() {
	*r = PinchRecognizer{cfg: r.cfg, touches: make(map[uint64]geometry.Point), scale: 1, wheelScale: 1}
}

// Update implements Recognizer.
func (r *PinchRecognizer) Update(ev *input.Event) *Info {
	switch ev.Kind {
	case input.TouchBegin:
		r.touches[ev.TouchID] = geometry.Point{X: ev.X, Y: ev.Y}
		if len(r.touches) == 2 && !r.active {
			r.arm(ev)
		}

	case input.TouchUpdate:
		if _, ok := r.touches[ev.TouchID]; !ok {
			return nil
		}
		r.touches[ev.TouchID] = geometry.Point{X: ev.X, Y: ev.Y}
		if !r.active || (ev.TouchID != r.first && ev.TouchID != r.second) {
			return nil
		}
		return r.measure(ev.Timestamp)

	case input.TouchEnd:
		if _, ok := r.touches[ev.TouchID]; !ok {
			return nil
		}
		if !r.active || (ev.TouchID != r.first && ev.TouchID != r.second) {
			delete(r.touches, ev.TouchID)
			return nil
		}
		var info *Info
		if r.recognized {
			info = r.emit(Ended, r.center(), ev.Timestamp)
		}
		r.Reset()
		return info

	case input.PointerScroll:
		return r.wheel(ev)
	}
	return nil
}

// arm records the initial span once two contacts are down. Spans narrower
// than MinSpan never arm; the pair is treated as one fat finger.
func (r *PinchRecognizer) arm(ev *input.Event) {
	ids := make([]uint64, 0, 2)
	for id := range r.touches {
		ids = append(ids, id)
	}
	span := r.touches[ids[0]].Distance(r.touches[ids[1]])
	if span < r.cfg.MinSpan {
		return
	}
	r.active = true
	r.first, r.second = ids[0], ids[1]
	r.initSpan = span
	r.scale = 1
	r.target = ev.Target
	r.source = ev.SourceDevice
	r.modifiers = ev.Modifiers
}

// measure recomputes the span ratio and decides whether to emit.
func (r *PinchRecognizer) measure(ts uint64) *Info {
	span := r.touches[r.first].Distance(r.touches[r.second])
	if r.initSpan <= 0 {
		return nil
	}
	newScale := span / r.initSpan
	if math.Abs(newScale-r.scale) < r.cfg.MinScaleChange {
		return nil
	}
	r.scale = newScale

	state := Changed
	if !r.recognized {
		r.recognized = true
		state = Began
	}
	return r.emit(state, r.center(), ts)
}

func (r *PinchRecognizer) center() geometry.Point {
	return r.touches[r.first].Midpoint(r.touches[r.second])
}

func (r *PinchRecognizer) emit(state State, pos geometry.Point, ts uint64) *Info {
	dir := DirectionUp // pinch out
	if r.scale < 1 {
		dir = DirectionDown // pinch in
	}
	return &Info{
		Kind:         Pinch,
		State:        state,
		Timestamp:    ts,
		Position:     pos,
		Scale:        r.scale,
		TouchCount:   2,
		Direction:    dir,
		Target:       r.target,
		SourceDevice: r.source,
		Modifiers:    r.modifiers,
	}
}

// wheel handles the Ctrl+scroll pointer fallback. Each notch scales by 5%;
// releasing Ctrl (a scroll without the modifier) ends the gesture.
func (r *PinchRecognizer) wheel(ev *input.Event) *Info {
	if !ev.Modifiers.Has(input.ModCtrl) {
		if !r.wheelActive {
			return nil
		}
		info := r.emitWheel(Ended, ev.Timestamp)
		r.Reset()
		return info
	}
	if ev.DY == 0 {
		return nil
	}

	step := 1.05
	if ev.DY < 0 {
		step = 1 / 1.05
	}

	state := Changed
	if !r.wheelActive {
		r.wheelActive = true
		r.wheelScale = 1
		r.target = ev.Target
		r.source = ev.SourceDevice
		r.modifiers = ev.Modifiers
		state = Began
	}
	r.wheelScale *= step
	r.wheelPos = geometry.Point{X: ev.X, Y: ev.Y}
	return r.emitWheel(state, ev.Timestamp)
}

func (r *PinchRecognizer) emitWheel(state State, ts uint64) *Info {
	dir := DirectionUp
	if r.wheelScale < 1 {
		dir = DirectionDown
	}
	return &Info{
		Kind:         Pinch,
		State:        state,
		Timestamp:    ts,
		Position:     r.wheelPos,
		Scale:        r.wheelScale,
		TouchCount:   0,
		Direction:    dir,
		Target:       r.target,
		SourceDevice: r.source,
		Modifiers:    r.modifiers,
	}
}
