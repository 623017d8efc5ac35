package gesture

import (
	"math"

	"github.com/lumenwm/lumen/internal/geometry"
	"github.com/lumenwm/lumen/internal/input"
)

// RotateConfig tunes the rotate recognizer. Zero values take the defaults.
type RotateConfig struct {
	// MinAngle is the rotation in radians required before an emission
	// (after the first). Default 0.05, about 3 degrees.
	MinAngle float64
}

func (c *RotateConfig) applyDefaults() {
	if c.MinAngle <= 0 {
		c.MinAngle = 0.05
	}
}

// RotateRecognizer recognizes two contacts turning around their midpoint.
// Rotation accumulates across emissions, positive counter-clockwise in
// screen coordinates, and the reference angle is rebased on every emission
// so slow continuous turns keep reporting.
type RotateRecognizer struct {
	cfg RotateConfig

	active      bool
	recognized  bool
	touches     map[uint64]geometry.Point
	first       uint64
	second      uint64
	refAngle    float64
	accumulated float64
	target      uint64
	source      string
	modifiers   input.Modifiers
}

// NewRotate creates a rotate recognizer.
func NewRotate(cfg RotateConfig) *RotateRecognizer {
	cfg.applyDefaults()
	return &RotateRecognizer{cfg: cfg, touches: make(map[uint64]geometry.Point)}
}

// Kind implements Recognizer.
func (r *RotateRecognizer) Kind() Kind { return Rotate }

// Active implements Recognizer.
func (r *RotateRecognizer) Active() bool { return r.active }

// Reset implements Recognizer.
func (r *RotateRecognizer) Reset() {
	*r = RotateRecognizer{cfg: r.cfg, touches: make(map[uint64]geometry.Point)}
}

// Update implements Recognizer.
func (r *RotateRecognizer) Update(ev *input.Event) *Info {
	switch ev.Kind {
	case input.TouchBegin:
		r.touches[ev.TouchID] = geometry.Point{X: ev.X, Y: ev.Y}
		if len(r.touches) == 2 && !r.active {
			ids := make([]uint64, 0, 2)
			for id := range r.touches {
				ids = append(ids, id)
			}
			r.active = true
			r.first, r.second = ids[0], ids[1]
			r.refAngle = r.touches[r.first].Angle(r.touches[r.second])
			r.accumulated = 0
			r.target = ev.Target
			r.source = ev.SourceDevice
			r.modifiers = ev.Modifiers
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
			info = r.emit(Ended, ev.Timestamp)
		}
		r.Reset()
		return info
	}
	return nil
}

func (r *RotateRecognizer) measure(ts uint64) *Info {
	angle := r.touches[r.first].Angle(r.touches[r.second])
	diff := normalizeAngle(angle - r.refAngle)

	if math.Abs(diff) < r.cfg.MinAngle {
		return nil
	}

	r.accumulated += diff
	r.refAngle = angle

	state := Changed
	if !r.recognized {
		r.recognized = true
		state = Began
	}
	return r.emit(state, ts)
}

func (r *RotateRecognizer) emit(state State, ts uint64) *Info {
	return &Info{
		Kind:         Rotate,
		State:        state,
		Timestamp:    ts,
		Position:     r.touches[r.first].Midpoint(r.touches[r.second]),
		Scale:        1,
		Rotation:     r.accumulated,
		TouchCount:   2,
		Target:       r.target,
		SourceDevice: r.source,
		Modifiers:    r.modifiers,
	}
}

// normalizeAngle maps an angle difference into (−π, π] so a contact
// crossing the atan2 branch cut does not read as a full turn.
func normalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
