package gesture

import (
	"github.com/lumenwm/lumen/internal/geometry"
	"github.com/lumenwm/lumen/internal/input"
)

// EdgeSwipeConfig tunes the edge-swipe recognizer. Zero values take the
// defaults, except Bounds which must be set to the screen geometry.
type EdgeSwipeConfig struct {
	// Bounds is the screen rectangle edges are measured against.
	Bounds geometry.Rect
	// EdgeMargin is how close to an edge the press must start, in logical
	// pixels. Default 20.
	EdgeMargin float64
	// MinDistance is the required travel away from the edge. Default 50.
	MinDistance float64
	// MaxTimeMS bounds the whole motion. Default 500.
	MaxTimeMS uint64
}

func (c *EdgeSwipeConfig) applyDefaults() {
	if c.EdgeMargin <= 0 {
		c.EdgeMargin = 20
	}
	if c.MinDistance <= 0 {
		c.MinDistance = 50
	}
	if c.MaxTimeMS == 0 {
		c.MaxTimeMS = 500
	}
}

// EdgeSwipeRecognizer recognizes a swipe that starts at a screen edge and
// travels inward, the usual trigger for panels and overviews. It emits
// Began once the inward travel crosses the minimum distance, Changed on
// further motion, and Ended on release.
type EdgeSwipeRecognizer struct {
	cfg EdgeSwipeConfig

	active     bool
	recognized bool
	edge       Edge
	start      geometry.Point
	current    geometry.Point
	startTS    uint64
	touchID    uint64
	isTouch    bool
	target     uint64
	source     string
	modifiers  input.Modifiers
}

// NewEdgeSwipe creates an edge-swipe recognizer for the given screen bounds.
func NewEdgeSwipe(cfg EdgeSwipeConfig) *EdgeSwipeRecognizer {
	cfg.applyDefaults()
	return &EdgeSwipeRecognizer{cfg: cfg}
}

// Kind implements Recognizer.
func (r *EdgeSwipeRecognizer) Kind() Kind { return EdgeSwipe }

// Active implements Recognizer.
func (r *EdgeSwipeRecognizer) Active() bool { return r.active }

// Reset implements Recognizer.
func (r *EdgeSwipeRecognizer) Reset() {
	*r = EdgeSwipeRecognizer{cfg: r.cfg}
}

// SetBounds updates the screen rectangle, e.g. after an output mode change.
// Resets any gesture in flight.
func (r *EdgeSwipeRecognizer) SetBounds(bounds geometry.Rect) {
	r.cfg.Bounds = bounds
	r.Reset()
}

// Update implements Recognizer.
func (r *EdgeSwipeRecognizer) Update(ev *input.Event) *Info {
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
		if elapsedMS(ev.Timestamp, r.startTS) > r.cfg.MaxTimeMS {
			// Too slow to be a gesture; abandon.
			var info *Info
			if r.recognized {
				info = r.emit(Cancelled, ev.Timestamp)
			}
			r.Reset()
			return info
		}
		if r.inwardTravel() < r.cfg.MinDistance {
			return nil
		}
		state := Changed
		if !r.recognized {
			r.recognized = true
			state = Began
		}
		return r.emit(state, ev.Timestamp)

	case input.PointerRelease, input.TouchEnd:
		if !r.tracks(ev) {
			return nil
		}
		r.current = geometry.Point{X: ev.X, Y: ev.Y}
		var info *Info
		if r.recognized {
			info = r.emit(Ended, ev.Timestamp)
		}
		r.Reset()
		return info
	}
	return nil
}

func (r *EdgeSwipeRecognizer) begin(ev *input.Event, touch bool) {
	edge := r.classifyEdge(ev.X, ev.Y)
	if edge == EdgeNone {
		return
	}
	r.active = true
	r.recognized = false
	r.edge = edge
	r.start = geometry.Point{X: ev.X, Y: ev.Y}
	r.current = r.start
	r.startTS = ev.Timestamp
	r.isTouch = touch
	r.touchID = ev.TouchID
	r.target = ev.Target
	r.source = ev.SourceDevice
	r.modifiers = ev.Modifiers
}

// classifyEdge returns which edge band the press landed in, or EdgeNone.
// Corners resolve to the nearer vertical edge.
func (r *EdgeSwipeRecognizer) classifyEdge(x, y float64) Edge {
	b := r.cfg.Bounds
	if b.Empty() {
		return EdgeNone
	}
	switch {
	case x <= float64(b.X)+r.cfg.EdgeMargin:
		return EdgeLeft
	case x >= float64(b.X+b.Width)-r.cfg.EdgeMargin:
		return EdgeRight
	case y <= float64(b.Y)+r.cfg.EdgeMargin:
		return EdgeTop
	case y >= float64(b.Y+b.Height)-r.cfg.EdgeMargin:
		return EdgeBottom
	}
	return EdgeNone
}

// inwardTravel is the distance moved perpendicular to the starting edge,
// toward the screen interior. Motion back out of the screen counts as zero.
func (r *EdgeSwipeRecognizer) inwardTravel() float64 {
	var d float64
	switch r.edge {
	case EdgeLeft:
		d = r.current.X - r.start.X
	case EdgeRight:
		d = r.start.X - r.current.X
	case EdgeTop:
		d = r.current.Y - r.start.Y
	case EdgeBottom:
		d = r.start.Y - r.current.Y
	}
	if d < 0 {
		return 0
	}
	return d
}

func (r *EdgeSwipeRecognizer) emit(state State, ts uint64) *Info {
	delta := r.current.Sub(r.start)
	var dir Direction
	switch r.edge {
	case EdgeLeft:
		dir = DirectionRight
	case EdgeRight:
		dir = DirectionLeft
	case EdgeTop:
		dir = DirectionDown
	case EdgeBottom:
		dir = DirectionUp
	}
	return &Info{
		Kind:          EdgeSwipe,
		State:         state,
		Timestamp:     ts,
		Position:      r.current,
		StartPosition: r.start,
		Delta:         delta,
		Scale:         1,
		TouchCount:    1,
		Direction:     dir,
		Edge:          r.edge,
		Target:        r.target,
		SourceDevice:  r.source,
		Modifiers:     r.modifiers,
	}
}

func (r *EdgeSwipeRecognizer) tracks(ev *input.Event) bool {
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
