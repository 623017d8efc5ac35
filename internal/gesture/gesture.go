// Package gesture turns the normalized input stream into recognized
// gestures. Each recognizer is an independent state machine fed every event;
// the Manager owns the set and arbitrates between in-progress and new
// gestures.
package gesture

import (
	"time"

	"github.com/lumenwm/lumen/internal/geometry"
	"github.com/lumenwm/lumen/internal/input"
)

// Kind identifies a gesture family. The Manager holds at most one
// recognizer per kind.
type Kind int

const (
	Tap Kind = iota
	DoubleTap
	LongPress
	Swipe
	Pinch
	Rotate
	EdgeSwipe
)

// String returns the gesture kind name.
func (k Kind) String() string {
	switch k {
	case Tap:
		return "tap"
	case DoubleTap:
		return "double-tap"
	case LongPress:
		return "long-press"
	case Swipe:
		return "swipe"
	case Pinch:
		return "pinch"
	case Rotate:
		return "rotate"
	case EdgeSwipe:
		return "edge-swipe"
	default:
		return "unknown"
	}
}

// State is the lifecycle stage carried by an emission.
type State int

const (
	// Began marks the first emission of a continuous gesture. It moves the
	// kind into the Manager's active set.
	Began State = iota
	// Changed is a continuation of a gesture that already Began.
	Changed
	// Ended is the normal completion of a continuous gesture.
	Ended
	// Cancelled reports an abandoned gesture.
	Cancelled
	// Failed reports a gesture that could not complete.
	Failed
	// Recognized is the single emission of a discrete gesture (tap,
	// double-tap) that has no Began/Ended envelope.
	Recognized
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Began:
		return "began"
	case Changed:
		return "changed"
	case Ended:
		return "ended"
	case Cancelled:
		return "cancelled"
	case Failed:
		return "failed"
	case Recognized:
		return "recognized"
	default:
		return "unknown"
	}
}

// terminal reports whether the state removes the kind from the active set.
func (s State) terminal() bool {
	return s == Ended || s == Cancelled || s == Failed
}

// Direction is an octant classification of swipe motion.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionUp
	DirectionDown
	DirectionLeft
	DirectionRight
	DirectionUpLeft
	DirectionUpRight
	DirectionDownLeft
	DirectionDownRight
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	case DirectionUpLeft:
		return "up-left"
	case DirectionUpRight:
		return "up-right"
	case DirectionDownLeft:
		return "down-left"
	case DirectionDownRight:
		return "down-right"
	default:
		return "none"
	}
}

// Edge names a screen edge for edge swipes.
type Edge int

const (
	EdgeNone Edge = iota
	EdgeTop
	EdgeBottom
	EdgeLeft
	EdgeRight
)

// String returns the edge name.
func (e Edge) String() string {
	switch e {
	case EdgeTop:
		return "top"
	case EdgeBottom:
		return "bottom"
	case EdgeLeft:
		return "left"
	case EdgeRight:
		return "right"
	default:
		return "none"
	}
}

// Info is one gesture emission. It is an immutable value: recognizers build
// a fresh Info per emission and callbacks must not retain mutable access.
type Info struct {
	Kind      Kind
	State     State
	Timestamp uint64 // milliseconds, from the triggering input event

	Position      geometry.Point
	StartPosition geometry.Point
	Delta         geometry.Point

	// Scale is the pinch span ratio relative to the initial span (1.0 when
	// not a pinch).
	Scale float64
	// Rotation is the accumulated rotation in radians (rotate only).
	Rotation float64
	// TouchCount is the number of contacts involved.
	TouchCount int

	Direction Direction
	Edge      Edge

	// PressDuration is how long the press has been held (long-press only).
	PressDuration time.Duration

	Target       uint64
	SourceDevice string
	Modifiers    input.Modifiers
}

// Recognizer is one gesture state machine. Update receives every input
// event regardless of target; the recognizer filters by press or touch
// identity internally. A nil return means no emission for this event.
type Recognizer interface {
	Kind() Kind
	Update(ev *input.Event) *Info
	Reset()
	Active() bool
}

// elapsedMS is a saturating timestamp difference. Sources guarantee
// monotonic timestamps per stream, but a misordered pair must not wrap.
func elapsedMS(now, then uint64) uint64 {
	if now < then {
		return 0
	}
	return now - then
}

// msToDuration converts a millisecond interval to a Duration.
func msToDuration(ms uint64) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// classifyDirection maps a motion vector to one of eight directions. The
// diagonal band covers vectors whose minor axis is at least half the major
// axis.
func classifyDirection(dx, dy float64) Direction {
	if dx == 0 && dy == 0 {
		return DirectionNone
	}
	ax, ay := dx, dy
	if ax < 0 {
		ax = -ax
	}
	if ay < 0 {
		ay = -ay
	}

	diagonal := min(ax, ay)*2 >= max(ax, ay)
	switch {
	case diagonal && dx > 0 && dy > 0:
		return DirectionDownRight
	case diagonal && dx > 0 && dy < 0:
		return DirectionUpRight
	case diagonal && dx < 0 && dy > 0:
		return DirectionDownLeft
	case diagonal && dx < 0 && dy < 0:
		return DirectionUpLeft
	case ax > ay && dx > 0:
		return DirectionRight
	case ax > ay:
		return DirectionLeft
	case dy > 0:
		return DirectionDown
	default:
		return DirectionUp
	}
}
