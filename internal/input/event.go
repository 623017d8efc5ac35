// Package input defines the normalized event stream the gesture engine and
// compositor consume. Producers (an X11 connection, a libinput bridge, a
// test) translate device events into this vocabulary; the core never talks
// to hardware directly.
//
// Timestamps are milliseconds and must be monotonic within one device
// stream. All timing inside the core is derived from them, never from the
// wall clock, so a recorded stream replays identically.
package input

// Kind discriminates the event variants.
type Kind int

const (
	// PointerPress is a mouse button going down.
	PointerPress Kind = iota
	// PointerRelease is a mouse button coming up.
	PointerRelease
	// PointerMove is pointer motion, pressed or not.
	PointerMove
	// PointerScroll is wheel or two-finger scroll motion.
	PointerScroll
	// TouchBegin is a new touch contact.
	TouchBegin
	// TouchUpdate is motion of an existing contact.
	TouchUpdate
	// TouchEnd is a contact lifting.
	TouchEnd
	// Idle carries only a timestamp. Sources emit it periodically so
	// time-based recognizers (long-press) can fire without motion.
	Idle
)

// String returns the event kind name.
func (k Kind) String() string {
	switch k {
	case PointerPress:
		return "pointer-press"
	case PointerRelease:
		return "pointer-release"
	case PointerMove:
		return "pointer-move"
	case PointerScroll:
		return "pointer-scroll"
	case TouchBegin:
		return "touch-begin"
	case TouchUpdate:
		return "touch-update"
	case TouchEnd:
		return "touch-end"
	case Idle:
		return "idle"
	default:
		return "unknown"
	}
}

// Button identifies a pointer button.
type Button int

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonRight
	ButtonMiddle
	ButtonBack
	ButtonForward
)

// Modifiers is a bitmask of held modifier keys.
type Modifiers uint16

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModSuper
	ModMeta
	ModCapsLock
	ModNumLock
)

// Has reports whether all modifiers in m are held.
func (mods Modifiers) Has(m Modifiers) bool {
	return mods&m == m
}

// Event is one normalized input event. Fields that do not apply to the kind
// are zero: Button only for pointer press/release, TouchID and Pressure only
// for touch, DX/DY only for move/update/scroll.
type Event struct {
	Kind      Kind
	Button    Button
	X         float64
	Y         float64
	DX        float64
	DY        float64
	Pressure  float64
	TouchID   uint64
	Timestamp uint64 // milliseconds, monotonic per device stream
	Modifiers Modifiers

	// Target is the window id under the event, 0 when the source did not
	// resolve one. The compositor fills it by hit test before gesture
	// dispatch.
	Target uint64

	// SourceDevice names the producing device ("pointer:0", "touchscreen")
	// when known.
	SourceDevice string
}

// IsTouch reports whether the event belongs to the touch variants.
func (e *Event) IsTouch() bool {
	return e.Kind == TouchBegin || e.Kind == TouchUpdate || e.Kind == TouchEnd
}

// IsPointer reports whether the event belongs to the pointer variants.
func (e *Event) IsPointer() bool {
	switch e.Kind {
	case PointerPress, PointerRelease, PointerMove, PointerScroll:
		return true
	}
	return false
}
