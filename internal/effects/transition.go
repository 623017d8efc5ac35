package effects

import (
	"fmt"
	"strings"
	"time"
)

// Kind names a transition effect.
type Kind int

const (
	FadeIn Kind = iota
	FadeOut
	ScaleIn
	ScaleOut
	SlideIn
	SlideOut
	Blur
	Sharpen
	ColorTransform
	Ripple
	Custom
)

func (k Kind) String() string {
	switch k {
	case FadeIn:
		return "fade-in"
	case FadeOut:
		return "fade-out"
	case ScaleIn:
		return "scale-in"
	case ScaleOut:
		return "scale-out"
	case SlideIn:
		return "slide-in"
	case SlideOut:
		return "slide-out"
	case Blur:
		return "blur"
	case Sharpen:
		return "sharpen"
	case ColorTransform:
		return "color-transform"
	case Ripple:
		return "ripple"
	case Custom:
		return "custom"
	}
	return fmt.Sprintf("effect(%d)", int(k))
}

// ParseKind maps a config or IPC string to an effect kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fade-in", "fadein":
		return FadeIn, nil
	case "fade-out", "fadeout":
		return FadeOut, nil
	case "scale-in", "scalein":
		return ScaleIn, nil
	case "scale-out", "scaleout":
		return ScaleOut, nil
	case "slide-in", "slidein":
		return SlideIn, nil
	case "slide-out", "slideout":
		return SlideOut, nil
	case "blur":
		return Blur, nil
	case "sharpen":
		return Sharpen, nil
	case "color-transform":
		return ColorTransform, nil
	case "ripple":
		return Ripple, nil
	case "custom":
		return Custom, nil
	}
	return Custom, fmt.Errorf("unknown effect %q", s)
}

// State is a transition's lifecycle phase.
type State int

const (
	StateReady State = iota
	StateRunning
	StatePaused
	StateCompleted
	StateCancelled
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Terminal reports whether the state admits no further updates.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateCancelled || s == StateFailed
}

// Transition is one timed effect instance. All timing flows through the
// explicit now arguments of Start and Update; a Transition never reads the
// wall clock itself, so the frame loop owns time.
type Transition struct {
	kind     Kind
	delay    time.Duration
	duration time.Duration
	easing   Easing
	strength float64
	params   map[string]float64

	state    State
	start    time.Time
	progress float64
}

// NewTransition creates a transition in the Ready state with ease-in-out
// easing and strength 1.
func NewTransition(kind Kind, duration time.Duration) *Transition {
	return &Transition{
		kind:     kind,
		duration: duration,
		easing:   EaseInOut,
		strength: 1,
	}
}

// WithEasing sets the easing curve.
func (t *Transition) WithEasing(e Easing) *Transition {
	t.easing = e
	return t
}

// WithDelay delays the start: Start(now) schedules the curve to begin at
// now+delay.
func (t *Transition) WithDelay(d time.Duration) *Transition {
	t.delay = d
	return t
}

// WithStrength scales Value. Strength outside (0,1] is allowed; 0 mutes
// the effect without cancelling it.
func (t *Transition) WithStrength(s float64) *Transition {
	t.strength = s
	return t
}

// WithParam attaches a named float parameter, e.g. "start_scale".
func (t *Transition) WithParam(name string, value float64) *Transition {
	if t.params == nil {
		t.params = make(map[string]float64)
	}
	t.params[name] = value
	return t
}

// Start arms the transition. The curve begins at now plus any configured
// delay.
func (t *Transition) Start(now time.Time) {
	t.start = now.Add(t.delay)
	t.state = StateRunning
}

// Update advances the transition to now and reports whether progress
// changed. The tick that crosses the full duration pins progress to 1 and
// marks the transition Completed; later calls return false.
func (t *Transition) Update(now time.Time) bool {
	if t.state != StateRunning {
		return false
	}
	if now.Before(t.start) {
		// Still in the delay window.
		return false
	}
	elapsed := now.Sub(t.start)
	if elapsed >= t.duration {
		t.progress = 1
		t.state = StateCompleted
		return true
	}
	p := t.easing.Apply(float64(elapsed) / float64(t.duration))
	if p == t.progress {
		return false
	}
	t.progress = p
	return true
}

// Cancel marks the transition Cancelled. The owning manager prunes it on
// its next update. Cancelling a terminal transition is a no-op.
func (t *Transition) Cancel() {
	if t.state.Terminal() {
		return
	}
	t.state = StateCancelled
}

// Fail marks the transition Failed, e.g. when a stage cannot apply it.
func (t *Transition) Fail() {
	if t.state.Terminal() {
		return
	}
	t.state = StateFailed
}

// Kind returns the effect kind.
func (t *Transition) Kind() Kind { return t.kind }

// State returns the lifecycle phase.
func (t *Transition) State() State { return t.state }

// Progress returns eased progress in [0,1].
func (t *Transition) Progress() float64 { return t.progress }

// Value returns progress scaled by strength; this is what consumers apply
// to opacity, scale, or offset.
func (t *Transition) Value() float64 { return t.progress * t.strength }

// Duration returns the configured duration, excluding delay.
func (t *Transition) Duration() time.Duration { return t.duration }

// Param looks up a named parameter.
func (t *Transition) Param(name string) (float64, bool) {
	v, ok := t.params[name]
	return v, ok
}
