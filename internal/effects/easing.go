package effects

import (
	"fmt"
	"math"
	"strings"
)

// Easing selects the curve mapping elapsed fraction to progress.
type Easing int

const (
	Linear Easing = iota
	EaseIn
	EaseOut
	EaseInOut
	Bounce
	Elastic
	Back
	BackOut
)

func (e Easing) String() string {
	switch e {
	case Linear:
		return "linear"
	case EaseIn:
		return "ease-in"
	case EaseOut:
		return "ease-out"
	case EaseInOut:
		return "ease-in-out"
	case Bounce:
		return "bounce"
	case Elastic:
		return "elastic"
	case Back:
		return "back"
	case BackOut:
		return "back-out"
	}
	return fmt.Sprintf("easing(%d)", int(e))
}

// ParseEasing maps a config or IPC string to an easing curve.
func ParseEasing(s string) (Easing, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linear":
		return Linear, nil
	case "ease-in", "easein":
		return EaseIn, nil
	case "ease-out", "easeout":
		return EaseOut, nil
	case "ease-in-out", "easeinout":
		return EaseInOut, nil
	case "bounce":
		return Bounce, nil
	case "elastic":
		return Elastic, nil
	case "back":
		return Back, nil
	case "back-out", "backout":
		return BackOut, nil
	}
	return Linear, fmt.Errorf("unknown easing %q", s)
}

// Apply maps t in [0,1] through the curve. Bounce, Elastic and the Back
// pair may leave [0,1] mid-curve; all curves hit 0 at t=0 and 1 at t=1.
// Back anticipates (dips below 0 early); BackOut overshoots past 1 late.
func (e Easing) Apply(t float64) float64 {
	switch e {
	case EaseIn:
		return t * t
	case EaseOut:
		return t * (2 - t)
	case EaseInOut:
		if t < 0.5 {
			return 2 * t * t
		}
		return -1 + (4-2*t)*t
	case Bounce:
		switch {
		case t < 1/2.75:
			return 7.5625 * t * t
		case t < 2/2.75:
			t -= 1.5 / 2.75
			return 7.5625*t*t + 0.75
		case t < 2.5/2.75:
			t -= 2.25 / 2.75
			return 7.5625*t*t + 0.9375
		default:
			t -= 2.625 / 2.75
			return 7.5625*t*t + 0.984375
		}
	case Elastic:
		if t == 0 || t == 1 {
			return t
		}
		const p = 0.3
		s := p / 4
		t--
		return -(math.Pow(2, 10*t) * math.Sin((t-s)*(2*math.Pi)/p))
	case Back:
		const s = 1.70158
		return t * t * ((s+1)*t - s)
	case BackOut:
		const s = 1.70158
		t--
		return t*t*((s+1)*t+s) + 1
	}
	return t
}
