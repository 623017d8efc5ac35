package effects

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"
)

// ErrAnimationLimit is returned when the animation manager is full.
var ErrAnimationLimit = errors.New("animation limit reached")

// DefaultAnimationLimit bounds simultaneous animations. Unlike the effect
// manager, the animation manager rejects past the limit instead of
// evicting: long-lived animations should not silently kill each other.
const DefaultAnimationLimit = 100

// Property names the window attribute an animation drives.
type Property int

const (
	PropertyX Property = iota
	PropertyY
	PropertyWidth
	PropertyHeight
	PropertyOpacity
	PropertyRotation
	PropertyScaleX
	PropertyScaleY
)

func (p Property) String() string {
	switch p {
	case PropertyX:
		return "x"
	case PropertyY:
		return "y"
	case PropertyWidth:
		return "width"
	case PropertyHeight:
		return "height"
	case PropertyOpacity:
		return "opacity"
	case PropertyRotation:
		return "rotation"
	case PropertyScaleX:
		return "scale-x"
	case PropertyScaleY:
		return "scale-y"
	}
	return fmt.Sprintf("property(%d)", int(p))
}

// Keyframe pins a value at an offset into the animation cycle. Easing
// shapes the segment from this keyframe to the next one.
type Keyframe struct {
	At     time.Duration
	Value  float64
	Easing Easing
}

// AnimationParams tunes a keyframe animation's playback.
type AnimationParams struct {
	// Duration is the length of one cycle.
	Duration time.Duration
	// RepeatCount is how many cycles to play; 0 repeats forever.
	RepeatCount int
	// Yoyo plays every other cycle backwards.
	Yoyo bool
	// Delay postpones the first cycle.
	Delay time.Duration
	// DefaultEasing applies to keyframes added without an explicit curve.
	DefaultEasing Easing
}

// DefaultAnimationParams returns a single 300 ms linear cycle.
func DefaultAnimationParams() AnimationParams {
	return AnimationParams{Duration: 300 * time.Millisecond, RepeatCount: 1, DefaultEasing: Linear}
}

// KeyframeAnimation interpolates a property value through a sorted list
// of keyframes. Outside the keyframe range the nearest endpoint value
// holds.
type KeyframeAnimation struct {
	Property  Property
	Params    AnimationParams
	keyframes []Keyframe
}

// NewKeyframeAnimation creates an empty track. A zero duration takes the
// default; a zero repeat count loops forever.
func NewKeyframeAnimation(property Property, params AnimationParams) *KeyframeAnimation {
	if params.Duration <= 0 {
		params.Duration = DefaultAnimationParams().Duration
	}
	return &KeyframeAnimation{Property: property, Params: params}
}

// AddKeyframe inserts a keyframe, keeping the list sorted by offset.
func (k *KeyframeAnimation) AddKeyframe(at time.Duration, value float64, easing Easing) *KeyframeAnimation {
	k.keyframes = append(k.keyframes, Keyframe{At: at, Value: value, Easing: easing})
	sort.SliceStable(k.keyframes, func(i, j int) bool {
		return k.keyframes[i].At < k.keyframes[j].At
	})
	return k
}

// ValueAt computes the interpolated value at an offset into one cycle.
func (k *KeyframeAnimation) ValueAt(at time.Duration) float64 {
	if len(k.keyframes) == 0 {
		return 0
	}
	first := k.keyframes[0]
	if at <= first.At {
		return first.Value
	}
	last := k.keyframes[len(k.keyframes)-1]
	if at >= last.At {
		return last.Value
	}
	prev := first
	for _, kf := range k.keyframes[1:] {
		if kf.At >= at {
			span := kf.At - prev.At
			t := float64(at-prev.At) / float64(span)
			return prev.Value + (kf.Value-prev.Value)*prev.Easing.Apply(t)
		}
		prev = kf
	}
	return prev.Value
}

type springParams struct {
	from      float64
	to        float64
	stiffness float64
	damping   float64
}

type wobbleParams struct {
	amplitude float64
	frequency float64
	decay     float64
}

// Animation is one running property animation: a keyframe track, a
// damped spring, or a decaying wobble. Like Transition, all timing flows
// through the explicit now arguments; the frame loop owns time.
type Animation struct {
	id       string
	property Property
	target   uint64

	state    State
	start    time.Time
	pausedAt time.Time
	value    float64
	callback Callback

	keyframe *KeyframeAnimation
	spring   *springParams
	wobble   *wobbleParams
}

// NewKeyframeEffect wraps a keyframe track as a runnable animation bound
// to a window (0 for global).
func NewKeyframeEffect(id string, track *KeyframeAnimation, target uint64) *Animation {
	return &Animation{id: id, property: track.Property, target: target, keyframe: track}
}

// NewSpringAnimation animates a property from one value to another with
// damped harmonic motion. It completes when the value settles within 0.01
// of the target value.
func NewSpringAnimation(id string, property Property, from, to, stiffness, damping float64, target uint64) *Animation {
	return &Animation{
		id: id, property: property, target: target,
		spring: &springParams{from: from, to: to, stiffness: stiffness, damping: damping},
	}
}

// NewWobbleAnimation oscillates a property as a decaying sine around 0.
// It completes once the envelope falls below 0.01.
func NewWobbleAnimation(id string, property Property, amplitude, frequency, decay float64, target uint64) *Animation {
	return &Animation{
		id: id, property: property, target: target,
		wobble: &wobbleParams{amplitude: amplitude, frequency: frequency, decay: decay},
	}
}

// WithCallback attaches a value observer, run on each tick the value
// changes. Returning false cancels the animation.
func (a *Animation) WithCallback(cb Callback) *Animation {
	a.callback = cb
	return a
}

// ID returns the animation's identifier.
func (a *Animation) ID() string { return a.id }

// Property returns the driven attribute.
func (a *Animation) Property() Property { return a.property }

// Target returns the bound window id, 0 for global.
func (a *Animation) Target() uint64 { return a.target }

// State returns the lifecycle phase.
func (a *Animation) State() State { return a.state }

// Value returns the last computed property value.
func (a *Animation) Value() float64 { return a.value }

// Start arms the animation. Keyframe delay shifts the curve start.
func (a *Animation) Start(now time.Time) {
	a.start = now
	if a.keyframe != nil {
		a.start = now.Add(a.keyframe.Params.Delay)
	}
	a.state = StateRunning
}

// Pause freezes the animation at now. Updates while paused do nothing.
func (a *Animation) Pause(now time.Time) {
	if a.state != StateRunning {
		return
	}
	a.state = StatePaused
	a.pausedAt = now
}

// Resume continues a paused animation, shifting its clock by the paused
// span so the value picks up where it froze.
func (a *Animation) Resume(now time.Time) {
	if a.state != StatePaused {
		return
	}
	a.start = a.start.Add(now.Sub(a.pausedAt))
	a.state = StateRunning
}

// Cancel marks the animation Cancelled; the manager prunes it on the
// next update.
func (a *Animation) Cancel() {
	if a.state.Terminal() {
		return
	}
	a.state = StateCancelled
}

// Update advances the animation to now and reports whether the value
// changed. The tick that completes the animation pins the final value.
func (a *Animation) Update(now time.Time) bool {
	if a.state != StateRunning {
		return false
	}
	if now.Before(a.start) {
		return false
	}
	elapsed := now.Sub(a.start)

	var v float64
	done := false
	switch {
	case a.keyframe != nil:
		v, done = a.keyframeValue(elapsed)
	case a.spring != nil:
		v, done = a.springValue(elapsed)
		if done {
			v = a.spring.to
		}
	case a.wobble != nil:
		w := a.wobble
		envelope := w.amplitude * math.Exp(-w.decay*elapsed.Seconds())
		if math.Abs(envelope) < 0.01 {
			v = 0
			done = true
		} else {
			v = envelope * math.Sin(2*math.Pi*w.frequency*elapsed.Seconds())
		}
	default:
		a.state = StateFailed
		return false
	}

	if done {
		a.value = v
		a.state = StateCompleted
		return true
	}
	if v == a.value {
		return false
	}
	a.value = v
	return true
}

func (a *Animation) keyframeValue(elapsed time.Duration) (float64, bool) {
	p := a.keyframe.Params
	cycles := int(elapsed / p.Duration)
	if p.RepeatCount > 0 && cycles >= p.RepeatCount {
		// Pin to the end of the last cycle, honoring its direction.
		at := p.Duration
		if p.Yoyo && (p.RepeatCount-1)%2 == 1 {
			at = 0
		}
		return a.keyframe.ValueAt(at), true
	}
	offset := elapsed % p.Duration
	if p.Yoyo && cycles%2 == 1 {
		offset = p.Duration - offset
	}
	return a.keyframe.ValueAt(offset), false
}

// springValue evaluates the damped harmonic response at elapsed, starting
// from rest at the initial value, and reports whether it has settled.
// Settling goes by the decay envelope, not the instantaneous value: an
// underdamped spring crosses the target long before it is done.
func (a *Animation) springValue(elapsed time.Duration) (float64, bool) {
	s := a.spring
	t := elapsed.Seconds()
	omega := math.Sqrt(s.stiffness)
	zeta := s.damping / (2 * math.Sqrt(s.stiffness))
	y0 := s.from - s.to

	switch {
	case zeta < 1:
		omegaD := omega * math.Sqrt(1-zeta*zeta)
		decay := math.Exp(-zeta * omega * t)
		envelope := math.Abs(y0) * decay * (1 + zeta*omega/omegaD)
		v := s.to + y0*decay*(math.Cos(omegaD*t)+zeta*omega/omegaD*math.Sin(omegaD*t))
		return v, envelope < 0.01
	case zeta == 1:
		v := s.to + y0*(1+omega*t)*math.Exp(-omega*t)
		return v, math.Abs(v-s.to) < 0.01
	default:
		omegaD := omega * math.Sqrt(zeta*zeta-1)
		r1 := -omega*zeta + omegaD
		r2 := -omega*zeta - omegaD
		c1 := -y0 * r2 / (r1 - r2)
		c2 := y0 * r1 / (r1 - r2)
		v := s.to + c1*math.Exp(r1*t) + c2*math.Exp(r2*t)
		return v, math.Abs(v-s.to) < 0.01
	}
}

// AnimationManager owns the running animations, keyed by id. Adding an
// existing id replaces that animation. Safe for concurrent use.
type AnimationManager struct {
	mu         sync.Mutex
	animations map[string]*Animation
	limit      int
	enabled    bool
}

// NewAnimationManager creates an enabled manager with the default limit.
func NewAnimationManager() *AnimationManager {
	return &AnimationManager{
		animations: make(map[string]*Animation),
		limit:      DefaultAnimationLimit,
		enabled:    true,
	}
}

// Add starts the animation and tracks it. A full manager returns
// ErrAnimationLimit unless the id replaces an existing animation.
func (m *AnimationManager) Add(a *Animation, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.enabled {
		return ErrDisabled
	}
	if _, exists := m.animations[a.id]; !exists && len(m.animations) >= m.limit {
		return ErrAnimationLimit
	}
	a.Start(now)
	m.animations[a.id] = a
	return nil
}

// Update advances every animation, runs callbacks, and drops terminal
// animations. A disabled manager does nothing.
func (m *AnimationManager) Update(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.enabled {
		return
	}
	for id, a := range m.animations {
		if a.Update(now) && a.callback != nil {
			if !a.callback(a.value) {
				a.Cancel()
			}
		}
		if a.state.Terminal() {
			delete(m.animations, id)
		}
	}
}

// Get looks up a tracked animation by id.
func (m *AnimationManager) Get(id string) (*Animation, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.animations[id]
	return a, ok
}

// Remove drops an animation without cancelling callbacks mid-tick.
func (m *AnimationManager) Remove(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.animations[id]
	delete(m.animations, id)
	return ok
}

// Pause freezes the animation. Returns false for an unknown id.
func (m *AnimationManager) Pause(id string, now time.Time) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.animations[id]
	if !ok {
		return false
	}
	a.Pause(now)
	return true
}

// Resume continues a paused animation. Returns false for an unknown id.
func (m *AnimationManager) Resume(id string, now time.Time) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.animations[id]
	if !ok {
		return false
	}
	a.Resume(now)
	return true
}

// CancelTarget cancels every animation bound to the window id.
func (m *AnimationManager) CancelTarget(target uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.animations {
		if a.target == target && target != 0 {
			a.Cancel()
		}
	}
}

// Clear drops every animation immediately.
func (m *AnimationManager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.animations = make(map[string]*Animation)
}

// Count returns how many animations are tracked.
func (m *AnimationManager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.animations)
}

// SetEnabled toggles the manager. Disabling drops all animations.
func (m *AnimationManager) SetEnabled(enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enabled = enabled
	if !enabled {
		m.animations = make(map[string]*Animation)
	}
}

// Enabled reports whether animations are being applied.
func (m *AnimationManager) Enabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.enabled
}
