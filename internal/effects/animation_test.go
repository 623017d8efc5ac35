package effects

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestKeyframeValueAt(t *testing.T) {
	track := NewKeyframeAnimation(PropertyOpacity, AnimationParams{Duration: 400 * time.Millisecond})
	track.AddKeyframe(0, 0, Linear)
	track.AddKeyframe(100*time.Millisecond, 1, Linear)
	track.AddKeyframe(400*time.Millisecond, 0.5, Linear)

	cases := []struct {
		at   time.Duration
		want float64
	}{
		{0, 0},
		{50 * time.Millisecond, 0.5},
		{100 * time.Millisecond, 1},
		{250 * time.Millisecond, 0.75},
		{400 * time.Millisecond, 0.5},
		{time.Second, 0.5}, // past the last keyframe the end value holds
	}
	for _, tc := range cases {
		if got := track.ValueAt(tc.at); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("ValueAt(%v) = %v, want %v", tc.at, got, tc.want)
		}
	}
}

func TestKeyframeAddOutOfOrder(t *testing.T) {
	track := NewKeyframeAnimation(PropertyX, AnimationParams{Duration: 200 * time.Millisecond})
	track.AddKeyframe(200*time.Millisecond, 10, Linear)
	track.AddKeyframe(0, 0, Linear)

	if got := track.ValueAt(100 * time.Millisecond); math.Abs(got-5) > 1e-9 {
		t.Fatalf("out-of-order insert broke interpolation: got %v, want 5", got)
	}
}

func TestKeyframeAnimationCompletes(t *testing.T) {
	track := NewKeyframeAnimation(PropertyOpacity, AnimationParams{Duration: 100 * time.Millisecond, RepeatCount: 1})
	track.AddKeyframe(0, 0, Linear)
	track.AddKeyframe(100*time.Millisecond, 1, Linear)

	a := NewKeyframeEffect("show", track, 3)
	a.Start(t0)

	if !a.Update(t0.Add(50 * time.Millisecond)) {
		t.Fatal("mid-cycle update must report a change")
	}
	if v := a.Value(); math.Abs(v-0.5) > 1e-9 {
		t.Fatalf("value = %v, want 0.5", v)
	}

	a.Update(t0.Add(150 * time.Millisecond))
	if a.State() != StateCompleted {
		t.Fatalf("state = %v, want completed", a.State())
	}
	if a.Value() != 1 {
		t.Fatalf("completed value = %v, want the end keyframe", a.Value())
	}
}

func TestKeyframeYoyoRepeats(t *testing.T) {
	track := NewKeyframeAnimation(PropertyY, AnimationParams{
		Duration:    100 * time.Millisecond,
		RepeatCount: 2,
		Yoyo:        true,
	})
	track.AddKeyframe(0, 0, Linear)
	track.AddKeyframe(100*time.Millisecond, 10, Linear)

	a := NewKeyframeEffect("bounce", track, 0)
	a.Start(t0)

	a.Update(t0.Add(50 * time.Millisecond))
	if v := a.Value(); math.Abs(v-5) > 1e-9 {
		t.Fatalf("forward cycle value = %v, want 5", v)
	}

	// Second cycle runs backwards: 150 ms is halfway back down.
	a.Update(t0.Add(150 * time.Millisecond))
	if v := a.Value(); math.Abs(v-5) > 1e-9 {
		t.Fatalf("yoyo cycle value = %v, want 5", v)
	}

	// After both cycles the yoyo ends where it started.
	a.Update(t0.Add(250 * time.Millisecond))
	if a.State() != StateCompleted {
		t.Fatalf("state = %v, want completed", a.State())
	}
	if a.Value() != 0 {
		t.Fatalf("yoyo end value = %v, want 0", a.Value())
	}
}

func TestSpringSettlesAtTarget(t *testing.T) {
	a := NewSpringAnimation("snap", PropertyX, 0, 100, 100, 10, 0)
	a.Start(t0)

	overshot := false
	for step := time.Duration(0); step < 5*time.Second; step += 16 * time.Millisecond {
		a.Update(t0.Add(step))
		if a.Value() > 100 {
			overshot = true
		}
		if a.State() == StateCompleted {
			break
		}
	}
	if a.State() != StateCompleted {
		t.Fatalf("underdamped spring never settled, value %v", a.Value())
	}
	if a.Value() != 100 {
		t.Fatalf("settled value = %v, want pinned target", a.Value())
	}
	if !overshot {
		t.Error("underdamped spring should overshoot the target")
	}
}

func TestWobbleDecaysToRest(t *testing.T) {
	a := NewWobbleAnimation("shake", PropertyY, 8, 4, 3, 0)
	a.Start(t0)

	moved := false
	for step := time.Duration(0); step < 5*time.Second; step += 16 * time.Millisecond {
		a.Update(t0.Add(step))
		if math.Abs(a.Value()) > 1 {
			moved = true
		}
		if a.State() == StateCompleted {
			break
		}
	}
	if a.State() != StateCompleted {
		t.Fatalf("wobble never decayed, value %v", a.Value())
	}
	if a.Value() != 0 {
		t.Fatalf("rest value = %v, want 0", a.Value())
	}
	if !moved {
		t.Error("wobble should oscillate before decaying")
	}
}

func TestAnimationPauseResume(t *testing.T) {
	track := NewKeyframeAnimation(PropertyOpacity, AnimationParams{Duration: 100 * time.Millisecond, RepeatCount: 1})
	track.AddKeyframe(0, 0, Linear)
	track.AddKeyframe(100*time.Millisecond, 1, Linear)

	a := NewKeyframeEffect("fade", track, 0)
	a.Start(t0)
	a.Update(t0.Add(40 * time.Millisecond))
	a.Pause(t0.Add(40 * time.Millisecond))

	if a.Update(t0.Add(500 * time.Millisecond)) {
		t.Fatal("paused animation must not advance")
	}
	if a.State() != StatePaused {
		t.Fatalf("state = %v, want paused", a.State())
	}

	// A 460 ms pause shifts the clock: resuming at t0+500ms puts the
	// animation back at its 40 ms mark.
	a.Resume(t0.Add(500 * time.Millisecond))
	a.Update(t0.Add(510 * time.Millisecond))
	if v := a.Value(); math.Abs(v-0.5) > 1e-9 {
		t.Fatalf("resumed value = %v, want 0.5", v)
	}
}

func TestAnimationManagerLifecycle(t *testing.T) {
	m := NewAnimationManager()

	track := NewKeyframeAnimation(PropertyOpacity, AnimationParams{Duration: 100 * time.Millisecond, RepeatCount: 1})
	track.AddKeyframe(0, 0, Linear)
	track.AddKeyframe(100*time.Millisecond, 1, Linear)

	var seen []float64
	a := NewKeyframeEffect("fade", track, 5).WithCallback(func(v float64) bool {
		seen = append(seen, v)
		return true
	})
	if err := m.Add(a, t0); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if m.Count() != 1 {
		t.Fatalf("count = %d, want 1", m.Count())
	}

	m.Update(t0.Add(50 * time.Millisecond))
	if len(seen) != 1 || math.Abs(seen[0]-0.5) > 1e-9 {
		t.Fatalf("callback saw %v, want one 0.5 tick", seen)
	}

	m.Update(t0.Add(200 * time.Millisecond))
	if m.Count() != 0 {
		t.Fatal("completed animation must be pruned")
	}
	if len(seen) != 2 || seen[1] != 1 {
		t.Fatalf("callback saw %v, want the final value", seen)
	}
}

func TestAnimationManagerCallbackVeto(t *testing.T) {
	m := NewAnimationManager()
	a := NewWobbleAnimation("shake", PropertyY, 8, 4, 3, 0).WithCallback(func(float64) bool {
		return false
	})
	if err := m.Add(a, t0); err != nil {
		t.Fatalf("Add: %v", err)
	}

	m.Update(t0.Add(30 * time.Millisecond))
	if m.Count() != 0 {
		t.Fatal("vetoed animation must be cancelled and pruned")
	}
}

func TestAnimationManagerLimit(t *testing.T) {
	m := NewAnimationManager()
	wob := func(id string) *Animation {
		return NewWobbleAnimation(id, PropertyY, 8, 4, 3, 0)
	}
	if err := m.Add(wob("a"), t0); err != nil {
		t.Fatalf("Add: %v", err)
	}

	// Shrinking is not supported; build a tiny manager by hand instead.
	small := NewAnimationManager()
	small.limit = 1
	if err := small.Add(wob("a"), t0); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := small.Add(wob("b"), t0); !errors.Is(err, ErrAnimationLimit) {
		t.Fatalf("expected ErrAnimationLimit, got %v", err)
	}
	// Same id replaces in place even at the limit.
	if err := small.Add(wob("a"), t0); err != nil {
		t.Fatalf("replacing at the limit: %v", err)
	}
}

func TestAnimationManagerCancelTarget(t *testing.T) {
	m := NewAnimationManager()
	m.Add(NewWobbleAnimation("w5", PropertyY, 8, 4, 3, 5), t0)
	m.Add(NewWobbleAnimation("w6", PropertyY, 8, 4, 3, 6), t0)

	m.CancelTarget(5)
	m.Update(t0.Add(10 * time.Millisecond))
	if m.Count() != 1 {
		t.Fatalf("count = %d, want only the other window's animation", m.Count())
	}
	if _, ok := m.Get("w6"); !ok {
		t.Fatal("animation for the untouched window must survive")
	}

	// Target 0 is global, never matched.
	m.CancelTarget(0)
	m.Update(t0.Add(20 * time.Millisecond))
	if m.Count() != 1 {
		t.Fatal("cancelling target 0 must be a no-op")
	}
}

func TestAnimationManagerDisabled(t *testing.T) {
	m := NewAnimationManager()
	m.Add(NewWobbleAnimation("w", PropertyY, 8, 4, 3, 0), t0)
	m.SetEnabled(false)

	if m.Count() != 0 {
		t.Fatal("disabling must drop active animations")
	}
	if err := m.Add(NewWobbleAnimation("w", PropertyY, 8, 4, 3, 0), t0); !errors.Is(err, ErrDisabled) {
		t.Fatalf("expected ErrDisabled, got %v", err)
	}
}
