package gesture

import (
	"testing"

	"github.com/lumenwm/lumen/internal/geometry"
)

func newTestManager() *Manager {
	m := NewManager()
	m.RegisterDefaults(geometry.Rect{X: 0, Y: 0, Width: 1920, Height: 1080})
	return m
}

func TestManagerTapDispatch(t *testing.T) {
	m := newTestManager()

	var got []Info
	m.AddCallback(func(info *Info) bool {
		got = append(got, *info)
		return true
	})

	m.ProcessEvent(press(500, 500, 0))
	m.ProcessEvent(release(500, 500, 100))

	var taps int
	for _, info := range got {
		if info.Kind == Tap && info.State == Recognized {
			taps++
		}
	}
	if taps != 1 {
		t.Fatalf("expected exactly one recognized tap, got %d (%v)", taps, got)
	}
	if m.HasActive() {
		t.Fatalf("instantaneous gestures must not linger in the active set")
	}
}

func TestManagerActivation(t *testing.T) {
	m := newTestManager()

	m.ProcessEvent(press(500, 500, 0))
	if m.HasActive() {
		t.Fatalf("nothing may be active before any Began")
	}

	// Hold past the long-press delay.
	infos := m.ProcessEvent(idle(600))
	var began bool
	for _, info := range infos {
		if info.Kind == LongPress && info.State == Began {
			began = true
		}
	}
	if !began {
		t.Fatalf("expected a long-press Began, got %v", infos)
	}
	kinds := m.ActiveKinds()
	if len(kinds) != 1 || kinds[0] != LongPress {
		t.Fatalf("expected active set [LongPress], got %v", kinds)
	}

	// The same event must not reach the newly active recognizer twice:
	// one Began means one emission for that event.
	var lpCount int
	for _, info := range infos {
		if info.Kind == LongPress {
			lpCount++
		}
	}
	if lpCount != 1 {
		t.Fatalf("long-press emitted %d times for one event", lpCount)
	}

	infos = m.ProcessEvent(release(500, 500, 800))
	var ended bool
	for _, info := range infos {
		if info.Kind == LongPress && info.State == Ended {
			ended = true
		}
	}
	if !ended {
		t.Fatalf("expected a long-press Ended, got %v", infos)
	}
	if m.HasActive() {
		t.Fatalf("terminal emission must deactivate the kind")
	}
}

func TestManagerSilentAbandonPrunes(t *testing.T) {
	m := newTestManager()

	m.ProcessEvent(press(500, 500, 0))
	m.ProcessEvent(idle(600)) // long-press Began
	if !m.HasActive() {
		t.Fatalf("long-press must be active")
	}

	// Drift far past the movement threshold: the recognizer abandons
	// without emitting, and the manager must notice.
	m.ProcessEvent(move(600, 600, 650))
	if m.HasActive() {
		t.Fatalf("abandoned recognizer must leave the active set")
	}
}

func TestManagerCallbackVeto(t *testing.T) {
	m := newTestManager()

	var first, second int
	m.AddCallback(func(info *Info) bool {
		first++
		return info.Kind != Tap // veto taps only
	})
	m.AddCallback(func(info *Info) bool {
		second++
		return true
	})

	m.ProcessEvent(press(500, 500, 0))
	m.ProcessEvent(release(500, 500, 100))

	if first == 0 {
		t.Fatalf("first callback never ran")
	}
	// The vetoed tap must not reach the second callback.
	if first-second < 1 {
		t.Fatalf("veto did not stop the chain: first=%d second=%d", first, second)
	}
}

func TestManagerConcurrentKinds(t *testing.T) {
	m := newTestManager()

	// Hold a long press, then land two extra fingers and spread them:
	// pinch begins while long-press stays active.
	m.ProcessEvent(press(500, 500, 0))
	m.ProcessEvent(idle(600))

	m.ProcessEvent(touchBegin(1, 800, 500, 650))
	m.ProcessEvent(touchBegin(2, 900, 500, 650))
	infos := m.ProcessEvent(touchUpdate(2, 980, 500, 690))

	var pinchBegan bool
	for _, info := range infos {
		if info.Kind == Pinch && info.State == Began {
			pinchBegan = true
		}
	}
	if !pinchBegan {
		t.Fatalf("expected a pinch Began, got %v", infos)
	}

	kinds := m.ActiveKinds()
	var hasLP, hasPinch bool
	for _, k := range kinds {
		if k == LongPress {
			hasLP = true
		}
		if k == Pinch {
			hasPinch = true
		}
	}
	if !hasLP || !hasPinch {
		t.Fatalf("expected long-press and pinch both active, got %v", kinds)
	}
}

func TestManagerResetAll(t *testing.T) {
	m := newTestManager()
	m.ProcessEvent(press(500, 500, 0))
	m.ProcessEvent(idle(600))
	if !m.HasActive() {
		t.Fatalf("long-press must be active before reset")
	}
	m.ResetAll()
	if m.HasActive() {
		t.Fatalf("reset must clear the active set")
	}
	if m.ProcessEvent(release(500, 500, 700)) != nil {
		t.Fatalf("release after reset must emit nothing")
	}
}

func TestManagerRegisterReplaces(t *testing.T) {
	m := NewManager()
	m.Register(NewTap(TapConfig{TimeoutMS: 100}))
	m.Register(NewTap(TapConfig{TimeoutMS: 1000}))

	m.ProcessEvent(press(10, 10, 0))
	infos := m.ProcessEvent(release(10, 10, 500))
	if len(infos) != 1 || infos[0].Kind != Tap {
		t.Fatalf("replacement recognizer must be the one in effect, got %v", infos)
	}
}
