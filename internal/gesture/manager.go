package gesture

import (
	"github.com/lumenwm/lumen/internal/geometry"
	"github.com/lumenwm/lumen/internal/input"
)

// Callback receives each emitted gesture. Returning false stops the
// remaining callbacks for that gesture only; other gestures produced by the
// same input event still run the full chain.
type Callback func(*Info) bool

// Manager owns the recognizer set and dispatches input events to it.
//
// Dispatch is two-phase. Recognizers whose kind is not active get the event
// first; a Began response moves the kind into the active set. Active kinds
// then get the event as a priority pass, and a terminal emission (Ended,
// Cancelled, Failed) deactivates them. The split lets a gesture in progress
// keep consuming events while new kinds may still begin concurrently, e.g.
// a pinch starting during a held long-press.
//
// Manager is not safe for concurrent use; feed it from one input goroutine.
type Manager struct {
	recognizers map[Kind]Recognizer
	active      []Kind
	callbacks   []Callback
}

// NewManager creates an empty gesture manager.
func NewManager() *Manager {
	return &Manager{recognizers: make(map[Kind]Recognizer)}
}

// Register adds or replaces the recognizer for its kind.
func (m *Manager) Register(r Recognizer) {
	m.recognizers[r.Kind()] = r
}

// RegisterDefaults installs the full recognizer set with default tuning.
// screenBounds feeds the edge-swipe recognizer.
func (m *Manager) RegisterDefaults(screenBounds geometry.Rect) {
	m.Register(NewTap(TapConfig{}))
	m.Register(NewDoubleTap(DoubleTapConfig{}))
	m.Register(NewLongPress(LongPressConfig{}))
	m.Register(NewSwipe(SwipeConfig{}))
	m.Register(NewPinch(PinchConfig{}))
	m.Register(NewRotate(RotateConfig{}))
	m.Register(NewEdgeSwipe(EdgeSwipeConfig{Bounds: screenBounds}))
}

// AddCallback appends a gesture callback. Callbacks run in registration
// order.
func (m *Manager) AddCallback(cb Callback) {
	m.callbacks = append(m.callbacks, cb)
}

// ProcessEvent feeds one input event through both dispatch phases and
// returns every gesture emitted, in emission order. When two new kinds both
// reach Began on the same event both fire; their relative order is
// unspecified.
func (m *Manager) ProcessEvent(ev *input.Event) []Info {
	var emitted []Info

	// Snapshot so kinds activated in phase 1 do not see the same event
	// again in phase 2.
	wasActive := make([]Kind, len(m.active))
	copy(wasActive, m.active)

	// Phase 1: kinds not currently active.
	for kind, rec := range m.recognizers {
		if m.isActive(kind) {
			continue
		}
		if info := rec.Update(ev); info != nil {
			if info.State == Began {
				m.active = append(m.active, kind)
			}
			emitted = append(emitted, *info)
			m.invokeCallbacks(info)
		}
	}

	// Phase 2: kinds that were already active get the event too.
	var done []Kind
	for _, kind := range wasActive {
		rec, ok := m.recognizers[kind]
		if !ok {
			done = append(done, kind)
			continue
		}
		if info := rec.Update(ev); info != nil {
			emitted = append(emitted, *info)
			m.invokeCallbacks(info)
			if info.State.terminal() {
				done = append(done, kind)
			}
		}
		// A recognizer may abandon silently (e.g. long-press drift).
		// Drop it from the active set so the kind can begin again.
		if !rec.Active() {
			done = append(done, kind)
		}
	}
	for _, kind := range done {
		m.deactivate(kind)
	}

	return emitted
}

// invokeCallbacks runs the chain for one gesture, honoring the veto.
func (m *Manager) invokeCallbacks(info *Info) {
	for _, cb := range m.callbacks {
		if !cb(info) {
			break
		}
	}
}

func (m *Manager) isActive(kind Kind) bool {
	for _, k := range m.active {
		if k == kind {
			return true
		}
	}
	return false
}

func (m *Manager) deactivate(kind Kind) {
	for i, k := range m.active {
		if k == kind {
			m.active = append(m.active[:i], m.active[i+1:]...)
			return
		}
	}
}

// HasActive reports whether any gesture is in progress.
func (m *Manager) HasActive() bool {
	return len(m.active) > 0
}

// ActiveKinds returns a copy of the active kind set.
func (m *Manager) ActiveKinds() []Kind {
	out := make([]Kind, len(m.active))
	copy(out, m.active)
	return out
}

// Recognizer returns the recognizer registered for kind, or nil.
func (m *Manager) Recognizer(kind Kind) Recognizer {
	return m.recognizers[kind]
}

// ResetAll resets every recognizer and clears the active set.
func (m *Manager) ResetAll() {
	for _, rec := range m.recognizers {
		rec.Reset()
	}
	m.active = nil
}
