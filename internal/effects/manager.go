package effects

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrDisabled is returned when an effect is applied while the manager is
// disabled. Callers may re-enable and retry.
var ErrDisabled = errors.New("effects manager disabled")

// DefaultEffectLimit bounds simultaneous effects; inserting past the limit
// evicts the oldest.
const DefaultEffectLimit = 32

// Callback observes a transition's progress each tick it changes.
// Returning false cancels the effect early.
type Callback func(progress float64) bool

// Factory builds a preconfigured transition for a kind.
type Factory func(duration time.Duration) *Transition

type activeEffect struct {
	effect   *Transition
	target   uint64 // window id, 0 for global effects
	callback Callback
}

// Manager owns the bounded set of running transitions. It is safe for
// concurrent use: the frame loop calls Update while UI-facing code adds
// and cancels effects.
type Manager struct {
	mu        sync.Mutex
	active    []activeEffect
	limit     int
	enabled   bool
	factories map[Kind]Factory
}

// NewManager creates an enabled manager with the default effect limit and
// the default factories registered.
func NewManager() *Manager {
	m := &Manager{
		limit:     DefaultEffectLimit,
		enabled:   true,
		factories: make(map[Kind]Factory),
	}
	m.registerDefaultFactories()
	return m
}

func (m *Manager) registerDefaultFactories() {
	m.factories[FadeIn] = func(d time.Duration) *Transition {
		return NewTransition(FadeIn, d).WithEasing(EaseInOut)
	}
	m.factories[FadeOut] = func(d time.Duration) *Transition {
		return NewTransition(FadeOut, d).WithEasing(EaseInOut)
	}
	m.factories[ScaleIn] = func(d time.Duration) *Transition {
		return NewTransition(ScaleIn, d).WithEasing(BackOut).WithParam("start_scale", 0.8)
	}
	m.factories[ScaleOut] = func(d time.Duration) *Transition {
		return NewTransition(ScaleOut, d).WithEasing(Back).WithParam("end_scale", 0.8)
	}
	m.factories[SlideIn] = func(d time.Duration) *Transition {
		return NewTransition(SlideIn, d).WithEasing(EaseOut)
	}
	m.factories[SlideOut] = func(d time.Duration) *Transition {
		return NewTransition(SlideOut, d).WithEasing(EaseIn)
	}
}

// RegisterFactory adds or replaces the factory for a kind.
func (m *Manager) RegisterFactory(kind Kind, f Factory) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.factories[kind] = f
}

// Add starts the effect and tracks it. target of 0 means the effect is
// global rather than bound to a window.
func (m *Manager) Add(effect *Transition, target uint64, now time.Time) error {
	return m.AddWithCallback(effect, target, nil, now)
}

// AddWithCallback starts the effect with a progress callback. The callback
// runs under the manager lock on each tick the progress changes; returning
// false cancels the effect.
func (m *Manager) AddWithCallback(effect *Transition, target uint64, cb Callback, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.enabled {
		return ErrDisabled
	}
	if len(m.active) >= m.limit {
		m.active = m.active[1:]
	}
	effect.Start(now)
	m.active = append(m.active, activeEffect{effect: effect, target: target, callback: cb})
	return nil
}

// HasFactory reports whether a constructor is registered for the kind.
func (m *Manager) HasFactory(kind Kind) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.factories[kind]
	return ok
}

// AddFromFactory builds the effect via its registered factory and adds it.
func (m *Manager) AddFromFactory(kind Kind, duration time.Duration, target uint64, now time.Time) error {
	return m.AddFromFactoryWithCallback(kind, duration, target, nil, now)
}

// AddFromFactoryWithCallback builds the effect via its registered factory
// and adds it with a progress callback.
func (m *Manager) AddFromFactoryWithCallback(kind Kind, duration time.Duration, target uint64, cb Callback, now time.Time) error {
	m.mu.Lock()
	f, ok := m.factories[kind]
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("no factory for effect %s", kind)
	}
	return m.AddWithCallback(f(duration), target, cb, now)
}

// Update advances every active effect to now, runs callbacks, and prunes
// completed and cancelled effects in the same pass. Survivor order is
// preserved. A disabled manager does nothing.
func (m *Manager) Update(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.enabled {
		return
	}
	kept := m.active[:0]
	for _, ae := range m.active {
		if ae.effect.Update(now) && ae.callback != nil {
			if !ae.callback(ae.effect.Progress()) {
				ae.effect.Cancel()
			}
		}
		switch ae.effect.State() {
		case StateCompleted, StateCancelled, StateFailed:
			continue
		}
		kept = append(kept, ae)
	}
	// Release the tail so pruned callbacks are not pinned.
	for i := len(kept); i < len(m.active); i++ {
		m.active[i] = activeEffect{}
	}
	m.active = kept
}

// CancelTarget cancels every effect bound to the window id. The effects
// are pruned on the next Update.
func (m *Manager) CancelTarget(target uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ae := range m.active {
		if ae.target == target && target != 0 {
			ae.effect.Cancel()
		}
	}
}

// CancelAll cancels every active effect.
func (m *Manager) CancelAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancelAllLocked()
}

func (m *Manager) cancelAllLocked() {
	for _, ae := range m.active {
		ae.effect.Cancel()
	}
}

// ClearAll cancels and immediately drops every active effect.
func (m *Manager) ClearAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancelAllLocked()
	m.active = nil
}

// SetEnabled toggles the manager. Disabling cancels all active effects
// immediately.
func (m *Manager) SetEnabled(enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enabled = enabled
	if !enabled {
		m.cancelAllLocked()
	}
}

// Enabled reports whether effects are being applied.
func (m *Manager) Enabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.enabled
}

// SetLimit changes the effect limit, evicting oldest effects if the
// active set already exceeds it.
func (m *Manager) SetLimit(limit int) {
	if limit < 1 {
		limit = 1
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.limit = limit
	for len(m.active) > m.limit {
		m.active[0] = activeEffect{}
		m.active = m.active[1:]
	}
}

// ActiveCount returns how many effects are currently tracked.
func (m *Manager) ActiveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.active)
}
