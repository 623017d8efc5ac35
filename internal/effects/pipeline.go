package effects

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"
)

// ErrUnknownPreset is returned by ApplyPreset for an unregistered name.
var ErrUnknownPreset = errors.New("unknown effects preset")

// StageKind classifies a pipeline stage.
type StageKind int

const (
	StageTransition StageKind = iota
	StageFilter
	StageAnimation
	StageRender
	StageCustom
)

func (k StageKind) String() string {
	switch k {
	case StageTransition:
		return "transition"
	case StageFilter:
		return "filter"
	case StageAnimation:
		return "animation"
	case StageRender:
		return "render"
	case StageCustom:
		return "custom"
	}
	return fmt.Sprintf("stage(%d)", int(k))
}

// Stage is one ordered step of the pipeline. Effect names the transition
// or filter the stage applies; it is ignored for render and custom stages.
// A disabled stage stays in the list but is skipped by ApplyStages.
type Stage struct {
	Name     string
	Kind     StageKind
	Effect   Kind
	Disabled bool
}

// Pipeline orders effect stages and switches them in bulk via named
// presets. It wraps the Manager that owns the running transitions.
type Pipeline struct {
	mu         sync.Mutex
	manager    *Manager
	animations *AnimationManager
	stages     []Stage
	presets    map[string][]Stage
	current    string
	defaultDur time.Duration
}

// NewPipeline creates a pipeline with a fresh manager and the built-in
// presets registered. The "default" preset is active.
func NewPipeline() *Pipeline {
	p := &Pipeline{
		manager:    NewManager(),
		animations: NewAnimationManager(),
		presets:    make(map[string][]Stage),
		defaultDur: 300 * time.Millisecond,
	}
	p.registerDefaultPresets()
	return p
}

func (p *Pipeline) registerDefaultPresets() {
	minimal := []Stage{
		{Name: "fade", Kind: StageTransition, Effect: FadeIn},
	}
	balanced := []Stage{
		{Name: "fade", Kind: StageTransition, Effect: FadeIn},
		{Name: "scale", Kind: StageTransition, Effect: ScaleIn},
		{Name: "blur", Kind: StageFilter, Effect: Blur},
	}
	fancy := []Stage{
		{Name: "fade", Kind: StageTransition, Effect: FadeIn},
		{Name: "scale", Kind: StageTransition, Effect: ScaleIn},
		{Name: "blur", Kind: StageFilter, Effect: Blur},
		{Name: "color", Kind: StageFilter, Effect: ColorTransform},
		{Name: "ripple", Kind: StageAnimation, Effect: Ripple},
	}
	p.presets["minimal"] = minimal
	p.presets["default"] = balanced
	p.presets["fancy"] = fancy
	p.stages = append([]Stage(nil), balanced...)
	p.current = "default"
}

// Manager returns the wrapped effects manager.
func (p *Pipeline) Manager() *Manager { return p.manager }

// Animations returns the wrapped animation manager.
func (p *Pipeline) Animations() *AnimationManager { return p.animations }

// AddStage appends a stage to the active list.
func (p *Pipeline) AddStage(s Stage) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stages = append(p.stages, s)
}

// RegisterPreset adds or replaces a named stage list.
func (p *Pipeline) RegisterPreset(name string, stages []Stage) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.presets[name] = append([]Stage(nil), stages...)
}

// ApplyPreset replaces the active stage list with the named preset in one
// step; the stage list is never seen half-swapped. An unknown name leaves
// the active list untouched.
func (p *Pipeline) ApplyPreset(name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	stages, ok := p.presets[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	p.stages = append([]Stage(nil), stages...)
	p.current = name
	return nil
}

// CurrentPreset returns the name of the last applied preset.
func (p *Pipeline) CurrentPreset() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Presets returns the registered preset names, sorted.
func (p *Pipeline) Presets() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	names := make([]string, 0, len(p.presets))
	for name := range p.presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Stages returns a copy of the active stage list.
func (p *Pipeline) Stages() []Stage {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Stage(nil), p.stages...)
}

// SetStageEnabled toggles one stage of the active list by name. Returns
// false when no stage has that name.
func (p *Pipeline) SetStageEnabled(name string, enabled bool) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.stages {
		if p.stages[i].Name == name {
			p.stages[i].Disabled = !enabled
			return true
		}
	}
	return false
}

// SetDefaultDuration sets the duration ApplyStages uses when the caller
// passes zero. Non-positive values are ignored.
func (p *Pipeline) SetDefaultDuration(d time.Duration) {
	if d <= 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.defaultDur = d
}

// Apply builds the named effect from the manager's factory and starts it
// against the target window (0 for global).
func (p *Pipeline) Apply(kind Kind, duration time.Duration, target uint64, now time.Time) error {
	return p.manager.AddFromFactory(kind, duration, target, now)
}

// ApplyStages starts every enabled stage of the active list, in order,
// against the target window. Transition stages whose effect has no
// registered factory are skipped, as are filter and render stages; they
// describe work for other parts of the render path.
func (p *Pipeline) ApplyStages(duration time.Duration, target uint64, now time.Time) error {
	return p.ApplyStagesWith(duration, target, now, nil)
}

// ApplyStagesWith is ApplyStages with a per-stage observer: it runs on
// each tick a stage's transition progress or animation value changes,
// under the owning manager's lock. Returning false cancels that stage's
// effect only.
func (p *Pipeline) ApplyStagesWith(duration time.Duration, target uint64, now time.Time, observe func(Stage, float64) bool) error {
	p.mu.Lock()
	stages := append([]Stage(nil), p.stages...)
	if duration <= 0 {
		duration = p.defaultDur
	}
	p.mu.Unlock()

	for _, s := range stages {
		if s.Disabled {
			continue
		}
		var cb Callback
		if observe != nil {
			stage := s
			cb = func(v float64) bool { return observe(stage, v) }
		}
		switch s.Kind {
		case StageTransition:
			if !p.manager.HasFactory(s.Effect) {
				continue
			}
			if err := p.manager.AddFromFactoryWithCallback(s.Effect, duration, target, cb, now); err != nil {
				return err
			}
		case StageAnimation:
			a := stageAnimation(s, target)
			if a == nil {
				continue
			}
			if err := p.animations.Add(a.WithCallback(cb), now); err != nil {
				return err
			}
		}
	}
	return nil
}

// stageAnimation builds the animation a pipeline stage stands for.
// Ripple is the only effect kind with a built-in animation; other kinds
// come in through RegisterPreset with explicit AnimationManager use.
func stageAnimation(s Stage, target uint64) *Animation {
	if s.Effect != Ripple {
		return nil
	}
	id := fmt.Sprintf("%s-%d", s.Name, target)
	return NewWobbleAnimation(id, PropertyY, 6, 3, 4, target)
}

// SetEnabled forwards to both managers; disabling cancels everything
// active.
func (p *Pipeline) SetEnabled(enabled bool) {
	p.manager.SetEnabled(enabled)
	p.animations.SetEnabled(enabled)
}

// Enabled reports whether the wrapped manager applies effects.
func (p *Pipeline) Enabled() bool { return p.manager.Enabled() }

// Update forwards the frame tick to both managers.
func (p *Pipeline) Update(now time.Time) {
	p.manager.Update(now)
	p.animations.Update(now)
}

// ClearAll cancels and drops every running effect and animation.
func (p *Pipeline) ClearAll() {
	p.manager.ClearAll()
	p.animations.Clear()
}
