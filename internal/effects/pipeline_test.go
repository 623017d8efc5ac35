package effects

import (
	"errors"
	"testing"
	"time"
)

func TestPipelineApplyPreset(t *testing.T) {
	p := NewPipeline()

	if p.CurrentPreset() != "default" {
		t.Fatalf("expected default preset, got %q", p.CurrentPreset())
	}
	if err := p.ApplyPreset("minimal"); err != nil {
		t.Fatalf("ApplyPreset: %v", err)
	}
	stages := p.Stages()
	if len(stages) != 1 || stages[0].Name != "fade" {
		t.Fatalf("minimal preset not applied: %v", stages)
	}
	if p.CurrentPreset() != "minimal" {
		t.Fatalf("current preset not tracked")
	}
}

func TestPipelineUnknownPreset(t *testing.T) {
	p := NewPipeline()
	before := p.Stages()

	err := p.ApplyPreset("nonexistent")
	if !errors.Is(err, ErrUnknownPreset) {
		t.Fatalf("expected ErrUnknownPreset, got %v", err)
	}
	after := p.Stages()
	if len(before) != len(after) {
		t.Fatalf("failed apply must leave the stage list untouched")
	}
}

func TestPipelineRegisterPreset(t *testing.T) {
	p := NewPipeline()
	custom := []Stage{
		{Name: "ripple", Kind: StageCustom, Effect: Ripple},
		{Name: "final", Kind: StageRender},
	}
	p.RegisterPreset("party", custom)

	if err := p.ApplyPreset("party"); err != nil {
		t.Fatalf("ApplyPreset: %v", err)
	}
	stages := p.Stages()
	if len(stages) != 2 || stages[0].Effect != Ripple {
		t.Fatalf("custom preset not applied: %v", stages)
	}

	// Mutating the caller's slice must not leak into the registered copy.
	custom[0].Name = "mutated"
	p.ApplyPreset("party")
	if p.Stages()[0].Name != "ripple" {
		t.Fatalf("preset aliases the caller's slice")
	}
}

func TestPipelinePresetsSorted(t *testing.T) {
	p := NewPipeline()
	names := p.Presets()
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("presets not sorted: %v", names)
		}
	}
}

func TestPipelineForwardsToManager(t *testing.T) {
	p := NewPipeline()

	if err := p.Apply(FadeIn, 100*time.Millisecond, 3, t0); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if p.Manager().ActiveCount() != 1 {
		t.Fatalf("Apply must reach the manager")
	}

	p.Update(t0.Add(200 * time.Millisecond))
	if p.Manager().ActiveCount() != 0 {
		t.Fatalf("Update must advance and prune")
	}

	p.Apply(FadeOut, time.Second, 3, t0)
	p.ClearAll()
	if p.Manager().ActiveCount() != 0 {
		t.Fatalf("ClearAll must drop everything")
	}

	p.SetEnabled(false)
	if err := p.Apply(FadeIn, time.Second, 0, t0); !errors.Is(err, ErrDisabled) {
		t.Fatalf("disabled pipeline must refuse effects, got %v", err)
	}
	if p.Enabled() {
		t.Fatalf("Enabled must report the manager state")
	}
}

func TestPipelineApplyStages(t *testing.T) {
	p := NewPipeline()
	if err := p.ApplyPreset("fancy"); err != nil {
		t.Fatalf("ApplyPreset: %v", err)
	}

	// fancy = fade + scale transitions, two filter stages, and a ripple
	// animation stage. Filters have no factory and start nothing.
	if err := p.ApplyStages(100*time.Millisecond, 7, t0); err != nil {
		t.Fatalf("ApplyStages: %v", err)
	}
	if got := p.Manager().ActiveCount(); got != 2 {
		t.Fatalf("active = %d, want 2 transition stages", got)
	}
	if got := p.Animations().Count(); got != 1 {
		t.Fatalf("animations = %d, want the ripple stage", got)
	}
}

func TestPipelineStageEnableFlag(t *testing.T) {
	p := NewPipeline()

	if !p.SetStageEnabled("fade", false) {
		t.Fatal("fade stage should exist in the default preset")
	}
	if p.SetStageEnabled("no-such-stage", false) {
		t.Fatal("unknown stage must report false")
	}

	if err := p.ApplyStages(100*time.Millisecond, 7, t0); err != nil {
		t.Fatalf("ApplyStages: %v", err)
	}
	// default = fade + scale transitions; fade is disabled.
	if got := p.Manager().ActiveCount(); got != 1 {
		t.Fatalf("active = %d, want 1 with fade disabled", got)
	}

	// Re-applying the preset resets the flag.
	if err := p.ApplyPreset("default"); err != nil {
		t.Fatalf("ApplyPreset: %v", err)
	}
	for _, s := range p.Stages() {
		if s.Disabled {
			t.Fatalf("preset re-apply must reset stage flags: %+v", s)
		}
	}
}

func TestPipelineApplyStagesObserver(t *testing.T) {
	p := NewPipeline()
	if err := p.ApplyPreset("minimal"); err != nil {
		t.Fatalf("ApplyPreset: %v", err)
	}

	var stages []string
	var last float64
	err := p.ApplyStagesWith(100*time.Millisecond, 9, t0, func(s Stage, v float64) bool {
		stages = append(stages, s.Name)
		last = v
		return true
	})
	if err != nil {
		t.Fatalf("ApplyStagesWith: %v", err)
	}

	p.Update(t0.Add(50 * time.Millisecond))
	if len(stages) != 1 || stages[0] != "fade" {
		t.Fatalf("observer saw stages %v, want one fade tick", stages)
	}
	if last <= 0 || last >= 1 {
		t.Fatalf("mid-flight progress = %v, want inside (0,1)", last)
	}

	p.Update(t0.Add(150 * time.Millisecond))
	if last != 1 {
		t.Fatalf("final progress = %v, want 1", last)
	}
}

func TestPipelineApplyStagesObserverVeto(t *testing.T) {
	p := NewPipeline()
	if err := p.ApplyPreset("minimal"); err != nil {
		t.Fatalf("ApplyPreset: %v", err)
	}
	err := p.ApplyStagesWith(100*time.Millisecond, 9, t0, func(Stage, float64) bool {
		return false
	})
	if err != nil {
		t.Fatalf("ApplyStagesWith: %v", err)
	}

	p.Update(t0.Add(50 * time.Millisecond))
	p.Update(t0.Add(60 * time.Millisecond))
	if got := p.Manager().ActiveCount(); got != 0 {
		t.Fatalf("active = %d, vetoed stage must be cancelled", got)
	}
}
