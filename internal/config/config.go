package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lumenwm/lumen/internal/compositor"
	"github.com/lumenwm/lumen/internal/effects"
	"github.com/lumenwm/lumen/internal/geometry"
	"github.com/lumenwm/lumen/internal/gesture"
)

// ValidationError reports an invalid value with its YAML path.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("config: %s: %v", e.Path, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// CompositorConfig tunes the frame loop and backend hints.
type CompositorConfig struct {
	VSync              bool   `yaml:"vsync"`
	TripleBuffering    bool   `yaml:"triple_buffering"`
	DirectScanout      bool   `yaml:"direct_scanout"`
	VRR                bool   `yaml:"vrr"`
	MaxRenderTimeMS    int    `yaml:"max_render_time_ms"`
	PowerSaveMode      string `yaml:"power_save_mode"` // performance, balanced, powersave, adaptive
	CustomAnimations   bool   `yaml:"custom_animations"`
	TearFree           bool   `yaml:"tear_free"`
	IndependentUpdates bool   `yaml:"independent_updates"`
	DamageTracking     bool   `yaml:"damage_tracking"`
}

// EffectsConfig tunes the effects pipeline.
type EffectsConfig struct {
	Enabled           bool   `yaml:"enabled"`
	Limit             int    `yaml:"limit"`
	Preset            string `yaml:"preset"`
	DefaultDurationMS int    `yaml:"default_duration_ms"`
	DefaultEasing     string `yaml:"default_easing"`
}

// TapConfig tunes tap and double-tap recognition.
type TapConfig struct {
	MovementThreshold float64 `yaml:"movement_threshold"`
	TimeoutMS         int     `yaml:"timeout_ms"`
	DoubleIntervalMS  int     `yaml:"double_interval_ms"`
}

// LongPressConfig tunes long-press recognition.
type LongPressConfig struct {
	MovementThreshold  float64 `yaml:"movement_threshold"`
	DelayMS            int     `yaml:"delay_ms"`
	FeedbackIntervalMS int     `yaml:"feedback_interval_ms"`
}

// SwipeConfig tunes swipe and edge-swipe recognition.
type SwipeConfig struct {
	MinDistance float64 `yaml:"min_distance"`
	MaxTimeMS   int     `yaml:"max_time_ms"`
	EdgeMargin  float64 `yaml:"edge_margin"`
}

// PinchConfig tunes pinch recognition.
type PinchConfig struct {
	MinSpan        float64 `yaml:"min_span"`
	MinScaleChange float64 `yaml:"min_scale_change"`
}

// RotateConfig tunes rotate recognition.
type RotateConfig struct {
	MinAngle float64 `yaml:"min_angle"`
}

// GesturesConfig tunes the recognizer set.
type GesturesConfig struct {
	Enabled   bool            `yaml:"enabled"`
	Tap       TapConfig       `yaml:"tap"`
	LongPress LongPressConfig `yaml:"long_press"`
	Swipe     SwipeConfig     `yaml:"swipe"`
	Pinch     PinchConfig     `yaml:"pinch"`
	Rotate    RotateConfig    `yaml:"rotate"`
}

// Config is the daemon's full configuration.
type Config struct {
	Compositor CompositorConfig `yaml:"compositor"`
	Effects    EffectsConfig    `yaml:"effects"`
	Gestures   GesturesConfig   `yaml:"gestures"`
	LogLevel   string           `yaml:"log_level"`
}

// DefaultConfig returns the configuration a fresh install runs with.
func DefaultConfig() *Config {
	return &Config{
		Compositor: CompositorConfig{
			VSync:              true,
			TripleBuffering:    true,
			DirectScanout:      true,
			VRR:                true,
			MaxRenderTimeMS:    16,
			PowerSaveMode:      "balanced",
			CustomAnimations:   true,
			TearFree:           true,
			IndependentUpdates: true,
			DamageTracking:     true,
		},
		Effects: EffectsConfig{
			Enabled:           true,
			Limit:             effects.DefaultEffectLimit,
			Preset:            "default",
			DefaultDurationMS: 300,
			DefaultEasing:     "ease-in-out",
		},
		Gestures: GesturesConfig{
			Enabled: true,
			Tap: TapConfig{
				MovementThreshold: 10,
				TimeoutMS:         300,
				DoubleIntervalMS:  400,
			},
			LongPress: LongPressConfig{
				MovementThreshold:  15,
				DelayMS:            500,
				FeedbackIntervalMS: 100,
			},
			Swipe: SwipeConfig{
				MinDistance: 50,
				MaxTimeMS:   500,
				EdgeMargin:  20,
			},
			Pinch: PinchConfig{
				MinSpan:        20,
				MinScaleChange: 0.05,
			},
			Rotate: RotateConfig{
				MinAngle: 0.05,
			},
		},
		LogLevel: "info",
	}
}

// Validate checks every value, returning a ValidationError for the first
// problem found.
func (c *Config) Validate() error {
	if c.Compositor.MaxRenderTimeMS <= 0 {
		return &ValidationError{Path: "compositor.max_render_time_ms", Err: fmt.Errorf("must be > 0")}
	}
	switch c.Compositor.PowerSaveMode {
	case "performance", "balanced", "powersave", "adaptive":
	default:
		return &ValidationError{Path: "compositor.power_save_mode", Err: fmt.Errorf("must be one of: performance, balanced, powersave, adaptive")}
	}
	if c.Effects.Limit < 1 {
		return &ValidationError{Path: "effects.limit", Err: fmt.Errorf("must be >= 1")}
	}
	if c.Effects.DefaultDurationMS <= 0 {
		return &ValidationError{Path: "effects.default_duration_ms", Err: fmt.Errorf("must be > 0")}
	}
	if c.Effects.Preset == "" {
		return &ValidationError{Path: "effects.preset", Err: fmt.Errorf("must not be empty")}
	}
	if _, err := effects.ParseEasing(c.Effects.DefaultEasing); err != nil {
		return &ValidationError{Path: "effects.default_easing", Err: err}
	}
	if c.Gestures.Tap.MovementThreshold <= 0 {
		return &ValidationError{Path: "gestures.tap.movement_threshold", Err: fmt.Errorf("must be > 0")}
	}
	if c.Gestures.Tap.TimeoutMS <= 0 {
		return &ValidationError{Path: "gestures.tap.timeout_ms", Err: fmt.Errorf("must be > 0")}
	}
	if c.Gestures.Tap.DoubleIntervalMS <= 0 {
		return &ValidationError{Path: "gestures.tap.double_interval_ms", Err: fmt.Errorf("must be > 0")}
	}
	if c.Gestures.LongPress.MovementThreshold <= 0 {
		return &ValidationError{Path: "gestures.long_press.movement_threshold", Err: fmt.Errorf("must be > 0")}
	}
	if c.Gestures.LongPress.DelayMS <= 0 {
		return &ValidationError{Path: "gestures.long_press.delay_ms", Err: fmt.Errorf("must be > 0")}
	}
	if c.Gestures.LongPress.FeedbackIntervalMS <= 0 {
		return &ValidationError{Path: "gestures.long_press.feedback_interval_ms", Err: fmt.Errorf("must be > 0")}
	}
	if c.Gestures.Swipe.MinDistance <= 0 {
		return &ValidationError{Path: "gestures.swipe.min_distance", Err: fmt.Errorf("must be > 0")}
	}
	if c.Gestures.Swipe.MaxTimeMS <= 0 {
		return &ValidationError{Path: "gestures.swipe.max_time_ms", Err: fmt.Errorf("must be > 0")}
	}
	if c.Gestures.Swipe.EdgeMargin <= 0 {
		return &ValidationError{Path: "gestures.swipe.edge_margin", Err: fmt.Errorf("must be > 0")}
	}
	if c.Gestures.Pinch.MinSpan <= 0 {
		return &ValidationError{Path: "gestures.pinch.min_span", Err: fmt.Errorf("must be > 0")}
	}
	if c.Gestures.Pinch.MinScaleChange <= 0 {
		return &ValidationError{Path: "gestures.pinch.min_scale_change", Err: fmt.Errorf("must be > 0")}
	}
	if c.Gestures.Rotate.MinAngle <= 0 {
		return &ValidationError{Path: "gestures.rotate.min_angle", Err: fmt.Errorf("must be > 0")}
	}
	switch c.LogLevel {
	case "debug", "info", "warning", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("must be one of: debug, info, warning, error")}
	}
	return nil
}

// Save validates and writes the config to the standard location.
func (c *Config) Save() error {
	if err := c.Validate(); err != nil {
		return err
	}
	path, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// CompositorSettings converts to the compositor's config type.
func (c *Config) CompositorSettings() compositor.Config {
	mode := compositor.PowerBalanced
	switch c.Compositor.PowerSaveMode {
	case "performance":
		mode = compositor.PowerPerformance
	case "powersave":
		mode = compositor.PowerSave
	case "adaptive":
		mode = compositor.PowerAdaptive
	}
	return compositor.Config{
		VSync:              c.Compositor.VSync,
		TripleBuffering:    c.Compositor.TripleBuffering,
		DirectScanout:      c.Compositor.DirectScanout,
		VRR:                c.Compositor.VRR,
		MaxRenderTimeMS:    c.Compositor.MaxRenderTimeMS,
		PowerSave:          mode,
		CustomAnimations:   c.Compositor.CustomAnimations,
		TearFree:           c.Compositor.TearFree,
		IndependentUpdates: c.Compositor.IndependentUpdates,
		DamageTracking:     c.Compositor.DamageTracking,
	}
}

// BuildPipeline constructs the effects pipeline per the config.
func (c *Config) BuildPipeline() (*effects.Pipeline, error) {
	p := effects.NewPipeline()
	p.Manager().SetLimit(c.Effects.Limit)
	p.SetEnabled(c.Effects.Enabled)
	p.SetDefaultDuration(time.Duration(c.Effects.DefaultDurationMS) * time.Millisecond)
	if err := p.ApplyPreset(c.Effects.Preset); err != nil {
		return nil, err
	}
	return p, nil
}

// BuildGestureManager constructs the recognizer set per the config.
// screenBounds feeds edge-swipe recognition. Returns nil when gestures
// are disabled.
func (c *Config) BuildGestureManager(screenBounds geometry.Rect) *gesture.Manager {
	if !c.Gestures.Enabled {
		return nil
	}
	m := gesture.NewManager()
	m.Register(gesture.NewTap(gesture.TapConfig{
		MovementThreshold: c.Gestures.Tap.MovementThreshold,
		TimeoutMS:         uint64(c.Gestures.Tap.TimeoutMS),
	}))
	m.Register(gesture.NewDoubleTap(gesture.DoubleTapConfig{
		MovementThreshold: c.Gestures.Tap.MovementThreshold,
		TapTimeoutMS:      uint64(c.Gestures.Tap.TimeoutMS),
		IntervalMS:        uint64(c.Gestures.Tap.DoubleIntervalMS),
	}))
	m.Register(gesture.NewLongPress(gesture.LongPressConfig{
		MovementThreshold:  c.Gestures.LongPress.MovementThreshold,
		DelayMS:            uint64(c.Gestures.LongPress.DelayMS),
		FeedbackIntervalMS: uint64(c.Gestures.LongPress.FeedbackIntervalMS),
	}))
	m.Register(gesture.NewSwipe(gesture.SwipeConfig{
		MinDistance: c.Gestures.Swipe.MinDistance,
		MaxTimeMS:   uint64(c.Gestures.Swipe.MaxTimeMS),
	}))
	m.Register(gesture.NewPinch(gesture.PinchConfig{
		MinSpan:        c.Gestures.Pinch.MinSpan,
		MinScaleChange: c.Gestures.Pinch.MinScaleChange,
	}))
	m.Register(gesture.NewRotate(gesture.RotateConfig{
		MinAngle: c.Gestures.Rotate.MinAngle,
	}))
	m.Register(gesture.NewEdgeSwipe(gesture.EdgeSwipeConfig{
		Bounds:      screenBounds,
		EdgeMargin:  c.Gestures.Swipe.EdgeMargin,
		MinDistance: c.Gestures.Swipe.MinDistance,
		MaxTimeMS:   uint64(c.Gestures.Swipe.MaxTimeMS),
	}))
	return m
}
