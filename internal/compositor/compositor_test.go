package compositor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lumenwm/lumen/internal/effects"
	"github.com/lumenwm/lumen/internal/geometry"
	"github.com/lumenwm/lumen/internal/gesture"
	"github.com/lumenwm/lumen/internal/input"
)

var t0 = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestCompositor() *Compositor {
	c := New(DefaultConfig(), nil)
	if err := c.Initialize(); err != nil {
		panic(err)
	}
	return c
}

func addWindow(c *Compositor, title string, geo geometry.Rect) WindowID {
	return c.AddWindow(NewWindow(0, title, "test."+title, geo))
}

func TestAddWindowBecomesTopmost(t *testing.T) {
	c := newTestCompositor()

	var created []WindowID
	c.AddHandler(func(ev Event) bool {
		if ev.Kind == WindowCreated {
			created = append(created, ev.Window)
		}
		return true
	})

	a := addWindow(c, "a", geometry.Rect{Width: 100, Height: 100})
	b := addWindow(c, "b", geometry.Rect{Width: 100, Height: 100})

	ws := c.Windows()
	if len(ws) != 2 {
		t.Fatalf("expected 2 windows, got %d", len(ws))
	}
	if ws[1].ID != b {
		t.Fatalf("last added window must be topmost, got %d", ws[1].ID)
	}
	if ws[0].ZOrder != 0 || ws[1].ZOrder != 1 {
		t.Fatalf("z-order not assigned: %d %d", ws[0].ZOrder, ws[1].ZOrder)
	}
	if len(created) != 2 || created[0] != a || created[1] != b {
		t.Fatalf("WindowCreated events wrong: %v", created)
	}
}

func TestRemoveWindowRefocusesTail(t *testing.T) {
	c := newTestCompositor()
	a := addWindow(c, "a", geometry.Rect{Width: 100, Height: 100})
	b := addWindow(c, "b", geometry.Rect{Width: 100, Height: 100})
	cw := addWindow(c, "c", geometry.Rect{Width: 100, Height: 100})

	c.SetActiveWindow(cw)

	var focused []WindowID
	c.AddHandler(func(ev Event) bool {
		if ev.Kind == WindowFocused {
			focused = append(focused, ev.Window)
		}
		return true
	})

	if !c.RemoveWindow(cw) {
		t.Fatalf("RemoveWindow failed")
	}
	// Focus must land on the new tail, which is b.
	active, ok := c.ActiveWindow()
	if !ok || active != b {
		t.Fatalf("expected focus on %d, got %d (%v)", b, active, ok)
	}
	if len(focused) != 1 || focused[0] != b {
		t.Fatalf("expected one WindowFocused(%d), got %v", b, focused)
	}

	// Removing an unfocused window must not move focus.
	c.RemoveWindow(a)
	if active, _ := c.ActiveWindow(); active != b {
		t.Fatalf("focus moved unexpectedly to %d", active)
	}

	// Removing the last window leaves nothing focused.
	c.RemoveWindow(b)
	if _, ok := c.ActiveWindow(); ok {
		t.Fatalf("empty queue must focus nothing")
	}

	if c.RemoveWindow(999) {
		t.Fatalf("unknown id must return false")
	}
}

func TestSetActiveWindowMovesFocusFlag(t *testing.T) {
	c := newTestCompositor()
	a := addWindow(c, "a", geometry.Rect{Width: 100, Height: 100})
	b := addWindow(c, "b", geometry.Rect{Width: 100, Height: 100})

	c.SetActiveWindow(a)
	c.SetActiveWindow(b)

	wa, _ := c.Window(a)
	wb, _ := c.Window(b)
	if wa.Focused {
		t.Fatalf("previous holder must lose the focus flag")
	}
	if !wb.Focused {
		t.Fatalf("target must gain the focus flag")
	}
	if c.SetActiveWindow(999) {
		t.Fatalf("unknown id must return false")
	}
}

func TestMoveResizeCapabilities(t *testing.T) {
	c := newTestCompositor()
	id := addWindow(c, "a", geometry.Rect{X: 10, Y: 10, Width: 100, Height: 100})

	if !c.MoveWindow(id, 50, 60) {
		t.Fatalf("MoveWindow failed")
	}
	if !c.ResizeWindow(id, 200, 150) {
		t.Fatalf("ResizeWindow failed")
	}
	w, _ := c.Window(id)
	if w.Geometry != (geometry.Rect{X: 50, Y: 60, Width: 200, Height: 150}) {
		t.Fatalf("geometry wrong: %+v", w.Geometry)
	}

	if c.ResizeWindow(id, 0, 100) {
		t.Fatalf("zero width must be rejected")
	}

	fixed := NewWindow(0, "fixed", "test.fixed", geometry.Rect{Width: 50, Height: 50})
	fixed.Movable = false
	fixed.Resizable = false
	fid := c.AddWindow(fixed)
	if c.MoveWindow(fid, 1, 1) {
		t.Fatalf("immovable window must refuse the move")
	}
	if c.ResizeWindow(fid, 10, 10) {
		t.Fatalf("non-resizable window must refuse the resize")
	}
}

func TestMaximizeRestoreRoundTrip(t *testing.T) {
	c := newTestCompositor()
	c.AddOutput(NewOutput(0, "DP-1", 1920, 1080, 60))

	orig := geometry.Rect{X: 100, Y: 100, Width: 640, Height: 480}
	id := addWindow(c, "a", orig)

	c.MaximizeWindow(id)
	w, _ := c.Window(id)
	if !w.Maximized {
		t.Fatalf("window must be maximized")
	}
	if w.Geometry != (geometry.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}) {
		t.Fatalf("maximize must cover the output, got %+v", w.Geometry)
	}

	c.RestoreWindow(id)
	w, _ = c.Window(id)
	if w.Maximized || w.Geometry != orig {
		t.Fatalf("restore must return the original geometry, got %+v", w.Geometry)
	}
}

func TestFullscreenToggle(t *testing.T) {
	c := newTestCompositor()
	c.AddOutput(NewOutput(0, "DP-1", 1280, 720, 60))

	orig := geometry.Rect{X: 10, Y: 10, Width: 320, Height: 240}
	id := addWindow(c, "a", orig)

	var events []Event
	c.AddHandler(func(ev Event) bool {
		if ev.Kind == WindowFullscreen {
			events = append(events, ev)
		}
		return true
	})

	c.SetFullscreen(id, true)
	w, _ := c.Window(id)
	if !w.Fullscreen || w.Geometry.Width != 1280 {
		t.Fatalf("fullscreen must cover the output: %+v", w)
	}

	c.SetFullscreen(id, false)
	w, _ = c.Window(id)
	if w.Fullscreen || w.Geometry != orig {
		t.Fatalf("leaving fullscreen must restore geometry: %+v", w.Geometry)
	}

	if len(events) != 2 || !events[0].Enabled || events[1].Enabled {
		t.Fatalf("fullscreen events wrong: %v", events)
	}
}

func TestOpacityClampAndRegions(t *testing.T) {
	c := newTestCompositor()
	id := addWindow(c, "a", geometry.Rect{Width: 100, Height: 100})

	c.SetOpacity(id, 1.7)
	w, _ := c.Window(id)
	if w.Opacity != 1 {
		t.Fatalf("opacity must clamp to 1, got %v", w.Opacity)
	}
	c.SetOpacity(id, -0.2)
	w, _ = c.Window(id)
	if w.Opacity != 0 {
		t.Fatalf("opacity must clamp to 0, got %v", w.Opacity)
	}

	win := NewWindow(0, "r", "test.r", geometry.Rect{Width: 100, Height: 100})
	win.Opacity = 0.9
	win.OpacityRegions = []OpacityRegion{
		{Rect: geometry.Rect{X: 0, Y: 0, Width: 10, Height: 10}, Opacity: 0.3},
	}
	if got := win.OpacityAt(5, 5); got != 0.3 {
		t.Fatalf("region override must win, got %v", got)
	}
	if got := win.OpacityAt(50, 50); got != 0.9 {
		t.Fatalf("base opacity outside regions, got %v", got)
	}
}

func TestRaiseAndWindowAt(t *testing.T) {
	c := newTestCompositor()
	a := addWindow(c, "a", geometry.Rect{X: 0, Y: 0, Width: 100, Height: 100})
	b := addWindow(c, "b", geometry.Rect{X: 50, Y: 50, Width: 100, Height: 100})

	// Overlap region belongs to b (topmost).
	if id, _ := c.WindowAt(75, 75); id != b {
		t.Fatalf("expected topmost %d, got %d", b, id)
	}

	c.RaiseWindow(a)
	if id, _ := c.WindowAt(75, 75); id != a {
		t.Fatalf("after raise expected %d, got %d", a, id)
	}

	// Minimized windows are not hit.
	c.MinimizeWindow(a)
	if id, _ := c.WindowAt(75, 75); id != b {
		t.Fatalf("minimized window must not hit-test, got %d", id)
	}

	if _, ok := c.WindowAt(500, 500); ok {
		t.Fatalf("empty space must not hit")
	}
}

func TestAttachChildRejectsCycles(t *testing.T) {
	c := newTestCompositor()
	a := addWindow(c, "a", geometry.Rect{Width: 10, Height: 10})
	b := addWindow(c, "b", geometry.Rect{Width: 10, Height: 10})
	d := addWindow(c, "d", geometry.Rect{Width: 10, Height: 10})

	if err := c.AttachChild(a, b); err != nil {
		t.Fatalf("AttachChild: %v", err)
	}
	if err := c.AttachChild(b, d); err != nil {
		t.Fatalf("AttachChild: %v", err)
	}
	if err := c.AttachChild(d, a); err == nil {
		t.Fatalf("cycle must be rejected")
	}
	if err := c.AttachChild(a, a); err == nil {
		t.Fatalf("self-parenting must be rejected")
	}

	// Removing the parent orphans the child, never destroys it.
	c.RemoveWindow(b)
	wd, ok := c.Window(d)
	if !ok {
		t.Fatalf("child must survive parent removal")
	}
	if wd.Parent != 0 {
		t.Fatalf("child must be orphaned, parent %d", wd.Parent)
	}
	wa, _ := c.Window(a)
	if len(wa.Children) != 0 {
		t.Fatalf("removed child must leave the parent's list, got %v", wa.Children)
	}
}

func TestCommitBufferAndDamageClear(t *testing.T) {
	c := newTestCompositor()
	id := addWindow(c, "a", geometry.Rect{Width: 64, Height: 64})

	buf := NewBuffer(64, 64, FormatARGB8888, make([]byte, 64*64*4))
	if !c.CommitBuffer(id, buf) {
		t.Fatalf("CommitBuffer failed")
	}
	w, _ := c.Window(id)
	if w.Buffer == nil || len(w.Damage) != 1 {
		t.Fatalf("commit must set the buffer and damage the full window")
	}

	// Full-window damage already covers this rect, so it is absorbed.
	c.AddDamage(id, geometry.Rect{X: 1, Y: 1, Width: 5, Height: 5})
	w, _ = c.Window(id)
	if len(w.Damage) != 1 {
		t.Fatalf("expected covered damage to coalesce, got %d rects", len(w.Damage))
	}

	c.RenderFrame(t0)
	w, _ = c.Window(id)
	if len(w.Damage) != 0 {
		t.Fatalf("rendering must clear damage, got %d rects", len(w.Damage))
	}
	if !w.LastFrameTime.Equal(t0) {
		t.Fatalf("last frame time not stamped")
	}
}

func TestAddDamageClipsAndCoalesces(t *testing.T) {
	c := newTestCompositor()
	id := addWindow(c, "a", geometry.Rect{Width: 64, Height: 64})

	// Overhanging rect is clipped to the 64x64 window.
	c.AddDamage(id, geometry.Rect{X: 60, Y: 60, Width: 20, Height: 20})
	w, _ := c.Window(id)
	if len(w.Damage) != 1 {
		t.Fatalf("expected 1 damage rect, got %d", len(w.Damage))
	}
	if got := w.Damage[0]; got != (geometry.Rect{X: 60, Y: 60, Width: 4, Height: 4}) {
		t.Fatalf("damage not clipped: %+v", got)
	}

	// Fully outside rect is dropped.
	c.AddDamage(id, geometry.Rect{X: 100, Y: 100, Width: 5, Height: 5})
	// A rect covering the first replaces it in place.
	c.AddDamage(id, geometry.Rect{X: 50, Y: 50, Width: 14, Height: 14})
	// A disjoint rect stays separate.
	c.AddDamage(id, geometry.Rect{X: 0, Y: 0, Width: 8, Height: 8})

	w, _ = c.Window(id)
	if len(w.Damage) != 2 {
		t.Fatalf("expected 2 damage rects, got %d: %+v", len(w.Damage), w.Damage)
	}
	if w.Damage[0] != (geometry.Rect{X: 50, Y: 50, Width: 14, Height: 14}) {
		t.Fatalf("covering rect did not replace the covered one: %+v", w.Damage[0])
	}

	if c.AddDamage(999, geometry.Rect{Width: 1, Height: 1}) {
		t.Fatal("damage on unknown window must fail")
	}
}

func TestRenderFrameSkipsHiddenWindows(t *testing.T) {
	rendered := make(map[WindowID]int)
	backend := &recordingBackend{onRender: func(w *Window) error {
		rendered[w.ID]++
		return nil
	}}
	c := New(DefaultConfig(), backend)
	c.Initialize()

	vis := addWindow(c, "vis", geometry.Rect{Width: 10, Height: 10})
	min := addWindow(c, "min", geometry.Rect{Width: 10, Height: 10})
	hid := addWindow(c, "hid", geometry.Rect{Width: 10, Height: 10})
	c.MinimizeWindow(min)
	hidden := NewWindow(0, "h2", "test.h2", geometry.Rect{Width: 10, Height: 10})
	hidden.Visible = false
	h2 := c.AddWindow(hidden)

	c.RenderFrame(t0)
	if rendered[vis] != 1 || rendered[hid] != 1 {
		t.Fatalf("visible windows must render: %v", rendered)
	}
	if rendered[min] != 0 || rendered[h2] != 0 {
		t.Fatalf("minimized/invisible windows must not render: %v", rendered)
	}
}

type recordingBackend struct {
	onRender func(w *Window) error
	beginErr error
	endErr   error
}

func (b *recordingBackend) BeginFrame() error { return b.beginErr }
func (b *recordingBackend) RenderWindow(w *Window) error {
	if b.onRender != nil {
		return b.onRender(w)
	}
	return nil
}
func (b *recordingBackend) EndFrame() error { return b.endErr }

func TestFrameDroppedOnBackendFailure(t *testing.T) {
	backend := &recordingBackend{onRender: func(*Window) error {
		return errors.New("gpu reset")
	}}
	c := New(DefaultConfig(), backend)
	c.Initialize()
	addWindow(c, "a", geometry.Rect{Width: 10, Height: 10})

	var presented, droppedCount int
	c.AddHandler(func(ev Event) bool {
		switch ev.Kind {
		case FramePresented:
			presented++
		case FrameDropped:
			droppedCount++
		}
		return true
	})

	c.RenderFrame(t0)
	if droppedCount != 1 || presented != 0 {
		t.Fatalf("backend failure must drop the frame: presented=%d dropped=%d", presented, droppedCount)
	}

	// The loop keeps going: a later healthy frame presents.
	backend.onRender = nil
	c.RenderFrame(t0.Add(16 * time.Millisecond))
	if presented != 1 {
		t.Fatalf("healthy frame must present after a drop")
	}
	if c.FrameCount() != 2 {
		t.Fatalf("dropped frames still count, got %d", c.FrameCount())
	}
}

func TestFPSWindow(t *testing.T) {
	c := newTestCompositor()

	if c.FPS() != 0 {
		t.Fatalf("no frames yet, FPS must be 0")
	}
	c.RenderFrame(t0)
	if c.FPS() != 0 {
		t.Fatalf("one frame, FPS must still be 0")
	}

	// 50 frames 10ms apart: 49 intervals over 490ms = 100 fps.
	for i := 1; i < 50; i++ {
		c.RenderFrame(t0.Add(time.Duration(i) * 10 * time.Millisecond))
	}
	fps := c.FPS()
	if fps < 99.9 || fps > 100.1 {
		t.Fatalf("expected ~100 fps, got %v", fps)
	}
}

func TestHandlerVeto(t *testing.T) {
	c := newTestCompositor()
	var first, second int
	c.AddHandler(func(ev Event) bool {
		first++
		return false // stop the chain
	})
	c.AddHandler(func(ev Event) bool {
		second++
		return true
	})

	addWindow(c, "a", geometry.Rect{Width: 10, Height: 10})
	if first != 1 || second != 0 {
		t.Fatalf("veto must short-circuit: first=%d second=%d", first, second)
	}
}

func TestOutputLifecycle(t *testing.T) {
	c := newTestCompositor()

	var events []Event
	c.AddHandler(func(ev Event) bool {
		events = append(events, ev)
		return true
	})

	id := c.AddOutput(NewOutput(0, "DP-1", 1920, 1080, 144))
	c.SetOutputEnabled(id, false)
	c.SetOutputMode(id, 2560, 1440, 165)
	c.RemoveOutput(id)

	kinds := make([]EventKind, len(events))
	for i, ev := range events {
		kinds[i] = ev.Kind
	}
	want := []EventKind{OutputAdded, OutputEnabled, OutputModeChanged, OutputRemoved}
	if len(kinds) != len(want) {
		t.Fatalf("expected %v, got %v", want, kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("event %d: expected %v, got %v", i, want[i], kinds[i])
		}
	}
	if events[2].Width != 2560 || events[2].Refresh != 165 {
		t.Fatalf("mode change payload wrong: %+v", events[2])
	}
	if c.RemoveOutput(id) {
		t.Fatalf("double remove must return false")
	}
}

func TestPrimaryOutput(t *testing.T) {
	c := newTestCompositor()
	c.AddOutput(NewOutput(0, "DP-1", 1920, 1080, 60))
	second := NewOutput(0, "HDMI-1", 1280, 720, 60)
	second.Primary = true
	c.AddOutput(second)

	p, ok := c.PrimaryOutput()
	if !ok || p.Name != "HDMI-1" {
		t.Fatalf("expected primary HDMI-1, got %+v", p)
	}
}

func TestProcessInputResolvesTarget(t *testing.T) {
	c := newTestCompositor()
	id := addWindow(c, "a", geometry.Rect{X: 0, Y: 0, Width: 200, Height: 200})

	gm := gesture.NewManager()
	gm.Register(gesture.NewTap(gesture.TapConfig{}))
	c.SetGestureManager(gm)

	pressEv := &input.Event{Kind: input.PointerPress, Button: input.ButtonLeft, X: 50, Y: 50, Timestamp: 0}
	c.ProcessInput(pressEv)
	if pressEv.Target != uint64(id) {
		t.Fatalf("press target not resolved: %d", pressEv.Target)
	}

	releaseEv := &input.Event{Kind: input.PointerRelease, Button: input.ButtonLeft, X: 50, Y: 50, Timestamp: 100}
	infos := c.ProcessInput(releaseEv)
	if len(infos) != 1 || infos[0].Kind != gesture.Tap {
		t.Fatalf("expected a tap, got %v", infos)
	}
	if infos[0].Target != uint64(id) {
		t.Fatalf("gesture must carry the hit-tested window, got %d", infos[0].Target)
	}
}

func TestRunStop(t *testing.T) {
	c := newTestCompositor()

	frames := make(chan struct{}, 1)
	c.AddHandler(func(ev Event) bool {
		if ev.Kind == FramePresented {
			select {
			case frames <- struct{}{}:
			default:
			}
		}
		return true
	})

	done := make(chan error, 1)
	go func() { done <- c.Run(context.Background()) }()

	select {
	case <-frames:
	case <-time.After(2 * time.Second):
		t.Fatalf("no frame presented")
	}
	if !c.Running() {
		t.Fatalf("compositor must report running")
	}

	c.Stop()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not exit after Stop")
	}
}

func TestRunContextCancel(t *testing.T) {
	c := newTestCompositor()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not exit on cancel")
	}
	if c.Running() {
		t.Fatalf("cancel must stop the loop")
	}
}

func TestRunRequiresInitialize(t *testing.T) {
	c := New(DefaultConfig(), nil)
	if err := c.Run(context.Background()); err == nil {
		t.Fatalf("Run before Initialize must fail")
	}
}

func TestEntryEffectsDriveWindowState(t *testing.T) {
	c := newTestCompositor()
	p := effects.NewPipeline()
	c.SetPipeline(p)

	w := NewWindow(0, "splash", "test.splash", geometry.Rect{Width: 200, Height: 100})
	w.Opacity = 0.3
	id := c.AddWindow(w)
	if p.Manager().ActiveCount() == 0 {
		t.Fatal("adding a window must start the preset's entry transitions")
	}

	// Tick well past the default entry duration: the fade must have
	// walked the opacity to fully visible and damaged the window.
	p.Update(time.Now().Add(time.Second))
	got, ok := c.Window(id)
	if !ok {
		t.Fatal("window vanished")
	}
	if got.Opacity != 1 {
		t.Fatalf("opacity = %v, want 1 after the entry fade", got.Opacity)
	}
	if len(got.Damage) == 0 {
		t.Fatal("effect ticks must damage the window for redraw")
	}
	if p.Manager().ActiveCount() != 0 {
		t.Fatal("entry transitions must complete and prune")
	}
}

func TestRemoveWindowCancelsBoundEffects(t *testing.T) {
	c := newTestCompositor()
	p := effects.NewPipeline()
	c.SetPipeline(p)

	id := addWindow(c, "doomed", geometry.Rect{Width: 100, Height: 100})
	keep := addWindow(c, "kept", geometry.Rect{Width: 100, Height: 100})
	if p.Manager().ActiveCount() != 4 {
		t.Fatalf("active = %d, want entry transitions for both windows", p.Manager().ActiveCount())
	}

	if !c.RemoveWindow(id) {
		t.Fatal("RemoveWindow failed")
	}
	p.Update(time.Now())
	for _, w := range c.Windows() {
		if w.ID != keep {
			t.Fatalf("unexpected survivor %d", w.ID)
		}
	}
	if got := p.Manager().ActiveCount(); got != 2 {
		t.Fatalf("active = %d, want only the surviving window's transitions", got)
	}
}
