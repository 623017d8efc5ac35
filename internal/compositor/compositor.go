package compositor

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/lumenwm/lumen/internal/effects"
	"github.com/lumenwm/lumen/internal/geometry"
	"github.com/lumenwm/lumen/internal/gesture"
	"github.com/lumenwm/lumen/internal/input"
)

// PowerSaveMode selects the frame pacing policy hint passed to the
// backend.
type PowerSaveMode int

const (
	PowerBalanced PowerSaveMode = iota
	PowerPerformance
	PowerSave
	PowerAdaptive
)

func (m PowerSaveMode) String() string {
	switch m {
	case PowerBalanced:
		return "balanced"
	case PowerPerformance:
		return "performance"
	case PowerSave:
		return "powersave"
	case PowerAdaptive:
		return "adaptive"
	}
	return fmt.Sprintf("powermode(%d)", int(m))
}

// Config carries compositor tuning. These are hints consumed by the
// render backend and the frame loop; none change correctness.
type Config struct {
	VSync              bool
	TripleBuffering    bool
	DirectScanout      bool
	VRR                bool
	MaxRenderTimeMS    int
	PowerSave          PowerSaveMode
	CustomAnimations   bool
	TearFree           bool
	IndependentUpdates bool
	DamageTracking     bool
}

// DefaultConfig returns the tuning a desktop session starts with.
func DefaultConfig() Config {
	return Config{
		VSync:              true,
		TripleBuffering:    true,
		DirectScanout:      true,
		VRR:                true,
		MaxRenderTimeMS:    16,
		PowerSave:          PowerBalanced,
		CustomAnimations:   true,
		TearFree:           true,
		IndependentUpdates: true,
		DamageTracking:     true,
	}
}

// Compositor owns the window and output registries, the render queue, and
// the frame loop. The render queue's order is the z-order: the tail is
// topmost. There is exactly one Compositor per session, constructed once
// and passed to consumers; lifecycle is explicit via Initialize and
// Shutdown.
//
// The mutex guards the registries against the IPC surface reading while
// the frame loop writes; within a frame the loop is the sole writer.
type Compositor struct {
	mu           sync.Mutex
	cfg          Config
	backend      RenderBackend
	windows      map[WindowID]*Window
	outputs      map[OutputID]*Output
	renderQueue  []*Window
	activeWindow WindowID
	nextWindowID WindowID
	handlers     []Handler

	pipeline *effects.Pipeline
	gestures *gesture.Manager

	frameCount uint64
	lastFrame  time.Time
	fps        *fpsCounter

	running     bool
	initialized bool
}

// New creates a compositor over the given backend. A nil backend gets the
// null backend, which accepts every frame.
func New(cfg Config, backend RenderBackend) *Compositor {
	if backend == nil {
		backend = NullBackend{}
	}
	return &Compositor{
		cfg:     cfg,
		backend: backend,
		windows: make(map[WindowID]*Window),
		outputs: make(map[OutputID]*Output),
		fps:     newFPSCounter(),
	}
}

// SetPipeline wires the effects pipeline the frame loop ticks.
func (c *Compositor) SetPipeline(p *effects.Pipeline) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pipeline = p
}

// Pipeline returns the wired effects pipeline, or nil.
func (c *Compositor) Pipeline() *effects.Pipeline {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pipeline
}

// SetGestureManager wires the gesture manager ProcessInput feeds.
func (c *Compositor) SetGestureManager(m *gesture.Manager) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gestures = m
}

// Initialize prepares the compositor for its run loop.
func (c *Compositor) Initialize() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.initialized {
		return fmt.Errorf("compositor already initialized")
	}
	c.initialized = true
	return nil
}

// Shutdown stops the loop and drops all windows and running effects.
func (c *Compositor) Shutdown() {
	c.Stop()
	c.mu.Lock()
	pipeline := c.pipeline
	c.windows = make(map[WindowID]*Window)
	c.renderQueue = nil
	c.activeWindow = 0
	c.initialized = false
	c.mu.Unlock()
	if pipeline != nil {
		pipeline.ClearAll()
	}
}

// AddHandler registers an event handler. Handlers run in registration
// order; one returning false stops the rest for that event.
func (c *Compositor) AddHandler(h Handler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers = append(c.handlers, h)
}

func (c *Compositor) emit(ev Event) {
	c.mu.Lock()
	hs := make([]Handler, len(c.handlers))
	copy(hs, c.handlers)
	c.mu.Unlock()
	for _, h := range hs {
		if !h(ev) {
			break
		}
	}
}

// AddWindow inserts the window into the registry and appends it to the
// render queue, making it topmost. A zero id is allocated. Returns the id.
func (c *Compositor) AddWindow(w *Window) WindowID {
	c.mu.Lock()
	if w.ID == 0 {
		c.nextWindowID++
		w.ID = c.nextWindowID
	} else if w.ID > c.nextWindowID {
		c.nextWindowID = w.ID
	}
	if w.Opacity == 0 {
		w.Opacity = 1
	}
	id := w.ID
	c.windows[id] = w
	c.renderQueue = append(c.renderQueue, w)
	w.ZOrder = len(c.renderQueue) - 1
	pipeline := c.pipeline
	c.mu.Unlock()

	if pipeline != nil && pipeline.Enabled() {
		// Run the active preset's entry stages against the new window,
		// with progress wired back into the window's state. A full
		// manager is not worth failing AddWindow over.
		err := pipeline.ApplyStagesWith(0, uint64(id), time.Now(), func(s effects.Stage, v float64) bool {
			return c.applyEffectProgress(id, s, v)
		})
		if err != nil {
			log.Printf("compositor: entry effects for window %d: %v", id, err)
		}
	}

	c.emit(Event{Kind: WindowCreated, Window: id})
	return id
}

// applyEffectProgress mutates the window from one effect tick: fades
// drive opacity directly, every kind damages the window so the next
// frame redraws it. Returns false once the window is gone, which cancels
// the effect.
func (c *Compositor) applyEffectProgress(id WindowID, s effects.Stage, v float64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	w, ok := c.windows[id]
	if !ok {
		return false
	}
	switch s.Effect {
	case effects.FadeIn:
		w.Opacity = clampUnit(v)
	case effects.FadeOut:
		w.Opacity = clampUnit(1 - v)
	}
	addDamageLocked(w, geometry.Rect{Width: w.Geometry.Width, Height: w.Geometry.Height})
	return true
}

// clampUnit pins overshooting easings into the valid opacity range.
func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// RemoveWindow removes the window from the registry and render queue,
// cancelling effects and animations bound to it. If the removed window
// was focused, focus passes to the new render-queue tail; with an empty
// queue nothing is focused. Children are orphaned, not destroyed.
// Returns false for an unknown id.
func (c *Compositor) RemoveWindow(id WindowID) bool {
	c.mu.Lock()
	w, ok := c.windows[id]
	if !ok {
		c.mu.Unlock()
		return false
	}
	delete(c.windows, id)
	for i, qw := range c.renderQueue {
		if qw == w {
			c.renderQueue = append(c.renderQueue[:i], c.renderQueue[i+1:]...)
			break
		}
	}
	c.reindexLocked()

	if w.Parent != 0 {
		if p, ok := c.windows[w.Parent]; ok {
			p.Children = removeID(p.Children, id)
		}
	}
	for _, childID := range w.Children {
		if ch, ok := c.windows[childID]; ok {
			ch.Parent = 0
		}
	}

	var next WindowID
	refocus := false
	if c.activeWindow == id {
		c.activeWindow = 0
		if n := len(c.renderQueue); n > 0 {
			next = c.renderQueue[n-1].ID
			refocus = true
		}
	}
	pipeline := c.pipeline
	c.mu.Unlock()

	if pipeline != nil {
		// The window id may be reused by an external surface later;
		// nothing bound to the dead window may keep ticking.
		pipeline.Manager().CancelTarget(uint64(id))
		pipeline.Animations().CancelTarget(uint64(id))
	}

	c.emit(Event{Kind: WindowDestroyed, Window: id})
	if refocus {
		c.SetActiveWindow(next)
	}
	return true
}

// SetActiveWindow moves focus to the window, clearing it on the previous
// holder, and emits WindowFocused. Returns false for an unknown id.
func (c *Compositor) SetActiveWindow(id WindowID) bool {
	c.mu.Lock()
	w, ok := c.windows[id]
	if !ok {
		c.mu.Unlock()
		return false
	}
	if prev, ok := c.windows[c.activeWindow]; ok {
		prev.Focused = false
	}
	w.Focused = true
	c.activeWindow = id
	c.mu.Unlock()

	c.emit(Event{Kind: WindowFocused, Window: id})
	return true
}

// ActiveWindow returns the focused window id, or false when nothing has
// focus.
func (c *Compositor) ActiveWindow() (WindowID, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeWindow, c.activeWindow != 0
}

// MoveWindow repositions the window. Immovable windows refuse.
func (c *Compositor) MoveWindow(id WindowID, x, y int) bool {
	c.mu.Lock()
	w, ok := c.windows[id]
	if !ok || !w.Movable {
		c.mu.Unlock()
		return false
	}
	w.Geometry.X = x
	w.Geometry.Y = y
	c.mu.Unlock()

	c.emit(Event{Kind: WindowMoved, Window: id, X: x, Y: y})
	return true
}

// ResizeWindow changes the window's size. Non-resizable windows refuse;
// non-positive dimensions are rejected.
func (c *Compositor) ResizeWindow(id WindowID, width, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	c.mu.Lock()
	w, ok := c.windows[id]
	if !ok || !w.Resizable {
		c.mu.Unlock()
		return false
	}
	w.Geometry.Width = width
	w.Geometry.Height = height
	c.mu.Unlock()

	c.emit(Event{Kind: WindowResized, Window: id, Width: width, Height: height})
	return true
}

// MinimizeWindow hides the window from rendering without unmapping it.
func (c *Compositor) MinimizeWindow(id WindowID) bool {
	c.mu.Lock()
	w, ok := c.windows[id]
	if !ok {
		c.mu.Unlock()
		return false
	}
	w.Minimized = true
	c.mu.Unlock()

	c.emit(Event{Kind: WindowMinimized, Window: id})
	return true
}

// MaximizeWindow grows the window to its output's bounds, remembering the
// previous geometry for RestoreWindow.
func (c *Compositor) MaximizeWindow(id WindowID) bool {
	c.mu.Lock()
	w, ok := c.windows[id]
	if !ok {
		c.mu.Unlock()
		return false
	}
	if !w.Maximized && !w.Fullscreen {
		w.savedGeometry = w.Geometry
		w.savedValid = true
	}
	if b, ok := c.outputBoundsForLocked(w); ok {
		w.Geometry = b
	}
	w.Maximized = true
	w.Minimized = false
	c.mu.Unlock()

	c.emit(Event{Kind: WindowMaximized, Window: id})
	return true
}

// RestoreWindow undoes minimize, maximize, and fullscreen, returning the
// window to its remembered geometry.
func (c *Compositor) RestoreWindow(id WindowID) bool {
	c.mu.Lock()
	w, ok := c.windows[id]
	if !ok {
		c.mu.Unlock()
		return false
	}
	w.Minimized = false
	w.Maximized = false
	w.Fullscreen = false
	if w.savedValid {
		w.Geometry = w.savedGeometry
		w.savedValid = false
	}
	c.mu.Unlock()

	c.emit(Event{Kind: WindowRestored, Window: id})
	return true
}

// SetFullscreen toggles fullscreen, covering the window's output.
func (c *Compositor) SetFullscreen(id WindowID, fullscreen bool) bool {
	c.mu.Lock()
	w, ok := c.windows[id]
	if !ok {
		c.mu.Unlock()
		return false
	}
	if fullscreen {
		if !w.Maximized && !w.Fullscreen {
			w.savedGeometry = w.Geometry
			w.savedValid = true
		}
		if b, ok := c.outputBoundsForLocked(w); ok {
			w.Geometry = b
		}
		w.Fullscreen = true
		w.Minimized = false
	} else {
		w.Fullscreen = false
		if w.savedValid && !w.Maximized {
			w.Geometry = w.savedGeometry
			w.savedValid = false
		}
	}
	c.mu.Unlock()

	c.emit(Event{Kind: WindowFullscreen, Window: id, Enabled: fullscreen})
	return true
}

// SetOpacity sets the window's opacity, clamped to [0,1].
func (c *Compositor) SetOpacity(id WindowID, opacity float64) bool {
	if opacity < 0 {
		opacity = 0
	} else if opacity > 1 {
		opacity = 1
	}
	c.mu.Lock()
	w, ok := c.windows[id]
	if !ok {
		c.mu.Unlock()
		return false
	}
	w.Opacity = opacity
	c.mu.Unlock()

	c.emit(Event{Kind: WindowOpacityChanged, Window: id, Opacity: opacity})
	return true
}

// RaiseWindow moves the window to the top of the render queue.
func (c *Compositor) RaiseWindow(id WindowID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	w, ok := c.windows[id]
	if !ok {
		return false
	}
	for i, qw := range c.renderQueue {
		if qw == w {
			c.renderQueue = append(c.renderQueue[:i], c.renderQueue[i+1:]...)
			c.renderQueue = append(c.renderQueue, w)
			break
		}
	}
	c.reindexLocked()
	return true
}

// AttachChild makes child a child of parent. Cycles and self-parenting
// are rejected.
func (c *Compositor) AttachChild(parent, child WindowID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.windows[parent]
	if !ok {
		return fmt.Errorf("unknown parent window %d", parent)
	}
	ch, ok := c.windows[child]
	if !ok {
		return fmt.Errorf("unknown child window %d", child)
	}
	if parent == child {
		return fmt.Errorf("window %d cannot parent itself", child)
	}
	// Walk up from parent; finding child means the attachment would
	// close a cycle.
	for id := p.Parent; id != 0; {
		if id == child {
			return fmt.Errorf("attaching %d under %d would create a cycle", child, parent)
		}
		anc, ok := c.windows[id]
		if !ok {
			break
		}
		id = anc.Parent
	}
	if ch.Parent != 0 {
		if old, ok := c.windows[ch.Parent]; ok {
			old.Children = removeID(old.Children, child)
		}
	}
	ch.Parent = parent
	p.Children = append(p.Children, child)
	return nil
}

// AddDamage queues a sub-rectangle of the window for redraw. The rect is
// window-local; it is clipped to the window bounds and absorbed into an
// existing damage rect when one already covers it.
func (c *Compositor) AddDamage(id WindowID, r geometry.Rect) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	w, ok := c.windows[id]
	if !ok {
		return false
	}
	addDamageLocked(w, r)
	return true
}

// addDamageLocked clips the rect to the window and coalesces it into the
// damage list. Caller holds c.mu.
func addDamageLocked(w *Window, r geometry.Rect) {
	bounds := geometry.Rect{Width: w.Geometry.Width, Height: w.Geometry.Height}
	clipped, ok := r.Intersect(bounds)
	if !ok || clipped.Empty() {
		return
	}

	for i, existing := range w.Damage {
		if covers(existing, clipped) {
			return
		}
		if covers(clipped, existing) {
			w.Damage[i] = clipped
			return
		}
	}
	w.Damage = append(w.Damage, clipped)
}

// covers reports whether outer fully contains inner.
func covers(outer, inner geometry.Rect) bool {
	hit, ok := inner.Intersect(outer)
	return ok && hit == inner
}

// CommitBuffer replaces the window's pixel payload wholesale and damages
// the full window.
func (c *Compositor) CommitBuffer(id WindowID, buf *Buffer) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	w, ok := c.windows[id]
	if !ok {
		return false
	}
	w.Buffer = buf
	w.Damage = append(w.Damage, geometry.Rect{Width: w.Geometry.Width, Height: w.Geometry.Height})
	return true
}

// WindowAt hit-tests the render queue top-down and returns the topmost
// renderable window containing the point.
func (c *Compositor) WindowAt(x, y int) (WindowID, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := len(c.renderQueue) - 1; i >= 0; i-- {
		w := c.renderQueue[i]
		if w.Renderable() && w.HitTest(x, y) {
			return w.ID, true
		}
	}
	return 0, false
}

// Window returns a copy of the window, or false for an unknown id.
func (c *Compositor) Window(id WindowID) (Window, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	w, ok := c.windows[id]
	if !ok {
		return Window{}, false
	}
	return snapshotWindow(w), true
}

// Windows returns copies of every window in z-order, bottom first.
func (c *Compositor) Windows() []Window {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Window, 0, len(c.renderQueue))
	for _, w := range c.renderQueue {
		out = append(out, snapshotWindow(w))
	}
	return out
}

func snapshotWindow(w *Window) Window {
	cp := *w
	cp.Children = append([]WindowID(nil), w.Children...)
	cp.Damage = append([]geometry.Rect(nil), w.Damage...)
	cp.InputRegion = append([]geometry.Rect(nil), w.InputRegion...)
	cp.OpacityRegions = append([]OpacityRegion(nil), w.OpacityRegions...)
	return cp
}

// AddOutput registers a display. A zero id is allocated from the highest
// seen so far. Returns the id.
func (c *Compositor) AddOutput(o *Output) OutputID {
	c.mu.Lock()
	if o.ID == 0 {
		var max OutputID
		for id := range c.outputs {
			if id > max {
				max = id
			}
		}
		o.ID = max + 1
	}
	if o.ScaleFactor == 0 {
		o.ScaleFactor = 1
	}
	id := o.ID
	c.outputs[id] = o
	c.mu.Unlock()

	c.emit(Event{Kind: OutputAdded, Output: id})
	return id
}

// RemoveOutput detaches a display. Returns false for an unknown id.
func (c *Compositor) RemoveOutput(id OutputID) bool {
	c.mu.Lock()
	_, ok := c.outputs[id]
	if !ok {
		c.mu.Unlock()
		return false
	}
	delete(c.outputs, id)
	c.mu.Unlock()

	c.emit(Event{Kind: OutputRemoved, Output: id})
	return true
}

// SetOutputEnabled toggles a display without detaching it.
func (c *Compositor) SetOutputEnabled(id OutputID, enabled bool) bool {
	c.mu.Lock()
	o, ok := c.outputs[id]
	if !ok {
		c.mu.Unlock()
		return false
	}
	o.Enabled = enabled
	c.mu.Unlock()

	c.emit(Event{Kind: OutputEnabled, Output: id, Enabled: enabled})
	return true
}

// SetOutputMode changes a display's resolution and refresh rate.
func (c *Compositor) SetOutputMode(id OutputID, width, height int, refresh float64) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	c.mu.Lock()
	o, ok := c.outputs[id]
	if !ok {
		c.mu.Unlock()
		return false
	}
	o.Width = width
	o.Height = height
	if refresh > 0 {
		o.RefreshRate = refresh
	}
	c.mu.Unlock()

	c.emit(Event{Kind: OutputModeChanged, Output: id, Width: width, Height: height, Refresh: refresh})
	return true
}

// Output returns a copy of the output, or false for an unknown id.
func (c *Compositor) Output(id OutputID) (Output, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	o, ok := c.outputs[id]
	if !ok {
		return Output{}, false
	}
	return *o, true
}

// Outputs returns copies of every output, sorted by id.
func (c *Compositor) Outputs() []Output {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Output, 0, len(c.outputs))
	for _, o := range c.outputs {
		out = append(out, *o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// PrimaryOutput returns the primary display, or the lowest-id enabled one
// when none is marked primary.
func (c *Compositor) PrimaryOutput() (Output, bool) {
	outs := c.Outputs()
	for _, o := range outs {
		if o.Primary {
			return o, true
		}
	}
	for _, o := range outs {
		if o.Enabled {
			return o, true
		}
	}
	return Output{}, false
}

// outputBoundsForLocked finds the bounds of the output whose area best
// contains the window, falling back to the primary output.
func (c *Compositor) outputBoundsForLocked(w *Window) (geometry.Rect, bool) {
	var best geometry.Rect
	bestArea := 0
	for _, o := range c.outputs {
		if !o.Enabled {
			continue
		}
		if overlap, ok := o.Bounds().Intersect(w.Geometry); ok && overlap.Area() > bestArea {
			best = o.Bounds()
			bestArea = overlap.Area()
		}
	}
	if bestArea > 0 {
		return best, true
	}
	for _, o := range c.outputs {
		if o.Primary && o.Enabled {
			return o.Bounds(), true
		}
	}
	for _, o := range c.outputs {
		if o.Enabled {
			return o.Bounds(), true
		}
	}
	return geometry.Rect{}, false
}

// ProcessInput resolves the event's target window by hit test when unset,
// then feeds the event to the gesture manager. Call from one input
// goroutine only.
func (c *Compositor) ProcessInput(ev *input.Event) []gesture.Info {
	if ev.Target == 0 && (ev.IsPointer() || ev.IsTouch()) {
		if id, ok := c.WindowAt(int(ev.X), int(ev.Y)); ok {
			ev.Target = uint64(id)
		}
	}
	c.mu.Lock()
	g := c.gestures
	c.mu.Unlock()
	if g == nil {
		return nil
	}
	return g.ProcessEvent(ev)
}

// RenderFrame draws one frame: ticks the effects pipeline, walks the
// render queue bottom-up rendering visible, non-minimized windows, clears
// their damage, and advances the FPS counter. A backend failure emits
// FrameDropped instead of an error; the loop keeps running either way.
func (c *Compositor) RenderFrame(now time.Time) {
	c.mu.Lock()
	pipeline := c.pipeline
	c.mu.Unlock()
	if pipeline != nil {
		pipeline.Update(now)
	}

	c.mu.Lock()
	dropped := false
	if err := c.backend.BeginFrame(); err != nil {
		dropped = true
	} else {
		for _, w := range c.renderQueue {
			if !w.Renderable() {
				continue
			}
			if err := c.backend.RenderWindow(w); err != nil {
				dropped = true
				break
			}
			w.Damage = w.Damage[:0]
			w.LastFrameTime = now
		}
		if err := c.backend.EndFrame(); err != nil {
			dropped = true
		}
	}
	c.frameCount++
	c.fps.addFrame(now)
	c.lastFrame = now
	c.mu.Unlock()

	if dropped {
		c.emit(Event{Kind: FrameDropped})
	} else {
		c.emit(Event{Kind: FramePresented})
	}
}

// Run renders continuously until Stop is called or the context is
// cancelled. The sleep between frames is advisory pacing to yield the
// thread, not vsync; presentation cadence belongs to the backend.
func (c *Compositor) Run(ctx context.Context) error {
	c.mu.Lock()
	if !c.initialized {
		c.mu.Unlock()
		return fmt.Errorf("compositor not initialized")
	}
	if c.running {
		c.mu.Unlock()
		return fmt.Errorf("compositor already running")
	}
	c.running = true
	c.mu.Unlock()

	for {
		select {
		case <-ctx.Done():
			c.Stop()
			return ctx.Err()
		default:
		}
		c.mu.Lock()
		running := c.running
		c.mu.Unlock()
		if !running {
			return nil
		}
		c.RenderFrame(time.Now())
		time.Sleep(time.Millisecond)
	}
}

// Stop asks the run loop to exit after the current frame.
func (c *Compositor) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = false
}

// Running reports whether the run loop is live.
func (c *Compositor) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// FPS returns the frame rate over the recent timestamp window; 0 with
// fewer than two frames.
func (c *Compositor) FPS() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fps.fps()
}

// FrameCount returns the number of frames rendered since construction.
func (c *Compositor) FrameCount() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frameCount
}

// Config returns the compositor tuning.
func (c *Compositor) Config() Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg
}

func (c *Compositor) reindexLocked() {
	for i, w := range c.renderQueue {
		w.ZOrder = i
	}
}

func removeID(ids []WindowID, id WindowID) []WindowID {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
