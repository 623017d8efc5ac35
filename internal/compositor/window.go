package compositor

import (
	"time"

	"github.com/lumenwm/lumen/internal/geometry"
)

// WindowID identifies a window for its whole lifetime. 0 is never a valid
// id; effects and events reference windows by id so their lifetimes stay
// decoupled from the window's.
type WindowID uint64

// OpacityRegion overrides opacity inside a sub-rectangle of the window.
type OpacityRegion struct {
	Rect    geometry.Rect
	Opacity float64
}

// Window is one on-screen surface. The compositor owns every window;
// callers mutate windows only through compositor operations, never by
// writing fields after AddWindow. Parent and Children are ids, not
// pointers, so the ownership graph cannot cycle through references.
type Window struct {
	ID       WindowID
	Title    string
	AppID    string
	Geometry geometry.Rect

	Visible    bool
	Focused    bool
	Minimized  bool
	Maximized  bool
	Fullscreen bool

	Resizable bool
	Movable   bool
	Closable  bool

	Opacity float64
	ZOrder  int

	Parent   WindowID
	Children []WindowID

	SurfaceID uint64
	Buffer    *Buffer

	Damage         []geometry.Rect
	InputRegion    []geometry.Rect
	OpacityRegions []OpacityRegion

	LastFrameTime time.Time

	// Geometry before the last maximize or fullscreen, restored on the
	// way back.
	savedGeometry geometry.Rect
	savedValid    bool
}

// NewWindow creates a visible, movable, resizable, closable window with
// full opacity. A nonzero id must be unique; pass 0 to let AddWindow
// allocate one.
func NewWindow(id WindowID, title, appID string, geo geometry.Rect) *Window {
	return &Window{
		ID:        id,
		Title:     title,
		AppID:     appID,
		Geometry:  geo,
		Visible:   true,
		Resizable: true,
		Movable:   true,
		Closable:  true,
		Opacity:   1,
	}
}

// HitTest reports whether the point falls in the window's input region,
// or in its geometry when no explicit region is set.
func (w *Window) HitTest(x, y int) bool {
	if len(w.InputRegion) == 0 {
		return w.Geometry.Contains(x, y)
	}
	for _, r := range w.InputRegion {
		if r.Contains(x, y) {
			return true
		}
	}
	return false
}

// OpacityAt returns the effective opacity at a point, honoring region
// overrides.
func (w *Window) OpacityAt(x, y int) float64 {
	for _, or := range w.OpacityRegions {
		if or.Rect.Contains(x, y) {
			return or.Opacity
		}
	}
	return w.Opacity
}

// Renderable reports whether the window participates in a frame.
func (w *Window) Renderable() bool {
	return w.Visible && !w.Minimized
}
