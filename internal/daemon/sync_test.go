package daemon

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/lumenwm/lumen/internal/compositor"
	"github.com/lumenwm/lumen/internal/geometry"
)

func newTestSync(t *testing.T) (*StateSynchronizer, *compositor.Compositor) {
	t.Helper()
	comp := compositor.New(compositor.DefaultConfig(), nil)
	if err := comp.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewStateSynchronizer(comp, logger), comp
}

func ext(handle uint64, title string, r geometry.Rect) ExternalWindow {
	return ExternalWindow{Handle: handle, Title: title, Geometry: r}
}

func TestSyncAddsNewWindows(t *testing.T) {
	s, comp := newTestSync(t)

	s.Sync([]ExternalWindow{
		ext(100, "editor", geometry.Rect{X: 0, Y: 0, Width: 800, Height: 600}),
		ext(101, "browser", geometry.Rect{X: 800, Y: 0, Width: 1120, Height: 600}),
	})

	if got := len(comp.Windows()); got != 2 {
		t.Fatalf("got %d windows, want 2", got)
	}
	if s.TrackedCount() != 2 {
		t.Errorf("tracked = %d, want 2", s.TrackedCount())
	}

	id, ok := s.WindowID(100)
	if !ok {
		t.Fatal("handle 100 not mapped")
	}
	w, _ := comp.Window(id)
	if w.Title != "editor" || w.SurfaceID != 100 {
		t.Errorf("unexpected bridged window: %+v", w)
	}
}

func TestSyncRemovesVanishedWindows(t *testing.T) {
	s, comp := newTestSync(t)

	s.Sync([]ExternalWindow{
		ext(100, "a", geometry.Rect{Width: 100, Height: 100}),
		ext(101, "b", geometry.Rect{Width: 100, Height: 100}),
	})
	s.Sync([]ExternalWindow{
		ext(101, "b", geometry.Rect{Width: 100, Height: 100}),
	})

	if got := len(comp.Windows()); got != 1 {
		t.Fatalf("got %d windows, want 1", got)
	}
	if _, ok := s.WindowID(100); ok {
		t.Error("handle 100 should be unmapped")
	}
	if _, ok := s.WindowID(101); !ok {
		t.Error("handle 101 should survive")
	}
}

func TestSyncUpdatesGeometry(t *testing.T) {
	s, comp := newTestSync(t)

	s.Sync([]ExternalWindow{ext(100, "a", geometry.Rect{X: 0, Y: 0, Width: 100, Height: 100})})
	s.Sync([]ExternalWindow{ext(100, "a", geometry.Rect{X: 50, Y: 60, Width: 320, Height: 240})})

	id, _ := s.WindowID(100)
	w, _ := comp.Window(id)
	if w.Geometry.X != 50 || w.Geometry.Y != 60 {
		t.Errorf("position = (%d,%d), want (50,60)", w.Geometry.X, w.Geometry.Y)
	}
	if w.Geometry.Width != 320 || w.Geometry.Height != 240 {
		t.Errorf("size = %dx%d, want 320x240", w.Geometry.Width, w.Geometry.Height)
	}
}

func TestSyncTracksFocus(t *testing.T) {
	s, comp := newTestSync(t)

	s.Sync([]ExternalWindow{
		ext(100, "a", geometry.Rect{Width: 100, Height: 100}),
		{Handle: 101, Title: "b", Geometry: geometry.Rect{Width: 100, Height: 100}, Focused: true},
	})

	want, _ := s.WindowID(101)
	if active, ok := comp.ActiveWindow(); !ok || active != want {
		t.Errorf("active window = %v, want %v", active, want)
	}
}

func TestSyncRebridgesExternallyRemovedWindow(t *testing.T) {
	s, comp := newTestSync(t)

	win := ext(100, "a", geometry.Rect{Width: 100, Height: 100})
	s.Sync([]ExternalWindow{win})

	// Someone removes the window behind the synchronizer's back.
	id, _ := s.WindowID(100)
	comp.RemoveWindow(id)

	s.Sync([]ExternalWindow{win})
	s.Sync([]ExternalWindow{win})

	if got := len(comp.Windows()); got != 1 {
		t.Fatalf("got %d windows after re-bridge, want 1", got)
	}
}

func TestReconcilerSurfacesListerErrors(t *testing.T) {
	s, comp := newTestSync(t)
	lister := func() ([]ExternalWindow, error) {
		return nil, errors.New("display gone")
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := NewReconciler(ReconcilerConfig{Logger: logger}, s, lister)
	r.ReconcileNow()

	// A failing lister must not disturb existing state.
	if got := len(comp.Windows()); got != 0 {
		t.Fatalf("got %d windows, want 0", got)
	}
}

func TestReconcilerRunStopsOnCancel(t *testing.T) {
	s, _ := newTestSync(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := NewReconciler(ReconcilerConfig{Interval: time.Millisecond, Logger: logger}, s,
		func() ([]ExternalWindow, error) { return nil, nil })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("reconciler did not stop after cancel")
	}
}
