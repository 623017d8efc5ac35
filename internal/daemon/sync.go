package daemon

import (
	"log/slog"

	"github.com/lumenwm/lumen/internal/compositor"
	"github.com/lumenwm/lumen/internal/geometry"
)

// ExternalWindow is one window as reported by the display server bridge.
// Handle is the bridge's native id (an X window, for the X11 bridge).
type ExternalWindow struct {
	Handle   uint64
	Title    string
	AppID    string
	Geometry geometry.Rect
	Focused  bool
}

// StateSynchronizer keeps the compositor's window registry in step with
// the display server. It owns the handle-to-window mapping; nothing else
// creates or removes bridged windows.
type StateSynchronizer struct {
	comp    *compositor.Compositor
	mapping map[uint64]compositor.WindowID
	logger  *slog.Logger
}

// NewStateSynchronizer creates a new state synchronizer.
func NewStateSynchronizer(comp *compositor.Compositor, logger *slog.Logger) *StateSynchronizer {
	return &StateSynchronizer{
		comp:    comp,
		mapping: make(map[uint64]compositor.WindowID),
		logger:  logger,
	}
}

// WindowID returns the compositor id bridged for the given handle.
func (s *StateSynchronizer) WindowID(handle uint64) (compositor.WindowID, bool) {
	id, ok := s.mapping[handle]
	return id, ok
}

// Sync diffs the reported window set against the mapping: new handles are
// registered with the compositor, vanished ones removed, and geometry,
// title and focus of survivors brought up to date.
func (s *StateSynchronizer) Sync(current []ExternalWindow) {
	seen := make(map[uint64]bool, len(current))

	for _, ext := range current {
		seen[ext.Handle] = true

		id, ok := s.mapping[ext.Handle]
		if !ok {
			w := compositor.NewWindow(0, ext.Title, ext.AppID, ext.Geometry)
			w.SurfaceID = ext.Handle
			id = s.comp.AddWindow(w)
			s.mapping[ext.Handle] = id
			s.logger.Info("window appeared",
				"handle", ext.Handle,
				"window", uint64(id),
				"title", ext.Title)
		} else {
			s.updateExisting(id, ext)
		}

		if ext.Focused {
			if active, ok := s.comp.ActiveWindow(); !ok || active != id {
				s.comp.SetActiveWindow(id)
			}
		}
	}

	// Remove windows whose handle vanished.
	for handle, id := range s.mapping {
		if seen[handle] {
			continue
		}
		s.logger.Info("window vanished", "handle", handle, "window", uint64(id))
		s.comp.RemoveWindow(id)
		delete(s.mapping, handle)
	}
}

func (s *StateSynchronizer) updateExisting(id compositor.WindowID, ext ExternalWindow) {
	w, ok := s.comp.Window(id)
	if !ok {
		// Removed behind our back (IPC, effects callback); re-bridge on
		// the next pass.
		delete(s.mapping, ext.Handle)
		return
	}

	if w.Geometry.X != ext.Geometry.X || w.Geometry.Y != ext.Geometry.Y {
		s.comp.MoveWindow(id, ext.Geometry.X, ext.Geometry.Y)
	}
	if w.Geometry.Width != ext.Geometry.Width || w.Geometry.Height != ext.Geometry.Height {
		s.comp.ResizeWindow(id, ext.Geometry.Width, ext.Geometry.Height)
	}
}

// TrackedCount returns the number of bridged windows.
func (s *StateSynchronizer) TrackedCount() int {
	return len(s.mapping)
}
