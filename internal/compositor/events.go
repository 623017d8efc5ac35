package compositor

import "fmt"

// EventKind discriminates compositor events.
type EventKind int

const (
	WindowCreated EventKind = iota
	WindowDestroyed
	WindowFocused
	WindowMoved
	WindowResized
	WindowMinimized
	WindowMaximized
	WindowRestored
	WindowFullscreen
	WindowOpacityChanged
	OutputAdded
	OutputRemoved
	OutputEnabled
	OutputModeChanged
	FramePresented
	FrameDropped
)

func (k EventKind) String() string {
	switch k {
	case WindowCreated:
		return "window-created"
	case WindowDestroyed:
		return "window-destroyed"
	case WindowFocused:
		return "window-focused"
	case WindowMoved:
		return "window-moved"
	case WindowResized:
		return "window-resized"
	case WindowMinimized:
		return "window-minimized"
	case WindowMaximized:
		return "window-maximized"
	case WindowRestored:
		return "window-restored"
	case WindowFullscreen:
		return "window-fullscreen"
	case WindowOpacityChanged:
		return "window-opacity-changed"
	case OutputAdded:
		return "output-added"
	case OutputRemoved:
		return "output-removed"
	case OutputEnabled:
		return "output-enabled"
	case OutputModeChanged:
		return "output-mode-changed"
	case FramePresented:
		return "frame-presented"
	case FrameDropped:
		return "frame-dropped"
	}
	return fmt.Sprintf("event(%d)", int(k))
}

// Event is one compositor notification. Fields beyond Kind are populated
// per kind: Window for window events, Output for output events, X/Y for
// moves, Width/Height for resizes and mode changes, Refresh for mode
// changes, Enabled for output enable toggles and fullscreen state, Opacity
// for opacity changes.
type Event struct {
	Kind    EventKind
	Window  WindowID
	Output  OutputID
	X       int
	Y       int
	Width   int
	Height  int
	Refresh float64
	Enabled bool
	Opacity float64
}

// Handler observes compositor events. Returning false stops the remaining
// handlers for that event; the return value means "continue propagation",
// not success.
type Handler func(Event) bool
