package compositor

// RenderBackend rasterizes frames. The compositor does not care which
// graphics API backs it, only that it can accept a frame and report
// success or failure; a failed frame surfaces as a FrameDropped event, not
// an error, because the frame loop must keep running.
type RenderBackend interface {
	// BeginFrame opens a frame.
	BeginFrame() error
	// RenderWindow draws one window. Called in z-order, bottom first,
	// only for renderable windows.
	RenderWindow(w *Window) error
	// EndFrame presents the frame.
	EndFrame() error
}

// NullBackend accepts every frame and draws nothing. Used headless and in
// tests.
type NullBackend struct{}

func (NullBackend) BeginFrame() error          { return nil }
func (NullBackend) RenderWindow(*Window) error { return nil }
func (NullBackend) EndFrame() error            { return nil }
