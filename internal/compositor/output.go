package compositor

import "github.com/lumenwm/lumen/internal/geometry"

// OutputID identifies a display for its attachment lifetime.
type OutputID uint32

// ColorProfile carries an output's ICC payload when one is configured.
type ColorProfile struct {
	ICC []byte
}

// Output is one physical or logical display. Created when a display is
// attached, removed on detach, and mutated only by the compositor.
type Output struct {
	ID          OutputID
	Name        string
	Width       int
	Height      int
	RefreshRate float64
	ScaleFactor float64
	Enabled     bool
	Primary     bool

	// PhysicalWidth/Height are millimeters.
	PhysicalWidth  int
	PhysicalHeight int

	// X/Y place the output in the shared logical coordinate space.
	X int
	Y int

	Transform geometry.Transform
	GammaLUT  []uint16
	Profile   *ColorProfile
}

// NewOutput creates an enabled output with identity transform and scale 1.
func NewOutput(id OutputID, name string, width, height int, refresh float64) *Output {
	return &Output{
		ID:          id,
		Name:        name,
		Width:       width,
		Height:      height,
		RefreshRate: refresh,
		ScaleFactor: 1,
		Enabled:     true,
		Transform:   geometry.Identity(),
	}
}

// Bounds returns the output's rectangle in logical coordinates.
func (o *Output) Bounds() geometry.Rect {
	return geometry.Rect{X: o.X, Y: o.Y, Width: o.Width, Height: o.Height}
}
