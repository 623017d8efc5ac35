package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"

	"github.com/lumenwm/lumen/internal/compositor"
)

// Outputs queries XRandR for the active CRTCs and translates them into
// compositor outputs. Disabled CRTCs are skipped.
func (c *Connection) Outputs() ([]compositor.Output, error) {
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	// Mode table for refresh-rate lookup.
	modes := make(map[randr.Mode]randr.ModeInfo, len(resources.Modes))
	for _, mi := range resources.Modes {
		modes[randr.Mode(mi.Id)] = mi
	}

	var primaryOutput randr.Output
	if prim, err := randr.GetOutputPrimary(c.XUtil.Conn(), c.Root).Reply(); err == nil {
		primaryOutput = prim.Output
	}

	var outputs []compositor.Output
	for i, crtc := range resources.Crtcs {
		crtcInfo, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		if crtcInfo.Width == 0 || crtcInfo.Height == 0 || len(crtcInfo.Outputs) == 0 {
			continue
		}

		out := compositor.Output{
			Name:        fmt.Sprintf("Output%d", i),
			X:           int(crtcInfo.X),
			Y:           int(crtcInfo.Y),
			Width:       int(crtcInfo.Width),
			Height:      int(crtcInfo.Height),
			ScaleFactor: 1,
			Enabled:     true,
		}

		if outputInfo, err := randr.GetOutputInfo(c.XUtil.Conn(), crtcInfo.Outputs[0], resources.ConfigTimestamp).Reply(); err == nil {
			out.Name = string(outputInfo.Name)
			out.PhysicalWidth = int(outputInfo.MmWidth)
			out.PhysicalHeight = int(outputInfo.MmHeight)
		}
		out.Primary = crtcInfo.Outputs[0] == primaryOutput

		if mi, ok := modes[crtcInfo.Mode]; ok {
			out.RefreshRate = refreshRate(mi)
		}

		outputs = append(outputs, out)
	}

	return outputs, nil
}

// refreshRate derives Hz from a RandR mode's pixel clock and totals.
func refreshRate(mi randr.ModeInfo) float64 {
	if mi.Htotal == 0 || mi.Vtotal == 0 {
		return 0
	}
	return float64(mi.DotClock) / (float64(mi.Htotal) * float64(mi.Vtotal))
}

// SyncOutputs replaces the compositor's output set with the current
// XRandR state. Returns the number of outputs registered.
func (c *Connection) SyncOutputs(comp *compositor.Compositor) (int, error) {
	outputs, err := c.Outputs()
	if err != nil {
		return 0, err
	}

	for _, existing := range comp.Outputs() {
		comp.RemoveOutput(existing.ID)
	}
	for i := range outputs {
		o := outputs[i]
		comp.AddOutput(&o)
	}
	return len(outputs), nil
}
