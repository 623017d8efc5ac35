package x11

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/lumenwm/lumen/internal/geometry"
)

// WindowInfo is one X client window as seen by the bridge.
type WindowInfo struct {
	XID      xproto.Window
	Title    string
	AppID    string
	Geometry geometry.Rect
}

// IsNormalWindow checks if a window is a normal application window
func (c *Connection) IsNormalWindow(windowID xproto.Window) bool {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
	if err != nil {
		// If we can't determine type, assume it's normal
		return true
	}

	for _, t := range types {
		if t == "_NET_WM_WINDOW_TYPE_NORMAL" {
			return true
		}
		// Reject desktop, dock, splash, etc.
		if t == "_NET_WM_WINDOW_TYPE_DESKTOP" ||
			t == "_NET_WM_WINDOW_TYPE_DOCK" ||
			t == "_NET_WM_WINDOW_TYPE_SPLASH" ||
			t == "_NET_WM_WINDOW_TYPE_NOTIFICATION" {
			return false
		}
	}

	// If no specific type is set, assume it's normal
	return len(types) == 0
}

// GetActiveWindow returns the X window currently holding focus
func (c *Connection) GetActiveWindow() (xproto.Window, error) {
	return ewmh.ActiveWindowGet(c.XUtil)
}

// ListWindows returns every normal client window with its current
// decorated geometry.
func (c *Connection) ListWindows() ([]WindowInfo, error) {
	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return nil, err
	}

	infos := make([]WindowInfo, 0, len(clients))
	for _, xwin := range clients {
		if !c.IsNormalWindow(xwin) {
			continue
		}

		title, _ := ewmh.WmNameGet(c.XUtil, xwin)
		appID := ""
		if hints, err := icccm.WmClassGet(c.XUtil, xwin); err == nil {
			appID = hints.Class
		}

		geo, err := xwindow.New(c.XUtil, xwin).DecorGeometry()
		if err != nil {
			continue
		}

		infos = append(infos, WindowInfo{
			XID:   xwin,
			Title: title,
			AppID: appID,
			Geometry: geometry.Rect{
				X:      geo.X(),
				Y:      geo.Y(),
				Width:  geo.Width(),
				Height: geo.Height(),
			},
		})
	}

	return infos, nil
}
