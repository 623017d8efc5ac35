package x11

import (
	"sync"
	"time"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/lumenwm/lumen/internal/input"
)

// EventSink receives normalized input events from the X11 bridge.
type EventSink func(*input.Event)

// InputBridge translates X11 pointer events on the root window into the
// normalized event stream. Timestamps are X server time (milliseconds),
// which is monotonic, so recognizer timing stays replayable.
type InputBridge struct {
	conn *Connection
	sink EventSink

	mu            sync.Mutex
	lastTimestamp uint64
	lastWallClock time.Time
	idleDone      chan struct{}
}

// NewInputBridge wires pointer events on the root window to sink.
func NewInputBridge(conn *Connection, sink EventSink) (*InputBridge, error) {
	b := &InputBridge{conn: conn, sink: sink}

	root := xwindow.New(conn.XUtil, conn.Root)
	err := root.Listen(
		xproto.EventMaskButtonPress,
		xproto.EventMaskButtonRelease,
		xproto.EventMaskPointerMotion,
	)
	if err != nil {
		return nil, err
	}

	xevent.ButtonPressFun(b.onButtonPress).Connect(conn.XUtil, conn.Root)
	xevent.ButtonReleaseFun(b.onButtonRelease).Connect(conn.XUtil, conn.Root)
	xevent.MotionNotifyFun(b.onMotion).Connect(conn.XUtil, conn.Root)

	return b, nil
}

func (b *InputBridge) onButtonPress(xu *xgbutil.XUtil, ev xevent.ButtonPressEvent) {
	// Wheel motion arrives as button 4/5 presses.
	switch ev.Detail {
	case 4, 5:
		dy := -1.0
		if ev.Detail == 5 {
			dy = 1.0
		}
		b.emit(&input.Event{
			Kind:      input.PointerScroll,
			X:         float64(ev.RootX),
			Y:         float64(ev.RootY),
			DY:        dy,
			Timestamp: b.stamp(uint64(ev.Time)),
			Modifiers: translateModifiers(ev.State),
		})
		return
	}

	b.emit(&input.Event{
		Kind:      input.PointerPress,
		Button:    translateButton(ev.Detail),
		X:         float64(ev.RootX),
		Y:         float64(ev.RootY),
		Timestamp: b.stamp(uint64(ev.Time)),
		Modifiers: translateModifiers(ev.State),
	})
}

func (b *InputBridge) onButtonRelease(xu *xgbutil.XUtil, ev xevent.ButtonReleaseEvent) {
	if ev.Detail == 4 || ev.Detail == 5 {
		return
	}
	b.emit(&input.Event{
		Kind:      input.PointerRelease,
		Button:    translateButton(ev.Detail),
		X:         float64(ev.RootX),
		Y:         float64(ev.RootY),
		Timestamp: b.stamp(uint64(ev.Time)),
		Modifiers: translateModifiers(ev.State),
	})
}

func (b *InputBridge) onMotion(xu *xgbutil.XUtil, ev xevent.MotionNotifyEvent) {
	b.emit(&input.Event{
		Kind:      input.PointerMove,
		X:         float64(ev.RootX),
		Y:         float64(ev.RootY),
		Timestamp: b.stamp(uint64(ev.Time)),
		Modifiers: translateModifiers(ev.State),
	})
}

func (b *InputBridge) emit(ev *input.Event) {
	ev.SourceDevice = "pointer:0"
	b.sink(ev)
}

// stamp records the latest X timestamp so idle ticks can extrapolate
// between real events.
func (b *InputBridge) stamp(ts uint64) uint64 {
	b.mu.Lock()
	b.lastTimestamp = ts
	b.lastWallClock = time.Now()
	b.mu.Unlock()
	return ts
}

// StartIdleTicker emits Idle events every interval so time-based
// recognizers fire without pointer motion. The timestamp continues the
// X server clock from the last real event.
func (b *InputBridge) StartIdleTicker(interval time.Duration) {
	b.mu.Lock()
	if b.idleDone != nil {
		b.mu.Unlock()
		return
	}
	done := make(chan struct{})
	b.idleDone = done
	b.mu.Unlock()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				b.mu.Lock()
				if b.lastTimestamp == 0 {
					b.mu.Unlock()
					continue
				}
				ts := b.lastTimestamp + uint64(time.Since(b.lastWallClock).Milliseconds())
				b.mu.Unlock()
				b.sink(&input.Event{
					Kind:         input.Idle,
					Timestamp:    ts,
					SourceDevice: "pointer:0",
				})
			}
		}
	}()
}

// StopIdleTicker stops the idle tick goroutine.
func (b *InputBridge) StopIdleTicker() {
	b.mu.Lock()
	if b.idleDone != nil {
		close(b.idleDone)
		b.idleDone = nil
	}
	b.mu.Unlock()
}

func translateButton(detail xproto.Button) input.Button {
	switch detail {
	case 1:
		return input.ButtonLeft
	case 2:
		return input.ButtonMiddle
	case 3:
		return input.ButtonRight
	case 8:
		return input.ButtonBack
	case 9:
		return input.ButtonForward
	}
	return input.ButtonNone
}

func translateModifiers(state uint16) input.Modifiers {
	var mods input.Modifiers
	if state&xproto.ModMaskShift != 0 {
		mods |= input.ModShift
	}
	if state&xproto.ModMaskLock != 0 {
		mods |= input.ModCapsLock
	}
	if state&xproto.ModMaskControl != 0 {
		mods |= input.ModCtrl
	}
	if state&xproto.ModMask1 != 0 {
		mods |= input.ModAlt
	}
	if state&xproto.ModMask2 != 0 {
		mods |= input.ModNumLock
	}
	if state&xproto.ModMask4 != 0 {
		mods |= input.ModSuper
	}
	return mods
}
