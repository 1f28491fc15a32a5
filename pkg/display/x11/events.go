package x11

import (
	"time"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"

	"github.com/odvcencio/placard/pkg/input"
	"github.com/odvcencio/placard/pkg/logging"
)

// pump reads server events until the connection dies, translating them to
// raw input events. Runs as the connection's only reader goroutine.
//
// X11 reports key auto-repeat as a release immediately followed by a press
// with the same keycode and timestamp. When a release arrives the pump
// peeks at the queue: a matching press collapses the pair into a single
// repeat press, anything else lets the release through unchanged.
func (c *Conn) pump() {
	defer close(c.events)

	var stashed xgb.Event
	for {
		var ev xgb.Event
		var xerr xgb.Error
		if stashed != nil {
			ev, stashed = stashed, nil
		} else {
			ev, xerr = c.conn.WaitForEvent()
		}
		if ev == nil && xerr == nil {
			return
		}
		if xerr != nil {
			logging.Debugf("x11: server error: %v", xerr)
			continue
		}

		switch e := ev.(type) {
		case xproto.KeyPressEvent:
			c.events <- input.RawKeyDown{Code: uint32(e.Detail)}

		case xproto.KeyReleaseEvent:
			peek := c.peek()
			if press, ok := peek.(xproto.KeyPressEvent); ok &&
				press.Detail == e.Detail && press.Time == e.Time {
				c.events <- input.RawKeyDown{Code: uint32(press.Detail), Repeat: true}
				continue
			}
			c.events <- input.RawKeyUp{Code: uint32(e.Detail)}
			stashed = peek

		case xproto.ButtonPressEvent:
			c.button(e.Detail, float64(e.EventX), float64(e.EventY), true)

		case xproto.ButtonReleaseEvent:
			c.button(e.Detail, float64(e.EventX), float64(e.EventY), false)

		case xproto.MotionNotifyEvent:
			c.events <- input.RawPointerMove{X: float64(e.EventX), Y: float64(e.EventY)}

		case xproto.LeaveNotifyEvent:
			// Park the pointer outside the window so hover state drops.
			c.events <- input.RawPointerMove{X: -1, Y: -1}

		case xproto.ConfigureNotifyEvent:
			w, h := int(e.Width), int(e.Height)
			if c.surface != nil && c.surface.applyConfigure(w, h) {
				c.events <- input.RawConfigure{Width: w, Height: h, Scale: 1}
			}

		case xproto.ExposeEvent:
			// Coalesced: only the final expose of a series triggers a redraw.
			if e.Count == 0 {
				c.events <- input.RawExpose{}
			}

		case xproto.FocusInEvent:
			if e.Mode == xproto.NotifyModeNormal {
				c.events <- input.RawFocus{In: true}
			}

		case xproto.FocusOutEvent:
			if e.Mode == xproto.NotifyModeNormal {
				c.events <- input.RawFocus{In: false}
			}

		case xproto.ClientMessageEvent:
			if e.Format == 32 && xproto.Atom(e.Data.Data32[0]) == c.wmDelete {
				c.events <- input.RawClose{}
			}

		case xproto.MappingNotifyEvent:
			if e.Request == xproto.MappingKeyboard {
				c.events <- input.RawKeymapChange{}
			}

		case xproto.DestroyNotifyEvent:
			c.events <- input.RawClose{}
		}
	}
}

// peek returns the next queued event if one is already pending. The repeat
// pair travels in the same batch, so one short retry is enough.
func (c *Conn) peek() xgb.Event {
	ev, _ := c.conn.PollForEvent()
	if ev != nil {
		return ev
	}
	time.Sleep(200 * time.Microsecond)
	ev, _ = c.conn.PollForEvent()
	return ev
}

// button translates core-protocol button numbers. Wheel notches are
// buttons 4 and 5, delivered as a press/release pair on press; their
// release events carry no information and are dropped.
func (c *Conn) button(detail xproto.Button, x, y float64, press bool) {
	var b input.Button
	switch detail {
	case 1:
		b = input.ButtonLeft
	case 2:
		b = input.ButtonMiddle
	case 3:
		b = input.ButtonRight
	case 4, 5:
		if !press {
			return
		}
		b = input.ButtonWheelUp
		if detail == 5 {
			b = input.ButtonWheelDown
		}
		c.events <- input.RawButtonDown{Button: b, X: x, Y: y}
		c.events <- input.RawButtonUp{Button: b, X: x, Y: y}
		return
	default:
		return
	}

	if press {
		c.events <- input.RawButtonDown{Button: b, X: x, Y: y}
	} else {
		c.events <- input.RawButtonUp{Button: b, X: x, Y: y}
	}
}
