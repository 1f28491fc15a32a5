package wayland

import (
	"golang.org/x/sys/unix"

	"github.com/odvcencio/placard/pkg/errors"
	"github.com/odvcencio/placard/pkg/input"
	"github.com/odvcencio/placard/pkg/logging"
)

// dispatch routes one decoded message. It runs on whichever goroutine is
// reading the socket at the time: Connect and CreateSurface during the
// handshake, the pump afterwards. Never both at once.
func (c *Conn) dispatch(obj uint32, op uint16, body []byte) {
	if obj == displayID {
		c.displayEvent(op, body)
		return
	}

	switch c.kind(obj) {
	case kindRegistry:
		if op == evRegistryGlobal {
			name := ru32(body, 0)
			iface, off := rstring(body, 4)
			version := ru32(body, off)
			c.bindGlobal(name, iface, version)
		}
	case kindCallback:
		if obj == c.syncCB {
			c.syncDone = true
		}
		c.forget(obj)
	case kindWmBase:
		if op == evWmBasePing {
			serial := ru32(body, 0)
			if err := c.wire.send(c.wmBase, reqWmBasePong, nil, serial); err != nil {
				logging.Debugf("wayland: pong failed: %v", err)
			}
		}
	case kindXdgSurface:
		if op == evXdgSurfaceConfigure {
			c.xdgConfigure(ru32(body, 0))
		}
	case kindToplevel:
		switch op {
		case evToplevelConfigure:
			w, h := ri32(body, 0), ri32(body, 4)
			if w > 0 && h > 0 {
				c.pendingW, c.pendingH = int(w), int(h)
			}
		case evToplevelClose:
			c.emit(input.RawClose{})
		}
	case kindSeat:
		if op == evSeatCapabilities {
			c.seatCaps = ru32(body, 0)
		}
	case kindOutput:
		if op == evOutputScale {
			c.applyScale(ri32(body, 0))
		}
	case kindSurface:
		if op == evSurfacePreferredBufferScale {
			c.applyScale(ri32(body, 0))
		}
	case kindKeyboard:
		c.keyboardEvent(op, body)
	case kindPointer:
		c.pointerEvent(op, body)
	case kindBuffer, kindShm, kindShmPool:
		// wl_buffer.release and wl_shm.format carry nothing we act on:
		// there is a single buffer and the pool is always ARGB8888.
	}
}

func (c *Conn) displayEvent(op uint16, body []byte) {
	switch op {
	case evDisplayError:
		target := ru32(body, 0)
		code := ru32(body, 4)
		msg, _ := rstring(body, 8)
		err := errors.Newf(errors.ErrCodeProtocol,
			"compositor error on object %d: %s (code %d)", target, msg, code)
		logging.Errorf("wayland: %v", err)
		c.emit(input.RawError{Err: err})
	case evDisplayDeleteID:
		c.forget(ru32(body, 0))
	}
}

// bindGlobal binds the globals placard needs, at the lower of the version
// it speaks and the version advertised.
func (c *Conn) bindGlobal(name uint32, iface string, advertised uint32) {
	want, ok := bindVersions[iface]
	if !ok {
		return
	}
	version := want
	if advertised < version {
		version = advertised
	}

	var id uint32
	switch iface {
	case "wl_compositor":
		id = c.newID(kindCompositor)
		c.compositor = id
		c.compositorVersion = version
	case "wl_shm":
		id = c.newID(kindShm)
		c.shm = id
	case "xdg_wm_base":
		id = c.newID(kindWmBase)
		c.wmBase = id
	case "wl_seat":
		if c.seat != 0 {
			return
		}
		id = c.newID(kindSeat)
		c.seat = id
	case "wl_output":
		if advertised < 2 || c.output != 0 {
			return
		}
		id = c.newID(kindOutput)
		c.output = id
	default:
		return
	}

	if err := c.wire.send(c.registry, reqRegistryBind, nil, name, iface, version, id); err != nil {
		logging.Warnf("wayland: bind %s failed: %v", iface, err)
	}
}

// xdgConfigure acks the configure and applies any size the compositor
// insisted on during the preceding toplevel configure.
func (c *Conn) xdgConfigure(serial uint32) {
	if err := c.wire.send(c.xdgSurface, reqXdgSurfaceAckConfigure, nil, serial); err != nil {
		logging.Debugf("wayland: ack_configure failed: %v", err)
	}
	c.configured = true

	if c.surface == nil {
		return
	}
	if c.pendingW > 0 && c.pendingH > 0 {
		if c.surface.applyConfigure(c.pendingW, c.pendingH) {
			w, h, scale := c.surface.geometry()
			c.emit(input.RawConfigure{Width: w, Height: h, Scale: scale})
			return
		}
	}
	c.emit(input.RawExpose{})
}

// applyScale records a new integer scale and, once a surface exists,
// reallocates its buffer at the new pixel size.
func (c *Conn) applyScale(factor int32) {
	if factor < 1 || factor == c.outputScale {
		return
	}
	c.outputScale = factor
	if c.surface == nil {
		return
	}
	if err := c.surface.applyScaleChange(int(factor)); err != nil {
		logging.Warnf("wayland: scale change to %d failed: %v", factor, err)
		return
	}
	w, h, scale := c.surface.geometry()
	c.emit(input.RawConfigure{Width: w, Height: h, Scale: scale})
}

func (c *Conn) keyboardEvent(op uint16, body []byte) {
	switch op {
	case evKeyboardKeymap:
		format := ru32(body, 0)
		size := ru32(body, 4)
		fd, ok := c.wire.takeFD()
		if !ok {
			logging.Warnf("wayland: keymap event without descriptor")
			return
		}
		c.loadKeymap(format, fd, int(size))
	case evKeyboardEnter:
		c.lastSerial.Store(ru32(body, 0))
		c.emit(input.RawFocus{In: true})
	case evKeyboardLeave:
		c.lastSerial.Store(ru32(body, 0))
		c.emit(input.RawFocus{In: false})
	case evKeyboardKey:
		c.lastSerial.Store(ru32(body, 0))
		// Keymaps address keys at evdev code + 8, an X11 inheritance
		// the xkb format keeps.
		code := ru32(body, 8) + 8
		if ru32(body, 12) == 1 {
			c.emit(input.RawKeyDown{Code: code})
		} else {
			c.emit(input.RawKeyUp{Code: code})
		}
	case evKeyboardModifiers:
		locked := ru32(body, 12)
		c.emit(input.RawLockSeed{
			Caps: locked&modMaskCaps != 0,
			Num:  locked&modMaskNum != 0,
		})
	}
}

func (c *Conn) pointerEvent(op uint16, body []byte) {
	switch op {
	case evPointerEnter:
		c.lastSerial.Store(ru32(body, 0))
		c.lastPtrX = rfixed(body, 8).float()
		c.lastPtrY = rfixed(body, 12).float()
		c.emit(input.RawPointerMove{X: c.lastPtrX, Y: c.lastPtrY})
	case evPointerLeave:
		c.lastSerial.Store(ru32(body, 0))
		// Park the pointer outside the surface so hover state drops.
		c.lastPtrX, c.lastPtrY = -1, -1
		c.emit(input.RawPointerMove{X: -1, Y: -1})
	case evPointerMotion:
		c.lastPtrX = rfixed(body, 4).float()
		c.lastPtrY = rfixed(body, 8).float()
		c.emit(input.RawPointerMove{X: c.lastPtrX, Y: c.lastPtrY})
	case evPointerButton:
		c.lastSerial.Store(ru32(body, 0))
		var btn input.Button
		switch ru32(body, 8) {
		case btnLeft:
			btn = input.ButtonLeft
		case btnRight:
			btn = input.ButtonRight
		case btnMiddle:
			btn = input.ButtonMiddle
		default:
			return
		}
		if ru32(body, 12) == 1 {
			c.emit(input.RawButtonDown{Button: btn, X: c.lastPtrX, Y: c.lastPtrY})
		} else {
			c.emit(input.RawButtonUp{Button: btn, X: c.lastPtrX, Y: c.lastPtrY})
		}
	case evPointerAxis:
		if ru32(body, 4) != 0 {
			return // only vertical scroll drives the widgets
		}
		btn := input.ButtonWheelUp
		if rfixed(body, 8) > 0 {
			btn = input.ButtonWheelDown
		}
		c.emit(input.RawButtonDown{Button: btn, X: c.lastPtrX, Y: c.lastPtrY})
		c.emit(input.RawButtonUp{Button: btn, X: c.lastPtrX, Y: c.lastPtrY})
	}
}

// loadKeymap maps the keymap fd the compositor shared and parses it.
func (c *Conn) loadKeymap(format uint32, fd int, size int) {
	defer unix.Close(fd)

	if format != keymapFormatXKBv1 {
		c.storeKeymap(nil, errors.Newf(errors.ErrCodeKeymap, "unsupported keymap format %d", format))
		return
	}
	data, err := unix.Mmap(fd, 0, size, unix.PROT_READ, unix.MAP_PRIVATE)
	if err != nil {
		c.storeKeymap(nil, errors.Wrap(err, errors.ErrCodeKeymap, "cannot map keymap"))
		return
	}
	defer unix.Munmap(data)

	km, err := input.ParseXKB(data)
	if err != nil {
		c.storeKeymap(nil, err)
		return
	}
	c.storeKeymap(km, nil)
	c.emit(input.RawKeymapChange{})
}

func (c *Conn) storeKeymap(km *input.Keymap, err error) {
	c.keymapMu.Lock()
	c.keymap, c.keymapErr = km, err
	c.keymapMu.Unlock()
	if err != nil {
		logging.Warnf("wayland: keymap unusable: %v", err)
	}
}
