// Package wayland is the Wayland transport: a hand-rolled client speaking
// the core protocol and xdg-shell over the compositor socket, with
// memfd-backed shm buffers for frames. No libwayland, no cgo.
package wayland

import (
	"net"
	"os"
	"sync"
	"sync/atomic"

	"github.com/odvcencio/placard/pkg/display"
	"github.com/odvcencio/placard/pkg/errors"
	"github.com/odvcencio/placard/pkg/input"
	"github.com/odvcencio/placard/pkg/logging"
)

// Conn is one compositor connection owning one xdg-toplevel.
type Conn struct {
	sock   *net.UnixConn
	wire   *wire
	events chan input.RawEvent

	idMu   sync.Mutex
	nextID uint32
	kinds  map[uint32]objKind

	// Globals, bound while dispatching the initial registry burst.
	registry          uint32
	compositor        uint32
	compositorVersion uint32
	shm               uint32
	wmBase            uint32
	seat              uint32
	seatCaps          uint32
	output            uint32
	keyboard          uint32
	pointer           uint32

	outputScale int32

	// Window objects.
	wlSurface   uint32
	xdgSurface  uint32
	toplevel    uint32
	configured  bool
	pendingW    int
	pendingH    int
	firstExpose bool

	// Roundtrip bookkeeping; handshake phases are single-threaded.
	syncCB   uint32
	syncDone bool

	// Serial of the most recent input event, needed for move grants.
	lastSerial atomic.Uint32

	lastPtrX, lastPtrY float64

	keymapMu  sync.Mutex
	keymap    *input.Keymap
	keymapErr error

	surface *Surface
	pumping atomic.Bool
	closed  atomic.Bool

	closeOnce sync.Once
}

// Connect dials the compositor and performs the initial handshake: bind
// globals, claim input devices, and receive the keymap. The event pump
// starts later, once the surface exists.
func Connect(addr display.WaylandAddr) (*Conn, error) {
	sock, err := dial(addr)
	if err != nil {
		return nil, err
	}

	c := &Conn{
		sock:        sock,
		wire:        newWire(sock),
		events:      make(chan input.RawEvent, 256),
		nextID:      1,
		kinds:       make(map[uint32]objKind),
		outputScale: 1,
	}

	c.registry = c.newID(kindRegistry)
	if err := c.wire.send(displayID, reqDisplayGetRegistry, nil, c.registry); err != nil {
		sock.Close()
		return nil, err
	}
	if err := c.roundtrip(); err != nil {
		sock.Close()
		return nil, err
	}

	if c.compositor == 0 || c.shm == 0 || c.wmBase == 0 {
		sock.Close()
		return nil, errors.New(errors.ErrCodeConnectFailed,
			"compositor is missing a required global").
			WithContext("wl_compositor", c.compositor != 0).
			WithContext("wl_shm", c.shm != 0).
			WithContext("xdg_wm_base", c.wmBase != 0)
	}

	// Second pass settles seat capabilities and output scale.
	if err := c.roundtrip(); err != nil {
		sock.Close()
		return nil, err
	}

	if c.seat != 0 {
		if c.seatCaps&seatCapKeyboard != 0 {
			c.keyboard = c.newID(kindKeyboard)
			if err := c.wire.send(c.seat, reqSeatGetKeyboard, nil, c.keyboard); err != nil {
				sock.Close()
				return nil, err
			}
		}
		if c.seatCaps&seatCapPointer != 0 {
			c.pointer = c.newID(kindPointer)
			if err := c.wire.send(c.seat, reqSeatGetPointer, nil, c.pointer); err != nil {
				sock.Close()
				return nil, err
			}
		}
		// Collect the keymap descriptor.
		if err := c.roundtrip(); err != nil {
			sock.Close()
			return nil, err
		}
	}
	return c, nil
}

func dial(addr display.WaylandAddr) (*net.UnixConn, error) {
	if addr.FD >= 0 {
		f := os.NewFile(uintptr(addr.FD), "wayland-socket")
		if f == nil {
			return nil, errors.New(errors.ErrCodeConnectFailed, "bad inherited wayland socket")
		}
		defer f.Close()
		conn, err := net.FileConn(f)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConnectFailed, "inherited wayland socket unusable")
		}
		uc, ok := conn.(*net.UnixConn)
		if !ok {
			conn.Close()
			return nil, errors.New(errors.ErrCodeConnectFailed, "inherited descriptor is not a unix socket")
		}
		return uc, nil
	}

	conn, err := net.Dial("unix", addr.Path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConnectFailed, "cannot reach compositor").
			WithContext("socket", addr.Path)
	}
	return conn.(*net.UnixConn), nil
}

// Name identifies the backend variant.
func (c *Conn) Name() string { return "wayland" }

// Events returns the raw event stream.
func (c *Conn) Events() <-chan input.RawEvent { return c.events }

// CreateSurface builds the surface/xdg_surface/xdg_toplevel stack, commits
// once without a buffer, and blocks until the compositor's first configure
// grants a size. Only then is the shm pool allocated and the pump started.
func (c *Conn) CreateSurface(opts display.SurfaceOptions) (display.Surface, error) {
	if c.surface != nil {
		return nil, errors.New(errors.ErrCodeSurfaceCreate, "surface already created")
	}

	c.wlSurface = c.newID(kindSurface)
	c.xdgSurface = c.newID(kindXdgSurface)
	c.toplevel = c.newID(kindToplevel)

	steps := []error{
		c.wire.send(c.compositor, reqCompositorCreateSurface, nil, c.wlSurface),
		c.wire.send(c.wmBase, reqWmBaseGetXdgSurface, nil, c.xdgSurface, c.wlSurface),
		c.wire.send(c.xdgSurface, reqXdgSurfaceGetToplevel, nil, c.toplevel),
		c.wire.send(c.toplevel, reqToplevelSetTitle, nil, opts.Title),
		c.wire.send(c.toplevel, reqToplevelSetAppID, nil, opts.Class),
		c.wire.send(c.toplevel, reqToplevelSetMaxSize, nil, int32(opts.Width), int32(opts.Height)),
		c.wire.send(c.toplevel, reqToplevelSetMinSize, nil, int32(opts.Width), int32(opts.Height)),
		c.wire.send(c.wlSurface, reqSurfaceCommit, nil),
	}
	for _, err := range steps {
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeSurfaceCreate, "window setup failed")
		}
	}

	for !c.configured {
		obj, op, body, err := c.wire.recv()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeSurfaceCreate, "lost connection before configure")
		}
		c.dispatch(obj, op, body)
	}
	// One more pass so late scale advertisements land before allocation.
	if err := c.roundtrip(); err != nil {
		return nil, err
	}

	w, h := opts.Width, opts.Height
	if c.pendingW > 0 && c.pendingH > 0 {
		w, h = c.pendingW, c.pendingH
	}
	scale := 1
	if c.outputScale > 1 {
		scale = int(c.outputScale)
	}

	pool, err := c.newShmPool(w*scale, h*scale)
	if err != nil {
		return nil, err
	}
	if err := c.wire.send(c.wlSurface, reqSurfaceSetBufferScale, nil, int32(scale)); err != nil {
		return nil, err
	}

	c.surface = &Surface{c: c, w: w, h: h, scale: scale, pool: pool}
	go c.pump()
	return c.surface, nil
}

// Keymap returns the layout parsed from the compositor's keymap fd.
func (c *Conn) Keymap() (*input.Keymap, error) {
	c.keymapMu.Lock()
	defer c.keymapMu.Unlock()
	if c.keymapErr != nil {
		return nil, c.keymapErr
	}
	if c.keymap == nil {
		return nil, errors.New(errors.ErrCodeKeymap, "compositor sent no keymap")
	}
	return c.keymap, nil
}

// SetCursor is a no-op: without loading a cursor theme there is nothing to
// attach, and the compositor's default pointer is fine for a dialog.
func (c *Conn) SetCursor(display.CursorShape) {}

// BeginMove hands the toplevel to the compositor for an interactive move,
// authorized by the serial of the button press that started the drag.
func (c *Conn) BeginMove() {
	if c.toplevel == 0 || c.seat == 0 {
		return
	}
	err := c.wire.send(c.toplevel, reqToplevelMove, nil, c.seat, c.lastSerial.Load())
	if err != nil {
		logging.Debugf("wayland: move request failed: %v", err)
	}
}

// Close releases the shm mapping and drops the socket; the pump exits on
// the dead socket and closes the event channel.
func (c *Conn) Close() error {
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		if c.surface != nil {
			c.surface.mu.Lock()
			c.surface.pool.destroy(c)
			c.surface.mu.Unlock()
		}
		c.sock.Close()
	})
	return nil
}

// pump reads compositor events for the life of the connection.
func (c *Conn) pump() {
	c.pumping.Store(true)
	defer close(c.events)
	for {
		obj, op, body, err := c.wire.recv()
		if err != nil {
			if !c.closed.Load() {
				c.events <- input.RawError{Err: err}
			}
			return
		}
		c.dispatch(obj, op, body)
	}
}

// roundtrip issues wl_display.sync and dispatches until its callback
// fires, the protocol's barrier for "everything before this has landed".
func (c *Conn) roundtrip() error {
	cb := c.newID(kindCallback)
	c.syncCB, c.syncDone = cb, false
	if err := c.wire.send(displayID, reqDisplaySync, nil, cb); err != nil {
		return err
	}
	for !c.syncDone {
		obj, op, body, err := c.wire.recv()
		if err != nil {
			return err
		}
		c.dispatch(obj, op, body)
	}
	return nil
}

func (c *Conn) newID(kind objKind) uint32 {
	c.idMu.Lock()
	defer c.idMu.Unlock()
	c.nextID++
	c.kinds[c.nextID] = kind
	return c.nextID
}

func (c *Conn) kind(obj uint32) objKind {
	c.idMu.Lock()
	defer c.idMu.Unlock()
	return c.kinds[obj]
}

func (c *Conn) forget(obj uint32) {
	c.idMu.Lock()
	defer c.idMu.Unlock()
	delete(c.kinds, obj)
}

// emit delivers a raw event once the pump owns dispatching. Events during
// the synchronous handshake phases are state updates, not input.
func (c *Conn) emit(ev input.RawEvent) {
	if c.pumping.Load() {
		c.events <- ev
	}
}

var _ display.Conn = (*Conn)(nil)
