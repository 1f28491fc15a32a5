// Package x11 is the X11 transport: one connection, one top-level window,
// software-rendered frames pushed with PutImage. Written against the core
// protocol only, no toolkit above it.
package x11

import (
	"os"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"

	"github.com/odvcencio/placard/pkg/display"
	"github.com/odvcencio/placard/pkg/errors"
	"github.com/odvcencio/placard/pkg/input"
	"github.com/odvcencio/placard/pkg/logging"
)

// Cursor font glyph indices, stable since X11R1.
const (
	glyphLeftPtr = 68
	glyphXterm   = 152
)

// _NET_WM_MOVERESIZE direction for an interactive move.
const netMoveResizeMove = 8

// Conn is one X server connection owning one dialog window.
type Conn struct {
	conn   *xgb.Conn
	screen *xproto.ScreenInfo

	atomsMu sync.RWMutex
	atoms   map[string]xproto.Atom

	win      xproto.Window
	gc       xproto.Gcontext
	wmDelete xproto.Atom

	cursorsMu sync.Mutex
	cursors   map[display.CursorShape]xproto.Cursor

	events  chan input.RawEvent
	surface *Surface

	closeOnce sync.Once
}

// Connect dials the X server named by addr, or $DISPLAY when addr is empty.
func Connect(addr string) (*Conn, error) {
	xc, err := xgb.NewConnDisplay(addr)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConnectFailed, "cannot reach X server").
			WithContext("display", os.Getenv("DISPLAY"))
	}

	setup := xproto.Setup(xc)
	screen := setup.DefaultScreen(xc)

	c := &Conn{
		conn:    xc,
		screen:  screen,
		atoms:   make(map[string]xproto.Atom),
		cursors: make(map[display.CursorShape]xproto.Cursor),
		events:  make(chan input.RawEvent, 256),
	}

	c.seedLockState()
	go c.pump()
	return c, nil
}

// Name identifies the backend variant.
func (c *Conn) Name() string { return "x11" }

// Events returns the raw event stream.
func (c *Conn) Events() <-chan input.RawEvent { return c.events }

// CreateSurface makes the dialog window, sets its WM properties, and maps
// it. The window is fixed-size: min and max size hints both carry the
// requested geometry.
func (c *Conn) CreateSurface(opts display.SurfaceOptions) (display.Surface, error) {
	if c.surface != nil {
		return nil, errors.New(errors.ErrCodeSurfaceCreate, "surface already created")
	}

	win, err := xproto.NewWindowId(c.conn)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSurfaceCreate, "window id allocation failed")
	}
	c.win = win

	mask := uint32(xproto.EventMaskExposure |
		xproto.EventMaskKeyPress | xproto.EventMaskKeyRelease |
		xproto.EventMaskButtonPress | xproto.EventMaskButtonRelease |
		xproto.EventMaskPointerMotion | xproto.EventMaskLeaveWindow |
		xproto.EventMaskStructureNotify | xproto.EventMaskFocusChange)

	err = xproto.CreateWindowChecked(c.conn, c.screen.RootDepth, win, c.screen.Root,
		0, 0, uint16(opts.Width), uint16(opts.Height), 0,
		xproto.WindowClassInputOutput, c.screen.RootVisual,
		xproto.CwEventMask, []uint32{mask}).Check()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSurfaceCreate, "CreateWindow failed")
	}

	gcid, err := xproto.NewGcontextId(c.conn)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSurfaceCreate, "gc id allocation failed")
	}
	c.gc = gcid
	if err := xproto.CreateGCChecked(c.conn, gcid, xproto.Drawable(win), 0, nil).Check(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSurfaceCreate, "CreateGC failed")
	}

	if err := c.setProperties(opts); err != nil {
		return nil, err
	}

	xproto.MapWindow(c.conn, win)

	c.surface = newSurface(c, opts.Width, opts.Height)
	return c.surface, nil
}

// setProperties stamps the window with everything a window manager needs:
// titles, class, close-button protocol, dialog type, fixed-size hints, pid.
func (c *Conn) setProperties(opts display.SurfaceOptions) error {
	utf8, err := c.atom("UTF8_STRING")
	if err != nil {
		return err
	}
	netName, err := c.atom("_NET_WM_NAME")
	if err != nil {
		return err
	}
	c.prop(xproto.AtomWmName, xproto.AtomString, 8, []byte(opts.Title))
	c.prop(netName, utf8, 8, []byte(opts.Title))

	class := append(append([]byte(opts.Class), 0), append([]byte(titleCase(opts.Class)), 0)...)
	c.prop(xproto.AtomWmClass, xproto.AtomString, 8, class)

	protocols, err := c.atom("WM_PROTOCOLS")
	if err != nil {
		return err
	}
	c.wmDelete, err = c.atom("WM_DELETE_WINDOW")
	if err != nil {
		return err
	}
	c.prop(protocols, xproto.AtomAtom, 32, atom32(c.wmDelete))

	winType, err := c.atom("_NET_WM_WINDOW_TYPE")
	if err != nil {
		return err
	}
	dialogType, err := c.atom("_NET_WM_WINDOW_TYPE_DIALOG")
	if err != nil {
		return err
	}
	c.prop(winType, xproto.AtomAtom, 32, atom32(dialogType))

	c.prop(xproto.AtomWmNormalHints, xproto.AtomWmSizeHints, 32,
		sizeHints(opts.Width, opts.Height))

	if pid, err := c.atom("_NET_WM_PID"); err == nil {
		c.prop(pid, xproto.AtomCardinal, 32, u32bytes(uint32(os.Getpid())))
	}
	return nil
}

// Keymap fetches the server's full keycode-to-keysym table.
func (c *Conn) Keymap() (*input.Keymap, error) {
	setup := xproto.Setup(c.conn)
	min := setup.MinKeycode
	count := byte(setup.MaxKeycode - min + 1)

	reply, err := xproto.GetKeyboardMapping(c.conn, min, count).Reply()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeKeymap, "GetKeyboardMapping failed")
	}

	syms := make([]uint32, len(reply.Keysyms))
	for i, s := range reply.Keysyms {
		syms[i] = uint32(s)
	}
	return input.NewKeymapFromKeysyms(uint32(min), int(reply.KeysymsPerKeycode), syms), nil
}

// seedLockState reads the current modifier mask so caps/num lock start
// from the server's truth rather than from "off".
func (c *Conn) seedLockState() {
	reply, err := xproto.QueryPointer(c.conn, c.screen.Root).Reply()
	if err != nil {
		logging.Debugf("x11: lock state query failed: %v", err)
		return
	}
	c.events <- input.RawLockSeed{
		Caps: reply.Mask&xproto.KeyButMaskLock != 0,
		Num:  reply.Mask&xproto.KeyButMaskMod2 != 0,
	}
}

// SetCursor switches the window cursor between the arrow and the I-beam,
// creating each glyph cursor once.
func (c *Conn) SetCursor(shape display.CursorShape) {
	if c.win == 0 {
		return
	}
	cur, err := c.glyphCursor(shape)
	if err != nil {
		logging.Debugf("x11: cursor create failed: %v", err)
		return
	}
	xproto.ChangeWindowAttributes(c.conn, c.win, xproto.CwCursor, []uint32{uint32(cur)})
}

func (c *Conn) glyphCursor(shape display.CursorShape) (xproto.Cursor, error) {
	c.cursorsMu.Lock()
	defer c.cursorsMu.Unlock()
	if cur, ok := c.cursors[shape]; ok {
		return cur, nil
	}

	glyph := uint16(glyphLeftPtr)
	if shape == display.CursorText {
		glyph = glyphXterm
	}

	font, err := xproto.NewFontId(c.conn)
	if err != nil {
		return 0, err
	}
	if err := xproto.OpenFontChecked(c.conn, font, uint16(len("cursor")), "cursor").Check(); err != nil {
		return 0, err
	}
	defer xproto.CloseFont(c.conn, font)

	cur, err := xproto.NewCursorId(c.conn)
	if err != nil {
		return 0, err
	}
	err = xproto.CreateGlyphCursorChecked(c.conn, cur, font, font, glyph, glyph+1,
		0, 0, 0, 0xffff, 0xffff, 0xffff).Check()
	if err != nil {
		return 0, err
	}
	c.cursors[shape] = cur
	return cur, nil
}

// BeginMove asks the window manager to start an interactive move, as if
// the user had grabbed the title bar. The pointer grab our button press
// holds must be released first or the WM cannot take over.
func (c *Conn) BeginMove() {
	if c.win == 0 {
		return
	}
	pointer, err := xproto.QueryPointer(c.conn, c.screen.Root).Reply()
	if err != nil {
		logging.Debugf("x11: move aborted, pointer query failed: %v", err)
		return
	}
	moveResize, err := c.atom("_NET_WM_MOVERESIZE")
	if err != nil {
		return
	}

	xproto.UngrabPointer(c.conn, xproto.TimeCurrentTime)

	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: c.win,
		Type:   moveResize,
		Data: xproto.ClientMessageDataUnionData32New([]uint32{
			uint32(pointer.RootX),
			uint32(pointer.RootY),
			netMoveResizeMove,
			uint32(xproto.ButtonIndex1),
			1, // source: normal application
		}),
	}
	mask := uint32(xproto.EventMaskSubstructureRedirect | xproto.EventMaskSubstructureNotify)
	xproto.SendEvent(c.conn, false, c.screen.Root, mask, string(ev.Bytes()))
}

// Close tears down the connection. The pump notices the dead socket and
// closes the event channel.
func (c *Conn) Close() error {
	c.closeOnce.Do(func() {
		c.conn.Close()
	})
	return nil
}

// atom interns an atom by name, caching the answer.
func (c *Conn) atom(name string) (xproto.Atom, error) {
	c.atomsMu.RLock()
	a, ok := c.atoms[name]
	c.atomsMu.RUnlock()
	if ok {
		return a, nil
	}

	reply, err := xproto.InternAtom(c.conn, false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, errors.Wrap(err, errors.ErrCodeProtocol, "InternAtom failed").
			WithContext("atom", name)
	}

	c.atomsMu.Lock()
	c.atoms[name] = reply.Atom
	c.atomsMu.Unlock()
	return reply.Atom, nil
}

func (c *Conn) prop(property, typ xproto.Atom, format byte, data []byte) {
	n := uint32(len(data)) / uint32(format/8)
	xproto.ChangeProperty(c.conn, xproto.PropModeReplace, c.win, property, typ, format, n, data)
}

// sizeHints builds a WM_SIZE_HINTS block pinning min and max size to the
// same geometry so the window manager treats the dialog as fixed-size.
func sizeHints(w, h int) []byte {
	const (
		flagMinSize = 1 << 4
		flagMaxSize = 1 << 5
	)
	hints := make([]uint32, 18)
	hints[0] = flagMinSize | flagMaxSize
	hints[5] = uint32(w)
	hints[6] = uint32(h)
	hints[7] = uint32(w)
	hints[8] = uint32(h)

	out := make([]byte, 0, len(hints)*4)
	for _, v := range hints {
		out = append(out, u32bytes(v)...)
	}
	return out
}

func atom32(a xproto.Atom) []byte {
	return u32bytes(uint32(a))
}

func u32bytes(v uint32) []byte {
	return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}

var _ display.Conn = (*Conn)(nil)
