// Package sim provides an in-memory display backend for testing. It speaks
// the same Conn/Surface contract as the real transports and adds injection
// and capture helpers so dialog behavior can be driven without a server.
package sim

import (
	"sync"

	"github.com/odvcencio/placard/pkg/display"
	"github.com/odvcencio/placard/pkg/errors"
	"github.com/odvcencio/placard/pkg/input"
)

// Conn is a scripted display connection.
type Conn struct {
	mu      sync.Mutex
	events  chan input.RawEvent
	keymap  *input.Keymap
	strokes map[rune]keystroke
	surface *Surface
	title   string
	cursor  display.CursorShape
	moves   int
	closed  bool
}

// New creates a simulation connection at scale 1.
func New(width, height int) *Conn {
	return NewWithScale(width, height, 1)
}

// NewWithScale creates a simulation connection with a device scale factor.
func NewWithScale(width, height, scale int) *Conn {
	keymap, strokes := newUSKeymap()
	c := &Conn{
		events:  make(chan input.RawEvent, 256),
		keymap:  keymap,
		strokes: strokes,
	}
	c.surface = &Surface{c: c}
	c.surface.resize(width, height, scale)
	return c
}

// CreateSurface realizes the in-memory surface sized at construction.
func (c *Conn) CreateSurface(opts display.SurfaceOptions) (display.Surface, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.title != "" {
		return nil, errors.New(errors.ErrCodeSurfaceCreate, "surface already created")
	}
	c.title = opts.Title
	if opts.Width > 0 && opts.Height > 0 {
		c.surface.resize(opts.Width, opts.Height, c.surface.scale)
	}
	return c.surface, nil
}

// Events returns the injected event stream.
func (c *Conn) Events() <-chan input.RawEvent {
	return c.events
}

// Keymap returns the built-in US layout, or whatever SetKeymap installed.
func (c *Conn) Keymap() (*input.Keymap, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.keymap, nil
}

// SetCursor records the requested pointer shape.
func (c *Conn) SetCursor(shape display.CursorShape) {
	c.mu.Lock()
	c.cursor = shape
	c.mu.Unlock()
}

// BeginMove counts interactive move requests.
func (c *Conn) BeginMove() {
	c.mu.Lock()
	c.moves++
	c.mu.Unlock()
}

// Name identifies the backend.
func (c *Conn) Name() string { return "sim" }

// Close shuts the event stream. Safe to call more than once.
func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.events)
	}
	return nil
}

// Inject posts one raw event into the stream.
func (c *Conn) Inject(ev input.RawEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.events <- ev
}

// InjectKey taps a named key: press then release.
func (c *Conn) InjectKey(k input.Key) {
	code, ok := namedKeyCodes[k]
	if !ok {
		return
	}
	c.Inject(input.RawKeyDown{Code: code})
	c.Inject(input.RawKeyUp{Code: code})
}

// InjectRune types one character, wrapping it in shift presses when the
// layout needs the shifted level.
func (c *Conn) InjectRune(r rune) {
	s, ok := c.strokes[r]
	if !ok {
		return
	}
	if s.shift {
		c.Inject(input.RawKeyDown{Code: codeShift})
	}
	c.Inject(input.RawKeyDown{Code: s.code})
	c.Inject(input.RawKeyUp{Code: s.code})
	if s.shift {
		c.Inject(input.RawKeyUp{Code: codeShift})
	}
}

// InjectKeyString types a string rune by rune.
func (c *Conn) InjectKeyString(str string) {
	for _, r := range str {
		c.InjectRune(r)
	}
}

// InjectClick presses and releases a pointer button at a logical point.
func (c *Conn) InjectClick(b input.Button, x, y float64) {
	c.Inject(input.RawPointerMove{X: x, Y: y})
	c.Inject(input.RawButtonDown{Button: b, X: x, Y: y})
	c.Inject(input.RawButtonUp{Button: b, X: x, Y: y})
}

// InjectMove moves the pointer.
func (c *Conn) InjectMove(x, y float64) {
	c.Inject(input.RawPointerMove{X: x, Y: y})
}

// InjectResize resizes the surface and posts the configure event, the
// order a real server delivers them in.
func (c *Conn) InjectResize(width, height int) {
	c.mu.Lock()
	scale := c.surface.scale
	c.surface.resize(width, height, scale)
	c.mu.Unlock()
	c.Inject(input.RawConfigure{Width: width, Height: height, Scale: scale})
}

// InjectClose posts the window-manager close request.
func (c *Conn) InjectClose() {
	c.Inject(input.RawClose{})
}

// SetKeymap swaps the layout and announces the change.
func (c *Conn) SetKeymap(k *input.Keymap) {
	c.mu.Lock()
	c.keymap = k
	c.mu.Unlock()
	c.Inject(input.RawKeymapChange{})
}

// Title returns the title passed to CreateSurface.
func (c *Conn) Title() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.title
}

// Cursor returns the last requested pointer shape.
func (c *Conn) Cursor() display.CursorShape {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cursor
}

// MoveCount returns how many interactive moves were requested.
func (c *Conn) MoveCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.moves
}

// Surface is the in-memory pixel buffer.
type Surface struct {
	c        *Conn
	w, h     int
	scale    int
	buf      []byte
	last     []byte
	presents int
}

func (s *Surface) resize(w, h, scale int) {
	s.w, s.h, s.scale = w, h, scale
	s.buf = make([]byte, w*scale*h*scale*4)
}

// Size returns the logical size.
func (s *Surface) Size() (int, int) {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	return s.w, s.h
}

// Scale returns the device scale factor.
func (s *Surface) Scale() int {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	return s.scale
}

// Buffer returns the live back buffer.
func (s *Surface) Buffer() []byte {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	return s.buf
}

// Present snapshots the buffer as the visible frame.
func (s *Surface) Present() error {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	if len(s.last) != len(s.buf) {
		s.last = make([]byte, len(s.buf))
	}
	copy(s.last, s.buf)
	s.presents++
	return nil
}

// Resize reallocates the buffer.
func (s *Surface) Resize(w, h, scale int) error {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	s.resize(w, h, scale)
	return nil
}

// PresentCount returns how many frames have been presented.
func (s *Surface) PresentCount() int {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	return s.presents
}

// Frame returns a copy of the last presented frame.
func (s *Surface) Frame() []byte {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	out := make([]byte, len(s.last))
	copy(out, s.last)
	return out
}

// PixelAt reads one presented pixel at buffer coordinates.
func (s *Surface) PixelAt(x, y int) (r, g, b, a uint8) {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	i := (y*s.w*s.scale + x) * 4
	if i < 0 || i+3 >= len(s.last) {
		return 0, 0, 0, 0
	}
	// Buffer layout is BGRA.
	return s.last[i+2], s.last[i+1], s.last[i], s.last[i+3]
}

// Ensure the contract is satisfied.
var (
	_ display.Conn    = (*Conn)(nil)
	_ display.Surface = (*Surface)(nil)
)
