// Package display defines the transport-backend contract: a connection to
// one display server, one surface, and a raw event stream. Three
// implementations live in subpackages: x11, wayland, and sim for tests.
package display

import (
	"github.com/odvcencio/placard/pkg/input"
)

// SurfaceOptions describes the single dialog window.
type SurfaceOptions struct {
	Title string
	// Class is the WM_CLASS instance/class on X11 and the app id on
	// Wayland.
	Class string
	// Width and Height are logical units; the backend multiplies by its
	// scale factor for the pixel buffer.
	Width  int
	Height int
}

// CursorShape selects the pointer image over the dialog.
type CursorShape uint8

const (
	CursorDefault CursorShape = iota
	CursorText
)

// Conn is one open display-server connection. It owns every protocol
// object created through it and is torn down exactly once.
type Conn interface {
	// CreateSurface realizes the dialog window and returns once it can be
	// drawn to. One surface per connection.
	CreateSurface(opts SurfaceOptions) (Surface, error)

	// Events is the raw event stream, pumped by the connection's reader.
	// A protocol failure arrives as input.RawError; the channel closes
	// when the connection dies.
	Events() <-chan input.RawEvent

	// Keymap returns the server-advertised layout. Called once at startup
	// and again after a RawKeymapChange event.
	Keymap() (*input.Keymap, error)

	// SetCursor switches the pointer image; a no-op where the protocol
	// variant has no cheap way to do it.
	SetCursor(shape CursorShape)

	// BeginMove hands the window to the window manager for an interactive
	// move, used when the user drags the dialog body.
	BeginMove()

	// Name identifies the variant: "x11", "wayland", or "sim".
	Name() string

	Close() error
}

// Surface is a drawable region: logical size, device scale factor, and a
// back buffer of packed pixels. The buffer layout is BGRA bytes
// (little-endian ARGB words), premultiplied, stride = width*scale*4.
type Surface interface {
	// Size returns the logical size.
	Size() (w, h int)

	// Scale is the integer device scale; the buffer is Size()*Scale
	// pixels on each side.
	Scale() int

	// Buffer exposes the back buffer. The slice is invalidated by Resize.
	Buffer() []byte

	// Present makes the buffer's pixels visible. The sole point in the
	// process where anything reaches the screen.
	Present() error

	// Resize reallocates the buffer in place for a new logical size and
	// scale, keeping the surface itself alive.
	Resize(w, h, scale int) error
}
