// Package dialog hosts the dialog controllers and the session loop that
// drives one of them against a display connection. A controller owns the
// widget state for its kind, turns normalized input into state
// transitions, and paints itself onto the frame canvas; the session owns
// the connection, the surface, redraw pacing, and the timeout deadline.
package dialog

import (
	"github.com/odvcencio/placard/pkg/display"
	"github.com/odvcencio/placard/pkg/input"
	"github.com/odvcencio/placard/pkg/render"

	"github.com/odvcencio/placard/pkg/dialog/widget"
)

// Controller is one dialog kind. The session calls Handle for every
// normalized event, Tick once per frame timer tick, and Draw whenever
// either reported a change. Outcome returns the terminal result once the
// controller has reached one.
type Controller interface {
	// Title is the window title.
	Title() string

	// Size is the logical window size computed from the content.
	Size() (w, h int)

	// Handle consumes a normalized event and reports whether the dialog
	// needs a redraw.
	Handle(ev input.Event) bool

	// Tick advances time-based state and reports whether the dialog needs
	// a redraw.
	Tick() bool

	// Draw paints the dialog onto the canvas.
	Draw(c *render.Canvas, f *render.Face)

	// Outcome returns the terminal outcome and whether one was reached.
	Outcome() (Outcome, bool)
}

// Mover is implemented by controllers whose body can be dragged to move
// the window. The session polls it after each event batch and forwards a
// pending request to Conn.BeginMove.
type Mover interface {
	WantsMove() bool
}

// CursorShaper is implemented by controllers that switch the pointer
// image, typically to an I-beam over text inputs.
type CursorShaper interface {
	CursorShape() display.CursorShape
}

// Icon selects the severity badge on a message dialog.
type Icon uint8

const (
	IconNone Icon = iota
	IconInfo
	IconWarning
	IconError
	IconQuestion
)

const buttonGap = 10

// rowWidth is the total width of a button row with the standard gap.
func rowWidth(buttons []*widget.Button) float64 {
	var w float64
	for i, b := range buttons {
		if i > 0 {
			w += buttonGap
		}
		w += b.Width()
	}
	return w
}

// layoutRowRight places buttons right-aligned at y: the last button ends
// at right, the ones before it follow to the left.
func layoutRowRight(buttons []*widget.Button, right, y float64) {
	x := right
	for i := len(buttons) - 1; i >= 0; i-- {
		b := buttons[i]
		x -= b.Width()
		b.SetPosition(x, y)
		x -= buttonGap
	}
}
