// Package widget provides the pointer and keyboard driven controls the
// dialog controllers compose: buttons, text inputs, progress bars,
// scrollbars, checkboxes and sliders. Widgets work in logical coordinates;
// scaling happens inside the canvas they draw to.
package widget

import (
	"github.com/odvcencio/placard/pkg/input"
	"github.com/odvcencio/placard/pkg/render"
	"github.com/odvcencio/placard/pkg/theme"
)

// Rect is an axis-aligned region in logical coordinates.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Widget is the contract shared by the dialog controls. Handle consumes a
// normalized event and reports whether the widget's appearance changed;
// Draw paints the widget onto the canvas.
type Widget interface {
	Bounds() Rect
	SetPosition(x, y float64)
	Handle(ev input.Event) bool
	Draw(c *render.Canvas, pal *theme.Palette, f *render.Face)
}
