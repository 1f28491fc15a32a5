package widget

import (
	"github.com/odvcencio/placard/pkg/input"
	"github.com/odvcencio/placard/pkg/render"
	"github.com/odvcencio/placard/pkg/theme"
)

const (
	checkboxSize   = 16
	checkboxRadius = 3
	checkboxGap    = 8
)

// Checkbox is a toggle with a trailing label. The hit region spans the
// box and the label.
type Checkbox struct {
	label   string
	bounds  Rect
	hovered bool
	checked bool
}

// NewCheckbox measures the label and sizes the hit region around box
// plus label.
func NewCheckbox(label string, f *render.Face) *Checkbox {
	w := float64(checkboxSize)
	if label != "" {
		w += checkboxGap + f.Advance(label)
	}
	return &Checkbox{label: label, bounds: Rect{W: w, H: checkboxSize}}
}

// Bounds returns the hit region.
func (cb *Checkbox) Bounds() Rect { return cb.bounds }

// SetPosition moves the checkbox's top-left corner.
func (cb *Checkbox) SetPosition(x, y float64) { cb.bounds.X, cb.bounds.Y = x, y }

// Checked reports the toggle state.
func (cb *Checkbox) Checked() bool { return cb.checked }

// SetChecked sets the toggle state.
func (cb *Checkbox) SetChecked(v bool) { cb.checked = v }

// Toggle flips the toggle state. Dialogs bind this to the space key.
func (cb *Checkbox) Toggle() { cb.checked = !cb.checked }

// Handle tracks hover and toggles on click.
func (cb *Checkbox) Handle(ev input.Event) bool {
	switch ev := ev.(type) {
	case input.PointerMove:
		was := cb.hovered
		cb.hovered = cb.bounds.Contains(ev.X, ev.Y)
		return was != cb.hovered
	case input.ButtonPress:
		if ev.Button == input.ButtonLeft && cb.hovered {
			cb.Toggle()
			return true
		}
	}
	return false
}

// Draw paints the box, the check mark and the label.
func (cb *Checkbox) Draw(c *render.Canvas, pal *theme.Palette, f *render.Face) {
	bg := pal.InputBg
	if cb.hovered {
		bg = theme.Darken(pal.InputBg, 0.06)
	}
	c.FillRoundedRect(cb.bounds.X, cb.bounds.Y, checkboxSize, checkboxSize, checkboxRadius, bg)
	c.StrokeRoundedRect(cb.bounds.X, cb.bounds.Y, checkboxSize, checkboxSize, checkboxRadius, pal.InputBorder, 1)

	if cb.checked {
		const inset = 3
		c.FillRoundedRect(cb.bounds.X+inset, cb.bounds.Y+inset,
			checkboxSize-2*inset, checkboxSize-2*inset, 2, pal.InputBorderFocused)
	}

	if cb.label != "" {
		c.DrawText(f, cb.label, cb.bounds.X+checkboxSize+checkboxGap, cb.bounds.Y, pal.Text)
	}
}
