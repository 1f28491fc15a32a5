package widget

import (
	"github.com/odvcencio/placard/pkg/input"
	"github.com/odvcencio/placard/pkg/render"
	"github.com/odvcencio/placard/pkg/theme"
)

const (
	// ButtonHeight is the fixed logical height of every push button.
	ButtonHeight = 32

	buttonPadX     = 24
	buttonMinWidth = 80
	buttonRadius   = 5
)

// Button is a push button sized to its label. A click is latched on
// release and consumed through Clicked, so a controller polls it once
// per event batch. A disabled button ignores input and draws dimmed.
type Button struct {
	label    string
	bounds   Rect
	disabled bool

	hovered bool
	pressed bool
	clicked bool
}

// NewButton measures the label with the face and sizes the button around it.
func NewButton(label string, f *render.Face) *Button {
	w := f.Advance(label) + 2*buttonPadX
	if w < buttonMinWidth {
		w = buttonMinWidth
	}
	return &Button{label: label, bounds: Rect{W: w, H: ButtonHeight}}
}

// Label returns the button text.
func (b *Button) Label() string { return b.label }

// Bounds returns the button's position and size.
func (b *Button) Bounds() Rect { return b.bounds }

// SetPosition moves the button's top-left corner.
func (b *Button) SetPosition(x, y float64) { b.bounds.X, b.bounds.Y = x, y }

// Width returns the measured width.
func (b *Button) Width() float64 { return b.bounds.W }

// SetEnabled switches the button between active and disabled. Disabling
// drops any armed press.
func (b *Button) SetEnabled(enabled bool) {
	b.disabled = !enabled
	if b.disabled {
		b.pressed = false
		b.clicked = false
	}
}

// Enabled reports whether the button accepts input.
func (b *Button) Enabled() bool { return !b.disabled }

// Handle updates hover and press state. A press only arms the button when
// the pointer is over it, and a release only latches a click while the
// pointer is still over it.
func (b *Button) Handle(ev input.Event) bool {
	if b.disabled {
		return false
	}
	switch ev := ev.(type) {
	case input.PointerMove:
		was := b.hovered
		b.hovered = b.bounds.Contains(ev.X, ev.Y)
		return was != b.hovered
	case input.ButtonPress:
		if ev.Button == input.ButtonLeft && b.hovered {
			b.pressed = true
			return true
		}
	case input.ButtonRelease:
		if ev.Button == input.ButtonLeft && b.pressed {
			b.clicked = b.hovered
			b.pressed = false
			return true
		}
	}
	return false
}

// Clicked reports and clears the click latched by the last release.
func (b *Button) Clicked() bool {
	c := b.clicked
	b.clicked = false
	return c
}

// Draw paints the button with its hover and press feedback.
func (b *Button) Draw(c *render.Canvas, pal *theme.Palette, f *render.Face) {
	bg, text := pal.Button, pal.ButtonText
	if b.disabled {
		bg, text = theme.Darken(pal.Button, 0.1), pal.Placeholder
	} else if b.pressed {
		bg = pal.ButtonPressed
	} else if b.hovered {
		bg = pal.ButtonHover
	}
	c.FillRoundedRect(b.bounds.X, b.bounds.Y, b.bounds.W, b.bounds.H, buttonRadius, bg)
	c.StrokeRoundedRect(b.bounds.X, b.bounds.Y, b.bounds.W, b.bounds.H, buttonRadius, pal.ButtonOutline, 1)

	tw := f.Advance(b.label)
	th := f.LineHeight()
	c.DrawText(f, b.label,
		b.bounds.X+(b.bounds.W-tw)/2,
		b.bounds.Y+(b.bounds.H-th)/2,
		text)
}
