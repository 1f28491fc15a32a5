package render

// IconSize is the edge length of a message icon badge, in logical units.
const IconSize = 48

// BadgeShape selects the icon silhouette.
type BadgeShape int

const (
	BadgeCircle BadgeShape = iota
	BadgeTriangle
)

// DrawBadge paints a message-severity badge: a filled circle or warning
// triangle with a white symbol glyph centered in it. (x, y) is the
// top-left of the IconSize box, in logical units.
func (c *Canvas) DrawBadge(f *Face, shape BadgeShape, col Color, symbol string, x, y float64) {
	const size = float64(IconSize)

	switch shape {
	case BadgeTriangle:
		const inset = 4.0
		c.FillTriangle(
			x+size/2, y+inset,
			x+inset, y+size-inset,
			x+size-inset, y+size-inset,
			col,
		)
	default:
		c.FillCircle(x+size/2, y+size/2, size/2-2, col)
	}

	sw, sh := f.Measure(symbol)
	// The triangle's visual center sits below the box center.
	sy := y + (size-sh)/2
	if shape == BadgeTriangle {
		sy += 4
	}
	c.DrawText(f, symbol, x+(size-sw)/2, sy, RGB(255, 255, 255))
}
