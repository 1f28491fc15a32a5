package render

import "image/color"

// Color is an 8-bit straight-alpha RGBA color. Premultiplication happens
// at the buffer boundary, not here, so palette math stays intuitive.
type Color struct {
	R, G, B, A uint8
}

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// RGBA returns a color with explicit alpha.
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// WithAlpha returns the color with its alpha replaced.
func (c Color) WithAlpha(a uint8) Color {
	c.A = a
	return c
}

// premul returns the premultiplied components.
func (c Color) premul() (r, g, b, a uint8) {
	if c.A == 255 {
		return c.R, c.G, c.B, c.A
	}
	m := uint32(c.A)
	return uint8(uint32(c.R) * m / 255),
		uint8(uint32(c.G) * m / 255),
		uint8(uint32(c.B) * m / 255),
		c.A
}

// rgba converts to the standard library's premultiplied color, the form
// image/draw composes with.
func (c Color) rgba() color.RGBA {
	r, g, b, a := c.premul()
	return color.RGBA{R: r, G: g, B: b, A: a}
}
