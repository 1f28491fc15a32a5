// Package render is the software rasterizer: immediate-mode drawing of
// dialog chrome, widgets, and text into a backend-owned BGRA back buffer.
// Geometry is expressed in logical units and multiplied by the surface
// scale at the pixel boundary. Paths are filled through
// golang.org/x/image/vector and blended premultiplied source-over.
package render

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// DialogRadius is the corner radius of the dialog window, in logical units.
const DialogRadius = 8

// Canvas draws into one BGRA back buffer.
type Canvas struct {
	img   *bgraImage
	w, h  int
	scale int
}

// NewCanvas wraps a back buffer of w×h logical units at the given integer
// scale. The buffer must hold w*scale * h*scale * 4 bytes.
func NewCanvas(buf []byte, w, h, scale int) *Canvas {
	img := &bgraImage{
		buf:    buf,
		w:      w * scale,
		h:      h * scale,
		stride: w * scale * 4,
	}
	img.clip = img.Bounds()
	return &Canvas{img: img, w: w, h: h, scale: scale}
}

// Width returns the logical width.
func (c *Canvas) Width() int { return c.w }

// Height returns the logical height.
func (c *Canvas) Height() int { return c.h }

// Scale returns the device scale factor.
func (c *Canvas) Scale() int { return c.scale }

// Fill floods the whole buffer, ignoring the clip.
func (c *Canvas) Fill(col Color) {
	r, g, b, a := col.premul()
	buf := c.img.buf
	for i := 0; i+3 < len(buf); i += 4 {
		buf[i] = b
		buf[i+1] = g
		buf[i+2] = r
		buf[i+3] = a
	}
}

// PushClip restricts drawing to the given logical rectangle until the
// returned restore function runs. Clips nest by intersection.
func (c *Canvas) PushClip(x, y, w, h float64) func() {
	prev := c.img.clip
	s := float64(c.scale)
	next := image.Rect(
		int(math.Floor(x*s)), int(math.Floor(y*s)),
		int(math.Ceil((x+w)*s)), int(math.Ceil((y+h)*s)),
	)
	c.img.clip = prev.Intersect(next)
	return func() { c.img.clip = prev }
}

// FillRect fills an axis-aligned rectangle.
func (c *Canvas) FillRect(x, y, w, h float64, col Color) {
	c.FillRoundedRect(x, y, w, h, 0, col)
}

// FillRoundedRect fills a rectangle with quadratic corner rounding. The
// radius is clamped to half the smaller dimension, so radius = w/2 on a
// square yields a circle.
func (c *Canvas) FillRoundedRect(x, y, w, h, radius float64, col Color) {
	if w <= 0 || h <= 0 || col.A == 0 {
		return
	}
	mask, origin := c.roundedRectMask(x, y, w, h, radius)
	if mask == nil {
		return
	}
	c.blendMask(mask, origin, col)
}

// StrokeRoundedRect draws a rounded rectangle outline of the given stroke
// width, the stroke lying entirely inside the rectangle.
func (c *Canvas) StrokeRoundedRect(x, y, w, h, radius float64, col Color, width float64) {
	if w <= 0 || h <= 0 || col.A == 0 || width <= 0 {
		return
	}
	outer, origin := c.roundedRectMask(x, y, w, h, radius)
	if outer == nil {
		return
	}
	if w > 2*width && h > 2*width {
		inner, innerOrigin := c.roundedRectMask(x+width, y+width, w-2*width, h-2*width, math.Max(radius-width, 0))
		if inner != nil {
			subtractMask(outer, origin, inner, innerOrigin)
		}
	}
	c.blendMask(outer, origin, col)
}

// FillCircle fills a circle centered at (cx, cy).
func (c *Canvas) FillCircle(cx, cy, r float64, col Color) {
	c.FillRoundedRect(cx-r, cy-r, 2*r, 2*r, r, col)
}

// FillTriangle fills the triangle with the given vertices.
func (c *Canvas) FillTriangle(x1, y1, x2, y2, x3, y3 float64, col Color) {
	if col.A == 0 {
		return
	}
	s := float64(c.scale)
	minX := math.Floor(math.Min(x1, math.Min(x2, x3)) * s)
	minY := math.Floor(math.Min(y1, math.Min(y2, y3)) * s)
	maxX := math.Ceil(math.Max(x1, math.Max(x2, x3)) * s)
	maxY := math.Ceil(math.Max(y1, math.Max(y2, y3)) * s)
	mw, mh := int(maxX-minX), int(maxY-minY)
	if mw <= 0 || mh <= 0 {
		return
	}

	z := vector.NewRasterizer(mw, mh)
	z.DrawOp = draw.Src
	z.MoveTo(float32(x1*s-minX), float32(y1*s-minY))
	z.LineTo(float32(x2*s-minX), float32(y2*s-minY))
	z.LineTo(float32(x3*s-minX), float32(y3*s-minY))
	z.ClosePath()

	mask := image.NewAlpha(image.Rect(0, 0, mw, mh))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	c.blendMask(mask, image.Pt(int(minX), int(minY)), col)
}

// DialogBackground paints the standard dialog chrome: drop shadow, filled
// rounded body, and a one-unit border inset so the stroke stays crisp.
func (c *Canvas) DialogBackground(bg, border, shadow Color) {
	w, h := float64(c.w), float64(c.h)
	const shadowOffset = 3
	const borderWidth = 1

	c.FillRoundedRect(shadowOffset, shadowOffset, w-shadowOffset, h-shadowOffset, DialogRadius, shadow)
	c.FillRoundedRect(0, 0, w, h, DialogRadius, bg)
	c.StrokeRoundedRect(0, 0, w, h, DialogRadius, border, borderWidth)
}

// roundedRectMask rasterizes the rounded rectangle into a coverage mask,
// returning the mask and its pixel-space origin.
func (c *Canvas) roundedRectMask(x, y, w, h, radius float64) (*image.Alpha, image.Point) {
	s := float64(c.scale)
	minX, minY := math.Floor(x*s), math.Floor(y*s)
	maxX, maxY := math.Ceil((x+w)*s), math.Ceil((y+h)*s)
	mw, mh := int(maxX-minX), int(maxY-minY)
	if mw <= 0 || mh <= 0 {
		return nil, image.Point{}
	}

	r := math.Min(radius, math.Min(w/2, h/2)) * s
	px, py := x*s-minX, y*s-minY
	pw, ph := w*s, h*s

	z := vector.NewRasterizer(mw, mh)
	z.DrawOp = draw.Src
	roundedRectPath(z, float32(px), float32(py), float32(pw), float32(ph), float32(r))

	mask := image.NewAlpha(image.Rect(0, 0, mw, mh))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask, image.Pt(int(minX), int(minY))
}

func roundedRectPath(z *vector.Rasterizer, x, y, w, h, r float32) {
	z.MoveTo(x+r, y)
	z.LineTo(x+w-r, y)
	z.QuadTo(x+w, y, x+w, y+r)
	z.LineTo(x+w, y+h-r)
	z.QuadTo(x+w, y+h, x+w-r, y+h)
	z.LineTo(x+r, y+h)
	z.QuadTo(x, y+h, x, y+h-r)
	z.LineTo(x, y+r)
	z.QuadTo(x, y, x+r, y)
	z.ClosePath()
}

// subtractMask removes the inner coverage from the outer mask, leaving the
// stroke ring. Origins are pixel-space.
func subtractMask(outer *image.Alpha, outerOrigin image.Point, inner *image.Alpha, innerOrigin image.Point) {
	off := innerOrigin.Sub(outerOrigin)
	ib := inner.Bounds()
	for y := ib.Min.Y; y < ib.Max.Y; y++ {
		for x := ib.Min.X; x < ib.Max.X; x++ {
			ox, oy := x+off.X, y+off.Y
			if !(image.Point{X: ox, Y: oy}.In(outer.Bounds())) {
				continue
			}
			oi := outer.PixOffset(ox, oy)
			cut := inner.Pix[inner.PixOffset(x, y)]
			if outer.Pix[oi] <= cut {
				outer.Pix[oi] = 0
			} else {
				outer.Pix[oi] -= cut
			}
		}
	}
}

// blendMask composes a uniform color through a coverage mask, source-over.
func (c *Canvas) blendMask(mask *image.Alpha, origin image.Point, col Color) {
	r := mask.Bounds().Add(origin)
	draw.DrawMask(c.img, r, image.NewUniform(col.rgba()), image.Point{}, mask, mask.Bounds().Min, draw.Over)
}
