package render

import (
	"image"
	"image/color"
)

// bgraImage exposes a surface back buffer as a draw.Image so the x/image
// rasterizer and font drawer compose straight into it. The buffer layout
// is the display protocols' packed little-endian ARGB, which is B,G,R,A
// in byte order, premultiplied.
type bgraImage struct {
	buf    []byte
	w, h   int
	stride int
	clip   image.Rectangle
}

func (m *bgraImage) ColorModel() color.Model { return color.RGBAModel }

func (m *bgraImage) Bounds() image.Rectangle { return image.Rect(0, 0, m.w, m.h) }

func (m *bgraImage) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}.In(m.Bounds())) {
		return color.RGBA{}
	}
	i := y*m.stride + x*4
	return color.RGBA{R: m.buf[i+2], G: m.buf[i+1], B: m.buf[i], A: m.buf[i+3]}
}

// Set writes one premultiplied pixel, honoring the clip rectangle. All
// drawing funnels through here, so clipping in Set clips everything.
func (m *bgraImage) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}.In(m.clip)) {
		return
	}
	v := color.RGBAModel.Convert(c).(color.RGBA)
	i := y*m.stride + x*4
	m.buf[i] = v.B
	m.buf[i+1] = v.G
	m.buf[i+2] = v.R
	m.buf[i+3] = v.A
}
