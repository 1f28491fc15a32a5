package render

import (
	"image"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/odvcencio/placard/pkg/errors"
)

// BaseTextSize is the dialog text size in logical units.
const BaseTextSize = 18

// zwsp marks a soft-break opportunity that renders as nothing.
const zwsp = '​'

var (
	fontOnce sync.Once
	baseFont *sfnt.Font
	fontErr  error

	faceMu sync.Mutex
	faces  = map[faceKey]font.Face{}
)

type faceKey struct {
	size  float64
	scale int
}

// Face measures and draws text at one (size, scale) pair. Faces are cached
// process-wide; glyph access is not goroutine-safe, which is fine because
// all drawing happens on the session loop.
type Face struct {
	face  font.Face
	scale int
}

// NewFace returns the embedded Go Regular face scaled for the given device
// scale. Size is in logical units.
func NewFace(size float64, scale int) (*Face, error) {
	if scale < 1 {
		scale = 1
	}
	faceMu.Lock()
	defer faceMu.Unlock()

	key := faceKey{size: size, scale: scale}
	if f, ok := faces[key]; ok {
		return &Face{face: f, scale: scale}, nil
	}

	fontOnce.Do(func() {
		baseFont, fontErr = opentype.Parse(goregular.TTF)
	})
	if fontErr != nil {
		return nil, errors.Wrap(fontErr, errors.ErrCodeFontLoad, "embedded font unusable")
	}

	f, err := opentype.NewFace(baseFont, &opentype.FaceOptions{
		Size:    size * float64(scale),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeFontLoad, "cannot scale font face")
	}
	faces[key] = f
	return &Face{face: f, scale: scale}, nil
}

// Advance returns the horizontal advance of the text in logical units.
func (f *Face) Advance(text string) float64 {
	return f.toLogical(font.MeasureString(f.face, stripSoftBreaks(text)))
}

// LineHeight returns the recommended line spacing in logical units.
func (f *Face) LineHeight() float64 {
	return f.toLogical(f.face.Metrics().Height)
}

// Measure returns the logical width and height of the text, which may span
// multiple newline-separated lines.
func (f *Face) Measure(text string) (w, h float64) {
	lines := strings.Split(text, "\n")
	for _, line := range lines {
		if lw := f.Advance(line); lw > w {
			w = lw
		}
	}
	return w, float64(len(lines)) * f.LineHeight()
}

// Wrap splits text into lines no wider than maxWidth logical units,
// breaking at spaces and zero-width spaces. A word with no break
// opportunity overflows rather than being cut.
func (f *Face) Wrap(text string, maxWidth float64) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		out = append(out, f.wrapLine(line, maxWidth)...)
	}
	return out
}

func (f *Face) wrapLine(line string, maxWidth float64) []string {
	type chunk struct {
		word   string
		joiner string
	}
	var chunks []chunk
	joiner, start := "", 0
	for i, r := range line {
		if r != ' ' && r != zwsp {
			continue
		}
		chunks = append(chunks, chunk{word: line[start:i], joiner: joiner})
		if r == ' ' {
			joiner = " "
		} else {
			joiner = ""
		}
		start = i + len(string(r))
	}
	chunks = append(chunks, chunk{word: line[start:], joiner: joiner})

	var lines []string
	cur := ""
	started := false
	for _, ch := range chunks {
		if !started {
			cur, started = ch.word, true
			continue
		}
		cand := cur + ch.joiner + ch.word
		if f.Advance(cand) > maxWidth && cur != "" {
			lines = append(lines, cur)
			cur = ch.word
			continue
		}
		cur = cand
	}
	return append(lines, cur)
}

// DrawText draws a single line with its top-left corner at (x, y) logical
// units. Newlines are not interpreted; wrap first if needed.
func (c *Canvas) DrawText(f *Face, text string, x, y float64, col Color) {
	s := float64(c.scale)
	m := f.face.Metrics()
	d := font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col.rgba()),
		Face: f.face,
		Dot: fixed.Point26_6{
			X: floatToFixed(x * s),
			Y: floatToFixed(y*s) + m.Ascent,
		},
	}
	d.DrawString(stripSoftBreaks(text))
}

// DrawTextLines draws consecutive lines starting at (x, y), returning the
// logical height consumed.
func (c *Canvas) DrawTextLines(f *Face, lines []string, x, y float64, col Color) float64 {
	lh := f.LineHeight()
	for i, line := range lines {
		c.DrawText(f, line, x, y+float64(i)*lh, col)
	}
	return float64(len(lines)) * lh
}

func (f *Face) toLogical(v fixed.Int26_6) float64 {
	return float64(v) / 64 / float64(f.scale)
}

func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

func stripSoftBreaks(s string) string {
	if !strings.ContainsRune(s, zwsp) {
		return s
	}
	return strings.ReplaceAll(s, string(zwsp), "")
}
