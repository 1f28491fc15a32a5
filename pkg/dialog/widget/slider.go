package widget

import (
	"github.com/odvcencio/placard/pkg/input"
	"github.com/odvcencio/placard/pkg/render"
	"github.com/odvcencio/placard/pkg/theme"
)

const (
	// SliderWidth is the default logical track width.
	SliderWidth = 300

	// SliderHeight is the logical height of the slider row, set by the
	// thumb diameter.
	SliderHeight = sliderThumbSize

	sliderTrackHeight = 8
	sliderThumbSize   = 20
)

// Slider selects an integer in [min, max], snapped to a step. The thumb
// drags, the track jumps to the pressed position, and arrow keys nudge
// by one step.
type Slider struct {
	bounds Rect

	min, max, step int
	value          int

	hovered  bool
	dragging bool
}

// NewSlider creates a slider over [min, max] with the given step and
// initial value. The value is clamped into range and the step floored
// to 1.
func NewSlider(width float64, min, max, step, value int) *Slider {
	if step < 1 {
		step = 1
	}
	if value < min {
		value = min
	}
	if value > max {
		value = max
	}
	return &Slider{
		bounds: Rect{W: width, H: sliderThumbSize},
		min:    min, max: max, step: step, value: value,
	}
}

// Bounds returns the slider row, thumb height included.
func (s *Slider) Bounds() Rect { return s.bounds }

// SetPosition moves the slider's top-left corner.
func (s *Slider) SetPosition(x, y float64) { s.bounds.X, s.bounds.Y = x, y }

// Value returns the current selection.
func (s *Slider) Value() int { return s.value }

// Dragging reports whether a thumb drag is in progress.
func (s *Slider) Dragging() bool { return s.dragging }

// SetValue sets the selection, clamped into range.
func (s *Slider) SetValue(v int) {
	if v < s.min {
		v = s.min
	}
	if v > s.max {
		v = s.max
	}
	s.value = v
}

func (s *Slider) thumbX() float64 {
	span := float64(s.max - s.min)
	ratio := 0.0
	if span > 0 {
		ratio = float64(s.value-s.min) / span
	}
	return s.bounds.X + ratio*(s.bounds.W-sliderThumbSize)
}

func (s *Slider) thumbRect() Rect {
	return Rect{X: s.thumbX(), Y: s.bounds.Y, W: sliderThumbSize, H: sliderThumbSize}
}

// valueAt converts a pointer x position to a stepped value. The usable
// track excludes half a thumb at each end so the thumb center lands
// under the pointer.
func (s *Slider) valueAt(px float64) int {
	start := s.bounds.X + sliderThumbSize/2
	end := s.bounds.X + s.bounds.W - sliderThumbSize/2
	width := end - start

	ratio := 0.0
	if width > 0 {
		ratio = (px - start) / width
		if ratio < 0 {
			ratio = 0
		}
		if ratio > 1 {
			ratio = 1
		}
	}

	raw := s.min + int(ratio*float64(s.max-s.min))
	steps := (raw - s.min) / s.step
	v := s.min + steps*s.step
	if v < s.min {
		v = s.min
	}
	if v > s.max {
		v = s.max
	}
	return v
}

// Handle tracks thumb hover, drag and keyboard nudges. It reports
// whether the value or appearance changed.
func (s *Slider) Handle(ev input.Event) bool {
	switch ev := ev.(type) {
	case input.PointerMove:
		changed := false
		was := s.hovered
		s.hovered = s.thumbRect().Contains(ev.X, ev.Y)
		if was != s.hovered {
			changed = true
		}
		if s.dragging {
			if v := s.valueAt(ev.X); v != s.value {
				s.value = v
				changed = true
			}
		}
		return changed
	case input.ButtonPress:
		if ev.Button != input.ButtonLeft {
			return false
		}
		if s.thumbRect().Contains(ev.X, ev.Y) {
			s.dragging = true
			return true
		}
		trackY := s.bounds.Y + (sliderThumbSize-sliderTrackHeight)/2
		band := Rect{X: s.bounds.X, Y: trackY, W: s.bounds.W, H: sliderTrackHeight + sliderThumbSize}
		if band.Contains(ev.X, ev.Y) {
			s.value = s.valueAt(ev.X)
			s.dragging = true
			return true
		}
	case input.ButtonRelease:
		if ev.Button == input.ButtonLeft && s.dragging {
			s.dragging = false
			return true
		}
	case input.KeyPress:
		switch ev.Key {
		case input.KeyLeft:
			s.SetValue(s.value - s.step)
			return true
		case input.KeyRight:
			s.SetValue(s.value + s.step)
			return true
		case input.KeyHome:
			s.value = s.min
			return true
		case input.KeyEnd:
			s.value = s.max
			return true
		}
	}
	return false
}

// Draw paints the track, the filled portion up to the thumb, and the
// thumb itself.
func (s *Slider) Draw(c *render.Canvas, pal *theme.Palette, _ *render.Face) {
	trackY := s.bounds.Y + (sliderThumbSize-sliderTrackHeight)/2
	radius := float64(sliderTrackHeight) / 2

	c.FillRoundedRect(s.bounds.X, trackY, s.bounds.W, sliderTrackHeight, radius, pal.ProgressBg)

	tx := s.thumbX()
	fillW := tx - s.bounds.X + sliderThumbSize/2
	if fillW > s.bounds.W {
		fillW = s.bounds.W
	}
	if fillW > 0 {
		c.FillRoundedRect(s.bounds.X, trackY, fillW, sliderTrackHeight, radius, pal.ProgressFill)
	}
	c.StrokeRoundedRect(s.bounds.X, trackY, s.bounds.W, sliderTrackHeight, radius, pal.ProgressBorder, 1)

	thumbCol := pal.Button
	if s.dragging {
		thumbCol = pal.ButtonPressed
	} else if s.hovered {
		thumbCol = pal.ButtonHover
	}
	c.FillRoundedRect(tx, s.bounds.Y, sliderThumbSize, sliderThumbSize, sliderThumbSize/2, thumbCol)
	c.StrokeRoundedRect(tx, s.bounds.Y, sliderThumbSize, sliderThumbSize, sliderThumbSize/2, pal.ButtonOutline, 1)
}
