package widget

import (
	"github.com/odvcencio/placard/pkg/input"
	"github.com/odvcencio/placard/pkg/render"
	"github.com/odvcencio/placard/pkg/theme"
)

const (
	// ScrollbarWidth is the logical thickness of the scrollbar hit strip.
	ScrollbarWidth = 12

	scrollbarIdleWidth = 8
	scrollbarMinThumb  = 20
	scrollbarRadius    = 3
)

// Scrollbar maps a content range onto a draggable thumb. Content, view
// and offset are in the caller's units (rows, lines, pixels); the widget
// converts between those and track positions. Pressing inside the thumb
// starts a drag anchored at the grab point; pressing in the track pages
// the offset by one view length toward the pointer. Any button release
// ends a drag.
type Scrollbar struct {
	bounds     Rect
	horizontal bool

	content float64
	view    float64
	offset  float64

	hovered    bool
	dragging   bool
	grabOffset float64
}

// NewScrollbar creates a scrollbar. Horizontal bars track the X axis.
func NewScrollbar(horizontal bool) *Scrollbar {
	return &Scrollbar{horizontal: horizontal}
}

// Bounds returns the hit strip.
func (s *Scrollbar) Bounds() Rect { return s.bounds }

// SetPosition moves the hit strip without resizing it.
func (s *Scrollbar) SetPosition(x, y float64) { s.bounds.X, s.bounds.Y = x, y }

// Layout assigns the full hit strip, including its length along the
// scrolling axis.
func (s *Scrollbar) Layout(r Rect) { s.bounds = r }

// SetRange sets the content and view lengths and re-clamps the offset.
func (s *Scrollbar) SetRange(content, view float64) {
	s.content = content
	s.view = view
	s.setOffset(s.offset)
}

// SetOffset moves the scroll position, clamped to the valid range.
func (s *Scrollbar) SetOffset(v float64) { s.setOffset(v) }

// Offset returns the current scroll position in content units.
func (s *Scrollbar) Offset() float64 { return s.offset }

// Scrollable reports whether the content overflows the view.
func (s *Scrollbar) Scrollable() bool { return s.content > s.view }

// Dragging reports whether a thumb drag is in progress.
func (s *Scrollbar) Dragging() bool { return s.dragging }

func (s *Scrollbar) maxOffset() float64 {
	if !s.Scrollable() {
		return 0
	}
	return s.content - s.view
}

func (s *Scrollbar) setOffset(v float64) {
	if v < 0 {
		v = 0
	}
	if m := s.maxOffset(); v > m {
		v = m
	}
	s.offset = v
}

func (s *Scrollbar) trackLen() float64 {
	if s.horizontal {
		return s.bounds.W
	}
	return s.bounds.H
}

func (s *Scrollbar) trackStart() float64 {
	if s.horizontal {
		return s.bounds.X
	}
	return s.bounds.Y
}

func (s *Scrollbar) thumbLen() float64 {
	track := s.trackLen()
	if s.content <= 0 {
		return track
	}
	l := s.view / s.content * track
	if l < scrollbarMinThumb {
		l = scrollbarMinThumb
	}
	if l > track {
		l = track
	}
	return l
}

func (s *Scrollbar) thumbPos() float64 {
	m := s.maxOffset()
	if m <= 0 {
		return 0
	}
	return s.offset / m * (s.trackLen() - s.thumbLen())
}

func (s *Scrollbar) axisPos(x, y float64) float64 {
	if s.horizontal {
		return x
	}
	return y
}

// Handle tracks hover, drag and track paging. It reports whether the
// offset or the bar's appearance changed.
func (s *Scrollbar) Handle(ev input.Event) bool {
	if !s.Scrollable() {
		return false
	}
	switch ev := ev.(type) {
	case input.PointerMove:
		changed := false
		was := s.hovered
		s.hovered = s.bounds.Contains(ev.X, ev.Y)
		if was != s.hovered {
			changed = true
		}
		if s.dragging {
			maxThumb := s.trackLen() - s.thumbLen()
			pos := s.axisPos(ev.X, ev.Y) - s.trackStart() - s.grabOffset
			if pos < 0 {
				pos = 0
			}
			if pos > maxThumb {
				pos = maxThumb
			}
			before := s.offset
			if maxThumb > 0 {
				s.setOffset(pos / maxThumb * s.maxOffset())
			}
			if s.offset != before {
				changed = true
			}
		}
		return changed
	case input.ButtonPress:
		if ev.Button != input.ButtonLeft || !s.bounds.Contains(ev.X, ev.Y) {
			return false
		}
		p := s.axisPos(ev.X, ev.Y) - s.trackStart()
		start, length := s.thumbPos(), s.thumbLen()
		if p >= start && p < start+length {
			s.dragging = true
			s.grabOffset = p - start
			return true
		}
		if p < start {
			s.setOffset(s.offset - s.view)
		} else {
			s.setOffset(s.offset + s.view)
		}
		return true
	case input.ButtonRelease:
		// Any release ends the drag so a stuck thumb can never follow
		// the pointer across frames.
		if s.dragging {
			s.dragging = false
			s.grabOffset = 0
			return true
		}
	}
	return false
}

// Draw paints the track and thumb. Nothing is drawn while the content
// fits the view.
func (s *Scrollbar) Draw(c *render.Canvas, pal *theme.Palette, _ *render.Face) {
	if !s.Scrollable() {
		return
	}
	width := float64(scrollbarIdleWidth)
	if s.hovered || s.dragging {
		width = ScrollbarWidth
	}
	drawW := width - 2

	thumbCol := pal.InputBorder
	if s.hovered || s.dragging {
		thumbCol = pal.InputBorderFocused
	}
	trackCol := theme.Darken(pal.InputBg, 0.05)

	if s.horizontal {
		y := s.bounds.Y + s.bounds.H - width
		c.FillRoundedRect(s.bounds.X, y, s.bounds.W, drawW, scrollbarRadius, trackCol)
		c.FillRoundedRect(s.bounds.X+s.thumbPos(), y, s.thumbLen(), drawW, scrollbarRadius, thumbCol)
		return
	}
	x := s.bounds.X + s.bounds.W - width
	c.FillRoundedRect(x, s.bounds.Y, drawW, s.bounds.H, scrollbarRadius, trackCol)
	c.FillRoundedRect(x, s.bounds.Y+s.thumbPos(), drawW, s.thumbLen(), scrollbarRadius, thumbCol)
}
