package widget

import "testing"

// newTestScrollbar returns a vertical bar with a 100 unit track over
// 1000 units of content: thumb length 20 (the minimum), 80 units of
// thumb travel, 900 units of scrollable range.
func newTestScrollbar() *Scrollbar {
	s := NewScrollbar(false)
	s.Layout(Rect{X: 88, Y: 0, W: 12, H: 100})
	s.SetRange(1000, 100)
	return s
}

func TestScrollbarThumbDragTracksPointer(t *testing.T) {
	s := newTestScrollbar()

	if !s.Handle(leftPress(90, 5)) {
		t.Fatal("press inside the thumb should start a drag")
	}
	if !s.Dragging() {
		t.Fatal("expected dragging state")
	}

	s.Handle(moveTo(90, 45))
	if s.Offset() != 450 {
		t.Errorf("offset after drag = %v, want 450", s.Offset())
	}
}

func TestScrollbarDragClampsAtEnds(t *testing.T) {
	s := newTestScrollbar()
	s.Handle(leftPress(90, 5))

	s.Handle(moveTo(90, 1000))
	if s.Offset() != 900 {
		t.Errorf("offset past the end = %v, want 900", s.Offset())
	}

	s.Handle(moveTo(90, -100))
	if s.Offset() != 0 {
		t.Errorf("offset before the start = %v, want 0", s.Offset())
	}
}

func TestScrollbarReleaseAlwaysClearsDrag(t *testing.T) {
	s := newTestScrollbar()

	// Press and release with no movement in between; the drag must not
	// survive the release.
	s.Handle(leftPress(90, 5))
	s.Handle(leftRelease(90, 5))
	if s.Dragging() {
		t.Fatal("drag survived an immediate release")
	}

	s.Handle(moveTo(90, 45))
	if s.Offset() != 0 {
		t.Errorf("released bar still followed the pointer to offset %v", s.Offset())
	}
}

func TestScrollbarTrackClickPages(t *testing.T) {
	s := newTestScrollbar()

	s.Handle(leftPress(90, 50))
	if s.Offset() != 100 {
		t.Errorf("page down moved offset to %v, want one view length (100)", s.Offset())
	}
	if s.Dragging() {
		t.Error("track paging should not start a drag")
	}

	s.Handle(leftPress(90, 2))
	if s.Offset() != 0 {
		t.Errorf("page up moved offset to %v, want 0", s.Offset())
	}
}

func TestScrollbarInertWhenContentFits(t *testing.T) {
	s := NewScrollbar(false)
	s.Layout(Rect{X: 88, Y: 0, W: 12, H: 100})
	s.SetRange(50, 100)

	if s.Scrollable() {
		t.Fatal("content smaller than the view should not scroll")
	}
	if s.Handle(leftPress(90, 50)) {
		t.Error("inert bar consumed a press")
	}
}

func TestScrollbarOffsetReclampsOnRangeChange(t *testing.T) {
	s := newTestScrollbar()
	s.SetOffset(900)

	s.SetRange(200, 100)
	if s.Offset() != 100 {
		t.Errorf("offset after shrink = %v, want 100", s.Offset())
	}
}

func TestScrollbarHorizontalAxis(t *testing.T) {
	s := NewScrollbar(true)
	s.Layout(Rect{X: 0, Y: 88, W: 100, H: 12})
	s.SetRange(400, 100)

	// Thumb length 25, travel 75, range 300.
	s.Handle(leftPress(10, 90))
	if !s.Dragging() {
		t.Fatal("press inside the horizontal thumb should start a drag")
	}
	s.Handle(moveTo(40, 90))
	if s.Offset() != 120 {
		t.Errorf("offset after horizontal drag = %v, want 120", s.Offset())
	}
}
