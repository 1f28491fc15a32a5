package dialog

import (
	"testing"

	"github.com/odvcencio/placard/pkg/dialog/widget"
	"github.com/odvcencio/placard/pkg/input"
	"github.com/odvcencio/placard/pkg/render"
	"github.com/odvcencio/placard/pkg/theme"
)

func testFace(t *testing.T) *render.Face {
	t.Helper()
	f, err := render.NewFace(render.BaseTextSize, 1)
	if err != nil {
		t.Fatalf("NewFace: %v", err)
	}
	return f
}

func testPalette() *theme.Palette {
	return theme.Dark()
}

func moveTo(x, y float64) input.PointerMove {
	return input.PointerMove{X: x, Y: y}
}

func leftPress(x, y float64) input.ButtonPress {
	return input.ButtonPress{Button: input.ButtonLeft, X: x, Y: y}
}

func leftRelease(x, y float64) input.ButtonRelease {
	return input.ButtonRelease{Button: input.ButtonLeft, X: x, Y: y}
}

func keyPress(k input.Key) input.KeyPress {
	return input.KeyPress{Key: k}
}

func runePress(r rune) input.KeyPress {
	return input.KeyPress{Rune: r}
}

func typeString(c Controller, s string) {
	for _, r := range s {
		c.Handle(runePress(r))
	}
}

// clickAt moves the pointer to a point and taps the left button there,
// the sequence a real server delivers for a click.
func clickAt(c Controller, x, y float64) {
	c.Handle(moveTo(x, y))
	c.Handle(leftPress(x, y))
	c.Handle(leftRelease(x, y))
}

// clickOn clicks the center of a widget rect.
func clickOn(c Controller, r widget.Rect) {
	clickAt(c, r.X+r.W/2, r.Y+r.H/2)
}

// feedOf fakes a finished stream: every line buffered, EOF reached.
func feedOf(lines ...string) *Feed {
	return &Feed{lines: lines, done: true}
}

// openFeedOf fakes a stream that has produced lines but not yet ended.
func openFeedOf(lines ...string) *Feed {
	return &Feed{lines: lines}
}

func requireDone(t *testing.T, c Controller) Outcome {
	t.Helper()
	o, done := c.Outcome()
	if !done {
		t.Fatal("dialog has no terminal outcome yet")
	}
	return o
}

func requireActive(t *testing.T, c Controller) {
	t.Helper()
	if _, done := c.Outcome(); done {
		t.Fatal("dialog terminated early")
	}
}
