package widget

import (
	"strings"

	"github.com/odvcencio/placard/pkg/input"
	"github.com/odvcencio/placard/pkg/render"
	"github.com/odvcencio/placard/pkg/theme"
)

const (
	// InputHeight is the fixed logical height of a single-line input.
	InputHeight = 32

	inputRadius  = 5
	inputPadding = 8
)

// TextInput is a single-line editor with a rune-indexed cursor and an
// optional selection span. Focus is assigned by the owning dialog, not by
// the widget itself, so forms can move focus between several inputs.
type TextInput struct {
	bounds      Rect
	text        []rune
	cursor      int
	anchor      int
	focused     bool
	masked      bool
	placeholder string
	submitted   bool
}

// NewTextInput creates an empty input of the given logical width.
func NewTextInput(width float64) *TextInput {
	return &TextInput{bounds: Rect{W: width, H: InputHeight}}
}

// Bounds returns the input's position and size.
func (t *TextInput) Bounds() Rect { return t.bounds }

// SetPosition moves the input's top-left corner.
func (t *TextInput) SetPosition(x, y float64) { t.bounds.X, t.bounds.Y = x, y }

// SetMasked switches password masking on or off.
func (t *TextInput) SetMasked(masked bool) { t.masked = masked }

// SetPlaceholder sets the hint shown while the input is empty and unfocused.
func (t *TextInput) SetPlaceholder(s string) { t.placeholder = s }

// SetText replaces the content and puts the cursor at the end.
func (t *TextInput) SetText(s string) {
	t.text = []rune(s)
	t.cursor = len(t.text)
	t.anchor = t.cursor
}

// Text returns the current content. Masking never applies here; it is a
// rendering concern only.
func (t *TextInput) Text() string { return string(t.text) }

// SetFocus assigns or removes keyboard focus.
func (t *TextInput) SetFocus(focused bool) { t.focused = focused }

// Focused reports whether the input has keyboard focus.
func (t *TextInput) Focused() bool { return t.focused }

// Submitted reports and clears the flag latched by Enter.
func (t *TextInput) Submitted() bool {
	s := t.submitted
	t.submitted = false
	return s
}

// SelectAll spans the selection over the whole content.
func (t *TextInput) SelectAll() {
	t.anchor = 0
	t.cursor = len(t.text)
}

// Handle processes key events while focused. Pointer events are left to
// the owning dialog, which decides focus.
func (t *TextInput) Handle(ev input.Event) bool {
	key, ok := ev.(input.KeyPress)
	if !ok || !t.focused {
		return false
	}
	return t.handleKey(key)
}

func (t *TextInput) handleKey(ev input.KeyPress) bool {
	switch ev.Key {
	case input.KeyBackspace:
		if t.hasSelection() {
			t.deleteSelection()
		} else if t.cursor > 0 {
			t.text = append(t.text[:t.cursor-1], t.text[t.cursor:]...)
			t.cursor--
			t.anchor = t.cursor
		}
		return true
	case input.KeyDelete:
		if t.hasSelection() {
			t.deleteSelection()
		} else if t.cursor < len(t.text) {
			t.text = append(t.text[:t.cursor], t.text[t.cursor+1:]...)
		}
		return true
	case input.KeyLeft:
		if ev.Mods.Ctrl {
			t.moveTo(0, ev.Mods.Shift)
		} else if t.hasSelection() && !ev.Mods.Shift {
			t.moveTo(t.selStart(), false)
		} else if t.cursor > 0 {
			t.moveTo(t.cursor-1, ev.Mods.Shift)
		}
		return true
	case input.KeyRight:
		if ev.Mods.Ctrl {
			t.moveTo(len(t.text), ev.Mods.Shift)
		} else if t.hasSelection() && !ev.Mods.Shift {
			t.moveTo(t.selEnd(), false)
		} else if t.cursor < len(t.text) {
			t.moveTo(t.cursor+1, ev.Mods.Shift)
		}
		return true
	case input.KeyHome:
		t.moveTo(0, ev.Mods.Shift)
		return true
	case input.KeyEnd:
		t.moveTo(len(t.text), ev.Mods.Shift)
		return true
	case input.KeyEnter:
		t.submitted = true
		return true
	}

	if ev.Mods.Ctrl {
		if ev.Rune == 'a' || ev.Rune == 'A' {
			t.SelectAll()
			return true
		}
		return false
	}
	if ev.Rune != 0 && !ev.Mods.Alt {
		t.insert(ev.Rune)
		return true
	}
	return false
}

func (t *TextInput) hasSelection() bool { return t.cursor != t.anchor }

func (t *TextInput) selStart() int { return min(t.cursor, t.anchor) }
func (t *TextInput) selEnd() int   { return max(t.cursor, t.anchor) }

func (t *TextInput) moveTo(pos int, extend bool) {
	t.cursor = pos
	if !extend {
		t.anchor = pos
	}
}

func (t *TextInput) deleteSelection() {
	start, end := t.selStart(), t.selEnd()
	t.text = append(t.text[:start], t.text[end:]...)
	t.cursor = start
	t.anchor = start
}

func (t *TextInput) insert(r rune) {
	if t.hasSelection() {
		t.deleteSelection()
	}
	t.text = append(t.text[:t.cursor], append([]rune{r}, t.text[t.cursor:]...)...)
	t.cursor++
	t.anchor = t.cursor
}

func (t *TextInput) display() string {
	if t.masked {
		return strings.Repeat("*", len(t.text))
	}
	return string(t.text)
}

// Draw paints the field, the selection span, the content or placeholder,
// and the cursor line.
func (t *TextInput) Draw(c *render.Canvas, pal *theme.Palette, f *render.Face) {
	bg, border := pal.InputBg, pal.InputBorder
	if t.focused {
		bg, border = pal.InputBgFocused, pal.InputBorderFocused
	}
	c.FillRoundedRect(t.bounds.X, t.bounds.Y, t.bounds.W, t.bounds.H, inputRadius, bg)
	c.StrokeRoundedRect(t.bounds.X, t.bounds.Y, t.bounds.W, t.bounds.H, inputRadius, border, 1)

	display := t.display()
	text, col := display, pal.Text
	if display == "" && !t.focused {
		text, col = t.placeholder, pal.Placeholder
	}

	textX := t.bounds.X + inputPadding
	textY := t.bounds.Y + (t.bounds.H-f.LineHeight())/2

	restore := c.PushClip(textX, t.bounds.Y, t.bounds.W-2*inputPadding, t.bounds.H)

	if t.focused && t.hasSelection() {
		selX := textX + f.Advance(string([]rune(display)[:t.selStart()]))
		selW := f.Advance(string([]rune(display)[t.selStart():t.selEnd()]))
		c.FillRect(selX, t.bounds.Y+4, selW, t.bounds.H-8, pal.InputBorderFocused.WithAlpha(90))
	}

	if text != "" {
		c.DrawText(f, text, textX, textY, col)
	}

	if t.focused {
		cursorX := textX + f.Advance(string([]rune(display)[:t.cursor]))
		c.FillRect(cursorX, t.bounds.Y+6, 1, t.bounds.H-12, pal.Text)
	}

	restore()
}
