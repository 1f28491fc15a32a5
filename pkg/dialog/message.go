package dialog

import (
	"github.com/odvcencio/placard/pkg/input"
	"github.com/odvcencio/placard/pkg/render"
	"github.com/odvcencio/placard/pkg/theme"

	"github.com/odvcencio/placard/pkg/dialog/widget"
)

const (
	messagePadding   = 20
	messageTextWidth = 350
	messageMinWidth  = 300
	messageGap       = 20
)

// MessageOptions configure a message dialog.
type MessageOptions struct {
	Title string
	Text  string
	Icon  Icon
	// Buttons in activation order; the first exits 0, the second 1, and
	// so on. Empty means a single OK.
	Buttons []string

	// Width and Height override the computed window size when positive.
	Width, Height int
}

// Message is the informational dialog family: info, warning, error and
// question. It has no widget state beyond its buttons; dragging the
// empty body hands the window to the window manager.
type Message struct {
	title string
	text  string
	icon  Icon
	pal   *theme.Palette

	lines   []string
	buttons []*widget.Button

	width, height float64
	textX, textY  float64

	dragArmed bool
	wantMove  bool

	outcome Outcome
	done    bool
}

// NewMessage lays out a message dialog. The face is used for measuring;
// drawing may use a face at another scale with identical metrics.
func NewMessage(opts MessageOptions, pal *theme.Palette, f *render.Face) *Message {
	labels := opts.Buttons
	if len(labels) == 0 {
		labels = []string{"OK"}
	}
	d := &Message{
		title: opts.Title,
		text:  opts.Text,
		icon:  opts.Icon,
		pal:   pal,
	}
	for _, label := range labels {
		d.buttons = append(d.buttons, widget.NewButton(label, f))
	}
	d.layout(f, opts.Width, opts.Height)
	return d
}

func (d *Message) layout(f *render.Face, forceW, forceH int) {
	d.lines = f.Wrap(d.text, messageTextWidth)
	var textW float64
	for _, line := range d.lines {
		if w := f.Advance(line); w > textW {
			textW = w
		}
	}
	textH := float64(len(d.lines)) * f.LineHeight()

	var iconW float64
	if d.icon != IconNone {
		iconW = render.IconSize + messageGap
	}

	d.width = max(iconW+textW, rowWidth(d.buttons)) + 2*messagePadding
	if d.width < messageMinWidth {
		d.width = messageMinWidth
	}

	contentH := textH
	if d.icon != IconNone && contentH < render.IconSize {
		contentH = render.IconSize
	}
	d.height = messagePadding + contentH + messageGap + widget.ButtonHeight + messagePadding

	d.textX = messagePadding + iconW
	d.textY = messagePadding
	if d.icon != IconNone && textH < render.IconSize {
		d.textY = messagePadding + (render.IconSize-textH)/2
	}

	if forceW > 0 {
		d.width = float64(forceW)
	}
	if forceH > 0 {
		d.height = float64(forceH)
	}
	d.anchorButtons()
}

func (d *Message) anchorButtons() {
	layoutRowRight(d.buttons, d.width-messagePadding, d.height-messagePadding-widget.ButtonHeight)
}

// Title returns the window title.
func (d *Message) Title() string { return d.title }

// Size returns the logical window size.
func (d *Message) Size() (int, int) { return int(d.width), int(d.height) }

// Handle dispatches pointer events to the buttons and arms a window
// move when the body is pressed outside every button.
func (d *Message) Handle(ev input.Event) bool {
	changed := false
	switch e := ev.(type) {
	case input.Resize:
		d.width, d.height = float64(e.Width), float64(e.Height)
		d.anchorButtons()
		return true
	case input.PointerMove:
		if d.dragArmed {
			d.dragArmed = false
			d.wantMove = true
		}
	case input.ButtonPress:
		consumed := false
		for _, b := range d.buttons {
			if b.Handle(ev) {
				consumed = true
				changed = true
			}
		}
		if e.Button == input.ButtonLeft && !consumed {
			d.dragArmed = true
		}
		return changed
	case input.ButtonRelease:
		d.dragArmed = false
	}

	for _, b := range d.buttons {
		if b.Handle(ev) {
			changed = true
		}
	}
	for i, b := range d.buttons {
		if b.Clicked() {
			d.outcome = Outcome{State: StateConfirmed, Button: i}
			d.done = true
		}
	}
	return changed
}

// WantsMove reports and clears a pending window-move request.
func (d *Message) WantsMove() bool {
	w := d.wantMove
	d.wantMove = false
	return w
}

// Tick does nothing; the dialog has no animated state.
func (d *Message) Tick() bool { return false }

// Outcome returns the terminal outcome once a button was activated.
func (d *Message) Outcome() (Outcome, bool) { return d.outcome, d.done }

// Draw paints the plain window background, the severity badge, the
// wrapped text and the button row.
func (d *Message) Draw(c *render.Canvas, f *render.Face) {
	c.Fill(d.pal.WindowBg)

	if d.icon != IconNone {
		shape, col, symbol := badgeFor(d.icon, d.pal)
		c.DrawBadge(f, shape, col, symbol, messagePadding, messagePadding)
	}

	c.DrawTextLines(f, d.lines, d.textX, d.textY, d.pal.Text)

	for _, b := range d.buttons {
		b.Draw(c, d.pal, f)
	}
}

func badgeFor(icon Icon, pal *theme.Palette) (render.BadgeShape, render.Color, string) {
	switch icon {
	case IconWarning:
		return render.BadgeTriangle, pal.IconWarning, "!"
	case IconError:
		return render.BadgeCircle, pal.IconError, "X"
	case IconQuestion:
		return render.BadgeCircle, pal.IconQuestion, "?"
	default:
		return render.BadgeCircle, pal.IconInfo, "i"
	}
}
