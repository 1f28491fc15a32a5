package dialog

import (
	"github.com/odvcencio/placard/pkg/display"
	"github.com/odvcencio/placard/pkg/input"
	"github.com/odvcencio/placard/pkg/render"
	"github.com/odvcencio/placard/pkg/theme"

	"github.com/odvcencio/placard/pkg/dialog/widget"
)

const (
	entryPadding    = 20
	entryInputWidth = 300
)

// EntryOptions configure a text entry dialog.
type EntryOptions struct {
	Title string
	// Text is the prompt above the input; empty means no prompt line.
	Text string
	// Preset is the initial input content.
	Preset string
	// Masked renders the content as asterisks; the payload is never
	// masked.
	Masked bool

	// Width and Height override the computed window size when positive.
	Width, Height int

	OKLabel     string
	CancelLabel string
}

// Entry is the single-line input dialog, doubling as the password dialog
// when masked. The input is focused from the start and Enter confirms.
type Entry struct {
	title string
	text  string
	pal   *theme.Palette

	inp    *widget.TextInput
	ok     *widget.Button
	cancel *widget.Button

	width, height float64
	promptY       float64
	overInput     bool

	outcome Outcome
	done    bool
}

// NewEntry lays out an entry dialog.
func NewEntry(opts EntryOptions, pal *theme.Palette, f *render.Face) *Entry {
	if opts.Title == "" {
		opts.Title = "Entry"
	}
	if opts.OKLabel == "" {
		opts.OKLabel = "OK"
	}
	if opts.CancelLabel == "" {
		opts.CancelLabel = "Cancel"
	}

	d := &Entry{
		title:  opts.Title,
		text:   opts.Text,
		pal:    pal,
		inp:    widget.NewTextInput(entryInputWidth),
		ok:     widget.NewButton(opts.OKLabel, f),
		cancel: widget.NewButton(opts.CancelLabel, f),
	}
	d.inp.SetMasked(opts.Masked)
	d.inp.SetText(opts.Preset)
	d.inp.SetFocus(true)
	d.layout(f, opts.Width, opts.Height)
	return d
}

func (d *Entry) layout(f *render.Face, forceW, forceH int) {
	var promptH float64
	if d.text != "" {
		promptH = f.LineHeight()
	}

	contentW := max(entryInputWidth, d.ok.Width()+d.cancel.Width()+buttonGap)
	d.width = contentW + 2*entryPadding
	d.height = 3*entryPadding + promptH + widget.InputHeight + buttonGap + widget.ButtonHeight
	if promptH > 0 {
		d.height += buttonGap
	}
	if forceW > 0 {
		d.width = float64(forceW)
	}
	if forceH > 0 {
		d.height = float64(forceH)
	}

	y := float64(entryPadding)
	d.promptY = y
	if promptH > 0 {
		y += promptH + buttonGap
	}
	d.inp.SetPosition(entryPadding, y)
	layoutRowRight([]*widget.Button{d.ok, d.cancel},
		d.width-entryPadding, d.height-2*entryPadding-widget.ButtonHeight)
}

// Title returns the window title.
func (d *Entry) Title() string { return d.title }

// Size returns the logical window size.
func (d *Entry) Size() (int, int) { return int(d.width), int(d.height) }

// Handle feeds keys to the input and pointer events to the buttons.
func (d *Entry) Handle(ev input.Event) bool {
	if mv, ok := ev.(input.PointerMove); ok {
		d.overInput = d.inp.Bounds().Contains(mv.X, mv.Y)
	}

	changed := d.inp.Handle(ev)
	if d.inp.Submitted() {
		d.finish(Confirmed(d.inp.Text()))
		return true
	}

	if d.ok.Handle(ev) {
		changed = true
	}
	if d.cancel.Handle(ev) {
		changed = true
	}
	if d.ok.Clicked() {
		d.finish(Confirmed(d.inp.Text()))
	}
	if d.cancel.Clicked() {
		d.finish(Cancelled())
	}
	return changed
}

func (d *Entry) finish(o Outcome) {
	if !d.done {
		d.outcome = o
		d.done = true
	}
}

// CursorShape is an I-beam while the pointer is over the input.
func (d *Entry) CursorShape() display.CursorShape {
	if d.overInput {
		return display.CursorText
	}
	return display.CursorDefault
}

// Tick does nothing; the dialog has no animated state.
func (d *Entry) Tick() bool { return false }

// Outcome returns the terminal outcome.
func (d *Entry) Outcome() (Outcome, bool) { return d.outcome, d.done }

// Draw paints the prompt, the input and the button row on a plain
// window background.
func (d *Entry) Draw(c *render.Canvas, f *render.Face) {
	c.Fill(d.pal.WindowBg)
	if d.text != "" {
		c.DrawText(f, d.text, entryPadding, d.promptY, d.pal.Text)
	}
	d.inp.Draw(c, d.pal, f)
	d.ok.Draw(c, d.pal, f)
	d.cancel.Draw(c, d.pal, f)
}
