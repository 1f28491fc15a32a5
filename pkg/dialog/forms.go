package dialog

import (
	"strings"

	"github.com/odvcencio/placard/pkg/dialog/widget"
	"github.com/odvcencio/placard/pkg/display"
	"github.com/odvcencio/placard/pkg/input"
	"github.com/odvcencio/placard/pkg/render"
	"github.com/odvcencio/placard/pkg/theme"
)

const (
	formsPadding      = 20
	formsFieldHeight  = 32
	formsFieldSpacing = 12
	formsLabelWidth   = 120
	formsInputWidth   = 250
	formsMinWidth     = 420
)

// FormField is one named form input; password fields mask their text.
type FormField struct {
	Label    string
	Password bool
}

// FormsOptions configure a forms dialog.
type FormsOptions struct {
	Title       string
	Text        string
	Fields      []FormField
	Separator   string
	Width       int
	Height      int
	OKLabel     string
	CancelLabel string
}

// Forms collects values for an ordered column of labelled entry and
// password fields. Tab and Shift+Tab cycle the focus, Enter moves to
// the next field and confirms on the last one. The payload joins the
// field values with the separator in field order.
type Forms struct {
	pal   *theme.Palette
	title string
	sep   string

	width, height float64
	promptY       float64
	promptLines   []string
	labels        [][]string
	fieldYs       []float64

	inputs  []*widget.TextInput
	focused int

	ok     *widget.Button
	cancel *widget.Button

	overInput bool

	done    bool
	outcome Outcome
}

// NewForms lays out a forms dialog. With no fields there is nothing to
// ask, so the dialog confirms immediately with an empty payload.
func NewForms(opts FormsOptions, pal *theme.Palette, f *render.Face) *Forms {
	title := opts.Title
	if title == "" {
		title = "Forms"
	}
	sep := opts.Separator
	if sep == "" {
		sep = "|"
	}
	okLabel := opts.OKLabel
	if okLabel == "" {
		okLabel = "OK"
	}
	cancelLabel := opts.CancelLabel
	if cancelLabel == "" {
		cancelLabel = "Cancel"
	}

	d := &Forms{
		pal:    pal,
		title:  title,
		sep:    sep,
		ok:     widget.NewButton(okLabel, f),
		cancel: widget.NewButton(cancelLabel, f),
	}
	if len(opts.Fields) == 0 {
		d.done = true
		d.outcome = Confirmed("")
		d.width, d.height = formsMinWidth, 2*formsPadding+widget.ButtonHeight
		return d
	}

	promptH := 0.0
	if opts.Text != "" {
		d.promptLines = f.Wrap(opts.Text, formsInputWidth)
		promptH = float64(len(d.promptLines)) * f.LineHeight()
	}

	content := max(formsLabelWidth+formsInputWidth+10, rowWidth([]*widget.Button{d.ok, d.cancel}))
	d.width = max(content+2*formsPadding, formsMinWidth)
	fieldsH := float64(len(opts.Fields)) * (formsFieldHeight + formsFieldSpacing)
	d.height = 2*formsPadding + promptH + fieldsH + 16 + widget.ButtonHeight
	if promptH > 0 {
		d.height += 16
	}
	if opts.Width > 0 {
		d.width = float64(opts.Width)
	}
	if opts.Height > 0 {
		d.height = float64(opts.Height)
	}

	d.promptY = formsPadding
	y := float64(formsPadding)
	if promptH > 0 {
		y += promptH + 16
	}

	inputX := float64(formsPadding + formsLabelWidth + 10)
	for i, field := range opts.Fields {
		fieldY := y + float64(i)*(formsFieldHeight+formsFieldSpacing)
		d.fieldYs = append(d.fieldYs, fieldY)
		d.labels = append(d.labels, f.Wrap(field.Label, formsLabelWidth))

		in := widget.NewTextInput(formsInputWidth)
		in.SetMasked(field.Password)
		in.SetPosition(inputX, fieldY)
		d.inputs = append(d.inputs, in)
	}
	d.inputs[0].SetFocus(true)

	d.anchorButtons()
	return d
}

func (d *Forms) anchorButtons() {
	layoutRowRight([]*widget.Button{d.ok, d.cancel}, d.width-formsPadding, d.height-formsPadding-widget.ButtonHeight)
}

// Title returns the window title.
func (d *Forms) Title() string { return d.title }

// Size returns the logical window size.
func (d *Forms) Size() (int, int) { return int(d.width), int(d.height) }

// Handle routes keys to the focused field and moves the focus on Tab,
// Shift+Tab and Enter; a click focuses the field under the pointer.
func (d *Forms) Handle(ev input.Event) bool {
	if len(d.inputs) == 0 {
		return false
	}

	changed := false
	switch e := ev.(type) {
	case input.Resize:
		d.width, d.height = float64(e.Width), float64(e.Height)
		d.anchorButtons()
		return true
	case input.PointerMove:
		d.overInput = d.inputAt(e.X, e.Y) >= 0
	case input.ButtonPress:
		if e.Button == input.ButtonLeft {
			if i := d.inputAt(e.X, e.Y); i >= 0 && i != d.focused {
				d.setFocus(i)
				changed = true
			}
		}
	case input.KeyPress:
		switch e.Key {
		case input.KeyTab:
			if e.Mods.Shift {
				d.setFocus((d.focused + len(d.inputs) - 1) % len(d.inputs))
			} else {
				d.setFocus((d.focused + 1) % len(d.inputs))
			}
			return true
		case input.KeyEnter:
			if d.focused+1 < len(d.inputs) {
				d.setFocus(d.focused + 1)
			} else {
				d.finish(Confirmed(d.payload()))
			}
			return true
		case input.KeyEscape:
			d.finish(Cancelled())
			return true
		}
	}

	if d.inputs[d.focused].Handle(ev) {
		changed = true
	}
	if d.ok.Handle(ev) {
		changed = true
	}
	if d.cancel.Handle(ev) {
		changed = true
	}
	if d.ok.Clicked() {
		d.finish(Confirmed(d.payload()))
	}
	if d.cancel.Clicked() {
		d.finish(Cancelled())
	}
	return changed
}

func (d *Forms) inputAt(x, y float64) int {
	for i, in := range d.inputs {
		if in.Bounds().Contains(x, y) {
			return i
		}
	}
	return -1
}

func (d *Forms) setFocus(i int) {
	d.inputs[d.focused].SetFocus(false)
	d.focused = i
	d.inputs[d.focused].SetFocus(true)
}

func (d *Forms) payload() string {
	values := make([]string, len(d.inputs))
	for i, in := range d.inputs {
		values[i] = in.Text()
	}
	return strings.Join(values, d.sep)
}

func (d *Forms) finish(o Outcome) {
	if !d.done {
		d.outcome = o
		d.done = true
	}
}

// CursorShape returns the text cursor while the pointer is over one of
// the input fields.
func (d *Forms) CursorShape() display.CursorShape {
	if d.overInput {
		return display.CursorText
	}
	return display.CursorDefault
}

// Tick does nothing; the dialog has no animated state.
func (d *Forms) Tick() bool { return false }

// Outcome returns the terminal outcome.
func (d *Forms) Outcome() (Outcome, bool) { return d.outcome, d.done }

// Draw paints the bordered dialog background, the prompt, a label and
// input pair per field and the button row.
func (d *Forms) Draw(c *render.Canvas, f *render.Face) {
	c.DialogBackground(d.pal.WindowBg, d.pal.WindowBorder, d.pal.WindowShadow)

	if len(d.promptLines) > 0 {
		c.DrawTextLines(f, d.promptLines, formsPadding, d.promptY, d.pal.Text)
	}

	for i, in := range d.inputs {
		labelH := float64(len(d.labels[i])) * f.LineHeight()
		labelY := d.fieldYs[i] + (formsFieldHeight-labelH)/2
		c.DrawTextLines(f, d.labels[i], formsPadding, labelY, d.pal.Text)
		in.Draw(c, d.pal, f)
	}

	d.ok.Draw(c, d.pal, f)
	d.cancel.Draw(c, d.pal, f)
}
