package dialog

import (
	"strconv"

	"github.com/odvcencio/placard/pkg/input"
	"github.com/odvcencio/placard/pkg/render"
	"github.com/odvcencio/placard/pkg/theme"

	"github.com/odvcencio/placard/pkg/dialog/widget"
)

const (
	scalePadding  = 20
	scaleMinWidth = 350
)

// ScaleOptions configure a scale dialog.
type ScaleOptions struct {
	Title string
	// Text is the prompt above the slider.
	Text string

	Value, Min, Max, Step int

	// HideValue suppresses the numeric readout under the slider.
	HideValue bool

	// Width and Height override the computed window size when positive.
	Width, Height int

	OKLabel     string
	CancelLabel string
}

// Scale selects an integer on a slider. The value is clamped to
// [min, max] and snapped to the step; Enter or OK confirm it as text.
type Scale struct {
	title string
	text  string
	pal   *theme.Palette

	slider *widget.Slider
	ok     *widget.Button
	cancel *widget.Button

	step          int
	hideValue     bool
	width, height float64
	promptY       float64
	valueY        float64

	outcome Outcome
	done    bool
}

// NewScale lays out a scale dialog.
func NewScale(opts ScaleOptions, pal *theme.Palette, f *render.Face) *Scale {
	if opts.Title == "" {
		opts.Title = "Scale"
	}
	if opts.OKLabel == "" {
		opts.OKLabel = "OK"
	}
	if opts.CancelLabel == "" {
		opts.CancelLabel = "Cancel"
	}

	d := &Scale{
		title:     opts.Title,
		text:      opts.Text,
		pal:       pal,
		slider:    widget.NewSlider(widget.SliderWidth, opts.Min, opts.Max, opts.Step, opts.Value),
		ok:        widget.NewButton(opts.OKLabel, f),
		cancel:    widget.NewButton(opts.CancelLabel, f),
		step:      max(opts.Step, 1),
		hideValue: opts.HideValue,
	}

	var promptH float64
	if d.text != "" {
		promptH = f.LineHeight()
	}

	contentW := max(float64(widget.SliderWidth), d.ok.Width()+d.cancel.Width()+buttonGap)
	d.width = max(contentW+2*scalePadding, scaleMinWidth)

	valueH := 0.0
	if !d.hideValue {
		valueH = 24
	}
	d.height = 2*scalePadding + promptH + widget.SliderHeight + 16 + valueH + widget.ButtonHeight + 16
	if promptH > 0 {
		d.height += 16
	}
	if opts.Width > 0 {
		d.width = float64(opts.Width)
	}
	if opts.Height > 0 {
		d.height = float64(opts.Height)
	}

	y := float64(scalePadding)
	d.promptY = y
	if promptH > 0 {
		y += promptH + 16
	}
	d.slider.SetPosition((d.width-widget.SliderWidth)/2, y)
	y += widget.SliderHeight + 16
	d.valueY = y

	layoutRowRight([]*widget.Button{d.ok, d.cancel},
		d.width-scalePadding, d.height-scalePadding-widget.ButtonHeight)
	return d
}

// Title returns the window title.
func (d *Scale) Title() string { return d.title }

// Size returns the logical window size.
func (d *Scale) Size() (int, int) { return int(d.width), int(d.height) }

// Handle drives the slider and buttons. Up and Down nudge by one step
// alongside Left and Right; Enter confirms and Escape cancels.
func (d *Scale) Handle(ev input.Event) bool {
	changed := d.slider.Handle(ev)

	if key, ok := ev.(input.KeyPress); ok {
		switch key.Key {
		case input.KeyUp:
			d.slider.SetValue(d.slider.Value() + d.step)
			return true
		case input.KeyDown:
			d.slider.SetValue(d.slider.Value() - d.step)
			return true
		case input.KeyEnter:
			d.finish(Confirmed(strconv.Itoa(d.slider.Value())))
			return true
		case input.KeyEscape:
			d.finish(Cancelled())
			return true
		}
	}

	if d.ok.Handle(ev) {
		changed = true
	}
	if d.cancel.Handle(ev) {
		changed = true
	}
	if d.ok.Clicked() {
		d.finish(Confirmed(strconv.Itoa(d.slider.Value())))
	}
	if d.cancel.Clicked() {
		d.finish(Cancelled())
	}
	return changed
}

func (d *Scale) finish(o Outcome) {
	if !d.done {
		d.outcome = o
		d.done = true
	}
}

// Tick does nothing; the dialog has no animated state.
func (d *Scale) Tick() bool { return false }

// Outcome returns the terminal outcome.
func (d *Scale) Outcome() (Outcome, bool) { return d.outcome, d.done }

// Draw paints the bordered dialog background, the prompt, the slider,
// the centered readout and the button row.
func (d *Scale) Draw(c *render.Canvas, f *render.Face) {
	c.DialogBackground(d.pal.WindowBg, d.pal.WindowBorder, d.pal.WindowShadow)

	if d.text != "" {
		c.DrawText(f, d.text, scalePadding, d.promptY, d.pal.Text)
	}

	d.slider.Draw(c, d.pal, f)

	if !d.hideValue {
		text := strconv.Itoa(d.slider.Value())
		c.DrawText(f, text, (d.width-f.Advance(text))/2, d.valueY, d.pal.Text)
	}

	d.ok.Draw(c, d.pal, f)
	d.cancel.Draw(c, d.pal, f)
}
