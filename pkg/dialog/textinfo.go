package dialog

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/odvcencio/placard/pkg/input"
	"github.com/odvcencio/placard/pkg/render"
	"github.com/odvcencio/placard/pkg/theme"

	"github.com/odvcencio/placard/pkg/dialog/widget"
)

const (
	textInfoPadding       = 16
	textInfoLineHeight    = 20
	textInfoMinWidth      = 400
	textInfoMinHeight     = 300
	textInfoDefaultWidth  = 500
	textInfoDefaultHeight = 400
)

// TextInfoOptions configure a text display dialog.
type TextInfoOptions struct {
	Title   string
	Content string
	// Filename is the source of the content, used to pick a syntax
	// highlighting lexer; empty means the content came from a stream.
	Filename string
	// Highlight enables syntax highlighting.
	Highlight bool
	// Checkbox adds a confirmation checkbox with the given label; OK
	// stays disabled until it is checked.
	Checkbox string

	// Width and Height override the default window size when positive.
	Width, Height int

	OKLabel     string
	CancelLabel string
}

// span is a colored run of text on one display line.
type span struct {
	text string
	col  render.Color
}

// TextInfo scrolls an immutable text buffer, optionally highlighted and
// optionally gated behind a confirmation checkbox.
type TextInfo struct {
	title string
	pal   *theme.Palette

	lines   [][]span
	visible int

	checkbox *widget.Checkbox
	ok       *widget.Button
	cancel   *widget.Button
	sb       *widget.Scrollbar

	width, height              float64
	areaX, areaY, areaW, areaH float64

	outcome Outcome
	done    bool
}

// NewTextInfo lays out a text display dialog and wraps its content.
func NewTextInfo(opts TextInfoOptions, pal *theme.Palette, f *render.Face) *TextInfo {
	if opts.Title == "" {
		opts.Title = "Text"
	}
	if opts.OKLabel == "" {
		opts.OKLabel = "OK"
	}
	if opts.CancelLabel == "" {
		opts.CancelLabel = "Cancel"
	}

	d := &TextInfo{
		title:  opts.Title,
		pal:    pal,
		ok:     widget.NewButton(opts.OKLabel, f),
		cancel: widget.NewButton(opts.CancelLabel, f),
		sb:     widget.NewScrollbar(false),
	}

	d.width = float64(max(orDefault(opts.Width, textInfoDefaultWidth), textInfoMinWidth))
	d.height = float64(max(orDefault(opts.Height, textInfoDefaultHeight), textInfoMinHeight))

	buttonY := d.height - textInfoPadding - widget.ButtonHeight
	contentBottom := buttonY
	if opts.Checkbox != "" {
		d.checkbox = widget.NewCheckbox(opts.Checkbox, f)
		checkboxY := buttonY - (16 + 8) - 8
		d.checkbox.SetPosition(textInfoPadding, checkboxY)
		d.ok.SetEnabled(false)
		contentBottom = checkboxY
	}

	d.areaX = textInfoPadding
	d.areaY = textInfoPadding
	d.areaW = d.width - 2*textInfoPadding
	d.areaH = contentBottom - textInfoPadding - 8

	maxTextW := d.areaW - 16
	if opts.Highlight {
		if rich := highlightContent(opts.Filename, opts.Content, pal.Text); rich != nil {
			for _, line := range rich {
				d.lines = append(d.lines, wrapSpans(f, line, maxTextW)...)
			}
		}
	}
	if d.lines == nil {
		for _, line := range f.Wrap(opts.Content, maxTextW) {
			d.lines = append(d.lines, []span{{text: line, col: pal.Text}})
		}
	}

	d.visible = int(d.areaH / textInfoLineHeight)
	d.sb.Layout(widget.Rect{
		X: d.areaX + d.areaW - widget.ScrollbarWidth,
		Y: d.areaY + 4,
		W: widget.ScrollbarWidth,
		H: d.areaH - 8,
	})
	d.sb.SetRange(float64(len(d.lines)), float64(d.visible))

	layoutRowRight([]*widget.Button{d.ok, d.cancel}, d.width-textInfoPadding, buttonY)
	return d
}

func orDefault(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

// Title returns the window title.
func (d *TextInfo) Title() string { return d.title }

// Size returns the logical window size.
func (d *TextInfo) Size() (int, int) { return int(d.width), int(d.height) }

// Handle scrolls the buffer and drives the checkbox and buttons.
func (d *TextInfo) Handle(ev input.Event) bool {
	changed := d.sb.Handle(ev)

	switch e := ev.(type) {
	case input.ButtonPress:
		switch e.Button {
		case input.ButtonWheelUp:
			d.sb.SetOffset(d.sb.Offset() - 3)
			changed = true
		case input.ButtonWheelDown:
			d.sb.SetOffset(d.sb.Offset() + 3)
			changed = true
		}
	case input.KeyPress:
		switch e.Key {
		case input.KeyUp:
			d.sb.SetOffset(d.sb.Offset() - 1)
			return true
		case input.KeyDown:
			d.sb.SetOffset(d.sb.Offset() + 1)
			return true
		case input.KeyPageUp:
			d.sb.SetOffset(d.sb.Offset() - float64(d.visible))
			return true
		case input.KeyPageDown:
			d.sb.SetOffset(d.sb.Offset() + float64(d.visible))
			return true
		case input.KeyHome:
			d.sb.SetOffset(0)
			return true
		case input.KeyEnd:
			d.sb.SetOffset(float64(len(d.lines)))
			return true
		case input.KeyEnter:
			if d.confirmAllowed() {
				d.finish(Confirmed(""))
			}
			return true
		case input.KeyEscape:
			d.finish(Cancelled())
			return true
		}
		if e.Rune == ' ' && d.checkbox != nil {
			d.checkbox.Toggle()
			d.ok.SetEnabled(d.checkbox.Checked())
			return true
		}
	}

	if d.checkbox != nil && d.checkbox.Handle(ev) {
		d.ok.SetEnabled(d.checkbox.Checked())
		changed = true
	}
	if d.ok.Handle(ev) {
		changed = true
	}
	if d.cancel.Handle(ev) {
		changed = true
	}
	if d.ok.Clicked() {
		d.finish(Confirmed(""))
	}
	if d.cancel.Clicked() {
		d.finish(Cancelled())
	}
	return changed
}

func (d *TextInfo) confirmAllowed() bool {
	return d.checkbox == nil || d.checkbox.Checked()
}

func (d *TextInfo) finish(o Outcome) {
	if !d.done {
		d.outcome = o
		d.done = true
	}
}

// Tick does nothing; the dialog has no animated state.
func (d *TextInfo) Tick() bool { return false }

// Outcome returns the terminal outcome.
func (d *TextInfo) Outcome() (Outcome, bool) { return d.outcome, d.done }

// Draw paints the bordered dialog background, the text area with its
// visible slice of lines, the scrollbar, the checkbox and the buttons.
func (d *TextInfo) Draw(c *render.Canvas, f *render.Face) {
	c.DialogBackground(d.pal.WindowBg, d.pal.WindowBorder, d.pal.WindowShadow)

	c.FillRoundedRect(d.areaX, d.areaY, d.areaW, d.areaH, 6, d.pal.InputBg)

	restore := c.PushClip(d.areaX, d.areaY, d.areaW, d.areaH)
	scroll := int(d.sb.Offset())
	for i := scroll; i < min(len(d.lines), scroll+d.visible); i++ {
		x := d.areaX + 8
		y := d.areaY + 8 + float64(i-scroll)*textInfoLineHeight
		for _, s := range d.lines[i] {
			c.DrawText(f, s.text, x, y, s.col)
			x += f.Advance(s.text)
		}
	}
	restore()

	d.sb.Draw(c, d.pal, f)
	c.StrokeRoundedRect(d.areaX, d.areaY, d.areaW, d.areaH, 6, d.pal.InputBorder, 1)

	if d.checkbox != nil {
		d.checkbox.Draw(c, d.pal, f)
	}
	d.ok.Draw(c, d.pal, f)
	d.cancel.Draw(c, d.pal, f)
}

// highlightContent tokenizes the content with a lexer matched to the
// filename, falling back to content analysis, and splits the colored
// tokens into per-source-line spans. Nil means no lexer matched.
func highlightContent(filename, content string, def render.Color) [][]span {
	var lexer chroma.Lexer
	if filename != "" {
		lexer = lexers.Match(filename)
	}
	if lexer == nil {
		lexer = lexers.Analyse(content)
	}
	if lexer == nil {
		return nil
	}
	lexer = chroma.Coalesce(lexer)

	iter, err := lexer.Tokenise(nil, content)
	if err != nil {
		return nil
	}

	lines := [][]span{nil}
	for token := iter(); token != chroma.EOF; token = iter() {
		if token.Value == "" {
			continue
		}
		col := tokenColor(token.Type, def)
		parts := strings.Split(token.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				lines = append(lines, nil)
			}
			if part != "" {
				appendSpan(&lines[len(lines)-1], span{text: part, col: col})
			}
		}
	}
	return lines
}

// tokenColor maps chroma token categories onto the accent colors the
// dialogs already use.
func tokenColor(t chroma.TokenType, def render.Color) render.Color {
	if t == chroma.Error {
		return render.RGB(234, 67, 53)
	}
	switch {
	case t.InCategory(chroma.Comment):
		return render.RGB(140, 140, 140)
	case t.InCategory(chroma.Keyword):
		return render.RGB(70, 130, 180)
	case t.InCategory(chroma.LiteralString):
		return render.RGB(80, 160, 100)
	case t.InCategory(chroma.LiteralNumber):
		return render.RGB(240, 180, 70)
	case t.InCategory(chroma.Name):
		switch t {
		case chroma.NameFunction, chroma.NameFunctionMagic:
			return render.RGB(70, 180, 130)
		case chroma.NameClass, chroma.NameNamespace, chroma.NameBuiltin:
			return render.RGB(180, 120, 180)
		}
	}
	return def
}

func appendSpan(spans *[]span, s span) {
	if s.text == "" {
		return
	}
	if n := len(*spans); n > 0 && (*spans)[n-1].col == s.col {
		(*spans)[n-1].text += s.text
		return
	}
	*spans = append(*spans, s)
}

// wrapSpans breaks one highlighted source line into display lines no
// wider than maxWidth, breaking at spaces the way plain wrapping does.
// A word with no break opportunity overflows rather than being cut.
func wrapSpans(f *render.Face, line []span, maxWidth float64) [][]span {
	type chunk struct {
		spans  []span
		spaced bool
	}
	var chunks []chunk
	cur := chunk{}
	for _, s := range line {
		parts := strings.Split(s.text, " ")
		for i, part := range parts {
			if i > 0 {
				chunks = append(chunks, cur)
				cur = chunk{spaced: true}
			}
			if part != "" {
				appendSpan(&cur.spans, span{text: part, col: s.col})
			}
		}
	}
	chunks = append(chunks, cur)

	measure := func(spans []span) float64 {
		var w float64
		for _, s := range spans {
			w += f.Advance(s.text)
		}
		return w
	}
	spaceW := f.Advance(" ")

	var out [][]span
	var curLine []span
	var curW float64
	started := false
	for _, ch := range chunks {
		w := measure(ch.spans)
		if !started {
			curLine, curW, started = ch.spans, w, true
			continue
		}
		if ch.spaced && curW+spaceW+w > maxWidth && len(curLine) > 0 {
			out = append(out, curLine)
			curLine, curW = ch.spans, w
			continue
		}
		if ch.spaced {
			appendSpan(&curLine, span{text: " ", col: spaceColor(curLine, ch.spans)})
			curW += spaceW
		}
		for _, s := range ch.spans {
			appendSpan(&curLine, s)
		}
		curW += w
	}
	return append(out, curLine)
}

// spaceColor picks a color for a joining space; whitespace draws no ink,
// so any neighbor's color serves.
func spaceColor(before, after []span) render.Color {
	if len(before) > 0 {
		return before[len(before)-1].col
	}
	if len(after) > 0 {
		return after[0].col
	}
	return render.Color{}
}
