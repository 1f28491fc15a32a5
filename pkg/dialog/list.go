package dialog

import (
	"strings"

	"github.com/odvcencio/placard/pkg/dialog/widget"
	"github.com/odvcencio/placard/pkg/input"
	"github.com/odvcencio/placard/pkg/render"
	"github.com/odvcencio/placard/pkg/theme"
)

const (
	listPadding      = 16
	listRowHeight    = 28
	listCheckboxSize = 16
	listColumnGap    = 16
	listMinWidth     = 350
	listMaxWidth     = 600
	listMinHeight    = 200
	listMaxHeight    = 450
)

// ListMode selects how rows are picked.
type ListMode uint8

const (
	// ListSingle selects one row by click or arrow keys.
	ListSingle ListMode = iota
	// ListChecklist toggles a checkbox per row.
	ListChecklist
	// ListRadiolist keeps at most one row checked.
	ListRadiolist
	// ListMultiple selects several rows without checkboxes.
	ListMultiple
)

// ListOptions configure a list dialog. HiddenCols holds 1-based column
// indices counted the way the caller supplied them, so in check modes
// index 1 refers to the consumed TRUE/FALSE column.
type ListOptions struct {
	Title       string
	Text        string
	Columns     []string
	Rows        [][]string
	Mode        ListMode
	HiddenCols  []int
	HideHeader  bool
	Editable    bool
	Separator   string
	Width       int
	Height      int
	OKLabel     string
	CancelLabel string
	Feed        *Feed
}

// List presents rows under optional column headers and reports the
// first visible cell of every selected row, joined by the separator.
// Checklist and radiolist modes consume a leading TRUE/FALSE cell per
// row as the initial check state. Confirming an empty selection
// cancels. In editable single mode a second click on the selected row
// opens its first visible cell for editing.
type List struct {
	pal   *theme.Palette
	f     *render.Face
	title string
	text  string
	mode  ListMode
	sep   string

	editable bool
	userCols int

	checkHeader string
	columns     []string
	visibleIdx  []int

	rows    [][]string
	display [][]string
	checked []bool

	colWidths []float64
	contentW  float64
	checkCol  float64
	checkGap  float64

	width, height float64
	textY         float64
	listX, listY  float64
	listW, listH  float64
	dataY         float64
	hasHeader     bool
	dataVisible   int

	cursor  int
	hovered int

	vsb *widget.Scrollbar
	hsb *widget.Scrollbar

	editing bool
	editRow int
	editIn  *widget.TextInput

	feed    *Feed
	pending []string

	titleFace  *render.Face
	titleScale int

	ok     *widget.Button
	cancel *widget.Button

	done    bool
	outcome Outcome
}

// NewList lays out a list dialog. The window clamps into
// [350,600]x[200,450] around the measured content unless explicit
// dimensions are given.
func NewList(opts ListOptions, pal *theme.Palette, f *render.Face) *List {
	title := opts.Title
	if title == "" {
		title = "Select"
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

	d := &List{
		pal:      pal,
		f:        f,
		title:    title,
		text:     opts.Text,
		mode:     opts.Mode,
		sep:      sep,
		editable: opts.Editable && opts.Mode == ListSingle,
		userCols: max(len(opts.Columns), 1),
		cursor:   -1,
		hovered:  -1,
		vsb:      widget.NewScrollbar(false),
		hsb:      widget.NewScrollbar(true),
		feed:     opts.Feed,
		ok:       widget.NewButton(okLabel, f),
		cancel:   widget.NewButton(cancelLabel, f),
	}

	check := d.mode == ListChecklist || d.mode == ListRadiolist
	allCols := opts.Columns
	if check && len(allCols) > 0 {
		d.checkHeader = allCols[0]
		allCols = allCols[1:]
	}

	hidden := make(map[int]bool)
	for _, col := range opts.HiddenCols {
		idx := col - 1
		if check {
			idx--
		}
		if idx >= 0 {
			hidden[idx] = true
		}
	}
	for i, col := range allCols {
		if !hidden[i] {
			d.visibleIdx = append(d.visibleIdx, i)
			d.columns = append(d.columns, col)
		}
	}

	d.colWidths = make([]float64, max(len(d.columns), 1))
	for i := range d.colWidths {
		d.colWidths[i] = 100
	}
	for i, col := range d.columns {
		d.colWidths[i] = max(d.colWidths[i], f.Advance(col)+20)
	}
	if d.mode != ListSingle {
		d.checkCol = listCheckboxSize + 16
	}
	if check {
		d.checkGap = listColumnGap
	}
	for _, row := range opts.Rows {
		d.appendRow(row)
	}

	titleH := 0.0
	if title != "" {
		titleH = 32
	}
	textH := 0.0
	if opts.Text != "" {
		textH = 24
	}
	d.hasHeader = (len(d.columns) > 0 || d.checkHeader != "") && !opts.HideHeader
	headerH := 0.0
	if d.hasHeader {
		headerH = listRowHeight
	}
	d.listH = min(max(float64(len(d.rows))*listRowHeight, listRowHeight*3), listMaxHeight-100)

	sum := 0.0
	for _, w := range d.colWidths {
		sum += w
	}
	gaps := float64(len(d.colWidths)-1) * listColumnGap
	d.width = min(max(d.checkCol+sum+gaps+2*listPadding, listMinWidth), listMaxWidth)
	d.height = min(max(2*listPadding+titleH+textH+headerH+d.listH+50, listMinHeight), listMaxHeight)
	if opts.Width > 0 {
		d.width = float64(opts.Width)
	}
	if opts.Height > 0 {
		d.height = float64(opts.Height)
	}

	y := float64(listPadding) + titleH
	d.textY = y
	if opts.Text != "" {
		y += textH + 8
	}
	d.listX, d.listY = listPadding, y
	d.listW = d.width - 2*listPadding

	headerPx := 0.0
	if d.hasHeader {
		headerPx = listRowHeight + 1
	}
	d.dataY = d.listY + headerPx
	d.dataVisible = int(d.listH / listRowHeight)
	if d.hasHeader {
		d.dataVisible--
	}

	d.vsb.Layout(widget.Rect{X: d.listX + d.listW - widget.ScrollbarWidth, Y: d.dataY, W: widget.ScrollbarWidth, H: d.listH - headerPx})
	d.hsb.Layout(widget.Rect{X: d.listX, Y: d.listY + d.listH - widget.ScrollbarWidth, W: d.listW, H: widget.ScrollbarWidth})
	d.recalcContent()
	d.anchorButtons()
	return d
}

// appendRow stores one caller-supplied row, stripping the check cell in
// check modes and projecting the visible cells.
func (d *List) appendRow(row []string) {
	if d.mode == ListChecklist || d.mode == ListRadiolist {
		if len(row) == 0 {
			return
		}
		d.checked = append(d.checked, strings.EqualFold(row[0], "true"))
		row = row[1:]
	} else {
		d.checked = append(d.checked, false)
	}
	d.rows = append(d.rows, row)

	disp := make([]string, 0, len(d.visibleIdx))
	for _, i := range d.visibleIdx {
		if i < len(row) {
			disp = append(disp, row[i])
		}
	}
	d.display = append(d.display, disp)
	for ci, cell := range disp {
		if ci < len(d.colWidths) {
			d.colWidths[ci] = max(d.colWidths[ci], d.f.Advance(cell)+20)
		}
	}
}

func (d *List) recalcContent() {
	sum := 0.0
	for _, w := range d.colWidths {
		sum += w
	}
	d.contentW = d.checkCol + d.checkGap + sum + float64(len(d.colWidths)-1)*listColumnGap
	d.hsb.SetRange(d.contentW, d.listW)
	d.vsb.SetRange(float64(len(d.rows)), float64(d.dataVisible))
}

func (d *List) recalcWidths() {
	for i := range d.colWidths {
		d.colWidths[i] = 100
	}
	for i, col := range d.columns {
		d.colWidths[i] = max(d.colWidths[i], d.f.Advance(col)+20)
	}
	for _, row := range d.display {
		for ci, cell := range row {
			if ci < len(d.colWidths) {
				d.colWidths[ci] = max(d.colWidths[ci], d.f.Advance(cell)+20)
			}
		}
	}
	d.recalcContent()
}

func (d *List) anchorButtons() {
	layoutRowRight([]*widget.Button{d.ok, d.cancel}, d.width-listPadding, d.height-listPadding-widget.ButtonHeight)
}

// Title returns the window title.
func (d *List) Title() string { return d.title }

// Size returns the logical window size.
func (d *List) Size() (int, int) { return int(d.width), int(d.height) }

// Handle drives row hover and selection, both scrollbars, the wheel
// (Shift+wheel scrolls horizontally), cursor movement, Space toggling
// in checklist and multiple modes, and the button row.
func (d *List) Handle(ev input.Event) bool {
	changed := false
	switch e := ev.(type) {
	case input.Resize:
		d.width, d.height = float64(e.Width), float64(e.Height)
		d.anchorButtons()
		return true
	case input.PointerMove:
		if d.vsb.Handle(ev) {
			changed = true
		}
		if d.hsb.Handle(ev) {
			changed = true
		}
		if !d.vsb.Dragging() && !d.hsb.Dragging() {
			if hover := d.rowAt(e.X, e.Y); hover != d.hovered {
				d.hovered = hover
				changed = true
			}
		}
	case input.ButtonPress:
		switch e.Button {
		case input.ButtonWheelUp:
			if e.Mods.Shift {
				changed = d.scrollX(-100) || changed
			} else {
				changed = d.scrollRows(-2) || changed
			}
		case input.ButtonWheelDown:
			if e.Mods.Shift {
				changed = d.scrollX(100) || changed
			} else {
				changed = d.scrollRows(2) || changed
			}
		case input.ButtonLeft:
			if d.editing {
				if d.editIn.Bounds().Contains(e.X, e.Y) {
					return changed
				}
				d.commitEdit()
				changed = true
			}
			vHit := d.vsb.Handle(ev)
			hHit := d.hsb.Handle(ev)
			if vHit || hHit {
				changed = true
			} else if d.hovered >= 0 {
				d.click(e.Mods)
				changed = true
			}
		}
	case input.ButtonRelease:
		if d.vsb.Handle(ev) {
			changed = true
		}
		if d.hsb.Handle(ev) {
			changed = true
		}
	case input.KeyPress:
		if d.editing {
			switch e.Key {
			case input.KeyEnter:
				d.commitEdit()
			case input.KeyEscape:
				d.stopEdit()
			default:
				d.editIn.Handle(ev)
			}
			return true
		}
		switch e.Key {
		case input.KeyUp:
			changed = d.moveCursor(-1) || changed
		case input.KeyDown:
			changed = d.moveCursor(1) || changed
		case input.KeyLeft:
			changed = d.scrollX(-100) || changed
		case input.KeyRight:
			changed = d.scrollX(100) || changed
		case input.KeyEnter:
			d.confirm()
			return true
		case input.KeyEscape:
			d.finish(Cancelled())
			return true
		default:
			if e.Rune == ' ' && (d.mode == ListChecklist || d.mode == ListMultiple) {
				if ri := d.spaceTarget(); ri >= 0 {
					d.checked[ri] = !d.checked[ri]
					changed = true
				}
			}
		}
	}

	if d.ok.Handle(ev) {
		changed = true
	}
	if d.cancel.Handle(ev) {
		changed = true
	}
	if d.ok.Clicked() {
		d.confirm()
	}
	if d.cancel.Clicked() {
		d.finish(Cancelled())
	}
	return changed
}

func (d *List) rowAt(x, y float64) int {
	w := d.listW
	if d.vsb.Scrollable() {
		w -= widget.ScrollbarWidth
	}
	if x < d.listX || x >= d.listX+w || y < d.dataY || y >= d.listY+d.listH {
		return -1
	}
	ri := int(d.vsb.Offset()) + int((y-d.dataY)/listRowHeight)
	if ri >= len(d.rows) {
		return -1
	}
	return ri
}

func (d *List) click(mods input.Modifiers) {
	ri := d.hovered
	switch d.mode {
	case ListSingle:
		if ri == d.cursor {
			if d.editable {
				d.startEdit(ri)
			} else {
				d.confirm()
			}
		} else {
			d.cursor = ri
		}
	case ListMultiple:
		if mods.Ctrl {
			d.checked[ri] = !d.checked[ri]
		} else {
			clear(d.checked)
			d.checked[ri] = true
		}
	case ListChecklist:
		d.checked[ri] = !d.checked[ri]
	case ListRadiolist:
		clear(d.checked)
		d.checked[ri] = true
	}
}

func (d *List) moveCursor(delta int) bool {
	if (d.mode != ListSingle && d.mode != ListMultiple) || len(d.rows) == 0 {
		return false
	}
	if d.cursor < 0 {
		d.cursor = 0
	} else {
		next := d.cursor + delta
		if next < 0 || next >= len(d.rows) {
			return false
		}
		d.cursor = next
	}
	scroll := int(d.vsb.Offset())
	if d.cursor < scroll {
		d.vsb.SetOffset(float64(d.cursor))
	} else if d.cursor >= scroll+d.dataVisible {
		d.vsb.SetOffset(float64(d.cursor - d.dataVisible + 1))
	}
	return true
}

func (d *List) spaceTarget() int {
	if d.hovered >= 0 {
		return d.hovered
	}
	return d.cursor
}

func (d *List) scrollRows(delta int) bool {
	if !d.vsb.Scrollable() {
		return false
	}
	before := d.vsb.Offset()
	d.vsb.SetOffset(before + float64(delta))
	return d.vsb.Offset() != before
}

func (d *List) scrollX(delta float64) bool {
	if !d.hsb.Scrollable() {
		return false
	}
	before := d.hsb.Offset()
	d.hsb.SetOffset(before + delta)
	return d.hsb.Offset() != before
}

func (d *List) startEdit(ri int) {
	if len(d.visibleIdx) == 0 || len(d.display[ri]) == 0 {
		return
	}
	in := widget.NewTextInput(d.colWidths[0])
	in.SetText(d.display[ri][0])
	in.SetFocus(true)
	in.SelectAll()
	x, y := d.cellOrigin(ri)
	in.SetPosition(x, y)
	d.editing = true
	d.editRow = ri
	d.editIn = in
}

func (d *List) commitEdit() {
	text := d.editIn.Text()
	ri := d.editRow
	d.display[ri][0] = text
	if vi := d.visibleIdx[0]; vi < len(d.rows[ri]) {
		d.rows[ri][vi] = text
	}
	d.stopEdit()
	d.recalcWidths()
}

func (d *List) stopEdit() {
	d.editing = false
	d.editIn = nil
}

func (d *List) cellOrigin(ri int) (float64, float64) {
	x := d.listX + d.checkCol + d.checkGap - d.hsb.Offset()
	rowY := d.dataY + float64(ri-int(d.vsb.Offset()))*listRowHeight
	return x, rowY - (widget.InputHeight-listRowHeight)/2
}

func (d *List) isSelected(ri int) bool {
	if d.mode == ListSingle {
		return ri == d.cursor
	}
	return d.checked[ri]
}

func (d *List) confirm() {
	var vals []string
	if d.mode == ListSingle {
		if d.cursor >= 0 && len(d.display[d.cursor]) > 0 {
			vals = append(vals, d.display[d.cursor][0])
		}
	} else {
		for i, on := range d.checked {
			if on && len(d.display[i]) > 0 {
				vals = append(vals, d.display[i][0])
			}
		}
	}
	if len(vals) == 0 {
		d.finish(Cancelled())
		return
	}
	d.finish(Confirmed(strings.Join(vals, d.sep)))
}

func (d *List) finish(o Outcome) {
	if !d.done {
		d.outcome = o
		d.done = true
	}
}

// Tick drains streamed cells into rows, one row per full column group.
// A trailing partial group at EOF is discarded as malformed.
func (d *List) Tick() bool {
	if d.feed == nil {
		return false
	}
	lines, eof := d.feed.Drain()
	changed := false
	for _, line := range lines {
		d.pending = append(d.pending, line)
		if len(d.pending) == d.userCols {
			d.appendRow(d.pending)
			d.pending = nil
			changed = true
		}
	}
	if eof {
		d.feed = nil
		d.pending = nil
	}
	if changed {
		d.recalcContent()
	}
	return changed
}

// Outcome returns the terminal outcome.
func (d *List) Outcome() (Outcome, bool) { return d.outcome, d.done }

// Draw paints the enlarged centered title, the prompt, the clipped list
// area with header, rows, check marks and scrollbars, and the button
// row.
func (d *List) Draw(c *render.Canvas, f *render.Face) {
	c.DialogBackground(d.pal.WindowBg, d.pal.WindowBorder, d.pal.WindowShadow)

	if d.title != "" {
		tf := d.titleFace
		if tf == nil || d.titleScale != c.Scale() {
			if face, err := render.NewFace(render.BaseTextSize*1.5, c.Scale()); err == nil {
				d.titleFace, d.titleScale = face, c.Scale()
				tf = face
			}
		}
		if tf == nil {
			tf = f
		}
		c.DrawText(tf, d.title, (d.width-tf.Advance(d.title))/2, listPadding, d.pal.Text)
	}
	if d.text != "" {
		c.DrawText(f, d.text, listPadding, d.textY, d.pal.Text)
	}

	restore := c.PushClip(d.listX, d.listY, d.listW, d.listH)
	c.FillRect(d.listX, d.listY, d.listW, d.listH, d.pal.InputBg)

	scroll := int(d.vsb.Offset())
	hscroll := d.hsb.Offset()

	if d.hasHeader {
		c.FillRect(d.listX, d.listY, d.listW, listRowHeight, theme.Darken(d.pal.InputBg, 0.05))
		headerCol := render.RGB(140, 140, 140)
		if d.checkHeader != "" {
			c.DrawText(f, d.checkHeader, d.listX+8-hscroll, d.listY+6, headerCol)
		}
		cx := d.listX + d.checkCol + d.checkGap - hscroll
		for i, col := range d.columns {
			c.DrawText(f, col, cx+8, d.listY+6, headerCol)
			cx += d.colWidths[i]
			if i < len(d.columns)-1 {
				cx += listColumnGap
			}
		}
		c.FillRect(d.listX, d.listY+listRowHeight, d.listW, 1, d.pal.InputBorder)
	}

	for vi := 0; vi < d.dataVisible && scroll+vi < len(d.rows); vi++ {
		ri := scroll + vi
		ry := d.dataY + float64(vi)*listRowHeight

		selected := d.isSelected(ri)
		bg := d.pal.InputBg
		switch {
		case selected:
			bg = d.pal.InputBorderFocused
		case ri == d.hovered:
			bg = theme.Darken(d.pal.InputBg, 0.06)
		case vi%2 == 1:
			bg = theme.Darken(d.pal.InputBg, 0.02)
		}
		c.FillRect(d.listX+1, ry, d.listW-2, listRowHeight, bg)

		if d.mode == ListChecklist || d.mode == ListRadiolist {
			checkX := d.listX + 8 - hscroll
			checkY := ry + (listRowHeight-listCheckboxSize)/2
			if d.mode == ListChecklist {
				drawListCheckbox(c, checkX, checkY, d.checked[ri], d.pal)
			} else {
				drawListRadio(c, checkX, checkY, d.checked[ri], d.pal)
			}
		}

		textCol := d.pal.Text
		if selected {
			textCol = render.RGB(255, 255, 255)
		}
		cx := d.listX + d.checkCol + d.checkGap - hscroll
		row := d.display[ri]
		for ci, cell := range row {
			if ci >= len(d.colWidths) {
				break
			}
			c.DrawText(f, cell, cx+8, ry+6, textCol)
			cx += d.colWidths[ci]
			if ci < len(row)-1 {
				cx += listColumnGap
			}
		}
	}

	d.vsb.Draw(c, d.pal, f)
	d.hsb.Draw(c, d.pal, f)

	if d.editing {
		x, y := d.cellOrigin(d.editRow)
		d.editIn.SetPosition(x, y)
		d.editIn.Draw(c, d.pal, f)
	}

	restore()
	c.StrokeRoundedRect(d.listX, d.listY, d.listW, d.listH, 6, d.pal.InputBorder, 1)

	d.ok.Draw(c, d.pal, f)
	d.cancel.Draw(c, d.pal, f)
}

func drawListCheckbox(c *render.Canvas, x, y float64, checked bool, pal *theme.Palette) {
	c.FillRoundedRect(x, y, listCheckboxSize, listCheckboxSize, 3, pal.InputBg)
	c.StrokeRoundedRect(x, y, listCheckboxSize, listCheckboxSize, 3, pal.InputBorder, 1)
	if checked {
		c.FillRoundedRect(x+3, y+3, listCheckboxSize-6, listCheckboxSize-6, 2, pal.InputBorderFocused)
	}
}

func drawListRadio(c *render.Canvas, x, y float64, checked bool, pal *theme.Palette) {
	r := listCheckboxSize / 2.0
	c.FillRoundedRect(x, y, listCheckboxSize, listCheckboxSize, r, pal.InputBg)
	c.StrokeRoundedRect(x, y, listCheckboxSize, listCheckboxSize, r, pal.InputBorder, 1)
	if checked {
		c.FillCircle(x+r, y+r, r*0.5, pal.InputBorderFocused)
	}
}
