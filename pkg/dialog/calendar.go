package dialog

import (
	"fmt"
	"strconv"
	"time"

	"github.com/odvcencio/placard/pkg/dialog/widget"
	"github.com/odvcencio/placard/pkg/input"
	"github.com/odvcencio/placard/pkg/render"
	"github.com/odvcencio/placard/pkg/theme"
)

const (
	calPadding         = 16
	calCellSize        = 36
	calHeaderHeight    = 40
	calDayHeaderHeight = 28
	calDropdownItemH   = 24
	calGridWidth       = calCellSize * 7
)

type calDropdown uint8

const (
	calDropNone calDropdown = iota
	calDropMonth
	calDropYear
)

// CalendarOptions configure a calendar dialog.
type CalendarOptions struct {
	Title       string
	Text        string
	Day         int
	Month       int
	Year        int
	Width       int
	Height      int
	OKLabel     string
	CancelLabel string
}

// Calendar picks one date from a Sunday-first month grid. The header
// hosts previous/next arrows, month and year dropdowns and a shortcut
// back to today; arrows move the selection across month boundaries.
type Calendar struct {
	pal   *theme.Palette
	f     *render.Face
	title string
	text  string

	width, height float64
	textY         float64
	calX, calY    float64
	gridY         float64

	year, month, day int

	hovered    int // grid day under the pointer, 0 when none
	dropdown   calDropdown
	dropHover  int // dropdown item under the pointer, -1 when none
	yearScroll int

	ok     *widget.Button
	cancel *widget.Button

	done    bool
	outcome Outcome
}

// NewCalendar lays out a calendar dialog. Unset date fields default to
// today; the day is clamped into the preset month.
func NewCalendar(opts CalendarOptions, pal *theme.Palette, f *render.Face) *Calendar {
	title := opts.Title
	if title == "" {
		title = "Select Date"
	}
	okLabel := opts.OKLabel
	if okLabel == "" {
		okLabel = "OK"
	}
	cancelLabel := opts.CancelLabel
	if cancelLabel == "" {
		cancelLabel = "Cancel"
	}

	now := time.Now()
	year := opts.Year
	if year < 1 {
		year = now.Year()
	}
	month := opts.Month
	if month < 1 || month > 12 {
		month = int(now.Month())
	}
	day := opts.Day
	if day < 1 {
		day = now.Day()
	}
	day = min(day, daysInMonth(year, month))

	textH := 0.0
	if opts.Text != "" {
		textH = 24
	}
	width := float64(calGridWidth + calPadding*2)
	height := calPadding*2 + textH + calHeaderHeight + calDayHeaderHeight + calCellSize*6 + 50
	if opts.Width > 0 {
		width = float64(opts.Width)
	}
	if opts.Height > 0 {
		height = float64(opts.Height)
	}

	d := &Calendar{
		pal:       pal,
		f:         f,
		title:     title,
		text:      opts.Text,
		width:     width,
		height:    height,
		textY:     calPadding,
		calX:      calPadding,
		year:      year,
		month:     month,
		day:       day,
		dropHover: -1,
		ok:        widget.NewButton(okLabel, f),
		cancel:    widget.NewButton(cancelLabel, f),
	}
	d.calY = calPadding
	if opts.Text != "" {
		d.calY += textH + 8
	}
	d.gridY = d.calY + calHeaderHeight + calDayHeaderHeight
	d.anchorButtons()
	return d
}

func (d *Calendar) anchorButtons() {
	layoutRowRight([]*widget.Button{d.ok, d.cancel}, d.width-calPadding, d.height-calPadding-widget.ButtonHeight)
}

// Title returns the window title.
func (d *Calendar) Title() string { return d.title }

// Size returns the logical window size.
func (d *Calendar) Size() (int, int) { return int(d.width), int(d.height) }

// Handle drives grid hovering and selection, the header controls, the
// dropdowns and the button row. Enter confirms the selected date, a
// click on the already selected day confirms it, Escape cancels.
func (d *Calendar) Handle(ev input.Event) bool {
	changed := false
	switch e := ev.(type) {
	case input.Resize:
		d.width, d.height = float64(e.Width), float64(e.Height)
		d.anchorButtons()
		return true
	case input.PointerMove:
		if d.dropdown != calDropNone {
			if hover := d.dropdownIndexAt(e.X, e.Y); hover != d.dropHover {
				d.dropHover = hover
				changed = true
			}
		} else {
			if hover := d.dayAt(e.X, e.Y); hover != d.hovered {
				d.hovered = hover
				changed = true
			}
		}
	case input.ButtonPress:
		switch e.Button {
		case input.ButtonWheelUp:
			if d.dropdown == calDropYear {
				d.yearScroll--
				changed = true
			}
		case input.ButtonWheelDown:
			if d.dropdown == calDropYear {
				d.yearScroll++
				changed = true
			}
		case input.ButtonLeft:
			if d.press(e.X, e.Y) {
				changed = true
			}
		}
	case input.KeyPress:
		if d.dropdown != calDropNone {
			if d.dropdownKey(e.Key) {
				return true
			}
		} else if d.gridKey(e.Key) {
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
		d.finish(Confirmed(d.payload()))
	}
	if d.cancel.Clicked() {
		d.finish(Cancelled())
	}
	return changed
}

func (d *Calendar) press(x, y float64) bool {
	if d.dropdown != calDropNone {
		d.applyDropdown()
		return true
	}
	if y >= d.calY && y < d.calY+calHeaderHeight {
		return d.headerPress(x)
	}
	if day := d.dayAt(x, y); day > 0 {
		if day == d.day {
			d.finish(Confirmed(d.payload()))
		} else {
			d.day = day
		}
		return true
	}
	return false
}

func (d *Calendar) headerPress(x float64) bool {
	monthW := d.f.Advance(monthName(d.month))
	yearW := d.f.Advance(strconv.Itoa(d.year))
	monthX := d.calX + 35
	yearX := monthX + monthW + 8
	todayX := d.calX + calGridWidth - 70
	nextX := d.calX + calGridWidth - 24

	switch {
	case x < d.calX+28:
		d.prevMonth()
	case x >= monthX && x < monthX+monthW+5:
		d.dropdown = calDropMonth
		d.dropHover = d.month - 1
	case x >= yearX && x < yearX+yearW+5:
		d.dropdown = calDropYear
		d.dropHover = 5
		d.yearScroll = 0
	case x >= todayX && x < nextX:
		now := time.Now()
		d.year, d.month, d.day = now.Year(), int(now.Month()), now.Day()
	case x >= nextX:
		d.nextMonth()
	default:
		return false
	}
	return true
}

func (d *Calendar) dropdownKey(key input.Key) bool {
	maxItems := 12
	if d.dropdown == calDropYear {
		maxItems = 11
	}
	switch key {
	case input.KeyEscape:
		d.closeDropdown()
	case input.KeyUp:
		if cur := max(d.dropHover, 0); cur > 0 {
			d.dropHover = cur - 1
		} else if d.dropdown == calDropYear {
			d.yearScroll--
		}
	case input.KeyDown:
		if cur := max(d.dropHover, 0); cur+1 < maxItems {
			d.dropHover = cur + 1
		} else if d.dropdown == calDropYear {
			d.yearScroll++
		}
	case input.KeyEnter:
		d.applyDropdown()
	default:
		return false
	}
	return true
}

func (d *Calendar) gridKey(key input.Key) bool {
	switch key {
	case input.KeyLeft:
		if d.day > 1 {
			d.day--
		} else if d.month > 1 || d.year > 1 {
			d.prevMonth()
			d.day = daysInMonth(d.year, d.month)
		}
	case input.KeyRight:
		if d.day < daysInMonth(d.year, d.month) {
			d.day++
		} else {
			d.nextMonth()
			d.day = 1
		}
	case input.KeyUp:
		if d.day > 7 {
			d.day -= 7
		} else if d.month > 1 || d.year > 1 {
			rem := 7 - d.day
			d.prevMonth()
			d.day = daysInMonth(d.year, d.month) - rem
		}
	case input.KeyDown:
		days := daysInMonth(d.year, d.month)
		if d.day+7 <= days {
			d.day += 7
		} else {
			overflow := d.day + 7 - days
			d.nextMonth()
			d.day = overflow
		}
	case input.KeyEnter:
		d.finish(Confirmed(d.payload()))
	case input.KeyEscape:
		d.finish(Cancelled())
	default:
		return false
	}
	return true
}

func (d *Calendar) prevMonth() {
	if d.month == 1 {
		if d.year > 1 {
			d.year--
			d.month = 12
		}
	} else {
		d.month--
	}
	d.day = min(d.day, daysInMonth(d.year, d.month))
}

func (d *Calendar) nextMonth() {
	if d.month == 12 {
		d.month = 1
		d.year++
	} else {
		d.month++
	}
	d.day = min(d.day, daysInMonth(d.year, d.month))
}

func (d *Calendar) applyDropdown() {
	if d.dropHover >= 0 {
		switch d.dropdown {
		case calDropMonth:
			d.month = d.dropHover + 1
		case calDropYear:
			d.year = max(d.year-5+d.yearScroll+d.dropHover, 1)
		}
		d.day = min(d.day, daysInMonth(d.year, d.month))
	}
	d.closeDropdown()
}

func (d *Calendar) closeDropdown() {
	d.dropdown = calDropNone
	d.dropHover = -1
}

// dayAt maps a pointer position to a day of the displayed month, or 0
// when it falls outside the grid or on a blank leading/trailing cell.
func (d *Calendar) dayAt(x, y float64) int {
	if x < d.calX || x >= d.calX+calGridWidth || y < d.gridY || y >= d.gridY+calCellSize*6 {
		return 0
	}
	col := int((x - d.calX) / calCellSize)
	row := int((y - d.gridY) / calCellSize)
	day := row*7 + col - firstWeekday(d.year, d.month) + 1
	if day < 1 || day > daysInMonth(d.year, d.month) {
		return 0
	}
	return day
}

func (d *Calendar) dropdownIndexAt(x, y float64) int {
	dx, dw, items := d.dropdownGeometry()
	dy := d.calY + calHeaderHeight
	if x < dx || x >= dx+dw || y < dy || y >= dy+float64(items)*calDropdownItemH {
		return -1
	}
	return int((y - dy) / calDropdownItemH)
}

func (d *Calendar) dropdownGeometry() (x, w float64, items int) {
	if d.dropdown == calDropYear {
		return d.calX + 100, 70, 11
	}
	return d.calX + 30, 100, 12
}

func (d *Calendar) payload() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, d.month, d.day)
}

func (d *Calendar) finish(o Outcome) {
	if !d.done {
		d.outcome = o
		d.done = true
	}
}

// Tick does nothing; the dialog has no animated state.
func (d *Calendar) Tick() bool { return false }

// Outcome returns the terminal outcome.
func (d *Calendar) Outcome() (Outcome, bool) { return d.outcome, d.done }

// Draw paints the prompt, the month grid with its header and day-name
// row, the button row, and any open dropdown on top.
func (d *Calendar) Draw(c *render.Canvas, f *render.Face) {
	c.DialogBackground(d.pal.WindowBg, d.pal.WindowBorder, d.pal.WindowShadow)

	if d.text != "" {
		c.DrawText(f, d.text, calPadding, d.textY, d.pal.Text)
	}

	calH := float64(calHeaderHeight + calDayHeaderHeight + calCellSize*6)
	c.FillRoundedRect(d.calX, d.calY, calGridWidth, calH, 8, d.pal.InputBg)

	headerBg := theme.Darken(d.pal.InputBg, 0.03)
	c.FillRoundedRect(d.calX, d.calY, calGridWidth, calHeaderHeight, 8, headerBg)
	c.FillRect(d.calX, d.calY+calHeaderHeight-8, calGridWidth, 8, headerBg)

	c.DrawText(f, "<", d.calX+10, d.calY+12, d.pal.Text)
	c.DrawText(f, ">", d.calX+calGridWidth-18, d.calY+12, d.pal.Text)

	monthX := d.calX + 35
	c.DrawText(f, monthName(d.month), monthX, d.calY+12, d.pal.Text)
	yearStr := strconv.Itoa(d.year)
	c.DrawText(f, yearStr, monthX+f.Advance(monthName(d.month))+8, d.calY+12, d.pal.Text)

	today := "Today"
	c.DrawText(f, today, d.calX+calGridWidth-24-f.Advance(today)-8, d.calY+12, render.RGB(80, 160, 100))

	dayHeaderY := d.calY + calHeaderHeight
	for i, name := range [7]string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"} {
		dx := d.calX + float64(i)*calCellSize
		c.DrawText(f, name, dx+(calCellSize-f.Advance(name))/2, dayHeaderY+6, render.RGB(140, 140, 140))
	}

	first := firstWeekday(d.year, d.month)
	days := daysInMonth(d.year, d.month)
	ty, tm, td := time.Now().Date()

	for day := 1; day <= days; day++ {
		cell := first + day - 1
		cx := d.calX + float64(cell%7)*calCellSize
		cy := d.gridY + float64(cell/7)*calCellSize

		selected := day == d.day
		if selected {
			c.FillRoundedRect(cx+2, cy+2, calCellSize-4, calCellSize-4, 4, d.pal.InputBorderFocused)
		} else if day == d.hovered {
			c.FillRoundedRect(cx+2, cy+2, calCellSize-4, calCellSize-4, 4, theme.Darken(d.pal.InputBg, 0.08))
		}
		if !selected && d.year == ty && d.month == int(tm) && day == td {
			c.StrokeRoundedRect(cx+4, cy+4, calCellSize-8, calCellSize-8, 4, d.pal.InputBorderFocused, 2)
		}

		col := d.pal.Text
		if selected {
			col = render.RGB(255, 255, 255)
		} else if cell%7 == 0 {
			col = render.RGB(200, 100, 100)
		}
		label := strconv.Itoa(day)
		c.DrawText(f, label, cx+(calCellSize-f.Advance(label))/2, cy+(calCellSize-f.LineHeight())/2, col)
	}

	c.StrokeRoundedRect(d.calX, d.calY, calGridWidth, calH, 8, d.pal.InputBorder, 1)

	d.ok.Draw(c, d.pal, f)
	d.cancel.Draw(c, d.pal, f)

	switch d.dropdown {
	case calDropMonth:
		d.drawMonthDropdown(c, f)
	case calDropYear:
		d.drawYearDropdown(c, f)
	}
}

func (d *Calendar) drawMonthDropdown(c *render.Canvas, f *render.Face) {
	dx, dw, items := d.dropdownGeometry()
	dy := d.calY + calHeaderHeight
	dh := float64(items) * calDropdownItemH

	c.FillRoundedRect(dx+3, dy+3, dw, dh, 6, render.RGB(0, 0, 0))
	c.FillRoundedRect(dx, dy, dw, dh, 6, d.pal.WindowBg)

	for i := 0; i < 12; i++ {
		itemY := dy + float64(i)*calDropdownItemH
		hovered := i == d.dropHover
		current := i+1 == d.month

		if hovered {
			c.FillRoundedRect(dx+4, itemY+2, dw-8, calDropdownItemH-4, 4, render.RGB(70, 130, 180))
		}

		label := monthName(i + 1)
		if current {
			label += " *"
		}
		col := d.pal.Text
		if hovered {
			col = render.RGB(255, 255, 255)
		} else if current {
			col = render.RGB(70, 180, 130)
		}
		c.DrawText(f, label, dx+10, itemY+4, col)
	}

	c.StrokeRoundedRect(dx, dy, dw, dh, 6, d.pal.InputBorder, 1)
}

func (d *Calendar) drawYearDropdown(c *render.Canvas, f *render.Face) {
	dx, dw, items := d.dropdownGeometry()
	dy := d.calY + calHeaderHeight
	dh := float64(items) * calDropdownItemH

	c.FillRoundedRect(dx+3, dy+3, dw, dh, 6, render.RGB(0, 0, 0))
	c.FillRoundedRect(dx, dy, dw, dh, 6, d.pal.WindowBg)

	base := d.year - 5 + d.yearScroll
	for i := 0; i < items; i++ {
		yr := base + i
		if yr < 1 {
			continue
		}
		itemY := dy + float64(i)*calDropdownItemH
		hovered := i == d.dropHover
		current := yr == d.year

		if hovered {
			c.FillRoundedRect(dx+4, itemY+2, dw-8, calDropdownItemH-4, 4, render.RGB(70, 130, 180))
		}

		label := strconv.Itoa(yr)
		if current {
			label = "* " + label + " *"
		}
		col := d.pal.Text
		if hovered {
			col = render.RGB(255, 255, 255)
		} else if current {
			col = render.RGB(70, 180, 130)
		}
		c.DrawText(f, label, dx+(dw-f.Advance(label))/2, itemY+4, col)
	}

	c.StrokeRoundedRect(dx, dy, dw, dh, 6, d.pal.InputBorder, 1)
}

// firstWeekday returns the weekday of the first day of a month with
// Sunday as 0, by Zeller's congruence.
func firstWeekday(year, month int) int {
	y, m := year, month
	if m < 3 {
		m += 12
		y--
	}
	k := y % 100
	j := y / 100
	h := (1 + 13*(m+1)/5 + k + k/4 + j/4 - 2*j) % 7
	return (h + 6) % 7
}

// daysInMonth counts the days of a month; day zero of the following
// month normalizes to its last day.
func daysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func monthName(month int) string {
	return time.Month(month).String()
}
