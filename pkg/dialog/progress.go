package dialog

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"github.com/odvcencio/placard/pkg/input"
	"github.com/odvcencio/placard/pkg/logging"
	"github.com/odvcencio/placard/pkg/render"
	"github.com/odvcencio/placard/pkg/theme"

	"github.com/odvcencio/placard/pkg/dialog/widget"
)

const (
	progressPadding    = 20
	progressBarWidth   = 300
	progressTextHeight = 20
)

// ProgressOptions configure a progress dialog.
type ProgressOptions struct {
	Title      string
	Text       string
	Percentage int
	Pulsate    bool
	// AutoClose confirms the dialog when progress reaches 100 or the
	// feed ends.
	AutoClose bool
	// AutoKill sends SIGTERM to the parent process when cancelled.
	AutoKill bool
	// NoCancel hides the cancel button.
	NoCancel          bool
	ShowTimeRemaining bool

	// Width and Height override the computed window size when positive.
	Width, Height int

	// Feed supplies percentage and status updates, line by line. Nil
	// means the bar only moves through the preset percentage.
	Feed *Feed
}

// Progress shows a percentage bar or an indeterminate pulse, driven by
// an auxiliary line feed: a bare integer sets the percentage, a line
// starting with '#' replaces the status text, and the word "pulsate"
// switches to indeterminate mode.
type Progress struct {
	title string
	pal   *theme.Palette
	feed  *Feed

	bar    *widget.ProgressBar
	cancel *widget.Button

	status   string
	timeText string
	start    time.Time

	autoClose      bool
	autoKill       bool
	showTime       bool
	startedPulsate bool

	width, height float64
	textY         float64

	outcome Outcome
	done    bool
}

// NewProgress lays out a progress dialog.
func NewProgress(opts ProgressOptions, pal *theme.Palette, f *render.Face) *Progress {
	if opts.Title == "" {
		opts.Title = "Progress"
	}

	d := &Progress{
		title:          opts.Title,
		pal:            pal,
		feed:           opts.Feed,
		bar:            widget.NewProgressBar(progressBarWidth),
		status:         opts.Text,
		start:          time.Now(),
		autoClose:      opts.AutoClose,
		autoKill:       opts.AutoKill,
		showTime:       opts.ShowTimeRemaining,
		startedPulsate: opts.Pulsate,
	}
	d.bar.SetPercentage(float64(min(opts.Percentage, 100)))
	if opts.Pulsate {
		d.bar.SetPulsating(true)
	}
	if !opts.NoCancel {
		d.cancel = widget.NewButton("Cancel", f)
	}

	timeH := 0.0
	if d.showTime {
		timeH = 24
	}
	d.width = progressBarWidth + 2*progressPadding
	d.height = 3*progressPadding + progressTextHeight + timeH + 10 + widget.BarHeight + 10 + widget.ButtonHeight
	if opts.Width > 0 {
		d.width = float64(opts.Width)
	}
	if opts.Height > 0 {
		d.height = float64(opts.Height)
	}

	d.textY = progressPadding
	barY := d.textY + progressTextHeight + 10 + timeH
	d.bar.SetPosition(progressPadding, barY)
	if d.cancel != nil {
		d.cancel.SetPosition(d.width-progressPadding-d.cancel.Width(), barY+widget.BarHeight+10)
	}
	return d
}

// Title returns the window title.
func (d *Progress) Title() string { return d.title }

// Size returns the logical window size.
func (d *Progress) Size() (int, int) { return int(d.width), int(d.height) }

// Handle reacts to the cancel button only; the bar itself takes no
// input.
func (d *Progress) Handle(ev input.Event) bool {
	if d.cancel == nil {
		return false
	}
	changed := d.cancel.Handle(ev)
	if d.cancel.Clicked() {
		if d.autoKill {
			if err := unix.Kill(os.Getppid(), unix.SIGTERM); err != nil {
				logging.Debugf("progress: signal parent: %v", err)
			}
		}
		d.finish(Cancelled())
	}
	return changed
}

// Tick drains the feed, advances the pulse animation, and applies
// auto-close. Queued feed lines are applied in arrival order, so the
// last percentage in a burst wins.
func (d *Progress) Tick() bool {
	changed := false
	if d.feed != nil {
		lines, eof := d.feed.Drain()
		for _, line := range lines {
			if d.apply(line) {
				changed = true
			}
		}
		if eof {
			d.feed = nil
			if d.autoClose {
				d.finish(Confirmed(""))
			}
		}
	}
	if d.bar.Pulsating() {
		d.bar.Tick()
		changed = true
	}
	return changed
}

// apply interprets one feed line. Malformed lines are ignored.
func (d *Progress) apply(line string) bool {
	trimmed := strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(trimmed, "#"):
		d.status = strings.TrimSpace(trimmed[1:])
		return true
	case strings.EqualFold(trimmed, "pulsate"):
		d.bar.SetPulsating(true)
		return true
	}

	num, err := strconv.ParseUint(trimmed, 10, 32)
	if err != nil {
		return false
	}
	p := min(int(num), 100)
	d.bar.SetPercentage(float64(p))
	if d.showTime && !d.startedPulsate && p > 0 {
		elapsed := time.Since(d.start).Seconds()
		total := elapsed / (float64(p) / 100)
		d.timeText = formatRemaining(math.Max(total-elapsed, 0))
	}
	if p >= 100 && d.autoClose {
		d.finish(Confirmed(""))
	}
	return true
}

func (d *Progress) finish(o Outcome) {
	if !d.done {
		d.outcome = o
		d.done = true
	}
}

// Outcome returns the terminal outcome.
func (d *Progress) Outcome() (Outcome, bool) { return d.outcome, d.done }

// Draw paints the bordered dialog background, the status and estimate
// lines, the bar and the cancel button.
func (d *Progress) Draw(c *render.Canvas, f *render.Face) {
	c.DialogBackground(d.pal.WindowBg, d.pal.WindowBorder, d.pal.WindowShadow)

	if d.status != "" {
		c.DrawText(f, d.status, progressPadding, d.textY, d.pal.Text)
	}
	if d.showTime && d.timeText != "" {
		y := d.textY
		if d.status != "" {
			y += 24
		}
		c.DrawText(f, d.timeText, progressPadding, y, d.pal.Text)
	}

	d.bar.Draw(c, d.pal, f)
	if d.cancel != nil {
		d.cancel.Draw(c, d.pal, f)
	}
}

// formatRemaining renders a second count as a coarse human estimate.
func formatRemaining(seconds float64) string {
	if seconds < 60 {
		return fmt.Sprintf("%.0fs remaining", seconds)
	}
	if seconds < 3600 {
		return fmt.Sprintf("%.0fm %.0fs remaining", math.Floor(seconds/60), math.Mod(seconds, 60))
	}
	return fmt.Sprintf("%.0fh %.0fm %.0fs remaining",
		math.Floor(seconds/3600), math.Floor(math.Mod(seconds, 3600)/60), math.Mod(seconds, 60))
}
