package widget

import (
	"github.com/odvcencio/placard/pkg/input"
	"github.com/odvcencio/placard/pkg/render"
	"github.com/odvcencio/placard/pkg/theme"
)

const (
	// BarHeight is the fixed logical height of a progress bar.
	BarHeight = 20

	barRadius = 4
)

// ProgressBar shows determinate progress or an indeterminate pulse. The
// pulse advances on Tick, which the dialog drives from its frame timer.
type ProgressBar struct {
	bounds    Rect
	progress  float64
	pulsating bool
	pulsePos  float64
}

// NewProgressBar creates a bar of the given logical width.
func NewProgressBar(width float64) *ProgressBar {
	return &ProgressBar{bounds: Rect{W: width, H: BarHeight}}
}

// Bounds returns the bar's position and size.
func (p *ProgressBar) Bounds() Rect { return p.bounds }

// SetPosition moves the bar's top-left corner.
func (p *ProgressBar) SetPosition(x, y float64) { p.bounds.X, p.bounds.Y = x, y }

// SetProgress sets the fill fraction, clamped to [0, 1], and leaves
// pulsating mode.
func (p *ProgressBar) SetProgress(v float64) {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	p.progress = v
	p.pulsating = false
}

// SetPercentage sets the fill from a 0 to 100 value.
func (p *ProgressBar) SetPercentage(pct float64) { p.SetProgress(pct / 100) }

// Progress returns the current fill fraction.
func (p *ProgressBar) Progress() float64 { return p.progress }

// SetPulsating switches indeterminate mode on or off.
func (p *ProgressBar) SetPulsating(on bool) {
	p.pulsating = on
	if on {
		p.pulsePos = 0
	}
}

// Pulsating reports whether the bar is in indeterminate mode.
func (p *ProgressBar) Pulsating() bool { return p.pulsating }

// Tick advances the pulse animation one step.
func (p *ProgressBar) Tick() {
	if p.pulsating {
		p.pulsePos += 0.02
		if p.pulsePos > 1 {
			p.pulsePos = 0
		}
	}
}

// Handle ignores all events; the bar is display-only.
func (p *ProgressBar) Handle(input.Event) bool { return false }

// Draw paints the track, the fill or the sweeping pulse, and the border.
func (p *ProgressBar) Draw(c *render.Canvas, pal *theme.Palette, _ *render.Face) {
	c.FillRoundedRect(p.bounds.X, p.bounds.Y, p.bounds.W, p.bounds.H, barRadius, pal.ProgressBg)

	if p.pulsating {
		pulseW := p.bounds.W * 0.3
		pulseX := p.bounds.X + (p.bounds.W-pulseW)*p.pulsePos
		c.FillRoundedRect(pulseX, p.bounds.Y, pulseW, p.bounds.H, barRadius, pal.ProgressFill)
	} else if p.progress > 0 {
		fillW := p.bounds.W * p.progress
		if fillW < barRadius*2 {
			fillW = barRadius * 2
		}
		c.FillRoundedRect(p.bounds.X, p.bounds.Y, fillW, p.bounds.H, barRadius, pal.ProgressFill)
	}

	c.StrokeRoundedRect(p.bounds.X, p.bounds.Y, p.bounds.W, p.bounds.H, barRadius, pal.ProgressBorder, 1)
}
