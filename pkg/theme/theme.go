// Package theme resolves the dialog color palette once at startup: an
// explicit preference wins, then GTK_THEME, then the GNOME color-scheme
// setting, then the terminal background when stderr is a TTY, then dark.
// The palette is frozen for the life of the process.
package theme

import (
	"context"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/odvcencio/placard/pkg/logging"
	"github.com/odvcencio/placard/pkg/render"
)

// Variant names a palette family.
type Variant string

const (
	VariantLight Variant = "light"
	VariantDark  Variant = "dark"
)

// Palette is the complete widget color set for one variant.
type Palette struct {
	Variant Variant

	// Window chrome
	WindowBg     render.Color
	WindowBorder render.Color
	WindowShadow render.Color

	// Text
	Text        render.Color
	Placeholder render.Color

	// Buttons
	Button        render.Color
	ButtonHover   render.Color
	ButtonPressed render.Color
	ButtonOutline render.Color
	ButtonText    render.Color

	// Inputs
	InputBg            render.Color
	InputBgFocused     render.Color
	InputBorder        render.Color
	InputBorderFocused render.Color

	// Progress
	ProgressBg     render.Color
	ProgressFill   render.Color
	ProgressBorder render.Color

	// Icon badges, shared by both variants
	IconInfo     render.Color
	IconWarning  render.Color
	IconError    render.Color
	IconQuestion render.Color
}

// Light returns the light palette.
func Light() *Palette {
	p := &Palette{
		Variant: VariantLight,

		WindowBg:     render.RGB(250, 250, 250),
		WindowBorder: render.RGB(180, 180, 180),
		WindowShadow: render.RGBA(0, 0, 0, 50),

		Text:        render.RGB(30, 30, 30),
		Placeholder: render.RGB(150, 150, 150),

		Button:        render.RGB(230, 230, 230),
		ButtonHover:   render.RGB(220, 220, 220),
		ButtonPressed: render.RGB(200, 200, 200),
		ButtonOutline: render.RGB(180, 180, 180),
		ButtonText:    render.RGB(30, 30, 30),

		InputBg:            render.RGB(255, 255, 255),
		InputBgFocused:     render.RGB(255, 255, 255),
		InputBorder:        render.RGB(200, 200, 200),
		InputBorderFocused: render.RGB(100, 150, 200),

		ProgressBg:     render.RGB(230, 230, 230),
		ProgressFill:   render.RGB(70, 140, 220),
		ProgressBorder: render.RGB(200, 200, 200),
	}
	fillIconColors(p)
	return p
}

// Dark returns the dark palette.
func Dark() *Palette {
	p := &Palette{
		Variant: VariantDark,

		WindowBg:     render.RGB(45, 45, 45),
		WindowBorder: render.RGB(70, 70, 70),
		WindowShadow: render.RGBA(0, 0, 0, 80),

		Text:        render.RGB(230, 230, 230),
		Placeholder: render.RGB(120, 120, 120),

		Button:        render.RGB(70, 70, 70),
		ButtonHover:   render.RGB(80, 80, 80),
		ButtonPressed: render.RGB(60, 60, 60),
		ButtonOutline: render.RGB(100, 100, 100),
		ButtonText:    render.RGB(230, 230, 230),

		InputBg:            render.RGB(60, 60, 60),
		InputBgFocused:     render.RGB(65, 65, 65),
		InputBorder:        render.RGB(90, 90, 90),
		InputBorderFocused: render.RGB(100, 150, 200),

		ProgressBg:     render.RGB(60, 60, 60),
		ProgressFill:   render.RGB(70, 140, 220),
		ProgressBorder: render.RGB(90, 90, 90),
	}
	fillIconColors(p)
	return p
}

func fillIconColors(p *Palette) {
	p.IconInfo = render.RGB(66, 133, 244)
	p.IconWarning = render.RGB(251, 188, 4)
	p.IconError = render.RGB(234, 67, 53)
	p.IconQuestion = render.RGB(52, 168, 83)
}

// Detect resolves the palette. pref is an explicit "light"/"dark" override
// from a flag, the config file, or PLACARD_THEME; anything else means auto.
func Detect(pref string) *Palette {
	switch strings.ToLower(pref) {
	case string(VariantLight):
		return Light()
	case string(VariantDark):
		return Dark()
	}

	if v := os.Getenv("GTK_THEME"); v != "" {
		if strings.Contains(strings.ToLower(v), "dark") {
			return Dark()
		}
		return Light()
	}

	if p := gsettingsScheme(); p != nil {
		return p
	}

	if term.IsTerminal(int(os.Stderr.Fd())) {
		if termenv.NewOutput(os.Stderr).HasDarkBackground() {
			return Dark()
		}
		return Light()
	}

	return Dark()
}

// gsettingsScheme probes the GNOME color-scheme key. Returns nil when the
// probe is inconclusive so detection can continue.
func gsettingsScheme() *Palette {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	out, err := exec.CommandContext(ctx, "gsettings",
		"get", "org.gnome.desktop.interface", "color-scheme").Output()
	if err != nil {
		logging.Debugf("theme: gsettings probe failed: %v", err)
		return nil
	}

	s := strings.ToLower(string(out))
	switch {
	case strings.Contains(s, "dark"):
		return Dark()
	case strings.Contains(s, "light"), strings.Contains(s, "default"):
		return Light()
	}
	return nil
}

// Darken scales a color toward black by the given fraction, keeping alpha.
func Darken(c render.Color, amount float64) render.Color {
	f := 1 - amount
	if f < 0 {
		f = 0
	}
	return render.RGBA(
		uint8(float64(c.R)*f),
		uint8(float64(c.G)*f),
		uint8(float64(c.B)*f),
		c.A,
	)
}
