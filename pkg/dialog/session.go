package dialog

import (
	"context"
	"io"
	"time"

	"golang.org/x/time/rate"

	"github.com/odvcencio/placard/pkg/display"
	"github.com/odvcencio/placard/pkg/errors"
	"github.com/odvcencio/placard/pkg/input"
	"github.com/odvcencio/placard/pkg/logging"
	"github.com/odvcencio/placard/pkg/render"
)

const (
	windowClass = "placard"

	// frameInterval paces the tick timer and, on X11, the present rate.
	frameInterval = 16 * time.Millisecond
)

// SessionOptions configure one dialog session.
type SessionOptions struct {
	// Timeout forces TimedOut after the given duration; zero disables it.
	Timeout time.Duration
	// FontSize is the text size in logical units; zero means the default.
	FontSize float64
}

// Session drives one controller against one display connection: it
// realizes the window, translates raw events, paces redraws, and applies
// the timeout deadline. Run tears the connection down before returning,
// so the result emitter never races a live surface.
type Session struct {
	conn display.Conn
	opts SessionOptions
}

// NewSession wraps an open connection. The session takes ownership; the
// connection is closed when Run returns.
func NewSession(conn display.Conn, opts SessionOptions) *Session {
	if opts.FontSize <= 0 {
		opts.FontSize = render.BaseTextSize
	}
	return &Session{conn: conn, opts: opts}
}

// Run loops until the controller reaches a terminal state, the deadline
// expires, or the context is cancelled. Cancellation and window close
// both map to Closed; any transport failure maps to Errored, with no
// retry.
func (s *Session) Run(ctx context.Context, ctrl Controller) Outcome {
	defer s.conn.Close()
	if c, ok := ctrl.(io.Closer); ok {
		defer c.Close()
	}

	w, h := ctrl.Size()
	surf, err := s.conn.CreateSurface(display.SurfaceOptions{
		Title:  ctrl.Title(),
		Class:  windowClass,
		Width:  w,
		Height: h,
	})
	if err != nil {
		return Errored(err)
	}

	km, err := s.conn.Keymap()
	if err != nil {
		return Errored(err)
	}
	tr := input.NewTranslator(km)

	face, err := render.NewFace(s.opts.FontSize, surf.Scale())
	if err != nil {
		return Errored(err)
	}

	present := func() error {
		sw, sh := surf.Size()
		c := render.NewCanvas(surf.Buffer(), sw, sh, surf.Scale())
		ctrl.Draw(c, face)
		return surf.Present()
	}

	// First frame before any input; the dialog is active once visible.
	if err := present(); err != nil {
		return Errored(err)
	}

	// X11 has no frame callback, so presents are capped there. The
	// Wayland backend paces itself through wl_surface.frame.
	var limiter *rate.Limiter
	if s.conn.Name() == "x11" {
		limiter = rate.NewLimiter(rate.Every(frameInterval), 1)
	}

	var deadline time.Time
	if s.opts.Timeout > 0 {
		deadline = time.Now().Add(s.opts.Timeout)
	}

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	events := s.conn.Events()
	cursor := display.CursorDefault
	dirty := false

	for {
		if o, done := ctrl.Outcome(); done {
			return o
		}
		if dirty && (limiter == nil || limiter.Allow()) {
			if err := present(); err != nil {
				return Errored(err)
			}
			dirty = false
		}

		select {
		case <-ctx.Done():
			return Outcome{State: StateClosed}

		case raw, ok := <-events:
			if !ok {
				return Errored(errors.New(errors.ErrCodeProtocol, "display connection lost"))
			}
			switch r := raw.(type) {
			case input.RawError:
				return Errored(r.Err)
			case input.RawExpose:
				dirty = true
			case input.RawKeymapChange:
				if km, err := s.conn.Keymap(); err == nil {
					tr.SetKeymap(km)
				} else {
					logging.Warnf("keymap reload failed: %v", err)
				}
			default:
				for _, ev := range tr.Translate(raw) {
					switch e := ev.(type) {
					case input.Close:
						return Outcome{State: StateClosed}
					case input.Resize:
						rescale := e.Scale != surf.Scale()
						if err := surf.Resize(e.Width, e.Height, e.Scale); err != nil {
							return Errored(err)
						}
						if rescale {
							if face, err = render.NewFace(s.opts.FontSize, e.Scale); err != nil {
								return Errored(err)
							}
						}
						dirty = true
					}
					if ctrl.Handle(ev) {
						dirty = true
					}
				}
				if m, ok := ctrl.(Mover); ok && m.WantsMove() {
					s.conn.BeginMove()
				}
				if cs, ok := ctrl.(CursorShaper); ok {
					if shape := cs.CursorShape(); shape != cursor {
						cursor = shape
						s.conn.SetCursor(shape)
					}
				}
			}

		case <-ticker.C:
			if ctrl.Tick() {
				dirty = true
			}
			if !deadline.IsZero() && !time.Now().Before(deadline) {
				return Outcome{State: StateTimedOut}
			}
		}
	}
}
