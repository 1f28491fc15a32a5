package x11

import (
	"context"
	"sync"

	"github.com/jezek/xgb/xproto"
	"golang.org/x/time/rate"

	"github.com/odvcencio/placard/pkg/errors"
)

// putImageBandBytes keeps each PutImage under the core-protocol request
// size cap (262140 bytes without BIG-REQUESTS), with headroom.
const putImageBandBytes = 240_000

// Surface is the window's back buffer. X11 windows here always run at
// scale 1: the core protocol has no output scale, matching how plain
// dialogs behave on X desktops.
type Surface struct {
	c *Conn

	mu   sync.Mutex
	w, h int
	buf  []byte

	limiter *rate.Limiter
}

func newSurface(c *Conn, w, h int) *Surface {
	return &Surface{
		c:       c,
		w:       w,
		h:       h,
		buf:     make([]byte, w*h*4),
		limiter: rate.NewLimiter(60, 2),
	}
}

// Size returns the logical size.
func (s *Surface) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w, s.h
}

// Scale is 1 on X11.
func (s *Surface) Scale() int { return 1 }

// Buffer returns the BGRA back buffer, stride w*4.
func (s *Surface) Buffer() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf
}

// Present pushes the buffer to the window in horizontal bands, each small
// enough for one core-protocol request. Presents are paced to 60 a second
// so event storms cannot flood the server with full-window uploads.
func (s *Surface) Present() error {
	if err := s.limiter.Wait(context.Background()); err != nil {
		return err
	}

	s.mu.Lock()
	w, h, buf := s.w, s.h, s.buf
	s.mu.Unlock()

	stride := w * 4
	if stride == 0 {
		return nil
	}
	bandRows := putImageBandBytes / stride
	if bandRows < 1 {
		bandRows = 1
	}

	for y := 0; y < h; y += bandRows {
		rows := bandRows
		if y+rows > h {
			rows = h - y
		}
		data := buf[y*stride : (y+rows)*stride]
		err := xproto.PutImageChecked(s.c.conn, xproto.ImageFormatZPixmap,
			xproto.Drawable(s.c.win), s.c.gc,
			uint16(w), uint16(rows), 0, int16(y),
			0, s.c.screen.RootDepth, data).Check()
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeRender, "PutImage failed")
		}
	}
	return nil
}

// Resize asks the server for a new window size and reallocates the buffer
// immediately; the echoing ConfigureNotify then finds nothing to change.
func (s *Surface) Resize(w, h, _ int) error {
	xproto.ConfigureWindow(s.c.conn, s.c.win,
		xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
		[]uint32{uint32(w), uint32(h)})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(w, h)
	return nil
}

// applyConfigure reacts to a server-delivered size. Reports whether the
// size actually changed.
func (s *Surface) applyConfigure(w, h int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w == s.w && h == s.h {
		return false
	}
	s.apply(w, h)
	return true
}

func (s *Surface) apply(w, h int) {
	s.w, s.h = w, h
	s.buf = make([]byte, w*h*4)
}
