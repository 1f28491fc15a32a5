package wayland

import (
	"sync"

	"github.com/odvcencio/placard/pkg/display"
	"github.com/odvcencio/placard/pkg/errors"
	"github.com/odvcencio/placard/pkg/logging"
)

// Surface is the drawable toplevel: one logical rectangle backed by a
// single shm buffer at physical (scale-multiplied) size.
type Surface struct {
	c *Conn

	mu    sync.Mutex
	w, h  int
	scale int
	pool  *shmPool
}

func (s *Surface) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w, s.h
}

func (s *Surface) Scale() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scale
}

func (s *Surface) Buffer() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pool.data
}

// Present attaches the buffer, damages the whole of it, and commits.
// There is no frame-callback pacing: dialogs redraw on input, not on a
// clock, so every commit is wanted immediately.
func (s *Surface) Present() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	steps := []error{
		s.c.wire.send(s.c.wlSurface, reqSurfaceAttach, nil, s.pool.bufferID, int32(0), int32(0)),
		s.damageLocked(),
		s.c.wire.send(s.c.wlSurface, reqSurfaceCommit, nil),
	}
	for _, err := range steps {
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeRender, "present failed")
		}
	}
	return nil
}

// damageLocked reports full damage in buffer pixels where the compositor
// is new enough, in surface coordinates otherwise.
func (s *Surface) damageLocked() error {
	if s.c.compositorVersion >= 4 {
		return s.c.wire.send(s.c.wlSurface, reqSurfaceDamageBuffer, nil,
			int32(0), int32(0), int32(s.pool.pxW), int32(s.pool.pxH))
	}
	return s.c.wire.send(s.c.wlSurface, reqSurfaceDamage, nil,
		int32(0), int32(0), int32(s.w), int32(s.h))
}

// Resize reallocates the backing pool for a new geometry.
func (s *Surface) Resize(w, h, scale int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reallocLocked(w, h, scale)
}

// applyConfigure adopts a compositor-imposed size, reporting whether the
// geometry actually changed.
func (s *Surface) applyConfigure(w, h int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w == s.w && h == s.h {
		return false
	}
	if err := s.reallocLocked(w, h, s.scale); err != nil {
		logging.Warnf("wayland: resize to %dx%d failed: %v", w, h, err)
		return false
	}
	return true
}

// applyScaleChange reallocates at a new output scale.
func (s *Surface) applyScaleChange(scale int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if scale == s.scale {
		return nil
	}
	return s.reallocLocked(s.w, s.h, scale)
}

func (s *Surface) geometry() (w, h, scale int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w, s.h, s.scale
}

func (s *Surface) reallocLocked(w, h, scale int) error {
	pool, err := s.c.newShmPool(w*scale, h*scale)
	if err != nil {
		return err
	}
	old := s.pool
	s.w, s.h, s.scale = w, h, scale
	s.pool = pool
	old.destroy(s.c)
	return s.c.wire.send(s.c.wlSurface, reqSurfaceSetBufferScale, nil, int32(scale))
}

var _ display.Surface = (*Surface)(nil)
