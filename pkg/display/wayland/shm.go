package wayland

import (
	"golang.org/x/sys/unix"

	"github.com/odvcencio/placard/pkg/errors"
	"github.com/odvcencio/placard/pkg/logging"
)

// shmPool is one memfd-backed pixel pool holding a single buffer the size
// of the window. The compositor maps the same pages, so filling data and
// committing is the entire upload.
type shmPool struct {
	data     []byte
	poolID   uint32
	bufferID uint32
	pxW, pxH int
}

// newShmPool allocates the shared memory, registers the pool with the
// compositor, and carves the one buffer out of it. The descriptor is
// closed after create_pool; the compositor holds its own reference.
func (c *Conn) newShmPool(pxW, pxH int) (*shmPool, error) {
	stride := pxW * 4
	size := stride * pxH

	fd, err := unix.MemfdCreate("placard-frame", unix.MFD_CLOEXEC)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSurfaceCreate, "memfd_create failed")
	}
	if err := unix.Ftruncate(fd, int64(size)); err != nil {
		unix.Close(fd)
		return nil, errors.Wrap(err, errors.ErrCodeSurfaceCreate, "ftruncate failed")
	}
	data, err := unix.Mmap(fd, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		unix.Close(fd)
		return nil, errors.Wrap(err, errors.ErrCodeSurfaceCreate, "mmap failed")
	}

	p := &shmPool{
		data: data,
		pxW:  pxW,
		pxH:  pxH,
	}
	p.poolID = c.newID(kindShmPool)
	if err := c.wire.send(c.shm, reqShmCreatePool, []int{fd}, p.poolID, int32(size)); err != nil {
		unix.Close(fd)
		return nil, err
	}
	unix.Close(fd)

	p.bufferID = c.newID(kindBuffer)
	err = c.wire.send(p.poolID, reqShmPoolCreateBuffer, nil,
		p.bufferID, int32(0), int32(pxW), int32(pxH), int32(stride), uint32(formatARGB8888))
	if err != nil {
		return nil, err
	}
	return p, nil
}

// destroy releases the buffer, the pool, and the mapping.
func (p *shmPool) destroy(c *Conn) {
	if p == nil {
		return
	}
	if err := c.wire.send(p.bufferID, reqBufferDestroy, nil); err != nil {
		logging.Debugf("wayland: buffer destroy failed: %v", err)
	}
	if err := c.wire.send(p.poolID, reqShmPoolDestroy, nil); err != nil {
		logging.Debugf("wayland: pool destroy failed: %v", err)
	}
	c.forget(p.bufferID)
	c.forget(p.poolID)
	if p.data != nil {
		if err := unix.Munmap(p.data); err != nil {
			logging.Debugf("wayland: munmap failed: %v", err)
		}
		p.data = nil
	}
}
