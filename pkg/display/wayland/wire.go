package wayland

import (
	"bytes"
	"encoding/binary"
	"net"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/odvcencio/placard/pkg/errors"
)

const headerSize = 8

// fixed is the protocol's 24.8 signed fixed-point type.
type fixed int32

func (f fixed) float() float64 {
	return float64(f) / 256.0
}

// wire frames messages on the compositor socket. The protocol is
// host-byte-order; Linux targets here are little-endian, which is what the
// codec writes. File descriptors ride the ancillary channel and are queued
// until the event that owns them claims one.
type wire struct {
	conn *net.UnixConn

	sendMu sync.Mutex

	fdsMu sync.Mutex
	fds   []int

	hdr [headerSize]byte
	oob [64]byte
}

func newWire(conn *net.UnixConn) *wire {
	return &wire{conn: conn}
}

// send writes one request. Arguments may be uint32, int32, or string;
// descriptors are passed out-of-band only, never in the body.
func (w *wire) send(object uint32, opcode uint16, fds []int, args ...any) error {
	w.sendMu.Lock()
	defer w.sendMu.Unlock()

	buf := &bytes.Buffer{}
	buf.Write(make([]byte, headerSize))
	for _, arg := range args {
		if err := marshalArg(buf, arg); err != nil {
			return err
		}
	}

	data := buf.Bytes()
	packHeader(data, object, opcode, len(data))

	var oob []byte
	if len(fds) > 0 {
		oob = unix.UnixRights(fds...)
	}
	if _, _, err := w.conn.WriteMsgUnix(data, oob, nil); err != nil {
		return errors.Wrap(err, errors.ErrCodeProtocol, "wayland send failed")
	}
	return nil
}

// recv reads one event: header, then body. Both reads collect any
// descriptors the compositor attached.
func (w *wire) recv() (object uint32, opcode uint16, body []byte, err error) {
	if err = w.readFull(w.hdr[:]); err != nil {
		return 0, 0, nil, err
	}
	object, size, opcode := unpackHeader(w.hdr[:])
	if size < headerSize {
		return 0, 0, nil, errors.Newf(errors.ErrCodeProtocol,
			"wayland message size %d below header size", size)
	}
	if size > headerSize {
		body = make([]byte, size-headerSize)
		if err = w.readFull(body); err != nil {
			return 0, 0, nil, err
		}
	}
	return object, opcode, body, nil
}

func (w *wire) readFull(buf []byte) error {
	for len(buf) > 0 {
		n, oobn, _, _, err := w.conn.ReadMsgUnix(buf, w.oob[:])
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeProtocol, "wayland read failed")
		}
		if oobn > 0 {
			w.collectFDs(w.oob[:oobn])
		}
		buf = buf[n:]
	}
	return nil
}

func (w *wire) collectFDs(oob []byte) {
	msgs, err := unix.ParseSocketControlMessage(oob)
	if err != nil {
		return
	}
	w.fdsMu.Lock()
	defer w.fdsMu.Unlock()
	for _, m := range msgs {
		fds, err := unix.ParseUnixRights(&m)
		if err != nil {
			continue
		}
		w.fds = append(w.fds, fds...)
	}
}

// takeFD claims the oldest received descriptor.
func (w *wire) takeFD() (int, bool) {
	w.fdsMu.Lock()
	defer w.fdsMu.Unlock()
	if len(w.fds) == 0 {
		return -1, false
	}
	fd := w.fds[0]
	w.fds = w.fds[1:]
	return fd, true
}

func marshalArg(buf *bytes.Buffer, arg any) error {
	switch v := arg.(type) {
	case uint32:
		return binary.Write(buf, binary.LittleEndian, v)
	case int32:
		return binary.Write(buf, binary.LittleEndian, v)
	case string:
		// Length counts the terminating NUL; the body pads to 32 bits.
		n := len(v) + 1
		if err := binary.Write(buf, binary.LittleEndian, uint32(n)); err != nil {
			return err
		}
		buf.WriteString(v)
		buf.WriteByte(0)
		for i := 0; i < pad4(n); i++ {
			buf.WriteByte(0)
		}
		return nil
	default:
		return errors.Newf(errors.ErrCodeInternal, "unsupported wire argument type %T", arg)
	}
}

func pad4(n int) int {
	return (4 - n%4) % 4
}

func packHeader(data []byte, object uint32, opcode uint16, size int) {
	binary.LittleEndian.PutUint32(data[0:4], object)
	binary.LittleEndian.PutUint32(data[4:8], uint32(size)<<16|uint32(opcode))
}

func unpackHeader(hdr []byte) (object uint32, size int, opcode uint16) {
	object = binary.LittleEndian.Uint32(hdr[0:4])
	so := binary.LittleEndian.Uint32(hdr[4:8])
	return object, int(so >> 16), uint16(so & 0xffff)
}

// Body readers used by the event dispatcher. Offsets are in bytes; every
// argument is 32-bit aligned.

func ru32(body []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(body[off : off+4])
}

func ri32(body []byte, off int) int32 {
	return int32(ru32(body, off))
}

func rfixed(body []byte, off int) fixed {
	return fixed(ri32(body, off))
}

// rstring reads a length-prefixed string and returns it with the offset of
// the next argument.
func rstring(body []byte, off int) (string, int) {
	n := int(ru32(body, off))
	off += 4
	if n == 0 {
		return "", off
	}
	s := string(body[off : off+n-1])
	off += n + pad4(n)
	return s, off
}
