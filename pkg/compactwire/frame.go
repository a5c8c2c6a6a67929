// Package compactwire implements a small framed wire protocol with data,
// error and handshake frames. Every frame is
//
//	magic(2) | type(1) | length(4) | body | crc32(4)
//
// with little-endian integers. length counts the whole frame including the
// CRC, and the CRC (IEEE) covers everything after the magic up to the CRC.
// Frames are encoded into a single buffer of exactly the right size and
// decoded in place: payloads returned by the decoders alias the input
// unless they had to be decompressed.
package compactwire

import (
	"hash/crc32"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/rawbytedev/zcbuf"
)

const (
	Magic0 byte = 0xCF
	Magic1 byte = 0x57
)

// Frame types.
const (
	TypeData      byte = 0x01
	TypeError     byte = 0x02
	TypeHandshake byte = 0x03
)

// Data frame flags.
const (
	FlagHasOffsetTable byte = 0x01
	FlagCompressed     byte = 0x02
)

// HeaderSize is magic, type and length.
const HeaderSize = 7

const crcSize = 4

// MinFrameSize is the size of a frame with an empty body.
const MinFrameSize = HeaderSize + crcSize

// MaxFrameSize bounds both a whole frame and a decompressed payload.
const MaxFrameSize = 16 << 20

var (
	ErrNotFrame       = errors.New("compactwire: not a frame")
	ErrCRCMismatch    = errors.New("compactwire: crc mismatch")
	ErrLengthMismatch = errors.New("compactwire: length mismatch")
	ErrTooLarge       = errors.New("compactwire: frame too large")
)

var log = logrus.WithField("component", "compactwire")

// PeekFrameType returns the type byte of the frame at the start of data
// after checking the magic. Only the first three bytes are read.
func PeekFrameType(data []byte) (byte, error) {
	r := zcbuf.NewReader(zcbuf.NewSlice(data))
	m0, err0 := r.TakeU8()
	m1, err1 := r.TakeU8()
	t, err2 := r.TakeU8()
	if err0 != nil || err1 != nil || err2 != nil {
		return 0, errors.Wrap(ErrNotFrame, "short header")
	}
	if m0 != Magic0 || m1 != Magic1 {
		return 0, errors.Wrapf(ErrNotFrame, "bad magic %02x%02x", m0, m1)
	}
	return t, nil
}

// FrameLen returns the total length announced by the header at the start of
// data. It needs HeaderSize bytes and is meant for splitting a byte stream
// into frames.
func FrameLen(data []byte) (int, error) {
	if _, err := PeekFrameType(data); err != nil {
		return 0, err
	}
	l, err := zcbuf.NewLookAt(data, 3)
	if err != nil {
		return 0, errors.Wrap(ErrNotFrame, "short header")
	}
	n, err := zcbuf.NewReader(l).TakeU32LE()
	if err != nil {
		return 0, errors.Wrap(ErrNotFrame, "short header")
	}
	if n < MinFrameSize {
		return 0, errors.Wrapf(ErrLengthMismatch, "announced length %d", n)
	}
	if n > MaxFrameSize {
		return 0, errors.Wrapf(ErrTooLarge, "announced length %d", n)
	}
	return int(n), nil
}

// frameWriter writes a frame into a pre-sized buffer. The first failed put
// sticks and every later put is a no-op.
type frameWriter struct {
	buf []byte
	l   *zcbuf.Look[byte]
	w   *zcbuf.Writer
	err error
}

func newFrameWriter(typ byte, bodyLen int) (*frameWriter, error) {
	total := MinFrameSize + bodyLen
	if bodyLen < 0 || total > MaxFrameSize {
		return nil, errors.Wrapf(ErrTooLarge, "body of %d bytes", bodyLen)
	}
	buf := make([]byte, total)
	l := zcbuf.NewLook(buf)
	fw := &frameWriter{buf: buf, l: l, w: zcbuf.NewWriter(l)}
	fw.u8(Magic0)
	fw.u8(Magic1)
	fw.u8(typ)
	fw.u32(uint32(total))
	return fw, nil
}

func (f *frameWriter) u8(v byte) {
	if f.err == nil {
		f.err = f.w.PutU8(v)
	}
}

func (f *frameWriter) u16(v uint16) {
	if f.err == nil {
		f.err = f.w.PutU16LE(v)
	}
}

func (f *frameWriter) u32(v uint32) {
	if f.err == nil {
		f.err = f.w.PutU32LE(v)
	}
}

func (f *frameWriter) bytes(p []byte) {
	if f.err == nil {
		f.err = f.w.Put(p)
	}
}

// finish appends the CRC and returns the frame.
func (f *frameWriter) finish() ([]byte, error) {
	f.u32(crc32.ChecksumIEEE(f.buf[2:f.l.Pos()]))
	if f.err != nil {
		return nil, errors.Wrap(f.err, "frame size miscounted")
	}
	if f.l.Len() != 0 {
		return nil, errors.Wrapf(ErrLengthMismatch, "%d bytes left unwritten", f.l.Len())
	}
	return f.buf, nil
}

// openFrame validates the header, length and CRC of a frame of type want and
// returns a reader over its body. The returned Look ends before the CRC.
func openFrame(data []byte, want byte) (*zcbuf.Look[byte], zcbuf.Reader, error) {
	t, err := PeekFrameType(data)
	if err != nil {
		return nil, zcbuf.Reader{}, err
	}
	if t != want {
		return nil, zcbuf.Reader{}, errors.Wrapf(ErrNotFrame, "type 0x%02x, want 0x%02x", t, want)
	}
	n, err := FrameLen(data)
	if err != nil {
		return nil, zcbuf.Reader{}, err
	}
	if n != len(data) {
		log.WithFields(logrus.Fields{"announced": n, "got": len(data)}).Warn("rejecting frame")
		return nil, zcbuf.Reader{}, errors.Wrapf(ErrLengthMismatch, "header says %d, got %d", n, len(data))
	}

	end := len(data) - crcSize
	sum, err := zcbuf.NewReader(zcbuf.NewSlice(data[end:])).TakeU32LE()
	if err != nil {
		return nil, zcbuf.Reader{}, errors.Wrap(err, "reading crc")
	}
	if got := crc32.ChecksumIEEE(data[2:end]); got != sum {
		log.WithFields(logrus.Fields{"type": t, "want": sum, "got": got}).Warn("rejecting frame")
		return nil, zcbuf.Reader{}, errors.Wrapf(ErrCRCMismatch, "want %08x, got %08x", sum, got)
	}

	body, err := zcbuf.NewLookAt(data[:end], HeaderSize)
	if err != nil {
		return nil, zcbuf.Reader{}, errors.Wrap(err, "locating body")
	}
	return body, zcbuf.NewReader(body), nil
}

// drained reports trailing bytes left in a fixed-layout body.
func drained(body *zcbuf.Look[byte], what string) error {
	if body.Len() != 0 {
		return errors.Wrapf(ErrLengthMismatch, "%d trailing bytes in %s", body.Len(), what)
	}
	return nil
}
