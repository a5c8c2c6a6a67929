package zcbuf

import (
	"bytes"
	"encoding/binary"
	"math"
	"unicode/utf8"
	"unsafe"

	"lukechampine.com/uint128"
)

var (
	le = binary.LittleEndian
	be = binary.BigEndian
	ne = binary.NativeEndian

	nativeLittle = ne.Uint16([]byte{1, 0}) == 1
)

// Reader decodes fixed-width values and strings from the front of a byte
// View. Every method is a single Take followed by a decode; a failed Take
// leaves the view where it was.
type Reader struct {
	v    View[byte]
	bad  error
	opts Options
}

// NewReader returns a Reader consuming v.
func NewReader(v View[byte]) Reader {
	return Reader{v: v, bad: ErrBadPos}
}

// NewReaderOptions returns a Reader consuming v with the given options.
func NewReaderOptions(v View[byte], opts Options) Reader {
	return Reader{v: v, bad: ErrBadPos, opts: opts}
}

// borrower is implemented by views that copy what Take and Remaining hand
// out. The Reader uses it to decode straight from their storage without
// letting those bytes escape.
type borrower interface {
	borrowRest() []byte
	borrow(n int) ([]byte, error)
}

func (r Reader) rest() []byte {
	if b, ok := r.v.(borrower); ok {
		return b.borrowRest()
	}
	return r.v.Remaining()
}

func (r Reader) next(n int) ([]byte, error) {
	if b, ok := r.v.(borrower); ok {
		return b.borrow(n)
	}
	return r.v.Take(n)
}

// Len returns the number of bytes left in the underlying view.
func (r Reader) Len() int { return r.v.Len() }

// Remaining returns the bytes left in the underlying view.
func (r Reader) Remaining() []byte { return r.v.Remaining() }

// Take returns the next n bytes.
func (r Reader) Take(n int) ([]byte, error) { return r.v.Take(n) }

// Skip discards the next n bytes.
func (r Reader) Skip(n int) error {
	_, err := r.next(n)
	return err
}

func take[V any](r Reader, n int, dec func([]byte) V) (V, error) {
	b, err := r.next(n)
	if err != nil {
		var zero V
		return zero, err
	}
	return dec(b), nil
}

func (r Reader) TakeU8() (uint8, error) {
	return take(r, 1, func(b []byte) uint8 { return b[0] })
}

func (r Reader) TakeI8() (int8, error) {
	return take(r, 1, func(b []byte) int8 { return int8(b[0]) })
}

func (r Reader) TakeU16LE() (uint16, error) { return take(r, 2, le.Uint16) }
func (r Reader) TakeU16BE() (uint16, error) { return take(r, 2, be.Uint16) }
func (r Reader) TakeU16NE() (uint16, error) { return take(r, 2, ne.Uint16) }

func (r Reader) TakeI16LE() (int16, error) {
	return take(r, 2, func(b []byte) int16 { return int16(le.Uint16(b)) })
}

func (r Reader) TakeI16BE() (int16, error) {
	return take(r, 2, func(b []byte) int16 { return int16(be.Uint16(b)) })
}

func (r Reader) TakeI16NE() (int16, error) {
	return take(r, 2, func(b []byte) int16 { return int16(ne.Uint16(b)) })
}

func (r Reader) TakeU32LE() (uint32, error) { return take(r, 4, le.Uint32) }
func (r Reader) TakeU32BE() (uint32, error) { return take(r, 4, be.Uint32) }
func (r Reader) TakeU32NE() (uint32, error) { return take(r, 4, ne.Uint32) }

func (r Reader) TakeI32LE() (int32, error) {
	return take(r, 4, func(b []byte) int32 { return int32(le.Uint32(b)) })
}

func (r Reader) TakeI32BE() (int32, error) {
	return take(r, 4, func(b []byte) int32 { return int32(be.Uint32(b)) })
}

func (r Reader) TakeI32NE() (int32, error) {
	return take(r, 4, func(b []byte) int32 { return int32(ne.Uint32(b)) })
}

func (r Reader) TakeU64LE() (uint64, error) { return take(r, 8, le.Uint64) }
func (r Reader) TakeU64BE() (uint64, error) { return take(r, 8, be.Uint64) }
func (r Reader) TakeU64NE() (uint64, error) { return take(r, 8, ne.Uint64) }

func (r Reader) TakeI64LE() (int64, error) {
	return take(r, 8, func(b []byte) int64 { return int64(le.Uint64(b)) })
}

func (r Reader) TakeI64BE() (int64, error) {
	return take(r, 8, func(b []byte) int64 { return int64(be.Uint64(b)) })
}

func (r Reader) TakeI64NE() (int64, error) {
	return take(r, 8, func(b []byte) int64 { return int64(ne.Uint64(b)) })
}

func u128NE(b []byte) uint128.Uint128 {
	if nativeLittle {
		return uint128.FromBytes(b)
	}
	return uint128.FromBytesBE(b)
}

func (r Reader) TakeU128LE() (uint128.Uint128, error) { return take(r, 16, uint128.FromBytes) }
func (r Reader) TakeU128BE() (uint128.Uint128, error) { return take(r, 16, uint128.FromBytesBE) }
func (r Reader) TakeU128NE() (uint128.Uint128, error) { return take(r, 16, u128NE) }

func (r Reader) TakeI128LE() (Int128, error) {
	return take(r, 16, func(b []byte) Int128 { return Int128FromBits(uint128.FromBytes(b)) })
}

func (r Reader) TakeI128BE() (Int128, error) {
	return take(r, 16, func(b []byte) Int128 { return Int128FromBits(uint128.FromBytesBE(b)) })
}

func (r Reader) TakeI128NE() (Int128, error) {
	return take(r, 16, func(b []byte) Int128 { return Int128FromBits(u128NE(b)) })
}

func (r Reader) TakeF32LE() (float32, error) {
	return take(r, 4, func(b []byte) float32 { return math.Float32frombits(le.Uint32(b)) })
}

func (r Reader) TakeF32BE() (float32, error) {
	return take(r, 4, func(b []byte) float32 { return math.Float32frombits(be.Uint32(b)) })
}

func (r Reader) TakeF32NE() (float32, error) {
	return take(r, 4, func(b []byte) float32 { return math.Float32frombits(ne.Uint32(b)) })
}

func (r Reader) TakeF64LE() (float64, error) {
	return take(r, 8, func(b []byte) float64 { return math.Float64frombits(le.Uint64(b)) })
}

func (r Reader) TakeF64BE() (float64, error) {
	return take(r, 8, func(b []byte) float64 { return math.Float64frombits(be.Uint64(b)) })
}

func (r Reader) TakeF64NE() (float64, error) {
	return take(r, 8, func(b []byte) float64 { return math.Float64frombits(ne.Uint64(b)) })
}

// TakeUvarint reads an unsigned LEB128 varint as written by PutUvarint.
// A truncated or overlong varint is a bounds error.
func (r Reader) TakeUvarint() (uint64, error) {
	x, n := binary.Uvarint(r.rest())
	if n <= 0 {
		return 0, r.bad
	}
	if err := r.Skip(n); err != nil {
		return 0, err
	}
	return x, nil
}

// TakeAsStr takes n bytes and returns them as a string. Invalid UTF-8 is
// reported as a bounds error and nothing is consumed.
func (r Reader) TakeAsStr(n int) (string, error) {
	if rest := r.rest(); n >= 0 && n <= len(rest) && !utf8.Valid(rest[:n]) {
		return "", r.bad
	}
	b, err := r.next(n)
	if err != nil {
		return "", err
	}
	return r.str(b), nil
}

// TakeUntilNul consumes bytes up to and including the first NUL and returns
// the bytes before it. Without a NUL in the remaining bytes it fails.
func (r Reader) TakeUntilNul() ([]byte, error) {
	n := bytes.IndexByte(r.rest(), 0)
	if n < 0 {
		n = r.v.Len()
	}
	b, err := r.v.Take(n + 1)
	if err != nil {
		return nil, err
	}
	return b[:n:n], nil
}

// TakeAsStrUntilNul is TakeUntilNul followed by UTF-8 validation. Invalid
// text is a bounds error and nothing is consumed.
func (r Reader) TakeAsStrUntilNul() (string, error) {
	rest := r.rest()
	n := bytes.IndexByte(rest, 0)
	if n < 0 {
		n = len(rest)
	} else if !utf8.Valid(rest[:n]) {
		return "", r.bad
	}
	b, err := r.next(n + 1)
	if err != nil {
		return "", err
	}
	return r.str(b[:n]), nil
}

func (r Reader) str(b []byte) string {
	if r.opts.UnsafeStrings && len(b) > 0 {
		return unsafe.String(&b[0], len(b))
	}
	return string(b)
}
