package zcbuf

import (
	"encoding/binary"
	"math"
	"unsafe"

	"lukechampine.com/uint128"
)

// Writer encodes fixed-width values and strings into the front of a byte
// ViewMut. It embeds a Reader over the same view, so a Writer can also take.
//
// Values are staged in a scratch array owned by the Writer, which keeps puts
// free of allocations once the Writer exists.
type Writer struct {
	Reader
	w       ViewMut[byte]
	scratch [16]byte
}

// NewWriter returns a Writer filling v.
func NewWriter(v ViewMut[byte]) *Writer {
	return &Writer{Reader: NewReader(v), w: v}
}

// Put writes p as is.
func (w *Writer) Put(p []byte) error {
	return w.w.Put(p)
}

func (w *Writer) put(n int) error {
	return w.w.Put(w.scratch[:n])
}

func (w *Writer) PutU8(v uint8) error {
	w.scratch[0] = v
	return w.put(1)
}

func (w *Writer) PutI8(v int8) error {
	return w.PutU8(uint8(v))
}

func (w *Writer) PutU16LE(v uint16) error { le.PutUint16(w.scratch[:], v); return w.put(2) }
func (w *Writer) PutU16BE(v uint16) error { be.PutUint16(w.scratch[:], v); return w.put(2) }
func (w *Writer) PutU16NE(v uint16) error { ne.PutUint16(w.scratch[:], v); return w.put(2) }
func (w *Writer) PutI16LE(v int16) error { return w.PutU16LE(uint16(v)) }
func (w *Writer) PutI16BE(v int16) error { return w.PutU16BE(uint16(v)) }
func (w *Writer) PutI16NE(v int16) error { return w.PutU16NE(uint16(v)) }

func (w *Writer) PutU32LE(v uint32) error { le.PutUint32(w.scratch[:], v); return w.put(4) }
func (w *Writer) PutU32BE(v uint32) error { be.PutUint32(w.scratch[:], v); return w.put(4) }
func (w *Writer) PutU32NE(v uint32) error { ne.PutUint32(w.scratch[:], v); return w.put(4) }
func (w *Writer) PutI32LE(v int32) error { return w.PutU32LE(uint32(v)) }
func (w *Writer) PutI32BE(v int32) error { return w.PutU32BE(uint32(v)) }
func (w *Writer) PutI32NE(v int32) error { return w.PutU32NE(uint32(v)) }

func (w *Writer) PutU64LE(v uint64) error { le.PutUint64(w.scratch[:], v); return w.put(8) }
func (w *Writer) PutU64BE(v uint64) error { be.PutUint64(w.scratch[:], v); return w.put(8) }
func (w *Writer) PutU64NE(v uint64) error { ne.PutUint64(w.scratch[:], v); return w.put(8) }
func (w *Writer) PutI64LE(v int64) error { return w.PutU64LE(uint64(v)) }
func (w *Writer) PutI64BE(v int64) error { return w.PutU64BE(uint64(v)) }
func (w *Writer) PutI64NE(v int64) error { return w.PutU64NE(uint64(v)) }

func (w *Writer) PutU128LE(v uint128.Uint128) error { v.PutBytes(w.scratch[:]); return w.put(16) }
func (w *Writer) PutU128BE(v uint128.Uint128) error { v.PutBytesBE(w.scratch[:]); return w.put(16) }

func (w *Writer) PutU128NE(v uint128.Uint128) error {
	if nativeLittle {
		return w.PutU128LE(v)
	}
	return w.PutU128BE(v)
}

func (w *Writer) PutI128LE(v Int128) error { return w.PutU128LE(v.Bits()) }
func (w *Writer) PutI128BE(v Int128) error { return w.PutU128BE(v.Bits()) }
func (w *Writer) PutI128NE(v Int128) error { return w.PutU128NE(v.Bits()) }

func (w *Writer) PutF32LE(v float32) error { return w.PutU32LE(math.Float32bits(v)) }
func (w *Writer) PutF32BE(v float32) error { return w.PutU32BE(math.Float32bits(v)) }
func (w *Writer) PutF32NE(v float32) error { return w.PutU32NE(math.Float32bits(v)) }
func (w *Writer) PutF64LE(v float64) error { return w.PutU64LE(math.Float64bits(v)) }
func (w *Writer) PutF64BE(v float64) error { return w.PutU64BE(math.Float64bits(v)) }
func (w *Writer) PutF64NE(v float64) error { return w.PutU64NE(math.Float64bits(v)) }

// PutUvarint writes v as an unsigned LEB128 varint.
func (w *Writer) PutUvarint(v uint64) error {
	return w.put(binary.PutUvarint(w.scratch[:], v))
}

// PutStr writes the bytes of s without a length prefix or terminator. The
// package's own cursors read s in place; other views get a copy.
func (w *Writer) PutStr(s string) error {
	switch w.w.(type) {
	case *Slice[byte], *Look[byte]:
		return w.w.Put(unsafe.Slice(unsafe.StringData(s), len(s)))
	}
	return w.w.Put([]byte(s))
}

// PutStrNul writes s followed by a NUL byte. Either both fit or nothing is
// written.
func (w *Writer) PutStrNul(s string) error {
	if len(s) >= w.w.Len() {
		return w.bad
	}
	if err := w.PutStr(s); err != nil {
		return err
	}
	return w.PutU8(0)
}
