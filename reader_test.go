package zcbuf

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"lukechampine.com/uint128"
)

func TestTakeU8(t *testing.T) {
	s := NewSlice([]byte{0, 1})
	r := NewReader(s)

	b, err := r.TakeU8()
	require.NoError(t, err)
	require.Equal(t, uint8(0), b)
	require.Equal(t, []byte{1}, s.Remaining())

	b, err = r.TakeU8()
	require.NoError(t, err)
	require.Equal(t, uint8(1), b)
	require.Zero(t, s.Len())

	_, err = r.TakeU8()
	require.ErrorIs(t, err, ErrBadPos)
	require.Zero(t, s.Len())
}

func TestTakeI8(t *testing.T) {
	r := NewReader(NewSlice([]byte{0, 1, 0xff}))
	for _, want := range []int8{0, 1, -1} {
		got, err := r.TakeI8()
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	_, err := r.TakeI8()
	require.ErrorIs(t, err, ErrBadPos)
}

func TestTakeU16Sequence(t *testing.T) {
	buf := binary.LittleEndian.AppendUint16(nil, 1)
	buf = binary.LittleEndian.AppendUint16(buf, math.MaxUint16)
	r := NewReader(NewSlice(buf))

	v, err := r.TakeU16LE()
	require.NoError(t, err)
	require.Equal(t, uint16(1), v)
	v, err = r.TakeU16LE()
	require.NoError(t, err)
	require.Equal(t, uint16(math.MaxUint16), v)
	require.Zero(t, r.Len())

	buf = binary.BigEndian.AppendUint32(nil, 1)
	r = NewReader(NewSlice(buf))
	u, err := r.TakeU32BE()
	require.NoError(t, err)
	require.Equal(t, uint32(1), u)
}

// roundTrip puts v into an exactly sized buffer, takes it back and checks
// that a buffer one byte short fails without consuming anything.
func roundTrip[V any](t *testing.T, size int, v V, put func(*Writer, V) error, take func(Reader) (V, error)) {
	t.Helper()
	buf := make([]byte, size)
	w := NewWriter(NewSlice(buf))
	require.NoError(t, put(w, v))
	require.Zero(t, w.Len())
	require.Error(t, put(w, v), "put into a full buffer")

	got, err := take(NewReader(NewSlice(buf)))
	require.NoError(t, err)
	require.Equal(t, v, got)

	short := NewSlice(buf[:size-1])
	_, err = take(NewReader(short))
	require.ErrorIs(t, err, ErrBadPos)
	require.Equal(t, size-1, short.Len())

	tooSmall := NewSlice(make([]byte, size-1))
	require.ErrorIs(t, put(NewWriter(tooSmall), v), ErrBadPos)
	require.Equal(t, size-1, tooSmall.Len())
}

func TestRoundTripUnsigned(t *testing.T) {
	for _, v := range []uint8{0, 1, math.MaxUint8} {
		roundTrip(t, 1, v, (*Writer).PutU8, Reader.TakeU8)
	}
	for _, v := range []uint16{0, 1, 0x0102, math.MaxUint16} {
		roundTrip(t, 2, v, (*Writer).PutU16LE, Reader.TakeU16LE)
		roundTrip(t, 2, v, (*Writer).PutU16BE, Reader.TakeU16BE)
		roundTrip(t, 2, v, (*Writer).PutU16NE, Reader.TakeU16NE)
	}
	for _, v := range []uint32{0, 1, 0x01020304, math.MaxUint32} {
		roundTrip(t, 4, v, (*Writer).PutU32LE, Reader.TakeU32LE)
		roundTrip(t, 4, v, (*Writer).PutU32BE, Reader.TakeU32BE)
		roundTrip(t, 4, v, (*Writer).PutU32NE, Reader.TakeU32NE)
	}
	for _, v := range []uint64{0, 1, 0x0102030405060708, math.MaxUint64} {
		roundTrip(t, 8, v, (*Writer).PutU64LE, Reader.TakeU64LE)
		roundTrip(t, 8, v, (*Writer).PutU64BE, Reader.TakeU64BE)
		roundTrip(t, 8, v, (*Writer).PutU64NE, Reader.TakeU64NE)
	}
	for _, v := range []uint128.Uint128{uint128.Zero, uint128.From64(1), uint128.New(0x0807060504030201, 0x100f0e0d0c0b0a09), uint128.Max} {
		roundTrip(t, 16, v, (*Writer).PutU128LE, Reader.TakeU128LE)
		roundTrip(t, 16, v, (*Writer).PutU128BE, Reader.TakeU128BE)
		roundTrip(t, 16, v, (*Writer).PutU128NE, Reader.TakeU128NE)
	}
}

func TestRoundTripSigned(t *testing.T) {
	for _, v := range []int8{0, -1, math.MinInt8, math.MaxInt8} {
		roundTrip(t, 1, v, (*Writer).PutI8, Reader.TakeI8)
	}
	for _, v := range []int16{0, 1, -1, math.MinInt16, math.MaxInt16} {
		roundTrip(t, 2, v, (*Writer).PutI16LE, Reader.TakeI16LE)
		roundTrip(t, 2, v, (*Writer).PutI16BE, Reader.TakeI16BE)
		roundTrip(t, 2, v, (*Writer).PutI16NE, Reader.TakeI16NE)
	}
	for _, v := range []int32{0, 1, -1, math.MinInt32, math.MaxInt32} {
		roundTrip(t, 4, v, (*Writer).PutI32LE, Reader.TakeI32LE)
		roundTrip(t, 4, v, (*Writer).PutI32BE, Reader.TakeI32BE)
		roundTrip(t, 4, v, (*Writer).PutI32NE, Reader.TakeI32NE)
	}
	for _, v := range []int64{0, 1, -1, math.MinInt64, math.MaxInt64} {
		roundTrip(t, 8, v, (*Writer).PutI64LE, Reader.TakeI64LE)
		roundTrip(t, 8, v, (*Writer).PutI64BE, Reader.TakeI64BE)
		roundTrip(t, 8, v, (*Writer).PutI64NE, Reader.TakeI64NE)
	}
	for _, v := range []Int128{{}, Int128From64(1), Int128From64(-1), MinInt128, MaxInt128} {
		roundTrip(t, 16, v, (*Writer).PutI128LE, Reader.TakeI128LE)
		roundTrip(t, 16, v, (*Writer).PutI128BE, Reader.TakeI128BE)
		roundTrip(t, 16, v, (*Writer).PutI128NE, Reader.TakeI128NE)
	}
}

func TestRoundTripFloat(t *testing.T) {
	for _, v := range []float32{0, 1, -1, math.MaxFloat32, math.SmallestNonzeroFloat32, float32(math.Inf(-1))} {
		roundTrip(t, 4, v, (*Writer).PutF32LE, Reader.TakeF32LE)
		roundTrip(t, 4, v, (*Writer).PutF32BE, Reader.TakeF32BE)
		roundTrip(t, 4, v, (*Writer).PutF32NE, Reader.TakeF32NE)
	}
	for _, v := range []float64{0, 1, -1, math.MaxFloat64, math.SmallestNonzeroFloat64, math.Inf(1)} {
		roundTrip(t, 8, v, (*Writer).PutF64LE, Reader.TakeF64LE)
		roundTrip(t, 8, v, (*Writer).PutF64BE, Reader.TakeF64BE)
		roundTrip(t, 8, v, (*Writer).PutF64NE, Reader.TakeF64NE)
	}
}

func TestFloatNaNBitsSurvive(t *testing.T) {
	nan := math.Float64frombits(0x7ff8000000000001)
	buf := make([]byte, 8)
	require.NoError(t, NewWriter(NewSlice(buf)).PutF64BE(nan))
	got, err := NewReader(NewSlice(buf)).TakeF64BE()
	require.NoError(t, err)
	require.Equal(t, math.Float64bits(nan), math.Float64bits(got))
}

func TestEndiannessHonored(t *testing.T) {
	buf := make([]byte, 2)
	require.NoError(t, NewWriter(NewSlice(buf)).PutU16LE(math.MaxUint16))
	v, err := NewReader(NewSlice(buf)).TakeU16LE()
	require.NoError(t, err)
	require.Equal(t, uint16(math.MaxUint16), v)

	require.NoError(t, NewWriter(NewSlice(buf)).PutU16LE(0x0102))
	require.Equal(t, []byte{0x02, 0x01}, buf)
	swapped, err := NewReader(NewSlice(buf)).TakeU16BE()
	require.NoError(t, err)
	require.Equal(t, uint16(0x0201), swapped)

	var native uint16
	if nativeLittle {
		native = 0x0102
	} else {
		native = 0x0201
	}
	got, err := NewReader(NewSlice(buf)).TakeU16NE()
	require.NoError(t, err)
	require.Equal(t, native, got)

	wide := make([]byte, 16)
	require.NoError(t, NewWriter(NewSlice(wide)).PutU128BE(uint128.From64(1)))
	require.Equal(t, byte(1), wide[15])
	require.NoError(t, NewWriter(NewSlice(wide)).PutI128LE(Int128From64(-2)))
	require.Equal(t, byte(0xfe), wide[0])
	require.Equal(t, byte(0xff), wide[15])
}

func TestTakeAsStr(t *testing.T) {
	s := NewSlice([]byte("héllo\xffx"))
	r := NewReader(s)

	str, err := r.TakeAsStr(6)
	require.NoError(t, err)
	require.Equal(t, "héllo", str)

	_, err = r.TakeAsStr(2)
	require.ErrorIs(t, err, ErrBadPos)
	require.Equal(t, 2, s.Len(), "invalid text must not be consumed")

	_, err = r.TakeAsStr(3)
	require.ErrorIs(t, err, ErrBadPos)

	require.NoError(t, r.Skip(1))
	str, err = r.TakeAsStr(1)
	require.NoError(t, err)
	require.Equal(t, "x", str)
}

func TestTakeAsStrCopiesByDefault(t *testing.T) {
	buf := []byte("abc")
	str, err := NewReader(NewSlice(buf)).TakeAsStr(3)
	require.NoError(t, err)
	buf[0] = 'z'
	require.Equal(t, "abc", str)

	buf = []byte("abc")
	str, err = NewReaderOptions(NewSlice(buf), Options{UnsafeStrings: true}).TakeAsStr(3)
	require.NoError(t, err)
	require.Equal(t, "abc", str)
	buf[0] = 'z'
	require.Equal(t, "zbc", str)
}

func TestTakeUntilNul(t *testing.T) {
	s := NewSlice([]byte{'H', 'i', 0})
	r := NewReader(s)
	got, err := r.TakeUntilNul()
	require.NoError(t, err)
	require.Equal(t, []byte{'H', 'i'}, got)
	require.Zero(t, s.Len())

	s = NewSlice([]byte{0, 'a', 0})
	r = NewReader(s)
	got, err = r.TakeUntilNul()
	require.NoError(t, err)
	require.Empty(t, got)
	require.Equal(t, 2, s.Len())

	s = NewSlice([]byte("no terminator"))
	r = NewReader(s)
	_, err = r.TakeUntilNul()
	require.ErrorIs(t, err, ErrBadPos)
	require.Equal(t, 13, s.Len())

	_, err = NewReader(NewSlice([]byte{})).TakeUntilNul()
	require.ErrorIs(t, err, ErrBadPos)
}

func TestTakeAsStrUntilNul(t *testing.T) {
	s := NewSlice([]byte("one\x00tw\xffo\x00"))
	r := NewReader(s)

	str, err := r.TakeAsStrUntilNul()
	require.NoError(t, err)
	require.Equal(t, "one", str)

	_, err = r.TakeAsStrUntilNul()
	require.ErrorIs(t, err, ErrBadPos)
	require.Equal(t, 5, s.Len())
}

func TestUvarint(t *testing.T) {
	buf := make([]byte, 3*binary.MaxVarintLen64)
	w := NewWriter(NewSlice(buf))
	for _, v := range []uint64{0, 300, math.MaxUint64} {
		require.NoError(t, w.PutUvarint(v))
	}
	r := NewReader(NewSlice(buf))
	for _, want := range []uint64{0, 300, math.MaxUint64} {
		got, err := r.TakeUvarint()
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	trunc := NewSlice([]byte{0x80, 0x80})
	_, err := NewReader(trunc).TakeUvarint()
	require.ErrorIs(t, err, ErrBadPos)
	require.Equal(t, 2, trunc.Len())

	require.ErrorIs(t, NewWriter(NewSlice(make([]byte, 1))).PutUvarint(300), ErrBadPos)
}

func TestPutStrNul(t *testing.T) {
	buf := make([]byte, 6)
	s := NewSlice(buf)
	w := NewWriter(s)
	require.NoError(t, w.PutStrNul("Hi"))
	require.Equal(t, []byte{'H', 'i', 0, 0, 0, 0}, buf)

	require.ErrorIs(t, w.PutStrNul("abc"), ErrBadPos)
	require.Equal(t, 3, s.Len())
	require.Equal(t, []byte{'H', 'i', 0, 0, 0, 0}, buf, "nothing written when the terminator does not fit")

	require.NoError(t, w.PutStr("ab"))
	require.NoError(t, w.PutStr(""))
	require.ErrorIs(t, w.PutStr("cd"), ErrBadPos)

	r := NewReader(NewSlice(buf))
	str, err := r.TakeAsStrUntilNul()
	require.NoError(t, err)
	require.Equal(t, "Hi", str)
}

func TestWriterOverLook(t *testing.T) {
	buf := make([]byte, 7)
	l := NewLook(buf)
	w := NewWriter(l)
	require.NoError(t, w.PutU32LE(2))
	require.NoError(t, w.PutStrNul("Hi"))
	require.Equal(t, 7, l.Pos())
	require.Equal(t, []byte{2, 0, 0, 0, 'H', 'i', 0}, buf)

	require.NoError(t, l.Restore(0))
	n, err := w.TakeU32LE()
	require.NoError(t, err)
	require.Equal(t, uint32(2), n)
}
