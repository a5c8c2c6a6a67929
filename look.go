package zcbuf

import "unsafe"

// Look is a cursor that remembers where it is in the original buffer.
//
// Unlike Slice it keeps the consumed prefix reachable, so a parser can record
// a position with Pos, look back with Consumed and return to a recorded
// position with Restore.
type Look[T any] struct {
	cursor[T]
}

// NewLook returns a Look over buf positioned at 0.
func NewLook[T any](buf []T) *Look[T] {
	return &Look[T]{cursor: cursor[T]{buf: buf}}
}

// NewLookAt returns a Look over buf positioned at pos.
func NewLookAt[T any](buf []T, pos int) (*Look[T], error) {
	if pos < 0 || pos > len(buf) {
		return nil, ErrBadPos
	}
	return &Look[T]{cursor: cursor[T]{buf: buf, pos: pos}}, nil
}

// LookFromSlice rebuilds a Look over buf from rest, a sub-slice of buf that
// marks where parsing should resume, such as the Remaining of an earlier
// cursor over buf or a chunk it returned from Take. The new position is the
// offset of rest inside buf, so for a tail of buf it is len(buf)-len(rest).
//
// rest is located by address. It fails with ErrBadPos when rest starts
// before buf, starts after its end, or ends after its end. Slices with zero
// capacity do not record where they were cut, so an empty rest with zero
// capacity lying within buf resumes at the end of buf. rest must come from
// the same allocation as buf; this is not checked.
func LookFromSlice[T any](buf, rest []T) (*Look[T], error) {
	off, ok := offsetOf(buf, rest)
	if !ok {
		return nil, ErrBadPos
	}
	return &Look[T]{cursor: cursor[T]{buf: buf, pos: off}}, nil
}

// offsetOf reports where rest starts inside buf. Addresses are compared as
// integers and never dereferenced.
func offsetOf[T any](buf, rest []T) (int, bool) {
	if len(rest) > len(buf) {
		return 0, false
	}
	size := unsafe.Sizeof(*new(T))
	if size == 0 {
		return len(buf) - len(rest), true
	}
	bs := uintptr(unsafe.Pointer(unsafe.SliceData(buf)))
	be := bs + uintptr(len(buf))*size
	rs := uintptr(unsafe.Pointer(unsafe.SliceData(rest)))
	if rs < bs || rs > be {
		return 0, false
	}
	if cap(rest) == 0 {
		return len(buf), true
	}
	d := rs - bs
	if d%size != 0 {
		return 0, false
	}
	off := int(d / size)
	if len(rest) > len(buf)-off {
		return 0, false
	}
	return off, true
}

// Pos returns the number of elements consumed since the start of the buffer.
func (l *Look[T]) Pos() int {
	return l.pos
}

// Consumed returns the elements before the current position.
func (l *Look[T]) Consumed() []T {
	return l.buf[:l.pos:l.pos]
}

// Restore moves the cursor to pos, which may be before or after the current
// position. Positions obtained from Pos are always valid.
func (l *Look[T]) Restore(pos int) error {
	if pos < 0 || pos > len(l.buf) {
		return ErrBadPos
	}
	l.pos = pos
	return nil
}

// Inner returns the whole underlying buffer, consumed or not.
func (l *Look[T]) Inner() []T {
	return l.buf
}
