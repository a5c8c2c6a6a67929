// Package zcbuf provides bounds-checked, zero-copy cursors and views over
// byte buffers for binary protocol and file format parsers.
//
// There are three abstractions:
//
//   - Slice: a forward-consuming cursor over a borrowed slice. Take carves the
//     next n elements off the front, Put overwrites them.
//   - Look: the same cursor but remembering its absolute position inside the
//     original buffer, so a parser can look back or restore a position.
//   - Shared: an immutable, cheaply cloned window onto storage held by an
//     Owner. Any number of Shared values may reference one Owner.
//
// Fixed-width integers, floats and strings are read and written through
// Reader and Writer, which work on top of any View or ViewMut.
//
//	l := zcbuf.NewLook(buf)
//	r := zcbuf.NewReader(l)
//	kind, err := r.TakeU16LE()
//	name, err := r.TakeAsStrUntilNul()
//
// # Errors
//
// Cursor operations fail with ErrBadPos, shared view operations with
// ErrOutOfBounds. Neither carries a cause: running past the end, an inverted
// range and invalid UTF-8 all look the same. A failed operation never
// changes the state of the cursor or view it was called on.
//
// # Concurrency
//
// Slice and Look are not safe for concurrent use. Shared values over the
// same Owner can be read from multiple goroutines because Owner storage is
// never written after construction.
package zcbuf
