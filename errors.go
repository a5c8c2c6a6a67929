package zcbuf

import "github.com/pkg/errors"

var (
	// ErrBadPos is returned by Slice, Look, Reader and Writer when an
	// operation would go out of bounds or the bytes are not valid UTF-8.
	ErrBadPos = errors.New("zcbuf: bad position")
	// ErrOutOfBounds is returned by Shared views for the same conditions.
	ErrOutOfBounds = errors.New("zcbuf: out of bounds")
)
