package zcbuf

// View is a cursor that hands out its next elements without copying them.
//
// Take returns the next n elements and advances past them. It fails with a
// bounds error and leaves the cursor untouched when fewer than n elements
// remain. Take(0) always succeeds.
type View[T any] interface {
	Remaining() []T
	Len() int
	Take(n int) ([]T, error)
}

// ViewMut is a View that can also overwrite its next elements.
//
// Put copies vals into the next len(vals) positions and advances past them,
// or fails without writing anything. Implementations must treat vals as
// read-only and must not retain it.
type ViewMut[T any] interface {
	View[T]
	Put(vals []T) error
}

// cursor is the bounded consumable range behind Slice and Look.
// Invariant: 0 <= pos <= len(buf).
type cursor[T any] struct {
	buf []T
	pos int
}

// Remaining returns the elements not consumed yet. The result aliases the
// underlying buffer.
func (c *cursor[T]) Remaining() []T {
	return c.buf[c.pos:]
}

// Len returns the number of elements not consumed yet.
func (c *cursor[T]) Len() int {
	return len(c.buf) - c.pos
}

// Take returns the next n elements and advances the cursor by n. The
// returned slice has its capacity clipped so appending to it allocates
// instead of writing into the rest of the buffer.
func (c *cursor[T]) Take(n int) ([]T, error) {
	if n < 0 || n > c.Len() {
		return nil, ErrBadPos
	}
	end := c.pos + n
	out := c.buf[c.pos:end:end]
	c.pos = end
	return out, nil
}

// Put overwrites the next len(vals) elements with vals and advances.
func (c *cursor[T]) Put(vals []T) error {
	n := len(vals)
	if n > c.Len() {
		return ErrBadPos
	}
	copy(c.buf[c.pos:], vals)
	c.pos += n
	return nil
}

// Skip advances by n elements without returning them.
func (c *cursor[T]) Skip(n int) error {
	_, err := c.Take(n)
	return err
}

// Slice consumes a borrowed slice from the front. It is the plain cursor:
// it does not expose how much has been consumed. Use Look when the absolute
// position matters.
type Slice[T any] struct {
	cursor[T]
}

// NewSlice returns a cursor over buf. buf is borrowed, not copied.
func NewSlice[T any](buf []T) *Slice[T] {
	return &Slice[T]{cursor: cursor[T]{buf: buf}}
}
