package zcbuf

import "bytes"

// Owner holds storage for Shared views. The bytes are never written after
// construction, which is what lets any number of views read them
// concurrently without locks.
type Owner struct {
	b []byte
}

// NewOwner adopts b without copying. The caller must not modify b afterwards.
func NewOwner(b []byte) *Owner {
	return &Owner{b: b[:len(b):len(b)]}
}

// CopyOwner returns an Owner holding a private copy of b.
func CopyOwner(b []byte) *Owner {
	return &Owner{b: bytes.Clone(b)}
}

// Len returns the size of the owned storage.
func (o *Owner) Len() int {
	return len(o.b)
}

// Shared is a read-only window [start, start+n) onto an Owner. Copying a
// Shared is cheap and yields an independent view over the same storage.
// The zero value is an empty view.
type Shared struct {
	owner *Owner
	start int
	n     int
}

// NewShared returns a view over all of o.
func NewShared(o *Owner) Shared {
	return Shared{owner: o, n: o.Len()}
}

// SharedFromBytes copies b into a fresh Owner and returns a view over it.
func SharedFromBytes(b []byte) Shared {
	return NewShared(CopyOwner(b))
}

func (s Shared) view() []byte {
	if s.owner == nil {
		return nil
	}
	end := s.start + s.n
	return s.owner.b[s.start:end:end]
}

// Len returns the number of visible bytes.
func (s Shared) Len() int { return s.n }

// IsEmpty reports whether the view has no bytes.
func (s Shared) IsEmpty() bool { return s.n == 0 }

// Offset returns where the view starts inside its Owner. Together with
// NewShared and Slice it can be used to rebuild a view later.
func (s Shared) Offset() int { return s.start }

// Owner returns the storage the view reads from.
func (s Shared) Owner() *Owner { return s.owner }

// At returns the i-th visible byte.
func (s Shared) At(i int) (byte, error) {
	if i < 0 || i >= s.n {
		return 0, ErrOutOfBounds
	}
	return s.owner.b[s.start+i], nil
}

// Slice returns a new view over r. The receiver is not changed.
func (s Shared) Slice(r Range) (Shared, error) {
	begin, end, ok := r.Resolve(s.n)
	if !ok {
		return Shared{}, ErrOutOfBounds
	}
	return Shared{owner: s.owner, start: s.start + begin, n: end - begin}, nil
}

// Take removes the first n bytes from the view and returns them as a new
// view over the same Owner.
func (s *Shared) Take(n int) (Shared, error) {
	if n < 0 || n > s.n {
		return Shared{}, ErrOutOfBounds
	}
	out := Shared{owner: s.owner, start: s.start, n: n}
	s.start += n
	s.n -= n
	return out, nil
}

// TakeUntilNul takes up to and including the first NUL and returns a view
// of the bytes before it.
func (s *Shared) TakeUntilNul() (Shared, error) {
	i := bytes.IndexByte(s.view(), 0)
	if i < 0 {
		i = s.n
	}
	t, err := s.Take(i + 1)
	if err != nil {
		return Shared{}, err
	}
	t.n = i
	return t, nil
}

// TakeAsStr takes n bytes as a string. The string aliases the Owner.
func (s *Shared) TakeAsStr(n int) (string, error) {
	return s.Reader().TakeAsStr(n)
}

// TakeAsStrUntilNul takes a NUL-terminated string. The string aliases the
// Owner.
func (s *Shared) TakeAsStrUntilNul() (string, error) {
	return s.Reader().TakeAsStrUntilNul()
}

// Reader returns a Reader that consumes this view. Failures are reported as
// ErrOutOfBounds. Strings alias the Owner, since its storage never changes,
// while Take, Remaining and TakeUntilNul return copies. Use the Shared
// methods to get sub-views without copying.
func (s *Shared) Reader() Reader {
	return Reader{v: sharedBytes{s}, bad: ErrOutOfBounds, opts: Options{UnsafeStrings: true}}
}

// Clone returns a copy of the view. It shares the Owner.
func (s Shared) Clone() Shared { return s }

// Equal reports whether both views show the same bytes. Owners are not
// compared.
func (s Shared) Equal(o Shared) bool {
	return bytes.Equal(s.view(), o.view())
}

// Compare orders views by their bytes.
func (s Shared) Compare(o Shared) int {
	return bytes.Compare(s.view(), o.view())
}

// EqualBytes reports whether the view shows exactly b.
func (s Shared) EqualBytes(b []byte) bool {
	return bytes.Equal(s.view(), b)
}

// Bytes returns a copy of the visible bytes.
func (s Shared) Bytes() []byte {
	return bytes.Clone(s.view())
}

// CopyTo copies the visible bytes into dst and returns how many were copied.
func (s Shared) CopyTo(dst []byte) int {
	return copy(dst, s.view())
}

// String returns the visible bytes as a string.
func (s Shared) String() string {
	return string(s.view())
}

// sharedBytes adapts *Shared to View[byte] for Reader. Bytes leaving the
// package are copies so the Owner stays read-only.
type sharedBytes struct {
	s *Shared
}

func (b sharedBytes) Remaining() []byte { return bytes.Clone(b.s.view()) }
func (b sharedBytes) Len() int { return b.s.n }

func (b sharedBytes) Take(n int) ([]byte, error) {
	t, err := b.borrow(n)
	if err != nil {
		return nil, err
	}
	return bytes.Clone(t), nil
}

func (b sharedBytes) borrowRest() []byte { return b.s.view() }

func (b sharedBytes) borrow(n int) ([]byte, error) {
	t, err := b.s.Take(n)
	if err != nil {
		return nil, err
	}
	return t.view(), nil
}
