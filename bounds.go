package zcbuf

import "math"

// BoundKind says how a Bound limits a Range.
type BoundKind uint8

const (
	// BoundUnbounded leaves that end of the range open.
	BoundUnbounded BoundKind = iota
	// BoundIncluded makes N part of the range.
	BoundIncluded
	// BoundExcluded stops the range just short of N, or starts it just after.
	BoundExcluded
)

// Bound is one end of a Range.
type Bound struct {
	Kind BoundKind
	N    int
}

// Included returns a bound that contains n.
func Included(n int) Bound { return Bound{Kind: BoundIncluded, N: n} }

// Excluded returns a bound that stops at n without containing it.
func Excluded(n int) Bound { return Bound{Kind: BoundExcluded, N: n} }

// Unbounded returns an open bound.
func Unbounded() Bound { return Bound{} }

// Range selects a window of a Shared view.
type Range struct {
	Start Bound
	End   Bound
}

// Span is the half-open range [begin, end).
func Span(begin, end int) Range { return Range{Start: Included(begin), End: Excluded(end)} }

// Closed is the range [begin, end].
func Closed(begin, end int) Range { return Range{Start: Included(begin), End: Included(end)} }

// From is the range [begin, len).
func From(begin int) Range { return Range{Start: Included(begin)} }

// To is the range [0, end).
func To(end int) Range { return Range{End: Excluded(end)} }

// Full selects everything.
func Full() Range { return Range{} }

// Resolve turns r into a half-open [begin, end) inside a sequence of the
// given length. ok is false when a bound is negative, overflows, the range is
// inverted or it ends past length.
func (r Range) Resolve(length int) (begin, end int, ok bool) {
	if r.Start.Kind != BoundUnbounded && r.Start.N < 0 ||
		r.End.Kind != BoundUnbounded && r.End.N < 0 {
		return 0, 0, false
	}
	switch r.Start.Kind {
	case BoundIncluded:
		begin = r.Start.N
	case BoundExcluded:
		if r.Start.N == math.MaxInt {
			return 0, 0, false
		}
		begin = r.Start.N + 1
	}
	switch r.End.Kind {
	case BoundIncluded:
		if r.End.N == math.MaxInt {
			return 0, 0, false
		}
		end = r.End.N + 1
	case BoundExcluded:
		end = r.End.N
	default:
		end = length
	}
	if begin > end || end > length {
		return 0, 0, false
	}
	return begin, end, true
}
