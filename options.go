package zcbuf

// Options controls how a Reader hands out strings.
type Options struct {
	// UnsafeStrings makes TakeAsStr and TakeAsStrUntilNul return strings that
	// alias the buffer instead of copying it. The caller must not modify the
	// buffer while such a string is reachable.
	UnsafeStrings bool
}
