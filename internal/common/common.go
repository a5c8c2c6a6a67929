package common

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Kind is a primitive field encoding.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindU8
	KindI8
	KindU16
	KindI16
	KindU32
	KindI32
	KindU64
	KindI64
	KindU128
	KindI128
	KindF32
	KindF64
	KindUvarint
	KindCStr  // NUL-terminated UTF-8
	KindStr   // fixed length UTF-8, needs a count
	KindBytes // fixed length raw bytes, needs a count
	KindSkip  // fixed length padding, needs a count
)

// Endian is the byte order of a multi-byte field.
type Endian uint8

const (
	Little Endian = iota
	Big
	Native
)

var (
	ErrUnknownKind = errors.New("unknown field type")
	ErrBadCount    = errors.New("bad field count")
)

var kindNames = map[string]Kind{
	"u8": KindU8, "i8": KindI8,
	"u16": KindU16, "i16": KindI16,
	"u32": KindU32, "i32": KindI32,
	"u64": KindU64, "i64": KindI64,
	"u128": KindU128, "i128": KindI128,
	"f32": KindF32, "f64": KindF64,
	"uvarint": KindUvarint,
	"cstr":    KindCStr,
	"str":     KindStr,
	"bytes":   KindBytes,
	"skip":    KindSkip,
}

// IsFixedKind reports whether k has a fixed byte width.
func IsFixedKind(k Kind) bool {
	return FixedSize(k) > 0
}

// FixedSize returns the byte width of fixed-size kinds, -1 otherwise.
func FixedSize(k Kind) int {
	switch k {
	case KindU8, KindI8:
		return 1
	case KindU16, KindI16:
		return 2
	case KindU32, KindI32, KindF32:
		return 4
	case KindU64, KindI64, KindF64:
		return 8
	case KindU128, KindI128:
		return 16
	default:
		return -1
	}
}

// Counted reports whether k takes an explicit byte count.
func Counted(k Kind) bool {
	return k == KindStr || k == KindBytes || k == KindSkip
}

// Field is one parsed field token.
type Field struct {
	Kind   Kind
	Endian Endian
	Count  int
}

// ParseField parses tokens such as "u8", "u32le", "i64be", "f32ne", "cstr",
// "uvarint", "str:5", "bytes:16" or "skip:2". Multi-byte numbers without a
// suffix use def as their byte order.
func ParseField(token string, def Endian) (Field, error) {
	name, count, hasCount := strings.Cut(strings.ToLower(strings.TrimSpace(token)), ":")
	f := Field{Endian: def}
	if k, ok := kindNames[name]; ok {
		f.Kind = k
	} else if len(name) > 2 {
		k, ok := kindNames[name[:len(name)-2]]
		if !ok || FixedSize(k) < 2 {
			return Field{}, errors.Wrapf(ErrUnknownKind, "%q", token)
		}
		switch name[len(name)-2:] {
		case "le":
			f.Endian = Little
		case "be":
			f.Endian = Big
		case "ne":
			f.Endian = Native
		default:
			return Field{}, errors.Wrapf(ErrUnknownKind, "%q", token)
		}
		f.Kind = k
	} else {
		return Field{}, errors.Wrapf(ErrUnknownKind, "%q", token)
	}

	if Counted(f.Kind) != hasCount {
		return Field{}, errors.Wrapf(ErrBadCount, "%q", token)
	}
	if hasCount {
		n, err := strconv.Atoi(count)
		if err != nil || n < 0 {
			return Field{}, errors.Wrapf(ErrBadCount, "%q", token)
		}
		f.Count = n
	}
	return f, nil
}

// ParseEndian parses "le", "be", "ne" and their long forms. The empty
// string is little-endian.
func ParseEndian(s string) (Endian, error) {
	switch strings.ToLower(s) {
	case "", "le", "little":
		return Little, nil
	case "be", "big":
		return Big, nil
	case "ne", "native":
		return Native, nil
	}
	return Little, errors.Errorf("unknown byte order %q", s)
}

func (e Endian) String() string {
	switch e {
	case Big:
		return "be"
	case Native:
		return "ne"
	default:
		return "le"
	}
}
