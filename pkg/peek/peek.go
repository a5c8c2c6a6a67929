// Package peek walks a byte buffer field by field according to a Layout and
// reports where each field sits and what it decodes to. It is the engine
// behind the zcbuf peek command.
package peek

import (
	"encoding/hex"
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/rawbytedev/zcbuf"
	"github.com/rawbytedev/zcbuf/internal/common"
)

var log = logrus.WithField("component", "peek")

// Value is a decoded field.
type Value struct {
	Name   string
	Type   string
	Offset int
	Size   int
	Value  any
}

func (v Value) String() string {
	var s string
	switch x := v.Value.(type) {
	case []byte:
		s = hex.EncodeToString(x)
	case string:
		s = fmt.Sprintf("%q", x)
	case nil:
		s = "-"
	default:
		s = fmt.Sprint(x)
	}
	return fmt.Sprintf("%08x %-12s %-8s %s", v.Offset, v.Name, v.Type, s)
}

// Peek decodes layout from buf starting at offset. On failure it returns the
// fields decoded so far along with an error naming the field that did not
// fit. Byte fields alias buf.
func Peek(buf []byte, layout *Layout, offset int) ([]Value, error) {
	fields, err := layout.compile()
	if err != nil {
		return nil, err
	}
	l, err := zcbuf.NewLookAt(buf, offset)
	if err != nil {
		return nil, errors.Wrapf(err, "offset %d outside %d byte buffer", offset, len(buf))
	}
	r := zcbuf.NewReader(l)

	out := make([]Value, 0, len(fields))
	for _, f := range fields {
		at := l.Pos()
		v, err := decode(r, f.field)
		if err != nil {
			log.WithFields(logrus.Fields{"field": f.name, "offset": at, "left": l.Len()}).Debug("field does not fit")
			return out, errors.Wrapf(err, "field %s (%s) at offset %d", f.name, f.token, at)
		}
		out = append(out, Value{Name: f.name, Type: f.token, Offset: at, Size: l.Pos() - at, Value: v})
	}
	log.WithFields(logrus.Fields{"fields": len(out), "end": l.Pos()}).Debug("layout decoded")
	return out, nil
}

func byOrder[V any](e common.Endian, le, be, ne func() (V, error)) (any, error) {
	f := le
	switch e {
	case common.Big:
		f = be
	case common.Native:
		f = ne
	}
	v, err := f()
	if err != nil {
		return nil, err
	}
	return v, nil
}

func one[V any](v V, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return v, nil
}

func decode(r zcbuf.Reader, f common.Field) (any, error) {
	e := f.Endian
	switch f.Kind {
	case common.KindU8:
		return one(r.TakeU8())
	case common.KindI8:
		return one(r.TakeI8())
	case common.KindU16:
		return byOrder(e, r.TakeU16LE, r.TakeU16BE, r.TakeU16NE)
	case common.KindI16:
		return byOrder(e, r.TakeI16LE, r.TakeI16BE, r.TakeI16NE)
	case common.KindU32:
		return byOrder(e, r.TakeU32LE, r.TakeU32BE, r.TakeU32NE)
	case common.KindI32:
		return byOrder(e, r.TakeI32LE, r.TakeI32BE, r.TakeI32NE)
	case common.KindU64:
		return byOrder(e, r.TakeU64LE, r.TakeU64BE, r.TakeU64NE)
	case common.KindI64:
		return byOrder(e, r.TakeI64LE, r.TakeI64BE, r.TakeI64NE)
	case common.KindU128:
		return byOrder(e, r.TakeU128LE, r.TakeU128BE, r.TakeU128NE)
	case common.KindI128:
		return byOrder(e, r.TakeI128LE, r.TakeI128BE, r.TakeI128NE)
	case common.KindF32:
		return byOrder(e, r.TakeF32LE, r.TakeF32BE, r.TakeF32NE)
	case common.KindF64:
		return byOrder(e, r.TakeF64LE, r.TakeF64BE, r.TakeF64NE)
	case common.KindUvarint:
		return one(r.TakeUvarint())
	case common.KindCStr:
		return one(r.TakeAsStrUntilNul())
	case common.KindStr:
		return one(r.TakeAsStr(f.Count))
	case common.KindBytes:
		return one(r.Take(f.Count))
	case common.KindSkip:
		return nil, r.Skip(f.Count)
	}
	return nil, errors.Wrapf(common.ErrUnknownKind, "kind %d", f.Kind)
}
