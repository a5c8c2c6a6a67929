package compactwire

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// DecodeDataFrame parses a data frame. Payload aliases data unless the frame
// is compressed.
func DecodeDataFrame(data []byte) (DataFrame, error) {
	var d DataFrame
	body, r, err := openFrame(data, TypeData)
	if err != nil {
		return d, err
	}
	if d.Flags, err = r.TakeU8(); err != nil {
		return d, errors.Wrap(err, "data frame flags")
	}
	if d.Flags&FlagHasOffsetTable != 0 {
		cnt, err := r.TakeU16LE()
		if err != nil {
			return d, errors.Wrap(err, "offset count")
		}
		if int(cnt)*4 > body.Len() {
			return d, errors.Wrapf(ErrLengthMismatch, "%d offsets do not fit in %d bytes", cnt, body.Len())
		}
		d.Offsets = make([]uint32, cnt)
		for i := range d.Offsets {
			if d.Offsets[i], err = r.TakeU32LE(); err != nil {
				return d, errors.Wrapf(err, "offset %d", i)
			}
		}
	}

	d.Payload = body.Remaining()
	if d.Flags&FlagCompressed != 0 {
		dec, err := zstdDecoder()
		if err != nil {
			return d, errors.Wrap(err, "zstd decoder")
		}
		raw, err := dec.DecodeAll(d.Payload, nil)
		if err != nil {
			return d, errors.Wrap(err, "decompressing payload")
		}
		log.WithFields(logrus.Fields{"stored": len(d.Payload), "raw": len(raw)}).Debug("payload decompressed")
		d.Payload = raw
	}
	return d, nil
}

// DecodeErrorFrame parses an error frame. Data aliases the input.
func DecodeErrorFrame(data []byte) (ErrorFrame, error) {
	var e ErrorFrame
	body, r, err := openFrame(data, TypeError)
	if err != nil {
		return e, err
	}
	if e.Code, err = r.TakeU8(); err != nil {
		return e, errors.Wrap(err, "error code")
	}
	n, err := r.TakeU16LE()
	if err != nil {
		return e, errors.Wrap(err, "error data length")
	}
	if e.Data, err = r.Take(int(n)); err != nil {
		return e, errors.Wrapf(err, "error data of %d bytes", n)
	}
	return e, drained(body, "error frame")
}

// DecodeHandshake parses a handshake frame. AlgCodes aliases the input.
func DecodeHandshake(data []byte) (HandshakeFrame, error) {
	var h HandshakeFrame
	body, r, err := openFrame(data, TypeHandshake)
	if err != nil {
		return h, err
	}
	if h.VersionMask, err = r.TakeU32LE(); err != nil {
		return h, errors.Wrap(err, "version mask")
	}
	if h.MTU, err = r.TakeU16LE(); err != nil {
		return h, errors.Wrap(err, "mtu")
	}
	if h.TimeoutMS, err = r.TakeU32LE(); err != nil {
		return h, errors.Wrap(err, "timeout")
	}
	n, err := r.TakeU16LE()
	if err != nil {
		return h, errors.Wrap(err, "algorithm count")
	}
	if h.AlgCodes, err = r.Take(int(n)); err != nil {
		return h, errors.Wrapf(err, "%d algorithm codes", n)
	}
	return h, drained(body, "handshake")
}
