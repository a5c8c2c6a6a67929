// Package stream connects zcbuf cursors to seekable byte streams. Values
// that know how to read or write themselves implement Decoder or Encoder;
// the helpers here move exact byte counts between a stream and a cursor so
// the decoding itself stays on in-memory buffers.
package stream

import (
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/rawbytedev/zcbuf"
)

var log = logrus.WithField("component", "stream")

// Decoder is implemented by values that read themselves from a stream.
type Decoder interface {
	Decode(r io.ReadSeeker) error
}

// Encoder is implemented by values that write themselves to a stream.
type Encoder interface {
	Encode(w io.WriteSeeker) error
}

// ReadLook reads exactly n bytes from r into a fresh buffer and returns a
// Look at its start.
func ReadLook(r io.Reader, n int) (*zcbuf.Look[byte], error) {
	if n < 0 {
		return nil, errors.Wrapf(zcbuf.ErrBadPos, "read of %d bytes", n)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, errors.Wrapf(err, "reading %d bytes", n)
	}
	return zcbuf.NewLook(buf), nil
}

// WriteFrom writes the bytes l has consumed so far, which for a Look used
// with a Writer is everything written.
func WriteFrom(w io.Writer, l *zcbuf.Look[byte]) (int, error) {
	n, err := w.Write(l.Consumed())
	if err != nil {
		return n, errors.Wrapf(err, "writing %d bytes", l.Pos())
	}
	return n, nil
}

// Window reads n bytes at absolute offset off and returns them as a Shared
// view. The stream is left positioned after the window.
func Window(r io.ReadSeeker, off int64, n int) (zcbuf.Shared, error) {
	if _, err := r.Seek(off, io.SeekStart); err != nil {
		return zcbuf.Shared{}, errors.Wrapf(err, "seeking to %d", off)
	}
	l, err := ReadLook(r, n)
	if err != nil {
		return zcbuf.Shared{}, errors.Wrapf(err, "window at %d", off)
	}
	log.WithFields(logrus.Fields{"offset": off, "len": n}).Debug("window read")
	return zcbuf.NewShared(zcbuf.NewOwner(l.Inner())), nil
}

// Pos returns the current offset of s.
func Pos(s io.Seeker) (int64, error) {
	off, err := s.Seek(0, io.SeekCurrent)
	return off, errors.Wrap(err, "querying position")
}

// DecodeRestoring runs d.Decode and, when it fails, seeks r back to where
// decoding started so the caller can retry or skip.
func DecodeRestoring(r io.ReadSeeker, d Decoder) error {
	start, err := Pos(r)
	if err != nil {
		return err
	}
	if err := d.Decode(r); err != nil {
		if _, serr := r.Seek(start, io.SeekStart); serr != nil {
			log.WithError(serr).WithField("offset", start).Warn("failed to restore stream position")
		}
		return err
	}
	return nil
}
