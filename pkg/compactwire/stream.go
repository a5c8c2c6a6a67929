package compactwire

import (
	"io"

	"github.com/pkg/errors"

	"github.com/rawbytedev/zcbuf"
	"github.com/rawbytedev/zcbuf/pkg/stream"
)

// ReadFrame reads one whole frame from r using the length in its header.
// The frame is not validated beyond the header.
func ReadFrame(r io.Reader) ([]byte, error) {
	hdr, err := stream.ReadLook(r, HeaderSize)
	if err != nil {
		return nil, errors.Wrap(err, "frame header")
	}
	n, err := FrameLen(hdr.Inner())
	if err != nil {
		return nil, err
	}
	l := zcbuf.NewLook(make([]byte, n))
	if err := l.Put(hdr.Inner()); err != nil {
		return nil, err
	}
	if _, err := io.ReadFull(r, l.Remaining()); err != nil {
		return nil, errors.Wrapf(err, "frame body of %d bytes", n-HeaderSize)
	}
	return l.Inner(), nil
}

func writeFrame(w io.Writer, frame []byte, err error) error {
	if err != nil {
		return err
	}
	l := zcbuf.NewLook(frame)
	if err := l.Skip(len(frame)); err != nil {
		return err
	}
	_, err = stream.WriteFrom(w, l)
	return err
}

// Encode writes d as one frame.
func (d DataFrame) Encode(w io.WriteSeeker) error {
	frame, err := d.MarshalBinary()
	return writeFrame(w, frame, err)
}

// Decode reads one data frame from r.
func (d *DataFrame) Decode(r io.ReadSeeker) error {
	frame, err := ReadFrame(r)
	if err != nil {
		return err
	}
	f, err := DecodeDataFrame(frame)
	if err != nil {
		return err
	}
	*d = f
	return nil
}

func (e ErrorFrame) Encode(w io.WriteSeeker) error {
	frame, err := e.MarshalBinary()
	return writeFrame(w, frame, err)
}

func (e *ErrorFrame) Decode(r io.ReadSeeker) error {
	frame, err := ReadFrame(r)
	if err != nil {
		return err
	}
	f, err := DecodeErrorFrame(frame)
	if err != nil {
		return err
	}
	*e = f
	return nil
}

func (h HandshakeFrame) Encode(w io.WriteSeeker) error {
	frame, err := h.MarshalBinary()
	return writeFrame(w, frame, err)
}

func (h *HandshakeFrame) Decode(r io.ReadSeeker) error {
	frame, err := ReadFrame(r)
	if err != nil {
		return err
	}
	f, err := DecodeHandshake(frame)
	if err != nil {
		return err
	}
	*h = f
	return nil
}

var (
	_ stream.Encoder = DataFrame{}
	_ stream.Decoder = (*DataFrame)(nil)
	_ stream.Encoder = ErrorFrame{}
	_ stream.Decoder = (*ErrorFrame)(nil)
	_ stream.Encoder = HandshakeFrame{}
	_ stream.Decoder = (*HandshakeFrame)(nil)
)
