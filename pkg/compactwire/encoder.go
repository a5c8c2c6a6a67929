package compactwire

import (
	"math"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

var zstdEncoder = sync.OnceValues(func() (*zstd.Encoder, error) {
	return zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
})

var zstdDecoder = sync.OnceValues(func() (*zstd.Decoder, error) {
	return zstd.NewReader(nil, zstd.WithDecoderConcurrency(0), zstd.WithDecoderMaxMemory(MaxFrameSize))
})

// DataFrame carries an opaque payload and an optional table of offsets into
// it.
type DataFrame struct {
	Flags   byte
	Offsets []uint32
	Payload []byte
}

// ErrorFrame reports an error code with free-form data.
type ErrorFrame struct {
	Code byte
	Data []byte
}

// HandshakeFrame opens a session.
type HandshakeFrame struct {
	VersionMask uint32
	MTU         uint16
	TimeoutMS   uint32
	AlgCodes    []byte
}

// EncodeDataFrame serializes a payload. The offset table is written only
// when flags has FlagHasOffsetTable; with FlagCompressed the payload is
// stored zstd-compressed. Offsets always refer to the uncompressed payload.
func EncodeDataFrame(payload []byte, flags byte, offsets []uint32) ([]byte, error) {
	if len(payload) > MaxFrameSize {
		return nil, errors.Wrapf(ErrTooLarge, "payload of %d bytes", len(payload))
	}
	if flags&FlagCompressed != 0 {
		enc, err := zstdEncoder()
		if err != nil {
			return nil, errors.Wrap(err, "zstd encoder")
		}
		payload = enc.EncodeAll(payload, nil)
	}

	body := 1 + len(payload)
	if flags&FlagHasOffsetTable != 0 {
		if len(offsets) > math.MaxUint16 {
			return nil, errors.Wrapf(ErrTooLarge, "%d offsets", len(offsets))
		}
		body += 2 + 4*len(offsets)
	}

	fw, err := newFrameWriter(TypeData, body)
	if err != nil {
		return nil, err
	}
	fw.u8(flags)
	if flags&FlagHasOffsetTable != 0 {
		fw.u16(uint16(len(offsets)))
		for _, off := range offsets {
			fw.u32(off)
		}
	}
	fw.bytes(payload)
	return fw.finish()
}

// MarshalBinary serializes d with EncodeDataFrame.
func (d DataFrame) MarshalBinary() ([]byte, error) {
	return EncodeDataFrame(d.Payload, d.Flags, d.Offsets)
}

// EncodeErrorFrame builds an error frame with code and custom data.
func EncodeErrorFrame(code byte, data []byte) ([]byte, error) {
	if len(data) > math.MaxUint16 {
		return nil, errors.Wrapf(ErrTooLarge, "error data of %d bytes", len(data))
	}
	fw, err := newFrameWriter(TypeError, 1+2+len(data))
	if err != nil {
		return nil, err
	}
	fw.u8(code)
	fw.u16(uint16(len(data)))
	fw.bytes(data)
	return fw.finish()
}

func (e ErrorFrame) MarshalBinary() ([]byte, error) {
	return EncodeErrorFrame(e.Code, e.Data)
}

// EncodeHandshake builds a handshake frame.
func EncodeHandshake(h HandshakeFrame) ([]byte, error) {
	if len(h.AlgCodes) > math.MaxUint16 {
		return nil, errors.Wrapf(ErrTooLarge, "%d algorithm codes", len(h.AlgCodes))
	}
	fw, err := newFrameWriter(TypeHandshake, 4+2+4+2+len(h.AlgCodes))
	if err != nil {
		return nil, err
	}
	fw.u32(h.VersionMask)
	fw.u16(h.MTU)
	fw.u32(h.TimeoutMS)
	fw.u16(uint16(len(h.AlgCodes)))
	fw.bytes(h.AlgCodes)
	return fw.finish()
}

func (h HandshakeFrame) MarshalBinary() ([]byte, error) {
	return EncodeHandshake(h)
}
