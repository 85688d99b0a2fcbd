// Package recframe wraps finished record buffers in a checksummed,
// optionally compressed envelope for storage or transport. The envelope is
// deliberately outside the record format itself: a decoded frame yields the
// exact buffer that was framed, ready for a zrec.View.
//
// Frame layout (little-endian):
//
//	offset 0..2   magic 0x5A 0x46
//	offset 2      codec (0 raw, 1 zstd, 2 lz4)
//	offset 3..7   uncompressed length (u32)
//	offset 7..11  payload length (u32)
//	offset 11..   payload
//	last 4        CRC32 (IEEE) over codec..payload
package recframe

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Codec identifies the payload compression.
type Codec byte

const (
	// CodecRaw stores the record bytes as-is.
	CodecRaw Codec = 0
	// CodecZstd compresses with zstd.
	CodecZstd Codec = 1
	// CodecLZ4 compresses with lz4 block encoding.
	CodecLZ4 Codec = 2
)

var (
	// ErrBadFrame is returned for frames that are truncated or carry an
	// unknown magic.
	ErrBadFrame = errors.New("recframe: malformed frame")
	// ErrChecksum is returned when the CRC does not match the payload.
	ErrChecksum = errors.New("recframe: checksum mismatch")
	// ErrUnknownCodec is returned for codec bytes this version does not
	// implement.
	ErrUnknownCodec = errors.New("recframe: unknown codec")
)

// FrameMagic identifies a framed record ("ZF").
var FrameMagic = [2]byte{0x5A, 0x46}

const headerSize = 11

var (
	zstdEnc *zstd.Encoder
	zstdDec *zstd.Decoder
)

func init() {
	zstdEnc, _ = zstd.NewWriter(nil)
	zstdDec, _ = zstd.NewReader(nil)
}

// Encode frames record with the requested codec. Payloads that lz4 cannot
// shrink are stored raw; the frame header records which codec actually
// applied.
func Encode(record []byte, codec Codec) ([]byte, error) {
	var payload []byte
	switch codec {
	case CodecRaw:
		payload = record
	case CodecZstd:
		payload = zstdEnc.EncodeAll(record, nil)
	case CodecLZ4:
		var c lz4.Compressor
		dst := make([]byte, lz4.CompressBlockBound(len(record)))
		n, err := c.CompressBlock(record, dst)
		if err != nil {
			return nil, fmt.Errorf("recframe: lz4: %w", err)
		}
		if n == 0 || n >= len(record) {
			// incompressible
			codec = CodecRaw
			payload = record
		} else {
			payload = dst[:n]
		}
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCodec, codec)
	}

	out := make([]byte, 0, headerSize+len(payload)+4)
	out = append(out, FrameMagic[0], FrameMagic[1], byte(codec))
	out = binary.LittleEndian.AppendUint32(out, uint32(len(record)))
	out = binary.LittleEndian.AppendUint32(out, uint32(len(payload)))
	out = append(out, payload...)
	crc := crc32.ChecksumIEEE(out[2:])
	out = binary.LittleEndian.AppendUint32(out, crc)
	return out, nil
}

// Decode verifies and unwraps a frame, returning the original record
// buffer. Raw frames return a slice borrowing the frame's memory;
// compressed frames allocate.
func Decode(frame []byte) ([]byte, error) {
	if len(frame) < headerSize+4 {
		return nil, fmt.Errorf("%w: %d bytes", ErrBadFrame, len(frame))
	}
	if frame[0] != FrameMagic[0] || frame[1] != FrameMagic[1] {
		return nil, fmt.Errorf("%w: magic 0x%02X 0x%02X", ErrBadFrame, frame[0], frame[1])
	}
	codec := Codec(frame[2])
	rawLen := binary.LittleEndian.Uint32(frame[3:])
	payloadLen := binary.LittleEndian.Uint32(frame[7:])
	end := headerSize + int(payloadLen)
	if end+4 > len(frame) {
		return nil, fmt.Errorf("%w: payload of %d exceeds frame", ErrBadFrame, payloadLen)
	}
	want := binary.LittleEndian.Uint32(frame[end:])
	if crc32.ChecksumIEEE(frame[2:end]) != want {
		return nil, ErrChecksum
	}
	payload := frame[headerSize:end]

	switch codec {
	case CodecRaw:
		if int(rawLen) != len(payload) {
			return nil, fmt.Errorf("%w: raw length %d vs payload %d", ErrBadFrame, rawLen, len(payload))
		}
		return payload, nil
	case CodecZstd:
		out, err := zstdDec.DecodeAll(payload, make([]byte, 0, rawLen))
		if err != nil {
			return nil, fmt.Errorf("recframe: zstd: %w", err)
		}
		if len(out) != int(rawLen) {
			return nil, fmt.Errorf("%w: zstd expanded to %d, header says %d", ErrBadFrame, len(out), rawLen)
		}
		return out, nil
	case CodecLZ4:
		out := make([]byte, rawLen)
		n, err := lz4.UncompressBlock(payload, out)
		if err != nil {
			return nil, fmt.Errorf("recframe: lz4: %w", err)
		}
		if n != int(rawLen) {
			return nil, fmt.Errorf("%w: lz4 expanded to %d, header says %d", ErrBadFrame, n, rawLen)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCodec, codec)
	}
}
