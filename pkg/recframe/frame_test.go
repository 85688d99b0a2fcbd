package recframe

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleRecord = bytes.Repeat([]byte("slotwire record payload "), 40)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, codec := range []Codec{CodecRaw, CodecZstd, CodecLZ4} {
		frame, err := Encode(sampleRecord, codec)
		require.NoError(t, err)
		require.Equal(t, FrameMagic[0], frame[0])
		require.Equal(t, FrameMagic[1], frame[1])

		got, err := Decode(frame)
		require.NoError(t, err)
		require.Equal(t, sampleRecord, got, "codec %d", codec)
	}
}

func TestEncodeCompresses(t *testing.T) {
	for _, codec := range []Codec{CodecZstd, CodecLZ4} {
		frame, err := Encode(sampleRecord, codec)
		require.NoError(t, err)
		assert.Less(t, len(frame), len(sampleRecord), "codec %d on repetitive input", codec)
	}
}

func TestEncodeLZ4IncompressibleFallsBackToRaw(t *testing.T) {
	record := make([]byte, 256)
	for i := range record {
		record[i] = byte(i * 131)
	}
	frame, err := Encode(record, CodecLZ4)
	require.NoError(t, err)
	require.Equal(t, byte(CodecRaw), frame[2], "header records the codec actually applied")

	got, err := Decode(frame)
	require.NoError(t, err)
	require.Equal(t, record, got)
}

func TestEncodeUnknownCodec(t *testing.T) {
	_, err := Encode(sampleRecord, Codec(9))
	require.ErrorIs(t, err, ErrUnknownCodec)
}

func TestDecodeTruncated(t *testing.T) {
	frame, err := Encode(sampleRecord, CodecZstd)
	require.NoError(t, err)

	_, err = Decode(nil)
	require.ErrorIs(t, err, ErrBadFrame)
	_, err = Decode(frame[:10])
	require.ErrorIs(t, err, ErrBadFrame)
	_, err = Decode(frame[:len(frame)-5])
	require.ErrorIs(t, err, ErrBadFrame)
}

func TestDecodeBadMagic(t *testing.T) {
	frame, err := Encode(sampleRecord, CodecRaw)
	require.NoError(t, err)
	frame[0] = 'x'
	_, err = Decode(frame)
	require.ErrorIs(t, err, ErrBadFrame)
}

func TestDecodeChecksumMismatch(t *testing.T) {
	frame, err := Encode(sampleRecord, CodecRaw)
	require.NoError(t, err)
	frame[headerSize] ^= 0x01
	_, err = Decode(frame)
	require.ErrorIs(t, err, ErrChecksum)
}

// A frame whose CRC validates but carries an unimplemented codec byte must
// still be rejected by codec, not decoded as garbage.
func TestDecodeUnknownCodecValidCRC(t *testing.T) {
	payload := []byte("opaque")
	frame := []byte{FrameMagic[0], FrameMagic[1], 7}
	frame = binary.LittleEndian.AppendUint32(frame, uint32(len(payload)))
	frame = binary.LittleEndian.AppendUint32(frame, uint32(len(payload)))
	frame = append(frame, payload...)
	frame = binary.LittleEndian.AppendUint32(frame, crc32.ChecksumIEEE(frame[2:]))

	_, err := Decode(frame)
	require.ErrorIs(t, err, ErrUnknownCodec)
}

func TestDecodeRawBorrows(t *testing.T) {
	frame, err := Encode(sampleRecord, CodecRaw)
	require.NoError(t, err)
	got, err := Decode(frame)
	require.NoError(t, err)
	require.Equal(t, &frame[headerSize], &got[0], "raw decode must not copy")
}
