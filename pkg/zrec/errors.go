package zrec

import "errors"

var (
	// ErrInvalidMagic is returned when the leading bytes of a buffer do not
	// match the binary format magic.
	ErrInvalidMagic = errors.New("zrec: invalid magic")

	// ErrUnsupportedVersion is returned when the header version byte is
	// newer than this implementation understands.
	ErrUnsupportedVersion = errors.New("zrec: unsupported version")

	// ErrBufferTooSmall is returned when a buffer is shorter than the
	// declared layout requires.
	ErrBufferTooSmall = errors.New("zrec: buffer too small")

	// ErrSlotDecode is returned when a slot's heap offset/length exceeds
	// the actual heap bounds, or an inline length byte is out of range.
	// It guards against truncated or corrupted input.
	ErrSlotDecode = errors.New("zrec: slot decode out of bounds")
)
