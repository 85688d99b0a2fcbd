package slotwire

import "github.com/rawbytedev/slotwire/pkg/zrec"

// Format classifies the leading bytes of a buffer.
type Format int

const (
	// FormatUnknown means the buffer matches neither magic. Callers should
	// attempt a fallback interpretation; it is not a hard failure.
	FormatUnknown Format = iota
	// FormatBinary is the slot-based binary record form.
	FormatBinary
	// FormatText is the sibling human/LLM-oriented textual notation.
	FormatText
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatBinary:
		return "binary"
	case FormatText:
		return "text"
	default:
		return "unknown"
	}
}

// TextMagic identifies the sibling textual notation ("DX").
var TextMagic = [2]byte{0x44, 0x58}

// Detect classifies buf by its magic prefix alone. It is O(1) and never
// reads past len(buf), even for buffers shorter than the magic.
func Detect(buf []byte) Format {
	if len(buf) < 2 {
		return FormatUnknown
	}
	switch {
	case buf[0] == zrec.Magic[0] && buf[1] == zrec.Magic[1]:
		return FormatBinary
	case buf[0] == TextMagic[0] && buf[1] == TextMagic[1]:
		return FormatText
	default:
		return FormatUnknown
	}
}
