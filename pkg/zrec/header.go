package zrec

import "fmt"

// Buffer layout:
//
//	offset 0..2   magic (2 bytes, 0x5A 0x44)
//	offset 2      version (1 byte)
//	offset 3      flags (1 byte)
//	offset 4..    fixed-field region (sum of declared widths, no padding)
//	then          slot array (SlotCount * 16 bytes)
//	then          heap region (present iff FlagHasHeap)
//	then          optional intern table (2B count, then {2B len, UTF-8} entries)
//
// All multi-byte integers are little-endian. Readers use unaligned loads.
const (
	// HeaderSize is the fixed preamble size in bytes.
	HeaderSize = 4
	// Version is the only format version this implementation produces and
	// accepts.
	Version = 0x01
)

// Magic identifies the binary record format ("ZD" little-endian).
var Magic = [2]byte{0x5A, 0x44}

// Header flag bits. Bits 4-7 are reserved and must be zero.
const (
	FlagHasHeap      = 1 << 0 // heap region follows the slot array
	FlagHasIntern    = 1 << 1 // intern table trails the buffer
	FlagLittleEndian = 1 << 2 // always set by the builder
	FlagLengthTable  = 1 << 3 // reserved for a future length table; never produced
)

// Header is the decoded 4-byte preamble.
type Header struct {
	Version byte
	Flags   byte
}

// HasHeap reports whether a heap region follows the slot array.
func (h Header) HasHeap() bool { return h.Flags&FlagHasHeap != 0 }

// HasIntern reports whether an intern table trails the buffer.
func (h Header) HasIntern() bool { return h.Flags&FlagHasIntern != 0 }

// writeHeader stamps the 4-byte preamble at the start of buf.
func writeHeader(buf []byte, flags byte) {
	buf[0] = Magic[0]
	buf[1] = Magic[1]
	buf[2] = Version
	buf[3] = flags
}

// ParseHeader validates and decodes the 4-byte preamble.
func ParseHeader(buf []byte) (Header, error) {
	if len(buf) < HeaderSize {
		return Header{}, fmt.Errorf("%w: %d bytes, need %d for header", ErrBufferTooSmall, len(buf), HeaderSize)
	}
	if buf[0] != Magic[0] || buf[1] != Magic[1] {
		return Header{}, fmt.Errorf("%w: 0x%02X 0x%02X", ErrInvalidMagic, buf[0], buf[1])
	}
	if buf[2] == 0 || buf[2] > Version {
		return Header{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, buf[2])
	}
	return Header{Version: buf[2], Flags: buf[3]}, nil
}
