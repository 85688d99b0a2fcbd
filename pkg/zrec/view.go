package zrec

import (
	"encoding/binary"
	"fmt"
	"math"
)

// View is a read-only interpretation of an existing record buffer. It
// borrows the buffer — construction performs a single bounds check and no
// parsing, every accessor is a direct load, and nothing is ever copied or
// mutated. The View (and every slice it returns) is valid only as long as
// the underlying buffer: a memory-mapped file, a receive buffer, or an
// owned byte slice supplied by the caller.
//
// A finished buffer is immutable, so any number of Views may read it
// concurrently from any number of goroutines.
type View struct {
	layout *Layout
	buf    []byte
	heap   []byte
	hdr    Header

	internOff []int // start of each intern entry's length prefix
}

// FromBytes validates the minimum length and the header in one pass and
// returns a borrowing view over buf.
func FromBytes(buf []byte, layout *Layout) (*View, error) {
	min := layout.minSize()
	if len(buf) < min {
		return nil, fmt.Errorf("%w: %d bytes, layout %q needs %d", ErrBufferTooSmall, len(buf), layout.Name, min)
	}
	hdr, err := ParseHeader(buf)
	if err != nil {
		return nil, err
	}
	v := &View{layout: layout, buf: buf, hdr: hdr, heap: buf[min:min]}
	if hdr.HasHeap() {
		v.heap = buf[min:]
	}
	if hdr.HasIntern() {
		// The heap carries no framing of its own, so with an intern table
		// behind it the heap end is the furthest extent any slot claims.
		end := uint64(0)
		slots := buf[HeaderSize+layout.FixedSize : min]
		for i := 0; i < layout.SlotCount; i++ {
			if e := slotExtent(slots[i*SlotSize:]); e > end {
				end = e
			}
		}
		if uint64(min)+end > uint64(len(buf)) {
			return nil, fmt.Errorf("%w: heap of %d extends past buffer", ErrSlotDecode, end)
		}
		v.heap = buf[min : min+int(end)]
		if err := v.indexIntern(min + int(end)); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// indexIntern records the position of every intern entry so later access is
// O(1). Truncated tables fail here, not at read time.
func (v *View) indexIntern(start int) error {
	if start+2 > len(v.buf) {
		return fmt.Errorf("%w: intern table count at %d", ErrBufferTooSmall, start)
	}
	count := int(binary.LittleEndian.Uint16(v.buf[start:]))
	v.internOff = make([]int, count)
	pos := start + 2
	for i := 0; i < count; i++ {
		if pos+2 > len(v.buf) {
			return fmt.Errorf("%w: intern entry %d at %d", ErrBufferTooSmall, i, pos)
		}
		n := int(binary.LittleEndian.Uint16(v.buf[pos:]))
		if pos+2+n > len(v.buf) {
			return fmt.Errorf("%w: intern entry %d of %d bytes", ErrBufferTooSmall, i, n)
		}
		v.internOff[i] = pos
		pos += 2 + n
	}
	return nil
}

// Header returns the decoded preamble.
func (v *View) Header() Header { return v.hdr }

// Layout returns the schema this view interprets the buffer with.
func (v *View) Layout() *Layout { return v.layout }

// Bytes returns the whole borrowed buffer.
func (v *View) Bytes() []byte { return v.buf }

func (v *View) fixedAt(off, width int) []byte {
	if off < 0 || off+width > v.layout.FixedSize {
		panic(fmt.Sprintf("zrec: fixed read %d+%d outside fixed region of %d", off, width, v.layout.FixedSize))
	}
	return v.buf[HeaderSize+off:]
}

// Fixed returns the raw little-endian bytes of a fixed field as a borrowed
// window into the buffer.
func (v *View) Fixed(off, width int) []byte {
	return v.fixedAt(off, width)[:width]
}

// Uint8At reads the byte at the given fixed-region offset.
func (v *View) Uint8At(off int) uint8 { return v.fixedAt(off, 1)[0] }

// Uint16At reads a little-endian uint16 at the given fixed-region offset.
func (v *View) Uint16At(off int) uint16 {
	return binary.LittleEndian.Uint16(v.fixedAt(off, 2))
}

// Uint32At reads a little-endian uint32 at the given fixed-region offset.
func (v *View) Uint32At(off int) uint32 {
	return binary.LittleEndian.Uint32(v.fixedAt(off, 4))
}

// Uint64At reads a little-endian uint64 at the given fixed-region offset.
func (v *View) Uint64At(off int) uint64 {
	return binary.LittleEndian.Uint64(v.fixedAt(off, 8))
}

// Int8At reads the signed byte at the given fixed-region offset.
func (v *View) Int8At(off int) int8 { return int8(v.Uint8At(off)) }

// Int16At reads a little-endian int16 at the given fixed-region offset.
func (v *View) Int16At(off int) int16 { return int16(v.Uint16At(off)) }

// Int32At reads a little-endian int32 at the given fixed-region offset.
func (v *View) Int32At(off int) int32 { return int32(v.Uint32At(off)) }

// Int64At reads a little-endian int64 at the given fixed-region offset.
func (v *View) Int64At(off int) int64 { return int64(v.Uint64At(off)) }

// Float32At reads an IEEE-754 float32 at the given fixed-region offset.
func (v *View) Float32At(off int) float32 { return math.Float32frombits(v.Uint32At(off)) }

// Float64At reads an IEEE-754 float64 at the given fixed-region offset.
func (v *View) Float64At(off int) float64 { return math.Float64frombits(v.Uint64At(off)) }

// BoolAt reads the byte at the given fixed-region offset as a bool.
func (v *View) BoolAt(off int) bool { return v.Uint8At(off) != 0 }

// slot returns the 16-byte slot at index. Out-of-range indices are a layout
// contract violation.
func (v *View) slot(index int) []byte {
	if index < 0 || index >= v.layout.SlotCount {
		panic(fmt.Sprintf("zrec: slot index %d outside slot count %d", index, v.layout.SlotCount))
	}
	base := HeaderSize + v.layout.FixedSize + index*SlotSize
	return v.buf[base : base+SlotSize]
}

// Variable returns a borrowed view of the value in the slot at index,
// reading the heap only when the slot is a heap reference.
func (v *View) Variable(index int) ([]byte, error) {
	return decodeSlot(v.slot(index), v.heap)
}

// StringAt returns the value in the slot at index as a string. Unlike
// Variable, this copies.
func (v *View) StringAt(index int) (string, error) {
	b, err := v.Variable(index)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// InternCount returns the number of entries in the intern table.
func (v *View) InternCount() int { return len(v.internOff) }

// Interned returns a borrowed view of intern table entry i.
func (v *View) Interned(i int) ([]byte, error) {
	if i < 0 || i >= len(v.internOff) {
		return nil, fmt.Errorf("%w: intern index %d of %d", ErrSlotDecode, i, len(v.internOff))
	}
	pos := v.internOff[i]
	n := int(binary.LittleEndian.Uint16(v.buf[pos:]))
	return v.buf[pos+2 : pos+2+n], nil
}
