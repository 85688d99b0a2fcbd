package zrec

import (
	"encoding/binary"
	"fmt"
)

// A slot is a 16-byte unit encoding one variable-length value. The tag byte
// at position 15 selects the encoding:
//
//	inline (0x00): byte 0 = length (0-14), bytes 1..1+length = raw data,
//	               remainder zero. The tag position is part of the zeroed
//	               remainder, so inline slots carry it implicitly.
//	heap (0xFF):   bytes 0-3 = heap offset (LE), bytes 4-7 = length (LE),
//	               both relative to the heap start.
//
// A value of length 14 is always inline and length 15 always goes to the
// heap; no value is ever split across both representations.
const (
	// SlotSize is the size of one slot in bytes.
	SlotSize = 16
	// MaxInline is the largest value stored directly inside a slot.
	MaxInline = 14

	// TagInline marks a slot holding its value inline.
	TagInline = 0x00
	// TagHeap marks a slot referencing the heap region.
	TagHeap = 0xFF

	// tagPos is the byte position of the tag within a slot.
	tagPos = 15
)

// putSlot encodes value into the 16-byte slot at dst, appending to heap when
// the value exceeds MaxInline. The recorded offset is the heap cursor before
// the append (len(heap)). It returns the grown heap.
func putSlot(dst []byte, value []byte, heap []byte) []byte {
	_ = dst[SlotSize-1]
	if len(value) <= MaxInline {
		dst[0] = byte(len(value))
		copy(dst[1:], value)
		for i := 1 + len(value); i < SlotSize; i++ {
			dst[i] = 0
		}
		return heap
	}
	binary.LittleEndian.PutUint32(dst[0:], uint32(len(heap)))
	binary.LittleEndian.PutUint32(dst[4:], uint32(len(value)))
	for i := 8; i < tagPos; i++ {
		dst[i] = 0
	}
	dst[tagPos] = TagHeap
	return append(heap, value...)
}

// decodeSlot returns a borrowed view of the value held by the 16-byte slot,
// dereferencing heap when the slot is a heap reference. Both paths are
// zero-copy. Bounds are checked before any dereference; corrupted offsets
// yield ErrSlotDecode, never an out-of-range read.
func decodeSlot(slot []byte, heap []byte) ([]byte, error) {
	if slot[tagPos] == TagHeap {
		off := binary.LittleEndian.Uint32(slot[0:])
		length := binary.LittleEndian.Uint32(slot[4:])
		end := uint64(off) + uint64(length)
		if end > uint64(len(heap)) {
			return nil, fmt.Errorf("%w: heap ref %d+%d exceeds heap of %d", ErrSlotDecode, off, length, len(heap))
		}
		return heap[off:end], nil
	}
	n := int(slot[0])
	if n > MaxInline {
		return nil, fmt.Errorf("%w: inline length %d", ErrSlotDecode, n)
	}
	return slot[1 : 1+n], nil
}

// slotExtent returns the end offset (relative to heap start) claimed by a
// heap slot, or 0 for inline slots. Used to find where the heap region ends
// when an intern table trails it.
func slotExtent(slot []byte) uint64 {
	if slot[tagPos] != TagHeap {
		return 0
	}
	off := binary.LittleEndian.Uint32(slot[0:])
	length := binary.LittleEndian.Uint32(slot[4:])
	return uint64(off) + uint64(length)
}
