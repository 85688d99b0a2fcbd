// Package simd provides batch accessors layered over record buffers:
// width-matched inline slot comparison and multi-field loads. Kernel
// function pointers default to the scalar reference implementation;
// platform init functions switch to the word-compare kernel when the CPU
// supports it. Every kernel is observably equivalent to the scalar path.
package simd

import "encoding/binary"

const (
	slotSize  = 16
	maxInline = 14
	tagHeap   = 0xFF
	tagPos    = 15
)

// inlineEqualKernel compares a slot's inline payload with a candidate of
// already-verified equal length.
var inlineEqualKernel = inlineEqualScalar

// InlineEqual reports whether the 16-byte slot holds candidate inline. It
// returns false immediately when the slot is a heap reference or the
// lengths differ; heap-resident values must be compared through a decoded
// view instead.
func InlineEqual(slot []byte, candidate []byte) bool {
	_ = slot[slotSize-1]
	if slot[tagPos] == tagHeap {
		return false
	}
	n := int(slot[0])
	if n > maxInline || n != len(candidate) {
		return false
	}
	return inlineEqualKernel(slot, candidate)
}

// inlineEqualScalar is the byte-by-byte reference path.
func inlineEqualScalar(slot []byte, candidate []byte) bool {
	for i, c := range candidate {
		if slot[1+i] != c {
			return false
		}
	}
	return true
}

// inlineEqualWords rebuilds the expected slot image on the stack and
// compares it as two 64-bit lanes. Inline slots zero-pad past the payload,
// so the full 16 bytes are deterministic given length and content.
func inlineEqualWords(slot []byte, candidate []byte) bool {
	var want [slotSize]byte
	want[0] = byte(len(candidate))
	copy(want[1:], candidate)
	lo := binary.LittleEndian.Uint64(slot[0:8]) ^ binary.LittleEndian.Uint64(want[0:8])
	hi := binary.LittleEndian.Uint64(slot[8:16]) ^ binary.LittleEndian.Uint64(want[8:16])
	return lo|hi == 0
}
