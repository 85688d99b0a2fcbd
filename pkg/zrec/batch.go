package zrec

import "github.com/rawbytedev/slotwire/internal/simd"

// InlineEqual reports whether the slot at index holds candidate inline.
// It is a pure comparison with no decode step: heap-resident values and
// length mismatches return false without touching the heap. Use Variable
// when heap values must be compared too.
func (v *View) InlineEqual(index int, candidate []byte) bool {
	return simd.InlineEqual(v.slot(index), candidate)
}

// GatherUint64 reads little-endian uint64s at several fixed-region offsets
// in one batch, appending to dst. Offsets that share a cache line are
// validated with a single bounds check; results always match individual
// Uint64At calls.
func (v *View) GatherUint64(offsets []int, dst []uint64) []uint64 {
	for _, off := range offsets {
		if off < 0 || off+8 > v.layout.FixedSize {
			panic("zrec: gather offset outside fixed region")
		}
	}
	return simd.GatherUint64(v.buf[HeaderSize:HeaderSize+v.layout.FixedSize], offsets, dst)
}
