package simd

import (
	"encoding/binary"
	"fmt"
)

// CacheLine is the assumed cache line size in bytes.
const CacheLine = 64

// GatherUint64 loads little-endian uint64s from region at the given byte
// offsets, appending to dst. When every load falls within a single cache
// line the whole batch is validated with one bounds check; results are
// identical to individual loads either way. Offsets outside region violate
// the caller's layout contract and panic.
func GatherUint64(region []byte, offsets []int, dst []uint64) []uint64 {
	if len(offsets) == 0 {
		return dst
	}
	lo, hi := offsets[0], offsets[0]
	for _, off := range offsets[1:] {
		if off < lo {
			lo = off
		}
		if off > hi {
			hi = off
		}
	}
	if lo < 0 || hi+8 > len(region) {
		panic(fmt.Sprintf("simd: gather %d+8 outside region of %d", hi, len(region)))
	}
	if hi+8-lo <= CacheLine {
		line := region[lo : hi+8]
		for _, off := range offsets {
			dst = append(dst, binary.LittleEndian.Uint64(line[off-lo:]))
		}
		return dst
	}
	for _, off := range offsets {
		dst = append(dst, binary.LittleEndian.Uint64(region[off:]))
	}
	return dst
}
