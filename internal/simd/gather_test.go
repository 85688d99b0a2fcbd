package simd

import (
	"encoding/binary"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGatherUint64MatchesIndividualLoads(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	region := make([]byte, 512)
	rng.Read(region)

	cases := [][]int{
		{},                  // empty batch
		{0},                 // single load
		{0, 8, 16, 24},      // one cache line
		{40, 0, 24, 8},      // unordered, still one line
		{0, 100, 300, 504},  // spans lines
		{3, 17, 254},        // unaligned offsets
		{12, 12, 12},        // duplicates
	}
	for _, offsets := range cases {
		var want []uint64
		for _, off := range offsets {
			want = append(want, binary.LittleEndian.Uint64(region[off:]))
		}
		got := GatherUint64(region, offsets, nil)
		require.Equal(t, want, got, "offsets %v", offsets)
	}
}

func TestGatherUint64AppendsToDst(t *testing.T) {
	region := make([]byte, 64)
	binary.LittleEndian.PutUint64(region[8:], 99)

	dst := []uint64{1, 2}
	dst = GatherUint64(region, []int{8}, dst)
	assert.Equal(t, []uint64{1, 2, 99}, dst)
}

func TestGatherUint64OutOfRegionPanics(t *testing.T) {
	region := make([]byte, 32)
	assert.Panics(t, func() { GatherUint64(region, []int{25}, nil) }, "25+8 > 32")
	assert.Panics(t, func() { GatherUint64(region, []int{-1}, nil) })
}
