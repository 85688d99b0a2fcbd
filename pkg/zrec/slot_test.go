package zrec

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPutSlotInlineBoundary(t *testing.T) {
	for _, n := range []int{0, 1, 13, 14} {
		slot := make([]byte, SlotSize)
		value := bytes.Repeat([]byte{0xAB}, n)
		heap := putSlot(slot, value, nil)
		require.Empty(t, heap, "length %d must stay inline", n)
		require.Equal(t, byte(TagInline), slot[tagPos])
		require.Equal(t, byte(n), slot[0])

		got, err := decodeSlot(slot, heap)
		require.NoError(t, err)
		require.Equal(t, value, got)
	}
}

func TestPutSlotHeapBoundary(t *testing.T) {
	for _, n := range []int{15, 16, 100, 4096} {
		slot := make([]byte, SlotSize)
		value := bytes.Repeat([]byte{0xCD}, n)
		heap := putSlot(slot, value, nil)
		require.Len(t, heap, n, "length %d must go to heap whole", n)
		require.Equal(t, byte(TagHeap), slot[tagPos])

		got, err := decodeSlot(slot, heap)
		require.NoError(t, err)
		require.Equal(t, value, got)
	}
}

func TestPutSlotClearsStaleBytes(t *testing.T) {
	slot := bytes.Repeat([]byte{0xFF}, SlotSize)
	heap := putSlot(slot, []byte("hi"), nil)
	require.Empty(t, heap)
	require.Equal(t, []byte{2, 'h', 'i'}, slot[:3])
	for i := 3; i < SlotSize; i++ {
		require.Zero(t, slot[i], "stale byte at %d", i)
	}
}

func TestDecodeSlotHeapOutOfBounds(t *testing.T) {
	slot := make([]byte, SlotSize)
	binary.LittleEndian.PutUint32(slot[0:], 0xFFFFFFFF)
	binary.LittleEndian.PutUint32(slot[4:], 8)
	slot[tagPos] = TagHeap

	_, err := decodeSlot(slot, make([]byte, 10))
	require.ErrorIs(t, err, ErrSlotDecode)
}

func TestDecodeSlotOverflowSafe(t *testing.T) {
	// offset+length wraps uint32; must still be rejected
	slot := make([]byte, SlotSize)
	binary.LittleEndian.PutUint32(slot[0:], 0xFFFFFFF0)
	binary.LittleEndian.PutUint32(slot[4:], 0x20)
	slot[tagPos] = TagHeap

	_, err := decodeSlot(slot, make([]byte, 64))
	require.ErrorIs(t, err, ErrSlotDecode)
}

func TestDecodeSlotBadInlineLength(t *testing.T) {
	slot := make([]byte, SlotSize)
	slot[0] = 15 // inline tag but impossible length
	_, err := decodeSlot(slot, nil)
	require.ErrorIs(t, err, ErrSlotDecode)
}
