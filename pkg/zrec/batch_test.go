package zrec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewInlineEqual(t *testing.T) {
	l := userLayout(t)
	id, _ := l.Field("ID")
	name, _ := l.Field("Name")
	tags, _ := l.Field("Tags")

	b := NewBuilder(l)
	b.WriteUint64(id.Offset, 1)
	b.WriteString(name.Slot, "alpha")
	b.WriteString(tags.Slot, strings.Repeat("h", 30))
	v, err := FromBytes(b.Finish(), l)
	require.NoError(t, err)

	assert.True(t, v.InlineEqual(name.Slot, []byte("alpha")))
	assert.False(t, v.InlineEqual(name.Slot, []byte("alphb")))
	assert.False(t, v.InlineEqual(name.Slot, []byte("alph")))

	// heap-resident values never match through the inline path
	heapVal, err := v.Variable(tags.Slot)
	require.NoError(t, err)
	assert.False(t, v.InlineEqual(tags.Slot, heapVal))
}

func TestViewGatherUint64(t *testing.T) {
	l, err := NewLayout("test.Wide", []Field{
		{Name: "A", Kind: Uint64},
		{Name: "B", Kind: Uint64},
		{Name: "C", Kind: Uint64},
		{Name: "D", Kind: Uint64},
	})
	require.NoError(t, err)

	b := NewBuilder(l)
	want := []uint64{10, 0xFFFFFFFFFFFFFFFF, 7, 1 << 40}
	offsets := make([]int, len(want))
	for i, val := range want {
		f, _ := l.Field(string(rune('A' + i)))
		offsets[i] = f.Offset
		b.WriteUint64(f.Offset, val)
	}
	v, err := FromBytes(b.Finish(), l)
	require.NoError(t, err)

	got := v.GatherUint64(offsets, nil)
	require.Equal(t, want, got)

	for i, off := range offsets {
		require.Equal(t, want[i], v.Uint64At(off), "gather must match scalar loads")
	}

	assert.Panics(t, func() { v.GatherUint64([]int{25}, nil) }, "past fixed region")
}
