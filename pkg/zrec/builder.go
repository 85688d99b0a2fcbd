package zrec

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Builder constructs one record buffer per Finish. It lays the header, fixed
// region and slot array into a single preallocated buffer that is never
// reallocated; variable values that exceed the inline limit go to a growable
// heap tail appended at Finish. A Builder is single-writer: it must not be
// shared while under construction. Offsets and slot indices come from the
// caller's layout; passing one outside the declared layout is a programming
// error and panics rather than returning an error.
type Builder struct {
	layout   *Layout
	buf      []byte // header + fixed region + slot array, fixed size
	heap     []byte // overflow values, appended in call order
	intern   []string
	internAt map[string]int
	flags    byte
	finished bool
}

// NewBuilder allocates a builder for the given layout and stamps the header.
func NewBuilder(layout *Layout) *Builder {
	b := &Builder{
		layout: layout,
		buf:    make([]byte, layout.minSize()),
	}
	b.start()
	return b
}

func (b *Builder) start() {
	b.flags = FlagLittleEndian
	b.finished = false
	writeHeader(b.buf, b.flags)
}

// Reset prepares the builder for another record of the same layout, reusing
// the fixed buffer and heap tail. Buffers returned by earlier Finish calls
// share that memory and are invalidated.
func (b *Builder) Reset() {
	for i := HeaderSize; i < len(b.buf); i++ {
		b.buf[i] = 0
	}
	b.heap = b.heap[:0]
	b.intern = b.intern[:0]
	clear(b.internAt)
	b.start()
}

func (b *Builder) fixedAt(off, width int) []byte {
	if b.finished {
		panic("zrec: builder used after Finish")
	}
	if off < 0 || off+width > b.layout.FixedSize {
		panic(fmt.Sprintf("zrec: fixed write %d+%d outside fixed region of %d", off, width, b.layout.FixedSize))
	}
	return b.buf[HeaderSize+off:]
}

// WriteUint8 writes v at the given fixed-region offset.
func (b *Builder) WriteUint8(off int, v uint8) { b.fixedAt(off, 1)[0] = v }

// WriteUint16 writes v little-endian at the given fixed-region offset.
func (b *Builder) WriteUint16(off int, v uint16) {
	binary.LittleEndian.PutUint16(b.fixedAt(off, 2), v)
}

// WriteUint32 writes v little-endian at the given fixed-region offset.
func (b *Builder) WriteUint32(off int, v uint32) {
	binary.LittleEndian.PutUint32(b.fixedAt(off, 4), v)
}

// WriteUint64 writes v little-endian at the given fixed-region offset.
func (b *Builder) WriteUint64(off int, v uint64) {
	binary.LittleEndian.PutUint64(b.fixedAt(off, 8), v)
}

// WriteInt8 writes v at the given fixed-region offset.
func (b *Builder) WriteInt8(off int, v int8) { b.WriteUint8(off, uint8(v)) }

// WriteInt16 writes v little-endian at the given fixed-region offset.
func (b *Builder) WriteInt16(off int, v int16) { b.WriteUint16(off, uint16(v)) }

// WriteInt32 writes v little-endian at the given fixed-region offset.
func (b *Builder) WriteInt32(off int, v int32) { b.WriteUint32(off, uint32(v)) }

// WriteInt64 writes v little-endian at the given fixed-region offset.
func (b *Builder) WriteInt64(off int, v int64) { b.WriteUint64(off, uint64(v)) }

// WriteFloat32 writes the IEEE-754 bits of v at the given offset.
func (b *Builder) WriteFloat32(off int, v float32) { b.WriteUint32(off, math.Float32bits(v)) }

// WriteFloat64 writes the IEEE-754 bits of v at the given offset.
func (b *Builder) WriteFloat64(off int, v float64) { b.WriteUint64(off, math.Float64bits(v)) }

// WriteBool writes v as one byte at the given offset.
func (b *Builder) WriteBool(off int, v bool) {
	if v {
		b.WriteUint8(off, 1)
	} else {
		b.WriteUint8(off, 0)
	}
}

// WriteRaw writes width pre-encoded little-endian bytes at the given
// fixed-region offset. Like every fixed write it trusts the caller's layout
// contract and performs no type validation.
func (b *Builder) WriteRaw(off int, raw []byte) {
	copy(b.fixedAt(off, len(raw)), raw)
}

// WriteVariable stores value in the slot at index: inline when it fits in
// MaxInline bytes, otherwise as a heap reference. Values are appended to the
// heap strictly in call order.
func (b *Builder) WriteVariable(index int, value []byte) {
	if b.finished {
		panic("zrec: builder used after Finish")
	}
	if index < 0 || index >= b.layout.SlotCount {
		panic(fmt.Sprintf("zrec: slot index %d outside slot count %d", index, b.layout.SlotCount))
	}
	if len(value) > math.MaxUint32 {
		panic(fmt.Sprintf("zrec: variable value of %d bytes exceeds format limit", len(value)))
	}
	base := HeaderSize + b.layout.FixedSize + index*SlotSize
	dst := b.buf[base : base+SlotSize]
	prev := len(b.heap)
	b.heap = putSlot(dst, value, b.heap)
	if len(b.heap) != prev {
		b.flags |= FlagHasHeap
	}
}

// WriteString stores s in the slot at index. Equivalent to WriteVariable
// with the string's bytes.
func (b *Builder) WriteString(index int, s string) {
	b.WriteVariable(index, []byte(s))
}

// Intern adds s to the buffer's intern table, deduplicating repeated
// literals, and returns its table index.
func (b *Builder) Intern(s string) int {
	if b.finished {
		panic("zrec: builder used after Finish")
	}
	if len(s) > math.MaxUint16 {
		panic(fmt.Sprintf("zrec: interned string of %d bytes exceeds table limit", len(s)))
	}
	if b.internAt == nil {
		b.internAt = make(map[string]int)
	}
	if i, ok := b.internAt[s]; ok {
		return i
	}
	if len(b.intern) == math.MaxUint16 {
		panic("zrec: intern table full")
	}
	i := len(b.intern)
	b.intern = append(b.intern, s)
	b.internAt[s] = i
	b.flags |= FlagHasIntern
	return i
}

// Finish seals the record and returns the single contiguous buffer:
// header, fixed region, slot array, heap tail, optional intern table.
// The returned length is the total record size. The builder cannot be
// written to again until Reset.
func (b *Builder) Finish() []byte {
	if b.finished {
		panic("zrec: Finish called twice")
	}
	b.finished = true
	b.buf[3] = b.flags
	out := b.buf
	if len(b.heap) > 0 {
		out = append(out, b.heap...)
	}
	if len(b.intern) > 0 {
		out = binary.LittleEndian.AppendUint16(out, uint16(len(b.intern)))
		for _, s := range b.intern {
			out = binary.LittleEndian.AppendUint16(out, uint16(len(s)))
			out = append(out, s...)
		}
	}
	return out
}
