package zrec

import (
	"fmt"

	"github.com/puzpuzpuz/xsync/v3"
)

// Kind enumerates the field types a layout can declare.
type Kind uint8

const (
	Bool Kind = iota
	Int8
	Uint8
	Int16
	Uint16
	Int32
	Uint32
	Int64
	Uint64
	Float32
	Float64
	String
	Bytes
)

// Width returns the byte width of fixed kinds, or -1 for variable kinds.
func (k Kind) Width() int {
	switch k {
	case Bool, Int8, Uint8:
		return 1
	case Int16, Uint16:
		return 2
	case Int32, Uint32, Float32:
		return 4
	case Int64, Uint64, Float64:
		return 8
	default:
		return -1
	}
}

// Variable reports whether k is represented by a slot instead of a fixed
// offset.
func (k Kind) Variable() bool { return k == String || k == Bytes }

// Field describes one field of a record layout. For fixed fields Offset is
// the byte position inside the fixed region; for variable fields Slot is the
// index into the slot array. The unused coordinate is -1.
type Field struct {
	Name   string
	Kind   Kind
	Offset int
	Slot   int
}

// Layout is the immutable schema of one record type: field order, widths and
// offsets. It is built once and shared read-only across every builder and
// view of that type; the format itself never carries it.
type Layout struct {
	Name      string
	Fields    []Field
	FixedSize int
	SlotCount int

	byName map[string]int
}

// NewLayout computes offsets and slot indices for fields in declaration
// order: fixed fields pack back to back with no padding, variable fields
// take consecutive slots.
func NewLayout(name string, fields []Field) (*Layout, error) {
	l := &Layout{
		Name:   name,
		Fields: make([]Field, len(fields)),
		byName: make(map[string]int, len(fields)),
	}
	for i, f := range fields {
		if _, dup := l.byName[f.Name]; dup {
			return nil, fmt.Errorf("zrec: duplicate field %q in layout %q", f.Name, name)
		}
		if f.Kind.Variable() {
			f.Offset = -1
			f.Slot = l.SlotCount
			l.SlotCount++
		} else {
			w := f.Kind.Width()
			if w < 0 {
				return nil, fmt.Errorf("zrec: unknown kind %d for field %q", f.Kind, f.Name)
			}
			f.Offset = l.FixedSize
			f.Slot = -1
			l.FixedSize += w
		}
		l.Fields[i] = f
		l.byName[f.Name] = i
	}
	return l, nil
}

// Field returns the resolved field with the given name.
func (l *Layout) Field(name string) (Field, bool) {
	i, ok := l.byName[name]
	if !ok {
		return Field{}, false
	}
	return l.Fields[i], true
}

// minSize is the smallest valid buffer for this layout.
func (l *Layout) minSize() int {
	return HeaderSize + l.FixedSize + l.SlotCount*SlotSize
}

// registry interns layouts by name so every builder and view of a record
// type shares one read-only schema object.
var registry = xsync.NewMapOf[string, *Layout]()

// Register interns l and returns the canonical layout for its name. The
// first registration wins; later calls with the same name return the
// original object.
func Register(l *Layout) *Layout {
	canon, _ := registry.LoadOrStore(l.Name, l)
	return canon
}

// LookupLayout returns the interned layout for name, if any.
func LookupLayout(name string) (*Layout, bool) {
	return registry.Load(name)
}
