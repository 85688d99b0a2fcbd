// Package structcodec derives record layouts from Go structs once per type
// and marshals structs through the zero-copy builder and view. It is the
// schema layer sitting on top of zrec: all offsets and slot indices are
// resolved at derivation time, so the per-record path does no schema work.
package structcodec

import (
	"errors"
	"fmt"
	"reflect"
	"unsafe"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/rawbytedev/slotwire"
	"github.com/rawbytedev/slotwire/internal/common"
	"github.com/rawbytedev/slotwire/pkg/zrec"
)

var (
	// ErrNotStruct is returned when the marshalled value is not a struct.
	ErrNotStruct = errors.New("structcodec: expected struct")
	// ErrNotStructPtr is returned when the unmarshal target is not a
	// pointer to struct.
	ErrNotStructPtr = errors.New("structcodec: expected pointer to struct")
	// ErrUnsupported is returned for field types the format cannot carry.
	ErrUnsupported = errors.New("structcodec: unsupported field type")
)

// Options controls codec behaviour.
type Options struct {
	// UnsafeStrings makes Unmarshal alias string fields into the record
	// buffer without copying. The caller must keep the buffer alive and
	// unchanged for as long as the strings are used.
	UnsafeStrings bool
}

type binding struct {
	idx   int // struct field index
	kind  reflect.Kind
	field zrec.Field
}

type plan struct {
	layout   *zrec.Layout
	bindings []binding
}

// Codec converts structs to record buffers and back. Plans are derived
// lazily per type and cached. Marshal reuses one builder per layout, so a
// Codec is single-writer like the builders it wraps; Unmarshal has no
// shared mutable state and is safe to call concurrently.
type Codec struct {
	opts     Options
	log      *slotwire.Logger
	plans    *xsync.MapOf[reflect.Type, *plan]
	builders map[*zrec.Layout]*zrec.Builder
	scratch  [8]byte
}

// New creates a codec. A nil logger disables logging.
func New(opts Options, logger *slotwire.Logger) *Codec {
	if logger == nil {
		logger = slotwire.NoopLogger()
	}
	return &Codec{
		opts:     opts,
		log:      logger,
		plans:    xsync.NewMapOf[reflect.Type, *plan](),
		builders: make(map[*zrec.Layout]*zrec.Builder),
	}
}

func kindOf(k reflect.Kind) (zrec.Kind, bool) {
	switch k {
	case reflect.Bool:
		return zrec.Bool, true
	case reflect.Int8:
		return zrec.Int8, true
	case reflect.Uint8:
		return zrec.Uint8, true
	case reflect.Int16:
		return zrec.Int16, true
	case reflect.Uint16:
		return zrec.Uint16, true
	case reflect.Int32:
		return zrec.Int32, true
	case reflect.Uint32:
		return zrec.Uint32, true
	case reflect.Int64:
		return zrec.Int64, true
	case reflect.Uint64:
		return zrec.Uint64, true
	case reflect.Float32:
		return zrec.Float32, true
	case reflect.Float64:
		return zrec.Float64, true
	case reflect.String:
		return zrec.String, true
	default:
		return 0, false
	}
}

// planFor derives (or fetches) the layout and field bindings for t.
func (c *Codec) planFor(t reflect.Type) (*plan, error) {
	if p, ok := c.plans.Load(t); ok {
		return p, nil
	}

	var fields []zrec.Field
	var idxs []int
	var kinds []reflect.Kind
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.PkgPath != "" && !sf.Anonymous {
			continue // skip unexported
		}
		k := sf.Type.Kind()
		zk, ok := kindOf(k)
		if !ok {
			if k == reflect.Slice && sf.Type.Elem().Kind() == reflect.Uint8 {
				zk = zrec.Bytes
			} else {
				return nil, fmt.Errorf("%w: %s %s", ErrUnsupported, sf.Name, sf.Type)
			}
		}
		fields = append(fields, zrec.Field{Name: sf.Name, Kind: zk})
		idxs = append(idxs, i)
		kinds = append(kinds, k)
	}

	layout, err := zrec.NewLayout(t.String(), fields)
	if err != nil {
		return nil, err
	}
	layout = zrec.Register(layout)

	p := &plan{layout: layout}
	for i, f := range layout.Fields {
		p.bindings = append(p.bindings, binding{idx: idxs[i], kind: kinds[i], field: f})
	}
	c.log.Debug("derived layout",
		"type", t.String(),
		"fixed_size", layout.FixedSize,
		"slot_count", layout.SlotCount,
	)
	p, _ = c.plans.LoadOrStore(t, p)
	return p, nil
}

// Layout returns the derived record layout for v's type.
func (c *Codec) Layout(v any) (*zrec.Layout, error) {
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, ErrNotStruct
	}
	p, err := c.planFor(t)
	if err != nil {
		return nil, err
	}
	return p.layout, nil
}

// Marshal encodes v into a record buffer. The buffer is owned by the codec
// and invalidated by the next Marshal of the same type.
func (c *Codec) Marshal(v any) ([]byte, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, ErrNotStruct
	}
	p, err := c.planFor(rv.Type())
	if err != nil {
		return nil, err
	}

	b, ok := c.builders[p.layout]
	if !ok {
		b = zrec.NewBuilder(p.layout)
		c.builders[p.layout] = b
	} else {
		b.Reset()
	}

	for _, bind := range p.bindings {
		fv := rv.Field(bind.idx)
		switch bind.kind {
		case reflect.String:
			b.WriteString(bind.field.Slot, fv.String())
		case reflect.Slice:
			b.WriteVariable(bind.field.Slot, fv.Bytes())
		default:
			w := common.FixedSize(bind.kind)
			common.PutFixed(c.scratch[:], fv, bind.kind)
			b.WriteRaw(bind.field.Offset, c.scratch[:w])
		}
	}
	return b.Finish(), nil
}

// Unmarshal decodes a record buffer into out, which must be a pointer to a
// struct of the type the buffer was marshalled from. Byte-slice fields
// borrow the buffer; string fields copy unless UnsafeStrings is set.
func (c *Codec) Unmarshal(data []byte, out any) error {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return ErrNotStructPtr
	}
	dst := rv.Elem()
	p, err := c.planFor(dst.Type())
	if err != nil {
		return err
	}
	view, err := zrec.FromBytes(data, p.layout)
	if err != nil {
		return err
	}

	for _, bind := range p.bindings {
		fv := dst.Field(bind.idx)
		switch bind.kind {
		case reflect.String:
			raw, err := view.Variable(bind.field.Slot)
			if err != nil {
				return err
			}
			if c.opts.UnsafeStrings && len(raw) > 0 {
				fv.SetString(unsafe.String(&raw[0], len(raw)))
			} else {
				fv.SetString(string(raw))
			}
		case reflect.Slice:
			raw, err := view.Variable(bind.field.Slot)
			if err != nil {
				return err
			}
			fv.SetBytes(raw)
		default:
			w := common.FixedSize(bind.kind)
			common.SetFixed(fv, view.Fixed(bind.field.Offset, w), bind.kind)
		}
	}
	return nil
}
