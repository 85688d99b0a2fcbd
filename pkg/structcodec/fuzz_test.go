package structcodec

import (
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mixedRecord struct {
	Val      string
	Mod      int8
	Data     string
	Integers int16
	Float3   float32
	Float6   float64
}

func FuzzMarshalUnmarshal(f *testing.F) {
	f.Add("", int8(0), "", int16(0), float32(0), float64(0))
	f.Add("inline", int8(-1), "a value long enough to land on the heap region", int16(77), float32(1.5), float64(-2.5))
	f.Fuzz(func(t *testing.T, val string, mod int8, data string, integers int16, f3 float32, f6 float64) {
		in := mixedRecord{Val: val, Mod: mod, Data: data, Integers: integers, Float3: f3, Float6: f6}
		c := New(Options{}, nil)
		buf, err := c.Marshal(in)
		require.NoError(t, err)
		out := &mixedRecord{}
		require.NoError(t, c.Unmarshal(buf, out))
		require.EqualExportedValues(t, in, *out)
	})
}

func TestFixedFieldsProperty(t *testing.T) {
	type numbers struct {
		Int1  uint8
		Int2  int8
		Int3  uint16
		Int4  int16
		Int5  uint32
		Int6  int32
		Int7  uint64
		Int9  int64
		Const bool
	}
	c := New(Options{}, nil)
	condition := func(z numbers) bool {
		buf, err := c.Marshal(z)
		require.NoError(t, err)
		res := &numbers{}
		err = c.Unmarshal(buf, res)
		require.NoError(t, err)
		return assert.ObjectsAreEqual(z, *res)
	}
	require.NoError(t, quick.Check(condition, &quick.Config{}))
}
