package arrowconv

import (
	"bytes"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/serieskit/pkg/columnar"
	"github.com/ajitpratap0/serieskit/pkg/errors"
	"github.com/ajitpratap0/serieskit/pkg/na"
	"github.com/ajitpratap0/serieskit/pkg/vector"
)

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		v    *vector.Vector
	}{
		{"logical", vector.Logicals(na.True, na.LogicalNA, na.False)},
		{"int", vector.Ints(1, na.Int32, -3)},
		{"long", vector.Longs(1 << 40, na.Int64)},
		{"float", vector.Floats(0.5, na.Float32)},
		{"double", vector.Doubles(1.5, na.Float64, -2)},
		{"complex", vector.Complexes(1+2i, na.Complex128)},
		{"string", vector.Of("a", nil, "c")},
		{"empty", vector.Empty(vector.Double)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
			defer mem.AssertSize(t, 0)

			arr := ToArrow(tt.v, mem)
			defer arr.Release()
			assert.Equal(t, tt.v.Len(), arr.Len())
			assert.Equal(t, tt.v.CountNA(), arr.NullN())

			back, err := FromArrow(arr)
			require.NoError(t, err)
			assert.True(t, vector.Equal(tt.v, back), "%s != %s", tt.v, back)
		})
	}
}

func TestObjectExportsAsText(t *testing.T) {
	v := vector.Of(int32(1), "x", nil)
	arr := ToArrow(v, nil)
	defer arr.Release()

	assert.True(t, arrow.TypeEqual(arrow.BinaryTypes.String, arr.DataType()))
	back, err := FromArrow(arr)
	require.NoError(t, err)
	assert.Equal(t, vector.String, back.Type())
	assert.Equal(t, []any{"1", "x", nil}, back.Values())
}

func TestFromArrowWidensNarrowIntegers(t *testing.T) {
	b := array.NewUint16Builder(memory.DefaultAllocator)
	defer b.Release()
	b.AppendValues([]uint16{7, 9}, []bool{true, false})
	arr := b.NewArray()
	defer arr.Release()

	v, err := FromArrow(arr)
	require.NoError(t, err)
	assert.Equal(t, vector.Int, v.Type())
	assert.Equal(t, []any{int32(7), na.Int32}, v.Values())
}

func TestFromArrowUnsupported(t *testing.T) {
	arr := array.NewNull(2)
	defer arr.Release()
	_, err := FromArrow(arr)
	assert.True(t, errors.IsType(err, errors.ErrorTypeCapability))
}

func testStore(t *testing.T) *columnar.ColumnStore {
	t.Helper()
	s := columnar.NewColumnStore()
	require.NoError(t, s.AddColumn("id", vector.Longs(1, 2, 3)))
	require.NoError(t, s.AddColumn("score", vector.Doubles(0.5, na.Float64, 2)))
	require.NoError(t, s.AddColumn("name", vector.Of("a", "b", nil)))
	return s
}

func TestRecord(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	rec, err := Record(testStore(t), mem)
	require.NoError(t, err)
	defer rec.Release()

	assert.Equal(t, int64(3), rec.NumRows())
	assert.Equal(t, int64(3), rec.NumCols())
	assert.Equal(t, "score", rec.ColumnName(1))
	assert.True(t, rec.Column(1).IsNull(1))
	assert.True(t, rec.Schema().Field(0).Nullable)
}

func TestIPCRoundTrip(t *testing.T) {
	store := testStore(t)

	var buf bytes.Buffer
	require.NoError(t, WriteIPC(&buf, store, nil))

	back, err := ReadIPC(&buf, nil)
	require.NoError(t, err)
	assert.Equal(t, store.Schema(), back.Schema())
	assert.Equal(t, store.RowCount(), back.RowCount())
	for _, name := range store.ColumnNames() {
		want, _ := store.Column(name)
		got, _ := back.Column(name)
		assert.True(t, vector.Equal(want, got), name)
	}
}

func TestReadIPCRejectsGarbage(t *testing.T) {
	_, err := ReadIPC(bytes.NewReader([]byte("not arrow")), nil)
	assert.True(t, errors.IsType(err, errors.ErrorTypeIO))
}
