package avroconv

import (
	"bytes"
	"strings"
	"testing"

	"github.com/linkedin/goavro/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/serieskit/pkg/columnar"
	"github.com/ajitpratap0/serieskit/pkg/errors"
	"github.com/ajitpratap0/serieskit/pkg/na"
	"github.com/ajitpratap0/serieskit/pkg/vector"
)

func sampleStore(t *testing.T) *columnar.ColumnStore {
	t.Helper()
	s := columnar.NewColumnStore()
	require.NoError(t, s.AddColumn("flag", vector.Logicals(na.True, na.LogicalNA, na.False)))
	require.NoError(t, s.AddColumn("id", vector.Ints(1, 2, na.Int32)))
	require.NoError(t, s.AddColumn("big", vector.Longs(na.Int64, 1<<40, -3)))
	require.NoError(t, s.AddColumn("ratio", vector.Floats(0.5, na.Float32, 2)))
	require.NoError(t, s.AddColumn("unit price", vector.Doubles(1.25, 2, na.Float64)))
	require.NoError(t, s.AddColumn("z", vector.Complexes(complex(1, -1), na.Complex128, 0)))
	require.NoError(t, s.AddColumn("name", vector.Strings("a", "", "c")))
	return s
}

func TestRoundTrip(t *testing.T) {
	s := sampleStore(t)

	var buf bytes.Buffer
	require.NoError(t, WriteOCF(&buf, s))

	back, err := ReadOCF(&buf)
	require.NoError(t, err)
	assert.Equal(t, s.Schema(), back.Schema())
	assert.Equal(t, s.RowCount(), back.RowCount())
	for _, name := range s.ColumnNames() {
		want, _ := s.Column(name)
		got, err := back.Column(name)
		require.NoError(t, err)
		assert.True(t, vector.Equal(want, got), "%s: want %s, got %s", name, want, got)
	}
}

func TestObjectColumnsExportAsText(t *testing.T) {
	s := columnar.NewColumnStore()
	require.NoError(t, s.AddColumn("mixed", vector.Of(int64(1), "x", nil)))

	var buf bytes.Buffer
	require.NoError(t, WriteOCF(&buf, s))
	back, err := ReadOCF(&buf)
	require.NoError(t, err)

	mixed, err := back.Column("mixed")
	require.NoError(t, err)
	assert.Equal(t, vector.String, mixed.Type())
	assert.Equal(t, []any{"1", "x"}, mixed.Values()[:2])
	assert.True(t, mixed.Loc().IsNA(2))
}

func TestManyRowsSpanBlocks(t *testing.T) {
	values := make([]int64, blockSize*2+7)
	for i := range values {
		values[i] = int64(i)
	}
	s := columnar.NewColumnStore()
	require.NoError(t, s.AddColumn("n", vector.Longs(values...)))

	var buf bytes.Buffer
	require.NoError(t, WriteOCF(&buf, s))
	back, err := ReadOCF(&buf)
	require.NoError(t, err)

	n, _ := back.Column("n")
	assert.Equal(t, len(values), n.Len())
	assert.Equal(t, int64(blockSize*2+6), n.Loc().Long(n.Len()-1))
}

func TestEmptyStore(t *testing.T) {
	s := columnar.NewColumnStore()
	require.NoError(t, s.AddColumn("d", vector.Empty(vector.Double)))

	var buf bytes.Buffer
	require.NoError(t, WriteOCF(&buf, s))
	back, err := ReadOCF(&buf)
	require.NoError(t, err)
	assert.Equal(t, 0, back.RowCount())
	assert.Equal(t, []columnar.Field{{Name: "d", Type: vector.Double}}, back.Schema())
}

func TestSchema(t *testing.T) {
	schema, err := Schema(sampleStore(t))
	require.NoError(t, err)
	assert.Contains(t, schema, `"name":"unit_price"`)
	assert.Contains(t, schema, `["null","double"]`)
	assert.Contains(t, schema, `{"items":"double","type":"array"}`)

	_, err = goavro.NewCodec(schema)
	assert.NoError(t, err)
}

func TestFieldNames(t *testing.T) {
	assert.Equal(t,
		[]string{"unit_price", "unit_price_2", "_1st", "_", "ok"},
		FieldNames([]string{"unit price", "unit-price", "1st", "", "ok"}))
}

func TestReadForeignFile(t *testing.T) {
	var buf bytes.Buffer
	w, err := goavro.NewOCFWriter(goavro.OCFConfig{
		W:      &buf,
		Schema: `{"type":"record","name":"r","fields":[{"name":"a","type":"long"},{"name":"b","type":["null","string"]}]}`,
	})
	require.NoError(t, err)
	require.NoError(t, w.Append([]any{
		map[string]any{"a": int64(7), "b": goavro.Union("string", "x")},
		map[string]any{"a": int64(8), "b": nil},
	}))

	s, err := ReadOCF(&buf)
	require.NoError(t, err)
	assert.Equal(t, []columnar.Field{{Name: "a", Type: vector.Long}, {Name: "b", Type: vector.String}}, s.Schema())
	b, _ := s.Column("b")
	assert.True(t, b.Loc().IsNA(1))
}

func TestReadUnsupportedType(t *testing.T) {
	var buf bytes.Buffer
	w, err := goavro.NewOCFWriter(goavro.OCFConfig{
		W:      &buf,
		Schema: `{"type":"record","name":"r","fields":[{"name":"m","type":{"type":"map","values":"long"}}]}`,
	})
	require.NoError(t, err)
	require.NoError(t, w.Append([]any{map[string]any{"m": map[string]any{"k": int64(1)}}}))

	_, err = ReadOCF(&buf)
	assert.True(t, errors.IsType(err, errors.ErrorTypeCapability))
}

func TestReadGarbage(t *testing.T) {
	_, err := ReadOCF(strings.NewReader("not an avro file"))
	assert.True(t, errors.IsType(err, errors.ErrorTypeIO))
}
