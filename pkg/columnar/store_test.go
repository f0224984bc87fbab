package columnar

import (
	"bytes"
	"context"
	"math/rand"
	"reflect"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap/zaptest"

	"github.com/ajitpratap0/serieskit/pkg/errors"
	"github.com/ajitpratap0/serieskit/pkg/metrics"
	"github.com/ajitpratap0/serieskit/pkg/na"
	"github.com/ajitpratap0/serieskit/pkg/reader"
	"github.com/ajitpratap0/serieskit/pkg/tracing"
	"github.com/ajitpratap0/serieskit/pkg/vector"
)

func TestColumnStoreAddColumn(t *testing.T) {
	s := NewColumnStore()
	require.NoError(t, s.AddColumn("a", vector.Doubles(1, 2, 3)))
	require.NoError(t, s.AddColumn("b", vector.Strings("x", "y", "z")))

	err := s.AddColumn("a", vector.Doubles(1, 2, 3))
	assert.True(t, errors.IsType(err, errors.ErrorTypeConflict))

	err = s.AddColumn("c", vector.Doubles(1))
	assert.True(t, errors.IsType(err, errors.ErrorTypeSizeMismatch))

	assert.Equal(t, 3, s.RowCount())
	assert.Equal(t, []string{"a", "b"}, s.ColumnNames())
	assert.Equal(t, []Field{{"a", vector.Double}, {"b", vector.String}}, s.Schema())
}

func TestColumnStoreCopiesViews(t *testing.T) {
	src := vector.Doubles(1, 2)
	view, err := src.WithIndex(src.Index())
	require.NoError(t, err)

	s := NewColumnStore()
	require.NoError(t, s.AddColumn("a", view))
	require.NoError(t, src.Loc().Set(0, 9.0))

	col, err := s.Column("a")
	require.NoError(t, err)
	assert.Equal(t, 1.0, col.Loc().Double(0))
}

func TestColumnViewRoutesWritesToStore(t *testing.T) {
	s := NewColumnStore()
	require.NoError(t, s.AddColumn("a", vector.Doubles(1, 2)))

	col, err := s.Column("a")
	require.NoError(t, err)
	assert.False(t, col.Transferable())
	require.NoError(t, col.Loc().Set(1, 5.0))

	again, err := s.Column("a")
	require.NoError(t, err)
	assert.Equal(t, 5.0, again.Loc().Double(1))
}

func TestColumnBuilderDoesNotLeakIntoStore(t *testing.T) {
	s := NewColumnStore()
	require.NoError(t, s.AddColumn("a", vector.Doubles(1, 2)))

	col, err := s.Column("a")
	require.NoError(t, err)
	b := col.NewCopyBuilder()
	require.NoError(t, b.SetAt(0, 100.0))
	_, err = b.Build()
	require.NoError(t, err)

	again, err := s.Column("a")
	require.NoError(t, err)
	assert.Equal(t, 1.0, again.Loc().Double(0))
}

func TestColumnStoreOwnedAndDrop(t *testing.T) {
	s := NewColumnStore()
	require.NoError(t, s.AddColumn("a", vector.Ints(1, 2)))

	owned, err := s.Owned("a")
	require.NoError(t, err)
	assert.True(t, owned.Transferable())
	require.NoError(t, owned.Loc().Set(0, int32(7)))

	col, _ := s.Column("a")
	assert.Equal(t, int32(1), col.Loc().Int(0))

	require.NoError(t, s.DropColumn("a"))
	assert.Equal(t, 0, s.ColumnCount())
	_, err = s.Column("a")
	assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))
	assert.Error(t, s.DropColumn("a"))
}

func TestColumnStoreRowsAndIterator(t *testing.T) {
	s := NewColumnStore()
	require.NoError(t, s.AddColumn("n", vector.Longs(1, na.Int64)))
	require.NoError(t, s.AddColumn("s", vector.Strings("a", "b")))

	row, err := s.GetRow(1)
	require.NoError(t, err)
	assert.Equal(t, na.Int64, row["n"])
	assert.Equal(t, "b", row["s"])

	_, err = s.GetRow(2)
	assert.True(t, errors.IsType(err, errors.ErrorTypeOutOfRange))

	it := s.NewIterator()
	var rows [][]interface{}
	for it.Next() {
		rows = append(rows, append([]interface{}(nil), it.Row()...))
	}
	assert.Equal(t, [][]interface{}{{int64(1), "a"}, {na.Int64, "b"}}, rows)
}

func TestLoadCSVInfersAndPromotes(t *testing.T) {
	input := "id,score,name,flag\n1,2,alice,true\n2,3.5,bob,?\n3,?,?,false\n"
	r, err := reader.NewCSVReader(strings.NewReader(input), reader.DefaultCSVOptions())
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	store, err := Load(context.Background(), r, LoadOptions{
		Logger:  zaptest.NewLogger(t),
		Metrics: metrics.NewCollector(reg, "csv"),
	})
	require.NoError(t, err)

	assert.Equal(t, 3, store.RowCount())
	assert.Equal(t, []Field{
		{"id", vector.Int},
		{"score", vector.Double},
		{"name", vector.String},
		{"flag", vector.Logical},
	}, store.Schema())

	score, err := store.Column("score")
	require.NoError(t, err)
	assert.Equal(t, 2.0, score.Loc().Double(0))
	assert.True(t, score.Loc().IsNA(2))

	flag, _ := store.Column("flag")
	assert.Equal(t, na.LogicalNA, flag.Loc().Logical(1))
}

func TestLoadPinnedTypesAndShortRows(t *testing.T) {
	r := reader.NewStringReader([]string{"a", "b"}, [][]string{{"1", "x"}, {"2"}}, reader.DefaultMissingToken)

	store, err := Load(context.Background(), r, LoadOptions{
		Types: map[string]vector.Type{"a": vector.Double, "b": vector.String},
	})
	require.NoError(t, err)

	a, _ := store.Column("a")
	assert.Equal(t, vector.Double, a.Type())
	assert.Equal(t, 2.0, a.Loc().Double(1))

	b, _ := store.Column("b")
	assert.True(t, b.Loc().IsNA(1))
}

type declaredReader struct {
	*reader.StringReader
	types []reflect.Type
}

func (d declaredReader) Types() []reflect.Type { return d.types }

func TestLoadUsesDeclaredTypes(t *testing.T) {
	r := declaredReader{
		StringReader: reader.NewStringReader([]string{"n"}, [][]string{{"1"}, {"oops"}}, reader.DefaultMissingToken),
		types:        []reflect.Type{reflect.TypeOf(int64(0))},
	}
	store, err := Load(context.Background(), r, LoadOptions{})
	require.NoError(t, err)

	n, _ := store.Column("n")
	assert.Equal(t, vector.Long, n.Type())
	assert.Equal(t, int64(1), n.Loc().Long(0))
	assert.True(t, n.Loc().IsNA(1), "unparseable text loads as NA")
}

func TestLoadStopsOnCancelledContext(t *testing.T) {
	r := reader.NewStringReader([]string{"a"}, [][]string{{"1"}}, reader.DefaultMissingToken)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, r, LoadOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadRecordsSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tracer := tracing.Tracer(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))

	r := reader.NewStringReader([]string{"a", "b"}, [][]string{{"1", "?"}, {"2", "x"}}, reader.DefaultMissingToken)
	_, err := Load(context.Background(), r, LoadOptions{Tracer: tracer})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r = reader.NewStringReader([]string{"a"}, [][]string{{"1"}}, reader.DefaultMissingToken)
	_, err = Load(ctx, r, LoadOptions{Tracer: tracer})
	require.Error(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "columnar.Load", spans[0].Name())
	assert.Equal(t, codes.Ok, spans[0].Status().Code)
	attrs := attribute.NewSet(spans[0].Attributes()...)
	rows, ok := attrs.Value("rows")
	require.True(t, ok)
	assert.Equal(t, int64(2), rows.AsInt64())
	nas, _ := attrs.Value("na_values")
	assert.Equal(t, int64(1), nas.AsInt64())
	cols, _ := attrs.Value("columns")
	assert.Equal(t, int64(2), cols.AsInt64())

	assert.Equal(t, codes.Error, spans[1].Status().Code)
}

func exportStore(t *testing.T) *ColumnStore {
	t.Helper()
	s := NewColumnStore()
	require.NoError(t, s.AddColumn("n", vector.Longs(3, na.Int64, 1)))
	require.NoError(t, s.AddColumn("s", vector.Strings("c", "x", "a")))
	return s
}

func TestSortBy(t *testing.T) {
	sorted, err := exportStore(t).SortBy("n", vector.Ascending)
	require.NoError(t, err)

	s, _ := sorted.Column("s")
	assert.Equal(t, []any{"a", "c", "x"}, s.Values(), "rows move together")

	_, err = exportStore(t).SortBy("missing", vector.Ascending)
	assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))
}

func TestSampleAndHead(t *testing.T) {
	store := exportStore(t)

	sample, err := store.Sample(2, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, 2, sample.RowCount())
	assert.Equal(t, store.ColumnNames(), sample.ColumnNames())

	all, err := store.Sample(10, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, 3, all.RowCount())

	head, err := store.Head(2)
	require.NoError(t, err)
	n, _ := head.Column("n")
	assert.Equal(t, []any{int64(3), na.Int64}, n.Values())

	empty, err := store.Head(-1)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.RowCount())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, exportStore(t).WriteJSON(&buf, false))
	assert.JSONEq(t, `[{"n":3,"s":"c"},{"n":null,"s":"x"},{"n":1,"s":"a"}]`, buf.String())

	buf.Reset()
	require.NoError(t, exportStore(t).WriteJSON(&buf, true))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.JSONEq(t, `{"n":null,"s":"x"}`, lines[1])
}
