package reader

import (
	"context"
	"fmt"
	"io"
	"reflect"
)

// StringReader reads entries from in-memory text rows.
type StringReader struct {
	columns []string
	rows    [][]string
	missing string
	pos     int
}

// NewStringReader returns a reader over rows. Column names default to V1,
// V2, ... when columns is nil.
func NewStringReader(columns []string, rows [][]string, missing string) *StringReader {
	if columns == nil && len(rows) > 0 {
		columns = defaultColumns(len(rows[0]))
	}
	return &StringReader{columns: columns, rows: rows, missing: missing}
}

// Next implements EntryReader.
func (r *StringReader) Next(ctx context.Context) (DataEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.pos >= len(r.rows) {
		return nil, io.EOF
	}
	row := r.rows[r.pos]
	r.pos++
	return NewTextEntry(r.missing, row...), nil
}

// Columns implements EntryReader.
func (r *StringReader) Columns() []string { return r.columns }

// Types implements EntryReader. Text rows carry no declared types.
func (r *StringReader) Types() []reflect.Type { return nil }

// Close implements EntryReader.
func (r *StringReader) Close() error { return nil }

func defaultColumns(n int) []string {
	cols := make([]string, n)
	for i := range cols {
		cols[i] = fmt.Sprintf("V%d", i+1)
	}
	return cols
}
