package reader

import (
	"context"
	"io"
	"reflect"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/ajitpratap0/serieskit/pkg/errors"
)

// PgxReader reads entries from a pgx result set. Column types come from the
// PostgreSQL type OIDs of the result fields.
type PgxReader struct {
	rows    pgx.Rows
	columns []string
	types   []reflect.Type
}

// NewPgxReader returns a reader over rows.
func NewPgxReader(rows pgx.Rows) *PgxReader {
	fields := rows.FieldDescriptions()
	r := &PgxReader{
		rows:    rows,
		columns: make([]string, len(fields)),
		types:   make([]reflect.Type, len(fields)),
	}
	for i, fd := range fields {
		r.columns[i] = fd.Name
		r.types[i] = oidHostType(fd.DataTypeOID)
	}
	return r
}

// Next implements EntryReader.
func (r *PgxReader) Next(ctx context.Context) (DataEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !r.rows.Next() {
		if err := r.rows.Err(); err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeIO, "failed to read result row")
		}
		return nil, io.EOF
	}
	values, err := r.rows.Values()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "failed to get row values")
	}
	for i, v := range values {
		values[i] = pgValue(v)
	}
	return NewEntry(values...), nil
}

// Columns implements EntryReader.
func (r *PgxReader) Columns() []string { return r.columns }

// Types implements EntryReader.
func (r *PgxReader) Types() []reflect.Type { return r.types }

// Close implements EntryReader.
func (r *PgxReader) Close() error {
	r.rows.Close()
	return r.rows.Err()
}

func oidHostType(oid uint32) reflect.Type {
	switch oid {
	case pgtype.Int2OID:
		return reflect.TypeOf(int16(0))
	case pgtype.Int4OID:
		return reflect.TypeOf(int32(0))
	case pgtype.Int8OID:
		return reflect.TypeOf(int64(0))
	case pgtype.Float4OID:
		return reflect.TypeOf(float32(0))
	case pgtype.Float8OID, pgtype.NumericOID:
		return reflect.TypeOf(float64(0))
	case pgtype.BoolOID:
		return reflect.TypeOf(false)
	case pgtype.TextOID, pgtype.VarcharOID, pgtype.BPCharOID, pgtype.NameOID:
		return stringType
	case pgtype.DateOID, pgtype.TimestampOID, pgtype.TimestamptzOID:
		return reflect.TypeOf(time.Time{})
	}
	return anyType
}

// pgValue converts decoded values without a native column kind.
func pgValue(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case pgtype.Numeric:
		if !x.Valid {
			return nil
		}
		f, err := x.Float64Value()
		if err != nil || !f.Valid {
			return nil
		}
		return f.Float64
	case []byte:
		return string(x)
	}
	return v
}
