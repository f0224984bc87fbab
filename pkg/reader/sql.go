package reader

import (
	"context"
	"database/sql"
	"io"
	"reflect"
	"time"

	"github.com/ajitpratap0/serieskit/pkg/errors"
)

// Rows is the subset of *sql.Rows the SQL reader uses.
type Rows interface {
	Columns() ([]string, error)
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

type columnTyper interface {
	ColumnTypes() ([]*sql.ColumnType, error)
}

// SQLReader reads entries from a database/sql result set. NULL reads as NA.
type SQLReader struct {
	rows    Rows
	columns []string
	types   []reflect.Type
}

// NewSQLReader returns a reader over rows. When rows reports column types
// (as *sql.Rows does) they are exposed through Types.
func NewSQLReader(rows Rows) (*SQLReader, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeIO, "failed to read result columns")
	}
	r := &SQLReader{rows: rows, columns: columns}
	if ct, ok := rows.(columnTyper); ok {
		colTypes, err := ct.ColumnTypes()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeIO, "failed to read result column types")
		}
		r.types = make([]reflect.Type, len(colTypes))
		for i, c := range colTypes {
			r.types[i] = scanHostType(c.ScanType())
		}
	}
	return r, nil
}

// Next implements EntryReader.
func (r *SQLReader) Next(ctx context.Context) (DataEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !r.rows.Next() {
		if err := r.rows.Err(); err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeIO, "failed to read result row")
		}
		return nil, io.EOF
	}
	values := make([]any, len(r.columns))
	dest := make([]any, len(r.columns))
	for i := range values {
		dest[i] = &values[i]
	}
	if err := r.rows.Scan(dest...); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeIO, "failed to scan result row")
	}
	return NewEntry(values...), nil
}

// Columns implements EntryReader.
func (r *SQLReader) Columns() []string { return r.columns }

// Types implements EntryReader.
func (r *SQLReader) Types() []reflect.Type { return r.types }

// Close implements EntryReader.
func (r *SQLReader) Close() error { return r.rows.Close() }

var (
	anyType    = reflect.TypeOf((*any)(nil)).Elem()
	stringType = reflect.TypeOf("")
)

// scanHostType unwraps the nullable wrappers drivers report as scan types.
func scanHostType(t reflect.Type) reflect.Type {
	switch t {
	case nil:
		return anyType
	case reflect.TypeOf(sql.NullInt64{}):
		return reflect.TypeOf(int64(0))
	case reflect.TypeOf(sql.NullInt32{}):
		return reflect.TypeOf(int32(0))
	case reflect.TypeOf(sql.NullInt16{}):
		return reflect.TypeOf(int16(0))
	case reflect.TypeOf(sql.NullByte{}):
		return reflect.TypeOf(uint8(0))
	case reflect.TypeOf(sql.NullFloat64{}):
		return reflect.TypeOf(float64(0))
	case reflect.TypeOf(sql.NullBool{}):
		return reflect.TypeOf(false)
	case reflect.TypeOf(sql.NullString{}), reflect.TypeOf(sql.RawBytes{}), reflect.TypeOf([]byte{}):
		return stringType
	case reflect.TypeOf(sql.NullTime{}):
		return reflect.TypeOf(time.Time{})
	}
	return t
}
