// Package reader adapts external row sources to NA-aware field reads.
//
// An EntryReader yields one DataEntry per external row. A DataEntry hands out
// the row's fields left to right, either as the most specific host value
// (Next) or converted to a requested kind (NextDouble, NextInt, ...). The
// missing token of text sources and SQL NULL both read as NA, and text that
// does not parse as the requested kind reads as NA rather than failing.
package reader

import (
	"context"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/ajitpratap0/serieskit/pkg/convert"
	"github.com/ajitpratap0/serieskit/pkg/errors"
	"github.com/ajitpratap0/serieskit/pkg/na"
)

// DefaultMissingToken is the text that denotes a missing field.
const DefaultMissingToken = "?"

// DataEntry is one external row read field by field.
type DataEntry interface {
	// HasNext reports whether fields remain.
	HasNext() bool
	// Next returns the next field as its most specific host value, nil for NA.
	Next() (any, error)
	// NextString returns the next field as text and false when it is NA.
	NextString() (string, bool)
	NextInt() int32
	NextLong() int64
	NextFloat() float32
	NextDouble() float64
	NextLogical() na.Logical
	NextComplex() complex128
	// NextAs returns the next field converted to host type t.
	NextAs(t reflect.Type) (any, error)
	// Skip discards the next field.
	Skip()
	// Len returns the number of fields.
	Len() int
}

// EntryReader produces entries until it returns io.EOF.
type EntryReader interface {
	Next(ctx context.Context) (DataEntry, error)
	// Columns returns the column names.
	Columns() []string
	// Types returns the host type of each column, or nil when the source
	// does not declare them.
	Types() []reflect.Type
	Close() error
}

// Entry is a DataEntry over an in-memory row. Fields added as text are
// parsed on read; other fields, plain strings included, are already typed.
type Entry struct {
	fields  []any
	pos     int
	missing string
}

// raw is a text field that has not been parsed yet.
type raw string

// NewEntry returns an entry over typed fields. []byte fields are treated as
// unparsed text.
func NewEntry(fields ...any) *Entry {
	for i, f := range fields {
		if b, ok := f.([]byte); ok {
			fields[i] = raw(b)
		}
	}
	return &Entry{fields: fields}
}

// NewTextEntry returns an entry over text fields using missing as the
// missing token.
func NewTextEntry(missing string, fields ...string) *Entry {
	values := make([]any, len(fields))
	for i, f := range fields {
		values[i] = raw(f)
	}
	return &Entry{fields: values, missing: missing}
}

// NewStringEntry returns an entry over text fields with the default missing
// token.
func NewStringEntry(fields ...string) *Entry {
	return NewTextEntry(DefaultMissingToken, fields...)
}

// HasNext implements DataEntry.
func (e *Entry) HasNext() bool { return e.pos < len(e.fields) }

// Len implements DataEntry.
func (e *Entry) Len() int { return len(e.fields) }

// Skip implements DataEntry.
func (e *Entry) Skip() {
	if e.HasNext() {
		e.pos++
	}
}

func (e *Entry) field() (any, bool) {
	if !e.HasNext() {
		return nil, false
	}
	f := e.fields[e.pos]
	e.pos++
	return f, true
}

// text returns the trimmed text of a textual field. ok is false for
// non-text fields; present is false for blank or missing text.
func (e *Entry) text(f any) (s string, ok, present bool) {
	switch x := f.(type) {
	case raw:
		s = string(x)
	case string:
		s = x
	default:
		return "", false, false
	}
	s = strings.TrimSpace(s)
	return s, true, s != "" && s != e.missing
}

// Next implements DataEntry.
func (e *Entry) Next() (any, error) {
	f, ok := e.field()
	if !ok {
		return nil, errors.OutOfRange(e.pos, len(e.fields))
	}
	if r, isRaw := f.(raw); isRaw {
		return ParseText(string(r), e.missing), nil
	}
	if na.Is(f) {
		return nil, nil
	}
	return f, nil
}

// NextString implements DataEntry.
func (e *Entry) NextString() (string, bool) {
	f, ok := e.field()
	if !ok || na.Is(f) {
		return "", false
	}
	switch x := f.(type) {
	case raw:
		if _, _, present := e.text(f); !present {
			return "", false
		}
		return string(x), true
	case string:
		return x, true
	}
	return fmt.Sprint(f), true
}

// NextInt implements DataEntry.
func (e *Entry) NextInt() int32 {
	f, _ := e.field()
	if s, isText, present := e.text(f); isText {
		if present {
			if i, err := strconv.ParseInt(s, 10, 32); err == nil {
				return int32(i)
			}
		}
		return na.Int32
	}
	if i, ok := convert.ToInt32(f); ok {
		return i
	}
	return na.Int32
}

// NextLong implements DataEntry.
func (e *Entry) NextLong() int64 {
	f, _ := e.field()
	if s, isText, present := e.text(f); isText {
		if present {
			if i, err := strconv.ParseInt(s, 10, 64); err == nil {
				return i
			}
		}
		return na.Int64
	}
	if i, ok := convert.ToInt64(f); ok {
		return i
	}
	return na.Int64
}

// NextFloat implements DataEntry.
func (e *Entry) NextFloat() float32 {
	f, _ := e.field()
	if s, isText, present := e.text(f); isText {
		if present {
			if x, err := strconv.ParseFloat(s, 32); err == nil {
				return float32(x)
			}
		}
		return na.Float32
	}
	if x, ok := convert.ToFloat32(f); ok {
		return x
	}
	return na.Float32
}

// NextDouble implements DataEntry.
func (e *Entry) NextDouble() float64 {
	f, _ := e.field()
	if s, isText, present := e.text(f); isText {
		if present {
			if x, err := strconv.ParseFloat(s, 64); err == nil {
				return x
			}
		}
		return na.Float64
	}
	if x, ok := convert.ToFloat64(f); ok {
		return x
	}
	return na.Float64
}

// NextLogical implements DataEntry.
func (e *Entry) NextLogical() na.Logical {
	f, _ := e.field()
	if s, isText, present := e.text(f); isText {
		if present {
			if b, err := strconv.ParseBool(s); err == nil {
				return na.FromBool(b)
			}
		}
		return na.LogicalNA
	}
	if l, ok := convert.ToLogical(f); ok {
		return l
	}
	return na.LogicalNA
}

// NextComplex implements DataEntry.
func (e *Entry) NextComplex() complex128 {
	f, _ := e.field()
	if s, isText, present := e.text(f); isText {
		if present {
			if c, err := strconv.ParseComplex(s, 128); err == nil {
				return c
			}
		}
		return na.Complex128
	}
	if c, ok := convert.ToComplex128(f); ok {
		return c
	}
	return na.Complex128
}

// NextAs implements DataEntry.
func (e *Entry) NextAs(t reflect.Type) (any, error) {
	v, err := e.Next()
	if err != nil {
		return nil, err
	}
	return convert.To(t, v)
}

// ParseText returns the most specific value text denotes: nil for the
// missing token or blank text, then a Logical, int32, int64 or float64, and
// otherwise the text itself.
func ParseText(text, missing string) any {
	s := strings.TrimSpace(text)
	if s == "" || s == missing {
		return nil
	}
	switch {
	case strings.EqualFold(s, "true"):
		return na.True
	case strings.EqualFold(s, "false"):
		return na.False
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		if i > math.MinInt32 && i <= math.MaxInt32 {
			return int32(i)
		}
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return text
}
