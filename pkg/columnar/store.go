package columnar

import (
	"github.com/ajitpratap0/serieskit/pkg/errors"
	"github.com/ajitpratap0/serieskit/pkg/vector"
)

// Field describes one column of a store.
type Field struct {
	Name string
	Type vector.Type
}

// ColumnStore holds named vectors of equal length in insertion order. The
// store owns its columns: vectors passed in are copied unless Transferable,
// and vectors handed out are views. A ColumnStore is not safe for concurrent
// use.
type ColumnStore struct {
	names    []string
	columns  map[string]*vector.Vector
	rowCount int
}

// NewColumnStore creates an empty store
func NewColumnStore() *ColumnStore {
	return &ColumnStore{
		columns: make(map[string]*vector.Vector),
	}
}

// AddColumn adds v under name. The first column fixes the row count; later
// columns must match it.
func (s *ColumnStore) AddColumn(name string, v *vector.Vector) error {
	if _, exists := s.columns[name]; exists {
		return errors.Newf(errors.ErrorTypeConflict, "column %q already exists", name)
	}
	if len(s.names) > 0 && v.Len() != s.rowCount {
		return errors.SizeMismatch(s.rowCount, v.Len()).WithDetail("column", name)
	}
	if !v.Transferable() {
		v = v.ToOwned()
	}
	s.names = append(s.names, name)
	s.columns[name] = v
	s.rowCount = v.Len()
	return nil
}

// Column returns a view of the named column. Writes through the view reach
// the store; builders derived from it copy.
func (s *ColumnStore) Column(name string) (*vector.Vector, error) {
	v, ok := s.columns[name]
	if !ok {
		return nil, errors.NoSuchElement(name)
	}
	return v.WithIndex(v.Index())
}

// Owned returns an independent copy of the named column.
func (s *ColumnStore) Owned(name string) (*vector.Vector, error) {
	v, ok := s.columns[name]
	if !ok {
		return nil, errors.NoSuchElement(name)
	}
	return v.ToOwned(), nil
}

// DropColumn removes the named column.
func (s *ColumnStore) DropColumn(name string) error {
	if _, ok := s.columns[name]; !ok {
		return errors.NoSuchElement(name)
	}
	delete(s.columns, name)
	for i, n := range s.names {
		if n == name {
			s.names = append(s.names[:i], s.names[i+1:]...)
			break
		}
	}
	if len(s.names) == 0 {
		s.rowCount = 0
	}
	return nil
}

// Schema returns the name and Type of every column in order.
func (s *ColumnStore) Schema() []Field {
	fields := make([]Field, len(s.names))
	for i, n := range s.names {
		fields[i] = Field{Name: n, Type: s.columns[n].Type()}
	}
	return fields
}

// ColumnNames returns the column names in insertion order.
func (s *ColumnStore) ColumnNames() []string {
	return append([]string(nil), s.names...)
}

// RowCount returns the number of rows
func (s *ColumnStore) RowCount() int { return s.rowCount }

// ColumnCount returns the number of columns
func (s *ColumnStore) ColumnCount() int { return len(s.names) }

// GetRow returns row i keyed by column name. NA is the column Type's NA.
func (s *ColumnStore) GetRow(i int) (map[string]interface{}, error) {
	if i < 0 || i >= s.rowCount {
		return nil, errors.OutOfRange(i, s.rowCount)
	}
	row := make(map[string]interface{}, len(s.names))
	for _, n := range s.names {
		row[n] = s.columns[n].Loc().Get(i)
	}
	return row, nil
}

// Iterator provides sequential access to rows
type Iterator struct {
	store  *ColumnStore
	index  int
	buffer []interface{}
}

// NewIterator creates a new iterator over the store
func (s *ColumnStore) NewIterator() *Iterator {
	return &Iterator{
		store:  s,
		index:  -1,
		buffer: make([]interface{}, len(s.names)),
	}
}

// Next advances to the next row
func (it *Iterator) Next() bool {
	it.index++
	return it.index < it.store.rowCount
}

// Row returns the current row in column order. The slice is reused by the
// next call.
func (it *Iterator) Row() []interface{} {
	for c, n := range it.store.names {
		it.buffer[c] = it.store.columns[n].Loc().Get(it.index)
	}
	return it.buffer
}
