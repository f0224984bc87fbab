package arrowconv

import (
	"bytes"
	"io"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/ajitpratap0/serieskit/pkg/columnar"
	"github.com/ajitpratap0/serieskit/pkg/errors"
	"github.com/ajitpratap0/serieskit/pkg/vector"
)

// Schema returns the Arrow schema of s. Every field is nullable.
func Schema(s *columnar.ColumnStore) *arrow.Schema {
	fields := make([]arrow.Field, 0, s.ColumnCount())
	for _, f := range s.Schema() {
		fields = append(fields, arrow.Field{
			Name:     f.Name,
			Type:     DataType(f.Type),
			Nullable: true,
		})
	}
	return arrow.NewSchema(fields, nil)
}

// Record copies s into one Arrow record. The caller must Release it.
func Record(s *columnar.ColumnStore, mem memory.Allocator) (arrow.Record, error) {
	schema := Schema(s)
	cols := make([]arrow.Array, 0, s.ColumnCount())
	defer func() {
		for _, c := range cols {
			c.Release()
		}
	}()

	for _, name := range s.ColumnNames() {
		v, err := s.Column(name)
		if err != nil {
			return nil, err
		}
		cols = append(cols, ToArrow(v, mem))
	}
	return array.NewRecord(schema, cols, int64(s.RowCount())), nil
}

// WriteIPC writes s to w as an Arrow IPC file holding a single record batch.
func WriteIPC(w io.Writer, s *columnar.ColumnStore, mem memory.Allocator) error {
	if mem == nil {
		mem = memory.DefaultAllocator
	}
	rec, err := Record(s, mem)
	if err != nil {
		return err
	}
	defer rec.Release()

	fw, err := ipc.NewFileWriter(w, ipc.WithSchema(rec.Schema()), ipc.WithAllocator(mem))
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeIO, "failed to create arrow writer")
	}
	if err := fw.Write(rec); err != nil {
		_ = fw.Close()
		return errors.Wrap(err, errors.ErrorTypeIO, "failed to write record batch")
	}
	if err := fw.Close(); err != nil {
		return errors.Wrap(err, errors.ErrorTypeIO, "failed to close arrow writer")
	}
	return nil
}

// ReadIPC reads an Arrow IPC file into a new store, concatenating its record
// batches.
func ReadIPC(r io.Reader, mem memory.Allocator) (*columnar.ColumnStore, error) {
	if mem == nil {
		mem = memory.DefaultAllocator
	}
	// the file format needs random access
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeIO, "failed to read arrow data")
	}
	fr, err := ipc.NewFileReader(bytes.NewReader(data), ipc.WithAllocator(mem))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeIO, "failed to open arrow file")
	}
	defer fr.Close()

	fields := fr.Schema().Fields()
	columns := make([]*vector.Vector, len(fields))
	for batch := 0; batch < fr.NumRecords(); batch++ {
		rec, err := fr.Record(batch)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeIO, "failed to read record batch").
				WithDetail("batch", batch)
		}
		for i := range fields {
			v, err := FromArrow(rec.Column(i))
			if err != nil {
				return nil, errors.Wrap(err, errors.ErrorTypeData, "failed to convert column").
					WithDetail("column", fields[i].Name)
			}
			if columns[i] == nil {
				columns[i] = v
				continue
			}
			if columns[i], err = vector.Combine(columns[i], v); err != nil {
				return nil, err
			}
		}
	}

	store := columnar.NewColumnStore()
	for i, f := range fields {
		v := columns[i]
		if v == nil {
			t, err := typeOf(f.Type)
			if err != nil {
				return nil, err
			}
			v = vector.Empty(t)
		}
		if err := store.AddColumn(f.Name, v); err != nil {
			return nil, err
		}
	}
	return store, nil
}
