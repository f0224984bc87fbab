package columnar

import (
	"io"
	"math/rand"

	"github.com/ajitpratap0/serieskit/pkg/errors"
	"github.com/ajitpratap0/serieskit/pkg/json"
	"github.com/ajitpratap0/serieskit/pkg/vector"
)

// SortBy returns a new store with every column reordered by the values of
// the named column. NA placement follows vector.Sort.
func (s *ColumnStore) SortBy(name string, order vector.SortOrder) (*ColumnStore, error) {
	v, ok := s.columns[name]
	if !ok {
		return nil, errors.NoSuchElement(name)
	}
	return s.take(v.Argsort(order))
}

// Sample returns a new store holding n rows drawn without replacement from
// rng. n larger than the row count keeps every row, shuffled.
func (s *ColumnStore) Sample(n int, rng *rand.Rand) (*ColumnStore, error) {
	perm := rng.Perm(s.rowCount)
	if n >= 0 && n < len(perm) {
		perm = perm[:n]
	}
	return s.take(perm)
}

// Head returns a new store holding the first n rows.
func (s *ColumnStore) Head(n int) (*ColumnStore, error) {
	if n > s.rowCount {
		n = s.rowCount
	}
	locs := make([]int, max(n, 0))
	for i := range locs {
		locs[i] = i
	}
	return s.take(locs)
}

func (s *ColumnStore) take(locs []int) (*ColumnStore, error) {
	out := NewColumnStore()
	for _, n := range s.names {
		if err := out.AddColumn(n, s.columns[n].Take(locs).ToOwned()); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// WriteJSON writes one JSON object per row, keyed by column name, with NA as
// null. lines selects line-delimited output instead of a single array.
func (s *ColumnStore) WriteJSON(w io.Writer, lines bool) error {
	enc, err := json.NewStreamingEncoder(w, !lines)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeIO, "failed to start JSON output")
	}
	for i := 0; i < s.rowCount; i++ {
		row := make(map[string]interface{}, len(s.names))
		for _, n := range s.names {
			row[n] = vector.JSONValue(s.columns[n].Loc().Get(i))
		}
		if err := enc.Encode(row); err != nil {
			return errors.Wrap(err, errors.ErrorTypeIO, "failed to write row").WithDetail("row", i)
		}
	}
	if err := enc.Close(); err != nil {
		return errors.Wrap(err, errors.ErrorTypeIO, "failed to finish JSON output")
	}
	return nil
}
