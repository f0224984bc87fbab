package reader

import (
	"context"
	"encoding/csv"
	"io"
	"reflect"

	"go.uber.org/zap"

	"github.com/ajitpratap0/serieskit/pkg/errors"
)

// CSVOptions configures a CSVReader.
type CSVOptions struct {
	Delimiter    rune
	HasHeader    bool
	MissingToken string
	Logger       *zap.Logger
}

// DefaultCSVOptions returns comma-separated input with a header row and the
// default missing token.
func DefaultCSVOptions() CSVOptions {
	return CSVOptions{
		Delimiter:    ',',
		HasHeader:    true,
		MissingToken: DefaultMissingToken,
	}
}

// CSVReader reads entries from delimited text.
type CSVReader struct {
	reader  *csv.Reader
	closer  io.Closer
	columns []string
	missing string
	line    int
	pending []string
	logger  *zap.Logger
}

// NewCSVReader returns a reader over r. The header, when present, is read
// eagerly so that Columns is available before the first entry. If r is an
// io.Closer, Close closes it.
func NewCSVReader(r io.Reader, opts CSVOptions) (*CSVReader, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // Allow variable number of fields
	if opts.Delimiter != 0 {
		cr.Comma = opts.Delimiter
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &CSVReader{reader: cr, missing: opts.MissingToken, logger: logger}
	if closer, ok := r.(io.Closer); ok {
		c.closer = closer
	}

	first, err := cr.Read()
	if err == io.EOF {
		return c, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeIO, "failed to read CSV header")
	}
	c.line++
	if opts.HasHeader {
		c.columns = first
	} else {
		c.columns = defaultColumns(len(first))
		c.pending = first
	}
	return c, nil
}

// Next implements EntryReader.
func (c *CSVReader) Next(ctx context.Context) (DataEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	record := c.pending
	c.pending = nil
	if record == nil {
		var err error
		record, err = c.reader.Read()
		if err == io.EOF {
			return nil, io.EOF
		}
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeIO, "failed to read CSV record").
				WithDetail("line", c.line+1)
		}
		c.line++
	}
	if len(record) != len(c.columns) {
		c.logger.Debug("ragged CSV record",
			zap.Int("line", c.line),
			zap.Int("fields", len(record)),
			zap.Int("columns", len(c.columns)))
	}
	return NewTextEntry(c.missing, record...), nil
}

// Columns implements EntryReader.
func (c *CSVReader) Columns() []string { return c.columns }

// Types implements EntryReader. CSV declares no types.
func (c *CSVReader) Types() []reflect.Type { return nil }

// Close implements EntryReader.
func (c *CSVReader) Close() error {
	if c.closer != nil {
		return c.closer.Close()
	}
	return nil
}
