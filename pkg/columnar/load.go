package columnar

import (
	"context"
	"io"
	"reflect"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/ajitpratap0/serieskit/pkg/errors"
	"github.com/ajitpratap0/serieskit/pkg/metrics"
	"github.com/ajitpratap0/serieskit/pkg/reader"
	"github.com/ajitpratap0/serieskit/pkg/tracing"
	"github.com/ajitpratap0/serieskit/pkg/vector"
)

// LoadOptions configures Load.
type LoadOptions struct {
	// Types pins named columns to a Type, overriding the reader.
	Types map[string]vector.Type
	// Infer ignores the types the reader declares and infers every column
	// not named in Types.
	Infer   bool
	Logger  *zap.Logger
	Metrics *metrics.Collector
	// Tracer records a span per load; nil disables tracing.
	Tracer trace.Tracer
}

// Load reads every entry of r into a new store, one builder per column.
// Columns are pinned to the Type the reader declares (or Types names) and
// inferred otherwise. Short entries pad with NA; surplus fields are ignored.
func Load(ctx context.Context, r reader.EntryReader, opts LoadOptions) (_ *ColumnStore, err error) {
	tracer := opts.Tracer
	if tracer == nil {
		tracer = tracing.Tracer(nil)
	}
	ctx, span := tracer.Start(ctx, "columnar.Load",
		trace.WithAttributes(attribute.Int("columns", len(r.Columns()))))
	defer func() { tracing.End(span, err) }()

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	timer := metrics.NewTimer()

	names := r.Columns()
	declared := r.Types()
	builders := make([]*vector.Builder, len(names))
	for i, name := range names {
		builders[i] = newColumnBuilder(name, i, declared, opts, logger)
	}

	rows := 0
	for {
		entry, err := r.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		for i, b := range builders {
			if !entry.HasNext() {
				err = b.AddNA()
			} else {
				err = b.Read(entry)
			}
			if err != nil {
				return nil, errors.Wrap(err, errors.ErrorTypeData, "failed to load field").
					WithDetail("column", names[i]).
					WithDetail("row", rows)
			}
		}
		rows++
	}

	store := NewColumnStore()
	nas, promotions := 0, 0
	for i, b := range builders {
		promotions += b.Promotions()
		v, err := b.Build()
		if err != nil {
			return nil, err
		}
		nas += v.CountNA()
		if err := store.AddColumn(names[i], v); err != nil {
			return nil, err
		}
	}

	span.SetAttributes(
		attribute.Int("rows", rows),
		attribute.Int("na_values", nas),
		attribute.Int("promotions", promotions))

	elapsed := timer.Stop()
	opts.Metrics.EntriesRead(rows)
	opts.Metrics.NAValues(nas)
	opts.Metrics.Promotions(promotions)
	opts.Metrics.Columns(len(names))
	opts.Metrics.ObserveLoad(elapsed)

	logger.Info("loaded columns",
		zap.Int("rows", rows),
		zap.Int("columns", len(names)),
		zap.Int("na_values", nas),
		zap.Int("promotions", promotions),
		zap.Duration("elapsed", elapsed))
	return store, nil
}

func newColumnBuilder(name string, i int, declared []reflect.Type, opts LoadOptions, logger *zap.Logger) *vector.Builder {
	withLogger := vector.WithLogger(logger.With(zap.String("column", name)))
	if t, ok := opts.Types[name]; ok {
		return t.NewBuilder(withLogger)
	}
	if !opts.Infer && i < len(declared) {
		return vector.Resolve(declared[i]).NewBuilder(withLogger)
	}
	return vector.NewInferringBuilder(withLogger)
}
