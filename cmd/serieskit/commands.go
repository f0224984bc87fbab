package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/ajitpratap0/serieskit/pkg/arrowconv"
	"github.com/ajitpratap0/serieskit/pkg/avroconv"
	"github.com/ajitpratap0/serieskit/pkg/columnar"
	"github.com/ajitpratap0/serieskit/pkg/compression"
	"github.com/ajitpratap0/serieskit/pkg/errors"
	"github.com/ajitpratap0/serieskit/pkg/logger"
	"github.com/ajitpratap0/serieskit/pkg/metrics"
	"github.com/ajitpratap0/serieskit/pkg/na"
	"github.com/ajitpratap0/serieskit/pkg/reader"
	"github.com/ajitpratap0/serieskit/pkg/tracing"
	"github.com/ajitpratap0/serieskit/pkg/vector"
)

func newInspectCmd(flags *globalFlags) *cobra.Command {
	var rows int
	var sortBy string
	var descending bool

	cmd := &cobra.Command{
		Use:   "inspect <file.csv>",
		Short: "Show the inferred schema, the first rows and load metrics of a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			s, err := flags.setup()
			if err != nil {
				return err
			}
			defer s.close()

			ctx, span := s.tracer.Start(s.withLogger(cmd.Context()), "serieskit.inspect",
				trace.WithAttributes(attribute.String("path", args[0])))
			defer func() { tracing.End(span, err) }()

			store, err := s.loadCSV(ctx, args[0])
			if err != nil {
				return err
			}
			if sortBy != "" {
				order := vector.Ascending
				if descending {
					order = vector.Descending
				}
				if store, err = store.SortBy(sortBy, order); err != nil {
					return err
				}
			}
			if err := printStore(cmd.OutOrStdout(), store, rows); err != nil {
				return err
			}
			return printMetrics(cmd.OutOrStdout(), s.registry)
		},
	}
	cmd.Flags().IntVarP(&rows, "rows", "n", 10, "Number of rows to show")
	cmd.Flags().StringVar(&sortBy, "sort", "", "Sort rows by this column")
	cmd.Flags().BoolVar(&descending, "desc", false, "Sort descending")
	return cmd
}

func newExportCmd(flags *globalFlags) *cobra.Command {
	var format, compress, output string
	var sample int

	cmd := &cobra.Command{
		Use:   "export <file.csv>",
		Short: "Convert a CSV file to JSON, Arrow or Avro",
		Long: `Convert a CSV file to JSON, an Arrow IPC file or an Avro object container
file, optionally compressed.

Example:
  serieskit export prices.csv --format arrow --compress zstd -o prices.arrow.zst`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			s, err := flags.setup()
			if err != nil {
				return err
			}
			defer s.close()
			applyExportFlags(cmd, s, format, compress)
			if err := s.cfg.Validate(); err != nil {
				return err
			}

			ctx, span := s.tracer.Start(s.withLogger(cmd.Context()), "serieskit.export",
				trace.WithAttributes(attribute.String("path", args[0])))
			defer func() { tracing.End(span, err) }()

			store, err := s.loadCSV(ctx, args[0])
			if err != nil {
				return err
			}
			if sample > 0 {
				if store, err = store.Sample(sample, s.cfg.NewRand()); err != nil {
					return err
				}
			}
			return s.exportStore(ctx, store, output, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "Output format (json, arrow, avro)")
	cmd.Flags().StringVar(&compress, "compress", "", "Compression (none, gzip, zstd, lz4)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	cmd.Flags().IntVar(&sample, "sample", 0, "Export a random sample of this many rows (seeded by the configuration)")
	return cmd
}

func newQueryCmd(flags *globalFlags) *cobra.Command {
	var driver, dsn, query, format, compress, output string
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Run a SQL query and load its result as typed columns",
		Long: `Run a SQL query against MySQL or PostgreSQL and load the result as typed
columns. Column types come from the database; NULL becomes NA.

Example:
  serieskit query --driver pgx --dsn "$DATABASE_URL" --sql "select * from prices"`,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			s, err := flags.setup()
			if err != nil {
				return err
			}
			defer s.close()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			ctx, span := s.tracer.Start(s.withLogger(ctx), "serieskit.query",
				trace.WithAttributes(attribute.String("driver", driver)))
			defer func() { tracing.End(span, err) }()

			r, err := openQuery(ctx, driver, dsn, query)
			if err != nil {
				return err
			}
			defer r.Close()

			store, err := s.load(ctx, r, driver)
			if err != nil {
				return err
			}
			if format == "" && output == "" {
				if err := printStore(cmd.OutOrStdout(), store, 10); err != nil {
					return err
				}
				return printMetrics(cmd.OutOrStdout(), s.registry)
			}
			applyExportFlags(cmd, s, format, compress)
			if err := s.cfg.Validate(); err != nil {
				return err
			}
			return s.exportStore(ctx, store, output, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&driver, "driver", "pgx", "Database driver (mysql, pgx)")
	cmd.Flags().StringVar(&dsn, "dsn", os.Getenv("SERIESKIT_DSN"), "Data source name")
	cmd.Flags().StringVar(&query, "sql", "", "Query to run (required)")
	cmd.Flags().StringVar(&format, "format", "", "Export format (json, arrow, avro); prints a preview when unset")
	cmd.Flags().StringVar(&compress, "compress", "", "Compression (none, gzip, zstd, lz4)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "Query timeout")
	_ = cmd.MarkFlagRequired("sql")
	return cmd
}

func applyExportFlags(cmd *cobra.Command, s *session, format, compress string) {
	if cmd.Flags().Changed("format") {
		s.cfg.Export.Format = format
	}
	if cmd.Flags().Changed("compress") {
		s.cfg.Export.Compression = compress
	}
}

// openQuery runs query and returns a reader over its rows
func openQuery(ctx context.Context, driver, dsn, query string) (reader.EntryReader, error) {
	if dsn == "" {
		return nil, errors.New(errors.ErrorTypeConfig, "--dsn or SERIESKIT_DSN is required")
	}
	switch driver {
	case "pgx":
		conn, err := pgx.Connect(ctx, dsn)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeIO, "failed to connect")
		}
		rows, err := conn.Query(ctx, query)
		if err != nil {
			_ = conn.Close(ctx)
			return nil, errors.Wrap(err, errors.ErrorTypeIO, "query failed")
		}
		return &closingReader{EntryReader: reader.NewPgxReader(rows), close: func() error {
			return conn.Close(context.Background())
		}}, nil
	case "mysql":
		db, err := sql.Open("mysql", dsn)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeConfig, "invalid dsn")
		}
		rows, err := db.QueryContext(ctx, query)
		if err != nil {
			_ = db.Close()
			return nil, errors.Wrap(err, errors.ErrorTypeIO, "query failed")
		}
		r, err := reader.NewSQLReader(rows)
		if err != nil {
			_ = rows.Close()
			_ = db.Close()
			return nil, err
		}
		return &closingReader{EntryReader: r, close: db.Close}, nil
	}
	return nil, errors.Newf(errors.ErrorTypeConfig, "unknown driver %q", driver)
}

// closingReader also releases the connection behind the rows
type closingReader struct {
	reader.EntryReader
	close func() error
}

func (c *closingReader) Close() error {
	err := c.EntryReader.Close()
	if cerr := c.close(); err == nil {
		err = cerr
	}
	return err
}

func (s *session) loadCSV(ctx context.Context, path string) (*columnar.ColumnStore, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path is supplied by the operator
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeIO, "failed to open input").WithDetail("path", path)
	}
	opts := s.cfg.CSVOptions()
	opts.Logger = logger.FromContext(ctx)
	r, err := reader.NewCSVReader(f, opts)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	defer r.Close()
	return s.load(ctx, r, "csv")
}

func (s *session) load(ctx context.Context, r reader.EntryReader, source string) (*columnar.ColumnStore, error) {
	types, err := s.cfg.ColumnTypes()
	if err != nil {
		return nil, err
	}
	return columnar.Load(ctx, r, columnar.LoadOptions{
		Types:   types,
		Infer:   s.cfg.Ingest.Infer,
		Logger:  logger.FromContext(ctx).With(zap.String("source", source)),
		Metrics: metrics.NewCollector(s.registry, source),
		Tracer:  s.tracer,
	})
}

func (s *session) exportStore(ctx context.Context, store *columnar.ColumnStore, output string, stdout io.Writer) (err error) {
	cfg := s.cfg
	_, span := s.tracer.Start(ctx, "serieskit.write", trace.WithAttributes(
		attribute.String("format", cfg.Export.Format),
		attribute.String("compression", cfg.Export.Compression),
		attribute.Int("rows", store.RowCount())))
	defer func() { tracing.End(span, err) }()

	alg, err := compression.ParseAlgorithm(cfg.Export.Compression)
	if err != nil {
		return err
	}

	dst := stdout
	if output != "" {
		f, err := os.Create(output) //nolint:gosec // G304: path is supplied by the operator
		if err != nil {
			return errors.Wrap(err, errors.ErrorTypeIO, "failed to create output").WithDetail("path", output)
		}
		defer f.Close()
		dst = f
	}

	w, err := compression.NewWriter(dst, alg, compression.LevelOf(cfg.Export.CompressionLevel))
	if err != nil {
		return err
	}
	switch cfg.Export.Format {
	case "arrow":
		err = arrowconv.WriteIPC(w, store, nil)
	case "avro":
		err = avroconv.WriteOCF(w, store)
	default:
		err = store.WriteJSON(w, false)
	}
	if err != nil {
		_ = w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return errors.Wrap(err, errors.ErrorTypeIO, "failed to flush output")
	}

	logger.FromContext(ctx).Info("exported store",
		zap.String("format", cfg.Export.Format),
		zap.String("compression", string(alg)),
		zap.Int("rows", store.RowCount()),
		zap.Int("columns", store.ColumnCount()))
	return nil
}

// printMetrics prints the counters and gauges gathered from reg, and the
// sample sum of histograms, one per line.
func printMetrics(w io.Writer, reg prometheus.Gatherer) error {
	families, err := reg.Gather()
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeInternal, "failed to gather metrics")
	}
	sort.Slice(families, func(i, j int) bool { return families[i].GetName() < families[j].GetName() })

	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "METRIC\tVALUE")
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var value float64
			switch {
			case m.GetCounter() != nil:
				value = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				value = m.GetGauge().GetValue()
			case m.GetHistogram() != nil:
				value = m.GetHistogram().GetSampleSum()
			default:
				continue
			}
			fmt.Fprintf(tw, "%s\t%s\n", strings.TrimPrefix(mf.GetName(), "serieskit_"), formatValue(value))
		}
	}
	return tw.Flush()
}

func formatValue(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.4g", v)
}

func printStore(w io.Writer, store *columnar.ColumnStore, rows int) error {
	fmt.Fprintf(w, "%d rows x %d columns\n\n", store.RowCount(), store.ColumnCount())

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "COLUMN\tTYPE\tNA")
	for _, f := range store.Schema() {
		col, err := store.Column(f.Name)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\n", f.Name, f.Type, col.CountNA())
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	head, err := store.Head(rows)
	if err != nil {
		return err
	}
	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, name := range head.ColumnNames() {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, name)
	}
	fmt.Fprintln(tw)
	it := head.NewIterator()
	for it.Next() {
		for i, v := range it.Row() {
			if i > 0 {
				fmt.Fprint(tw, "\t")
			}
			fmt.Fprint(tw, na.String(v))
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}
