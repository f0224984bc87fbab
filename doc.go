// Package serieskit provides typed, missing-value-aware columns for Go.
//
// A Vector is an ordered sequence of values of one element type, addressed
// either by position or by a key through its Index. Every element type has a
// reserved NA (missing) value, so missing data is stored inline rather than
// in a separate validity mask.
//
// # Architecture
//
// serieskit is layered bottom-up:
//
// 1. NA codec (pkg/na): sentinel encodings for missing values of each host
// type. Floating NA is a NaN with a reserved payload, so ordinary NaN stays
// distinct from NA.
//
// 2. Type registry (pkg/vector): Object, Logical, Int, Long, Float, Double,
// Complex and String, with a promotion lattice used during inference.
//
// 3. Index (pkg/index): Range for the positional case and Hash for arbitrary
// keys. Index builders stay in range mode until a key breaks the sequence.
//
// 4. Builders and vectors (pkg/vector): builders grow storage, infer and
// promote types, and produce Vectors. Vectors are either owned or views onto
// another vector's storage.
//
// 5. Sources and sinks: readers for CSV, database/sql and pgx (pkg/reader),
// a named column store (pkg/columnar), Arrow and Avro conversion
// (pkg/arrowconv, pkg/avroconv) and compressed export (pkg/compression).
//
// # Quick Start
//
// Build a vector by inference:
//
//	b := vector.NewInferringBuilder()
//	_ = b.Add(int32(1))
//	_ = b.AddNA()
//	_ = b.Add(2.5)
//	v, _ := b.Build() // double[3]{1, NA, 2.5}
//
//	sorted := v.Sort(vector.Ascending) // NA last
//
// Load a CSV file into typed columns:
//
//	r, _ := reader.NewCSVReader(f, reader.CSVOptions{HasHeader: true})
//	store, _ := columnar.Load(ctx, r, columnar.LoadOptions{Infer: true})
//	price, _ := store.Column("price")
//
// # Key Packages
//
//	pkg/na          - NA sentinels and the Logical type
//	pkg/index       - Range and Hash indexes with builders
//	pkg/vector      - Types, builders, vectors, sorting and factorizing
//	pkg/reader      - Data entries from CSV, SQL and pgx rows
//	pkg/columnar    - Named columns loaded from a reader
//	pkg/arrowconv   - Conversion to and from Apache Arrow
//	pkg/avroconv    - Avro object container files
//	pkg/compression - gzip, zstd and lz4 stream wrappers
//	pkg/config      - YAML and environment configuration
//	pkg/errors      - Structured error handling
//	pkg/logger      - Structured logging with zap
//	pkg/metrics     - Load metrics for Prometheus
//	pkg/tracing     - OpenTelemetry spans for loads and exports
//
// # Command Line
//
// cmd/serieskit inspects and converts CSV files and SQL query results:
//
//	serieskit inspect prices.csv --sort price
//	serieskit export prices.csv --format arrow --compress zstd -o prices.arrow.zst
//	serieskit export prices.csv --format avro -o prices.avro
//	serieskit query --driver pgx --dsn "$DATABASE_URL" --sql "select * from prices"
//
// # Configuration
//
// Configuration is read from YAML with ${VAR_NAME} substitution, and any key
// can be overridden with a SERIESKIT_ environment variable:
//
//	SERIESKIT_EXPORT_COMPRESSION=zstd serieskit export prices.csv
package serieskit
