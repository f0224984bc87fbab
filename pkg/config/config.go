package config

import (
	"math/rand"
	"time"
	"unicode/utf8"

	"github.com/ajitpratap0/serieskit/pkg/errors"
	"github.com/ajitpratap0/serieskit/pkg/logger"
	"github.com/ajitpratap0/serieskit/pkg/reader"
	"github.com/ajitpratap0/serieskit/pkg/tracing"
	"github.com/ajitpratap0/serieskit/pkg/vector"
)

// Config is the complete serieskit configuration. It is passed explicitly to
// the components that need it; there is no process-wide instance.
type Config struct {
	// Seed drives Shuffle and any other randomised operation. Zero seeds
	// from the clock.
	Seed int64 `yaml:"seed" mapstructure:"seed"`
	// MissingToken is the text that reads as NA in text sources.
	MissingToken string `yaml:"missing_token" mapstructure:"missing_token"`

	// Logging configures the zap logger
	Logging logger.Config `yaml:"logging" mapstructure:"logging"`

	// Tracing configures OpenTelemetry span export
	Tracing tracing.Config `yaml:"tracing" mapstructure:"tracing"`

	// Ingest controls how sources are read into columns
	Ingest IngestConfig `yaml:"ingest" mapstructure:"ingest"`

	// Export controls how column stores are written out
	Export ExportConfig `yaml:"export" mapstructure:"export"`
}

// IngestConfig contains settings for reading sources.
type IngestConfig struct {
	// Delimiter separates CSV fields; a single character
	Delimiter string `yaml:"delimiter" mapstructure:"delimiter"`
	// HasHeader treats the first CSV record as column names
	HasHeader bool `yaml:"has_header" mapstructure:"has_header"`
	// Infer ignores types declared by the source
	Infer bool `yaml:"infer" mapstructure:"infer"`
	// Types pins columns to a type by name (e.g. price: double)
	Types map[string]string `yaml:"types" mapstructure:"types"`
}

// ExportConfig contains settings for writing stores.
type ExportConfig struct {
	// Format is json, arrow or avro
	Format string `yaml:"format" mapstructure:"format"`
	// Compression is none, gzip, zstd or lz4
	Compression string `yaml:"compression" mapstructure:"compression"`
	// CompressionLevel is passed to the codec; zero picks its default
	CompressionLevel int `yaml:"compression_level" mapstructure:"compression_level"`
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		MissingToken: reader.DefaultMissingToken,
		Logging:      logger.DefaultConfig(),
		Tracing:      tracing.DefaultConfig(),
		Ingest: IngestConfig{
			Delimiter: ",",
			HasHeader: true,
		},
		Export: ExportConfig{
			Format:      "json",
			Compression: "none",
		},
	}
}

var (
	exportFormats = map[string]bool{"json": true, "arrow": true, "avro": true}
	codecs        = map[string]bool{"none": true, "gzip": true, "zstd": true, "lz4": true}
)

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.MissingToken == "" {
		return errors.New(errors.ErrorTypeConfig, "missing_token is required")
	}
	if utf8.RuneCountInString(c.Ingest.Delimiter) != 1 {
		return errors.Newf(errors.ErrorTypeConfig, "ingest.delimiter must be a single character, got %q", c.Ingest.Delimiter)
	}
	if c.Tracing.SamplingRate < 0 || c.Tracing.SamplingRate > 1 {
		return errors.Newf(errors.ErrorTypeConfig, "tracing.sampling_rate must be between 0 and 1, got %g", c.Tracing.SamplingRate)
	}
	if _, err := c.ColumnTypes(); err != nil {
		return err
	}
	if !exportFormats[c.Export.Format] {
		return errors.Newf(errors.ErrorTypeConfig, "unknown export.format %q", c.Export.Format)
	}
	if !codecs[c.Export.Compression] {
		return errors.Newf(errors.ErrorTypeConfig, "unknown export.compression %q", c.Export.Compression)
	}
	if c.Export.CompressionLevel < 0 {
		return errors.New(errors.ErrorTypeConfig, "export.compression_level cannot be negative")
	}
	return nil
}

// ColumnTypes parses Ingest.Types.
func (c *Config) ColumnTypes() (map[string]vector.Type, error) {
	if len(c.Ingest.Types) == 0 {
		return nil, nil
	}
	types := make(map[string]vector.Type, len(c.Ingest.Types))
	for column, name := range c.Ingest.Types {
		t, err := vector.ParseType(name)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeConfig, "invalid ingest.types entry").
				WithDetail("column", column)
		}
		types[column] = t
	}
	return types, nil
}

// CSVOptions returns the reader options described by the configuration.
func (c *Config) CSVOptions() reader.CSVOptions {
	opts := reader.DefaultCSVOptions()
	if r, _ := utf8.DecodeRuneInString(c.Ingest.Delimiter); r != utf8.RuneError {
		opts.Delimiter = r
	}
	opts.HasHeader = c.Ingest.HasHeader
	opts.MissingToken = c.MissingToken
	return opts
}

// NewRand returns a random source seeded from Seed.
func (c *Config) NewRand() *rand.Rand {
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed)) //nolint:gosec // not used for security
}
