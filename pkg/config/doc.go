// Package config provides the serieskit configuration.
//
// The configuration is organized into sections:
//   - seed and missing_token: randomisation and the NA token of text sources
//   - logging: zap logger settings
//   - tracing: OpenTelemetry span export and sampling
//   - ingest: CSV delimiter, header handling, inference and pinned column types
//   - export: output format (json, arrow, avro) and compression
//
// Configuration is read from YAML with ${VAR} substitution and then
// overridden from SERIESKIT_* environment variables:
//
//	seed: 42
//	missing_token: "?"
//	logging:
//	  level: debug
//	tracing:
//	  enabled: true
//	  sampling_rate: 0.5
//	ingest:
//	  delimiter: ";"
//	  types:
//	    price: double
//	export:
//	  format: arrow
//	  compression: zstd
//
// Example usage:
//
//	cfg, err := config.Load("serieskit.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	shuffled := v.Shuffle(cfg.NewRand())
package config
