// Package tracing sets up OpenTelemetry tracing for loads and exports.
//
// Tracing is off unless enabled in the configuration; a disabled provider
// hands out no-op tracers, so instrumented code never checks for nil.
//
// # Basic Usage
//
//	tp, shutdown, err := tracing.NewProvider(cfg.Tracing, os.Stderr)
//	if err != nil {
//	    return err
//	}
//	defer shutdown(context.Background())
//
//	store, err := columnar.Load(ctx, r, columnar.LoadOptions{Tracer: tracing.Tracer(tp)})
package tracing

import (
	"context"
	"io"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/ajitpratap0/serieskit/pkg/errors"
)

// InstrumentationName names the tracer used by serieskit packages.
const InstrumentationName = "github.com/ajitpratap0/serieskit"

// Config contains tracing configuration
type Config struct {
	// Enabled turns span export on
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	// ServiceName is recorded as the service.name resource attribute
	ServiceName string `yaml:"service_name" mapstructure:"service_name"`
	// SamplingRate is the fraction of traces kept, from 0 to 1
	SamplingRate float64 `yaml:"sampling_rate" mapstructure:"sampling_rate"`
}

// DefaultConfig returns tracing disabled, sampling everything once enabled.
func DefaultConfig() Config {
	return Config{
		ServiceName:  "serieskit",
		SamplingRate: 1,
	}
}

// ShutdownFunc flushes and stops a provider.
type ShutdownFunc func(context.Context) error

// NewProvider returns a tracer provider writing spans to w as JSON. When
// tracing is disabled the provider is a no-op and w is never written.
func NewProvider(cfg Config, w io.Writer) (trace.TracerProvider, ShutdownFunc, error) {
	if !cfg.Enabled {
		return noop.NewTracerProvider(), func(context.Context) error { return nil }, nil
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		return nil, nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to create span exporter")
	}

	// Configure sampling
	var sampler sdktrace.Sampler
	switch {
	case cfg.SamplingRate <= 0:
		sampler = sdktrace.NeverSample()
	case cfg.SamplingRate >= 1:
		sampler = sdktrace.AlwaysSample()
	default:
		sampler = sdktrace.TraceIDRatioBased(cfg.SamplingRate)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithSampler(sdktrace.ParentBased(sampler)),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", cfg.ServiceName),
		)),
	)
	return tp, tp.Shutdown, nil
}

// Tracer returns the serieskit tracer of tp, or a no-op tracer for nil.
func Tracer(tp trace.TracerProvider) trace.Tracer {
	if tp == nil {
		tp = noop.NewTracerProvider()
	}
	return tp.Tracer(InstrumentationName)
}

// End finishes span, recording err on it when non-nil.
func End(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
