package tracing

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/ajitpratap0/serieskit/pkg/errors"
)

func TestDisabledProviderWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	tp, shutdown, err := NewProvider(DefaultConfig(), &buf)
	require.NoError(t, err)

	_, span := Tracer(tp).Start(context.Background(), "load")
	End(span, nil)
	require.NoError(t, shutdown(context.Background()))
	assert.Empty(t, buf.String())
	assert.False(t, span.SpanContext().IsValid())
}

func TestEnabledProviderExportsSpans(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Enabled = true
	tp, shutdown, err := NewProvider(cfg, &buf)
	require.NoError(t, err)

	_, span := Tracer(tp).Start(context.Background(), "export")
	End(span, nil)
	require.NoError(t, shutdown(context.Background()))
	assert.Contains(t, buf.String(), `"Name":"export"`)
	assert.Contains(t, buf.String(), "serieskit")
}

func TestZeroSamplingRateDropsSpans(t *testing.T) {
	var buf bytes.Buffer
	cfg := Config{Enabled: true, ServiceName: "test", SamplingRate: 0}
	tp, shutdown, err := NewProvider(cfg, &buf)
	require.NoError(t, err)

	_, span := Tracer(tp).Start(context.Background(), "dropped")
	End(span, nil)
	require.NoError(t, shutdown(context.Background()))
	assert.Empty(t, buf.String())
}

func TestEndRecordsError(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	_, span := Tracer(tp).Start(context.Background(), "load")
	End(span, errors.New(errors.ErrorTypeIO, "disk gone"))

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "io: disk gone", spans[0].Status().Description)
	require.Len(t, spans[0].Events(), 1)
	assert.Equal(t, "exception", spans[0].Events()[0].Name)
}

func TestNilProvider(t *testing.T) {
	_, span := Tracer(nil).Start(context.Background(), "noop")
	assert.False(t, span.SpanContext().IsValid())
	span.End()
}
