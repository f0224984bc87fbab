// Package metrics provides Prometheus collectors for column ingestion.
//
// Collectors register on a caller supplied prometheus.Registerer so that
// tests and embedding programs control exposure; nothing is registered on
// the default registry implicitly.
//
// # Basic Usage
//
//	reg := prometheus.NewRegistry()
//	collector := metrics.NewCollector(reg, "csv")
//
//	timer := metrics.NewTimer()
//	store, err := columnar.Load(ctx, r, columnar.LoadOptions{Metrics: collector})
//	collector.ObserveLoad(timer.Stop())
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector records ingestion metrics for one source. A nil *Collector is
// valid and records nothing.
type Collector struct {
	source      string
	entriesRead *prometheus.CounterVec
	valuesNA    *prometheus.CounterVec
	promotions  *prometheus.CounterVec
	loadLatency *prometheus.HistogramVec
	columns     *prometheus.GaugeVec
}

// NewCollector creates the ingestion metrics on reg, labelled with source.
//
// Example:
//
//	collector := metrics.NewCollector(prometheus.NewRegistry(), "postgres")
//	collector.EntriesRead(1000)
func NewCollector(reg prometheus.Registerer, source string) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		source: source,
		entriesRead: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "serieskit_entries_read_total",
				Help: "Total number of entries read from a source",
			},
			[]string{"source"},
		),
		valuesNA: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "serieskit_values_na_total",
				Help: "Total number of values that loaded as NA",
			},
			[]string{"source"},
		),
		promotions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "serieskit_type_promotions_total",
				Help: "Total number of builder type promotions during loads",
			},
			[]string{"source"},
		),
		loadLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "serieskit_load_duration_seconds",
				Help: "Duration of complete loads",
				Buckets: []float64{
					0.001, // 1ms - tiny inputs
					0.01,  // 10ms
					0.1,   // 100ms
					1,     // 1s
					10,    // 10s - large files or queries
					60,
				},
			},
			[]string{"source"},
		),
		columns: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "serieskit_columns_loaded",
				Help: "Number of columns in the most recent load",
			},
			[]string{"source"},
		),
	}
}

// EntriesRead adds n to the entries read counter.
func (c *Collector) EntriesRead(n int) {
	if c == nil {
		return
	}
	c.entriesRead.WithLabelValues(c.source).Add(float64(n))
}

// NAValues adds n to the NA value counter.
func (c *Collector) NAValues(n int) {
	if c == nil {
		return
	}
	c.valuesNA.WithLabelValues(c.source).Add(float64(n))
}

// Promotions adds n to the promotion counter.
func (c *Collector) Promotions(n int) {
	if c == nil {
		return
	}
	c.promotions.WithLabelValues(c.source).Add(float64(n))
}

// Columns sets the column count gauge.
func (c *Collector) Columns(n int) {
	if c == nil {
		return
	}
	c.columns.WithLabelValues(c.source).Set(float64(n))
}

// ObserveLoad records the duration of a load.
func (c *Collector) ObserveLoad(d time.Duration) {
	if c == nil {
		return
	}
	c.loadLatency.WithLabelValues(c.source).Observe(d.Seconds())
}

// Timer provides a simple timing mechanism for measuring operation durations.
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer and starts timing immediately.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Stop returns the elapsed duration since creation. It may be called more
// than once.
func (t *Timer) Stop() time.Duration {
	return time.Since(t.start)
}
