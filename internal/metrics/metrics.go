// Package metrics exposes prometheus instrumentation for the record store.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "hourbook"

// Metrics holds the collectors updated by the record store and mirror.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	entries    prometheus.Gauge
	mirrors    *prometheus.CounterVec
}

// New creates a Metrics with its own registry, including Go runtime and
// process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Record store operations by name and result.",
		}, []string{"operation", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Time spent in record store operations, including the full-table read and rewrite.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "entries",
			Help:      "Rows in the backing table after the last operation.",
		}),
		mirrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mirror_writes_total",
			Help:      "Mirror workbook writes by result.",
		}, []string{"result"}),
	}
	reg.MustRegister(
		m.operations,
		m.duration,
		m.entries,
		m.mirrors,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the registry holding every collector.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the collected metrics in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Operation results.
const (
	ResultOK       = "ok"
	ResultRejected = "rejected"
	ResultError    = "error"
)

// ObserveOperation records one record store call that started at start.
func (m *Metrics) ObserveOperation(op string, start time.Time, result string) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(op, result).Inc()
	m.duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// SetEntries records the current row count.
func (m *Metrics) SetEntries(n int) {
	if m == nil {
		return
	}
	m.entries.Set(float64(n))
}

// ObserveMirror records one mirror workbook write.
func (m *Metrics) ObserveMirror(err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.mirrors.WithLabelValues("error").Inc()
		return
	}
	m.mirrors.WithLabelValues("ok").Inc()
}
