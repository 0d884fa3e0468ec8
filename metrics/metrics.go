// Package metrics exposes Prometheus collectors for document generation
// and document cache lookups.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "apidoc"

// Metrics holds the collectors and the registry they are registered with.
// It satisfies openapi.Observer and doccache.Observer.
type Metrics struct {
	registry *prometheus.Registry

	generations *prometheus.CounterVec
	duration    prometheus.Histogram
	operations  prometheus.Gauge
	schemas     prometheus.Gauge
	lookups     *prometheus.CounterVec
}

// New creates the collectors and registers them, together with the Go
// runtime and process collectors, with a dedicated registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "generator",
			Name:      "passes_total",
			Help:      "Total number of document generation passes by result",
		}, []string{"result"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "generator",
			Name:      "pass_duration_seconds",
			Help:      "Duration of document generation passes",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}),
		operations: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "generator",
			Name:      "operations",
			Help:      "Number of operations collected by the last successful pass",
		}),
		schemas: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "generator",
			Name:      "schemas",
			Help:      "Number of component schemas collected by the last successful pass",
		}),
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Total number of document cache lookups by result",
		}, []string{"result"}),
	}

	m.registry.MustRegister(
		m.generations,
		m.duration,
		m.operations,
		m.schemas,
		m.lookups,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Registry returns the underlying Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveGeneration records one generation pass.
func (m *Metrics) ObserveGeneration(elapsed time.Duration, endpoints, schemas int, err error) {
	m.duration.Observe(elapsed.Seconds())
	if err != nil {
		m.generations.WithLabelValues("error").Inc()
		return
	}
	m.generations.WithLabelValues("success").Inc()
	m.operations.Set(float64(endpoints))
	m.schemas.Set(float64(schemas))
}

// ObserveCacheLookup records one cache lookup.
func (m *Metrics) ObserveCacheLookup(hit bool) {
	if hit {
		m.lookups.WithLabelValues("hit").Inc()
		return
	}
	m.lookups.WithLabelValues("miss").Inc()
}
