// Package metrics exposes storefront counters to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "storefront"

type Metrics struct {
	registry *prometheus.Registry

	catalogFetches  *prometheus.CounterVec
	catalogDuration *prometheus.HistogramVec
	cartActions     *prometheus.CounterVec
	checkouts       *prometheus.CounterVec
}

// New registers the storefront collectors on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		catalogFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_fetches_total",
			Help:      "Catalog fetches by operation and outcome.",
		}, []string{"op", "outcome"}),
		catalogDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "catalog_fetch_duration_seconds",
			Help:      "Catalog fetch latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
		cartActions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_actions_total",
			Help:      "Cart mutations applied, by action.",
		}, []string{"action"}),
		checkouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkouts_total",
			Help:      "Checkout attempts by outcome.",
		}, []string{"outcome"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.catalogFetches,
		m.catalogDuration,
		m.cartActions,
		m.checkouts,
	)

	return m
}

func (m *Metrics) CatalogFetch(op string, err error, elapsed time.Duration) {
	m.catalogFetches.WithLabelValues(op, outcome(err)).Inc()
	m.catalogDuration.WithLabelValues(op).Observe(elapsed.Seconds())
}

func (m *Metrics) CartAction(action string) {
	m.cartActions.WithLabelValues(action).Inc()
}

func (m *Metrics) Checkout(err error) {
	m.checkouts.WithLabelValues(outcome(err)).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
