package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry     *prometheus.Registry
	createdTotal prometheus.Counter
	removedTotal prometheus.Counter
	stored       prometheus.Gauge
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		createdTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "onelook_assignments_created_total",
			Help: "Assignments added through the API.",
		}),
		removedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "onelook_assignments_removed_total",
			Help: "Assignments removed through the API.",
		}),
		stored: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "onelook_assignments_stored",
			Help: "Assignments currently in the collection.",
		}),
	}
	m.registry.MustRegister(m.createdTotal, m.removedTotal, m.stored)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Metrics methods are no-ops on a nil receiver so handlers work without a registry.

func (m *Metrics) incCreated() {
	if m != nil {
		m.createdTotal.Inc()
	}
}

func (m *Metrics) incRemoved() {
	if m != nil {
		m.removedTotal.Inc()
	}
}

func (m *Metrics) setStored(n int) {
	if m != nil {
		m.stored.Set(float64(n))
	}
}
