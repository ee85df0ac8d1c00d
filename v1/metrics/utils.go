package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RecordPredicate implements Collector.
func (m *Metrics) RecordPredicate(mode, outcome string, conditions int) {
	m.predicatesBuilt.WithLabelValues(mode, outcome).Inc()
	if outcome == OutcomeSuccess {
		m.predicateConditions.WithLabelValues(mode).Observe(float64(conditions))
	}
}

// RecordSearch implements Collector.
func (m *Metrics) RecordSearch(mode, outcome string, start time.Time) {
	m.searchesTotal.WithLabelValues(mode, outcome).Inc()
	m.searchDuration.WithLabelValues(mode).Observe(time.Since(start).Seconds())
}

// CreateCounter registers an additional counter with the service label and namespace.
func (m *Metrics) CreateCounter(name, help string, labels []string) *prometheus.CounterVec {
	counter := createCounterVec(m.namespace, name, help, labels)
	m.registerer.MustRegister(counter)
	return counter
}

// CreateHistogram registers an additional histogram with the service label and namespace.
func (m *Metrics) CreateHistogram(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	hist := createHistogramVec(m.namespace, name, help, labels, buckets)
	m.registerer.MustRegister(hist)
	return hist
}

func createCounterVec(namespace, name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		},
		labels,
	)
}

func createHistogramVec(namespace, name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
			Buckets:   buckets,
		},
		labels,
	)
}
