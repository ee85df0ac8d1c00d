package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the qbe collectors and the registry they are registered on.
type Metrics struct {
	// Server serves the registry on /metrics. It is nil when Config.Address is empty.
	Server *http.Server

	// Registry is exposed so tests and callers can gather or add collectors.
	Registry *prometheus.Registry

	registerer prometheus.Registerer
	namespace  string

	predicatesBuilt     *prometheus.CounterVec
	predicateConditions *prometheus.HistogramVec
	searchesTotal       *prometheus.CounterVec
	searchDuration      *prometheus.HistogramVec
}

// NewMetrics creates the registry and registers the qbe collectors on it.
func NewMetrics(cfg Config) *Metrics {
	registry := prometheus.NewRegistry()

	wrapped := prometheus.WrapRegistererWith(
		prometheus.Labels{"service": cfg.ServiceName},
		registry,
	)

	m := &Metrics{
		Registry:   registry,
		registerer: wrapped,
		namespace:  cfg.Namespace,
	}

	m.predicatesBuilt = createCounterVec(cfg.Namespace, "predicates_built_total",
		"Total number of query-by-example predicates built", []string{"mode", "outcome"})
	m.predicateConditions = createHistogramVec(cfg.Namespace, "predicate_conditions",
		"Number of leaf comparisons per built predicate", []string{"mode"}, []float64{0, 1, 2, 4, 8, 16, 32})
	m.searchesTotal = createCounterVec(cfg.Namespace, "searches_total",
		"Total number of executed searches", []string{"mode", "outcome"})
	m.searchDuration = createHistogramVec(cfg.Namespace, "search_duration_seconds",
		"Duration of searches in seconds, including predicate construction", []string{"mode"}, prometheus.DefBuckets)

	wrapped.MustRegister(
		m.predicatesBuilt,
		m.predicateConditions,
		m.searchesTotal,
		m.searchDuration,
	)

	if cfg.EnableDefaultCollectors {
		wrapped.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	if cfg.Address != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		m.Server = &http.Server{
			Addr:    cfg.Address,
			Handler: mux,
		}
	}

	return m
}
