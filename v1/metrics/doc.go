// Package metrics provides the Prometheus instrumentation of qbe.
//
// Metrics owns a dedicated registry, wrapped so that every series carries a
// service label, and records:
//
//   - predicates_built_total{mode,outcome}: predicates built per mode
//     ("example", "pattern") and outcome ("success", "invalid_argument",
//     "illegal_state", "error")
//   - predicate_conditions{mode}: leaf comparisons per built predicate
//   - searches_total{mode,outcome}: executed searches
//   - search_duration_seconds{mode}: end-to-end search latency
//
// When Config.Address is set, the registry is exposed on /metrics by an HTTP
// server that FXModule starts and stops with the application.
//
// Basic Usage:
//
//	m := metrics.NewMetrics(metrics.Config{ServiceName: "qbe", Address: ":9090"})
//
//	start := time.Now()
//	m.RecordPredicate("example", "success", 2)
//	m.RecordSearch("example", "success", start)
//
// Consumers should depend on the Collector interface.
package metrics
