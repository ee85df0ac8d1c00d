// Package search executes query-by-example and pattern searches against a
// storage backend.
//
// The search package ties the predicate builder to a storage backend and adds
// the ambient concerns every query needs: a query_id per request, structured
// log lines, OpenTelemetry spans and Prometheus metrics.
//
// Core Features:
//   - FindByExample: resolve the entity from an example instance and load the
//     records resembling it
//   - Search: free-text pattern search over the text attributes of one entity
//   - SearchAll: the same pattern over every registered entity, concurrently
//   - Paging through functional options (WithLimit, WithOffset, WithPage)
//   - Backend-neutral: v1/postgres, v1/sqlite and v1/qdrant all implement Finder
//
// Basic Usage:
//
//	import (
//		"github.com/Aleph-Alpha/qbe/v1/metadata"
//		"github.com/Aleph-Alpha/qbe/v1/qbe"
//		"github.com/Aleph-Alpha/qbe/v1/search"
//		"github.com/Aleph-Alpha/qbe/v1/sqlite"
//	)
//
//	registry := metadata.NewRegistry()
//	if err := registry.Register(widgets); err != nil {
//		return err
//	}
//
//	store, err := sqlite.Open(sqlite.Config{Path: "widgets.db"})
//	if err != nil {
//		return err
//	}
//	defer store.Close()
//
//	svc := search.NewService(qbe.NewBuilder(registry), store, log, collector, tr)
//
// Query by example:
//
//	var rows []map[string]any
//	err := svc.FindByExample(ctx, &Widget{Name: "Foo"}, &rows, search.WithLimit(20))
//
// Pattern search:
//
//	// one entity
//	err := svc.Search(ctx, "widgets", "foo", &rows, search.WithOffset(20), search.WithLimit(20))
//
//	// every registered entity, at most two at a time
//	results, err := svc.SearchAll(ctx, "foo", search.WithConcurrency(2))
//	for entity, rows := range results {
//		fmt.Println(entity, len(rows))
//	}
//
// SearchAll maps every entity to a slice, empty when nothing matched. The
// first failing entity cancels the others and its error is returned.
//
// Observability:
//
// Each FindByExample and Search call starts a span ("search.find_by_example"
// or "search.search") and draws a fresh query_id. The id, the mode
// ("example" or "pattern") and the entity appear on the span and on every log
// line of the query:
//
//   - Debug "built predicate" with the rendered predicate
//   - Info "search completed" with duration_ms
//   - Error "failed to build example predicate", "search failed", ...
//
// The metrics.Collector records how many predicates were built per mode and
// outcome, their condition counts, and the duration of each backend call.
//
// Error Handling:
//
// Errors from the builder are returned unchanged, so callers can classify them
// with errors.Is:
//
//	err := svc.Search(ctx, "gadgets", "foo", &rows)
//	switch {
//	case errors.Is(err, qbe.ErrInvalidArgument):
//		// unknown entity or nil example
//	case errors.Is(err, qbe.ErrIllegalState):
//		// metadata could not read one of its own attributes
//	case err != nil:
//		// backend failure
//	}
//
// FX Module Integration:
//
// FXModule provides the *qbe.Builder and the *Service. The registry, a Finder
// and the narrow Logger and Tracer interfaces come from the other modules:
//
//	app := fx.New(
//		fx.Supply(cfg),
//		config.FXModule,
//		logger.FXModule,
//		metrics.FXModule,
//		tracer.FXModule,
//		sqlite.FXModule,
//		search.FXModule,
//		fx.Provide(
//			func(l *logger.LoggerClient) sqlite.Logger { return l },
//			func(l *logger.LoggerClient) metrics.Logger { return l },
//			func(l *logger.LoggerClient) tracer.Logger { return l },
//			func(l *logger.LoggerClient) search.Logger { return l },
//			func(t *tracer.Tracer) search.Tracer { return t },
//			func(s *sqlite.Store) search.Finder { return s },
//		),
//	)
//
// Thread Safety:
//
// A Service holds no per-query state and is safe for concurrent use.
package search
