// Package postgres runs query-by-example predicates against PostgreSQL through GORM.
//
// Expression translates a predicate.Predicate into a GORM clause.Expression:
//
//	Equal    -> "widgets"."count" = 5
//	Contains -> "widgets"."name" LIKE '%Foo%'   (case-sensitive)
//	And, Or  -> nested AND / OR groups
//	True     -> 1 = 1
//
// Where wraps it as a GORM scope that adds no condition for a tautology, so it
// composes with any existing query:
//
//	var widgets []Widget
//	err := db.Scopes(postgres.Where(p, metadata.Columns(meta))).Find(&widgets).Error
//
// The Postgres client wraps a *gorm.DB with connection monitoring and automatic
// reconnection, and implements the search backend through Find:
//
//	pg, err := postgres.NewPostgres(cfg, log)
//	if err != nil {
//		return err
//	}
//	defer pg.GracefulShutdown()
//
//	var rows []map[string]any
//	err = pg.Find(ctx, meta, p, &rows, qbe.Page{Limit: 20})
//
// Core Features:
//   - Expression and Where: predicate to GORM clause, composable as a scope
//   - QueryBuilder.Match: the same translation inside a fluent query
//   - RenderSQL: the SQL a Find would run, rendered by a dry-run session
//   - Find and Count over any registered entity, Create, AutoMigrate and Exec
//   - Health monitoring with reconnection; a replaced pool is closed
//
// Column mapping:
//
// Attribute names are mapped through metadata.Columns, so an attribute
// declared with a column name other than its own is queried by that column:
//
//	cols := metadata.Columns(meta) // {"count": "qty", "name": "name"}
//	expr := postgres.Expression(predicate.NewEqual("count", 5), cols)
//	// compares the qty column
//
// Fluent queries:
//
//	var widgets []Widget
//	err := pg.Query(ctx).
//		Model(&Widget{}).
//		Match(p, metadata.Columns(meta)).
//		Order("id").
//		Limit(20).
//		Find(&widgets)
//
//	sql, err := postgres.RenderSQL(meta, p, qbe.Page{Limit: 20})
//	// SELECT * FROM "widgets" WHERE "widgets"."name" LIKE '%Foo%' LIMIT 20
//
// Error Handling:
//
// Raw GORM and driver errors are returned unchanged. TranslateError maps them to
// the sentinel errors of this package:
//
//	err := pg.Create(ctx, &widget)
//	if errors.Is(pg.TranslateError(err), postgres.ErrDuplicateKey) {
//		// the widget already exists
//	}
//
// Connection Management:
//
// MonitorConnection pings the pool every HealthCheckInterval and signals
// RetryConnection on failure, which reconnects once a second until it
// succeeds. The new pool is published atomically and the old one closed, so
// calls still holding the old *gorm.DB fail instead of leaking connections.
// Both loops stop on GracefulShutdown, which the FX lifecycle calls on stop.
//
// FX Module Integration:
//
//	app := fx.New(
//		postgres.FXModule,
//		fx.Provide(
//			func() postgres.Config { return cfg.Postgres },
//			func(l *logger.LoggerClient) postgres.Logger { return l },
//		),
//	)
//
// Thread Safety:
//
// *Postgres is safe for concurrent use, including while a reconnect swaps
// the underlying pool.
package postgres
