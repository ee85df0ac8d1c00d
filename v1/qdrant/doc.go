// Package qdrant runs query-by-example predicates as Qdrant payload filters.
//
// Filter translates a predicate.Predicate into a *qdrant.Filter over the
// payload keys of a collection:
//
//   - Equal on a string or enum value becomes a keyword match, on an integer an
//     integer match, on a bool a bool match, on a float a closed range [v, v],
//     on a time.Time a closed datetime range and on nil an is_null condition.
//   - Contains becomes a text match. Without a full-text index on the key
//     Qdrant evaluates it as an exact substring match.
//   - And becomes Must, Or becomes Should; nested groups are wrapped as
//     filter conditions.
//   - A tautology becomes a nil filter, which matches every point.
//
// Client wraps the official Go client and implements the search Finder:
// Find queries the collection named after the entity (or mapped by
// Config.Collections) without a vector, so points come back in id order,
// and returns each payload as a map.
//
// # Basic Usage
//
//	client, err := qdrant.NewClient(qdrant.DefaultConfig(), log)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	p, _ := qbe.ByExample(meta, example)
//	var rows []map[string]any
//	err = client.Find(ctx, meta, p, &rows, qbe.Page{Limit: 20})
//
// # Configuration
//
// DefaultConfig targets localhost:6334 with a 3s startup health check and a
// default page limit of 100. The builder-style helpers adjust it:
//
//	cfg := qdrant.FromEndpoint("qdrant.internal").
//	    WithApiKey(os.Getenv("QDRANT_API_KEY")).
//	    WithTimeout(5 * time.Second).
//	    WithCollection("widgets", "widgets_v2")
//
// Points are returned as maps holding the payload plus the point id under
// Config.IDField ("id" unless set). A payload key of the same name is kept.
//
// # Error Handling
//
// Filter fails with ErrUnsupportedValue for values no payload condition can
// express, such as maps and slices, instead of silently dropping them. Find
// returns ErrUnsupportedDestination for anything but a *[]map[string]any.
// Errors from the server are wrapped with the collection name:
//
//	err := client.Find(ctx, meta, p, &rows, qbe.Page{})
//	if errors.Is(err, qdrant.ErrUnsupportedValue) {
//	    // the example carried a value Qdrant cannot match on
//	}
//
// # FX Module Integration
//
//	app := fx.New(
//	    logger.FXModule,
//	    qdrant.FXModule,
//	    fx.Provide(func() qdrant.Config { return *qdrant.DefaultConfig() }),
//	)
package qdrant
