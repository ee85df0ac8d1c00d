// Package sqlite runs query-by-example predicates against an embedded SQLite
// database.
//
// The store sits on database/sql with the pure-Go modernc.org/sqlite driver,
// so it needs no cgo and no server. It is the default backend and the one the
// command line uses with an in-memory database.
//
// Core Features:
//   - Encoder: renders a predicate.Predicate to a parameterised WHERE body
//   - Store: opens the database and implements the search Finder
//   - SelectSQL: the exact statement Find runs, for logging and tests
//   - Count: number of rows matching a predicate
//   - FX module that provides the store and closes it on stop
//
// Encoding:
//
//	Equal    -> "qty" = ?, or "qty" IS NULL for a nil value
//	Contains -> instr("name", ?) > 0
//	And, Or  -> ( ... AND ... ), ( ... OR ... )
//	True     -> no WHERE clause at all
//
// Text containment uses instr, which is case-sensitive for every collation,
// so results agree with predicate.Matches. Column names come from the
// attribute metadata and are quoted:
//
//	enc := sqlite.NewEncoder(metadata.Columns(meta))
//	where, args := enc.Encode(p)
//	// where: (instr("name", ?) > 0 AND "qty" = ?)
//	// args:  ["Foo", 5]
//
// Basic Usage:
//
//	store, err := sqlite.Open(sqlite.Config{
//		Path:        "widgets.db",
//		BusyTimeout: 2 * time.Second,
//	})
//	if err != nil {
//		return err
//	}
//	defer store.Close()
//
//	var rows []map[string]any
//	err = store.Find(ctx, meta, p, &rows, qbe.Page{Limit: 20})
//
//	n, err := store.Count(ctx, meta, p)
//
// Find only accepts a *[]map[string]any; anything else fails with
// ErrUnsupportedDestination. Each map holds the row's columns by name.
//
// Configuration:
//
//   - Path: database file, empty or ":memory:" for a private in-memory database
//   - BusyTimeout: how long a statement waits on a locked file (default 5s)
//   - ReadOnly: open the file read-only
//
// FX Module Integration:
//
//	app := fx.New(
//		sqlite.FXModule,
//		fx.Provide(
//			func() sqlite.Config { return sqlite.Config{Path: "widgets.db"} },
//			func(l *logger.LoggerClient) sqlite.Logger { return l },
//		),
//	)
//
// Thread Safety:
//
// A Store is safe for concurrent use. An in-memory database is pinned to a
// single connection so every query sees the same data.
package sqlite
