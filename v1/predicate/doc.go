// Package predicate defines the backend-neutral filter produced by the
// query-by-example builder.
//
// A Predicate is one of a closed set of variants:
//
//   - Equal: exact match of an attribute against a value
//   - Contains: case-sensitive substring match of a text attribute
//   - And, Or: conjunction and disjunction of nested predicates
//   - True: the tautology, matches every record
//
// Backends (postgres, sqlite, qdrant) switch over these variants to build their
// native filter. The set is sealed, so a type switch with these five cases is
// exhaustive.
//
// Example:
//
//	p := predicate.NewAnd(
//	    predicate.NewContains("name", "Foo"),
//	    predicate.NewEqual("count", 5),
//	)
//	fmt.Println(p) // name ~ "Foo" AND count = 5
//
// Predicates can be evaluated in memory against anything exposing attribute
// values by name:
//
//	ok := predicate.Matches(p, predicate.Values{"name": "FooBar", "count": 5})
//
// JSON:
//
// Each variant encodes as an object with a single key naming the variant:
//
//	{"and":[{"contains":{"field":"name","value":"Foo"}},{"equal":{"field":"count","value":5}}]}
//
// Decode reverses the encoding. Integral JSON numbers decode as int64, all other
// numbers as float64. An Equal on a time.Time is written under "time" rather
// than "value" so that it decodes back as a time.Time:
//
//	{"equal":{"field":"created","time":"2024-05-01T12:30:00Z"}}
//
// In-memory Evaluation:
//
// Matches follows the same rules the backends apply:
//
//   - Numbers compare by value across Go numeric types and json.Number, so
//     int64(5), uint8(5) and 5.0 are equal
//   - time.Time values compare with Time.Equal
//   - Contains is a case-sensitive strings.Contains; a missing or non-string
//     attribute never matches
//   - Empty And and Or groups match every record
//
// Inspection:
//
//	predicate.IsTautology(p) // true for True and for groups that reduce to it
//	predicate.Conditions(p)  // number of Equal and Contains leaves
//	predicate.Fields(p)      // attribute names referenced, first appearance first
//
// Thread Safety:
//
// Predicates are immutable values and safe to share between goroutines.
package predicate
