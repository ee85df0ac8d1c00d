// Package qbe builds query-by-example predicates from entity metadata.
//
// Two query shapes are supported:
//
//   - ByExample: every searchable scalar attribute populated on an example
//     instance becomes a comparison, and the comparisons are ANDed. Text
//     attributes match by substring ("contains"), everything else by equality.
//   - ByPattern: every scalar text attribute is matched against a free-text
//     pattern by substring, and the comparisons are ORed. The searchable flag
//     is not consulted in this mode.
//
// Relation attributes never take part in either mode. When nothing constrains
// the query, both modes return predicate.True so that an empty example or
// pattern matches every record.
//
// Core Features:
//   - ByExample and ByPattern: pure functions over an EntityMetadata
//   - Builder: resolves the metadata from a metadata.Registry first, by the
//     example's runtime type or by entity name
//   - Value checks: a numeric attribute holding a string, or a text attribute
//     holding a number, is reported instead of producing a bogus condition
//   - Page: the limit and offset handed to every backend
//
// Which values constrain a query:
//
//	| attribute       | value         | condition          |
//	|-----------------|---------------|--------------------|
//	| text            | "" or nil     | none               |
//	| text            | "Foo"         | name ~ "Foo"       |
//	| numeric/boolean | nil           | none               |
//	| numeric/boolean | 0 (via *int)  | count = 0          |
//	| enum            | "open"        | status = "open"    |
//	| relation        | anything      | none               |
//	| not searchable  | anything      | none (not read)    |
//
// Basic Usage:
//
//	registry := metadata.NewRegistry()
//	_ = registry.Register(widgets)
//	builder := qbe.NewBuilder(registry)
//
//	p, err := builder.ByExample(&Widget{Name: "Foo"})
//	if err != nil {
//	    return err
//	}
//	// p is: name ~ "Foo"
//
//	p, err = builder.ByPattern("xyz", "widgets")
//
// Error Handling:
//
// A nil example or an unknown entity fails with ErrInvalidArgument. Metadata
// that cannot read an attribute it declares, or that returns a value of the
// wrong kind, fails with an *AttributeError matching ErrIllegalState:
//
//	var attrErr *qbe.AttributeError
//	if errors.As(err, &attrErr) {
//	    log.Printf("broken metadata for %s.%s", attrErr.Entity, attrErr.Attribute)
//	}
//
// Building is pure and holds no state, so all functions are safe for
// concurrent use.
package qbe
