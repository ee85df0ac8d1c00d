package qbe

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/Aleph-Alpha/qbe/v1/metadata"
	"github.com/Aleph-Alpha/qbe/v1/predicate"
)

// ByExample builds a predicate matching records that agree with every
// searchable scalar attribute populated on example.
//
// Text values are matched by substring and skipped when empty; other values are
// matched by equality and skipped when nil. The comparisons are ANDed, and an
// example without populated searchable attributes yields predicate.True.
//
// Parameters:
//   - meta: the metadata of example's entity
//   - example: an instance, or a pointer to one, that meta can read
//
// Returns:
//
//	The predicate, ErrInvalidArgument for a nil meta or example, or an
//	*AttributeError when meta fails to read an attribute or returns a value
//	of the wrong kind.
//
// Example:
//
//	count := 0
//	p, err := qbe.ByExample(widgets, &Widget{Name: "Foo", Count: &count})
//	// p: name ~ "Foo" AND count = 0
func ByExample(meta metadata.EntityMetadata, example any) (predicate.Predicate, error) {
	if meta == nil {
		return nil, fmt.Errorf("%w: metadata is nil", ErrInvalidArgument)
	}
	if isNil(example) {
		return nil, fmt.Errorf("%w: example is nil", ErrInvalidArgument)
	}

	var conditions []predicate.Predicate
	for _, attr := range meta.Attributes() {
		if !attr.IsScalar() || !attr.Searchable {
			continue
		}

		value, err := meta.ValueOf(example, attr.Name)
		if err != nil {
			return nil, &AttributeError{Entity: meta.Entity(), Attribute: attr.Name, Err: err}
		}
		if value == nil {
			continue
		}

		if attr.IsText() {
			text, ok := textValue(value)
			if !ok {
				return nil, typeError(meta, attr, value)
			}
			if text == "" {
				continue
			}
			conditions = append(conditions, predicate.NewContains(attr.Name, text))
			continue
		}

		if !kindMatches(attr.ValueType, value) {
			return nil, typeError(meta, attr, value)
		}
		conditions = append(conditions, predicate.NewEqual(attr.Name, value))
	}

	return predicate.NewAnd(conditions...), nil
}

// ByPattern builds a predicate matching records in which any scalar text
// attribute contains pattern. The searchable flag is ignored. An empty pattern,
// or an entity without text attributes, yields predicate.True.
// A nil meta fails with ErrInvalidArgument.
//
// Example:
//
//	p, err := qbe.ByPattern(widgets, "xyz")
//	// p: name ~ "xyz" OR description ~ "xyz"
func ByPattern(meta metadata.EntityMetadata, pattern string) (predicate.Predicate, error) {
	if meta == nil {
		return nil, fmt.Errorf("%w: metadata is nil", ErrInvalidArgument)
	}
	if pattern == "" {
		return predicate.MatchAll(), nil
	}

	var conditions []predicate.Predicate
	for _, attr := range meta.Attributes() {
		if !attr.IsScalar() || !attr.IsText() {
			continue
		}
		conditions = append(conditions, predicate.NewContains(attr.Name, pattern))
	}

	return predicate.NewOr(conditions...), nil
}

func typeError(meta metadata.EntityMetadata, attr metadata.Attribute, value any) error {
	return &AttributeError{
		Entity:    meta.Entity(),
		Attribute: attr.Name,
		Err:       fmt.Errorf("%w: %s attribute holds %T", ErrValueType, attr.ValueType, value),
	}
}

// textValue accepts strings and named string types.
func textValue(v any) (string, bool) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.String {
		return "", false
	}
	return rv.String(), true
}

func kindMatches(t metadata.ValueType, v any) bool {
	switch t {
	case metadata.Numeric:
		if _, ok := v.(json.Number); ok {
			return true
		}
		switch reflect.ValueOf(v).Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
			reflect.Float32, reflect.Float64:
			return true
		}
		return false
	case metadata.Boolean:
		return reflect.ValueOf(v).Kind() == reflect.Bool
	default:
		return true
	}
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
