package metadata

import (
	"fmt"
	"reflect"
)

// FieldDef declares one attribute of a Schema together with its accessor.
// Build it with Field and refine it with the chained setters.
type FieldDef[T any] struct {
	attr Attribute
	get  func(*T) any
}

// Field declares an attribute of T named name. get returns the attribute's current
// value; returning nil, a nil pointer or (for text) an empty string means absent.
//
// Example:
//
//	metadata.Field("name", metadata.Text, func(w *Widget) any { return w.Name }).Searchable()
func Field[T any](name string, valueType ValueType, get func(*T) any) *FieldDef[T] {
	return &FieldDef[T]{
		attr: Attribute{Name: name, ValueType: valueType},
		get:  get,
	}
}

// Searchable marks the attribute as usable by example queries.
func (f *FieldDef[T]) Searchable() *FieldDef[T] {
	f.attr.Searchable = true
	return f
}

// Column sets the storage column name.
func (f *FieldDef[T]) Column(column string) *FieldDef[T] {
	f.attr.Column = column
	return f
}

// Relation sets the relation kind. Attributes are scalar unless stated otherwise.
func (f *FieldDef[T]) Relation(kind RelationKind) *FieldDef[T] {
	f.attr.Relation = kind
	return f
}

// Schema is an EntityMetadata for the Go type T built from accessor functions.
// No reflection is involved in reading values.
type Schema[T any] struct {
	entity  string
	attrs   []Attribute
	getters map[string]func(*T) any
}

// NewSchema builds the metadata of entity from its field declarations.
// It panics if two fields share a name or a field has no accessor: both are
// programming errors in the registration code.
func NewSchema[T any](entity string, fields ...*FieldDef[T]) *Schema[T] {
	s := &Schema[T]{
		entity:  entity,
		attrs:   make([]Attribute, 0, len(fields)),
		getters: make(map[string]func(*T) any, len(fields)),
	}
	for _, f := range fields {
		if _, exists := s.getters[f.attr.Name]; exists {
			panic(fmt.Sprintf("metadata: duplicate attribute %q in entity %q", f.attr.Name, entity))
		}
		if f.get == nil {
			panic(fmt.Sprintf("metadata: attribute %q in entity %q has no accessor", f.attr.Name, entity))
		}
		s.attrs = append(s.attrs, f.attr)
		s.getters[f.attr.Name] = f.get
	}
	return s
}

// Entity returns the entity name passed to NewSchema.
func (s *Schema[T]) Entity() string {
	return s.entity
}

// Attributes returns the declared attributes in the order they were added.
// The slice is shared and must not be modified.
func (s *Schema[T]) Attributes() []Attribute {
	return s.attrs
}

// Type returns the Go type described by the schema. The Registry uses it to
// resolve instances to their metadata.
func (s *Schema[T]) Type() reflect.Type {
	return reflect.TypeFor[T]()
}

// ValueOf accepts either a T or a *T.
func (s *Schema[T]) ValueOf(instance any, attribute string) (any, error) {
	var target *T
	switch v := instance.(type) {
	case *T:
		target = v
	case T:
		target = &v
	default:
		return nil, fmt.Errorf("%w: entity %q expects %s, got %T", ErrTypeMismatch, s.entity, s.Type(), instance)
	}
	if target == nil {
		return nil, fmt.Errorf("%w: nil %s", ErrTypeMismatch, s.Type())
	}

	get, ok := s.getters[attribute]
	if !ok {
		return nil, fmt.Errorf("%w: %q in entity %q", ErrUnknownAttribute, attribute, s.entity)
	}
	return Normalize(get(target)), nil
}

// Normalize dereferences pointers and interfaces and turns nil pointers, maps
// and slices into a plain nil.
func Normalize(v any) any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map, reflect.Slice:
		if rv.IsNil() {
			return nil
		}
	}
	return rv.Interface()
}
