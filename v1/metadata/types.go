package metadata

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownAttribute is returned when a provider is asked for an attribute it does not declare.
	ErrUnknownAttribute = errors.New("unknown attribute")

	// ErrTypeMismatch is returned when an instance is not of the type the metadata describes.
	ErrTypeMismatch = errors.New("instance type mismatch")

	// ErrDuplicateEntity is returned when an entity name is registered twice.
	ErrDuplicateEntity = errors.New("entity already registered")
)

// ValueType is the semantic type of an attribute's value.
type ValueType int

const (
	// Opaque covers every value that is neither text, numeric, boolean nor enum (times, bytes, ids).
	Opaque ValueType = iota
	Text
	Numeric
	Boolean
	Enum
)

// String returns the lower-case name of the value type.
func (t ValueType) String() string {
	switch t {
	case Text:
		return "text"
	case Numeric:
		return "numeric"
	case Boolean:
		return "boolean"
	case Enum:
		return "enum"
	default:
		return "opaque"
	}
}

// ParseValueType maps a configuration name to a ValueType.
// The empty string maps to Opaque.
func ParseValueType(s string) (ValueType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "string":
		return Text, nil
	case "numeric", "number", "int", "integer", "float":
		return Numeric, nil
	case "boolean", "bool":
		return Boolean, nil
	case "enum":
		return Enum, nil
	case "", "opaque", "other":
		return Opaque, nil
	}
	return Opaque, fmt.Errorf("unknown value type %q", s)
}

// RelationKind tells whether an attribute holds a scalar or points at other entities.
type RelationKind int

const (
	Scalar RelationKind = iota
	ToOne
	// ToMany covers one-to-many, many-to-many and plain collections.
	ToMany
)

func (k RelationKind) String() string {
	switch k {
	case ToOne:
		return "to_one"
	case ToMany:
		return "to_many"
	default:
		return "scalar"
	}
}

// ParseRelationKind maps a configuration name to a RelationKind.
// The empty string maps to Scalar.
func ParseRelationKind(s string) (RelationKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "scalar":
		return Scalar, nil
	case "to_one", "one":
		return ToOne, nil
	case "to_many", "many", "collection":
		return ToMany, nil
	}
	return Scalar, fmt.Errorf("unknown relation kind %q", s)
}

// Attribute describes one attribute of an entity type.
type Attribute struct {
	// Name is unique within the owning entity and is what predicates refer to.
	Name string

	// Column is the storage name used by backends. Empty means Name.
	Column string

	ValueType ValueType
	Relation  RelationKind

	// Searchable is only meaningful for scalar attributes.
	Searchable bool
}

// IsScalar reports whether the attribute is a plain value rather than a relation.
func (a Attribute) IsScalar() bool {
	return a.Relation == Scalar
}

// IsText reports whether the attribute holds a text value.
func (a Attribute) IsText() bool {
	return a.ValueType == Text
}

// ColumnName returns the storage column, falling back to the attribute name.
func (a Attribute) ColumnName() string {
	if a.Column != "" {
		return a.Column
	}
	return a.Name
}

// EntityMetadata describes the attributes of one entity type and reads their
// values off concrete instances.
//
// Implementations must be safe for concurrent reads.
type EntityMetadata interface {
	// Entity returns the entity name, which doubles as table or collection name.
	Entity() string

	// Attributes returns the declared attributes in declaration order.
	// Callers must not modify the returned slice.
	Attributes() []Attribute

	// ValueOf reads the named attribute from instance. An absent value is
	// reported as nil with a nil error. Errors wrap ErrUnknownAttribute or
	// ErrTypeMismatch.
	ValueOf(instance any, attribute string) (any, error)
}

// Columns returns the attribute name to column mapping of an entity, limited to
// attributes whose column differs from their name.
func Columns(meta EntityMetadata) map[string]string {
	columns := make(map[string]string)
	for _, attr := range meta.Attributes() {
		if attr.Column != "" && attr.Column != attr.Name {
			columns[attr.Name] = attr.Column
		}
	}
	return columns
}

// Lookup finds an attribute by name.
func Lookup(meta EntityMetadata, name string) (Attribute, bool) {
	for _, attr := range meta.Attributes() {
		if attr.Name == name {
			return attr, true
		}
	}
	return Attribute{}, false
}
