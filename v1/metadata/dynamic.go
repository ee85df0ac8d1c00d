package metadata

import (
	"errors"
	"fmt"
)

// AttributeDefinition is the configuration form of an Attribute.
type AttributeDefinition struct {
	Name       string `yaml:"name" json:"name"`
	Column     string `yaml:"column,omitempty" json:"column,omitempty"`
	Type       string `yaml:"type" json:"type"`
	Relation   string `yaml:"relation,omitempty" json:"relation,omitempty"`
	Searchable bool   `yaml:"searchable,omitempty" json:"searchable,omitempty"`
}

// Definition is the configuration form of an entity.
//
// Example (YAML):
//
//	name: widgets
//	attributes:
//	  - name: name
//	    type: text
//	    searchable: true
//	  - name: owner
//	    relation: to_one
type Definition struct {
	Name       string                `yaml:"name" json:"name"`
	Attributes []AttributeDefinition `yaml:"attributes" json:"attributes"`
}

// Record is an instance of a Dynamic entity.
// Values are keyed by attribute name.
type Record struct {
	Entity string
	Values map[string]any
}

// Get returns the value stored under field.
func (r Record) Get(field string) (any, bool) {
	v, ok := r.Values[field]
	return v, ok
}

// Dynamic is an EntityMetadata declared at runtime, typically from configuration.
type Dynamic struct {
	name  string
	attrs []Attribute
	index map[string]struct{}
}

// NewDynamic validates def and builds its metadata.
func NewDynamic(def Definition) (*Dynamic, error) {
	if def.Name == "" {
		return nil, errors.New("entity name is required")
	}

	d := &Dynamic{
		name:  def.Name,
		attrs: make([]Attribute, 0, len(def.Attributes)),
		index: make(map[string]struct{}, len(def.Attributes)),
	}
	for _, ad := range def.Attributes {
		if ad.Name == "" {
			return nil, fmt.Errorf("entity %q: attribute name is required", def.Name)
		}
		if _, exists := d.index[ad.Name]; exists {
			return nil, fmt.Errorf("entity %q: duplicate attribute %q", def.Name, ad.Name)
		}
		valueType, err := ParseValueType(ad.Type)
		if err != nil {
			return nil, fmt.Errorf("entity %q attribute %q: %w", def.Name, ad.Name, err)
		}
		relation, err := ParseRelationKind(ad.Relation)
		if err != nil {
			return nil, fmt.Errorf("entity %q attribute %q: %w", def.Name, ad.Name, err)
		}
		d.attrs = append(d.attrs, Attribute{
			Name:       ad.Name,
			Column:     ad.Column,
			ValueType:  valueType,
			Relation:   relation,
			Searchable: ad.Searchable,
		})
		d.index[ad.Name] = struct{}{}
	}
	return d, nil
}

// Entity returns the name given to NewDynamic.
func (d *Dynamic) Entity() string {
	return d.name
}

// Attributes returns the attributes in declaration order.
// The slice is shared and must not be modified.
func (d *Dynamic) Attributes() []Attribute {
	return d.attrs
}

// ValueOf accepts a Record, a *Record or a map[string]any.
// A Record of another entity is a type mismatch.
func (d *Dynamic) ValueOf(instance any, attribute string) (any, error) {
	var values map[string]any
	switch v := instance.(type) {
	case Record:
		if v.Entity != "" && v.Entity != d.name {
			return nil, fmt.Errorf("%w: entity %q got a record of %q", ErrTypeMismatch, d.name, v.Entity)
		}
		values = v.Values
	case *Record:
		if v == nil {
			return nil, fmt.Errorf("%w: nil record", ErrTypeMismatch)
		}
		if v.Entity != "" && v.Entity != d.name {
			return nil, fmt.Errorf("%w: entity %q got a record of %q", ErrTypeMismatch, d.name, v.Entity)
		}
		values = v.Values
	case map[string]any:
		values = v
	default:
		return nil, fmt.Errorf("%w: entity %q expects a record, got %T", ErrTypeMismatch, d.name, instance)
	}

	if _, ok := d.index[attribute]; !ok {
		return nil, fmt.Errorf("%w: %q in entity %q", ErrUnknownAttribute, attribute, d.name)
	}
	return Normalize(values[attribute]), nil
}
