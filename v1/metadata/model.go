package metadata

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"gorm.io/gorm/schema"
)

// TagName is the struct tag read by FromModel.
// Supported options are "searchable" and "enum", comma separated.
const TagName = "qbe"

var schemaCache sync.Map

// Model is an EntityMetadata derived from a GORM model.
//
// Scalar attributes are named after their column. Relation attributes keep
// their Go field name. A zero value counts as absent, matching GORM's handling
// of struct conditions; use pointer fields to constrain on zero values.
type Model struct {
	schema *schema.Schema
	table  string
	attrs  []Attribute
	fields map[string]*schema.Field
}

// ModelOption customises FromModel.
type ModelOption func(*modelOptions)

type modelOptions struct {
	namer schema.Namer
	table string
}

// WithNamer sets the naming strategy used to derive table and column names.
// It should match the one configured on the gorm.DB executing the queries.
func WithNamer(namer schema.Namer) ModelOption {
	return func(o *modelOptions) {
		o.namer = namer
	}
}

// WithTable overrides the entity name derived from the model.
func WithTable(table string) ModelOption {
	return func(o *modelOptions) {
		o.table = table
	}
}

// FromModel parses a GORM model (a struct or pointer to struct) into metadata.
//
// Example:
//
//	meta, err := metadata.FromModel(&Article{}, metadata.WithTable("articles"))
func FromModel(model any, opts ...ModelOption) (*Model, error) {
	o := &modelOptions{namer: schema.NamingStrategy{}}
	for _, opt := range opts {
		opt(o)
	}

	// The cache is keyed by model type, so it is only shared for the default namer.
	cache := &schemaCache
	if len(opts) > 0 {
		cache = &sync.Map{}
	}

	s, err := schema.Parse(model, cache, o.namer)
	if err != nil {
		return nil, fmt.Errorf("failed to parse model %T: %w", model, err)
	}
	table := s.Table
	if o.table != "" {
		table = o.table
	}

	m := &Model{
		schema: s,
		table:  table,
		fields: make(map[string]*schema.Field, len(s.Fields)),
	}

	for _, field := range s.Fields {
		options := tagOptions(field.Tag.Get(TagName))

		if rel, ok := s.Relationships.Relations[field.Name]; ok {
			m.add(field.Name, field, Attribute{
				Name:       field.Name,
				ValueType:  Opaque,
				Relation:   relationKind(rel.Type),
				Searchable: options["searchable"],
			})
			continue
		}

		// Ignored fields (gorm:"-") carry no column.
		if field.DBName == "" || !field.Readable {
			continue
		}

		m.add(field.DBName, field, Attribute{
			Name:       field.DBName,
			ValueType:  valueType(field.DataType, options["enum"]),
			Relation:   Scalar,
			Searchable: options["searchable"],
		})
	}

	return m, nil
}

func (m *Model) add(name string, field *schema.Field, attr Attribute) {
	if _, exists := m.fields[name]; exists {
		return
	}
	m.fields[name] = field
	m.attrs = append(m.attrs, attr)
}

// Entity returns the table name: the WithTable override or the one gorm's
// naming strategy derives.
func (m *Model) Entity() string {
	return m.table
}

// Attributes returns one attribute per mapped column, in struct field order.
func (m *Model) Attributes() []Attribute {
	return m.attrs
}

// Type returns the model's struct type.
func (m *Model) Type() reflect.Type {
	return m.schema.ModelType
}

// ValueOf accepts the model struct or a pointer to it.
func (m *Model) ValueOf(instance any, attribute string) (any, error) {
	rv := reflect.ValueOf(instance)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, fmt.Errorf("%w: nil %s", ErrTypeMismatch, m.schema.ModelType)
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() || rv.Type() != m.schema.ModelType {
		return nil, fmt.Errorf("%w: entity %q expects %s, got %T", ErrTypeMismatch, m.Entity(), m.schema.ModelType, instance)
	}

	field, ok := m.fields[attribute]
	if !ok {
		return nil, fmt.Errorf("%w: %q in entity %q", ErrUnknownAttribute, attribute, m.Entity())
	}

	value, zero := field.ValueOf(context.Background(), rv)
	if zero {
		return nil, nil
	}
	return Normalize(value), nil
}

func tagOptions(tag string) map[string]bool {
	options := make(map[string]bool)
	for _, opt := range strings.Split(tag, ",") {
		if opt = strings.TrimSpace(strings.ToLower(opt)); opt != "" {
			options[opt] = true
		}
	}
	return options
}

func valueType(dataType schema.DataType, enum bool) ValueType {
	if enum {
		return Enum
	}
	switch dataType {
	case schema.String:
		return Text
	case schema.Int, schema.Uint, schema.Float:
		return Numeric
	case schema.Bool:
		return Boolean
	default:
		return Opaque
	}
}

func relationKind(t schema.RelationshipType) RelationKind {
	switch t {
	case schema.HasMany, schema.Many2Many:
		return ToMany
	default:
		return ToOne
	}
}
