package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productDefinition() Definition {
	return Definition{
		Name: "products",
		Attributes: []AttributeDefinition{
			{Name: "title", Type: "text", Searchable: true},
			{Name: "price", Type: "numeric", Column: "price_cents", Searchable: true},
			{Name: "vendor", Relation: "to_one", Searchable: true},
		},
	}
}

func TestNewDynamic(t *testing.T) {
	d, err := NewDynamic(productDefinition())
	require.NoError(t, err)

	assert.Equal(t, "products", d.Entity())
	require.Len(t, d.Attributes(), 3)
	assert.Equal(t, Text, d.Attributes()[0].ValueType)
	assert.Equal(t, "price_cents", d.Attributes()[1].ColumnName())
	assert.Equal(t, ToOne, d.Attributes()[2].Relation)
	assert.Equal(t, Opaque, d.Attributes()[2].ValueType)
}

func TestNewDynamic_Invalid(t *testing.T) {
	tests := []struct {
		name string
		def  Definition
	}{
		{"missing entity name", Definition{}},
		{"missing attribute name", Definition{Name: "x", Attributes: []AttributeDefinition{{Type: "text"}}}},
		{"duplicate attribute", Definition{Name: "x", Attributes: []AttributeDefinition{{Name: "a"}, {Name: "a"}}}},
		{"bad type", Definition{Name: "x", Attributes: []AttributeDefinition{{Name: "a", Type: "blob"}}}},
		{"bad relation", Definition{Name: "x", Attributes: []AttributeDefinition{{Name: "a", Relation: "up"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDynamic(tt.def)
			assert.Error(t, err)
		})
	}
}

func TestDynamic_ValueOf(t *testing.T) {
	d, err := NewDynamic(productDefinition())
	require.NoError(t, err)

	rec := Record{Entity: "products", Values: map[string]any{"title": "Lamp", "price": 1200}}

	v, err := d.ValueOf(rec, "title")
	require.NoError(t, err)
	assert.Equal(t, "Lamp", v)

	v, err = d.ValueOf(&rec, "price")
	require.NoError(t, err)
	assert.Equal(t, 1200, v)

	v, err = d.ValueOf(map[string]any{"title": "Desk"}, "title")
	require.NoError(t, err)
	assert.Equal(t, "Desk", v)

	v, err = d.ValueOf(rec, "vendor")
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = d.ValueOf(rec, "colour")
	assert.ErrorIs(t, err, ErrUnknownAttribute)

	_, err = d.ValueOf(Record{Entity: "orders"}, "title")
	assert.ErrorIs(t, err, ErrTypeMismatch)

	_, err = d.ValueOf("products", "title")
	assert.ErrorIs(t, err, ErrTypeMismatch)
}
