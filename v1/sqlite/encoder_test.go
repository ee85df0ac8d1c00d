package sqlite

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aleph-Alpha/qbe/v1/metadata"
	"github.com/Aleph-Alpha/qbe/v1/predicate"
	"github.com/Aleph-Alpha/qbe/v1/qbe"
)

func TestEncoder_Encode(t *testing.T) {
	columns := map[string]string{"price": "price_cents"}

	tests := []struct {
		name     string
		p        predicate.Predicate
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "equal",
			p:        predicate.NewEqual("count", 5),
			wantSQL:  `"count" = ?`,
			wantArgs: []any{5},
		},
		{
			name:     "equal null",
			p:        predicate.NewEqual("count", nil),
			wantSQL:  `"count" IS NULL`,
			wantArgs: nil,
		},
		{
			name:     "mapped column",
			p:        predicate.NewEqual("price", 100),
			wantSQL:  `"price_cents" = ?`,
			wantArgs: []any{100},
		},
		{
			name:     "json number binds as integer",
			p:        predicate.NewEqual("count", json.Number("7")),
			wantSQL:  `"count" = ?`,
			wantArgs: []any{int64(7)},
		},
		{
			name:     "json number binds as float",
			p:        predicate.NewEqual("count", json.Number("7.5")),
			wantSQL:  `"count" = ?`,
			wantArgs: []any{7.5},
		},
		{
			name:     "contains",
			p:        predicate.NewContains("name", "Foo"),
			wantSQL:  `instr("name", ?) > 0`,
			wantArgs: []any{"Foo"},
		},
		{
			name:     "and",
			p:        predicate.NewAnd(predicate.NewContains("name", "Foo"), predicate.NewEqual("count", 5)),
			wantSQL:  `(instr("name", ?) > 0 AND "count" = ?)`,
			wantArgs: []any{"Foo", 5},
		},
		{
			name:     "single operand group is unwrapped",
			p:        predicate.NewOr(predicate.NewEqual("count", 5)),
			wantSQL:  `"count" = ?`,
			wantArgs: []any{5},
		},
		{
			name: "nested groups",
			p: predicate.NewAnd(
				predicate.NewEqual("count", 5),
				predicate.NewOr(predicate.NewContains("title", "go"), predicate.NewContains("body", "go")),
			),
			wantSQL:  `("count" = ? AND (instr("title", ?) > 0 OR instr("body", ?) > 0))`,
			wantArgs: []any{5, "go", "go"},
		},
		{
			name:     "nested tautology keeps its place",
			p:        predicate.NewAnd(predicate.NewEqual("count", 5), predicate.And{}),
			wantSQL:  `("count" = ? AND 1 = 1)`,
			wantArgs: []any{5},
		},
		{
			name:     "identifier with quote",
			p:        predicate.NewEqual(`we"ird`, 1),
			wantSQL:  `"we""ird" = ?`,
			wantArgs: []any{1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := NewEncoder(columns).Encode(tt.p)
			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestEncoder_Tautology(t *testing.T) {
	for _, p := range []predicate.Predicate{nil, predicate.True{}, predicate.And{}, predicate.Or{}, predicate.MatchAll()} {
		sql, args := NewEncoder(nil).Encode(p)
		assert.Empty(t, sql)
		assert.Nil(t, args)
	}
}

func TestSelectSQL(t *testing.T) {
	meta, err := metadata.NewDynamic(metadata.Definition{
		Name: "widgets",
		Attributes: []metadata.AttributeDefinition{
			{Name: "count", Type: "numeric", Column: "qty", Searchable: true},
		},
	})
	require.NoError(t, err)

	sql, args := SelectSQL(meta, predicate.NewEqual("count", 5), qbe.Page{Limit: 10, Offset: 20})
	assert.Equal(t, `SELECT * FROM "widgets" WHERE "qty" = ? LIMIT ? OFFSET ?`, sql)
	assert.Equal(t, []any{5, 10, 20}, args)

	sql, args = SelectSQL(meta, nil, qbe.Page{Offset: 3})
	assert.Equal(t, `SELECT * FROM "widgets" LIMIT ? OFFSET ?`, sql)
	assert.Equal(t, []any{-1, 3}, args)

	sql, args = SelectSQL(meta, nil, qbe.Page{})
	assert.Equal(t, `SELECT * FROM "widgets"`, sql)
	assert.Nil(t, args)
}
