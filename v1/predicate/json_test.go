package predicate

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalJSON(t *testing.T) {
	p := NewAnd(
		NewContains("name", "Foo"),
		NewOr(NewEqual("count", 5), NewEqual("active", true)),
		True{},
	)

	data, err := json.Marshal(p)
	require.NoError(t, err)

	assert.JSONEq(t, `{"and":[
		{"contains":{"field":"name","value":"Foo"}},
		{"or":[
			{"equal":{"field":"count","value":5}},
			{"equal":{"field":"active","value":true}}
		]},
		{"true":{}}
	]}`, string(data))
}

func TestMarshalJSON_EmptyOperands(t *testing.T) {
	data, err := json.Marshal(And{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"and":[]}`, string(data))
}

func TestDecode(t *testing.T) {
	p, err := Decode([]byte(`{"and":[
		{"contains":{"field":"name","value":"Foo"}},
		{"or":[
			{"equal":{"field":"count","value":5}},
			{"equal":{"field":"ratio","value":0.5}},
			{"equal":{"field":"status","value":"open"}}
		]},
		{"true":{}}
	]}`))
	require.NoError(t, err)

	want := And{Predicates: []Predicate{
		Contains{Field: "name", Value: "Foo"},
		Or{Predicates: []Predicate{
			Equal{Field: "count", Value: int64(5)},
			Equal{Field: "ratio", Value: 0.5},
			Equal{Field: "status", Value: "open"},
		}},
		True{},
	}}
	assert.Equal(t, want, p)
}

func TestDecode_RoundTrip(t *testing.T) {
	p := NewOr(NewContains("title", "xyz"), NewContains("body", "xyz"))

	data, err := json.Marshal(p)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, p, decoded)
}

func TestDecode_TimeValue(t *testing.T) {
	created := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
	p := NewAnd(NewEqual("created", created), NewEqual("updated", &created))

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"and":[
		{"equal":{"field":"created","time":"2024-05-01T12:30:00Z"}},
		{"equal":{"field":"updated","time":"2024-05-01T12:30:00Z"}}
	]}`, string(data))

	decoded, err := Decode(data)
	require.NoError(t, err)

	and, ok := decoded.(And)
	require.True(t, ok)
	require.Len(t, and.Predicates, 2)
	for _, operand := range and.Predicates {
		eq, ok := operand.(Equal)
		require.True(t, ok)
		got, ok := eq.Value.(time.Time)
		require.True(t, ok, "expected time.Time, got %T", eq.Value)
		assert.True(t, created.Equal(got))
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"not json", `nope`},
		{"unknown variant", `{"like":{"field":"a","value":"b"}}`},
		{"two keys", `{"true":{},"and":[]}`},
		{"empty object", `{}`},
		{"missing field", `{"equal":{"value":1}}`},
		{"contains non-string", `{"contains":{"field":"a","value":1}}`},
		{"operands not array", `{"and":{"true":{}}}`},
		{"bad nested operand", `{"or":[{"nope":{}}]}`},
		{"malformed time", `{"equal":{"field":"a","time":"yesterday"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.json))
			assert.Error(t, err)
		})
	}
}
