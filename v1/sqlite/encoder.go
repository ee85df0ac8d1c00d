package sqlite

import (
	"encoding/json"
	"strings"

	"github.com/Aleph-Alpha/qbe/v1/predicate"
)

// Encoder converts predicates to SQLite WHERE bodies with ? placeholders.
type Encoder struct {
	columns map[string]string
}

// NewEncoder creates an encoder. columns maps attribute names to column names;
// attributes missing from it are used as column names.
func NewEncoder(columns map[string]string) *Encoder {
	return &Encoder{columns: columns}
}

// Encode renders p without the WHERE keyword.
// A tautology renders as the empty string with no arguments.
func (e *Encoder) Encode(p predicate.Predicate) (string, []any) {
	if predicate.IsTautology(p) {
		return "", nil
	}
	var args []any
	sql := e.encode(p, &args)
	return sql, args
}

func (e *Encoder) encode(p predicate.Predicate, args *[]any) string {
	switch v := p.(type) {
	case predicate.Equal:
		if v.Value == nil {
			return e.column(v.Field) + " IS NULL"
		}
		*args = append(*args, bindValue(v.Value))
		return e.column(v.Field) + " = ?"
	case predicate.Contains:
		*args = append(*args, v.Value)
		return "instr(" + e.column(v.Field) + ", ?) > 0"
	case predicate.And:
		return e.encodeGroup(v.Predicates, " AND ", args)
	case predicate.Or:
		return e.encodeGroup(v.Predicates, " OR ", args)
	default:
		return "1 = 1"
	}
}

func (e *Encoder) encodeGroup(predicates []predicate.Predicate, op string, args *[]any) string {
	switch len(predicates) {
	case 0:
		return "1 = 1"
	case 1:
		return e.encode(predicates[0], args)
	}

	parts := make([]string, 0, len(predicates))
	for _, p := range predicates {
		parts = append(parts, e.encode(p, args))
	}
	return "(" + strings.Join(parts, op) + ")"
}

func (e *Encoder) column(field string) string {
	if mapped, ok := e.columns[field]; ok && mapped != "" {
		field = mapped
	}
	return quoteIdentifier(field)
}

// bindValue turns values database/sql cannot bind into ones it can.
func bindValue(v any) any {
	n, ok := v.(json.Number)
	if !ok {
		return v
	}
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}

// quoteIdentifier quotes name as an SQL identifier.
func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
