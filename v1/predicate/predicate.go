package predicate

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"
)

// Predicate is a boolean filter expression over entity attributes.
// Implementations are immutable and safe to share between goroutines.
type Predicate interface {
	fmt.Stringer

	// isPredicate seals the variant set to this package.
	isPredicate()
}

// Equal matches records whose Field equals Value.
type Equal struct {
	Field string `json:"field"`
	Value any    `json:"value"`
}

// Contains matches records whose text Field contains Value as a substring.
// Matching is case-sensitive.
type Contains struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// And matches records matching every operand.
// An And without operands matches everything.
type And struct {
	Predicates []Predicate
}

// Or matches records matching at least one operand.
// An Or without operands matches everything, like an empty And.
type Or struct {
	Predicates []Predicate
}

// True matches every record.
type True struct{}

func (Equal) isPredicate()    {}
func (Contains) isPredicate() {}
func (And) isPredicate()      {}
func (Or) isPredicate()       {}
func (True) isPredicate()     {}

// Pattern returns the value wrapped in SQL LIKE wildcards: "%Value%".
// The value itself is not escaped.
func (c Contains) Pattern() string {
	return "%" + c.Value + "%"
}

// ── Constructors ─────────────────────────────────────────────────────────────

// NewEqual creates an equality comparison.
func NewEqual(field string, value any) Equal {
	return Equal{Field: field, Value: value}
}

// NewContains creates a substring comparison.
func NewContains(field, value string) Contains {
	return Contains{Field: field, Value: value}
}

// NewAnd combines predicates with logical AND. Without operands it returns True.
// The operand slice is copied.
func NewAnd(predicates ...Predicate) Predicate {
	if len(predicates) == 0 {
		return True{}
	}
	return And{Predicates: append([]Predicate(nil), predicates...)}
}

// NewOr combines predicates with logical OR. Without operands it returns True.
// The operand slice is copied.
func NewOr(predicates ...Predicate) Predicate {
	if len(predicates) == 0 {
		return True{}
	}
	return Or{Predicates: append([]Predicate(nil), predicates...)}
}

// MatchAll returns the tautology.
func MatchAll() Predicate {
	return True{}
}

// ── Inspection ───────────────────────────────────────────────────────────────

// IsTautology reports whether p matches every record regardless of its values.
// A nil predicate counts as a tautology.
func IsTautology(p Predicate) bool {
	switch v := p.(type) {
	case nil, True:
		return true
	case And:
		for _, op := range v.Predicates {
			if !IsTautology(op) {
				return false
			}
		}
		return true
	case Or:
		if len(v.Predicates) == 0 {
			return true
		}
		for _, op := range v.Predicates {
			if IsTautology(op) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// Fields returns the attribute names referenced by p, in order of first
// appearance and without duplicates.
func Fields(p Predicate) []string {
	var fields []string
	seen := make(map[string]struct{})
	walk(p, func(field string) {
		if _, ok := seen[field]; ok {
			return
		}
		seen[field] = struct{}{}
		fields = append(fields, field)
	})
	return fields
}

// Conditions returns the number of leaf comparisons in p.
func Conditions(p Predicate) int {
	n := 0
	walk(p, func(string) { n++ })
	return n
}

func walk(p Predicate, leaf func(field string)) {
	switch v := p.(type) {
	case Equal:
		leaf(v.Field)
	case Contains:
		leaf(v.Field)
	case And:
		for _, op := range v.Predicates {
			walk(op, leaf)
		}
	case Or:
		for _, op := range v.Predicates {
			walk(op, leaf)
		}
	}
}

// ── String ───────────────────────────────────────────────────────────────────

func (e Equal) String() string {
	return e.Field + " = " + formatValue(e.Value)
}

func (c Contains) String() string {
	return fmt.Sprintf("%s ~ %q", c.Field, c.Value)
}

func (a And) String() string {
	return join(a.Predicates, " AND ")
}

func (o Or) String() string {
	return join(o.Predicates, " OR ")
}

func (True) String() string {
	return "TRUE"
}

func join(predicates []Predicate, sep string) string {
	if len(predicates) == 0 {
		return "TRUE"
	}
	parts := make([]string, 0, len(predicates))
	for _, p := range predicates {
		s := p.String()
		switch v := p.(type) {
		case And:
			if len(v.Predicates) > 1 {
				s = "(" + s + ")"
			}
		case Or:
			if len(v.Predicates) > 1 {
				s = "(" + s + ")"
			}
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, sep)
}

func formatValue(v any) string {
	switch x := indirect(v).(type) {
	case nil:
		return "NULL"
	case string:
		return fmt.Sprintf("%q", x)
	case time.Time:
		return x.Format(time.RFC3339Nano)
	case json.Number:
		return x.String()
	case fmt.Stringer:
		return fmt.Sprintf("%q", x.String())
	default:
		if reflect.ValueOf(x).Kind() == reflect.String {
			return fmt.Sprintf("%q", fmt.Sprint(x))
		}
		return fmt.Sprint(x)
	}
}
