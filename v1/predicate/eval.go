package predicate

import (
	"encoding/json"
	"math/big"
	"reflect"
	"strings"
	"time"
)

// Record exposes attribute values by name for in-memory evaluation.
type Record interface {
	Get(field string) (any, bool)
}

// Values adapts a plain map to Record.
type Values map[string]any

// Get returns the value stored under field.
func (v Values) Get(field string) (any, bool) {
	value, ok := v[field]
	return value, ok
}

// Matches evaluates p against r.
//
// Equal compares numbers by value across Go numeric types and json.Number,
// times with time.Time.Equal, and other values by kind or deep equality.
// Contains only matches string values. A missing attribute never matches a
// comparison.
func Matches(p Predicate, r Record) bool {
	switch v := p.(type) {
	case nil, True:
		return true
	case Equal:
		actual, ok := r.Get(v.Field)
		if !ok {
			return false
		}
		return equalValues(actual, v.Value)
	case Contains:
		actual, ok := r.Get(v.Field)
		if !ok {
			return false
		}
		s, ok := stringValue(actual)
		return ok && strings.Contains(s, v.Value)
	case And:
		for _, op := range v.Predicates {
			if !Matches(op, r) {
				return false
			}
		}
		return true
	case Or:
		if len(v.Predicates) == 0 {
			return true
		}
		for _, op := range v.Predicates {
			if Matches(op, r) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func equalValues(a, b any) bool {
	a, b = indirect(a), indirect(b)
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if ta, ok := a.(time.Time); ok {
		tb, ok := b.(time.Time)
		return ok && ta.Equal(tb)
	}

	if ra, ok := toRat(a); ok {
		rb, ok := toRat(b)
		return ok && ra.Cmp(rb) == 0
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch {
	case va.Kind() == reflect.String && vb.Kind() == reflect.String:
		return va.String() == vb.String()
	case va.Kind() == reflect.Bool && vb.Kind() == reflect.Bool:
		return va.Bool() == vb.Bool()
	}
	return reflect.DeepEqual(a, b)
}

func stringValue(v any) (string, bool) {
	rv := reflect.ValueOf(indirect(v))
	if rv.Kind() != reflect.String {
		return "", false
	}
	return rv.String(), true
}

// toRat converts numeric values to an exact rational. NaN and infinities do
// not convert.
func toRat(v any) (*big.Rat, bool) {
	if n, ok := v.(json.Number); ok {
		return new(big.Rat).SetString(n.String())
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return new(big.Rat).SetInt64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return new(big.Rat).SetUint64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		r := new(big.Rat).SetFloat64(rv.Float())
		return r, r != nil
	}
	return nil, false
}

// indirect dereferences pointers and turns nil pointers into nil.
func indirect(v any) any {
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
	return rv.Interface()
}
