package qdrant

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"time"

	qdrant "github.com/qdrant/go-client/qdrant"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/Aleph-Alpha/qbe/v1/predicate"
)

// ErrUnsupportedValue is returned when an Equal value has no Qdrant match.
var ErrUnsupportedValue = errors.New("value cannot be matched in a payload filter")

// Filter translates p into a payload filter. columns maps attribute names to
// payload keys; attributes missing from it are used as keys.
// A tautology yields a nil filter.
func Filter(p predicate.Predicate, columns map[string]string) (*qdrant.Filter, error) {
	if predicate.IsTautology(p) {
		return nil, nil
	}

	switch v := p.(type) {
	case predicate.And:
		must, err := conditions(v.Predicates, columns)
		if err != nil {
			return nil, err
		}
		return &qdrant.Filter{Must: must}, nil
	case predicate.Or:
		should, err := conditions(v.Predicates, columns)
		if err != nil {
			return nil, err
		}
		return &qdrant.Filter{Should: should}, nil
	default:
		c, err := condition(p, columns)
		if err != nil {
			return nil, err
		}
		return &qdrant.Filter{Must: []*qdrant.Condition{c}}, nil
	}
}

// conditions drops tautological operands; an Or holding one is itself a
// tautology and never gets here.
func conditions(predicates []predicate.Predicate, columns map[string]string) ([]*qdrant.Condition, error) {
	out := make([]*qdrant.Condition, 0, len(predicates))
	for _, p := range predicates {
		if predicate.IsTautology(p) {
			continue
		}
		c, err := condition(p, columns)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func condition(p predicate.Predicate, columns map[string]string) (*qdrant.Condition, error) {
	switch v := p.(type) {
	case predicate.Equal:
		return match(key(v.Field, columns), v.Value)
	case predicate.Contains:
		return qdrant.NewMatchText(key(v.Field, columns), v.Value), nil
	case predicate.And, predicate.Or:
		nested, err := Filter(v, columns)
		if err != nil {
			return nil, err
		}
		return &qdrant.Condition{
			ConditionOneOf: &qdrant.Condition_Filter{Filter: nested},
		}, nil
	default:
		return nil, fmt.Errorf("%w: unexpected predicate %T", ErrUnsupportedValue, p)
	}
}

func match(key string, value any) (*qdrant.Condition, error) {
	switch v := value.(type) {
	case nil:
		return qdrant.NewIsNull(key), nil
	case time.Time:
		ts := timestamppb.New(v)
		return qdrant.NewDatetimeRange(key, &qdrant.DatetimeRange{Gte: ts, Lte: ts}), nil
	case *time.Time:
		if v == nil {
			return qdrant.NewIsNull(key), nil
		}
		return match(key, *v)
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return qdrant.NewMatchInt(key, i), nil
		}
		f, err := v.Float64()
		if err != nil {
			return nil, fmt.Errorf("%w: %s = %q", ErrUnsupportedValue, key, v.String())
		}
		return floatRange(key, f), nil
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return qdrant.NewIsNull(key), nil
		}
		return match(key, rv.Elem().Interface())
	case reflect.String:
		return qdrant.NewMatch(key, rv.String()), nil
	case reflect.Bool:
		return qdrant.NewMatchBool(key, rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return qdrant.NewMatchInt(key, rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return floatRange(key, float64(u)), nil
		}
		return qdrant.NewMatchInt(key, int64(u)), nil
	case reflect.Float32, reflect.Float64:
		return floatRange(key, rv.Float()), nil
	}
	return nil, fmt.Errorf("%w: %s = %T", ErrUnsupportedValue, key, value)
}

func floatRange(key string, f float64) *qdrant.Condition {
	return qdrant.NewRange(key, &qdrant.Range{Gte: &f, Lte: &f})
}

func key(field string, columns map[string]string) string {
	if mapped, ok := columns[field]; ok && mapped != "" {
		return mapped
	}
	return field
}
