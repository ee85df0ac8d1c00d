package predicate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Variant keys of the JSON encoding.
const (
	keyEqual    = "equal"
	keyContains = "contains"
	keyAnd      = "and"
	keyOr       = "or"
	keyTrue     = "true"
)

type leaf struct {
	Field string          `json:"field"`
	Value json.RawMessage `json:"value"`
	Time  *time.Time      `json:"time,omitempty"`
}

type timeLeaf struct {
	Field string    `json:"field"`
	Time  time.Time `json:"time"`
}

// MarshalJSON writes time values under "time" instead of "value"
// so that Decode restores them as time.Time rather than a string.
func (e Equal) MarshalJSON() ([]byte, error) {
	if t, ok := indirect(e.Value).(time.Time); ok {
		return json.Marshal(map[string]timeLeaf{keyEqual: {Field: e.Field, Time: t}})
	}
	type alias Equal
	return json.Marshal(map[string]alias{keyEqual: alias(e)})
}

// MarshalJSON encodes c as {"contains":{"field":...,"value":...}}.
func (c Contains) MarshalJSON() ([]byte, error) {
	type alias Contains
	return json.Marshal(map[string]alias{keyContains: alias(c)})
}

func (a And) MarshalJSON() ([]byte, error) {
	return marshalOperands(keyAnd, a.Predicates)
}

func (o Or) MarshalJSON() ([]byte, error) {
	return marshalOperands(keyOr, o.Predicates)
}

func (True) MarshalJSON() ([]byte, error) {
	return []byte(`{"true":{}}`), nil
}

func marshalOperands(key string, predicates []Predicate) ([]byte, error) {
	if predicates == nil {
		predicates = []Predicate{}
	}
	return json.Marshal(map[string][]Predicate{key: predicates})
}

// Decode parses the JSON encoding of a predicate.
// The variant is detected from the single key of each object.
// Equal values are restored as int64, float64, string, bool or nil;
// an equal leaf carrying "time" (RFC 3339) yields a time.Time.
func Decode(data []byte) (Predicate, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("failed to decode predicate: %w", err)
	}
	if len(fields) != 1 {
		return nil, fmt.Errorf("predicate object must have exactly one key, got %d: %s", len(fields), string(data))
	}

	switch {
	case hasKey(fields, keyEqual):
		l, err := decodeLeaf(fields[keyEqual])
		if err != nil {
			return nil, err
		}
		if l.Time != nil {
			return Equal{Field: l.Field, Value: *l.Time}, nil
		}
		value, err := decodeValue(l.Value)
		if err != nil {
			return nil, fmt.Errorf("equal %q: %w", l.Field, err)
		}
		return Equal{Field: l.Field, Value: value}, nil

	case hasKey(fields, keyContains):
		l, err := decodeLeaf(fields[keyContains])
		if err != nil {
			return nil, err
		}
		var value string
		if err := json.Unmarshal(l.Value, &value); err != nil {
			return nil, fmt.Errorf("contains %q: value must be a string: %w", l.Field, err)
		}
		return Contains{Field: l.Field, Value: value}, nil

	case hasKey(fields, keyAnd):
		operands, err := decodeOperands(fields[keyAnd])
		if err != nil {
			return nil, err
		}
		return And{Predicates: operands}, nil

	case hasKey(fields, keyOr):
		operands, err := decodeOperands(fields[keyOr])
		if err != nil {
			return nil, err
		}
		return Or{Predicates: operands}, nil

	case hasKey(fields, keyTrue):
		return True{}, nil

	default:
		return nil, fmt.Errorf("unknown predicate type: %s", string(data))
	}
}

func decodeLeaf(data []byte) (leaf, error) {
	var l leaf
	if err := json.Unmarshal(data, &l); err != nil {
		return l, fmt.Errorf("failed to decode comparison: %w", err)
	}
	if l.Field == "" {
		return l, fmt.Errorf("comparison without field: %s", string(data))
	}
	return l, nil
}

func decodeOperands(data []byte) ([]Predicate, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("operands must be an array: %w", err)
	}
	operands := make([]Predicate, 0, len(raw))
	for _, r := range raw {
		p, err := Decode(r)
		if err != nil {
			return nil, err
		}
		operands = append(operands, p)
	}
	return operands, nil
}

// decodeValue keeps integral numbers exact.
func decodeValue(data []byte) (any, error) {
	if len(data) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if n, ok := v.(json.Number); ok {
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
		return n.Float64()
	}
	return v, nil
}

func hasKey(m map[string]json.RawMessage, key string) bool {
	_, ok := m[key]
	return ok
}
