package jsonvalue

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
)

// UnsupportedTypeError is returned by FromAny for a Go value that has no
// JSON value representation.
type UnsupportedTypeError struct {
	Type string
}

func (e *UnsupportedTypeError) Error() string {
	return "jsonvalue: cannot represent " + e.Type + " as a JSON value"
}

// FromAny converts untyped data (the shapes produced by encoding/json when
// decoding into any) to a Value. It fails with an UnsupportedTypeError when
// the input is outside the six JSON shapes.
//
// Go maps do not remember insertion order, so map keys are sorted to keep
// the resulting object deterministic. Use Parse to preserve the key order of
// a JSON document.
func FromAny(v any) (Value, error) {
	switch t := v.(type) {
	case nil:
		return Null(), nil
	case Value:
		return t, nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case json.Number:
		if i, err := strconv.ParseInt(t.String(), 10, 64); err == nil {
			return Int(i), nil
		}
		f, err := t.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("jsonvalue: bad number %q: %w", t.String(), err)
		}
		return Float(f), nil
	case int:
		return Int(int64(t)), nil
	case int8:
		return Int(int64(t)), nil
	case int16:
		return Int(int64(t)), nil
	case int32:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case uint:
		return Int(int64(t)), nil
	case uint8:
		return Int(int64(t)), nil
	case uint16:
		return Int(int64(t)), nil
	case uint32:
		return Int(int64(t)), nil
	case uint64:
		if t > math.MaxInt64 {
			return Float(float64(t)), nil
		}
		return Int(int64(t)), nil
	case float32:
		return Float(float64(t)), nil
	case float64:
		return Float(t), nil
	case []any:
		elems := make([]Value, len(t))
		for i, e := range t {
			ev, err := FromAny(e)
			if err != nil {
				return Value{}, err
			}
			elems[i] = ev
		}
		return Value{kind: KindArray, arr: elems}, nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		members := make([]Member, 0, len(t))
		for _, k := range keys {
			mv, err := FromAny(t[k])
			if err != nil {
				return Value{}, err
			}
			members = append(members, Member{Key: k, Value: mv})
		}
		return Value{kind: KindObject, obj: members}, nil
	}
	return Value{}, &UnsupportedTypeError{Type: fmt.Sprintf("%T", v)}
}

// MustFromAny is like FromAny but panics on error. Useful for literals in
// tests and examples.
func MustFromAny(v any) Value {
	val, err := FromAny(v)
	if err != nil {
		panic(err)
	}
	return val
}
