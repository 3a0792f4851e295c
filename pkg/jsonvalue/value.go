// Package jsonvalue provides a closed, recursive representation of any JSON
// value. It exists for the parts of the Ollama API whose shape is defined by
// the caller at runtime (tool schemas, response formats, think directives)
// rather than fixed in advance. Objects preserve insertion order so encoding
// is deterministic.
package jsonvalue

// Kind identifies which JSON variant a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	}
	return "invalid"
}

// Member is a single key/value pair of an Object value.
type Member struct {
	Key   string
	Value Value
}

// Value is one JSON value of any kind. The zero Value is JSON null.
// Values are immutable once built; callers must not modify slices returned
// by Items or Members.
type Value struct {
	kind  Kind
	b     bool
	isInt bool
	i     int64
	f     float64
	s     string
	arr   []Value
	obj   []Member
}

// Null returns the JSON null value.
func Null() Value {
	return Value{}
}

// Bool returns a JSON boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Int returns a JSON number value holding an integer.
func Int(i int64) Value {
	return Value{kind: KindNumber, isInt: true, i: i}
}

// Float returns a JSON number value holding a float.
func Float(f float64) Value {
	return Value{kind: KindNumber, f: f}
}

// String returns a JSON string value.
func String(s string) Value {
	return Value{kind: KindString, s: s}
}

// Array returns a JSON array of the given elements, in order.
func Array(elems ...Value) Value {
	return Value{kind: KindArray, arr: elems}
}

// Object returns a JSON object with the given members in insertion order.
// A repeated key replaces the earlier member in place, keeping keys unique.
func Object(members ...Member) Value {
	obj := make([]Member, 0, len(members))
	idx := make(map[string]int, len(members))
	for _, m := range members {
		if j, ok := idx[m.Key]; ok {
			obj[j].Value = m.Value
			continue
		}
		idx[m.Key] = len(obj)
		obj = append(obj, m)
	}
	return Value{kind: KindObject, obj: obj}
}

// Pair builds an object Member.
func Pair(key string, v Value) Member {
	return Member{Key: key, Value: v}
}

// Kind reports which JSON variant the value holds.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether the value is JSON null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// AsBool returns the boolean value. ok is false for non-bool kinds.
func (v Value) AsBool() (b bool, ok bool) {
	return v.b, v.kind == KindBool
}

// AsInt returns the integer value. ok is false unless the value is a number
// that was constructed from (or parsed as) an integer.
func (v Value) AsInt() (i int64, ok bool) {
	return v.i, v.kind == KindNumber && v.isInt
}

// AsFloat returns the numeric value as a float64 for any number.
func (v Value) AsFloat() (f float64, ok bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.floatVal(), true
}

// AsString returns the string value. ok is false for non-string kinds.
func (v Value) AsString() (s string, ok bool) {
	return v.s, v.kind == KindString
}

// Items returns the elements of an array value, or nil for other kinds.
func (v Value) Items() []Value {
	return v.arr
}

// Members returns the members of an object value in insertion order,
// or nil for other kinds.
func (v Value) Members() []Member {
	return v.obj
}

// Get looks up an object member by key.
func (v Value) Get(key string) (Value, bool) {
	for _, m := range v.obj {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// Equal reports structural equality. Arrays compare element by element in
// order; objects compare by key set, ignoring member order. Numbers compare
// numerically, so Int(2) equals Float(2).
func (v Value) Equal(w Value) bool {
	if v.kind != w.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == w.b
	case KindNumber:
		if v.isInt && w.isInt {
			return v.i == w.i
		}
		return v.floatVal() == w.floatVal()
	case KindString:
		return v.s == w.s
	case KindArray:
		if len(v.arr) != len(w.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(w.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.obj) != len(w.obj) {
			return false
		}
		for _, m := range v.obj {
			other, ok := w.Get(m.Key)
			if !ok || !m.Value.Equal(other) {
				return false
			}
		}
		return true
	}
	return false
}

func (v Value) floatVal() float64 {
	if v.isInt {
		return float64(v.i)
	}
	return v.f
}
