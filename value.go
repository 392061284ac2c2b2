package lollipop

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
)

// Kind discriminates the members of the external value universe V
// (§3.1): Null, Bool, Int, Float, String, Seq, Map.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindSeq
	KindMap
)

// String returns a human-readable name for the kind, used in type-mismatch
// error messages.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindSeq:
		return "list"
	case KindMap:
		return "mapping"
	default:
		return "unknown"
	}
}

// Value is a member of the external value universe V: a JSON-like tree
// accepted by Load and produced by Dump. Seq and SeqOf copy the slice
// passed to them; MapVal keeps the *Map it is given without copying, and
// AsMap returns that same *Map.
//
// Value is not itself MISSING (§3.4); MISSING only ever appears on the
// internal side.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	seq  []Value
	m    *Map
}

// Null returns the external null value.
func Null() Value { return Value{kind: KindNull} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int wraps an integer.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float wraps a float.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Str wraps a string.
func Str(s string) Value { return Value{kind: KindString, s: s} }

// Seq wraps an ordered sequence. The given slice is cloned defensively.
func Seq(items ...Value) Value {
	return Value{kind: KindSeq, seq: slices.Clone(items)}
}

// SeqOf builds a Seq value from a slice without requiring the caller to
// spread it.
func SeqOf(items []Value) Value {
	return Value{kind: KindSeq, seq: slices.Clone(items)}
}

// MapVal wraps an ordered string-keyed mapping.
func MapVal(m *Map) Value {
	if m == nil {
		m = NewMap()
	}
	return Value{kind: KindMap, m: m}
}

// Kind returns the value's kind.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether this is the null value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the wrapped bool and true if this value is a Bool.
func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// AsInt returns the wrapped int and true if this value is an Int.
func (v Value) AsInt() (int64, bool) {
	return v.i, v.kind == KindInt
}

// AsFloat returns the wrapped float and true if this value is a Float.
// Integers are not coerced here: callers that accept "integer or float"
// (e.g. the Float type, §4.4) check both kinds explicitly.
func (v Value) AsFloat() (float64, bool) {
	return v.f, v.kind == KindFloat
}

// AsString returns the wrapped string and true if this value is a String.
func (v Value) AsString() (string, bool) {
	return v.s, v.kind == KindString
}

// AsSeq returns the wrapped sequence and true if this value is a Seq.
// The returned slice is a defensive copy.
func (v Value) AsSeq() ([]Value, bool) {
	if v.kind != KindSeq {
		return nil, false
	}
	return slices.Clone(v.seq), true
}

// AsMap returns the wrapped mapping and true if this value is a Map.
func (v Value) AsMap() (*Map, bool) {
	if v.kind != KindMap {
		return nil, false
	}
	return v.m, true
}

// String implements fmt.Stringer for diagnostics; it is not a codec.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return fmt.Sprintf("%v", v.b)
	case KindInt:
		return fmt.Sprintf("%d", v.i)
	case KindFloat:
		return fmt.Sprintf("%v", v.f)
	case KindString:
		return fmt.Sprintf("%q", v.s)
	case KindSeq:
		return fmt.Sprintf("[%d items]", len(v.seq))
	case KindMap:
		return fmt.Sprintf("{%d keys}", v.m.Len())
	default:
		return "<invalid>"
	}
}

// Map is an ordered, string-keyed mapping: the external representation of
// Dict/Object values. Iteration order is insertion order, which is what
// gives Object.Dump its declaration-order determinism (§3.5).
type Map struct {
	keys []string
	vals map[string]Value
}

// NewMap creates an empty ordered map.
func NewMap() *Map {
	return &Map{vals: make(map[string]Value)}
}

// Set inserts or overwrites a key. Overwriting an existing key preserves
// its original position.
func (m *Map) Set(key string, v Value) *Map {
	if _, ok := m.vals[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.vals[key] = v
	return m
}

// Get looks up a key.
func (m *Map) Get(key string) (Value, bool) {
	v, ok := m.vals[key]
	return v, ok
}

// Has reports whether key is present.
func (m *Map) Has(key string) bool {
	_, ok := m.vals[key]
	return ok
}

// Delete removes a key, if present.
func (m *Map) Delete(key string) {
	if _, ok := m.vals[key]; !ok {
		return
	}
	delete(m.vals, key)
	m.keys = lo.Filter(m.keys, func(k string, _ int) bool { return k != key })
}

// Keys returns the keys in insertion order. The returned slice is a
// defensive copy.
func (m *Map) Keys() []string {
	return slices.Clone(m.keys)
}

// Len returns the number of entries.
func (m *Map) Len() int { return len(m.keys) }

// Clone returns a shallow copy with an independent key order/backing map.
func (m *Map) Clone() *Map {
	clone := &Map{
		keys: slices.Clone(m.keys),
		vals: make(map[string]Value, len(m.vals)),
	}
	for k, v := range m.vals {
		clone.vals[k] = v
	}
	return clone
}

// missing is the nullary sentinel type backing MISSING (§3.4). It is a
// distinct variant of the internal-value sum, never part of V and never
// serialized.
type missing struct{}

// Missing is the distinguished "no value present" sentinel on the
// internal side. It is never a validation target and never appears in a
// produced external tree.
var Missing any = missing{}

// IsMissing reports whether an internal value is the MISSING sentinel.
func IsMissing(v any) bool {
	_, ok := v.(missing)
	return ok
}
