package lollipop

import (
	"encoding/json"
	"fmt"
	"sort"
)

// ValueFromJSON decodes raw JSON bytes into a Value tree (§6: "a concrete
// embedding... is left to callers"). It is a thin bridge from
// encoding/json's untyped decode result into the kernel's closed Value
// universe, not a kernel concern itself — the kernel never touches a byte
// stream directly (§1).
//
// Adapted from the teacher's adapter/json package: that adapter couples
// JSON parsing to source-position tracking (location.PositionRegistry)
// for editor diagnostics, which has no counterpart here (the kernel has
// no file format and no LSP surface, §6); ValueFromJSON keeps only the
// JSON-to-tree conversion itself, rebuilt against Value instead of
// RawInstance.
func ValueFromJSON(data []byte) (Value, error) {
	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return Value{}, fmt.Errorf("lollipop: invalid JSON: %w", err)
	}
	return valueFromAny(decoded)
}

func valueFromAny(decoded any) (Value, error) {
	switch v := decoded.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(v), nil
	case string:
		return Str(v), nil
	case float64:
		if v == float64(int64(v)) {
			return Int(int64(v)), nil
		}
		return Float(v), nil
	case []any:
		items := make([]Value, len(v))
		for i, item := range v {
			converted, err := valueFromAny(item)
			if err != nil {
				return Value{}, err
			}
			items[i] = converted
		}
		return SeqOf(items), nil
	case map[string]any:
		m := NewMap()
		for _, key := range jsonKeysInEncounterOrder(v) {
			converted, err := valueFromAny(v[key])
			if err != nil {
				return Value{}, err
			}
			m.Set(key, converted)
		}
		return MapVal(m), nil
	default:
		return Value{}, fmt.Errorf("lollipop: unsupported decoded JSON type %T", decoded)
	}
}

// jsonKeysInEncounterOrder returns m's keys. encoding/json decodes objects
// into map[string]any, which has already lost source order, so this is
// simply a deterministic (sorted) traversal rather than a faithful
// reproduction of the original document's key order.
func jsonKeysInEncounterOrder(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ValueToJSON encodes a Value tree to JSON bytes.
func ValueToJSON(v Value) ([]byte, error) {
	return json.Marshal(anyFromValue(v))
}

func anyFromValue(v Value) any {
	switch v.Kind() {
	case KindNull:
		return nil
	case KindBool:
		b, _ := v.AsBool()
		return b
	case KindInt:
		i, _ := v.AsInt()
		return i
	case KindFloat:
		f, _ := v.AsFloat()
		return f
	case KindString:
		s, _ := v.AsString()
		return s
	case KindSeq:
		items, _ := v.AsSeq()
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = anyFromValue(item)
		}
		return out
	case KindMap:
		m, _ := v.AsMap()
		out := make(map[string]any, m.Len())
		for _, key := range m.Keys() {
			raw, _ := m.Get(key)
			out[key] = anyFromValue(raw)
		}
		return out
	default:
		return nil
	}
}
