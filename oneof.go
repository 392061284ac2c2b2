package lollipop

import (
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// HintFunc resolves the tag under which a value of OneOf's dictionary
// form is keyed (§4.8): load_hint inspects an external Value (typically
// a Dict) to pick which variant Type should load it, and dump_hint
// inspects an internal value to pick which variant Type should dump it.
type HintFunc func(value any) (string, bool)

// DictValueHint returns a HintFunc reading a fixed key out of a Dict
// external Value (for load_hint) or a *DictValue internal value (for
// dump_hint) — the "dict_value_hint" helper named in §4.8.
func DictValueHint(key string) HintFunc {
	return func(value any) (string, bool) {
		switch v := value.(type) {
		case Value:
			m, ok := v.AsMap()
			if !ok {
				return "", false
			}
			raw, ok := m.Get(key)
			if !ok {
				return "", false
			}
			s, ok := raw.AsString()
			return s, ok
		case *DictValue:
			raw, ok := v.Get(key)
			if !ok {
				return "", false
			}
			s, ok := raw.(string)
			return s, ok
		default:
			return "", false
		}
	}
}

// OneOfType dispatches Load/Dump across several alternative Types
// (§4.8), in one of two forms:
//
//   - dictionary form: variants is non-empty, and loadHint/dumpHint pick
//     which named variant applies to a given value;
//   - list form: variants is empty and alternatives is used instead —
//     each alternative is tried in declaration order on both Load and
//     Dump, and the first one that does not raise wins (§9 Q1 ties load
//     and dump to the same "first success" rule).
type OneOfType struct {
	base

	variants     map[string]Type
	loadHint     HintFunc
	dumpHint     HintFunc
	alternatives []Type
}

// NewOneOf constructs the dictionary form: variants maps a tag to the
// Type that handles it, loadHint picks a tag from an external value, and
// dumpHint picks a tag from an internal value.
func NewOneOf(variants map[string]Type, loadHint, dumpHint HintFunc, validators ...any) *OneOfType {
	return &OneOfType{
		base:     newBase("OneOf", "one of several variant types", AdaptValidators(validators...)),
		variants: variants,
		loadHint: loadHint,
		dumpHint: dumpHint,
	}
}

// NewOneOfList constructs the list form: alternatives are tried in order
// on both Load and Dump.
func NewOneOfList(alternatives []Type, validators ...any) *OneOfType {
	return &OneOfType{
		base:         newBase("OneOf", "one of several variant types", AdaptValidators(validators...)),
		alternatives: append([]Type(nil), alternatives...),
	}
}

func (t *OneOfType) selfLoad(v Value, ctx any) (any, *ValidationError) {
	if t.variants != nil {
		// mo.TupleToOption turns loadHint's (tag, ok) pair into an Option;
		// "no hint" and "hint names an unregistered tag" are then reported
		// with separate messages.
		tag, ok := mo.TupleToOption(t.loadHint(v)).Get()
		if !ok {
			return nil, Leaf("could not determine variant")
		}
		variant, ok := t.variants[tag]
		if !ok {
			return nil, Leaff("unknown variant %q", tag)
		}
		return variant.Load(v, ctx)
	}
	// Every alternative is attempted up front as an mo.Result, then
	// lo.Find picks the first Ok — §9 Q1's "first success wins" expressed
	// as a search over results rather than an early return mid-loop.
	results := make([]mo.Result[any], len(t.alternatives))
	for i, alt := range t.alternatives {
		loaded, err := alt.Load(v, ctx)
		if err != nil {
			results[i] = mo.Err[any](err)
		} else {
			results[i] = mo.Ok(loaded)
		}
	}
	if winner, found := lo.Find(results, mo.Result[any].IsOk); found {
		return winner.MustGet(), nil
	}
	return nil, Leaf("Invalid data")
}

func (t *OneOfType) selfDump(internal any, ctx any) (Value, *ValidationError) {
	if t.variants != nil {
		tag, ok := mo.TupleToOption(t.dumpHint(internal)).Get()
		if !ok {
			return Value{}, Leaf("could not determine variant")
		}
		variant, ok := t.variants[tag]
		if !ok {
			return Value{}, Leaff("unknown variant %q", tag)
		}
		return variant.Dump(internal, ctx)
	}
	results := make([]mo.Result[Value], len(t.alternatives))
	for i, alt := range t.alternatives {
		dumped, err := alt.Dump(internal, ctx)
		if err != nil {
			results[i] = mo.Err[Value](err)
		} else {
			results[i] = mo.Ok(dumped)
		}
	}
	if winner, found := lo.Find(results, mo.Result[Value].IsOk); found {
		return winner.MustGet(), nil
	}
	return Value{}, Leaf("Invalid data")
}

// Load implements Type.
func (t *OneOfType) Load(v Value, ctx any) (any, *ValidationError) {
	return doLoad(t.selfLoad, t.validators, v, ctx)
}

// Dump implements Type.
func (t *OneOfType) Dump(internal any, ctx any) (Value, *ValidationError) {
	return doDump(t.selfDump, internal, ctx)
}

// Validate implements Type.
func (t *OneOfType) Validate(v Value, ctx any) *ValidationError {
	return doValidate(t.Load, v, ctx)
}

// structuralLoad implements structuralLoader (§4.10).
func (t *OneOfType) structuralLoad(v Value, ctx any) (any, *ValidationError) {
	return t.selfLoad(v, ctx)
}
