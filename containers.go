package lollipop

import "github.com/samber/lo"

// ListType loads a Seq external value into a Go slice, element by
// element, through an inner Type (§4.4). Per-element failures do not
// abort the load: every element is attempted, and failures are reported
// together as index-keyed errors (§4.1/§4.4 "continue on error").
type ListType struct {
	base
	elem Type
}

// NewList constructs a List of elem.
func NewList(elem Type, validators ...any) *ListType {
	return &ListType{
		base: newBase("List", "a list of "+elem.Name(), AdaptValidators(validators...)),
		elem: elem,
	}
}

func (t *ListType) selfLoad(v Value, ctx any) (any, *ValidationError) {
	items, ok := v.AsSeq()
	if !ok {
		return nil, Leaff("expected a list, got a %s", v.Kind())
	}
	out := make([]any, len(items))
	eb := NewErrorBuilder()
	for i, item := range items {
		loaded, err := t.elem.Load(item, ctx)
		if err != nil {
			eb.AddValidationError(indexSeg(i), err)
			continue
		}
		out[i] = loaded
	}
	if eb.HasErrors() {
		return nil, eb.RaiseErrors().(*ValidationError)
	}
	return out, nil
}

func (t *ListType) selfDump(internal any, ctx any) (Value, *ValidationError) {
	items, ok := internal.([]any)
	if !ok {
		return Value{}, Leaf("value is not a list")
	}
	out := make([]Value, len(items))
	eb := NewErrorBuilder()
	for i, item := range items {
		dumped, err := t.elem.Dump(item, ctx)
		if err != nil {
			eb.AddValidationError(indexSeg(i), err)
			continue
		}
		out[i] = dumped
	}
	if eb.HasErrors() {
		return Value{}, eb.RaiseErrors().(*ValidationError)
	}
	return SeqOf(out), nil
}

func (t *ListType) Load(v Value, ctx any) (any, *ValidationError) {
	return doLoad(t.selfLoad, t.validators, v, ctx)
}
func (t *ListType) Dump(internal any, ctx any) (Value, *ValidationError) {
	return doDump(t.selfDump, internal, ctx)
}
func (t *ListType) Validate(v Value, ctx any) *ValidationError {
	return doValidate(t.Load, v, ctx)
}

// structuralLoad implements structuralLoader (§4.10).
func (t *ListType) structuralLoad(v Value, ctx any) (any, *ValidationError) { return t.selfLoad(v, ctx) }

// TupleType loads a fixed-arity Seq external value, one inner Type per
// position (§4.4). Unlike List, a length mismatch is itself an error:
// tuples describe a fixed shape, not a homogeneous run.
type TupleType struct {
	base
	elems []Type
}

// NewTuple constructs a Tuple of the given positional element types.
func NewTuple(elems []Type, validators ...any) *TupleType {
	return &TupleType{
		base:  newBase("Tuple", "a fixed-size tuple", AdaptValidators(validators...)),
		elems: append([]Type(nil), elems...),
	}
}

func (t *TupleType) selfLoad(v Value, ctx any) (any, *ValidationError) {
	items, ok := v.AsSeq()
	if !ok {
		return nil, Leaff("expected a list, got a %s", v.Kind())
	}
	if len(items) != len(t.elems) {
		return nil, Leaff("expected %d elements, got %d", len(t.elems), len(items))
	}
	out := make([]any, len(items))
	eb := NewErrorBuilder()
	for i, item := range items {
		loaded, err := t.elems[i].Load(item, ctx)
		if err != nil {
			eb.AddValidationError(indexSeg(i), err)
			continue
		}
		out[i] = loaded
	}
	if eb.HasErrors() {
		return nil, eb.RaiseErrors().(*ValidationError)
	}
	return out, nil
}

func (t *TupleType) selfDump(internal any, ctx any) (Value, *ValidationError) {
	items, ok := internal.([]any)
	if !ok {
		return Value{}, Leaf("value is not a tuple")
	}
	if len(items) != len(t.elems) {
		return Value{}, Leaff("expected %d elements, got %d", len(t.elems), len(items))
	}
	out := make([]Value, len(items))
	eb := NewErrorBuilder()
	for i, item := range items {
		dumped, err := t.elems[i].Dump(item, ctx)
		if err != nil {
			eb.AddValidationError(indexSeg(i), err)
			continue
		}
		out[i] = dumped
	}
	if eb.HasErrors() {
		return Value{}, eb.RaiseErrors().(*ValidationError)
	}
	return SeqOf(out), nil
}

func (t *TupleType) Load(v Value, ctx any) (any, *ValidationError) {
	return doLoad(t.selfLoad, t.validators, v, ctx)
}
func (t *TupleType) Dump(internal any, ctx any) (Value, *ValidationError) {
	return doDump(t.selfDump, internal, ctx)
}
func (t *TupleType) Validate(v Value, ctx any) *ValidationError {
	return doValidate(t.Load, v, ctx)
}

// structuralLoad implements structuralLoader (§4.10).
func (t *TupleType) structuralLoad(v Value, ctx any) (any, *ValidationError) {
	return t.selfLoad(v, ctx)
}

// DictValue is Dict's internal representation: an ordered, string-keyed
// mapping of already-Loaded internal values. It exists separately from
// the external Map so that Dict's internal side can hold arbitrary Go
// values (ints, structs, nested *DictValue, ...) rather than Values,
// while still preserving insertion order into Dump (§3.5).
type DictValue struct {
	keys []string
	vals map[string]any
}

// NewDictValue creates an empty ordered internal mapping.
func NewDictValue() *DictValue {
	return &DictValue{vals: make(map[string]any)}
}

// Set inserts or overwrites a key, preserving first-seen order.
func (d *DictValue) Set(key string, v any) *DictValue {
	if _, ok := d.vals[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.vals[key] = v
	return d
}

// Get looks up a key.
func (d *DictValue) Get(key string) (any, bool) {
	v, ok := d.vals[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (d *DictValue) Keys() []string {
	return append([]string(nil), d.keys...)
}

// Len returns the number of entries.
func (d *DictValue) Len() int { return len(d.keys) }

// DictType loads a Map external value (§4.4), in one of two forms:
//
//   - fixed-key-schema: keys is non-empty, and only those keys are
//     loaded, each through its own Type; unknown keys are ignored (Dict
//     has no "unknown field" concept, unlike Object);
//   - uniform-value: keys is empty and valueType applies to every key
//     present, whatever it is.
//
// The internal representation is always a *DictValue. In the
// uniform-value form the external key order survives into Dump; the
// fixed-key form loads and dumps its keys in unspecified order.
type DictType struct {
	base
	keys      map[string]Type
	valueType Type
	keyType   Type
}

// NewDict constructs a fixed-key-schema Dict.
func NewDict(keys map[string]Type, validators ...any) *DictType {
	return &DictType{
		base: newBase("Dict", "a mapping with a fixed set of keys", AdaptValidators(validators...)),
		keys: keys,
	}
}

// NewUniformDict constructs a uniform-value Dict: every key maps through
// valueType. keyType, if non-nil, additionally constrains each external
// key string itself (§4.4: `Dict(values=T, keys=K?)`) — e.g. NewSlug() to
// require every key be a URL-safe slug. Pass nil for keyType to leave
// keys unconstrained.
func NewUniformDict(valueType Type, keyType Type, validators ...any) *DictType {
	return &DictType{
		base:      newBase("Dict", "a mapping of "+valueType.Name(), AdaptValidators(validators...)),
		valueType: valueType,
		keyType:   keyType,
	}
}

func (t *DictType) selfLoad(v Value, ctx any) (any, *ValidationError) {
	m, ok := v.AsMap()
	if !ok {
		return nil, Leaff("expected a mapping, got a %s", v.Kind())
	}
	out := NewDictValue()
	eb := NewErrorBuilder()
	if t.valueType != nil {
		for _, key := range m.Keys() {
			if t.keyType != nil {
				if _, err := t.keyType.Load(Str(key), ctx); err != nil {
					eb.AddValidationError(key, err)
					continue
				}
			}
			raw, _ := m.Get(key)
			loaded, err := t.valueType.Load(raw, ctx)
			if err != nil {
				eb.AddValidationError(key, err)
				continue
			}
			out.Set(key, loaded)
		}
	} else {
		// lo.Keys gives a stable, defensively-copied key set to iterate
		// the fixed schema by (order doesn't matter here: errors merge by
		// key regardless of iteration order).
		for _, key := range lo.Keys(t.keys) {
			keyType := t.keys[key]
			raw, present := m.Get(key)
			if !present {
				eb.AddError(key, "Value is required")
				continue
			}
			loaded, err := keyType.Load(raw, ctx)
			if err != nil {
				eb.AddValidationError(key, err)
				continue
			}
			out.Set(key, loaded)
		}
	}
	if eb.HasErrors() {
		return nil, eb.RaiseErrors().(*ValidationError)
	}
	return out, nil
}

func (t *DictType) selfDump(internal any, ctx any) (Value, *ValidationError) {
	d, ok := internal.(*DictValue)
	if !ok {
		return Value{}, Leaf("value is not a mapping")
	}
	out := NewMap()
	eb := NewErrorBuilder()
	if t.valueType != nil {
		for _, key := range d.Keys() {
			raw, _ := d.Get(key)
			dumped, err := t.valueType.Dump(raw, ctx)
			if err != nil {
				eb.AddValidationError(key, err)
				continue
			}
			out.Set(key, dumped)
		}
	} else {
		for _, key := range lo.Keys(t.keys) {
			keyType := t.keys[key]
			raw, present := d.Get(key)
			if !present {
				continue
			}
			dumped, err := keyType.Dump(raw, ctx)
			if err != nil {
				eb.AddValidationError(key, err)
				continue
			}
			out.Set(key, dumped)
		}
	}
	if eb.HasErrors() {
		return Value{}, eb.RaiseErrors().(*ValidationError)
	}
	return MapVal(out), nil
}

func (t *DictType) Load(v Value, ctx any) (any, *ValidationError) {
	return doLoad(t.selfLoad, t.validators, v, ctx)
}
func (t *DictType) Dump(internal any, ctx any) (Value, *ValidationError) {
	return doDump(t.selfDump, internal, ctx)
}
func (t *DictType) Validate(v Value, ctx any) *ValidationError {
	return doValidate(t.Load, v, ctx)
}

// structuralLoad implements structuralLoader (§4.10).
func (t *DictType) structuralLoad(v Value, ctx any) (any, *ValidationError) { return t.selfLoad(v, ctx) }

