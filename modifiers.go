package lollipop

// ConstantType always loads and dumps a single fixed internal value,
// ignoring whatever (if anything) is on the external side (§4.5): Load
// succeeds regardless of input and returns value; Dump always produces
// dumped regardless of the internal value passed in.
type ConstantType struct {
	base
	value  any
	dumped Value
}

// NewConstant constructs a Constant type: value is what Load always
// produces, dumped is what Dump always produces.
func NewConstant(value any, dumped Value) *ConstantType {
	return &ConstantType{base: newBase("Constant", "a constant value", nil), value: value, dumped: dumped}
}

// Load implements Type; it never fails and ignores v.
func (t *ConstantType) Load(_ Value, _ any) (any, *ValidationError) {
	return t.value, nil
}

// Dump implements Type; it never fails and ignores internal.
func (t *ConstantType) Dump(_ any, _ any) (Value, *ValidationError) {
	return t.dumped, nil
}

// Validate implements Type.
func (t *ConstantType) Validate(v Value, ctx any) *ValidationError {
	return doValidate(t.Load, v, ctx)
}

// proxyBase is embedded by every modifier that wraps exactly one inner
// Type and proxies Name/Description/Validators to it (§4.5: "Optional,
// LoadOnly, DumpOnly, Transform... proxy Name/Description/Validators to
// the inner type").
type proxyBase struct {
	inner Type
}

// Name proxies to the inner type.
func (p proxyBase) Name() string { return p.inner.Name() }

// Description proxies to the inner type.
func (p proxyBase) Description() string { return p.inner.Description() }

// Validators proxies to the inner type.
func (p proxyBase) Validators() []Validator { return p.inner.Validators() }

func (p proxyBase) sealed(sealer) {}

// OptionalType wraps an inner type, substituting a default for MISSING
// on Load and/or Dump (§4.5). Defaults may be a literal value or a
// zero-argument thunk evaluated fresh on every substitution (so mutable
// defaults, e.g. an empty slice, are never shared between loads).
type OptionalType struct {
	proxyBase
	loadDefault any
	dumpDefault any
	hasLoad     bool
	hasDump     bool
}

// NewOptional constructs an Optional wrapping inner. loadDefault/
// dumpDefault may each be a literal value or a func() any thunk; pass
// lollipop.Missing for either to mean "no default on that side": Load of
// Null then yields MISSING, and Dump of MISSING yields Null.
func NewOptional(inner Type, loadDefault, dumpDefault any) *OptionalType {
	return &OptionalType{
		proxyBase:   proxyBase{inner: inner},
		loadDefault: loadDefault,
		dumpDefault: dumpDefault,
		hasLoad:     !IsMissing(loadDefault),
		hasDump:     !IsMissing(dumpDefault),
	}
}

func resolveDefault(d any) any {
	if thunk, ok := d.(func() any); ok {
		return thunk()
	}
	return d
}

// Load implements Type. An external Null also collapses to MISSING
// before defaulting, per §4.5's documented Null/MISSING unification on
// the load side.
func (t *OptionalType) Load(v Value, ctx any) (any, *ValidationError) {
	if v.IsNull() {
		if t.hasLoad {
			return resolveDefault(t.loadDefault), nil
		}
		return Missing, nil
	}
	return t.inner.Load(v, ctx)
}

// Dump implements Type. Only an internal MISSING is substituted: an
// explicit non-MISSING internal value (including a zero value) is always
// dumped through the inner type, preserving the documented load/dump
// asymmetry (§9 Q2).
func (t *OptionalType) Dump(internal any, ctx any) (Value, *ValidationError) {
	if IsMissing(internal) {
		if t.hasDump {
			return t.inner.Dump(resolveDefault(t.dumpDefault), ctx)
		}
		return Null(), nil
	}
	return t.inner.Dump(internal, ctx)
}

// Validate implements Type.
func (t *OptionalType) Validate(v Value, ctx any) *ValidationError {
	return doValidate(t.Load, v, ctx)
}

// LoadOnlyType wraps an inner type and forbids Dump entirely: any
// attempt to Dump (including of MISSING) raises (§4.5). Useful for
// write-only fields such as passwords.
type LoadOnlyType struct {
	proxyBase
}

// NewLoadOnly constructs a LoadOnly wrapping inner.
func NewLoadOnly(inner Type) *LoadOnlyType {
	return &LoadOnlyType{proxyBase{inner: inner}}
}

// Load implements Type, delegating to the inner type.
func (t *LoadOnlyType) Load(v Value, ctx any) (any, *ValidationError) {
	return t.inner.Load(v, ctx)
}

// Dump implements Type; it always fails.
func (t *LoadOnlyType) Dump(_ any, _ any) (Value, *ValidationError) {
	return Value{}, Leaf("field is load-only and cannot be dumped")
}

// Validate implements Type.
func (t *LoadOnlyType) Validate(v Value, ctx any) *ValidationError {
	return doValidate(t.Load, v, ctx)
}

// DumpOnlyType wraps an inner type and forbids Load entirely: any
// attempt to Load always produces MISSING without error, so the field is
// silently absent from a fresh load and only ever appears via Dump
// (§4.5). Useful for read-only/computed fields.
type DumpOnlyType struct {
	proxyBase
}

// NewDumpOnly constructs a DumpOnly wrapping inner.
func NewDumpOnly(inner Type) *DumpOnlyType {
	return &DumpOnlyType{proxyBase{inner: inner}}
}

// Load implements Type; it always succeeds with MISSING.
func (t *DumpOnlyType) Load(_ Value, _ any) (any, *ValidationError) {
	return Missing, nil
}

// Dump implements Type, delegating to the inner type.
func (t *DumpOnlyType) Dump(internal any, ctx any) (Value, *ValidationError) {
	return t.inner.Dump(internal, ctx)
}

// Validate implements Type.
func (t *DumpOnlyType) Validate(v Value, ctx any) *ValidationError {
	return doValidate(t.Load, v, ctx)
}

// TransformType wraps an inner type with a pre_load hook (applied to the
// external Value before delegating to inner.Load) and/or a post_dump
// hook (applied to the external Value inner.Dump produced) — §4.5's
// mechanism for retrofitting coercions onto an existing type without
// subclassing it.
type TransformType struct {
	proxyBase
	preLoad  func(Value) (Value, *ValidationError)
	postDump func(Value) (Value, *ValidationError)
}

// NewTransform constructs a Transform wrapping inner. Either hook may be
// nil to mean "no-op on that side". Hooks return a *ValidationError
// rather than panicking so a rejected coercion (e.g. a malformed UUID
// string) reports through the normal error channel.
func NewTransform(inner Type, preLoad, postDump func(Value) (Value, *ValidationError)) *TransformType {
	return &TransformType{proxyBase: proxyBase{inner: inner}, preLoad: preLoad, postDump: postDump}
}

// Load implements Type: preLoad runs before the inner type sees the
// value. MISSING never reaches preLoad, matching the kernel-wide rule
// that MISSING is a Load/Dump-boundary concept, not a Value.
func (t *TransformType) Load(v Value, ctx any) (any, *ValidationError) {
	if t.preLoad != nil {
		transformed, err := t.preLoad(v)
		if err != nil {
			return nil, err
		}
		v = transformed
	}
	return t.inner.Load(v, ctx)
}

// Dump implements Type: postDump runs on the inner type's successful
// output.
func (t *TransformType) Dump(internal any, ctx any) (Value, *ValidationError) {
	dumped, err := t.inner.Dump(internal, ctx)
	if err != nil {
		return Value{}, err
	}
	if t.postDump != nil {
		return t.postDump(dumped)
	}
	return dumped, nil
}

// Validate implements Type.
func (t *TransformType) Validate(v Value, ctx any) *ValidationError {
	return doValidate(t.Load, v, ctx)
}
