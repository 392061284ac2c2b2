package lollipop

// ValidatedType derives a new, independently-named Type from an existing
// one by prepending a validator (§4.10): the new validator is merged
// ahead of inner's own validators into one list, run together against
// inner's structural load result, rather than run as a second pass after
// inner.Load already succeeded or failed on its own. This is the
// mechanism behind the package's Email/UUID/Slug-style examples — a
// "shaped string" without writing a whole new Type from scratch.
type ValidatedType struct {
	base
	inner Type
}

// NewValidatedType constructs a ValidatedType named name/description,
// wrapping inner and additionally requiring validator, ahead of inner's
// own validators in run order (§4.10: "prepended").
func NewValidatedType(inner Type, name, description string, validator any) *ValidatedType {
	merged := append([]Validator{AdaptValidator(validator)}, inner.Validators()...)
	return &ValidatedType{
		base:  newBase(name, description, merged),
		inner: inner,
	}
}

// selfLoad prefers inner's structural coercion step over its full Load:
// inner's validators are already folded into t.validators above, so
// running inner.Load here would both double-run them and, on inner
// validator failure, skip the prepended validator entirely since Load
// would never reach doLoad's validator pass. Inner types that don't
// separate coercion from validation (typeRef, the modifiers) have no
// such step to prefer, so they fall back to their ordinary Load.
func (t *ValidatedType) selfLoad(v Value, ctx any) (any, *ValidationError) {
	if sl, ok := t.inner.(structuralLoader); ok {
		return sl.structuralLoad(v, ctx)
	}
	return t.inner.Load(v, ctx)
}

func (t *ValidatedType) selfDump(internal any, ctx any) (Value, *ValidationError) {
	return t.inner.Dump(internal, ctx)
}

// Load implements Type.
func (t *ValidatedType) Load(v Value, ctx any) (any, *ValidationError) {
	return doLoad(t.selfLoad, t.validators, v, ctx)
}

// Dump implements Type. Dump does not re-run the prepended validator:
// like every other Type, validation is a Load-side concern only.
func (t *ValidatedType) Dump(internal any, ctx any) (Value, *ValidationError) {
	return doDump(t.selfDump, internal, ctx)
}

// Validate implements Type.
func (t *ValidatedType) Validate(v Value, ctx any) *ValidationError {
	return doValidate(t.Load, v, ctx)
}

// structuralLoad implements structuralLoader (§4.10): it exposes the same
// structural step selfLoad uses, so a ValidatedType wrapping another
// ValidatedType still prepends correctly rather than falling back to the
// inner ValidatedType's full (validators-included) Load.
func (t *ValidatedType) structuralLoad(v Value, ctx any) (any, *ValidationError) {
	return t.selfLoad(v, ctx)
}
