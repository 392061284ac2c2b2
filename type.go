package lollipop

// sealer is an unexported token that only this package can construct,
// sealing the Type and Field interfaces so external packages cannot add
// new variants (§9: "model as a sealed variant of type descriptors").
type sealer struct{}

// Type is an immutable, bidirectional codec plus validator (§2, §4.3):
// Load converts an external Value to an internal value, Dump converts an
// internal value back to a Value, and Validate runs Load but reports the
// structured error shape instead of returning it alongside a value.
//
// Most concrete Types embed base, supply selfLoad/selfDump, and implement
// the public Load/Dump/Validate methods as thin calls into the shared
// load/dump helpers below, which add the common MISSING/validator
// plumbing; the modifiers and the registry proxy implement them directly. This mirrors the teacher's schema.Type split between public,
// sealed accessors and the private state a concrete node fills in.
type Type interface {
	Name() string
	Description() string
	Validators() []Validator
	Load(v Value, ctx any) (any, *ValidationError)
	Dump(internal any, ctx any) (Value, *ValidationError)
	Validate(v Value, ctx any) *ValidationError

	sealed(sealer)
}

// base holds the metadata and validator list common to every concrete
// Type (§4.3). Concrete types embed base and add their own selfLoad/
// selfDump logic plus a Load/Dump method that delegates to the load/dump
// package helpers.
type base struct {
	name        string
	description string
	validators  []Validator
}

func newBase(name, description string, validators []Validator) base {
	return base{name: name, description: description, validators: validators}
}

// Name returns the type's name, used in error messages and OneOf tags.
func (b base) Name() string { return b.name }

// Description returns the type's human-readable description.
func (b base) Description() string { return b.description }

// Validators returns the validators installed at construction time.
func (b base) Validators() []Validator {
	return append([]Validator(nil), b.validators...)
}

func (b base) sealed(sealer) {}

// selfLoadFunc is a concrete Type's private Load override point (§4.3's
// "_load"): it receives the raw external Value (never MISSING, which
// exists only on the internal side) and returns an internal value or a
// leaf/nested error.
type selfLoadFunc func(v Value, ctx any) (any, *ValidationError)

// structuralLoader is implemented by every concrete Type below that
// separates its coercion step ("_load") from its own validators. It lets
// ValidatedType (§4.10) prepend a validator ahead of an inner type's
// validators instead of running after them: calling inner.Load would
// bundle inner's validators in before ValidatedType's own ever get a
// chance to run, and would skip them entirely if inner's own validators
// reject the value. Types with no validator layer of their own (the
// modifiers in modifiers.go, and the TypeRegistry proxy) have no need to
// implement it; ValidatedType falls back to inner.Load for those.
type structuralLoader interface {
	structuralLoad(v Value, ctx any) (any, *ValidationError)
}

// selfDumpFunc is a concrete Type's private Dump override point
// (§4.3's "_dump"): it receives a non-MISSING internal value.
type selfDumpFunc func(internal any, ctx any) (Value, *ValidationError)

// doLoad implements the common Load algorithm (§4.3): run the concrete
// type's _load, then run its validators against the result. Validators
// never run against a value selfLoad rejected.
func doLoad(self selfLoadFunc, validators []Validator, v Value, ctx any) (any, *ValidationError) {
	internal, err := self(v, ctx)
	if err != nil {
		return nil, err
	}
	if verr := runValidators(validators, internal, ctx); verr != nil {
		return nil, verr
	}
	return internal, nil
}

// doDump implements the common Dump algorithm (§4.3): MISSING is
// rejected with "value is required" unless the caller is a modifier
// (Optional/LoadOnly) that intercepts MISSING before ever calling doDump;
// DumpOnly passes MISSING on to its inner type, which rejects it here. Dump does not re-run validators: a value already
// passed them on the way in, or was constructed internally by the
// caller's own code.
func doDump(self selfDumpFunc, internal any, ctx any) (Value, *ValidationError) {
	if IsMissing(internal) {
		return Value{}, Leaf("value is required")
	}
	return self(internal, ctx)
}

// doValidate implements Validate in terms of Load, as specified by
// §4.3 ("Validate = Load but returns error shape instead of raising").
func doValidate(loadFn func(Value, any) (any, *ValidationError), v Value, ctx any) *ValidationError {
	_, err := loadFn(v, ctx)
	return err
}
