package lollipop

import (
	"fmt"
	"log/slog"
	"sync"
)

// Constructor builds an application-side instance from a field-name-keyed
// map of freshly-Loaded internal values (§4.7). If constructor is nil at
// construction time and no base supplies one, Object defaults to
// producing a *DictValue ordered by field declaration order — a generic
// record for callers that have no concrete Go type to build.
type Constructor func(fields map[string]any, ctx any) (any, error)

func defaultConstructor(order []string) Constructor {
	return func(fields map[string]any, _ any) (any, error) {
		out := NewDictValue()
		for _, name := range order {
			if v, ok := fields[name]; ok {
				out.Set(name, v)
			}
		}
		return out, nil
	}
}

// FieldEntry pairs a field name with its Field descriptor, used to build
// Object's own (non-inherited) field list in declaration order.
type FieldEntry struct {
	Name  string
	Field Field
}

// objectConfig carries Object's constructor-time configuration. Pointer
// fields distinguish "not set here" from "explicitly set to the zero
// value", which is what lets base-composition fall through to the first
// base that set a given option (§9 Q3).
type objectConfig struct {
	constructor      Constructor
	allowExtraFields *bool
	immutable        *bool
	ordered          *bool
}

// ObjectOption configures an ObjectType at construction time, following
// the teacher's functional-options idiom (ValidatorOption/applyOptions).
type ObjectOption func(*objectConfig)

// WithConstructor sets the function Object.Load uses to assemble a fresh
// instance from loaded field values.
func WithConstructor(fn Constructor) ObjectOption {
	return func(c *objectConfig) { c.constructor = fn }
}

// WithAllowExtraFields permits external mappings to carry keys the
// schema does not define, instead of reporting them as unknown fields.
func WithAllowExtraFields() ObjectOption {
	return func(c *objectConfig) { b := true; c.allowExtraFields = &b }
}

// WithImmutable marks instances of this Object as not updatable via
// LoadInto.
func WithImmutable() ObjectOption {
	return func(c *objectConfig) { b := true; c.immutable = &b }
}

// WithOrdered requests declaration-order key emission on Dump (the
// default already is declaration order; WithOrdered exists so the intent
// can be stated explicitly, matching spec.md's own named option).
func WithOrdered() ObjectOption {
	return func(c *objectConfig) { b := true; c.ordered = &b }
}

// resolvedFields is the cached, flattened view of an Object's fields
// after base composition and only/exclude filtering (§4.7).
type resolvedFields struct {
	order  []string
	byName map[string]Field
}

// ObjectType composes named Fields, optionally inherited from other
// Objects ("bases"), into a single record codec (§4.7): later bases
// override earlier ones, an Object's own fields override every base,
// and "only"/"exclude" filter which *inherited* fields survive (never
// the object's own fields).
//
// Field resolution and option inheritance are computed once, lazily, and
// cached — a sync.Once-guarded materialization step, mirroring the
// teacher's Seal()-then-cache pattern (§4.9).
type ObjectType struct {
	base

	bases     []*ObjectType
	ownFields []FieldEntry
	only      []string
	exclude   []string
	config    objectConfig

	// lazyRef is set only on the proxy ObjectType RefBase returns: such a
	// proxy carries no ownFields/config of its own and instead resolves
	// to a real *ObjectType (possibly through a TypeRegistry forward
	// reference) the first time resolve() runs.
	lazyRef Type

	once     sync.Once
	resolved resolvedFields
	opts     resolvedOptions
}

type resolvedOptions struct {
	constructor Constructor
	// customCtor is true when constructor was set explicitly (here or on a
	// base) rather than being the default *DictValue constructor.
	customCtor       bool
	allowExtraFields bool
	immutable        bool
	ordered          bool
}

// NewObject constructs an Object. name/description/validators follow the
// same shape as every other Type constructor, where validators here are
// whole-object invariants run after every field loads successfully
// (§4.7's "evaluate invariants").
func NewObject(name, description string, ownFields []FieldEntry, bases []*ObjectType, validators []any, opts ...ObjectOption) *ObjectType {
	var cfg objectConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return &ObjectType{
		base:      newBase(name, description, AdaptValidators(validators...)),
		bases:     bases,
		ownFields: ownFields,
		config:    cfg,
	}
}

// WithOnly restricts which inherited fields this Object keeps (own
// fields are never filtered). It returns a new ObjectType sharing the
// same bases/own fields but a narrowed "only" list — Object construction
// is otherwise immutable, so narrowing happens by rebuilding the filter
// lists, not by mutating an already-resolved Object.
func (o *ObjectType) WithOnly(names ...string) *ObjectType {
	clone := *o
	clone.only = names
	clone.once = sync.Once{}
	return &clone
}

// WithExclude restricts which inherited fields this Object drops (own
// fields are never filtered). See WithOnly.
func (o *ObjectType) WithExclude(names ...string) *ObjectType {
	clone := *o
	clone.exclude = names
	clone.once = sync.Once{}
	return &clone
}

// baseFilterConfig carries RefBase's only/exclude filter.
type baseFilterConfig struct {
	only    []string
	exclude []string
}

// BaseFilterOption configures a RefBase.
type BaseFilterOption func(*baseFilterConfig)

// WithBaseOnly restricts a RefBase to the named inherited fields.
func WithBaseOnly(names ...string) BaseFilterOption {
	return func(c *baseFilterConfig) { c.only = names }
}

// WithBaseExclude drops the named inherited fields from a RefBase.
func WithBaseExclude(names ...string) BaseFilterOption {
	return func(c *baseFilterConfig) { c.exclude = names }
}

// RefBase adapts a Type — typically a TypeRegistry.Ref forward reference
// — for use as an Object base, with an optional only/exclude filter
// applied once the reference actually resolves (§4.9 seed scenario 6:
// `Object(registry["Book"], exclude='author')` excludes a field reached
// only through a registry reference, before Book itself is registered).
// The returned *ObjectType is a thin proxy: it carries no fields of its
// own and defers entirely to whatever ref resolves to, the first time
// this Object's fields are resolved.
func RefBase(ref Type, opts ...BaseFilterOption) *ObjectType {
	cfg := &baseFilterConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return &ObjectType{lazyRef: ref, only: cfg.only, exclude: cfg.exclude}
}

// resolveObjectRef dereferences a TypeRegistry forward reference (if t is
// one) down to the concrete *ObjectType it names.
func resolveObjectRef(t Type) *ObjectType {
	if ref, ok := t.(*typeRef); ok {
		t = ref.resolve()
	}
	obj, ok := t.(*ObjectType)
	if !ok {
		panic(fmt.Sprintf("lollipop: base reference %q does not resolve to an Object", t.Name()))
	}
	return obj
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}

// resolve computes (once) the flattened field set and inherited options,
// caching the result for every subsequent Load/Dump.
func (o *ObjectType) resolve() resolvedFields {
	o.once.Do(func() {
		if o.lazyRef != nil {
			// A RefBase proxy is used as a base of some other Object, so
			// its whole resolved field set (target's own fields AND
			// whatever target itself inherited) is "inherited" from this
			// proxy's point of view — only/exclude therefore filter
			// target.resolve()'s output directly, not target's own bases
			// (WithOnly/WithExclude filter the latter and would leave an
			// own field like Book.author untouched).
			target := resolveObjectRef(o.lazyRef)
			resolved := target.resolve()
			if len(o.only) > 0 || len(o.exclude) > 0 {
				onlySet := toSet(o.only)
				excludeSet := toSet(o.exclude)
				var filteredOrder []string
				for _, name := range resolved.order {
					if len(onlySet) > 0 && !onlySet[name] {
						continue
					}
					if excludeSet[name] {
						continue
					}
					filteredOrder = append(filteredOrder, name)
				}
				filtered := make(map[string]Field, len(filteredOrder))
				for _, name := range filteredOrder {
					filtered[name] = resolved.byName[name]
				}
				resolved = resolvedFields{order: filteredOrder, byName: filtered}
			}
			o.resolved = resolved
			o.opts = target.opts
			return
		}
		merged := map[string]Field{}
		var order []string
		for _, b := range o.bases {
			bf := b.resolve()
			for _, name := range bf.order {
				if existing, ok := merged[name]; ok && existing != bf.byName[name] {
					slog.Debug("lollipop: base field redefinition", "object", o.name, "field", name)
				}
				if _, ok := merged[name]; !ok {
					order = append(order, name)
				}
				merged[name] = bf.byName[name]
			}
		}
		if len(o.only) > 0 || len(o.exclude) > 0 {
			onlySet := toSet(o.only)
			excludeSet := toSet(o.exclude)
			var filteredOrder []string
			for _, name := range order {
				if len(onlySet) > 0 && !onlySet[name] {
					continue
				}
				if excludeSet[name] {
					continue
				}
				filteredOrder = append(filteredOrder, name)
			}
			filtered := make(map[string]Field, len(filteredOrder))
			for _, name := range filteredOrder {
				filtered[name] = merged[name]
			}
			merged, order = filtered, filteredOrder
		}
		for _, entry := range o.ownFields {
			if _, ok := merged[entry.Name]; !ok {
				order = append(order, entry.Name)
			}
			merged[entry.Name] = entry.Field
		}
		o.resolved = resolvedFields{order: order, byName: merged}
		o.opts = o.resolveOptions(order)
	})
	return o.resolved
}

// resolveOptions applies the "first base that sets it, own option wins"
// rule (§9 Q3).
func (o *ObjectType) resolveOptions(order []string) resolvedOptions {
	out := resolvedOptions{constructor: defaultConstructor(order)}
	var haveCtor, haveExtra, haveImmutable, haveOrdered bool
	for _, b := range o.bases {
		bo := b.opts
		if !haveCtor && bo.customCtor {
			out.constructor, out.customCtor, haveCtor = bo.constructor, true, true
		}
		if !haveExtra && b.config.allowExtraFields != nil {
			out.allowExtraFields, haveExtra = *b.config.allowExtraFields, true
		}
		if !haveImmutable && b.config.immutable != nil {
			out.immutable, haveImmutable = *b.config.immutable, true
		}
		if !haveOrdered && b.config.ordered != nil {
			out.ordered, haveOrdered = *b.config.ordered, true
		}
	}
	if o.config.constructor != nil {
		out.constructor, out.customCtor = o.config.constructor, true
	}
	if o.config.allowExtraFields != nil {
		out.allowExtraFields = *o.config.allowExtraFields
	}
	if o.config.immutable != nil {
		out.immutable = *o.config.immutable
	}
	if o.config.ordered != nil {
		out.ordered = *o.config.ordered
	}
	return out
}

// tolerateMissing reports whether ft supplies a value when a field key
// is altogether absent from the external mapping, and if so, what that
// value is. Only Optional (via its load default) and DumpOnly (which
// never loads from external data at all) tolerate an absent key;
// everything else requires it.
func tolerateMissing(ft Type, ctx any) (any, bool) {
	switch t := ft.(type) {
	case *OptionalType:
		if t.hasLoad {
			return resolveDefault(t.loadDefault), true
		}
		return Missing, true
	case *DumpOnlyType:
		return Missing, true
	case *LoadOnlyType:
		return tolerateMissing(t.inner, ctx)
	case *TransformType:
		return tolerateMissing(t.inner, ctx)
	default:
		return nil, false
	}
}

// hasLoadDestination reports whether f has anywhere to write a value on
// in-place update (§4.6): MethodField and ConstantField never do, and a
// FunctionField with a nil setter is dump-only by construction.
func hasLoadDestination(f Field) bool {
	switch ff := f.(type) {
	case *MethodField:
		return false
	case *ConstantField:
		return false
	case *FunctionField:
		return ff.set != nil
	default:
		return true
	}
}

func (o *ObjectType) selfLoad(v Value, ctx any) (any, *ValidationError) {
	m, ok := v.AsMap()
	if !ok {
		return nil, Leaff("expected a mapping, got a %s", v.Kind())
	}
	fields := o.resolve()
	eb := NewErrorBuilder()
	kwargs := map[string]any{}
	seen := make(map[string]bool, len(fields.order))
	for _, name := range fields.order {
		field := fields.byName[name]
		seen[name] = true
		raw, present := m.Get(name)
		var loaded any
		var err *ValidationError
		if present {
			loaded, err = field.FieldType().Load(raw, ctx)
		} else if def, ok := tolerateMissing(field.FieldType(), ctx); ok {
			loaded = def
		} else {
			eb.AddError(name, "Value is required")
			continue
		}
		if err != nil {
			eb.AddValidationError(name, err)
			continue
		}
		if IsMissing(loaded) {
			// A DumpOnly field, or an Optional with no load default,
			// tolerates an absent key by yielding MISSING (tolerateMissing
			// above); that sentinel never becomes a constructor argument
			// (§4.7 step 6: "omitting fields whose load produced MISSING").
			continue
		}
		kwargs[name] = loaded
	}
	if !o.opts.allowExtraFields {
		for _, key := range m.Keys() {
			if !seen[key] {
				eb.AddError(key, "unknown field")
			}
		}
	}
	if eb.HasErrors() {
		return nil, eb.RaiseErrors().(*ValidationError)
	}
	instance, err := o.opts.constructor(kwargs, ctx)
	if err != nil {
		return nil, Leaf(err.Error())
	}
	if verr := o.evaluateInvariants(instance, ctx); verr != nil {
		return nil, verr
	}
	return instance, nil
}

func (o *ObjectType) selfDump(internal any, ctx any) (Value, *ValidationError) {
	fields := o.resolve()
	out := NewMap()
	eb := NewErrorBuilder()
	for _, name := range fields.order {
		field := fields.byName[name]
		raw := field.DumpValue(internal, ctx)
		dumped, err := field.FieldType().Dump(raw, ctx)
		if err != nil {
			eb.AddValidationError(name, err)
			continue
		}
		out.Set(name, dumped)
	}
	if eb.HasErrors() {
		return Value{}, eb.RaiseErrors().(*ValidationError)
	}
	return MapVal(out), nil
}

// evaluateInvariants runs the Object's own whole-record validators
// against a fully-assembled instance, after every field has individually
// succeeded (§4.7: invariants never run against a partially-valid
// instance).
func (o *ObjectType) evaluateInvariants(instance any, ctx any) *ValidationError {
	return runValidators(o.validators, instance, ctx)
}

// Load implements Type.
func (o *ObjectType) Load(v Value, ctx any) (any, *ValidationError) {
	return o.selfLoad(v, ctx)
}

// Dump implements Type.
func (o *ObjectType) Dump(internal any, ctx any) (Value, *ValidationError) {
	return doDump(o.selfDump, internal, ctx)
}

// Validate implements Type.
func (o *ObjectType) Validate(v Value, ctx any) *ValidationError {
	return doValidate(o.Load, v, ctx)
}

// LoadInto partially updates an existing instance in place (§4.7): only
// the fields actually present in v are loaded, each written back via its
// Field's SetValue, and the whole-object invariants are then evaluated
// against the merged (mutated) instance. Immutable Objects always
// reject LoadInto.
func (o *ObjectType) LoadInto(instance any, v Value, ctx any) *ValidationError {
	fields := o.resolve()
	if o.opts.immutable {
		return Leaf("object is immutable and cannot be partially updated")
	}
	m, ok := v.AsMap()
	if !ok {
		return Leaff("expected a mapping, got a %s", v.Kind())
	}
	eb := NewErrorBuilder()
	for _, name := range fields.order {
		raw, present := m.Get(name)
		if !present {
			continue
		}
		field := fields.byName[name]
		if !hasLoadDestination(field) {
			// MethodField/ConstantField (and a FunctionField with no
			// setter) describe derived/computed data with nowhere to
			// write an in-place update: §4.7 "DumpOnly fields are
			// silently skipped during load_into" extends to every field
			// kind that lacks a load destination (§4.6).
			continue
		}
		loaded, err := field.FieldType().Load(raw, ctx)
		if err != nil {
			eb.AddValidationError(name, err)
			continue
		}
		if IsMissing(loaded) {
			// A DumpOnly-wrapped field type always loads to MISSING;
			// silently drop it rather than writing the sentinel in.
			continue
		}
		if serr := field.SetValue(instance, loaded, ctx); serr != nil {
			eb.AddError(name, serr.Error())
		}
	}
	if !o.opts.allowExtraFields {
		for _, key := range m.Keys() {
			if _, known := fields.byName[key]; !known {
				eb.AddError(key, "unknown field")
			}
		}
	}
	if eb.HasErrors() {
		return eb.RaiseErrors().(*ValidationError)
	}
	return o.evaluateInvariants(instance, ctx)
}

// structuralLoad implements structuralLoader (§4.10).
func (o *ObjectType) structuralLoad(v Value, ctx any) (any, *ValidationError) {
	return o.selfLoad(v, ctx)
}

// ValidateFor reports whether v would be a valid partial update for
// instance, without mutating it (§4.7): every present field is Loaded
// (but not written back), and invariants run against instance as it
// already stands, which is sufficient to catch field-level problems
// without requiring a defensive copy of the instance.
func (o *ObjectType) ValidateFor(instance any, v Value, ctx any) *ValidationError {
	fields := o.resolve()
	m, ok := v.AsMap()
	if !ok {
		return Leaff("expected a mapping, got a %s", v.Kind())
	}
	eb := NewErrorBuilder()
	for _, name := range fields.order {
		raw, present := m.Get(name)
		if !present {
			continue
		}
		field := fields.byName[name]
		if _, err := field.FieldType().Load(raw, ctx); err != nil {
			eb.AddValidationError(name, err)
		}
	}
	if eb.HasErrors() {
		return eb.RaiseErrors().(*ValidationError)
	}
	return o.evaluateInvariants(instance, ctx)
}
