package lollipop

import (
	"fmt"
	"reflect"
)

// nameResolver is how every Field kind accepts either a literal string or
// a func(instance, ctx) string for its attribute/key/method name
// (§4.6): "resolvable as literal string or func(object, ctx) string".
type nameResolver func(instance any, ctx any) string

func literalName(name string) nameResolver {
	return func(any, any) string { return name }
}

// asNameResolver normalizes the two accepted shapes (a string literal or
// a func(any, any) string) into a nameResolver, resolved once at field
// construction time.
func asNameResolver(name any) nameResolver {
	switch v := name.(type) {
	case string:
		return literalName(v)
	case func(any, any) string:
		return v
	case nameResolver:
		return v
	default:
		panic(fmt.Sprintf("lollipop: field name must be a string or func(any, any) string, got %T", name))
	}
}

// Field is a sealed abstraction over where a value comes from when
// dumping an instance and where it goes when loading one (§4.6). Object
// composes a name-keyed set of Fields to drive its Load/Dump.
type Field interface {
	// FieldType is the Type this field's value loads/dumps through.
	FieldType() Type
	// DumpValue extracts this field's internal value from instance for
	// Dump. It returns Missing if the field has no value to contribute
	// (e.g. an optional attribute absent from a map-backed instance).
	DumpValue(instance any, ctx any) any
	// SetValue writes value into instance in place, for Object's
	// load_into partial-update path (§4.7). Fields that have no
	// reasonable in-place destination (MethodField, ConstantField) return
	// an error.
	SetValue(instance any, value any, ctx any) error

	sealed(sealer)
}

type fieldBase struct {
	fieldType Type
}

func (f fieldBase) FieldType() Type { return f.fieldType }
func (f fieldBase) sealed(sealer)   {}

// AttributeField reads/writes a named attribute (a struct field, when
// instance is a struct or pointer-to-struct; reflect.Value.FieldByName
// resolves it) (§4.6).
type AttributeField struct {
	fieldBase
	attribute nameResolver
}

// NewAttributeField constructs an AttributeField. attribute is a string
// or func(instance, ctx) string.
func NewAttributeField(fieldType Type, attribute any) *AttributeField {
	return &AttributeField{fieldBase: fieldBase{fieldType: fieldType}, attribute: asNameResolver(attribute)}
}

// DumpValue implements Field.
func (f *AttributeField) DumpValue(instance any, ctx any) any {
	rv := reflect.Indirect(reflect.ValueOf(instance))
	if !rv.IsValid() || rv.Kind() != reflect.Struct {
		return Missing
	}
	fv := rv.FieldByName(f.attribute(instance, ctx))
	if !fv.IsValid() {
		return Missing
	}
	return fv.Interface()
}

// SetValue implements Field.
func (f *AttributeField) SetValue(instance any, value any, ctx any) error {
	rv := reflect.ValueOf(instance)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("lollipop: AttributeField.SetValue requires a non-nil pointer, got %T", instance)
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("lollipop: AttributeField.SetValue requires a pointer to struct, got %T", instance)
	}
	fv := rv.FieldByName(f.attribute(instance, ctx))
	if !fv.IsValid() || !fv.CanSet() {
		return fmt.Errorf("lollipop: no settable attribute %q on %T", f.attribute(instance, ctx), instance)
	}
	fv.Set(reflect.ValueOf(value))
	return nil
}

// IndexField reads/writes a named key of a map-backed instance
// (instance implements map[string]any, or wraps one via *DictValue)
// (§4.6).
type IndexField struct {
	fieldBase
	key nameResolver
}

// NewIndexField constructs an IndexField. key is a string or
// func(instance, ctx) string.
func NewIndexField(fieldType Type, key any) *IndexField {
	return &IndexField{fieldBase: fieldBase{fieldType: fieldType}, key: asNameResolver(key)}
}

// DumpValue implements Field.
func (f *IndexField) DumpValue(instance any, ctx any) any {
	key := f.key(instance, ctx)
	switch m := instance.(type) {
	case map[string]any:
		if v, ok := m[key]; ok {
			return v
		}
	case *DictValue:
		if v, ok := m.Get(key); ok {
			return v
		}
	}
	return Missing
}

// SetValue implements Field.
func (f *IndexField) SetValue(instance any, value any, ctx any) error {
	key := f.key(instance, ctx)
	switch m := instance.(type) {
	case map[string]any:
		m[key] = value
		return nil
	case *DictValue:
		m.Set(key, value)
		return nil
	default:
		return fmt.Errorf("lollipop: IndexField.SetValue requires a map[string]any or *DictValue, got %T", instance)
	}
}

// MethodField computes its Dump value by calling a zero-argument method
// on instance (§4.6). It has no load destination: MethodFields describe
// derived/computed data, so SetValue always fails.
type MethodField struct {
	fieldBase
	method nameResolver
}

// NewMethodField constructs a MethodField. method is a string or
// func(instance, ctx) string.
func NewMethodField(fieldType Type, method any) *MethodField {
	return &MethodField{fieldBase: fieldBase{fieldType: fieldType}, method: asNameResolver(method)}
}

// DumpValue implements Field.
func (f *MethodField) DumpValue(instance any, ctx any) any {
	rv := reflect.ValueOf(instance)
	m := rv.MethodByName(f.method(instance, ctx))
	if !m.IsValid() {
		return Missing
	}
	out := m.Call(nil)
	if len(out) == 0 {
		return Missing
	}
	return out[0].Interface()
}

// SetValue implements Field; MethodFields are dump-only.
func (f *MethodField) SetValue(_ any, _ any, _ any) error {
	return fmt.Errorf("lollipop: method fields have no load destination")
}

// FunctionField is the escape hatch: arbitrary get/set closures supplied
// directly by the caller (§4.6), for instances that don't fit the
// attribute/index/method shapes.
type FunctionField struct {
	fieldBase
	get func(instance any, ctx any) any
	set func(instance any, value any, ctx any) error
}

// NewFunctionField constructs a FunctionField. set may be nil, in which
// case SetValue always fails (a dump-only computed field via an
// arbitrary function).
func NewFunctionField(fieldType Type, get func(instance any, ctx any) any, set func(instance any, value any, ctx any) error) *FunctionField {
	return &FunctionField{fieldBase: fieldBase{fieldType: fieldType}, get: get, set: set}
}

// DumpValue implements Field.
func (f *FunctionField) DumpValue(instance any, ctx any) any {
	if f.get == nil {
		return Missing
	}
	return f.get(instance, ctx)
}

// SetValue implements Field.
func (f *FunctionField) SetValue(instance any, value any, ctx any) error {
	if f.set == nil {
		return fmt.Errorf("lollipop: function field has no setter")
	}
	return f.set(instance, value, ctx)
}

// ConstantField always dumps a fixed internal value and ignores instance
// entirely (§4.6); it has no load destination since its value never
// varies per-instance.
type ConstantField struct {
	fieldBase
	value any
}

// NewConstantField constructs a ConstantField.
func NewConstantField(fieldType Type, value any) *ConstantField {
	return &ConstantField{fieldBase: fieldBase{fieldType: fieldType}, value: value}
}

// DumpValue implements Field.
func (f *ConstantField) DumpValue(_ any, _ any) any { return f.value }

// SetValue implements Field; constant fields are dump-only.
func (f *ConstantField) SetValue(_ any, _ any, _ any) error {
	return fmt.Errorf("lollipop: constant fields have no load destination")
}
