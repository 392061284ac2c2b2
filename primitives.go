package lollipop

import "time"

// AnyType accepts any external value and passes it through unchanged,
// boxed as the internal Value itself (§4.4: "Any"). It is the only
// primitive whose internal representation is the external Value rather
// than a native Go scalar.
type AnyType struct{ base }

// NewAny constructs the Any type.
func NewAny(validators ...any) *AnyType {
	return &AnyType{base: newBase("Any", "any value", AdaptValidators(validators...))}
}

func (t *AnyType) selfLoad(v Value, _ any) (any, *ValidationError) {
	return v, nil
}

func (t *AnyType) selfDump(internal any, _ any) (Value, *ValidationError) {
	if v, ok := internal.(Value); ok {
		return v, nil
	}
	return Value{}, Leaf("value is not a loaded Any value")
}

// Load implements Type.
func (t *AnyType) Load(v Value, ctx any) (any, *ValidationError) {
	return doLoad(t.selfLoad, t.validators, v, ctx)
}

// Dump implements Type.
func (t *AnyType) Dump(internal any, ctx any) (Value, *ValidationError) {
	return doDump(t.selfDump, internal, ctx)
}

// Validate implements Type.
func (t *AnyType) Validate(v Value, ctx any) *ValidationError {
	return doValidate(t.Load, v, ctx)
}

// StringType accepts a String external value and loads it as a Go string.
type StringType struct{ base }

// NewString constructs the String type.
func NewString(validators ...any) *StringType {
	return &StringType{base: newBase("String", "a string", AdaptValidators(validators...))}
}

func (t *StringType) selfLoad(v Value, _ any) (any, *ValidationError) {
	s, ok := v.AsString()
	if !ok {
		return nil, Leaff("expected a string, got a %s", v.Kind())
	}
	return s, nil
}

func (t *StringType) selfDump(internal any, _ any) (Value, *ValidationError) {
	s, ok := internal.(string)
	if !ok {
		return Value{}, Leaf("value is not a string")
	}
	return Str(s), nil
}

func (t *StringType) Load(v Value, ctx any) (any, *ValidationError) {
	return doLoad(t.selfLoad, t.validators, v, ctx)
}
func (t *StringType) Dump(internal any, ctx any) (Value, *ValidationError) {
	return doDump(t.selfDump, internal, ctx)
}
func (t *StringType) Validate(v Value, ctx any) *ValidationError {
	return doValidate(t.Load, v, ctx)
}

// IntegerType accepts an Int external value and loads it as a Go int64.
type IntegerType struct{ base }

// NewInteger constructs the Integer type.
func NewInteger(validators ...any) *IntegerType {
	return &IntegerType{base: newBase("Integer", "an integer", AdaptValidators(validators...))}
}

func (t *IntegerType) selfLoad(v Value, _ any) (any, *ValidationError) {
	i, ok := v.AsInt()
	if !ok {
		return nil, Leaff("expected an integer, got a %s", v.Kind())
	}
	return i, nil
}

func (t *IntegerType) selfDump(internal any, _ any) (Value, *ValidationError) {
	switch i := internal.(type) {
	case int64:
		return Int(i), nil
	case int:
		return Int(int64(i)), nil
	default:
		return Value{}, Leaf("value is not an integer")
	}
}

func (t *IntegerType) Load(v Value, ctx any) (any, *ValidationError) {
	return doLoad(t.selfLoad, t.validators, v, ctx)
}
func (t *IntegerType) Dump(internal any, ctx any) (Value, *ValidationError) {
	return doDump(t.selfDump, internal, ctx)
}
func (t *IntegerType) Validate(v Value, ctx any) *ValidationError {
	return doValidate(t.Load, v, ctx)
}

// FloatType accepts an Int or Float external value (integers widen
// losslessly) and loads it as a Go float64.
type FloatType struct{ base }

// NewFloat constructs the Float type.
func NewFloat(validators ...any) *FloatType {
	return &FloatType{base: newBase("Float", "a floating point number", AdaptValidators(validators...))}
}

func (t *FloatType) selfLoad(v Value, _ any) (any, *ValidationError) {
	if f, ok := v.AsFloat(); ok {
		return f, nil
	}
	if i, ok := v.AsInt(); ok {
		return float64(i), nil
	}
	return nil, Leaff("expected a number, got a %s", v.Kind())
}

func (t *FloatType) selfDump(internal any, _ any) (Value, *ValidationError) {
	switch f := internal.(type) {
	case float64:
		return Float(f), nil
	case int64:
		return Float(float64(f)), nil
	default:
		return Value{}, Leaf("value is not a number")
	}
}

func (t *FloatType) Load(v Value, ctx any) (any, *ValidationError) {
	return doLoad(t.selfLoad, t.validators, v, ctx)
}
func (t *FloatType) Dump(internal any, ctx any) (Value, *ValidationError) {
	return doDump(t.selfDump, internal, ctx)
}
func (t *FloatType) Validate(v Value, ctx any) *ValidationError {
	return doValidate(t.Load, v, ctx)
}

// BooleanType accepts a Bool external value and loads it as a Go bool.
type BooleanType struct{ base }

// NewBoolean constructs the Boolean type.
func NewBoolean(validators ...any) *BooleanType {
	return &BooleanType{base: newBase("Boolean", "a boolean", AdaptValidators(validators...))}
}

func (t *BooleanType) selfLoad(v Value, _ any) (any, *ValidationError) {
	b, ok := v.AsBool()
	if !ok {
		return nil, Leaff("expected a boolean, got a %s", v.Kind())
	}
	return b, nil
}

func (t *BooleanType) selfDump(internal any, _ any) (Value, *ValidationError) {
	b, ok := internal.(bool)
	if !ok {
		return Value{}, Leaf("value is not a boolean")
	}
	return Bool(b), nil
}

func (t *BooleanType) Load(v Value, ctx any) (any, *ValidationError) {
	return doLoad(t.selfLoad, t.validators, v, ctx)
}
func (t *BooleanType) Dump(internal any, ctx any) (Value, *ValidationError) {
	return doDump(t.selfDump, internal, ctx)
}
func (t *BooleanType) Validate(v Value, ctx any) *ValidationError {
	return doValidate(t.Load, v, ctx)
}

// dateLayout, timeLayout and dateTimeLayout fix the external string
// encodings for the Date/Time/DateTime primitives (§4.4). RFC 3339 and
// its date/time-only projections were chosen for unambiguous, locale-free
// round-tripping.
const (
	dateLayout     = "2006-01-02"
	timeLayout     = "15:04:05"
	dateTimeLayout = time.RFC3339
)

// DateType accepts a String external value formatted as YYYY-MM-DD and
// loads it as a Go time.Time truncated to the date.
type DateType struct{ base }

// NewDate constructs the Date type.
func NewDate(validators ...any) *DateType {
	return &DateType{base: newBase("Date", "a calendar date", AdaptValidators(validators...))}
}

func (t *DateType) selfLoad(v Value, _ any) (any, *ValidationError) {
	s, ok := v.AsString()
	if !ok {
		return nil, Leaff("expected a date string, got a %s", v.Kind())
	}
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, Leaff("invalid date: %s", err)
	}
	return d, nil
}

func (t *DateType) selfDump(internal any, _ any) (Value, *ValidationError) {
	d, ok := internal.(time.Time)
	if !ok {
		return Value{}, Leaf("value is not a date")
	}
	return Str(d.Format(dateLayout)), nil
}

func (t *DateType) Load(v Value, ctx any) (any, *ValidationError) {
	return doLoad(t.selfLoad, t.validators, v, ctx)
}
func (t *DateType) Dump(internal any, ctx any) (Value, *ValidationError) {
	return doDump(t.selfDump, internal, ctx)
}
func (t *DateType) Validate(v Value, ctx any) *ValidationError {
	return doValidate(t.Load, v, ctx)
}

// TimeType accepts a String external value formatted as HH:MM:SS and
// loads it as a Go time.Time with a zero calendar date.
type TimeType struct{ base }

// NewTime constructs the Time type.
func NewTime(validators ...any) *TimeType {
	return &TimeType{base: newBase("Time", "a time of day", AdaptValidators(validators...))}
}

func (t *TimeType) selfLoad(v Value, _ any) (any, *ValidationError) {
	s, ok := v.AsString()
	if !ok {
		return nil, Leaff("expected a time string, got a %s", v.Kind())
	}
	d, err := time.Parse(timeLayout, s)
	if err != nil {
		return nil, Leaff("invalid time: %s", err)
	}
	return d, nil
}

func (t *TimeType) selfDump(internal any, _ any) (Value, *ValidationError) {
	d, ok := internal.(time.Time)
	if !ok {
		return Value{}, Leaf("value is not a time")
	}
	return Str(d.Format(timeLayout)), nil
}

func (t *TimeType) Load(v Value, ctx any) (any, *ValidationError) {
	return doLoad(t.selfLoad, t.validators, v, ctx)
}
func (t *TimeType) Dump(internal any, ctx any) (Value, *ValidationError) {
	return doDump(t.selfDump, internal, ctx)
}
func (t *TimeType) Validate(v Value, ctx any) *ValidationError {
	return doValidate(t.Load, v, ctx)
}

// DateTimeType accepts a String external value in RFC 3339 form and
// loads it as a Go time.Time.
type DateTimeType struct{ base }

// NewDateTime constructs the DateTime type.
func NewDateTime(validators ...any) *DateTimeType {
	return &DateTimeType{base: newBase("DateTime", "a date and time", AdaptValidators(validators...))}
}

func (t *DateTimeType) selfLoad(v Value, _ any) (any, *ValidationError) {
	s, ok := v.AsString()
	if !ok {
		return nil, Leaff("expected a datetime string, got a %s", v.Kind())
	}
	d, err := time.Parse(dateTimeLayout, s)
	if err != nil {
		return nil, Leaff("invalid datetime: %s", err)
	}
	return d, nil
}

func (t *DateTimeType) selfDump(internal any, _ any) (Value, *ValidationError) {
	d, ok := internal.(time.Time)
	if !ok {
		return Value{}, Leaf("value is not a datetime")
	}
	return Str(d.Format(dateTimeLayout)), nil
}

func (t *DateTimeType) Load(v Value, ctx any) (any, *ValidationError) {
	return doLoad(t.selfLoad, t.validators, v, ctx)
}
func (t *DateTimeType) Dump(internal any, ctx any) (Value, *ValidationError) {
	return doDump(t.selfDump, internal, ctx)
}
func (t *DateTimeType) Validate(v Value, ctx any) *ValidationError {
	return doValidate(t.Load, v, ctx)
}

// structuralLoad exposes each primitive's coercion step independent of
// its own validators, so ValidatedType can prepend a validator ahead of
// the wrapped type's validators instead of running after them (§4.10).
func (t *AnyType) structuralLoad(v Value, ctx any) (any, *ValidationError)      { return t.selfLoad(v, ctx) }
func (t *StringType) structuralLoad(v Value, ctx any) (any, *ValidationError)   { return t.selfLoad(v, ctx) }
func (t *IntegerType) structuralLoad(v Value, ctx any) (any, *ValidationError)  { return t.selfLoad(v, ctx) }
func (t *FloatType) structuralLoad(v Value, ctx any) (any, *ValidationError)    { return t.selfLoad(v, ctx) }
func (t *BooleanType) structuralLoad(v Value, ctx any) (any, *ValidationError)  { return t.selfLoad(v, ctx) }
func (t *DateType) structuralLoad(v Value, ctx any) (any, *ValidationError)     { return t.selfLoad(v, ctx) }
func (t *TimeType) structuralLoad(v Value, ctx any) (any, *ValidationError)     { return t.selfLoad(v, ctx) }
func (t *DateTimeType) structuralLoad(v Value, ctx any) (any, *ValidationError) { return t.selfLoad(v, ctx) }
