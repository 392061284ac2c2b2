package lollipop

import (
	"fmt"
	"strings"
)

// Validator checks an already-loaded internal value, optionally using a
// caller-supplied context, and reports a *ValidationError on failure
// (§4.2). Implementations are expected to be stateless and reusable
// across Load calls.
type Validator interface {
	Validate(value any, ctx any) *ValidationError
}

// ValidatorFunc adapts a plain value-only function to Validator.
type ValidatorFunc func(value any) *ValidationError

// Validate implements Validator.
func (f ValidatorFunc) Validate(value any, _ any) *ValidationError { return f(value) }

// ContextValidatorFunc adapts a value+context function to Validator.
type ContextValidatorFunc func(value any, ctx any) *ValidationError

// Validate implements Validator.
func (f ContextValidatorFunc) Validate(value any, ctx any) *ValidationError { return f(value, ctx) }

// AdaptValidator inspects fn's arity exactly once (at installation time,
// never per call, per §4.2/§9's "context-prebaking" requirement) and
// returns a uniform Validator wrapping it. Accepted shapes:
//
//	Validator                     (used as-is)
//	func(value any) *ValidationError
//	func(value any, ctx any) *ValidationError
//	func(value any) error
//	func(value any, ctx any) error
//
// Any other type panics: this is a programming error, caught at
// construction time rather than surfaced as a runtime validation failure.
func AdaptValidator(fn any) Validator {
	switch v := fn.(type) {
	case Validator:
		return v
	case func(any) *ValidationError:
		return ValidatorFunc(v)
	case func(any, any) *ValidationError:
		return ContextValidatorFunc(v)
	case func(any) error:
		return ValidatorFunc(func(value any) *ValidationError {
			if err := v(value); err != nil {
				return asValidationError(err)
			}
			return nil
		})
	case func(any, any) error:
		return ContextValidatorFunc(func(value, ctx any) *ValidationError {
			if err := v(value, ctx); err != nil {
				return asValidationError(err)
			}
			return nil
		})
	default:
		panic(fmt.Sprintf("lollipop: cannot adapt %T as a Validator", fn))
	}
}

// asValidationError wraps a plain error as a leaf ValidationError unless
// it already is one.
func asValidationError(err error) *ValidationError {
	if ve, ok := err.(*ValidationError); ok {
		return ve
	}
	return Leaf(err.Error())
}

// AdaptValidators adapts a slice of validator-shaped values in one pass,
// used by Type constructors to prebake their Validators field (§4.3).
func AdaptValidators(fns ...any) []Validator {
	out := make([]Validator, len(fns))
	for i, fn := range fns {
		out[i] = AdaptValidator(fn)
	}
	return out
}

// runValidators runs every validator against value in order, merging any
// errors into a single ValidationError (validators never short-circuit
// each other, matching the container/Object field-level "report
// everything" approach of §4.1).
func runValidators(validators []Validator, value any, ctx any) *ValidationError {
	var merged *ValidationError
	for _, v := range validators {
		if v == nil {
			continue
		}
		if err := v.Validate(value, ctx); err != nil {
			merged = merged.merge(err)
		}
	}
	return merged
}

// messages pairs a built-in validator's default_error_messages templates
// with an optional per-instance error_messages override (§4.2). Each
// template may reference its failure's params with a {name} placeholder.
type messages struct {
	defaults  map[string]string
	overrides map[string]string
}

func newMessages(defaults map[string]string, overrides []map[string]string) messages {
	var o map[string]string
	if len(overrides) > 0 {
		o = overrides[0]
	}
	return messages{defaults: defaults, overrides: o}
}

// fail renders the template registered under key — the error_messages
// override if one was supplied at construction, else the validator's own
// default_error_messages entry — substituting params into it (§4.2's
// "_fail(key, **params)").
func (m messages) fail(key string, params map[string]any) *ValidationError {
	tmpl, ok := m.overrides[key]
	if !ok {
		tmpl, ok = m.defaults[key]
	}
	if !ok {
		tmpl = key
	}
	return Leaf(renderTemplate(tmpl, params))
}

func renderTemplate(tmpl string, params map[string]any) string {
	out := tmpl
	for name, value := range params {
		out = strings.ReplaceAll(out, "{"+name+"}", fmt.Sprint(value))
	}
	return out
}

// Range returns a Validator requiring a comparable numeric value to fall
// within [min, max] inclusive; either bound may be nil to leave that side
// unchecked. Its two failure keys, "below_min" and "above_max", have
// built-in default_error_messages templates; pass an error_messages map to
// override either (§4.2).
func Range(min, max *float64, errorMessages ...map[string]string) Validator {
	msgs := newMessages(map[string]string{
		"below_min": "value {value} is below the minimum of {min}",
		"above_max": "value {value} is above the maximum of {max}",
	}, errorMessages)
	return ValidatorFunc(func(value any) *ValidationError {
		f, ok := toFloat(value)
		if !ok {
			return Leaf("value is not numeric")
		}
		if min != nil && f < *min {
			return msgs.fail("below_min", map[string]any{"value": f, "min": *min})
		}
		if max != nil && f > *max {
			return msgs.fail("above_max", map[string]any{"value": f, "max": *max})
		}
		return nil
	})
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case int64:
		return float64(v), true
	case int:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}

// Length returns a Validator requiring a string or slice's length to fall
// within [min, max] inclusive; either bound may be nil. Its failure keys
// are "too_short" and "too_long" (§4.2).
func Length(min, max *int, errorMessages ...map[string]string) Validator {
	msgs := newMessages(map[string]string{
		"too_short": "value of length {length} is shorter than the minimum of {min}",
		"too_long":  "value of length {length} is longer than the maximum of {max}",
	}, errorMessages)
	return ValidatorFunc(func(value any) *ValidationError {
		n, ok := lengthOf(value)
		if !ok {
			return Leaf("value has no length")
		}
		if min != nil && n < *min {
			return msgs.fail("too_short", map[string]any{"length": n, "min": *min})
		}
		if max != nil && n > *max {
			return msgs.fail("too_long", map[string]any{"length": n, "max": *max})
		}
		return nil
	})
}

func lengthOf(value any) (int, bool) {
	switch v := value.(type) {
	case string:
		return len(v), true
	case []any:
		return len(v), true
	default:
		return 0, false
	}
}

// AnyOf returns a Validator requiring value to equal (via ==) one of
// choices. Its failure key is "not_allowed" (§4.2); pass errorMessages to
// override its template (params: {value}, {choices}).
func AnyOf(choices []any, errorMessages ...map[string]string) Validator {
	msgs := newMessages(map[string]string{
		"not_allowed": "value {value} is not one of the allowed choices {choices}",
	}, errorMessages)
	return ValidatorFunc(func(value any) *ValidationError {
		for _, c := range choices {
			if c == value {
				return nil
			}
		}
		return msgs.fail("not_allowed", map[string]any{"value": value, "choices": choices})
	})
}
