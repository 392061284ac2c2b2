package lollipop

import (
	"github.com/google/uuid"
	"github.com/tidwall/match"
	"golang.org/x/text/cases"
)

// UUID is a String shaped to require a valid RFC 4122 UUID, built with
// ValidatedType exactly as §4.10 sketches: "Email/URL-shaped" derived
// scalars live outside the kernel proper, one validated_type call away
// from a primitive.
var UUID Type = NewValidatedType(NewString(), "UUID", "a UUID string", uuidValidator)

func uuidValidator(value any) *ValidationError {
	s, ok := value.(string)
	if !ok {
		return Leaf("value is not a string")
	}
	if _, err := uuid.Parse(s); err != nil {
		return Leaff("invalid UUID: %s", err)
	}
	return nil
}

// NewCaseFoldString builds a String variant that Unicode-case-folds its
// external input before delegating to String's own load (§4.10's
// Transform example): two external strings that only differ by case
// load to the same internal value. This upgrades a *derived* type to
// Unicode-correct folding; Object's own field-name matching stays
// exact-match only, per spec.
func NewCaseFoldString(validators ...any) Type {
	folder := cases.Fold()
	return NewTransform(NewString(validators...), func(v Value) (Value, *ValidationError) {
		s, ok := v.AsString()
		if !ok {
			return v, nil
		}
		return Str(folder.String(s)), nil
	}, nil)
}

// Glob returns a Validator requiring a string to match a shell glob
// pattern, via tidwall/match.
func Glob(pattern string) Validator {
	return ValidatorFunc(func(value any) *ValidationError {
		s, ok := value.(string)
		if !ok {
			return Leaf("value is not a string")
		}
		if !match.Match(s, pattern) {
			return Leaff("value does not match pattern %q", pattern)
		}
		return nil
	})
}

// Slug is a String constrained to lowercase ASCII alphanumerics and
// hyphens, checked character by character (tidwall/match globs have no
// character classes, so Glob cannot express this constraint).
var Slug Type = NewValidatedType(NewString(), "Slug", "a URL-safe slug", slugValidator)

func slugValidator(value any) *ValidationError {
	s, ok := value.(string)
	if !ok {
		return Leaf("value is not a string")
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' {
			return Leaff("value %q is not a slug", s)
		}
	}
	return nil
}
