package lollipop

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdaptValidatorShapes(t *testing.T) {
	t.Run("value-only ValidationError func", func(t *testing.T) {
		v := AdaptValidator(func(value any) *ValidationError {
			if value != "ok" {
				return Leaf("bad")
			}
			return nil
		})
		assert.Nil(t, v.Validate("ok", nil))
		assert.NotNil(t, v.Validate("no", nil))
	})

	t.Run("value+context ValidationError func", func(t *testing.T) {
		v := AdaptValidator(func(value any, ctx any) *ValidationError {
			if ctx == "required-ctx" {
				return nil
			}
			return Leaf("missing context")
		})
		assert.Nil(t, v.Validate("x", "required-ctx"))
		assert.NotNil(t, v.Validate("x", nil))
	})

	t.Run("plain error func is wrapped", func(t *testing.T) {
		v := AdaptValidator(func(value any) error {
			return errors.New("plain failure")
		})
		err := v.Validate("x", nil)
		require.NotNil(t, err)
		assert.Equal(t, "plain failure", err.Error())
	})

	t.Run("already a Validator passes through", func(t *testing.T) {
		v := AdaptValidator(ValidatorFunc(func(any) *ValidationError { return nil }))
		assert.Nil(t, v.Validate("x", nil))
	})

	t.Run("unsupported shape panics", func(t *testing.T) {
		assert.Panics(t, func() { AdaptValidator(42) })
	})
}

func TestRangeValidator(t *testing.T) {
	min, max := 1.0, 10.0
	v := Range(&min, &max)

	assert.Nil(t, v.Validate(int64(5), nil))
	assert.NotNil(t, v.Validate(int64(0), nil))
	assert.NotNil(t, v.Validate(int64(11), nil))
	assert.NotNil(t, v.Validate("not a number", nil))
}

func TestRangeValidatorMessageOverride(t *testing.T) {
	min := 1.0
	v := Range(&min, nil, map[string]string{"below_min": "too small: {value}"})

	err := v.Validate(int64(0), nil)
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "too small: 0")
}

func TestLengthValidator(t *testing.T) {
	min, max := 2, 4
	v := Length(&min, &max)

	assert.Nil(t, v.Validate("abc", nil))
	assert.NotNil(t, v.Validate("a", nil))
	assert.NotNil(t, v.Validate("abcde", nil))
}

func TestAnyOfValidator(t *testing.T) {
	v := AnyOf([]any{"red", "green", "blue"})
	assert.Nil(t, v.Validate("red", nil))
	assert.NotNil(t, v.Validate("purple", nil))
}
