package lollipop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstant(t *testing.T) {
	typ := NewConstant("fixed", Str("fixed-external"))

	loaded, err := typ.Load(Str("ignored"), nil)
	require.Nil(t, err)
	assert.Equal(t, "fixed", loaded)

	dumped, err := typ.Dump("also ignored", nil)
	require.Nil(t, err)
	s, _ := dumped.AsString()
	assert.Equal(t, "fixed-external", s)
}

func TestOptionalLoadDefaultOnNull(t *testing.T) {
	typ := NewOptional(NewString(), "default-value", Missing)

	loaded, err := typ.Load(Null(), nil)
	require.Nil(t, err)
	assert.Equal(t, "default-value", loaded)

	loaded, err = typ.Load(Str("present"), nil)
	require.Nil(t, err)
	assert.Equal(t, "present", loaded)
}

func TestOptionalWithoutLoadDefaultYieldsMissing(t *testing.T) {
	typ := NewOptional(NewString(), Missing, Missing)
	loaded, err := typ.Load(Null(), nil)
	require.Nil(t, err)
	assert.True(t, IsMissing(loaded))
}

func TestOptionalDumpDefaultOnlyAppliesToMissing(t *testing.T) {
	typ := NewOptional(NewString(), Missing, "dump-default")

	dumped, err := typ.Dump(Missing, nil)
	require.Nil(t, err)
	s, _ := dumped.AsString()
	assert.Equal(t, "dump-default", s)

	// A present, non-MISSING internal value is never overridden by the
	// dump default, even if it happens to be falsy/zero (§9 Q2).
	dumped, err = typ.Dump("", nil)
	require.Nil(t, err)
	s, _ = dumped.AsString()
	assert.Equal(t, "", s)
}

func TestOptionalThunkDefaultEvaluatesFresh(t *testing.T) {
	calls := 0
	typ := NewOptional(NewInteger(), func() any { calls++; return int64(calls) }, Missing)

	v1, _ := typ.Load(Null(), nil)
	v2, _ := typ.Load(Null(), nil)
	assert.NotEqual(t, v1, v2, "each substitution evaluates the thunk fresh")
}

func TestLoadOnlyRejectsDump(t *testing.T) {
	typ := NewLoadOnly(NewString())

	loaded, err := typ.Load(Str("secret"), nil)
	require.Nil(t, err)
	assert.Equal(t, "secret", loaded)

	_, err = typ.Dump("secret", nil)
	assert.NotNil(t, err)
}

func TestDumpOnlyAlwaysLoadsMissing(t *testing.T) {
	typ := NewDumpOnly(NewString())

	loaded, err := typ.Load(Str("whatever"), nil)
	require.Nil(t, err)
	assert.True(t, IsMissing(loaded))

	dumped, err := typ.Dump("computed", nil)
	require.Nil(t, err)
	s, _ := dumped.AsString()
	assert.Equal(t, "computed", s)
}

func TestTransformAppliesPreLoadAndPostDump(t *testing.T) {
	upper := NewTransform(NewString(),
		func(v Value) (Value, *ValidationError) {
			s, _ := v.AsString()
			return Str(s + "-pre"), nil
		},
		func(v Value) (Value, *ValidationError) {
			s, _ := v.AsString()
			return Str(s + "-post"), nil
		},
	)

	loaded, err := upper.Load(Str("x"), nil)
	require.Nil(t, err)
	assert.Equal(t, "x-pre", loaded)

	dumped, err := upper.Dump("y", nil)
	require.Nil(t, err)
	s, _ := dumped.AsString()
	assert.Equal(t, "y-post", s)
}

func TestTransformPreLoadCanReject(t *testing.T) {
	typ := NewTransform(NewString(), func(v Value) (Value, *ValidationError) {
		return Value{}, Leaf("rejected by transform")
	}, nil)

	_, err := typ.Load(Str("anything"), nil)
	assert.NotNil(t, err)
}
