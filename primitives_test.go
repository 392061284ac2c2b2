package lollipop

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringLoadDump(t *testing.T) {
	typ := NewString()

	loaded, err := typ.Load(Str("hello"), nil)
	require.Nil(t, err)
	assert.Equal(t, "hello", loaded)

	_, err = typ.Load(Int(1), nil)
	assert.NotNil(t, err)

	dumped, err := typ.Dump("hello", nil)
	require.Nil(t, err)
	s, _ := dumped.AsString()
	assert.Equal(t, "hello", s)

	_, err = typ.Dump(Missing, nil)
	assert.NotNil(t, err, "dumping MISSING through a bare Type must report 'value is required'")
}

func TestIntegerLoadDump(t *testing.T) {
	typ := NewInteger()
	loaded, err := typ.Load(Int(7), nil)
	require.Nil(t, err)
	assert.Equal(t, int64(7), loaded)

	_, err = typ.Load(Str("7"), nil)
	assert.NotNil(t, err)
}

func TestFloatAcceptsIntOrFloat(t *testing.T) {
	typ := NewFloat()

	loaded, err := typ.Load(Float(1.5), nil)
	require.Nil(t, err)
	assert.Equal(t, 1.5, loaded)

	loaded, err = typ.Load(Int(2), nil)
	require.Nil(t, err)
	assert.Equal(t, 2.0, loaded)
}

func TestBooleanLoadDump(t *testing.T) {
	typ := NewBoolean()
	loaded, err := typ.Load(Bool(true), nil)
	require.Nil(t, err)
	assert.Equal(t, true, loaded)

	dumped, err := typ.Dump(false, nil)
	require.Nil(t, err)
	b, _ := dumped.AsBool()
	assert.False(t, b)
}

func TestDateRoundTrip(t *testing.T) {
	typ := NewDate()
	loaded, err := typ.Load(Str("2026-07-30"), nil)
	require.Nil(t, err)

	d, ok := loaded.(time.Time)
	require.True(t, ok)
	assert.Equal(t, 2026, d.Year())

	dumped, err := typ.Dump(d, nil)
	require.Nil(t, err)
	s, _ := dumped.AsString()
	assert.Equal(t, "2026-07-30", s)
}

func TestDateTimeRejectsBadFormat(t *testing.T) {
	typ := NewDateTime()
	_, err := typ.Load(Str("not a datetime"), nil)
	assert.NotNil(t, err)
}

func TestAnyPassesThroughUnchanged(t *testing.T) {
	typ := NewAny()
	loaded, err := typ.Load(Seq(Int(1), Str("x")), nil)
	require.Nil(t, err)

	dumped, err := typ.Dump(loaded, nil)
	require.Nil(t, err)
	items, ok := dumped.AsSeq()
	require.True(t, ok)
	assert.Len(t, items, 2)
}

func TestStringValidatorsRunAfterLoad(t *testing.T) {
	min := 3
	typ := NewString(Length(&min, nil))

	_, err := typ.Load(Str("ab"), nil)
	assert.NotNil(t, err)

	loaded, err := typ.Load(Str("abcd"), nil)
	require.Nil(t, err)
	assert.Equal(t, "abcd", loaded)
}
