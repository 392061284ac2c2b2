package lollipop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOneOfDictionaryForm(t *testing.T) {
	circle := NewObject("Circle", "", []FieldEntry{
		{Name: "kind", Field: NewConstantField(NewString(), "circle")},
		{Name: "radius", Field: NewAttributeField(NewFloat(), "Radius")},
	}, nil, nil, WithConstructor(func(fields map[string]any, _ any) (any, error) {
		return &struct{ Radius float64 }{Radius: fields["radius"].(float64)}, nil
	}))
	square := NewObject("Square", "", []FieldEntry{
		{Name: "kind", Field: NewConstantField(NewString(), "square")},
		{Name: "side", Field: NewAttributeField(NewFloat(), "Side")},
	}, nil, nil, WithConstructor(func(fields map[string]any, _ any) (any, error) {
		return &struct{ Side float64 }{Side: fields["side"].(float64)}, nil
	}))

	shape := NewOneOf(map[string]Type{"circle": circle, "square": square}, DictValueHint("kind"), nil)

	m := NewMap().Set("kind", Str("circle")).Set("radius", Float(2.0))
	loaded, err := shape.Load(MapVal(m), nil)
	require.Nil(t, err)
	_, ok := loaded.(*struct{ Radius float64 })
	assert.True(t, ok)
}

func TestOneOfDictionaryFormUnknownTag(t *testing.T) {
	shape := NewOneOf(map[string]Type{"circle": NewAny()}, DictValueHint("kind"), nil)
	m := NewMap().Set("kind", Str("triangle"))
	_, err := shape.Load(MapVal(m), nil)
	assert.NotNil(t, err)
}

func TestOneOfListFormFirstSuccessWins(t *testing.T) {
	oneOf := NewOneOfList([]Type{NewInteger(), NewString()})

	loaded, err := oneOf.Load(Int(7), nil)
	require.Nil(t, err)
	assert.Equal(t, int64(7), loaded)

	loaded, err = oneOf.Load(Str("hi"), nil)
	require.Nil(t, err)
	assert.Equal(t, "hi", loaded)
}

func TestOneOfListFormNoMatch(t *testing.T) {
	oneOf := NewOneOfList([]Type{NewInteger(), NewBoolean()})
	_, err := oneOf.Load(Str("neither"), nil)
	assert.NotNil(t, err)
}

func TestOneOfListFormDumpFirstSuccessWins(t *testing.T) {
	oneOf := NewOneOfList([]Type{NewInteger(), NewString()})

	dumped, err := oneOf.Dump(int64(5), nil)
	require.Nil(t, err)
	i, ok := dumped.AsInt()
	require.True(t, ok)
	assert.Equal(t, int64(5), i)
}
