package lollipop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryRegisterAndLookup(t *testing.T) {
	reg := NewTypeRegistry()
	reg.Register("Name", NewString())

	typ, ok := reg.Lookup("Name")
	require.True(t, ok)
	assert.Equal(t, "String", typ.Name())
}

func TestRegistryDoubleRegisterPanics(t *testing.T) {
	reg := NewTypeRegistry()
	reg.Register("Name", NewString())
	assert.Panics(t, func() { reg.Register("Name", NewString()) })
}

func TestRegistryRefResolvesLazily(t *testing.T) {
	reg := NewTypeRegistry()
	ref := reg.Ref("Name")

	reg.Register("Name", NewString())

	loaded, err := ref.Load(Str("hello"), nil)
	require.Nil(t, err)
	assert.Equal(t, "hello", loaded)
}

func TestRegistryRefUnresolvedPanics(t *testing.T) {
	reg := NewTypeRegistry()
	ref := reg.Ref("Missing")
	assert.Panics(t, func() { ref.Load(Str("x"), nil) })
}

// TestRegistryCyclicSchema exercises the forward-reference half of a
// cyclic schema (§4.9, Person <-> Book): Person refers to Book by name
// before Book is registered.
func TestRegistryCyclicSchema(t *testing.T) {
	reg := NewTypeRegistry()

	person := NewObject("Person", "", []FieldEntry{
		{Name: "name", Field: NewAttributeField(NewString(), "Name")},
		{Name: "favoriteBook", Field: NewAttributeField(reg.Ref("Book"), "FavoriteBook")},
	}, nil, nil, WithConstructor(func(fields map[string]any, _ any) (any, error) {
		return map[string]any{"name": fields["name"], "favoriteBook": fields["favoriteBook"]}, nil
	}), WithAllowExtraFields())

	book := NewObject("Book", "", []FieldEntry{
		{Name: "title", Field: NewAttributeField(NewString(), "Title")},
	}, nil, nil, WithConstructor(func(fields map[string]any, _ any) (any, error) {
		return map[string]any{"title": fields["title"]}, nil
	}), WithAllowExtraFields())

	reg.Register("Book", book)

	m := NewMap().Set("name", Str("Ada")).Set("favoriteBook", MapVal(NewMap().Set("title", Str("Algorithms"))))
	loaded, err := person.Load(MapVal(m), nil)
	require.Nil(t, err)
	assert.NotNil(t, loaded)
}
