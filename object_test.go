package lollipop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type person struct {
	Name string
	Age  int64
}

func personConstructor(fields map[string]any, _ any) (any, error) {
	return &person{Name: fields["name"].(string), Age: fields["age"].(int64)}, nil
}

func newPersonObject(opts ...ObjectOption) *ObjectType {
	fields := []FieldEntry{
		{Name: "name", Field: NewAttributeField(NewString(), "Name")},
		{Name: "age", Field: NewAttributeField(NewInteger(), "Age")},
	}
	allOpts := append([]ObjectOption{WithConstructor(personConstructor)}, opts...)
	return NewObject("Person", "a person", fields, nil, nil, allOpts...)
}

func TestObjectLoadBuildsInstance(t *testing.T) {
	obj := newPersonObject()
	m := NewMap().Set("name", Str("Ada")).Set("age", Int(30))

	loaded, err := obj.Load(MapVal(m), nil)
	require.Nil(t, err)

	p, ok := loaded.(*person)
	require.True(t, ok)
	assert.Equal(t, "Ada", p.Name)
	assert.Equal(t, int64(30), p.Age)
}

func TestObjectLoadMissingRequiredField(t *testing.T) {
	obj := newPersonObject()
	m := NewMap().Set("name", Str("Ada"))

	_, err := obj.Load(MapVal(m), nil)
	require.NotNil(t, err)
	assert.Contains(t, err.Children(), "age")
}

func TestObjectLoadRejectsUnknownField(t *testing.T) {
	obj := newPersonObject()
	m := NewMap().Set("name", Str("Ada")).Set("age", Int(30)).Set("nickname", Str("A"))

	_, err := obj.Load(MapVal(m), nil)
	require.NotNil(t, err)
	assert.Contains(t, err.Children(), "nickname")
}

func TestObjectAllowExtraFields(t *testing.T) {
	obj := newPersonObject(WithAllowExtraFields())
	m := NewMap().Set("name", Str("Ada")).Set("age", Int(30)).Set("nickname", Str("A"))

	_, err := obj.Load(MapVal(m), nil)
	assert.Nil(t, err)
}

func TestObjectDump(t *testing.T) {
	obj := newPersonObject()
	p := &person{Name: "Grace", Age: 85}

	dumped, err := obj.Dump(p, nil)
	require.Nil(t, err)

	m, ok := dumped.AsMap()
	require.True(t, ok)
	name, _ := m.Get("name")
	s, _ := name.AsString()
	assert.Equal(t, "Grace", s)
}

func TestObjectLoadIntoMutatesInPlace(t *testing.T) {
	obj := newPersonObject()
	p := &person{Name: "Ada", Age: 30}

	update := NewMap().Set("age", Int(31))
	err := obj.LoadInto(p, MapVal(update), nil)
	require.Nil(t, err)

	assert.Equal(t, int64(31), p.Age)
	assert.Equal(t, "Ada", p.Name, "fields absent from the partial update are left untouched")
}

func TestObjectLoadIntoRejectsImmutable(t *testing.T) {
	obj := newPersonObject(WithImmutable())
	p := &person{Name: "Ada", Age: 30}

	err := obj.LoadInto(p, MapVal(NewMap().Set("age", Int(31))), nil)
	assert.NotNil(t, err)
}

func TestObjectInvariantRunsAfterFieldSuccess(t *testing.T) {
	obj := NewObject("Person", "a person", []FieldEntry{
		{Name: "name", Field: NewAttributeField(NewString(), "Name")},
		{Name: "age", Field: NewAttributeField(NewInteger(), "Age")},
	}, nil, []any{
		func(instance any) *ValidationError {
			p := instance.(*person)
			if p.Age < 0 {
				return Leaf("age must not be negative")
			}
			return nil
		},
	}, WithConstructor(personConstructor))

	m := NewMap().Set("name", Str("X")).Set("age", Int(-1))
	_, err := obj.Load(MapVal(m), nil)
	require.NotNil(t, err)
}

func TestObjectBaseComposition(t *testing.T) {
	named := NewObject("Named", "has a name", []FieldEntry{
		{Name: "name", Field: NewAttributeField(NewString(), "Name")},
	}, nil, nil, WithConstructor(func(fields map[string]any, _ any) (any, error) {
		return &person{Name: fields["name"].(string)}, nil
	}))

	aged := NewObject("Person", "a named, aged person", []FieldEntry{
		{Name: "age", Field: NewAttributeField(NewInteger(), "Age")},
	}, []*ObjectType{named}, nil, WithConstructor(personConstructor))

	m := NewMap().Set("name", Str("Ada")).Set("age", Int(30))
	loaded, err := aged.Load(MapVal(m), nil)
	require.Nil(t, err)
	p := loaded.(*person)
	assert.Equal(t, "Ada", p.Name)
	assert.Equal(t, int64(30), p.Age)
}

func TestObjectDefaultConstructorProducesDictValue(t *testing.T) {
	obj := NewObject("Anonymous", "", []FieldEntry{
		{Name: "x", Field: NewAttributeField(NewInteger(), "X")},
	}, nil, nil)

	loaded, err := obj.Load(MapVal(NewMap().Set("x", Int(5))), nil)
	require.Nil(t, err)

	dv, ok := loaded.(*DictValue)
	require.True(t, ok)
	x, _ := dv.Get("x")
	assert.Equal(t, int64(5), x)
}
