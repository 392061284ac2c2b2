package lollipop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueFromJSONScalarsAndContainers(t *testing.T) {
	v, err := ValueFromJSON([]byte(`{"name":"Ada","age":36,"tags":["x","y"],"active":true,"note":null}`))
	require.NoError(t, err)

	m, ok := v.AsMap()
	require.True(t, ok)

	name, _ := m.Get("name")
	s, ok := name.AsString()
	require.True(t, ok)
	assert.Equal(t, "Ada", s)

	age, _ := m.Get("age")
	i, ok := age.AsInt()
	require.True(t, ok)
	assert.Equal(t, int64(36), i)

	tags, _ := m.Get("tags")
	items, ok := tags.AsSeq()
	require.True(t, ok)
	require.Len(t, items, 2)

	note, _ := m.Get("note")
	assert.True(t, note.IsNull())
}

func TestValueFromJSONRejectsMalformedInput(t *testing.T) {
	_, err := ValueFromJSON([]byte(`{not json`))
	assert.Error(t, err)
}

func TestValueToJSONRoundTrip(t *testing.T) {
	original := MapVal(NewMap().
		Set("name", Str("Ada")).
		Set("age", Int(36)).
		Set("scores", SeqOf([]Value{Float(1.5), Float(2.5)})))

	data, err := ValueToJSON(original)
	require.NoError(t, err)

	reloaded, err := ValueFromJSON(data)
	require.NoError(t, err)

	m, ok := reloaded.AsMap()
	require.True(t, ok)
	name, _ := m.Get("name")
	s, _ := name.AsString()
	assert.Equal(t, "Ada", s)
}
