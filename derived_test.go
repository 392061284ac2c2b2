package lollipop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDAcceptsValidAndRejectsInvalid(t *testing.T) {
	loaded, err := UUID.Load(Str("550e8400-e29b-41d4-a716-446655440000"), nil)
	require.Nil(t, err)
	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", loaded)

	_, err = UUID.Load(Str("not-a-uuid"), nil)
	assert.NotNil(t, err)
}

func TestSlugAcceptsLowercaseHyphenated(t *testing.T) {
	loaded, err := Slug.Load(Str("hello-world-42"), nil)
	require.Nil(t, err)
	assert.Equal(t, "hello-world-42", loaded)

	_, err = Slug.Load(Str("Not A Slug!"), nil)
	assert.NotNil(t, err)
}

func TestCaseFoldStringFoldsBeforeLoading(t *testing.T) {
	typ := NewCaseFoldString()

	loaded, err := typ.Load(Str("HELLO"), nil)
	require.Nil(t, err)
	assert.Equal(t, "hello", loaded)
}

func TestGlobValidator(t *testing.T) {
	v := Glob("*.go")
	assert.Nil(t, v.Validate("main.go", nil))
	assert.NotNil(t, v.Validate("main.py", nil))
}
