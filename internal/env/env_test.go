package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetGetUnset(t *testing.T) {
	e := New()
	_, ok := e.Get("FOO")
	assert.False(t, ok)

	e.Set("FOO", "bar")
	v, ok := e.Get("FOO")
	assert.True(t, ok)
	assert.Equal(t, "bar", v)

	e.Unset("FOO")
	_, ok = e.Get("FOO")
	assert.False(t, ok)
}

func TestCloneIsIndependent(t *testing.T) {
	e := New()
	e.Set("FOO", "bar")

	clone := e.Clone()
	clone.Set("FOO", "changed")
	clone.Set("NEW", "value")

	v, _ := e.Get("FOO")
	assert.Equal(t, "bar", v)
	_, ok := e.Get("NEW")
	assert.False(t, ok)
}

func TestStringsRoundTrip(t *testing.T) {
	e := New()
	e.Set("FOO", "bar")
	assert.Contains(t, e.Strings(), "FOO=bar")
}
