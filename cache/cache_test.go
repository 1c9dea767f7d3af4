package cache

import (
	"testing"

	"github.com/soypat/keycad/form3/must3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "(cap)-(19)-(38)", Key("cap", 19.0, 38.0))
	assert.Equal(t, "(slot)-(25.455844)-(25.455844)-(true)", Key("slot", 25.4558441227, 25.4558441, true))
	assert.Equal(t, Key("cap", 0.1+0.2), Key("cap", 0.3))
	assert.Equal(t, "(origin)-(ESC)", Key("origin", "ESC"))
	assert.Equal(t, Key("x", -0.0), Key("x", 0.0))
	assert.Panics(t, func() { Key("x", []int{1}) })
}

func TestObjectCache(t *testing.T) {
	c := New(true)
	s := must3.CenteredBox(r3.Vec{}, r3.Vec{X: 1, Y: 1, Z: 1})
	_, ok := c.Get("cap", 15.0, 15.0)
	require.False(t, ok)
	c.Store(s, "cap", 15.0, 15.0)
	got, ok := c.Get("cap", 15.0, 15.0)
	require.True(t, ok)
	assert.Same(t, s, got)
	hits, misses := c.Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, misses)
	assert.Equal(t, 1, c.Len())

	assert.PanicsWithValue(t, `duplicate object cache key "(cap)-(15)-(15)"`, func() {
		c.Store(s, "cap", 15.0, 15.0)
	})
}

func TestObjectCacheDisabled(t *testing.T) {
	c := New(false)
	s := must3.CenteredBox(r3.Vec{}, r3.Vec{X: 1, Y: 1, Z: 1})
	c.Store(s, "cap", 15.0, 15.0)
	c.Store(s, "cap", 15.0, 15.0) // no duplicate panic when disabled.
	_, ok := c.Get("cap", 15.0, 15.0)
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
	assert.False(t, c.Enabled())
}
