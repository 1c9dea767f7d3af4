package assemble

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/soypat/keycad/config"
	"github.com/soypat/keycad/key"
	"github.com/soypat/keycad/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func build(t *testing.T, dbg config.Debug) *layout.Matrix {
	t.Helper()
	cfg := config.Default()
	cfg.Layout.Size = config.S80
	cfg.Debug = dbg
	cat, err := layout.Lookup("iso")
	require.NoError(t, err)
	b := layout.Builder{Config: &cfg, Catalog: cat, Log: zerolog.Nop()}
	m, err := b.Build()
	require.NoError(t, err)
	return m
}

func TestFilter(t *testing.T) {
	dbg := config.Debug{Enable: true, ShowPlacement: true, ShowKeyOrigin: true, ShowKeyCap: true, HideConnectors: true}
	keep := Filter(dbg, false)
	assert.True(t, keep(key.CategoryPlane))
	assert.True(t, keep(key.CategoryOrigin))
	assert.True(t, keep(key.CategoryCap))
	assert.True(t, keep(key.CategorySlot))
	assert.False(t, keep(key.CategorySwitch))
	assert.False(t, keep(key.CategoryConnector))

	unified := Filter(dbg, true)
	assert.False(t, unified(key.CategoryPlane))
	assert.False(t, unified(key.CategoryOrigin))
	assert.True(t, unified(key.CategoryCap))

	// Without debugging only slots and connectors are exported.
	plain := Filter(config.Debug{ShowKeyCap: true}, true)
	assert.False(t, plain(key.CategoryCap))
	assert.True(t, plain(key.CategorySlot))
	assert.True(t, plain(key.CategoryConnector))
}

func TestAssembleGroups(t *testing.T) {
	dbg := config.Debug{Enable: true, ShowKeyCap: true}
	m := build(t, dbg)
	a := Assembler{Debug: dbg, Log: zerolog.Nop()}
	asm, err := a.Assemble(m, false)
	require.NoError(t, err)
	assert.Nil(t, asm.Union)

	seen := map[string]bool{}
	for _, p := range asm.Parts {
		assert.True(t, p.Key.Base.Visible, p.Key.Name)
		if p.Key.Base.Filled {
			assert.NotEqual(t, key.CategoryCap, p.Object.Category, p.Key.Name)
		}
		seen[p.Key.Name] = true
		assert.Equal(t, Colorize(p.Key), p.Color)
	}
	assert.False(t, seen["s125"])
	assert.True(t, seen["ENT"])

	for _, row := range m.Rows {
		for _, k := range row {
			assert.Equal(t, key.Exposed, k.State(), k.Name)
		}
	}
}

func TestAssembleUnion(t *testing.T) {
	dbg := config.Debug{}
	m := build(t, dbg)
	a := Assembler{Debug: dbg, Log: zerolog.Nop()}
	asm, err := a.Assemble(m, true)
	require.NoError(t, err)
	require.NotNil(t, asm.Union)
	for _, p := range asm.Parts {
		assert.True(t, p.Object.Category.Solid())
	}

	// A slot center is a hole, a slot skin point is inside.
	k := m.Rows[2][1]
	c := k.Base.TotalPosition()
	assert.Greater(t, asm.Union.Evaluate(r3.Add(c, r3.Vec{Z: -2})), 0.0)
	assert.Less(t, asm.Union.Evaluate(r3.Add(c, r3.Vec{X: 7.8, Y: 5, Z: -2})), 0.0)
	// So is a point in the gap between two slots.
	assert.Less(t, asm.Union.Evaluate(r3.Add(c, r3.Vec{X: 9.5, Z: -2})), 0.0)
}

func TestColorize(t *testing.T) {
	cfg := config.Default()
	k := key.New(key.Char("a"), &cfg)
	assert.Equal(t, ColorLeft, Colorize(k))
	k.Hand = key.RightHand
	assert.Equal(t, ColorRight, Colorize(k))
	k.Block = key.NumpadBlock
	assert.Equal(t, ColorNumpad, Colorize(k))
	k.Block = key.ArrowBlock
	assert.Equal(t, ColorArrow, Colorize(k))
	k.Base.Visible = false
	assert.Equal(t, ColorInvisible, Colorize(k))
}
