package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 19.0, cfg.KeyBase.UnitLength)
	assert.InDelta(t, 12.6667, cfg.Group.ClearanceXFGroup, 1e-4)
	assert.True(t, cfg.Debug.RenderName())
	assert.False(t, cfg.Debug.RenderCap())
	assert.True(t, cfg.Debug.RenderSlots())
	assert.True(t, cfg.Debug.RenderConnectors())
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`{
		// JSON5 allows comments and trailing commas.
		cap: {thickness: 7.5, z_clearance: 5,},
		layout: {
			size: "S80",
			strategy: "sloped",
			offsets: [{row: 5, col: -1, position: {z: 2}, rotation: {x: 10}}],
		},
		debug: {hide_connectors: true},
	}`))
	require.NoError(t, err)
	assert.Equal(t, 7.5, cfg.Cap.Thickness)
	assert.Equal(t, 5.0, cfg.Cap.ZClearance)
	assert.Equal(t, 2.0, cfg.Cap.WidthClearance, "unset fields keep defaults")
	assert.Equal(t, S80, cfg.Layout.Size)
	require.Len(t, cfg.Layout.Offsets, 1)
	assert.Equal(t, -1, cfg.Layout.Offsets[0].Col)
	assert.Equal(t, 2.0, cfg.Layout.Offsets[0].Position.Z)
	assert.Equal(t, 10.0, cfg.Layout.Offsets[0].Rotation.X)
	assert.False(t, cfg.Debug.RenderConnectors())
}

func TestValidateRejects(t *testing.T) {
	for name, mutate := range map[string]func(*Config){
		"unit":       func(c *Config) { c.KeyBase.UnitLength = 0 },
		"clearance":  func(c *Config) { c.Cap.WidthClearance = -1 },
		"slot":       func(c *Config) { c.Slot.Width = 18 },
		"undercut":   func(c *Config) { c.Slot.UndercutThickness = 5 },
		"clips":      func(c *Config) { c.Slot.UndercutWidth = 14 },
		"size":       func(c *Config) { c.Layout.Size = 99 },
		"offset":     func(c *Config) { c.Layout.Offsets = []Offset{{Row: 1, Col: -2}} },
		"resolution": func(c *Config) { c.Export.Cells = -1 },
		"one cell":   func(c *Config) { c.Export.Cells = 1 },
		"no cells":   func(c *Config) { c.Export.Cells = 0 },
		"preview":    func(c *Config) { c.Export.PreviewHeight = 0 },
	} {
		cfg := Default()
		mutate(&cfg)
		assert.ErrorIs(t, cfg.Validate(), ErrInvalid, name)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.json5")
	require.NoError(t, os.WriteFile(path, []byte(`{key_base: {unit_length: 19.05}}`), 0o644))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 19.05, cfg.KeyBase.UnitLength)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json5"))
	assert.Error(t, err)
	_, err = Parse([]byte(`{switch: {width: -1}}`))
	assert.ErrorIs(t, err, ErrInvalid)
	_, err = Parse([]byte(`{export: {cells: 1}}`))
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestKeyboardSizeText(t *testing.T) {
	for in, want := range map[string]KeyboardSize{
		"S100": S100, "s80": S80, "75": S75, "65%": S65, " S60 ": S60, "40": S40,
	} {
		var s KeyboardSize
		require.NoError(t, s.UnmarshalText([]byte(in)), in)
		assert.Equal(t, want, s, in)
	}
	var s KeyboardSize
	assert.ErrorIs(t, s.UnmarshalText([]byte("S90")), ErrInvalid)
	assert.Equal(t, "S100", S100.String())
	assert.True(t, S100.AtLeast(S80))
	assert.False(t, S75.AtLeast(S80))
}
