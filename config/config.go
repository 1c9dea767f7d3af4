// Package config holds every dimension and switch of a generation run.
// A Config is built once at startup and passed down explicitly.
// All dimensions are millimeters, angles are degrees.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/titanous/json5"
	"gonum.org/v1/gonum/spatial/r3"
)

// ErrInvalid is returned for configurations that fail validation.
var ErrInvalid = errors.New("invalid configuration")

// Config is the complete input of a generation run besides the catalog.
type Config struct {
	KeyBase KeyBase `json:"key_base"`
	Cap     Cap     `json:"cap"`
	Switch  Switch  `json:"switch"`
	Slot    Slot    `json:"switch_slot"`
	Group   Group   `json:"group"`
	Layout  Layout  `json:"layout"`
	Debug   Debug   `json:"debug"`
	Export  Export  `json:"export"`
}

// KeyBase sizes a key's footprint.
type KeyBase struct {
	// UnitLength is the center to center distance of two adjacent 1u keys.
	UnitLength float64 `json:"unit_length"`
	// ClearanceX is added on each side of every key along a row.
	ClearanceX float64 `json:"clearance_x"`
	// ClearanceY is added on each side of every key across rows.
	ClearanceY float64 `json:"clearance_y"`
}

// Cap roughly outlines a key cap. A cap is WidthClearance narrower than
// its footprint, half of it on each side.
type Cap struct {
	WidthClearance float64 `json:"width_clearance"`
	DepthClearance float64 `json:"depth_clearance"`
	Thickness      float64 `json:"thickness"`
	// ZClearance is the gap between the base plane and the cap bottom.
	ZClearance float64 `json:"z_clearance"`
	// DishInset tapers the cap top on every side.
	DishInset float64 `json:"dish_inset"`
}

// Switch is the decorative switch body.
type Switch struct {
	Width     float64 `json:"width"`
	Depth     float64 `json:"depth"`
	Thickness float64 `json:"thickness"`
}

// Slot is the switch cutout in the top skin.
type Slot struct {
	Width     float64 `json:"width"`
	Depth     float64 `json:"depth"`
	Thickness float64 `json:"thickness"`
	// Undercut is a pocket below the skin for the switch clips.
	UndercutWidth     float64 `json:"undercut_width"`
	UndercutDepth     float64 `json:"undercut_depth"`
	UndercutThickness float64 `json:"undercut_thickness"`
}

// Group holds the extra clearances that separate key groups.
type Group struct {
	// ClearanceXFGroup separates ESC-F1, F4-F5 and F8-F9.
	ClearanceXFGroup float64 `json:"clearance_x_f_group"`
	// ClearanceYFGroup separates the function row from the number row.
	ClearanceYFGroup float64 `json:"clearance_y_f_group"`
	// ClearanceXArrowGroup separates the main block from the arrow and navigation keys.
	ClearanceXArrowGroup float64 `json:"clearance_x_arrow_group"`
	// ClearanceXNumpad separates the arrow group from the numpad.
	ClearanceXNumpad float64 `json:"clearance_x_numpad"`
}

// Layout chooses the board size, the offset strategy and extra offsets.
type Layout struct {
	Size     KeyboardSize `json:"size"`
	Strategy string       `json:"strategy"`
	Offsets  []Offset     `json:"offsets"`
}

// Offset displaces and rotates one key, or a whole row when Col is -1.
type Offset struct {
	Row      int    `json:"row"`
	Col      int    `json:"col"`
	Position r3.Vec `json:"position"`
	Rotation r3.Vec `json:"rotation"`
}

// Debug toggles overlays and output modes.
type Debug struct {
	Enable         bool `json:"enable"`
	ShowPlacement  bool `json:"show_placement"`
	ShowKeyOrigin  bool `json:"show_key_origin"`
	ShowKeyName    bool `json:"show_key_name"`
	ShowKeyCap     bool `json:"show_key_cap"`
	ShowKeySwitch  bool `json:"show_key_switch"`
	ShowInvisibles bool `json:"show_invisibles"`
	HideSlots      bool `json:"hide_slots"`
	HideConnectors bool `json:"hide_connectors"`
	// UnifyPreview unions shapes for the preview instead of grouping them.
	UnifyPreview bool `json:"unify_preview"`
	// UnifyExport unions shapes for the exported file.
	UnifyExport        bool `json:"unify_export"`
	DisableObjectCache bool `json:"disable_object_cache"`
}

// Export controls file output.
type Export struct {
	// Cells is the marching cubes resolution along the longest side.
	Cells int `json:"cells"`
	// PreviewWidth and PreviewHeight size the PNG preview in pixels.
	PreviewWidth  int `json:"preview_width"`
	PreviewHeight int `json:"preview_height"`
}

// Default returns the stock configuration for an ISO board with
// cherry style switches.
func Default() Config {
	return Config{
		KeyBase: KeyBase{UnitLength: 19},
		Cap: Cap{
			WidthClearance: 2,
			DepthClearance: 2,
			Thickness:      9,
			ZClearance:     6,
			DishInset:      1,
		},
		Switch: Switch{Width: 18, Depth: 18, Thickness: 4},
		Slot: Slot{
			Width:             14,
			Depth:             14,
			Thickness:         4,
			UndercutWidth:     6,
			UndercutDepth:     1,
			UndercutThickness: 1.25,
		},
		Group: Group{
			ClearanceXFGroup:     19 * 2.0 / 3,
			ClearanceYFGroup:     4,
			ClearanceXArrowGroup: 10,
			ClearanceXNumpad:     10,
		},
		Layout: Layout{Size: S100, Strategy: "planar"},
		Debug: Debug{
			Enable:      true,
			ShowKeyName: true,
			UnifyExport: true,
		},
		Export: Export{Cells: 300, PreviewWidth: 1600, PreviewHeight: 900},
	}
}

// Load reads a JSON5 file at path over the defaults. Fields absent from
// the file keep their default value.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return Parse(b)
}

// Parse decodes JSON5 data over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := json5.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("decoding configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that dimensions are positive and clearances are not
// negative.
func (c Config) Validate() error {
	for _, v := range []struct {
		name string
		val  float64
	}{
		{"key_base.unit_length", c.KeyBase.UnitLength},
		{"cap.thickness", c.Cap.Thickness},
		{"switch.width", c.Switch.Width},
		{"switch.depth", c.Switch.Depth},
		{"switch.thickness", c.Switch.Thickness},
		{"switch_slot.width", c.Slot.Width},
		{"switch_slot.depth", c.Slot.Depth},
		{"switch_slot.thickness", c.Slot.Thickness},
	} {
		if v.val <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %g", ErrInvalid, v.name, v.val)
		}
	}
	for _, v := range []struct {
		name string
		val  float64
	}{
		{"key_base.clearance_x", c.KeyBase.ClearanceX},
		{"key_base.clearance_y", c.KeyBase.ClearanceY},
		{"cap.width_clearance", c.Cap.WidthClearance},
		{"cap.depth_clearance", c.Cap.DepthClearance},
		{"cap.z_clearance", c.Cap.ZClearance},
		{"cap.dish_inset", c.Cap.DishInset},
		{"switch_slot.undercut_width", c.Slot.UndercutWidth},
		{"switch_slot.undercut_depth", c.Slot.UndercutDepth},
		{"switch_slot.undercut_thickness", c.Slot.UndercutThickness},
		{"group.clearance_x_f_group", c.Group.ClearanceXFGroup},
		{"group.clearance_y_f_group", c.Group.ClearanceYFGroup},
		{"group.clearance_x_arrow_group", c.Group.ClearanceXArrowGroup},
		{"group.clearance_x_numpad", c.Group.ClearanceXNumpad},
	} {
		if v.val < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %g", ErrInvalid, v.name, v.val)
		}
	}
	capWidth := c.KeyBase.UnitLength - c.Cap.WidthClearance
	capDepth := c.KeyBase.UnitLength - c.Cap.DepthClearance
	if capWidth <= 2*c.Cap.DishInset || capDepth <= 2*c.Cap.DishInset {
		return fmt.Errorf("%w: cap clearances and dish inset leave no 1u cap top", ErrInvalid)
	}
	if c.Slot.Width >= capWidth || c.Slot.Depth >= capDepth {
		return fmt.Errorf("%w: switch slot %gx%g does not fit a %gx%g 1u cap footprint", ErrInvalid, c.Slot.Width, c.Slot.Depth, capWidth, capDepth)
	}
	if c.Slot.UndercutWidth >= c.Slot.Width || c.Slot.UndercutWidth >= c.Slot.Depth {
		return fmt.Errorf("%w: slot undercut %g is wider than the slot", ErrInvalid, c.Slot.UndercutWidth)
	}
	if c.Slot.UndercutThickness >= c.Slot.Thickness {
		return fmt.Errorf("%w: slot undercut starts below the slot skin", ErrInvalid)
	}
	if !c.Layout.Size.Valid() {
		return fmt.Errorf("%w: layout size %v", ErrInvalid, c.Layout.Size)
	}
	for i, o := range c.Layout.Offsets {
		if o.Row < 0 || o.Col < -1 {
			return fmt.Errorf("%w: layout offset %d addresses row %d col %d", ErrInvalid, i, o.Row, o.Col)
		}
	}
	if c.Export.Cells < 2 {
		return fmt.Errorf("%w: export needs at least 2 cells, got %d", ErrInvalid, c.Export.Cells)
	}
	if c.Export.PreviewWidth <= 0 || c.Export.PreviewHeight <= 0 {
		return fmt.Errorf("%w: preview size %dx%d", ErrInvalid, c.Export.PreviewWidth, c.Export.PreviewHeight)
	}
	return nil
}

// RenderPlacement reports whether footprint plates are exposed.
func (d Debug) RenderPlacement() bool { return d.Enable && d.ShowPlacement }

// RenderOrigin reports whether origin markers are exposed.
func (d Debug) RenderOrigin() bool { return d.Enable && d.ShowKeyOrigin }

// RenderName reports whether key names are drawn.
func (d Debug) RenderName() bool { return d.Enable && d.ShowKeyName }

// RenderCap reports whether caps are exposed.
func (d Debug) RenderCap() bool { return d.Enable && d.ShowKeyCap }

// RenderSwitch reports whether switches are exposed.
func (d Debug) RenderSwitch() bool { return d.Enable && d.ShowKeySwitch }

// RenderInvisibles reports whether placeholder keys are exposed.
func (d Debug) RenderInvisibles() bool { return d.Enable && d.ShowInvisibles }

// RenderSlots reports whether slots are exposed.
func (d Debug) RenderSlots() bool { return !d.Enable || !d.HideSlots }

// RenderConnectors reports whether connectors are exposed.
func (d Debug) RenderConnectors() bool { return !d.Enable || !d.HideConnectors }
