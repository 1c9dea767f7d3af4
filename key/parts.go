package key

import (
	"github.com/soypat/keycad"
	"github.com/soypat/keycad/frame"
)

// Cap roughly outlines a key cap: a block tapering toward its top,
// floating ZClearance above the base plane.
type Cap struct {
	WidthClearance float64
	DepthClearance float64
	Thickness      float64
	ZClearance     float64
	DishInset      float64
	// Width and Depth of the cap bottom, resolved by Update.
	Width, Depth float64

	Solid *keycad.Solid
}

func (c *Cap) update(fp Footprint) {
	c.Width = fp.UnitWidth*fp.UnitLength - c.WidthClearance
	c.Depth = fp.UnitDepth*fp.UnitLength - c.DepthClearance
}

// Slot is the cutout in the top skin a switch mounts into. Its outer
// outline follows the cap bottom so rotated neighbours keep their cap
// clearance. The skin spans from -Thickness to 0 in the key frame.
type Slot struct {
	Width     float64
	Depth     float64
	Thickness float64

	UndercutWidth     float64
	UndercutDepth     float64
	UndercutThickness float64

	Solid *keycad.Solid
}

// Switch is a decorative switch body centered on the key origin.
type Switch struct {
	Width     float64
	Depth     float64
	Thickness float64

	Solid *keycad.Solid
}

// connectorSides lists the connector directions in exposure order.
var connectorSides = [...]frame.Direction{
	frame.Front,
	frame.Back,
	frame.Left,
	frame.Right,
	frame.FrontRight,
	frame.FrontLeft,
	frame.BackRight,
	frame.BackLeft,
}

var connectorNames = [...]string{
	"conn-front",
	"conn-back",
	"conn-left",
	"conn-right",
	"conn-frnt-rgt",
	"conn-frnt-lft",
	"conn-back-rgt",
	"conn-back-lft",
}

// Connectors holds the gap fillers a key owns, one per side and corner.
// A missing connector means no gap filler was computed on that side.
type Connectors struct {
	solids [len(connectorSides)]*keycad.Solid
}

func connectorIndex(d frame.Direction) int {
	for i, s := range connectorSides {
		if s == d {
			return i
		}
	}
	panic("no connector on side " + d.String())
}

// Get returns the connector on side d or nil.
func (c *Connectors) Get(d frame.Direction) *keycad.Solid {
	return c.solids[connectorIndex(d)]
}

// Len returns the number of attached connectors.
func (c *Connectors) Len() (n int) {
	for _, s := range c.solids {
		if s != nil {
			n++
		}
	}
	return n
}

// ExposureName returns the object name of the connector on side d.
func ExposureName(d frame.Direction) string {
	return connectorNames[connectorIndex(d)]
}

// Category classifies an exposed object for output filtering.
type Category uint8

const (
	CategoryPlane Category = iota
	CategoryOrigin
	CategoryCap
	CategorySlot
	CategorySwitch
	CategoryConnector
)

var categoryNames = [...]string{
	CategoryPlane:     "plane",
	CategoryOrigin:    "origin",
	CategoryCap:       "cap",
	CategorySlot:      "slot",
	CategorySwitch:    "switch",
	CategoryConnector: "connector",
}

func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return "unknown"
}

// Solid reports whether objects of the category are closed solids
// that belong in a unified export.
func (c Category) Solid() bool {
	return c != CategoryPlane && c != CategoryOrigin
}

// Object is one posed shape a key exposes for output.
type Object struct {
	Name     string
	Category Category
	Solid    *keycad.Solid
}
