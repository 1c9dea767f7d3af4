package key

import (
	"github.com/soypat/keycad/config"
)

// Gap selects the clearance of one footprint side.
type Gap uint8

const (
	// BaseGap keeps the key base clearance.
	BaseGap Gap = iota
	// FGroupHalfX is half the gap between function key groups.
	FGroupHalfX
	// FGroupHalfY is half the gap between the function and number rows.
	FGroupHalfY
	// ArrowGroupX separates the main block from the navigation keys.
	ArrowGroupX
	// NumpadX separates the navigation keys from the numpad.
	NumpadX
)

func (g Gap) resolve(base float64, grp config.Group) float64 {
	switch g {
	case FGroupHalfX:
		return grp.ClearanceXFGroup / 2
	case FGroupHalfY:
		return grp.ClearanceYFGroup / 2
	case ArrowGroupX:
		return grp.ClearanceXArrowGroup
	case NumpadX:
		return grp.ClearanceXNumpad
	}
	return base
}

// Sides is a set of footprint sides.
type Sides uint8

const (
	SideLeft Sides = 1 << iota
	SideRight
	SideFront
	SideBack

	AllSides = SideLeft | SideRight | SideFront | SideBack
)

// Shape selects the ShapeStrategy of a key.
type Shape uint8

const (
	ShapePlanar Shape = iota
	ShapeIsoEnter
)

// Archetype describes a kind of key. The zero value with a name and
// unit sizes is a plain visible, connected key.
type Archetype struct {
	Name string
	// Width and Depth are unit factors.
	Width, Depth float64
	// OffsetY shifts the key geometry along Y, in units, without
	// changing its placement. Keys two units deep hang into the row
	// in front of theirs.
	OffsetY float64

	Left, Right, Top, Bottom Gap

	Hidden     bool
	Filled     bool
	Disconnect Sides
	Shape      Shape
}

// Connect returns a copy of a with the sides s connected.
func (a Archetype) Connect(s Sides) Archetype {
	a.Disconnect &^= s
	return a
}

// Char returns the archetype of a 1u key named name.
func Char(name string) Archetype {
	return Archetype{Name: name, Width: 1, Depth: 1}
}

func sized(name string, w float64) Archetype {
	return Archetype{Name: name, Width: w, Depth: 1}
}

var archetypes = map[string]Archetype{}

func init() {
	for _, a := range []Archetype{
		sized("TAB", 1.5),
		sized("CSFT", 1.75),
		sized("LSFT", 1.25),
		sized("RSFT", 2.75),
		sized("LCTR", 1.25),
		sized("LOS", 1.25),
		sized("LALT", 1.25),
		sized("RALT", 1.25),
		sized("FN", 1.25),
		sized("MENU", 1.25),
		sized("RCTL", 1.25),
		sized("SPC", 6.25),
		sized("BSP", 2),
		{Name: "ENT", Width: 1.5, Depth: 2, OffsetY: -0.5, Shape: ShapeIsoEnter},

		{Name: "ESC", Width: 1, Depth: 1, Right: FGroupHalfX, Bottom: FGroupHalfY},
		{Name: "F1", Width: 1, Depth: 1, Left: FGroupHalfX},
		{Name: "F4", Width: 1, Depth: 1, Right: FGroupHalfX},
		{Name: "F5", Width: 1, Depth: 1, Left: FGroupHalfX},
		{Name: "F8", Width: 1, Depth: 1, Right: FGroupHalfX},
		{Name: "F9", Width: 1, Depth: 1, Left: FGroupHalfX},

		{Name: "PRT", Width: 1, Depth: 1, Left: ArrowGroupX},
		{Name: "INS", Width: 1, Depth: 1, Left: ArrowGroupX},
		{Name: "DEL", Width: 1, Depth: 1, Left: ArrowGroupX},
		{Name: "LAR", Width: 1, Depth: 1, Left: ArrowGroupX},

		{Name: "NINS", Width: 2, Depth: 1, Left: NumpadX},
		{Name: "NENT", Width: 1, Depth: 2, OffsetY: -0.5},
		{Name: "NPLU", Width: 1, Depth: 2, OffsetY: -0.5},

		// Placeholders.
		{Name: "s100", Width: 1, Depth: 1, Hidden: true, Disconnect: AllSides},
		{Name: "s125", Width: 1.25, Depth: 1, Hidden: true, Disconnect: AllSides},
		{Name: "sc100", Width: 1, Depth: 1, Hidden: true},
		{Name: "sf100", Width: 1, Depth: 1, Filled: true},
		{Name: "sa100", Width: 1, Depth: 1, Left: ArrowGroupX, Filled: true},
		{Name: "sn100", Width: 1, Depth: 1, Left: NumpadX},
		{Name: "sfn100", Width: 1, Depth: 1, Left: NumpadX, Filled: true},
	} {
		archetypes[a.Name] = a
	}
}

// Lookup returns the archetype registered under name. Names without an
// entry are plain 1u keys.
func Lookup(name string) Archetype {
	if a, ok := archetypes[name]; ok {
		return a
	}
	return Char(name)
}
