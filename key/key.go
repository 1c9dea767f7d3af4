// Package key models one keyboard key: its footprint, cap, switch slot,
// switch and the connectors that fill the gaps to its neighbours.
//
// A Key moves forward through its states exactly once per run:
//
//	Unsized -> Sized -> Placed -> Computed -> Connected -> Exposed
//
// Calling an operation in the wrong state is a programming error and
// panics with the key's name.
package key

import (
	"fmt"

	"github.com/soypat/keycad"
	"github.com/soypat/keycad/cache"
	"github.com/soypat/keycad/config"
	"github.com/soypat/keycad/form3"
	"github.com/soypat/keycad/form3/must3"
	"github.com/soypat/keycad/frame"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// State is a step of the key lifecycle.
type State uint8

const (
	Unsized State = iota
	Sized
	Placed
	Computed
	Connected
	Exposed
)

var stateNames = [...]string{
	Unsized:   "unsized",
	Sized:     "sized",
	Placed:    "placed",
	Computed:  "computed",
	Connected: "connected",
	Exposed:   "exposed",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", s)
}

// Hand tells which half of a split board a key belongs to.
type Hand uint8

const (
	LeftHand Hand = iota
	RightHand
)

func (h Hand) String() string {
	if h == RightHand {
		return "right"
	}
	return "left"
}

// Block is the key group a key belongs to.
type Block uint8

const (
	MainBlock Block = iota
	ArrowBlock
	NumpadBlock
)

func (b Block) String() string {
	switch b {
	case ArrowBlock:
		return "arrow"
	case NumpadBlock:
		return "numpad"
	}
	return "main"
}

// markerSize is the half extent of the origin marker.
const markerSize = 0.5

// Key is one key of the matrix.
type Key struct {
	Name  string
	Hand  Hand
	Block Block

	Base       Footprint
	Cap        Cap
	Slot       Slot
	Switch     Switch
	Connectors Connectors

	plane  *keycad.Solid
	origin *keycad.Solid

	shape   ShapeStrategy
	state   State
	objects []Object
}

// New returns an unsized key of archetype a dimensioned by cfg.
func New(a Archetype, cfg *config.Config) *Key {
	if a.Width <= 0 || a.Depth <= 0 {
		panic(fmt.Sprintf("key %q: archetype has no size", a.Name))
	}
	kb, grp := cfg.KeyBase, cfg.Group
	k := &Key{
		Name: a.Name,
		Base: Footprint{
			UnitLength:      kb.UnitLength,
			UnitWidth:       a.Width,
			UnitDepth:       a.Depth,
			ClearanceLeft:   a.Left.resolve(kb.ClearanceX, grp),
			ClearanceRight:  a.Right.resolve(kb.ClearanceX, grp),
			ClearanceTop:    a.Top.resolve(kb.ClearanceY, grp),
			ClearanceBottom: a.Bottom.resolve(kb.ClearanceY, grp),
			Visible:         !a.Hidden,
			Filled:          a.Filled,
			ConnectedLeft:   a.Disconnect&SideLeft == 0,
			ConnectedRight:  a.Disconnect&SideRight == 0,
			ConnectedFront:  a.Disconnect&SideFront == 0,
			ConnectedBack:   a.Disconnect&SideBack == 0,
			PositionOffset:  r3.Vec{Y: a.OffsetY * kb.UnitLength},
			Frame:           frame.New(),
		},
		Cap: Cap{
			WidthClearance: cfg.Cap.WidthClearance,
			DepthClearance: cfg.Cap.DepthClearance,
			Thickness:      cfg.Cap.Thickness,
			ZClearance:     cfg.Cap.ZClearance,
			DishInset:      cfg.Cap.DishInset,
		},
		Slot: Slot{
			Width:             cfg.Slot.Width,
			Depth:             cfg.Slot.Depth,
			Thickness:         cfg.Slot.Thickness,
			UndercutWidth:     cfg.Slot.UndercutWidth,
			UndercutDepth:     cfg.Slot.UndercutDepth,
			UndercutThickness: cfg.Slot.UndercutThickness,
		},
		Switch: Switch{
			Width:     cfg.Switch.Width,
			Depth:     cfg.Switch.Depth,
			Thickness: cfg.Switch.Thickness,
		},
		shape: Strategy(a.Shape),
	}
	return k
}

// State returns the lifecycle state of k.
func (k *Key) State() State { return k.state }

func (k *Key) String() string {
	return fmt.Sprintf("key %q (%v)", k.Name, k.state)
}

// require panics unless k is in one of the states.
func (k *Key) require(op string, states ...State) {
	for _, s := range states {
		if k.state == s {
			return
		}
	}
	panic(fmt.Sprintf("key %q: %s while %v, want one of %v", k.Name, op, k.state, states))
}

// atLeast panics if k has not reached state s.
func (k *Key) atLeast(op string, s State) {
	if k.state < s {
		panic(fmt.Sprintf("key %q: %s while %v, want %v or later", k.Name, op, k.state, s))
	}
}

// Update resolves the footprint and cap dimensions.
func (k *Key) Update() {
	k.require("update", Unsized)
	k.Base.Update()
	k.Cap.update(k.Base)
	k.state = Sized
}

// PlaceRelativeTo positions k flush against ref on ref's side d.
func (k *Key) PlaceRelativeTo(ref *Key, d frame.Direction) {
	k.require("place", Sized, Placed)
	ref.atLeast("place neighbour", Placed)
	k.Base.PlaceRelativeTo(&ref.Base, d)
	k.state = Placed
}

// AlignTo moves k so its side d lies at pos.
func (k *Key) AlignTo(pos float64, d frame.Direction) {
	k.require("align", Sized, Placed)
	k.Base.AlignTo(pos, d)
	k.state = Placed
}

// ApplyOffset adds position and rotation deltas to the key's offsets
// and recomputes its local frame.
func (k *Key) ApplyOffset(position, rotation r3.Vec) {
	k.require("offset", Sized, Placed)
	k.Base.PositionOffset = r3.Add(k.Base.PositionOffset, position)
	k.Base.RotationOffset = r3.Add(k.Base.RotationOffset, rotation)
	k.Base.ComputeFrame()
}

// Compute builds the key's shapes at the origin and poses them in the
// key's local frame. Caps and slots are shared through c. Dimensions a
// shape cannot be built from are reported as an error naming the key.
func (k *Key) Compute(c *cache.ObjectCache, dbg config.Debug) error {
	k.require("compute", Placed)
	k.Base.ComputeFrame()
	pose := k.Base.Frame.Transform()

	plane, err := form3.Rect(r2.Box{
		Min: r2.Vec{X: -k.Base.Width / 2, Y: -k.Base.Depth / 2},
		Max: r2.Vec{X: k.Base.Width / 2, Y: k.Base.Depth / 2},
	}, 0)
	if err != nil {
		return fmt.Errorf("key %q plane: %w", k.Name, err)
	}
	capSolid, err := k.shape.Cap(k, c)
	if err != nil {
		return fmt.Errorf("key %q cap: %w", k.Name, err)
	}
	basis, ok := capSolid.Face(r3.Vec{Z: -1})
	if !ok {
		return fmt.Errorf("key %q: cap has no bottom face", k.Name)
	}
	slot, err := k.shape.Slot(k, basis, c)
	if err != nil {
		return fmt.Errorf("key %q slot: %w", k.Name, err)
	}
	if dbg.RenderSwitch() {
		sw, err := form3.CenteredBox(r3.Vec{}, r3.Vec{X: k.Switch.Width, Y: k.Switch.Depth, Z: k.Switch.Thickness})
		if err != nil {
			return fmt.Errorf("key %q switch: %w", k.Name, err)
		}
		k.Switch.Solid = sw.Transform(pose)
	}
	if dbg.RenderOrigin() {
		o, ok := c.Get("origin", k.Name)
		if !ok {
			o = must3.Marker(markerSize)
			c.Store(o, "origin", k.Name)
		}
		k.origin = o.Transform(pose)
	}
	k.plane = plane.Transform(pose)
	k.Cap.Solid = capSolid.Transform(pose)
	k.Slot.Solid = slot.Transform(pose)
	k.state = Computed
	return nil
}

// Attach sets the connector on side d.
func (k *Key) Attach(d frame.Direction, s *keycad.Solid) {
	k.require("attach connector", Computed, Connected)
	if s == nil {
		panic(fmt.Sprintf("key %q: nil connector on %v", k.Name, d))
	}
	i := connectorIndex(d)
	if k.Connectors.solids[i] != nil {
		panic(fmt.Sprintf("key %q: connector %v already attached", k.Name, d))
	}
	k.Connectors.solids[i] = s
	k.state = Connected
}

// Expose collects the key's shapes whose category passes keep. The cap
// of a filled key is never exposed.
func (k *Key) Expose(keep func(Category) bool) []Object {
	k.require("expose", Computed, Connected)
	var objs []Object
	add := func(name string, c Category, s *keycad.Solid) {
		if s != nil && keep(c) {
			objs = append(objs, Object{Name: name, Category: c, Solid: s})
		}
	}
	add("plane", CategoryPlane, k.plane)
	add("origin", CategoryOrigin, k.origin)
	if !k.Base.Filled {
		add("cap", CategoryCap, k.Cap.Solid)
	}
	add("slot", CategorySlot, k.Slot.Solid)
	add("switch", CategorySwitch, k.Switch.Solid)
	for i, s := range k.Connectors.solids {
		add(connectorNames[i], CategoryConnector, s)
	}
	k.objects = objs
	k.state = Exposed
	return objs
}

// Objects returns what the last Expose collected.
func (k *Key) Objects() []Object {
	k.require("objects", Exposed)
	return k.objects
}

// Frame returns the key's local frame.
func (k *Key) Frame() frame.Frame {
	k.atLeast("frame", Computed)
	return k.Base.Frame
}

// SlotFace returns the outermost slot face on side d.
func (k *Key) SlotFace(d frame.Direction) keycad.Face {
	k.atLeast("slot face", Computed)
	f, ok := k.Slot.Solid.Face(k.Base.Frame.Resolve(d))
	if !ok {
		panic(fmt.Sprintf("key %q: slot has no %v face", k.Name, d))
	}
	return f
}

// SlotCornerEdge returns the vertical slot edge on side dy farthest
// toward dx, such as the back-left edge for Left, Back. The edge runs
// from bottom to top.
func (k *Key) SlotCornerEdge(dx, dy frame.Direction) keycad.Edge {
	k.atLeast("slot corner edge", Computed)
	f := k.Base.Frame
	e, ok := k.Slot.Solid.CornerEdge(f.Resolve(dx), f.Resolve(dy), f.Resolve(frame.Top))
	if !ok {
		panic(fmt.Sprintf("key %q: slot has no %v %v corner edge", k.Name, dy, dx))
	}
	return e
}

// SlotCornerVertex returns the slot vertex on side dz farthest toward dy,
// then toward dx.
func (k *Key) SlotCornerVertex(dx, dy, dz frame.Direction) r3.Vec {
	k.atLeast("slot corner vertex", Computed)
	f := k.Base.Frame
	v, ok := k.Slot.Solid.CornerVertex(f.Resolve(dy), f.Resolve(dz), f.Resolve(dx))
	if !ok {
		panic(fmt.Sprintf("key %q: slot has no %v %v %v corner", k.Name, dz, dy, dx))
	}
	return v
}

// SlotStepEdges returns the two vertical edges of the slot face across Y
// that lies farthest left. On an L shaped slot that face is the step
// below the wide part; outer is its edge toward Left.
func (k *Key) SlotStepEdges() (outer, inner keycad.Edge) {
	k.atLeast("slot step edges", Computed)
	f := k.Base.Frame
	left := f.Resolve(frame.Left)
	faces := append(k.Slot.Solid.FacesAlong(f.Resolve(frame.Front)), k.Slot.Solid.FacesAlong(f.Resolve(frame.Back))...)
	if len(faces) == 0 {
		panic(fmt.Sprintf("key %q: slot has no faces across Y", k.Name))
	}
	step := faces[0]
	for _, face := range faces[1:] {
		if r3.Dot(face.Centroid(), left) > r3.Dot(step.Centroid(), left) {
			step = face
		}
	}
	up := f.Resolve(frame.Top)
	outerPoint := r3.Add(f.Origin, r3.Scale(k.Base.Width, left))
	var ok1, ok2 bool
	outer, ok1 = step.NearestEdge(up, outerPoint)
	inner, ok2 = step.NearestEdge(up, f.Origin)
	if !ok1 || !ok2 {
		panic(fmt.Sprintf("key %q: slot step has no vertical edges", k.Name))
	}
	return outer, inner
}
