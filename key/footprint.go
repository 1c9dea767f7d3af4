package key

import (
	"github.com/soypat/keycad/frame"
	"gonum.org/v1/gonum/spatial/r3"
)

// Footprint is the flat rectangular placement boundary of a key. Its
// Width and Depth derive from unit factors. The four clearances are
// independent so the gap between two keys is always the sum of the
// facing clearances.
//
// Visible, Filled and the Connected flags describe placeholders:
// a plain key is visible and connected, a placeholder below the ISO
// Enter is invisible and disconnected, a placeholder next to the arrow
// keys is visible, filled and connected.
type Footprint struct {
	UnitLength float64
	UnitWidth  float64
	UnitDepth  float64
	// Width and Depth are resolved by Update.
	Width, Depth float64

	ClearanceLeft   float64
	ClearanceRight  float64
	ClearanceTop    float64
	ClearanceBottom float64

	Visible bool
	Filled  bool

	ConnectedLeft  bool
	ConnectedRight bool
	ConnectedFront bool
	ConnectedBack  bool

	// Position is set by placement. Offsets are deliberate perturbations
	// added on top; only the totals pose geometry.
	Position       r3.Vec
	PositionOffset r3.Vec
	// Rotation and RotationOffset are degrees about X, Y and Z, applied
	// in Z, X, Y order.
	Rotation       r3.Vec
	RotationOffset r3.Vec

	Frame frame.Frame
}

// Update resolves width and depth from the unit factors.
func (f *Footprint) Update() {
	f.Width = f.UnitWidth * f.UnitLength
	f.Depth = f.UnitDepth * f.UnitLength
}

// TotalPosition returns Position plus PositionOffset.
func (f Footprint) TotalPosition() r3.Vec { return r3.Add(f.Position, f.PositionOffset) }

// TotalRotation returns Rotation plus RotationOffset.
func (f Footprint) TotalRotation() r3.Vec { return r3.Add(f.Rotation, f.RotationOffset) }

// ComputeFrame recomputes the local frame from the total rotation and
// total position.
func (f *Footprint) ComputeFrame() {
	f.Frame.ComputeRotation(f.TotalRotation())
	f.Frame.ComputeTranslation(f.Position, f.PositionOffset)
}

// Connected reports whether the side d is connected to its neighbour.
// Diagonal sides are connected when both of their components are.
func (f Footprint) Connected(d frame.Direction) bool {
	switch d {
	case frame.Left:
		return f.ConnectedLeft
	case frame.Right:
		return f.ConnectedRight
	case frame.Front:
		return f.ConnectedFront
	case frame.Back:
		return f.ConnectedBack
	case frame.FrontLeft:
		return f.ConnectedFront && f.ConnectedLeft
	case frame.FrontRight:
		return f.ConnectedFront && f.ConnectedRight
	case frame.BackLeft:
		return f.ConnectedBack && f.ConnectedLeft
	case frame.BackRight:
		return f.ConnectedBack && f.ConnectedRight
	}
	return false
}

// SetConnected sets all four side flags to v.
func (f *Footprint) SetConnected(v bool) {
	f.ConnectedLeft, f.ConnectedRight = v, v
	f.ConnectedFront, f.ConnectedBack = v, v
}

// PlaceRelativeTo positions f flush against ref on side d of ref,
// separated by the two facing clearances. Only the axis across d
// changes; the other keeps ref's coordinate.
func (f *Footprint) PlaceRelativeTo(ref *Footprint, d frame.Direction) {
	p := f.Position
	switch d {
	case frame.Top, frame.Back:
		p.X = ref.Position.X
		p.Y = ref.Position.Y + ref.Depth/2 + ref.ClearanceTop + f.ClearanceBottom + f.Depth/2
	case frame.Bottom, frame.Front:
		p.X = ref.Position.X
		p.Y = ref.Position.Y - ref.Depth/2 - ref.ClearanceBottom - f.ClearanceTop - f.Depth/2
	case frame.Right:
		p.X = ref.Position.X + ref.Width/2 + ref.ClearanceRight + f.ClearanceLeft + f.Width/2
		p.Y = ref.Position.Y
	case frame.Left:
		p.X = ref.Position.X - ref.Width/2 - ref.ClearanceLeft - f.ClearanceRight - f.Width/2
		p.Y = ref.Position.Y
	default:
		panic("cannot place relative to side " + d.String())
	}
	f.Position = p
}

// AlignTo moves f so its side d lies at pos along that side's axis.
// The footprint is flat, so Top and Bottom set its height directly.
func (f *Footprint) AlignTo(pos float64, d frame.Direction) {
	switch d {
	case frame.Top, frame.Bottom:
		f.Position.Z = pos
	case frame.Right:
		f.Position.X = pos - f.Width/2
	case frame.Left:
		f.Position.X = pos + f.Width/2
	case frame.Front:
		f.Position.Y = pos + f.Depth/2
	case frame.Back:
		f.Position.Y = pos - f.Depth/2
	default:
		panic("cannot align side " + d.String())
	}
}
