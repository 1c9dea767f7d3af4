// Package frame tracks the orthonormal basis of a rotated key and resolves
// directional selections against it.
package frame

import (
	"fmt"
	"math"

	"github.com/soypat/keycad/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// OrthoTol is the largest |dot| accepted between two frame axes.
const OrthoTol = 1e-3

// Frame is a local coordinate frame: an origin and three orthonormal axes.
// XY, YZ and ZX are the normals of the frame's coordinate planes, which
// for a right handed frame equal Z, X and Y.
// The zero value is not usable; start from New.
type Frame struct {
	Origin  r3.Vec
	X, Y, Z r3.Vec

	XY, YZ, ZX r3.Vec
}

// New returns the global frame.
func New() Frame {
	var f Frame
	f.UpdateAxes(r3.Vec{X: 1}, r3.Vec{Y: 1}, r3.Vec{Z: 1})
	return f
}

// UpdateAxes sets the frame axes to the normalized x, y, z and derives
// the plane normals. It panics if any two axes are not orthogonal within
// OrthoTol or if an axis has no length.
func (f *Frame) UpdateAxes(x, y, z r3.Vec) {
	x, y, z = d3.Unit(x), d3.Unit(y), d3.Unit(z)
	if x == (r3.Vec{}) || y == (r3.Vec{}) || z == (r3.Vec{}) {
		panic("frame axis has zero length")
	}
	if d := math.Abs(r3.Dot(x, y)); d > OrthoTol {
		panic(fmt.Sprintf("frame axes X and Y not orthogonal: |x·y|=%g", d))
	}
	if d := math.Abs(r3.Dot(y, z)); d > OrthoTol {
		panic(fmt.Sprintf("frame axes Y and Z not orthogonal: |y·z|=%g", d))
	}
	if d := math.Abs(r3.Dot(z, x)); d > OrthoTol {
		panic(fmt.Sprintf("frame axes Z and X not orthogonal: |z·x|=%g", d))
	}
	f.X, f.Y, f.Z = x, y, z
	f.XY = d3.Unit(r3.Cross(x, y))
	f.YZ = d3.Unit(r3.Cross(y, z))
	f.ZX = d3.Unit(r3.Cross(z, x))
}

// ComputeRotation rotates the global axes by deg degrees, about Z first,
// then X, then Y, all about the global axes, and makes the result the
// frame's axes. The order matters since rotations do not commute.
func (f *Frame) ComputeRotation(deg r3.Vec) {
	r := d3.Pose(deg, r3.Vec{})
	f.UpdateAxes(r.Column(0), r.Column(1), r.Column(2))
}

// ComputeTranslation sets the frame origin to position plus offset.
func (f *Frame) ComputeTranslation(position, offset r3.Vec) {
	f.Origin = r3.Add(position, offset)
}

// Transform returns the rigid transform mapping coordinates expressed in
// the frame into global coordinates.
func (f Frame) Transform() d3.Transform {
	return d3.NewTransform([]float64{
		f.X.X, f.Y.X, f.Z.X,
		f.X.Y, f.Y.Y, f.Z.Y,
		f.X.Z, f.Y.Z, f.Z.Z,
	}, f.Origin)
}

// Resolve returns the global unit vector of the local direction d.
func (f Frame) Resolve(d Direction) r3.Vec {
	l := d.Local()
	return d3.Unit(r3.Add(r3.Add(r3.Scale(l.X, f.X), r3.Scale(l.Y, f.Y)), r3.Scale(l.Z, f.Z)))
}

// SameOrientation reports whether f and g have the same axes within tol.
func (f Frame) SameOrientation(g Frame, tol float64) bool {
	return d3.EqualWithin(f.X, g.X, tol) &&
		d3.EqualWithin(f.Y, g.Y, tol) &&
		d3.EqualWithin(f.Z, g.Z, tol)
}

func (f Frame) String() string {
	return fmt.Sprintf("frame{o=%.3v x=%.3v y=%.3v z=%.3v}", f.Origin, f.X, f.Y, f.Z)
}
