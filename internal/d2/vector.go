// Package d2 holds the planar helpers of the kernel: boxes, point sets
// and the orientation predicates used for polygon triangulation.
package d2

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// EqualWithin checks if two vectors are within a tolerance.
func EqualWithin(a, b r2.Vec, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol
}

// MinElem returns the minimum components of two vectors.
func MinElem(a, b r2.Vec) r2.Vec {
	return r2.Vec{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)}
}

// MaxElem returns the maximum components of two vectors.
func MaxElem(a, b r2.Vec) r2.Vec {
	return r2.Vec{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)}
}

// Cross returns twice the signed area of the triangle abc. It is
// positive when abc turns counter-clockwise.
func Cross(a, b, c r2.Vec) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// InsideTriangle reports whether p lies inside the counter-clockwise
// triangle abc by more than eps.
func InsideTriangle(p, a, b, c r2.Vec, eps float64) bool {
	return Cross(a, b, p) > eps && Cross(b, c, p) > eps && Cross(c, a, p) > eps
}

// Set is a set of 2d points.
type Set []r2.Vec

// Min return the minimum components of a set of vectors.
func (a Set) Min() r2.Vec {
	vmin := a[0]
	for _, v := range a[1:] {
		vmin = MinElem(vmin, v)
	}
	return vmin
}

// Max return the maximum components of a set of vectors.
func (a Set) Max() r2.Vec {
	vmax := a[0]
	for _, v := range a[1:] {
		vmax = MaxElem(vmax, v)
	}
	return vmax
}

// Bounds returns the bounding box of the set.
func (a Set) Bounds() Box {
	return Box{Min: a.Min(), Max: a.Max()}
}

// Area returns the signed area of the polygon a, positive when it
// winds counter-clockwise.
func (a Set) Area() float64 {
	var s float64
	for i, p := range a {
		q := a[(i+1)%len(a)]
		s += p.X*q.Y - q.X*p.Y
	}
	return s / 2
}
