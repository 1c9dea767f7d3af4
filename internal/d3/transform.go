package d3

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Transform represents a rigid or affine 3D transformation: a 3x3 linear
// part followed by a translation. The zero value of Transform is the
// identity transform.
type Transform struct {
	// the linear part is stored with the identity subtracted so that
	//  d00 = x00-1, d11 = x11-1, d22 = x22-1
	// which lets identity be checked with
	//  if T == (Transform{})
	d00, x01, x02 float64
	x10, d11, x12 float64
	x20, x21, d22 float64
	t             r3.Vec
}

// NewTransform returns a Transform from a row-major 3x3 linear part
// and a translation. It panics if a does not have 9 elements.
func NewTransform(a []float64, translation r3.Vec) Transform {
	if len(a) != 9 {
		panic("linear part of Transform is initialized with 9 values")
	}
	return Transform{
		d00: a[0] - 1, x01: a[1], x02: a[2],
		x10: a[3], d11: a[4] - 1, x12: a[5],
		x20: a[6], x21: a[7], d22: a[8] - 1,
		t: translation,
	}
}

// Transform applies the Transform to the argument position.
func (t Transform) Transform(v r3.Vec) r3.Vec {
	return r3.Add(t.Rotate(v), t.t)
}

// Rotate applies only the linear part of the Transform to v.
// Use it for directions and normals of rigid transforms.
func (t Transform) Rotate(v r3.Vec) r3.Vec {
	return r3.Vec{
		X: (t.d00+1)*v.X + t.x01*v.Y + t.x02*v.Z,
		Y: t.x10*v.X + (t.d11+1)*v.Y + t.x12*v.Z,
		Z: t.x20*v.X + t.x21*v.Y + (t.d22+1)*v.Z,
	}
}

// Column returns the i'th column of the linear part, which is
// the image of the i'th global axis.
func (t Transform) Column(i int) r3.Vec {
	switch i {
	case 0:
		return r3.Vec{X: t.d00 + 1, Y: t.x10, Z: t.x20}
	case 1:
		return r3.Vec{X: t.x01, Y: t.d11 + 1, Z: t.x21}
	case 2:
		return r3.Vec{X: t.x02, Y: t.x12, Z: t.d22 + 1}
	}
	panic("column index out of range")
}

// Translation returns the translation part of the Transform.
func (t Transform) Translation() r3.Vec { return t.t }

// Translate adds v to the translation of the Transform.
// It is applied after the linear part.
func (t Transform) Translate(v r3.Vec) Transform {
	t.t = r3.Add(t.t, v)
	return t
}

// Mul returns the Transform that applies b first and then t.
func (t Transform) Mul(b Transform) Transform {
	if t == (Transform{}) {
		return b
	}
	if b == (Transform{}) {
		return t
	}
	x00, x11, x22 := t.d00+1, t.d11+1, t.d22+1
	y00, y11, y22 := b.d00+1, b.d11+1, b.d22+1
	var m Transform
	m.d00 = x00*y00 + t.x01*b.x10 + t.x02*b.x20 - 1
	m.x01 = x00*b.x01 + t.x01*y11 + t.x02*b.x21
	m.x02 = x00*b.x02 + t.x01*b.x12 + t.x02*y22
	m.x10 = t.x10*y00 + x11*b.x10 + t.x12*b.x20
	m.d11 = t.x10*b.x01 + x11*y11 + t.x12*b.x21 - 1
	m.x12 = t.x10*b.x02 + x11*b.x12 + t.x12*y22
	m.x20 = t.x20*y00 + t.x21*b.x10 + x22*b.x20
	m.x21 = t.x20*b.x01 + t.x21*y11 + x22*b.x21
	m.d22 = t.x20*b.x02 + t.x21*b.x12 + x22*y22 - 1
	m.t = t.Transform(b.t)
	return m
}

// Det returns the determinant of the linear part.
func (t Transform) Det() float64 {
	x00, x11, x22 := t.d00+1, t.d11+1, t.d22+1
	return x00*(x11*x22-t.x12*t.x21) -
		t.x01*(t.x10*x22-t.x12*t.x20) +
		t.x02*(t.x10*t.x21-x11*t.x20)
}

// Inv returns the inverse of the transform such that
// t.Inv().Mul(t) is the identity Transform.
// If the linear part is singular then Inv panics.
func (t Transform) Inv() Transform {
	if t == (Transform{}) {
		return t
	}
	det := t.Det()
	if math.Abs(det) < 1e-16 {
		panic("singular Transform has no inverse")
	}
	d := 1 / det
	x00, x11, x22 := t.d00+1, t.d11+1, t.d22+1
	var m Transform
	m.d00 = (x11*x22-t.x12*t.x21)*d - 1
	m.x01 = (t.x02*t.x21 - t.x01*x22) * d
	m.x02 = (t.x01*t.x12 - t.x02*x11) * d
	m.x10 = (t.x12*t.x20 - t.x10*x22) * d
	m.d11 = (x00*x22-t.x02*t.x20)*d - 1
	m.x12 = (t.x02*t.x10 - x00*t.x12) * d
	m.x20 = (t.x10*t.x21 - x11*t.x20) * d
	m.x21 = (t.x01*t.x20 - x00*t.x21) * d
	m.d22 = (x00*x11-t.x01*t.x10)*d - 1
	m.t = r3.Scale(-1, m.Rotate(t.t))
	return m
}

// RotateX returns a rotation of deg degrees about the global X axis.
func RotateX(deg float64) Transform {
	s, c := math.Sincos(deg * math.Pi / 180)
	return NewTransform([]float64{
		1, 0, 0,
		0, c, -s,
		0, s, c,
	}, r3.Vec{})
}

// RotateY returns a rotation of deg degrees about the global Y axis.
func RotateY(deg float64) Transform {
	s, c := math.Sincos(deg * math.Pi / 180)
	return NewTransform([]float64{
		c, 0, s,
		0, 1, 0,
		-s, 0, c,
	}, r3.Vec{})
}

// RotateZ returns a rotation of deg degrees about the global Z axis.
func RotateZ(deg float64) Transform {
	s, c := math.Sincos(deg * math.Pi / 180)
	return NewTransform([]float64{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	}, r3.Vec{})
}

// Pose returns the rigid transform that rotates about the global Z axis
// by deg.Z, then about global X by deg.X, then about global Y by deg.Y,
// and finally translates by t. Angles are in degrees.
func Pose(deg, t r3.Vec) Transform {
	return RotateY(deg.Y).Mul(RotateX(deg.X)).Mul(RotateZ(deg.Z)).Translate(t)
}

// TransformBox returns the axis aligned box that contains the
// transformed corners of b.
func (t Transform) TransformBox(b Box) Box {
	vs := b.Vertices()
	out := Box{Min: t.Transform(vs[0]), Max: t.Transform(vs[0])}
	for _, v := range vs[1:] {
		out = out.Include(t.Transform(v))
	}
	return out
}

// equals tests the equality of the Transforms to within a tolerance.
func (t Transform) equals(b Transform, tolerance float64) bool {
	return math.Abs(t.d00-b.d00) < tolerance &&
		math.Abs(t.x01-b.x01) < tolerance &&
		math.Abs(t.x02-b.x02) < tolerance &&
		math.Abs(t.x10-b.x10) < tolerance &&
		math.Abs(t.d11-b.d11) < tolerance &&
		math.Abs(t.x12-b.x12) < tolerance &&
		math.Abs(t.x20-b.x20) < tolerance &&
		math.Abs(t.x21-b.x21) < tolerance &&
		math.Abs(t.d22-b.d22) < tolerance &&
		EqualWithin(t.t, b.t, tolerance)
}
