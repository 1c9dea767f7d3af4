package d3

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestTransformInverse(t *testing.T) {
	const tol = 1e-12
	for _, test := range []struct {
		deg, trans r3.Vec
	}{
		{},
		{deg: r3.Vec{X: 10}},
		{deg: r3.Vec{X: 10, Y: -35, Z: 90}, trans: r3.Vec{X: 1, Y: 2, Z: 3}},
		{deg: r3.Vec{Z: 180}, trans: r3.Vec{X: -19}},
	} {
		T := Pose(test.deg, test.trans)
		got := T.Inv().Mul(T)
		if !got.equals(Transform{}, tol) {
			t.Errorf("pose %v: inverse times pose is not identity: %+v", test.deg, got)
		}
		if math.Abs(T.Det()-1) > tol {
			t.Errorf("pose %v: rotation determinant %g != 1", test.deg, T.Det())
		}
	}
}

func TestPoseOrder(t *testing.T) {
	const tol = 1e-12
	// Z first: the X axis goes to Y, then rotating about X sends Y to Z.
	T := Pose(r3.Vec{X: 90, Z: 90}, r3.Vec{})
	got := T.Rotate(r3.Vec{X: 1})
	if !EqualWithin(got, r3.Vec{Z: 1}, tol) {
		t.Errorf("got %v, want +Z", got)
	}
	// Translation is applied after rotation.
	T = Pose(r3.Vec{Z: 90}, r3.Vec{X: 5})
	got = T.Transform(r3.Vec{X: 1})
	if !EqualWithin(got, r3.Vec{X: 5, Y: 1}, tol) {
		t.Errorf("got %v, want (5,1,0)", got)
	}
	for i, want := range []r3.Vec{{Y: 1}, {X: -1}, {Z: 1}} {
		if c := T.Column(i); !EqualWithin(c, want, tol) {
			t.Errorf("column %d: got %v, want %v", i, c, want)
		}
	}
}

func TestBoxSignedDistance(t *testing.T) {
	b := NewBox(r3.Vec{}, r3.Vec{X: 2, Y: 2, Z: 2})
	for _, test := range []struct {
		p    r3.Vec
		want float64
	}{
		{p: r3.Vec{}, want: -1},
		{p: r3.Vec{X: 2}, want: 1},
		{p: r3.Vec{X: 2, Y: 2}, want: math.Sqrt2},
		{p: r3.Vec{Z: 0.5}, want: -0.5},
	} {
		got := b.SignedDistance(test.p)
		if math.Abs(got-test.want) > 1e-12 {
			t.Errorf("SignedDistance(%v) = %g, want %g", test.p, got, test.want)
		}
	}
	if d := b.Distance(r3.Vec{X: 0.5}); d != 0 {
		t.Errorf("inside point distance %g != 0", d)
	}
}
