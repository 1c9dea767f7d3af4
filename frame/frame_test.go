package frame

import (
	"math"
	"testing"

	"github.com/soypat/keycad/internal/d3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestComputeRotationOrthogonal(t *testing.T) {
	for _, deg := range []r3.Vec{
		{},
		{X: 10},
		{X: 7, Y: -13, Z: 45},
		{X: 90, Y: 90, Z: 90},
		{X: -123.4, Y: 56.7, Z: 8.9},
	} {
		f := New()
		f.ComputeRotation(deg)
		assert.InDelta(t, 0, r3.Dot(f.X, f.Y), OrthoTol, "x·y for %v", deg)
		assert.InDelta(t, 0, r3.Dot(f.Y, f.Z), OrthoTol, "y·z for %v", deg)
		assert.InDelta(t, 0, r3.Dot(f.Z, f.X), OrthoTol, "z·x for %v", deg)
		assert.True(t, d3.EqualWithin(f.XY, f.Z, 1e-9), "xy normal for %v", deg)
		assert.True(t, d3.EqualWithin(f.YZ, f.X, 1e-9), "yz normal for %v", deg)
		assert.True(t, d3.EqualWithin(f.ZX, f.Y, 1e-9), "zx normal for %v", deg)
	}
}

func TestRotationOrder(t *testing.T) {
	f := New()
	// Z first sends X to Y, then X rotation sends Y to Z.
	f.ComputeRotation(r3.Vec{X: 90, Z: 90})
	assert.True(t, d3.EqualWithin(f.X, r3.Vec{Z: 1}, 1e-12), "got X axis %v", f.X)

	// X first would leave X fixed and Z would then send it to Y.
	swapped := d3.RotateZ(90).Mul(d3.RotateX(90)).Column(0)
	assert.True(t, d3.EqualWithin(swapped, r3.Vec{Y: 1}, 1e-12))
	assert.False(t, d3.EqualWithin(f.X, swapped, 1e-6))
}

func TestUpdateAxesPanics(t *testing.T) {
	f := New()
	require.Panics(t, func() {
		f.UpdateAxes(r3.Vec{X: 1}, r3.Vec{X: 1, Y: 1}, r3.Vec{Z: 1})
	})
	require.Panics(t, func() {
		f.UpdateAxes(r3.Vec{}, r3.Vec{Y: 1}, r3.Vec{Z: 1})
	})
	// Within tolerance is accepted and normalized.
	f.UpdateAxes(r3.Vec{X: 2}, r3.Vec{X: 1e-4, Y: 3}, r3.Vec{Z: 0.5})
	assert.InDelta(t, 1, r3.Norm(f.Y), 1e-12)
}

func TestResolve(t *testing.T) {
	f := New()
	f.ComputeRotation(r3.Vec{Z: 90})
	back := f.Resolve(Back)
	assert.True(t, d3.EqualWithin(back, r3.Vec{X: -1}, 1e-12), "back resolves to %v", back)
	fr := f.Resolve(FrontRight)
	assert.InDelta(t, 1, r3.Norm(fr), 1e-12)
	assert.InDelta(t, math.Sqrt2/2, fr.X, 1e-12)
	for d := Front; d <= BackRight; d++ {
		assert.Equal(t, d, d.Opposite().Opposite())
	}
}

func TestTransform(t *testing.T) {
	f := New()
	f.ComputeRotation(r3.Vec{Y: 30, Z: 15})
	f.ComputeTranslation(r3.Vec{X: 1, Y: 2}, r3.Vec{Z: 3})
	T := f.Transform()
	assert.True(t, d3.EqualWithin(T.Transform(r3.Vec{}), r3.Vec{X: 1, Y: 2, Z: 3}, 1e-12))
	assert.True(t, d3.EqualWithin(T.Rotate(r3.Vec{Y: 1}), f.Y, 1e-12))
	want := d3.Pose(r3.Vec{Y: 30, Z: 15}, r3.Vec{X: 1, Y: 2, Z: 3})
	p := r3.Vec{X: 3, Y: -4, Z: 5}
	assert.True(t, d3.EqualWithin(T.Transform(p), want.Transform(p), 1e-12))
}
