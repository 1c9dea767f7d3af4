package keycad

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func square(z, half float64) []r3.Vec {
	return []r3.Vec{
		{X: -half, Y: -half, Z: z},
		{X: half, Y: -half, Z: z},
		{X: half, Y: half, Z: z},
		{X: -half, Y: half, Z: z},
	}
}

func TestLoftPrism(t *testing.T) {
	for _, test := range []struct {
		name        string
		bottom, top []r3.Vec
		volume      float64
	}{
		{name: "ccw", bottom: square(0, 1), top: square(2, 1), volume: 8},
		{name: "cw", bottom: Face{V: square(0, 1)}.Reverse().V, top: Face{V: square(2, 1)}.Reverse().V, volume: 8},
		{name: "frustum", bottom: square(0, 2), top: square(1, 1), volume: 28.0 / 3},
	} {
		s, err := Loft(test.bottom, test.top)
		if err != nil {
			t.Fatalf("%s: %v", test.name, err)
		}
		if !s.Closed() {
			t.Errorf("%s: loft not closed", test.name)
		}
		if v := s.Volume(); math.Abs(v-test.volume) > 1e-9 {
			t.Errorf("%s: volume %g, want %g", test.name, v, test.volume)
		}
		if d := s.Evaluate(r3.Vec{Z: 0.5}); d >= 0 {
			t.Errorf("%s: inside point evaluates to %g", test.name, d)
		}
		if d := s.Evaluate(r3.Vec{Z: 10}); d <= 0 {
			t.Errorf("%s: outside point evaluates to %g", test.name, d)
		}
	}
}

func TestLoftNonConvexCap(t *testing.T) {
	// L-shaped outline.
	l := func(z float64) []r3.Vec {
		return []r3.Vec{
			{X: 0, Y: 0, Z: z}, {X: 2, Y: 0, Z: z}, {X: 2, Y: 1, Z: z},
			{X: 1, Y: 1, Z: z}, {X: 1, Y: 2, Z: z}, {X: 0, Y: 2, Z: z},
		}
	}
	s, err := Loft(l(0), l(1))
	if err != nil {
		t.Fatal(err)
	}
	if !s.Closed() {
		t.Error("L prism not closed")
	}
	if v := s.Volume(); math.Abs(v-3) > 1e-9 {
		t.Errorf("L prism volume %g, want 3", v)
	}
	if d := s.Evaluate(r3.Vec{X: 1.5, Y: 1.5, Z: 0.5}); d <= 0 {
		t.Errorf("notch point evaluates to %g, want positive", d)
	}
}

func TestLoftFacesShift(t *testing.T) {
	// Two facing squares: a looks toward +X, b toward -X.
	a := Face{V: []r3.Vec{{Y: -1, Z: -1}, {Y: 1, Z: -1}, {Y: 1, Z: 1}, {Y: -1, Z: 1}}}
	b := Face{V: []r3.Vec{{X: 3, Y: 1, Z: 1}, {X: 3, Y: 1, Z: -1}, {X: 3, Y: -1, Z: -1}, {X: 3, Y: -1, Z: 1}}}
	s, err := LoftFaces(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if v := s.Volume(); math.Abs(v-12) > 1e-9 {
		t.Errorf("bridge volume %g, want 12 (no twist)", v)
	}
	if !s.Closed() {
		t.Error("bridge not closed")
	}
}

func TestLoftMismatch(t *testing.T) {
	if _, err := Loft(square(0, 1), square(1, 1)[:3]); err == nil {
		t.Error("expected error for loops of different length")
	}
	if _, err := Loft(square(0, 1), square(0, 1)); err == nil {
		t.Error("expected error for coincident loops")
	}
}
