package form3

import (
	"errors"
	"math"
	"testing"

	"github.com/soypat/keycad"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestFrustum(t *testing.T) {
	bottom := r2.Box{Min: r2.Vec{X: -9, Y: -9}, Max: r2.Vec{X: 9, Y: 9}}
	top := r2.Box{Min: r2.Vec{X: -8, Y: -8}, Max: r2.Vec{X: 8, Y: 8}}
	s, err := Frustum(bottom, 6, top, 15)
	if err != nil {
		t.Fatal(err)
	}
	// V = h/3 (A1 + A2 + sqrt(A1 A2))
	want := 9.0 / 3 * (324 + 256 + 288)
	if v := s.Volume(); math.Abs(v-want) > 1e-6 {
		t.Errorf("frustum volume %g, want %g", v, want)
	}
	if len(s.Faces()) != 6 {
		t.Errorf("frustum has %d faces", len(s.Faces()))
	}
}

func TestShapeErrors(t *testing.T) {
	_, err := Box(r3.Box{Max: r3.Vec{X: 1, Y: 1}})
	if err == nil {
		t.Error("flat box should fail")
	}
	_, err = Frustum(r2.Box{Max: r2.Vec{X: 1, Y: 1}}, 0, r2.Box{Max: r2.Vec{X: 1, Y: 1}}, 0)
	var serr *ShapeError
	if !errors.As(err, &serr) {
		t.Fatalf("zero height frustum: got %v, want a ShapeError", err)
	}
	if serr.Shape != "frustum" || serr.Stack() == "" {
		t.Errorf("shape error %q with stack of %d bytes", serr.Shape, len(serr.Stack()))
	}
	// Collinear outline wraps the kernel's sentinel.
	_, err = Prism([]r2.Vec{{}, {X: 1}, {X: 2}}, 0, 1)
	if !errors.Is(err, keycad.ErrDegenerate) {
		t.Errorf("got %v, want ErrDegenerate", err)
	}
}

func TestPrismL(t *testing.T) {
	outline := []r2.Vec{{X: -13.25, Y: 18}, {X: -13.25, Y: 1}, {X: -8.5, Y: 1}, {X: -8.5, Y: -18}, {X: 13.25, Y: -18}, {X: 13.25, Y: 18}}
	s, err := Prism(outline, -4, 0)
	if err != nil {
		t.Fatal(err)
	}
	area := 26.5*36 - 4.75*19
	if v := s.Volume(); math.Abs(v-4*area) > 1e-6 {
		t.Errorf("L prism volume %g, want %g", v, 4*area)
	}
	if !s.Closed() {
		t.Error("L prism not closed")
	}
}

func TestPlate(t *testing.T) {
	square := func(w, h float64) []r2.Vec {
		return []r2.Vec{{X: -w / 2, Y: -h / 2}, {X: w / 2, Y: -h / 2}, {X: w / 2, Y: h / 2}, {X: -w / 2, Y: h / 2}}
	}
	lshape := []r2.Vec{{X: -13.25, Y: 18}, {X: -13.25, Y: 1}, {X: -8.5, Y: 1}, {X: -8.5, Y: -18}, {X: 13.25, Y: -18}, {X: 13.25, Y: 18}}
	for _, test := range []struct {
		name    string
		outline []r2.Vec
		area    float64
	}{
		{"square", square(17, 17), 17 * 17},
		{"L", lshape, 26.5*36 - 4.75*19},
	} {
		s, err := Plate(test.outline, square(14, 14), -4, 0)
		if err != nil {
			t.Fatal(test.name, err)
		}
		want := 4 * (test.area - 14*14)
		if v := s.Volume(); math.Abs(v-want) > 1e-6 {
			t.Errorf("%s plate volume %g, want %g", test.name, v, want)
		}
		if !s.Closed() {
			t.Errorf("%s plate not closed", test.name)
		}
		if d := s.Evaluate(r3.Vec{Z: -2}); d <= 0 {
			t.Errorf("%s plate hole center evaluates %g, want outside", test.name, d)
		}
		if d := s.Evaluate(r3.Vec{X: 7.5, Z: -2}); d >= 0 {
			t.Errorf("%s plate skin evaluates %g, want inside", test.name, d)
		}
		if len(s.Faces()) != len(test.outline)+2 {
			t.Errorf("%s plate envelope has %d faces", test.name, len(s.Faces()))
		}
	}
}
