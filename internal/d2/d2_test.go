package d2

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestSetArea(t *testing.T) {
	box := Box{Min: r2.Vec{X: -1, Y: 2}, Max: r2.Vec{X: 3, Y: 5}}
	v := box.Vertices()
	ccw := Set(v[:])
	if a := ccw.Area(); math.Abs(a-12) > 1e-12 {
		t.Errorf("ccw area %g, want 12", a)
	}
	cw := Set{v[3], v[2], v[1], v[0]}
	if a := cw.Area(); math.Abs(a+12) > 1e-12 {
		t.Errorf("cw area %g, want -12", a)
	}
	if !ccw.Bounds().Equals(box, 0) {
		t.Errorf("bounds %v, want %v", ccw.Bounds(), box)
	}
	if c := box.Center(); !EqualWithin(c, r2.Vec{X: 1, Y: 3.5}, 1e-12) {
		t.Errorf("center %v", c)
	}
}

func TestInsideTriangle(t *testing.T) {
	a, b, c := r2.Vec{}, r2.Vec{X: 2}, r2.Vec{Y: 2}
	for _, test := range []struct {
		p    r2.Vec
		want bool
	}{
		{r2.Vec{X: 0.5, Y: 0.5}, true},
		{r2.Vec{X: 1, Y: 1}, false}, // on the hypotenuse
		{r2.Vec{X: 2, Y: 2}, false},
		{r2.Vec{X: -0.1, Y: 0.5}, false},
	} {
		if got := InsideTriangle(test.p, a, b, c, 1e-12); got != test.want {
			t.Errorf("InsideTriangle(%v) = %v, want %v", test.p, got, test.want)
		}
	}
	if Cross(a, c, b) >= 0 {
		t.Error("clockwise triangle has positive cross")
	}
}

func TestBoxInclude(t *testing.T) {
	b := NewBox(r2.Vec{}, r2.Vec{X: 2, Y: 2})
	b = b.Include(r2.Vec{X: 3, Y: -4})
	want := Box{Min: r2.Vec{X: -1, Y: -4}, Max: r2.Vec{X: 3, Y: 1}}
	if !b.Equals(want, 1e-12) {
		t.Errorf("got %v, want %v", b, want)
	}
	if b.Empty() {
		t.Error("box is empty")
	}
	if !(Box{Max: r2.Vec{X: 1}}).Empty() {
		t.Error("flat box is not empty")
	}
}
