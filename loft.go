package keycad

import (
	"fmt"
	"math"

	"github.com/soypat/keycad/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Loft returns the ruled solid spanned between two vertex loops of equal
// length. Vertex i of bottom is joined to vertex i of top. Loops may be
// non-planar and need not be convex. Positions where both loops repeat
// their previous vertex are dropped. The result is oriented outward
// regardless of the loops' winding.
func Loft(bottom, top []r3.Vec) (*Solid, error) {
	if len(bottom) != len(top) {
		return nil, fmt.Errorf("loft loops differ in length: %d and %d", len(bottom), len(top))
	}
	var b, t []r3.Vec
	for i := range bottom {
		if i > 0 && keyOf(bottom[i]) == keyOf(b[len(b)-1]) && keyOf(top[i]) == keyOf(t[len(t)-1]) {
			continue
		}
		b = append(b, bottom[i])
		t = append(t, top[i])
	}
	if len(b) > 1 && keyOf(b[0]) == keyOf(b[len(b)-1]) && keyOf(t[0]) == keyOf(t[len(t)-1]) {
		b, t = b[:len(b)-1], t[:len(t)-1]
	}
	n := len(b)
	if n < 3 {
		return nil, fmt.Errorf("%w: loft loops need 3 distinct vertices, got %d", ErrDegenerate, n)
	}

	faces := make([]Face, 0, n+2)
	mesh := make([]Triangle3, 0, 4*n)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		side := Face{V: []r3.Vec{b[i], b[j], t[j], t[i]}}
		faces = append(faces, side)
		mesh = appendProper(mesh,
			Triangle3{V: [3]r3.Vec{b[i], b[j], t[j]}},
			Triangle3{V: [3]r3.Vec{b[i], t[j], t[i]}},
		)
	}
	bottomCap := Face{V: b}.Reverse()
	topCap := Face{V: t}
	faces = append(faces, bottomCap, topCap)
	mesh = appendProper(mesh, bottomCap.Triangulate()...)
	mesh = appendProper(mesh, topCap.Triangulate()...)

	vol := meshVolume(mesh)
	all := make(d3.Set, 0, 2*n)
	all = append(all, b...)
	all = append(all, t...)
	ext := d3.MaxAbs(all.Bounds().Size())
	if math.Abs(vol) < 1e-9*(1+ext*ext*ext) {
		return nil, fmt.Errorf("%w: loft encloses no volume", ErrDegenerate)
	}
	if vol < 0 {
		for i := range faces {
			faces[i] = faces[i].Reverse()
		}
		for i := range mesh {
			mesh[i].V[1], mesh[i].V[2] = mesh[i].V[2], mesh[i].V[1]
		}
	}
	return Compose(faces, mesh, MeshSDF(mesh)), nil
}

// LoftFaces returns the loft between two faces that look at each other,
// such as the right face of one key and the left face of its neighbour.
// The second face is traversed in reverse and its starting vertex is
// chosen to pair corners with the least total displacement relative to
// each face's centroid.
func LoftFaces(a, b Face) (*Solid, error) {
	if len(a.V) != len(b.V) {
		return nil, fmt.Errorf("loft faces differ in vertex count: %d and %d", len(a.V), len(b.V))
	}
	rb := b.Reverse()
	ca, cb := a.Centroid(), rb.Centroid()
	n := len(a.V)
	bestShift, best := 0, math.Inf(1)
	for k := 0; k < n; k++ {
		var cost float64
		for i := 0; i < n; i++ {
			da := r3.Sub(a.V[i], ca)
			db := r3.Sub(rb.V[(i+k)%n], cb)
			cost += r3.Norm2(r3.Sub(da, db))
		}
		if cost < best {
			best, bestShift = cost, k
		}
	}
	top := make([]r3.Vec, n)
	for i := range top {
		top[i] = rb.V[(i+bestShift)%n]
	}
	return Loft(a.V, top)
}

// appendProper appends the triangles that have three distinct vertices.
func appendProper(mesh []Triangle3, tris ...Triangle3) []Triangle3 {
	for _, tri := range tris {
		a, b, c := keyOf(tri.V[0]), keyOf(tri.V[1]), keyOf(tri.V[2])
		if a == b || b == c || c == a {
			continue
		}
		mesh = append(mesh, tri)
	}
	return mesh
}
