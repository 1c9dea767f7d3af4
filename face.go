package keycad

import (
	"math"

	"github.com/soypat/keycad/internal/d2"
	"github.com/soypat/keycad/internal/d3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Edge is a straight segment between two vertices.
type Edge struct {
	A, B r3.Vec
}

// Vector returns B-A.
func (e Edge) Vector() r3.Vec { return r3.Sub(e.B, e.A) }

// Midpoint returns the middle of the edge.
func (e Edge) Midpoint() r3.Vec { return d3.Lerp(e.A, e.B, 0.5) }

// Length returns the length of the edge.
func (e Edge) Length() float64 { return r3.Norm(e.Vector()) }

// Reverse swaps the edge's vertices.
func (e Edge) Reverse() Edge { return Edge{A: e.B, B: e.A} }

// Orient returns the edge with A being the vertex lowest along axis.
func (e Edge) Orient(axis r3.Vec) Edge {
	if r3.Dot(e.A, axis) > r3.Dot(e.B, axis) {
		return e.Reverse()
	}
	return e
}

// Transform returns the edge with both vertices transformed.
func (e Edge) Transform(m d3.Transform) Edge {
	return Edge{A: m.Transform(e.A), B: m.Transform(e.B)}
}

// Face is a planar polygon. Its vertices are ordered counter-clockwise
// when seen from outside the solid it bounds.
type Face struct {
	V []r3.Vec
}

// Normal returns the unit outward normal computed with Newell's method,
// which tolerates slightly non-planar and non-convex loops.
func (f Face) Normal() r3.Vec {
	var n r3.Vec
	for i, a := range f.V {
		b := f.V[(i+1)%len(f.V)]
		n.X += (a.Y - b.Y) * (a.Z + b.Z)
		n.Y += (a.Z - b.Z) * (a.X + b.X)
		n.Z += (a.X - b.X) * (a.Y + b.Y)
	}
	return d3.Unit(n)
}

// Centroid returns the vertex average of the face.
func (f Face) Centroid() r3.Vec {
	return d3.Set(f.V).Centroid()
}

// Reverse returns a copy of the face with opposite winding.
func (f Face) Reverse() Face {
	v := make([]r3.Vec, len(f.V))
	for i := range f.V {
		v[len(v)-1-i] = f.V[i]
	}
	return Face{V: v}
}

// Edges returns the boundary edges of the face following its winding.
func (f Face) Edges() []Edge {
	edges := make([]Edge, len(f.V))
	for i := range f.V {
		edges[i] = Edge{A: f.V[i], B: f.V[(i+1)%len(f.V)]}
	}
	return edges
}

// EdgesAlong returns the edges of the face whose direction is within
// 60 degrees of axis (either sense), each oriented to run along axis.
func (f Face) EdgesAlong(axis r3.Vec) []Edge {
	var edges []Edge
	for _, e := range f.Edges() {
		if e.Length() == 0 {
			continue
		}
		if math.Abs(r3.Dot(d3.Unit(e.Vector()), d3.Unit(axis))) > 0.5 {
			edges = append(edges, e.Orient(axis))
		}
	}
	return edges
}

// Transform returns a copy of the face with every vertex transformed.
func (f Face) Transform(m d3.Transform) Face {
	v := make([]r3.Vec, len(f.V))
	for i := range f.V {
		v[i] = m.Transform(f.V[i])
	}
	return Face{V: v}
}

// Triangulate splits the face into triangles by ear clipping in the
// face's plane. Triangles keep the face's winding. Runs of collinear
// vertices are clipped as zero area triangles so that every boundary
// edge of the face appears in the result.
func (f Face) Triangulate() []Triangle3 {
	n := len(f.V)
	if n < 3 {
		return nil
	}
	if n == 3 {
		return []Triangle3{{V: [3]r3.Vec{f.V[0], f.V[1], f.V[2]}}}
	}
	u, v := planeBasis(f.Normal())
	pts := make([]r2.Vec, n)
	for i, p := range f.V {
		pts[i] = r2.Vec{X: r3.Dot(p, u), Y: r3.Dot(p, v)}
	}
	ext := d3.Set(f.V).Bounds().Size()
	eps := 1e-12 * (1 + r3.Norm2(ext))

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	tris := make([]Triangle3, 0, n-2)
	for len(idx) > 3 {
		m := len(idx)
		ear := -1
		for i := 0; i < m && ear < 0; i++ {
			a, b, c := idx[(i+m-1)%m], idx[i], idx[(i+1)%m]
			if d2.Cross(pts[a], pts[b], pts[c]) <= eps {
				continue // reflex or flat
			}
			ear = i
			for _, j := range idx {
				if j == a || j == b || j == c {
					continue
				}
				if d2.InsideTriangle(pts[j], pts[a], pts[b], pts[c], eps) {
					ear = -1
					break
				}
			}
		}
		if ear < 0 {
			// No convex ear left: clip the flattest vertex.
			best := math.Inf(1)
			for i := 0; i < m; i++ {
				a, b, c := idx[(i+m-1)%m], idx[i], idx[(i+1)%m]
				if d := math.Abs(d2.Cross(pts[a], pts[b], pts[c])); d < best {
					best, ear = d, i
				}
			}
		}
		a, b, c := idx[(ear+m-1)%m], idx[ear], idx[(ear+1)%m]
		tris = append(tris, Triangle3{V: [3]r3.Vec{f.V[a], f.V[b], f.V[c]}})
		idx = append(idx[:ear], idx[ear+1:]...)
	}
	tris = append(tris, Triangle3{V: [3]r3.Vec{f.V[idx[0]], f.V[idx[1]], f.V[idx[2]]}})
	return tris
}

// planeBasis returns two unit vectors u, v spanning the plane with
// normal n such that u×v = n.
func planeBasis(n r3.Vec) (u, v r3.Vec) {
	ref := r3.Vec{X: 1}
	if math.Abs(n.X) > 0.9 {
		ref = r3.Vec{Y: 1}
	}
	u = d3.Unit(r3.Cross(n, ref))
	v = r3.Cross(n, u)
	return u, v
}

// NearestEdge returns the edge along axis whose midpoint is closest to p.
func (f Face) NearestEdge(axis, p r3.Vec) (Edge, bool) {
	edges := f.EdgesAlong(axis)
	if len(edges) == 0 {
		return Edge{}, false
	}
	best := edges[0]
	for _, e := range edges[1:] {
		if r3.Norm2(r3.Sub(e.Midpoint(), p)) < r3.Norm2(r3.Sub(best.Midpoint(), p)) {
			best = e
		}
	}
	return best, true
}

// Bridge returns a single loop tracing f and then hole, joined by a
// zero width slit, so that the result triangulates as f with hole cut
// out. hole must lie inside f in the same plane and wind opposite to f.
func (f Face) Bridge(hole Face) Face {
	if len(f.V) < 3 || len(hole.V) < 3 {
		panic("bridge needs two polygons")
	}
	u, v := planeBasis(f.Normal())
	to2 := func(p r3.Vec) r2.Vec { return r2.Vec{X: r3.Dot(p, u), Y: r3.Dot(p, v)} }
	outer := make([]r2.Vec, len(f.V))
	for i, p := range f.V {
		outer[i] = to2(p)
	}
	// Hole vertex farthest along u.
	mi := 0
	for i := range hole.V {
		if to2(hole.V[i]).X > to2(hole.V[mi]).X {
			mi = i
		}
	}
	m := to2(hole.V[mi])
	// Nearest outer edge hit by a ray from m along +u.
	hit, pi := math.Inf(1), -1
	for i, a := range outer {
		b := outer[(i+1)%len(outer)]
		if (a.Y > m.Y) == (b.Y > m.Y) {
			continue
		}
		x := a.X + (m.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
		if x < m.X || x >= hit {
			continue
		}
		hit = x
		pi = i
		if b.X > a.X {
			pi = (i + 1) % len(outer)
		}
	}
	if pi < 0 {
		panic("hole is not inside polygon")
	}
	// A vertex inside triangle m, hit, P would block the slit; take the
	// one with the smallest angle to the ray instead.
	h := r2.Vec{X: hit, Y: m.Y}
	p := outer[pi]
	bestAngle := math.Inf(1)
	for i, q := range outer {
		if i == pi || q == p {
			continue
		}
		tri := [3]r2.Vec{m, h, p}
		if d2.Cross(tri[0], tri[1], tri[2]) < 0 {
			tri[1], tri[2] = tri[2], tri[1]
		}
		if !d2.InsideTriangle(q, tri[0], tri[1], tri[2], 0) {
			continue
		}
		d := r2.Sub(q, m)
		if a := math.Abs(math.Atan2(d.Y, d.X)); a < bestAngle {
			bestAngle, pi = a, i
		}
	}

	loop := make([]r3.Vec, 0, len(f.V)+len(hole.V)+2)
	loop = append(loop, f.V[:pi+1]...)
	for i := 0; i <= len(hole.V); i++ {
		loop = append(loop, hole.V[(mi+i)%len(hole.V)])
	}
	loop = append(loop, f.V[pi:]...)
	return Face{V: loop}
}
