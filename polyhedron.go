package keycad

import (
	"math"

	"github.com/soypat/keycad/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// convex3 is a convex polyhedron described as an intersection of
// half-spaces. Its distance is exact inside and near faces, and a lower
// bound of the true distance near edges and corners.
type convex3 struct {
	n  []r3.Vec
	d  []float64
	bb r3.Box
}

// ConvexSDF returns the SDF3 of the convex polyhedron bounded by faces.
// Faces must wind counter-clockwise seen from outside.
func ConvexSDF(faces []Face) SDF3 {
	if len(faces) < 4 {
		panic("convex polyhedron needs at least 4 faces")
	}
	s := convex3{
		n: make([]r3.Vec, len(faces)),
		d: make([]float64, len(faces)),
	}
	var pts d3.Set
	for i, f := range faces {
		s.n[i] = f.Normal()
		s.d[i] = r3.Dot(s.n[i], f.Centroid())
		pts = append(pts, f.V...)
	}
	s.bb = r3.Box(pts.Bounds())
	return &s
}

// Evaluate returns the maximum signed distance to the face planes.
func (s *convex3) Evaluate(p r3.Vec) float64 {
	d := math.Inf(-1)
	for i, n := range s.n {
		d = math.Max(d, r3.Dot(n, p)-s.d[i])
	}
	return d
}

// Bounds returns the bounding box of the polyhedron vertices.
func (s *convex3) Bounds() r3.Box {
	return s.bb
}

// mesh3 is a closed triangle mesh of arbitrary shape. Its distance is
// exact; its sign is given by the generalized winding number.
type mesh3 struct {
	tris []Triangle3
	bbs  []d3.Box
	bb   r3.Box
}

// MeshSDF returns the SDF3 of the solid enclosed by a closed mesh.
func MeshSDF(mesh []Triangle3) SDF3 {
	if len(mesh) < 4 {
		panic("mesh needs at least 4 triangles to enclose a volume")
	}
	s := mesh3{
		tris: mesh,
		bbs:  make([]d3.Box, len(mesh)),
	}
	bb := d3.Set(mesh[0].V[:]).Bounds()
	for i, t := range mesh {
		s.bbs[i] = d3.Set(t.V[:]).Bounds()
		bb = bb.Extend(s.bbs[i])
	}
	s.bb = r3.Box(bb)
	return &s
}

// Evaluate returns the distance to the closest triangle, negative when p
// is enclosed by the mesh.
func (s *mesh3) Evaluate(p r3.Vec) float64 {
	dist := math.Inf(1)
	var winding float64
	for i, t := range s.tris {
		winding += t.solidAngle(p)
		if s.bbs[i].Distance(p) >= dist {
			continue
		}
		dist = math.Min(dist, r3.Norm(r3.Sub(p, t.Closest(p))))
	}
	if math.Abs(winding) > 2*math.Pi {
		// winding number above one half.
		return -dist
	}
	return dist
}

// Bounds returns the bounding box of the mesh.
func (s *mesh3) Bounds() r3.Box {
	return s.bb
}
