package keycad

import (
	"math"

	"github.com/soypat/keycad/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// alignTol is the tolerance used when matching face normals to directions.
const alignTol = 1e-3

// Solid is a closed solid. It carries three views of the same object:
// a set of planar faces used to select faces, edges and vertices by
// direction, a triangle mesh used for rendering, and an SDF3 used for
// boolean composition and volumetric export.
type Solid struct {
	faces []Face
	mesh  []Triangle3
	sdf   SDF3
}

// NewSolid returns a Solid bounded by faces with its mesh
// obtained by triangulating every face.
func NewSolid(faces []Face, sdf SDF3) *Solid {
	var mesh []Triangle3
	for _, f := range faces {
		mesh = append(mesh, f.Triangulate()...)
	}
	return Compose(faces, mesh, sdf)
}

// Compose returns a Solid from its parts. envelope are the faces
// queried by selection; they need not bound the mesh exactly, which
// allows selection on the outer envelope of a solid with holes.
func Compose(envelope []Face, mesh []Triangle3, sdf SDF3) *Solid {
	if sdf == nil {
		panic("nil SDF3 for solid")
	}
	return &Solid{faces: envelope, mesh: mesh, sdf: sdf}
}

// Evaluate implements SDF3.
func (s *Solid) Evaluate(p r3.Vec) float64 { return s.sdf.Evaluate(p) }

// Bounds implements SDF3.
func (s *Solid) Bounds() r3.Box { return s.sdf.Bounds() }

// SDF returns the distance function of the solid.
func (s *Solid) SDF() SDF3 { return s.sdf }

// Faces returns the selection faces of the solid.
func (s *Solid) Faces() []Face { return s.faces }

// Triangles returns the render mesh of the solid.
func (s *Solid) Triangles() []Triangle3 { return s.mesh }

// Vertices returns the distinct vertices of the selection faces.
func (s *Solid) Vertices() []r3.Vec {
	seen := make(map[vertexKey]bool)
	var out []r3.Vec
	for _, f := range s.faces {
		for _, v := range f.V {
			k := keyOf(v)
			if !seen[k] {
				seen[k] = true
				out = append(out, v)
			}
		}
	}
	return out
}

// Transform returns a new solid posed by m.
func (s *Solid) Transform(m d3.Transform) *Solid {
	if m == (d3.Transform{}) {
		return s
	}
	faces := make([]Face, len(s.faces))
	for i := range s.faces {
		faces[i] = s.faces[i].Transform(m)
	}
	mesh := make([]Triangle3, len(s.mesh))
	for i := range s.mesh {
		mesh[i] = s.mesh[i].Transform(m)
	}
	return &Solid{faces: faces, mesh: mesh, sdf: Transform3D(s.sdf, m)}
}

// Volume returns the signed volume enclosed by the mesh. It is positive
// when triangles wind counter-clockwise seen from outside.
func (s *Solid) Volume() float64 {
	return meshVolume(s.mesh)
}

func meshVolume(mesh []Triangle3) float64 {
	var v float64
	for _, t := range mesh {
		v += r3.Dot(t.V[0], r3.Cross(t.V[1], t.V[2]))
	}
	return v / 6
}

// Closed reports whether the mesh is watertight: every edge is shared by
// exactly two triangles that traverse it in opposite directions.
// Zero length edges are ignored.
func (s *Solid) Closed() bool {
	if len(s.mesh) == 0 {
		return false
	}
	type directed struct{ a, b vertexKey }
	count := make(map[directed]int)
	for _, t := range s.mesh {
		for i := range t.V {
			a, b := keyOf(t.V[i]), keyOf(t.V[(i+1)%3])
			if a == b {
				continue
			}
			count[directed{a, b}]++
		}
	}
	for e, n := range count {
		if n != 1 || count[directed{e.b, e.a}] != 1 {
			return false
		}
	}
	return true
}

// Face returns the outermost face whose normal points along dir.
func (s *Solid) Face(dir r3.Vec) (Face, bool) {
	faces := s.FacesAlong(dir)
	if len(faces) == 0 {
		return Face{}, false
	}
	best := faces[0]
	for _, f := range faces[1:] {
		if r3.Dot(f.Centroid(), dir) > r3.Dot(best.Centroid(), dir) {
			best = f
		}
	}
	return best, true
}

// FacesAlong returns every face whose normal points along dir.
func (s *Solid) FacesAlong(dir r3.Vec) []Face {
	var out []Face
	for _, f := range s.faces {
		if d3.Parallel(f.Normal(), dir, alignTol) {
			out = append(out, f)
		}
	}
	return out
}

// CornerEdge returns the edge of the face along dy that runs along dz and
// lies farthest along dx. The edge is oriented so A is lowest along dz.
func (s *Solid) CornerEdge(dx, dy, dz r3.Vec) (Edge, bool) {
	f, ok := s.Face(dy)
	if !ok {
		return Edge{}, false
	}
	edges := f.EdgesAlong(dz)
	if len(edges) == 0 {
		return Edge{}, false
	}
	best := edges[0]
	for _, e := range edges[1:] {
		if r3.Dot(e.Midpoint(), dx) > r3.Dot(best.Midpoint(), dx) {
			best = e
		}
	}
	return best, true
}

// CornerVertex returns the vertex of the face along dy that lies farthest
// along dx, breaking ties by dz.
func (s *Solid) CornerVertex(dx, dy, dz r3.Vec) (r3.Vec, bool) {
	f, ok := s.Face(dy)
	if !ok || len(f.V) == 0 {
		return r3.Vec{}, false
	}
	const tieTol = 1e-6
	best := f.V[0]
	for _, v := range f.V[1:] {
		dv, db := r3.Dot(v, dx), r3.Dot(best, dx)
		switch {
		case dv > db+tieTol:
			best = v
		case math.Abs(dv-db) <= tieTol && r3.Dot(v, dz) > r3.Dot(best, dz):
			best = v
		}
	}
	return best, true
}

// vertexKey is a vertex quantized to a micrometer grid.
type vertexKey [3]int64

func keyOf(v r3.Vec) vertexKey {
	const q = 1e6
	return vertexKey{
		int64(math.Round(v.X * q)),
		int64(math.Round(v.Y * q)),
		int64(math.Round(v.Z * q)),
	}
}
