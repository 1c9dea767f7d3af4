package must3

import (
	"github.com/soypat/keycad"
	"github.com/soypat/keycad/internal/d2"
	"github.com/soypat/keycad/internal/d3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Box returns the solid axis aligned box b. Its SDF is exact.
func Box(b r3.Box) *keycad.Solid {
	if b.Max.X <= b.Min.X || b.Max.Y <= b.Min.Y || b.Max.Z <= b.Min.Z {
		panic("box size <= 0")
	}
	v := d3.Box(b).Vertices()
	// Vertex i has bit 2 set for max X, bit 1 for max Y and bit 0 for max Z.
	faces := []keycad.Face{
		{V: []r3.Vec{v[0], v[1], v[3], v[2]}}, // -X
		{V: []r3.Vec{v[4], v[6], v[7], v[5]}}, // +X
		{V: []r3.Vec{v[0], v[4], v[5], v[1]}}, // -Y
		{V: []r3.Vec{v[2], v[3], v[7], v[6]}}, // +Y
		{V: []r3.Vec{v[0], v[2], v[6], v[4]}}, // -Z
		{V: []r3.Vec{v[1], v[5], v[7], v[3]}}, // +Z
	}
	return keycad.NewSolid(faces, keycad.Box3D(b))
}

// CenteredBox returns a box of the given size centered at center.
func CenteredBox(center, size r3.Vec) *keycad.Solid {
	return Box(r3.Box(d3.NewBox(center, size)))
}

// Frustum returns the convex solid spanned by rectangle bottom at height
// z0 and rectangle top at height z1.
func Frustum(bottom r2.Box, z0 float64, top r2.Box, z1 float64) *keycad.Solid {
	if z1 <= z0 {
		panic("frustum height <= 0")
	}
	var pts []r3.Vec
	for _, c := range rectangle(bottom) {
		pts = append(pts, d3.FromR2(c, z0))
	}
	for _, c := range rectangle(top) {
		pts = append(pts, d3.FromR2(c, z1))
	}
	s, err := keycad.ConvexHull(pts)
	if err != nil {
		panic(err)
	}
	return s
}

// Prism extrudes the simple polygon outline, given counter-clockwise in
// the XY plane, from z0 to z1.
func Prism(outline []r2.Vec, z0, z1 float64) *keycad.Solid {
	if z1 <= z0 {
		panic("prism height <= 0")
	}
	bottom := make([]r3.Vec, len(outline))
	top := make([]r3.Vec, len(outline))
	for i, p := range outline {
		bottom[i] = d3.FromR2(p, z0)
		top[i] = d3.FromR2(p, z1)
	}
	s, err := keycad.Loft(bottom, top)
	if err != nil {
		panic(err)
	}
	return s
}

// Plate extrudes the outline from z0 to z1 with the hole cut through it.
// Both polygons are given counter-clockwise in the XY plane and the hole
// must lie inside the outline. The selection faces of the result are
// those of the plate without hole.
func Plate(outline, hole []r2.Vec, z0, z1 float64) *keycad.Solid {
	if z1 <= z0 {
		panic("plate height <= 0")
	}
	if len(outline) < 3 || len(hole) < 3 {
		panic("plate needs an outline and a hole")
	}
	lift := func(poly []r2.Vec, z float64) []r3.Vec {
		out := make([]r3.Vec, len(poly))
		for i, p := range poly {
			out[i] = d3.FromR2(p, z)
		}
		return out
	}
	ob, ot := lift(outline, z0), lift(outline, z1)
	hb, ht := lift(hole, z0), lift(hole, z1)

	var mesh []keycad.Triangle3
	quad := func(a, b, c, d r3.Vec) {
		mesh = append(mesh,
			keycad.Triangle3{V: [3]r3.Vec{a, b, c}},
			keycad.Triangle3{V: [3]r3.Vec{a, c, d}},
		)
	}
	for i := range ob {
		j := (i + 1) % len(ob)
		quad(ob[i], ob[j], ot[j], ot[i])
	}
	for i := range hb {
		j := (i + 1) % len(hb)
		quad(hb[j], hb[i], ht[i], ht[j]) // walls face into the hole.
	}
	top := keycad.Face{V: ot}.Bridge(keycad.Face{V: ht}.Reverse())
	mesh = append(mesh, top.Triangulate()...)
	bottom := keycad.Face{V: ob}.Bridge(keycad.Face{V: hb}.Reverse()).Reverse()
	mesh = append(mesh, bottom.Triangulate()...)

	envelope := Prism(outline, z0, z1).Faces()
	return keycad.Compose(envelope, mesh, keycad.MeshSDF(mesh))
}

// Rect returns the flat rectangle b at height z as a two sided sheet.
// It encloses no volume and is only meant for display.
func Rect(b r2.Box, z float64) *keycad.Solid {
	var up []r3.Vec
	for _, c := range rectangle(b) {
		up = append(up, d3.FromR2(c, z))
	}
	f := keycad.Face{V: up}
	return keycad.NewSolid([]keycad.Face{f, f.Reverse()}, keycad.Box3D(r3.Box{
		Min: r3.Vec{X: b.Min.X, Y: b.Min.Y, Z: z},
		Max: r3.Vec{X: b.Max.X, Y: b.Max.Y, Z: z},
	}))
}

// Marker returns an octahedron with vertices size away from the origin
// along every axis.
func Marker(size float64) *keycad.Solid {
	if size <= 0 {
		panic("marker size <= 0")
	}
	s, err := keycad.ConvexHull([]r3.Vec{
		{X: size}, {X: -size},
		{Y: size}, {Y: -size},
		{Z: size}, {Z: -size},
	})
	if err != nil {
		panic(err)
	}
	return s
}

// rectangle returns the corners of b counter-clockwise from Min.
func rectangle(b r2.Box) [4]r2.Vec {
	if d2.Box(b).Empty() {
		panic("rectangle size <= 0")
	}
	return d2.Box(b).Vertices()
}
