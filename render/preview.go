package render

import (
	"fmt"
	"image/color"

	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"github.com/soypat/keycad/assemble"
	"gonum.org/v1/gonum/spatial/r3"
)

// View places the preview camera. Positions are in the frame of the
// model after it has been fitted in a bi-unit cube centered at the origin.
type View struct {
	// what position (point) to look at
	Center r3.Vec
	// which way is up (direction)
	Up r3.Vec
	// where the camera/eye located at (point)
	Eye       r3.Vec
	Near, Far float64
	// vertical field of view in degrees
	Fovy float64
}

// DefaultView looks at the board from above its front edge.
var DefaultView = View{
	Up:   r3.Vec{Z: 1},
	Eye:  r3.Vec{X: 0.4, Y: -2.6, Z: 2.2},
	Near: 1,
	Far:  10,
	Fovy: 35,
}

// Preview renders the render meshes of parts in their colors and saves
// the image as a PNG at path.
func Preview(path string, parts []assemble.Part, width, height int, view View) error {
	const supersample = 2
	if len(parts) == 0 {
		return assemble.ErrEmpty
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("bad preview size %dx%d", width, height)
	}
	var (
		order  []color.NRGBA
		groups = make(map[color.NRGBA][]*fauxgl.Triangle)
		all    []*fauxgl.Triangle
	)
	for _, p := range parts {
		if _, ok := groups[p.Color]; !ok {
			order = append(order, p.Color)
		}
		for _, t := range p.Object.Solid.Triangles() {
			ft := fauxgl.NewTriangleForPoints(fv(t.V[0]), fv(t.V[1]), fv(t.V[2]))
			groups[p.Color] = append(groups[p.Color], ft)
			all = append(all, ft)
		}
	}
	if len(all) == 0 {
		return ErrEmptyModel
	}
	// Groups share triangles with the full mesh so fitting it fits them all.
	fauxgl.NewTriangleMesh(all).BiUnitCube()

	ctx := fauxgl.NewContext(width*supersample, height*supersample)
	ctx.ClearColorBufferWith(fauxgl.HexColor("#FFF8E3"))
	aspect := float64(width) / float64(height)
	eye := fv(view.Eye)
	matrix := fauxgl.LookAt(eye, fv(view.Center), fv(view.Up)).Perspective(view.Fovy, aspect, view.Near, view.Far)
	light := fauxgl.V(-0.75, 1, 0.25).Normalize()
	shader := fauxgl.NewPhongShader(matrix, light, eye)
	ctx.Shader = shader
	for _, c := range order {
		if len(groups[c]) == 0 {
			continue
		}
		shader.ObjectColor = opaque(c)
		ctx.DrawMesh(fauxgl.NewTriangleMesh(groups[c]))
	}
	img := resize.Resize(uint(width), uint(height), ctx.Image(), resize.Bilinear)
	return fauxgl.SavePNG(path, img)
}

func fv(v r3.Vec) fauxgl.Vector { return fauxgl.V(v.X, v.Y, v.Z) }

func opaque(c color.NRGBA) fauxgl.Color {
	return fauxgl.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255, A: 1}
}
