package key

import (
	"github.com/soypat/keycad"
	"github.com/soypat/keycad/cache"
	"github.com/soypat/keycad/form3"
	"github.com/soypat/keycad/internal/d2"
	"github.com/soypat/keycad/internal/d3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// ShapeStrategy builds the cap and slot of a key in the key's own frame,
// before posing. It is chosen once when the key is constructed.
type ShapeStrategy interface {
	// Cap returns the cap of k.
	Cap(k *Key, c *cache.ObjectCache) (*keycad.Solid, error)
	// Slot returns the slot of k below basis, the bottom face of its cap.
	Slot(k *Key, basis keycad.Face, c *cache.ObjectCache) (*keycad.Solid, error)
}

// Strategy returns the ShapeStrategy for s.
func Strategy(s Shape) ShapeStrategy {
	switch s {
	case ShapePlanar:
		return planar{}
	case ShapeIsoEnter:
		return isoEnter{}
	}
	panic("unknown key shape")
}

// planar keys have a rectangular tapered cap and a slot following it.
type planar struct{}

func (planar) Cap(k *Key, c *cache.ObjectCache) (*keycad.Solid, error) {
	cp := k.Cap
	if s, ok := c.Get("cap", cp.Width, cp.Depth); ok {
		return s, nil
	}
	z0 := cp.ZClearance
	s, err := form3.Frustum(
		centered(-cp.Width/2, cp.Width/2, -cp.Depth/2, cp.Depth/2, 0),
		z0,
		centered(-cp.Width/2, cp.Width/2, -cp.Depth/2, cp.Depth/2, cp.DishInset),
		z0+cp.Thickness,
	)
	if err != nil {
		return nil, err
	}
	c.Store(s, "cap", cp.Width, cp.Depth)
	return s, nil
}

func (planar) Slot(k *Key, basis keycad.Face, c *cache.ObjectCache) (*keycad.Solid, error) {
	return cachedSlot("slot", k, basis, c)
}

// isoEnter is the two row ISO Enter: an L shaped cap, wide at the back
// and narrower at the front, with a slot skin following the L.
type isoEnter struct{}

// outline returns the L outline of the cap bottom counter-clockwise,
// the y of the step and the x of the front part's left side.
func (isoEnter) outline(k *Key) (l []r2.Vec, yStep, xInner float64) {
	u := k.Base.UnitLength
	cp := k.Cap
	xr := cp.Width / 2
	xInner = xr - (1.25*u - cp.DepthClearance)
	yStep = cp.DepthClearance / 2
	l = []r2.Vec{
		{X: -xr, Y: yStep},
		{X: xInner, Y: yStep},
		{X: xInner, Y: -cp.Depth / 2},
		{X: xr, Y: -cp.Depth / 2},
		{X: xr, Y: cp.Depth / 2},
		{X: -xr, Y: cp.Depth / 2},
	}
	return l, yStep, xInner
}

func (e isoEnter) Cap(k *Key, c *cache.ObjectCache) (*keycad.Solid, error) {
	cp := k.Cap
	if s, ok := c.Get("iso-enter-cap", cp.Width, cp.Depth); ok {
		return s, nil
	}
	l, yStep, xInner := e.outline(k)
	xr, yb := cp.Width/2, cp.Depth/2
	in := cp.DishInset
	z0, z1 := cp.ZClearance, cp.ZClearance+cp.Thickness
	back, err := form3.Frustum(
		r2.Box{Min: r2.Vec{X: -xr, Y: yStep}, Max: r2.Vec{X: xr, Y: yb}}, z0,
		r2.Box{Min: r2.Vec{X: -xr + in, Y: yStep + in}, Max: r2.Vec{X: xr - in, Y: yb - in}}, z1,
	)
	if err != nil {
		return nil, err
	}
	// The front top reaches into the back part so the top has no seam.
	front, err := form3.Frustum(
		r2.Box{Min: r2.Vec{X: xInner, Y: -yb}, Max: r2.Vec{X: xr, Y: yStep}}, z0,
		r2.Box{Min: r2.Vec{X: xInner + in, Y: -yb + in}, Max: r2.Vec{X: xr - in, Y: yStep + in}}, z1,
	)
	if err != nil {
		return nil, err
	}
	down := r3.Vec{Z: -1}
	bottom := make([]r3.Vec, len(l))
	for i, p := range l {
		bottom[len(l)-1-i] = d3.FromR2(p, z0)
	}
	envelope := []keycad.Face{{V: bottom}}
	var mesh []keycad.Triangle3
	for _, part := range []*keycad.Solid{back, front} {
		for _, f := range part.Faces() {
			if !d3.Parallel(f.Normal(), down, 1e-6) {
				envelope = append(envelope, f)
			}
		}
		mesh = append(mesh, part.Triangles()...)
	}
	s := keycad.Compose(envelope, mesh, keycad.Union3D(back.SDF(), front.SDF()))
	c.Store(s, "iso-enter-cap", cp.Width, cp.Depth)
	return s, nil
}

func (isoEnter) Slot(k *Key, basis keycad.Face, c *cache.ObjectCache) (*keycad.Solid, error) {
	return cachedSlot("iso-enter-slot", k, basis, c)
}

// cachedSlot returns the slot below basis. Cap bottoms are fingerprinted
// by their diagonals and their XY extents. Diagonals alone cannot tell a
// rectangle from its transpose.
func cachedSlot(kind string, k *Key, basis keycad.Face, c *cache.ObjectCache) (*keycad.Solid, error) {
	diag1, diag2 := diagonals(basis)
	outline := outline2(basis)
	size := d2.Set(outline).Bounds().Size()
	filled := k.Base.Filled
	if s, ok := c.Get(kind, diag1, diag2, size.X, size.Y, filled); ok {
		return s, nil
	}
	s, err := slotSolid(outline, k.Slot, filled)
	if err != nil {
		return nil, err
	}
	c.Store(s, kind, diag1, diag2, size.X, size.Y, filled)
	return s, nil
}

// slotSolid returns the slot skin under outline. An unfilled skin has
// the switch hole through it and, below UndercutThickness, pockets for
// the switch clips on every side of the hole.
func slotSolid(outline []r2.Vec, sl Slot, filled bool) (*keycad.Solid, error) {
	skin, err := form3.Prism(outline, -sl.Thickness, 0)
	if err != nil || filled {
		return skin, err
	}
	hole := rectangle(sl.Width, sl.Depth)
	undercut := undercutOutline(sl)
	if sl.UndercutThickness <= 0 {
		return form3.Plate(outline, undercut, -sl.Thickness, 0)
	}
	upper, err := form3.Plate(outline, hole, -sl.UndercutThickness, 0)
	if err != nil {
		return nil, err
	}
	lower, err := form3.Plate(outline, undercut, -sl.Thickness, -sl.UndercutThickness)
	if err != nil {
		return nil, err
	}
	mesh := make([]keycad.Triangle3, 0, len(upper.Triangles())+len(lower.Triangles()))
	mesh = append(mesh, upper.Triangles()...)
	mesh = append(mesh, lower.Triangles()...)
	return keycad.Compose(skin.Faces(), mesh, keycad.Union3D(upper.SDF(), lower.SDF())), nil
}

// undercutOutline returns the hole outline widened by a clip pocket at
// the middle of each side.
func undercutOutline(sl Slot) []r2.Vec {
	x, y := sl.Width/2, sl.Depth/2
	w, d := sl.UndercutWidth/2, sl.UndercutDepth
	if w <= 0 || d <= 0 {
		return rectangle(sl.Width, sl.Depth)
	}
	return []r2.Vec{
		{X: -x, Y: -y}, {X: -w, Y: -y}, {X: -w, Y: -y - d}, {X: w, Y: -y - d}, {X: w, Y: -y},
		{X: x, Y: -y}, {X: x, Y: -w}, {X: x + d, Y: -w}, {X: x + d, Y: w}, {X: x, Y: w},
		{X: x, Y: y}, {X: w, Y: y}, {X: w, Y: y + d}, {X: -w, Y: y + d}, {X: -w, Y: y},
		{X: -x, Y: y}, {X: -x, Y: w}, {X: -x - d, Y: w}, {X: -x - d, Y: -w}, {X: -x, Y: -w},
	}
}

// diagonals returns the distances between the opposite extreme corners
// of f in its XY projection.
func diagonals(f keycad.Face) (a, b float64) {
	corner := func(sx, sy float64) r2.Vec {
		best := f.V[0]
		for _, v := range f.V[1:] {
			if sx*v.X+sy*v.Y > sx*best.X+sy*best.Y {
				best = v
			}
		}
		return r2.Vec{X: best.X, Y: best.Y}
	}
	tl, br := corner(-1, 1), corner(1, -1)
	tr, bl := corner(1, 1), corner(-1, -1)
	return r2.Norm(r2.Sub(tl, br)), r2.Norm(r2.Sub(tr, bl))
}

// outline2 projects f onto XY counter-clockwise.
func outline2(f keycad.Face) []r2.Vec {
	out := make([]r2.Vec, len(f.V))
	var area float64
	for i, v := range f.V {
		out[i] = r2.Vec{X: v.X, Y: v.Y}
		w := f.V[(i+1)%len(f.V)]
		area += v.X*w.Y - w.X*v.Y
	}
	if area < 0 {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}

func rectangle(w, d float64) []r2.Vec {
	return []r2.Vec{{X: -w / 2, Y: -d / 2}, {X: w / 2, Y: -d / 2}, {X: w / 2, Y: d / 2}, {X: -w / 2, Y: d / 2}}
}

// centered returns the box spanning x0..x1, y0..y1 shrunk by inset on
// every side.
func centered(x0, x1, y0, y1, inset float64) r2.Box {
	return r2.Box{
		Min: r2.Vec{X: x0 + inset, Y: y0 + inset},
		Max: r2.Vec{X: x1 - inset, Y: y1 - inset},
	}
}
