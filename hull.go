package keycad

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/soypat/keycad/internal/d2"
	"github.com/soypat/keycad/internal/d3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// ErrDegenerate is returned when points or loops do not enclose a volume.
var ErrDegenerate = errors.New("degenerate geometry")

// ConvexHull returns the smallest convex solid containing pts. Coplanar
// hull triangles are merged so every planar side of the hull is a single
// face. ConvexHull returns ErrDegenerate if pts are coplanar.
//
// Facets are found by testing every point triple as a supporting plane,
// which is robust for the small point sets that bridge key faces.
func ConvexHull(pts []r3.Vec) (*Solid, error) {
	pts = dedupe(pts)
	if len(pts) < 4 {
		return nil, fmt.Errorf("%w: convex hull of %d distinct points", ErrDegenerate, len(pts))
	}
	set := d3.Set(pts)
	eps := 1e-7 * (1 + math.Max(d3.MaxAbs(set.Max()), d3.MaxAbs(set.Min())))
	if !spansVolume(pts, eps) {
		return nil, fmt.Errorf("%w: %d coplanar points", ErrDegenerate, len(pts))
	}

	type plane struct {
		n r3.Vec
		d float64
	}
	var planes []plane
	isKnown := func(n r3.Vec, d float64) bool {
		for _, pl := range planes {
			if r3.Dot(pl.n, n) > 1-1e-9 && math.Abs(pl.d-d) <= eps {
				return true
			}
		}
		return false
	}
	for i := 0; i < len(pts); i++ {
		for j := i + 1; j < len(pts); j++ {
			for k := j + 1; k < len(pts); k++ {
				n := r3.Cross(r3.Sub(pts[j], pts[i]), r3.Sub(pts[k], pts[i]))
				if r3.Norm(n) < eps*eps {
					continue // collinear
				}
				n = d3.Unit(n)
				d := r3.Dot(n, pts[i])
				var above, below bool
				for _, p := range pts {
					h := r3.Dot(n, p) - d
					above = above || h > eps
					below = below || h < -eps
					if above && below {
						break
					}
				}
				switch {
				case above && below:
					continue
				case above:
					n, d = r3.Scale(-1, n), -d
				}
				if !isKnown(n, d) {
					planes = append(planes, plane{n: n, d: d})
				}
			}
		}
	}

	faces := make([]Face, 0, len(planes))
	for _, pl := range planes {
		var on []r3.Vec
		for _, p := range pts {
			if math.Abs(r3.Dot(pl.n, p)-pl.d) <= eps {
				on = append(on, p)
			}
		}
		f := planarHull(on, pl.n)
		if len(f.V) >= 3 {
			faces = append(faces, f)
		}
	}
	if len(faces) < 4 {
		return nil, fmt.Errorf("%w: hull has %d faces", ErrDegenerate, len(faces))
	}
	return NewSolid(faces, ConvexSDF(faces)), nil
}

// planarHull returns the convex polygon of coplanar points wound
// counter-clockwise around n. Collinear boundary points are dropped.
func planarHull(pts []r3.Vec, n r3.Vec) Face {
	u, v := planeBasis(n)
	type proj struct {
		p  r2.Vec
		v3 r3.Vec
	}
	ps := make([]proj, len(pts))
	for i, p := range pts {
		ps[i] = proj{p: r2.Vec{X: r3.Dot(p, u), Y: r3.Dot(p, v)}, v3: p}
	}
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].p.X != ps[j].p.X {
			return ps[i].p.X < ps[j].p.X
		}
		return ps[i].p.Y < ps[j].p.Y
	})
	// Andrew's monotone chain.
	hull := make([]proj, 0, 2*len(ps))
	for pass := 0; pass < 2; pass++ {
		start := len(hull)
		for _, q := range ps {
			for len(hull) >= start+2 && d2.Cross(hull[len(hull)-2].p, hull[len(hull)-1].p, q.p) <= 1e-12 {
				hull = hull[:len(hull)-1]
			}
			hull = append(hull, q)
		}
		hull = hull[:len(hull)-1]
		// reverse for the upper chain.
		for i, j := 0, len(ps)-1; i < j; i, j = i+1, j-1 {
			ps[i], ps[j] = ps[j], ps[i]
		}
	}
	f := Face{V: make([]r3.Vec, len(hull))}
	for i := range hull {
		f.V[i] = hull[i].v3
	}
	return f
}

// spansVolume reports whether pts contain four points that are not coplanar.
func spansVolume(pts []r3.Vec, eps float64) bool {
	p0 := pts[0]
	far := func(dist func(r3.Vec) float64) (r3.Vec, float64) {
		best, bd := p0, -1.0
		for _, p := range pts {
			if d := dist(p); d > bd {
				best, bd = p, d
			}
		}
		return best, bd
	}
	p1, d := far(func(p r3.Vec) float64 { return r3.Norm(r3.Sub(p, p0)) })
	if d <= eps {
		return false
	}
	axis := d3.Unit(r3.Sub(p1, p0))
	p2, d := far(func(p r3.Vec) float64 { return r3.Norm(r3.Cross(axis, r3.Sub(p, p0))) })
	if d <= eps {
		return false
	}
	n := d3.Unit(r3.Cross(r3.Sub(p1, p0), r3.Sub(p2, p0)))
	_, d = far(func(p r3.Vec) float64 { return math.Abs(r3.Dot(n, r3.Sub(p, p0))) })
	return d > eps
}

// dedupe removes repeated points keeping first occurrence order.
func dedupe(pts []r3.Vec) []r3.Vec {
	seen := make(map[vertexKey]bool, len(pts))
	out := make([]r3.Vec, 0, len(pts))
	for _, p := range pts {
		k := keyOf(p)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, p)
	}
	return out
}
