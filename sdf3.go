package keycad

import (
	"math"
	"strconv"

	"github.com/soypat/keycad/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// SDF3 is the interface to a 3d signed distance function object.
type SDF3 interface {
	// Evaluate takes a point in 3D space as input and returns
	// the minimum distance of the SDF3 to the point. The distance
	// is negative if the point is contained within the SDF3.
	Evaluate(p r3.Vec) float64
	// Bounds returns the bounding box that completely contains
	// the SDF3.
	Bounds() r3.Box
}

// box3 is an exact axis aligned box.
type box3 struct {
	bb d3.Box
}

// Box3D returns the exact SDF3 of an axis aligned box.
func Box3D(b r3.Box) SDF3 {
	if b.Max.X < b.Min.X || b.Max.Y < b.Min.Y || b.Max.Z < b.Min.Z {
		panic("inverted box bounds")
	}
	return &box3{bb: d3.Box(b)}
}

// Evaluate returns the minimum distance to the box.
func (s *box3) Evaluate(p r3.Vec) float64 {
	return s.bb.SignedDistance(p)
}

// Bounds returns the box itself.
func (s *box3) Bounds() r3.Box {
	return r3.Box(s.bb)
}

// transform3 is an SDF3 posed by a rigid transform.
type transform3 struct {
	sdf     SDF3
	inverse d3.Transform
	bb      r3.Box
}

// Transform3D applies a rigid transformation to an SDF3.
// Distance is *not* preserved if the transform scales.
func Transform3D(sdf SDF3, t d3.Transform) SDF3 {
	if sdf == nil {
		panic("nil SDF3 argument")
	}
	if t == (d3.Transform{}) {
		return sdf
	}
	return &transform3{
		sdf:     sdf,
		inverse: t.Inv(),
		bb:      r3.Box(t.TransformBox(d3.Box(sdf.Bounds()))),
	}
}

// Evaluate returns the minimum distance to a transformed SDF3.
func (s *transform3) Evaluate(p r3.Vec) float64 {
	return s.sdf.Evaluate(s.inverse.Transform(p))
}

// Bounds returns the bounding box of a transformed SDF3.
func (s *transform3) Bounds() r3.Box {
	return s.bb
}

// union3 is a union of SDF3s.
type union3 struct {
	sdf []SDF3
	bbs []d3.Box
	bb  r3.Box
}

// Union3D returns the union of multiple SDF3 objects.
// Union3D will panic if arguments list has less than 2 elements or if
// an argument SDF3 is nil.
func Union3D(sdf ...SDF3) SDF3 {
	if len(sdf) < 2 {
		panic("union require at least 2 sdfs")
	}
	s := union3{
		sdf: sdf,
		bbs: make([]d3.Box, len(sdf)),
	}
	for i, x := range s.sdf {
		if x == nil {
			panic("nil sdf argument (" + strconv.Itoa(i) + ") to Union3D")
		}
		s.bbs[i] = d3.Box(x.Bounds())
	}
	bb := s.bbs[0]
	for _, b := range s.bbs[1:] {
		bb = bb.Extend(b)
	}
	s.bb = r3.Box(bb)
	return &s
}

// Evaluate returns the minimum distance to an SDF3 union.
// Members whose bounding box lies farther than the current
// minimum are not evaluated.
func (s *union3) Evaluate(p r3.Vec) float64 {
	d := math.Inf(1)
	for i, x := range s.sdf {
		if s.bbs[i].Distance(p) >= d {
			continue
		}
		d = math.Min(d, x.Evaluate(p))
	}
	return d
}

// Bounds returns the bounding box of an SDF3 union.
func (s *union3) Bounds() r3.Box {
	return s.bb
}

// diff3 is the difference of two SDF3s, s0 - s1.
type diff3 struct {
	s0 SDF3
	s1 SDF3
	bb r3.Box
}

// Difference3D returns the difference of two SDF3s, s0 - s1.
// Difference3D will panic if one any of the arguments is nil.
func Difference3D(s0, s1 SDF3) SDF3 {
	if s1 == nil || s0 == nil {
		panic("nil argument to Difference3D")
	}
	return &diff3{s0: s0, s1: s1, bb: s0.Bounds()}
}

// Evaluate returns the minimum distance to the SDF3 difference.
func (s *diff3) Evaluate(p r3.Vec) float64 {
	return math.Max(s.s0.Evaluate(p), -s.s1.Evaluate(p))
}

// Bounds returns the bounding box of the SDF3 difference.
func (s *diff3) Bounds() r3.Box {
	return s.bb
}
