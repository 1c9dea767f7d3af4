// Package form3 provides the solid primitives of keycad with error returns.
// Their panicking counterparts live in form3/must3.
package form3

import (
	"github.com/soypat/keycad"
	"github.com/soypat/keycad/form3/must3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Box returns the solid axis aligned box b.
func Box(b r3.Box) (s *keycad.Solid, err error) {
	defer catch("box", &err)
	return must3.Box(b), err
}

// CenteredBox returns a box of the given size centered at center.
func CenteredBox(center, size r3.Vec) (s *keycad.Solid, err error) {
	defer catch("box", &err)
	return must3.CenteredBox(center, size), err
}

// Frustum returns the convex solid spanned by rectangle bottom at height
// z0 and rectangle top at height z1.
func Frustum(bottom r2.Box, z0 float64, top r2.Box, z1 float64) (s *keycad.Solid, err error) {
	defer catch("frustum", &err)
	return must3.Frustum(bottom, z0, top, z1), err
}

// Prism extrudes a counter-clockwise outline from z0 to z1.
func Prism(outline []r2.Vec, z0, z1 float64) (s *keycad.Solid, err error) {
	defer catch("prism", &err)
	return must3.Prism(outline, z0, z1), err
}

// Plate extrudes a counter-clockwise outline from z0 to z1 with a hole
// cut through it.
func Plate(outline, hole []r2.Vec, z0, z1 float64) (s *keycad.Solid, err error) {
	defer catch("plate", &err)
	return must3.Plate(outline, hole, z0, z1), err
}

// Rect returns the flat rectangle b at height z.
func Rect(b r2.Box, z float64) (s *keycad.Solid, err error) {
	defer catch("rect", &err)
	return must3.Rect(b, z), err
}
