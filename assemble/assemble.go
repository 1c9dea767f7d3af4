// Package assemble collects the exposed shapes of a key matrix into one
// unified solid for export or into colored parts for preview.
package assemble

import (
	"errors"
	"image/color"
	"time"

	"github.com/rs/zerolog"
	"github.com/soypat/keycad"
	"github.com/soypat/keycad/config"
	"github.com/soypat/keycad/key"
	"github.com/soypat/keycad/layout"
)

// ErrEmpty is returned when no shape passes the exposure filter.
var ErrEmpty = errors.New("assembly has no shapes")

// Preview colors by key classification.
var (
	ColorLeft      = color.NRGBA{R: 0, G: 0, B: 255, A: 128}
	ColorRight     = color.NRGBA{R: 0, G: 255, B: 0, A: 128}
	ColorArrow     = color.NRGBA{R: 255, G: 0, B: 0, A: 128}
	ColorNumpad    = color.NRGBA{R: 255, G: 255, B: 0, A: 128}
	ColorInvisible = color.NRGBA{R: 255, G: 255, B: 255, A: 32}
)

// Colorize returns the preview color of k.
func Colorize(k *key.Key) color.NRGBA {
	if !k.Base.Visible {
		return ColorInvisible
	}
	switch k.Block {
	case key.ArrowBlock:
		return ColorArrow
	case key.NumpadBlock:
		return ColorNumpad
	}
	if k.Hand == key.RightHand {
		return ColorRight
	}
	return ColorLeft
}

// Filter returns the exposure predicate for dbg. Unified output drops
// the footprint plate and origin markers since they are not solids.
func Filter(dbg config.Debug, unify bool) func(key.Category) bool {
	return func(c key.Category) bool {
		if unify && !c.Solid() {
			return false
		}
		switch c {
		case key.CategoryPlane:
			return dbg.RenderPlacement()
		case key.CategoryOrigin:
			return dbg.RenderOrigin()
		case key.CategoryCap:
			return dbg.RenderCap()
		case key.CategorySlot:
			return dbg.RenderSlots()
		case key.CategorySwitch:
			return dbg.RenderSwitch()
		case key.CategoryConnector:
			return dbg.RenderConnectors()
		}
		return false
	}
}

// Part is one exposed shape with its owner.
type Part struct {
	Key    *key.Key
	Object key.Object
	Color  color.NRGBA
}

// Assembly is the output of Assemble. Union is set when the assembly
// was unified, Parts always lists what went into it.
type Assembly struct {
	Parts []Part
	Union *keycad.Solid
}

// Solids returns the solids of every part.
func (a *Assembly) Solids() []*keycad.Solid {
	out := make([]*keycad.Solid, len(a.Parts))
	for i, p := range a.Parts {
		out[i] = p.Object.Solid
	}
	return out
}

// Assembler exposes and collects the shapes of a matrix.
type Assembler struct {
	Debug config.Debug
	Log   zerolog.Logger
}

// Assemble exposes every key of m and collects its shapes. Invisible keys
// are left out unless invisibles are shown. With unify the parts are
// also merged into one solid.
func (a *Assembler) Assemble(m *layout.Matrix, unify bool) (*Assembly, error) {
	start := time.Now()
	keep := Filter(a.Debug, unify)
	asm := &Assembly{}
	skipped := 0
	for i, row := range m.Rows {
		for j, k := range row {
			objs := k.Expose(keep)
			if !k.Base.Visible && !a.Debug.RenderInvisibles() {
				skipped++
				a.Log.Debug().Int("row", i).Int("col", j).Str("key", k.Name).Msg("key not visible")
				continue
			}
			c := Colorize(k)
			for _, o := range objs {
				asm.Parts = append(asm.Parts, Part{Key: k, Object: o, Color: c})
			}
		}
	}
	if len(asm.Parts) == 0 {
		return nil, ErrEmpty
	}
	if unify {
		asm.Union = Union(asm.Solids())
	}
	a.Log.Info().Bool("unify", unify).Int("parts", len(asm.Parts)).Int("hidden", skipped).
		Dur("elapsed", time.Since(start)).Msg("assembled")
	return asm, nil
}

// Union returns the boolean union of solids. Its render mesh is the
// concatenation of the inputs' meshes; only its SDF is exact.
func Union(solids []*keycad.Solid) *keycad.Solid {
	if len(solids) == 1 {
		return solids[0]
	}
	var (
		mesh []keycad.Triangle3
		sdfs = make([]keycad.SDF3, len(solids))
	)
	for i, s := range solids {
		mesh = append(mesh, s.Triangles()...)
		sdfs[i] = s.SDF()
	}
	return keycad.Compose(nil, mesh, keycad.Union3D(sdfs...))
}
