package render

import (
	"errors"
	"fmt"
	"os"

	sdfxrender "github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	"github.com/soypat/keycad"
	"gonum.org/v1/gonum/spatial/r3"
)

var _ sdf.SDF3 = sdfxSDF{}

// sdfxSDF exposes a keycad SDF3 to the sdfx renderers.
type sdfxSDF struct {
	s keycad.SDF3
}

func (a sdfxSDF) Evaluate(p sdf.V3) float64 {
	return a.s.Evaluate(r3.Vec{X: p.X, Y: p.Y, Z: p.Z})
}

func (a sdfxSDF) BoundingBox() sdf.Box3 {
	b := a.s.Bounds()
	return sdf.Box3{
		Min: sdf.V3{X: b.Min.X, Y: b.Min.Y, Z: b.Min.Z},
		Max: sdf.V3{X: b.Max.X, Y: b.Max.Y, Z: b.Max.Z},
	}
}

// ExportUnion meshes s with octree marching cubes of cells cells along
// its longest axis and writes the result as a binary STL at path. It
// reads the file back and returns the triangle count.
func ExportUnion(s keycad.SDF3, cells int, path string) (int, error) {
	if cells < 2 {
		return 0, fmt.Errorf("export needs at least 2 cells, got %d", cells)
	}
	// sdfx reports errors on stdout only, a stale file would hide them.
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return 0, err
	}
	sdfxrender.ToSTL(sdfxSDF{s: s}, cells, path, &sdfxrender.MarchingCubesOctree{})
	fp, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("export %s: %w", path, err)
	}
	defer fp.Close()
	model, err := ReadSTL(fp)
	if err != nil && !errors.Is(err, errCalculatedNormalMismatch) {
		return 0, fmt.Errorf("export %s: %w", path, err)
	}
	return len(model), nil
}
