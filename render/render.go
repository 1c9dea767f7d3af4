// Package render writes keycad solids out as binary STL files, PNG
// previews and top-view layout plans.
package render

import (
	"io"

	"github.com/soypat/keycad"
)

// Renderer streams triangles. ReadTriangles returns io.EOF once every
// triangle has been read.
type Renderer interface {
	ReadTriangles(dst []keycad.Triangle3) (int, error)
}

// meshRenderer streams the render meshes of solids one after another.
type meshRenderer struct {
	solids    []*keycad.Solid
	unwritten triangle3Buffer
}

// NewMeshRenderer returns a Renderer over the render meshes of solids.
func NewMeshRenderer(solids ...*keycad.Solid) Renderer {
	return &meshRenderer{solids: solids}
}

func (mr *meshRenderer) ReadTriangles(dst []keycad.Triangle3) (n int, err error) {
	if len(dst) == 0 {
		panic("cannot write to empty triangle slice")
	}
	for n < len(dst) {
		if mr.unwritten.Len() == 0 {
			if len(mr.solids) == 0 {
				break
			}
			mr.unwritten.Write(mr.solids[0].Triangles())
			mr.solids = mr.solids[1:]
			continue
		}
		n += mr.unwritten.Read(dst[n:])
	}
	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}
