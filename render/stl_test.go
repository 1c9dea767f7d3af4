package render_test

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/soypat/keycad"
	"github.com/soypat/keycad/form3"
	"github.com/soypat/keycad/render"
	"gonum.org/v1/gonum/spatial/r3"
)

func box(t testing.TB, min, max r3.Vec) *keycad.Solid {
	t.Helper()
	s, err := form3.Box(r3.Box{Min: min, Max: max})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestSTLCreateWriteRead(t *testing.T) {
	a := box(t, r3.Vec{}, r3.Vec{X: 3, Y: 2, Z: 1})
	b := box(t, r3.Vec{X: 4}, r3.Vec{X: 5, Y: 1, Z: 1})
	path := filepath.Join(t.TempDir(), "boxes.stl")
	if err := render.CreateSTL(path, render.NewMeshRenderer(a, b)); err != nil {
		t.Fatal(err)
	}
	bfile, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	model, err := render.RenderAll(render.NewMeshRenderer(a, b))
	if err != nil {
		t.Fatal(err)
	}
	if len(model) != len(a.Triangles())+len(b.Triangles()) {
		t.Fatalf("rendered %d triangles", len(model))
	}
	var buf bytes.Buffer
	if err := render.WriteSTL(&buf, model); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(buf.Bytes(), bfile) {
		t.Fatal("WriteSTL and CreateSTL output mismatch")
	}
	if len(bfile) != 84+50*len(model) {
		t.Errorf("file size %d for %d triangles", len(bfile), len(model))
	}

	got, err := render.ReadSTL(bytes.NewReader(bfile))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(model) {
		t.Fatalf("read %d triangles, want %d", len(got), len(model))
	}
	for i := range got {
		for j := range got[i].V {
			if r3.Norm(r3.Sub(got[i].V[j], model[i].V[j])) > 1e-6 {
				t.Fatalf("triangle %d vertex %d: got %v, want %v", i, j, got[i].V[j], model[i].V[j])
			}
		}
	}
}

// Renderers must hand out every triangle even through a small buffer.
func TestMeshRendererSmallBuffer(t *testing.T) {
	a := box(t, r3.Vec{}, r3.Vec{X: 1, Y: 1, Z: 1})
	b := box(t, r3.Vec{X: 2}, r3.Vec{X: 3, Y: 1, Z: 1})
	r := render.NewMeshRenderer(a, b)
	dst := make([]keycad.Triangle3, 5)
	total := 0
	for {
		n, err := r.ReadTriangles(dst)
		total += n
		if err != nil {
			break
		}
		if n == 0 {
			t.Fatal("no progress without error")
		}
	}
	if want := len(a.Triangles()) + len(b.Triangles()); total != want {
		t.Errorf("read %d triangles, want %d", total, want)
	}
}

func TestSTLEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := render.WriteSTL(&buf, nil); !errors.Is(err, render.ErrEmptyModel) {
		t.Errorf("WriteSTL of nothing: %v", err)
	}
	path := filepath.Join(t.TempDir(), "empty.stl")
	if err := render.CreateSTL(path, render.NewMeshRenderer()); !errors.Is(err, render.ErrEmptyModel) {
		t.Errorf("CreateSTL of nothing: %v", err)
	}
	if _, err := render.ReadSTL(bytes.NewReader(nil)); err == nil {
		t.Error("expected error reading empty input")
	}
	// Header claims one triangle that is not there.
	header := make([]byte, 84)
	header[80] = 1
	if _, err := render.ReadSTL(bytes.NewReader(header)); err == nil {
		t.Error("expected error reading truncated input")
	}
}

func TestReadSTLBadVertex(t *testing.T) {
	var buf bytes.Buffer
	tri := keycad.Triangle3{V: [3]r3.Vec{{}, {X: 1}, {Y: math.Inf(1)}}}
	if err := render.WriteSTL(&buf, []keycad.Triangle3{tri}); err != nil {
		t.Fatal(err)
	}
	if _, err := render.ReadSTL(&buf); err == nil {
		t.Error("expected error for infinite vertex")
	}
}

func TestExportUnion(t *testing.T) {
	a := box(t, r3.Vec{}, r3.Vec{X: 10, Y: 10, Z: 4})
	b := box(t, r3.Vec{X: 8, Y: 2}, r3.Vec{X: 20, Y: 8, Z: 4})
	u := keycad.Union3D(a.SDF(), b.SDF())
	path := filepath.Join(t.TempDir(), "union.stl")
	n, err := render.ExportUnion(u, 40, path)
	if err != nil {
		t.Fatal(err)
	}
	if n == 0 {
		t.Fatal("exported no triangles")
	}
	if _, err := render.ExportUnion(u, 1, path); err == nil {
		t.Error("expected error for single cell export")
	}
}
