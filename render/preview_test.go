package render_test

import (
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/soypat/keycad/assemble"
	"github.com/soypat/keycad/config"
	"github.com/soypat/keycad/key"
	"github.com/soypat/keycad/layout"
	"github.com/soypat/keycad/render"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/plot/vg"
)

func matrix(t testing.TB, size config.KeyboardSize) *layout.Matrix {
	t.Helper()
	cfg := config.Default()
	cfg.Layout.Size = size
	cat, err := layout.Lookup("iso")
	if err != nil {
		t.Fatal(err)
	}
	b := layout.Builder{Config: &cfg, Catalog: cat, Log: zerolog.Nop()}
	m, err := b.Place()
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestPreview(t *testing.T) {
	const width, height = 320, 180
	parts := []assemble.Part{
		{Object: key.Object{Name: "slot", Solid: box(t, r3.Vec{}, r3.Vec{X: 19, Y: 19, Z: 4})}, Color: assemble.ColorLeft},
		{Object: key.Object{Name: "slot", Solid: box(t, r3.Vec{X: 19}, r3.Vec{X: 38, Y: 19, Z: 4})}, Color: assemble.ColorRight},
	}
	path := filepath.Join(t.TempDir(), "preview.png")
	if err := render.Preview(path, parts, width, height, render.DefaultView); err != nil {
		t.Fatal(err)
	}
	fp, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer fp.Close()
	img, err := png.Decode(fp)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != width || b.Dy() != height {
		t.Errorf("preview is %dx%d", b.Dx(), b.Dy())
	}

	if err := render.Preview(path, nil, width, height, render.DefaultView); err != assemble.ErrEmpty {
		t.Errorf("preview of nothing: %v", err)
	}
}

func TestFootprint(t *testing.T) {
	m := matrix(t, config.S80)
	k := m.Rows[0][0]
	xys := render.Footprint(k)
	want := [4][2]float64{{0, -9.5}, {23.75, -9.5}, {23.75, 9.5}, {0, 9.5}}
	for i, xy := range xys {
		if math.Abs(xy.X-want[i][0]) > 1e-9 || math.Abs(xy.Y-want[i][1]) > 1e-9 {
			t.Errorf("%s corner %d at (%g, %g), want %v", k.Name, i, xy.X, xy.Y, want[i])
		}
	}
}

func TestPlan(t *testing.T) {
	m := matrix(t, config.S100)
	for _, name := range []string{"plan.png", "plan.svg"} {
		path := filepath.Join(t.TempDir(), name)
		if err := render.Plan(path, m, true, 30*vg.Centimeter); err != nil {
			t.Fatal(err)
		}
		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", name)
		}
	}
	if err := render.Plan(filepath.Join(t.TempDir(), "x.png"), &layout.Matrix{}, false, vg.Centimeter); err == nil {
		t.Error("expected error for empty matrix")
	}
}
