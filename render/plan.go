package render

import (
	"errors"

	"github.com/soypat/keycad/assemble"
	"github.com/soypat/keycad/internal/d2"
	"github.com/soypat/keycad/key"
	"github.com/soypat/keycad/layout"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Footprint returns the four corners of k's footprint projected on the
// XY plane, counter-clockwise from the front left.
func Footprint(k *key.Key) plotter.XYs {
	w, d := k.Base.Width/2, k.Base.Depth/2
	pose := k.Base.Frame.Transform()
	xys := make(plotter.XYs, 4)
	for i, c := range [4]r3.Vec{{X: -w, Y: -d}, {X: w, Y: -d}, {X: w, Y: d}, {X: -w, Y: d}} {
		p := pose.Transform(c)
		xys[i].X, xys[i].Y = p.X, p.Y
	}
	return xys
}

// Plan draws the top view of m with one polygon per footprint in its
// preview color. Key names are drawn when labels is set. The image
// format follows the extension of path.
func Plan(path string, m *layout.Matrix, labels bool, width vg.Length) error {
	if m.Len() == 0 {
		return errors.New("plan of empty matrix")
	}
	p := plot.New()
	p.Title.Text = m.Catalog + " " + m.Size.String()
	p.X.Label.Text = "x [mm]"
	p.Y.Label.Text = "y [mm]"

	var (
		names   plotter.XYLabels
		corners d2.Set
	)
	for _, row := range m.Rows {
		for _, k := range row {
			xys := Footprint(k)
			poly, err := plotter.NewPolygon(xys)
			if err != nil {
				return err
			}
			poly.Color = assemble.Colorize(k)
			poly.LineStyle.Width = vg.Points(0.5)
			p.Add(poly)
			for _, xy := range xys {
				corners = append(corners, r2.Vec{X: xy.X, Y: xy.Y})
			}
			if labels && k.Base.Visible {
				c := k.Base.TotalPosition()
				names.XYs = append(names.XYs, plotter.XY{X: c.X - k.Base.Width/4, Y: c.Y})
				names.Labels = append(names.Labels, k.Name)
			}
		}
	}
	if len(names.Labels) > 0 {
		lbl, err := plotter.NewLabels(names)
		if err != nil {
			return err
		}
		p.Add(lbl)
	}
	// Keep millimeters square.
	height := width
	if sz := corners.Bounds().Size(); sz.X > 0 {
		height = vg.Length(float64(width)*sz.Y/sz.X) + 2*vg.Centimeter
	}
	return p.Save(width, height, path)
}
