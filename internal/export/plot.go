package export

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/piwi3910/CampusGrove/internal/model"
)

// plotSize is the edge length of the square PNG preview.
const plotSize = 8 * vg.Inch

func (c rgb) color() color.Color {
	return color.RGBA{R: uint8(c.R), G: uint8(c.G), B: uint8(c.B), A: 255}
}

// ExportPlot writes a PNG scatter preview of the project: corridors and
// building outlines as filled polygons and decor points as glyphs, one
// series per decor kind. The format follows the file extension of path.
func ExportPlot(path string, project model.Project) error {
	if project.Result == nil || len(project.Result.Points) == 0 {
		return ErrNoPlacements
	}

	p, err := buildPlot(project)
	if err != nil {
		return err
	}

	if err := p.Save(plotSize, plotSize, path); err != nil {
		return fmt.Errorf("failed to save plot %s: %w", path, err)
	}
	return nil
}

// buildPlot assembles the plot without writing it.
func buildPlot(project model.Project) (*plot.Plot, error) {
	half := sitePlanHalfExtent(project)

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s: %d decor points", project.Name, len(project.Result.Points))
	p.X.Label.Text = "x"
	p.Y.Label.Text = "z"
	p.BackgroundColor = groundColor.color()
	p.Add(plotter.NewGrid())

	for _, c := range project.Corridors {
		lo, hi := c.Bounds()
		poly, err := plotter.NewPolygon(rectXYs(lo, hi))
		if err != nil {
			return nil, fmt.Errorf("failed to plot corridor %q: %w", c.Label, err)
		}
		poly.Color = corridorColor.color()
		poly.LineStyle.Width = 0
		p.Add(poly)
	}

	for _, b := range project.Buildings {
		corners := footprintCorners(b.Footprint())
		xys := make(plotter.XYs, len(corners))
		for i, c := range corners {
			xys[i] = plotter.XY{X: c.X, Y: c.Z}
		}
		poly, err := plotter.NewPolygon(xys)
		if err != nil {
			return nil, fmt.Errorf("failed to plot building %q: %w", b.Name, err)
		}
		poly.Color = parseHex(b.Color, buildingFallback).color()
		poly.LineStyle.Width = vg.Points(0.5)
		p.Add(poly)
	}

	kinds, colors := projectKinds(project)
	byKind := map[string]plotter.XYs{}
	for _, pt := range project.Result.Points {
		byKind[pt.Kind] = append(byKind[pt.Kind], plotter.XY{X: pt.X, Y: pt.Z})
	}
	for _, k := range kinds {
		xys := byKind[k]
		if len(xys) == 0 {
			continue
		}
		s, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, fmt.Errorf("failed to plot %s points: %w", kindLabel(k), err)
		}
		s.GlyphStyle.Color = colors[k].color()
		s.GlyphStyle.Radius = vg.Points(2.5)
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(s)
		p.Legend.Add(fmt.Sprintf("%s (%d)", kindLabel(k), len(xys)), s)
	}

	p.X.Min, p.X.Max = -half, half
	p.Y.Min, p.Y.Max = -half, half
	p.Legend.Top = true

	return p, nil
}

// rectXYs returns the closed ring of an axis-aligned rectangle.
func rectXYs(lo, hi model.Point2D) plotter.XYs {
	return plotter.XYs{
		{X: lo.X, Y: lo.Z},
		{X: hi.X, Y: lo.Z},
		{X: hi.X, Y: hi.Z},
		{X: lo.X, Y: hi.Z},
	}
}
