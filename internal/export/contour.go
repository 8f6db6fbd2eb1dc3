package export

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/san-kum/vipor/internal/figure"
)

// grid adapts a figure.Contour to plotter.GridXYZ.
type grid struct{ c *figure.Contour }

func (g grid) Dims() (c, r int)   { return g.c.Dims() }
func (g grid) Z(c, r int) float64 { return g.c.Z(c, r) }
func (g grid) X(c int) float64    { return g.c.XAt(c) }
func (g grid) Y(r int) float64    { return g.c.YAt(r) }

// ContourPlot draws the field as a heat map with contour lines on top.
// A constant field gets neither.
func ContourPlot(ct *figure.Contour) (*plot.Plot, error) {
	cols, rows := ct.Dims()
	if cols < 2 || rows < 2 {
		return nil, fmt.Errorf("contour %s: grid %dx%d is too small", ct.Name, cols, rows)
	}

	p := plot.New()
	p.Title.Text = ct.Title
	p.X.Label.Text = ct.XLabel
	p.Y.Label.Text = ct.YLabel

	if lo, hi := ct.ValueRange(); hi > lo {
		g := grid{ct}
		p.Add(plotter.NewHeatMap(g, palette.Heat(64, 1)))

		lines := plotter.NewContour(g, ct.LevelValues(), nil)
		lines.LineStyles = []draw.LineStyle{{Color: color.Black, Width: vg.Points(0.75)}}
		p.Add(lines)
	}
	p.X.Min, p.X.Max = ct.X[0], ct.X[cols-1]
	p.Y.Min, p.Y.Max = ct.Y[0], ct.Y[rows-1]
	return p, nil
}

// SaveContour writes the contour plot to path, format by extension.
func SaveContour(ct *figure.Contour, path string) error {
	p, err := ContourPlot(ct)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return p.Save(FigureWidth, FigureHeight, path)
}

// ContourSVG renders the contour plot as an SVG document.
func ContourSVG(ct *figure.Contour) ([]byte, error) {
	p, err := ContourPlot(ct)
	if err != nil {
		return nil, err
	}
	return writePlot(p, "svg")
}
