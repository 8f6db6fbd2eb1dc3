package export

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/san-kum/vipor/internal/figure"
	"github.com/san-kum/vipor/internal/viz"
)

// Default size of a single figure.
const (
	FigureWidth  = 5 * vg.Inch
	FigureHeight = 4 * vg.Inch
)

var boxColor = color.Gray{Y: 180}

// Plot builds a gonum plot of fig. 3D figures are projected through cam,
// or the default camera when cam is nil, and drawn inside their bounding
// box with the axes hidden.
func Plot(fig *figure.Figure, cam *viz.Camera) (*plot.Plot, error) {
	return plotUpTo(fig, cam, -1)
}

// plotUpTo plots samples [0, upto] of each series and marks the last one.
// Axis limits always cover the whole figure so animation frames line up.
func plotUpTo(fig *figure.Figure, cam *viz.Camera, upto int) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fig.Title

	if fig.Is3D() {
		if cam == nil {
			cam = viz.NewCamera()
		}
		if err := addBox(p, cam); err != nil {
			return nil, err
		}
		p.HideAxes()
		p.X.Label.Text = fmt.Sprintf("%s, %s, %s (az %.0f°, el %.0f°)", fig.XLabel, fig.YLabel, fig.ZLabel, cam.Azimuth, cam.Elevation)
	} else {
		p.X.Label.Text = fig.XLabel
		p.Y.Label.Text = fig.YLabel
	}

	bounds := [3]figure.Range{fig.Bounds(0), fig.Bounds(1)}
	if fig.Is3D() {
		bounds[2] = fig.Bounds(2)
	}
	for i, s := range fig.Series {
		xys := seriesXYs(s, bounds, fig.Is3D(), cam, upto)
		if len(xys) == 0 {
			continue
		}
		c := plotutil.Color(i)
		switch s.Style {
		case figure.Scatter:
			sc, err := plotter.NewScatter(xys)
			if err != nil {
				return nil, fmt.Errorf("series %d: %w", i, err)
			}
			sc.GlyphStyle.Color = c
			sc.GlyphStyle.Radius = vg.Points(0.8)
			sc.GlyphStyle.Shape = draw.CircleGlyph{}
			p.Add(sc)
			if s.Label != "" {
				p.Legend.Add(s.Label, sc)
			}
		default:
			l, err := plotter.NewLine(xys)
			if err != nil {
				return nil, fmt.Errorf("series %d: %w", i, err)
			}
			l.Color = c
			l.Width = vg.Points(1)
			p.Add(l)
			if s.Label != "" {
				p.Legend.Add(s.Label, l)
			}
		}
		if upto >= 0 {
			marker, err := plotter.NewScatter(xys[len(xys)-1:])
			if err != nil {
				return nil, err
			}
			marker.GlyphStyle = draw.GlyphStyle{Color: color.RGBA{R: 220, A: 255}, Radius: vg.Points(4), Shape: draw.CrossGlyph{}}
			p.Add(marker)
		}
	}

	if fig.Is3D() {
		lim := math.Sqrt(3)
		p.X.Min, p.X.Max = -lim, lim
		p.Y.Min, p.Y.Max = -lim, lim
	} else {
		p.X.Min, p.X.Max = bounds[0].Min, bounds[0].Max
		p.Y.Min, p.Y.Max = bounds[1].Min, bounds[1].Max
	}
	return p, nil
}

// seriesXYs collects the finite points of s, projecting 3D points into the
// camera's view of the unit cube.
func seriesXYs(s figure.Series, b [3]figure.Range, is3D bool, cam *viz.Camera, upto int) plotter.XYs {
	n := s.Len()
	if upto >= 0 {
		n = min(n, upto+1)
	}
	xys := make(plotter.XYs, 0, n)
	for i := 0; i < n; i++ {
		x, y := s.X[i], s.Y[i]
		if is3D {
			if s.Z == nil {
				continue
			}
			x, y, _ = cam.Project(viz.Vec3{X: unit(b[0], x), Y: unit(b[1], y), Z: unit(b[2], s.Z[i])})
		}
		if !finite(x) || !finite(y) {
			continue
		}
		xys = append(xys, plotter.XY{X: x, Y: y})
	}
	return xys
}

func addBox(p *plot.Plot, cam *viz.Camera) error {
	for _, e := range viz.BoxWireframe(1).Edges {
		u1, v1, _ := cam.Project(e.Start)
		u2, v2, _ := cam.Project(e.End)
		l, err := plotter.NewLine(plotter.XYs{{X: u1, Y: v1}, {X: u2, Y: v2}})
		if err != nil {
			return err
		}
		l.Color = boxColor
		l.Width = vg.Points(0.5)
		p.Add(l)
	}
	return nil
}

func unit(r figure.Range, v float64) float64 { return 2*(v-r.Min)/(r.Max-r.Min) - 1 }

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// SaveFigure writes fig to path. The extension picks the format: .svg,
// .png, .pdf, .eps, .jpg or .tif.
func SaveFigure(fig *figure.Figure, path string) error {
	p, err := Plot(fig, nil)
	if err != nil {
		return fmt.Errorf("plot %s: %w", fig.Name, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return p.Save(FigureWidth, FigureHeight, path)
}

// SVG renders fig as an SVG document.
func SVG(fig *figure.Figure, cam *viz.Camera) ([]byte, error) {
	p, err := Plot(fig, cam)
	if err != nil {
		return nil, err
	}
	return writePlot(p, "svg")
}

func writePlot(p *plot.Plot, format string) ([]byte, error) {
	wt, err := p.WriterTo(FigureWidth, FigureHeight, format)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FileName is the file name of a figure in the given format.
func FileName(name, ext string) string {
	name = strings.NewReplacer("/", "_", " ", "_").Replace(name)
	return name + "." + strings.TrimPrefix(ext, ".")
}
