package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/vipor/internal/figure"
)

// DrawFigure renders fig on a w x h braille canvas. 3D figures are viewed
// through cam inside their bounding box; cam may be nil for 2D figures.
func DrawFigure(fig *figure.Figure, w, h int, cam *Camera) string {
	return drawUpTo(fig, w, h, cam, -1)
}

// DrawFrame renders frame i of anim, one panel under the other.
func DrawFrame(anim *figure.Animation, i, w, h int, cam *Camera) string {
	if i < 0 || i >= len(anim.Frames) {
		return ""
	}
	if anim.Kind == figure.Orbit3D && cam != nil && i < len(anim.Azimuth) {
		cam.Azimuth = anim.Azimuth[i]
	}
	panels := make([]string, len(anim.Panels))
	for p := range anim.Panels {
		panels[p] = drawUpTo(&anim.Panels[p], w, h, cam, anim.Frames[i])
	}
	return strings.Join(panels, "\n")
}

// FigureCanvas draws fig on a fresh w x h canvas without title or footer.
func FigureCanvas(fig *figure.Figure, w, h int, cam *Camera) *Canvas {
	if fig.Is3D() && cam == nil {
		cam = NewCamera()
	}
	return canvasUpTo(fig, w, h, cam, -1)
}

func drawUpTo(fig *figure.Figure, w, h int, cam *Camera, upto int) string {
	if fig.Is3D() && cam == nil {
		cam = NewCamera()
	}
	c := canvasUpTo(fig, w, h, cam, upto)

	var b strings.Builder
	if fig.Title != "" {
		b.WriteString(fig.Title + "\n")
	}
	b.WriteString(c.String())
	if fig.Is3D() {
		fmt.Fprintf(&b, "%s, %s, %s  az %.0f° el %.0f°\n", fig.XLabel, fig.YLabel, fig.ZLabel, cam.Azimuth, cam.Elevation)
	} else {
		xr, yr := fig.Bounds(0), fig.Bounds(1)
		fmt.Fprintf(&b, "%s %.3g..%.3g  %s %.3g..%.3g\n", fig.XLabel, xr.Min, xr.Max, fig.YLabel, yr.Min, yr.Max)
	}
	return b.String()
}

// canvasUpTo draws samples [0, upto] of every series and marks the last one
// with a cross. upto < 0 draws everything without a marker.
func canvasUpTo(fig *figure.Figure, w, h int, cam *Camera, upto int) *Canvas {
	c := NewCanvas(w, h)

	var proj func(s figure.Series, i int) (float64, float64)
	var vp Viewport
	if fig.Is3D() {
		bounds := [3]figure.Range{fig.Bounds(0), fig.Bounds(1), fig.Bounds(2)}
		proj = func(s figure.Series, i int) (float64, float64) {
			u, v, _ := cam.Project(unitCube(bounds, s.X[i], s.Y[i], s.Z[i]))
			return u, v
		}
		// The unit cube spans at most √3 in any view direction.
		lim := figure.Range{Min: -math.Sqrt(3), Max: math.Sqrt(3)}
		vp = c.Viewport(lim, lim)
		Render3D(c, BoxWireframe(1), cam, vp)
	} else {
		proj = func(s figure.Series, i int) (float64, float64) { return s.X[i], s.Y[i] }
		vp = c.Viewport(fig.Bounds(0), fig.Bounds(1))
	}

	for _, s := range fig.Series {
		if fig.Is3D() && s.Z == nil {
			continue
		}
		n := s.Len()
		if upto >= 0 {
			n = min(n, upto+1)
		}
		px, py, prev := 0, 0, false
		for i := 0; i < n; i++ {
			x, y, ok := vp.Map(proj(s, i))
			if !ok {
				prev = false
				continue
			}
			if s.Style == figure.Line && prev {
				c.DrawLine(px, py, x, y)
			} else {
				c.Set(x, y)
			}
			px, py, prev = x, y, true
		}
		if upto >= 0 && n > 0 {
			if x, y, ok := vp.Map(proj(s, n-1)); ok {
				markCross(c, x, y)
			}
		}
	}
	return c
}

func unitCube(b [3]figure.Range, x, y, z float64) Vec3 {
	scale := func(r figure.Range, v float64) float64 { return 2*(v-r.Min)/(r.Max-r.Min) - 1 }
	return Vec3{scale(b[0], x), scale(b[1], y), scale(b[2], z)}
}

func markCross(c *Canvas, x, y int) {
	for d := -2; d <= 2; d++ {
		c.Set(x+d, y)
		c.Set(x, y+d)
	}
}

// Shading ramp for contour maps, low values first.
const shades = " .:-=+*#%@"

// DrawContour shades the grid with one character per node, the top row
// holding the largest y.
func DrawContour(ct *figure.Contour) string {
	cols, rows := ct.Dims()
	if cols == 0 || rows == 0 {
		return ""
	}
	lo, hi := ct.ValueRange()
	var b strings.Builder
	if ct.Title != "" {
		b.WriteString(ct.Title + "\n")
	}
	for r := rows - 1; r >= 0; r-- {
		for col := 0; col < cols; col++ {
			idx := 0
			if hi > lo {
				idx = int((ct.Z(col, r) - lo) / (hi - lo) * float64(len(shades)-1))
			}
			b.WriteByte(shades[max(0, min(idx, len(shades)-1))])
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "%s %.3g..%.3g  %s %.3g..%.3g  [%.4g, %.4g]\n",
		ct.XLabel, ct.X[0], ct.X[cols-1], ct.YLabel, ct.Y[0], ct.Y[rows-1], lo, hi)
	return b.String()
}

var seriesColors = []asciigraph.AnsiColor{
	asciigraph.Cyan, asciigraph.Magenta, asciigraph.Yellow, asciigraph.Green, asciigraph.Orange, asciigraph.Red, asciigraph.Blue,
}

// LineChart plots the Y values of every series against their index with
// asciigraph. It suits figures whose series share an evenly spaced X, such
// as rotation curves.
func LineChart(fig *figure.Figure, w, h int) string {
	var (
		data    [][]float64
		legends []string
		colors  []asciigraph.AnsiColor
	)
	for _, s := range fig.Series {
		if !anyFinite(s.Y[:s.Len()]) {
			continue
		}
		data = append(data, s.Y[:s.Len()])
		legends = append(legends, s.Label)
		colors = append(colors, seriesColors[len(colors)%len(seriesColors)])
	}
	if len(data) == 0 {
		return ""
	}
	xr := fig.Bounds(0)
	opts := []asciigraph.Option{
		asciigraph.Width(w),
		asciigraph.Height(h),
		asciigraph.SeriesColors(colors...),
		asciigraph.Caption(fmt.Sprintf("%s  (%s %.3g..%.3g)", fig.YLabel, fig.XLabel, xr.Min, xr.Max)),
	}
	if legends[0] != "" {
		opts = append(opts, asciigraph.SeriesLegends(legends...))
	}
	return asciigraph.PlotMany(data, opts...)
}

func anyFinite(vs []float64) bool {
	for _, v := range vs {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			return true
		}
	}
	return false
}
