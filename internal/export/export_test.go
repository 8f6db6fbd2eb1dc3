package export

import (
	"bytes"
	"image/gif"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/vipor/internal/figure"
	"github.com/san-kum/vipor/internal/viz"
)

func lineFigure() *figure.Figure {
	return &figure.Figure{
		Name:   "rz",
		Title:  "Orbit in the meridional plane",
		XLabel: "R [kpc]",
		YLabel: "z [kpc]",
		Series: []figure.Series{{Style: figure.Line, X: []float64{1, 2, 3, 4}, Y: []float64{0, 1, 0, -1}}},
	}
}

func cubeFigure() figure.Figure {
	lim := figure.Range{Min: -10, Max: 10}
	return figure.Figure{
		Name:   "xyz",
		XLabel: "x", YLabel: "y", ZLabel: "z",
		Series: []figure.Series{{X: []float64{-5, 0, 5}, Y: []float64{0, 5, 0}, Z: []float64{1, 2, 3}}},
		XRange: lim, YRange: lim, ZRange: lim,
	}
}

func TestSVG(t *testing.T) {
	tests := []struct {
		name string
		fig  *figure.Figure
	}{
		{"line", lineFigure()},
		{"scatter", &figure.Figure{Series: []figure.Series{{Style: figure.Scatter, X: []float64{0, 1}, Y: []float64{1, 0}}}}},
		{"3d", func() *figure.Figure { f := cubeFigure(); return &f }()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := SVG(tt.fig, nil)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Contains(out, []byte("<svg")) {
				t.Errorf("output is not SVG: %.80s", out)
			}
		})
	}
}

func TestPlotSkipsNonFinite(t *testing.T) {
	fig := lineFigure()
	fig.Series[0].Y[1] = math.NaN()
	if _, err := Plot(fig, nil); err != nil {
		t.Fatalf("Plot with a NaN sample: %v", err)
	}
}

func TestSaveFigure(t *testing.T) {
	dir := t.TempDir()
	for _, ext := range []string{"svg", "png"} {
		path := filepath.Join(dir, "figs", FileName("rz", ext))
		if err := SaveFigure(lineFigure(), path); err != nil {
			t.Fatalf("SaveFigure(%s): %v", ext, err)
		}
		if fi, err := os.Stat(path); err != nil || fi.Size() == 0 {
			t.Errorf("%s not written: %v", path, err)
		}
	}
}

func TestContour(t *testing.T) {
	ct := &figure.Contour{
		Name:   "contour",
		X:      []float64{0, 1, 2},
		Y:      []float64{0, 1, 2},
		Values: [][]float64{{0, 1, 2}, {1, 2, 3}, {2, 3, 4}},
		Levels: 3,
	}
	out, err := ContourSVG(ct)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(out, []byte("<svg")) {
		t.Error("contour output is not SVG")
	}

	flat := &figure.Contour{X: []float64{0, 1}, Y: []float64{0, 1}, Values: [][]float64{{1, 1}, {1, 1}}}
	if _, err := ContourSVG(flat); err != nil {
		t.Errorf("constant field: %v", err)
	}

	if _, err := ContourPlot(&figure.Contour{X: []float64{0}, Y: []float64{0}, Values: [][]float64{{0}}}); err == nil {
		t.Error("1x1 grid accepted")
	}
}

func TestWriteGIF(t *testing.T) {
	anims := []*figure.Animation{
		{Name: "orbit2d", Kind: figure.Orbit2D, Panels: []figure.Figure{*lineFigure(), *lineFigure()}, Frames: []int{0, 2, 3}},
		{Name: "orbit3d", Kind: figure.Orbit3D, Panels: []figure.Figure{cubeFigure()}, Frames: []int{1, 2}, Azimuth: []float64{0, 180}},
	}
	for _, anim := range anims {
		t.Run(anim.Name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteGIF(&buf, anim); err != nil {
				t.Fatal(err)
			}
			g, err := gif.DecodeAll(&buf)
			if err != nil {
				t.Fatal(err)
			}
			if len(g.Image) != len(anim.Frames) {
				t.Errorf("frames = %d, want %d", len(g.Image), len(anim.Frames))
			}
			// 4 inch panels at 96 dpi.
			want := 384 * len(anim.Panels)
			if got := g.Image[0].Bounds().Dx(); got != want {
				t.Errorf("frame width = %d, want %d", got, want)
			}
		})
	}

	if err := WriteGIF(&bytes.Buffer{}, &figure.Animation{Name: "empty"}); err == nil {
		t.Error("empty animation encoded")
	}
}

func TestWriteHTML(t *testing.T) {
	anim := &figure.Animation{Name: "orbit2d", Title: "Orbit <2D>", Kind: figure.Orbit2D, Panels: []figure.Figure{*lineFigure()}, Frames: []int{3}}
	var buf bytes.Buffer
	if err := WriteHTML(&buf, anim); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, `src="data:image/gif;base64,R0lGOD`) {
		t.Errorf("no inline GIF in %.120s", out)
	}
	if !strings.Contains(out, "Orbit &lt;2D&gt;") {
		t.Error("title not escaped")
	}
}

func TestCanvasSVG(t *testing.T) {
	c := viz.NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	out := CanvasSVG(c, 2, viz.ThemePaper)
	if n := strings.Count(out, "<circle"); n != 2 {
		t.Errorf("circles = %d, want 2", n)
	}
	if !strings.Contains(out, `width="8" height="8"`) {
		t.Errorf("unexpected size in %.200s", out)
	}
	if CanvasSVG(nil, 1, viz.ThemePaper) != "" {
		t.Error("nil canvas produced output")
	}
}
