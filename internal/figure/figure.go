// Package figure holds plot data independent of any backend. Renderers
// produce these values; export writes them with gonum/plot and viz draws
// them in the terminal.
package figure

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

type Style int

const (
	Line Style = iota
	Scatter
)

// Series is one curve or point cloud. Z is nil for 2D series.
type Series struct {
	Label string
	Style Style
	X     []float64
	Y     []float64
	Z     []float64
}

// Len is the number of points, clipped to the shortest coordinate slice.
func (s Series) Len() int {
	n := min(len(s.X), len(s.Y))
	if s.Z != nil {
		n = min(n, len(s.Z))
	}
	return n
}

// Range is a closed axis interval. The zero value means autoscale.
type Range struct {
	Min, Max float64
}

func (r Range) IsAuto() bool { return r.Min == 0 && r.Max == 0 }

type Figure struct {
	Name   string
	Title  string
	XLabel string
	YLabel string
	ZLabel string
	Series []Series

	// Fixed limits; zero ranges autoscale.
	XRange, YRange, ZRange Range
}

func (f *Figure) Is3D() bool {
	for _, s := range f.Series {
		if s.Z != nil {
			return true
		}
	}
	return false
}

// Bounds returns the data extent of axis 0 (x), 1 (y) or 2 (z) over all
// series, ignoring non-finite values. Fixed limits take precedence.
func (f *Figure) Bounds(axis int) Range {
	fixed := [3]Range{f.XRange, f.YRange, f.ZRange}[axis]
	if !fixed.IsAuto() {
		return fixed
	}

	r := Range{Min: math.Inf(1), Max: math.Inf(-1)}
	for _, s := range f.Series {
		vals := [3][]float64{s.X, s.Y, s.Z}[axis]
		for _, v := range vals[:min(len(vals), s.Len())] {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			r.Min = math.Min(r.Min, v)
			r.Max = math.Max(r.Max, v)
		}
	}
	if math.IsInf(r.Min, 1) {
		return Range{Min: -1, Max: 1}
	}
	if r.Min == r.Max {
		pad := math.Max(math.Abs(r.Min)*0.1, 1)
		r.Min -= pad
		r.Max += pad
	}
	return r
}

// Contour is a scalar field sampled on a rectilinear grid. Values is indexed
// [row][col], rows along Y.
type Contour struct {
	Name   string
	Title  string
	XLabel string
	YLabel string
	X      []float64
	Y      []float64
	Values [][]float64
	Levels int
}

func (c *Contour) Dims() (cols, rows int) { return len(c.X), len(c.Y) }
func (c *Contour) Z(col, row int) float64 { return c.Values[row][col] }
func (c *Contour) XAt(col int) float64    { return c.X[col] }
func (c *Contour) YAt(row int) float64    { return c.Y[row] }

// ValueRange returns the smallest and largest grid value.
func (c *Contour) ValueRange() (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, row := range c.Values {
		if len(row) == 0 {
			continue
		}
		lo = math.Min(lo, floats.Min(row))
		hi = math.Max(hi, floats.Max(row))
	}
	return lo, hi
}

// LevelValues spreads Levels contour levels evenly between the extremes,
// excluding both ends.
func (c *Contour) LevelValues() []float64 {
	n := c.Levels
	if n < 1 {
		n = 10
	}
	lo, hi := c.ValueRange()
	levels := make([]float64, n)
	for i := range levels {
		levels[i] = lo + (hi-lo)*float64(i+1)/float64(n+1)
	}
	return levels
}

type AnimationKind string

const (
	Orbit2D AnimationKind = "orbit2d"
	Orbit3D AnimationKind = "orbit3d"
)

// Animation replays a trajectory. Each frame shows every panel's series up
// to sample Frames[i] with a marker at that sample. For 3D panels the camera
// azimuth of frame i is Azimuth[i] degrees.
type Animation struct {
	Name    string
	Title   string
	Kind    AnimationKind
	Panels  []Figure
	Frames  []int
	Azimuth []float64
}

// FrameIndices picks n sample indices spread evenly over samples, ending on
// the last one.
func FrameIndices(samples, n int) []int {
	if samples <= 0 || n <= 0 {
		return nil
	}
	if n > samples {
		n = samples
	}
	idx := make([]int, n)
	for i := range idx {
		if n == 1 {
			idx[i] = samples - 1
			continue
		}
		idx[i] = int(math.Round(float64(i) * float64(samples-1) / float64(n-1)))
	}
	return idx
}
