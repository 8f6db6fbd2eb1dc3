package viz

import (
	"math"
	"strings"

	"github.com/san-kum/vipor/internal/figure"
)

const brailleBlank = 0x2800

// Dot bits of a braille cell, indexed [row][col] within the 2x4 cell.
var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a grid of braille cells. Each cell holds 2x4 dots, so a canvas
// of Width x Height cells has 2*Width x 4*Height addressable dots with the
// origin at the top left.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	w, h = max(w, 1), max(h, 1)
	c := &Canvas{Width: w, Height: h, Grid: make([][]rune, h)}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Dots is the canvas size in dots.
func (c *Canvas) Dots() (w, h int) { return 2 * c.Width, 4 * c.Height }

func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 || x >= 2*c.Width || y >= 4*c.Height {
		return
	}
	c.Grid[y/4][x/2] |= dotBits[y%4][x%2]
}

// IsSet reports whether the dot at (x, y) is lit.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x >= 2*c.Width || y >= 4*c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&dotBits[y%4][x%2] != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// DrawLine lights the dots between two points with Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx, dy := absInt(x1-x0), absInt(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy
	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Viewport maps data coordinates onto the dots of a canvas.
type Viewport struct {
	X, Y figure.Range
	W, H int
}

func (c *Canvas) Viewport(x, y figure.Range) Viewport {
	w, h := c.Dots()
	return Viewport{X: x, Y: y, W: w, H: h}
}

// Map returns the dot for data point (x, y). ok is false for non-finite
// input; points outside the ranges map outside the canvas.
func (v Viewport) Map(x, y float64) (px, py int, ok bool) {
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return 0, 0, false
	}
	fx := (x - v.X.Min) / (v.X.Max - v.X.Min)
	fy := (y - v.Y.Min) / (v.Y.Max - v.Y.Min)
	px = int(math.Round(fx * float64(v.W-1)))
	py = int(math.Round((1 - fy) * float64(v.H-1)))
	return px, py, true
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
