package analysis

import (
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/vipor/internal/orbit"
)

type Point struct{ X, Y float64 }

// PhasePortrait2D is a pair of projected coordinates of one orbit.
type PhasePortrait2D struct {
	XLabel, YLabel string
	Points         []Point
}

// NewPhasePortrait pairs xs with ys, truncating to the shorter series.
func NewPhasePortrait(xLabel, yLabel string, xs, ys []float64) *PhasePortrait2D {
	n := min(len(xs), len(ys))
	p := &PhasePortrait2D{XLabel: xLabel, YLabel: yLabel, Points: make([]Point, n)}
	for i := 0; i < n; i++ {
		p.Points[i] = Point{X: xs[i], Y: ys[i]}
	}
	return p
}

// RadialPortrait is the (R, vR) projection of a trajectory.
func RadialPortrait(tr *orbit.Trajectory) *PhasePortrait2D {
	return NewPhasePortrait("R [kpc]", "vR [km/s]", tr.R(), tr.VR())
}

// PhasePortraitToASCII draws the points on a width by height character grid
// with 10% padding and the axes where they are in view.
func PhasePortraitToASCII(portrait *PhasePortrait2D, width, height int) string {
	if portrait == nil || len(portrait.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	xs := make([]float64, len(portrait.Points))
	ys := make([]float64, len(portrait.Points))
	for i, p := range portrait.Points {
		xs[i], ys[i] = p.X, p.Y
	}
	minX, maxX := floats.Min(xs), floats.Max(xs)
	minY, maxY := floats.Min(ys), floats.Max(ys)

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	for _, p := range portrait.Points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Y-minY)/rangeY*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if canvas[row][col] == ' ' {
				canvas[row][col] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if canvas[row][col] == ' ' {
				canvas[row][col] = '─'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}

// SurfaceOfSection holds (R, vR) where the orbit crosses the midplane
// going upwards.
type SurfaceOfSection struct {
	Points []Point
	Times  []float64
}

// Section finds upward z = 0 crossings between samples and interpolates R,
// vR and the time linearly to the crossing.
func Section(tr *orbit.Trajectory) *SurfaceOfSection {
	z := tr.Z()
	R := tr.R()
	vR := tr.VR()

	s := &SurfaceOfSection{}
	for i := 1; i < len(z); i++ {
		if !(z[i-1] < 0 && z[i] >= 0) {
			continue
		}
		f := -z[i-1] / (z[i] - z[i-1])
		s.Points = append(s.Points, Point{
			X: R[i-1] + f*(R[i]-R[i-1]),
			Y: vR[i-1] + f*(vR[i]-vR[i-1]),
		})
		s.Times = append(s.Times, tr.Times[i-1]+f*(tr.Times[i]-tr.Times[i-1]))
	}
	return s
}

func SectionToASCII(section *SurfaceOfSection, width, height int) string {
	if section == nil || len(section.Points) == 0 {
		return "No midplane crossings"
	}
	return PhasePortraitToASCII(&PhasePortrait2D{Points: section.Points}, width, height)
}
