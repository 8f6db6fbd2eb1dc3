package potential

import (
	"math"

	"github.com/san-kum/vipor/internal/dynamo"
)

// Vc2 is R times the inward radial force at (R, 0, z). It is negative where
// the net radial force points outwards.
func Vc2(p Potential, R, z float64) float64 {
	fR, _, _ := p.Force(R, 0, z, 0)
	return -R * fR
}

// Vc is the circular velocity at (R, 0, z), NaN where no circular orbit
// exists.
func Vc(p Potential, R, z float64) float64 {
	v2 := Vc2(p, R, z)
	if v2 < 0 {
		return math.NaN()
	}
	return math.Sqrt(v2)
}

// RotationCurve evaluates Vc in the plane at every radius.
func RotationCurve(p Potential, radii []float64) []float64 {
	out := make([]float64, len(radii))
	dynamo.ParallelFor(len(radii), 64, func(start, end int) {
		for i := start; i < end; i++ {
			out[i] = Vc(p, radii[i], 0)
		}
	})
	return out
}

// PhiGrid evaluates Phi on an (R, z) grid in the meridional plane at
// azimuth phi. The result is indexed [iz][iR].
func PhiGrid(p Potential, radii, heights []float64, phi, t float64) [][]float64 {
	grid := make([][]float64, len(heights))
	c, s := math.Cos(phi), math.Sin(phi)
	dynamo.ParallelFor(len(heights), 1, func(start, end int) {
		for j := start; j < end; j++ {
			row := make([]float64, len(radii))
			for i, R := range radii {
				row[i] = p.Phi(R*c, R*s, heights[j], t)
			}
			grid[j] = row
		}
	})
	return grid
}
