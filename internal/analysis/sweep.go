package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/san-kum/vipor/internal/orbit"
	"github.com/san-kum/vipor/internal/potential"
)

// SweepPoint collects the midplane crossing radii of one orbit for one
// parameter value.
type SweepPoint struct {
	Param float64
	Radii []float64
}

// SectionSweep integrates the same initial conditions in a family of
// potentials and records where each orbit crosses the midplane. Regular
// orbits cross at a few radii; chaotic ones smear over an interval.
func SectionSweep(
	ctx context.Context,
	params []float64,
	build func(p float64) (potential.Potential, error),
	ic orbit.InitialConditions,
	years float64,
	opts orbit.Options,
) ([]SweepPoint, error) {
	results := make([]SweepPoint, 0, len(params))
	for _, p := range params {
		pot, err := build(p)
		if err != nil {
			return results, fmt.Errorf("parameter %g: %w", p, err)
		}
		tr, _, err := orbit.Integrate(ctx, pot, ic, years, opts)
		if err != nil {
			return results, fmt.Errorf("parameter %g: %w", p, err)
		}

		sec := Section(tr)
		radii := make([]float64, len(sec.Points))
		for i, pt := range sec.Points {
			radii[i] = pt.X
		}
		results = append(results, SweepPoint{Param: p, Radii: radii})
	}
	return results, nil
}

// SweepToASCII plots crossing radius against parameter, one column per
// parameter value.
func SweepToASCII(data []SweepPoint, width, height int) string {
	if len(data) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	var minVal, maxVal float64
	found := false
	for _, p := range data {
		for _, v := range p.Radii {
			if !found {
				minVal, maxVal = v, v
				found = true
				continue
			}
			minVal = min(minVal, v)
			maxVal = max(maxVal, v)
		}
	}
	if !found {
		return ""
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}
	for i, p := range data {
		col := min(i*width/len(data), width-1)
		for _, v := range p.Radii {
			row := height - 1 - int((v-minVal)/(maxVal-minVal)*float64(height-1))
			if row >= 0 && row < height {
				canvas[row][col] = '•'
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
