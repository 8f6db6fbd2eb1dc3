package metrics

import (
	"math"

	"github.com/san-kum/vipor/internal/dynamo"
)

// Bound is the fraction of samples that stay within a galactocentric radius
// threshold, in the state's length unit.
type Bound struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewBound(threshold float64) *Bound {
	return &Bound{
		name:      "bound_fraction",
		threshold: threshold,
	}
}

func (s *Bound) Name() string {
	return s.name
}

func (s *Bound) Observe(x dynamo.State, t float64) {
	s.samples++
	if len(x) < 3 {
		return
	}
	if math.Sqrt(x[0]*x[0]+x[1]*x[1]+x[2]*x[2]) > s.threshold {
		s.violations++
	}
}

func (s *Bound) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Bound) Reset() {
	s.violations = 0
	s.samples = 0
}

// MaxRadius is the largest galactocentric radius reached.
type MaxRadius struct {
	max float64
}

func NewMaxRadius() *MaxRadius { return &MaxRadius{} }

func (m *MaxRadius) Name() string { return "max_radius" }

func (m *MaxRadius) Observe(x dynamo.State, t float64) {
	if len(x) < 3 {
		return
	}
	m.max = math.Max(m.max, math.Sqrt(x[0]*x[0]+x[1]*x[1]+x[2]*x[2]))
}

func (m *MaxRadius) Value() float64 { return m.max }

func (m *MaxRadius) Reset() { m.max = 0 }
