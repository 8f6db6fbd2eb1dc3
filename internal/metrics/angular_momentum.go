package metrics

import (
	"math"

	"github.com/san-kum/vipor/internal/dynamo"
)

// LzDrift is the largest change of the z angular momentum relative to the
// initial |Lz| + 1e-12. It stays at integration noise only in axisymmetric
// potentials.
type LzDrift struct {
	name    string
	initial float64
	maxDiff float64
	samples int
}

func NewLzDrift() *LzDrift {
	return &LzDrift{name: "lz_drift"}
}

func (l *LzDrift) Name() string { return l.name }

func (l *LzDrift) Observe(x dynamo.State, t float64) {
	if len(x) < 6 {
		return
	}
	lz := x[0]*x[4] - x[1]*x[3]
	if l.samples == 0 {
		l.initial = lz
	}
	l.samples++
	l.maxDiff = math.Max(l.maxDiff, math.Abs(lz-l.initial))
}

func (l *LzDrift) Value() float64 {
	return l.maxDiff / (math.Abs(l.initial) + 1e-12)
}

func (l *LzDrift) Reset() {
	l.initial = 0
	l.maxDiff = 0
	l.samples = 0
}
