package potential

import (
	"math"

	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/mathext"
)

// incBetaNodes is the order of the Legendre rule used for incomplete beta
// functions that mathext cannot evaluate.
const incBetaNodes = 32

// incBeta is the unregularized incomplete beta function
// B(x; a, b) = int_0^x u^(a-1) (1-u)^(b-1) du for a > 0, any b and 0 <= x < 1.
func incBeta(a, b, x float64) float64 {
	switch {
	case x <= 0:
		return 0
	case b > 0 && x >= 1:
		return mathext.Beta(a, b)
	case b > 0:
		return mathext.Beta(a, b) * mathext.RegIncBeta(a, b, x)
	case x >= 1:
		return math.Inf(1)
	}

	// Split at 1/2. Below it, for a < 1, w = u^a removes the singularity at
	// the origin; above it u = 1 - exp(-v) tames the growth of (1-u)^(b-1).
	lo := math.Min(x, 0.5)
	var sum float64
	if a < 1 {
		sum = quad.Fixed(func(w float64) float64 {
			return math.Pow(1-math.Pow(w, 1/a), b-1) / a
		}, 0, math.Pow(lo, a), incBetaNodes, quad.Legendre{}, 0)
	} else {
		sum = quad.Fixed(func(u float64) float64 {
			return math.Pow(u, a-1) * math.Pow(1-u, b-1)
		}, 0, lo, incBetaNodes, quad.Legendre{}, 0)
	}

	if x > 0.5 {
		sum += quad.Fixed(func(v float64) float64 {
			return math.Pow(-math.Expm1(-v), a-1) * math.Exp(-v*b)
		}, math.Ln2, -math.Log1p(-x), incBetaNodes, quad.Legendre{}, 0)
	}
	return sum
}

// legendre returns n Gauss-Legendre nodes and weights on [min, max].
func legendre(n int, min, max float64) (x, w []float64) {
	x = make([]float64, n)
	w = make([]float64, n)
	quad.Legendre{}.FixedLocations(x, w, min, max)
	return x, w
}
