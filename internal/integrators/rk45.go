package integrators

import (
	"math"

	"github.com/san-kum/vipor/internal/dynamo"
)

// Dormand-Prince coefficients (RK45)
var (
	a2 = 1.0 / 5.0
	a3 = 3.0 / 10.0
	a4 = 4.0 / 5.0
	a5 = 8.0 / 9.0

	b21 = 1.0 / 5.0
	b31 = 3.0 / 40.0
	b32 = 9.0 / 40.0
	b41 = 44.0 / 45.0
	b42 = -56.0 / 15.0
	b43 = 32.0 / 9.0
	b51 = 19372.0 / 6561.0
	b52 = -25360.0 / 2187.0
	b53 = 64448.0 / 6561.0
	b54 = -212.0 / 729.0
	b61 = 9017.0 / 3168.0
	b62 = -355.0 / 33.0
	b63 = 46732.0 / 5247.0
	b64 = 49.0 / 176.0
	b65 = -5103.0 / 18656.0

	c1 = 35.0 / 384.0
	c3 = 500.0 / 1113.0
	c4 = 125.0 / 192.0
	c5 = -2187.0 / 6784.0
	c6 = 11.0 / 84.0

	dc1 = c1 - 5179.0/57600.0
	dc3 = c3 - 7571.0/16695.0
	dc4 = c4 - 393.0/640.0
	dc5 = c5 - -92097.0/339200.0
	dc6 = c6 - 187.0/2100.0
	dc7 = -1.0 / 40.0
)

// RK45 is the Dormand-Prince 5(4) pair. Step takes the fifth-order solution
// without error control; StepAdaptive rejects steps whose embedded error
// estimate exceeds the tolerance.
type RK45 struct {
	safety   float64
	minScale float64
	maxScale float64

	k [7]dynamo.State
	y dynamo.State
}

func NewRK45() *RK45 {
	return &RK45{
		safety:   0.9,
		minScale: 0.2,
		maxScale: 10.0,
	}
}

func (r *RK45) ensureScratch(n int) {
	if len(r.y) != n {
		for i := range r.k {
			r.k[i] = make(dynamo.State, n)
		}
		r.y = make(dynamo.State, n)
	}
}

func (r *RK45) Step(dyn dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	xNew, _ := r.attempt(dyn, x, t, dt)
	return xNew
}

func (r *RK45) StepAdaptive(dyn dynamo.System, x dynamo.State, t, dt, tol float64) (dynamo.State, float64, error) {
	if tol <= 0 {
		return x, dt, dynamo.ErrParameterBounds
	}
	xNew, errMax := r.attempt(dyn, x, t, dt)
	if math.IsNaN(errMax) || !xNew.IsValid() {
		return x, dt * r.minScale, dynamo.ErrStepRejected
	}

	errRatio := errMax / tol
	if errRatio > 1 {
		scale := math.Max(r.minScale, r.safety*math.Pow(errRatio, -0.25))
		return x, dt * scale, dynamo.ErrStepRejected
	}

	var dtNew float64
	if errRatio > 0 {
		dtNew = dt * math.Min(r.maxScale, r.safety*math.Pow(errRatio, -0.2))
	} else {
		dtNew = dt * r.maxScale
	}
	return xNew, dtNew, nil
}

// attempt advances x by dt and returns the new state with the largest
// scaled component of the embedded error estimate.
func (r *RK45) attempt(dyn dynamo.System, x dynamo.State, t, dt float64) (dynamo.State, float64) {
	n := len(x)
	r.ensureScratch(n)
	k1, k2, k3, k4, k5, k6 := r.k[0], r.k[1], r.k[2], r.k[3], r.k[4], r.k[5]
	y := r.y

	copy(k1, dyn.Derive(x, t))

	for i := 0; i < n; i++ {
		y[i] = x[i] + dt*b21*k1[i]
	}
	copy(k2, dyn.Derive(y, t+a2*dt))

	for i := 0; i < n; i++ {
		y[i] = x[i] + dt*(b31*k1[i]+b32*k2[i])
	}
	copy(k3, dyn.Derive(y, t+a3*dt))

	for i := 0; i < n; i++ {
		y[i] = x[i] + dt*(b41*k1[i]+b42*k2[i]+b43*k3[i])
	}
	copy(k4, dyn.Derive(y, t+a4*dt))

	for i := 0; i < n; i++ {
		y[i] = x[i] + dt*(b51*k1[i]+b52*k2[i]+b53*k3[i]+b54*k4[i])
	}
	copy(k5, dyn.Derive(y, t+a5*dt))

	for i := 0; i < n; i++ {
		y[i] = x[i] + dt*(b61*k1[i]+b62*k2[i]+b63*k3[i]+b64*k4[i]+b65*k5[i])
	}
	copy(k6, dyn.Derive(y, t+dt))

	xNew := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		xNew[i] = x[i] + dt*(c1*k1[i]+c3*k3[i]+c4*k4[i]+c5*k5[i]+c6*k6[i])
	}

	k7 := dyn.Derive(xNew, t+dt)

	errMax := 0.0
	for i := 0; i < n; i++ {
		errEst := dt * (dc1*k1[i] + dc3*k3[i] + dc4*k4[i] + dc5*k5[i] + dc6*k6[i] + dc7*k7[i])
		scale := math.Abs(x[i]) + math.Abs(dt*k1[i]) + 1e-10
		e := math.Abs(errEst) / scale
		if math.IsNaN(e) {
			return xNew, math.NaN()
		}
		errMax = math.Max(errMax, e)
	}
	return xNew, errMax
}
