package potential

import (
	"math"
	"sync"

	"github.com/san-kum/vipor/internal/dynamo"
)

// NewMiyamotoNagai has Phi = -amp / sqrt(R^2 + (a + sqrt(z^2 + b^2))^2).
func NewMiyamotoNagai(amp, a, b float64) (Potential, error) {
	if a < 0 || b < 0 {
		return nil, domainErr("miyamoto-nagai", "scales (%g, %g) must be non-negative", a, b)
	}
	return &axisymmetric{
		name: "Miyamoto-Nagai",
		phi: func(R, z float64) float64 {
			s := a + math.Sqrt(z*z+b*b)
			return -amp / math.Sqrt(R*R+s*s)
		},
		force: func(R, z float64) (float64, float64) {
			zb := math.Sqrt(z*z + b*b)
			s := a + zb
			d3 := math.Pow(R*R+s*s, 1.5)
			fR := -amp * R / d3
			if zb == 0 {
				return fR, 0
			}
			return fR, -amp * z * s / (zb * d3)
		},
	}, nil
}

const (
	diskPanelNodes = 8
	diskMaxPanels  = 4000
	// Hankel integrals are cut at diskKmax / hr.
	diskKmax = 40.0

	// Tabulated region, in scale lengths, and its resolution.
	diskTableExtent = 40.0
	diskTableNodes  = 96
)

// DoubleExponentialDisk has density amp exp(-R/hr - |z|/hz). Phi and
// forces are Hankel integrals; Phi and Force read them from a table built on
// first use and fall back to the monopole outside it.
type DoubleExponentialDisk struct {
	amp, hr, hz float64
	beta        float64
	mass        float64
	nodes, wts  []float64

	once  sync.Once
	table *diskTable
}

func NewDoubleExponentialDisk(amp, hr, hz float64) (*DoubleExponentialDisk, error) {
	if hr <= 0 || hz <= 0 {
		return nil, domainErr("double exponential disk", "scales (%g, %g) must be positive", hr, hz)
	}
	nodes, wts := legendre(diskPanelNodes, 0, 1)
	return &DoubleExponentialDisk{
		amp:   amp,
		hr:    hr,
		hz:    hz,
		beta:  1 / hz,
		mass:  4 * math.Pi * amp * hr * hr * hz,
		nodes: nodes,
		wts:   wts,
	}, nil
}

func (d *DoubleExponentialDisk) Name() string { return "Double Exponential Disk" }

// Mass is the total disk mass.
func (d *DoubleExponentialDisk) Mass() float64 { return d.mass }

func (d *DoubleExponentialDisk) Phi(x, y, z, t float64) float64 {
	phi, _, _ := d.eval(math.Hypot(x, y), z)
	return phi
}

func (d *DoubleExponentialDisk) Force(x, y, z, t float64) (float64, float64, float64) {
	R := math.Hypot(x, y)
	_, fR, fz := d.eval(R, z)
	if R == 0 {
		return 0, 0, fz
	}
	return fR * x / R, fR * y / R, fz
}

func (d *DoubleExponentialDisk) eval(R, z float64) (phi, fR, fz float64) {
	d.once.Do(d.buildTable)
	if v, ok := d.table.lookup(R, z); ok {
		return v[0], v[1], v[2]
	}
	r2 := R*R + z*z
	r := math.Sqrt(r2)
	f := -d.mass / (r2 * r)
	return -d.mass / r, f * R, f * z
}

// direct evaluates the Hankel integrals for Phi, F_R and F_z.
func (d *DoubleExponentialDisk) direct(R, z float64) (phi, fR, fz float64) {
	a, beta := d.hr, d.beta
	az := math.Abs(z)
	kmax := diskKmax / a
	h := kmax / 64
	if R > 0 && math.Pi/R < h {
		h = math.Pi / R
	}
	panels := int(math.Ceil(kmax / h))
	if panels > diskMaxPanels {
		panels = diskMaxPanels
		h = kmax / float64(panels)
	}

	eb := math.Exp(-beta * az)
	var sPhi, sR, sZ float64
	for p := 0; p < panels; p++ {
		lo := float64(p) * h
		for i, u := range d.nodes {
			k := lo + u*h
			w := d.wts[i] * h * math.Pow(1+k*k*a*a, -1.5)
			ek := math.Exp(-k * az)
			den := beta*beta - k*k
			var g, dg float64
			if math.Abs(den) < 1e-8*beta*beta {
				g = (1 + beta*az) * eb / beta
				dg = -beta * az * eb
			} else {
				g = 2 * (beta*ek - k*eb) / den
				dg = 2 * k * beta * (eb - ek) / den
			}
			j0 := math.J0(k * R)
			sPhi += w * j0 * g
			sR += w * k * math.J1(k*R) * g
			sZ += w * j0 * dg
		}
	}

	c := 2 * math.Pi * d.amp * a * a
	phi = -c * sPhi
	fR = -c * sR
	fz = c * sZ
	if z < 0 {
		fz = -fz
	}
	return phi, fR, fz
}

func (d *DoubleExponentialDisk) buildTable() {
	d.table = newDiskTable(d.hr/2, d.hz/2, diskTableExtent*math.Max(d.hr, d.hz), diskTableNodes, d.direct)
}

// diskTable holds (Phi, F_R, F_z) on a grid uniform in asinh(R/sR) and
// asinh(|z|/sz), interpolated bilinearly.
type diskTable struct {
	sR, sz       float64
	qRmax, qzmax float64
	n            int
	vals         [][3]float64
}

func newDiskTable(sR, sz, extent float64, n int, f func(R, z float64) (float64, float64, float64)) *diskTable {
	t := &diskTable{
		sR:    sR,
		sz:    sz,
		qRmax: math.Asinh(extent / sR),
		qzmax: math.Asinh(extent / sz),
		n:     n,
		vals:  make([][3]float64, n*n),
	}
	dynamo.ParallelFor(n, 4, func(start, end int) {
		for i := start; i < end; i++ {
			R := sR * math.Sinh(t.qRmax*float64(i)/float64(n-1))
			for j := 0; j < n; j++ {
				z := sz * math.Sinh(t.qzmax*float64(j)/float64(n-1))
				p, fR, fz := f(R, z)
				t.vals[i*n+j] = [3]float64{p, fR, fz}
			}
		}
	})
	return t
}

func (t *diskTable) lookup(R, z float64) ([3]float64, bool) {
	qR := math.Asinh(R/t.sR) / t.qRmax * float64(t.n-1)
	qz := math.Asinh(math.Abs(z)/t.sz) / t.qzmax * float64(t.n-1)
	last := float64(t.n - 1)
	if qR > last || qz > last {
		return [3]float64{}, false
	}

	i := int(math.Min(qR, last-1))
	j := int(math.Min(qz, last-1))
	fr, fz := qR-float64(i), qz-float64(j)
	v00, v01 := t.vals[i*t.n+j], t.vals[i*t.n+j+1]
	v10, v11 := t.vals[(i+1)*t.n+j], t.vals[(i+1)*t.n+j+1]

	var out [3]float64
	for c := range out {
		out[c] = (1-fr)*(1-fz)*v00[c] + (1-fr)*fz*v01[c] + fr*(1-fz)*v10[c] + fr*fz*v11[c]
	}
	if z < 0 {
		out[2] = -out[2]
	}
	return out, true
}
