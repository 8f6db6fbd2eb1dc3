package coords

import (
	"math"

	"github.com/san-kum/vipor/internal/units"
)

// Sun position and the J2000 orientation of the Galactic frame.
const (
	SunZKpc = 0.0208

	raNGPDeg  = 192.85948
	decNGPDeg = 27.12825
	lNCPDeg   = 122.93192
)

const deg = math.Pi / 180

func CylToRect(R, phi, z float64) (x, y, zz float64) {
	return R * math.Cos(phi), R * math.Sin(phi), z
}

func RectToCyl(x, y, z float64) (R, phi, zz float64) {
	return math.Hypot(x, y), math.Atan2(y, x), z
}

// CylVelToRect rotates (vR, vT) at azimuth phi into (vx, vy).
func CylVelToRect(vR, vT, phi float64) (vx, vy float64) {
	c, s := math.Cos(phi), math.Sin(phi)
	return vR*c - vT*s, vR*s + vT*c
}

func RectVelToCyl(vx, vy, phi float64) (vR, vT float64) {
	c, s := math.Cos(phi), math.Sin(phi)
	return vx*c + vy*s, -vx*s + vy*c
}

// GalactocentricToGalactic returns heliocentric Galactic longitude and
// latitude in degrees for a galactocentric position in kpc. l is in [0, 360).
func GalactocentricToGalactic(x, y, z float64) (l, b float64) {
	xg := units.R0Kpc - x
	yg := y
	zg := z - SunZKpc

	l = math.Atan2(yg, xg) / deg
	if l < 0 {
		l += 360
	}
	b = math.Atan2(zg, math.Hypot(xg, yg)) / deg
	return l, b
}

// GalacticToEquatorial converts (l, b) to J2000 (ra, dec), all in degrees.
func GalacticToEquatorial(l, b float64) (ra, dec float64) {
	lr, br := l*deg, b*deg
	dNGP := decNGPDeg * deg
	dl := lNCPDeg*deg - lr

	sinDec := math.Sin(dNGP)*math.Sin(br) + math.Cos(dNGP)*math.Cos(br)*math.Cos(dl)
	dec = math.Asin(math.Max(-1, math.Min(1, sinDec))) / deg

	y := math.Cos(br) * math.Sin(dl)
	x := math.Cos(dNGP)*math.Sin(br) - math.Sin(dNGP)*math.Cos(br)*math.Cos(dl)
	ra = math.Mod(raNGPDeg+math.Atan2(y, x)/deg, 360)
	if ra < 0 {
		ra += 360
	}
	return ra, dec
}

// GalactocentricToSky maps a galactocentric position in kpc to (ra, dec)
// in degrees as seen from the Sun.
func GalactocentricToSky(x, y, z float64) (ra, dec float64) {
	return GalacticToEquatorial(GalactocentricToGalactic(x, y, z))
}
