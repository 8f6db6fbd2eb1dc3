package viz

import (
	"math"
	"sort"

	"github.com/charmbracelet/harmonica"
)

type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Length() float64      { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

// Camera looks at the origin from azimuth and elevation given in degrees,
// the way a 3D axes view is usually described. Azimuth is measured from the
// x axis towards y, elevation up from the xy plane.
type Camera struct {
	Azimuth   float64
	Elevation float64
	Zoom      float64

	// Eased targets; Step moves the view towards them.
	targetAz, targetEl float64
	velAz, velEl       float64
	spring             harmonica.Spring
}

// Default view of the 3D orbit figures.
const (
	DefaultAzimuth   = -60.0
	DefaultElevation = 30.0
)

func NewCamera() *Camera {
	return &Camera{
		Azimuth:   DefaultAzimuth,
		Elevation: DefaultElevation,
		Zoom:      1,
		targetAz:  DefaultAzimuth,
		targetEl:  DefaultElevation,
		spring:    harmonica.NewSpring(harmonica.FPS(30), 6.0, 0.8),
	}
}

// Orbit turns the camera target by the given degrees. Elevation is held
// within ±90.
func (c *Camera) Orbit(dAz, dEl float64) {
	c.targetAz += dAz
	c.targetEl = math.Max(-90, math.Min(90, c.targetEl+dEl))
}

// LookAt sets the target view directly.
func (c *Camera) LookAt(az, el float64) {
	c.targetAz = az
	c.targetEl = math.Max(-90, math.Min(90, el))
}

func (c *Camera) ZoomIn()  { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut() { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

// Step advances the spring easing by one frame and reports whether the
// view is still moving.
func (c *Camera) Step() bool {
	c.Azimuth, c.velAz = c.spring.Update(c.Azimuth, c.velAz, c.targetAz)
	c.Elevation, c.velEl = c.spring.Update(c.Elevation, c.velEl, c.targetEl)
	moving := math.Abs(c.Azimuth-c.targetAz) > 1e-3 || math.Abs(c.Elevation-c.targetEl) > 1e-3
	if !moving {
		c.Azimuth, c.Elevation = c.targetAz, c.targetEl
		c.velAz, c.velEl = 0, 0
	}
	return moving
}

// Project maps p to view coordinates: u to the right, v up and depth
// towards the viewer. Lengths are preserved before zoom.
func (c *Camera) Project(p Vec3) (u, v, depth float64) {
	az := c.Azimuth * math.Pi / 180
	el := c.Elevation * math.Pi / 180
	sa, ca := math.Sin(az), math.Cos(az)
	se, ce := math.Sin(el), math.Cos(el)

	u = -sa*p.X + ca*p.Y
	v = -se*ca*p.X - se*sa*p.Y + ce*p.Z
	depth = ce*ca*p.X + ce*sa*p.Y + se*p.Z
	zoom := c.Zoom
	if zoom == 0 {
		zoom = 1
	}
	return u * zoom, v * zoom, depth
}

type Edge struct {
	Start, End Vec3
}

type Wireframe struct{ Edges []Edge }

func (w *Wireframe) AddEdge(s, e Vec3) { w.Edges = append(w.Edges, Edge{s, e}) }

// BoxWireframe is the cube [-s, s]^3 with the three axes through its
// centre.
func BoxWireframe(s float64) *Wireframe {
	w := &Wireframe{}
	v := []Vec3{{-s, -s, -s}, {s, -s, -s}, {s, s, -s}, {-s, s, -s}, {-s, -s, s}, {s, -s, s}, {s, s, s}, {-s, s, s}}
	for _, e := range [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}, {4, 5}, {5, 6}, {6, 7}, {7, 4}, {0, 4}, {1, 5}, {2, 6}, {3, 7}} {
		w.AddEdge(v[e[0]], v[e[1]])
	}
	w.AddEdge(Vec3{-s, 0, 0}, Vec3{s, 0, 0})
	w.AddEdge(Vec3{0, -s, 0}, Vec3{0, s, 0})
	w.AddEdge(Vec3{0, 0, -s}, Vec3{0, 0, s})
	return w
}

// Render3D draws the wireframe far edges first. vp maps view coordinates
// to dots.
func Render3D(c *Canvas, w *Wireframe, cam *Camera, vp Viewport) {
	if c == nil || w == nil || cam == nil {
		return
	}
	type projected struct {
		x1, y1, x2, y2 int
		depth          float64
	}
	edges := make([]projected, 0, len(w.Edges))
	for _, e := range w.Edges {
		u1, v1, d1 := cam.Project(e.Start)
		u2, v2, d2 := cam.Project(e.End)
		x1, y1, ok1 := vp.Map(u1, v1)
		x2, y2, ok2 := vp.Map(u2, v2)
		if ok1 && ok2 {
			edges = append(edges, projected{x1, y1, x2, y2, (d1 + d2) / 2})
		}
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i].depth < edges[j].depth })
	for _, e := range edges {
		c.DrawLine(e.x1, e.y1, e.x2, e.y2)
	}
}
