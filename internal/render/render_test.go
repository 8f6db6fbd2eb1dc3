package render_test

import (
	"context"
	"fmt"
	"math"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/vipor/internal/catalog"
	"github.com/san-kum/vipor/internal/config"
	"github.com/san-kum/vipor/internal/dynamo"
	"github.com/san-kum/vipor/internal/figure"
	"github.com/san-kum/vipor/internal/orbit"
	"github.com/san-kum/vipor/internal/potential"
	"github.com/san-kum/vipor/internal/render"
)

func TestRender(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Render Suite")
}

func profile(name string) config.Profile {
	p, err := config.DefaultConfig().Profile(name)
	Expect(err).NotTo(HaveOccurred())
	return p
}

func allFinite(values [][]float64) bool {
	for _, row := range values {
		for _, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}

var _ = Describe("Render", func() {
	ctx := context.Background()
	start := orbit.InitialConditions{R: 10, Z: 5}

	Context("a homogeneous sphere of radius 10 kpc over 14 Gyr", func() {
		var res *render.Result

		BeforeEach(func() {
			pot, err := catalog.Build(catalog.HomogeneousSphere, []float64{10}, catalog.Options{})
			Expect(err).NotTo(HaveOccurred())
			res, err = render.Render(ctx, pot, 14, start, profile("spherical-2d"))
			Expect(err).NotTo(HaveOccurred())
		})

		It("samples 3001 times", func() {
			Expect(res.Trajectory.Len()).To(Equal(3001))
			Expect(res.Trajectory.Times[3000]).To(BeNumerically("~", 14, 1e-9))
		})

		It("produces the four 2D projections and both animations", func() {
			names := []string{}
			for _, f := range res.Figures2D {
				names = append(names, f.Name)
			}
			Expect(names).To(Equal([]string{"rz", "radec", "rvr", "xy"}))
			Expect(res.Figures3D).To(BeEmpty())
			Expect(res.Animations).To(HaveLen(2))
			Expect(res.Animations[0].Kind).To(Equal(figure.Orbit2D))
			Expect(res.Animations[0].Panels).To(HaveLen(2))
			Expect(res.Animations[0].Frames).To(HaveLen(config.DefaultFrames))
			Expect(res.Animations[1].Azimuth).To(HaveLen(config.DefaultFrames))
		})

		It("samples a finite 21 by 21 contour", func() {
			Expect(res.Contour).NotTo(BeNil())
			cols, rows := res.Contour.Dims()
			Expect(cols).To(Equal(21))
			Expect(rows).To(Equal(21))
			Expect(allFinite(res.Contour.Values)).To(BeTrue())
		})

		It("records orbit metrics", func() {
			Expect(res.Metrics).To(HaveKey("energy_drift"))
			Expect(res.Metrics["energy_drift"]).To(BeNumerically("<", 1e-4))
			Expect(res.Metrics["max_radius_kpc"]).To(BeNumerically(">=", math.Hypot(10, 5)-1e-6))
		})
	})

	It("is deterministic", func() {
		pot, err := potential.NewPlummer(1, 0.5)
		Expect(err).NotTo(HaveOccurred())
		p := profile("spherical-3d")
		p.Samples = 301

		a, err := render.Render(ctx, pot, 2, start, p)
		Expect(err).NotTo(HaveOccurred())
		b, err := render.Render(ctx, pot, 2, start, p)
		Expect(err).NotTo(HaveOccurred())
		Expect(a.Trajectory.States).To(Equal(b.Trajectory.States))
		Expect(a.Figures3D).To(HaveLen(3))
		Expect(a.Figures3D[0].XRange).To(Equal(figure.Range{Min: -100, Max: 100}))
	})

	It("repeats the initial state for a zero duration", func() {
		pot, _ := potential.NewPlummer(1, 0.5)
		p := profile("spherical-2d")
		p.Samples = 11
		res, err := render.Render(ctx, pot, 0, start, p)
		Expect(err).NotTo(HaveOccurred())
		for _, x := range res.Trajectory.States {
			Expect(x).To(Equal(res.Trajectory.States[0]))
		}
	})

	It("rejects a negative duration", func() {
		pot, _ := potential.NewPlummer(1, 0.5)
		_, err := render.Render(ctx, pot, -1, start, profile("spherical-2d"))
		Expect(err).To(MatchError(dynamo.ErrParameterBounds))
	})

	It("rejects an invalid profile", func() {
		pot, _ := potential.NewPlummer(1, 0.5)
		p := profile("spherical-2d")
		p.Samples = 0
		_, err := render.Render(ctx, pot, 1, start, p)
		Expect(err).To(HaveOccurred())
	})

	It("stops when the context is cancelled", func() {
		pot, _ := potential.NewPlummer(1, 0.5)
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := render.Render(cctx, pot, 14, start, profile("spherical-2d"))
		Expect(err).To(MatchError(dynamo.ErrContextCanceled))
		Expect(err).NotTo(MatchError(render.ErrOrbit))
	})

	It("clamps the point-mass singularity in the contour", func() {
		pot, _ := potential.NewKepler(1)
		c := render.Contour(pot, profile("spherical-2d").Grid)
		Expect(allFinite(c.Values)).To(BeTrue())
		lo, hi := c.ValueRange()
		Expect(lo).To(BeNumerically("<", hi))
	})
})

var _ = Describe("Orbit errors", func() {
	It("wraps step-size failures in ErrOrbit", func() {
		err := &dynamo.SimulationError{Step: 3, Wrapped: dynamo.ErrStepTooSmall}
		wrapped := render.Classify(fmt.Errorf("integrate: %w", err))
		Expect(wrapped).To(MatchError(render.ErrOrbit))
		Expect(wrapped).To(MatchError(dynamo.ErrStepTooSmall))
	})

	It("leaves parameter errors alone", func() {
		Expect(render.Classify(dynamo.ErrParameterBounds)).NotTo(MatchError(render.ErrOrbit))
	})
})

var _ = Describe("RotationFigure", func() {
	It("gives 220 km/s at the solar radius for a unit point mass", func() {
		kepler, _ := potential.NewKepler(1)
		fig := render.RotationFigure("test", []render.Curve{{Label: "Kepler", Potential: kepler}}, 8, 16, 3)
		Expect(fig.Series).To(HaveLen(1))
		Expect(fig.Series[0].X).To(Equal([]float64{8, 12, 16}))
		Expect(fig.Series[0].Y[0]).To(BeNumerically("~", 220, 1e-9))
		Expect(fig.Series[0].Y[2]).To(BeNumerically("~", 220/math.Sqrt(2), 1e-9))
	})
})

var _ = Describe("Ensemble", func() {
	It("integrates ten orbits from random radii", func() {
		pot, _ := potential.NewPlummer(1, 1)
		p := profile("ensemble")
		p.Samples = 101
		p.Seed = 3

		res, members, err := render.Ensemble(context.Background(), pot, 1, p)
		Expect(err).NotTo(HaveOccurred())
		Expect(members).To(HaveLen(10))
		for _, m := range members {
			Expect(m.Initial.R).To(BeNumerically(">=", 0))
			Expect(m.Initial.R).To(BeNumerically("<", 100))
			Expect(m.Trajectory.Len()).To(Equal(101))
		}
		Expect(res.Figures2D).To(HaveLen(2))
		Expect(res.Figures2D[0].Series).To(HaveLen(10))
	})

	It("requires an ensemble size", func() {
		pot, _ := potential.NewPlummer(1, 1)
		_, _, err := render.Ensemble(context.Background(), pot, 1, profile("spherical-2d"))
		Expect(err).To(HaveOccurred())
	})
})
