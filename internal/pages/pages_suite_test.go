package pages_test

import (
	"context"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/vipor/internal/catalog"
	"github.com/san-kum/vipor/internal/config"
	"github.com/san-kum/vipor/internal/dynamo"
	"github.com/san-kum/vipor/internal/pages"
)

func TestPages(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Pages Suite")
}

// quickConfig shrinks every profile so the suite runs in seconds.
func quickConfig() *config.Config {
	cfg := config.DefaultConfig()
	for _, p := range cfg.Profiles {
		p.Samples = 201
		p.Frames = 5
		p.Grid.NR = 6
		p.Grid.NZ = 6
	}
	return cfg
}

var _ = Describe("Book", func() {
	var book *pages.Book

	BeforeEach(func() {
		book = pages.NewBook(quickConfig())
	})

	It("lists the pages in reading order", func() {
		var slugs []string
		for _, p := range book.Pages() {
			slugs = append(slugs, p.Slug())
		}
		Expect(slugs).To(Equal([]string{"home", "rotation", "spherical-2d", "spherical-3d", "axisymmetric", "triaxial", "milkyway"}))
	})

	It("rejects an unknown slug", func() {
		_, err := book.Lookup("galaxy-zoo")
		Expect(err).To(MatchError(pages.ErrUnknownPage))
	})

	It("renders the home page as text and equations", func() {
		p, err := book.Lookup("home")
		Expect(err).NotTo(HaveOccurred())
		out, err := p.Run(context.Background(), nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(out.Count(pages.LaTeXBlock)).To(BeNumerically(">=", 3))
		Expect(out.Count(pages.FigureBlock)).To(BeZero())
	})

	Describe("orbit pages", func() {
		var page pages.Page

		BeforeEach(func() {
			var err error
			page, err = book.Lookup("spherical-2d")
			Expect(err).NotTo(HaveOccurred())
		})

		It("offers the model parameters as sliders", func() {
			controls := page.Controls(pages.Values{"model": catalog.SphericalShell})
			Expect(controls[0].Kind).To(Equal(pages.Select))
			Expect(controls[0].Options).To(ContainElement(catalog.Plummer))
			Expect(controls[1].Key).To(Equal("a"))
			Expect(controls[1].Kind).To(Equal(pages.Slider))
		})

		It("turns a disallowed parameter into a warning", func() {
			out, err := page.Run(context.Background(), pages.Values{"model": catalog.SphericalShell, "a": -1.0})
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Warnings()).To(HaveLen(1))
			Expect(out.Warnings()[0]).To(ContainSubstring("not allowed"))
			Expect(out.Count(pages.FigureBlock)).To(BeZero())
		})

		It("renders a homogeneous sphere end to end", func() {
			out, err := page.Run(context.Background(), pages.Values{
				"model": catalog.HomogeneousSphere, "R": 10.0,
				"years": 1.0, "radius": 5.0, "height": 2.0,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Warnings()).To(BeEmpty())
			// contour plus rz, radec, rvr and xy
			Expect(out.Count(pages.FigureBlock)).To(Equal(5))
			Expect(out.Count(pages.AnimationBlock)).To(Equal(2))
			Expect(out.Blocks[0].Text).To(ContainSubstring("Spherically Symmetric"))
		})

		It("warns about a negative integration time", func() {
			out, err := page.Run(context.Background(), pages.Values{"model": catalog.Plummer, "years": -2.0})
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Warnings()).To(HaveLen(1))
		})

		It("fails on an unknown model", func() {
			_, err := page.Run(context.Background(), pages.Values{"model": "Jaffe Potential"})
			Expect(err).To(MatchError(catalog.ErrInvalidModel))
		})

		It("stops when the context is cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := page.Run(ctx, pages.Values{"model": catalog.Plummer, "years": 1.0})
			Expect(err).To(MatchError(dynamo.ErrContextCanceled))
		})
	})

	Describe("rotation page", func() {
		var page pages.Page

		BeforeEach(func() {
			page, _ = book.Lookup("rotation")
		})

		It("plots the first model by default", func() {
			out, err := page.Run(context.Background(), nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Count(pages.FigureBlock)).To(Equal(1))
		})

		It("plots nothing when every box is cleared", func() {
			out, err := page.Run(context.Background(), pages.Values{"hsp": false})
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Count(pages.FigureBlock)).To(BeZero())
		})

		It("shows the halo curve only with dark matter", func() {
			out, err := page.Run(context.Background(), pages.Values{"hsp": false, "halo": true})
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Count(pages.FigureBlock)).To(BeZero())

			out, err = page.Run(context.Background(), pages.Values{"hsp": false, "halo": true, "dark_matter": true})
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Count(pages.LaTeXBlock)).To(Equal(1))
			Expect(out.Blocks).To(ContainElement(HaveField("Kind", pages.FigureBlock)))
		})
	})

	Describe("Milky Way page", func() {
		var page pages.Page

		BeforeEach(func() {
			page, _ = book.Lookup("milkyway")
		})

		It("shows only the introduction with no component", func() {
			out, err := page.Run(context.Background(), pages.Values{})
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Count(pages.FigureBlock)).To(BeZero())
			Expect(out.Count(pages.AnimationBlock)).To(BeZero())
			Expect(out.Count(pages.LaTeXBlock)).To(Equal(1))
		})

		It("follows the Sun in the disk and halo", func() {
			out, err := page.Run(context.Background(), pages.Values{"disk": true, "halo": true})
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Warnings()).To(BeEmpty())
			// two rotation figures, the contour, rz and xy
			Expect(out.Count(pages.FigureBlock)).To(Equal(5))
			Expect(out.Count(pages.AnimationBlock)).To(Equal(2))
		})
	})
})

var _ = Describe("Values", func() {
	It("reads numbers in the forms hosts send", func() {
		v := pages.Values{"a": 2.5, "b": 3, "c": "1.5", "d": "x"}
		Expect(v.Float("a", 0)).To(Equal(2.5))
		Expect(v.Float("b", 0)).To(Equal(3.0))
		Expect(v.Float("c", 0)).To(Equal(1.5))
		Expect(v.Float("d", 7)).To(Equal(7.0))
		Expect(v.Float("missing", 7)).To(Equal(7.0))
	})

	It("clamps slider steps and cycles selects", func() {
		slider := pages.Control{Key: "years", Kind: pages.Slider, Min: 0, Max: 14, Step: 1, Default: 13}
		v := pages.Defaults([]pages.Control{slider})
		pages.Adjust(slider, v, 5)
		Expect(v.Float("years", 0)).To(Equal(14.0))

		sel := pages.Control{Key: "model", Kind: pages.Select, Options: []string{"a", "b", "c"}, Choice: "a"}
		v = pages.Defaults([]pages.Control{sel})
		pages.Adjust(sel, v, -1)
		Expect(v.String("model", "")).To(Equal("c"))

		box := pages.Control{Key: "disk", Kind: pages.Checkbox}
		pages.Adjust(box, v, 1)
		Expect(v.Bool("disk", false)).To(BeTrue())
	})
})
