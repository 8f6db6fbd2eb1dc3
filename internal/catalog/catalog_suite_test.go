package catalog_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/vipor/internal/catalog"
	"github.com/san-kum/vipor/internal/potential"
)

func TestCatalog(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Catalog Suite")
}

var _ = Describe("Registry", func() {
	var reg *catalog.Registry

	BeforeEach(func() {
		reg = catalog.NewRegistry()
	})

	It("describes the Plummer model by its potential", func() {
		spec, err := reg.Lookup(catalog.Plummer)
		Expect(err).NotTo(HaveOccurred())
		Expect(spec.EquationIntro).To(Equal("This potential is characterized by the equation:"))
		Expect(spec.Params).To(HaveLen(1))
		Expect(spec.Params[0].Label).To(ContainSubstring("Scale Parameter"))
	})

	It("describes the other selectable models by their density", func() {
		for _, name := range []string{catalog.PowerSpherical, catalog.SphericalShell, catalog.HomogeneousSphere, catalog.DoubleExpDisk} {
			spec, err := reg.Lookup(name)
			Expect(err).NotTo(HaveOccurred())
			Expect(spec.EquationIntro).To(HavePrefix("The equation for the density"))
		}
	})

	It("keeps registration order and replaces in place", func() {
		before := reg.Names("")
		spec, _ := reg.Lookup(catalog.Kepler)
		reg.Register(spec, func(v []float64) (potential.Potential, error) {
			return potential.NewKepler(2 * v[0])
		})
		Expect(reg.Names("")).To(Equal(before))
	})

	It("builds a double exponential disk from kiloparsecs", func() {
		p, err := reg.Build(catalog.DoubleExpDisk, []float64{8, 2}, catalog.Options{})
		Expect(err).NotTo(HaveOccurred())
		disk, ok := p.(*potential.DoubleExponentialDisk)
		Expect(ok).To(BeTrue())
		Expect(disk.Mass()).To(BeNumerically("~", 4*3.141592653589793*0.25, 1e-12))
	})

	It("adds the dark matter halo last", func() {
		p, err := reg.Build(catalog.Plummer, []float64{2}, catalog.Options{DarkMatter: true})
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Name()).To(Equal("Plummer + NFW"))
	})
})
