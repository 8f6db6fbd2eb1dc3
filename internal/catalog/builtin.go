package catalog

import (
	"math"

	"github.com/san-kum/vipor/internal/potential"
	"github.com/san-kum/vipor/internal/units"
)

func builtin() []entry {
	return []entry{
		{
			spec: Spec{
				Name:   PowerSpherical,
				Family: Spherical,
				Params: []Param{
					{Label: "Power Law Exponent, $\\alpha$", Symbol: "alpha", Min: 0, Max: 6, Step: 0.25, Default: 0, Unit: units.Natural},
				},
				EquationIntro: densityIntro,
				Equation:      `\rho(r)= \frac{\text{amp}}{r_1^{3}} \left(\frac{r_1}{r}\right)^\alpha`,
				ParamSummary:  `$\alpha$, the power law exponent`,
			},
			build: func(v []float64) (potential.Potential, error) {
				return potential.NewPowerSpherical(1, v[0])
			},
		},
		{
			spec: Spec{
				Name:   SphericalShell,
				Family: Spherical,
				Params: []Param{
					{Label: "Shell Radius, $a$", Symbol: "a", Min: 1, Max: 50, Step: 1, Default: 1, Unit: units.Kpc},
				},
				EquationIntro: densityIntro,
				Equation:      `\rho(r)= \frac{\text{amp}}{4\pi a^2} \delta(r-a)`,
				ParamSummary:  `$a$, the radius of the shell`,
			},
			build: func(v []float64) (potential.Potential, error) {
				return potential.NewSphericalShell(1, v[0])
			},
		},
		{
			spec: Spec{
				Name:   HomogeneousSphere,
				Family: Spherical,
				Params: []Param{
					{Label: "Sphere Radius, $R$", Symbol: "R", Min: 1, Max: 50, Step: 1, Default: 1, Unit: units.Kpc},
				},
				EquationIntro: densityIntro,
				Equation:      `\rho(r)= \rho_0, \quad r < R`,
				ParamSummary:  `$R$, the radius of the sphere`,
			},
			build: func(v []float64) (potential.Potential, error) {
				return potential.NewHomogeneousSphere(1, v[0])
			},
		},
		{
			spec: Spec{
				Name:   Plummer,
				Family: Spherical,
				Params: []Param{
					{Label: "Scale Parameter, $b$", Symbol: "b", Min: 1, Max: 20, Step: 1, Default: 1, Unit: units.Natural},
				},
				EquationIntro: potentialIntro,
				Equation:      `\Phi(R,z) = - \frac{\text{amp}}{\sqrt{R^2 + z^2 + b^2}}`,
				ParamSummary:  `$b$, the scale parameter`,
			},
			build: func(v []float64) (potential.Potential, error) {
				return potential.NewPlummer(1, v[0])
			},
		},
		{
			spec: Spec{
				Name:   DoubleExpDisk,
				Family: Axisymmetric,
				Params: []Param{
					{Label: "Scale Length, $h_r$", Symbol: "hr", Min: 1, Max: 100, Step: 1, Default: 1, Unit: units.Kpc},
					{Label: "Scale Height, $h_z$", Symbol: "hz", Min: 1, Max: 20, Step: 1, Default: 1, Unit: units.Kpc},
				},
				EquationIntro: densityIntro,
				Equation:      `\rho (R, z) = \text{amp} \, \text{exp}( -R/h_R - |z|/h_z)`,
				ParamSummary:  `$h_r$, the scale length, and $h_z$, the scale height`,
			},
			build: func(v []float64) (potential.Potential, error) {
				return potential.NewDoubleExponentialDisk(1, v[0], v[1])
			},
		},
		{
			spec: Spec{
				Name:   PowerTriaxial,
				Family: Triaxial,
				Params: []Param{
					{Label: "Power-law Exponent, $\\alpha$", Symbol: "alpha", Min: 0.5, Max: 5, Step: 0.25, Default: 0.5, Unit: units.Natural},
					{Label: "Y-to-X Axis Ratio, $b$", Symbol: "b", Min: 0.5, Max: 8, Step: 0.25, Default: 0.5, Unit: units.Natural},
					{Label: "Z-to-X Axis Ratio, $c$", Symbol: "c", Min: 0.5, Max: 8, Step: 0.25, Default: 0.5, Unit: units.Natural},
				},
				EquationIntro: densityIntro,
				Equation:      `\rho(r)= \frac{\text{amp}}{r_1^{3}} \left(\frac{r_1}{m}\right)^\alpha`,
				ParamSummary:  `$\alpha$, the power law exponent, and $b$ and $c$, the axis ratios`,
			},
			build: func(v []float64) (potential.Potential, error) {
				return potential.NewPowerTriaxial(1, v[0], v[1], v[2])
			},
		},
		{
			spec: Spec{
				Name:   TwoPowerSpherical,
				Family: Component,
				Params: []Param{
					{Label: "Scale Radius, $a$", Symbol: "a", Min: 0.5, Max: 20, Step: 0.5, Default: 5, Unit: units.Natural},
					{Label: "Inner Exponent, $\\alpha$", Symbol: "alpha", Min: 0, Max: 2.75, Step: 0.25, Default: 1.5, Unit: units.Natural},
					{Label: "Outer Exponent, $\\beta$", Symbol: "beta", Min: 2.25, Max: 6, Step: 0.25, Default: 3.5, Unit: units.Natural},
				},
				EquationIntro: densityIntro,
				Equation:      `\rho(r)= \frac{\text{amp}}{4\pi a^3} \frac{1}{(r/a)^{\alpha} (1 + r/a)^{\beta-\alpha}}`,
				ParamSummary:  `$\alpha$ and $\beta$, the power law exponents`,
			},
			build: func(v []float64) (potential.Potential, error) {
				return potential.NewTwoPowerSpherical(1, v[0], v[1], v[2])
			},
		},
		{
			spec: Spec{
				Name:   NFW,
				Family: Component,
				Params: []Param{
					{Label: "Scale Radius, $a$", Symbol: "a", Min: 0.25, Max: 10, Step: 0.25, Default: 1, Unit: units.Natural},
					{Label: "Halo Mass, $M$", Symbol: "M", Min: 1e10, Max: 1e13, Step: 1e10, Default: HaloMassMsun, Unit: units.Msun},
				},
				EquationIntro: densityIntro,
				Equation:      `\rho(r)= \frac{\text{amp}}{4\pi a^3} \frac{1}{(r/a)(1 + r/a)^{2}}`,
				ParamSummary:  `$a$, the scale radius, and $M$, the mass scale`,
			},
			build: func(v []float64) (potential.Potential, error) {
				return potential.NewNFW(v[1], v[0])
			},
		},
		{
			spec: Spec{
				Name:   PowerCutoff,
				Family: Component,
				Params: []Param{
					{Label: "Power Law Exponent, $\\alpha$", Symbol: "alpha", Min: 0, Max: 1.95, Step: 0.05, Default: 1, Unit: units.Natural},
					{Label: "Cutoff Radius, $r_c$", Symbol: "rc", Min: 0.1, Max: 20, Step: 0.1, Default: units.R0Kpc, Unit: units.Kpc},
				},
				EquationIntro: densityIntro,
				Equation:      `\rho(r)= \text{amp} \left(\frac{r_1}{r}\right)^\alpha \exp\left[-(r/r_c)^2\right]`,
				ParamSummary:  `$\alpha$, the power law exponent, and $r_c$, the cutoff radius`,
			},
			build: func(v []float64) (potential.Potential, error) {
				return potential.NewPowerSphericalCutoff(1, v[0], v[1])
			},
		},
		{
			spec: Spec{
				Name:   TwoPowerTriaxial,
				Family: Component,
				Params: []Param{
					{Label: "Scale Radius, $a$", Symbol: "a", Min: 0.5, Max: 20, Step: 0.5, Default: 5, Unit: units.Natural},
					{Label: "Inner Exponent, $\\alpha$", Symbol: "alpha", Min: 0, Max: 1.75, Step: 0.25, Default: 1.5, Unit: units.Natural},
					{Label: "Outer Exponent, $\\beta$", Symbol: "beta", Min: 2.25, Max: 6, Step: 0.25, Default: 3.5, Unit: units.Natural},
					{Label: "Y-to-X Axis Ratio, $b$", Symbol: "b", Min: 0.5, Max: 20, Step: 0.5, Default: 4, Unit: units.Natural},
					{Label: "Z-to-X Axis Ratio, $c$", Symbol: "c", Min: 0.5, Max: 20, Step: 0.5, Default: 16, Unit: units.Natural},
				},
				EquationIntro: densityIntro,
				Equation:      `\rho(x,y,z)= \frac{\text{amp}}{4\pi a^3} \frac{1}{(m/a)^{\alpha} (1 + m/a)^{\beta-\alpha}}`,
				ParamSummary:  `$\alpha$ and $\beta$, the power law exponents, and $b$ and $c$, the axis ratios`,
			},
			build: func(v []float64) (potential.Potential, error) {
				return potential.NewTwoPowerTriaxial(1, v[0], v[1], v[2], v[3], v[4])
			},
		},
		{
			spec: Spec{
				Name:   MiyamotoNagai,
				Family: Component,
				Params: []Param{
					{Label: "Scale Length, $a$", Symbol: "a", Min: 0.5, Max: 10, Step: 0.5, Default: 3, Unit: units.Kpc},
					{Label: "Scale Height, $b$", Symbol: "b", Min: 0.01, Max: 2, Step: 0.01, Default: 0.28, Unit: units.Kpc},
				},
				EquationIntro: potentialIntro,
				Equation:      `\Phi(R,z) = - \frac{\text{amp}}{\sqrt{R^2 + (a + \sqrt{z^2 + b^2})^2}}`,
				ParamSummary:  `$a$, the scale length, and $b$, the scale height`,
			},
			build: func(v []float64) (potential.Potential, error) {
				return potential.NewMiyamotoNagai(1, v[0], v[1])
			},
		},
		{
			spec: Spec{
				Name:   Kepler,
				Family: Component,
				Params: []Param{
					{Label: "Mass, $M$", Symbol: "M", Min: 1e5, Max: 1e9, Step: 1e5, Default: 4e6, Unit: units.Msun},
				},
				EquationIntro: potentialIntro,
				Equation:      `\Phi(r) = - \frac{\text{amp}}{r}`,
				ParamSummary:  `$M$, the point mass`,
			},
			build: func(v []float64) (potential.Potential, error) {
				return potential.NewKepler(v[0])
			},
		},
		{
			spec: Spec{
				Name:   SpiralArms,
				Family: Component,
				Params: []Param{
					{Label: "How many arms?", Symbol: "N", Min: 1, Max: 5, Step: 1, Default: 2, Unit: units.Natural},
				},
				EquationIntro: potentialIntro,
				Equation: `\Phi(R, \phi, z) = -4 \pi G H \rho_0 \exp\left(-\frac{R-r_{ref}}{R_s}\right) ` +
					`\sum_n \frac{C_n}{K_n D_n} \cos(n \gamma) \,\mathrm{sech}^{B_n}\left(\frac{K_n z}{B_n}\right)`,
				ParamSummary: `$N$, the number of arms`,
			},
			build: func(v []float64) (potential.Potential, error) {
				return potential.NewSpiralArms(int(math.Round(v[0])))
			},
		},
	}
}
