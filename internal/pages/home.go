package pages

import "context"

type home struct{}

func (home) Slug() string  { return "home" }
func (home) Title() string { return "Visualizing Potentials and Orbits" }

func (home) Controls(Values) []Control { return nil }

func (home) Run(context.Context, Values) (*Output, error) {
	out := &Output{}
	out.Markdown("# Visualizing Potentials and Orbits")
	out.Markdown("A galaxy is held together by gravity. Its stars, gas and dark matter " +
		"create a gravitational potential, and every star moves on an orbit set by that potential. " +
		"The force on a star at position $\\bar{x}$ is the negative gradient of the potential:")
	out.LaTeX(`\bar{F}(\bar{x}) = -\bar{\nabla} \Phi(\bar{x})`)
	out.Markdown("The potential itself follows from the mass density of the galaxy:")
	out.LaTeX(`\Phi(\bar{x}) = -G \int \frac{\rho(\bar{x}')}{|\bar{x}' - \bar{x}|} \, d^3\bar{x}'`)
	out.Markdown("Taking the divergence of the force gives Poisson's equation:")
	out.LaTeX(`\nabla \cdot \bar{F} = - \nabla^2 \Phi = -4 \pi G \rho(\bar{x})`)

	out.Markdown("## Spherical systems")
	out.Markdown("When the density depends only on the distance $r$ from the centre, " +
		"Poisson's equation reduces to an ordinary differential equation in $r$:")
	out.LaTeX(`\frac{1}{r^2} \frac{d}{dr}\left(r^2 \frac{d\Phi}{dr}\right) = 4 \pi G \rho(r)`)

	out.Markdown("## Axisymmetric systems")
	out.Markdown("Disk galaxies are close to symmetric about their rotation axis. " +
		"In cylindrical coordinates $(R, z)$ the equation becomes:")
	out.LaTeX(`\frac{1}{R} \frac{\partial}{\partial R}\left(R \frac{\partial \Phi}{\partial R}\right) + \frac{\partial^2 \Phi}{\partial z^2} = 4 \pi G \rho(R, z)`)

	out.Markdown("## Triaxial systems")
	out.Markdown("Elliptical galaxies and dark matter halos can have three different axis lengths. " +
		"Their density is constant on ellipsoids $m^2 = x^2 + y^2/b^2 + z^2/c^2$, " +
		"and their orbits are far richer than in the symmetric cases.")

	out.Markdown("Use the pages to explore rotation curves, orbits in each kind of potential " +
		"and a model of the Milky Way.")
	return out, nil
}
