// Package dynamo provides the integration primitives the orbit code is
// built on.
//
// The package defines the fundamental interfaces and types for numerical
// integration of ordinary differential equations (ODEs):
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE systems (dX/dt = f(X, t))
//   - [Integrator]: fixed-step numerical integrator
//   - [AdaptiveIntegrator]: error-controlled integrator
//   - [Metric] and [Observer]: hooks called on every reported sample
//   - [Ensemble]: concurrent independent runs
//
// # Example
//
//	sys := orbit.NewSystem(pot)
//	integ := integrators.NewRK45()
//	o := orbit.New(sys, integ)
//	result, _ := o.Run(ctx, x0, cfg)
//
// # Thread Safety
//
// Integrators keep scratch buffers and are NOT safe for concurrent use.
// Ensemble members must each build their own integrator.
package dynamo
