// Package physics provides the dynamical systems driven by the engine.
//
// [Lorenz] implements [dynamo.System] and [dynamo.Configurable]:
//
//	dx/dt = sigma * (y - x)
//	dy/dt = x * (rho - z) - y
//	dz/dt = x * y - beta * z
//
// The classic coefficients sigma=10, beta=8/3, rho=28 produce the
// butterfly attractor. Coefficients may be tuned at runtime through
// [Lorenz.SetParam]; the engine picks the change up on the next step.
package physics
