// Package dynamo provides the primitives shared by the attractor engine.
//
// The package defines the value types and small interfaces that the
// simulation packages agree on:
//
//   - [State3]: a point in phase space, copied by value every step
//   - [System]: an autonomous ODE (dX/dt = f(X))
//   - [Integrator]: a numerical stepper
//   - [Params]: global, read-only run parameters
//   - [RGB]: linear colors used by the ramp and particle buffers
//
// # Numerical stability
//
// Nothing in this package clamps or detects divergence. A step size that
// is too large relative to rho drives states to Inf or NaN, which then
// propagates into render buffers. [State3.IsValid] exists for
// diagnostics only.
package dynamo
