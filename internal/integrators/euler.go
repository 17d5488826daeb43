package integrators

import "github.com/san-kum/attractor/internal/dynamo"

// Euler is the first-order explicit method: x' = x + f(x)*dt.
//
// It is pure and deterministic. Divergence from an oversized dt is
// neither detected nor corrected.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(dyn dynamo.System, x dynamo.State3, dt float64) dynamo.State3 {
	dx := dyn.Derive(x)
	return dynamo.State3{
		X: x.X + dx.X*dt,
		Y: x.Y + dx.Y*dt,
		Z: x.Z + dx.Z*dt,
	}
}

// Run applies n steps from x and returns the final state.
func Run(integ dynamo.Integrator, dyn dynamo.System, x dynamo.State3, dt float64, n int) dynamo.State3 {
	for i := 0; i < n; i++ {
		x = integ.Step(dyn, x, dt)
	}
	return x
}
