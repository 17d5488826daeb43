package physics

import (
	"fmt"

	"github.com/san-kum/attractor/internal/dynamo"
)

// Lorenz is the classic three-variable convection model.
type Lorenz struct{ Sigma, Rho, Beta float64 }

func NewLorenz() *Lorenz { return &Lorenz{Sigma: 10.0, Rho: 28.0, Beta: 8.0 / 3.0} }

// FromParams builds the system from run parameters.
func FromParams(p dynamo.Params) *Lorenz {
	return &Lorenz{Sigma: p.Sigma, Rho: p.Rho, Beta: p.Beta}
}

// Derive calculates the Lorenz attractor derivatives.
func (l *Lorenz) Derive(s dynamo.State3) dynamo.State3 {
	return dynamo.State3{
		X: l.Sigma * (s.Y - s.X),
		Y: s.X*(l.Rho-s.Z) - s.Y,
		Z: s.X*s.Y - l.Beta*s.Z,
	}
}

func (l *Lorenz) GetParams() map[string]float64 {
	return map[string]float64{"sigma": l.Sigma, "rho": l.Rho, "beta": l.Beta}
}

func (l *Lorenz) SetParam(n string, v float64) error {
	switch n {
	case "sigma":
		l.Sigma = v
	case "rho":
		l.Rho = v
	case "beta":
		l.Beta = v
	default:
		return fmt.Errorf("lorenz %q: %w", n, dynamo.ErrUnknownParam)
	}
	return nil
}
