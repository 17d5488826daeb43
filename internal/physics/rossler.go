package physics

import (
	"fmt"

	"github.com/san-kum/attractor/internal/dynamo"
)

// Rossler is a single-lobe attractor; it shares the engine with Lorenz.
type Rossler struct{ A, B, C float64 }

func NewRossler() *Rossler { return &Rossler{A: 0.2, B: 0.2, C: 5.7} }

// Derive calculates the Rossler attractor derivatives.
func (r *Rossler) Derive(s dynamo.State3) dynamo.State3 {
	return dynamo.State3{X: -s.Y - s.Z, Y: s.X + r.A*s.Y, Z: r.B + s.Z*(s.X-r.C)}
}

func (r *Rossler) GetParams() map[string]float64 {
	return map[string]float64{"a": r.A, "b": r.B, "c": r.C}
}

func (r *Rossler) SetParam(n string, v float64) error {
	switch n {
	case "a":
		r.A = v
	case "b":
		r.B = v
	case "c":
		r.C = v
	default:
		return fmt.Errorf("rossler %q: %w", n, dynamo.ErrUnknownParam)
	}
	return nil
}
