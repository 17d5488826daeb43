package dynamo

import (
	"fmt"
	"math"
)

// State3 is a point in the three dimensional phase space of a system.
type State3 struct {
	X, Y, Z float64
}

func (s State3) Add(o State3) State3             { return State3{s.X + o.X, s.Y + o.Y, s.Z + o.Z} }
func (s State3) Sub(o State3) State3             { return State3{s.X - o.X, s.Y - o.Y, s.Z - o.Z} }
func (s State3) Scale(f float64) State3          { return State3{s.X * f, s.Y * f, s.Z * f} }
func (s State3) Norm() float64                   { return math.Sqrt(s.X*s.X + s.Y*s.Y + s.Z*s.Z) }
func (s State3) String() string                  { return fmt.Sprintf("(%g, %g, %g)", s.X, s.Y, s.Z) }
func (s State3) Float32() [3]float32             { return [3]float32{float32(s.X), float32(s.Y), float32(s.Z)} }
func (s State3) Equal(o State3) bool             { return s.X == o.X && s.Y == o.Y && s.Z == o.Z }
func (s State3) Lerp(o State3, t float64) State3 { return s.Add(o.Sub(s).Scale(t)) }

// IsValid reports whether every component is finite.
func (s State3) IsValid() bool {
	for _, v := range [3]float64{s.X, s.Y, s.Z} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Vec2 is a screen-space or pose-space pair.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }

// RGB is a linear color with components in [0, 1].
type RGB struct {
	R, G, B float64
}

// Black is the zero color.
var Black = RGB{}

// Mix blends c toward o; f=1 returns c and f=0 returns o.
func (c RGB) Mix(o RGB, f float64) RGB {
	return RGB{
		R: c.R*f + o.R*(1-f),
		G: c.G*f + o.G*(1-f),
		B: c.B*f + o.B*(1-f),
	}
}

// System is an autonomous ODE dX/dt = f(X).
type System interface {
	Derive(x State3) State3
}

// Integrator advances a state by one step of size dt.
type Integrator interface {
	Step(dyn System, x State3, dt float64) State3
}

// Configurable systems expose their coefficients. Changing one starts a
// new run on a fresh system.
type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

// Params are the global, read-only simulation parameters of a run.
type Params struct {
	Sigma     float64
	Beta      float64
	Rho       float64
	StepSize  float64
	LineCount int
}

// ClassicParams returns the textbook Lorenz coefficients with the
// step size and line count used by the browser rendition.
func ClassicParams() Params {
	return Params{Sigma: 10, Beta: 8.0 / 3.0, Rho: 28, StepSize: 0.002, LineCount: 60}
}

func (p Params) Validate() error {
	if !(p.StepSize > 0) {
		return fmt.Errorf("step size %g: %w", p.StepSize, ErrParameterBounds)
	}
	if p.LineCount <= 0 {
		return fmt.Errorf("line count %d: %w", p.LineCount, ErrParameterBounds)
	}
	return nil
}
