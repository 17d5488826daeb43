package analysis

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/attractor/internal/dynamo"
)

var ErrDiverged = errors.New("analysis: trajectory diverged")

// Options control an exponent estimate.
type Options struct {
	Dt           float64
	Transient    int // steps run before measuring
	Steps        int // measured steps
	Perturbation float64
}

func DefaultOptions() Options {
	return Options{Dt: 0.002, Transient: 5000, Steps: 100000, Perturbation: 1e-8}
}

func (o Options) validate() error {
	if !(o.Dt > 0) || o.Steps <= 0 || o.Transient < 0 || !(o.Perturbation > 0) {
		return fmt.Errorf("analysis: bad options %+v: %w", o, dynamo.ErrParameterBounds)
	}
	return nil
}

// LargestLyapunov estimates the largest Lyapunov exponent of dyn starting
// from x0, in inverse time units.
func LargestLyapunov(dyn dynamo.System, integ dynamo.Integrator, x0 dynamo.State3, o Options) (float64, error) {
	if err := o.validate(); err != nil {
		return 0, err
	}

	x := x0
	for i := 0; i < o.Transient; i++ {
		x = integ.Step(dyn, x, o.Dt)
	}
	if !x.IsValid() {
		return 0, ErrDiverged
	}

	d0 := o.Perturbation
	xp := x.Add(dynamo.State3{X: d0})

	sumLog := 0.0
	for i := 0; i < o.Steps; i++ {
		x = integ.Step(dyn, x, o.Dt)
		xp = integ.Step(dyn, xp, o.Dt)

		sep := xp.Sub(x).Norm()
		if !x.IsValid() || math.IsNaN(sep) || math.IsInf(sep, 0) {
			return 0, ErrDiverged
		}
		if sep == 0 {
			// companion collapsed onto the reference; restart it
			xp = x.Add(dynamo.State3{X: d0})
			continue
		}
		sumLog += math.Log(sep / d0)

		// renormalize
		xp = x.Add(xp.Sub(x).Scale(d0 / sep))
	}

	return sumLog / (float64(o.Steps) * o.Dt), nil
}

// SweepPoint is one estimate of a sweep.
type SweepPoint struct {
	Param    float64
	Exponent float64
	Err      error
}

// Sweep estimates the exponent for n evenly spaced values of the named
// coefficient in [lo, hi]. The coefficient is restored afterwards.
func Sweep(dyn dynamo.System, integ dynamo.Integrator, x0 dynamo.State3, name string, lo, hi float64, n int, o Options) ([]SweepPoint, error) {
	tunable, ok := dyn.(dynamo.Configurable)
	if !ok {
		return nil, fmt.Errorf("analysis: system has no tunable parameters")
	}
	orig, ok := tunable.GetParams()[name]
	if !ok {
		return nil, fmt.Errorf("analysis: unknown parameter %q", name)
	}
	if n < 2 {
		n = 2
	}
	defer tunable.SetParam(name, orig)

	step := (hi - lo) / float64(n-1)
	out := make([]SweepPoint, 0, n)
	for i := 0; i < n; i++ {
		p := lo + float64(i)*step
		if err := tunable.SetParam(name, p); err != nil {
			return nil, err
		}
		lambda, err := LargestLyapunov(dyn, integ, x0, o)
		out = append(out, SweepPoint{Param: p, Exponent: lambda, Err: err})
	}
	return out, nil
}

// Exponents returns the exponent series of a sweep for plotting; failed
// points are reported as NaN.
func Exponents(points []SweepPoint) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		if p.Err != nil {
			out[i] = math.NaN()
			continue
		}
		out[i] = p.Exponent
	}
	return out
}
