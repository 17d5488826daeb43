package interact

import (
	"fmt"

	"github.com/charmbracelet/harmonica"
	"github.com/san-kum/attractor/internal/dynamo"
)

// Channel is one smoothed scalar: handlers write Target, the frame loop
// moves Current toward it.
type Channel struct {
	Current float64
	Target  float64

	velocity float64
}

func NewChannel(v float64) Channel { return Channel{Current: v, Target: v} }

// Smoother moves a channel one frame toward its target.
type Smoother interface {
	Update(c *Channel)
}

// Exponential is discrete exponential decay:
// current += (target - current) * Factor. For 0 < Factor < 1 it
// converges without overshoot and never lands exactly on target.
type Exponential struct {
	Factor float64
}

func (e Exponential) Update(c *Channel) {
	c.Current += (c.Target - c.Current) * e.Factor
}

// Spring is a critically damped spring stepped at a fixed frame rate.
type Spring struct {
	spring harmonica.Spring
}

func NewSpring(fps int, frequency float64) Spring {
	return Spring{spring: harmonica.NewSpring(harmonica.FPS(fps), frequency, 1.0)}
}

func (s Spring) Update(c *Channel) {
	c.Current, c.velocity = s.spring.Update(c.Current, c.velocity, c.Target)
}

// Smoothing modes accepted in configuration.
const (
	ModeExponential = "exponential"
	ModeSpring      = "spring"
)

// NewSmoother builds a smoother for one channel. factor is used by the
// exponential mode and must lie in (0, 1); fps and frequency are used by
// the spring mode.
func NewSmoother(mode string, factor float64, fps int, frequency float64) (Smoother, error) {
	switch mode {
	case ModeExponential, "":
		if !(factor > 0 && factor < 1) {
			return nil, fmt.Errorf("smoothing factor %g not in (0, 1): %w", factor, dynamo.ErrParameterBounds)
		}
		return Exponential{Factor: factor}, nil
	case ModeSpring:
		if frequency <= 0 {
			return nil, fmt.Errorf("spring frequency %g: %w", frequency, dynamo.ErrParameterBounds)
		}
		if fps <= 0 {
			fps = 60
		}
		return NewSpring(fps, frequency), nil
	}
	return nil, fmt.Errorf("unknown smoothing mode: %s", mode)
}
