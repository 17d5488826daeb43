package main

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/attractor/internal/analysis"
	"github.com/san-kum/attractor/internal/engine"
	"github.com/san-kum/attractor/internal/integrators"
	"github.com/san-kum/attractor/internal/physics"
	"github.com/spf13/cobra"
)

func analyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sys, err := physics.New(cfg.Simulation.System, cfg.Params())
	if err != nil {
		return err
	}
	integ := integrators.NewEuler()

	o := analysis.DefaultOptions()
	o.Dt = cfg.Simulation.StepSize
	o.Steps = steps

	if sweep == "" {
		lambda, err := analysis.LargestLyapunov(sys, integ, engine.Origin, o)
		if err != nil {
			return err
		}
		fmt.Printf("system: %s\n", cfg.Simulation.System)
		fmt.Printf("dt: %g  steps: %d\n", o.Dt, o.Steps)
		fmt.Printf("largest lyapunov exponent: %.4f\n", lambda)
		if lambda > 0 {
			fmt.Printf("chaotic: nearby lines separate by e every %.2f time units\n", 1/lambda)
		}
		return nil
	}

	points, err := analysis.Sweep(sys, integ, engine.Origin, sweep, sweepFrom, sweepTo, sweepSteps, o)
	if err != nil {
		return err
	}
	for _, p := range points {
		if p.Err != nil {
			fmt.Printf("%s=%8.3f  %v\n", sweep, p.Param, p.Err)
			continue
		}
		fmt.Printf("%s=%8.3f  lambda=%8.4f\n", sweep, p.Param, p.Exponent)
	}
	fmt.Println()
	fmt.Println(asciigraph.Plot(analysis.Exponents(points),
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("lambda vs %s in [%g, %g]", sweep, sweepFrom, sweepTo)),
	))
	return nil
}
