package engine

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/san-kum/attractor/internal/config"
	"github.com/san-kum/attractor/internal/dynamo"
	"github.com/san-kum/attractor/internal/frame"
	"github.com/san-kum/attractor/internal/growth"
	"github.com/san-kum/attractor/internal/integrators"
	"github.com/san-kum/attractor/internal/interact"
	"github.com/san-kum/attractor/internal/palette"
	"github.com/san-kum/attractor/internal/particles"
	"github.com/san-kum/attractor/internal/physics"
	"github.com/san-kum/attractor/internal/trail"
)

// LineVisual is one line's render buffers: xyz positions and rgb colors,
// three float32 per point.
type LineVisual struct {
	Positions []float32
	Colors    []float32
}

// Points returns the number of points in the buffers.
func (v LineVisual) Points() int { return len(v.Positions) / 3 }

// Frame is the output of one accepted tick. Its buffers are reused by
// the next tick.
type Frame struct {
	Index     uint64
	Dt        time.Duration
	Elapsed   time.Duration
	MaxLength float64
	Lines     []LineVisual
	Particles []LineVisual
	Pose      interact.Pose
	Dirty     bool
}

type Option func(*Engine)

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithSeeds replaces the generated starting points. The slice length
// sets the line count.
func WithSeeds(seeds []dynamo.State3) Option {
	return func(e *Engine) { e.seeds = seeds }
}

// WithIntegrator swaps the stepping method.
func WithIntegrator(i dynamo.Integrator) Option {
	return func(e *Engine) { e.integ = i }
}

// Engine is the single owner of simulation and interaction state.
type Engine struct {
	cfg *config.Config
	log *slog.Logger

	sys      dynamo.System
	integ    dynamo.Integrator
	ramp     *palette.Ramp
	schedule growth.Schedule
	sampler  particles.Sampler
	pcolor   dynamo.RGB
	showPart bool

	input *interact.Controller
	sched *frame.Scheduler

	seeds    []dynamo.State3
	lines    []*trail.Trajectory
	diverged []bool

	start time.Duration
	runs  int
	out   Frame
}

// New builds an engine from cfg. Trajectories are seeded and, for the
// window strategy, precomputed here.
func New(cfg *config.Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		cfg:   cfg.Clone(),
		log:   slog.Default(),
		integ: integrators.NewEuler(),
	}
	for _, opt := range opts {
		opt(e)
	}

	var err error
	if e.sys, err = physics.New(cfg.Simulation.System, cfg.Params()); err != nil {
		return nil, err
	}
	if e.ramp, err = cfg.Ramp(); err != nil {
		return nil, err
	}
	if e.pcolor, err = cfg.ParticleColor(); err != nil {
		return nil, err
	}
	if e.input, err = interact.NewController(cfg.Interaction); err != nil {
		return nil, err
	}
	e.schedule = cfg.Schedule()
	e.sampler = cfg.Sampler()
	e.sched = frame.NewScheduler(cfg.Frame)

	strategy := cfg.Trajectory.Strategy
	e.showPart = cfg.Particles.Enabled && strategy == trail.GrowAndWindow

	if e.seeds == nil {
		sim := cfg.Simulation
		e.seeds = Seeds(sim.Lines, sim.SeedMode, sim.SeedSpread, sim.Seed)
	}
	if len(e.seeds) == 0 {
		return nil, fmt.Errorf("engine: no lines: %w", dynamo.ErrParameterBounds)
	}

	e.buildLines()

	e.out.Lines = make([]LineVisual, len(e.lines))
	if e.showPart {
		e.out.Particles = make([]LineVisual, len(e.lines))
	}
	return e, nil
}

// buildLines seeds one trajectory per seed with the current system and,
// for the window strategy, precomputes it.
func (e *Engine) buildLines() {
	tc := e.cfg.Trajectory
	e.lines = make([]*trail.Trajectory, len(e.seeds))
	for i, s := range e.seeds {
		t := trail.New(tc.Strategy, s, e.sys, e.integ, e.cfg.Simulation.StepSize)
		if tc.Strategy == trail.GrowAndWindow {
			t.SetMaxBacking(tc.MaxBacking)
			t.Precompute(tc.Precompute)
		}
		e.lines[i] = t
	}
	e.diverged = make([]bool, len(e.lines))
}

// Start begins the frame loop and the growth clock at now.
func (e *Engine) Start(now time.Duration) {
	e.start = now
	e.sched.Start(now)
	e.log.Info("engine started",
		"system", e.cfg.Simulation.System,
		"lines", len(e.lines),
		"strategy", e.cfg.Trajectory.Strategy,
		"particles", e.showPart,
		"target_fps", e.cfg.Frame.TargetFPS)
}

// SetVisible pauses the loop when the view is hidden and resumes it with
// a fresh frame clock when shown again.
func (e *Engine) SetVisible(visible bool, now time.Duration) {
	switch {
	case !visible && e.sched.State() == frame.Running:
		e.sched.Pause()
		e.log.Debug("frame loop paused")
	case visible && e.sched.State() == frame.Paused:
		e.sched.Resume(now)
		e.log.Debug("frame loop resumed")
	}
}

func (e *Engine) Input() *interact.Controller { return e.input }

func (e *Engine) Stats() *frame.Stats { return e.sched.Stats() }

func (e *Engine) State() frame.State { return e.sched.State() }

func (e *Engine) Config() *config.Config { return e.cfg }

func (e *Engine) Ramp() *palette.Ramp { return e.ramp }

// Trajectories exposes the lines for export. Callers must not advance
// them.
func (e *Engine) Trajectories() []*trail.Trajectory { return e.lines }

// ApplyInteraction swaps the interaction settings without moving the
// camera.
func (e *Engine) ApplyInteraction(s interact.Settings) error {
	if err := e.input.Retune(s); err != nil {
		return err
	}
	e.cfg.Interaction = s
	e.log.Info("interaction settings applied", "smoothing", s.Smoothing.Mode)
	return nil
}

// Tune starts a new run with one coefficient of the system changed,
// e.g. "rho". Coefficients are fixed for the length of a run, so a fresh
// system is built, every line restarts from its seed and the growth
// clock restarts at now. The running system is never modified and the
// camera keeps its pose.
func (e *Engine) Tune(name string, value float64, now time.Duration) error {
	sys, err := physics.New(e.cfg.Simulation.System, e.cfg.Params())
	if err != nil {
		return err
	}
	c, ok := sys.(dynamo.Configurable)
	if !ok {
		return fmt.Errorf("engine: %s has no tunable parameters", e.cfg.Simulation.System)
	}
	for k, v := range e.Params() {
		if err := c.SetParam(k, v); err != nil {
			return err
		}
	}
	if err := c.SetParam(name, value); err != nil {
		return err
	}

	cfg := e.cfg.Clone()
	switch name {
	case "sigma":
		cfg.Simulation.Sigma = value
	case "rho":
		cfg.Simulation.Rho = value
	case "beta":
		cfg.Simulation.Beta = value
	}

	e.cfg, e.sys = cfg, sys
	e.buildLines()
	e.start = now
	e.runs++
	e.log.Info("run restarted", "run", e.runs, "name", name, "value", value)
	return nil
}

// Runs counts the restarts caused by Tune.
func (e *Engine) Runs() int { return e.runs }

// Params returns the tunable coefficients of the running system.
func (e *Engine) Params() map[string]float64 {
	if c, ok := e.sys.(dynamo.Configurable); ok {
		return c.GetParams()
	}
	return nil
}

// Tick runs one frame if the scheduler accepts now. It smooths the
// camera, advances every line to the current growth length, refreshes
// the render buffers and the particles, and reports the result. The
// returned frame is reused by the next call.
func (e *Engine) Tick(now time.Duration) (*Frame, bool) {
	dt, ok := e.sched.Tick(now)
	if !ok {
		return nil, false
	}
	e.input.Smooth()

	f := &e.out
	f.Index++
	f.Dt = dt
	f.Elapsed = now - e.start
	f.MaxLength = e.schedule.MaxLength(f.Elapsed)

	changed := false
	for i, t := range e.lines {
		if t.Advance(f.MaxLength) {
			changed = true
		}
		v := &f.Lines[i]
		v.Positions, v.Colors = t.Fill(e.ramp, v.Positions, v.Colors)

		if e.showPart {
			p := &f.Particles[i]
			p.Positions, p.Colors = e.sampler.Fill(t.Backing(), e.pcolor, p.Positions, p.Colors)
		}
		e.checkDivergence(i, t)
	}

	f.Pose = e.input.Pose()
	f.Dirty = e.input.ConsumeDirty() || changed
	return f, true
}

// checkDivergence logs the first non-finite point of a line. The state
// is left as is.
func (e *Engine) checkDivergence(i int, t *trail.Trajectory) {
	if e.diverged[i] || t.Head().IsValid() {
		return
	}
	e.diverged[i] = true
	e.log.Debug("line diverged", "line", i, "backing", t.BackingLen())
}

// Diverged counts lines that have produced a non-finite point.
func (e *Engine) Diverged() int {
	n := 0
	for _, d := range e.diverged {
		if d {
			n++
		}
	}
	return n
}

// Simulate drives the engine for frames accepted ticks on a synthetic
// clock spaced one frame apart, starting it if needed, and returns the
// last frame. Used for offline snapshots and exports.
func (e *Engine) Simulate(frames int) *Frame {
	step := e.cfg.Frame.FrameDuration()
	if e.sched.State() != frame.Running {
		e.Start(0)
	}
	now := e.start + time.Duration(e.out.Index)*step
	var last *Frame
	for n := 0; n < frames; {
		now += step
		if f, ok := e.Tick(now); ok {
			last = f
			n++
		}
	}
	return last
}
