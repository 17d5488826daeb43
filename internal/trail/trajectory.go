package trail

import (
	"math"

	"github.com/san-kum/attractor/internal/dynamo"
	"github.com/san-kum/attractor/internal/palette"
)

// DefaultMaxBacking bounds the backing sequence of a GrowAndWindow line.
const DefaultMaxBacking = 1 << 16

// Trajectory is one line's ordered history of states. It is owned by a
// single line and never shared.
type Trajectory struct {
	strategy   Strategy
	dyn        dynamo.System
	integ      dynamo.Integrator
	dt         float64
	maxBacking int

	// points is the FIFO window for ShiftFixed and the backing sequence
	// for GrowAndWindow. GrowAndWindow never rewrites an entry.
	points []dynamo.State3
	start  int
	limit  int
}

// New creates a trajectory holding only seed.
func New(strategy Strategy, seed dynamo.State3, dyn dynamo.System, integ dynamo.Integrator, dt float64) *Trajectory {
	return &Trajectory{
		strategy:   strategy,
		dyn:        dyn,
		integ:      integ,
		dt:         dt,
		maxBacking: DefaultMaxBacking,
		points:     []dynamo.State3{seed},
		limit:      1,
	}
}

// SetMaxBacking changes the compaction threshold. Values below two
// disable compaction.
func (t *Trajectory) SetMaxBacking(n int) { t.maxBacking = n }

// Precompute runs the integrator steps times past the current tail. For
// GrowAndWindow the window stays at the end of the backing.
func (t *Trajectory) Precompute(steps int) {
	if cap(t.points)-len(t.points) < steps {
		grown := make([]dynamo.State3, len(t.points), len(t.points)+steps)
		copy(grown, t.points)
		t.points = grown
	}
	last := t.points[len(t.points)-1]
	for i := 0; i < steps; i++ {
		last = t.integ.Step(t.dyn, last, t.dt)
		t.points = append(t.points, last)
	}
	t.reposition()
}

// Advance pushes one integrated point and trims the displayed window to
// floor(maxLen). It reports whether the displayed window changed.
func (t *Trajectory) Advance(maxLen float64) bool {
	t.limit = windowLimit(maxLen)
	next := t.integ.Step(t.dyn, t.points[len(t.points)-1], t.dt)
	t.points = append(t.points, next)
	t.reposition()
	return true
}

func (t *Trajectory) reposition() {
	switch t.strategy {
	case GrowAndWindow:
		t.start = len(t.points) - t.limit
		if t.start < 0 {
			t.start = 0
		}
		t.compact()
	default:
		if over := len(t.points) - t.limit; over > 0 {
			// shift-out in place; keeps the array from growing
			copy(t.points, t.points[over:])
			t.points = t.points[:t.limit]
		}
	}
}

// compact drops backing points the window no longer covers once the
// backing exceeds maxBacking, halving it so the copy is amortised.
func (t *Trajectory) compact() {
	if t.maxBacking < 2 || len(t.points) <= t.maxBacking {
		return
	}
	drop := len(t.points) - t.maxBacking/2
	if drop > t.start {
		drop = t.start
	}
	if drop <= 0 {
		return
	}
	n := len(t.points) - drop
	kept := make([]dynamo.State3, n, max(n, t.maxBacking)+1)
	copy(kept, t.points[drop:])
	t.points = kept
	t.start -= drop
}

// Window returns the displayed slice, oldest first. The slice aliases
// internal storage and is valid until the next Advance.
func (t *Trajectory) Window() []dynamo.State3 {
	if t.strategy == GrowAndWindow {
		return t.points[t.start:]
	}
	return t.points
}

func (t *Trajectory) Len() int { return len(t.Window()) }

// Backing returns the full sequence behind the window.
func (t *Trajectory) Backing() []dynamo.State3 { return t.points }

func (t *Trajectory) BackingLen() int { return len(t.points) }

func (t *Trajectory) Strategy() Strategy { return t.strategy }

// Head returns the newest point.
func (t *Trajectory) Head() dynamo.State3 { return t.points[len(t.points)-1] }

// Fill writes the window into flat xyz/rgb buffers, reusing their
// capacity, and returns them resliced to 3*Len().
func (t *Trajectory) Fill(ramp *palette.Ramp, positions, colors []float32) ([]float32, []float32) {
	w := t.Window()
	positions = resize(positions, 3*len(w))
	colors = resize(colors, 3*len(w))
	for i, p := range w {
		c := ramp.At(i)
		positions[3*i], positions[3*i+1], positions[3*i+2] = float32(p.X), float32(p.Y), float32(p.Z)
		colors[3*i], colors[3*i+1], colors[3*i+2] = float32(c.R), float32(c.G), float32(c.B)
	}
	return positions, colors
}

func windowLimit(maxLen float64) int {
	if math.IsNaN(maxLen) || maxLen < 1 {
		return 1
	}
	if maxLen > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(math.Floor(maxLen))
}

func resize(buf []float32, n int) []float32 {
	if cap(buf) < n {
		return make([]float32, n)
	}
	return buf[:n]
}
