package palette

import (
	"fmt"

	"github.com/san-kum/attractor/internal/dynamo"
)

// Ramp is a precomputed gradient indexed by position along a trail.
// It is built once and never mutated, so lines share a single instance.
type Ramp struct {
	colors []dynamo.RGB
}

// Build precomputes size colors. The first blackPrefix entries are
// black; the rest blend from start (at blackPrefix) toward end.
func Build(size int, start, end dynamo.RGB, blackPrefix int) (*Ramp, error) {
	if size <= 0 {
		return nil, fmt.Errorf("ramp size %d: %w", size, dynamo.ErrParameterBounds)
	}
	if blackPrefix < 0 || blackPrefix >= size {
		return nil, fmt.Errorf("ramp black prefix %d of %d: %w", blackPrefix, size, dynamo.ErrParameterBounds)
	}

	colors := make([]dynamo.RGB, size)
	span := float64(size - blackPrefix)
	for i := blackPrefix; i < size; i++ {
		f := 1 - float64(i-blackPrefix)/span
		colors[i] = start.Mix(end, f)
	}
	return &Ramp{colors: colors}, nil
}

func (r *Ramp) Len() int { return len(r.colors) }

// At returns the color for trail index i, wrapping modulo the ramp size.
func (r *Ramp) At(i int) dynamo.RGB {
	n := len(r.colors)
	i %= n
	if i < 0 {
		i += n
	}
	return r.colors[i]
}

// Colors returns a copy of the table.
func (r *Ramp) Colors() []dynamo.RGB {
	out := make([]dynamo.RGB, len(r.colors))
	copy(out, r.colors)
	return out
}
