// Package particles picks traveling marker positions along a trajectory.
//
// The index of particle j is
//
//	(j*Spacing + floor(Speed*j)) mod backingLen
//
// so markers move only because the backing keeps growing between frames.
// Their apparent speed therefore depends on how fast the backing grows
// and is not a physical rate. Particles may alias on short backings.
package particles

import (
	"math"

	"github.com/san-kum/attractor/internal/dynamo"
)

// Sampler holds the per-line particle layout.
type Sampler struct {
	Count   int
	Spacing int
	Speed   float64
}

// Index returns the backing index for particle j, in [0, backingLen).
// It returns -1 when backingLen is not positive.
func (s Sampler) Index(j, backingLen int) int {
	if backingLen <= 0 {
		return -1
	}
	raw := int64(j)*int64(s.Spacing) + int64(math.Floor(s.Speed*float64(j)))
	idx := raw % int64(backingLen)
	if idx < 0 {
		idx += int64(backingLen)
	}
	return int(idx)
}

// Indices appends the indices of all particles for a backing of the
// given length to dst.
func (s Sampler) Indices(dst []int, backingLen int) []int {
	dst = dst[:0]
	if backingLen <= 0 {
		return dst
	}
	for j := 0; j < s.Count; j++ {
		dst = append(dst, s.Index(j, backingLen))
	}
	return dst
}

// Fill writes particle positions sampled from backing and a uniform
// color into flat xyz/rgb buffers, reusing their capacity.
func (s Sampler) Fill(backing []dynamo.State3, color dynamo.RGB, positions, colors []float32) ([]float32, []float32) {
	n := s.Count
	if len(backing) == 0 || n < 0 {
		n = 0
	}
	positions = resize(positions, 3*n)
	colors = resize(colors, 3*n)
	for j := 0; j < n; j++ {
		p := backing[s.Index(j, len(backing))]
		positions[3*j], positions[3*j+1], positions[3*j+2] = float32(p.X), float32(p.Y), float32(p.Z)
		colors[3*j], colors[3*j+1], colors[3*j+2] = float32(color.R), float32(color.G), float32(color.B)
	}
	return positions, colors
}

func resize(buf []float32, n int) []float32 {
	if cap(buf) < n {
		return make([]float32, n)
	}
	return buf[:n]
}
