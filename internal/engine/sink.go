package engine

import "github.com/san-kum/attractor/internal/interact"

// Sink is the renderer side of a frame. Buffers are flat xyz and rgb
// float32 triples owned by the engine; they stay valid until the next
// Tick.
type Sink interface {
	SetTransform(p interact.Pose)
	UpdateLine(i int, positions, colors []float32)
	UpdateParticles(i int, positions, colors []float32)
}

// Present hands the pose of f and then every buffer to s.
func Present(f *Frame, s Sink) {
	if f == nil {
		return
	}
	s.SetTransform(f.Pose)
	for i, l := range f.Lines {
		s.UpdateLine(i, l.Positions, l.Colors)
	}
	for i, p := range f.Particles {
		s.UpdateParticles(i, p.Positions, p.Colors)
	}
}
