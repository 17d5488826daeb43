package gui

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/attractor/internal/dynamo"
	"github.com/san-kum/attractor/internal/interact"
)

const particleRadius = 0.35

// lineSink draws engine buffers in 3D mode. SetTransform pushes the pose
// onto the matrix stack; done pops it.
type lineSink struct {
	pushed bool
}

func (s *lineSink) SetTransform(p interact.Pose) {
	rl.PushMatrix()
	s.pushed = true
	rl.Translatef(float32(p.PanX), float32(p.PanY), float32(-p.Zoom))
	rl.Rotatef(float32(p.Pitch*180/math.Pi), 1, 0, 0)
	rl.Rotatef(float32(p.Yaw*180/math.Pi), 0, 1, 0)
	rl.SetLineWidth(float32(p.Width))
}

func (s *lineSink) UpdateLine(_ int, pos, col []float32) {
	for k := 3; k+2 < len(pos); k += 3 {
		a := rl.NewVector3(pos[k-3], pos[k-2], pos[k-1])
		b := rl.NewVector3(pos[k], pos[k+1], pos[k+2])
		rl.DrawLine3D(a, b, vertexColor(col, k))
	}
}

func (s *lineSink) UpdateParticles(_ int, pos, col []float32) {
	for k := 0; k+2 < len(pos); k += 3 {
		rl.DrawSphere(rl.NewVector3(pos[k], pos[k+1], pos[k+2]), particleRadius, vertexColor(col, k))
	}
}

func (s *lineSink) done() {
	if s.pushed {
		rl.PopMatrix()
		s.pushed = false
	}
}

// vertexColor reads the rgb triple at offset k.
func vertexColor(col []float32, k int) rl.Color {
	if k+2 >= len(col) {
		return rl.White
	}
	return toColor(dynamo.RGB{R: float64(col[k]), G: float64(col[k+1]), B: float64(col[k+2])})
}

func toColor(c dynamo.RGB) rl.Color {
	return rl.NewColor(channel(c.R), channel(c.G), channel(c.B), 255)
}

func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
