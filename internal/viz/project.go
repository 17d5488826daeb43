package viz

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/attractor/internal/interact"
)

// Projector maps engine space onto canvas sub-pixels with a perspective
// camera looking down -Z.
type Projector struct {
	FOV       float32 // vertical, radians
	Near, Far float32
	Width     int
	Height    int
}

func NewProjector(w, h int) Projector {
	return Projector{FOV: mgl32.DegToRad(75), Near: 0.001, Far: 15000, Width: w, Height: h}
}

// Matrix combines the projection with the pose's model-view transform.
func (p Projector) Matrix(pose interact.Pose) mgl32.Mat4 {
	aspect := float32(1)
	if p.Height > 0 {
		aspect = float32(p.Width) / float32(p.Height)
	}
	return mgl32.Perspective(p.FOV, aspect, p.Near, p.Far).Mul4(pose.Matrix())
}

// Project returns the sub-pixel for (x, y, z). ok is false for points
// behind the camera or outside the depth range.
func (p Projector) Project(mvp mgl32.Mat4, x, y, z float32) (int, int, bool) {
	clip := mvp.Mul4x1(mgl32.Vec4{x, y, z, 1})
	w := clip.W()
	if w <= 0 {
		return 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / w)
	if ndc.Z() < -1 || ndc.Z() > 1 {
		return 0, 0, false
	}
	sx := int((ndc.X() + 1) / 2 * float32(p.Width))
	sy := int((1 - ndc.Y()) / 2 * float32(p.Height))
	return sx, sy, true
}
