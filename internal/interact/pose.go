package interact

import "github.com/go-gl/mathgl/mgl32"

// Pose is the camera and group transform handed to the renderer.
type Pose struct {
	Pitch float64 // group rotation about X
	Yaw   float64 // group rotation about Y
	PanX  float64
	PanY  float64
	Zoom  float64 // camera distance along +Z
	Width float64
}

// Matrix returns the model-view transform: the group is rotated about X
// then Y, translated by the pan, and viewed from a camera Zoom units
// down the Z axis.
func (p Pose) Matrix() mgl32.Mat4 {
	view := mgl32.Translate3D(float32(p.PanX), float32(p.PanY), float32(-p.Zoom))
	rot := mgl32.HomogRotate3DX(float32(p.Pitch)).Mul4(mgl32.HomogRotate3DY(float32(p.Yaw)))
	return view.Mul4(rot)
}
