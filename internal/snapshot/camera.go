package snapshot

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/attractor/internal/dynamo"
	"github.com/san-kum/attractor/internal/interact"
)

// camera sits at the origin looking down -Z with a 75 degree vertical
// field of view, matching the live views.
type camera struct {
	proj, view    mgl32.Mat4
	width, height int
}

func newCamera(w, h int) camera {
	return camera{
		proj:   mgl32.Perspective(mgl32.DegToRad(75), float32(w)/float32(h), 0.001, 15000),
		view:   mgl32.Ident4(),
		width:  w,
		height: h,
	}
}

func (c *camera) pose(p interact.Pose) { c.view = p.Matrix() }

// project returns pixel coordinates with y down for the xyz triple at
// offset k. ok is false behind the camera or outside the depth range.
func (c *camera) project(pos []float32, k int) (mgl32.Vec2, bool) {
	v := mgl32.Vec3{pos[k], pos[k+1], pos[k+2]}
	if c.view.Mul4x1(v.Vec4(1)).Z() >= 0 {
		return mgl32.Vec2{}, false
	}
	win := mgl32.Project(v, c.view, c.proj, 0, 0, c.width, c.height)
	if win.Z() < 0 || win.Z() > 1 {
		return mgl32.Vec2{}, false
	}
	return mgl32.Vec2{win.X(), float32(c.height) - win.Y()}, true
}

// rgbAt reads the color triple at offset k, white when missing.
func rgbAt(col []float32, k int) dynamo.RGB {
	if k+2 >= len(col) {
		return dynamo.RGB{R: 1, G: 1, B: 1}
	}
	return dynamo.RGB{R: float64(col[k]), G: float64(col[k+1]), B: float64(col[k+2])}
}
