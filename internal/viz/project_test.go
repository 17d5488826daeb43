package viz

import (
	"testing"

	"github.com/san-kum/attractor/internal/interact"
)

func TestProjectCenter(t *testing.T) {
	p := NewProjector(100, 80)
	mvp := p.Matrix(interact.Pose{Zoom: 50})

	x, y, ok := p.Project(mvp, 0, 0, 0)
	if !ok {
		t.Fatal("origin should be visible")
	}
	if x != 50 || y != 40 {
		t.Errorf("origin projects to (%d,%d), want (50,40)", x, y)
	}

	// +Y is up on screen
	_, yUp, _ := p.Project(mvp, 0, 5, 0)
	if yUp >= y {
		t.Errorf("y=5 projects to row %d, want above %d", yUp, y)
	}
}

func TestProjectBehindCamera(t *testing.T) {
	p := NewProjector(100, 80)
	mvp := p.Matrix(interact.Pose{Zoom: 50})
	if _, _, ok := p.Project(mvp, 0, 0, 60); ok {
		t.Error("point behind the camera should be rejected")
	}
}

func TestProjectZoom(t *testing.T) {
	p := NewProjector(100, 80)
	near := p.Matrix(interact.Pose{Zoom: 20})
	far := p.Matrix(interact.Pose{Zoom: 200})

	xn, _, _ := p.Project(near, 5, 0, 0)
	xf, _, _ := p.Project(far, 5, 0, 0)
	if xn <= xf {
		t.Errorf("closer camera should spread points: near %d, far %d", xn, xf)
	}
}
