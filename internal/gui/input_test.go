package gui

import (
	"io"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/san-kum/attractor/internal/config"
	"github.com/san-kum/attractor/internal/dynamo"
	"github.com/san-kum/attractor/internal/engine"
	"github.com/san-kum/attractor/internal/frame"
	"github.com/san-kum/attractor/internal/interact"
)

func newInput(t *testing.T) (*Input, *interact.Controller) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Simulation.Lines = 2
	cfg.Trajectory.Precompute = 10
	eng, err := engine.New(cfg, engine.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return NewInput(eng), eng.Input()
}

func TestFeedDrag(t *testing.T) {
	in, c := newInput(t)
	before := c.Target()

	in.Feed(0, Pointer{X: 100, Y: 100, Pressed: true})
	if c.Mode() != interact.Dragging {
		t.Fatalf("mode = %v, want dragging", c.Mode())
	}
	in.Feed(time.Second, Pointer{X: 110, Y: 120, Moved: true, Released: true})
	if c.Mode() != interact.Idle {
		t.Errorf("mode = %v after release, want idle", c.Mode())
	}

	got := c.Target()
	k := c.Settings().PanSensitivity
	if math.Abs(got.PanX-(before.PanX+10*k)) > 1e-9 || math.Abs(got.PanY-(before.PanY-20*k)) > 1e-9 {
		t.Errorf("pan target = (%v,%v)", got.PanX, got.PanY)
	}
}

func TestFeedHoverRotates(t *testing.T) {
	in, c := newInput(t)
	in.Feed(0, Pointer{X: 10, Y: 10, Moved: true})
	in.Feed(time.Second, Pointer{X: 30, Y: 10, Moved: true})
	if c.Target().Yaw <= 0 {
		t.Errorf("yaw target = %v, want > 0", c.Target().Yaw)
	}
}

func TestFeedWheel(t *testing.T) {
	in, c := newInput(t)
	in.Feed(0, Pointer{Wheel: -5})
	if math.Abs(in.Scroll()-0.1) > 1e-12 {
		t.Fatalf("scroll = %v, want 0.1", in.Scroll())
	}
	if want := 0.1 * 2 * math.Pi; math.Abs(c.Target().Yaw-want) > 1e-9 {
		t.Errorf("yaw target = %v, want %v", c.Target().Yaw, want)
	}

	in.Feed(time.Second, Pointer{Wheel: 100})
	if in.Scroll() != 0 {
		t.Errorf("scroll = %v, want clamped to 0", in.Scroll())
	}
}

func TestFeedTouch(t *testing.T) {
	in, c := newInput(t)
	touch := []dynamo.Vec2{{X: 5, Y: 5}}

	in.Feed(0, Pointer{Touches: touch})
	if c.Target().Width != c.Settings().WidthSqueeze {
		t.Errorf("width target = %v, want squeeze", c.Target().Width)
	}
	in.Feed(time.Second, Pointer{Touches: []dynamo.Vec2{{X: 15, Y: 5}}})
	in.Feed(2*time.Second, Pointer{})
	if c.Target().Width != c.Settings().WidthRest {
		t.Errorf("width target = %v, want rest", c.Target().Width)
	}
	if c.Mode() != interact.Idle {
		t.Errorf("mode = %v, want idle", c.Mode())
	}
}

func TestToColor(t *testing.T) {
	c := toColor(dynamo.RGB{R: 1, G: 0.5, B: -1})
	if c.R != 255 || c.G != 128 || c.B != 0 || c.A != 255 {
		t.Errorf("toColor = %+v", c)
	}
	if got := vertexColor([]float32{0, 0, 1}, 0); got.B != 255 {
		t.Errorf("vertexColor = %+v", got)
	}
	if got := vertexColor(nil, 0); got != toColor(dynamo.RGB{R: 1, G: 1, B: 1}) {
		t.Errorf("vertexColor(nil) = %+v, want white", got)
	}
}

func TestWindowVisibility(t *testing.T) {
	in, _ := newInput(t)
	eng := in.eng
	eng.Start(0)
	a := &App{Eng: eng, shown: true}

	a.setVisible(windowShown(false, false), time.Second)
	if eng.State() != frame.Running {
		t.Fatal("unfocused window should keep running")
	}
	a.setVisible(windowShown(true, false), 2*time.Second)
	if eng.State() != frame.Paused {
		t.Error("minimized window should pause")
	}
	a.setVisible(windowShown(false, false), 3*time.Second)
	if eng.State() != frame.Running {
		t.Error("restored window should resume")
	}
	a.setVisible(windowShown(false, true), 4*time.Second)
	if eng.State() != frame.Paused {
		t.Error("hidden window should pause")
	}
}
