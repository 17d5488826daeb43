package gui

import (
	"math"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/attractor/internal/dynamo"
	"github.com/san-kum/attractor/internal/engine"
)

const (
	wheelStep = 0.02
	zoomStep  = 5.0
)

// Pointer is one poll of the mouse and touch devices.
type Pointer struct {
	X, Y     float64
	Pressed  bool // left button went down this frame
	Released bool
	Moved    bool
	Wheel    float64
	Touches  []dynamo.Vec2
}

func poll() Pointer {
	m := rl.GetMousePosition()
	d := rl.GetMouseDelta()
	p := Pointer{
		X:        float64(m.X),
		Y:        float64(m.Y),
		Pressed:  rl.IsMouseButtonPressed(rl.MouseLeftButton),
		Released: rl.IsMouseButtonReleased(rl.MouseLeftButton),
		Moved:    d.X != 0 || d.Y != 0,
		Wheel:    float64(rl.GetMouseWheelMove()),
	}
	for i := int32(0); i < rl.GetTouchPointCount(); i++ {
		t := rl.GetTouchPosition(i)
		p.Touches = append(p.Touches, dynamo.Vec2{X: float64(t.X), Y: float64(t.Y)})
	}
	return p
}

// Input turns polled device state into controller events. The wheel
// moves a virtual scroll position in [0, 1] that drives rotation.
type Input struct {
	eng      *engine.Engine
	scroll   float64
	touching bool
}

func NewInput(eng *engine.Engine) *Input { return &Input{eng: eng} }

func (in *Input) Scroll() float64 { return in.scroll }

func (in *Input) Feed(now time.Duration, p Pointer) {
	c := in.eng.Input()

	switch {
	case len(p.Touches) > 0 && !in.touching:
		in.touching = true
		c.TouchStart(p.Touches)
	case len(p.Touches) > 0:
		c.TouchMove(now, p.Touches)
	case in.touching:
		in.touching = false
		c.TouchEnd()
	default:
		if p.Pressed {
			c.PointerDown(p.X, p.Y)
		}
		if p.Moved {
			c.PointerMove(now, p.X, p.Y)
		}
		if p.Released {
			c.PointerUp()
		}
	}

	if p.Wheel != 0 {
		in.scroll = math.Max(0, math.Min(1, in.scroll-p.Wheel*wheelStep))
		c.Scroll(now, in.scroll)
	}
}
