package interact

import (
	"fmt"
	"math"
	"time"

	"github.com/san-kum/attractor/internal/dynamo"
)

const fullTurn = 2 * math.Pi

// Mode is the pointer state.
type Mode int

const (
	Idle Mode = iota
	Dragging
)

func (m Mode) String() string {
	if m == Dragging {
		return "dragging"
	}
	return "idle"
}

// Smoothing holds the per-channel factors for exponential mode and the
// spring settings used when Mode is "spring".
type Smoothing struct {
	Mode      string  `yaml:"mode"`
	Rotation  float64 `yaml:"rotation"`
	Zoom      float64 `yaml:"zoom"`
	Pan       float64 `yaml:"pan"`
	Width     float64 `yaml:"width"`
	Frequency float64 `yaml:"frequency"`
	FPS       int     `yaml:"fps"`
}

// Settings configure a Controller.
type Settings struct {
	RotationSensitivity float64       `yaml:"rotation_sensitivity"`
	PanSensitivity      float64       `yaml:"pan_sensitivity"`
	Throttle            time.Duration `yaml:"throttle"`
	Smoothing           Smoothing     `yaml:"smoothing"`
	Pan                 dynamo.Vec2   `yaml:"pan"`
	Zoom                float64       `yaml:"zoom"`
	MinZoom             float64       `yaml:"min_zoom"`
	MaxZoom             float64       `yaml:"max_zoom"`
	WidthRest           float64       `yaml:"width_rest"`
	WidthSqueeze        float64       `yaml:"width_squeeze"`
	AutoRotate          dynamo.Vec2   `yaml:"auto_rotate"`
}

// DefaultSettings mirrors the browser rendition's feel.
func DefaultSettings() Settings {
	return Settings{
		RotationSensitivity: 0.0005,
		PanSensitivity:      0.1,
		Throttle:            50 * time.Millisecond,
		Smoothing: Smoothing{
			Mode:      ModeExponential,
			Rotation:  0.05,
			Zoom:      0.1,
			Pan:       0.05,
			Width:     0.02,
			Frequency: 6,
			FPS:       60,
		},
		Pan:          dynamo.Vec2{X: -10, Y: -7},
		Zoom:         50,
		MinZoom:      5,
		MaxZoom:      400,
		WidthRest:    1.5,
		WidthSqueeze: 2.7,
	}
}

// Controller turns normalized input events into target values and
// smooths current values toward them once per frame.
//
// Event handlers only write targets; Smooth is the only writer of
// current values. Both run on the frame loop's goroutine.
type Controller struct {
	settings Settings

	mode   Mode
	anchor dynamo.Vec2
	dirty  bool

	pitch, yaw Channel
	panX, panY Channel
	zoom       Channel
	width      Channel

	rotSmooth, zoomSmooth, panSmooth, widthSmooth Smoother

	moveGate   *Throttle
	scrollGate *Throttle
}

func NewController(s Settings) (*Controller, error) {
	c := &Controller{
		settings:   s,
		zoom:       NewChannel(s.Zoom),
		width:      NewChannel(s.WidthRest),
		moveGate:   NewThrottle(s.Throttle),
		scrollGate: NewThrottle(s.Throttle),
	}
	// pan starts at the origin and eases toward the configured target
	c.panX.Target = s.Pan.X
	c.panY.Target = s.Pan.Y

	if err := c.buildSmoothers(s.Smoothing); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Controller) buildSmoothers(sm Smoothing) error {
	build := func(factor float64) (Smoother, error) {
		return NewSmoother(sm.Mode, factor, sm.FPS, sm.Frequency)
	}
	rot, err := build(sm.Rotation)
	if err != nil {
		return fmt.Errorf("rotation: %w", err)
	}
	zoom, err := build(sm.Zoom)
	if err != nil {
		return fmt.Errorf("zoom: %w", err)
	}
	pan, err := build(sm.Pan)
	if err != nil {
		return fmt.Errorf("pan: %w", err)
	}
	width, err := build(sm.Width)
	if err != nil {
		return fmt.Errorf("width: %w", err)
	}

	c.rotSmooth, c.zoomSmooth, c.panSmooth, c.widthSmooth = rot, zoom, pan, width
	return nil
}

// Retune swaps sensitivities, smoothing and limits while keeping the
// current and target values, so a live config reload does not jump.
func (c *Controller) Retune(s Settings) error {
	if err := c.buildSmoothers(s.Smoothing); err != nil {
		return err
	}
	c.settings = s
	c.moveGate.Window = s.Throttle
	c.scrollGate.Window = s.Throttle
	if c.mode == Idle {
		c.width.Target = s.WidthRest
	}
	return nil
}

func (c *Controller) Mode() Mode { return c.mode }

func (c *Controller) Settings() Settings { return c.settings }

// PointerDown starts a drag anchored at (x, y).
func (c *Controller) PointerDown(x, y float64) {
	c.mode = Dragging
	c.anchor = dynamo.Vec2{X: x, Y: y}
}

func (c *Controller) PointerUp() { c.mode = Idle }

// PointerMove pans while dragging and rotates while idle. Moves inside
// the throttle window are dropped; the anchor is left untouched so the
// next accepted move carries the accumulated delta.
func (c *Controller) PointerMove(now time.Duration, x, y float64) {
	if !c.moveGate.Allow(now) {
		return
	}
	c.move(x, y)
}

func (c *Controller) move(x, y float64) {
	d := dynamo.Vec2{X: x, Y: y}.Sub(c.anchor)
	if c.mode == Dragging {
		c.panX.Target += d.X * c.settings.PanSensitivity
		c.panY.Target -= d.Y * c.settings.PanSensitivity
		c.dirty = true
	} else {
		c.yaw.Target += d.X * c.settings.RotationSensitivity
		c.pitch.Target += d.Y * c.settings.RotationSensitivity
	}
	c.anchor = dynamo.Vec2{X: x, Y: y}
}

// TouchStart begins a drag at the first touch and squeezes the width.
// An empty touch list is ignored.
func (c *Controller) TouchStart(touches []dynamo.Vec2) {
	if len(touches) == 0 {
		return
	}
	c.PointerDown(touches[0].X, touches[0].Y)
	c.width.Target = c.settings.WidthSqueeze
}

func (c *Controller) TouchMove(now time.Duration, touches []dynamo.Vec2) {
	if len(touches) == 0 {
		return
	}
	c.PointerMove(now, touches[0].X, touches[0].Y)
}

func (c *Controller) TouchEnd() {
	c.mode = Idle
	c.width.Target = c.settings.WidthRest
}

// Scroll sets the yaw target from the scroll position as a fraction of
// the viewport height; one viewport is one full turn.
func (c *Controller) Scroll(now time.Duration, fraction float64) {
	if math.IsNaN(fraction) || math.IsInf(fraction, 0) {
		return
	}
	if !c.scrollGate.Allow(now) {
		return
	}
	c.yaw.Target = fraction * fullTurn
}

// Zoom moves the camera distance target by delta within the limits.
func (c *Controller) Zoom(delta float64) {
	z := c.zoom.Target + delta
	if c.settings.MaxZoom > c.settings.MinZoom {
		z = math.Max(c.settings.MinZoom, math.Min(c.settings.MaxZoom, z))
	}
	c.zoom.Target = z
	c.dirty = true
}

// Smooth advances every current value one frame toward its target.
func (c *Controller) Smooth() {
	c.pitch.Target += c.settings.AutoRotate.X
	c.yaw.Target += c.settings.AutoRotate.Y

	c.rotSmooth.Update(&c.pitch)
	c.rotSmooth.Update(&c.yaw)
	c.zoomSmooth.Update(&c.zoom)
	c.panSmooth.Update(&c.panX)
	c.panSmooth.Update(&c.panY)
	c.widthSmooth.Update(&c.width)
}

// ConsumeDirty reports whether pan or zoom changed since the last call
// and clears the flag.
func (c *Controller) ConsumeDirty() bool {
	d := c.dirty
	c.dirty = false
	return d
}

func (c *Controller) Pose() Pose {
	return Pose{
		Pitch: c.pitch.Current,
		Yaw:   c.yaw.Current,
		PanX:  c.panX.Current,
		PanY:  c.panY.Current,
		Zoom:  c.zoom.Current,
		Width: c.width.Current,
	}
}

// Target returns the pose the controller is easing toward.
func (c *Controller) Target() Pose {
	return Pose{
		Pitch: c.pitch.Target,
		Yaw:   c.yaw.Target,
		PanX:  c.panX.Target,
		PanY:  c.panY.Target,
		Zoom:  c.zoom.Target,
		Width: c.width.Target,
	}
}
