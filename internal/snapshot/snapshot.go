package snapshot

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/attractor/internal/dynamo"
	"github.com/san-kum/attractor/internal/engine"
	"github.com/san-kum/attractor/internal/interact"
	"golang.org/x/image/vector"
)

var ErrNoFrame = errors.New("snapshot: no frame")

type Options struct {
	Width, Height int
	Background    dynamo.RGB
	// Scale multiplies the pose line width, in pixels.
	Scale float64
	// ParticleRadius in pixels.
	ParticleRadius float64
}

func DefaultOptions() Options {
	return Options{Width: 1280, Height: 720, Scale: 1, ParticleRadius: 2.5}
}

// Renderer is an engine.Sink that draws into an RGBA image with a
// perspective camera at the origin looking down -Z.
type Renderer struct {
	opts  Options
	img   *image.RGBA
	ras   vector.Rasterizer
	cam   camera
	width float32
}

func NewRenderer(o Options) (*Renderer, error) {
	if o.Width <= 0 || o.Height <= 0 {
		return nil, fmt.Errorf("snapshot: bad size %dx%d", o.Width, o.Height)
	}
	if o.Scale <= 0 {
		o.Scale = 1
	}
	r := &Renderer{
		opts: o,
		img:  image.NewRGBA(image.Rect(0, 0, o.Width, o.Height)),
		cam:  newCamera(o.Width, o.Height),
	}
	r.Clear()
	return r, nil
}

func (r *Renderer) Image() *image.RGBA { return r.img }

func (r *Renderer) Clear() {
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(rgba(r.opts.Background)), image.Point{}, draw.Src)
}

func (r *Renderer) SetTransform(p interact.Pose) {
	r.cam.pose(p)
	r.width = float32(math.Max(p.Width*r.opts.Scale, 0.5))
}

func (r *Renderer) UpdateLine(_ int, pos, col []float32) {
	var prev mgl32.Vec2
	havePrev := false
	for k := 0; k+2 < len(pos); k += 3 {
		p, ok := r.cam.project(pos, k)
		if ok && havePrev {
			r.segment(prev, p, at(col, k))
		}
		prev, havePrev = p, ok
	}
}

func (r *Renderer) UpdateParticles(_ int, pos, col []float32) {
	for k := 0; k+2 < len(pos); k += 3 {
		if p, ok := r.cam.project(pos, k); ok {
			r.disc(p, float32(r.opts.ParticleRadius), at(col, k))
		}
	}
}

// segment fills the quad of width r.width around a-b.
func (r *Renderer) segment(a, b mgl32.Vec2, c color.Color) {
	d := b.Sub(a)
	if d.Len() < 1e-6 {
		return
	}
	n := mgl32.Vec2{-d.Y(), d.X()}.Normalize().Mul(r.width / 2)
	r.fill(c, a.Add(n), b.Add(n), b.Sub(n), a.Sub(n))
}

// disc approximates a circle with a 12-gon.
func (r *Renderer) disc(center mgl32.Vec2, radius float32, c color.Color) {
	const sides = 12
	pts := make([]mgl32.Vec2, sides)
	for i := range pts {
		a := float64(i) * 2 * math.Pi / sides
		pts[i] = center.Add(mgl32.Vec2{float32(math.Cos(a)), float32(math.Sin(a))}.Mul(radius))
	}
	r.fill(c, pts...)
}

// fill rasterizes a convex polygon, sizing the rasterizer to its
// bounding box so each draw touches only the covered pixels.
func (r *Renderer) fill(c color.Color, pts ...mgl32.Vec2) {
	minX, minY := float32(math.Inf(1)), float32(math.Inf(1))
	maxX, maxY := float32(math.Inf(-1)), float32(math.Inf(-1))
	for _, p := range pts {
		minX, maxX = min(minX, p.X()), max(maxX, p.X())
		minY, maxY = min(minY, p.Y()), max(maxY, p.Y())
	}
	box := image.Rect(int(math.Floor(float64(minX))), int(math.Floor(float64(minY))),
		int(math.Ceil(float64(maxX)))+1, int(math.Ceil(float64(maxY)))+1)
	if !box.Overlaps(r.img.Bounds()) {
		return
	}

	ox, oy := float32(box.Min.X), float32(box.Min.Y)
	r.ras.Reset(box.Dx(), box.Dy())
	r.ras.MoveTo(pts[0].X()-ox, pts[0].Y()-oy)
	for _, p := range pts[1:] {
		r.ras.LineTo(p.X()-ox, p.Y()-oy)
	}
	r.ras.ClosePath()
	r.ras.Draw(r.img, box, image.NewUniform(c), image.Point{})
}

func at(col []float32, k int) color.Color { return rgba(rgbAt(col, k)) }

func rgba(c dynamo.RGB) color.RGBA {
	ch := func(v float64) uint8 { return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255)) }
	return color.RGBA{R: ch(c.R), G: ch(c.G), B: ch(c.B), A: 255}
}

// Render draws f into a new image.
func Render(f *engine.Frame, o Options) (*image.RGBA, error) {
	if f == nil {
		return nil, ErrNoFrame
	}
	r, err := NewRenderer(o)
	if err != nil {
		return nil, err
	}
	engine.Present(f, r)
	return r.Image(), nil
}

// WritePNG renders f and encodes it to w.
func WritePNG(w io.Writer, f *engine.Frame, o Options) error {
	img, err := Render(f, o)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}
