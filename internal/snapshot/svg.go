package snapshot

import (
	"bufio"
	"fmt"
	"io"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/attractor/internal/engine"
	"github.com/san-kum/attractor/internal/interact"
	"github.com/san-kum/attractor/internal/palette"
)

// SVG is an engine.Sink that writes each segment as an svg line and
// each particle as a circle. Call Close to finish the document; the
// first write error is kept and returned from Close.
type SVG struct {
	w    *bufio.Writer
	opts Options
	err  error

	cam   camera
	width float64
}

func NewSVG(w io.Writer, o Options) (*SVG, error) {
	if o.Width <= 0 || o.Height <= 0 {
		return nil, fmt.Errorf("snapshot: bad size %dx%d", o.Width, o.Height)
	}
	if o.Scale <= 0 {
		o.Scale = 1
	}
	s := &SVG{
		w:    bufio.NewWriter(w),
		opts: o,
		cam:  newCamera(o.Width, o.Height),
	}
	s.printf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, o.Width, o.Height, o.Width, o.Height, palette.Hex(o.Background))
	return s, nil
}

func (s *SVG) printf(format string, args ...any) {
	if s.err != nil {
		return
	}
	_, s.err = fmt.Fprintf(s.w, format, args...)
}

func (s *SVG) SetTransform(p interact.Pose) {
	s.cam.pose(p)
	s.width = math.Max(p.Width*s.opts.Scale, 0.5)
}

func (s *SVG) UpdateLine(i int, pos, col []float32) {
	s.printf("<g stroke-width=\"%.2f\" stroke-linecap=\"round\" id=\"line-%d\">\n", s.width, i)
	var prev mgl32.Vec2
	havePrev := false
	for k := 0; k+2 < len(pos); k += 3 {
		p, ok := s.cam.project(pos, k)
		if ok && havePrev {
			s.printf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s"/>`+"\n",
				prev.X(), prev.Y(), p.X(), p.Y(), hexAt(col, k))
		}
		prev, havePrev = p, ok
	}
	s.printf("</g>\n")
}

func (s *SVG) UpdateParticles(_ int, pos, col []float32) {
	for k := 0; k+2 < len(pos); k += 3 {
		if p, ok := s.cam.project(pos, k); ok {
			s.printf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`+"\n",
				p.X(), p.Y(), s.opts.ParticleRadius, hexAt(col, k))
		}
	}
}

// Close writes the closing tag and flushes.
func (s *SVG) Close() error {
	s.printf("</svg>\n")
	if s.err != nil {
		return s.err
	}
	return s.w.Flush()
}

func hexAt(col []float32, k int) string { return palette.Hex(rgbAt(col, k)) }

// WriteSVG renders f as an svg document to w.
func WriteSVG(w io.Writer, f *engine.Frame, o Options) error {
	if f == nil {
		return ErrNoFrame
	}
	s, err := NewSVG(w, o)
	if err != nil {
		return err
	}
	engine.Present(f, s)
	return s.Close()
}
