package viz

import (
	"strings"
	"testing"

	"github.com/san-kum/attractor/internal/dynamo"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(2, 1)
	white := dynamo.RGB{R: 1, G: 1, B: 1}

	c.Set(0, 0, white)
	if c.Grid[0][0] != 0x2801 {
		t.Errorf("Grid[0][0] = %U, want U+2801", c.Grid[0][0])
	}
	c.Set(1, 3, white)
	if c.Grid[0][0] != 0x2881 {
		t.Errorf("Grid[0][0] = %U, want U+2881", c.Grid[0][0])
	}
	if !c.Lit(1, 3) || c.Lit(0, 1) {
		t.Error("Lit disagrees with Set")
	}

	// out of bounds is ignored
	c.Set(-1, 0, white)
	c.Set(4, 0, white)
	c.Set(0, 4, white)
	if c.Grid[0][1] != blank {
		t.Errorf("Grid[0][1] = %U, want blank", c.Grid[0][1])
	}
}

func TestCanvasKeepsBrightest(t *testing.T) {
	c := NewCanvas(1, 1)
	bright := dynamo.RGB{R: 1, G: 1, B: 1}
	dim := dynamo.RGB{R: 0.1, G: 0.1, B: 0.1}

	c.Set(0, 0, bright)
	c.Set(1, 1, dim)
	if c.Colors[0][0] != bright {
		t.Errorf("color = %v, want %v", c.Colors[0][0], bright)
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(5, 2)
	w, h := c.Pixels()
	if w != 10 || h != 8 {
		t.Fatalf("Pixels() = %d,%d, want 10,8", w, h)
	}

	c.DrawLine(0, 0, 9, 7, dynamo.RGB{R: 1})
	if !c.Lit(0, 0) || !c.Lit(9, 7) {
		t.Error("line endpoints not lit")
	}

	c.Clear()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if c.Lit(x, y) {
				t.Fatalf("(%d,%d) lit after Clear", x, y)
			}
		}
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(3, 2)
	lines := strings.Split(strings.TrimSuffix(c.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d rows, want 2", len(lines))
	}
	if lines[0] != strings.Repeat(string(rune(blank)), 3) {
		t.Errorf("row 0 = %q", lines[0])
	}
}

func TestCanvasResize(t *testing.T) {
	c := NewCanvas(4, 4)
	c.Set(0, 0, dynamo.RGB{R: 1})
	c.Resize(2, 3)
	if c.Width != 2 || c.Height != 3 || len(c.Grid) != 3 || len(c.Grid[0]) != 2 {
		t.Fatalf("Resize gave %dx%d", c.Width, c.Height)
	}
	if c.Lit(0, 0) {
		t.Error("Resize should clear")
	}
	c.Resize(0, -1)
	if c.Width != 1 || c.Height != 1 {
		t.Errorf("Resize floors at 1x1, got %dx%d", c.Width, c.Height)
	}
}
