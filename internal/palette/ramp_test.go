package palette

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/attractor/internal/dynamo"
)

var violet = dynamo.RGB{R: 0.57, G: 0.36, B: 0.91}

func TestBuildBlackPrefix(t *testing.T) {
	r, err := Build(200, violet, dynamo.Black, 3)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	for i := 0; i < 3; i++ {
		if r.At(i) != dynamo.Black {
			t.Errorf("entry %d should be black, got %+v", i, r.At(i))
		}
	}
	if r.At(3) != violet {
		t.Errorf("first blended entry should equal start, got %+v", r.At(3))
	}
}

func TestBuildInterpolates(t *testing.T) {
	start := dynamo.RGB{R: 1, G: 0, B: 0}
	end := dynamo.RGB{R: 0, G: 0, B: 1}
	r, err := Build(13, start, end, 3)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	prev := math.Inf(1)
	for i := 3; i < r.Len(); i++ {
		c := r.At(i)
		f := 1 - float64(i-3)/10
		if math.Abs(c.R-f) > 1e-12 || math.Abs(c.B-(1-f)) > 1e-12 || c.G != 0 {
			t.Errorf("entry %d = %+v, want blend factor %f", i, c, f)
		}
		if c.R >= prev {
			t.Errorf("entry %d not strictly decreasing toward end", i)
		}
		if c.R <= 0 || c.R > 1 {
			t.Errorf("entry %d outside (end, start]: %+v", i, c)
		}
		prev = c.R
	}
}

func TestAtWraps(t *testing.T) {
	r, _ := Build(10, violet, dynamo.Black, 3)
	if r.At(13) != r.At(3) {
		t.Error("expected At to wrap modulo size")
	}
	if r.At(-7) != r.At(3) {
		t.Error("expected negative index to wrap")
	}
}

func TestBuildInvalid(t *testing.T) {
	tests := []struct {
		name        string
		size, black int
	}{
		{"zero size", 0, 0},
		{"prefix covers ramp", 3, 3},
		{"negative prefix", 5, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.size, violet, dynamo.Black, tt.black)
			if !errors.Is(err, dynamo.ErrParameterBounds) {
				t.Errorf("expected ErrParameterBounds, got %v", err)
			}
		})
	}
}

func TestHexRoundTrip(t *testing.T) {
	c, err := ParseHex("#915ce8")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if Hex(c) != "#915ce8" {
		t.Errorf("expected #915ce8, got %s", Hex(c))
	}
	if _, err := ParseHex("violet"); err == nil {
		t.Error("expected error for non-hex color")
	}
}

func TestGetThemeFallback(t *testing.T) {
	if GetTheme("nope").Name != "violet" {
		t.Error("expected violet fallback")
	}
	if GetTheme("ocean").Name != "ocean" {
		t.Error("expected ocean theme")
	}
}
