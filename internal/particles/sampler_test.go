package particles

import (
	"testing"

	"github.com/san-kum/attractor/internal/dynamo"
)

func TestIndexBounds(t *testing.T) {
	samplers := []Sampler{
		{Count: 8, Spacing: 25, Speed: 0.5},
		{Count: 40, Spacing: 7, Speed: 3.3},
		{Count: 5, Spacing: 0, Speed: 0},
		{Count: 5, Spacing: -3, Speed: -1.5},
	}
	for _, s := range samplers {
		for _, n := range []int{1, 2, 7, 200, 2001} {
			for _, idx := range s.Indices(nil, n) {
				if idx < 0 || idx >= n {
					t.Fatalf("%+v len=%d: index %d out of range", s, n, idx)
				}
			}
		}
	}
}

func TestIndexFormula(t *testing.T) {
	s := Sampler{Count: 4, Spacing: 50, Speed: 2.5}

	tests := []struct {
		j, n, want int
	}{
		{0, 1000, 0},
		{1, 1000, 52},  // 50 + floor(2.5)
		{3, 1000, 157}, // 150 + floor(7.5)
		{3, 100, 57},
	}
	for _, tt := range tests {
		if got := s.Index(tt.j, tt.n); got != tt.want {
			t.Errorf("Index(%d, %d) = %d, want %d", tt.j, tt.n, got, tt.want)
		}
	}
}

func TestIndexDriftsWithBacking(t *testing.T) {
	s := Sampler{Count: 3, Spacing: 90, Speed: 1}
	a := s.Indices(nil, 100)
	b := s.Indices(nil, 101)
	if a[2] == b[2] {
		t.Errorf("expected index to move as backing grows: %v vs %v", a, b)
	}
}

func TestEmptyBacking(t *testing.T) {
	s := Sampler{Count: 3, Spacing: 10, Speed: 1}
	if got := s.Index(1, 0); got != -1 {
		t.Errorf("expected -1 for empty backing, got %d", got)
	}
	if got := s.Indices(nil, 0); len(got) != 0 {
		t.Errorf("expected no indices, got %v", got)
	}
	pos, col := s.Fill(nil, dynamo.RGB{R: 1}, nil, nil)
	if len(pos) != 0 || len(col) != 0 {
		t.Error("expected empty buffers")
	}
}

func TestFill(t *testing.T) {
	backing := make([]dynamo.State3, 10)
	for i := range backing {
		backing[i] = dynamo.State3{X: float64(i)}
	}
	s := Sampler{Count: 3, Spacing: 4, Speed: 0}
	pos, col := s.Fill(backing, dynamo.RGB{R: 1, G: 0.5}, nil, nil)

	wantX := []float32{0, 4, 8}
	for j, x := range wantX {
		if pos[3*j] != x {
			t.Errorf("particle %d at %f, want %f", j, pos[3*j], x)
		}
		if col[3*j] != 1 || col[3*j+1] != 0.5 {
			t.Errorf("particle %d color %v", j, col[3*j:3*j+3])
		}
	}
}
