package physics

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/attractor/internal/dynamo"
)

func TestLorenzDerive(t *testing.T) {
	l := NewLorenz()

	tests := []struct {
		name string
		in   dynamo.State3
		want dynamo.State3
	}{
		{"origin is fixed", dynamo.State3{}, dynamo.State3{}},
		{"seed", dynamo.State3{X: 0.1}, dynamo.State3{X: -1, Y: 2.8, Z: 0}},
		{"unit", dynamo.State3{X: 1, Y: 1, Z: 1}, dynamo.State3{X: 0, Y: 26, Z: 1 - 8.0/3.0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := l.Derive(tt.in)
			if math.Abs(got.X-tt.want.X) > 1e-12 || math.Abs(got.Y-tt.want.Y) > 1e-12 || math.Abs(got.Z-tt.want.Z) > 1e-12 {
				t.Errorf("Derive(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLorenzSetParam(t *testing.T) {
	l := NewLorenz()
	if err := l.SetParam("rho", 99); err != nil {
		t.Fatalf("set rho: %v", err)
	}
	if l.GetParams()["rho"] != 99 {
		t.Errorf("expected rho 99, got %f", l.GetParams()["rho"])
	}

	err := l.SetParam("gamma", 1)
	if !errors.Is(err, dynamo.ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}
}

func TestFromParams(t *testing.T) {
	p := dynamo.ClassicParams()
	l := FromParams(p)
	if l.Sigma != 10 || l.Rho != 28 || l.Beta != 8.0/3.0 {
		t.Errorf("unexpected coefficients: %+v", l)
	}
}

func TestRegistry(t *testing.T) {
	for _, name := range Names() {
		sys, err := New(name, dynamo.ClassicParams())
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if _, ok := sys.(dynamo.Configurable); !ok {
			t.Errorf("%s should be configurable", name)
		}
	}

	if _, err := New("chua", dynamo.ClassicParams()); err == nil {
		t.Error("expected error for unknown system")
	}
}

func TestRosslerDerive(t *testing.T) {
	r := NewRossler()
	got := r.Derive(dynamo.State3{X: 1, Y: 1, Z: 1})
	want := dynamo.State3{X: -2, Y: 1.2, Z: 0.2 + (1 - 5.7)}
	if math.Abs(got.X-want.X) > 1e-12 || math.Abs(got.Y-want.Y) > 1e-12 || math.Abs(got.Z-want.Z) > 1e-12 {
		t.Errorf("Derive = %v, want %v", got, want)
	}
}
