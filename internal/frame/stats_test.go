package frame

import (
	"testing"
	"time"
)

func TestStatsRing(t *testing.T) {
	s := NewStats(3)
	for _, d := range []time.Duration{10, 20, 30, 40} {
		s.record(d * time.Millisecond)
	}
	got := s.Deltas()
	want := []time.Duration{20 * time.Millisecond, 30 * time.Millisecond, 40 * time.Millisecond}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Deltas()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if s.MeanDelta() != 30*time.Millisecond {
		t.Errorf("mean = %v", s.MeanDelta())
	}
	if s.Rendered() != 4 {
		t.Errorf("rendered = %d", s.Rendered())
	}
}

func TestStatsFPS(t *testing.T) {
	s := NewStats(4)
	if s.FPS() != 0 {
		t.Error("empty stats should report 0 fps")
	}
	s.record(20 * time.Millisecond)
	s.record(20 * time.Millisecond)
	if fps := s.FPS(); fps != 50 {
		t.Errorf("fps = %v, want 50", fps)
	}
	if m := s.Millis(); m[0] != 20 {
		t.Errorf("millis = %v", m)
	}
	s.Reset()
	if s.Len() != 0 || s.Rendered() != 0 {
		t.Error("reset should clear")
	}
}
