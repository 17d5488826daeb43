package growth

import (
	"testing"
	"time"
)

var ramp = Schedule{Initial: 10, Final: 200, Duration: 3 * time.Second}

func TestMaxLengthEndpoints(t *testing.T) {
	if got := ramp.MaxLength(0); got != 10 {
		t.Errorf("MaxLength(0) = %f, want 10", got)
	}
	if got := ramp.MaxLength(3 * time.Second); got != 200 {
		t.Errorf("MaxLength(duration) = %f, want 200", got)
	}
	for _, after := range []time.Duration{3*time.Second + 1, 10 * time.Second, time.Hour} {
		if got := ramp.MaxLength(after); got != 200 {
			t.Errorf("MaxLength(%v) = %f, want exactly 200", after, got)
		}
	}
}

func TestMaxLengthMonotonic(t *testing.T) {
	prev := ramp.MaxLength(0)
	for ms := 1; ms <= 3000; ms++ {
		got := ramp.MaxLength(time.Duration(ms) * time.Millisecond)
		if got < prev {
			t.Fatalf("decreased at %dms: %f < %f", ms, got, prev)
		}
		prev = got
	}
}

func TestMaxLengthMidpoint(t *testing.T) {
	if got := ramp.MaxLength(1500 * time.Millisecond); got != 105 {
		t.Errorf("MaxLength(1.5s) = %f, want 105", got)
	}
}

func TestDegenerateSchedules(t *testing.T) {
	tests := []struct {
		name    string
		s       Schedule
		elapsed time.Duration
		want    float64
	}{
		{"zero duration", Schedule{Initial: 10, Final: 50}, 0, 50},
		{"negative elapsed", ramp, -time.Second, 10},
		{"flat", Schedule{Initial: 40, Final: 40, Duration: time.Second}, 500 * time.Millisecond, 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.s.MaxLength(tt.elapsed); got != tt.want {
				t.Errorf("got %f, want %f", got, tt.want)
			}
		})
	}
}

func TestDone(t *testing.T) {
	if ramp.Done(time.Second) {
		t.Error("should not be done after 1s")
	}
	if !ramp.Done(3 * time.Second) {
		t.Error("should be done at duration")
	}
}
