// Package growth eases the visible trail length in during start-up.
package growth

import "time"

// Schedule ramps the maximum displayed length linearly from Initial to
// Final over Duration, then holds at Final. It applies to all lines.
type Schedule struct {
	Initial  float64
	Final    float64
	Duration time.Duration
}

// MaxLength returns the window length allowed elapsed after start.
func (s Schedule) MaxLength(elapsed time.Duration) float64 {
	return s.Initial + (s.Final-s.Initial)*s.Progress(elapsed)
}

// Progress is min(1, elapsed/Duration), clamped at zero.
func (s Schedule) Progress(elapsed time.Duration) float64 {
	if s.Duration <= 0 || elapsed >= s.Duration {
		return 1
	}
	if elapsed <= 0 {
		return 0
	}
	return float64(elapsed) / float64(s.Duration)
}

// Done reports whether the ramp has reached Final.
func (s Schedule) Done(elapsed time.Duration) bool {
	return s.Progress(elapsed) >= 1
}
