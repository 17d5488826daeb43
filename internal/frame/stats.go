package frame

import "time"

// DefaultHistory is how many frame deltas Stats keeps.
const DefaultHistory = 120

// Stats counts accepted and skipped ticks and keeps a ring of recent
// frame deltas.
type Stats struct {
	rendered uint64
	skipped  uint64

	data []time.Duration
	pos  int
	full bool
}

func NewStats(capacity int) *Stats {
	if capacity <= 0 {
		capacity = DefaultHistory
	}
	return &Stats{data: make([]time.Duration, capacity)}
}

func (s *Stats) record(dt time.Duration) {
	s.rendered++
	s.data[s.pos] = dt
	s.pos++
	if s.pos >= len(s.data) {
		s.pos = 0
		s.full = true
	}
}

func (s *Stats) Rendered() uint64 { return s.rendered }
func (s *Stats) Skipped() uint64  { return s.skipped }

// Len returns the number of deltas held.
func (s *Stats) Len() int {
	if s.full {
		return len(s.data)
	}
	return s.pos
}

// Deltas returns the held deltas oldest first.
func (s *Stats) Deltas() []time.Duration {
	out := make([]time.Duration, s.Len())
	if s.full {
		n := copy(out, s.data[s.pos:])
		copy(out[n:], s.data[:s.pos])
	} else {
		copy(out, s.data[:s.pos])
	}
	return out
}

// Millis returns the held deltas in milliseconds, oldest first.
func (s *Stats) Millis() []float64 {
	d := s.Deltas()
	out := make([]float64, len(d))
	for i, v := range d {
		out[i] = float64(v) / float64(time.Millisecond)
	}
	return out
}

// MeanDelta is the average of the held deltas, zero when empty.
func (s *Stats) MeanDelta() time.Duration {
	n := s.Len()
	if n == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range s.Deltas() {
		sum += v
	}
	return sum / time.Duration(n)
}

// FPS is the frame rate implied by MeanDelta.
func (s *Stats) FPS() float64 {
	m := s.MeanDelta()
	if m <= 0 {
		return 0
	}
	return float64(time.Second) / float64(m)
}

func (s *Stats) Reset() {
	s.rendered, s.skipped = 0, 0
	s.pos, s.full = 0, false
}
