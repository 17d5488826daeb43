package frame

import (
	"fmt"
	"time"
)

// State is the scheduler's run state.
type State int

const (
	Paused State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "paused"
}

const (
	DefaultTargetFPS = 60
	DefaultMaxDelta  = 100 * time.Millisecond
)

type Settings struct {
	TargetFPS int           `yaml:"target_fps"`
	MaxDelta  time.Duration `yaml:"max_delta"`
}

func DefaultSettings() Settings {
	return Settings{TargetFPS: DefaultTargetFPS, MaxDelta: DefaultMaxDelta}
}

func (s Settings) Validate() error {
	if s.TargetFPS <= 0 {
		return fmt.Errorf("frame: target_fps must be positive, got %d", s.TargetFPS)
	}
	if s.MaxDelta <= 0 {
		return fmt.Errorf("frame: max_delta must be positive, got %v", s.MaxDelta)
	}
	if s.MaxDelta < s.FrameDuration() {
		// every tick would be clamped below one frame and skipped
		return fmt.Errorf("frame: max_delta %v is shorter than one frame (%v)", s.MaxDelta, s.FrameDuration())
	}
	return nil
}

// FrameDuration is the minimum spacing between accepted ticks.
func (s Settings) FrameDuration() time.Duration {
	if s.TargetFPS <= 0 {
		return 0
	}
	return time.Second / time.Duration(s.TargetFPS)
}

// Scheduler caps the frame rate by skipping ticks that arrive too soon.
// It never sleeps. A new scheduler is paused until Start.
type Scheduler struct {
	settings Settings
	frame    time.Duration

	state State
	last  time.Duration
	stats *Stats
}

func NewScheduler(s Settings) *Scheduler {
	return &Scheduler{
		settings: s,
		frame:    s.FrameDuration(),
		stats:    NewStats(DefaultHistory),
	}
}

func (s *Scheduler) State() State { return s.state }

func (s *Scheduler) Settings() Settings { return s.settings }

func (s *Scheduler) Stats() *Stats { return s.stats }

// Start begins running with now as the previous frame time.
func (s *Scheduler) Start(now time.Duration) { s.Resume(now) }

// Pause stops accepting ticks, e.g. while the view is hidden.
func (s *Scheduler) Pause() { s.state = Paused }

// Resume restarts the loop and resets the frame clock so the first frame
// after a long pause does not see the whole gap.
func (s *Scheduler) Resume(now time.Duration) {
	s.state = Running
	s.last = now
}

// Tick reports whether a frame should run at now and with what delta.
// dt is now minus the last accepted frame, clamped to MaxDelta. Ticks
// closer than one frame duration are skipped and change nothing.
func (s *Scheduler) Tick(now time.Duration) (time.Duration, bool) {
	if s.state != Running {
		return 0, false
	}
	dt := now - s.last
	if s.settings.MaxDelta > 0 && dt > s.settings.MaxDelta {
		dt = s.settings.MaxDelta
	}
	if dt < s.frame {
		s.stats.skipped++
		return 0, false
	}
	s.last = now
	s.stats.record(dt)
	return dt, true
}
