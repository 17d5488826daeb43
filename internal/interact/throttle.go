package interact

import "time"

// Throttle is a leading-edge rate limiter: the first call in a window is
// accepted and the rest are rejected until Window has elapsed. It holds
// no timers; callers pass a monotonic timestamp.
type Throttle struct {
	Window time.Duration

	last     time.Duration
	accepted bool
}

func NewThrottle(window time.Duration) *Throttle {
	return &Throttle{Window: window}
}

func (t *Throttle) ShouldAccept(now time.Duration) bool {
	return !t.accepted || now-t.last >= t.Window || now < t.last
}

func (t *Throttle) MarkAccepted(now time.Duration) {
	t.last = now
	t.accepted = true
}

// Allow checks and marks in one call.
func (t *Throttle) Allow(now time.Duration) bool {
	if !t.ShouldAccept(now) {
		return false
	}
	t.MarkAccepted(now)
	return true
}

func (t *Throttle) Reset() { t.accepted = false }
