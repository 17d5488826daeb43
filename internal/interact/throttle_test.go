package interact

import (
	"testing"
	"time"
)

func TestThrottleLeadingEdge(t *testing.T) {
	th := NewThrottle(50 * time.Millisecond)
	ms := time.Millisecond

	steps := []struct {
		at   time.Duration
		want bool
	}{
		{0, true},
		{10 * ms, false},
		{49 * ms, false},
		{50 * ms, true},
		{60 * ms, false},
		{200 * ms, true},
	}
	for _, s := range steps {
		if got := th.Allow(s.at); got != s.want {
			t.Errorf("Allow(%v) = %v, want %v", s.at, got, s.want)
		}
	}
}

func TestThrottleShouldAcceptDoesNotMark(t *testing.T) {
	th := NewThrottle(time.Second)
	if !th.ShouldAccept(0) || !th.ShouldAccept(0) {
		t.Fatal("ShouldAccept must not consume the window")
	}
	th.MarkAccepted(0)
	if th.ShouldAccept(500 * time.Millisecond) {
		t.Error("expected rejection inside window")
	}
	th.Reset()
	if !th.ShouldAccept(500 * time.Millisecond) {
		t.Error("expected acceptance after reset")
	}
}
