package trail

import (
	"fmt"

	"github.com/san-kum/attractor/internal/dynamo"
)

// Strategy selects how a trajectory's displayed window is maintained.
type Strategy int

const (
	// ShiftFixed grows one point per frame from a single seed and
	// drops the oldest point once the window is full.
	ShiftFixed Strategy = iota
	// GrowAndWindow precomputes a backing sequence, keeps extending it,
	// and displays a trailing window of it.
	GrowAndWindow
)

func (s Strategy) String() string {
	switch s {
	case ShiftFixed:
		return "shift"
	case GrowAndWindow:
		return "window"
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// ParseStrategy accepts the config spellings "shift" and "window".
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "shift", "":
		return ShiftFixed, nil
	case "window":
		return GrowAndWindow, nil
	}
	return 0, fmt.Errorf("%q: %w", name, dynamo.ErrUnknownStrategy)
}

func (s Strategy) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Strategy) UnmarshalText(b []byte) error {
	v, err := ParseStrategy(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
