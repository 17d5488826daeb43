package palette

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/attractor/internal/dynamo"
)

// Theme pairs ramp endpoints with the particle glow color.
type Theme struct {
	Name     string
	Start    dynamo.RGB
	End      dynamo.RGB
	Particle dynamo.RGB
}

// Available themes
var (
	ThemeViolet = Theme{
		Name:     "violet",
		Start:    dynamo.RGB{R: 0.57, G: 0.36, B: 0.91},
		End:      dynamo.Black,
		Particle: dynamo.RGB{R: 0.85, G: 0.75, B: 1.0},
	}

	ThemeEmber = Theme{
		Name:     "ember",
		Start:    dynamo.RGB{R: 1.0, G: 0.42, B: 0.42}, // Coral
		End:      dynamo.RGB{R: 0.18, G: 0.11, B: 0.18},
		Particle: dynamo.RGB{R: 1.0, G: 0.79, B: 0.34},
	}

	ThemeOcean = Theme{
		Name:     "ocean",
		Start:    dynamo.RGB{R: 0.0, G: 0.66, B: 0.8},
		End:      dynamo.RGB{R: 0.0, G: 0.1, B: 0.2},
		Particle: dynamo.RGB{R: 1.0, G: 0.84, B: 0.0},
	}

	ThemeMono = Theme{
		Name:     "mono",
		Start:    dynamo.RGB{R: 0.85, G: 0.85, B: 0.85},
		End:      dynamo.Black,
		Particle: dynamo.RGB{R: 1, G: 1, B: 1},
	}

	Themes = []Theme{ThemeViolet, ThemeEmber, ThemeOcean, ThemeMono}
)

// GetTheme returns a theme by name, falling back to violet.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeViolet
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// ParseHex reads a #rrggbb string.
func ParseHex(s string) (dynamo.RGB, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 {
		return dynamo.RGB{}, fmt.Errorf("color %q: expected #rrggbb", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return dynamo.RGB{}, fmt.Errorf("color %q: %w", s, err)
	}
	return dynamo.RGB{
		R: float64(v>>16&0xff) / 255,
		G: float64(v>>8&0xff) / 255,
		B: float64(v&0xff) / 255,
	}, nil
}

// Hex formats c as #rrggbb, clamping out-of-range channels.
func Hex(c dynamo.RGB) string {
	return fmt.Sprintf("#%02x%02x%02x", channel(c.R), channel(c.G), channel(c.B))
}

// Terminal converts c into a lipgloss color for the terminal renderer.
func Terminal(c dynamo.RGB) lipgloss.Color {
	return lipgloss.Color(Hex(c))
}

func channel(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}
