package config

import (
	"sort"
	"time"

	"github.com/san-kum/attractor/internal/trail"
)

var Presets = map[string]func(*Config){
	// incremental trails, no particles
	"classic": func(c *Config) {
		c.Trajectory.Strategy = trail.ShiftFixed
		c.Trajectory.Precompute = 0
		c.Particles.Enabled = false
	},
	"particles": func(c *Config) {
		c.Trajectory.Strategy = trail.GrowAndWindow
		c.Trajectory.Precompute = 5000
		c.Particles.Enabled = true
		c.Particles.Count = 16
		c.Color.Theme = "ember"
	},
	"dense": func(c *Config) {
		c.Simulation.Lines = 150
		c.Simulation.SeedSpread = 40
		c.Growth.Final = 400
		c.Growth.Duration = 5 * time.Second
		c.Color.Size = 400
	},
	"mobile": func(c *Config) {
		c.Simulation.Lines = 20
		c.Growth.Final = 120
		c.Color.Size = 120
		c.Particles.Count = 4
		c.Frame.TargetFPS = 30
	},
}

// GetPreset returns the defaults with the named preset applied, or nil.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
