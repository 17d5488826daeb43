package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/san-kum/attractor/internal/dynamo"
	"github.com/san-kum/attractor/internal/frame"
	"github.com/san-kum/attractor/internal/growth"
	"github.com/san-kum/attractor/internal/interact"
	"github.com/san-kum/attractor/internal/palette"
	"github.com/san-kum/attractor/internal/particles"
	"github.com/san-kum/attractor/internal/physics"
	"github.com/san-kum/attractor/internal/trail"
	"gopkg.in/yaml.v3"
)

const (
	Version           = "1.0.0"
	VersionConstraint = "^1"

	DefaultSystem      = "lorenz"
	DefaultLines       = 60
	DefaultStepSize    = 0.002
	DefaultSeedSpread  = 100.0
	DefaultPrecompute  = 2000
	DefaultRampSize    = 200
	DefaultBlackPrefix = 3
	DefaultInitialLen  = 10.0
	DefaultFinalLen    = 200.0
	DefaultGrowth      = 3 * time.Second

	// DefaultParticleSpacing exceeds the largest backing a line can hold,
	// so every particle but the first wraps modulo the backing length and
	// drifts as the backing grows.
	DefaultParticleSpacing = trail.DefaultMaxBacking + 1
)

// Seeding modes.
const (
	SeedRandom = "random"
	SeedNoise  = "noise"
)

var ErrUnsupportedVersion = errors.New("config: unsupported version")

type Config struct {
	Version     string            `yaml:"version"`
	Simulation  SimulationConfig  `yaml:"simulation"`
	Trajectory  TrajectoryConfig  `yaml:"trajectory"`
	Growth      GrowthConfig      `yaml:"growth"`
	Color       ColorConfig       `yaml:"color"`
	Particles   ParticlesConfig   `yaml:"particles"`
	Interaction interact.Settings `yaml:"interaction"`
	Frame       frame.Settings    `yaml:"frame"`
	Log         LogConfig         `yaml:"log"`
}

type SimulationConfig struct {
	System     string  `yaml:"system"`
	Sigma      float64 `yaml:"sigma"`
	Beta       float64 `yaml:"beta"`
	Rho        float64 `yaml:"rho"`
	StepSize   float64 `yaml:"step_size"`
	Lines      int     `yaml:"lines"`
	Seed       int64   `yaml:"seed"`
	SeedMode   string  `yaml:"seed_mode"`
	SeedSpread float64 `yaml:"seed_spread"`
}

type TrajectoryConfig struct {
	Strategy   trail.Strategy `yaml:"strategy"`
	Precompute int            `yaml:"precompute"`
	MaxBacking int            `yaml:"max_backing"`
}

type GrowthConfig struct {
	Initial  float64       `yaml:"initial"`
	Final    float64       `yaml:"final"`
	Duration time.Duration `yaml:"duration"`
}

// ColorConfig picks a theme; Start, End and Particle override it with
// #rrggbb values when set.
type ColorConfig struct {
	Theme       string `yaml:"theme"`
	Start       string `yaml:"start,omitempty"`
	End         string `yaml:"end,omitempty"`
	Particle    string `yaml:"particle,omitempty"`
	Size        int    `yaml:"size"`
	BlackPrefix int    `yaml:"black_prefix"`
}

type ParticlesConfig struct {
	Enabled bool    `yaml:"enabled"`
	Count   int     `yaml:"count"`
	Spacing int     `yaml:"spacing"`
	Speed   float64 `yaml:"speed"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file,omitempty"`
}

func DefaultConfig() *Config {
	p := dynamo.ClassicParams()
	return &Config{
		Version: Version,
		Simulation: SimulationConfig{
			System:     DefaultSystem,
			Sigma:      p.Sigma,
			Beta:       p.Beta,
			Rho:        p.Rho,
			StepSize:   DefaultStepSize,
			Lines:      DefaultLines,
			SeedMode:   SeedRandom,
			SeedSpread: DefaultSeedSpread,
		},
		Trajectory: TrajectoryConfig{
			Strategy:   trail.GrowAndWindow,
			Precompute: DefaultPrecompute,
			MaxBacking: trail.DefaultMaxBacking,
		},
		Growth: GrowthConfig{
			Initial:  DefaultInitialLen,
			Final:    DefaultFinalLen,
			Duration: DefaultGrowth,
		},
		Color: ColorConfig{
			Theme:       palette.ThemeViolet.Name,
			Size:        DefaultRampSize,
			BlackPrefix: DefaultBlackPrefix,
		},
		Particles: ParticlesConfig{
			Enabled: true,
			Count:   8,
			Spacing: DefaultParticleSpacing,
			Speed:   0.5,
		},
		Interaction: interact.DefaultSettings(),
		Frame:       frame.DefaultSettings(),
		Log:         LogConfig{Level: "info"},
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(DefaultConfig(), path)
}

// LoadOver reads path and decodes it over a copy of base, so fields the
// file leaves out keep the values of base.
func LoadOver(base *Config, path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseOver(base, data)
}

// Parse decodes a yaml document over the defaults and validates it.
func Parse(data []byte) (*Config, error) {
	return ParseOver(DefaultConfig(), data)
}

// ParseOver decodes a yaml document over a copy of base and validates
// the result. base is not modified.
func ParseOver(base *Config, data []byte) (*Config, error) {
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the document version and every section.
func (c *Config) Validate() error {
	if err := checkVersion(c.Version); err != nil {
		return err
	}
	if err := c.Params().Validate(); err != nil {
		return fmt.Errorf("config: simulation: %w", err)
	}
	if _, err := physics.New(c.Simulation.System, c.Params()); err != nil {
		return fmt.Errorf("config: simulation: %w", err)
	}
	switch c.Simulation.SeedMode {
	case SeedRandom, SeedNoise:
	default:
		return fmt.Errorf("config: simulation: unknown seed_mode %q", c.Simulation.SeedMode)
	}
	if c.Simulation.SeedSpread < 0 {
		return fmt.Errorf("config: simulation: seed_spread %g: %w", c.Simulation.SeedSpread, dynamo.ErrParameterBounds)
	}
	if c.Trajectory.Precompute < 0 {
		return fmt.Errorf("config: trajectory: precompute %d: %w", c.Trajectory.Precompute, dynamo.ErrParameterBounds)
	}
	if c.Growth.Initial < 1 || c.Growth.Final < c.Growth.Initial {
		return fmt.Errorf("config: growth: need 1 <= initial <= final, got %g..%g: %w",
			c.Growth.Initial, c.Growth.Final, dynamo.ErrParameterBounds)
	}
	if _, err := c.Ramp(); err != nil {
		return fmt.Errorf("config: color: %w", err)
	}
	if _, err := c.ParticleColor(); err != nil {
		return fmt.Errorf("config: color: %w", err)
	}
	if c.Particles.Count < 0 {
		return fmt.Errorf("config: particles: count %d: %w", c.Particles.Count, dynamo.ErrParameterBounds)
	}
	if _, err := interact.NewController(c.Interaction); err != nil {
		return fmt.Errorf("config: interaction: %w", err)
	}
	if err := c.Frame.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := c.LogLevel(); err != nil {
		return fmt.Errorf("config: log: %w", err)
	}
	return nil
}

func checkVersion(v string) error {
	if v == "" {
		return nil
	}
	sv, err := semver.NewVersion(v)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrUnsupportedVersion, v, err)
	}
	c, err := semver.NewConstraint(VersionConstraint)
	if err != nil {
		return err
	}
	if !c.Check(sv) {
		return fmt.Errorf("%w: %s does not satisfy %s", ErrUnsupportedVersion, v, VersionConstraint)
	}
	return nil
}

func (c *Config) Params() dynamo.Params {
	return dynamo.Params{
		Sigma:     c.Simulation.Sigma,
		Beta:      c.Simulation.Beta,
		Rho:       c.Simulation.Rho,
		StepSize:  c.Simulation.StepSize,
		LineCount: c.Simulation.Lines,
	}
}

// Ramp builds the color ramp from the theme and any overrides.
func (c *Config) Ramp() (*palette.Ramp, error) {
	th := palette.GetTheme(c.Color.Theme)
	start, err := override(c.Color.Start, th.Start)
	if err != nil {
		return nil, err
	}
	end, err := override(c.Color.End, th.End)
	if err != nil {
		return nil, err
	}
	return palette.Build(c.Color.Size, start, end, c.Color.BlackPrefix)
}

func (c *Config) ParticleColor() (dynamo.RGB, error) {
	return override(c.Color.Particle, palette.GetTheme(c.Color.Theme).Particle)
}

func override(hex string, fallback dynamo.RGB) (dynamo.RGB, error) {
	if hex == "" {
		return fallback, nil
	}
	return palette.ParseHex(hex)
}

func (c *Config) Schedule() growth.Schedule {
	return growth.Schedule{
		Initial:  c.Growth.Initial,
		Final:    c.Growth.Final,
		Duration: c.Growth.Duration,
	}
}

func (c *Config) Sampler() particles.Sampler {
	return particles.Sampler{
		Count:   c.Particles.Count,
		Spacing: c.Particles.Spacing,
		Speed:   c.Particles.Speed,
	}
}

func (c *Config) LogLevel() (slog.Level, error) {
	var l slog.Level
	if c.Log.Level == "" {
		return slog.LevelInfo, nil
	}
	err := l.UnmarshalText([]byte(c.Log.Level))
	return l, err
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
