package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/powerpendulum/internal/panel"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDt          = 1.0 / 60
	DefaultTicks       = 3600
	DefaultFPS         = 60
	DefaultGravity     = 10.0
	DefaultDamping     = 0.01
	DefaultSubsteps    = 10
	DefaultTrailLength = 150000
	DefaultTrailDash   = 3.0
	DefaultTrailGap    = 1.0
	DefaultFov         = 50.0
	DefaultArmsColor   = "#333333"
	DefaultBackground  = "#000000"
	DefaultArrowScale  = 10.0
	DefaultArrowColor  = "#567def"

	MinMass       = 0.5
	MaxMass       = 10.0
	MaxArm        = 20.0
	MaxGravity    = 100.0
	MaxArrowScale = 100.0
)

var ErrInvalidConfig = errors.New("config: invalid")

type Config struct {
	Dt       float64 `yaml:"dt"`
	Ticks    int     `yaml:"ticks"`
	FPS      int     `yaml:"fps"`
	Seed     int64   `yaml:"seed"`
	Gravity  float64 `yaml:"gravity"`
	Damping  float64 `yaml:"damping"`
	Substeps int     `yaml:"substeps"`
	// Randomize draws masses, colors and start positions from Seed.
	// Otherwise the pendulum config below is used as-is.
	Randomize      bool           `yaml:"randomize"`
	StallThreshold float64        `yaml:"stall_threshold"`
	Pendulum1      PendulumConfig `yaml:"pendulum1"`
	Pendulum2      PendulumConfig `yaml:"pendulum2"`
	Arms           ArmsConfig     `yaml:"arms"`
	Trail          TrailConfig    `yaml:"trail"`
	Arrows         ArrowsConfig   `yaml:"arrows"`
	Camera         CameraConfig   `yaml:"camera"`
	Background     string         `yaml:"background"`
}

type PendulumConfig struct {
	Mass     float64    `yaml:"mass"`
	Color    string     `yaml:"color"`
	Position [3]float64 `yaml:"position"`
}

// ArmsConfig lengths of zero keep the separation the bodies start with.
type ArmsConfig struct {
	Length1 float64 `yaml:"length1"`
	Length2 float64 `yaml:"length2"`
	Color   string  `yaml:"color"`
}

type TrailConfig struct {
	Length int     `yaml:"length"`
	Dash   float64 `yaml:"dash"`
	Gap    float64 `yaml:"gap"`
}

type ArrowsConfig struct {
	Enabled bool    `yaml:"enabled"`
	Scale   float64 `yaml:"scale"`
	Color   string  `yaml:"color"`
}

type CameraConfig struct {
	Follow   bool       `yaml:"follow"`
	Position [3]float64 `yaml:"position"`
	Fov      float64    `yaml:"fov"`
}

func DefaultConfig() *Config {
	return &Config{
		Dt:        DefaultDt,
		Ticks:     DefaultTicks,
		FPS:       DefaultFPS,
		Gravity:   DefaultGravity,
		Damping:   DefaultDamping,
		Substeps:  DefaultSubsteps,
		Randomize: true,
		Pendulum1: PendulumConfig{
			Mass:     5,
			Color:    "#e0533d",
			Position: [3]float64{-10, 0, 0},
		},
		Pendulum2: PendulumConfig{
			Mass:     5,
			Color:    "#3dc1e0",
			Position: [3]float64{-10, 0, -10},
		},
		Arms: ArmsConfig{Color: DefaultArmsColor},
		Trail: TrailConfig{
			Length: DefaultTrailLength,
			Dash:   DefaultTrailDash,
			Gap:    DefaultTrailGap,
		},
		Arrows: ArrowsConfig{
			Enabled: true,
			Scale:   DefaultArrowScale,
			Color:   DefaultArrowColor,
		},
		Camera: CameraConfig{
			Position: [3]float64{0, -15, -50},
			Fov:      DefaultFov,
		},
		Background: DefaultBackground,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
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

func controlMin(name string) float64 {
	ctrl, _ := panel.Lookup(name)
	return ctrl.Min
}

func controlMax(name string) float64 {
	ctrl, _ := panel.Lookup(name)
	return ctrl.Max
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

func (c *Config) Validate() error {
	if c.Dt <= 0 {
		return invalid("dt must be positive, got %f", c.Dt)
	}
	if c.Ticks < 0 {
		return invalid("ticks must not be negative, got %d", c.Ticks)
	}
	if c.FPS <= 0 {
		return invalid("fps must be positive, got %d", c.FPS)
	}
	if c.Damping < 0 || c.Damping > 1 {
		return invalid("damping must be within [0, 1], got %f", c.Damping)
	}
	if c.Substeps < 1 {
		return invalid("substeps must be at least 1, got %d", c.Substeps)
	}
	if c.StallThreshold < 0 {
		return invalid("stall_threshold must not be negative, got %f", c.StallThreshold)
	}
	for i, p := range []PendulumConfig{c.Pendulum1, c.Pendulum2} {
		if !c.Randomize && (p.Mass < MinMass || p.Mass > MaxMass) {
			return invalid("pendulum%d mass must be within [%.1f, %.1f], got %f", i+1, MinMass, MaxMass, p.Mass)
		}
		if !c.Randomize {
			if _, err := colorful.Hex(p.Color); err != nil {
				return invalid("pendulum%d color %q: %v", i+1, p.Color, err)
			}
		}
	}
	if c.Arms.Length1 < 0 || c.Arms.Length1 > MaxArm || c.Arms.Length2 < 0 || c.Arms.Length2 > MaxArm {
		return invalid("arm lengths must be within [0, %.0f]", MaxArm)
	}
	if c.Trail.Length < 0 || c.Trail.Length > DefaultTrailLength {
		return invalid("trail length must be within [0, %d], got %d", DefaultTrailLength, c.Trail.Length)
	}
	for _, r := range []struct {
		name string
		v    float64
		min  float64
		max  float64
	}{
		{"gravity", c.Gravity, 0, MaxGravity},
		{"arrows scale", c.Arrows.Scale, 0, MaxArrowScale},
		{panel.TrailDash, c.Trail.Dash, controlMin(panel.TrailDash), controlMax(panel.TrailDash)},
		{panel.TrailGap, c.Trail.Gap, controlMin(panel.TrailGap), controlMax(panel.TrailGap)},
	} {
		// negated so NaN is rejected
		if !(r.v >= r.min && r.v <= r.max) {
			return invalid("%s must be within [%g, %g], got %f", r.name, r.min, r.max, r.v)
		}
	}
	for name, hex := range map[string]string{
		"arms color":  c.Arms.Color,
		"arrow color": c.Arrows.Color,
		"background":  c.Background,
	} {
		if _, err := colorful.Hex(hex); err != nil {
			return invalid("%s %q: %v", name, hex, err)
		}
	}
	return nil
}
