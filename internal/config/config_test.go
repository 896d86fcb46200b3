package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Trail.Length != DefaultTrailLength {
		t.Errorf("expected trail length %d, got %d", DefaultTrailLength, cfg.Trail.Length)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero dt", func(c *Config) { c.Dt = 0 }},
		{"negative ticks", func(c *Config) { c.Ticks = -1 }},
		{"zero fps", func(c *Config) { c.FPS = 0 }},
		{"damping above one", func(c *Config) { c.Damping = 1.5 }},
		{"no substeps", func(c *Config) { c.Substeps = 0 }},
		{"negative stall threshold", func(c *Config) { c.StallThreshold = -0.1 }},
		{"light mass", func(c *Config) { c.Randomize = false; c.Pendulum1.Mass = 0.1 }},
		{"bad pendulum color", func(c *Config) { c.Randomize = false; c.Pendulum2.Color = "red" }},
		{"long arm", func(c *Config) { c.Arms.Length2 = 25 }},
		{"trail too long", func(c *Config) { c.Trail.Length = DefaultTrailLength + 1 }},
		{"bad background", func(c *Config) { c.Background = "#zz0000" }},
		{"negative gravity", func(c *Config) { c.Gravity = -10 }},
		{"nan gravity", func(c *Config) { c.Gravity = math.NaN() }},
		{"huge arrows", func(c *Config) { c.Arrows.Scale = 1000 }},
		{"long dash", func(c *Config) { c.Trail.Dash = 11 }},
		{"negative gap", func(c *Config) { c.Trail.Gap = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestRandomizeSkipsPendulumChecks(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Randomize = true
	cfg.Pendulum1.Mass = 0
	cfg.Pendulum1.Color = ""

	if err := cfg.Validate(); err != nil {
		t.Errorf("randomized config rejected: %v", err)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pendulum.yaml")

	cfg := DefaultConfig()
	cfg.Seed = 42
	cfg.Trail.Length = 300
	cfg.Camera.Follow = true

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Seed != 42 || loaded.Trail.Length != 300 || !loaded.Camera.Follow {
		t.Errorf("round trip lost values: %+v", loaded)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	data := []byte("seed: 7\ntrail:\n  length: 100\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Seed != 7 || cfg.Trail.Length != 100 {
		t.Errorf("values not applied: %+v", cfg)
	}
	if cfg.Dt != DefaultDt || cfg.Damping != DefaultDamping {
		t.Error("defaults not kept for missing keys")
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("dt: -1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Load() = %v, want ErrInvalidConfig", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("short_trail")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Trail.Length != 500 {
		t.Errorf("expected trail length 500, got %d", cfg.Trail.Length)
	}

	cfg.Trail.Length = 1
	if GetPreset("short_trail").Trail.Length != 500 {
		t.Error("preset shared state between calls")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestPresetsValidate(t *testing.T) {
	for _, name := range ListPresets() {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}
