package config

import "sort"

var Presets = map[string]func() *Config{
	"classic": DefaultConfig,
	"gentle": func() *Config {
		cfg := DefaultConfig()
		cfg.Randomize = false
		cfg.Damping = 0.05
		cfg.Pendulum1.Mass = 2
		cfg.Pendulum2.Mass = 1
		return cfg
	},
	"chaos": func() *Config {
		cfg := DefaultConfig()
		cfg.Damping = 0
		cfg.Substeps = 20
		return cfg
	},
	"short_trail": func() *Config {
		cfg := DefaultConfig()
		cfg.Trail.Length = 500
		cfg.Trail.Gap = 0
		return cfg
	},
	"follow": func() *Config {
		cfg := DefaultConfig()
		cfg.Camera.Follow = true
		cfg.Trail.Length = 2000
		return cfg
	},
}

// GetPreset returns a fresh copy of the named preset, or nil.
func GetPreset(name string) *Config {
	fn, ok := Presets[name]
	if !ok {
		return nil
	}
	return fn()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
