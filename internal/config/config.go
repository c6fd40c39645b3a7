package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultRadiusM   = 100.0
	DefaultHarmonic  = 8
	DefaultMaxEnergy = 100.0
	DefaultCurrentA  = 0.5
	DefaultParticles = 100
	DefaultEnergy    = 50.0
	DefaultDt        = 0.05
	DefaultDuration  = 10.0
	DefaultFPS       = 30
)

type Config struct {
	Ring  RingConfig  `yaml:"ring"`
	Beam  BeamConfig  `yaml:"beam"`
	Run   RunConfig   `yaml:"run"`
	Cloud CloudConfig `yaml:"cloud"`
}

type RingConfig struct {
	RadiusM   float64 `yaml:"radius_m"`
	Harmonic  int     `yaml:"harmonic"`
	MaxEnergy float64 `yaml:"max_energy"`
	CurrentA  float64 `yaml:"current_a"`
}

type BeamConfig struct {
	Species   string  `yaml:"species"`
	Particles int     `yaml:"particles"`
	Energy    float64 `yaml:"energy"`
}

type RunConfig struct {
	Dt       float64 `yaml:"dt"`
	Duration float64 `yaml:"duration"`
	Seed     int64   `yaml:"seed"`
	FPS      int     `yaml:"fps"`
}

type CloudConfig struct {
	Bound float64 `yaml:"bound"`
	Noise float64 `yaml:"noise"`
}

func DefaultConfig() *Config {
	return &Config{
		Ring: RingConfig{
			RadiusM:   DefaultRadiusM,
			Harmonic:  DefaultHarmonic,
			MaxEnergy: DefaultMaxEnergy,
			CurrentA:  DefaultCurrentA,
		},
		Beam: BeamConfig{
			Species:   "Proton",
			Particles: DefaultParticles,
			Energy:    DefaultEnergy,
		},
		Run: RunConfig{
			Dt:       DefaultDt,
			Duration: DefaultDuration,
			FPS:      DefaultFPS,
		},
		Cloud: CloudConfig{
			Bound: 10.0,
			Noise: 0.01,
		},
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
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
