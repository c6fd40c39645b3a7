package config

// Presets maps species name -> scenario name -> config.
var Presets = map[string]map[string]*Config{
	"proton": {
		"injection": {
			Ring: RingConfig{RadiusM: 100, Harmonic: 8, MaxEnergy: 100, CurrentA: 0.5},
			Beam: BeamConfig{Species: "Proton", Particles: 100, Energy: 10},
			Run:  RunConfig{Dt: 0.05, Duration: 10, FPS: 30},
		},
		"collision": {
			Ring: RingConfig{RadiusM: 100, Harmonic: 8, MaxEnergy: 100, CurrentA: 0.5},
			Beam: BeamConfig{Species: "Proton", Particles: 2000, Energy: 100},
			Run:  RunConfig{Dt: 0.02, Duration: 20, FPS: 30},
		},
	},
	"electron": {
		"lightsource": {
			Ring: RingConfig{RadiusM: 50, Harmonic: 32, MaxEnergy: 6, CurrentA: 0.3},
			Beam: BeamConfig{Species: "Electron", Particles: 1000, Energy: 3},
			Run:  RunConfig{Dt: 0.02, Duration: 15, FPS: 30},
		},
	},
	"lead": {
		"heavy_ion": {
			Ring: RingConfig{RadiusM: 100, Harmonic: 8, MaxEnergy: 100, CurrentA: 0.1},
			Beam: BeamConfig{Species: "Lead Ion", Particles: 500, Energy: 60},
			Run:  RunConfig{Dt: 0.05, Duration: 10, FPS: 30},
		},
	},
	"antiproton": {
		"storage": {
			Ring: RingConfig{RadiusM: 100, Harmonic: 8, MaxEnergy: 100, CurrentA: 0.2},
			Beam: BeamConfig{Species: "Antiproton", Particles: 200, Energy: 25},
			Run:  RunConfig{Dt: 0.05, Duration: 30, FPS: 30},
		},
	},
}

func GetPreset(species, preset string) *Config {
	speciesPresets, ok := Presets[species]
	if !ok {
		return nil
	}
	cfg, ok := speciesPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(species string) []string {
	speciesPresets, ok := Presets[species]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(speciesPresets))
	for name := range speciesPresets {
		names = append(names, name)
	}
	return names
}
