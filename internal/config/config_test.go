package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Beam.Species != "Proton" {
		t.Errorf("expected proton default, got %s", cfg.Beam.Species)
	}
	if cfg.Run.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Ring.MaxEnergy != 100 {
		t.Errorf("expected 100 GeV cap, got %g", cfg.Ring.MaxEnergy)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "machine.yaml")
	data := []byte("beam:\n  species: Electron\n  particles: 500\nring:\n  radius_m: 27000\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Beam.Species != "Electron" {
		t.Errorf("expected Electron, got %s", cfg.Beam.Species)
	}
	if cfg.Beam.Particles != 500 {
		t.Errorf("expected 500 particles, got %d", cfg.Beam.Particles)
	}
	if cfg.Ring.RadiusM != 27000 {
		t.Errorf("expected radius override, got %g", cfg.Ring.RadiusM)
	}
	// Untouched fields keep defaults.
	if cfg.Run.Dt != DefaultDt {
		t.Errorf("expected default dt, got %g", cfg.Run.Dt)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/machine.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.yaml")

	cfg := DefaultConfig()
	cfg.Beam.Energy = 77.5
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Beam.Energy != 77.5 {
		t.Errorf("round trip lost energy: %g", loaded.Beam.Energy)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("proton", "injection")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Beam.Energy != 10 {
		t.Errorf("expected injection energy 10, got %g", cfg.Beam.Energy)
	}

	if GetPreset("proton", "nonexistent") != nil {
		t.Error("expected nil for unknown preset")
	}
	if GetPreset("muon", "injection") != nil {
		t.Error("expected nil for unknown species")
	}
}

func TestListPresets(t *testing.T) {
	if len(ListPresets("proton")) == 0 {
		t.Error("expected presets for proton")
	}
	if ListPresets("muon") != nil {
		t.Error("expected nil for unknown species")
	}
}
