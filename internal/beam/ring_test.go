package beam

import (
	"testing"

	"github.com/san-kum/beamsim/internal/physics"
)

func TestInjectReplacesBeam(t *testing.T) {
	r := NewRing(100, 42)

	n := r.Inject(physics.Proton, 50)
	if n != 50 {
		t.Fatalf("expected 50 injected, got %d", n)
	}

	n = r.Inject(physics.Electron, 20)
	if n != 20 {
		t.Fatalf("expected 20 injected, got %d", n)
	}
	if r.Count() != 20 {
		t.Errorf("expected beam replaced, count %d", r.Count())
	}
	if r.BeamSpecies() != physics.Electron {
		t.Errorf("expected electron beam, got %s", r.BeamSpecies())
	}
}

func TestInjectPositionsWrapped(t *testing.T) {
	r := NewRing(100, 1)
	r.Inject(physics.Proton, 500)

	for i, pos := range r.Positions() {
		if pos < 0 || pos >= 1 {
			t.Fatalf("particle %d position %g outside [0, 1)", i, pos)
		}
	}
}

func TestSetEnergyPropagates(t *testing.T) {
	r := NewRing(100, 7)
	r.Inject(physics.Proton, 30)

	r.SetEnergy(42.5)
	for i, e := range r.Energies() {
		if e != 42.5 {
			t.Fatalf("particle %d energy %g, want 42.5", i, e)
		}
	}
}

func TestSetEnergyClamped(t *testing.T) {
	r := NewRing(100, 7)
	r.SetEnergy(250)
	if r.CurrentEnergy != 100 {
		t.Errorf("expected clamp to 100, got %g", r.CurrentEnergy)
	}
}

func TestExtract(t *testing.T) {
	r := NewRing(100, 3)
	r.Inject(physics.Proton, 10)

	if got := r.Extract(); got != 10 {
		t.Errorf("expected 10 extracted, got %d", got)
	}
	if got := r.Extract(); got != 0 {
		t.Errorf("expected 0 on empty extract, got %d", got)
	}
}

func TestAdvanceMovesEnergizedBeam(t *testing.T) {
	r := NewRing(100, 9)
	r.SetEnergy(50)
	r.Inject(physics.Proton, 5)

	before := r.Positions()
	r.Advance(0.1)
	after := r.Positions()

	for i := range before {
		if before[i] == after[i] {
			t.Fatalf("particle %d did not move", i)
		}
		if after[i] < 0 || after[i] >= 1 {
			t.Fatalf("particle %d left the ring: %g", i, after[i])
		}
	}
}

func TestAdvanceColdBeamStationary(t *testing.T) {
	r := NewRing(100, 9)
	r.Inject(physics.Proton, 5) // energy 0

	before := r.Positions()
	r.Advance(0.1)
	for i, pos := range r.Positions() {
		if pos != before[i] {
			t.Fatalf("cold particle %d moved", i)
		}
	}
}

func TestUnknownSpeciesDefaults(t *testing.T) {
	p := NewParticle(physics.Species("Muon"), 1.0, 0)
	if p.Mass != physics.Lookup(physics.Proton).MassGeV {
		t.Errorf("unknown species should carry proton mass, got %g", p.Mass)
	}
}
