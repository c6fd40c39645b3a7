package metrics

import (
	"testing"

	"github.com/san-kum/beamsim/internal/beam"
	"github.com/san-kum/beamsim/internal/physics"
)

func TestMeanBetaIncreasesWithEnergy(t *testing.T) {
	low := beam.NewRing(1000, 1)
	low.SetEnergy(1)
	low.Inject(physics.Proton, 10)

	high := beam.NewRing(1000, 1)
	high.SetEnergy(500)
	high.Inject(physics.Proton, 10)

	mLow, mHigh := NewMeanBeta(), NewMeanBeta()
	mLow.Observe(low, 0)
	mHigh.Observe(high, 0)

	if mHigh.Value() <= mLow.Value() {
		t.Errorf("beta should grow with energy: high=%g low=%g", mHigh.Value(), mLow.Value())
	}
	if v := mHigh.Value(); v <= 0 || v >= 1 {
		t.Errorf("mean beta out of (0, 1): %g", v)
	}
}

func TestMeanBetaEmptyRing(t *testing.T) {
	m := NewMeanBeta()
	m.Observe(beam.NewRing(100, 1), 0)
	if m.Value() != 0 {
		t.Errorf("empty ring should contribute nothing, got %g", m.Value())
	}
}

func TestSpreadReset(t *testing.T) {
	ring := beam.NewRing(100, 3)
	ring.Inject(physics.Proton, 50)

	s := NewSpread()
	s.Observe(ring, 0)
	if s.Value() == 0 {
		t.Error("expected nonzero spread for a bunched beam")
	}

	s.Reset()
	if s.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestRadiatedPowerGrowsWithEnergy(t *testing.T) {
	mk := func(energy float64) float64 {
		ring := beam.NewRing(1000, 1)
		ring.SetEnergy(energy)
		ring.Inject(physics.Electron, 10)

		p := NewRadiatedPower(0.5, 100)
		p.Observe(ring, 0)
		return p.Value()
	}

	if mk(200) <= mk(50) {
		t.Error("radiated power should grow steeply with energy")
	}
	if mk(50) <= 0 {
		t.Error("expected positive radiated power")
	}
}

func TestRadiatedPowerIgnoresBeamlessTicks(t *testing.T) {
	ring := beam.NewRing(1000, 1)
	ring.SetEnergy(100)

	p := NewRadiatedPower(0.5, 100)

	// Empty-ring ticks before injection must not pull the average down.
	p.Observe(ring, 0)
	p.Observe(ring, 1)

	ring.Inject(physics.Electron, 10)
	p.Observe(ring, 2)
	withIdle := p.Value()

	q := NewRadiatedPower(0.5, 100)
	q.Observe(ring, 0)

	if withIdle != q.Value() {
		t.Errorf("beamless ticks diluted the average: %g vs %g", withIdle, q.Value())
	}
}
