package metrics

import (
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/beamsim/internal/beam"
	"github.com/san-kum/beamsim/internal/physics"
)

// MeanBeta averages the beam's relativistic beta over particles and ticks.
type MeanBeta struct {
	name    string
	total   float64
	samples int
}

func NewMeanBeta() *MeanBeta {
	return &MeanBeta{name: "mean_beta"}
}

func (m *MeanBeta) Name() string { return m.name }

func (m *MeanBeta) Observe(r *beam.Ring, t float64) {
	if r.Count() == 0 {
		return
	}
	sum := 0.0
	for i := range r.Particles {
		p := &r.Particles[i]
		sum += physics.Beta(p.Energy, p.Mass)
	}
	m.total += sum / float64(r.Count())
	m.samples++
}

func (m *MeanBeta) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *MeanBeta) Reset() {
	m.total = 0
	m.samples = 0
}

// Spread is the time-averaged standard deviation of ring positions, a crude
// bunch-length figure.
type Spread struct {
	name    string
	total   float64
	samples int
}

func NewSpread() *Spread {
	return &Spread{name: "spread"}
}

func (s *Spread) Name() string { return s.name }

func (s *Spread) Observe(r *beam.Ring, t float64) {
	pos := r.Positions()
	if len(pos) < 2 {
		return
	}
	s.total += stat.StdDev(pos, nil)
	s.samples++
}

func (s *Spread) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return s.total / float64(s.samples)
}

func (s *Spread) Reset() {
	s.total = 0
	s.samples = 0
}

// RadiatedPower averages the synchrotron power of the beam at the machine's
// bending field over a run.
type RadiatedPower struct {
	name     string
	currentA float64
	radiusM  float64
	total    float64
	samples  int
}

// NewRadiatedPower needs the machine's beam current (A) and bending
// radius (m); the field is derived from the momentum at each tick.
func NewRadiatedPower(currentA, radiusM float64) *RadiatedPower {
	return &RadiatedPower{name: "radiated_power_kw", currentA: currentA, radiusM: radiusM}
}

func (p *RadiatedPower) Name() string { return p.name }

// Observe samples the power of the circulating beam. Ticks with no beam or
// no energy radiate nothing and contribute no sample, so the reported value
// is the average while a beam was actually stored.
func (p *RadiatedPower) Observe(r *beam.Ring, t float64) {
	if r.Count() == 0 || r.CurrentEnergy <= 0 {
		return
	}

	props := physics.Lookup(r.BeamSpecies())
	momentum := physics.Momentum(r.CurrentEnergy, props.MassGeV)
	charge := props.Charge
	if charge < 0 {
		charge = -charge
	}
	field := physics.FieldForRadius(momentum, p.radiusM, charge)

	p.total += physics.SynchrotronPowerKW(r.CurrentEnergy, field, p.currentA, p.radiusM)
	p.samples++
}

func (p *RadiatedPower) Value() float64 {
	if p.samples == 0 {
		return 0
	}
	return p.total / float64(p.samples)
}

func (p *RadiatedPower) Reset() {
	p.total = 0
	p.samples = 0
}
